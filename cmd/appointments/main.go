package main

import (
	"context"

	"walkin/internal/appointments/events"
	"walkin/internal/appointments/handler"
	"walkin/internal/appointments/repository"
	"walkin/internal/appointments/service"
	"walkin/internal/appointments/validator"
	mongoMigration "walkin/internal/migrations/mongo"
	partiesrepository "walkin/internal/parties/repository"
	partiesservice "walkin/internal/parties/service"
	"walkin/pkg/app"
	"walkin/pkg/config"
	"walkin/pkg/contracts"
	"walkin/pkg/kafka"
	kafka_config "walkin/pkg/kafka/config"
	kafka_middleware "walkin/pkg/kafka/middleware"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)

	var store contracts.Pinger
	if cfg.UsesMongo() {
		cfg.SetMongo()
		store = cfg.Client
		if cfg.MigrateOnStart {
			migrate(cfg)
		}
	}

	appointmentRepo, partyRepo := initRepositories(cfg)

	resolver, err := partiesservice.NewPartyResolver(partyRepo, cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize party resolver", "error", err)
	}

	publisher := initPublisher(cfg)

	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		resolver,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	cfg.Log.Info("Appointment service initialized", "store_driver", cfg.StoreDriver)

	application := app.NewApplication(cfg)
	application.SetApp(
		handler.NewAppointmentHandler(appointmentService, cfg.Log),
		handler.NewHealthHandler(store, cfg.Log),
	)
	application.OnShutdown(publisher)
	application.Run()
}

func initRepositories(cfg *config.Config) (repository.AppointmentRepository, partiesrepository.PartyRepository) {
	if cfg.UsesMongo() {
		return repository.NewMongoAppointmentRepository(cfg), partiesrepository.NewMongoPartyRepository(cfg)
	}

	cfg.Log.Warn("Using in-memory store; appointments are lost on restart")
	return repository.NewMemoryAppointmentRepository(), partiesrepository.NewMemoryPartyRepository()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Appointment events disabled")
		return events.NewNoopPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.AppointmentsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Appointment events enabled", "topic", producer.Topic(), "publish_timeout", cfg.PublishTimeout)
	return events.NewKafkaPublisher(producer, cfg.PublishTimeout)
}

func migrate(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout*3)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}
