//go:build integration

package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	migrations "walkin/internal/migrations/mongo"
	"walkin/pkg/client"
	"walkin/pkg/config"
	"walkin/pkg/logger"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func startMongo(t *testing.T) *mongo.Client {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate mongo container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to read connection string: %v", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = mongoClient.Disconnect(context.Background()) })
	return mongoClient
}

func TestMongoAppointmentRepository(t *testing.T) {
	mongoClient := startMongo(t)
	log := logger.Discard()

	runLedgerContract(t, func(t *testing.T) AppointmentRepository {
		dbName := "walkin_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		db := mongoClient.Database(dbName)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := migrations.RunMigration(ctx, db, log); err != nil {
			t.Fatalf("RunMigration: %v", err)
		}
		t.Cleanup(func() { _ = db.Drop(context.Background()) })

		cfg := &config.Config{
			MongoDatabaseName: dbName,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			Log:               log,
			Client:            &client.Client{Mongo: mongoClient},
		}
		return NewMongoAppointmentRepository(cfg)
	})
}
