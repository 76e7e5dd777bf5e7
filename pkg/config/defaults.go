package config

import "time"

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "kiosk"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultStoreDriver       = StoreDriverMongo
	DefaultMigrateOnStart    = true

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPartyCacheSize    = 1024
	DefaultPhoneRegion       = "PH"
	DefaultEventsEnabled     = false
	DefaultAppointmentsTopic = "kiosk.appointments"
	DefaultPublishTimeout    = 2 * time.Second
	DefaultDotEnvFile        = ".env"
)
