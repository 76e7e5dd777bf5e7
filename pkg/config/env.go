package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvStoreDriver       = "STORE_DRIVER"
	EnvMigrateOnStart    = "MIGRATE_ON_START"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvPartyCacheSize     = "PARTY_CACHE_SIZE"
	EnvDefaultPhoneRegion = "DEFAULT_PHONE_REGION"
	EnvEventsEnabled      = "EVENTS_ENABLED"
	EnvAppointmentsTopic  = "APPOINTMENT_EVENTS_TOPIC"
	EnvPublishTimeout     = "EVENTS_PUBLISH_TIMEOUT"
	EnvDotEnvFile         = "DOTENV_FILE"
)
