package config

const (
	EnvStoreBackend = "STORE_BACKEND"
	EnvLedgerFile   = "LEDGER_FILE"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoCollection   = "MONGO_COLLECTION"
	EnvMongoSnapshotID   = "MONGO_SNAPSHOT_ID"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvReservationMode = "RESERVATION_MODE"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers               = "KAFKA_BROKERS"
	EnvLedgerEventsTopic          = "LEDGER_EVENTS_TOPIC"
	EnvKafkaProducerMaxAttempts   = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchTimeout  = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvKafkaProducerRequireAcks   = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvKafkaProducerCompression   = "KAFKA_PRODUCER_COMPRESSION"
	EnvKafkaProducerAsync         = "KAFKA_PRODUCER_ASYNC"
	EnvKafkaProducerWriteDeadline = "KAFKA_PRODUCER_WRITE_DEADLINE"
)
