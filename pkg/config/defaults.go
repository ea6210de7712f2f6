package config

import "time"

const (
	StoreBackendFile  = "file"
	StoreBackendMongo = "mongo"

	ReservationModeSequential = "sequential"
	ReservationModeAtomic     = "atomic"

	DefaultStoreBackend = StoreBackendFile
	DefaultLedgerFile   = "hotel.json"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotel_ledger"
	DefaultMongoCollection   = "Ledger"
	DefaultMongoSnapshotID   = "ledger"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultReservationMode = ReservationModeSequential

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultIdempotencyTTL = 24 * time.Hour

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLedgerEventsTopic          = "hotel-ledger-events"
	DefaultKafkaProducerMaxAttempts   = 3
	DefaultKafkaProducerBatchTimeout  = 10 * time.Millisecond
	DefaultKafkaProducerRequireAcks   = -1
	DefaultKafkaProducerCompression   = "snappy"
	DefaultKafkaProducerAsync         = false
	DefaultKafkaProducerWriteDeadline = 5 * time.Second

	DefaultPaginationLimit = 100
	MinPaginationLimit     = 10
)
