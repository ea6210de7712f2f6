package app

import (
	"fmt"

	customerhandler "hotelledger/internal/customers/handler"
	customerservice "hotelledger/internal/customers/service"
	customervalidator "hotelledger/internal/customers/validator"
	hotelhandler "hotelledger/internal/hotels/handler"
	hotelservice "hotelledger/internal/hotels/service"
	hotelvalidator "hotelledger/internal/hotels/validator"
	reservationhandler "hotelledger/internal/reservations/handler"
	reservationservice "hotelledger/internal/reservations/service"
	reservationvalidator "hotelledger/internal/reservations/validator"
	"hotelledger/pkg/config"
	"hotelledger/pkg/contracts"
	"hotelledger/pkg/events"
	"hotelledger/pkg/store"
)

// Services is the set of registries sharing one Ledger.
type Services struct {
	Ledger       *store.Ledger
	Publisher    events.Publisher
	Customers    customerservice.CustomerService
	Hotels       hotelservice.HotelService
	Reservations reservationservice.ReservationService
}

func NewServices(cfg *config.Config, st store.Store, publisher events.Publisher) *Services {
	ledger := store.NewLedger(st, cfg.Log.Component("ledger"))
	hotels := hotelservice.NewHotelService(ledger, hotelvalidator.NewHotelValidator(), publisher, cfg)

	services := &Services{
		Ledger:    ledger,
		Publisher: publisher,
		Customers: customerservice.NewCustomerService(ledger, customervalidator.NewCustomerValidator(), cfg),
		Hotels:    hotels,
		Reservations: reservationservice.NewReservationService(
			ledger,
			hotels,
			reservationvalidator.NewReservationValidator(),
			publisher,
			cfg,
		),
	}

	cfg.Log.Info("Ledger services initialized",
		"store_backend", cfg.StoreBackend,
		"reservation_mode", cfg.ReservationMode,
		"events_enabled", cfg.EventsEnabled(),
	)
	return services
}

func (s *Services) Handlers(cfg *config.Config) []contracts.Handler {
	return []contracts.Handler{
		customerhandler.NewCustomerHandler(s.Customers, cfg.Log),
		hotelhandler.NewHotelHandler(s.Hotels, cfg.Log),
		reservationhandler.NewReservationHandler(s.Reservations, cfg.Log),
	}
}

// OpenStore returns the configured backend wrapped in a TracedStore. The
// mongo backend connects through cfg.Client and fails fast when unreachable.
func OpenStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		return store.NewTracedStore(store.NewFileStore(cfg.LedgerFile), config.StoreBackendFile), nil
	case config.StoreBackendMongo:
		cfg.SetMongo()
		mongoStore := store.NewMongoStore(store.MongoStoreConfig{
			Database:     cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
			Collection:   cfg.MongoCollection,
			SnapshotID:   cfg.MongoSnapshotID,
			ReadTimeout:  cfg.MongoConnTimeout,
			WriteTimeout: cfg.MongoConnTimeout,
		})
		return store.NewTracedStore(mongoStore, config.StoreBackendMongo), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

func NewPublisher(cfg *config.Config, source string) (events.Publisher, error) {
	return events.NewPublisher(events.ProducerConfig{
		Brokers:       cfg.KafkaBrokers,
		Topic:         cfg.LedgerEventsTopic,
		Source:        source,
		MaxAttempts:   cfg.KafkaProducerMaxAttempts,
		BatchTimeout:  cfg.KafkaProducerBatchTimeout,
		RequireAcks:   cfg.KafkaProducerRequireAcks,
		Compression:   cfg.KafkaProducerCompression,
		Async:         cfg.KafkaProducerAsync,
		WriteDeadline: cfg.KafkaProducerWriteDeadline,
		Log:           cfg.Log,
	})
}
