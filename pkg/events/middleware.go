package events

import (
	"context"
	"time"

	"hotelledger/pkg/logger"
)

// LoggingMiddleware logs every publish attempt with its outcome and duration.
func LoggingMiddleware(log *logger.Logger) ProducerMiddleware {
	return func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error {
		start := time.Now()

		log.Debug("Publishing ledger event",
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
		)

		err := next(ctx, msg)
		duration := time.Since(start)

		if err != nil {
			log.Error("Failed to publish ledger event",
				"topic", msg.Topic,
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"duration", duration,
				"error", err,
			)
			return err
		}

		log.Info("Ledger event published",
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"duration", duration,
		)
		return nil
	}
}

// NewPublisher returns a Kafka producer with logging when brokers are
// configured and a NoopPublisher otherwise.
func NewPublisher(cfg ProducerConfig) (Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return NoopPublisher{}, nil
	}
	producer, err := NewProducer(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Log != nil {
		producer.Use(LoggingMiddleware(cfg.Log.Component("events")))
	}
	return producer, nil
}
