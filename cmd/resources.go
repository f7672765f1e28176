package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	kafkain "orderflow/internal/adapters/in/kafka"
	kafkaout "orderflow/internal/adapters/out/kafka"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Resources owns the process-wide clients. Everything opened here is closed
// by Close, in reverse order.
type Resources struct {
	DB          *gorm.DB
	AMQP        *amqp.Connection
	KafkaWriter *kafka.Writer

	closers []func() error
}

// OpenResources connects to the store and the broker. The Kafka writer dials
// on first write. On failure whatever was already opened is closed.
func OpenResources(ctx context.Context, cfg Config, log *slog.Logger) (_ *Resources, err error) {
	r := &Resources{}
	defer func() {
		if err != nil {
			_ = r.Close()
		}
	}()

	r.DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	sqlDB, err := r.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	r.closers = append(r.closers, sqlDB.Close)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	defer cancel()
	if err = sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}

	r.AMQP, err = amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	r.closers = append(r.closers, r.AMQP.Close)

	r.KafkaWriter = kafkaout.NewWriter(cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic)
	r.closers = append(r.closers, r.KafkaWriter.Close)

	log.InfoContext(ctx, "resources opened",
		"db_host", cfg.DBHost, "kafka_brokers", cfg.KafkaBrokers)
	return r, nil
}

// OpenEventLogReader joins the configured consumer group on the event topic.
func (r *Resources) OpenEventLogReader(cfg Config) *kafka.Reader {
	reader := kafkain.NewReader(cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic, cfg.KafkaConsumerGroup)
	r.closers = append(r.closers, reader.Close)
	return reader
}

func (r *Resources) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
