package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"orderflow/internal/core/domain/events"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is shared by both services; each reads the keys it needs.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost           string        `env:"DB_HOST,required,notEmpty"`
	DBPort           string        `env:"DB_PORT" envDefault:"5432"`
	DBUser           string        `env:"DB_USER,required,notEmpty"`
	DBPassword       string        `env:"DB_PASSWORD"`
	DBName           string        `env:"DB_NAME,required,notEmpty"`
	DBSslMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`

	RabbitMQURL         string `env:"RABBITMQ_URL,required,notEmpty"`
	ConsumerMaxAttempts int    `env:"CONSUMER_MAX_ATTEMPTS" envDefault:"5"`

	KafkaBrokers          []string `env:"KAFKA_BROKERS,required,notEmpty" envSeparator:","`
	KafkaOrderEventsTopic string   `env:"KAFKA_ORDER_EVENTS_TOPIC"`
	KafkaConsumerGroup    string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"orderflow-sales-timeline"`

	HealthCheckSchedule string     `env:"HEALTH_CHECK_SCHEDULE" envDefault:"@every 10s"`
	LogLevel            slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.KafkaOrderEventsTopic == "" {
		cfg.KafkaOrderEventsTopic = events.DefaultTopic
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for the configured store.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
		int(c.DBConnectTimeout.Seconds()))
}

// NewLogger builds the JSON logger every component derives from.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
