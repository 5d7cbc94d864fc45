package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Config is read from the environment. Brokers left empty are simply not wired.
type Config struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"floor"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`

	RedisHost string `env:"REDIS_HOST"`
	RedisPort string `env:"REDIS_PORT" envDefault:"6379"`

	KafkaBroker      string `env:"KAFKA_BROKER"`
	KafkaTopic       string `env:"KAFKA_TOPIC" envDefault:"floor.notifications"`
	KafkaMenuTopic   string `env:"KAFKA_MENU_TOPIC" envDefault:"menu.updates"`
	KafkaGroupID     string `env:"KAFKA_GROUP_ID" envDefault:"floor-svc"`
	RabbitMQURL      string `env:"RABBITMQ_URL"`
	RabbitMQExchange string `env:"RABBITMQ_EXCHANGE" envDefault:"floor.notifications"`

	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8085"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost"`
	PricingFile   string        `env:"PRICING_FILE"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	EmitterBuffer int           `env:"EMITTER_BUFFER" envDefault:"256"`
	MenuCacheTTL  time.Duration `env:"MENU_CACHE_TTL" envDefault:"5m"`
	OTelEndpoint  string        `env:"OTEL_ENDPOINT"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func MustInitPostgres(cfg *Config, log *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}

	return client
}

func NewKafkaReader(cfg *Config, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: cfg.KafkaGroupID,
	})
}

func NewKafkaWriter(cfg *Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.Hash{},
	}
}

// DialRabbitMQ opens a channel and declares the fanout exchange notifications are published to.
func DialRabbitMQ(cfg *Config) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.RabbitMQExchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", cfg.RabbitMQExchange, err)
	}
	return conn, ch, nil
}
