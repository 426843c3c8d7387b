package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP            HTTP
		Log             Log
		PG              PG
		S3              S3
		Kafka           Kafka
		KafkaController KafkaController
		OutboxRelay     OutboxRelay
		Fetcher         Fetcher
		Webhook         Webhook
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
		Migrate bool   `env:"PG_MIGRATE" envDefault:"true"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		PublicBaseURL  string        `env:"S3_PUBLIC_BASE_URL,required"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Kafka struct {
		Brokers         []string `env:"KAFKA_BROKERS,required"`
		GroupID         string   `env:"KAFKA_GROUP_ID,required"`
		Topic           string   `env:"KAFKA_TOPIC,required"`
		DeadLetterTopic string   `env:"KAFKA_DEAD_LETTER_TOPIC"` // defaults to <topic>.dlq
	}

	KafkaController struct {
		CommitTimeout   time.Duration `env:"KAFKA_CONTROLLER_COMMIT_TIMEOUT" envDefault:"2s"`
		ProcessTimeout  time.Duration `env:"KAFKA_CONTROLLER_PROCESS_TIMEOUT" envDefault:"60s"` // fetch + compress + upload for every image of one product
		ShutdownTimeout time.Duration `env:"KAFKA_CONTROLLER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		Workers         int           `env:"KAFKA_CONTROLLER_WORKERS" envDefault:"0"` // 0 = NumCPU
	}

	OutboxRelay struct {
		PollInterval        time.Duration `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"2s"`
		MarkFailedInterval  time.Duration `env:"OUTBOX_RELAY_MARK_FAILED_INTERVAL" envDefault:"2m"`
		CleanupInterval     time.Duration `env:"OUTBOX_RELAY_CLEANUP_INTERVAL" envDefault:"24h"`
		ProcessBatchTimeout time.Duration `env:"OUTBOX_RELAY_PROCESS_BATCH_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout     time.Duration `env:"OUTBOX_RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		BatchSize           int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
		MaxRetries          int           `env:"OUTBOX_RELAY_MAX_RETRIES" envDefault:"3"`
	}

	Fetcher struct {
		Timeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
	}

	Webhook struct {
		URL     string        `env:"WEBHOOK_URL"` // empty disables notifications
		Timeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if cfg.Kafka.DeadLetterTopic == "" {
		cfg.Kafka.DeadLetterTopic = cfg.Kafka.Topic + ".dlq"
	}

	return cfg, nil
}
