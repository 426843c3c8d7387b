package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/itshivams/image-processing-system/config"
	kafkactrl "github.com/itshivams/image-processing-system/internal/controller/kafka"
	"github.com/itshivams/image-processing-system/internal/controller/restapi"
	"github.com/itshivams/image-processing-system/internal/controller/worker/outbox"
	"github.com/itshivams/image-processing-system/internal/infrastructure/fetcher"
	infrakafka "github.com/itshivams/image-processing-system/internal/infrastructure/kafka"
	imgprocessor "github.com/itshivams/image-processing-system/internal/infrastructure/processor"
	"github.com/itshivams/image-processing-system/internal/infrastructure/webhook"
	"github.com/itshivams/image-processing-system/internal/repo/persistent"
	"github.com/itshivams/image-processing-system/internal/usecase/ingestion"
	"github.com/itshivams/image-processing-system/internal/usecase/jobs"
	"github.com/itshivams/image-processing-system/internal/usecase/processor"
	"github.com/itshivams/image-processing-system/internal/usecase/status"
	"github.com/itshivams/image-processing-system/pkg/httpserver"
	"github.com/itshivams/image-processing-system/pkg/kafka/consumer"
	"github.com/itshivams/image-processing-system/pkg/kafka/producer"
	"github.com/itshivams/image-processing-system/pkg/logger"
	"github.com/itshivams/image-processing-system/pkg/postgres"
	"github.com/itshivams/image-processing-system/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Migrations
	if cfg.PG.Migrate {
		err := migrate(cfg.PG.URL)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - migrate: %w", err))
		}
	}

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	requestRepo := persistent.NewRequestRepo(pg)
	productRepo := persistent.NewProductRepo(pg)
	outboxRepo := persistent.NewJobOutboxRepo(pg)
	artifactRepo := persistent.NewArtifactRepo(s3c, cfg.S3.Bucket, cfg.S3.PublicBaseURL)

	// Use-Case

	ingestionUseCase := ingestion.New(requestRepo, productRepo, outboxRepo, pg, l)
	statusUseCase := status.New(requestRepo, productRepo, l)
	jobRelayUseCase := jobs.New(outboxRepo, l)

	jobProcessorUseCase := processor.New(
		productRepo,
		requestRepo,
		artifactRepo,
		fetcher.New(cfg.Fetcher.Timeout),
		imgprocessor.New(),
		webhook.New(cfg.Webhook.URL, cfg.Webhook.Timeout),
		l,
	)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}
	eventProducer := infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic, cfg.Kafka.DeadLetterTopic)

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		jobRelayUseCase,
		eventProducer,
		l,
		cfg.OutboxRelay.PollInterval,
		cfg.OutboxRelay.CleanupInterval,
		cfg.OutboxRelay.MarkFailedInterval,
		cfg.OutboxRelay.ProcessBatchTimeout,
		cfg.OutboxRelay.BatchSize,
		cfg.OutboxRelay.MaxRetries,
	)

	// Kafka Consumer
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
	}

	workers := cfg.KafkaController.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Kafka as Controller
	kafkaController := kafkactrl.New(
		jobProcessorUseCase,
		infrakafka.NewEventConsumer(kafkaConsumer),
		eventProducer,
		l,
		cfg.KafkaController.CommitTimeout,
		cfg.KafkaController.ProcessTimeout,
		workers,
	)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, ingestionUseCase, statusUseCase, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	err = kafkaController.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - kafkaController.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}

	kcShutdownCtx, kcShutdownCancel := context.WithTimeout(ctx, cfg.KafkaController.ShutdownTimeout)
	defer kcShutdownCancel()
	err = kafkaController.Shutdown(kcShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - kafkaController.Shutdown: %w", err))
	}
}
