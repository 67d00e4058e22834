package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/segmentio/kafka-go"

	"github.com/duo-network/datastore/configs"
	"github.com/duo-network/datastore/internal/datastore"
	"github.com/duo-network/datastore/internal/ingester"
	"github.com/duo-network/datastore/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	appConfig := configs.AppLoad()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(appConfig.AWS.Region))
	if err != nil {
		logger.Error("Failed to load AWS config", "error", err)
		os.Exit(1)
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if appConfig.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(appConfig.AWS.Endpoint)
		}
	})

	ds := datastore.New(
		store.NewDynamo(client),
		store.NewTables(appConfig.Namespace, appConfig.Live),
		appConfig.Process,
		logger,
	)

	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{appConfig.Kafka.Broker},
		Topic:          appConfig.Kafka.Topic,
		GroupID:        appConfig.Kafka.GroupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 0,    // commits are handled manually after each write
	})
	defer kafkaReader.Close()

	svc := ingester.NewIngester(kafkaReader, ds, logger, ingester.Config{
		HeartbeatInterval: 30 * time.Second,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Ingester started successfully", "process", appConfig.Process)

	if err := svc.Start(ctx); err != nil {
		logger.Error("Ingester stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Ingester shutdown complete")
}
