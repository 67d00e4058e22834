package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/duo-network/datastore/configs"
	"github.com/duo-network/datastore/internal/api"
	"github.com/duo-network/datastore/internal/datastore"
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

	router := api.NewRouter(api.NewHandler(ds))

	logger.Info("API listening", "addr", appConfig.API.Addr, "live", appConfig.Live)
	if err := router.Run(appConfig.API.Addr); err != nil {
		logger.Error("API stopped with error", "error", err)
		os.Exit(1)
	}
}
