// Package configs provides application configuration loaded from environment
// variables. All configuration is externalized via environment variables for
// 12-factor app compliance.
package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// AWS contains the DynamoDB connection settings.
	AWS AWSConfig

	// Namespace is the table-name prefix, e.g. "duo".
	Namespace string

	// Live selects the live table set over the dev-suffixed one.
	// Immutable after startup.
	Live bool

	// Process is the label stamped onto every status/heartbeat write,
	// e.g. "TRADE_AWS_PUBLIC_GEMINI".
	Process string

	// Kafka contains connection settings for the trade feed topic.
	Kafka KafkaConfig

	// API contains settings for the read-only HTTP API.
	API APIConfig

	// Feeder contains settings for the exchange websocket feeder.
	Feeder FeederConfig
}

// AWSConfig holds DynamoDB client settings.
type AWSConfig struct {
	// Region is the AWS region hosting the tables.
	Region string

	// Endpoint overrides the DynamoDB endpoint; leave empty for AWS.
	// Set to e.g. "http://localhost:8000" for DynamoDB Local.
	Endpoint string
}

// KafkaConfig holds Kafka connection settings for the trade feed.
type KafkaConfig struct {
	// Broker is the Kafka broker address (e.g., "localhost:9092").
	Broker string

	// Topic is the Kafka topic carrying trade messages.
	Topic string

	// GroupID is the consumer group ID for the ingester.
	GroupID string
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
}

// FeederConfig holds exchange websocket feeder settings.
type FeederConfig struct {
	// Symbols is the list of pairs to subscribe, as "QUOTE-BASE"
	// (comma-separated in env, e.g. "ETH-USD,BTC-USD").
	Symbols []string

	// MessagesPerSecond caps the publish rate to Kafka.
	MessagesPerSecond int
}

// AppLoad loads configuration from the environment, reading a .env file
// first when present.
func AppLoad() *AppConfig {
	godotenv.Load()

	return &AppConfig{
		AWS: AWSConfig{
			Region:   getEnv("AWS_REGION", "us-east-1"),
			Endpoint: getEnv("DYNAMO_ENDPOINT", ""),
		},
		Namespace: getEnv("DB_NAMESPACE", "duo"),
		Live:      getEnvBool("DB_LIVE", false),
		Process:   getEnv("PROCESS", "UNKNOWN"),
		Kafka: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_TRADE_TOPIC", "trades"),
			GroupID: getEnv("KAFKA_TRADE_GROUP_ID", "trade-ingester"),
		},
		API: APIConfig{
			Addr: getEnv("API_ADDR", ":8080"),
		},
		Feeder: FeederConfig{
			Symbols:           getEnvList("FEEDER_SYMBOLS", "ETH-USD"),
			MessagesPerSecond: getEnvInt("FEEDER_MESSAGES_PER_SECOND", 50),
		},
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvBool returns the environment variable as bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList returns a comma-separated environment variable as a slice.
func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
