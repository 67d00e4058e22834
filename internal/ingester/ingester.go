// Package ingester consumes trade messages from Kafka and persists them
// through the data-access layer. Each trade is written as an independent
// item; offsets are committed only after a successful write
// (at-least-once, idempotent since identical keys overwrite).
package ingester

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/model"
)

// TradeWriter is the slice of the data layer the ingester needs.
type TradeWriter interface {
	InsertTrade(ctx context.Context, trade model.Trade, withStatus bool) error
	InsertHeartbeat(ctx context.Context, extra codec.Item)
}

// Config holds ingester configuration parameters.
type Config struct {
	// HeartbeatInterval is how often a status heartbeat is written.
	HeartbeatInterval time.Duration
}

// tradeMessage is the JSON wire format on the trade topic.
type tradeMessage struct {
	Source    string  `json:"source"`
	Quote     string  `json:"quote"`
	Base      string  `json:"base"`
	ID        string  `json:"id"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
	Timestamp int64   `json:"timestamp"`
}

// Ingester consumes trades from Kafka and writes them to DynamoDB.
type Ingester struct {
	reader *kafka.Reader
	writer TradeWriter
	logger *slog.Logger
	cfg    Config
}

// NewIngester creates a new Ingester with the provided dependencies.
func NewIngester(reader *kafka.Reader, writer TradeWriter, logger *slog.Logger, cfg Config) *Ingester {
	return &Ingester{
		reader: reader,
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// Start runs the ingestion loop. It blocks until the context is cancelled.
func (ig *Ingester) Start(ctx context.Context) error {
	ig.logger.Info("Starting trade ingester", "topic", ig.reader.Config().Topic)

	heartbeat := time.NewTicker(ig.cfg.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			ig.writer.InsertHeartbeat(ctx, nil)
		default:
			fetchCtx, cancel := context.WithTimeout(ctx, ig.cfg.HeartbeatInterval)
			msg, err := ig.reader.FetchMessage(fetchCtx)
			cancel()
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				if errors.Is(err, context.Canceled) {
					return nil
				}
				ig.logger.Error("Kafka fetch error", "error", err)
				time.Sleep(time.Second)
				continue
			}

			trade, err := parseMessage(msg)
			if err != nil {
				ig.logger.Error("Dropping malformed trade message", "error", err, "offset", msg.Offset)
				if err := ig.reader.CommitMessages(ctx, msg); err != nil {
					ig.logger.Warn("Failed to commit offset", "error", err)
				}
				continue
			}

			// Offset is still uncommitted; retry until the write lands.
			for {
				if err := ig.writer.InsertTrade(ctx, trade, true); err != nil {
					ig.logger.Error("Trade insert failed, retrying in 2s", "error", err, "id", trade.ID)
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(2 * time.Second):
						continue
					}
				}
				break
			}

			if err := ig.reader.CommitMessages(ctx, msg); err != nil {
				ig.logger.Warn("Failed to commit offset", "error", err)
			}
		}
	}
}

// parseMessage deserializes a Kafka message into a trade.
func parseMessage(msg kafka.Message) (model.Trade, error) {
	var wire tradeMessage
	if err := json.Unmarshal(msg.Value, &wire); err != nil {
		return model.Trade{}, fmt.Errorf("unmarshal trade: %w", err)
	}
	if wire.ID == "" || wire.Source == "" {
		return model.Trade{}, fmt.Errorf("trade message missing id or source")
	}
	return model.Trade{
		Quote:     wire.Quote,
		Base:      wire.Base,
		Source:    wire.Source,
		ID:        wire.ID,
		Price:     wire.Price,
		Amount:    wire.Amount,
		Timestamp: wire.Timestamp,
	}, nil
}
