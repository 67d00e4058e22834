// Feeder subscribes to the Gemini public market-data websocket and
// publishes normalized trade messages to the Kafka trade topic, one
// worker per configured symbol.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/duo-network/datastore/configs"
	"github.com/duo-network/datastore/internal/model"
)

const (
	geminiWSURL = "wss://api.gemini.com/v1/marketdata"

	handshakeTimeout = 4 * time.Second
	readTimeout      = 60 * time.Second
	reconnectDelay   = 5 * time.Second
)

// marketDataMessage is one Gemini market-data frame.
type marketDataMessage struct {
	Type        string `json:"type"`
	EventID     int64  `json:"eventId"`
	TimestampMS int64  `json:"timestampms"`
	Events      []struct {
		Type   string `json:"type"`
		TID    int64  `json:"tid"`
		Price  string `json:"price"`
		Amount string `json:"amount"`
	} `json:"events"`
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

// feedWorker maintains one websocket subscription and publishes its
// trades to Kafka.
type feedWorker struct {
	producer *kafka.Writer
	limiter  *rate.Limiter
	logger   *logrus.Logger
	quote    string
	base     string
}

func (fw *feedWorker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	symbol := strings.ToLower(fw.quote + fw.base)
	workerID := fmt.Sprintf("FeedWorker-%s", symbol)
	fw.logger.Infof("[%s] Starting", workerID)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Infof("[%s] Shutting down due to context cancellation", workerID)
			return
		default:
			if err := fw.handleConnection(ctx, workerID, symbol); err != nil {
				fw.logger.Errorf("[%s] WebSocket error: %v. Reconnecting in %s...", workerID, err, reconnectDelay)
				select {
				case <-ctx.Done():
					return
				case <-time.After(reconnectDelay):
					continue
				}
			}
		}
	}
}

// handleConnection handles a single websocket connection lifecycle.
func (fw *feedWorker) handleConnection(ctx context.Context, workerID, symbol string) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, geminiWSURL+"/"+symbol, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	fw.logger.Infof("[%s] Connected", workerID)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		var frame marketDataMessage
		if err := json.Unmarshal(raw, &frame); err != nil {
			fw.logger.Warnf("[%s] Skipping malformed frame: %v", workerID, err)
			continue
		}
		if frame.Type != "update" {
			continue
		}

		for _, event := range frame.Events {
			if event.Type != "trade" {
				continue
			}
			if err := fw.publishTrade(ctx, frame, event.TID, event.Price, event.Amount); err != nil {
				return err
			}
		}
	}
}

func (fw *feedWorker) publishTrade(ctx context.Context, frame marketDataMessage, tid int64, price, amount string) error {
	priceF, err := strconv.ParseFloat(price, 64)
	if err != nil {
		fw.logger.Warnf("Skipping trade %d with malformed price %q", tid, price)
		return nil
	}
	amountF, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		fw.logger.Warnf("Skipping trade %d with malformed amount %q", tid, amount)
		return nil
	}

	payload, err := json.Marshal(tradeMessage{
		Source:    model.SourceGemini,
		Quote:     fw.quote,
		Base:      fw.base,
		ID:        strconv.FormatInt(tid, 10),
		Price:     priceF,
		Amount:    amountF,
		Timestamp: frame.TimestampMS,
	})
	if err != nil {
		return fmt.Errorf("marshal trade: %w", err)
	}

	if err := fw.limiter.Wait(ctx); err != nil {
		return err
	}
	return fw.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fw.quote + fw.base),
		Value: payload,
	})
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	appConfig := configs.AppLoad()

	producer := &kafka.Writer{
		Addr:     kafka.TCP(appConfig.Kafka.Broker),
		Topic:    appConfig.Kafka.Topic,
		Balancer: &kafka.Hash{},
	}
	defer producer.Close()

	limiter := rate.NewLimiter(rate.Limit(appConfig.Feeder.MessagesPerSecond), appConfig.Feeder.MessagesPerSecond)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, symbol := range appConfig.Feeder.Symbols {
		parts := strings.SplitN(symbol, "-", 2)
		if len(parts) != 2 {
			logger.Warnf("Skipping malformed symbol %q, want QUOTE-BASE", symbol)
			continue
		}
		worker := &feedWorker{
			producer: producer,
			limiter:  limiter,
			logger:   logger,
			quote:    parts[0],
			base:     parts[1],
		}
		wg.Add(1)
		go worker.run(ctx, &wg)
	}

	wg.Wait()
	logger.Info("Feeder shutdown complete")
}
