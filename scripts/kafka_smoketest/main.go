// Command kafka_smoketest publishes one ledger outcome event through the
// Kafka event bus and waits until a consumer group receives it.
//
// Usage: BROKERS=localhost:9092 go run ./scripts/kafka_smoketest
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	infra_eventbus "github.com/amirasaad/fintech-ledger/infra/eventbus"
	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// RunSmokeTest round-trips an EntryCompleted event over the configured brokers.
func RunSmokeTest() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	brokers := strings.TrimSpace(os.Getenv("BROKERS"))
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topic := strings.TrimSpace(os.Getenv("TOPIC"))
	if topic == "" {
		topic = "ledger.events.smoketest"
	}
	groupID := "smoketest-" + uuid.NewString()[:8]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", strings.Split(brokers, ",")[0])
	if err != nil {
		logger.Error("dial failed", "error", err)
		return err
	}
	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	_ = conn.Close()
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		logger.Error("create topic failed", "topic", topic, "error", err)
		return err
	}
	logger.Info("topic ready", "topic", topic)

	bus, err := infra_eventbus.NewWithKafka(brokers, infra_eventbus.KafkaEventBusConfig{
		Topic:   topic,
		GroupID: groupID,
	}, logger)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	entry, err := ledger.NewEntry(uuid.New(), ledger.Deposit, decimal.NewFromInt(1), nil, "")
	if err != nil {
		return err
	}
	if err := entry.Complete(); err != nil {
		return err
	}
	sent := events.NewEntryCompleted(entry)

	received := make(chan string, 1)
	bus.Register(events.EventTypeEntryCompleted, func(_ context.Context, e events.Event) error {
		if c, ok := e.(*events.EntryCompleted); ok && c.EntryID == entry.ID {
			select {
			case received <- c.EventID():
			default:
			}
		}
		return nil
	})

	if err := bus.Emit(ctx, sent); err != nil {
		logger.Error("emit failed", "error", err)
		return err
	}
	logger.Info("produced", "entryID", entry.ID, "eventID", sent.EventID())

	select {
	case id := <-received:
		logger.Info("consumed", "eventID", id)
	case <-ctx.Done():
		logger.Error("no event consumed before timeout", "error", ctx.Err())
		return ctx.Err()
	}
	logger.Info("kafka smoke test passed")
	return nil
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	if err := RunSmokeTest(); err != nil {
		os.Exit(1)
	}
}
