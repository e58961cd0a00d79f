package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
	"github.com/amirasaad/fintech-ledger/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

// KafkaEventBusConfig holds configuration for the Kafka event bus.
type KafkaEventBusConfig struct {
	Topic   string
	GroupID string
}

// KafkaEventBus implements eventbus.Bus on a single Kafka topic. Messages are
// keyed by entry id so every outcome of one entry lands on the same partition.
type KafkaEventBus struct {
	brokers []string
	writer  messageWriter
	config  KafkaEventBusConfig
	logger  *slog.Logger

	readersMtx sync.Mutex
	readers    []*kafka.Reader
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWithKafka creates a new Kafka-backed event bus.
// brokers: Comma-separated brokers list (e.g. "localhost:9092,localhost:9093").
func NewWithKafka(
	brokers string,
	config KafkaEventBusConfig,
	logger *slog.Logger,
) (*KafkaEventBus, error) {
	parsed := parseBrokers(brokers)
	if len(parsed) == 0 {
		return nil, fmt.Errorf("kafka event bus: brokers are required")
	}
	if config.Topic == "" {
		return nil, fmt.Errorf("kafka event bus: topic is required")
	}
	if config.GroupID == "" {
		config.GroupID = "ledger"
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(parsed...),
		Topic:                  config.Topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
	}
	return newKafkaBus(parsed, writer, config, logger), nil
}

func newKafkaBus(brokers []string, writer messageWriter, config KafkaEventBusConfig, logger *slog.Logger) *KafkaEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaEventBus{
		brokers: brokers,
		writer:  writer,
		config:  config,
		logger:  logger.With("bus", "kafka"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Emit publishes an event to Kafka.
func (b *KafkaEventBus) Emit(ctx context.Context, event events.Event) error {
	msg, err := messageFor(event)
	if err != nil {
		return err
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka event bus: publish failed: %w", err)
	}
	b.logger.Debug("event emitted successfully", "type", event.Type())
	return nil
}

// Register starts a group reader that calls handler for each event of eventType.
func (b *KafkaEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     b.brokers,
		GroupID:     b.config.GroupID + "." + eventType.String(),
		Topic:       b.config.Topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
	})
	b.readersMtx.Lock()
	b.readers = append(b.readers, reader)
	b.readersMtx.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			msg, err := reader.FetchMessage(b.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || b.ctx.Err() != nil {
					return
				}
				b.logger.Error("kafka consume error", "error", err, "event_type", eventType)
				time.Sleep(500 * time.Millisecond)
				continue
			}
			if string(msgHeader(msg, "type")) == eventType.String() {
				evt, err := decodeEnvelope(msg.Value)
				if err != nil {
					b.logger.Error("failed to decode event", "error", err, "offset", msg.Offset)
				} else {
					dispatch(b.ctx, b.logger, evt, []eventbus.HandlerFunc{handler})
				}
			}
			if err := reader.CommitMessages(b.ctx, msg); err != nil {
				b.logger.Error("kafka commit error", "error", err, "offset", msg.Offset)
			}
		}
	}()
}

// Close stops background readers and closes the writer.
func (b *KafkaEventBus) Close() error {
	b.cancel()
	b.readersMtx.Lock()
	for _, r := range b.readers {
		_ = r.Close()
	}
	b.readersMtx.Unlock()
	b.wg.Wait()
	return b.writer.Close()
}

func messageFor(event events.Event) (kafka.Message, error) {
	value, err := encodeEnvelope(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka event bus: %w", err)
	}
	key := []byte(event.Type())
	if keyed, ok := event.(interface{ PartitionKey() string }); ok {
		key = []byte(keyed.PartitionKey())
	}
	return kafka.Message{
		Key:     key,
		Value:   value,
		Headers: []kafka.Header{{Key: "type", Value: []byte(event.Type())}},
		Time:    time.Now(),
	}, nil
}

func msgHeader(msg kafka.Message, key string) []byte {
	for _, h := range msg.Headers {
		if h.Key == key {
			return h.Value
		}
	}
	return nil
}

func parseBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
