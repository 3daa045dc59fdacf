package kafkaproducer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/config"
	"github.com/ruudy-sib/stocksync/internal/domain/entity"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AdjustmentEvent is the JSON value published for each adjustment.
type AdjustmentEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	ItemID     string    `json:"item_id,omitempty"`
	ItemCode   string    `json:"item_code,omitempty"`
	Direction  string    `json:"direction"`
	Quantity   float64   `json:"quantity"`
	Before     float64   `json:"before"`
	After      float64   `json:"after"`
	Matches    int       `json:"matches"`
	Outcome    string    `json:"outcome"`
}

// Publisher implements secondary.AdjustmentSink by publishing each adjustment
// to a Kafka topic. Messages are keyed by item so one item's changes stay ordered.
type Publisher struct {
	writer messageWriter
	topic  string
	now    func() time.Time
	logger *zap.Logger
}

// NewPublisher creates a Kafka publisher from the application configuration.
func NewPublisher(cfg *config.Config, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("kafka publisher initialized",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
	)

	return newPublisher(writer, cfg.KafkaTopic, logger)
}

func newPublisher(writer messageWriter, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		now:    time.Now,
		logger: logger.Named("kafka-publisher"),
	}
}

func (p *Publisher) Name() string {
	return "kafka-publisher"
}

// Record publishes the adjustment to the configured topic.
func (p *Publisher) Record(ctx context.Context, adj entity.Adjustment) error {
	event := toEvent(adj, p.now())
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling adjustment event: %w", err)
	}

	key := event.ItemID
	if key == "" {
		key = event.ItemCode
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing message to kafka topic %q: %w", p.topic, err)
	}

	p.logger.Debug("adjustment published",
		zap.String("topic", p.topic),
		zap.String("key", key),
		zap.Int("value_size", len(value)),
	)

	return nil
}

// Close shuts down the Kafka writer and releases its resources.
func (p *Publisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

func toEvent(adj entity.Adjustment, now time.Time) AdjustmentEvent {
	itemID := adj.ItemID
	if itemID == "" {
		itemID = adj.Item.ID
	}
	return AdjustmentEvent{
		EventID:    uuid.NewString(),
		OccurredAt: now.UTC(),
		OrderID:    adj.OrderID.String(),
		ItemID:     itemID,
		ItemCode:   adj.Item.Code,
		Direction:  string(adj.Direction),
		Quantity:   adj.Quantity,
		Before:     adj.Before,
		After:      adj.After,
		Matches:    adj.Matches,
		Outcome:    string(adj.Outcome),
	}
}
