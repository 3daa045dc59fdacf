package kafkaproducer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/config"
	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/domain/valueobject"
)

type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func TestPublisher_Record(t *testing.T) {
	orderID, _ := valueobject.NewRecordID("42")
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		name    string
		adj     entity.Adjustment
		wantKey string
	}{
		{
			name: "keyed by item id",
			adj: entity.Adjustment{
				OrderID:   orderID,
				Item:      entity.ItemRef{ID: "7"},
				ItemID:    "7",
				Direction: entity.DirectionIncrease,
				Quantity:  5,
				Before:    10,
				After:     15,
				Matches:   1,
				Outcome:   entity.OutcomeUpdated,
			},
			wantKey: "7",
		},
		{
			name: "skipped code lookup keyed by code",
			adj: entity.Adjustment{
				OrderID:   orderID,
				Item:      entity.ItemRef{Code: "SKU-9"},
				Direction: entity.DirectionDecrease,
				Quantity:  1,
				Outcome:   entity.OutcomeSkippedNotFound,
			},
			wantKey: "SKU-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &mockWriter{}
			pub := newPublisher(writer, "stock-adjustments", zap.NewNop())
			pub.now = func() time.Time { return fixed }

			if err := pub.Record(context.Background(), tt.adj); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(writer.messages) != 1 {
				t.Fatalf("expected 1 message, got %d", len(writer.messages))
			}

			msg := writer.messages[0]
			if msg.Topic != "stock-adjustments" {
				t.Fatalf("unexpected topic %q", msg.Topic)
			}
			if string(msg.Key) != tt.wantKey {
				t.Fatalf("expected key %q, got %q", tt.wantKey, msg.Key)
			}

			var event AdjustmentEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				t.Fatalf("decoding message value: %v", err)
			}
			if event.EventID == "" {
				t.Fatal("expected an event id")
			}
			if event.OrderID != "42" || event.Outcome != string(tt.adj.Outcome) || event.After != tt.adj.After {
				t.Fatalf("unexpected event %+v", event)
			}
			if !event.OccurredAt.Equal(fixed) {
				t.Fatalf("expected occurred_at %v, got %v", fixed, event.OccurredAt)
			}
		})
	}
}

func TestPublisher_RecordWriteError(t *testing.T) {
	boom := errors.New("broker unavailable")
	pub := newPublisher(&mockWriter{err: boom}, "stock-adjustments", zap.NewNop())

	err := pub.Record(context.Background(), entity.Adjustment{ItemID: "7", Outcome: entity.OutcomeUpdated})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped writer error, got %v", err)
	}
}

func TestPublisher_Close(t *testing.T) {
	writer := &mockWriter{}
	pub := newPublisher(writer, "stock-adjustments", zap.NewNop())

	if err := pub.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !writer.closed {
		t.Fatal("expected writer to be closed")
	}
}

func TestNewPublisher(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "stock-adjustments"}
	pub := NewPublisher(cfg, zap.NewNop())

	if pub.Name() != "kafka-publisher" {
		t.Fatalf("unexpected name %q", pub.Name())
	}
	if pub.topic != "stock-adjustments" {
		t.Fatalf("unexpected topic %q", pub.topic)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("closing unused writer: %v", err)
	}
}
