package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
)

// JournalEntry is the JSON stored in Redis for one adjustment.
type JournalEntry struct {
	ID         string    `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
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

func toEntry(adj entity.Adjustment, now time.Time) JournalEntry {
	itemID := adj.ItemID
	if itemID == "" {
		itemID = adj.Item.ID
	}
	return JournalEntry{
		ID:         uuid.NewString(),
		RecordedAt: now.UTC(),
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

// Journal keeps the most recent adjustments in a capped Redis list, newest first.
// It is an audit trail only; nothing reads it back to decide on stock changes.
type Journal struct {
	client *redis.Client
	key    string
	maxLen int64
	now    func() time.Time
	logger *zap.Logger
}

// NewJournal creates a Journal writing to key, trimmed to maxLen entries.
func NewJournal(client *redis.Client, key string, maxLen int64, logger *zap.Logger) *Journal {
	return &Journal{
		client: client,
		key:    key,
		maxLen: maxLen,
		now:    time.Now,
		logger: logger.Named("redis-journal"),
	}
}

func (j *Journal) Name() string {
	return "redis-journal"
}

// Record pushes the adjustment and trims the list in one pipeline.
func (j *Journal) Record(ctx context.Context, adj entity.Adjustment) error {
	data, err := json.Marshal(toEntry(adj, j.now()))
	if err != nil {
		return fmt.Errorf("marshaling journal entry: %w", err)
	}

	pipe := j.client.TxPipeline()
	pipe.LPush(ctx, j.key, data)
	pipe.LTrim(ctx, j.key, 0, j.maxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing journal entry to redis: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first. Entries that fail to
// decode are skipped.
func (j *Journal) Recent(ctx context.Context, limit int64) ([]JournalEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	raw, err := j.client.LRange(ctx, j.key, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading journal from redis: %w", err)
	}

	entries := make([]JournalEntry, 0, len(raw))
	for _, member := range raw {
		var e JournalEntry
		if err := json.Unmarshal([]byte(member), &e); err != nil {
			j.logger.Warn("invalid journal entry in redis",
				zap.Error(err),
				zap.String("raw", member),
			)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Close is a no-op; the Redis client is owned by the caller.
func (j *Journal) Close() error {
	return nil
}
