package secondary

import (
	"context"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
)

// AdjustmentSink receives every adjustment result after it has been applied
// (e.g., a Redis journal, a Kafka topic, metrics).
type AdjustmentSink interface {
	// Name identifies the sink in logs.
	Name() string

	// Record stores or forwards a single adjustment.
	Record(ctx context.Context, adjustment entity.Adjustment) error

	// Close releases any resources held by the sink.
	Close() error
}
