package primary

import (
	"context"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
)

// WebhookService defines the primary port for handling order notifications
// exposed to driving adapters (HTTP handlers, embedding programs).
type WebhookService interface {
	// HandleEvent applies a normalised webhook event and returns the
	// per-line adjustment results. Delete and unknown events return none.
	HandleEvent(ctx context.Context, event entity.Event) ([]entity.Adjustment, error)
}
