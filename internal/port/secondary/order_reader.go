package secondary

import (
	"context"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/domain/valueobject"
)

// OrderReader defines the secondary port for reading order records
// from the order-tracking app.
type OrderReader interface {
	// GetOrder fetches and decodes the order with the given record ID.
	GetOrder(ctx context.Context, id valueobject.RecordID) (*entity.Order, error)
}
