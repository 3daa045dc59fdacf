package secondary

import (
	"context"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
)

// ItemStore defines the secondary port for reading and updating
// item records in the item-master app.
type ItemStore interface {
	// GetItem fetches the item with the given record ID.
	GetItem(ctx context.Context, id string) (*entity.Item, error)

	// FindItemsByCode returns every item whose item code equals code.
	FindItemsByCode(ctx context.Context, code string) ([]*entity.Item, error)

	// UpdateStock writes only the stock count of the given item.
	UpdateStock(ctx context.Context, id string, stock float64) error
}
