package kintone

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ruudy-sib/stocksync/internal/config"
	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/domain/valueobject"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// OrderRepository implements secondary.OrderReader against the order-tracking app.
type OrderRepository struct {
	client *Client
	appID  string
	token  string
}

// NewOrderRepository creates an OrderRepository for the configured order-tracking app.
func NewOrderRepository(client *Client, cfg *config.Config) secondary.OrderReader {
	return &OrderRepository{
		client: client,
		appID:  cfg.OrderAppID,
		token:  cfg.OrderAPIToken,
	}
}

type recordResponse struct {
	Record record `json:"record"`
}

// GetOrder fetches the order record and decodes its lines. A record with an
// ordered_items subtable yields one line per row addressed by item code;
// otherwise item_rn and qty yield a single line addressed by record ID.
func (r *OrderRepository) GetOrder(ctx context.Context, id valueobject.RecordID) (*entity.Order, error) {
	query := url.Values{}
	query.Set("app", r.appID)
	query.Set("id", id.String())

	var resp recordResponse
	if err := r.client.getJSON(ctx, recordPath, query, r.token, &resp); err != nil {
		return nil, fmt.Errorf("reading order record: %w", err)
	}

	order, err := decodeOrder(id, resp.Record)
	if err != nil {
		return nil, fmt.Errorf("decoding order %s: %w", id, err)
	}
	return order, nil
}

func decodeOrder(id valueobject.RecordID, rec record) (*entity.Order, error) {
	orderType, err := rec.text(fieldOrderType)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{ID: id, Type: entity.OrderType(orderType)}

	if rec.has(fieldOrderedItems) {
		rows, err := rec.subtable(fieldOrderedItems)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			code, err := row.Value.text(fieldItemCode)
			if err != nil {
				return nil, fmt.Errorf("row %s: %w", row.ID, err)
			}
			qty, err := row.Value.number(fieldQuantity)
			if err != nil {
				return nil, fmt.Errorf("row %s: %w", row.ID, err)
			}
			order.Lines = append(order.Lines, entity.LineItem{
				Item:     entity.ItemRef{Code: code, LookupByCode: true},
				Quantity: qty,
			})
		}
		return order, nil
	}

	itemID, err := rec.text(fieldItemRecordNo)
	if err != nil {
		return nil, err
	}
	qty, err := rec.number(fieldQuantity)
	if err != nil {
		return nil, err
	}
	order.Lines = []entity.LineItem{{
		Item:     entity.ItemRef{ID: itemID},
		Quantity: qty,
	}}
	return order, nil
}
