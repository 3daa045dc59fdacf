package kintone

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ruudy-sib/stocksync/internal/config"
	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// ItemRepository implements secondary.ItemStore against the item-master app.
type ItemRepository struct {
	client *Client
	appID  string
	token  string
}

// NewItemRepository creates an ItemRepository for the configured item-master app.
func NewItemRepository(client *Client, cfg *config.Config) secondary.ItemStore {
	return &ItemRepository{
		client: client,
		appID:  cfg.ItemAppID,
		token:  cfg.ItemAPIToken,
	}
}

type recordsResponse struct {
	Records []record `json:"records"`
}

type updateRequest struct {
	App    string                 `json:"app"`
	ID     string                 `json:"id"`
	Record map[string]numberValue `json:"record"`
}

// GetItem fetches one item record by record ID.
func (r *ItemRepository) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	query := url.Values{}
	query.Set("app", r.appID)
	query.Set("id", id)

	var resp recordResponse
	if err := r.client.getJSON(ctx, recordPath, query, r.token, &resp); err != nil {
		return nil, fmt.Errorf("reading item record: %w", err)
	}

	stock, err := resp.Record.number(fieldStock)
	if err != nil {
		return nil, fmt.Errorf("decoding item %s: %w", id, err)
	}

	item := &entity.Item{ID: id, Stock: stock}
	if resp.Record.has(fieldItemCode) {
		if item.Code, err = resp.Record.text(fieldItemCode); err != nil {
			return nil, fmt.Errorf("decoding item %s: %w", id, err)
		}
	}
	return item, nil
}

// FindItemsByCode runs an equality query on the item_code field.
func (r *ItemRepository) FindItemsByCode(ctx context.Context, code string) ([]*entity.Item, error) {
	query := url.Values{}
	query.Set("app", r.appID)
	query.Set("query", codeQuery(code))

	var resp recordsResponse
	if err := r.client.getJSON(ctx, recordsPath, query, r.token, &resp); err != nil {
		return nil, fmt.Errorf("querying item records: %w", err)
	}

	items := make([]*entity.Item, 0, len(resp.Records))
	for _, rec := range resp.Records {
		id, err := rec.text(fieldRecordID)
		if err != nil {
			return nil, fmt.Errorf("decoding item for code %q: %w", code, err)
		}
		stock, err := rec.number(fieldStock)
		if err != nil {
			return nil, fmt.Errorf("decoding item %s: %w", id, err)
		}
		items = append(items, &entity.Item{ID: id, Code: code, Stock: stock})
	}
	return items, nil
}

// UpdateStock writes only the stock field of the item.
func (r *ItemRepository) UpdateStock(ctx context.Context, id string, stock float64) error {
	body := updateRequest{
		App: r.appID,
		ID:  id,
		Record: map[string]numberValue{
			fieldStock: {Value: stock},
		},
	}

	if err := r.client.putJSON(ctx, recordPath, r.token, body); err != nil {
		return fmt.Errorf("updating item record: %w", err)
	}
	return nil
}

// codeQuery builds a kintone query string matching item_code exactly.
func codeQuery(code string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(code)
	return fieldItemCode + ` = "` + escaped + `"`
}
