package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// StockService applies order line items to stock counts in the item master.
// Lines are processed one at a time in order; there is no locking, so two
// notifications touching the same item concurrently can lose an update.
type StockService struct {
	items  secondary.ItemStore
	sink   secondary.AdjustmentSink
	logger *zap.Logger
}

// NewStockService creates a StockService with its dependencies injected.
func NewStockService(
	items secondary.ItemStore,
	sink secondary.AdjustmentSink,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		items:  items,
		sink:   sink,
		logger: logger.Named("stock-service"),
	}
}

// ApplyOrder derives the direction from the order type and adjusts every line.
// Order types other than Purchase, Sale and Sales touch nothing.
func (s *StockService) ApplyOrder(ctx context.Context, order *entity.Order) ([]entity.Adjustment, error) {
	dir, ok := order.Type.Direction()
	if !ok {
		s.logger.Debug("order type ignored",
			zap.String("order_id", order.ID.String()),
			zap.String("order_type", string(order.Type)),
		)
		return nil, nil
	}

	results, err := s.AdjustLines(ctx, order.Lines, dir)
	for i := range results {
		results[i].OrderID = order.ID
	}
	s.record(ctx, results)
	return results, err
}

// AdjustLines applies each line in slice order. Lines addressed by item code
// go through a code lookup; lines addressed by record ID are adjusted directly.
// The first error stops the loop and is returned with the results so far.
func (s *StockService) AdjustLines(ctx context.Context, lines []entity.LineItem, dir entity.Direction) ([]entity.Adjustment, error) {
	results := make([]entity.Adjustment, 0, len(lines))

	for _, line := range lines {
		var (
			adj entity.Adjustment
			err error
		)
		if line.Item.ByCode() {
			adj, err = s.AdjustByCode(ctx, line.Item.Code, line.Quantity, dir)
		} else {
			adj, err = s.AdjustItem(ctx, line.Item.ID, line.Quantity, dir)
		}
		if err != nil {
			return results, err
		}
		results = append(results, adj)
	}

	return results, nil
}

// AdjustItem reads the item by record ID and writes back stock moved by quantity.
func (s *StockService) AdjustItem(ctx context.Context, itemID string, quantity float64, dir entity.Direction) (entity.Adjustment, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return entity.Adjustment{}, fmt.Errorf("fetching item %s: %w", itemID, err)
	}

	return s.write(ctx, entity.ItemRef{ID: itemID}, item, quantity, dir, 1)
}

// AdjustByCode looks the item up by item code and adjusts it only when the
// lookup returns exactly one record. Zero or several matches are reported as
// skipped, not as errors. A blank code is skipped without a lookup.
func (s *StockService) AdjustByCode(ctx context.Context, code string, quantity float64, dir entity.Direction) (entity.Adjustment, error) {
	ref := entity.ItemRef{Code: code, LookupByCode: true}

	if strings.TrimSpace(code) == "" {
		s.logger.Debug("line has no item code")
		return entity.Adjustment{
			Item:      ref,
			Direction: dir,
			Quantity:  quantity,
			Outcome:   entity.OutcomeSkippedNotFound,
		}, nil
	}

	matches, err := s.items.FindItemsByCode(ctx, code)
	if err != nil {
		return entity.Adjustment{}, fmt.Errorf("looking up item code %q: %w", code, err)
	}

	switch len(matches) {
	case 1:
		return s.write(ctx, ref, matches[0], quantity, dir, 1)
	case 0:
		s.logger.Debug("no item matches code", zap.String("item_code", code))
		return entity.Adjustment{
			Item:      ref,
			Direction: dir,
			Quantity:  quantity,
			Outcome:   entity.OutcomeSkippedNotFound,
		}, nil
	default:
		s.logger.Debug("item code is ambiguous",
			zap.String("item_code", code),
			zap.Int("matches", len(matches)),
		)
		return entity.Adjustment{
			Item:      ref,
			Direction: dir,
			Quantity:  quantity,
			Matches:   len(matches),
			Outcome:   entity.OutcomeSkippedAmbiguous,
		}, nil
	}
}

func (s *StockService) write(
	ctx context.Context,
	ref entity.ItemRef,
	item *entity.Item,
	quantity float64,
	dir entity.Direction,
	matches int,
) (entity.Adjustment, error) {
	after := dir.Apply(item.Stock, quantity)

	if err := s.items.UpdateStock(ctx, item.ID, after); err != nil {
		return entity.Adjustment{}, fmt.Errorf("updating stock of item %s: %w", item.ID, err)
	}

	s.logger.Info("stock adjusted",
		zap.String("item_id", item.ID),
		zap.String("direction", string(dir)),
		zap.Float64("quantity", quantity),
		zap.Float64("before", item.Stock),
		zap.Float64("after", after),
	)

	return entity.Adjustment{
		Item:      ref,
		ItemID:    item.ID,
		Direction: dir,
		Quantity:  quantity,
		Before:    item.Stock,
		After:     after,
		Matches:   matches,
		Outcome:   entity.OutcomeUpdated,
	}, nil
}

func (s *StockService) record(ctx context.Context, results []entity.Adjustment) {
	if s.sink == nil {
		return
	}
	for _, adj := range results {
		if err := s.sink.Record(ctx, adj); err != nil {
			s.logger.Warn("failed to record adjustment",
				zap.String("sink", s.sink.Name()),
				zap.String("item", adj.Item.String()),
				zap.Error(err),
			)
		}
	}
}
