package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/domain"
	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// WebhookService dispatches normalised webhook events: it re-fetches the
// order named by the event and hands it to the StockService.
type WebhookService struct {
	orders secondary.OrderReader
	stock  *StockService
	logger *zap.Logger
}

// NewWebhookService creates a WebhookService with its dependencies injected.
func NewWebhookService(
	orders secondary.OrderReader,
	stock *StockService,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		orders: orders,
		stock:  stock,
		logger: logger.Named("webhook-service"),
	}
}

// HandleEvent processes one event. Create and update events adjust stock;
// delete events are acknowledged without touching stock, and unknown event
// types are ignored.
func (s *WebhookService) HandleEvent(ctx context.Context, event entity.Event) ([]entity.Adjustment, error) {
	switch event.Kind {
	case entity.EventKindCreate:
		return s.applyOrder(ctx, event, "order placed")
	case entity.EventKindUpdate:
		return s.applyOrder(ctx, event, "order updated")
	case entity.EventKindDelete:
		s.logger.Info("order deleted, stock left unchanged",
			zap.String("record_id", event.RecordID.String()),
			zap.String("source", string(event.Source)),
		)
		return nil, nil
	default:
		s.logger.Debug("event type ignored",
			zap.String("type", event.RawType),
			zap.String("source", string(event.Source)),
		)
		return nil, nil
	}
}

func (s *WebhookService) applyOrder(ctx context.Context, event entity.Event, msg string) ([]entity.Adjustment, error) {
	if event.RecordID.IsZero() {
		return nil, fmt.Errorf("%w: %s event without record id", domain.ErrMalformedEvent, event.Kind)
	}

	order, err := s.orders.GetOrder(ctx, event.RecordID)
	if err != nil {
		return nil, fmt.Errorf("fetching order %s: %w", event.RecordID, err)
	}

	results, err := s.stock.ApplyOrder(ctx, order)
	if err != nil {
		return results, fmt.Errorf("adjusting stock for order %s: %w", order.ID, err)
	}

	s.logger.Info(msg, orderLogFields(order, results)...)
	return results, nil
}

func orderLogFields(order *entity.Order, results []entity.Adjustment) []zap.Field {
	counts := entity.CountOutcomes(results)
	return []zap.Field{
		zap.String("order_id", order.ID.String()),
		zap.String("order_type", string(order.Type)),
		zap.Int("lines", len(order.Lines)),
		zap.Int("updated", counts[entity.OutcomeUpdated]),
		zap.Int("skipped_not_found", counts[entity.OutcomeSkippedNotFound]),
		zap.Int("skipped_ambiguous", counts[entity.OutcomeSkippedAmbiguous]),
	}
}
