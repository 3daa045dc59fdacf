package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/domain"
	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/domain/valueobject"
)

func testOrder() *entity.Order {
	return &entity.Order{
		Type:  entity.OrderTypePurchase,
		Lines: []entity.LineItem{{Item: entity.ItemRef{ID: "7"}, Quantity: 5}},
	}
}

func TestWebhookService_HandleEvent(t *testing.T) {
	tests := []struct {
		name          string
		event         entity.Event
		fetchErr      error
		wantErr       error
		wantFetches   int
		wantUpdates   int
		wantResultLen int
	}{
		{
			name:          "create fetches order and adjusts stock",
			event:         entity.Event{Kind: entity.EventKindCreate, RecordID: mustRecordID("42")},
			wantFetches:   1,
			wantUpdates:   1,
			wantResultLen: 1,
		},
		{
			name:          "update fetches order and adjusts stock",
			event:         entity.Event{Kind: entity.EventKindUpdate, RecordID: mustRecordID("42")},
			wantFetches:   1,
			wantUpdates:   1,
			wantResultLen: 1,
		},
		{
			name:  "delete touches nothing",
			event: entity.Event{Kind: entity.EventKindDelete, RecordID: mustRecordID("42")},
		},
		{
			name:  "delete without record id touches nothing",
			event: entity.Event{Kind: entity.EventKindDelete},
		},
		{
			name:  "unknown type is ignored",
			event: entity.Event{Kind: entity.EventKindUnknown, RawType: "APPROVAL"},
		},
		{
			name:    "create without record id is malformed",
			event:   entity.Event{Kind: entity.EventKindCreate, RecordID: valueobject.RecordID{}},
			wantErr: domain.ErrMalformedEvent,
		},
		{
			name:        "order fetch failure is returned",
			event:       entity.Event{Kind: entity.EventKindCreate, RecordID: mustRecordID("42")},
			fetchErr:    domain.ErrUpstream,
			wantErr:     domain.ErrUpstream,
			wantFetches: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderReader{order: testOrder(), err: tt.fetchErr}
			items := newMockItemStore(&entity.Item{ID: "7", Stock: 10})
			stock := NewStockService(items, nil, zap.NewNop())
			svc := NewWebhookService(orders, stock, zap.NewNop())

			results, err := svc.HandleEvent(context.Background(), tt.event)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error wrapping %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(orders.calls) != tt.wantFetches {
				t.Fatalf("expected %d order fetches, got %d", tt.wantFetches, len(orders.calls))
			}
			if len(items.updateCall) != tt.wantUpdates {
				t.Fatalf("expected %d item updates, got %d", tt.wantUpdates, len(items.updateCall))
			}
			if len(results) != tt.wantResultLen {
				t.Fatalf("expected %d results, got %d", tt.wantResultLen, len(results))
			}
		})
	}
}

func TestWebhookService_HandleEvent_deleteMakesNoItemCalls(t *testing.T) {
	orders := &mockOrderReader{order: testOrder()}
	items := newMockItemStore(&entity.Item{ID: "7", Stock: 10})
	svc := NewWebhookService(orders, NewStockService(items, nil, zap.NewNop()), zap.NewNop())

	if _, err := svc.HandleEvent(context.Background(), entity.Event{Kind: entity.EventKindDelete, RecordID: mustRecordID("42")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items.getCalls)+len(items.findCalls)+len(items.updateCall) != 0 {
		t.Fatalf("expected no item-master calls, got get=%v find=%v update=%v",
			items.getCalls, items.findCalls, items.updateCall)
	}
}
