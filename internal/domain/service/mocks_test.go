package service

import (
	"context"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/domain/valueobject"
)

// mockItemStore implements secondary.ItemStore over an in-memory item set.
type mockItemStore struct {
	items      map[string]*entity.Item
	byCode     map[string][]*entity.Item
	getErr     error
	findErr    error
	updateErr  error
	getCalls   []string
	findCalls  []string
	updateCall []updateCall
}

type updateCall struct {
	ID    string
	Stock float64
}

func newMockItemStore(items ...*entity.Item) *mockItemStore {
	m := &mockItemStore{
		items:  make(map[string]*entity.Item),
		byCode: make(map[string][]*entity.Item),
	}
	for _, it := range items {
		m.items[it.ID] = it
		if it.Code != "" {
			m.byCode[it.Code] = append(m.byCode[it.Code], it)
		}
	}
	return m
}

func (m *mockItemStore) GetItem(_ context.Context, id string) (*entity.Item, error) {
	m.getCalls = append(m.getCalls, id)
	if m.getErr != nil {
		return nil, m.getErr
	}
	it, ok := m.items[id]
	if !ok {
		return &entity.Item{ID: id}, nil
	}
	cp := *it
	return &cp, nil
}

func (m *mockItemStore) FindItemsByCode(_ context.Context, code string) ([]*entity.Item, error) {
	m.findCalls = append(m.findCalls, code)
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*entity.Item
	for _, it := range m.byCode[code] {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockItemStore) UpdateStock(_ context.Context, id string, stock float64) error {
	m.updateCall = append(m.updateCall, updateCall{ID: id, Stock: stock})
	if m.updateErr != nil {
		return m.updateErr
	}
	if it, ok := m.items[id]; ok {
		it.Stock = stock
	}
	return nil
}

// mockOrderReader implements secondary.OrderReader for testing.
type mockOrderReader struct {
	order *entity.Order
	err   error
	calls []valueobject.RecordID
}

func (m *mockOrderReader) GetOrder(_ context.Context, id valueobject.RecordID) (*entity.Order, error) {
	m.calls = append(m.calls, id)
	if m.err != nil {
		return nil, m.err
	}
	o := *m.order
	o.ID = id
	return &o, nil
}

// mockSink implements secondary.AdjustmentSink for testing.
type mockSink struct {
	err      error
	recorded []entity.Adjustment
}

func (m *mockSink) Name() string { return "mock" }

func (m *mockSink) Record(_ context.Context, adj entity.Adjustment) error {
	m.recorded = append(m.recorded, adj)
	return m.err
}

func (m *mockSink) Close() error { return nil }

func mustRecordID(s string) valueobject.RecordID {
	id, err := valueobject.NewRecordID(s)
	if err != nil {
		panic(err)
	}
	return id
}
