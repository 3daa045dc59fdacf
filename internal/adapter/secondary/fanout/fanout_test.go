package fanout

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
)

type mockSink struct {
	name     string
	err      error
	closeErr error
	recorded []entity.Adjustment
	closed   bool
}

func (m *mockSink) Name() string { return m.name }

func (m *mockSink) Record(_ context.Context, adj entity.Adjustment) error {
	m.recorded = append(m.recorded, adj)
	return m.err
}

func (m *mockSink) Close() error {
	m.closed = true
	return m.closeErr
}

func TestFanout_Record(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		sinks   []*mockSink
		wantErr bool
	}{
		{name: "no sinks"},
		{name: "all succeed", sinks: []*mockSink{{name: "a"}, {name: "b"}}},
		{name: "first fails, second still receives", sinks: []*mockSink{{name: "a", err: boom}, {name: "b"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sinks []*mockSink
			f := New(zap.NewNop())
			for _, s := range tt.sinks {
				sinks = append(sinks, s)
				f.sinks = append(f.sinks, s)
			}

			err := f.Record(context.Background(), entity.Adjustment{ItemID: "7", Outcome: entity.OutcomeUpdated})
			if tt.wantErr {
				if !errors.Is(err, boom) {
					t.Fatalf("expected joined sink error, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, s := range sinks {
				if len(s.recorded) != 1 {
					t.Fatalf("sink %s: expected 1 adjustment, got %d", s.name, len(s.recorded))
				}
			}
		})
	}
}

func TestFanout_NewSkipsNilSinks(t *testing.T) {
	a := &mockSink{name: "a"}
	f := New(zap.NewNop(), nil, a, nil)

	names := f.Sinks()
	if len(names) != 1 || names[0] != "a" {
		t.Fatalf("expected only sink a, got %v", names)
	}
}

func TestFanout_CloseClosesAll(t *testing.T) {
	boom := errors.New("close failed")
	a := &mockSink{name: "a", closeErr: boom}
	b := &mockSink{name: "b"}
	f := New(zap.NewNop(), a, b)

	err := f.Close()
	if !errors.Is(err, boom) {
		t.Fatalf("expected close error, got %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatal("expected every sink to be closed")
	}
}
