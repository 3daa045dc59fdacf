package fanout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// Fanout delivers each adjustment to every configured sink.
// A failing sink does not stop delivery to the others.
type Fanout struct {
	sinks  []secondary.AdjustmentSink
	logger *zap.Logger
}

// New creates a Fanout over the given sinks. Nil sinks are ignored.
func New(logger *zap.Logger, sinks ...secondary.AdjustmentSink) *Fanout {
	f := &Fanout{logger: logger.Named("adjustment-fanout")}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Name() string {
	return "fanout"
}

// Sinks returns the names of the sinks in delivery order.
func (f *Fanout) Sinks() []string {
	names := make([]string, 0, len(f.sinks))
	for _, s := range f.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Record forwards the adjustment to all sinks and joins their errors.
func (f *Fanout) Record(ctx context.Context, adj entity.Adjustment) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Record(ctx, adj); err != nil {
			f.logger.Debug("sink rejected adjustment",
				zap.String("sink", s.Name()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Close closes all sinks.
func (f *Fanout) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
