package stocksync

import (
	"go.uber.org/dig"
	"go.uber.org/zap"
)

// DIParams holds dependencies needed to create a Receiver via DI.
type DIParams struct {
	dig.In

	Logger *zap.Logger
	Config *Config `optional:"true"`
}

// ProvideReceiver creates a Receiver for dependency injection.
// Use this when integrating stocksync into an app that uses uber-go/dig.
//
// Example:
//
//	container := dig.New()
//	container.Provide(func() *stocksync.Config { return cfg })
//	container.Provide(stocksync.ProvideReceiver)
//	container.Invoke(func(r *stocksync.Receiver) {
//	    mux.Handle("/", r.Handler())
//	})
func ProvideReceiver(params DIParams) (*Receiver, error) {
	cfg := DefaultConfig()
	if params.Config != nil {
		c := *params.Config
		cfg = &c
	}

	// Use the provided logger
	cfg.Logger = params.Logger

	return New(cfg)
}

// RegisterWithContainer registers the Receiver with a dig container.
func RegisterWithContainer(container *dig.Container) error {
	return container.Provide(ProvideReceiver)
}
