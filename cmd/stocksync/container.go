package main

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	httphandler "github.com/ruudy-sib/stocksync/internal/adapter/primary/http"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/fanout"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/kafkaproducer"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/kintone"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/redisstore"
	"github.com/ruudy-sib/stocksync/internal/config"
	"github.com/ruudy-sib/stocksync/internal/domain/service"
	"github.com/ruudy-sib/stocksync/internal/observability"
	"github.com/ruudy-sib/stocksync/internal/port/primary"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

func buildContainer(ctx context.Context, cfg *config.Config) (*dig.Container, error) {
	c := dig.New()

	// --- Configuration ---
	if err := c.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}

	// --- Logger and metrics ---
	if err := c.Provide(newLogger); err != nil {
		return nil, err
	}
	if err := c.Provide(observability.NewMetrics); err != nil {
		return nil, err
	}

	// --- Secondary Adapters (infrastructure) ---

	// kintone REST client shared by both apps
	if err := c.Provide(kintone.NewClient); err != nil {
		return nil, err
	}
	if err := c.Provide(kintone.NewOrderRepository); err != nil {
		return nil, err
	}
	if err := c.Provide(kintone.NewItemRepository); err != nil {
		return nil, err
	}

	// Redis client, nil when the journal is disabled
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) (*goredis.Client, error) {
		if !cfg.JournalEnabled() {
			return nil, nil
		}
		return redisstore.NewClient(ctx, cfg, logger)
	}); err != nil {
		return nil, err
	}

	// Collect all health checks
	if err := c.Provide(func(client *goredis.Client) []secondary.HealthChecker {
		if client == nil {
			return nil
		}
		return []secondary.HealthChecker{redisstore.NewHealthCheck(client)}
	}); err != nil {
		return nil, err
	}

	// Adjustment sinks: metrics always, Redis journal and Kafka when configured
	if err := c.Provide(func(
		cfg *config.Config,
		client *goredis.Client,
		metrics *observability.Metrics,
		logger *zap.Logger,
	) *fanout.Fanout {
		sinks := []secondary.AdjustmentSink{metrics.Sink()}
		if client != nil {
			sinks = append(sinks, redisstore.NewJournal(client, cfg.JournalKey, cfg.JournalMaxLen, logger))
		}
		if cfg.EventsEnabled() {
			sinks = append(sinks, kafkaproducer.NewPublisher(cfg, logger))
		}
		return fanout.New(logger, sinks...)
	}); err != nil {
		return nil, err
	}

	if err := c.Provide(func(f *fanout.Fanout) secondary.AdjustmentSink {
		return f
	}); err != nil {
		return nil, err
	}

	// --- Domain Services ---

	if err := c.Provide(service.NewStockService); err != nil {
		return nil, err
	}
	if err := c.Provide(service.NewWebhookService); err != nil {
		return nil, err
	}

	// Bind concrete WebhookService to the primary port interface
	if err := c.Provide(func(s *service.WebhookService) primary.WebhookService {
		return s
	}); err != nil {
		return nil, err
	}

	// --- Primary Adapters ---

	if err := c.Provide(httphandler.NewRouter); err != nil {
		return nil, err
	}

	return c, nil
}
