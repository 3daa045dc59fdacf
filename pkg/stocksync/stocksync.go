package stocksync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httphandler "github.com/ruudy-sib/stocksync/internal/adapter/primary/http"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/fanout"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/kafkaproducer"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/kintone"
	"github.com/ruudy-sib/stocksync/internal/adapter/secondary/redisstore"
	"github.com/ruudy-sib/stocksync/internal/config"
	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/domain/service"
	"github.com/ruudy-sib/stocksync/internal/domain/valueobject"
	"github.com/ruudy-sib/stocksync/internal/observability"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// ErrJournalDisabled is returned by Recent when no Redis address was configured.
var ErrJournalDisabled = errors.New("adjustment journal is disabled")

// JournalEntry is one adjustment as stored in the Redis journal.
type JournalEntry = redisstore.JournalEntry

// Receiver is the kintone order webhook receiver.
// It can be embedded in other Go applications, either mounted as an
// http.Handler or driven directly through HandleEvent.
type Receiver struct {
	webhooks    *service.WebhookService
	handler     http.Handler
	sinks       *fanout.Fanout
	journal     *redisstore.Journal
	redisClient *goredis.Client
	kintone     *kintone.Client
	logger      *zap.Logger
}

// Config holds configuration for the Receiver.
type Config struct {
	// kintone subdomain, e.g. "acme" for https://acme.kintone.com
	KintoneDomain string

	// BaseURL overrides the kintone origin (tests, proxies)
	BaseURL string

	// Order-tracking and item-master apps
	OrderAppID    string
	OrderAPIToken string
	ItemAppID     string
	ItemAPIToken  string

	// Timeout for each kintone call, 0 disables it
	Timeout time.Duration

	// Route mounted by Handler
	WebhookPath string

	// Requests per minute per client IP on the webhook route, 0 disables
	WebhookRateLimit int

	// Redis journal, disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JournalKey    string
	JournalMaxLen int64

	// Kafka adjustment events, disabled when KafkaBrokers is empty
	KafkaBrokers []string
	KafkaTopic   string

	// Logger (if nil, a production logger will be created)
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
// The kintone domain, app IDs and tokens must still be set.
func DefaultConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		WebhookPath:   "/webhook",
		JournalKey:    "stocksync:adjustments",
		JournalMaxLen: 1000,
		KafkaTopic:    "stock-adjustments",
	}
}

// New creates a Receiver with the given configuration.
// The caller's Config is not modified.
func New(cfg *Config) (*Receiver, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		c := *cfg
		cfg = &c
	}

	logger := cfg.Logger
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
	}

	defaults := DefaultConfig()
	if cfg.WebhookPath == "" {
		cfg.WebhookPath = defaults.WebhookPath
	}
	if cfg.JournalKey == "" {
		cfg.JournalKey = defaults.JournalKey
	}
	if cfg.JournalMaxLen == 0 {
		cfg.JournalMaxLen = defaults.JournalMaxLen
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = defaults.KafkaTopic
	}

	// Convert to internal config format
	internalCfg := &config.Config{
		WebhookPath:      cfg.WebhookPath,
		WebhookRateLimit: cfg.WebhookRateLimit,
		KintoneDomain:    cfg.KintoneDomain,
		KintoneBaseURL:   cfg.BaseURL,
		KintoneTimeout:   cfg.Timeout,
		OrderAppID:       cfg.OrderAppID,
		OrderAPIToken:    cfg.OrderAPIToken,
		ItemAppID:        cfg.ItemAppID,
		ItemAPIToken:     cfg.ItemAPIToken,
		RedisAddr:        cfg.RedisAddr,
		RedisPassword:    cfg.RedisPassword,
		RedisDB:          cfg.RedisDB,
		JournalKey:       cfg.JournalKey,
		JournalMaxLen:    cfg.JournalMaxLen,
		KafkaBrokers:     cfg.KafkaBrokers,
		KafkaTopic:       cfg.KafkaTopic,
	}
	if err := internalCfg.Validate(); err != nil {
		return nil, err
	}

	r := &Receiver{logger: logger}
	metrics := observability.NewMetrics()
	sinks := []secondary.AdjustmentSink{metrics.Sink()}
	var checks []secondary.HealthChecker

	if internalCfg.JournalEnabled() {
		client, err := redisstore.NewClient(context.Background(), internalCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("creating redis client: %w", err)
		}
		r.redisClient = client
		r.journal = redisstore.NewJournal(client, internalCfg.JournalKey, internalCfg.JournalMaxLen, logger)
		sinks = append(sinks, r.journal)
		checks = append(checks, redisstore.NewHealthCheck(client))
	}
	if internalCfg.EventsEnabled() {
		sinks = append(sinks, kafkaproducer.NewPublisher(internalCfg, logger))
	}
	r.sinks = fanout.New(logger, sinks...)

	r.kintone = kintone.NewClient(internalCfg, logger)
	stock := service.NewStockService(kintone.NewItemRepository(r.kintone, internalCfg), r.sinks, logger)
	r.webhooks = service.NewWebhookService(kintone.NewOrderRepository(r.kintone, internalCfg), stock, logger)
	r.handler = httphandler.NewRouter(internalCfg, r.webhooks, checks, metrics, logger)

	return r, nil
}

// Handler returns the HTTP handler serving the webhook, /health and /metrics.
func (r *Receiver) Handler() http.Handler {
	return r.handler
}

// HandleEvent applies one event without going through HTTP.
func (r *Receiver) HandleEvent(ctx context.Context, event Event) ([]Adjustment, error) {
	domainEvent, err := event.toDomain()
	if err != nil {
		return nil, err
	}

	results, err := r.webhooks.HandleEvent(ctx, domainEvent)
	adjustments := make([]Adjustment, 0, len(results))
	for _, res := range results {
		adjustments = append(adjustments, fromDomain(res))
	}
	return adjustments, err
}

// Recent returns up to limit journaled adjustments, newest first.
func (r *Receiver) Recent(ctx context.Context, limit int64) ([]JournalEntry, error) {
	if r.journal == nil {
		return nil, ErrJournalDisabled
	}
	return r.journal.Recent(ctx, limit)
}

// Close gracefully shuts down the Receiver and releases resources.
func (r *Receiver) Close() error {
	r.logger.Info("shutting down stocksync receiver")

	var errs []error

	if err := r.sinks.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing sinks: %w", err))
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing redis client: %w", err))
		}
	}

	_ = r.kintone.Close()

	return errors.Join(errs...)
}

// EventKind is the kind of change an order notification reports.
type EventKind string

const (
	// EventCreate reports a new order record
	EventCreate EventKind = "create"

	// EventUpdate reports an edited order record
	EventUpdate EventKind = "update"

	// EventDelete reports a removed order record; stock is left unchanged
	EventDelete EventKind = "delete"
)

// Event is an order notification.
type Event struct {
	// Kind is create, update or delete
	Kind EventKind

	// OrderID is the order record's ID in the order-tracking app
	OrderID string
}

func (e Event) toDomain() (entity.Event, error) {
	event := entity.Event{Kind: entity.EventKind(e.Kind), RawType: string(e.Kind)}
	switch e.Kind {
	case EventCreate, EventUpdate, EventDelete:
	default:
		event.Kind = entity.EventKindUnknown
	}

	if e.OrderID != "" {
		id, err := valueobject.NewRecordID(e.OrderID)
		if err != nil {
			return entity.Event{}, err
		}
		event.RecordID = id
	}
	return event, nil
}

// Adjustment reports what happened to one order line.
type Adjustment struct {
	OrderID   string
	ItemID    string
	ItemCode  string
	Direction string
	Quantity  float64
	Before    float64
	After     float64
	Matches   int

	// Outcome is "updated", "skipped_not_found" or "skipped_ambiguous"
	Outcome string
}

func fromDomain(a entity.Adjustment) Adjustment {
	itemID := a.ItemID
	if itemID == "" {
		itemID = a.Item.ID
	}
	return Adjustment{
		OrderID:   a.OrderID.String(),
		ItemID:    itemID,
		ItemCode:  a.Item.Code,
		Direction: string(a.Direction),
		Quantity:  a.Quantity,
		Before:    a.Before,
		After:     a.After,
		Matches:   a.Matches,
		Outcome:   string(a.Outcome),
	}
}
