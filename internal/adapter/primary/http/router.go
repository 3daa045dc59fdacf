package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/config"
	"github.com/ruudy-sib/stocksync/internal/observability"
	"github.com/ruudy-sib/stocksync/internal/port/primary"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// NewRouter creates a chi router with the webhook, health and metrics routes.
func NewRouter(
	cfg *config.Config,
	webhookService primary.WebhookService,
	healthChecks []secondary.HealthChecker,
	metrics *observability.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(accessLog(logger.Named("http")))
	r.Use(metrics.Middleware)
	r.Use(chimw.Recoverer)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondStatus(w, http.StatusMethodNotAllowed)
	})

	webhook := NewWebhookHandler(webhookService, logger)
	r.Group(func(r chi.Router) {
		if cfg.WebhookRateLimit > 0 {
			r.Use(httprate.LimitByIP(cfg.WebhookRateLimit, time.Minute))
		}
		r.Method(http.MethodPost, cfg.WebhookPath, webhook)
	})

	r.Method(http.MethodGet, "/health", NewHealthHandler(healthChecks))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
