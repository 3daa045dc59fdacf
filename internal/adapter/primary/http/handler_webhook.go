package http

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/port/primary"
)

const maxWebhookBodyBytes = 1 << 20

// WebhookHandler handles POST notifications from kintone.
type WebhookHandler struct {
	service primary.WebhookService
	logger  *zap.Logger
}

// NewWebhookHandler creates the webhook handler.
func NewWebhookHandler(service primary.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger.Named("webhook-handler"),
	}
}

// ServeHTTP answers 200 once the event has been handled, 400 when the body
// is not JSON, and 500 for anything else that fails.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondStatus(w, http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warn("failed to read webhook body", zap.Error(err))
		respondStatus(w, http.StatusBadRequest)
		return
	}
	if !json.Valid(body) {
		h.logger.Warn("webhook body is not valid JSON", zap.Int("size", len(body)))
		respondStatus(w, http.StatusBadRequest)
		return
	}

	event, err := decodeEvent(body)
	if err != nil {
		h.logger.Error("failed to decode webhook event", zap.Error(err))
		respondStatus(w, http.StatusInternalServerError)
		return
	}

	if _, err := h.service.HandleEvent(r.Context(), event); err != nil {
		h.logger.Error("failed to handle webhook event",
			zap.String("type", event.RawType),
			zap.String("record_id", event.RecordID.String()),
			zap.Error(err),
		)
		respondStatus(w, http.StatusInternalServerError)
		return
	}

	respondStatus(w, http.StatusOK)
}
