package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler handles GET /health requests.
type HealthHandler struct {
	checks []secondary.HealthChecker
}

// NewHealthHandler creates a health check handler with the given checkers.
func NewHealthHandler(checks []secondary.HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// ServeHTTP runs every check with its own deadline and answers 503 if any fails.
// kintone itself is not probed.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "healthy",
		Checks: make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK

	for _, check := range h.checks {
		if err := runCheck(r.Context(), check); err != nil {
			status = http.StatusServiceUnavailable
			resp.Status = "unhealthy"
			resp.Checks[check.Name()] = err.Error()
			continue
		}
		resp.Checks[check.Name()] = "ok"
	}

	respondJSON(w, status, resp)
}

func runCheck(ctx context.Context, check secondary.HealthChecker) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return check.Check(ctx)
}
