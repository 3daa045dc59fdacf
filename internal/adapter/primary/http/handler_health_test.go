package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		checks         []mockHealthCheck
		wantStatusCode int
		wantStatus     string
	}{
		{
			name:           "no checks configured",
			wantStatusCode: http.StatusOK,
			wantStatus:     "healthy",
		},
		{
			name:           "all checks pass",
			checks:         []mockHealthCheck{{name: "redis"}},
			wantStatusCode: http.StatusOK,
			wantStatus:     "healthy",
		},
		{
			name:           "a check fails",
			checks:         []mockHealthCheck{{name: "redis", err: errors.New("connection refused")}},
			wantStatusCode: http.StatusServiceUnavailable,
			wantStatus:     "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(toHealthCheckers(tt.checks))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rr.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d", tt.wantStatusCode, rr.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, resp.Status)
			}
			for _, c := range tt.checks {
				want := "ok"
				if c.err != nil {
					want = c.err.Error()
				}
				if resp.Checks[c.name] != want {
					t.Fatalf("check %s: expected %q, got %q", c.name, want, resp.Checks[c.name])
				}
			}
		})
	}
}
