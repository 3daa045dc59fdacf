package http

import (
	"context"

	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// mockWebhookService implements primary.WebhookService for testing.
type mockWebhookService struct {
	err     error
	panics  bool
	events  []entity.Event
	results []entity.Adjustment
}

func (m *mockWebhookService) HandleEvent(_ context.Context, event entity.Event) ([]entity.Adjustment, error) {
	m.events = append(m.events, event)
	if m.panics {
		panic("boom")
	}
	return m.results, m.err
}

// mockHealthCheck is a test double for health checks.
type mockHealthCheck struct {
	name string
	err  error
}

func (m mockHealthCheck) Name() string {
	return m.name
}

func (m mockHealthCheck) Check(_ context.Context) error {
	return m.err
}

// Compile-time interface assertion
var _ secondary.HealthChecker = mockHealthCheck{}

// toHealthCheckers converts mocks to a slice of the interface.
func toHealthCheckers(checks []mockHealthCheck) []secondary.HealthChecker {
	if len(checks) == 0 {
		return nil
	}
	result := make([]secondary.HealthChecker, len(checks))
	for i, c := range checks {
		result[i] = c
	}
	return result
}
