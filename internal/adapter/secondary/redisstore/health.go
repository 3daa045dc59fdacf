package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/ruudy-sib/stocksync/internal/port/secondary"
)

// HealthCheck implements secondary.HealthChecker for the journal's Redis.
type HealthCheck struct {
	client *redis.Client
}

// NewHealthCheck creates a Redis health checker.
func NewHealthCheck(client *redis.Client) secondary.HealthChecker {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Name() string {
	return "redis"
}

// Check pings Redis.
func (h *HealthCheck) Check(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
