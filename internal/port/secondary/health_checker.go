package secondary

import "context"

// HealthChecker reports on one backing service the receiver depends on,
// such as the Redis adjustment journal.
type HealthChecker interface {
	// Name is the key the result is reported under on /health.
	Name() string

	// Check returns nil while the dependency is reachable.
	Check(ctx context.Context) error
}
