package worker

import (
	"context"
	"time"
)

// SessionPruner removes sessions that have been idle longer than ttl. It is
// declared here so this package does not import services.
type SessionPruner interface {
	PruneIdleSessions(ctx context.Context, ttl time.Duration) (int64, error)
}
