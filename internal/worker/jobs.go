package worker

import (
	"context"
	"time"

	"github.com/vytor/emojiabc/internal/logger"
)

// PruneSessionsJob deletes sessions nobody has touched within TTL.
type PruneSessionsJob struct {
	Sessions SessionPruner
	TTL      time.Duration
}

func (j *PruneSessionsJob) Name() string { return "prune_sessions" }

func (j *PruneSessionsJob) Run(ctx context.Context) error {
	removed, err := j.Sessions.PruneIdleSessions(ctx, j.TTL)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("removed %d sessions idle for more than %v", removed, j.TTL)
	return nil
}
