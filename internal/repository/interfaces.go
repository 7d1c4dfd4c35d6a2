package repository

import (
	"context"
	"time"

	"github.com/vytor/emojiabc/internal/models"
)

// SessionRepository stores one SessionState per opaque session id.
type SessionRepository interface {
	// Get returns nil, nil when the session is unknown.
	Get(ctx context.Context, id string) (*models.SessionState, error)
	// Save replaces the stored state and marks the session as active now.
	Save(ctx context.Context, id string, state models.SessionState) error
	Delete(ctx context.Context, id string) error
	// DeleteIdleSince removes sessions last saved before cutoff and returns
	// how many were removed.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}
