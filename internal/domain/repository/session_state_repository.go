package repository

import (
	"context"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
)

// SessionStateRepository defines the interface for persisted session
// snapshots. Each (session, store) pair holds at most one payload.
type SessionStateRepository interface {
	// Get retrieves the snapshot for a session and store key, or nil when
	// no snapshot exists
	Get(ctx context.Context, sessionKey, storeKey string) (*entity.SessionState, error)

	// Put creates or replaces the snapshot for a session and store key
	Put(ctx context.Context, sessionKey, storeKey, payload string) error

	// Delete removes the snapshot for a session and store key; absent
	// snapshots are a no-op
	Delete(ctx context.Context, sessionKey, storeKey string) error

	// DeleteSession removes every snapshot belonging to a session
	DeleteSession(ctx context.Context, sessionKey string) error
}
