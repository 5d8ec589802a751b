package ports

import (
	"context"

	"github.com/berryair/concierge/pkg/domain"
)

// SessionStore defines the interface for persisting conversation snapshots.
// This allows for durable conversations, enabling "Stop & Resume" workflows.
type SessionStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all persisted sessions.
	List(ctx context.Context) ([]string, error)
}
