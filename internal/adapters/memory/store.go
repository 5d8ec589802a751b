// Package memory provides an in-process session store, the default for
// single-instance deployments and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

// Store implements ports.SessionStore in process memory. Snapshots are held
// as JSON so loads behave exactly like the durable stores, including the
// map[string]any shape of restored context values.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

var _ ports.SessionStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{snapshots: make(map[string][]byte)}
}

// Save stores the snapshot.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[sessionID] = data
	return nil
}

// Load returns the stored snapshot.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.snapshots[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the session. Deleting an unknown session is a no-op.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snapshots, sessionID)
	return nil
}

// List returns all stored session IDs in no particular order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}
