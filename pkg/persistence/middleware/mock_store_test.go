package middleware_test

import (
	"context"

	"github.com/berryair/concierge/pkg/domain"
)

// mockStore keeps the exact snapshots handed to Save so tests can inspect
// what would hit the wire.
type mockStore struct {
	saved map[string]*domain.Snapshot
}

func newMockStore() *mockStore {
	return &mockStore{saved: make(map[string]*domain.Snapshot)}
}

func (s *mockStore) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	s.saved[sessionID] = snap
	return nil
}

func (s *mockStore) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	snap, ok := s.saved[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return snap, nil
}

func (s *mockStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.saved, sessionID)
	return nil
}

func (s *mockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.saved))
	for id := range s.saved {
		ids = append(ids, id)
	}
	return ids, nil
}
