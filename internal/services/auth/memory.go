package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/berryair/concierge/pkg/domain"
)

// MemoryStore is an in-memory UserStore, safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]User // keyed by lowercased email
	nextID int
}

var _ UserStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User), nextID: 1}
}

// Create stores a new account. The uniqueness check and the insert happen
// under one lock, keeping email uniqueness atomic.
func (s *MemoryStore) Create(ctx context.Context, user User) (User, error) {
	key := strings.ToLower(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[key]; exists {
		return User{}, domain.ErrUserExists
	}
	user.ID = s.nextID
	s.nextID++
	s.users[key] = user
	return user, nil
}

// ByEmail resolves an account, returning domain.ErrInvalidCredentials on a
// miss so callers cannot distinguish unknown emails from wrong passwords.
func (s *MemoryStore) ByEmail(ctx context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

// ByID resolves an account by its numeric ID.
func (s *MemoryStore) ByID(ctx context.Context, id int) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, domain.ErrInvalidCredentials
}

// Update replaces an existing account record.
func (s *MemoryStore) Update(ctx context.Context, user User) error {
	key := strings.ToLower(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[key]; !ok {
		return domain.ErrInvalidCredentials
	}
	s.users[key] = user
	return nil
}
