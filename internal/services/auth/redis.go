package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	backend "github.com/redis/go-redis/v9"

	"github.com/berryair/concierge/pkg/domain"
)

const defaultUserPrefix = "concierge:auth:"

// RedisStore is a Redis-backed UserStore. Accounts are stored as JSON values
// keyed by ID, with a lowercased email index alongside. Shared across
// replicas, it gives every instance the same account base.
type RedisStore struct {
	client *backend.Client
	prefix string
}

var _ UserStore = (*RedisStore)(nil)

// RedisOption configures the RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix overrides the key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// NewRedisStore creates a store over an existing client.
func NewRedisStore(client *backend.Client, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: defaultUserPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *RedisStore) userKey(id int) string {
	return fmt.Sprintf("%suser:%d", s.prefix, id)
}

func (s *RedisStore) emailKey(email string) string {
	return s.prefix + "email:" + strings.ToLower(email)
}

func (s *RedisStore) counterKey() string {
	return s.prefix + "next_id"
}

// Create stores a new account. SETNX on the email index makes the uniqueness
// check atomic; a lost race leaves only a burned ID behind.
func (s *RedisStore) Create(ctx context.Context, user User) (User, error) {
	id, err := s.client.Incr(ctx, s.counterKey()).Result()
	if err != nil {
		return User{}, fmt.Errorf("allocating user id: %w", err)
	}
	user.ID = int(id)

	claimed, err := s.client.SetNX(ctx, s.emailKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return User{}, fmt.Errorf("claiming email: %w", err)
	}
	if !claimed {
		return User{}, domain.ErrUserExists
	}

	if err := s.writeUser(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *RedisStore) ByEmail(ctx context.Context, email string) (User, error) {
	id, err := s.client.Get(ctx, s.emailKey(email)).Int()
	if errors.Is(err, backend.Nil) {
		return User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("resolving email: %w", err)
	}
	return s.ByID(ctx, id)
}

func (s *RedisStore) ByID(ctx context.Context, id int) (User, error) {
	raw, err := s.client.Get(ctx, s.userKey(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("loading user: %w", err)
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return User{}, fmt.Errorf("decoding user: %w", err)
	}
	return user, nil
}

// Update replaces an existing account record.
func (s *RedisStore) Update(ctx context.Context, user User) error {
	exists, err := s.client.Exists(ctx, s.userKey(user.ID)).Result()
	if err != nil {
		return fmt.Errorf("checking user: %w", err)
	}
	if exists == 0 {
		return domain.ErrInvalidCredentials
	}
	return s.writeUser(ctx, user)
}

func (s *RedisStore) writeUser(ctx context.Context, user User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.client.Set(ctx, s.userKey(user.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("storing user: %w", err)
	}
	return nil
}
