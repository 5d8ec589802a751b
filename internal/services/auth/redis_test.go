package auth_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berryair/concierge/internal/services/auth"
	"github.com/berryair/concierge/pkg/domain"
)

func newTestStore(t *testing.T) *auth.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return auth.NewRedisStore(client)
}

func TestRedisStore_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Create(ctx, auth.User{
		Name:         "Alice",
		Email:        "Alice@Example.com",
		PasswordHash: []byte("$2a$10$fakehash"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	// Lookup is case-insensitive on email.
	byEmail, err := store.ByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "Alice", byEmail.Name)
	assert.Equal(t, []byte("$2a$10$fakehash"), byEmail.PasswordHash)

	byID, err := store.ByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, byEmail, byID)
}

func TestRedisStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Create(ctx, auth.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = store.Create(ctx, auth.User{Name: "Imposter", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestRedisStore_MissesAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = store.ByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRedisStore_Update(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Create(ctx, auth.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	class := domain.ClassFirst
	created.PreferredClass = &class
	require.NoError(t, store.Update(ctx, created))

	loaded, err := store.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.PreferredClass)
	assert.Equal(t, domain.ClassFirst, *loaded.PreferredClass)

	// Updating an account that was never created fails.
	assert.ErrorIs(t, store.Update(ctx, auth.User{ID: 99}), domain.ErrInvalidCredentials)
}

func TestRedisStore_BackendFullFlow(t *testing.T) {
	// The Service works unchanged over the redis-backed store.
	ctx := context.Background()
	store := newTestStore(t)

	first := auth.NewService(store)
	ok, msg := first.Register(ctx, "Alice", "alice@example.com", "s3cret")
	require.True(t, ok, msg)

	second := auth.NewService(store)
	ok, _ = second.Login(ctx, "alice@example.com", "s3cret")
	assert.True(t, ok)

	ok, _ = second.Login(ctx, "alice@example.com", "wrong")
	assert.False(t, ok)
}
