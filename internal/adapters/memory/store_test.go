package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berryair/concierge/internal/adapters/memory"
	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.New())
}

func TestMemoryStore_LoadIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, store.Save(ctx, "s1", &domain.Snapshot{
		Intent:  domain.IntentBooking,
		Context: map[string]any{"origin": "London"},
	}))

	first, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	first.Context["origin"] = "Paris"

	second, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "London", second.Context["origin"])
}
