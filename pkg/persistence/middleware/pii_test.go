package middleware_test

import (
	"context"
	"testing"

	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/persistence/middleware"
)

func TestPIIMiddleware_MasksMatchingKeys(t *testing.T) {
	underlyingStore := newMockStore()
	mw := middleware.NewPIIMiddleware([]string{"(?i)email", "(?i)password"})
	store := mw(underlyingStore)

	ctx := context.Background()
	snap := bookingSnapshot()
	snap.Context["contact_email"] = "alex@example.com"
	snap.Context["nested"] = map[string]any{"password": "pw", "city": "Paris"}

	if err := store.Save(ctx, "s1", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, _ := underlyingStore.Load(ctx, "s1")
	if stored.Context["contact_email"] != "***" {
		t.Errorf("email key must be masked, got %v", stored.Context["contact_email"])
	}
	nested := stored.Context["nested"].(map[string]any)
	if nested["password"] != "***" {
		t.Errorf("nested password must be masked, got %v", nested["password"])
	}
	if nested["city"] != "Paris" {
		t.Errorf("non-matching keys must pass through, got %v", nested["city"])
	}
	if stored.Context["origin"] != "London" {
		t.Errorf("non-matching keys must pass through, got %v", stored.Context["origin"])
	}
}

func TestPIIMiddleware_MasksAuthCredentials(t *testing.T) {
	underlyingStore := newMockStore()
	store := middleware.NewPIIMiddleware([]string{"(?i)email"})(underlyingStore)

	snap := bookingSnapshot()
	if err := store.Save(context.Background(), "s1", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, _ := underlyingStore.Load(context.Background(), "s1")
	if stored.Auth.Password != "***" {
		t.Errorf("in-flight password must always be masked, got %q", stored.Auth.Password)
	}
	if stored.Auth.Email != "***" {
		t.Errorf("email must be masked when a pattern matches, got %q", stored.Auth.Email)
	}
}

func TestPIIMiddleware_DoesNotMutateOriginal(t *testing.T) {
	underlyingStore := newMockStore()
	store := middleware.NewPIIMiddleware([]string{"(?i)password"})(underlyingStore)

	snap := bookingSnapshot()
	if err := store.Save(context.Background(), "s1", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if snap.Auth.Password != "hunter2" {
		t.Errorf("in-memory snapshot must stay intact, got %q", snap.Auth.Password)
	}
	if snap.Context["origin"] != "London" {
		t.Errorf("in-memory context must stay intact, got %v", snap.Context["origin"])
	}
}

func TestPIIMiddleware_LoadPassesThrough(t *testing.T) {
	underlyingStore := newMockStore()
	store := middleware.NewPIIMiddleware([]string{"(?i)password"})(underlyingStore)

	if _, err := store.Load(context.Background(), "missing"); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
