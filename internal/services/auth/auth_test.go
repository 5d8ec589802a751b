package auth

import (
	"context"
	"testing"

	"github.com/berryair/concierge/pkg/domain"
)

func TestService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	alice := NewService(store)
	ok, msg := alice.Register(ctx, "Alice", "alice@example.com", "s3cret")
	if !ok {
		t.Fatalf("register failed: %s", msg)
	}
	if !alice.IsAuthenticated() {
		t.Error("registration should sign the user in")
	}
	user, _ := alice.CurrentUser()
	if user.Name != "Alice" || user.ID == 0 {
		t.Errorf("unexpected current user: %+v", user)
	}

	// A second conversation logs in against the shared store.
	second := NewService(store)
	ok, msg = second.Login(ctx, "alice@example.com", "s3cret")
	if !ok {
		t.Fatalf("login failed: %s", msg)
	}

	ok, msg = NewService(store).Login(ctx, "alice@example.com", "wrong")
	if ok {
		t.Fatal("wrong password must not log in")
	}
	if msg != "Invalid email or password" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestService_DuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	svc := NewService(store)
	if ok, _ := svc.Register(ctx, "Alice", "alice@example.com", "one"); !ok {
		t.Fatal("first registration should succeed")
	}

	ok, msg := NewService(store).Register(ctx, "Impostor", "Alice@Example.com", "two")
	if ok {
		t.Fatal("duplicate email must be rejected, case-insensitively")
	}
	if msg != "Email already registered" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestService_UnknownEmailIndistinguishable(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ok, msg := svc.Login(context.Background(), "nobody@example.com", "pw")
	if ok {
		t.Fatal("unknown email must not log in")
	}
	if msg != "Invalid email or password" {
		t.Errorf("unknown email must yield the generic message, got %q", msg)
	}
}

func TestService_LogoutAndPreferredClass(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	svc.Register(ctx, "Alice", "alice@example.com", "pw")

	class := domain.ClassBusiness
	if err := svc.UpdatePreferredClass(ctx, &class); err != nil {
		t.Fatalf("update preferred class: %v", err)
	}
	user, _ := svc.CurrentUser()
	if user.PreferredClass == nil || *user.PreferredClass != domain.ClassBusiness {
		t.Errorf("preferred class not applied: %+v", user)
	}

	svc.Logout()
	if svc.IsAuthenticated() {
		t.Error("logout should drop the current user")
	}
	if err := svc.UpdatePreferredClass(ctx, &class); err != domain.ErrNotAuthenticated {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestService_ResumeKnownUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := NewService(store)
	first.Register(ctx, "Alice", "alice@example.com", "s3cret")
	user, _ := first.CurrentUser()

	// A rebuilt conversation picks the user back up by ID.
	second := NewService(store)
	if !second.Resume(ctx, user.ID) {
		t.Fatal("resume must succeed for a stored user")
	}
	resumed, ok := second.CurrentUser()
	if !ok || resumed.ID != user.ID || resumed.Name != "Alice" {
		t.Errorf("unexpected resumed user: %+v", resumed)
	}
}

func TestService_ResumeUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryStore())
	if svc.Resume(context.Background(), 404) {
		t.Fatal("resume must fail for an unknown user ID")
	}
	if svc.IsAuthenticated() {
		t.Error("failed resume must not authenticate")
	}
}
