// Package auth implements the credential collaborator consumed by the
// authentication sub-flow: login, registration, and current-user tracking.
// Passwords are stored as bcrypt hashes; complexity rules are out of scope.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

// User is the stored account record.
type User struct {
	ID             int
	Name           string
	Email          string
	PasswordHash   []byte
	PreferredClass *domain.TravelClass
}

// UserStore persists accounts. Email uniqueness must be atomic with creation.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	ByEmail(ctx context.Context, email string) (User, error)
	ByID(ctx context.Context, id int) (User, error)
	Update(ctx context.Context, user User) error
}

// Service tracks the authenticated user of one conversation. Each session
// gets its own Service over a shared UserStore.
type Service struct {
	store   UserStore
	logger  *slog.Logger
	current *domain.UserInfo
}

var _ ports.Authenticator = (*Service)(nil)

// Option configures the Service.
type Option func(*Service)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an unauthenticated Service over the store.
func NewService(store UserStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies credentials. The returned message is user-facing and is
// surfaced verbatim by the auth sub-flow.
func (s *Service) Login(ctx context.Context, email, password string) (bool, string) {
	user, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Error("user lookup failed", "error", err)
		}
		return false, "Invalid email or password"
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return false, "Invalid email or password"
	}

	s.current = userInfo(user)
	return true, "Login successful"
}

// Register creates an account and signs the new user in.
func (s *Service) Register(ctx context.Context, name, email, password string) (bool, string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return false, "Registration failed, please try again"
	}

	user, err := s.store.Create(ctx, User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return false, "Email already registered"
		}
		s.logger.Error("user creation failed", "error", err)
		return false, "Registration failed, please try again"
	}

	s.current = userInfo(user)
	return true, "Registration successful"
}

// IsAuthenticated reports whether a user is signed in.
func (s *Service) IsAuthenticated() bool {
	return s.current != nil
}

// CurrentUser returns the signed-in user, if any.
func (s *Service) CurrentUser() (domain.UserInfo, bool) {
	if s.current == nil {
		return domain.UserInfo{}, false
	}
	return *s.current, true
}

// Logout drops the signed-in user.
func (s *Service) Logout() {
	s.current = nil
}

// Resume restores the signed-in user of a reloaded session by ID. It reports
// false when the account no longer exists.
func (s *Service) Resume(ctx context.Context, userID int) bool {
	user, err := s.store.ByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Error("user lookup failed", "error", err)
		}
		return false
	}
	s.current = userInfo(user)
	return true
}

// UpdatePreferredClass stores the user's preferred travel class. A nil class
// clears the preference.
func (s *Service) UpdatePreferredClass(ctx context.Context, class *domain.TravelClass) error {
	if s.current == nil {
		return domain.ErrNotAuthenticated
	}
	if class != nil {
		if _, err := domain.ParseTravelClass(string(*class)); err != nil {
			return err
		}
	}

	user, err := s.store.ByEmail(ctx, s.current.Email)
	if err != nil {
		return err
	}
	user.PreferredClass = class
	if err := s.store.Update(ctx, user); err != nil {
		return err
	}
	s.current.PreferredClass = class
	return nil
}

func userInfo(user User) *domain.UserInfo {
	return &domain.UserInfo{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		PreferredClass: user.PreferredClass,
	}
}
