package engine

import (
	"context"
	"strings"

	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

// AuthState is the position of an authentication sub-flow.
type AuthState string

const (
	AuthInit             AuthState = "INIT"
	AuthAwaitingEmail    AuthState = "AWAITING_EMAIL"
	AuthAwaitingPassword AuthState = "AWAITING_PASSWORD"
	AuthAwaitingName     AuthState = "AWAITING_NAME"
	AuthComplete         AuthState = "COMPLETE"
)

const (
	actionLogin    = "login"
	actionRegister = "register"
)

// AuthFlow is the nested state machine collecting credentials on behalf of a
// parent transaction. It is owned exclusively by the transaction that created
// it and dropped on completion or cleanup.
type AuthFlow struct {
	auth ports.Authenticator

	state    AuthState
	action   string
	email    string
	password string
	name     string
}

// NewAuthFlow creates a sub-flow in its initial state.
func NewAuthFlow(auth ports.Authenticator) *AuthFlow {
	return &AuthFlow{auth: auth, state: AuthInit, action: actionLogin}
}

// Process consumes one user message and returns the next prompt.
func (f *AuthFlow) Process(ctx context.Context, message string) string {
	switch f.state {
	case AuthInit:
		return f.handleInit(message)
	case AuthAwaitingEmail:
		return f.handleEmail(message)
	case AuthAwaitingPassword:
		return f.handlePassword(ctx, message)
	case AuthAwaitingName:
		return f.handleName(ctx, message)
	}
	return "An error occurred in authentication."
}

func (f *AuthFlow) handleInit(message string) string {
	lower := strings.ToLower(message)
	var resp string
	if strings.Contains(lower, "register") || strings.Contains(lower, "sign up") {
		f.action = actionRegister
		resp = "Let's create an account. Please enter your email:"
	} else {
		f.action = actionLogin
		resp = "Please enter your email to login:"
	}
	f.state = AuthAwaitingEmail
	return resp
}

func (f *AuthFlow) handleEmail(message string) string {
	f.email = message
	f.state = AuthAwaitingPassword
	return "Please enter your password:"
}

func (f *AuthFlow) handlePassword(ctx context.Context, message string) string {
	f.password = message

	if f.action == actionLogin {
		ok, msg := f.auth.Login(ctx, f.email, f.password)
		if ok {
			f.state = AuthComplete
			return msg + "\nNow, let's continue with your booking."
		}
		// Failed credentials restart at the email prompt, keeping the
		// originally chosen action.
		f.state = AuthAwaitingEmail
		return msg + "\nPlease try again with your email:"
	}

	f.state = AuthAwaitingName
	return "Please enter your name:"
}

func (f *AuthFlow) handleName(ctx context.Context, message string) string {
	f.name = message
	ok, msg := f.auth.Register(ctx, f.name, f.email, f.password)
	if ok {
		f.state = AuthComplete
		return msg + "\nNow, let's continue with your booking."
	}
	f.state = AuthAwaitingEmail
	return msg + "\nPlease try again with your email:"
}

// Complete is true only once the sub-flow reached its terminal state.
func (f *AuthFlow) Complete() bool {
	return f.state == AuthComplete
}

// State exposes the current position for inspection and persistence.
func (f *AuthFlow) State() AuthState {
	return f.state
}

func (f *AuthFlow) snapshot() *domain.AuthFlowSnapshot {
	return &domain.AuthFlowSnapshot{
		State:    string(f.state),
		Action:   f.action,
		Email:    f.email,
		Password: f.password,
		Name:     f.name,
	}
}

func restoreAuthFlow(auth ports.Authenticator, snap *domain.AuthFlowSnapshot) *AuthFlow {
	if snap == nil {
		return nil
	}
	f := NewAuthFlow(auth)
	f.state = AuthState(snap.State)
	f.action = snap.Action
	f.email = snap.Email
	f.password = snap.Password
	f.name = snap.Name
	if f.action == "" {
		f.action = actionLogin
	}
	return f
}
