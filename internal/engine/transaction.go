package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

// Classifier yields the effective intent for a message, after confidence
// thresholding. Implemented by internal/classifier.Adapter.
type Classifier interface {
	Classify(text string) domain.Classification
}

// Transaction is a stateful, multi-turn handler for one intent's complete
// lifecycle. Implementations form a closed set (booking, status); the factory
// is the only constructor path.
type Transaction interface {
	// Process consumes one user message and returns the bot response.
	// Invalid input never surfaces as an error; it re-prompts in place.
	// Internal faults force the transaction to its terminal state.
	Process(ctx context.Context, message string) string

	// IsComplete reports whether the terminal state has been reached.
	IsComplete() bool

	// Cleanup clears collected context and drops any pending auth sub-flow.
	// It is safe to call more than once.
	Cleanup()

	// Snapshot serializes the transaction for session persistence.
	Snapshot() *domain.Snapshot
}

// Deps bundles the collaborators a transaction may call. The engine owns none
// of them; they are injected by the facade or by tests.
type Deps struct {
	Auth       ports.Authenticator
	Flights    ports.FlightSearcher
	Bookings   ports.Booker
	Classifier Classifier
	Logger     *slog.Logger

	// Now is the clock used for date validation. Defaults to time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

const msgAuthRequired = "You need to be logged in first. Would you like to login or register?"

// authGate implements the pause/resume protocol between a transaction and its
// authentication sub-flow. While a sub-flow is pending, every inbound message
// is routed to it and never to the owning transaction's state machine.
type authGate struct {
	auth ports.Authenticator
	flow *AuthFlow
}

// intercept runs one turn of the protocol. handled is true when the gate
// consumed the message; the caller must return resp without touching its own
// state machine. When the sub-flow completes, the completion message is
// returned as-is and the transaction's own handler resumes on the NEXT turn.
func (g *authGate) intercept(ctx context.Context, required bool, message string) (resp string, handled bool) {
	if !required {
		return "", false
	}
	if g.auth.IsAuthenticated() {
		return "", false
	}

	if g.flow == nil {
		// First time hitting the auth requirement: pause and prompt.
		g.flow = NewAuthFlow(g.auth)
		return msgAuthRequired, true
	}

	resp = g.flow.Process(ctx, message)
	if g.flow.Complete() {
		g.flow = nil
	}
	return resp, true
}

func (g *authGate) reset() {
	g.flow = nil
}
