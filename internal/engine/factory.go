package engine

import (
	"fmt"

	"github.com/berryair/concierge/pkg/domain"
)

// Factory maps classified intents to transaction constructors. The set of
// variants is closed; unknown intents yield no transaction.
type Factory struct {
	deps Deps
}

// NewFactory creates a factory over the given collaborators.
func NewFactory(deps Deps) *Factory {
	return &Factory{deps: deps}
}

// New constructs a fresh transaction for the intent, or nil when the intent
// does not map to one.
func (f *Factory) New(intent domain.Intent) Transaction {
	switch intent {
	case domain.IntentBooking:
		return NewBookingTransaction(f.deps)
	case domain.IntentStatus:
		return NewStatusTransaction(f.deps)
	}
	return nil
}

// Restore rebuilds a mid-flight transaction from a persisted snapshot,
// including a paused authentication sub-flow.
func (f *Factory) Restore(snap *domain.Snapshot) (Transaction, error) {
	if snap.Empty() {
		return nil, nil
	}
	switch snap.Intent {
	case domain.IntentBooking:
		return restoreBooking(snap, f.deps)
	case domain.IntentStatus:
		return restoreStatus(snap, f.deps)
	}
	return nil, fmt.Errorf("cannot restore transaction for intent %q", snap.Intent)
}
