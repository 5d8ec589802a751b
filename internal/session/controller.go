// Package session hosts the per-conversation controller and the manager that
// coordinates many concurrent conversations over a shared snapshot store.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/berryair/concierge/internal/engine"
	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/internal/metrics"
	"github.com/berryair/concierge/pkg/domain"
)

const (
	msgClarify   = "I'm not sure I understand. Could you please rephrase that?"
	msgRecovered = "I encountered an unexpected error. Let's start over. How can I help you?"
)

// userResumer restores a signed-in user by ID after a session reload.
// Implemented by the auth service; optional for test doubles.
type userResumer interface {
	Resume(ctx context.Context, userID int) bool
}

// Controller runs one conversation. It owns at most one active transaction
// and decides, turn by turn, whether to forward a message or to classify it
// and start something new.
type Controller struct {
	deps    engine.Deps
	factory *engine.Factory
	active  engine.Transaction
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewController creates a controller with no active transaction.
func NewController(deps engine.Deps, opts ...ControllerOption) *Controller {
	c := &Controller{
		deps:    deps,
		factory: engine.NewFactory(deps),
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}
	if deps.Logger != nil {
		c.logger = deps.Logger
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMetrics wires Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) ControllerOption {
	return func(c *Controller) { c.metrics = m }
}

// HandleMessage processes one user turn and returns the bot response.
//
// A panic anywhere in the turn is the global safety net: the active
// transaction is discarded entirely and the user is invited to restart. No
// turn ever aborts the process.
func (c *Controller) HandleMessage(ctx context.Context, message string) (response string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("turn panicked, discarding transaction", "panic", r)
			c.metrics.RecoveriesTotal.Inc()
			c.discard()
			response = msgRecovered
		}
	}()

	if c.active != nil && !c.active.IsComplete() {
		response = c.active.Process(ctx, message)
		c.clearIfComplete()
		return response
	}

	classification := c.deps.Classifier.Classify(message)
	c.metrics.RecordIntent(string(classification.Intent))

	txn := c.factory.New(classification.Intent)
	if txn == nil {
		return msgClarify
	}

	// The triggering message is also the transaction's first turn.
	c.active = txn
	response = txn.Process(ctx, message)
	c.clearIfComplete()
	return response
}

func (c *Controller) clearIfComplete() {
	if c.active != nil && c.active.IsComplete() {
		c.active.Cleanup()
		c.active = nil
	}
}

// discard drops the active transaction without completing it.
func (c *Controller) discard() {
	if c.active != nil {
		c.active.Cleanup()
		c.active = nil
	}
}

// Active reports whether a transaction is currently in flight.
func (c *Controller) Active() bool {
	return c.active != nil
}

// Snapshot serializes the conversation for persistence, including the
// signed-in user so a reloaded session stays authenticated.
func (c *Controller) Snapshot() *domain.Snapshot {
	var snap *domain.Snapshot
	if c.active != nil {
		snap = c.active.Snapshot()
	} else {
		snap = &domain.Snapshot{Intent: domain.IntentUnknown}
	}
	now := time.Now
	if c.deps.Now != nil {
		now = c.deps.Now
	}
	snap.UpdatedAt = now().UTC()
	if user, ok := c.deps.Auth.CurrentUser(); ok {
		id := user.ID
		snap.UserID = &id
	}
	return snap
}

// Restore rebuilds the conversation from a persisted snapshot.
func (c *Controller) Restore(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil {
		return nil
	}
	if snap.UserID != nil {
		if resumer, ok := c.deps.Auth.(userResumer); ok {
			if !resumer.Resume(ctx, *snap.UserID) {
				c.logger.Warn("persisted user no longer exists", "user_id", *snap.UserID)
			}
		}
	}
	if snap.Empty() {
		return nil
	}

	txn, err := c.factory.Restore(snap)
	if err != nil {
		return err
	}
	c.active = txn
	return nil
}
