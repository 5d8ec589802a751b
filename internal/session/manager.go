package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/internal/metrics"
	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

const defaultLockTTL = 30 * time.Second

// lockEntry holds a per-session mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewControllerFunc builds a fresh controller for one session. Each call must
// return a controller with its own per-session collaborators (notably the
// authenticator, whose signed-in user is conversation-scoped).
type NewControllerFunc func(sessionID string) *Controller

// Manager serializes turns per session and persists a snapshot after every
// turn. Controllers are rebuilt from the store on each turn, so any replica
// holding the lock can continue any conversation.
//
// Per-session locks are reference counted and garbage collected when idle.
type Manager struct {
	store         ports.SessionStore
	newController NewControllerFunc

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) { m.locker = locker }
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithManagerMetrics wires Prometheus instrumentation.
func WithManagerMetrics(mx *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mx }
}

// NewManager creates a session manager over the snapshot store.
func NewManager(store ports.SessionStore, newController NewControllerFunc, opts ...Option) *Manager {
	m := &Manager{
		store:         store,
		newController: newController,
		locks:         make(map[string]*lockEntry),
		lockTTL:       defaultLockTTL,
		logger:        logging.NewNop(),
		metrics:       metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HandleMessage runs one turn of the session's conversation: load, process,
// persist. Unknown sessions start fresh.
func (m *Manager) HandleMessage(ctx context.Context, sessionID, message string) (string, error) {
	var response string
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		controller, err := m.loadController(ctx, sessionID)
		if err != nil {
			return err
		}

		start := time.Now()
		response = controller.HandleMessage(ctx, message)
		m.metrics.TurnsTotal.Inc()
		m.metrics.TurnDuration.Observe(time.Since(start).Seconds())

		if err := m.store.Save(ctx, sessionID, controller.Snapshot()); err != nil {
			return fmt.Errorf("persisting session %q: %w", sessionID, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	m.updateSessionGauge(ctx)
	return response, nil
}

// loadController rebuilds the session's controller from its persisted
// snapshot. Callers hold the session lock.
func (m *Manager) loadController(ctx context.Context, sessionID string) (*Controller, error) {
	controller := m.newController(sessionID)

	snap, err := m.store.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return controller, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %q: %w", sessionID, err)
	}

	if err := controller.Restore(ctx, snap); err != nil {
		// A snapshot that cannot be restored is dropped rather than
		// wedging the conversation forever.
		m.logger.Warn("discarding unrestorable session snapshot",
			"session_id", sessionID,
			"err", err,
		)
	}
	return controller, nil
}

// Inspect returns the persisted snapshot without processing a turn.
func (m *Manager) Inspect(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		return err
	})
	return snap, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
	if err != nil {
		return err
	}
	m.updateSessionGauge(ctx)
	return nil
}

// List returns the IDs of all persisted sessions.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// withLock executes fn while holding the session's lock, and the distributed
// lock when one is configured.
func (m *Manager) withLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("acquiring distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock, it will expire via TTL",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// acquire gets or creates a lock entry and increments its reference count.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and drops the entry at zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

func (m *Manager) updateSessionGauge(ctx context.Context) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return
	}
	m.metrics.ActiveSessions.Set(float64(len(ids)))
}
