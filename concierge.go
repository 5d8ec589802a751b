package concierge

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/berryair/concierge/internal/adapters/memory"
	"github.com/berryair/concierge/internal/classifier"
	"github.com/berryair/concierge/internal/engine"
	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/internal/metrics"
	"github.com/berryair/concierge/internal/services/auth"
	"github.com/berryair/concierge/internal/services/bookings"
	"github.com/berryair/concierge/internal/services/flights"
	"github.com/berryair/concierge/internal/session"
	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

// Version is the release version, overridable at build time via ldflags.
var Version = "0.1.0"

// Greeting opens every interactive conversation.
const Greeting = "Hello! Welcome to Berry Airlines. How can I help you today?"

// Farewell closes an interactive conversation.
const Farewell = "Thank you for using Berry Airlines. Goodbye!"

// Bot is the high-level entry point: a multi-session conversation engine
// wired to its collaborators. The zero-config path runs fully in process
// with the embedded intent corpus and a generated demo flight schedule.
type Bot struct {
	manager  *session.Manager
	store    ports.SessionStore
	locker   ports.DistributedLocker
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	logger   *slog.Logger

	model     ports.IntentModel
	searcher  ports.FlightSearcher
	booker    ports.Booker
	users     auth.UserStore
	inventory []domain.FlightInfo
	now       func() time.Time
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// WithStore sets the session snapshot store. Defaults to in-process memory.
func WithStore(store ports.SessionStore) Option {
	return func(b *Bot) { b.store = store }
}

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(b *Bot) { b.locker = locker }
}

// WithModel sets the intent model. Defaults to the embedded corpus model.
func WithModel(model ports.IntentModel) Option {
	return func(b *Bot) { b.model = model }
}

// WithInventory sets the flight inventory for the default searcher.
func WithInventory(inventory []domain.FlightInfo) Option {
	return func(b *Bot) { b.inventory = inventory }
}

// WithFlightSearcher replaces the flight search collaborator entirely.
func WithFlightSearcher(searcher ports.FlightSearcher) Option {
	return func(b *Bot) { b.searcher = searcher }
}

// WithBooker replaces the booking collaborator.
func WithBooker(booker ports.Booker) Option {
	return func(b *Bot) { b.booker = booker }
}

// WithUserStore sets the account store shared by all sessions.
func WithUserStore(users auth.UserStore) Option {
	return func(b *Bot) { b.users = users }
}

// WithClock overrides the engine clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) { b.now = now }
}

// New wires a Bot from its collaborators, filling in in-process defaults for
// anything not provided.
func New(opts ...Option) *Bot {
	b := &Bot{
		logger:   logging.NewNop(),
		registry: prometheus.NewRegistry(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.metrics = metrics.New(b.registry)

	if b.store == nil {
		b.store = memory.New()
	}
	if b.model == nil {
		b.model = classifier.NewDefaultModel()
	}
	if b.users == nil {
		b.users = auth.NewMemoryStore()
	}
	if b.searcher == nil {
		inventory := b.inventory
		if inventory == nil {
			inventory = flights.DemoInventory(b.now(), 30)
		}
		b.searcher = flights.NewService(inventory)
	}
	if b.booker == nil {
		b.booker = bookings.NewService(bookings.WithClock(b.now))
	}
	b.booker = instrumentedBooker{Booker: b.booker, metrics: b.metrics}

	managerOpts := []session.Option{
		session.WithLogger(b.logger),
		session.WithManagerMetrics(b.metrics),
	}
	if b.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(b.locker))
	}
	b.manager = session.NewManager(b.store, b.newController, managerOpts...)
	return b
}

// newController builds the per-session controller. The authenticator is
// session-scoped: its signed-in user belongs to one conversation.
func (b *Bot) newController(sessionID string) *session.Controller {
	deps := engine.Deps{
		Auth:       auth.NewService(b.users, auth.WithLogger(b.logger)),
		Flights:    b.searcher,
		Bookings:   b.booker,
		Classifier: classifier.New(b.model, classifier.WithLogger(b.logger)),
		Logger:     b.logger.With("session_id", sessionID),
		Now:        b.now,
	}
	return session.NewController(deps, session.WithMetrics(b.metrics))
}

// SendMessage runs one turn of the session's conversation.
func (b *Bot) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	return b.manager.HandleMessage(ctx, sessionID, message)
}

// Sessions lists the IDs of all persisted conversations.
func (b *Bot) Sessions(ctx context.Context) ([]string, error) {
	return b.manager.List(ctx)
}

// Session returns the persisted snapshot of one conversation.
func (b *Bot) Session(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	return b.manager.Inspect(ctx, sessionID)
}

// DeleteSession removes a persisted conversation.
func (b *Bot) DeleteSession(ctx context.Context, sessionID string) error {
	return b.manager.Delete(ctx, sessionID)
}

// Manager exposes the session manager for transport adapters.
func (b *Bot) Manager() *session.Manager {
	return b.manager
}

// Registry exposes the metrics registry for serving /metrics.
func (b *Bot) Registry() *prometheus.Registry {
	return b.registry
}

// instrumentedBooker counts confirmed bookings on top of the real booker.
type instrumentedBooker struct {
	ports.Booker
	metrics *metrics.Metrics
}

func (i instrumentedBooker) Create(ctx context.Context, trip domain.Trip, userID int, class domain.TravelClass) (domain.BookingRecord, error) {
	record, err := i.Booker.Create(ctx, trip, userID, class)
	if err == nil {
		i.metrics.BookingsTotal.Inc()
	}
	return record, err
}
