package session

import (
	"context"
	"strings"
	"time"

	"github.com/berryair/concierge/internal/engine"
	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

type fakeAuth struct {
	current *domain.UserInfo
	known   map[int]domain.UserInfo
}

func (a *fakeAuth) Login(ctx context.Context, email, password string) (bool, string) {
	if password != "hunter2" {
		return false, "Invalid email or password"
	}
	a.current = &domain.UserInfo{ID: 7, Name: "Alex", Email: email}
	return true, "Login successful"
}

func (a *fakeAuth) Register(ctx context.Context, name, email, password string) (bool, string) {
	a.current = &domain.UserInfo{ID: 8, Name: name, Email: email}
	return true, "Registration successful"
}

func (a *fakeAuth) IsAuthenticated() bool { return a.current != nil }

func (a *fakeAuth) CurrentUser() (domain.UserInfo, bool) {
	if a.current == nil {
		return domain.UserInfo{}, false
	}
	return *a.current, true
}

func (a *fakeAuth) Logout() { a.current = nil }

func (a *fakeAuth) Resume(ctx context.Context, userID int) bool {
	user, ok := a.known[userID]
	if !ok {
		return false
	}
	a.current = &user
	return true
}

type fakeFlights struct{}

func (f *fakeFlights) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Trip, error) {
	return []domain.Trip{{
		Type: domain.OneWay,
		Outbound: domain.FlightInfo{
			ID:                  1,
			OriginLocation:      query.Origin,
			DestinationLocation: query.Destination,
			DepartureDate:       query.OutboundDate,
			DepartureTime:       "09:00",
			BasePrice:           100,
		},
	}}, nil
}

type fakeBooker struct {
	created int
}

func (b *fakeBooker) Create(ctx context.Context, trip domain.Trip, userID int, class domain.TravelClass) (domain.BookingRecord, error) {
	b.created++
	return domain.BookingRecord{Reference: "AB12CD", UserID: userID, TravelClass: class}, nil
}

func (b *fakeBooker) ByReference(ctx context.Context, reference string) (domain.BookingRecord, error) {
	return domain.BookingRecord{}, domain.ErrBookingNotFound
}

type fakeClassifier struct {
	panicWith any
}

func (c *fakeClassifier) Classify(text string) domain.Classification {
	if c.panicWith != nil {
		panic(c.panicWith)
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "yes"), strings.Contains(lower, "confirm"):
		return domain.Classification{Intent: domain.IntentConfirmation, Confidence: 0.9}
	case strings.Contains(lower, "cancel"):
		return domain.Classification{Intent: domain.IntentCancellation, Confidence: 0.9}
	case strings.Contains(lower, "book"):
		return domain.Classification{Intent: domain.IntentBooking, Confidence: 0.9}
	case strings.Contains(lower, "status"):
		return domain.Classification{Intent: domain.IntentStatus, Confidence: 0.9}
	}
	return domain.Classification{Intent: domain.IntentUnknown}
}

type testEnv struct {
	auth       *fakeAuth
	classifier *fakeClassifier
	deps       engine.Deps
}

func newTestEnv() *testEnv {
	auth := &fakeAuth{known: map[int]domain.UserInfo{7: {ID: 7, Name: "Alex", Email: "alex@example.com"}}}
	classifier := &fakeClassifier{}
	return &testEnv{
		auth:       auth,
		classifier: classifier,
		deps: engine.Deps{
			Auth:       auth,
			Flights:    &fakeFlights{},
			Bookings:   &fakeBooker{},
			Classifier: classifier,
			Now: func() time.Time {
				return time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
			},
		},
	}
}

var _ ports.Authenticator = (*fakeAuth)(nil)
var _ ports.FlightSearcher = (*fakeFlights)(nil)
var _ ports.Booker = (*fakeBooker)(nil)
