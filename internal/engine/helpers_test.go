package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/berryair/concierge/pkg/domain"
)

// fakeAuth is a scripted authenticator. Login/Register succeed when the
// password matches the configured secret.
type fakeAuth struct {
	secret        string
	authenticated bool
	user          domain.UserInfo
	loginCalls    int
	registerCalls int
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		secret: "hunter2",
		user:   domain.UserInfo{ID: 7, Name: "Alex", Email: "alex@example.com"},
	}
}

func (a *fakeAuth) Login(ctx context.Context, email, password string) (bool, string) {
	a.loginCalls++
	if password == a.secret {
		a.authenticated = true
		a.user.Email = email
		return true, "Login successful"
	}
	return false, "Invalid email or password"
}

func (a *fakeAuth) Register(ctx context.Context, name, email, password string) (bool, string) {
	a.registerCalls++
	if strings.Contains(email, "taken") {
		return false, "Email already registered"
	}
	a.authenticated = true
	a.user = domain.UserInfo{ID: 8, Name: name, Email: email}
	return true, "Registration successful"
}

func (a *fakeAuth) IsAuthenticated() bool { return a.authenticated }

func (a *fakeAuth) CurrentUser() (domain.UserInfo, bool) {
	if !a.authenticated {
		return domain.UserInfo{}, false
	}
	return a.user, true
}

func (a *fakeAuth) Logout() { a.authenticated = false }

// fakeFlights serves a canned result set, or fails, or panics.
type fakeFlights struct {
	trips     []domain.Trip
	err       error
	panicWith any
	lastQuery domain.SearchQuery
}

func (f *fakeFlights) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Trip, error) {
	f.lastQuery = query
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.trips, nil
}

// fakeBooker records creations and hands out a fixed reference.
type fakeBooker struct {
	err     error
	created []domain.BookingRecord
	byRef   map[string]domain.BookingRecord
}

func (b *fakeBooker) Create(ctx context.Context, trip domain.Trip, userID int, class domain.TravelClass) (domain.BookingRecord, error) {
	if b.err != nil {
		return domain.BookingRecord{}, b.err
	}
	record := domain.BookingRecord{
		ID:          len(b.created) + 1,
		Reference:   "AB12CD",
		TripType:    trip.Type,
		TravelClass: class,
		UserID:      userID,
		TotalAmount: trip.PriceFor(class),
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	b.created = append(b.created, record)
	return record, nil
}

func (b *fakeBooker) ByReference(ctx context.Context, reference string) (domain.BookingRecord, error) {
	if record, ok := b.byRef[reference]; ok {
		return record, nil
	}
	return domain.BookingRecord{}, domain.ErrBookingNotFound
}

// fakeClassifier maps keyword hits to intents with full confidence.
type fakeClassifier struct{}

func (fakeClassifier) Classify(text string) domain.Classification {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "yes") || strings.Contains(lower, "confirm") || strings.Contains(lower, "proceed"):
		return domain.Classification{Intent: domain.IntentConfirmation, Confidence: 0.9}
	case strings.Contains(lower, "no") || strings.Contains(lower, "cancel"):
		return domain.Classification{Intent: domain.IntentCancellation, Confidence: 0.9}
	case strings.Contains(lower, "book"):
		return domain.Classification{Intent: domain.IntentBooking, Confidence: 0.9}
	case strings.Contains(lower, "status"):
		return domain.Classification{Intent: domain.IntentStatus, Confidence: 0.9}
	}
	return domain.Classification{Intent: domain.IntentUnknown}
}

func testFlight(id int, origin, dest string, date time.Time, depTime string, base float64) domain.FlightInfo {
	return domain.FlightInfo{
		ID:                  id,
		OriginBase:          origin,
		OriginLocation:      origin,
		OriginCode:          strings.ToUpper(origin[:3]),
		DepartureDate:       date,
		DepartureTime:       depTime,
		DestinationBase:     dest,
		DestinationLocation: dest,
		DestinationCode:     strings.ToUpper(dest[:3]),
		Status:              "SCHEDULED",
		BasePrice:           base,
	}
}

func testTrips(n int) []domain.Trip {
	date := time.Date(2099, 1, 10, 0, 0, 0, 0, time.UTC)
	trips := make([]domain.Trip, 0, n)
	for i := 0; i < n; i++ {
		trips = append(trips, domain.Trip{
			Type:     domain.OneWay,
			Outbound: testFlight(100+i, "London", "Paris", date.AddDate(0, 0, i), "08:30", 100+float64(i)*10),
		})
	}
	return trips
}

type testEnv struct {
	auth    *fakeAuth
	flights *fakeFlights
	booker  *fakeBooker
}

func newTestEnv() *testEnv {
	return &testEnv{
		auth:    newFakeAuth(),
		flights: &fakeFlights{trips: testTrips(3)},
		booker:  &fakeBooker{byRef: map[string]domain.BookingRecord{}},
	}
}

func (e *testEnv) deps() Deps {
	return Deps{
		Auth:       e.auth,
		Flights:    e.flights,
		Bookings:   e.booker,
		Classifier: fakeClassifier{},
		Now: func() time.Time {
			return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
		},
	}
}

var errBoom = errors.New("boom")
