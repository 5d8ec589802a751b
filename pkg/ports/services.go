package ports

import (
	"context"

	"github.com/berryair/concierge/pkg/domain"
)

// Authenticator is the credential collaborator consumed by the authentication
// sub-flow. Login and Register return a user-facing message alongside the
// outcome; the sub-flow surfaces that message verbatim.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (ok bool, message string)
	Register(ctx context.Context, name, email, password string) (ok bool, message string)
	IsAuthenticated() bool
	CurrentUser() (domain.UserInfo, bool)
	Logout()
}

// FlightSearcher finds candidate trips for a query.
//
// Results are ordered nearest-to-requested-date first, tie-broken by
// departure time, and capped at query.Limit. An empty result is not an error.
type FlightSearcher interface {
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.Trip, error)
}

// Booker creates and resolves bookings.
type Booker interface {
	// Create books the trip for the user in the given class. It returns
	// domain.ErrInvalidTravelClass for a class outside the known set.
	Create(ctx context.Context, trip domain.Trip, userID int, class domain.TravelClass) (domain.BookingRecord, error)

	// ByReference resolves a booking by its reference code, returning
	// domain.ErrBookingNotFound on a miss.
	ByReference(ctx context.Context, reference string) (domain.BookingRecord, error)
}
