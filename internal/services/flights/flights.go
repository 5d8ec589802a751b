// Package flights implements the flight-search collaborator over an
// in-memory inventory. Results are ordered nearest to the requested date,
// tie-broken by departure time, and capped at the query limit.
package flights

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/berryair/concierge/pkg/domain"
)

// nearbyDays is the half-width of the date window searched around the
// requested travel date.
const nearbyDays = 2

// Service searches a fixed inventory of scheduled flights.
type Service struct {
	inventory []domain.FlightInfo
}

// NewService creates a search service over the inventory.
func NewService(inventory []domain.FlightInfo) *Service {
	return &Service{inventory: inventory}
}

// Search finds candidate trips for the query. Locations match the airport
// code, city or base name, case-insensitively. An empty result is not an
// error; the caller decides how to handle a dead end.
func (s *Service) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Trip, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	outbound := s.flightsBetween(query.Origin, query.Destination, query.OutboundDate)
	sortByProximity(outbound, query.OutboundDate)
	if len(outbound) > limit {
		outbound = outbound[:limit]
	}

	if query.ReturnDate == nil {
		trips := make([]domain.Trip, 0, len(outbound))
		for _, flight := range outbound {
			trips = append(trips, domain.Trip{Type: domain.OneWay, Outbound: flight})
		}
		return trips, nil
	}

	// Round trip: pair each outbound with its best matching return, which
	// must depart strictly after the outbound flight.
	returns := s.flightsBetween(query.Destination, query.Origin, *query.ReturnDate)
	trips := make([]domain.Trip, 0, len(outbound))
	for _, out := range outbound {
		candidates := make([]domain.FlightInfo, 0, len(returns))
		for _, ret := range returns {
			if ret.DepartureDate.After(out.DepartureDate) {
				candidates = append(candidates, ret)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sortByProximity(candidates, *query.ReturnDate)

		ret := candidates[0]
		trips = append(trips, domain.Trip{Type: domain.RoundTrip, Outbound: out, Return: &ret})
	}

	sort.SliceStable(trips, func(i, j int) bool {
		return dateDistance(trips[i].Outbound.DepartureDate, query.OutboundDate) <
			dateDistance(trips[j].Outbound.DepartureDate, query.OutboundDate)
	})
	if len(trips) > limit {
		trips = trips[:limit]
	}
	return trips, nil
}

// flightsBetween returns inventory flights matching the route within the
// nearby-date window around target.
func (s *Service) flightsBetween(origin, destination string, target time.Time) []domain.FlightInfo {
	var matches []domain.FlightInfo
	for _, flight := range s.inventory {
		if !matchesLocation(flight.OriginLocation, flight.OriginCode, flight.OriginBase, origin) {
			continue
		}
		if !matchesLocation(flight.DestinationLocation, flight.DestinationCode, flight.DestinationBase, destination) {
			continue
		}
		if dateDistance(flight.DepartureDate, target) > nearbyDays {
			continue
		}
		matches = append(matches, flight)
	}
	return matches
}

func matchesLocation(location, code, base, wanted string) bool {
	wanted = strings.ToLower(strings.TrimSpace(wanted))
	return strings.ToLower(location) == wanted ||
		strings.ToLower(code) == wanted ||
		strings.ToLower(base) == wanted
}

// dateDistance is the absolute distance in whole days between two dates.
func dateDistance(a, b time.Time) int {
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

func sortByProximity(flights []domain.FlightInfo, target time.Time) {
	sort.SliceStable(flights, func(i, j int) bool {
		di, dj := dateDistance(flights[i].DepartureDate, target), dateDistance(flights[j].DepartureDate, target)
		if di != dj {
			return di < dj
		}
		return flights[i].DepartureTime < flights[j].DepartureTime
	})
}
