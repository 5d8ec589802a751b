package flights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berryair/concierge/pkg/domain"
)

func day(offset int) time.Time {
	return time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func flight(id int, origin, dest string, date time.Time, depart string) domain.FlightInfo {
	codes := map[string]string{"London": "LHR", "Paris": "CDG", "Amsterdam": "AMS"}
	return domain.FlightInfo{
		ID:                  id,
		OriginBase:          "Berry Airlines " + origin,
		OriginLocation:      origin,
		OriginCode:          codes[origin],
		DestinationBase:     "Berry Airlines " + dest,
		DestinationLocation: dest,
		DestinationCode:     codes[dest],
		DepartureDate:       date,
		DepartureTime:       depart,
		Status:              "SCHEDULED",
		BasePrice:           100,
	}
}

func TestSearch_OneWayOrdering(t *testing.T) {
	svc := NewService([]domain.FlightInfo{
		flight(1, "London", "Paris", day(2), "09:00"),
		flight(2, "London", "Paris", day(0), "14:00"),
		flight(3, "London", "Paris", day(0), "07:00"),
		flight(4, "London", "Paris", day(1), "11:00"),
		flight(5, "London", "Paris", day(5), "08:00"),
		flight(6, "London", "Amsterdam", day(0), "08:00"),
	})

	trips, err := svc.Search(context.Background(), domain.SearchQuery{
		Origin:       "london",
		Destination:  "paris",
		OutboundDate: day(0),
		Limit:        5,
	})
	require.NoError(t, err)

	ids := make([]int, 0, len(trips))
	for _, trip := range trips {
		assert.Equal(t, domain.OneWay, trip.Type)
		ids = append(ids, trip.Outbound.ID)
	}
	// Exact date first (time-ordered), then one day off, then two. The
	// flight five days out falls outside the window, Amsterdam is the
	// wrong route.
	assert.Equal(t, []int{3, 2, 4, 1}, ids)
}

func TestSearch_MatchesCodeAndBase(t *testing.T) {
	svc := NewService([]domain.FlightInfo{
		flight(1, "London", "Paris", day(0), "09:00"),
	})

	for _, q := range []domain.SearchQuery{
		{Origin: "LHR", Destination: "CDG", OutboundDate: day(0)},
		{Origin: "berry airlines london", Destination: "Paris", OutboundDate: day(0)},
	} {
		trips, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		require.Len(t, trips, 1)
	}
}

func TestSearch_RoundTripPairing(t *testing.T) {
	ret := day(7)
	svc := NewService([]domain.FlightInfo{
		flight(1, "London", "Paris", day(0), "09:00"),
		flight(2, "Paris", "London", day(7), "18:00"),
		flight(3, "Paris", "London", day(7), "10:00"),
		flight(4, "Paris", "London", day(8), "08:00"),
	})

	trips, err := svc.Search(context.Background(), domain.SearchQuery{
		Origin:       "London",
		Destination:  "Paris",
		OutboundDate: day(0),
		ReturnDate:   &ret,
	})
	require.NoError(t, err)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, domain.RoundTrip, trip.Type)
	require.NotNil(t, trip.Return)
	// Nearest return date wins, earlier departure breaks the tie.
	assert.Equal(t, 3, trip.Return.ID)
}

func TestSearch_ReturnMustFollowOutbound(t *testing.T) {
	ret := day(0)
	svc := NewService([]domain.FlightInfo{
		flight(1, "London", "Paris", day(0), "09:00"),
		flight(2, "Paris", "London", day(0), "18:00"),
	})

	// The only return candidate departs the same day as the outbound, so
	// no valid pairing exists.
	trips, err := svc.Search(context.Background(), domain.SearchQuery{
		Origin:       "London",
		Destination:  "Paris",
		OutboundDate: day(0),
		ReturnDate:   &ret,
	})
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestSearch_LimitCapsResults(t *testing.T) {
	inventory := make([]domain.FlightInfo, 0, 8)
	for i := 0; i < 8; i++ {
		inventory = append(inventory, flight(i+1, "London", "Paris", day(0), "09:00"))
	}
	svc := NewService(inventory)

	trips, err := svc.Search(context.Background(), domain.SearchQuery{
		Origin:       "London",
		Destination:  "Paris",
		OutboundDate: day(0),
		Limit:        3,
	})
	require.NoError(t, err)
	assert.Len(t, trips, 3)
}

func TestParseInventory(t *testing.T) {
	raw := []byte(`flights:
  - id: 1
    origin_base: Berry Airlines London
    origin_location: London
    origin_code: LHR
    destination_base: Berry Airlines Paris
    destination_location: Paris
    destination_code: CDG
    departure_date: "2026-09-10"
    departure_time: "09:15"
    status: SCHEDULED
    base_price: 120.5
`)

	flights, err := ParseInventory(raw)
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "LHR", flights[0].OriginCode)
	assert.Equal(t, day(0), flights[0].DepartureDate)
	assert.Equal(t, 120.5, flights[0].BasePrice)

	_, err = ParseInventory([]byte("flights:\n  - id: 2\n    departure_date: tomorrow\n"))
	require.Error(t, err)
}

func TestDemoInventory(t *testing.T) {
	flights := DemoInventory(day(0), 3)
	require.NotEmpty(t, flights)
	// 5 cities, 20 directed pairs, 3 days.
	assert.Len(t, flights, 60)

	svc := NewService(flights)
	trips, err := svc.Search(context.Background(), domain.SearchQuery{
		Origin:       "London",
		Destination:  "Madrid",
		OutboundDate: day(1),
		Limit:        5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, trips)
}
