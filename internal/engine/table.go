package engine

import (
	"fmt"
	"strings"

	"github.com/berryair/concierge/pkg/domain"
)

// formatTripTable renders candidate trips as an aligned comparison table.
// One-way and round-trip results use different column sets.
func formatTripTable(trips []domain.Trip, class domain.TravelClass, tripType domain.TripType) string {
	if tripType == domain.RoundTrip {
		return formatRoundTripTable(trips, class)
	}
	return formatOneWayTable(trips, class)
}

func formatOneWayTable(trips []domain.Trip, class domain.TravelClass) string {
	const separator = "+-------+------------+------------+------------+--------+-------------+"

	rows := []string{
		separator,
		fmt.Sprintf("| %-5s | %-10s | %-10s | %-10s | %-6s | %-11s |",
			"Option", "Departure", "Arrival", "Date", "Time", "Price ("+class+")"),
		separator,
	}

	for i, trip := range trips {
		out := trip.Outbound
		rows = append(rows,
			fmt.Sprintf("| %-5s | %-10s | %-10s | %-10s | %-6s | £%10.2f |",
				fmt.Sprintf("#%d", i+1),
				out.OriginCode,
				out.DestinationCode,
				out.DepartureDate.Format(dateFormat),
				out.DepartureTime,
				trip.PriceFor(class)),
			separator,
		)
	}

	return strings.Join(rows, "\n")
}

func formatRoundTripTable(trips []domain.Trip, class domain.TravelClass) string {
	const separator = "+-------+------------+------------+------------+------------+-------------+"

	rows := []string{
		separator,
		fmt.Sprintf("| %-5s | %-10s | %-10s | %-10s | %-10s | %-11s |",
			"Option", "Outbound", "Return", "Out Date", "Ret Date", "Price ("+class+")"),
		separator,
	}

	for i, trip := range trips {
		out := trip.Outbound
		ret := trip.Return
		rows = append(rows,
			fmt.Sprintf("| %-5s | %-10s | %-10s | %-10s | %-10s | £%10.2f |",
				fmt.Sprintf("#%d", i+1),
				out.OriginCode+"-"+out.DestinationCode,
				ret.OriginCode+"-"+ret.DestinationCode,
				out.DepartureDate.Format(dateFormat),
				ret.DepartureDate.Format(dateFormat),
				trip.PriceFor(class)),
			separator,
		)
	}

	return strings.Join(rows, "\n")
}
