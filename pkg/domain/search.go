package domain

import "time"

// SearchQuery carries the collected booking fields into the flight search
// collaborator. ReturnDate is nil for one-way trips.
type SearchQuery struct {
	Origin       string
	Destination  string
	OutboundDate time.Time
	ReturnDate   *time.Time
	Limit        int
}

// DefaultSearchLimit caps the number of candidate trips offered to the user.
const DefaultSearchLimit = 5
