package domain

import "time"

// BookingRecord is a confirmed booking as returned by the booking collaborator.
type BookingRecord struct {
	ID             int         `json:"id"`
	Reference      string      `json:"reference"`
	TripType       TripType    `json:"trip_type"`
	OutboundFlight int         `json:"outbound_flight"`
	ReturnFlight   *int        `json:"return_flight,omitempty"`
	TravelClass    TravelClass `json:"travel_class"`
	CreatedAt      time.Time   `json:"created_at"`
	UserID         int         `json:"user_id"`
	TotalAmount    float64     `json:"total_amount"`
}

// UserInfo represents an authenticated user without exposing storage details.
type UserInfo struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	PreferredClass *TravelClass `json:"preferred_class,omitempty"`
}
