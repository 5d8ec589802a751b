package domain

import (
	"math"
	"strings"
	"time"
)

// TravelClass is one of the three bookable cabin classes.
type TravelClass string

const (
	ClassEconomy  TravelClass = "ECONOMY"
	ClassBusiness TravelClass = "BUSINESS"
	ClassFirst    TravelClass = "FIRST"
)

// TravelClasses lists every valid class, priciest first (table row order).
var TravelClasses = []TravelClass{ClassFirst, ClassBusiness, ClassEconomy}

// ParseTravelClass normalizes free text to a TravelClass.
// Matching is case-insensitive; anything outside the three classes fails.
func ParseTravelClass(s string) (TravelClass, error) {
	switch TravelClass(strings.ToUpper(strings.TrimSpace(s))) {
	case ClassEconomy:
		return ClassEconomy, nil
	case ClassBusiness:
		return ClassBusiness, nil
	case ClassFirst:
		return ClassFirst, nil
	}
	return "", ErrInvalidTravelClass
}

// TripType distinguishes one-way trips from round trips.
type TripType string

const (
	OneWay    TripType = "ONEWAY"
	RoundTrip TripType = "ROUNDTRIP"
)

// Rate multipliers applied on top of a flight's base price.
// Round trips get a 10% discount on the combined base fare.
var (
	tripTypeRates = map[TripType]float64{
		OneWay:    1.0,
		RoundTrip: 0.9,
	}
	classRates = map[TravelClass]float64{
		ClassFirst:    2.5,
		ClassBusiness: 1.8,
		ClassEconomy:  1.0,
	}
)

// FlightInfo is an immutable snapshot of a scheduled flight. The mapstructure
// tags let persisted session contexts restore into typed values.
type FlightInfo struct {
	ID                  int       `json:"id" mapstructure:"id"`
	OriginBase          string    `json:"origin_base" mapstructure:"origin_base"`
	OriginLocation      string    `json:"origin_location" mapstructure:"origin_location"`
	OriginCode          string    `json:"origin_code" mapstructure:"origin_code"`
	DepartureDate       time.Time `json:"departure_date" mapstructure:"departure_date"`
	DepartureTime       string    `json:"departure_time" mapstructure:"departure_time"` // "15:04"
	DestinationBase     string    `json:"destination_base" mapstructure:"destination_base"`
	DestinationLocation string    `json:"destination_location" mapstructure:"destination_location"`
	DestinationCode     string    `json:"destination_code" mapstructure:"destination_code"`
	Status              string    `json:"status" mapstructure:"status"`
	BasePrice           float64   `json:"base_price" mapstructure:"base_price"`
}

// Trip is a priced outbound-plus-optional-return flight pairing produced by
// search. Return is nil for one-way trips.
type Trip struct {
	Type     TripType    `json:"type" mapstructure:"type"`
	Outbound FlightInfo  `json:"outbound" mapstructure:"outbound"`
	Return   *FlightInfo `json:"return,omitempty" mapstructure:"return"`
}

// basePrice is the combined base fare with the trip-type rate applied.
func (t Trip) basePrice() float64 {
	total := t.Outbound.BasePrice
	if t.Type == RoundTrip && t.Return != nil {
		total += t.Return.BasePrice
	}
	return total * tripTypeRates[t.Type]
}

// PriceFor returns the total price for the given travel class, rounded to
// two decimal places.
func (t Trip) PriceFor(class TravelClass) float64 {
	return math.Round(t.basePrice()*classRates[class]*100) / 100
}

// AllPrices returns the price of the trip in every class at once, for
// comparison-table rendering.
func (t Trip) AllPrices() map[TravelClass]float64 {
	prices := make(map[TravelClass]float64, len(TravelClasses))
	for _, class := range TravelClasses {
		prices[class] = t.PriceFor(class)
	}
	return prices
}
