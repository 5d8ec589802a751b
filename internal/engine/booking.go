package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/pkg/domain"
)

// BookingState is the position of a booking transaction's state machine.
type BookingState string

const (
	BookingInit            BookingState = "INIT"
	BookingOrigin          BookingState = "ORIGIN"
	BookingDestination     BookingState = "DESTINATION"
	BookingOutboundDate    BookingState = "OUTBOUND_DATE"
	BookingReturnDate      BookingState = "RETURN_DATE"
	BookingTravelClass     BookingState = "TRAVEL_CLASS"
	BookingFlightSelection BookingState = "FLIGHT_SELECTION"
	BookingConfirmation    BookingState = "CONFIRMATION"
	BookingComplete        BookingState = "COMPLETE"
)

const dateFormat = "2006-01-02"

const (
	msgAskOrigin       = "Please enter your departure city:"
	msgAskDestination  = "Please enter your destination city:"
	msgAskOutbound     = "Please enter your outbound date (YYYY-MM-DD):"
	msgAskReturn       = "Please enter your return date (YYYY-MM-DD):"
	msgAskClass        = "Please select your travel class (ECONOMY/BUSINESS/FIRST):"
	msgBadDate         = "Invalid date format. Please use YYYY-MM-DD format:"
	msgPastDate        = "Date cannot be in the past. Please enter a future date (YYYY-MM-DD):"
	msgReturnTooEarly  = "Return date must be after outbound date. Please enter a valid date (YYYY-MM-DD):"
	msgBadClass        = "Invalid travel class. Please select ECONOMY, BUSINESS, or FIRST:"
	msgNoFlights       = "Sorry, no flights found for your criteria. Please start a new booking."
	msgSearchFailed    = "Sorry, we encountered an error while searching flights. Please start a new booking."
	msgBookingFailed   = "I apologize, but I couldn't complete your booking. Please try again."
	msgCancelled       = "I've cancelled your booking request. Feel free to start a new booking when you're ready."
	msgConfirmUnclear  = "I'm not sure if you want to confirm or cancel the booking. Please let me know clearly - would you like to proceed with this booking?"
	msgSomethingWrong  = "Sorry, something went wrong. Please start a new booking."
	msgBookingInternal = "An error occurred in the booking process."
)

// bookingContext is the typed field bag collected turn by turn. The
// mapstructure tags drive snapshot restore.
type bookingContext struct {
	TripType     domain.TripType    `json:"trip_type" mapstructure:"trip_type"`
	Origin       string             `json:"origin" mapstructure:"origin"`
	Destination  string             `json:"destination" mapstructure:"destination"`
	OutboundDate *time.Time         `json:"outbound_date,omitempty" mapstructure:"outbound_date"`
	ReturnDate   *time.Time         `json:"return_date,omitempty" mapstructure:"return_date"`
	TravelClass  domain.TravelClass `json:"travel_class,omitempty" mapstructure:"travel_class"`
	Trips        []domain.Trip      `json:"available_trips,omitempty" mapstructure:"available_trips"`
	Selected     *domain.Trip       `json:"selected_trip,omitempty" mapstructure:"selected_trip"`
	Price        float64            `json:"price,omitempty" mapstructure:"price"`
}

// BookingTransaction walks the user from trip type to a confirmed booking.
// Authentication is deferred to the confirmation step: the auth gate pauses
// dispatch there until the authenticator reports a logged-in user.
type BookingTransaction struct {
	deps  Deps
	gate  authGate
	state BookingState
	data  bookingContext
}

var _ Transaction = (*BookingTransaction)(nil)

// NewBookingTransaction creates a booking transaction in its initial state.
func NewBookingTransaction(deps Deps) *BookingTransaction {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	return &BookingTransaction{
		deps:  deps,
		gate:  authGate{auth: deps.Auth},
		state: BookingInit,
	}
}

// requiresAuth becomes true only once the state machine reaches confirmation.
func (t *BookingTransaction) requiresAuth() bool {
	return t.state == BookingConfirmation
}

// Process routes the message through the auth gate first; while an auth
// sub-flow is pending it consumes every message.
func (t *BookingTransaction) Process(ctx context.Context, message string) string {
	if resp, handled := t.gate.intercept(ctx, t.requiresAuth(), message); handled {
		return resp
	}
	return t.dispatch(ctx, message)
}

// dispatch runs the handler for the current state. A panic inside a handler
// is logged and converted to a terminal transition plus a generic response;
// the transaction is never left mid-state after a fault.
func (t *BookingTransaction) dispatch(ctx context.Context, message string) (resp string) {
	state := t.state
	defer func() {
		if r := recover(); r != nil {
			t.deps.Logger.Error("booking handler fault", "state", string(state), "reason", r)
			t.state = BookingComplete
			resp = msgSomethingWrong
		}
	}()

	switch t.state {
	case BookingInit:
		return t.handleInit(message)
	case BookingOrigin:
		return t.handleOrigin(message)
	case BookingDestination:
		return t.handleDestination(message)
	case BookingOutboundDate:
		return t.handleOutboundDate(message)
	case BookingReturnDate:
		return t.handleReturnDate(message)
	case BookingTravelClass:
		return t.handleTravelClass(ctx, message)
	case BookingFlightSelection:
		return t.handleFlightSelection(message)
	case BookingConfirmation:
		return t.handleConfirmation(ctx, message)
	}
	return msgBookingInternal
}

func (t *BookingTransaction) handleInit(message string) string {
	if strings.Contains(strings.ToLower(message), "round") {
		t.data.TripType = domain.RoundTrip
	} else {
		t.data.TripType = domain.OneWay
	}
	t.state = BookingOrigin
	return msgAskOrigin
}

// Locations are stored verbatim; validation is deferred to the search
// collaborator.
func (t *BookingTransaction) handleOrigin(message string) string {
	t.data.Origin = message
	t.state = BookingDestination
	return msgAskDestination
}

func (t *BookingTransaction) handleDestination(message string) string {
	t.data.Destination = message
	t.state = BookingOutboundDate
	return msgAskOutbound
}

func (t *BookingTransaction) handleOutboundDate(message string) string {
	day, err := time.Parse(dateFormat, strings.TrimSpace(message))
	if err != nil {
		return msgBadDate
	}
	y, m, d := t.deps.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return msgPastDate
	}

	t.data.OutboundDate = &day

	if t.data.TripType == domain.RoundTrip {
		t.state = BookingReturnDate
		return msgAskReturn
	}
	t.state = BookingTravelClass
	return msgAskClass
}

func (t *BookingTransaction) handleReturnDate(message string) string {
	day, err := time.Parse(dateFormat, strings.TrimSpace(message))
	if err != nil {
		return msgBadDate
	}
	if day.Before(*t.data.OutboundDate) {
		return msgReturnTooEarly
	}

	t.data.ReturnDate = &day
	t.state = BookingTravelClass
	return msgAskClass
}

func (t *BookingTransaction) handleTravelClass(ctx context.Context, message string) string {
	class, err := domain.ParseTravelClass(message)
	if err != nil {
		return msgBadClass
	}

	trips, err := t.deps.Flights.Search(ctx, domain.SearchQuery{
		Origin:       t.data.Origin,
		Destination:  t.data.Destination,
		OutboundDate: *t.data.OutboundDate,
		ReturnDate:   t.data.ReturnDate,
		Limit:        domain.DefaultSearchLimit,
	})
	if err != nil {
		// Search failures are non-retryable within the transaction.
		t.deps.Logger.Error("flight search failed", "error", err)
		t.state = BookingComplete
		return msgSearchFailed
	}
	if len(trips) == 0 {
		t.state = BookingComplete
		return msgNoFlights
	}

	t.data.TravelClass = class
	t.data.Trips = trips

	table := formatTripTable(trips, class, t.data.TripType)
	t.state = BookingFlightSelection
	return fmt.Sprintf("Here are the available flights:\n\n%s\n\nPlease select a flight by entering its number (1-%d):", table, len(trips))
}

func (t *BookingTransaction) handleFlightSelection(message string) string {
	selection, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil {
		return "Please enter a valid number for your flight selection:"
	}
	if selection < 1 || selection > len(t.data.Trips) {
		return fmt.Sprintf("Invalid selection. Please choose a number between 1 and %d:", len(t.data.Trips))
	}

	trip := t.data.Trips[selection-1]
	t.data.Selected = &trip
	t.data.Price = trip.PriceFor(t.data.TravelClass)

	t.state = BookingConfirmation
	return t.summary()
}

func (t *BookingTransaction) handleConfirmation(ctx context.Context, message string) string {
	switch t.deps.Classifier.Classify(message).Intent {
	case domain.IntentConfirmation:
		user, ok := t.deps.Auth.CurrentUser()
		if !ok {
			// The auth gate should have interleaved authentication before
			// this handler ever ran.
			t.state = BookingComplete
			return msgSomethingWrong
		}

		record, err := t.deps.Bookings.Create(ctx, *t.data.Selected, user.ID, t.data.TravelClass)
		if err != nil {
			t.deps.Logger.Error("booking creation failed", "error", err, "user_id", user.ID)
			t.state = BookingComplete
			return msgBookingFailed
		}

		t.state = BookingComplete
		return "Great! Your booking is confirmed. Your reference number is: " + record.Reference

	case domain.IntentCancellation:
		t.state = BookingComplete
		return msgCancelled

	default:
		return msgConfirmUnclear
	}
}

func (t *BookingTransaction) summary() string {
	lines := []string{
		"Here's a summary of your booking:",
		"From: " + t.data.Origin,
		"To: " + t.data.Destination,
		"Date: " + t.data.OutboundDate.Format(dateFormat),
	}
	if t.data.ReturnDate != nil {
		lines = append(lines, "Return: "+t.data.ReturnDate.Format(dateFormat))
	}
	lines = append(lines,
		"Class: "+string(t.data.TravelClass),
		fmt.Sprintf("Total Price: £%.2f", t.data.Price),
		"",
		"Would you like to proceed with this booking?",
	)
	return strings.Join(lines, "\n")
}

// IsComplete reports whether the terminal state has been reached.
func (t *BookingTransaction) IsComplete() bool {
	return t.state == BookingComplete
}

// Cleanup clears collected fields and drops any pending auth sub-flow.
func (t *BookingTransaction) Cleanup() {
	t.data = bookingContext{}
	t.gate.reset()
}

// State exposes the current position for inspection.
func (t *BookingTransaction) State() BookingState {
	return t.state
}
