package domain

// Intent is a coarse classification of a user message into a goal label.
type Intent string

const (
	IntentBooking      Intent = "booking"
	IntentStatus       Intent = "status"
	IntentConfirmation Intent = "confirmation"
	IntentCancellation Intent = "cancellation"

	// IntentUnknown is the sentinel label for low-confidence or failed
	// classifications. It never maps to a transaction.
	IntentUnknown Intent = "unknown"
)

// ConfidenceThreshold is the minimum class probability a model prediction
// must exceed to be trusted. Predictions at or below it collapse to
// IntentUnknown.
const ConfidenceThreshold = 0.4

// Classification is the result of running the intent model over a message.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}
