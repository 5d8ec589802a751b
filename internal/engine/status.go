package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/pkg/domain"
)

// referencePattern matches the 6-character A-Z0-9 codes issued at booking time.
var referencePattern = regexp.MustCompile(`\b[A-Z0-9]{6}\b`)

// findReference extracts a reference-looking token from free text. Candidates
// without a digit are skipped so ordinary six-letter words don't match.
func findReference(message string) string {
	for _, candidate := range referencePattern.FindAllString(strings.ToUpper(message), -1) {
		if strings.ContainsAny(candidate, "0123456789") {
			return candidate
		}
	}
	return ""
}

// StatusTransaction is the minimal status-check flow. It completes as soon as
// a booking reference has been captured; the opening message is scanned for a
// reference so "status of ABC123" resolves in a single turn.
type StatusTransaction struct {
	deps      Deps
	reference string
	prompted  bool
}

var _ Transaction = (*StatusTransaction)(nil)

// NewStatusTransaction creates a status transaction awaiting a reference.
func NewStatusTransaction(deps Deps) *StatusTransaction {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	return &StatusTransaction{deps: deps}
}

// Process captures a booking reference and renders the booking's status.
func (t *StatusTransaction) Process(ctx context.Context, message string) string {
	if t.reference == "" {
		ref := findReference(message)
		if ref == "" {
			if t.prompted {
				// Second chance: treat the raw reply as the reference.
				ref = strings.ToUpper(strings.TrimSpace(message))
			} else {
				t.prompted = true
				return "Please enter your booking reference:"
			}
		}
		t.reference = ref
	}
	return t.render(ctx)
}

func (t *StatusTransaction) render(ctx context.Context) string {
	record, err := t.deps.Bookings.ByReference(ctx, t.reference)
	if err != nil {
		if !errors.Is(err, domain.ErrBookingNotFound) {
			t.deps.Logger.Error("booking lookup failed", "error", err, "reference", t.reference)
		}
		return fmt.Sprintf("I couldn't find a booking with reference %s. Please double-check the code.", t.reference)
	}

	return fmt.Sprintf("Booking %s: %s, %s class, £%.2f, booked on %s.",
		record.Reference,
		strings.ToLower(string(record.TripType)),
		strings.ToLower(string(record.TravelClass)),
		record.TotalAmount,
		record.CreatedAt.Format(dateFormat))
}

// IsComplete is true once a reference is present.
func (t *StatusTransaction) IsComplete() bool {
	return t.reference != ""
}

// Cleanup clears the captured reference.
func (t *StatusTransaction) Cleanup() {
	t.reference = ""
	t.prompted = false
}

// Snapshot serializes the transaction for session persistence.
func (t *StatusTransaction) Snapshot() *domain.Snapshot {
	state := "AWAITING_REFERENCE"
	if t.reference != "" {
		state = "COMPLETE"
	}
	return &domain.Snapshot{
		Intent: domain.IntentStatus,
		State:  state,
		Context: map[string]any{
			"booking_ref": t.reference,
			"prompted":    t.prompted,
		},
		UpdatedAt: time.Now().UTC(),
	}
}
