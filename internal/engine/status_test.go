package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/berryair/concierge/pkg/domain"
)

func TestStatus_ReferenceInFirstMessage(t *testing.T) {
	env := newTestEnv()
	env.booker.byRef["AB12CD"] = domain.BookingRecord{
		Reference:   "AB12CD",
		TripType:    domain.OneWay,
		TravelClass: domain.ClassEconomy,
		TotalAmount: 110,
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	tx := NewStatusTransaction(env.deps())
	resp := tx.Process(context.Background(), "what's the status of booking AB12CD?")

	if !strings.Contains(resp, "Booking AB12CD") {
		t.Errorf("expected booking details, got %q", resp)
	}
	if !strings.Contains(resp, "£110.00") {
		t.Errorf("expected total amount, got %q", resp)
	}
	if !tx.IsComplete() {
		t.Error("status transaction completes once a reference is present")
	}
}

func TestStatus_PromptsWhenNoReferenceFound(t *testing.T) {
	env := newTestEnv()
	env.booker.byRef["XY99ZZ"] = domain.BookingRecord{
		Reference:   "XY99ZZ",
		TripType:    domain.RoundTrip,
		TravelClass: domain.ClassFirst,
		TotalAmount: 945.5,
		CreatedAt:   time.Date(2026, 7, 15, 9, 0, 0, 0, time.UTC),
	}

	ctx := context.Background()
	tx := NewStatusTransaction(env.deps())

	resp := tx.Process(ctx, "check my booking status please")
	if !strings.Contains(resp, "booking reference") {
		t.Fatalf("expected reference prompt, got %q", resp)
	}
	if tx.IsComplete() {
		t.Fatal("must not complete before a reference is captured")
	}

	resp = tx.Process(ctx, "xy99zz")
	if !strings.Contains(resp, "Booking XY99ZZ") {
		t.Errorf("expected booking details, got %q", resp)
	}
	if !tx.IsComplete() {
		t.Error("expected completion after the reference turn")
	}
}

func TestStatus_UnknownReference(t *testing.T) {
	env := newTestEnv()
	tx := NewStatusTransaction(env.deps())

	resp := tx.Process(context.Background(), "status for ZZ00ZZ")
	if !strings.Contains(resp, "couldn't find a booking with reference ZZ00ZZ") {
		t.Errorf("expected not-found message, got %q", resp)
	}
	if !tx.IsComplete() {
		t.Error("a failed lookup still completes the transaction")
	}
}
