package engine

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/berryair/concierge/pkg/domain"
)

// Snapshot serializes the transaction for session persistence. Candidate
// trips are included so a restored session can still select a flight.
func (t *BookingTransaction) Snapshot() *domain.Snapshot {
	fields := map[string]any{}
	// Decoding a struct into a map cannot fail for these field types.
	_ = mapstructure.Decode(t.data, &fields)

	var auth *domain.AuthFlowSnapshot
	if t.gate.flow != nil {
		auth = t.gate.flow.snapshot()
	}

	return &domain.Snapshot{
		Intent:    domain.IntentBooking,
		State:     string(t.state),
		Context:   fields,
		Auth:      auth,
		UpdatedAt: time.Now().UTC(),
	}
}

func restoreBooking(snap *domain.Snapshot, deps Deps) (*BookingTransaction, error) {
	t := NewBookingTransaction(deps)
	t.state = BookingState(snap.State)
	if t.state == "" {
		t.state = BookingInit
	}
	if err := decodeContext(snap.Context, &t.data); err != nil {
		return nil, fmt.Errorf("restore booking context: %w", err)
	}
	t.gate.flow = restoreAuthFlow(deps.Auth, snap.Auth)
	return t, nil
}

func restoreStatus(snap *domain.Snapshot, deps Deps) (*StatusTransaction, error) {
	var fields struct {
		BookingRef string `mapstructure:"booking_ref"`
		Prompted   bool   `mapstructure:"prompted"`
	}
	if err := decodeContext(snap.Context, &fields); err != nil {
		return nil, fmt.Errorf("restore status context: %w", err)
	}

	t := NewStatusTransaction(deps)
	t.reference = fields.BookingRef
	t.prompted = fields.Prompted
	return t, nil
}

// decodeContext restores a persisted context map into a typed context struct.
// Timestamps round-trip through JSON as RFC 3339 strings.
func decodeContext(in map[string]any, out any) error {
	if in == nil {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(in)
}
