package classifier

import (
	"errors"
	"testing"

	"github.com/berryair/concierge/pkg/domain"
)

type stubModel struct {
	label      string
	confidence float64
	err        error
}

func (m stubModel) Predict(text string) (string, float64, error) {
	return m.label, m.confidence, m.err
}

func TestAdapter_ThresholdCollapsesToUnknown(t *testing.T) {
	cases := []struct {
		name       string
		confidence float64
		want       domain.Intent
	}{
		{"above threshold", 0.41, domain.IntentBooking},
		{"at threshold", 0.4, domain.IntentUnknown},
		{"below threshold", 0.1, domain.IntentUnknown},
		{"certain", 1.0, domain.IntentBooking},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter := New(stubModel{label: "booking", confidence: tc.confidence})
			got := adapter.Classify("book a flight")
			if got.Intent != tc.want {
				t.Errorf("confidence %.2f: got %s, want %s", tc.confidence, got.Intent, tc.want)
			}
		})
	}
}

func TestAdapter_ModelUnavailableIsUnknown(t *testing.T) {
	adapter := New(stubModel{err: domain.ErrModelUnavailable})
	got := adapter.Classify("book a flight")
	if got.Intent != domain.IntentUnknown {
		t.Errorf("missing model must classify as unknown, got %s", got.Intent)
	}
}

func TestAdapter_ArbitraryModelErrorIsUnknown(t *testing.T) {
	adapter := New(stubModel{err: errors.New("model exploded")})
	if got := adapter.Classify("anything"); got.Intent != domain.IntentUnknown {
		t.Errorf("model failure must classify as unknown, got %s", got.Intent)
	}
}

func TestBayes_UntrainedModelUnavailable(t *testing.T) {
	_, _, err := NewBayes().Predict("book a flight")
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestBayes_DefaultCorpusSeparatesIntents(t *testing.T) {
	model := NewDefaultModel()

	cases := []struct {
		text string
		want string
	}{
		{"i want to book a flight to paris", "booking"},
		{"what's the status of my booking?", "status"},
		{"yes, proceed with the booking", "confirmation"},
		{"no, cancel it", "cancellation"},
	}

	for _, tc := range cases {
		label, confidence, err := model.Predict(tc.text)
		if err != nil {
			t.Fatalf("Predict(%q): %v", tc.text, err)
		}
		if label != tc.want {
			t.Errorf("Predict(%q) = %s (%.2f), want %s", tc.text, label, confidence, tc.want)
		}
		if confidence <= domain.ConfidenceThreshold {
			t.Errorf("Predict(%q) confidence %.2f below threshold", tc.text, confidence)
		}
	}
}

func TestBayes_GibberishIsLowConfidenceThroughAdapter(t *testing.T) {
	adapter := New(NewDefaultModel())
	got := adapter.Classify("qwerty zxcvb plumbus")
	// Unseen vocabulary should not be confidently attributed to any intent.
	if got.Intent != domain.IntentUnknown && got.Confidence > 0.9 {
		t.Errorf("gibberish classified as %s with confidence %.2f", got.Intent, got.Confidence)
	}
}
