package classifier

import (
	"log/slog"

	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

// Adapter wraps a trained intent model and applies the confidence decision
// rule: predictions at or below domain.ConfidenceThreshold collapse to the
// "unknown" sentinel, and so does any model failure. Classification never
// propagates an error to the dialog loop.
type Adapter struct {
	model  ports.IntentModel
	logger *slog.Logger
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithLogger configures a logger for degraded classifications.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// New creates an adapter over the given model.
func New(model ports.IntentModel, opts ...Option) *Adapter {
	a := &Adapter{
		model:  model,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Classify returns the effective intent for a message.
func (a *Adapter) Classify(text string) domain.Classification {
	label, confidence, err := a.model.Predict(text)
	if err != nil {
		// A missing model behaves exactly like an unknown intent: the
		// conversation continues and the user is asked to rephrase.
		a.logger.Warn("intent prediction failed", "error", err)
		return domain.Classification{Intent: domain.IntentUnknown}
	}
	if confidence <= domain.ConfidenceThreshold {
		return domain.Classification{Intent: domain.IntentUnknown, Confidence: confidence}
	}
	return domain.Classification{Intent: domain.Intent(label), Confidence: confidence}
}
