package ports

// IntentModel is the raw prediction contract of a trained text classifier.
//
// Predict returns the most probable class label and its probability in [0,1].
// A model with nothing to predict with returns domain.ErrModelUnavailable;
// callers must degrade to an "unknown" classification, never crash.
type IntentModel interface {
	Predict(text string) (label string, confidence float64, err error)
}
