package classifier

import (
	"math"
	"strings"
	"unicode"

	"github.com/berryair/concierge/pkg/domain"
)

// Bayes is a multinomial naive-Bayes text classifier over a bag-of-words
// representation. It is deliberately small: enough to drive the dialog loop
// in-process without an external model service.
type Bayes struct {
	classes map[string]*classCounts
	vocab   map[string]struct{}
	docs    int
}

type classCounts struct {
	docs   int
	tokens map[string]int
	total  int
}

// NewBayes creates an untrained classifier. Predict returns
// domain.ErrModelUnavailable until at least one example has been added.
func NewBayes() *Bayes {
	return &Bayes{
		classes: make(map[string]*classCounts),
		vocab:   make(map[string]struct{}),
	}
}

// Train adds one labelled example.
func (b *Bayes) Train(label, text string) {
	counts, ok := b.classes[label]
	if !ok {
		counts = &classCounts{tokens: make(map[string]int)}
		b.classes[label] = counts
	}
	counts.docs++
	b.docs++
	for _, token := range tokenize(text) {
		counts.tokens[token]++
		counts.total++
		b.vocab[token] = struct{}{}
	}
}

// Predict returns the most probable label and its normalized probability.
func (b *Bayes) Predict(text string) (string, float64, error) {
	if b.docs == 0 {
		return "", 0, domain.ErrModelUnavailable
	}

	tokens := tokenize(text)
	vocabSize := float64(len(b.vocab))

	// Log joint probability per class with Laplace smoothing.
	scores := make(map[string]float64, len(b.classes))
	for label, counts := range b.classes {
		score := math.Log(float64(counts.docs) / float64(b.docs))
		for _, token := range tokens {
			count := float64(counts.tokens[token])
			score += math.Log((count + 1) / (float64(counts.total) + vocabSize))
		}
		scores[label] = score
	}

	// Normalize through log-sum-exp to get posterior probabilities.
	maxScore := math.Inf(-1)
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}
	var sum float64
	for _, score := range scores {
		sum += math.Exp(score - maxScore)
	}

	var best string
	var bestProb float64
	for label, score := range scores {
		prob := math.Exp(score-maxScore) / sum
		if prob > bestProb || (prob == bestProb && label < best) {
			best = label
			bestProb = prob
		}
	}
	return best, bestProb, nil
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
