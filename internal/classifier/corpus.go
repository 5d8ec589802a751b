package classifier

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var defaultCorpus []byte

// Corpus is a labelled set of example phrases used to train the in-process
// intent model.
type Corpus struct {
	Intents []IntentExamples `yaml:"intents"`
}

// IntentExamples groups training phrases under one intent label.
type IntentExamples struct {
	Label   string   `yaml:"label"`
	Phrases []string `yaml:"phrases"`
}

// ParseCorpus reads a YAML corpus.
func ParseCorpus(data []byte) (*Corpus, error) {
	var corpus Corpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("parse intent corpus: %w", err)
	}
	if len(corpus.Intents) == 0 {
		return nil, fmt.Errorf("intent corpus is empty")
	}
	return &corpus, nil
}

// LoadCorpusFile reads a YAML corpus from disk.
func LoadCorpusFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intent corpus: %w", err)
	}
	return ParseCorpus(data)
}

// NewBayesFromCorpus trains a fresh model on the corpus.
func NewBayesFromCorpus(corpus *Corpus) *Bayes {
	model := NewBayes()
	for _, intent := range corpus.Intents {
		for _, phrase := range intent.Phrases {
			model.Train(intent.Label, phrase)
		}
	}
	return model
}

// NewDefaultModel trains a model on the embedded corpus.
func NewDefaultModel() *Bayes {
	corpus, err := ParseCorpus(defaultCorpus)
	if err != nil {
		// The embedded corpus is validated by tests; a parse failure here
		// is a build defect.
		panic(err)
	}
	return NewBayesFromCorpus(corpus)
}
