package classifier

import (
	"context"

	"github.com/classsight/insight-engine/pkg/views"
)

// KeywordClassifier scores intents by keyword occurrence. It is a pure
// function of the query text and never fails.
type KeywordClassifier struct{}

// NewKeywordClassifier creates the deterministic keyword classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify implements Classifier.
func (c *KeywordClassifier) Classify(_ context.Context, query string) []views.Intent {
	return views.DetectIntents(query)
}
