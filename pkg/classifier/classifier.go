// Package classifier maps a free-text analytics question to an ordered list
// of query intents. The semantic strategy asks an LLM; the keyword strategy
// is a deterministic fallback used when the LLM is unavailable.
package classifier

import (
	"context"

	"github.com/classsight/insight-engine/pkg/views"
)

// Classifier turns a question into a non-empty ordered intent list,
// most relevant first.
type Classifier interface {
	Classify(ctx context.Context, query string) []views.Intent
}
