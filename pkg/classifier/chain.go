package classifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/logging"
	"github.com/classsight/insight-engine/pkg/views"
)

// ChainClassifier tries the semantic path first and degrades to the keyword
// fallback when it errors, times out, or yields nothing usable. Degradation
// is logged at warning level and never surfaced to the caller.
type ChainClassifier struct {
	semantic *SemanticClassifier
	fallback *KeywordClassifier
	timeout  time.Duration
	logger   *zap.Logger
}

// NewChainClassifier creates the two-strategy classifier. A nil semantic
// classifier means keyword-only operation.
func NewChainClassifier(semantic *SemanticClassifier, timeout time.Duration, logger *zap.Logger) *ChainClassifier {
	return &ChainClassifier{
		semantic: semantic,
		fallback: NewKeywordClassifier(),
		timeout:  timeout,
		logger:   logger,
	}
}

// Classify implements Classifier. It always returns a non-empty list.
func (c *ChainClassifier) Classify(ctx context.Context, query string) []views.Intent {
	if c.semantic != nil {
		classifyCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			classifyCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		intents, err := c.semantic.ClassifyStrict(classifyCtx, query)
		if err == nil {
			return intents
		}
		c.logger.Warn("semantic classification degraded to keyword fallback",
			zap.String("error", logging.SanitizeError(err)))
	}

	return c.fallback.Classify(ctx, query)
}
