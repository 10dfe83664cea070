package classifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/llm"
	"github.com/classsight/insight-engine/pkg/views"
)

const classifierSystemPrompt = `You classify questions about educational software analytics into intents.

Intents and representative phrasings:
- DASHBOARD_OVERVIEW: "give me an overview", "executive summary", "district snapshot", "key metrics"
- SOFTWARE_USAGE: "top software by usage", "how much is app X used", "usage minutes", "which tools are active"
- SOFTWARE_ROI: "what is the roi", "is this software worth it", "value for money", "high roi software"
- SOFTWARE_INVESTMENT: "how much did we spend", "software budget", "license costs", "where does the money go"
- USER_ANALYTICS: "how many users", "user breakdown", "who is using what", "active user counts"
- STUDENT_ANALYSIS: "how many students", "student usage", "learner engagement", "per-student minutes"
- TEACHER_ANALYSIS: "teacher adoption", "how many teachers", "staff usage", "educator engagement"
- UNAUTHORIZED_SOFTWARE: "unauthorized software", "unapproved apps", "shadow it", "what are students using that we didn't buy"
- SCHOOL_ANALYSIS: "compare schools", "per-school breakdown", "which campus uses most", "school by school"
- GRADE_ANALYSIS: "by grade level", "elementary vs middle school", "kindergarten usage", "grades 9-12"
- USAGE_TRENDS: "usage over time", "weekly trend", "is usage growing", "recent patterns"
- USAGE_RANKINGS: "top 10 software", "rank apps by usage", "most used", "least used"
- REPORT_GENERATION: "generate a report", "detailed analysis", "comprehensive document", "export findings"
- ACTIVE_USERS: "who is active", "engagement levels", "recently active users", "logged in last week"
- COST_ANALYSIS: "cost per student", "most expensive software", "cost effectiveness", "wasted spend"
- UTILIZATION_ANALYSIS: "underutilized licenses", "adoption rate", "usage compliance", "unused software"
- PEER_BENCHMARKING: "how do we compare to similar districts", "peer benchmarks", "percentile ranking", "versus other districts"

Respond with ONLY a JSON array of 1 to 3 intent names ordered by relevance,
for example: ["SOFTWARE_USAGE", "USAGE_RANKINGS"]`

// SemanticClassifier asks an LLM to classify the question and parses the
// returned intent names. Unrecognized names are dropped. An empty result is
// returned as an error so the caller can fall back.
type SemanticClassifier struct {
	client      llm.Client
	temperature float64
	logger      *zap.Logger
}

// NewSemanticClassifier creates an LLM-backed classifier.
func NewSemanticClassifier(client llm.Client, logger *zap.Logger) *SemanticClassifier {
	return &SemanticClassifier{
		client:      client,
		temperature: 0.0,
		logger:      logger,
	}
}

// ClassifyStrict returns the classified intents or an error. It never returns
// an empty slice with a nil error.
func (c *SemanticClassifier) ClassifyStrict(ctx context.Context, query string) ([]views.Intent, error) {
	response, err := c.client.Complete(ctx, &llm.Request{
		System:      classifierSystemPrompt,
		Prompt:      fmt.Sprintf("Question: %s", query),
		Temperature: c.temperature,
		MaxTokens:   100,
	})
	if err != nil {
		return nil, fmt.Errorf("semantic classification: %w", err)
	}

	names, err := llm.ParseJSONResponse[[]string](response)
	if err != nil {
		return nil, fmt.Errorf("semantic classification: %w", err)
	}

	var intents []views.Intent
	for _, name := range names {
		intent, ok := views.ParseIntent(name)
		if !ok {
			c.logger.Debug("dropping unrecognized intent name", zap.String("name", name))
			continue
		}
		intents = append(intents, intent)
	}
	if len(intents) == 0 {
		return nil, fmt.Errorf("semantic classification returned no usable intents")
	}
	return intents, nil
}
