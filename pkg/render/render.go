// Package render turns query results into narrative reports through an LLM.
// It owns the prompt layering, the all-records escalation, and cleanup of the
// fenced output models sometimes produce.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/apperrors"
	"github.com/classsight/insight-engine/pkg/config"
	"github.com/classsight/insight-engine/pkg/llm"
	"github.com/classsight/insight-engine/pkg/logging"
	"github.com/classsight/insight-engine/pkg/router"
	"github.com/classsight/insight-engine/pkg/views"
)

// Format selects the report output format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// maxRowsPerSection bounds how many rows of any one section reach the prompt.
const maxRowsPerSection = 100

// NamedResult pairs an accessor name with its result. Results are rendered in
// slice order.
type NamedResult struct {
	Name   string
	Result *router.QueryResult
}

// Input carries everything the renderer needs for one report.
type Input struct {
	Question      string
	PrimaryIntent views.Intent
	ViewUsed      string
	Results       []NamedResult
}

// Renderer generates reports from query results.
type Renderer struct {
	client      llm.Client
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

// New creates a Renderer using the model settings from cfg.
func New(client llm.Client, cfg *config.AIConfig, logger *zap.Logger) *Renderer {
	return &Renderer{
		client:      client,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// wantsAllMarkers flag questions that ask for the complete record set rather
// than a summary.
var wantsAllMarkers = []string{"all", "list", "every", "complete", "full", "entire", "show me"}

// WantsAllRecords reports whether the question asks for every record.
func WantsAllRecords(question string) bool {
	lower := strings.ToLower(question)
	for _, marker := range wantsAllMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Render produces a complete report in the requested format.
func (r *Renderer) Render(ctx context.Context, in *Input, format Format) (string, error) {
	system := htmlSystemPrompt
	if format == FormatMarkdown {
		system = markdownSystemPrompt
	}

	out, err := r.client.Complete(ctx, &llm.Request{
		System:      system,
		Prompt:      r.buildUserPrompt(in, format),
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	})
	if err != nil {
		r.logger.Error("report generation failed",
			zap.String("intent", string(in.PrimaryIntent)),
			zap.String("error", logging.SanitizeError(err)))
		return "", fmt.Errorf("%w: %s", apperrors.ErrRendererFailure, logging.SanitizeError(err))
	}
	return stripCodeFence(out), nil
}

// RenderStream streams a markdown report chunk by chunk onto events. The
// channel receives a Done event after the last text chunk; errors surface both
// on the channel and as the return value.
func (r *Renderer) RenderStream(ctx context.Context, in *Input, events chan<- llm.StreamEvent) error {
	err := r.client.Stream(ctx, &llm.Request{
		System:      markdownSystemPrompt,
		Prompt:      r.buildUserPrompt(in, FormatMarkdown),
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	}, events)
	if err != nil {
		r.logger.Error("report streaming failed",
			zap.String("intent", string(in.PrimaryIntent)),
			zap.String("error", logging.SanitizeError(err)))
		return fmt.Errorf("%w: %s", apperrors.ErrRendererFailure, logging.SanitizeError(err))
	}
	return nil
}

func (r *Renderer) buildUserPrompt(in *Input, format Format) string {
	formatWord := "HTML"
	if format == FormatMarkdown {
		formatWord = "MARKDOWN"
	}

	var b strings.Builder
	b.WriteString("User Question: " + in.Question + "\n")
	if WantsAllRecords(in.Question) {
		b.WriteString(allRecordsInstruction)
	}
	b.WriteString("\n")
	b.WriteString(formatResults(in))
	b.WriteString(fmt.Sprintf(`
Based on this REAL data from the database, create a comprehensive %s response that:
1. Directly answers the user's question
2. Shows ALL records in tables (do not truncate or summarize if user asked for all/list)
3. Highlights key insights from the data
4. Provides actionable recommendations
5. Uses clear formatting (tables, headers, bullet points)

Remember to:
- Use user-friendly language
- Focus on insights that matter to educators
- Include both positive findings and areas for improvement
- SHOW ALL DATA RECORDS IN TABLES - never truncate when user asks for list/all`, formatWord))
	return b.String()
}

// formatResults serializes each result section as one JSON object per row so
// the model sees real values, not a schema.
func formatResults(in *Input) string {
	var b strings.Builder
	divider := strings.Repeat("=", 60)
	b.WriteString(divider + "\n")
	b.WriteString("REAL DATA FROM ANALYTICS VIEWS\n")
	b.WriteString(divider + "\n")
	b.WriteString("Query Intent: " + in.PrimaryIntent.String() + "\n")
	b.WriteString("Primary View Used: " + in.ViewUsed + "\n")

	for _, nr := range in.Results {
		if nr.Result == nil {
			continue
		}
		b.WriteString("\n--- " + sectionTitle(nr.Name) + " ---\n")
		for _, section := range nr.Result.Sections {
			b.WriteString("\n" + section.Name + ":\n")
			rows := section.Rows
			if len(rows) > maxRowsPerSection {
				rows = rows[:maxRowsPerSection]
			}
			for _, row := range rows {
				encoded, err := json.Marshal(row)
				if err != nil {
					continue
				}
				b.WriteString("  " + string(encoded) + "\n")
			}
		}
	}
	return b.String()
}

func sectionTitle(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

// stripCodeFence removes the markdown fence some models wrap HTML output in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"```html\n", "```\n"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	s = strings.TrimSuffix(s, "\n```")
	return s
}
