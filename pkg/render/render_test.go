package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/apperrors"
	"github.com/classsight/insight-engine/pkg/config"
	"github.com/classsight/insight-engine/pkg/llm"
	"github.com/classsight/insight-engine/pkg/router"
	"github.com/classsight/insight-engine/pkg/views"
)

func testInput() *Input {
	result := &router.QueryResult{
		ViewUsed:      "mv_software_usage_analytics_v4",
		ExecutionTime: 12 * time.Millisecond,
	}
	result.Sections = []router.Section{
		{Name: "data", Rows: []map[string]any{
			{"name": "MathWorks", "total_minutes": 5400},
			{"name": "ReadFast", "total_minutes": 1200},
		}},
	}
	return &Input{
		Question:      "which software gets the most use?",
		PrimaryIntent: views.IntentSoftwareUsage,
		ViewUsed:      "mv_software_usage_analytics_v4",
		Results:       []NamedResult{{Name: "software_analytics", Result: result}},
	}
}

func testRenderer(client llm.Client) *Renderer {
	cfg := &config.AIConfig{Temperature: 0.3, MaxTokens: 4096}
	return New(client, cfg, zap.NewNop())
}

func TestWantsAllRecords(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"show me every application we own", true},
		{"list the unauthorized software", true},
		{"give me the complete picture", true},
		{"which software gets the most use?", false},
		{"top 5 apps by minutes", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WantsAllRecords(tt.question), tt.question)
	}
}

func TestRenderBuildsLayeredPrompt(t *testing.T) {
	var captured *llm.Request
	client := &llm.MockClient{
		CompleteFunc: func(_ context.Context, req *llm.Request) (string, error) {
			captured = req
			return "<h3>Usage</h3>", nil
		},
	}

	out, err := testRenderer(client).Render(context.Background(), testInput(), FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "<h3>Usage</h3>", out)

	require.NotNil(t, captured)
	assert.Contains(t, captured.System, "HTML")
	assert.Contains(t, captured.Prompt, "User Question: which software gets the most use?")
	assert.Contains(t, captured.Prompt, "Query Intent: SOFTWARE_USAGE")
	assert.Contains(t, captured.Prompt, "Primary View Used: mv_software_usage_analytics_v4")
	assert.Contains(t, captured.Prompt, "--- SOFTWARE ANALYTICS ---")
	assert.Contains(t, captured.Prompt, `"name":"MathWorks"`)
	assert.NotContains(t, captured.Prompt, "IMPORTANT: The user is asking for ALL")
	assert.Equal(t, 0.3, captured.Temperature)
	assert.Equal(t, 4096, captured.MaxTokens)
}

func TestRenderAllRecordsEscalation(t *testing.T) {
	var captured *llm.Request
	client := &llm.MockClient{
		CompleteFunc: func(_ context.Context, req *llm.Request) (string, error) {
			captured = req
			return "ok", nil
		},
	}

	in := testInput()
	in.Question = "list all software in the district"
	_, err := testRenderer(client).Render(context.Background(), in, FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, captured.System, "MARKDOWN")
	assert.Contains(t, captured.Prompt, "IMPORTANT: The user is asking for ALL")
}

func TestRenderStripsCodeFence(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(_ context.Context, _ *llm.Request) (string, error) {
			return "```html\n<table></table>\n```", nil
		},
	}

	out, err := testRenderer(client).Render(context.Background(), testInput(), FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "<table></table>", out)
}

func TestRenderWrapsFailures(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(_ context.Context, _ *llm.Request) (string, error) {
			return "", errors.New("model unavailable")
		},
	}

	_, err := testRenderer(client).Render(context.Background(), testInput(), FormatHTML)
	assert.ErrorIs(t, err, apperrors.ErrRendererFailure)
}

func TestRenderStream(t *testing.T) {
	client := &llm.MockClient{
		StreamFunc: func(_ context.Context, _ *llm.Request, events chan<- llm.StreamEvent) error {
			events <- llm.StreamEvent{Type: llm.StreamEventText, Content: "## Usage"}
			events <- llm.StreamEvent{Type: llm.StreamEventDone}
			return nil
		},
	}

	events := make(chan llm.StreamEvent, 4)
	err := testRenderer(client).RenderStream(context.Background(), testInput(), events)
	require.NoError(t, err)
	close(events)

	var got []llm.StreamEvent
	for ev := range events {
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, llm.StreamEventText, got[0].Type)
	assert.Equal(t, "## Usage", got[0].Content)
	assert.Equal(t, llm.StreamEventDone, got[1].Type)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "<p>hi</p>", stripCodeFence("```html\n<p>hi</p>\n```"))
	assert.Equal(t, "plain text", stripCodeFence("plain text"))
	assert.Equal(t, "# title", stripCodeFence("```\n# title\n```"))
}
