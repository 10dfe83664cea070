package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/apperrors"
	"github.com/classsight/insight-engine/pkg/classifier"
	"github.com/classsight/insight-engine/pkg/config"
	"github.com/classsight/insight-engine/pkg/llm"
	"github.com/classsight/insight-engine/pkg/render"
	"github.com/classsight/insight-engine/pkg/router"
	"github.com/classsight/insight-engine/pkg/views"
)

// fakeDataSource records accessor calls and serves one canned result per
// method name.
type fakeDataSource struct {
	Calls []string
	Errs  map[string]error
}

func (f *fakeDataSource) result(method string) (*router.QueryResult, error) {
	f.Calls = append(f.Calls, method)
	if err := f.Errs[method]; err != nil {
		return nil, err
	}
	qr := &router.QueryResult{ViewUsed: method + "_view"}
	qr.Sections = []router.Section{{Name: "data", Rows: []map[string]any{{"method": method}}}}
	qr.Count = 1
	return qr, nil
}

func (f *fakeDataSource) SoftwareAnalytics(_ context.Context, _ router.TenantScope, _ router.SoftwareAnalyticsOptions) (*router.QueryResult, error) {
	return f.result("software_analytics")
}
func (f *fakeDataSource) DashboardMetrics(_ context.Context, _ router.TenantScope) (*router.QueryResult, error) {
	return f.result("dashboard_metrics")
}
func (f *fakeDataSource) UserAnalytics(_ context.Context, _ router.TenantScope) (*router.QueryResult, error) {
	return f.result("user_analytics")
}
func (f *fakeDataSource) InvestmentAnalysis(_ context.Context, _ router.TenantScope, _ int) (*router.QueryResult, error) {
	return f.result("investment_analysis")
}
func (f *fakeDataSource) UnauthorizedSoftware(_ context.Context, _ router.TenantScope, _ int) (*router.QueryResult, error) {
	return f.result("unauthorized_software")
}
func (f *fakeDataSource) TopUsers(_ context.Context, _ router.TenantScope, _ int, role string) (*router.QueryResult, error) {
	return f.result("top_users_" + role)
}
func (f *fakeDataSource) SchoolAnalysis(_ context.Context, _ router.TenantScope, _ int) (*router.QueryResult, error) {
	return f.result("school_analysis")
}
func (f *fakeDataSource) UsageRankings(_ context.Context, _ router.TenantScope, _ router.UsageRankingsOptions) (*router.QueryResult, error) {
	return f.result("usage_rankings")
}
func (f *fakeDataSource) ActiveUsersSummary(_ context.Context, _ router.TenantScope, _ int) (*router.QueryResult, error) {
	return f.result("active_users_summary")
}
func (f *fakeDataSource) PeerBenchmarkingSummary(_ context.Context, _ router.TenantScope) (*router.QueryResult, error) {
	return f.result("peer_benchmarking_summary")
}

func newTestAgent(t *testing.T, data *fakeDataSource, client llm.Client) *Agent {
	t.Helper()
	if client == nil {
		client = &llm.MockClient{
			CompleteFunc: func(_ context.Context, _ *llm.Request) (string, error) {
				return "<h3>report</h3>", nil
			},
		}
	}
	renderer := render.New(client, &config.AIConfig{Temperature: 0.3, MaxTokens: 1024}, zap.NewNop())
	a, err := New(classifier.NewKeywordClassifier(), data, views.NewRegistry(), renderer, 8, zap.NewNop())
	require.NoError(t, err)
	return a
}

func TestProcessDispatch(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		wantCalls []string
	}{
		{
			name:      "unauthorized software",
			question:  "any unapproved or banned software?",
			wantCalls: []string{"dashboard_metrics", "unauthorized_software"},
		},
		{
			name:      "investment",
			question:  "how much are we spending on licenses",
			wantCalls: []string{"dashboard_metrics", "investment_analysis"},
		},
		{
			name:      "student analysis",
			question:  "how many students do we have",
			wantCalls: []string{"dashboard_metrics", "top_users_student"},
		},
		{
			name:      "peer benchmarking skips dashboard context",
			question:  "how do we compare to similar districts",
			wantCalls: []string{"peer_benchmarking_summary"},
		},
		{
			name:      "dashboard overview falls back to software analytics",
			question:  "give me an overview",
			wantCalls: []string{"dashboard_metrics", "software_analytics"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &fakeDataSource{}
			a := newTestAgent(t, data, nil)

			resp, err := a.Process(context.Background(), &Request{
				Question:   tt.question,
				DistrictID: "d-1",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, data.Calls)
			assert.Equal(t, "<h3>report</h3>", resp.Answer)
			assert.False(t, resp.Cached)
			assert.Len(t, resp.Queries, len(tt.wantCalls))
		})
	}
}

func TestProcessUserAnalyticsWithActiveUsersSupplement(t *testing.T) {
	data := &fakeDataSource{}
	a := newTestAgent(t, data, nil)

	// mentions users and activity, so user_analytics leads with active_users
	// as a secondary intent
	_, err := a.Process(context.Background(), &Request{
		Question:   "how engaged are our users, who was online recently",
		DistrictID: "d-1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard_metrics", "user_analytics", "active_users_summary"}, data.Calls)
}

func TestProcessCachesByTenantAndQuestion(t *testing.T) {
	data := &fakeDataSource{}
	a := newTestAgent(t, data, nil)
	req := &Request{Question: "give me an overview", DistrictID: "d-1"}

	first, err := a.Process(context.Background(), req)
	require.NoError(t, err)
	callsAfterFirst := len(data.Calls)

	second, err := a.Process(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Len(t, data.Calls, callsAfterFirst, "cache hit should not touch the database")

	// a different school is a different cache entry
	_, err = a.Process(context.Background(), &Request{
		Question: "give me an overview", DistrictID: "d-1", SchoolID: "s-2",
	})
	require.NoError(t, err)
	assert.Greater(t, len(data.Calls), callsAfterFirst)
}

func TestProcessSkipsFailedAccessor(t *testing.T) {
	data := &fakeDataSource{Errs: map[string]error{
		"dashboard_metrics": errors.New("view refresh in progress"),
	}}
	a := newTestAgent(t, data, nil)

	resp, err := a.Process(context.Background(), &Request{
		Question:   "give me an overview",
		DistrictID: "d-1",
	})
	require.NoError(t, err)
	require.Len(t, resp.Queries, 1)
	assert.Equal(t, "software", resp.Queries[0].Method)
}

func TestProcessFailsWhenNothingAnswers(t *testing.T) {
	data := &fakeDataSource{Errs: map[string]error{
		"dashboard_metrics":  errors.New("down"),
		"software_analytics": errors.New("down"),
	}}
	a := newTestAgent(t, data, nil)

	_, err := a.Process(context.Background(), &Request{
		Question:   "give me an overview",
		DistrictID: "d-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrQueryFailed)
}

func TestProcessRejectsMissingDistrict(t *testing.T) {
	a := newTestAgent(t, &fakeDataSource{}, nil)

	_, err := a.Process(context.Background(), &Request{Question: "overview"})
	assert.ErrorIs(t, err, apperrors.ErrMissingDistrict)
}

func TestProcessSurfacesRendererFailure(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(_ context.Context, _ *llm.Request) (string, error) {
			return "", errors.New("model overloaded")
		},
	}
	a := newTestAgent(t, &fakeDataSource{}, client)

	_, err := a.Process(context.Background(), &Request{
		Question:   "give me an overview",
		DistrictID: "d-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrRendererFailure)
}

func TestProcessStream(t *testing.T) {
	client := &llm.MockClient{
		StreamFunc: func(_ context.Context, _ *llm.Request, events chan<- llm.StreamEvent) error {
			events <- llm.StreamEvent{Type: llm.StreamEventText, Content: "## Overview"}
			events <- llm.StreamEvent{Type: llm.StreamEventDone}
			return nil
		},
	}
	data := &fakeDataSource{}
	a := newTestAgent(t, data, client)

	events := make(chan llm.StreamEvent, 8)
	resp, err := a.ProcessStream(context.Background(), &Request{
		Question:   "give me an overview",
		DistrictID: "d-1",
	}, events)
	require.NoError(t, err)
	close(events)

	assert.Equal(t, views.IntentDashboardOverview, resp.PrimaryIntent)

	var texts []string
	for ev := range events {
		if ev.Type == llm.StreamEventText {
			texts = append(texts, ev.Content)
		}
	}
	assert.Equal(t, []string{"## Overview"}, texts)
}
