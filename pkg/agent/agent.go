// Package agent orchestrates the full question pipeline: classify the
// question, fetch data through the accessor layer, and render a report.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/apperrors"
	"github.com/classsight/insight-engine/pkg/classifier"
	"github.com/classsight/insight-engine/pkg/llm"
	"github.com/classsight/insight-engine/pkg/logging"
	"github.com/classsight/insight-engine/pkg/render"
	"github.com/classsight/insight-engine/pkg/router"
	"github.com/classsight/insight-engine/pkg/views"
)

// DataSource is the accessor surface the agent drives. *router.Router
// satisfies it.
type DataSource interface {
	SoftwareAnalytics(ctx context.Context, scope router.TenantScope, opts router.SoftwareAnalyticsOptions) (*router.QueryResult, error)
	DashboardMetrics(ctx context.Context, scope router.TenantScope) (*router.QueryResult, error)
	UserAnalytics(ctx context.Context, scope router.TenantScope) (*router.QueryResult, error)
	InvestmentAnalysis(ctx context.Context, scope router.TenantScope, limit int) (*router.QueryResult, error)
	UnauthorizedSoftware(ctx context.Context, scope router.TenantScope, limit int) (*router.QueryResult, error)
	TopUsers(ctx context.Context, scope router.TenantScope, limit int, role string) (*router.QueryResult, error)
	SchoolAnalysis(ctx context.Context, scope router.TenantScope, limit int) (*router.QueryResult, error)
	UsageRankings(ctx context.Context, scope router.TenantScope, opts router.UsageRankingsOptions) (*router.QueryResult, error)
	ActiveUsersSummary(ctx context.Context, scope router.TenantScope, limit int) (*router.QueryResult, error)
	PeerBenchmarkingSummary(ctx context.Context, scope router.TenantScope) (*router.QueryResult, error)
}

// Request is one analytics question scoped to a tenant.
type Request struct {
	Question   string `json:"question"`
	DistrictID string `json:"district_id"`
	SchoolID   string `json:"school_id,omitempty"`
	// Verbose raises pipeline logging to info level for this request.
	Verbose bool `json:"verbose,omitempty"`
}

// QueryTrace records one accessor call made while answering a question.
type QueryTrace struct {
	Method        string        `json:"method"`
	ViewUsed      string        `json:"mv_used"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// Response is a rendered answer plus the pipeline metadata behind it.
type Response struct {
	Answer        string         `json:"answer"`
	Intents       []views.Intent `json:"intents"`
	PrimaryIntent views.Intent   `json:"primary_intent"`
	BestView      string         `json:"best_mv"`
	Queries       []QueryTrace   `json:"mv_queries"`
	ExecutionTime time.Duration  `json:"execution_time"`
	Cached        bool           `json:"cached"`
}

// Agent answers analytics questions. One Agent serves all tenants; scope
// travels with each request.
type Agent struct {
	classifier classifier.Classifier
	data       DataSource
	registry   *views.Registry
	renderer   *render.Renderer
	cache      *lru.Cache[string, *Response]
	logger     *zap.Logger
}

// New builds an Agent. cacheSize bounds the rendered-answer cache.
func New(c classifier.Classifier, data DataSource, registry *views.Registry, renderer *render.Renderer, cacheSize int, logger *zap.Logger) (*Agent, error) {
	cache, err := lru.New[string, *Response](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("building response cache: %w", err)
	}
	return &Agent{
		classifier: c,
		data:       data,
		registry:   registry,
		renderer:   renderer,
		cache:      cache,
		logger:     logger,
	}, nil
}

func cacheKey(req *Request) string {
	return req.DistrictID + "|" + req.SchoolID + "|" + strings.ToLower(strings.TrimSpace(req.Question))
}

// Process answers a question with a complete HTML report. Identical questions
// within a tenant are served from the cache.
func (a *Agent) Process(ctx context.Context, req *Request) (*Response, error) {
	key := cacheKey(req)
	if cached, ok := a.cache.Get(key); ok {
		hit := *cached
		hit.Cached = true
		return &hit, nil
	}

	start := time.Now()
	collected, err := a.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	answer, err := a.renderer.Render(ctx, collected.renderInput(req.Question), render.FormatHTML)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Answer:        answer,
		Intents:       collected.intents,
		PrimaryIntent: collected.intents[0],
		BestView:      collected.bestView,
		Queries:       collected.traces,
		ExecutionTime: time.Since(start),
	}
	a.cache.Add(key, resp)
	return resp, nil
}

// ProcessStream answers a question as a markdown stream on events. Streamed
// answers bypass the cache.
func (a *Agent) ProcessStream(ctx context.Context, req *Request, events chan<- llm.StreamEvent) (*Response, error) {
	start := time.Now()
	collected, err := a.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := a.renderer.RenderStream(ctx, collected.renderInput(req.Question), events); err != nil {
		return nil, err
	}

	return &Response{
		Intents:       collected.intents,
		PrimaryIntent: collected.intents[0],
		BestView:      collected.bestView,
		Queries:       collected.traces,
		ExecutionTime: time.Since(start),
	}, nil
}

// collected is the data-gathering half of the pipeline, shared by the
// complete and streaming paths.
type collected struct {
	intents  []views.Intent
	bestView string
	results  []render.NamedResult
	traces   []QueryTrace
}

func (c *collected) renderInput(question string) *render.Input {
	return &render.Input{
		Question:      question,
		PrimaryIntent: c.intents[0],
		ViewUsed:      c.bestView,
		Results:       c.results,
	}
}

func (a *Agent) collect(ctx context.Context, req *Request) (*collected, error) {
	scope := router.TenantScope{DistrictID: req.DistrictID, SchoolID: req.SchoolID}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	intents := a.classifier.Classify(ctx, req.Question)
	best := a.registry.BestView(intents)

	log := a.logger.Debug
	if req.Verbose {
		log = a.logger.Info
	}
	log("question classified",
		zap.String("district_id", req.DistrictID),
		zap.Any("intents", intents),
		zap.String("best_view", best.Name))

	c := &collected{intents: intents, bestView: best.Name}
	primary := intents[0]

	// Headline metrics give the model district context for any question.
	// Peer benchmarking is self-contained and skips them.
	if primary != views.IntentPeerBenchmarking {
		a.fetch(ctx, c, req, "dashboard_metrics", func() (*router.QueryResult, error) {
			return a.data.DashboardMetrics(ctx, scope)
		})
	}

	switch primary {
	case views.IntentUnauthorizedSoftware:
		a.fetch(ctx, c, req, "unauthorized", func() (*router.QueryResult, error) {
			return a.data.UnauthorizedSoftware(ctx, scope, 0)
		})
	case views.IntentSoftwareInvestment, views.IntentCostAnalysis:
		a.fetch(ctx, c, req, "investment", func() (*router.QueryResult, error) {
			return a.data.InvestmentAnalysis(ctx, scope, 0)
		})
	case views.IntentUserAnalytics:
		a.fetch(ctx, c, req, "users", func() (*router.QueryResult, error) {
			return a.data.UserAnalytics(ctx, scope)
		})
		// The user analytics view only covers students and teachers. When the
		// question also touches active users, add the all-roles summary.
		if hasIntent(intents, views.IntentActiveUsers) {
			a.fetch(ctx, c, req, "active_users", func() (*router.QueryResult, error) {
				return a.data.ActiveUsersSummary(ctx, scope, 0)
			})
		}
	case views.IntentActiveUsers:
		a.fetch(ctx, c, req, "active_users", func() (*router.QueryResult, error) {
			return a.data.ActiveUsersSummary(ctx, scope, 0)
		})
	case views.IntentStudentAnalysis:
		a.fetch(ctx, c, req, "students", func() (*router.QueryResult, error) {
			return a.data.TopUsers(ctx, scope, 0, "student")
		})
	case views.IntentTeacherAnalysis:
		a.fetch(ctx, c, req, "teachers", func() (*router.QueryResult, error) {
			return a.data.TopUsers(ctx, scope, 0, "teacher")
		})
	case views.IntentSchoolAnalysis:
		a.fetch(ctx, c, req, "schools", func() (*router.QueryResult, error) {
			return a.data.SchoolAnalysis(ctx, scope, 0)
		})
	case views.IntentUsageRankings:
		a.fetch(ctx, c, req, "rankings", func() (*router.QueryResult, error) {
			return a.data.UsageRankings(ctx, scope, router.UsageRankingsOptions{})
		})
	case views.IntentSoftwareROI:
		a.fetch(ctx, c, req, "roi_analysis", func() (*router.QueryResult, error) {
			return a.data.SoftwareAnalytics(ctx, scope, router.SoftwareAnalyticsOptions{OrderBy: "avg_roi_percentage"})
		})
	case views.IntentPeerBenchmarking:
		a.fetch(ctx, c, req, "peer_benchmarking", func() (*router.QueryResult, error) {
			return a.data.PeerBenchmarkingSummary(ctx, scope)
		})
	default:
		a.fetch(ctx, c, req, "software", func() (*router.QueryResult, error) {
			return a.data.SoftwareAnalytics(ctx, scope, router.SoftwareAnalyticsOptions{})
		})
	}

	if len(c.results) == 0 {
		return nil, fmt.Errorf("%w: no data source answered", apperrors.ErrQueryFailed)
	}
	return c, nil
}

// fetch runs one accessor and folds its result into c. A failed accessor is
// logged and skipped so one bad view does not sink the whole answer.
func (a *Agent) fetch(ctx context.Context, c *collected, req *Request, name string, call func() (*router.QueryResult, error)) {
	if ctx.Err() != nil {
		return
	}
	result, err := call()
	if err != nil {
		a.logger.Warn("accessor skipped",
			zap.String("method", name),
			zap.String("district_id", req.DistrictID),
			zap.String("error", logging.SanitizeError(err)))
		return
	}
	c.results = append(c.results, render.NamedResult{Name: name, Result: result})
	c.traces = append(c.traces, QueryTrace{
		Method:        name,
		ViewUsed:      result.ViewUsed,
		ExecutionTime: result.ExecutionTime,
	})
}

func hasIntent(intents []views.Intent, target views.Intent) bool {
	for _, i := range intents {
		if i == target {
			return true
		}
	}
	return false
}
