package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/agent"
	"github.com/classsight/insight-engine/pkg/llm"
	"github.com/classsight/insight-engine/pkg/logging"
	"github.com/classsight/insight-engine/pkg/router"
)

// QuestionAgent is the agent surface the handler drives.
type QuestionAgent interface {
	Process(ctx context.Context, req *agent.Request) (*agent.Response, error)
	ProcessStream(ctx context.Context, req *agent.Request, events chan<- llm.StreamEvent) (*agent.Response, error)
}

// DashboardSource serves the non-conversational data endpoints.
type DashboardSource interface {
	ComprehensiveDashboard(ctx context.Context, scope router.TenantScope) (*router.QueryResult, error)
	RawQuery(ctx context.Context, scope router.TenantScope, sqlQuery string) (*router.QueryResult, error)
}

// AnalyticsHandler exposes the question and dashboard endpoints.
type AnalyticsHandler struct {
	agent  QuestionAgent
	data   DashboardSource
	logger *zap.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(a QuestionAgent, data DashboardSource, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{agent: a, data: data, logger: logger}
}

// RegisterRoutes registers the analytics routes.
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/ask", h.Ask)
	r.Post("/api/ask/stream", h.AskStream)
	r.Get("/api/dashboard/{districtID}", h.Dashboard)
	r.Post("/api/query", h.RawQuery)
}

func decodeAgentRequest(r *http.Request) (*agent.Request, error) {
	var req agent.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("question is required")
	}
	return &req, nil
}

// Ask handles POST /api/ask. It runs the full pipeline and returns the
// rendered HTML answer with pipeline metadata.
func (h *AnalyticsHandler) Ask(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAgentRequest(r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, err := h.agent.Process(r.Context(), req)
	if err != nil {
		h.logger.Error("ask failed",
			zap.String("district_id", req.DistrictID),
			zap.String("error", logging.SanitizeError(err)))
		writePipelineError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode ask response", zap.Error(err))
	}
}

type sseEvent struct {
	Type          string  `json:"type"`
	Text          string  `json:"text,omitempty"`
	Message       string  `json:"message,omitempty"`
	PrimaryIntent string  `json:"primary_intent,omitempty"`
	BestView      string  `json:"best_mv,omitempty"`
	ExecutionTime float64 `json:"execution_time,omitempty"`
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev sseEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}

// AskStream handles POST /api/ask/stream. It answers as a server-sent event
// stream: a metadata event, markdown content chunks, then a done event.
func (h *AnalyticsHandler) AskStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAgentRequest(r)
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		_ = ErrorResponse(w, http.StatusInternalServerError, "streaming_unsupported", "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events := make(chan llm.StreamEvent, 16)
	done := make(chan struct{})
	start := time.Now()

	go func() {
		defer close(done)
		for ev := range events {
			switch ev.Type {
			case llm.StreamEventText:
				writeSSE(w, flusher, sseEvent{Type: "content", Text: ev.Content})
			case llm.StreamEventError:
				writeSSE(w, flusher, sseEvent{Type: "error", Message: ev.Content})
			}
		}
	}()

	resp, err := h.agent.ProcessStream(r.Context(), req, events)
	close(events)
	<-done

	if err != nil {
		h.logger.Error("streaming ask failed",
			zap.String("district_id", req.DistrictID),
			zap.String("error", logging.SanitizeError(err)))
		writeSSE(w, flusher, sseEvent{Type: "error", Message: "Report generation failed"})
		return
	}

	writeSSE(w, flusher, sseEvent{
		Type:          "done",
		PrimaryIntent: resp.PrimaryIntent.String(),
		BestView:      resp.BestView,
		ExecutionTime: time.Since(start).Seconds(),
	})
}

// Dashboard handles GET /api/dashboard/{districtID}. An optional school_id
// query parameter narrows the scope.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	scope := router.TenantScope{
		DistrictID: chi.URLParam(r, "districtID"),
		SchoolID:   r.URL.Query().Get("school_id"),
	}

	result, err := h.data.ComprehensiveDashboard(r.Context(), scope)
	if err != nil {
		h.logger.Error("dashboard failed",
			zap.String("district_id", scope.DistrictID),
			zap.String("error", logging.SanitizeError(err)))
		writePipelineError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode dashboard response", zap.Error(err))
	}
}

// rawQueryRequest is the body for POST /api/query.
type rawQueryRequest struct {
	DistrictID string `json:"district_id"`
	Query      string `json:"query"`
}

// RawQuery handles POST /api/query: a guarded read-only SELECT against the
// analytics views, district-scoped through a bound parameter.
func (h *AnalyticsHandler) RawQuery(w http.ResponseWriter, r *http.Request) {
	var req rawQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	scope := router.TenantScope{DistrictID: req.DistrictID}
	result, err := h.data.RawQuery(r.Context(), scope, req.Query)
	if err != nil {
		h.logger.Warn("raw query rejected",
			zap.String("district_id", req.DistrictID),
			zap.String("error", logging.SanitizeError(err)))
		writePipelineError(w, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode raw query response", zap.Error(err))
	}
}
