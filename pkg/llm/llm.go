// Package llm provides provider-agnostic LLM client functionality for the
// intent classifier and the report renderer.
package llm

import (
	"context"
)

// Request describes one completion call.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// StreamEventType defines types of streaming events.
type StreamEventType string

const (
	StreamEventText  StreamEventType = "text"
	StreamEventDone  StreamEventType = "done"
	StreamEventError StreamEventType = "error"
)

// StreamEvent represents a streaming event from the LLM.
type StreamEvent struct {
	Type    StreamEventType `json:"type"`
	Content string          `json:"content,omitempty"`
}

// Client defines the interface for LLM operations.
// Use this interface for dependency injection to enable mocking in tests.
type Client interface {
	// Complete generates a completion for the request.
	Complete(ctx context.Context, req *Request) (string, error)

	// Stream generates a completion and sends text chunks to events as they
	// arrive. The channel is not closed by the implementation; a Done or
	// Error event marks the end of the stream.
	Stream(ctx context.Context, req *Request, events chan<- StreamEvent) error

	// Model returns the configured model name.
	Model() string
}
