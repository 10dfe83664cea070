package llm

import (
	"context"
)

// MockClient is a configurable mock for testing LLM-dependent functionality.
// Set the function fields to control behavior in tests.
type MockClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty string and nil error.
	CompleteFunc func(ctx context.Context, req *Request) (string, error)

	// StreamFunc is called when Stream is invoked.
	// If nil, sends a single Done event and returns nil.
	StreamFunc func(ctx context.Context, req *Request, events chan<- StreamEvent) error

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	CompleteCalls int
	StreamCalls   int

	// CompleteRequests records every request passed to Complete.
	CompleteRequests []*Request
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, req *Request) (string, error) {
	m.CompleteCalls++
	m.CompleteRequests = append(m.CompleteRequests, req)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

// Stream implements Client.
func (m *MockClient) Stream(ctx context.Context, req *Request, events chan<- StreamEvent) error {
	m.StreamCalls++
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, req, events)
	}
	events <- StreamEvent{Type: StreamEventDone}
	return nil
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Reset clears call tracking.
func (m *MockClient) Reset() {
	m.CompleteCalls = 0
	m.StreamCalls = 0
	m.CompleteRequests = nil
}

// Ensure MockClient implements Client at compile time.
var _ Client = (*MockClient)(nil)
