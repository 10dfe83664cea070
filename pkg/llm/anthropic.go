package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/config"
	"github.com/classsight/insight-engine/pkg/logging"
)

// AnthropicClient implements Client using the Anthropic messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates a client for the Anthropic API.
func NewAnthropicClient(cfg *config.AIConfig, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	opts := []anthropic.ClientOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.AnthropicAPIKey, opts...),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string {
	return c.model
}

func (c *AnthropicClient) buildRequest(req *Request) anthropic.MessagesRequest {
	temperature := float32(req.Temperature)
	prompt := req.Prompt

	return anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		System:      req.System,
		MaxTokens:   req.MaxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: anthropic.MessagesContentTypeText, Text: &prompt},
			}},
		},
	}
}

// Complete generates a completion for the request.
func (c *AnthropicClient) Complete(ctx context.Context, req *Request) (string, error) {
	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, c.buildRequest(req))
	if err != nil {
		c.logger.Error("anthropic completion failed",
			zap.String("model", c.model),
			zap.Duration("duration", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return "", ClassifyError(err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			sb.WriteString(*block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no text content")
	}

	c.logger.Debug("anthropic completion",
		zap.String("model", c.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens))

	return sb.String(), nil
}

// Stream generates a completion, sending text deltas to events as they arrive.
func (c *AnthropicClient) Stream(ctx context.Context, req *Request, events chan<- StreamEvent) error {
	_, err := c.client.CreateMessagesStream(ctx, anthropic.MessagesStreamRequest{
		MessagesRequest: c.buildRequest(req),
		OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
			if data.Delta.Text != nil && *data.Delta.Text != "" {
				sendEvent(ctx, events, StreamEvent{Type: StreamEventText, Content: *data.Delta.Text})
			}
		},
	})
	if err != nil {
		c.logger.Error("anthropic stream failed",
			zap.String("model", c.model),
			zap.String("error", logging.SanitizeError(err)))
		sendEvent(ctx, events, StreamEvent{Type: StreamEventError, Content: "stream interrupted"})
		return ClassifyError(err)
	}

	sendEvent(ctx, events, StreamEvent{Type: StreamEventDone})
	return nil
}
