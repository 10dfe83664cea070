package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/config"
	"github.com/classsight/insight-engine/pkg/logging"
)

// OpenAIClient implements Client using the OpenAI chat completions API.
// It also covers any OpenAI-compatible endpoint via a custom base URL.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient creates a client for OpenAI or an OpenAI-compatible endpoint.
func NewOpenAIClient(cfg *config.AIConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete generates a completion for the request.
func (c *OpenAIClient) Complete(ctx context.Context, req *Request) (string, error) {
	start := time.Now()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		c.logger.Error("openai completion failed",
			zap.String("model", c.model),
			zap.Duration("duration", time.Since(start)),
			zap.String("error", logging.SanitizeError(err)))
		return "", ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	c.logger.Debug("openai completion",
		zap.String("model", c.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return resp.Choices[0].Message.Content, nil
}

// Stream generates a completion, sending text deltas to events as they arrive.
func (c *OpenAIClient) Stream(ctx context.Context, req *Request, events chan<- StreamEvent) error {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
		Stream:      true,
	})
	if err != nil {
		sendEvent(ctx, events, StreamEvent{Type: StreamEventError, Content: "completion failed"})
		return ClassifyError(err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if err != nil {
			if isStreamEnd(err) {
				sendEvent(ctx, events, StreamEvent{Type: StreamEventDone})
				return nil
			}
			c.logger.Error("openai stream failed",
				zap.String("model", c.model),
				zap.String("error", logging.SanitizeError(err)))
			sendEvent(ctx, events, StreamEvent{Type: StreamEventError, Content: "stream interrupted"})
			return ClassifyError(err)
		}
		if len(resp.Choices) > 0 && resp.Choices[0].Delta.Content != "" {
			if !sendEvent(ctx, events, StreamEvent{Type: StreamEventText, Content: resp.Choices[0].Delta.Content}) {
				return ctx.Err()
			}
		}
	}
}

// sendEvent delivers an event unless the context has been cancelled.
func sendEvent(ctx context.Context, events chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func isStreamEnd(err error) bool {
	return errors.Is(err, io.EOF)
}
