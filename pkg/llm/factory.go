package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/config"
)

// NewClient creates an LLM client for the configured provider.
func NewClient(cfg *config.AIConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg, logger)
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
