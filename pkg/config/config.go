package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the insight engine.
// Configuration comes from config.yaml with environment variable overrides.
// Secrets (PGPASSWORD, OPENAI_API_KEY, ANTHROPIC_API_KEY) must only come from
// environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// AllowedOriginsStr is a comma-separated list of origins permitted to
	// call the API. Requests from any other origin are rejected.
	AllowedOriginsStr string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:""`

	// AllowedOrigins is the parsed form of AllowedOriginsStr.
	AllowedOrigins []string `yaml:"-"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// AI model configuration for the classifier and report renderer
	AI AIConfig `yaml:"ai"`

	// Agent behavior configuration
	Agent AgentConfig `yaml:"agent"`
}

// DatabaseConfig holds PostgreSQL configuration for the analytics views.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"analytics"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"district_analytics"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
}

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// AIConfig holds LLM endpoint configuration.
// Provider selects the client implementation: "openai" or "anthropic".
type AIConfig struct {
	Provider        string  `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	BaseURL         string  `yaml:"base_url" env:"AI_BASE_URL" env-default:""`
	Model           string  `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIAPIKey    string  `yaml:"-" env:"OPENAI_API_KEY"`    // Secret
	AnthropicAPIKey string  `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret
	Temperature     float64 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.3"`
	MaxTokens       int     `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"4096"`
}

// AgentConfig holds orchestrator settings.
type AgentConfig struct {
	// CacheSize bounds the number of cached rendered answers.
	CacheSize int `yaml:"cache_size" env:"AGENT_CACHE_SIZE" env-default:"64"`
	// ClassifierTimeoutSeconds bounds the semantic classification call before
	// the keyword fallback takes over.
	ClassifierTimeoutSeconds int `yaml:"classifier_timeout_seconds" env:"CLASSIFIER_TIMEOUT_SECONDS" env-default:"5"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOriginsStr)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported ai provider %q", c.AI.Provider)
	}
	if c.Agent.CacheSize <= 0 {
		return fmt.Errorf("agent cache_size must be positive")
	}
	return nil
}

// parseOrigins splits a comma-separated origin list, trimming whitespace and
// dropping empty entries.
func parseOrigins(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
