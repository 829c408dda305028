// Package config loads the service configuration from a YAML file with
// environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Database     DatabaseConfig     `yaml:"database"`
	LLM          LLMConfig          `yaml:"llm"`
	Embedding    EmbeddingConfig    `yaml:"embedding"`
	Search       SearchConfig       `yaml:"search"`
	Conversation ConversationConfig `yaml:"conversation"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// LLMConfig holds model provider settings.
type LLMConfig struct {
	Provider      string  `yaml:"provider"` // openai, anthropic (default: openai)
	Model         string  `yaml:"model"`
	APIKey        string  `yaml:"api_key"`
	MaxTokens     int     `yaml:"max_tokens"`
	Temperature   float32 `yaml:"temperature"`
	MaxTurns      int     `yaml:"max_turns"`
	HistoryWindow int     `yaml:"history_window"`
	AnswerRetries int     `yaml:"answer_retries"`
}

// EmbeddingConfig holds embedding settings.
type EmbeddingConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

// SearchConfig holds web search settings. The web search tool is only
// registered when an API key is present.
type SearchConfig struct {
	TavilyAPIKey string `yaml:"tavily_api_key"`
}

// ConversationConfig holds conversation persistence settings.
type ConversationConfig struct {
	Store string `yaml:"store"` // postgres, memory (default: postgres)
	Table string `yaml:"table"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// Load reads configuration from a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.LLM.MaxTurns <= 0 {
		c.LLM.MaxTurns = 10
	}
	if c.LLM.HistoryWindow <= 0 {
		c.LLM.HistoryWindow = 10
	}
	if c.LLM.AnswerRetries <= 0 {
		c.LLM.AnswerRetries = 2
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-ada-002"
	}
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = c.LLM.APIKey
	}
	if c.Conversation.Store == "" {
		c.Conversation.Store = "postgres"
	}
	if c.Conversation.Table == "" {
		c.Conversation.Table = "conversations"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	switch c.LLM.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("llm.provider must be \"openai\" or \"anthropic\", got %q", c.LLM.Provider)
	}
	switch c.Conversation.Store {
	case "postgres", "memory":
	default:
		return fmt.Errorf("conversation.store must be \"postgres\" or \"memory\", got %q", c.Conversation.Store)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
