package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		Database: DatabaseConfig{URL: "postgres://localhost:5432/stayscout"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URL = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database url")
	}
}

func TestValidate_InvalidProvider(t *testing.T) {
	cfg := validConfig()
	cfg.LLM.Provider = "llama"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid provider")
	}

	expected := `llm.provider must be "openai" or "anthropic", got "llama"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_InvalidStore(t *testing.T) {
	cfg := validConfig()
	cfg.Conversation.Store = "sqlite"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid conversation store")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{URL: "postgres://localhost/db"}}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("unexpected LLM defaults: %+v", cfg.LLM)
	}
	if cfg.LLM.HistoryWindow != 10 || cfg.LLM.MaxTurns != 10 {
		t.Errorf("unexpected loop defaults: %+v", cfg.LLM)
	}
	if cfg.Conversation.Store != "postgres" || cfg.Conversation.Table != "conversations" {
		t.Errorf("unexpected conversation defaults: %+v", cfg.Conversation)
	}
}

func TestApplyDefaults_EmbeddingKeyFallsBackToLLMKey(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{URL: "postgres://localhost/db"},
		LLM:      LLMConfig{APIKey: "sk-shared"},
	}
	cfg.ApplyDefaults()

	if cfg.Embedding.APIKey != "sk-shared" {
		t.Errorf("expected embedding key to fall back to llm key, got %q", cfg.Embedding.APIKey)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("STAYSCOUT_TEST_DB", "postgres://example:5432/listings")
	t.Setenv("STAYSCOUT_TEST_KEY", "")

	raw := `
http:
  port: ${STAYSCOUT_TEST_PORT:-9090}
database:
  url: ${STAYSCOUT_TEST_DB}
llm:
  api_key: ${STAYSCOUT_TEST_KEY:-fallback-key}
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected default-substituted port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.URL != "postgres://example:5432/listings" {
		t.Errorf("unexpected database url: %q", cfg.Database.URL)
	}
	if cfg.LLM.APIKey != "fallback-key" {
		t.Errorf("expected fallback api key, got %q", cfg.LLM.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
