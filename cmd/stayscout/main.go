package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayscout/stayscout/pkg/agent"
	"github.com/stayscout/stayscout/pkg/agent/conversation"
	"github.com/stayscout/stayscout/pkg/agent/conversation/postgres"
	"github.com/stayscout/stayscout/pkg/agent/llm"
	"github.com/stayscout/stayscout/pkg/agent/llm/anthropic"
	llmopenai "github.com/stayscout/stayscout/pkg/agent/llm/openai"
	"github.com/stayscout/stayscout/pkg/agent/server"
	"github.com/stayscout/stayscout/pkg/agent/tools"
	"github.com/stayscout/stayscout/pkg/bookings"
	"github.com/stayscout/stayscout/pkg/config"
	"github.com/stayscout/stayscout/pkg/embedding"
	"github.com/stayscout/stayscout/pkg/listings"
	"github.com/stayscout/stayscout/pkg/websearch"
)

func main() {
	configPath := flag.String("config", "config/local.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := newLogger(cfg.Logging.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Database pool shared by listings, bookings and conversation storage.
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to reach database: %v", err)
	}

	// Embedding client for similarity ranking.
	embedClient := openai.NewClient(cfg.Embedding.APIKey)
	embedder := embedding.NewOpenAIEmbedder(embedClient, cfg.Embedding.Model)

	// Domain services.
	listingSvc := listings.NewService(pool, embedder, logger)
	bookingSvc := bookings.NewService(pool, logger)

	// Tools the agent can call.
	registry := tools.NewRegistry()
	registerTools(registry, listingSvc, bookingSvc)
	if cfg.Search.TavilyAPIKey != "" {
		registry.Register(webSearchTool(websearch.NewClient(cfg.Search.TavilyAPIKey)))
	}

	// LLM provider.
	provider := newProvider(cfg.LLM)

	// Conversation store.
	var convStore conversation.Store
	switch cfg.Conversation.Store {
	case "memory":
		convStore = conversation.NewMemoryStore()
	default:
		convStore = postgres.New(pool, postgres.WithTableName(cfg.Conversation.Table))
	}

	agentCfg := agent.DefaultConfig().
		WithModel(cfg.LLM.Model).
		WithMaxTurns(cfg.LLM.MaxTurns).
		WithHistoryWindow(cfg.LLM.HistoryWindow).
		WithAnswerRetries(cfg.LLM.AnswerRetries)
	agentCfg.MaxTokens = cfg.LLM.MaxTokens
	agentCfg.Temperature = float64(cfg.LLM.Temperature)

	ag := agent.New(
		provider,
		convStore,
		registry,
		agent.WithConfig(agentCfg),
		agent.WithLogger(logger),
	)

	srv := server.New(ag, listingSvc, bookingSvc, server.Config{
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	logger.Info("starting server",
		"addr", addr,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"store", cfg.Conversation.Store,
	)

	if err := srv.ListenAndServe(addr); err != nil {
		log.Fatal(err)
	}
}

func newProvider(cfg config.LLMConfig) llm.Provider {
	switch cfg.Provider {
	case "anthropic":
		if cfg.APIKey != "" {
			return anthropic.New(anthropic.Config{APIKey: cfg.APIKey})
		}
		return anthropic.NewFromEnv()
	default:
		if cfg.APIKey != "" {
			return llmopenai.New(llmopenai.Config{APIKey: cfg.APIKey})
		}
		return llmopenai.NewFromEnv()
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
