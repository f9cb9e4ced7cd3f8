package main

import (
	"context"
	"fmt"
	"time"

	"github.com/leemount96/hearing-prep/internal/config"
	"github.com/leemount96/hearing-prep/internal/db"
	"github.com/leemount96/hearing-prep/internal/generation"
	"github.com/leemount96/hearing-prep/internal/llm"
	"github.com/leemount96/hearing-prep/internal/pipeline"
	"github.com/leemount96/hearing-prep/internal/retrieval"
)

// deps bundles the explicitly constructed clients the commands share.
// Everything is built at command start and shut down on exit; nothing is a
// package-level singleton.
type deps struct {
	db       *db.DB
	client   llm.Client
	pipeline *pipeline.Pipeline
}

func (d *deps) close() {
	if d.client != nil {
		_ = d.client.Close()
	}
	if d.db != nil {
		d.db.Close()
	}
}

// resolveConfig merges the optional config file, environment, and returns a
// validated Config.
func resolveConfig(configPath string) (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides layers CLI flag values over the file/env configuration.
// Empty flags leave the existing values alone.
func applyOverrides(cfg *config.Config, dbURL, apiKey, provider, model string) {
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if provider != "" {
		cfg.Provider = provider
	}
	if model != "" {
		cfg.Model = model
	}
}

func llmConfig(cfg *config.Config) *llm.Config {
	var modelCfg *llm.Config
	if cfg.Provider == "responses" {
		modelCfg = llm.DefaultResponsesConfig(cfg.ModelBaseURL)
	} else {
		modelCfg = llm.DefaultGeminiConfig()
	}
	if cfg.Model != "" {
		modelCfg = modelCfg.WithModel(llm.TierAdvanced, cfg.Model)
	}
	return modelCfg
}

// buildDeps connects to the database and model service and wires the
// pipeline.
func buildDeps(ctx context.Context, cfg *config.Config) (*deps, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or use a config file)")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY or MODEL_API_KEY)")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, llmConfig(cfg), cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, err
	}

	var opts []pipeline.Option
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, pipeline.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}

	p := pipeline.New(
		database,
		retrieval.New(database),
		generation.NewGenerator(client),
		database,
		opts...,
	)

	return &deps{db: database, client: client, pipeline: p}, nil
}
