package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mikhail/resume-builder/internal/airtable"
	"github.com/mikhail/resume-builder/internal/config"
	"github.com/mikhail/resume-builder/internal/db"
	"github.com/mikhail/resume-builder/internal/extraction"
	"github.com/mikhail/resume-builder/internal/llm"
	"github.com/mikhail/resume-builder/internal/pipeline"
	"github.com/mikhail/resume-builder/internal/rendering"
)

// newLogger builds the process logger.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// loadConfig merges an optional JSON config file with environment
// variables. Environment values win.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// buildPipeline wires the collaborators described by the config into
// a ready pipeline. The returned cleanup closes the LLM client and
// database pool.
func buildPipeline(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*pipeline.Pipeline, func(), error) {
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	p := &pipeline.Pipeline{
		Normalizer: extraction.NewLLMNormalizer(client),
		Renderer:   rendering.NewChromedpRenderer(),
		Logger:     logger,
	}

	if cfg.AirtableAPIKey != "" {
		store, err := airtable.NewClient(cfg.AirtableAPIKey, cfg.AirtableBaseID)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create Airtable client: %w", err)
		}
		p.Store = store
		p.ResumeTableID = cfg.ResumeTableID
	}

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		p.DB = database
	}

	cleanup := func() {
		_ = client.Close()
		if database != nil {
			database.Close()
		}
	}

	return p, cleanup, nil
}
