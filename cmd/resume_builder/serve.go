package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikhail/resume-builder/internal/airtable"
	"github.com/mikhail/resume-builder/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server that exposes session, generation, upload, and feedback endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	logger := newLogger()

	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cfg.Port == 0 {
		cfg.Port = servePort
	}

	p, cleanup, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var feedback *airtable.Client
	if cfg.AirtableAPIKey != "" && cfg.FeedbackTableID != "" {
		feedback, err = airtable.NewClient(cfg.AirtableAPIKey, cfg.AirtableBaseID)
		if err != nil {
			return fmt.Errorf("failed to create feedback client: %w", err)
		}
	}

	srv := server.New(server.Config{
		Port:            cfg.Port,
		Pipeline:        p,
		FeedbackStore:   feedback,
		FeedbackTableID: cfg.FeedbackTableID,
		Database:        p.DB,
		DevMode:         cfg.AppEnv == "dev",
		Logger:          logger,
	})

	return srv.Start()
}
