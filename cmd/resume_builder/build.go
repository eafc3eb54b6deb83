package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mikhail/resume-builder/internal/docparse"
	"github.com/mikhail/resume-builder/internal/intake"
	"github.com/mikhail/resume-builder/internal/session"
	"github.com/mikhail/resume-builder/internal/types"
)

var (
	buildConfigPath string
	buildInput      string
	buildResumePDF  string
	buildSample     bool
	buildOutputDir  string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate one resume end-to-end",
	Long: `Runs the full pipeline once: intake validation -> extraction -> persistence -> PDF rendering.

Intake comes from --input (a JSON file of intake fields), --resume-pdf (an existing resume to read), or --sample.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildConfigPath, "config", "", "Path to config.json file")
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "", "Path to a JSON file of intake fields")
	buildCmd.Flags().StringVar(&buildResumePDF, "resume-pdf", "", "Path to an existing resume PDF to read intake from")
	buildCmd.Flags().BoolVar(&buildSample, "sample", false, "Use the built-in sample intake")
	buildCmd.Flags().StringVarP(&buildOutputDir, "output", "o", ".", "Directory to write the generated PDF into")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	logger := newLogger()

	sources := 0
	for _, set := range []bool{buildInput != "", buildResumePDF != "", buildSample} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of --input, --resume-pdf, or --sample must be provided")
	}

	cfg, err := loadConfig(buildConfigPath)
	if err != nil {
		return err
	}

	p, cleanup, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var record *types.IntakeRecord
	switch {
	case buildSample:
		record = intake.SampleRecord()

	case buildInput != "":
		data, err := os.ReadFile(buildInput)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return fmt.Errorf("failed to parse input file: %w", err)
		}
		record, err = intake.Validate(fields)
		if err != nil {
			return err
		}

	case buildResumePDF != "":
		f, err := os.Open(buildResumePDF)
		if err != nil {
			return fmt.Errorf("failed to open resume PDF: %w", err)
		}
		text, extractErr := docparse.ExtractText(f)
		_ = f.Close()
		if extractErr != nil {
			return extractErr
		}
		record, err = p.Normalizer.ReadDocument(ctx, text)
		if err != nil {
			return err
		}
	}

	sess := session.New()
	result, err := p.Run(ctx, sess, record)
	if err != nil {
		return err
	}

	outPath := filepath.Join(buildOutputDir, result.Artifact.FileName)
	if err := os.WriteFile(outPath, result.Artifact.PDF, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	logger.Info().Str("path", outPath).Int("bytes", len(result.Artifact.PDF)).Msg("resume generated")
	return nil
}
