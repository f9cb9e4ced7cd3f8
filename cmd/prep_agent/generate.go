package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/leemount96/hearing-prep/internal/observability"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <hearing-id>",
	Short: "Generate a prep sheet for a hearing",
	Long:  "Generate a briefing document for the given hearing: retrieve related GAO reports, call the model, validate the result, and persist it as a new published version. If a published sheet already exists, it is returned without regeneration unless --force is set.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var (
	generateConfigPath string
	generateDBURL      string
	generateAPIKey     string
	generateProvider   string
	generateModel      string
	generateForce      bool
	generateVerbose    bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateConfigPath, "config", "c", "", "Path to JSON config file")
	generateCmd.Flags().StringVar(&generateDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Model API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().StringVar(&generateProvider, "provider", "", "Model provider: gemini or responses")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "Override the model name")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Regenerate even if a published sheet exists")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print hearing and retrieval details")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, args []string) error {
	hearingID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid hearing ID %q: %w", args[0], err)
	}

	cfg, err := resolveConfig(generateConfigPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, generateDBURL, generateAPIKey, generateProvider, generateModel)
	if generateVerbose {
		cfg.Verbose = true
	}

	ctx := context.Background()
	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		d.pipeline.SetObserver(printer)
	}

	if generateForce {
		record, err := d.pipeline.Regenerate(ctx, hearingID)
		if err != nil {
			return fmt.Errorf("failed to generate prep sheet: %w", err)
		}
		return printRecord(record)
	}

	record, err := d.pipeline.Generate(ctx, hearingID)
	if err != nil {
		return fmt.Errorf("failed to generate prep sheet: %w", err)
	}
	return printRecord(record)
}

func printRecord(record any) error {
	jsonBytes, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prep sheet: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(jsonBytes))
	return nil
}
