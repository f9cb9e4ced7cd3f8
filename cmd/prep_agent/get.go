package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/leemount96/hearing-prep/internal/db"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <hearing-id>",
	Short: "Fetch the published prep sheet for a hearing",
	Long:  "Fetch the latest published prep sheet for the given hearing and print it as JSON. Reading counts as a view. Never triggers generation.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var (
	getConfigPath string
	getDBURL      string
)

func init() {
	getCmd.Flags().StringVarP(&getConfigPath, "config", "c", "", "Path to JSON config file")
	getCmd.Flags().StringVar(&getDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(getCmd)
}

func runGet(_ *cobra.Command, args []string) error {
	hearingID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid hearing ID %q: %w", args[0], err)
	}

	cfg, err := resolveConfig(getConfigPath)
	if err != nil {
		return err
	}
	if getDBURL != "" {
		cfg.DatabaseURL = getDBURL
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or use a config file)")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	record, err := getRecord(ctx, database, hearingID)
	if err != nil {
		return err
	}
	return printRecord(record)
}

// getRecord mirrors pipeline.Get for the read-only CLI path: lookup plus an
// atomic view count bump, without constructing model clients.
func getRecord(ctx context.Context, database *db.DB, hearingID uuid.UUID) (any, error) {
	record, err := database.LatestPrepSheet(ctx, hearingID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("no published prep sheet for hearing %s", hearingID)
	}
	if err := database.RecordView(ctx, record.ID); err != nil {
		return nil, err
	}
	record.ViewCount++
	return record, nil
}
