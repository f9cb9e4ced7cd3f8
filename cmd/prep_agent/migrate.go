package main

import (
	"context"
	"fmt"
	"os"

	"github.com/leemount96/hearing-prep/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  "Apply the embedded database schema. All statements are idempotent, so the command is safe to re-run.",
	RunE:  runMigrate,
}

var (
	migrateConfigPath string
	migrateDBURL      string
)

func init() {
	migrateCmd.Flags().StringVarP(&migrateConfigPath, "config", "c", "", "Path to JSON config file")
	migrateCmd.Flags().StringVar(&migrateDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(migrateConfigPath)
	if err != nil {
		return err
	}
	if migrateDBURL != "" {
		cfg.DatabaseURL = migrateDBURL
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

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(os.Stdout, "Schema is up to date.")
	return nil
}
