package main

import (
	"context"

	"github.com/leemount96/hearing-prep/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server that exposes prep sheet generation and retrieval endpoints.",
	RunE:  runServe,
}

var (
	serveConfigPath string
	serveDBURL      string
	serveAPIKey     string
	serveProvider   string
	serveModel      string
	servePort       int
)

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Model API key (overrides GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "Model provider: gemini or responses")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Override the model name")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, serveDBURL, serveAPIKey, serveProvider, serveModel)

	ctx := context.Background()
	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	srv := server.New(server.Config{Port: servePort}, d.pipeline)
	return srv.Run()
}
