package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate prep sheets for all hearings without one",
	Long:  "Generate prep sheets for every hearing that has no published sheet yet. Requests are spaced out with a fixed delay, and a rate-limit response from the model service triggers a longer backoff before the next attempt.",
	RunE:  runBatch,
}

var (
	batchConfigPath     string
	batchDBURL          string
	batchAPIKey         string
	batchProvider       string
	batchModel          string
	batchLimit          int
	batchDelaySeconds   int
	batchBackoffSeconds int
)

const (
	defaultBatchDelaySeconds   = 5
	defaultBatchBackoffSeconds = 60
)

func init() {
	batchCmd.Flags().StringVarP(&batchConfigPath, "config", "c", "", "Path to JSON config file")
	batchCmd.Flags().StringVar(&batchDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	batchCmd.Flags().StringVar(&batchAPIKey, "api-key", "", "Model API key (overrides GEMINI_API_KEY env var)")
	batchCmd.Flags().StringVar(&batchProvider, "provider", "", "Model provider: gemini or responses")
	batchCmd.Flags().StringVar(&batchModel, "model", "", "Override the model name")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "Maximum number of hearings to process (0 = no limit)")
	batchCmd.Flags().IntVar(&batchDelaySeconds, "delay", 0, "Seconds to wait between requests")
	batchCmd.Flags().IntVar(&batchBackoffSeconds, "backoff", 0, "Seconds to wait after a rate-limit error")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(batchConfigPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, batchDBURL, batchAPIKey, batchProvider, batchModel)
	if batchDelaySeconds > 0 {
		cfg.BatchDelaySeconds = batchDelaySeconds
	}
	if batchBackoffSeconds > 0 {
		cfg.BatchBackoffSeconds = batchBackoffSeconds
	}
	if cfg.BatchDelaySeconds <= 0 {
		cfg.BatchDelaySeconds = defaultBatchDelaySeconds
	}
	if cfg.BatchBackoffSeconds <= 0 {
		cfg.BatchBackoffSeconds = defaultBatchBackoffSeconds
	}

	ctx := context.Background()
	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.close()

	ids, err := d.db.ListHearingIDs(ctx, batchLimit)
	if err != nil {
		return fmt.Errorf("failed to list hearings: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(os.Stdout, "No hearings need prep sheets.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Generating prep sheets for %d hearings\n", len(ids))

	delay := time.Duration(cfg.BatchDelaySeconds) * time.Second
	backoff := time.Duration(cfg.BatchBackoffSeconds) * time.Second

	var generated, failed int
	for i, id := range ids {
		if i > 0 {
			time.Sleep(delay)
		}

		record, err := d.pipeline.Generate(ctx, id)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "[%d/%d] %s: %v\n", i+1, len(ids), id, err)
			if isRateLimited(err) {
				fmt.Fprintf(os.Stderr, "Rate limited; backing off %s\n", backoff)
				time.Sleep(backoff)
			}
			continue
		}

		generated++
		fmt.Fprintf(os.Stdout, "[%d/%d] %s: version %d (confidence %.2f)\n",
			i+1, len(ids), id, record.Version, record.ConfidenceScore)
	}

	fmt.Fprintf(os.Stdout, "Done: %d generated, %d failed\n", generated, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d hearings failed", failed, len(ids))
	}
	return nil
}

// isRateLimited reports whether an error looks like a model service quota
// rejection. Both providers surface these through the error string (HTTP 429
// or a quota message), so a substring check is the practical test.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "resource_exhausted")
}
