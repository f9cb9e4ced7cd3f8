// Package main provides the entry point for the hearing prep sheet agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prep_agent",
	Short: "Congressional hearing prep sheet generator",
	Long:  "prep_agent generates AI briefing documents (prep sheets) for congressional hearings, grounded in archival GAO oversight reports, and serves them over a small HTTP API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
