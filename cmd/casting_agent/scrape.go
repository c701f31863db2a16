package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/casting-agent/internal/scrape"
)

var scrapeConfig string

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one collection pass and print the castings as JSON",
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(scrapeConfig)
	if err != nil {
		return err
	}

	castings, err := scrape.Collect(cmd.Context(), scrapeOptions(cfg))
	if err != nil {
		return fmt.Errorf("collection run failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(castings)
}
