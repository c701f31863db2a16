// Package main provides the entry point for the Casting Agent service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "casting_agent",
	Short: "Casting Agent scraper and application service",
	Long:  "Casting Agent discovers casting-call postings on Craigslist gigs endpoints, recovers contact emails from obfuscated posting text, and optionally sends templated application emails to each discovered contact.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
