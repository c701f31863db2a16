package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/casting-agent/internal/apply"
	"github.com/jonathan/casting-agent/internal/mail"
	"github.com/jonathan/casting-agent/internal/scrape"
)

var (
	applyConfig string
	applyLimit  int
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Run one collection pass and send applications to the discovered contacts",
	Long:  `Collect castings from the configured endpoints, then send a templated application email to each discovered contact using the profile from the config file.`,
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyConfig, "config", "", "Path to JSON config file (must contain a profile)")
	applyCmd.Flags().IntVar(&applyLimit, "limit", apply.DefaultLimit, "Maximum number of applications to send")
	_ = applyCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(applyConfig)
	if err != nil {
		return err
	}
	if cfg.Profile == nil {
		return fmt.Errorf("config file must contain a 'profile'")
	}
	if err := cfg.Profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		log.Printf("[APPLY] SENDGRID_API_KEY is not set; sends will fail")
	}

	castings, err := scrape.Collect(cmd.Context(), scrapeOptions(cfg))
	if err != nil {
		return fmt.Errorf("collection run failed: %w", err)
	}
	log.Printf("[APPLY] collected %d castings", len(castings))

	dispatcher := apply.NewDispatcher(mail.NewSendGridSender(apiKey))
	if cfg.SendDelayMS > 0 {
		dispatcher.Delay = time.Duration(cfg.SendDelayMS) * time.Millisecond
	}

	report, err := dispatcher.Run(cmd.Context(), castings, *cfg.Profile, applyLimit)
	if err != nil {
		return err
	}
	log.Printf("[APPLY] applied=%d failed=%d", report.Applied, report.Failed)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report.Results)
}
