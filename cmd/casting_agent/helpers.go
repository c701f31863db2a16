package main

import (
	"context"
	"time"

	"github.com/jonathan/casting-agent/internal/config"
	"github.com/jonathan/casting-agent/internal/scrape"
	"github.com/jonathan/casting-agent/internal/types"
)

// loadConfig reads and validates the optional JSON config. An empty path
// yields an all-defaults config.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// scrapeOptions maps config values onto collection-run options; zero values
// fall through to the scrape package defaults.
func scrapeOptions(cfg config.Config) scrape.Options {
	return scrape.Options{
		Endpoints:        cfg.Endpoints,
		ListingCap:       cfg.ListingCap,
		DescriptionLimit: cfg.DescriptionLimit,
		MinDelay:         time.Duration(cfg.MinDelayMS) * time.Millisecond,
		DelayJitter:      time.Duration(cfg.DelayJitterMS) * time.Millisecond,
	}
}

// collector returns the production collection pass over the configured
// endpoints, one browser per call.
func collector(cfg config.Config) func(ctx context.Context) ([]types.Casting, error) {
	opts := scrapeOptions(cfg)
	return func(ctx context.Context) ([]types.Casting, error) {
		return scrape.Collect(ctx, opts)
	}
}
