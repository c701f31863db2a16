// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/casting-agent/internal/types"
)

// Config is the optional JSON configuration. All fields are optional; missing
// values use the pipeline defaults or must be provided via CLI flags.
type Config struct {
	// Collection
	Endpoints        []string `json:"endpoints,omitempty"`         // Gigs endpoints to walk
	ListingCap       int      `json:"listing_cap,omitempty"`       // Max listings taken per endpoint
	DescriptionLimit int      `json:"description_limit,omitempty"` // Display truncation of posting bodies
	MinDelayMS       int      `json:"min_delay_ms,omitempty"`      // Pacing floor between listing visits
	DelayJitterMS    int      `json:"delay_jitter_ms,omitempty"`   // Random jitter added to the floor

	// Dispatch
	SendDelayMS int `json:"send_delay_ms,omitempty"` // Pacing between application sends

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Applicant defaults used by the apply command
	Profile *types.Profile `json:"profile,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ListingCap < 0 {
		return fmt.Errorf("config error: 'listing_cap' must be non-negative")
	}
	if c.DescriptionLimit < 0 {
		return fmt.Errorf("config error: 'description_limit' must be non-negative")
	}
	if c.MinDelayMS < 0 || c.DelayJitterMS < 0 || c.SendDelayMS < 0 {
		return fmt.Errorf("config error: delays must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	for _, endpoint := range c.Endpoints {
		if endpoint == "" {
			return fmt.Errorf("config error: 'endpoints' must not contain empty entries")
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. CLI flags still win over both.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Endpoints) == 0 {
		result.Endpoints = defaults.Endpoints
	}
	if result.ListingCap == 0 {
		result.ListingCap = defaults.ListingCap
	}
	if result.DescriptionLimit == 0 {
		result.DescriptionLimit = defaults.DescriptionLimit
	}
	if result.MinDelayMS == 0 {
		result.MinDelayMS = defaults.MinDelayMS
	}
	if result.DelayJitterMS == 0 {
		result.DelayJitterMS = defaults.DelayJitterMS
	}
	if result.SendDelayMS == 0 {
		result.SendDelayMS = defaults.SendDelayMS
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Profile == nil {
		result.Profile = defaults.Profile
	}

	return result
}
