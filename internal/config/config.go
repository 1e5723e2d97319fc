package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/biopage/biopage/internal/render"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string

	// Output
	OutputDir string
	NoAvatar  bool

	// Site presentation
	Site render.Site
}

// Load builds a Config by combining defaults, environment variables, and
// CLI flags. Caller should pass the command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:    DefaultLogLevel,
		JSONLog:     DefaultJSONLog,
		HTTPTimeout: DefaultHTTPTimeout,
		UserAgent:   DefaultUserAgent,
		OutputDir:   DefaultOutputDir,
	}

	// Override from environment variables
	if v := os.Getenv("BIOPAGE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("BIOPAGE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("out"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.OutputDir = s
			}
		}
		if f := cmd.Flags().Lookup("no-avatar"); f != nil {
			if f.Value.String() == "true" {
				cfg.NoAvatar = true
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}

		cfg.Site.Title = flagString(cmd, "site-title")
		cfg.Site.Tagline = flagString(cmd, "tagline")
		cfg.Site.Location = flagString(cmd, "location")
		cfg.Site.Role = flagString(cmd, "role")
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}
