package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Target
	TargetURL string
	UserAgent string

	// Persisted store
	StorePath string
	SheetName string

	// Rendering
	NavTimeout   time.Duration
	ReadyTimeout time.Duration
	ScrollSteps  int
	ScrollPause  time.Duration
	WindowWidth  int
	WindowHeight int
	ChromePath   string

	// Regional spoofing
	Locale    string
	Timezone  string
	Latitude  float64
	Longitude float64

	// Retry ladder
	RetryPause      time.Duration
	AttemptRateRPS  float64
	AttemptBurst    int
	MaxPayloads     int
	MaxPayloadBytes int64

	// Diagnostics
	DebugDir string
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		TargetURL:       DefaultTargetURL,
		UserAgent:       DefaultUserAgent,
		StorePath:       DefaultStorePath,
		SheetName:       DefaultSheetName,
		NavTimeout:      DefaultNavTimeout,
		ReadyTimeout:    DefaultReadyTimeout,
		ScrollSteps:     DefaultScrollSteps,
		ScrollPause:     DefaultScrollPause,
		WindowWidth:     DefaultWindowWidth,
		WindowHeight:    DefaultWindowHeight,
		Locale:          DefaultLocale,
		Timezone:        DefaultTimezone,
		Latitude:        DefaultLatitude,
		Longitude:       DefaultLongitude,
		RetryPause:      DefaultRetryPause,
		AttemptRateRPS:  DefaultAttemptRateRPS,
		AttemptBurst:    DefaultAttemptBurst,
		MaxPayloads:     DefaultMaxPayloads,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
		DebugDir:        DefaultDebugDir,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("GOLDWATCH_URL"); v != "" {
		cfg.TargetURL = v
	}
	if v := os.Getenv("GOLDWATCH_STORE"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("GOLDWATCH_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("GOLDWATCH_NAV_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.NavTimeout = d
		}
	}
	if v := os.Getenv("GOLDWATCH_RETRY_PAUSE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RetryPause = d
		}
	}
	if v := os.Getenv("GOLDWATCH_SCROLL_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ScrollSteps = n
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("url"); f != nil && f.Changed {
			cfg.TargetURL = f.Value.String()
		}
		if f := cmd.Flags().Lookup("store"); f != nil && f.Changed {
			cfg.StorePath = f.Value.String()
		}
		if f := cmd.Flags().Lookup("sheet"); f != nil && f.Changed {
			cfg.SheetName = f.Value.String()
		}
		if f := cmd.Flags().Lookup("debug-dir"); f != nil && f.Changed {
			cfg.DebugDir = f.Value.String()
		}
		if f := cmd.Flags().Lookup("user-agent"); f != nil && f.Changed {
			cfg.UserAgent = f.Value.String()
		}
		if f := cmd.Flags().Lookup("nav-timeout"); f != nil && f.Changed {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.NavTimeout = d
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
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
