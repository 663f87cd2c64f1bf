package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if !strings.HasPrefix(c.TargetURL, "http://") && !strings.HasPrefix(c.TargetURL, "https://") {
		return fmt.Errorf("target url must start with http:// or https://")
	}
	if c.NavTimeout <= 0 {
		return fmt.Errorf("nav timeout must be > 0")
	}
	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("ready timeout must be > 0")
	}
	if c.ScrollSteps < 0 {
		return fmt.Errorf("scroll steps must be >= 0")
	}
	if c.StorePath == "" {
		return fmt.Errorf("store path is required")
	}
	if c.MaxPayloads <= 0 {
		return fmt.Errorf("max payloads must be > 0")
	}
	return nil
}
