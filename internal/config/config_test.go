package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TargetURL != DefaultTargetURL {
		t.Errorf("TargetURL = %q", cfg.TargetURL)
	}
	if cfg.NavTimeout != DefaultNavTimeout {
		t.Errorf("NavTimeout = %v", cfg.NavTimeout)
	}
	if cfg.SheetName != DefaultSheetName {
		t.Errorf("SheetName = %q", cfg.SheetName)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GOLDWATCH_URL", "https://staging.example/gold")
	t.Setenv("GOLDWATCH_SCROLL_STEPS", "9")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TargetURL != "https://staging.example/gold" {
		t.Errorf("TargetURL = %q", cfg.TargetURL)
	}
	if cfg.ScrollSteps != 9 {
		t.Errorf("ScrollSteps = %d", cfg.ScrollSteps)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		desc   string
		mutate func(*Config)
	}{
		{"non-http url", func(c *Config) { c.TargetURL = "ftp://example.com" }},
		{"zero nav timeout", func(c *Config) { c.NavTimeout = 0 }},
		{"negative scroll steps", func(c *Config) { c.ScrollSteps = -1 }},
		{"empty store path", func(c *Config) { c.StorePath = "" }},
		{"zero payload cap", func(c *Config) { c.MaxPayloads = 0 }},
	}
	for _, tc := range cases {
		cfg, err := Load(nil)
		if err != nil {
			t.Fatal(err)
		}
		tc.mutate(cfg)
		if err := validate(cfg); err == nil {
			t.Errorf("%s: expected validation error", tc.desc)
		}
	}
}
