package grid

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxIterations != 5 || cfg.WhiteSpaceMin != 0.3 || cfg.WhiteSpaceMax != 0.5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Margin != DefaultMargin || cfg.Gutter != DefaultGutter {
		t.Errorf("unexpected spacing defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	first := cfg
	cfg.ApplyDefaults()
	if cfg != first {
		t.Errorf("ApplyDefaults not idempotent: %+v vs %+v", cfg, first)
	}
	if cfg != DefaultConfig() {
		t.Errorf("zero config should fill to defaults, got %+v", cfg)
	}
}

func TestApplyDefaultsKeepsExplicit(t *testing.T) {
	cfg := Config{MaxIterations: 3, Margin: 10}
	cfg.ApplyDefaults()
	if cfg.MaxIterations != 3 || cfg.Margin != 10 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
	if cfg.Gutter != DefaultGutter {
		t.Errorf("unset gutter should default, got %d", cfg.Gutter)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"negative white space", func(c *Config) { c.WhiteSpaceMin = -0.1 }},
		{"min above max", func(c *Config) { c.WhiteSpaceMin = 0.6; c.WhiteSpaceMax = 0.5 }},
		{"margin swallows grid", func(c *Config) { c.Margin = 45 }},
		{"negative gutter", func(c *Config) { c.Gutter = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %+v", cfg)
			}
		})
	}
}
