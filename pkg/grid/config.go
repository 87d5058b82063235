package grid

import "fmt"

// =============================================================================
// Config - Engine Tuning
// =============================================================================

// Default engine configuration values.
const (
	DefaultMaxIterations     = 5
	DefaultWhiteSpaceMin     = 0.3
	DefaultWhiteSpaceMax     = 0.5
	DefaultBalanceTarget     = 0.7
	DefaultMaxBalanceRetries = 2
)

// Config tunes the refinement engine for one layout request.
//
// BalanceTarget and MaxBalanceRetries control the retry-while-valid policy:
// a layout that passes validation but scores below BalanceTarget is retried
// up to MaxBalanceRetries times in pursuit of better balance. The defaults
// (0.7, 2) are policy values, not invariants.
type Config struct {
	MaxIterations     int     `json:"max_iterations" toml:"max_iterations"`
	WhiteSpaceMin     float64 `json:"white_space_min" toml:"white_space_min"`
	WhiteSpaceMax     float64 `json:"white_space_max" toml:"white_space_max"`
	Margin            int     `json:"margin" toml:"margin"`
	Gutter            int     `json:"gutter" toml:"gutter"`
	BalanceTarget     float64 `json:"balance_target" toml:"balance_target"`
	MaxBalanceRetries int     `json:"max_balance_retries" toml:"max_balance_retries"`
}

// DefaultConfig returns the engine defaults {5, 0.3, 0.5, 8, 4}.
func DefaultConfig() Config {
	return Config{
		MaxIterations:     DefaultMaxIterations,
		WhiteSpaceMin:     DefaultWhiteSpaceMin,
		WhiteSpaceMax:     DefaultWhiteSpaceMax,
		Margin:            DefaultMargin,
		Gutter:            DefaultGutter,
		BalanceTarget:     DefaultBalanceTarget,
		MaxBalanceRetries: DefaultMaxBalanceRetries,
	}
}

// ApplyDefaults fills zero-valued fields with the engine defaults.
// This method is idempotent.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.MaxIterations == 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.WhiteSpaceMin == 0 {
		c.WhiteSpaceMin = d.WhiteSpaceMin
	}
	if c.WhiteSpaceMax == 0 {
		c.WhiteSpaceMax = d.WhiteSpaceMax
	}
	if c.Margin == 0 {
		c.Margin = d.Margin
	}
	if c.Gutter == 0 {
		c.Gutter = d.Gutter
	}
	if c.BalanceTarget == 0 {
		c.BalanceTarget = d.BalanceTarget
	}
	if c.MaxBalanceRetries == 0 {
		c.MaxBalanceRetries = d.MaxBalanceRetries
	}
}

// Validate checks that the configuration describes a usable grid.
func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.WhiteSpaceMin < 0 || c.WhiteSpaceMin > 1 {
		return fmt.Errorf("white_space_min must be in [0,1], got %g", c.WhiteSpaceMin)
	}
	if c.WhiteSpaceMax < 0 || c.WhiteSpaceMax > 1 {
		return fmt.Errorf("white_space_max must be in [0,1], got %g", c.WhiteSpaceMax)
	}
	if c.WhiteSpaceMin > c.WhiteSpaceMax {
		return fmt.Errorf("white_space_min %g exceeds white_space_max %g", c.WhiteSpaceMin, c.WhiteSpaceMax)
	}
	if c.Margin < 0 || 2*c.Margin >= Width || 2*c.Margin >= Height {
		return fmt.Errorf("margin %d leaves no working area on a %dx%d grid", c.Margin, Width, Height)
	}
	if c.Gutter < 0 {
		return fmt.Errorf("gutter must be non-negative, got %d", c.Gutter)
	}
	return nil
}
