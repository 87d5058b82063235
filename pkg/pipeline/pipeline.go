// Package pipeline provides the core layout pipeline for Slidegrid.
//
// This package implements the complete validate → refine → export flow that
// can be used by CLI, API, and batch components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: Check the input document and engine options
//  2. Refine: Run the iterative layout loop until a layout is finalized
//  3. Export: Convert the refinement result into the wire Layout format
//
// Layouts are deterministic for a given input and configuration, so the
// Runner caches results keyed by a content hash of both.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Input: input}
//	result, err := runner.Layout(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Layout.Pattern)
//
// Process a whole deck in parallel:
//
//	results := runner.Batch(ctx, optsList, 4)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tmorell/slidegrid/pkg/cache"
	"github.com/tmorell/slidegrid/pkg/errors"
	"github.com/tmorell/slidegrid/pkg/grid"
	"github.com/tmorell/slidegrid/pkg/slide"
)

// =============================================================================
// Defaults - Single Source of Truth for CLI, API, and Batch
// =============================================================================

const (
	// DefaultBatchWorkers is the worker count for Batch when the caller
	// passes zero.
	DefaultBatchWorkers = 4
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one layout run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is the slide document to lay out.
	Input slide.Input `json:"input"`

	// Engine options. Zero values fall back to the engine defaults.
	MaxIterations     int     `json:"max_iterations,omitempty"`
	WhiteSpaceMin     float64 `json:"white_space_min,omitempty"`
	WhiteSpaceMax     float64 `json:"white_space_max,omitempty"`
	Margin            int     `json:"margin,omitempty"`
	Gutter            int     `json:"gutter,omitempty"`
	BalanceTarget     float64 `json:"balance_target,omitempty"`
	MaxBalanceRetries int     `json:"max_balance_retries,omitempty"`

	// Refresh bypasses the cache and recomputes the layout.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := errors.ValidateSlideID(o.Input.SlideID); err != nil {
		return err
	}
	if len(o.Input.Containers) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "slide has no containers")
	}
	ids := make([]string, len(o.Input.Containers))
	for i, c := range o.Input.Containers {
		ids[i] = c.ID
	}
	if err := errors.ValidateContainerIDs(ids); err != nil {
		return err
	}

	cfg := o.Config()
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid engine options")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Config assembles the engine configuration, applying defaults for unset
// fields.
func (o *Options) Config() grid.Config {
	cfg := grid.Config{
		MaxIterations:     o.MaxIterations,
		WhiteSpaceMin:     o.WhiteSpaceMin,
		WhiteSpaceMax:     o.WhiteSpaceMax,
		Margin:            o.Margin,
		Gutter:            o.Gutter,
		BalanceTarget:     o.BalanceTarget,
		MaxBalanceRetries: o.MaxBalanceRetries,
	}
	cfg.ApplyDefaults()
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.Config()
	return cache.LayoutKeyOpts{
		MaxIterations:     cfg.MaxIterations,
		WhiteSpaceMin:     cfg.WhiteSpaceMin,
		WhiteSpaceMax:     cfg.WhiteSpaceMax,
		Margin:            cfg.Margin,
		Gutter:            cfg.Gutter,
		BalanceTarget:     cfg.BalanceTarget,
		MaxBalanceRetries: cfg.MaxBalanceRetries,
	}
}
