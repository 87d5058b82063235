package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tmorell/slidegrid/pkg/cache"
	"github.com/tmorell/slidegrid/pkg/errors"
	"github.com/tmorell/slidegrid/pkg/layout/refine"
	"github.com/tmorell/slidegrid/pkg/observability"
	"github.com/tmorell/slidegrid/pkg/slide"
)

// =============================================================================
// Runner
// =============================================================================

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the final positioning document.
	Layout slide.Layout

	// InputHash is the content hash of the input document.
	InputHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the layout came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ContainerCount int
	Iterations     int
	Refinements    int
	LayoutTime     time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// Layout runs the complete validate → refine → export pipeline with caching.
func (r *Runner) Layout(ctx context.Context, opts Options) (*Result, error) {
	result, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return result, err
}

// LayoutWithCacheInfo runs the pipeline and additionally reports whether the
// layout was served from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (*Result, bool, error) {
	// Validation errors already carry their specific code; pass them through.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Engine().OnLayoutStart(ctx, opts.Input.SlideID, len(opts.Input.Containers))

	// Compute cache key from the input content and the options that shape
	// the result.
	inputData, err := slide.MarshalInput(opts.Input)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize input for cache key")
	}
	inputHash := cache.Hash(inputData)
	cacheKey := r.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested).
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := slide.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result := &Result{
					Layout:    cached,
					InputHash: inputHash,
					Stats: Stats{
						ContainerCount: len(cached.Containers),
						LayoutTime:     time.Since(start),
					},
					CacheInfo: CacheInfo{LayoutHit: true},
				}
				observability.Engine().OnLayoutComplete(ctx, cached.SlideID, cached.Status, time.Since(start), nil)
				return result, true, nil
			}
			// Corrupt entry: fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Refine.
	containers, flow, err := opts.Input.ToGrid()
	if err != nil {
		wrapped := errors.Wrap(errors.ErrCodeInvalidContainer, err, "convert input")
		observability.Engine().OnLayoutComplete(ctx, opts.Input.SlideID, string(refine.StatusFailed), time.Since(start), wrapped)
		return nil, false, wrapped
	}

	controller := refine.New(opts.Logger)
	res := controller.Run(ctx, refine.Request{
		SlideID:    opts.Input.SlideID,
		Containers: containers,
		Flow:       flow,
		Groupings:  opts.Input.Groupings,
		Config:     opts.Config(),
	})

	// Export.
	layout := slide.FromResult(res)

	// Cache the result.
	if data, err := slide.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	result := &Result{
		Layout:    layout,
		InputHash: inputHash,
		Stats: Stats{
			ContainerCount: len(layout.Containers),
			Iterations:     res.Iterations,
			Refinements:    res.Refinements,
			LayoutTime:     time.Since(start),
		},
		CacheInfo: CacheInfo{LayoutHit: false},
	}
	observability.Engine().OnLayoutComplete(ctx, layout.SlideID, layout.Status, time.Since(start), nil)

	r.Logger.Info("computed layout",
		"slide", layout.SlideID,
		"pattern", layout.Pattern,
		"iterations", res.Iterations,
		"duration", result.Stats.LayoutTime)

	return result, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Batch - Parallel Deck Processing
// =============================================================================

// BatchResult pairs one Batch entry with its outcome. Index refers to the
// position in the options slice passed to Batch.
type BatchResult struct {
	Index  int
	Result *Result
	Err    error
}

// Batch runs independent slides in parallel with a bounded worker pool and
// returns one result per entry, in input order. Individual failures do not
// stop the batch. A workers value of zero or less falls back to
// DefaultBatchWorkers.
func (r *Runner) Batch(ctx context.Context, optsList []Options, workers int) []BatchResult {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if workers > len(optsList) {
		workers = len(optsList)
	}

	results := make([]BatchResult, len(optsList))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := r.Layout(ctx, optsList[i])
				results[i] = BatchResult{Index: i, Result: res, Err: err}
			}
		}()
	}

	for i := range optsList {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(optsList); j++ {
				results[j] = BatchResult{Index: j, Err: errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "batch cancelled")}
			}
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
