// Package refine drives the iterative layout loop for one slide.
//
// The Controller runs a bounded finite-state machine: propose a layout
// (pattern selection + position assignment), validate it, score its balance,
// then decide whether to accept, retry, or stop. Refinement is a restart,
// not a repair: a rejected proposal is never patched, the whole pipeline
// re-runs, steered toward a different pattern by the recorded metrics.
//
// The loop always terminates within the iteration budget and always yields a
// layout: when no usable proposal exists it falls back to a deterministic
// vertical stack, so callers get at-least-one-result semantics.
package refine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tmorell/slidegrid/pkg/grid"
	"github.com/tmorell/slidegrid/pkg/layout/assign"
	"github.com/tmorell/slidegrid/pkg/layout/balance"
	"github.com/tmorell/slidegrid/pkg/layout/pattern"
	"github.com/tmorell/slidegrid/pkg/layout/validate"
	"github.com/tmorell/slidegrid/pkg/observability"
)

// =============================================================================
// Request / Result
// =============================================================================

// Request is one slide-layout request. Containers and groupings are
// read-only inputs owned by the caller.
type Request struct {
	SlideID    string
	Containers []grid.Container
	Flow       grid.Flow
	Groupings  [][]string
	Config     grid.Config
}

// Result is the final outcome of one refinement run.
type Result struct {
	SlideID string
	Status  Status
	Pattern pattern.Name
	Placed  []grid.Placed

	WhiteSpaceRatio float64
	AlignmentScore  float64
	BalanceScore    float64
	Valid           bool

	Iterations  int
	Refinements int
	Metrics     map[string]any
}

// =============================================================================
// Controller
// =============================================================================

// Controller owns the refinement state machine. A Controller is stateless
// between runs; each Run creates and discards its own State, so a single
// Controller may serve concurrent requests.
type Controller struct {
	logger *log.Logger
}

// New creates a controller. A nil logger defaults to log.Default().
func New(logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{logger: logger}
}

// Run executes the refinement loop for one slide and always returns a
// result. Layout problems never surface as errors: validation failures are
// retried within the iteration budget and pipeline failures produce the
// deterministic fallback layout, distinguishable via Result.Status and the
// final_valid metric. Cancellation is honored between iterations and also
// routes to the fallback path.
func (c *Controller) Run(ctx context.Context, req Request) Result {
	cfg := req.Config
	cfg.ApplyDefaults()

	st := newState(cfg)
	st.Status = StatusProposing

	for !st.Status.Terminal() {
		if err := ctx.Err(); err != nil {
			st.Metrics[MetricCancelled] = err.Error()
			st.Status = StatusFinalizing
		}

		switch st.Status {
		case StatusProposing:
			c.propose(st, req, cfg)

		case StatusValidating:
			c.validateAndScore(ctx, st, req, cfg)
			switch shouldRefine(st, cfg) {
			case decideFail:
				st.Status = StatusFailed
			case decideRefine:
				st.Status = StatusRefining
			case decideFinalize:
				st.Status = StatusFinalizing
			}

		case StatusRefining:
			c.refine(st)

		case StatusFinalizing, StatusFailed:
			return c.finalize(st, req, cfg)
		}
	}

	return c.finalize(st, req, cfg)
}

// =============================================================================
// Transition Steps
// =============================================================================

// propose runs pattern selection and position assignment to build the next
// proposal. Any internal failure moves the machine to FAILED with the error
// recorded in metrics.
func (c *Controller) propose(st *State, req Request, cfg grid.Config) {
	st.Iteration++

	p, err := c.buildProposal(st, req, cfg)
	if err != nil {
		st.Metrics[MetricFailure] = err.Error()
		st.Status = StatusFailed
		c.logger.Error("proposal failed", "slide", req.SlideID, "iteration", st.Iteration, "err", err)
		return
	}

	st.Current = p
	st.History = append(st.History, *p)
	st.Status = StatusValidating

	c.logger.Debug("proposed layout",
		"slide", req.SlideID,
		"iteration", st.Iteration,
		"pattern", p.Pattern,
		"containers", len(p.Placed),
		"confidence", p.Confidence)
}

// buildProposal runs the selector and assigner once. After a refinement the
// selector's ranked alternatives are walked instead of re-picking the same
// winner, so each restart genuinely explores a different template.
func (c *Controller) buildProposal(st *State, req Request, cfg grid.Config) (*Proposal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if len(req.Containers) == 0 {
		return nil, fmt.Errorf("no containers to place")
	}

	roles := make([]grid.Role, len(req.Containers))
	for i, ct := range req.Containers {
		roles[i] = ct.Role
	}
	sel := pattern.Select(pattern.Input{
		ContainerCount: len(req.Containers),
		Flow:           req.Flow,
		VisualEmphasis: grid.VisualEmphasis(req.Containers),
		Roles:          roles,
	}, cfg.Margin, cfg.Gutter)

	name, zones := sel.Name, sel.Zones
	if st.RefinementAttempts > 0 && len(sel.Alternatives) > 0 {
		alt := sel.Alternatives[(st.RefinementAttempts-1)%len(sel.Alternatives)]
		if altZones, ok := pattern.Zones(alt.Name, cfg.Margin, cfg.Gutter); ok {
			name, zones = alt.Name, altZones
			overrides, _ := st.Metrics[MetricPatternOverride].([]string)
			st.Metrics[MetricPatternOverride] = append(overrides, string(alt.Name))
		}
	}

	out := assign.Place(assign.Input{
		Containers: req.Containers,
		Zones:      zones,
		Groupings:  req.Groupings,
		Margin:     cfg.Margin,
		Gutter:     cfg.Gutter,
	})
	if len(out.Placed) == 0 {
		return nil, fmt.Errorf("pattern %s produced no placements: %v", name, out.Warnings)
	}

	decisions := append([]string{sel.Rationale}, out.Decisions...)
	decisions = append(decisions, out.Warnings...)

	return &Proposal{
		Pattern:          name,
		Placed:           out.Placed,
		Decisions:        decisions,
		WhiteSpaceRatio:  grid.WhiteSpaceRatio(out.Placed),
		SpaceUtilization: out.SpaceUtilization,
		AlignmentScore:   out.AlignmentScore,
		Confidence:       out.AlignmentScore*0.8 + 0.2,
	}, nil
}

// validateAndScore runs the validator on the current proposal, merges the
// balance score into the report, and emits the per-iteration hook event.
func (c *Controller) validateAndScore(ctx context.Context, st *State, req Request, cfg grid.Config) {
	st.Status = StatusValidating

	report := validate.Check(st.Current.Placed, st.Current.WhiteSpaceRatio, validate.Requirements{
		WhiteSpaceMin: cfg.WhiteSpaceMin,
		WhiteSpaceMax: cfg.WhiteSpaceMax,
		MinMargin:     cfg.Margin,
	})
	bal := balance.Score(st.Current.Placed)
	report.BalanceScore = bal.Score
	st.Report = &report

	observability.Engine().OnIteration(ctx, req.SlideID, st.Iteration, report.IsValid, report.BalanceScore)

	c.logger.Debug("validated proposal",
		"iteration", st.Iteration,
		"valid", report.IsValid,
		"white_space", fmt.Sprintf("%.2f", report.WhiteSpaceRatio),
		"balance", fmt.Sprintf("%.2f", report.BalanceScore),
		"issues", len(report.Issues))
}

// refine records what triggered the retry and restarts the pipeline. No
// positional repair happens here: the next proposal is built from scratch.
func (c *Controller) refine(st *State) {
	st.RefinementAttempts++

	var triggers []string
	if st.Report != nil {
		for _, is := range st.Report.Issues {
			triggers = append(triggers, fmt.Sprintf("%s: %s", is.Kind, is.Message))
		}
		if st.Report.IsValid {
			triggers = append(triggers, fmt.Sprintf("balance %.2f below target", st.Report.BalanceScore))
		}
	}
	existing, _ := st.Metrics[MetricRefinementTrigger].([]string)
	st.Metrics[MetricRefinementTrigger] = append(existing, triggers...)

	st.Status = StatusProposing
}

// finalize selects the output layout: the current proposal, else the most
// confident historical proposal, else the deterministic fallback stack.
func (c *Controller) finalize(st *State, req Request, cfg grid.Config) Result {
	failed := st.Status == StatusFailed

	chosen := st.Current
	if chosen == nil {
		chosen = st.bestProposal()
	}
	if chosen == nil {
		fb := fallbackProposal(req, cfg, st)
		chosen = &fb
	}

	valid := false
	balanceScore := 0.0
	if st.Report != nil {
		valid = st.Report.IsValid
		balanceScore = st.Report.BalanceScore
	} else {
		balanceScore = balance.Score(chosen.Placed).Score
	}

	st.Metrics[MetricTotalIterations] = st.Iteration
	st.Metrics[MetricTotalRefinements] = st.RefinementAttempts
	st.Metrics[MetricFinalValid] = valid
	st.Metrics[MetricFinalBalance] = balanceScore
	st.Metrics[MetricFinalPattern] = string(chosen.Pattern)

	status := StatusFinalized
	if failed {
		status = StatusFailed
	} else {
		st.Status = StatusFinalized
	}

	c.logger.Info("layout finalized",
		"slide", req.SlideID,
		"status", status,
		"pattern", chosen.Pattern,
		"iterations", st.Iteration,
		"refinements", st.RefinementAttempts,
		"valid", valid)

	return Result{
		SlideID:         req.SlideID,
		Status:          status,
		Pattern:         chosen.Pattern,
		Placed:          chosen.Placed,
		WhiteSpaceRatio: chosen.WhiteSpaceRatio,
		AlignmentScore:  chosen.AlignmentScore,
		BalanceScore:    balanceScore,
		Valid:           valid,
		Iterations:      st.Iteration,
		Refinements:     st.RefinementAttempts,
		Metrics:         st.Metrics,
	}
}
