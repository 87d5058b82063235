package refine

import (
	"github.com/tmorell/slidegrid/pkg/grid"
	"github.com/tmorell/slidegrid/pkg/layout/pattern"
	"github.com/tmorell/slidegrid/pkg/layout/validate"
)

// =============================================================================
// Status - State Machine States
// =============================================================================

// Status is the refinement loop's state machine state.
type Status string

// Machine states. Transitions:
//
//	INITIALIZING → PROPOSING → VALIDATING → {REFINING → PROPOSING |
//	FINALIZING → FINALIZED | FAILED}
const (
	StatusInitializing Status = "INITIALIZING"
	StatusProposing    Status = "PROPOSING"
	StatusValidating   Status = "VALIDATING"
	StatusRefining     Status = "REFINING"
	StatusFinalizing   Status = "FINALIZING"
	StatusFinalized    Status = "FINALIZED"
	StatusFailed       Status = "FAILED"
)

// Terminal reports whether the status ends the loop.
func (s Status) Terminal() bool {
	return s == StatusFinalized || s == StatusFailed
}

// =============================================================================
// Proposal
// =============================================================================

// Proposal is one complete candidate layout from a single iteration.
// Rejected proposals are never mutated; each iteration constructs a new one.
type Proposal struct {
	Pattern   pattern.Name  `json:"pattern"`
	Placed    []grid.Placed `json:"placed"`
	Decisions []string      `json:"decisions,omitempty"`

	WhiteSpaceRatio  float64 `json:"white_space_ratio"`
	SpaceUtilization float64 `json:"space_utilization"`
	AlignmentScore   float64 `json:"alignment_score"`

	// Confidence = alignmentScore·0.8 + 0.2.
	Confidence float64 `json:"confidence"`
}

// =============================================================================
// State
// =============================================================================

// Metric keys recorded in State.Metrics.
const (
	MetricTotalIterations   = "total_iterations"
	MetricTotalRefinements  = "total_refinements"
	MetricFinalValid        = "final_valid"
	MetricFinalBalance      = "final_balance_score"
	MetricFinalPattern      = "final_pattern"
	MetricFailure           = "failure"
	MetricCancelled         = "cancelled"
	MetricRefinementTrigger = "refinement_triggers"
	MetricPatternOverride   = "pattern_overrides"
	MetricFallbackUsed      = "fallback_used"
	MetricOmittedContainers = "omitted_containers"
)

// State is the mutable refinement state for one slide request. It is created
// by the Controller, mutated only by the Controller's transition steps, and
// discarded once terminal. No state survives across requests.
type State struct {
	Status             Status
	Iteration          int
	RefinementAttempts int

	Current *Proposal
	History []Proposal
	Report  *validate.Report

	Metrics map[string]any

	MaxIterations       int
	TargetWhiteSpaceMin float64
	TargetWhiteSpaceMax float64
}

// newState seeds a fresh state in INITIALIZING with zeroed counters.
func newState(cfg grid.Config) *State {
	return &State{
		Status:              StatusInitializing,
		Metrics:             map[string]any{},
		MaxIterations:       cfg.MaxIterations,
		TargetWhiteSpaceMin: cfg.WhiteSpaceMin,
		TargetWhiteSpaceMax: cfg.WhiteSpaceMax,
	}
}

// bestProposal returns the historical proposal with maximum confidence, or
// nil if the history is empty.
func (s *State) bestProposal() *Proposal {
	var best *Proposal
	for i := range s.History {
		if best == nil || s.History[i].Confidence > best.Confidence {
			best = &s.History[i]
		}
	}
	return best
}

// =============================================================================
// Decision
// =============================================================================

// decision is the outcome of evaluating shouldRefine.
type decision int

const (
	decideFail decision = iota
	decideRefine
	decideFinalize
)

// shouldRefine implements the acceptance policy evaluated after VALIDATING:
//
//  1. A failed pipeline or missing report terminates as failed.
//  2. A valid layout is accepted when balanced enough, retried (up to the
//     balance-retry cap) when not, and accepted anyway once retries run out.
//  3. An invalid layout is retried until the iteration budget is exhausted,
//     then accepted as the best available attempt.
func shouldRefine(s *State, cfg grid.Config) decision {
	if s.Status == StatusFailed || s.Report == nil {
		return decideFail
	}
	if s.Report.IsValid {
		switch {
		case s.Report.BalanceScore >= cfg.BalanceTarget:
			return decideFinalize
		case s.RefinementAttempts < cfg.MaxBalanceRetries:
			return decideRefine
		default:
			return decideFinalize
		}
	}
	if s.Iteration >= s.MaxIterations {
		return decideFinalize
	}
	return decideRefine
}
