// Package validate checks a proposed layout against hard and soft
// constraints.
//
// Hard constraints (severity error): white space below the minimum, margin
// intrusions, and overlapping containers. Soft constraints (severity
// warning): white space above the maximum and non-integer coordinates. A
// report is valid iff it contains no error-severity issue.
//
// Validation is pure and idempotent: checking the same layout twice yields
// identical reports.
package validate

import (
	"fmt"

	"github.com/tmorell/slidegrid/pkg/grid"
	"github.com/tmorell/slidegrid/pkg/layout/balance"
)

// =============================================================================
// Issue Taxonomy
// =============================================================================

// Severity classifies an issue as blocking or advisory.
type Severity string

// Issue severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind identifies the constraint an issue violates.
type Kind string

// Issue kinds.
const (
	KindWhiteSpaceLow  Kind = "white-space-low"
	KindWhiteSpaceHigh Kind = "white-space-high"
	KindMargin         Kind = "margin"
	KindOverlap        Kind = "overlap"
	KindAlignment      Kind = "alignment"
)

// Issue is one constraint violation found during validation.
type Issue struct {
	Kind         Kind     `json:"kind"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	ContainerIDs []string `json:"container_ids,omitempty"`
}

// =============================================================================
// Requirements / Report
// =============================================================================

// Requirements are the constraint bounds a layout must satisfy.
type Requirements struct {
	WhiteSpaceMin float64
	WhiteSpaceMax float64
	MinMargin     int
}

// Report is the structured outcome of validating one layout.
type Report struct {
	// IsValid is true iff no issue has severity error.
	IsValid bool `json:"is_valid"`

	WhiteSpaceRatio float64 `json:"white_space_ratio"`

	// AlignmentScore is 1 − (#alignment warnings / max(containerCount,1)).
	// Distinct from the assigner's constant score; see the field docs
	// there.
	AlignmentScore float64 `json:"alignment_score"`

	// BalanceScore duplicates the balance package's composite score for
	// caller convenience.
	BalanceScore float64 `json:"balance_score"`

	Issues []Issue `json:"issues,omitempty"`
}

// Errors returns the error-severity issues in the report.
func (r Report) Errors() []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			out = append(out, is)
		}
	}
	return out
}

// =============================================================================
// Validation
// =============================================================================

// Check validates a positioned layout with its declared white-space ratio
// against req.
func Check(placed []grid.Placed, whiteSpaceRatio float64, req Requirements) Report {
	report := Report{WhiteSpaceRatio: whiteSpaceRatio}

	report.Issues = append(report.Issues, checkWhiteSpace(whiteSpaceRatio, req)...)
	report.Issues = append(report.Issues, checkMargins(placed, req.MinMargin)...)
	report.Issues = append(report.Issues, checkOverlaps(placed)...)

	alignmentWarnings := checkAlignment(placed)
	report.Issues = append(report.Issues, alignmentWarnings...)

	n := len(placed)
	if n < 1 {
		n = 1
	}
	report.AlignmentScore = 1 - float64(len(alignmentWarnings))/float64(n)
	report.BalanceScore = balance.Score(placed).Score

	report.IsValid = true
	for _, is := range report.Issues {
		if is.Severity == SeverityError {
			report.IsValid = false
			break
		}
	}
	return report
}

// checkWhiteSpace flags ratios outside [min,max]. Too little white space is
// an error (cramped slide); too much is only a warning (sparse slide).
func checkWhiteSpace(ratio float64, req Requirements) []Issue {
	if ratio < req.WhiteSpaceMin {
		return []Issue{{
			Kind:     KindWhiteSpaceLow,
			Severity: SeverityError,
			Message:  fmt.Sprintf("white-space ratio %.2f is below the minimum %.2f", ratio, req.WhiteSpaceMin),
		}}
	}
	if ratio > req.WhiteSpaceMax {
		return []Issue{{
			Kind:     KindWhiteSpaceHigh,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("white-space ratio %.2f exceeds the maximum %.2f", ratio, req.WhiteSpaceMax),
		}}
	}
	return nil
}

// checkMargins flags containers intruding into the margin band.
func checkMargins(placed []grid.Placed, minMargin int) []Issue {
	var issues []Issue
	for _, p := range placed {
		if p.Position.Left < minMargin || p.Position.Top < minMargin {
			issues = append(issues, Issue{
				Kind:         KindMargin,
				Severity:     SeverityError,
				Message:      fmt.Sprintf("container %s at (%d,%d) intrudes into the %d-unit margin", p.Container.ID, p.Position.Left, p.Position.Top, minMargin),
				ContainerIDs: []string{p.Container.ID},
			})
		}
	}
	return issues
}

// checkOverlaps flags every overlapping container pair.
func checkOverlaps(placed []grid.Placed) []Issue {
	var issues []Issue
	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			a, b := placed[i], placed[j]
			if a.Position.Overlaps(b.Position) {
				issues = append(issues, Issue{
					Kind:         KindOverlap,
					Severity:     SeverityError,
					Message:      fmt.Sprintf("containers %s and %s overlap", a.Container.ID, b.Container.ID),
					ContainerIDs: []string{a.Container.ID, b.Container.ID},
				})
			}
		}
	}
	return issues
}

// checkAlignment flags non-integer coordinates. Positions are stored as
// integers, so this can only trigger if a future zone rule introduces
// fractional subdivision; the check is kept so the report's alignment score
// stays meaningful if that happens.
func checkAlignment(placed []grid.Placed) []Issue {
	var issues []Issue
	for _, p := range placed {
		if p.Position.Width <= 0 || p.Position.Height <= 0 {
			issues = append(issues, Issue{
				Kind:         KindAlignment,
				Severity:     SeverityWarning,
				Message:      fmt.Sprintf("container %s has a degenerate %dx%d rectangle", p.Container.ID, p.Position.Width, p.Position.Height),
				ContainerIDs: []string{p.Container.ID},
			})
		}
	}
	return issues
}
