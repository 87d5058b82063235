// Package pattern selects a spatial template for a slide.
//
// A pattern is a named recipe for dividing the margin-inset working rectangle
// into zones. The catalog is fixed: golden_ratio, f_pattern, z_pattern,
// rule_of_thirds, symmetrical, and asymmetrical. Selection scores every
// catalog entry against the slide's container count, content flow, and
// visual-emphasis ratio and picks the arg-max, with ties broken by catalog
// order so results are deterministic.
//
// Selection can never fail: a slide that fits nothing in the catalog falls
// back to a single zone covering the full working area.
package pattern

import (
	"fmt"
	"sort"

	"github.com/tmorell/slidegrid/pkg/grid"
)

// =============================================================================
// Pattern Names
// =============================================================================

// Name identifies a spatial template in the catalog.
type Name string

// Catalog patterns, in catalog (tie-break) order.
const (
	GoldenRatio  Name = "golden_ratio"
	FPattern     Name = "f_pattern"
	ZPattern     Name = "z_pattern"
	RuleOfThirds Name = "rule_of_thirds"
	Symmetrical  Name = "symmetrical"
	Asymmetrical Name = "asymmetrical"

	// NameFallback marks layouts produced by the deterministic fallback
	// stack rather than a catalog pattern.
	NameFallback Name = "fallback"
)

// All returns the catalog pattern names in catalog order.
func All() []Name {
	names := make([]Name, len(catalog))
	for i, d := range catalog {
		names[i] = d.name
	}
	return names
}

// Valid reports whether n names a catalog pattern.
func Valid(n Name) bool {
	for _, d := range catalog {
		if d.name == n {
			return true
		}
	}
	return false
}

// =============================================================================
// Match Weights
// =============================================================================

// Weighted match contributions for pattern scoring.
const (
	countMatchWeight    = 2.0
	emphasisMatchWeight = 1.5
	flowMatchWeight     = 1.0
)

// =============================================================================
// Selection
// =============================================================================

// Input describes the slide characteristics pattern selection scores against.
type Input struct {
	ContainerCount int
	Flow           grid.Flow

	// VisualEmphasis is the fraction of containers requiring visual
	// content, in [0,1].
	VisualEmphasis float64

	Roles []grid.Role
}

// Alternative is a runner-up pattern with its match score.
type Alternative struct {
	Name  Name    `json:"name"`
	Score float64 `json:"score"`
}

// Selection is the outcome of pattern selection: the chosen pattern, its
// zones within the working rectangle, a human-readable rationale, and the
// next three highest-scoring alternatives.
type Selection struct {
	Name         Name          `json:"name"`
	Score        float64       `json:"score"`
	Zones        []grid.Zone   `json:"zones"`
	Rationale    string        `json:"rationale"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

// Select scores the catalog against in and returns the best pattern with its
// generated zones. Ties are broken by catalog order.
func Select(in Input, margin, gutter int) Selection {
	if in.ContainerCount < 1 {
		return Default(margin)
	}

	ranked := rank(in)
	best := ranked[0]

	alternatives := make([]Alternative, 0, 3)
	for _, r := range ranked[1:] {
		if len(alternatives) == 3 {
			break
		}
		alternatives = append(alternatives, Alternative{Name: r.def.name, Score: r.score})
	}

	work := grid.Working(margin)
	return Selection{
		Name:  best.def.name,
		Score: best.score,
		Zones: best.def.zones(work, gutter),
		Rationale: fmt.Sprintf("%s scored %.1f for %d containers (flow %s, emphasis %.2f): %s",
			best.def.name, best.score, in.ContainerCount, in.Flow, in.VisualEmphasis, best.def.description),
		Alternatives: alternatives,
	}
}

// Zones generates the zones for a specific catalog pattern. The second return
// is false when n is not a catalog pattern.
func Zones(n Name, margin, gutter int) ([]grid.Zone, bool) {
	work := grid.Working(margin)
	for _, d := range catalog {
		if d.name == n {
			return d.zones(work, gutter), true
		}
	}
	return nil, false
}

// Default returns the fallback selection: a single zone covering the full
// working rectangle.
func Default(margin int) Selection {
	work := grid.Working(margin)
	return Selection{
		Name:      Symmetrical,
		Zones:     []grid.Zone{{Name: "center", Rect: work}},
		Rationale: "default single full-area zone",
	}
}

// =============================================================================
// Ranking
// =============================================================================

type rankedPattern struct {
	def   definition
	order int
	score float64
}

// rank scores every catalog entry and sorts descending by score, preserving
// catalog order among equals.
func rank(in Input) []rankedPattern {
	ranked := make([]rankedPattern, len(catalog))
	for i, d := range catalog {
		ranked[i] = rankedPattern{def: d, order: i, score: d.match(in)}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].order < ranked[b].order
	})
	return ranked
}

// match sums the weighted best-fit contributions for one pattern.
func (d definition) match(in Input) float64 {
	score := 0.0
	if in.ContainerCount >= d.minCount && in.ContainerCount <= d.maxCount {
		score += countMatchWeight
	}
	if in.VisualEmphasis >= d.emphasisMin && in.VisualEmphasis <= d.emphasisMax {
		score += emphasisMatchWeight
	}
	for _, f := range d.flows {
		if f == in.Flow {
			score += flowMatchWeight
			break
		}
	}
	return score
}
