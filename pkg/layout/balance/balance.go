// Package balance scores how evenly visual weight is distributed on a slide.
//
// Each placed container contributes a weight derived from its importance
// category (or an explicit author override), its size, and whether its role
// is visual. The score combines two terms: how close the weighted center of
// mass sits to the grid center, and how evenly weight spreads across the
// four quadrants.
package balance

import (
	"fmt"
	"math"

	"github.com/tmorell/slidegrid/pkg/grid"
)

// =============================================================================
// Weight Model Constants
// =============================================================================

const (
	// sizeFactorArea is the container area at which the size factor
	// saturates.
	sizeFactorArea = 5000.0

	// visualRoleMultiplier boosts containers with visual roles.
	visualRoleMultiplier = 1.2

	// Composite score term weights.
	centerTermWeight   = 0.6
	quadrantTermWeight = 0.4

	// excellentThreshold short-circuits recommendations.
	excellentThreshold = 0.8

	// Quadrant weight bounds that trigger recommendations.
	heavyQuadrant = 0.35
	lightQuadrant = 0.15
)

// Center-of-mass deviation thresholds for recommendations: 10% of each grid
// dimension.
const (
	centerDriftX = grid.Width / 10
	centerDriftY = grid.Height / 10
)

// Quadrant indices.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// quadrantNames in index order, for recommendation text.
var quadrantNames = [4]string{"top-left", "top-right", "bottom-left", "bottom-right"}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of balance scoring.
type Result struct {
	// Score is the composite balance score in [0,1].
	Score float64 `json:"score"`

	// CenterX, CenterY locate the weighted center of mass.
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`

	// Quadrants holds the normalized weight share per quadrant, indexed by
	// TopLeft..BottomRight. Shares sum to 1 for non-empty layouts.
	Quadrants [4]float64 `json:"quadrants"`

	// Recommendations are textual hints for improving balance.
	Recommendations []string `json:"recommendations,omitempty"`
}

// =============================================================================
// Scoring
// =============================================================================

// Score computes the balance of a positioned layout.
func Score(placed []grid.Placed) Result {
	if len(placed) == 0 {
		return Result{
			CenterX:         grid.Width / 2,
			CenterY:         grid.Height / 2,
			Recommendations: []string{"no containers to score"},
		}
	}

	var (
		total     float64
		sumX      float64
		sumY      float64
		quadrants [4]float64
	)
	for _, p := range placed {
		w := Weight(p)
		cx, cy := p.Position.CenterX(), p.Position.CenterY()
		total += w
		sumX += w * cx
		sumY += w * cy
		quadrants[quadrant(cx, cy)] += w
	}

	// Every container may carry an explicit weight of zero. Fall back to
	// uniform weights so the center of mass stays defined by geometry alone
	// instead of dividing by zero.
	if total == 0 {
		sumX, sumY, quadrants = 0, 0, [4]float64{}
		for _, p := range placed {
			cx, cy := p.Position.CenterX(), p.Position.CenterY()
			total++
			sumX += cx
			sumY += cy
			quadrants[quadrant(cx, cy)]++
		}
	}

	res := Result{
		CenterX: sumX / total,
		CenterY: sumY / total,
	}
	for i := range quadrants {
		res.Quadrants[i] = quadrants[i] / total
	}

	res.Score = composite(res.CenterX, res.CenterY, res.Quadrants)
	res.Recommendations = recommend(res)
	return res
}

// Weight computes the visual weight of one placed container: the importance
// base (or explicit override) scaled by a size factor in [0.5,1.0] and a
// visual-role multiplier, clamped to [0,1].
func Weight(p grid.Placed) float64 {
	base := p.Container.ImportanceScore()
	if p.Container.WeightExplicit {
		base = p.Container.VisualWeight
	}

	size := math.Min(float64(p.Position.Area())/sizeFactorArea, 1.0)
	sizeFactor := 0.5 + 0.5*size

	w := base * sizeFactor
	if p.Container.Role.IsVisual() {
		w *= visualRoleMultiplier
	}
	return math.Max(0, math.Min(w, 1.0))
}

// composite blends center-of-mass proximity with quadrant evenness.
func composite(cx, cy float64, quadrants [4]float64) float64 {
	gridCX, gridCY := float64(grid.Width)/2, float64(grid.Height)/2
	maxDist := math.Hypot(gridCX, gridCY)
	dist := math.Hypot(cx-gridCX, cy-gridCY)

	var sumSq float64
	for _, q := range quadrants {
		sumSq += (q - 0.25) * (q - 0.25)
	}
	// sumSq peaks at 0.75 when all weight sits in one quadrant.
	return centerTermWeight*(1-dist/maxDist) + quadrantTermWeight*(1-sumSq/0.75)
}

// quadrant maps a center point to its quadrant index.
func quadrant(cx, cy float64) int {
	right := cx >= grid.Width/2
	bottom := cy >= grid.Height/2
	switch {
	case !right && !bottom:
		return TopLeft
	case right && !bottom:
		return TopRight
	case !right && bottom:
		return BottomLeft
	default:
		return BottomRight
	}
}

// =============================================================================
// Recommendations
// =============================================================================

// recommend produces textual hints. A score at or above excellentThreshold
// yields a single confirmation and suppresses everything else.
func recommend(res Result) []string {
	if res.Score >= excellentThreshold {
		return []string{"balance is excellent"}
	}

	var recs []string
	for i, q := range res.Quadrants {
		if q > heavyQuadrant {
			recs = append(recs, fmt.Sprintf("redistribute weight away from the %s quadrant (%.0f%% of total)", quadrantNames[i], q*100))
		} else if q < lightQuadrant {
			recs = append(recs, fmt.Sprintf("add visual weight to the %s quadrant (%.0f%% of total)", quadrantNames[i], q*100))
		}
	}

	gridCX, gridCY := float64(grid.Width)/2, float64(grid.Height)/2
	if res.CenterX-gridCX > centerDriftX {
		recs = append(recs, "shift weight toward the left half of the slide")
	} else if gridCX-res.CenterX > centerDriftX {
		recs = append(recs, "shift weight toward the right half of the slide")
	}
	if res.CenterY-gridCY > centerDriftY {
		recs = append(recs, "shift weight toward the top of the slide")
	} else if gridCY-res.CenterY > centerDriftY {
		recs = append(recs, "shift weight toward the bottom of the slide")
	}

	return recs
}
