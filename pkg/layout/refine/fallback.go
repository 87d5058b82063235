package refine

import (
	"github.com/tmorell/slidegrid/pkg/grid"
	"github.com/tmorell/slidegrid/pkg/layout/pattern"
)

// Fallback layout constants.
const (
	// fallbackRowHeight is the fixed row height of the fallback stack.
	fallbackRowHeight = 16

	// fallbackWhiteSpace is asserted rather than measured: the fallback is
	// a best-effort floor, not a scored layout.
	fallbackWhiteSpace = 0.4

	fallbackAlignment = 0.8
)

// fallbackProposal builds the deterministic minimal layout used when no
// proposal survived: a vertical stack of fixed-height rows starting at the
// margin. Containers that would spill past the bottom margin are omitted and
// recorded in metrics.
func fallbackProposal(req Request, cfg grid.Config, st *State) Proposal {
	work := grid.Working(cfg.Margin)

	var placed []grid.Placed
	var omitted []string
	top := work.Top
	for _, c := range req.Containers {
		if top+fallbackRowHeight > work.Bottom() {
			omitted = append(omitted, c.ID)
			continue
		}
		placed = append(placed, grid.Placed{
			Container: c,
			Position: grid.Rect{
				Left:   work.Left,
				Top:    top,
				Width:  work.Width,
				Height: fallbackRowHeight,
			},
		})
		top += fallbackRowHeight + cfg.Gutter
	}

	st.Metrics[MetricFallbackUsed] = true
	if len(omitted) > 0 {
		st.Metrics[MetricOmittedContainers] = omitted
	}

	return Proposal{
		Pattern:         pattern.NameFallback,
		Placed:          placed,
		Decisions:       []string{"fallback vertical stack"},
		WhiteSpaceRatio: fallbackWhiteSpace,
		AlignmentScore:  fallbackAlignment,
		Confidence:      fallbackAlignment*0.8 + 0.2,
	}
}
