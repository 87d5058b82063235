package pattern

import "github.com/tmorell/slidegrid/pkg/grid"

// definition is one catalog entry: best-fit predicates plus a zone rule.
type definition struct {
	name        Name
	description string

	// Approximate best-fit container-count range, inclusive.
	minCount, maxCount int

	// Best-fit visual-emphasis range, inclusive.
	emphasisMin, emphasisMax float64

	// Content flows this pattern reads well under.
	flows []grid.Flow

	// zones divides the working rectangle into gutter-separated zones.
	zones func(work grid.Rect, gutter int) []grid.Zone
}

// catalog is the fixed pattern catalog. Order matters: scoring ties are
// broken by position in this slice.
var catalog = []definition{
	{
		name:        GoldenRatio,
		description: "two zones split at the golden section, focal content left",
		minCount:    2, maxCount: 3,
		emphasisMin: 0.3, emphasisMax: 0.8,
		flows: []grid.Flow{grid.FlowHierarchical},
		zones: goldenRatioZones,
	},
	{
		name:        FPattern,
		description: "header strip with main column and sidebar, following F-shaped reading",
		minCount:    3, maxCount: 5,
		emphasisMin: 0.0, emphasisMax: 0.4,
		flows: []grid.Flow{grid.FlowLinear, grid.FlowHierarchical},
		zones: fPatternZones,
	},
	{
		name:        ZPattern,
		description: "four quadrants tracing a Z-shaped scan path",
		minCount:    4, maxCount: 6,
		emphasisMin: 0.3, emphasisMax: 0.7,
		flows: []grid.Flow{grid.FlowDashboard, grid.FlowMatrix},
		zones: zPatternZones,
	},
	{
		name:        RuleOfThirds,
		description: "three equal vertical bands on the thirds lines",
		minCount:    2, maxCount: 3,
		emphasisMin: 0.2, emphasisMax: 0.7,
		flows: []grid.Flow{grid.FlowLinear, grid.FlowRadial},
		zones: ruleOfThirdsZones,
	},
	{
		name:        Symmetrical,
		description: "one centered zone holding all content",
		minCount:    1, maxCount: 2,
		emphasisMin: 0.0, emphasisMax: 1.0,
		flows: []grid.Flow{grid.FlowRadial},
		zones: symmetricalZones,
	},
	{
		name:        Asymmetrical,
		description: "a large focal zone with a small supporting zone",
		minCount:    2, maxCount: 3,
		emphasisMin: 0.5, emphasisMax: 1.0,
		flows: []grid.Flow{grid.FlowHierarchical, grid.FlowRadial},
		zones: asymmetricalZones,
	},
}

// =============================================================================
// Zone Rules
// =============================================================================
//
// All rules divide the working rectangle with integer arithmetic, leaving one
// gutter between sibling zones. Remainders from integer division accrue to
// the last zone along each axis so the working rectangle is always filled.

// goldenRatioZones splits the width ~61.8%/38.2%.
func goldenRatioZones(work grid.Rect, gutter int) []grid.Zone {
	usable := work.Width - gutter
	focalW := usable * 618 / 1000
	return []grid.Zone{
		{Name: "focal", Rect: grid.Rect{Left: work.Left, Top: work.Top, Width: focalW, Height: work.Height}},
		{Name: "supporting", Rect: grid.Rect{Left: work.Left + focalW + gutter, Top: work.Top, Width: usable - focalW, Height: work.Height}},
	}
}

// fPatternZones stacks a header strip above a main column and sidebar.
func fPatternZones(work grid.Rect, gutter int) []grid.Zone {
	headerH := (work.Height - gutter) / 4
	bodyTop := work.Top + headerH + gutter
	bodyH := work.Height - gutter - headerH
	mainW := (work.Width - gutter) * 2 / 3
	sideW := work.Width - gutter - mainW
	return []grid.Zone{
		{Name: "header", Rect: grid.Rect{Left: work.Left, Top: work.Top, Width: work.Width, Height: headerH}},
		{Name: "main", Rect: grid.Rect{Left: work.Left, Top: bodyTop, Width: mainW, Height: bodyH}},
		{Name: "sidebar", Rect: grid.Rect{Left: work.Left + mainW + gutter, Top: bodyTop, Width: sideW, Height: bodyH}},
	}
}

// zPatternZones produces four quadrants in Z reading order.
func zPatternZones(work grid.Rect, gutter int) []grid.Zone {
	colW := (work.Width - gutter) / 2
	rowH := (work.Height - gutter) / 2
	rightW := work.Width - gutter - colW
	bottomH := work.Height - gutter - rowH
	rightLeft := work.Left + colW + gutter
	bottomTop := work.Top + rowH + gutter
	return []grid.Zone{
		{Name: "top_left", Rect: grid.Rect{Left: work.Left, Top: work.Top, Width: colW, Height: rowH}},
		{Name: "top_right", Rect: grid.Rect{Left: rightLeft, Top: work.Top, Width: rightW, Height: rowH}},
		{Name: "bottom_left", Rect: grid.Rect{Left: work.Left, Top: bottomTop, Width: colW, Height: bottomH}},
		{Name: "bottom_right", Rect: grid.Rect{Left: rightLeft, Top: bottomTop, Width: rightW, Height: bottomH}},
	}
}

// ruleOfThirdsZones produces three equal-width vertical bands.
func ruleOfThirdsZones(work grid.Rect, gutter int) []grid.Zone {
	bandW := (work.Width - 2*gutter) / 3
	lastW := work.Width - 2*gutter - 2*bandW
	return []grid.Zone{
		{Name: "left_third", Rect: grid.Rect{Left: work.Left, Top: work.Top, Width: bandW, Height: work.Height}},
		{Name: "center_third", Rect: grid.Rect{Left: work.Left + bandW + gutter, Top: work.Top, Width: bandW, Height: work.Height}},
		{Name: "right_third", Rect: grid.Rect{Left: work.Left + 2*(bandW+gutter), Top: work.Top, Width: lastW, Height: work.Height}},
	}
}

// symmetricalZones is the full working rectangle as one centered zone.
func symmetricalZones(work grid.Rect, _ int) []grid.Zone {
	return []grid.Zone{{Name: "center", Rect: work}}
}

// asymmetricalZones gives ~70% of the width to a focal zone.
func asymmetricalZones(work grid.Rect, gutter int) []grid.Zone {
	usable := work.Width - gutter
	focalW := usable * 7 / 10
	return []grid.Zone{
		{Name: "focal", Rect: grid.Rect{Left: work.Left, Top: work.Top, Width: focalW, Height: work.Height}},
		{Name: "supporting", Rect: grid.Rect{Left: work.Left + focalW + gutter, Top: work.Top, Width: usable - focalW, Height: work.Height}},
	}
}
