// Package assign maps containers into the zones chosen by pattern selection.
//
// Containers are placed in priority order: highest importance first, then
// shallowest hierarchy level, then heaviest visual weight. Explicit groupings
// claim whole zones before anything else; the rest are distributed
// round-robin over the remaining zones. A zone holding several containers
// stacks them vertically with gutter spacing.
//
// All arithmetic is integer, so every emitted coordinate lands on the grid by
// construction.
package assign

import (
	"fmt"
	"sort"

	"github.com/tmorell/slidegrid/pkg/grid"
)

// =============================================================================
// Input / Output
// =============================================================================

// Input carries everything needed to position one slide's containers.
type Input struct {
	Containers []grid.Container
	Zones      []grid.Zone

	// Groupings lists container IDs that must share one zone. Groups claim
	// zones in catalog order, one group per zone, before the round-robin
	// pass.
	Groupings [][]string

	Margin int
	Gutter int
}

// Output is the result of one assignment pass.
type Output struct {
	// Placed holds the positioned containers in placement order.
	Placed []grid.Placed

	// SpaceUtilization is the summed container area divided by the usable
	// (margin-inset) grid area.
	SpaceUtilization float64

	// AlignmentScore is the fraction of emitted coordinate values that are
	// integers. Always 1.0: assignment arithmetic is integer-only. The
	// field is retained for forward compatibility with non-integer zone
	// math; the validator recomputes its own score independently.
	AlignmentScore float64

	// Decisions is a human-readable record of placement choices.
	Decisions []string

	// Warnings lists containers that could not be placed.
	Warnings []string
}

// Position returns the placed rectangle for a container ID.
func (o Output) Position(id string) (grid.Rect, bool) {
	for _, p := range o.Placed {
		if p.Container.ID == id {
			return p.Position, true
		}
	}
	return grid.Rect{}, false
}

// =============================================================================
// Placement
// =============================================================================

// Place assigns every container in in to a zone rectangle.
func Place(in Input) Output {
	out := Output{AlignmentScore: 1.0}

	sorted := sortByPriority(in.Containers)

	if len(in.Zones) == 0 {
		for _, c := range sorted {
			out.Warnings = append(out.Warnings, fmt.Sprintf("container %s could not be placed: no zones available", c.ID))
		}
		return out
	}

	occupants := assignToZones(sorted, in.Zones, in.Groupings, &out)

	// Stack each zone's occupants vertically in assignment order. A sole
	// occupant receives the full zone rectangle.
	for zi, zone := range in.Zones {
		members := occupants[zi]
		n := len(members)
		if n == 0 {
			continue
		}
		if n == 1 {
			place(&out, members[0], zone.Rect, zone.Name)
			continue
		}
		h := (zone.Rect.Height - (n-1)*in.Gutter) / n
		if h < 1 {
			// The zone cannot hold this many rows at unit height. Keep the
			// highest-priority members that fit and report the rest.
			fit := (zone.Rect.Height + in.Gutter) / (1 + in.Gutter)
			if fit < 1 {
				fit = 1
			}
			for _, c := range members[fit:] {
				out.Warnings = append(out.Warnings, fmt.Sprintf("container %s could not be placed: zone %s full", c.ID, zone.Name))
			}
			members = members[:fit]
			n = fit
			h = (zone.Rect.Height - (n-1)*in.Gutter) / n
		}
		for i, c := range members {
			r := grid.Rect{
				Left:   zone.Rect.Left,
				Top:    zone.Rect.Top + i*(h+in.Gutter),
				Width:  zone.Rect.Width,
				Height: h,
			}
			place(&out, c, r, zone.Name)
		}
	}

	covered := 0
	for _, p := range out.Placed {
		covered += p.Position.Area()
	}
	out.SpaceUtilization = float64(covered) / float64(grid.UsableArea(in.Margin))

	return out
}

// place records one positioned container and its decision trail.
func place(out *Output, c grid.Container, r grid.Rect, zoneName string) {
	out.Placed = append(out.Placed, grid.Placed{Container: c, Position: r})
	out.Decisions = append(out.Decisions,
		fmt.Sprintf("placed %s (%s, importance %s) in zone %s at (%d,%d) %dx%d",
			c.ID, c.Role, c.Importance, zoneName, r.Left, r.Top, r.Width, r.Height))
}

// =============================================================================
// Zone Assignment
// =============================================================================

// assignToZones distributes containers over zones and returns the occupant
// list per zone index. Grouped containers go first, one group per zone in
// zone order; the remainder round-robins over the zones the groups left
// unclaimed, wrapping when containers outnumber zones.
func assignToZones(sorted []grid.Container, zones []grid.Zone, groupings [][]string, out *Output) [][]grid.Container {
	occupants := make([][]grid.Container, len(zones))
	byID := make(map[string]grid.Container, len(sorted))
	for _, c := range sorted {
		byID[c.ID] = c
	}

	grouped := make(map[string]bool)
	nextZone := 0
	for _, group := range groupings {
		if nextZone >= len(zones) {
			out.Warnings = append(out.Warnings, fmt.Sprintf("grouping %v could not claim a zone: all %d zones taken", group, len(zones)))
			break
		}
		claimed := false
		for _, id := range group {
			c, ok := byID[id]
			if !ok {
				out.Warnings = append(out.Warnings, fmt.Sprintf("grouping references unknown container %s", id))
				continue
			}
			occupants[nextZone] = append(occupants[nextZone], c)
			grouped[id] = true
			claimed = true
		}
		if claimed {
			nextZone++
		}
	}

	// Round-robin the ungrouped remainder over the unclaimed zones; fall
	// back to reusing all zones when groupings consumed everything.
	free := make([]int, 0, len(zones))
	for zi := nextZone; zi < len(zones); zi++ {
		free = append(free, zi)
	}
	if len(free) == 0 {
		for zi := range zones {
			free = append(free, zi)
		}
	}

	i := 0
	for _, c := range sorted {
		if grouped[c.ID] {
			continue
		}
		zi := free[i%len(free)]
		occupants[zi] = append(occupants[zi], c)
		i++
	}

	return occupants
}

// sortByPriority orders containers by descending importance, ascending
// hierarchy level, then descending visual weight. The sort is stable, so
// input order breaks remaining ties deterministically.
func sortByPriority(containers []grid.Container) []grid.Container {
	sorted := make([]grid.Container, len(containers))
	copy(sorted, containers)
	sort.SliceStable(sorted, func(a, b int) bool {
		ca, cb := sorted[a], sorted[b]
		if ca.ImportanceScore() != cb.ImportanceScore() {
			return ca.ImportanceScore() > cb.ImportanceScore()
		}
		if ca.HierarchyLevel != cb.HierarchyLevel {
			return ca.HierarchyLevel < cb.HierarchyLevel
		}
		return ca.VisualWeight > cb.VisualWeight
	})
	return sorted
}
