package assign

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tmorell/slidegrid/pkg/grid"
)

func zonesPair() []grid.Zone {
	return []grid.Zone{
		{Name: "focal", Rect: grid.Rect{Left: 8, Top: 8, Width: 86, Height: 74}},
		{Name: "supporting", Rect: grid.Rect{Left: 98, Top: 8, Width: 54, Height: 74}},
	}
}

func TestPlaceSoleOccupantFillsZone(t *testing.T) {
	zones := zonesPair()
	out := Place(Input{
		Containers: []grid.Container{
			{ID: "title", Importance: grid.ImportanceCritical},
			{ID: "aside", Importance: grid.ImportanceLow},
		},
		Zones:  zones,
		Margin: 8,
		Gutter: 4,
	})

	if len(out.Placed) != 2 {
		t.Fatalf("placed %d containers, want 2", len(out.Placed))
	}
	pos, ok := out.Position("title")
	if !ok || pos != zones[0].Rect {
		t.Errorf("title position = %+v, want focal zone %+v", pos, zones[0].Rect)
	}
	pos, ok = out.Position("aside")
	if !ok || pos != zones[1].Rect {
		t.Errorf("aside position = %+v, want supporting zone %+v", pos, zones[1].Rect)
	}
}

func TestPlacePriorityOrder(t *testing.T) {
	// The highest-priority container must land in the first zone regardless
	// of input order.
	out := Place(Input{
		Containers: []grid.Container{
			{ID: "low", Importance: grid.ImportanceLow},
			{ID: "crit", Importance: grid.ImportanceCritical},
		},
		Zones:  zonesPair(),
		Margin: 8,
		Gutter: 4,
	})

	pos, _ := out.Position("crit")
	if pos.Left != 8 {
		t.Errorf("critical container should claim the first zone, got %+v", pos)
	}
}

func TestPlacePriorityTieBreaks(t *testing.T) {
	// Equal importance: shallower hierarchy wins, then heavier visual weight,
	// then input order.
	out := Place(Input{
		Containers: []grid.Container{
			{ID: "deep", Importance: grid.ImportanceMedium, HierarchyLevel: 3, VisualWeight: 0.5},
			{ID: "shallow", Importance: grid.ImportanceMedium, HierarchyLevel: 1, VisualWeight: 0.5},
		},
		Zones:  zonesPair(),
		Margin: 8,
		Gutter: 4,
	})
	pos, _ := out.Position("shallow")
	if pos.Left != 8 {
		t.Errorf("shallow hierarchy should claim the first zone, got %+v", pos)
	}
}

func TestPlaceStacksZoneOccupants(t *testing.T) {
	zone := grid.Zone{Name: "center", Rect: grid.Rect{Left: 8, Top: 8, Width: 144, Height: 74}}
	out := Place(Input{
		Containers: []grid.Container{
			{ID: "a", Importance: grid.ImportanceHigh},
			{ID: "b", Importance: grid.ImportanceMedium},
			{ID: "c", Importance: grid.ImportanceLow},
		},
		Zones:  []grid.Zone{zone},
		Margin: 8,
		Gutter: 4,
	})

	if len(out.Placed) != 3 {
		t.Fatalf("placed %d, want 3", len(out.Placed))
	}
	// h = (74 - 2*4) / 3 = 22
	wantH := 22
	for i, p := range out.Placed {
		if p.Position.Height != wantH {
			t.Errorf("row %d height = %d, want %d", i, p.Position.Height, wantH)
		}
		if p.Position.Width != zone.Rect.Width {
			t.Errorf("row %d width = %d, want full zone width", i, p.Position.Width)
		}
	}
	// Rows are gutter-separated and ordered top to bottom.
	a, _ := out.Position("a")
	b, _ := out.Position("b")
	if b.Top != a.Bottom()+4 {
		t.Errorf("second row top = %d, want %d", b.Top, a.Bottom()+4)
	}
}

func TestPlaceOverflowingZoneOmitsExtras(t *testing.T) {
	// 40 containers stacked into one 74-unit zone would need sub-unit rows.
	// The zone keeps the highest-priority members at unit height or better and
	// warns about the rest.
	zone := grid.Zone{Name: "center", Rect: grid.Rect{Left: 8, Top: 8, Width: 144, Height: 74}}
	var containers []grid.Container
	for i := 0; i < 40; i++ {
		containers = append(containers, grid.Container{ID: fmt.Sprintf("c%02d", i), Importance: grid.ImportanceMedium})
	}
	out := Place(Input{
		Containers: containers,
		Zones:      []grid.Zone{zone},
		Margin:     8,
		Gutter:     4,
	})

	// fit = (74 + 4) / (1 + 4) = 15 rows of height (74 - 14*4) / 15 = 1.
	if len(out.Placed) != 15 {
		t.Fatalf("placed %d, want 15", len(out.Placed))
	}
	for _, p := range out.Placed {
		if p.Position.Height < 1 {
			t.Errorf("%s height = %d, want at least 1", p.Container.ID, p.Position.Height)
		}
		if p.Position.Bottom() > zone.Rect.Bottom() {
			t.Errorf("%s at %+v escapes the zone", p.Container.ID, p.Position)
		}
	}
	// The stable sort keeps input order for equal priority, so c15..c39 spill.
	if _, ok := out.Position("c14"); !ok {
		t.Error("c14 should fit")
	}
	if _, ok := out.Position("c15"); ok {
		t.Error("c15 should have spilled")
	}
	if len(out.Warnings) != 25 {
		t.Errorf("warnings = %d, want 25", len(out.Warnings))
	}
	for _, w := range out.Warnings {
		if !strings.Contains(w, "full") {
			t.Errorf("warning should name the full zone: %s", w)
		}
	}
}

func TestPlaceGroupingsClaimZonesFirst(t *testing.T) {
	out := Place(Input{
		Containers: []grid.Container{
			{ID: "chart", Importance: grid.ImportanceHigh},
			{ID: "caption", Importance: grid.ImportanceLow},
			{ID: "title", Importance: grid.ImportanceCritical},
		},
		Zones:     zonesPair(),
		Groupings: [][]string{{"chart", "caption"}},
		Margin:    8,
		Gutter:    4,
	})

	// The group shares the first zone; the title round-robins into the rest.
	chart, _ := out.Position("chart")
	caption, _ := out.Position("caption")
	title, _ := out.Position("title")
	if chart.Left != 8 || caption.Left != 8 {
		t.Errorf("grouped containers should share the first zone: chart %+v caption %+v", chart, caption)
	}
	if chart.Overlaps(caption) {
		t.Error("stacked group members must not overlap")
	}
	if title.Left != 98 {
		t.Errorf("ungrouped title should land in the remaining zone, got %+v", title)
	}
}

func TestPlaceGroupingUnknownContainer(t *testing.T) {
	out := Place(Input{
		Containers: []grid.Container{{ID: "a", Importance: grid.ImportanceMedium}},
		Zones:      zonesPair(),
		Groupings:  [][]string{{"ghost"}},
		Margin:     8,
		Gutter:     4,
	})
	found := false
	for _, w := range out.Warnings {
		if strings.Contains(w, "ghost") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning about unknown grouping member, got %v", out.Warnings)
	}
	if len(out.Placed) != 1 {
		t.Errorf("the real container should still be placed, got %d", len(out.Placed))
	}
}

func TestPlaceNoZones(t *testing.T) {
	out := Place(Input{
		Containers: []grid.Container{
			{ID: "a", Importance: grid.ImportanceMedium},
			{ID: "b", Importance: grid.ImportanceMedium},
		},
		Margin: 8,
		Gutter: 4,
	})
	if len(out.Placed) != 0 {
		t.Errorf("no zones should place nothing, got %d", len(out.Placed))
	}
	if len(out.Warnings) != 2 {
		t.Errorf("want one warning per container, got %v", out.Warnings)
	}
}

func TestPlaceOutputScores(t *testing.T) {
	zone := grid.Zone{Name: "center", Rect: grid.Working(8)}
	out := Place(Input{
		Containers: []grid.Container{{ID: "a", Importance: grid.ImportanceMedium}},
		Zones:      []grid.Zone{zone},
		Margin:     8,
		Gutter:     4,
	})
	if out.AlignmentScore != 1.0 {
		t.Errorf("alignment score = %g, want 1.0", out.AlignmentScore)
	}
	// One container filling the whole working rect: utilization 1.0.
	if out.SpaceUtilization != 1.0 {
		t.Errorf("space utilization = %g, want 1.0", out.SpaceUtilization)
	}
	if len(out.Decisions) == 0 {
		t.Error("expected a decision record per placement")
	}
}
