package pattern

import (
	"testing"

	"github.com/tmorell/slidegrid/pkg/grid"
)

func TestSelectSingleTextContainer(t *testing.T) {
	// A title-only slide: no pattern matches the count except symmetrical,
	// which also covers any emphasis.
	sel := Select(Input{
		ContainerCount: 1,
		Flow:           grid.FlowLinear,
		VisualEmphasis: 0,
	}, grid.DefaultMargin, grid.DefaultGutter)

	if sel.Name != Symmetrical {
		t.Fatalf("selected %s, want %s", sel.Name, Symmetrical)
	}
	if sel.Score != 3.5 {
		t.Errorf("score = %g, want 3.5 (count 2.0 + emphasis 1.5)", sel.Score)
	}
	if len(sel.Zones) != 1 {
		t.Fatalf("zones = %d, want 1", len(sel.Zones))
	}
	if sel.Zones[0].Rect != grid.Working(grid.DefaultMargin) {
		t.Errorf("zone = %+v, want full working rect", sel.Zones[0].Rect)
	}
}

func TestSelectDashboard(t *testing.T) {
	// Four visual-heavy containers in dashboard flow hit every z_pattern
	// predicate.
	sel := Select(Input{
		ContainerCount: 4,
		Flow:           grid.FlowDashboard,
		VisualEmphasis: 0.5,
	}, grid.DefaultMargin, grid.DefaultGutter)

	if sel.Name != ZPattern {
		t.Fatalf("selected %s, want %s", sel.Name, ZPattern)
	}
	if sel.Score != 4.5 {
		t.Errorf("score = %g, want 4.5", sel.Score)
	}
	if len(sel.Zones) != 4 {
		t.Errorf("zones = %d, want 4 quadrants", len(sel.Zones))
	}
	if len(sel.Alternatives) != 3 {
		t.Errorf("alternatives = %d, want 3", len(sel.Alternatives))
	}
}

func TestSelectTieBreaksByCatalogOrder(t *testing.T) {
	// Two containers with extreme emphasis under matrix flow score 2.0 for
	// golden_ratio and rule_of_thirds and 3.5 for both symmetrical and
	// asymmetrical; symmetrical is earlier in the catalog.
	sel := Select(Input{
		ContainerCount: 2,
		Flow:           grid.FlowMatrix,
		VisualEmphasis: 0.9,
	}, grid.DefaultMargin, grid.DefaultGutter)

	if sel.Name != Symmetrical {
		t.Fatalf("selected %s, want %s (catalog-order tie break)", sel.Name, Symmetrical)
	}
	if len(sel.Alternatives) == 0 || sel.Alternatives[0].Name != Asymmetrical {
		t.Fatalf("first alternative = %+v, want asymmetrical", sel.Alternatives)
	}
	if sel.Alternatives[0].Score != sel.Score {
		t.Errorf("tied alternative score %g != winner score %g", sel.Alternatives[0].Score, sel.Score)
	}
}

func TestSelectDeterministic(t *testing.T) {
	in := Input{ContainerCount: 3, Flow: grid.FlowHierarchical, VisualEmphasis: 0.4}
	first := Select(in, grid.DefaultMargin, grid.DefaultGutter)
	for i := 0; i < 5; i++ {
		again := Select(in, grid.DefaultMargin, grid.DefaultGutter)
		if again.Name != first.Name || again.Score != first.Score {
			t.Fatalf("selection not deterministic: %s/%g vs %s/%g", again.Name, again.Score, first.Name, first.Score)
		}
	}
}

func TestSelectZeroContainers(t *testing.T) {
	sel := Select(Input{ContainerCount: 0}, grid.DefaultMargin, grid.DefaultGutter)
	if sel.Name != Symmetrical || len(sel.Zones) != 1 {
		t.Errorf("zero-container selection = %s with %d zones, want default single zone", sel.Name, len(sel.Zones))
	}
}

func TestZonesGeometry(t *testing.T) {
	work := grid.Working(grid.DefaultMargin)

	for _, name := range All() {
		t.Run(string(name), func(t *testing.T) {
			zones, ok := Zones(name, grid.DefaultMargin, grid.DefaultGutter)
			if !ok {
				t.Fatalf("Zones(%s) not found", name)
			}
			if len(zones) == 0 {
				t.Fatal("no zones generated")
			}
			for _, z := range zones {
				r := z.Rect
				if r.Width <= 0 || r.Height <= 0 {
					t.Errorf("zone %s has degenerate rect %+v", z.Name, r)
				}
				if r.Left < work.Left || r.Top < work.Top || r.Right() > work.Right() || r.Bottom() > work.Bottom() {
					t.Errorf("zone %s escapes the working rect: %+v", z.Name, r)
				}
			}
			for i := 0; i < len(zones); i++ {
				for j := i + 1; j < len(zones); j++ {
					if zones[i].Rect.Overlaps(zones[j].Rect) {
						t.Errorf("zones %s and %s overlap", zones[i].Name, zones[j].Name)
					}
				}
			}
		})
	}
}

func TestZonesUnknownPattern(t *testing.T) {
	if _, ok := Zones(NameFallback, grid.DefaultMargin, grid.DefaultGutter); ok {
		t.Error("fallback is not a catalog pattern and should not generate zones")
	}
}

func TestFPatternZoneSplit(t *testing.T) {
	zones, _ := Zones(FPattern, 8, 4)
	if len(zones) != 3 {
		t.Fatalf("zones = %d, want 3", len(zones))
	}
	header, main, sidebar := zones[0], zones[1], zones[2]
	if header.Rect.Height != 17 {
		t.Errorf("header height = %d, want 17", header.Rect.Height)
	}
	if main.Rect.Top != header.Rect.Bottom()+4 {
		t.Errorf("main top = %d, want header bottom + gutter", main.Rect.Top)
	}
	if main.Rect.Width != 93 || sidebar.Rect.Width != 47 {
		t.Errorf("body widths = %d/%d, want 93/47", main.Rect.Width, sidebar.Rect.Width)
	}
}

func TestValid(t *testing.T) {
	for _, n := range All() {
		if !Valid(n) {
			t.Errorf("%s should be a valid catalog pattern", n)
		}
	}
	if Valid(NameFallback) {
		t.Error("fallback should not be a catalog pattern")
	}
}
