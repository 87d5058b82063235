package refine

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tmorell/slidegrid/pkg/grid"
	"github.com/tmorell/slidegrid/pkg/layout/pattern"
	"github.com/tmorell/slidegrid/pkg/layout/validate"
	"github.com/tmorell/slidegrid/pkg/observability"
)

func reportWith(valid bool, balance float64) *validate.Report {
	return &validate.Report{IsValid: valid, BalanceScore: balance}
}

func quietController() *Controller {
	return New(log.NewWithOptions(io.Discard, log.Options{}))
}

func twoTextContainers() []grid.Container {
	return []grid.Container{
		{ID: "title", Role: grid.RoleTitle, Importance: grid.ImportanceCritical, HierarchyLevel: 1, VisualWeight: 0.5},
		{ID: "body", Role: grid.RoleText, Importance: grid.ImportanceMedium, HierarchyLevel: 2, VisualWeight: 0.5},
	}
}

// checkPlacement asserts the structural layout guarantees: every container
// placed exactly once, inside the working area, with no interior overlap.
func checkPlacement(t *testing.T, res Result, containers []grid.Container, margin int) {
	t.Helper()

	if len(res.Placed) != len(containers) {
		t.Fatalf("placed %d containers, want %d", len(res.Placed), len(containers))
	}
	seen := map[string]bool{}
	for _, p := range res.Placed {
		if seen[p.Container.ID] {
			t.Errorf("container %s placed twice", p.Container.ID)
		}
		seen[p.Container.ID] = true
		if !p.Position.InBounds(margin) {
			t.Errorf("container %s at %+v escapes the %d-unit margin", p.Container.ID, p.Position, margin)
		}
	}
	for i := 0; i < len(res.Placed); i++ {
		for j := i + 1; j < len(res.Placed); j++ {
			if res.Placed[i].Position.Overlaps(res.Placed[j].Position) {
				t.Errorf("containers %s and %s overlap", res.Placed[i].Container.ID, res.Placed[j].Container.ID)
			}
		}
	}
}

func TestRunAcceptsBalancedLayout(t *testing.T) {
	containers := twoTextContainers()
	res := quietController().Run(context.Background(), Request{
		SlideID:    "s1",
		Containers: containers,
		Flow:       grid.FlowLinear,
		Config:     grid.DefaultConfig(),
	})

	if res.Status != StatusFinalized {
		t.Fatalf("status = %s, want FINALIZED", res.Status)
	}
	if !res.Valid {
		t.Errorf("layout should be valid, metrics: %v", res.Metrics)
	}
	if res.Pattern != pattern.Symmetrical {
		t.Errorf("pattern = %s, want symmetrical", res.Pattern)
	}
	if res.Iterations != 1 || res.Refinements != 0 {
		t.Errorf("iterations/refinements = %d/%d, want 1/0", res.Iterations, res.Refinements)
	}
	checkPlacement(t, res, containers, grid.DefaultMargin)

	if res.Metrics[MetricFinalValid] != true {
		t.Errorf("final_valid metric = %v, want true", res.Metrics[MetricFinalValid])
	}
	if res.Metrics[MetricTotalIterations] != 1 {
		t.Errorf("total_iterations metric = %v, want 1", res.Metrics[MetricTotalIterations])
	}
}

func TestRunTerminatesWithinBudget(t *testing.T) {
	// White-space bounds no layout can reach force refinement until the
	// iteration budget runs out; the run still finalizes with a best effort.
	cfg := grid.DefaultConfig()
	cfg.WhiteSpaceMin = 0.8
	cfg.WhiteSpaceMax = 0.9
	cfg.MaxIterations = 3

	containers := twoTextContainers()
	res := quietController().Run(context.Background(), Request{
		SlideID:    "s2",
		Containers: containers,
		Flow:       grid.FlowLinear,
		Config:     cfg,
	})

	if res.Status != StatusFinalized {
		t.Fatalf("status = %s, want FINALIZED", res.Status)
	}
	if res.Valid {
		t.Error("unreachable white-space bounds should leave the layout invalid")
	}
	if res.Iterations != cfg.MaxIterations {
		t.Errorf("iterations = %d, want the full budget %d", res.Iterations, cfg.MaxIterations)
	}
	if res.Refinements != cfg.MaxIterations-1 {
		t.Errorf("refinements = %d, want %d", res.Refinements, cfg.MaxIterations-1)
	}
	checkPlacement(t, res, containers, grid.DefaultMargin)

	triggers, _ := res.Metrics[MetricRefinementTrigger].([]string)
	if len(triggers) == 0 {
		t.Error("refinement triggers should be recorded")
	}
	if _, ok := res.Metrics[MetricPatternOverride]; !ok {
		t.Error("retries should explore alternative patterns")
	}
}

func TestRunCrowdedSlideKeepsPositiveSizes(t *testing.T) {
	// Far more containers than any pattern's zones can hold at unit height.
	// Overflow spills as warnings instead of shrinking rows to zero or below.
	var containers []grid.Container
	for i := 0; i < 40; i++ {
		containers = append(containers, grid.Container{ID: fmt.Sprintf("c%02d", i), Importance: grid.ImportanceMedium, VisualWeight: 0.5})
	}
	res := quietController().Run(context.Background(), Request{
		SlideID:    "crowded",
		Containers: containers,
		Flow:       grid.FlowLinear,
		Config:     grid.DefaultConfig(),
	})

	if res.Status != StatusFinalized {
		t.Fatalf("status = %s, want FINALIZED", res.Status)
	}
	if len(res.Placed) == 0 || len(res.Placed) > len(containers) {
		t.Fatalf("placed %d of %d containers", len(res.Placed), len(containers))
	}
	for _, p := range res.Placed {
		if p.Position.Width < 1 || p.Position.Height < 1 {
			t.Errorf("container %s has degenerate size %+v", p.Container.ID, p.Position)
		}
		if !p.Position.InBounds(grid.DefaultMargin) {
			t.Errorf("container %s at %+v escapes the margin", p.Container.ID, p.Position)
		}
	}
	for i := 0; i < len(res.Placed); i++ {
		for j := i + 1; j < len(res.Placed); j++ {
			if res.Placed[i].Position.Overlaps(res.Placed[j].Position) {
				t.Errorf("containers %s and %s overlap", res.Placed[i].Container.ID, res.Placed[j].Container.ID)
			}
		}
	}
}

func TestRunEmitsIterationEvents(t *testing.T) {
	rec := &iterationRecorder{}
	observability.SetEngineHooks(rec)
	defer observability.Reset()

	cfg := grid.DefaultConfig()
	cfg.WhiteSpaceMin = 0.8
	cfg.WhiteSpaceMax = 0.9
	cfg.MaxIterations = 3

	res := quietController().Run(context.Background(), Request{
		SlideID:    "observed",
		Containers: twoTextContainers(),
		Flow:       grid.FlowLinear,
		Config:     cfg,
	})

	if rec.count != res.Iterations {
		t.Errorf("iteration events = %d, want %d", rec.count, res.Iterations)
	}
	if rec.lastSlide != "observed" {
		t.Errorf("event slide = %q, want observed", rec.lastSlide)
	}
}

type iterationRecorder struct {
	observability.NoopEngineHooks
	count     int
	lastSlide string
}

func (r *iterationRecorder) OnIteration(_ context.Context, slideID string, _ int, _ bool, _ float64) {
	r.count++
	r.lastSlide = slideID
}

func TestRunNoContainersFails(t *testing.T) {
	res := quietController().Run(context.Background(), Request{
		SlideID: "empty",
		Flow:    grid.FlowLinear,
		Config:  grid.DefaultConfig(),
	})

	if res.Status != StatusFailed {
		t.Fatalf("status = %s, want FAILED", res.Status)
	}
	if len(res.Placed) != 0 {
		t.Errorf("no containers should yield no placements, got %d", len(res.Placed))
	}
	if _, ok := res.Metrics[MetricFailure]; !ok {
		t.Error("failure metric should record the cause")
	}
	if res.Metrics[MetricFallbackUsed] != true {
		t.Error("fallback path should be recorded")
	}
}

func TestRunInvalidConfigFails(t *testing.T) {
	cfg := grid.Config{MaxIterations: 2, WhiteSpaceMin: 0.3, WhiteSpaceMax: 0.5, Margin: 8, Gutter: -5}
	res := quietController().Run(context.Background(), Request{
		SlideID:    "bad-config",
		Containers: twoTextContainers(),
		Flow:       grid.FlowLinear,
		Config:     cfg,
	})
	if res.Status != StatusFailed {
		t.Fatalf("status = %s, want FAILED", res.Status)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	containers := twoTextContainers()
	res := quietController().Run(ctx, Request{
		SlideID:    "cancelled",
		Containers: containers,
		Flow:       grid.FlowLinear,
		Config:     grid.DefaultConfig(),
	})

	// Cancellation routes to finalize before any proposal exists, so the
	// fallback stack is returned rather than an error.
	if res.Status != StatusFinalized {
		t.Fatalf("status = %s, want FINALIZED", res.Status)
	}
	if _, ok := res.Metrics[MetricCancelled]; !ok {
		t.Error("cancellation should be recorded in metrics")
	}
	if res.Pattern != pattern.NameFallback {
		t.Errorf("pattern = %s, want fallback", res.Pattern)
	}
	checkPlacement(t, res, containers, grid.DefaultMargin)
}

func TestRunDeterministic(t *testing.T) {
	req := Request{
		SlideID: "repeat",
		Containers: []grid.Container{
			{ID: "kpi", Role: grid.RoleMetric, Importance: grid.ImportanceCritical, RequiresVisual: true, VisualWeight: 0.5},
			{ID: "chart", Role: grid.RoleChart, Importance: grid.ImportanceHigh, RequiresVisual: true, VisualWeight: 0.5},
			{ID: "trend", Role: grid.RoleChart, Importance: grid.ImportanceHigh, VisualWeight: 0.5},
			{ID: "notes", Role: grid.RoleText, Importance: grid.ImportanceLow, VisualWeight: 0.5},
		},
		Flow:   grid.FlowDashboard,
		Config: grid.DefaultConfig(),
	}

	c := quietController()
	first := c.Run(context.Background(), req)
	second := c.Run(context.Background(), req)

	if first.Pattern != second.Pattern || first.Iterations != second.Iterations {
		t.Fatalf("runs diverged: %s/%d vs %s/%d", first.Pattern, first.Iterations, second.Pattern, second.Iterations)
	}
	if !reflect.DeepEqual(first.Placed, second.Placed) {
		t.Error("placements should be identical across runs")
	}
}

func TestFallbackProposalStacksAndOmits(t *testing.T) {
	// Six containers at 16 units plus gutters exceed the 74-unit working
	// height, so the trailing ones are omitted.
	var containers []grid.Container
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		containers = append(containers, grid.Container{ID: id, Importance: grid.ImportanceMedium})
	}
	cfg := grid.DefaultConfig()
	st := newState(cfg)

	p := fallbackProposal(Request{Containers: containers}, cfg, st)

	if p.Pattern != pattern.NameFallback {
		t.Errorf("pattern = %s, want fallback", p.Pattern)
	}
	// Rows at 16 units with 4-unit gutters: tops 8, 28, 48, 68(+16=84>82 omitted).
	if len(p.Placed) != 3 {
		t.Fatalf("placed %d, want 3", len(p.Placed))
	}
	for i, pl := range p.Placed {
		wantTop := 8 + i*(16+4)
		if pl.Position.Top != wantTop || pl.Position.Height != 16 {
			t.Errorf("row %d at %+v, want top %d height 16", i, pl.Position, wantTop)
		}
	}
	omitted, _ := st.Metrics[MetricOmittedContainers].([]string)
	if !reflect.DeepEqual(omitted, []string{"d", "e", "f"}) {
		t.Errorf("omitted = %v, want [d e f]", omitted)
	}
	if p.WhiteSpaceRatio != 0.4 || p.AlignmentScore != 0.8 {
		t.Errorf("fallback asserts ratio 0.4 / alignment 0.8, got %g / %g", p.WhiteSpaceRatio, p.AlignmentScore)
	}
}

func TestShouldRefineDecisionTable(t *testing.T) {
	cfg := grid.DefaultConfig()

	tests := []struct {
		name  string
		state func() *State
		want  decision
	}{
		{
			name: "missing report fails",
			state: func() *State {
				return newState(cfg)
			},
			want: decideFail,
		},
		{
			name: "valid and balanced finalizes",
			state: func() *State {
				s := newState(cfg)
				s.Report = reportWith(true, 0.85)
				return s
			},
			want: decideFinalize,
		},
		{
			name: "valid but unbalanced retries",
			state: func() *State {
				s := newState(cfg)
				s.Report = reportWith(true, 0.4)
				return s
			},
			want: decideRefine,
		},
		{
			name: "valid with retries exhausted finalizes",
			state: func() *State {
				s := newState(cfg)
				s.Report = reportWith(true, 0.4)
				s.RefinementAttempts = cfg.MaxBalanceRetries
				return s
			},
			want: decideFinalize,
		},
		{
			name: "invalid within budget retries",
			state: func() *State {
				s := newState(cfg)
				s.Report = reportWith(false, 0.9)
				s.Iteration = 1
				return s
			},
			want: decideRefine,
		},
		{
			name: "invalid at budget finalizes",
			state: func() *State {
				s := newState(cfg)
				s.Report = reportWith(false, 0.9)
				s.Iteration = cfg.MaxIterations
				return s
			},
			want: decideFinalize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldRefine(tt.state(), cfg); got != tt.want {
				t.Errorf("shouldRefine = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusInitializing, StatusProposing, StatusValidating, StatusRefining, StatusFinalizing} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusFinalized, StatusFailed} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}
