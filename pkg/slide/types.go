// Package slide defines the canonical serialization formats for layout
// requests and results.
//
// The formats are the engine's external boundary: the upstream
// content-analysis service produces Input documents, and downstream
// rendering/theming components consume Layout documents purely as
// positioning data. Both are plain JSON designed for round-trip fidelity
// and used for files, API payloads, and cache entries alike.
package slide

import (
	"encoding/json"
	"fmt"

	"github.com/tmorell/slidegrid/pkg/grid"
	"github.com/tmorell/slidegrid/pkg/layout/refine"
)

// =============================================================================
// Input - Layout Request
// =============================================================================

// Container is the wire form of one content block from the upstream
// structure-analysis service.
type Container struct {
	ID             string   `json:"id"`
	Role           string   `json:"role,omitempty"`
	ContentSummary string   `json:"content_summary,omitempty"`
	Importance     string   `json:"importance,omitempty"`
	HierarchyLevel int      `json:"hierarchy_level,omitempty"`
	VisualWeight   *float64 `json:"visual_weight,omitempty"`
	RequiresVisual bool     `json:"requires_visual,omitempty"`
}

// Input is one slide-layout request.
type Input struct {
	SlideID    string      `json:"slide_id"`
	Flow       string      `json:"flow,omitempty"`
	Containers []Container `json:"containers"`
	Groupings  [][]string  `json:"groupings,omitempty"`
}

// ToGrid converts the wire input into engine types, rejecting unknown
// importance categories and flows at the boundary.
func (in Input) ToGrid() ([]grid.Container, grid.Flow, error) {
	flow, err := grid.ParseFlow(in.Flow)
	if err != nil {
		return nil, "", fmt.Errorf("slide %s: %w", in.SlideID, err)
	}

	containers := make([]grid.Container, len(in.Containers))
	for i, c := range in.Containers {
		imp, err := grid.ParseImportance(c.Importance)
		if err != nil {
			return nil, "", fmt.Errorf("container %s: %w", c.ID, err)
		}
		level := c.HierarchyLevel
		if level < 1 {
			level = 1
		}
		gc := grid.Container{
			ID:             c.ID,
			Role:           grid.Role(c.Role),
			ContentSummary: c.ContentSummary,
			Importance:     imp,
			HierarchyLevel: level,
			VisualWeight:   0.5,
			RequiresVisual: c.RequiresVisual,
		}
		if c.VisualWeight != nil {
			gc.VisualWeight = *c.VisualWeight
			gc.WeightExplicit = true
		}
		containers[i] = gc
	}
	return containers, flow, nil
}

// =============================================================================
// Layout - Final Result
// =============================================================================

// Position is the wire form of a grid rectangle.
type Position struct {
	LeftInset int `json:"left_inset"`
	TopInset  int `json:"top_inset"`
	Width     int `json:"width"`
	Height    int `json:"height"`
}

// PlacedContainer pairs a container ID with its final position.
type PlacedContainer struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
}

// Layout is the final positioning result for one slide.
type Layout struct {
	SlideID         string            `json:"slide_id"`
	Status          string            `json:"status"`
	Pattern         string            `json:"pattern"`
	Containers      []PlacedContainer `json:"containers"`
	WhiteSpaceRatio float64           `json:"white_space_ratio"`
	AlignmentScore  float64           `json:"alignment_score"`
	BalanceScore    float64           `json:"balance_score"`
	Valid           bool              `json:"valid"`
	Metrics         map[string]any    `json:"generation_metrics,omitempty"`
}

// FromResult converts a refinement result into the serialization format.
func FromResult(r refine.Result) Layout {
	out := Layout{
		SlideID:         r.SlideID,
		Status:          string(r.Status),
		Pattern:         string(r.Pattern),
		Containers:      make([]PlacedContainer, len(r.Placed)),
		WhiteSpaceRatio: r.WhiteSpaceRatio,
		AlignmentScore:  r.AlignmentScore,
		BalanceScore:    r.BalanceScore,
		Valid:           r.Valid,
		Metrics:         r.Metrics,
	}
	for i, p := range r.Placed {
		out.Containers[i] = PlacedContainer{
			ID: p.Container.ID,
			Position: Position{
				LeftInset: p.Position.Left,
				TopInset:  p.Position.Top,
				Width:     p.Position.Width,
				Height:    p.Position.Height,
			},
		}
	}
	return out
}

// =============================================================================
// JSON Helpers
// =============================================================================

// MarshalInput serializes an input with stable indentation.
func MarshalInput(in Input) ([]byte, error) {
	return json.MarshalIndent(in, "", "  ")
}

// UnmarshalInput deserializes JSON bytes into an Input.
func UnmarshalInput(data []byte) (Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, err
	}
	if in.SlideID == "" {
		return Input{}, fmt.Errorf("input is missing slide_id")
	}
	return in, nil
}

// MarshalLayout serializes a layout with stable indentation.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	return l, nil
}
