package grid

import "fmt"

// =============================================================================
// Importance - Closed Category Enumeration
// =============================================================================

// Importance is the categorical importance of a container, assigned by the
// upstream content-analysis service.
type Importance string

// Importance categories, from most to least prominent.
const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
	ImportanceOptional Importance = "optional"
)

// ParseImportance converts an external string into an Importance category.
// An empty string maps to ImportanceMedium; unknown values are rejected.
func ParseImportance(s string) (Importance, error) {
	switch Importance(s) {
	case ImportanceCritical, ImportanceHigh, ImportanceMedium, ImportanceLow, ImportanceOptional:
		return Importance(s), nil
	case "":
		return ImportanceMedium, nil
	default:
		return "", fmt.Errorf("unknown importance category: %q", s)
	}
}

// Score returns the numeric importance weight in [0,1] for the category.
func (i Importance) Score() float64 {
	switch i {
	case ImportanceCritical:
		return 1.0
	case ImportanceHigh:
		return 0.8
	case ImportanceMedium:
		return 0.5
	case ImportanceLow:
		return 0.3
	case ImportanceOptional:
		return 0.1
	default:
		// Unparsed values are rejected by ParseImportance before they
		// reach scoring; treat stragglers as medium.
		return 0.5
	}
}

// =============================================================================
// Flow - Content Flow Styles
// =============================================================================

// Flow describes how content on a slide reads, which biases pattern choice.
type Flow string

// Content-flow styles.
const (
	FlowLinear       Flow = "linear"
	FlowHierarchical Flow = "hierarchical"
	FlowRadial       Flow = "radial"
	FlowMatrix       Flow = "matrix"
	FlowDashboard    Flow = "dashboard"
)

// ParseFlow converts an external string into a Flow. An empty string maps to
// FlowLinear; unknown values are rejected.
func ParseFlow(s string) (Flow, error) {
	switch Flow(s) {
	case FlowLinear, FlowHierarchical, FlowRadial, FlowMatrix, FlowDashboard:
		return Flow(s), nil
	case "":
		return FlowLinear, nil
	default:
		return "", fmt.Errorf("unknown content flow: %q", s)
	}
}

// =============================================================================
// Role - Display Roles
// =============================================================================

// Role tags what kind of content a container holds. Roles never influence
// placement geometry; they only feed the visual-weight multiplier and
// downstream display-style mapping.
type Role string

// Known container roles.
const (
	RoleTitle   Role = "title"
	RoleText    Role = "text"
	RoleList    Role = "bullet_list"
	RoleImage   Role = "image"
	RoleChart   Role = "chart"
	RoleDiagram Role = "diagram"
	RoleMetric  Role = "metric"
	RoleQuote   Role = "quote"
	RoleCaption Role = "caption"
)

// IsVisual reports whether the role carries visual content (images, charts,
// diagrams, metrics) as opposed to plain text.
func (r Role) IsVisual() bool {
	switch r {
	case RoleImage, RoleChart, RoleDiagram, RoleMetric:
		return true
	case RoleTitle, RoleText, RoleList, RoleQuote, RoleCaption:
		return false
	default:
		// Roles are free-form tags from the upstream service; unknown
		// tags are treated as non-visual.
		return false
	}
}

// =============================================================================
// Container - Content Block
// =============================================================================

// Container is a semantic content block to place on the grid. Containers are
// produced by the upstream structure-analysis service and are immutable for
// the duration of one layout request.
type Container struct {
	ID             string     `json:"id"`
	Role           Role       `json:"role,omitempty"`
	ContentSummary string     `json:"content_summary,omitempty"`
	Importance     Importance `json:"importance"`

	// HierarchyLevel orders containers within the slide outline; 1 is the
	// highest level.
	HierarchyLevel int `json:"hierarchy_level,omitempty"`

	// VisualWeight in [0,1]. Defaults to 0.5 unless the author supplied a
	// value, in which case WeightExplicit is set and the balance scorer
	// uses VisualWeight instead of the importance-derived base weight.
	VisualWeight   float64 `json:"visual_weight"`
	WeightExplicit bool    `json:"weight_explicit,omitempty"`

	RequiresVisual bool `json:"requires_visual,omitempty"`
}

// ImportanceScore returns the numeric importance weight for sorting and
// scoring.
func (c Container) ImportanceScore() float64 {
	return c.Importance.Score()
}

// VisualEmphasis returns the fraction of containers that require visual
// content. Returns 0 for an empty slice.
func VisualEmphasis(containers []Container) float64 {
	if len(containers) == 0 {
		return 0
	}
	visual := 0
	for _, c := range containers {
		if c.RequiresVisual || c.Role.IsVisual() {
			visual++
		}
	}
	return float64(visual) / float64(len(containers))
}
