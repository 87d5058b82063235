package grid

// =============================================================================
// Canvas Constants
// =============================================================================

const (
	// Width is the horizontal extent of the slide grid in integer units.
	Width = 160

	// Height is the vertical extent of the slide grid in integer units.
	Height = 90

	// DefaultMargin is the default inset between the grid edge and content.
	DefaultMargin = 8

	// DefaultGutter is the default spacing between sibling zones and
	// between containers stacked inside one zone.
	DefaultGutter = 4
)

// =============================================================================
// Rect - Integer Rectangle
// =============================================================================

// Rect is an axis-aligned rectangle on the grid. Left and Top are insets from
// the grid's top-left corner. All fields are integer units.
type Rect struct {
	Left   int `json:"left_inset"`
	Top    int `json:"top_inset"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the exclusive right edge (Left + Width).
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge (Top + Height).
func (r Rect) Bottom() int { return r.Top + r.Height }

// Area returns the covered area in grid units.
func (r Rect) Area() int { return r.Width * r.Height }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return float64(r.Left) + float64(r.Width)/2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return float64(r.Top) + float64(r.Height)/2 }

// Overlaps reports whether r and o share any interior area.
// Rectangles that merely touch edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() <= o.Left || o.Right() <= r.Left ||
		r.Bottom() <= o.Top || o.Bottom() <= r.Top)
}

// InBounds reports whether r lies entirely inside the margin-inset working
// area of the grid.
func (r Rect) InBounds(margin int) bool {
	return r.Left >= margin && r.Top >= margin &&
		r.Right() <= Width-margin && r.Bottom() <= Height-margin
}

// =============================================================================
// Working Area
// =============================================================================

// Working returns the margin-inset working rectangle of the grid.
func Working(margin int) Rect {
	return Rect{
		Left:   margin,
		Top:    margin,
		Width:  Width - 2*margin,
		Height: Height - 2*margin,
	}
}

// UsableArea returns the area of the margin-inset working rectangle.
func UsableArea(margin int) int {
	return Working(margin).Area()
}

// =============================================================================
// Zone - Placement Target
// =============================================================================

// Zone is a named rectangle produced by pattern selection. A zone may host a
// single container (which then fills it) or several (stacked vertically).
type Zone struct {
	Name string `json:"name"`
	Rect Rect   `json:"rect"`
}

// =============================================================================
// Placed - Positioned Container
// =============================================================================

// Placed pairs a container with its final grid position.
type Placed struct {
	Container Container `json:"container"`
	Position  Rect      `json:"position"`
}

// WhiteSpaceRatio returns the fraction of the full grid area not covered by
// any placed container. Overlapping placements (which validation rejects) are
// counted once per container.
func WhiteSpaceRatio(placed []Placed) float64 {
	covered := 0
	for _, p := range placed {
		covered += p.Position.Area()
	}
	return 1 - float64(covered)/float64(Width*Height)
}
