// Package grid defines the integer coordinate space for slide layouts.
//
// A slide is modelled as a fixed 160×90 grid of integer units. All placement
// arithmetic is integer-only: positions and sizes never hold fractional
// values, which keeps layouts aligned by construction.
//
// # Data Model
//
// The package provides the shared vocabulary used by every layout component:
//
//   - Rect: an axis-aligned integer rectangle on the grid
//   - Zone: a named target rectangle produced by pattern selection
//   - Container: a semantic content block to be placed
//   - Placed: a container paired with its final position
//   - Config: engine tuning knobs (iterations, white-space bounds, margins)
//
// # Enumerations
//
// Importance categories and content flows are closed enumerations. Parsing
// external strings goes through ParseImportance and ParseFlow so that unknown
// values are rejected at the boundary rather than silently defaulted deep
// inside the engine. Roles are open tags from the upstream service; unknown
// roles are simply treated as non-visual.
package grid
