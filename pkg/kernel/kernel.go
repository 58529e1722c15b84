// Package kernel defines the render-facing outputs derived from a mesh and
// the polygon triangulation interface used to produce them. Triangulator
// implementations (earcut) work purely on 2D coordinates and know nothing
// about mesh topology.
package kernel

import (
	"errors"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ErrDegeneratePolygon is returned by triangulators for polygons with
// fewer than three points.
var ErrDegeneratePolygon = errors.New("kernel: polygon needs at least 3 points")

// Triangulator splits a simple polygon into triangles.
type Triangulator interface {
	// Triangulate returns indices into points, three per triangle. A
	// polygon of n points yields n-2 triangles. Either winding is accepted;
	// triangles come back counter-clockwise.
	Triangulate(points []v2.Vec) ([]int, error)
}
