// Package earcut triangulates simple 2D polygons by ear clipping.
package earcut

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ kernel.Triangulator = (*Triangulator)(nil)

// epsilon below which a corner is treated as straight.
const epsilon = 1e-12

// Triangulator implements kernel.Triangulator. The zero value is ready to
// use.
type Triangulator struct{}

// New returns a Triangulator.
func New() *Triangulator {
	return &Triangulator{}
}

// Triangulate clips ears from the polygon until one triangle is left.
// Input may wind either way; output triangles are counter-clockwise. If no
// ear can be found (self-intersecting or fully collinear input) the corner
// at the front of the remaining ring is clipped anyway, so the result
// always has len(points)-2 triangles.
func (t *Triangulator) Triangulate(points []v2.Vec) ([]int, error) {
	n := len(points)
	if n < 3 {
		return nil, fmt.Errorf("earcut: %d points: %w", n, kernel.ErrDegeneratePolygon)
	}

	ring := make([]int, n)
	for i := range ring {
		ring[i] = i
	}
	if signedArea(points) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}

	tris := make([]int, 0, 3*(n-2))
	start := 0
	for len(ring) > 3 {
		k := len(ring)
		clip := -1
		for s := 0; s < k; s++ {
			i := (start + s) % k
			if isEar(points, ring, i) {
				clip = i
				break
			}
		}
		if clip < 0 {
			clip = 0
		}

		prev, next := ring[(clip+k-1)%k], ring[(clip+1)%k]
		tris = append(tris, prev, ring[clip], next)
		ring = append(ring[:clip], ring[clip+1:]...)
		start = clip % len(ring)
	}
	tris = append(tris, ring[0], ring[1], ring[2])

	return tris, nil
}

// isEar reports whether corner i of ring is convex and no other ring
// vertex lies inside or on the triangle it forms with its neighbours.
func isEar(points []v2.Vec, ring []int, i int) bool {
	k := len(ring)
	ia, ib, ic := ring[(i+k-1)%k], ring[i], ring[(i+1)%k]
	a, b, c := points[ia], points[ib], points[ic]

	if cross(a, b, c) <= epsilon {
		return false
	}
	for _, j := range ring {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := points[j]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// cross returns the z component of (b-a) x (c-b); positive for a left turn.
func cross(a, b, c v2.Vec) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

// inTriangle reports whether p lies inside or on the counter-clockwise
// triangle abc.
func inTriangle(p, a, b, c v2.Vec) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}

// signedArea is positive for counter-clockwise polygons.
func signedArea(points []v2.Vec) float64 {
	var s float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		s += p.X*q.Y - q.X*p.Y
	}
	return s / 2
}
