// Package sdfx answers point queries against polygon outlines using the
// github.com/deadsy/sdfx 2D signed distance functions.
package sdfx

import (
	"fmt"

	"github.com/chazu/facet/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Region wraps the signed distance field of a closed polygon. Distances
// are negative inside, positive outside and zero on the boundary.
type Region struct {
	s sdf.SDF2
}

// NewRegion builds the region bounded by points, taken as a closed ring in
// either winding.
func NewRegion(points []v2.Vec) (*Region, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("sdfx: %d points: %w", len(points), kernel.ErrDegeneratePolygon)
	}
	s, err := sdf.Polygon2D(points)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return &Region{s: s}, nil
}

// Distance returns the signed distance from p to the outline.
func (r *Region) Distance(p v2.Vec) float64 {
	return r.s.Evaluate(p)
}

// Contains reports whether p is inside the region or on its outline.
func (r *Region) Contains(p v2.Vec) bool {
	return r.s.Evaluate(p) <= 0
}

// BoundingBox returns the axis-aligned bounds of the outline.
func (r *Region) BoundingBox() (min, max v2.Vec) {
	bb := r.s.BoundingBox()
	return bb.Min, bb.Max
}
