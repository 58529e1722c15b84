// Package shapes builds common outlines into a bmesh.Mesh. Each builder
// creates fresh vertices, one edge per side and a single face, the same
// sequence any caller of the mesh operators would follow.
package shapes

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/facet/pkg/bmesh"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Defaults used by the New* helpers and by the engine when arguments are
// omitted.
const (
	DefaultSquareSize      = 2.0
	DefaultStarPoints      = 5
	DefaultStarOuterRadius = 1.0
	DefaultStarInnerRadius = 0.4
	DefaultCircleSegments  = 32
	DefaultCircleRadius    = 1.0
)

// ErrInvalidShape is returned for non-positive sizes or too few points.
var ErrInvalidShape = errors.New("shapes: invalid shape parameters")

// Polygon adds a face whose boundary runs through pts in order. Nothing is
// added if pts has fewer than three points.
func Polygon(m *bmesh.Mesh, pts []v2.Vec) (bmesh.FaceID, error) {
	n := len(pts)
	if n < 3 {
		return bmesh.FaceID{}, fmt.Errorf("polygon: %d points: %w", n, bmesh.ErrFaceTooSmall)
	}

	verts := make([]bmesh.VertID, n)
	for i, p := range pts {
		verts[i] = m.CreateVertAt(p)
	}

	edges := make([]bmesh.EdgeID, n)
	for i := range verts {
		e, err := m.CreateEdge(verts[i], verts[(i+1)%n])
		if err != nil {
			return bmesh.FaceID{}, fmt.Errorf("polygon: side %d: %w", i, err)
		}
		edges[i] = e
	}

	f, err := m.CreateFace(verts, edges)
	if err != nil {
		return bmesh.FaceID{}, fmt.Errorf("polygon: %w", err)
	}
	return f, nil
}

// Square adds an axis-aligned square of the given side length centred on
// the origin, wound counter-clockwise from the bottom-left corner.
func Square(m *bmesh.Mesh, size float64) (bmesh.FaceID, error) {
	if size <= 0 {
		return bmesh.FaceID{}, fmt.Errorf("square: size %g: %w", size, ErrInvalidShape)
	}
	h := size / 2
	return Polygon(m, []v2.Vec{
		{X: -h, Y: -h},
		{X: h, Y: -h},
		{X: h, Y: h},
		{X: -h, Y: h},
	})
}

// Star adds a star with the given number of points. Vertices alternate
// between the outer and inner radius, starting with an outer point on the
// positive x axis.
func Star(m *bmesh.Mesh, points int, outer, inner float64) (bmesh.FaceID, error) {
	if points < 2 || outer <= 0 || inner <= 0 {
		return bmesh.FaceID{}, fmt.Errorf("star: points=%d outer=%g inner=%g: %w", points, outer, inner, ErrInvalidShape)
	}

	pts := make([]v2.Vec, 0, 2*points)
	step := 2 * math.Pi / float64(points)
	for i := 0; i < points; i++ {
		a := float64(i) * step
		pts = append(pts, v2.Vec{X: outer * math.Cos(a), Y: outer * math.Sin(a)})

		// inner point sits halfway to the next outer point
		b := a + step/2
		pts = append(pts, v2.Vec{X: inner * math.Cos(b), Y: inner * math.Sin(b)})
	}
	return Polygon(m, pts)
}

// Circle adds a regular polygon with the given number of segments
// approximating a circle of the given radius.
func Circle(m *bmesh.Mesh, segments int, radius float64) (bmesh.FaceID, error) {
	if segments < 3 || radius <= 0 {
		return bmesh.FaceID{}, fmt.Errorf("circle: segments=%d radius=%g: %w", segments, radius, ErrInvalidShape)
	}

	pts := make([]v2.Vec, segments)
	for i := range pts {
		a := float64(i) * 2 * math.Pi / float64(segments)
		pts[i] = v2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return Polygon(m, pts)
}

// NewSquare returns a mesh holding a single default square.
func NewSquare() *bmesh.Mesh {
	m := bmesh.New()
	if _, err := Square(m, DefaultSquareSize); err != nil {
		panic(fmt.Sprintf("shapes: default square: %v", err))
	}
	return m
}

// NewStar returns a mesh holding a single default five-pointed star.
func NewStar() *bmesh.Mesh {
	m := bmesh.New()
	if _, err := Star(m, DefaultStarPoints, DefaultStarOuterRadius, DefaultStarInnerRadius); err != nil {
		panic(fmt.Sprintf("shapes: default star: %v", err))
	}
	return m
}
