// Package tessellate derives render-ready views from a bmesh.Mesh: a
// shared-vertex triangle mesh, a wireframe line list and point picking.
// Every function here reads the mesh and never mutates it.
package tessellate

import (
	"fmt"

	"github.com/chazu/facet/pkg/bmesh"
	"github.com/chazu/facet/pkg/kernel"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// boundary collects the vertices of f in loop order along with their
// positions.
func boundary(m *bmesh.Mesh, f bmesh.FaceID) ([]bmesh.VertID, []v2.Vec) {
	face, _ := m.Face(f)
	verts := make([]bmesh.VertID, 0, face.Len)
	points := make([]v2.Vec, 0, face.Len)

	it := m.LoopIter(face.LoopStart)
	for it.Next() {
		l, _ := m.Loop(it.Loop())
		v, _ := m.Vert(l.Vert)
		verts = append(verts, l.Vert)
		points = append(points, v.Pos)
	}
	return verts, points
}

// Triangulate walks every face, triangulates its boundary with t and
// merges the results into one mesh. Vertices shared between faces are
// emitted once, keyed by handle, in order of first use.
func Triangulate(m *bmesh.Mesh, t kernel.Triangulator) (*kernel.Mesh, error) {
	out := &kernel.Mesh{}
	if m == nil {
		return out, nil
	}

	index := make(map[bmesh.VertID]uint32)
	for f := range m.Faces() {
		verts, points := boundary(m, f)

		tris, err := t.Triangulate(points)
		if err != nil {
			return nil, fmt.Errorf("tessellate: face %v: %w", f, err)
		}

		for _, i := range tris {
			v := verts[i]
			j, ok := index[v]
			if !ok {
				j = uint32(len(index))
				index[v] = j
				p := points[i]
				out.Vertices = append(out.Vertices, float32(p.X), float32(p.Y))
			}
			out.Indices = append(out.Indices, j)
		}
	}

	return out, nil
}

// TriangulateFace triangulates a single face into its own mesh with one
// vertex per boundary corner.
func TriangulateFace(m *bmesh.Mesh, f bmesh.FaceID, t kernel.Triangulator) (*kernel.Mesh, error) {
	if _, ok := m.Face(f); !ok {
		return nil, fmt.Errorf("tessellate: face %v: %w", f, bmesh.ErrStaleHandle)
	}
	_, points := boundary(m, f)
	tris, err := t.Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("tessellate: face %v: %w", f, err)
	}

	out := &kernel.Mesh{Name: f.String()}
	out.Vertices = make([]float32, 0, 2*len(points))
	for _, p := range points {
		out.Vertices = append(out.Vertices, float32(p.X), float32(p.Y))
	}
	out.Indices = make([]uint32, len(tris))
	for i, j := range tris {
		out.Indices[i] = uint32(j)
	}
	return out, nil
}

// Wireframe emits both endpoint positions of every edge, in storage order.
func Wireframe(m *bmesh.Mesh) *kernel.Wireframe {
	w := &kernel.Wireframe{}
	if m == nil {
		return w
	}
	w.Lines = make([]float32, 0, m.NumEdges()*4)
	for _, e := range m.Edges() {
		a, _ := m.Vert(e.V0)
		b, _ := m.Vert(e.V1)
		w.Lines = append(w.Lines,
			float32(a.Pos.X), float32(a.Pos.Y),
			float32(b.Pos.X), float32(b.Pos.Y))
	}
	return w
}

// Pick returns the face whose outline contains p. It is shorthand for
// NewIndex(m).Pick(p); build an Index directly for repeated queries.
func Pick(m *bmesh.Mesh, p v2.Vec) (bmesh.FaceID, bool) {
	return NewIndex(m).Pick(p)
}
