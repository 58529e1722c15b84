package bmesh

import (
	"iter"

	"github.com/chazu/facet/pkg/store"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Handles. The zero value of each means "none".
type (
	VertID = store.Handle[Vert]
	EdgeID = store.Handle[Edge]
	LoopID = store.Handle[Loop]
	FaceID = store.Handle[Face]
)

// Vert is a mesh vertex. Edge is one incident edge, the entry point into
// the vertex's disk cycle, or zero when the vertex is isolated.
type Vert struct {
	Pos  v2.Vec
	Edge EdgeID
}

// DiskLink is one endpoint's position in a disk cycle.
type DiskLink struct {
	Next, Prev EdgeID
}

// Edge joins V0 and V1. D0 links the edge into V0's disk cycle and D1 into
// V1's. Loop is the entry point into the radial cycle, or zero when no
// face uses the edge.
type Edge struct {
	V0, V1 VertID
	Loop   LoopID
	D0, D1 DiskLink
}

// Link returns the disk link for endpoint v. A v that is not an endpoint
// selects V1's link.
func (e Edge) Link(v VertID) DiskLink {
	if e.V0 == v {
		return e.D0
	}
	return e.D1
}

// Other returns the endpoint opposite v.
func (e Edge) Other(v VertID) VertID {
	if e.V0 == v {
		return e.V1
	}
	return e.V0
}

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v VertID) bool {
	return e.V0 == v || e.V1 == v
}

func (e *Edge) link(v VertID) *DiskLink {
	if e.V0 == v {
		return &e.D0
	}
	return &e.D1
}

// Loop is one corner of a face: Vert, the Edge leaving it along the
// boundary, and the owning Face. Next/Prev walk the face boundary,
// RadialNext/RadialPrev the other loops on Edge.
type Loop struct {
	Vert VertID
	Edge EdgeID
	Face FaceID

	Next, Prev             LoopID
	RadialNext, RadialPrev LoopID
}

// Face is a closed boundary of Len loops starting at LoopStart.
type Face struct {
	LoopStart LoopID
	Len       int
}

// Mesh owns every vertex, edge, loop and face.
type Mesh struct {
	verts *store.Store[Vert]
	edges *store.Store[Edge]
	loops *store.Store[Loop]
	faces *store.Store[Face]
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{
		verts: store.New[Vert](),
		edges: store.New[Edge](),
		loops: store.New[Loop](),
		faces: store.New[Face](),
	}
}

// Vert returns a copy of the vertex named by v.
func (m *Mesh) Vert(v VertID) (Vert, bool) { return m.verts.Get(v) }

// Edge returns a copy of the edge named by e.
func (m *Mesh) Edge(e EdgeID) (Edge, bool) { return m.edges.Get(e) }

// Loop returns a copy of the loop named by l.
func (m *Mesh) Loop(l LoopID) (Loop, bool) { return m.loops.Get(l) }

// Face returns a copy of the face named by f.
func (m *Mesh) Face(f FaceID) (Face, bool) { return m.faces.Get(f) }

// NumVerts returns the number of live vertices.
func (m *Mesh) NumVerts() int { return m.verts.Len() }

// NumEdges returns the number of live edges.
func (m *Mesh) NumEdges() int { return m.edges.Len() }

// NumLoops returns the number of live loops. Every face owns one loop per
// side, so this is the sum of all face sizes.
func (m *Mesh) NumLoops() int { return m.loops.Len() }

// NumFaces returns the number of live faces.
func (m *Mesh) NumFaces() int { return m.faces.Len() }

// Verts yields every live vertex in storage order.
func (m *Mesh) Verts() iter.Seq2[VertID, Vert] { return values(m.verts) }

// Edges yields every live edge in storage order.
func (m *Mesh) Edges() iter.Seq2[EdgeID, Edge] { return values(m.edges) }

// Faces yields every live face in storage order.
func (m *Mesh) Faces() iter.Seq2[FaceID, Face] { return values(m.faces) }

func values[T any](s *store.Store[T]) iter.Seq2[store.Handle[T], T] {
	return func(yield func(store.Handle[T], T) bool) {
		for h, p := range s.All() {
			if !yield(h, *p) {
				return
			}
		}
	}
}
