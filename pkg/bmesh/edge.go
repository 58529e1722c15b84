package bmesh

import "fmt"

// CreateEdge adds an edge between v0 and v1 and links it into both disk
// cycles. An existing edge between the same vertices is not reused; see
// EdgeBetween.
func (m *Mesh) CreateEdge(v0, v1 VertID) (EdgeID, error) {
	if !m.verts.Contains(v0) {
		return EdgeID{}, fmt.Errorf("create edge: v0 %v: %w", v0, ErrStaleHandle)
	}
	if !m.verts.Contains(v1) {
		return EdgeID{}, fmt.Errorf("create edge: v1 %v: %w", v1, ErrStaleHandle)
	}
	if v0 == v1 {
		return EdgeID{}, fmt.Errorf("create edge: %v: %w", v0, ErrSelfLoop)
	}

	e := m.edges.Insert(Edge{V0: v0, V1: v1})
	m.diskAppend(e, v0)
	m.diskAppend(e, v1)
	return e, nil
}

// KillEdge removes e after killing every face that uses it. The endpoints
// survive. It reports false if e was already gone.
func (m *Mesh) KillEdge(e EdgeID) bool {
	if !m.edges.Contains(e) {
		return false
	}

	killed := 0
	for {
		edge := m.edges.Ref(e)
		if edge.Loop.IsZero() {
			break
		}
		l, _ := m.loops.Get(edge.Loop)
		m.KillFace(l.Face)
		killed++
	}

	edge, _ := m.edges.Get(e)
	m.diskRemove(e, edge.V0)
	m.diskRemove(e, edge.V1)
	m.edges.Remove(e)

	Logger().Debug("bmesh: kill edge", "edge", e, "faces", killed)
	return true
}

// EdgeBetween returns the first edge in a's disk cycle that ends at b.
func (m *Mesh) EdgeBetween(a, b VertID) (EdgeID, bool) {
	for e, edge := range m.VertEdges(a) {
		if edge.Other(a) == b {
			return e, true
		}
	}
	return EdgeID{}, false
}
