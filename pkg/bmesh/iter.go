package bmesh

import "iter"

// LoopIter walks a face boundary once, starting from any of its loops.
// It cannot be rewound; build a new one to walk again.
//
//	it := m.LoopIter(face.LoopStart)
//	for it.Next() {
//		l := it.Loop()
//		...
//	}
type LoopIter struct {
	m       *Mesh
	start   LoopID
	cur     LoopID
	started bool
	done    bool
}

// LoopIter returns an iterator over the face boundary containing start.
func (m *Mesh) LoopIter(start LoopID) *LoopIter {
	return &LoopIter{m: m, start: start}
}

// Next advances to the next loop. It returns false once the walk is back
// at the starting loop, or if the start handle is stale.
func (it *LoopIter) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		if !it.m.loops.Contains(it.start) {
			it.done = true
			return false
		}
		it.cur = it.start
		return true
	}

	l, ok := it.m.loops.Get(it.cur)
	if !ok || l.Next == it.start || l.Next.IsZero() {
		it.done = true
		return false
	}
	it.cur = l.Next
	return true
}

// Loop returns the current loop. Only valid after Next returned true.
func (it *LoopIter) Loop() LoopID {
	return it.cur
}

// FaceLoops yields the loops of f in boundary order.
func (m *Mesh) FaceLoops(f FaceID) iter.Seq2[LoopID, Loop] {
	return func(yield func(LoopID, Loop) bool) {
		face, ok := m.faces.Get(f)
		if !ok {
			return
		}
		it := m.LoopIter(face.LoopStart)
		for it.Next() {
			l, _ := m.loops.Get(it.Loop())
			if !yield(it.Loop(), l) {
				return
			}
		}
	}
}

// FaceVerts returns the boundary vertices of f in order, or nil for a
// stale handle.
func (m *Mesh) FaceVerts(f FaceID) []VertID {
	face, ok := m.faces.Get(f)
	if !ok {
		return nil
	}
	vs := make([]VertID, 0, face.Len)
	for _, l := range m.FaceLoops(f) {
		vs = append(vs, l.Vert)
	}
	return vs
}

// VertEdges yields the edges around v in disk order, starting at its
// representative edge.
func (m *Mesh) VertEdges(v VertID) iter.Seq2[EdgeID, Edge] {
	return func(yield func(EdgeID, Edge) bool) {
		vert, ok := m.verts.Get(v)
		if !ok || vert.Edge.IsZero() {
			return
		}
		first := vert.Edge
		e := first
		for range m.edges.Len() {
			edge, ok := m.edges.Get(e)
			if !ok || !yield(e, edge) {
				return
			}
			e = edge.Link(v).Next
			if e == first {
				return
			}
		}
	}
}

// Degree returns the number of edges incident to v.
func (m *Mesh) Degree(v VertID) int {
	n := 0
	for range m.VertEdges(v) {
		n++
	}
	return n
}

// EdgeLoops yields the loops on e in radial order, starting at its
// representative loop.
func (m *Mesh) EdgeLoops(e EdgeID) iter.Seq2[LoopID, Loop] {
	return func(yield func(LoopID, Loop) bool) {
		edge, ok := m.edges.Get(e)
		if !ok || edge.Loop.IsZero() {
			return
		}
		first := edge.Loop
		l := first
		for range m.loops.Len() {
			lp, ok := m.loops.Get(l)
			if !ok || !yield(l, lp) {
				return
			}
			l = lp.RadialNext
			if l == first {
				return
			}
		}
	}
}

// EdgeFaces returns the faces using e, in radial order.
func (m *Mesh) EdgeFaces(e EdgeID) []FaceID {
	var fs []FaceID
	for _, l := range m.EdgeLoops(e) {
		fs = append(fs, l.Face)
	}
	return fs
}
