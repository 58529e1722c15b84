package bmesh

import "fmt"

// CreateFace builds a face whose boundary visits verts in order, with
// edges[i] joining verts[i] and verts[(i+1)%n]. One loop is created per
// corner and appended to its edge's radial cycle. The request is checked
// in full before anything is allocated, so a failed call leaves the mesh
// unchanged. Winding and planarity are not checked.
func (m *Mesh) CreateFace(verts []VertID, edges []EdgeID) (FaceID, error) {
	if err := m.checkBoundary(verts, edges); err != nil {
		Logger().Debug("bmesh: reject face", "verts", len(verts), "err", err)
		return FaceID{}, fmt.Errorf("create face: %w", err)
	}

	n := len(verts)
	f := m.faces.Insert(Face{Len: n})

	ls := make([]LoopID, n)
	for i := range n {
		ls[i] = m.loops.Insert(Loop{Vert: verts[i], Edge: edges[i], Face: f})
		m.radialAppend(edges[i], ls[i])
	}
	for i, l := range ls {
		lp := m.loops.Ref(l)
		lp.Next = ls[(i+1)%n]
		lp.Prev = ls[(i+n-1)%n]
	}
	m.faces.Ref(f).LoopStart = ls[0]

	return f, nil
}

func (m *Mesh) checkBoundary(verts []VertID, edges []EdgeID) error {
	n := len(verts)
	if n != len(edges) {
		return fmt.Errorf("%d vertices, %d edges: %w", n, len(edges), ErrLengthMismatch)
	}
	if err := m.checkVerts(verts); err != nil {
		return err
	}
	for i, e := range edges {
		edge, ok := m.edges.Get(e)
		if !ok {
			return fmt.Errorf("edge %d (%v): %w", i, e, ErrStaleHandle)
		}
		a, b := verts[i], verts[(i+1)%n]
		if !edge.Has(a) || !edge.Has(b) {
			return fmt.Errorf("edge %d (%v) between %v and %v: %w", i, e, a, b, ErrOpenBoundary)
		}
	}
	return nil
}

// checkVerts requires at least three live, distinct vertices.
func (m *Mesh) checkVerts(verts []VertID) error {
	n := len(verts)
	if n < 3 {
		return fmt.Errorf("%d vertices: %w", n, ErrFaceTooSmall)
	}

	seen := make(map[VertID]struct{}, n)
	for i, v := range verts {
		if !m.verts.Contains(v) {
			return fmt.Errorf("vertex %d (%v): %w", i, v, ErrStaleHandle)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("vertex %d (%v): %w", i, v, ErrRepeatedVertex)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// CreateFaceFromVerts builds a face over verts, reusing an existing edge
// between each consecutive pair and creating the ones that are missing.
// Edges created here are removed again if the face is rejected.
func (m *Mesh) CreateFaceFromVerts(verts []VertID) (FaceID, error) {
	if err := m.checkVerts(verts); err != nil {
		return FaceID{}, fmt.Errorf("create face: %w", err)
	}

	n := len(verts)
	edges := make([]EdgeID, n)
	var created []EdgeID
	undo := func() {
		for _, e := range created {
			m.KillEdge(e)
		}
	}

	for i := range n {
		a, b := verts[i], verts[(i+1)%n]
		if e, ok := m.EdgeBetween(a, b); ok {
			edges[i] = e
			continue
		}
		e, err := m.CreateEdge(a, b)
		if err != nil {
			undo()
			return FaceID{}, fmt.Errorf("create face: side %d: %w", i, err)
		}
		edges[i] = e
		created = append(created, e)
	}

	f, err := m.CreateFace(verts, edges)
	if err != nil {
		undo()
		return FaceID{}, err
	}
	return f, nil
}

// KillFace removes f and its loops. Edges and vertices are left in place.
// It reports false if f was already gone.
func (m *Mesh) KillFace(f FaceID) bool {
	face, ok := m.faces.Get(f)
	if !ok {
		return false
	}

	if first := face.LoopStart; !first.IsZero() {
		l := first
		for {
			lp, _ := m.loops.Get(l)
			m.radialRemove(lp.Edge, l)
			m.loops.Remove(l)
			if lp.Next == first {
				break
			}
			l = lp.Next
		}
	}
	m.faces.Remove(f)

	Logger().Debug("bmesh: kill face", "face", f, "loops", face.Len)
	return true
}
