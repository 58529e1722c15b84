package bmesh

import v2 "github.com/deadsy/sdfx/vec/v2"

// CreateVert adds an isolated vertex at the origin.
func (m *Mesh) CreateVert() VertID {
	return m.verts.Insert(Vert{})
}

// CreateVertAt adds an isolated vertex at pos.
func (m *Mesh) CreateVertAt(pos v2.Vec) VertID {
	return m.verts.Insert(Vert{Pos: pos})
}

// SetPos moves v. It reports false for a stale handle.
func (m *Mesh) SetPos(v VertID, pos v2.Vec) bool {
	vert := m.verts.Ref(v)
	if vert == nil {
		return false
	}
	vert.Pos = pos
	return true
}

// KillVert removes v together with every edge incident to it and every
// face using one of those edges. It reports false if v was already gone.
func (m *Mesh) KillVert(v VertID) bool {
	if !m.verts.Contains(v) {
		return false
	}

	killed := 0
	for {
		vert := m.verts.Ref(v)
		if vert.Edge.IsZero() {
			break
		}
		m.KillEdge(vert.Edge)
		killed++
	}
	m.verts.Remove(v)

	Logger().Debug("bmesh: kill vert", "vert", v, "edges", killed)
	return true
}
