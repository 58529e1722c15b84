package bmesh

// diskAppend links e into v's disk cycle. An isolated v takes e as a
// 1-cycle and as its representative edge; otherwise e is spliced in just
// before the representative, which stays unchanged.
func (m *Mesh) diskAppend(e EdgeID, v VertID) {
	vert := m.verts.Ref(v)
	dl := m.edges.Ref(e).link(v)

	if vert.Edge.IsZero() {
		vert.Edge = e
		dl.Next, dl.Prev = e, e
		return
	}

	first := vert.Edge
	fl := m.edges.Ref(first).link(v)
	last := fl.Prev

	dl.Next, dl.Prev = first, last
	fl.Prev = e
	m.edges.Ref(last).link(v).Next = e
}

// diskRemove unlinks e from v's disk cycle and clears e's link for v. When
// e was the representative, v moves on to e's former next, or becomes
// isolated if e was its only edge.
func (m *Mesh) diskRemove(e EdgeID, v VertID) {
	vert := m.verts.Ref(v)
	dl := m.edges.Ref(e).link(v)

	if dl.Next == e {
		if vert.Edge == e {
			vert.Edge = EdgeID{}
		}
	} else {
		m.edges.Ref(dl.Prev).link(v).Next = dl.Next
		m.edges.Ref(dl.Next).link(v).Prev = dl.Prev
		if vert.Edge == e {
			vert.Edge = dl.Next
		}
	}

	*dl = DiskLink{}
}
