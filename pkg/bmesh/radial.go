package bmesh

// radialAppend links l into e's radial cycle, right after the current
// representative, and makes l the new representative.
func (m *Mesh) radialAppend(e EdgeID, l LoopID) {
	edge := m.edges.Ref(e)
	lp := m.loops.Ref(l)

	if edge.Loop.IsZero() {
		lp.RadialNext, lp.RadialPrev = l, l
	} else {
		rep := edge.Loop
		rl := m.loops.Ref(rep)
		next := rl.RadialNext

		lp.RadialPrev, lp.RadialNext = rep, next
		m.loops.Ref(next).RadialPrev = l
		rl.RadialNext = l
	}
	edge.Loop = l
}

// radialRemove unlinks l from e's radial cycle. When l was the
// representative, e moves on to l's former radial next, or loses its loop
// if l was the only one.
func (m *Mesh) radialRemove(e EdgeID, l LoopID) {
	edge := m.edges.Ref(e)
	lp := m.loops.Ref(l)

	if lp.RadialNext == l {
		if edge.Loop == l {
			edge.Loop = LoopID{}
		}
	} else {
		m.loops.Ref(lp.RadialPrev).RadialNext = lp.RadialNext
		m.loops.Ref(lp.RadialNext).RadialPrev = lp.RadialPrev
		if edge.Loop == l {
			edge.Loop = lp.RadialNext
		}
	}

	lp.RadialNext, lp.RadialPrev = LoopID{}, LoopID{}
}
