package bmesh

import "fmt"

// InvariantKind classifies a Validate finding.
type InvariantKind int

const (
	InvariantDisk   InvariantKind = iota // disk cycle broken
	InvariantRadial                      // radial cycle broken
	InvariantFace                        // face loop cycle broken
	InvariantCross                       // entities disagree about incidence
	InvariantHandle                      // reference to a dead entity
)

func (k InvariantKind) String() string {
	switch k {
	case InvariantDisk:
		return "disk"
	case InvariantRadial:
		return "radial"
	case InvariantFace:
		return "face"
	case InvariantCross:
		return "cross"
	case InvariantHandle:
		return "handle"
	default:
		return fmt.Sprintf("InvariantKind(%d)", int(k))
	}
}

// InvariantError describes one broken invariant.
type InvariantError struct {
	Kind    InvariantKind
	Entity  string // handle of the offending entity, e.g. "edge 3:1"
	Message string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Entity, e.Message)
}

// Validate checks the disk, radial and face cycles and their cross
// references. An empty result means the mesh is consistent. It never
// mutates the mesh.
func Validate(m *Mesh) []InvariantError {
	var errs []InvariantError
	errs = append(errs, validateDisks(m)...)
	errs = append(errs, validateRadials(m)...)
	errs = append(errs, validateFaces(m)...)
	return errs
}

func validateDisks(m *Mesh) []InvariantError {
	var errs []InvariantError
	fail := func(kind InvariantKind, v VertID, format string, args ...any) {
		errs = append(errs, InvariantError{
			Kind:    kind,
			Entity:  "vert " + v.String(),
			Message: fmt.Sprintf(format, args...),
		})
	}

	incident := make(map[VertID]int)
	for e, edge := range m.Edges() {
		for _, v := range []VertID{edge.V0, edge.V1} {
			if !m.verts.Contains(v) {
				errs = append(errs, InvariantError{
					Kind:    InvariantHandle,
					Entity:  "edge " + e.String(),
					Message: fmt.Sprintf("endpoint %v is dead", v),
				})
				continue
			}
			incident[v]++
		}
		if edge.V0 == edge.V1 {
			errs = append(errs, InvariantError{
				Kind:    InvariantCross,
				Entity:  "edge " + e.String(),
				Message: "both endpoints are the same vertex",
			})
		}
	}

	limit := m.edges.Len() + 1
	for v, vert := range m.Verts() {
		want := incident[v]
		if vert.Edge.IsZero() {
			if want != 0 {
				fail(InvariantDisk, v, "isolated but %d edges reference it", want)
			}
			continue
		}
		if !m.edges.Contains(vert.Edge) {
			fail(InvariantHandle, v, "representative edge %v is dead", vert.Edge)
			continue
		}

		forward, ok := walkDisk(m, v, vert.Edge, limit, func(d DiskLink) EdgeID { return d.Next })
		if !ok {
			fail(InvariantDisk, v, "next walk does not close")
			continue
		}
		backward, ok := walkDisk(m, v, vert.Edge, limit, func(d DiskLink) EdgeID { return d.Prev })
		if !ok {
			fail(InvariantDisk, v, "prev walk does not close")
			continue
		}
		if forward != want || backward != want {
			fail(InvariantDisk, v, "cycle length next=%d prev=%d, degree %d", forward, backward, want)
		}
	}
	return errs
}

// walkDisk follows step from first around v's disk and returns the cycle
// length, or false if it leaves v's edges or fails to close within limit.
func walkDisk(m *Mesh, v VertID, first EdgeID, limit int, step func(DiskLink) EdgeID) (int, bool) {
	e := first
	for n := 1; n <= limit; n++ {
		edge, ok := m.edges.Get(e)
		if !ok || !edge.Has(v) {
			return 0, false
		}
		link := edge.Link(v)
		next, _ := m.edges.Get(link.Next)
		if next.Link(v).Prev != e {
			return 0, false
		}
		e = step(link)
		if e == first {
			return n, true
		}
	}
	return 0, false
}

func validateRadials(m *Mesh) []InvariantError {
	var errs []InvariantError
	fail := func(kind InvariantKind, e EdgeID, format string, args ...any) {
		errs = append(errs, InvariantError{
			Kind:    kind,
			Entity:  "edge " + e.String(),
			Message: fmt.Sprintf(format, args...),
		})
	}

	onEdge := make(map[EdgeID]int)
	for l, lp := range values(m.loops) {
		if !m.edges.Contains(lp.Edge) {
			errs = append(errs, InvariantError{
				Kind:    InvariantHandle,
				Entity:  "loop " + l.String(),
				Message: fmt.Sprintf("edge %v is dead", lp.Edge),
			})
			continue
		}
		onEdge[lp.Edge]++
	}

	limit := m.loops.Len() + 1
	for e, edge := range m.Edges() {
		want := onEdge[e]
		if edge.Loop.IsZero() {
			if want != 0 {
				fail(InvariantRadial, e, "no loop but %d loops reference it", want)
			}
			continue
		}

		first := edge.Loop
		l := first
		n := 0
		closed := false
		for n < limit {
			lp, ok := m.loops.Get(l)
			if !ok {
				fail(InvariantHandle, e, "radial cycle reaches dead loop %v", l)
				break
			}
			if lp.Edge != e {
				fail(InvariantCross, e, "loop %v in radial cycle uses edge %v", l, lp.Edge)
				break
			}
			if next, _ := m.loops.Get(lp.RadialNext); next.RadialPrev != l {
				fail(InvariantRadial, e, "loop %v: radial next/prev disagree", l)
				break
			}
			n++
			l = lp.RadialNext
			if l == first {
				closed = true
				break
			}
		}
		if !closed {
			if n >= limit {
				fail(InvariantRadial, e, "radial walk does not close")
			}
			continue
		}
		if n != want {
			fail(InvariantRadial, e, "cycle length %d, %d loops use the edge", n, want)
		}
	}
	return errs
}

func validateFaces(m *Mesh) []InvariantError {
	var errs []InvariantError
	fail := func(kind InvariantKind, f FaceID, format string, args ...any) {
		errs = append(errs, InvariantError{
			Kind:    kind,
			Entity:  "face " + f.String(),
			Message: fmt.Sprintf(format, args...),
		})
	}

	total := 0
	for f, face := range m.Faces() {
		total += face.Len
		if face.Len < 3 {
			fail(InvariantFace, f, "length %d is below 3", face.Len)
			continue
		}

		seen := make(map[VertID]struct{}, face.Len)
		l := face.LoopStart
		ok := true
		for i := 0; i < face.Len; i++ {
			lp, live := m.loops.Get(l)
			if !live {
				fail(InvariantHandle, f, "boundary reaches dead loop %v", l)
				ok = false
				break
			}
			if lp.Face != f {
				fail(InvariantCross, f, "loop %v belongs to face %v", l, lp.Face)
				ok = false
				break
			}
			next, live := m.loops.Get(lp.Next)
			if !live || next.Prev != l {
				fail(InvariantFace, f, "loop %v: next/prev disagree", l)
				ok = false
				break
			}
			edge, live := m.edges.Get(lp.Edge)
			if !live || !edge.Has(lp.Vert) || !edge.Has(next.Vert) {
				fail(InvariantCross, f, "loop %v: edge %v does not join %v and %v", l, lp.Edge, lp.Vert, next.Vert)
				ok = false
				break
			}
			seen[lp.Vert] = struct{}{}
			l = lp.Next
		}
		if !ok {
			continue
		}
		if l != face.LoopStart {
			fail(InvariantFace, f, "boundary does not close after %d loops", face.Len)
			continue
		}
		if len(seen) != face.Len {
			fail(InvariantCross, f, "%d distinct vertices on a boundary of %d", len(seen), face.Len)
		}
	}

	if total != m.loops.Len() {
		errs = append(errs, InvariantError{
			Kind:    InvariantFace,
			Entity:  "mesh",
			Message: fmt.Sprintf("%d loops stored, faces account for %d", m.loops.Len(), total),
		})
	}
	return errs
}
