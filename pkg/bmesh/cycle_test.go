package bmesh

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func collectEdges(m *Mesh, v VertID) []EdgeID {
	var es []EdgeID
	for e := range m.VertEdges(v) {
		es = append(es, e)
	}
	return es
}

func equalIDs[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fan creates a hub with n spokes and returns the hub, rim and edges.
func fan(t *testing.T, m *Mesh, n int) (VertID, []VertID, []EdgeID) {
	t.Helper()
	hub := m.CreateVert()
	rim := make([]VertID, n)
	es := make([]EdgeID, n)
	for i := range n {
		rim[i] = m.CreateVert()
		es[i] = mustEdge(t, m, hub, rim[i])
	}
	return hub, rim, es
}

func TestDiskAppendKeepsRepresentative(t *testing.T) {
	m := New()
	hub, _, es := fan(t, m, 4)

	if repEdge(m, hub) != es[0] {
		t.Errorf("representative = %v, want first edge %v", repEdge(m, hub), es[0])
	}
	if got := collectEdges(m, hub); !equalIDs(got, es) {
		t.Errorf("disk order = %v, want %v", got, es)
	}
	mustValid(t, m)
}

func TestDiskClosure(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		m := New()
		hub, _, es := fan(t, m, n)

		first := repEdge(m, hub)
		next, prev := first, first
		for range n {
			edge, _ := m.Edge(next)
			next = edge.Link(hub).Next
			edge, _ = m.Edge(prev)
			prev = edge.Link(hub).Prev
		}
		if next != first || prev != first {
			t.Errorf("n=%d: %d steps end at next=%v prev=%v, want %v", n, n, next, prev, first)
		}
		if m.Degree(hub) != len(es) {
			t.Errorf("n=%d: Degree = %d", n, m.Degree(hub))
		}
	}
}

func TestDiskRemoveRepresentative(t *testing.T) {
	m := New()
	hub, _, es := fan(t, m, 3)

	m.KillEdge(es[0])
	if repEdge(m, hub) != es[1] {
		t.Errorf("representative = %v, want former next %v", repEdge(m, hub), es[1])
	}
	if got := collectEdges(m, hub); !equalIDs(got, es[1:]) {
		t.Errorf("disk order = %v, want %v", got, es[1:])
	}
	mustValid(t, m)

	m.KillEdge(es[2])
	if got := collectEdges(m, hub); !equalIDs(got, es[1:2]) {
		t.Errorf("disk order = %v, want %v", got, es[1:2])
	}
	edge, _ := m.Edge(es[1])
	if l := edge.Link(hub); l.Next != es[1] || l.Prev != es[1] {
		t.Errorf("sole edge link = %+v, want self cycle", l)
	}

	m.KillEdge(es[1])
	if !repEdge(m, hub).IsZero() {
		t.Error("hub should be isolated")
	}
	mustValid(t, m)
}

func TestDiskRemoveMiddle(t *testing.T) {
	m := New()
	hub, _, es := fan(t, m, 3)

	m.KillEdge(es[1])
	if repEdge(m, hub) != es[0] {
		t.Errorf("representative changed to %v", repEdge(m, hub))
	}
	if got := collectEdges(m, hub); !equalIDs(got, []EdgeID{es[0], es[2]}) {
		t.Errorf("disk order = %v", got)
	}
	mustValid(t, m)
}

func TestEdgeLinkSelector(t *testing.T) {
	m := New()
	a, b := m.CreateVert(), m.CreateVert()
	c := m.CreateVert()
	ab := mustEdge(t, m, a, b)
	bc := mustEdge(t, m, b, c)

	edge, _ := m.Edge(ab)
	if edge.Link(a) != edge.D0 {
		t.Error("Link(V0) should select D0")
	}
	if edge.Link(b) != edge.D1 {
		t.Error("Link(V1) should select D1")
	}
	if edge.Link(b).Next != bc {
		t.Errorf("b's disk next from ab = %v, want %v", edge.Link(b).Next, bc)
	}
	if edge.Other(a) != b || edge.Other(b) != a {
		t.Error("Other returned the wrong endpoint")
	}
}

// hinge builds three triangles sharing edge a-b and returns the hinge
// edge with the faces in creation order.
func hinge(t *testing.T, m *Mesh) (EdgeID, []FaceID) {
	t.Helper()
	a, b := m.CreateVert(), m.CreateVert()
	ab := mustEdge(t, m, a, b)
	var fs []FaceID
	for range 3 {
		c := m.CreateVert()
		bc := mustEdge(t, m, b, c)
		ca := mustEdge(t, m, c, a)
		fs = append(fs, mustFace(t, m, []VertID{a, b, c}, []EdgeID{ab, bc, ca}))
	}
	return ab, fs
}

func TestRadialAppendNewestIsRepresentative(t *testing.T) {
	m := New()
	ab, fs := hinge(t, m)

	edge, _ := m.Edge(ab)
	rep, _ := m.Loop(edge.Loop)
	if rep.Face != fs[2] {
		t.Errorf("representative loop belongs to %v, want newest face %v", rep.Face, fs[2])
	}
	want := []FaceID{fs[2], fs[0], fs[1]}
	if got := m.EdgeFaces(ab); !equalIDs(got, want) {
		t.Errorf("radial order = %v, want %v", got, want)
	}
	mustValid(t, m)
}

func TestRadialClosure(t *testing.T) {
	m := New()
	ab, fs := hinge(t, m)

	edge, _ := m.Edge(ab)
	l := edge.Loop
	for range fs {
		lp, _ := m.Loop(l)
		if lp.Edge != ab {
			t.Fatalf("loop %v in radial cycle uses %v", l, lp.Edge)
		}
		l = lp.RadialNext
	}
	if l != edge.Loop {
		t.Errorf("%d radial steps end at %v, want %v", len(fs), l, edge.Loop)
	}
}

func TestRadialRemove(t *testing.T) {
	m := New()
	ab, fs := hinge(t, m)

	m.KillFace(fs[0])
	if got := m.EdgeFaces(ab); !equalIDs(got, []FaceID{fs[2], fs[1]}) {
		t.Errorf("after removing middle: %v", got)
	}
	mustValid(t, m)

	m.KillFace(fs[2])
	if got := m.EdgeFaces(ab); !equalIDs(got, []FaceID{fs[1]}) {
		t.Errorf("after removing representative: %v", got)
	}
	edge, _ := m.Edge(ab)
	lp, _ := m.Loop(edge.Loop)
	if lp.RadialNext != edge.Loop || lp.RadialPrev != edge.Loop {
		t.Error("sole loop should form a self cycle")
	}
	mustValid(t, m)

	m.KillFace(fs[1])
	edge, _ = m.Edge(ab)
	if !edge.Loop.IsZero() {
		t.Errorf("edge still has loop %v", edge.Loop)
	}
	checkCounts(t, m, 5, 7, 0, 0)
	mustValid(t, m)
}

func TestKillHingeEdge(t *testing.T) {
	m := New()
	ab, _ := hinge(t, m)

	m.KillEdge(ab)
	checkCounts(t, m, 5, 6, 0, 0)
	mustValid(t, m)
}

func TestKillAsymmetry(t *testing.T) {
	m := New()
	_, fs := hinge(t, m)
	verts, edges := m.NumVerts(), m.NumEdges()

	for _, f := range fs {
		m.KillFace(f)
		if m.NumVerts() != verts || m.NumEdges() != edges {
			t.Fatalf("KillFace changed counts to %d verts %d edges", m.NumVerts(), m.NumEdges())
		}
	}
	mustValid(t, m)
}

func TestKillVertLeavesNoReferences(t *testing.T) {
	m := New()
	hub, rim, es := fan(t, m, 4)
	for i := range rim {
		j := (i + 1) % len(rim)
		rr := mustEdge(t, m, rim[i], rim[j])
		mustFace(t, m, []VertID{hub, rim[i], rim[j]}, []EdgeID{es[i], rr, es[j]})
	}
	checkCounts(t, m, 5, 8, 4, 12)
	mustValid(t, m)

	m.KillVert(hub)
	checkCounts(t, m, 4, 4, 0, 0)
	for _, e := range es {
		if _, ok := m.Edge(e); ok {
			t.Errorf("spoke %v survived", e)
		}
	}
	for _, edge := range m.Edges() {
		for _, dl := range []DiskLink{edge.D0, edge.D1} {
			for _, e := range es {
				if dl.Next == e || dl.Prev == e {
					t.Errorf("rim disk still references spoke %v", e)
				}
			}
		}
	}
	mustValid(t, m)
}

func TestLoopIter(t *testing.T) {
	m := New()
	vs := make([]VertID, 6)
	for i := range vs {
		vs[i] = m.CreateVert()
	}
	f, err := m.CreateFaceFromVerts(vs)
	if err != nil {
		t.Fatal(err)
	}
	face, _ := m.Face(f)

	// start one loop past LoopStart
	first, _ := m.Loop(face.LoopStart)

	it := m.LoopIter(first.Next)
	seen := make(map[LoopID]bool)
	var order []VertID
	for it.Next() {
		if seen[it.Loop()] {
			t.Fatalf("loop %v yielded twice", it.Loop())
		}
		seen[it.Loop()] = true
		lp, _ := m.Loop(it.Loop())
		order = append(order, lp.Vert)
	}
	if len(seen) != face.Len {
		t.Fatalf("yielded %d loops, want %d", len(seen), face.Len)
	}
	want := append(append([]VertID{}, vs[1:]...), vs[0])
	if !equalIDs(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if it.Next() {
		t.Error("exhausted iterator advanced again")
	}

	if m.LoopIter(LoopID{}).Next() {
		t.Error("iterator over zero loop yielded")
	}
}

func TestFaceCycleClosure(t *testing.T) {
	m := New()
	vs := make([]VertID, 5)
	for i := range vs {
		vs[i] = m.CreateVert()
	}
	f, _ := m.CreateFaceFromVerts(vs)
	face, _ := m.Face(f)

	next, prev := face.LoopStart, face.LoopStart
	for range face.Len {
		lp, _ := m.Loop(next)
		next = lp.Next
		lp, _ = m.Loop(prev)
		prev = lp.Prev
	}
	if next != face.LoopStart || prev != face.LoopStart {
		t.Errorf("Len steps end at next=%v prev=%v, want %v", next, prev, face.LoopStart)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	m := New()
	_, es, _ := triangle(t, m)
	mustValid(t, m)

	m.edges.Ref(es[0]).Loop = LoopID{}
	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("Validate missed a detached radial cycle")
	}
	found := false
	for _, err := range errs {
		if err.Kind == InvariantRadial {
			found = true
		}
		if !strings.Contains(err.Error(), "[") {
			t.Errorf("unexpected format %q", err.Error())
		}
	}
	if !found {
		t.Errorf("no radial finding in %v", errs)
	}
}

func TestValidateDetectsBrokenDisk(t *testing.T) {
	m := New()
	hub, _, es := fan(t, m, 3)
	edge := m.edges.Ref(es[1])
	edge.link(hub).Next = es[1]

	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("Validate missed a broken disk cycle")
	}
	if errs[0].Kind != InvariantDisk {
		t.Errorf("kind = %s, want disk", errs[0].Kind)
	}
}

func TestLoggerDebugOnCascade(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	m := New()
	vs, _, _ := triangle(t, m)
	m.KillVert(vs[0])

	out := buf.String()
	for _, want := range []string{"kill vert", "kill edge", "kill face"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
