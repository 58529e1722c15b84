package kernel

// Mesh is a 2D triangle mesh suitable for rendering.
// All arrays are flat: vertices has 2 floats per vertex (x,y),
// indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0, x1,y1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name,omitempty"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 2
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangle returns the positions of triangle i as three (x,y) pairs.
func (m *Mesh) Triangle(i int) [3][2]float32 {
	var t [3][2]float32
	for j := 0; j < 3; j++ {
		k := m.Indices[i*3+j] * 2
		t[j] = [2]float32{m.Vertices[k], m.Vertices[k+1]}
	}
	return t
}

// Wireframe is a flat 2D line list: every segment contributes both
// endpoints, 4 floats per segment.
type Wireframe struct {
	Lines []float32 `json:"lines"` // [ax0,ay0,bx0,by0, ...]
}

// SegmentCount returns the number of line segments.
func (w *Wireframe) SegmentCount() int {
	return len(w.Lines) / 4
}
