package tessellate

import (
	"math"

	"github.com/chazu/facet/pkg/bmesh"
	"github.com/chazu/facet/pkg/kernel/sdfx"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/peterstace/simplefeatures/rtree"
)

// Index is a point-query snapshot of the faces of a mesh. Face outlines
// are boxed into an R-tree and refined with signed distance fields.
// It does not track later edits to the mesh.
type Index struct {
	tree    rtree.RTree
	faces   []bmesh.FaceID
	regions []*sdfx.Region
	boxes   []rtree.Box
}

// NewIndex snapshots every face of m. Faces whose outline is not a valid
// polygon are skipped.
func NewIndex(m *bmesh.Mesh) *Index {
	idx := &Index{}
	if m == nil {
		return idx
	}
	for f := range m.Faces() {
		_, points := boundary(m, f)
		r, err := sdfx.NewRegion(points)
		if err != nil {
			bmesh.Logger().Debug("tessellate: skipping face", "face", f, "err", err)
			continue
		}
		min, max := r.BoundingBox()
		box := rtree.Box{MinX: min.X, MinY: min.Y, MaxX: max.X, MaxY: max.Y}

		id := len(idx.faces)
		idx.faces = append(idx.faces, f)
		idx.regions = append(idx.regions, r)
		idx.boxes = append(idx.boxes, box)
		idx.tree.Insert(box, id)
	}
	return idx
}

// Len returns the number of indexed faces.
func (idx *Index) Len() int { return len(idx.faces) }

// Pick returns the face whose outline contains p. When several faces
// contain p the one with the most negative signed distance wins, ties
// going to the earlier face in storage order.
func (idx *Index) Pick(p v2.Vec) (bmesh.FaceID, bool) {
	best, bestD := -1, 0.0
	box := rtree.Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	_ = idx.tree.RangeSearch(box, func(id int) error {
		d := idx.regions[id].Distance(p)
		if d > 0 {
			return nil
		}
		if best < 0 || d < bestD || (d == bestD && id < best) {
			best, bestD = id, d
		}
		return nil
	})
	if best < 0 {
		return bmesh.FaceID{}, false
	}
	return idx.faces[best], true
}

// Nearest returns the face whose outline is closest to p along with the
// signed distance, negative when p is inside. Ties go to the earlier face.
func (idx *Index) Nearest(p v2.Vec) (bmesh.FaceID, float64, bool) {
	best, bestD := -1, math.Inf(1)
	box := rtree.Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	_ = idx.tree.PrioritySearch(box, func(id int) error {
		// Boxes arrive in order of distance. A box's distance bounds the
		// distance to an outline inside it from below, but a box containing
		// p (distance 0) can still hold any negative distance.
		if best >= 0 && boxDistance(idx.boxes[id], p) > math.Max(bestD, 0) {
			return rtree.Stop
		}
		d := idx.regions[id].Distance(p)
		if d < bestD || (d == bestD && id < best) {
			best, bestD = id, d
		}
		return nil
	})
	if best < 0 {
		return bmesh.FaceID{}, 0, false
	}
	return idx.faces[best], bestD, true
}

func boxDistance(b rtree.Box, p v2.Vec) float64 {
	dx := math.Max(0, math.Max(b.MinX-p.X, p.X-b.MaxX))
	dy := math.Max(0, math.Max(b.MinY-p.Y, p.Y-b.MaxY))
	return math.Hypot(dx, dy)
}
