package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface = pointSet{}
	_ kdtree.Bounder   = pointSet{}
)

// PointIndex answers nearest-neighbor queries over a fixed set of 3D
// points, keeping the original index of each point. Backed by a k-d tree.
type PointIndex struct {
	tree *kdtree.Tree
	n    int
}

// NewPointIndex builds an index over pts. The slice is copied.
func NewPointIndex(pts []r3.Vec) *PointIndex {
	set := make(pointSet, len(pts))
	for i, p := range pts {
		set[i] = indexedPoint{p: p, idx: int32(i)}
	}
	return &PointIndex{tree: kdtree.New(set, true), n: len(pts)}
}

// Nearest returns the index of the point closest to q and its Euclidean
// distance. The index is -1 for an empty set.
func (ix *PointIndex) Nearest(q r3.Vec) (int32, float64) {
	if ix.n == 0 {
		return -1, math.Inf(1)
	}
	got, dist2 := ix.tree.Nearest(indexedPoint{p: q, idx: -1})
	return got.(indexedPoint).idx, math.Sqrt(dist2)
}

type indexedPoint struct {
	p   r3.Vec
	idx int32
}

func (a indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	b := c.(indexedPoint)
	switch d {
	case 0:
		return a.p.X - b.p.X
	case 1:
		return a.p.Y - b.p.Y
	case 2:
		return a.p.Z - b.p.Z
	}
	panic("geom: bad dimension")
}

func (a indexedPoint) Dims() int { return 3 }

func (a indexedPoint) Distance(c kdtree.Comparable) float64 {
	b := c.(indexedPoint)
	return r3.Norm2(r3.Sub(a.p, b.p))
}

type pointSet []indexedPoint

func (s pointSet) Index(i int) kdtree.Comparable { return s[i] }
func (s pointSet) Len() int                      { return len(s) }

func (s pointSet) Pivot(d kdtree.Dim) int {
	p := pointPlane{dim: int(d), pts: s}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (s pointSet) Slice(start, end int) kdtree.Interface { return s[start:end] }

func (s pointSet) Bounds() *kdtree.Bounding {
	if len(s) == 0 {
		return nil
	}
	min := s[0].p
	max := s[0].p
	for _, ip := range s[1:] {
		min.X = math.Min(min.X, ip.p.X)
		min.Y = math.Min(min.Y, ip.p.Y)
		min.Z = math.Min(min.Z, ip.p.Z)
		max.X = math.Max(max.X, ip.p.X)
		max.Y = math.Max(max.Y, ip.p.Y)
		max.Z = math.Max(max.Z, ip.p.Z)
	}
	return &kdtree.Bounding{
		Min: indexedPoint{p: min},
		Max: indexedPoint{p: max},
	}
}

type pointPlane struct {
	dim int
	pts pointSet
}

func (p pointPlane) Less(i, j int) bool {
	return p.pts[i].Compare(p.pts[j], kdtree.Dim(p.dim)) < 0
}
func (p pointPlane) Swap(i, j int) { p.pts[i], p.pts[j] = p.pts[j], p.pts[i] }
func (p pointPlane) Len() int      { return len(p.pts) }
func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	p.pts = p.pts[start:end]
	return p
}
