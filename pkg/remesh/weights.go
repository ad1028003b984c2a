package remesh

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"rematching/pkg/geom"
	"rematching/pkg/mesh"
	"rematching/pkg/sparse"
)

// ErrNoLowVertices is returned when the weight map is requested against
// an empty low-resolution vertex set.
var ErrNoLowVertices = errors.New("remesh: low-resolution mesh has no vertices")

// WeightMap expresses each of the first nOrig input vertices as a
// convex combination of at most three low-resolution vertices. Rows are
// located by walking the low-res triangle fan around the vertex's
// partition seed (nearest[i]); when the seed is undefined the walk
// starts from the Euclidean-nearest low-res vertex instead. When the
// start vertex carries no incident triangle, the row degrades to a
// single 1 at the Euclidean-nearest low-res vertex.
//
// nOrig is the vertex count of the original input before any
// pre-resampling; nearest may cover more (resampled) vertices but rows
// are emitted only for the original prefix. Pass nearest == nil to
// locate every vertex by Euclidean nearest seed instead.
//
// Every returned row is non-negative, has 1 to 3 entries and sums to 1.
func WeightMap(inputPts []r3.Vec, low *mesh.Mesh, nearest []int32, nOrig int) (*sparse.Matrix, error) {
	if low.NumVertices() == 0 {
		return nil, ErrNoLowVertices
	}
	if nOrig < 0 || nOrig > len(inputPts) {
		return nil, fmt.Errorf("remesh: original vertex count %d out of range [0,%d]", nOrig, len(inputPts))
	}
	if nearest != nil && len(nearest) < len(inputPts) {
		return nil, fmt.Errorf("remesh: partition covers %d of %d vertices", len(nearest), len(inputPts))
	}

	fans := newTriangleFans(low)
	index := geom.NewPointIndex(low.V)

	w := sparse.NewMatrix(low.NumVertices())
	for i := 0; i < nOrig; i++ {
		p := inputPts[i]

		k0 := int32(-1)
		if nearest != nil {
			k0 = nearest[i]
		}
		if k0 < 0 {
			k0, _ = index.Nearest(p)
		}

		if p == low.V[k0] {
			// Original vertex is itself a sample.
			w.AppendRow([]int32{k0}, []float64{1})
			continue
		}

		tri, alpha, beta, gamma := bestFanTriangle(p, low, fans.around(k0))
		if tri < 0 {
			// No incident triangle to interpolate on; the
			// Euclidean-nearest sample carries the full weight.
			nk, _ := index.Nearest(p)
			w.AppendRow([]int32{nk}, []float64{1})
			continue
		}
		f := low.F[tri]
		w.AppendRow(rowEntries(f, alpha, beta, gamma))
	}
	return w, nil
}

// bestFanTriangle picks, among the triangles incident to the start
// vertex, the one whose clamped barycentric projection lies closest to
// p. Ties resolve to the lowest triangle index. Returns -1 when the fan
// is empty or every candidate is degenerate.
func bestFanTriangle(p r3.Vec, low *mesh.Mesh, fan []int32) (tri int32, alpha, beta, gamma float64) {
	tri = -1
	bestDist := 0.0
	for _, ti := range fan {
		f := low.F[ti]
		_, a, b, c, d, ok := geom.ClosestOnTriangle(p, low.V[f[0]], low.V[f[1]], low.V[f[2]])
		if !ok {
			continue
		}
		if tri < 0 || d < bestDist {
			tri, alpha, beta, gamma = ti, a, b, c
			bestDist = d
		}
	}
	return tri, alpha, beta, gamma
}

// rowEntries converts a triangle and its barycentric weights into
// sorted sparse row entries, dropping zeros.
func rowEntries(f [3]int32, alpha, beta, gamma float64) ([]int32, []float64) {
	type entry struct {
		col int32
		val float64
	}
	entries := []entry{{f[0], alpha}, {f[1], beta}, {f[2], gamma}}
	sort.Slice(entries, func(i, j int) bool { return entries[i].col < entries[j].col })

	cols := make([]int32, 0, 3)
	vals := make([]float64, 0, 3)
	for _, e := range entries {
		if e.val == 0 {
			continue
		}
		cols = append(cols, e.col)
		vals = append(vals, e.val)
	}
	return cols, vals
}

// triangleFans stores, for each low-res vertex, the triangles incident
// to it, as an offset + flat index array.
type triangleFans struct {
	off  []int32
	tris []int32
}

func newTriangleFans(low *mesh.Mesh) *triangleFans {
	fans := &triangleFans{off: make([]int32, low.NumVertices()+1)}
	for _, f := range low.F {
		fans.off[f[0]+1]++
		fans.off[f[1]+1]++
		fans.off[f[2]+1]++
	}
	for i := 1; i < len(fans.off); i++ {
		fans.off[i] += fans.off[i-1]
	}
	fans.tris = make([]int32, fans.off[len(fans.off)-1])
	pos := make([]int32, low.NumVertices())
	copy(pos, fans.off[:low.NumVertices()])
	for ti, f := range low.F {
		for _, v := range f {
			fans.tris[pos[v]] = int32(ti)
			pos[v]++
		}
	}
	return fans
}

func (tf *triangleFans) around(v int32) []int32 {
	return tf.tris[tf.off[v]:tf.off[v+1]]
}
