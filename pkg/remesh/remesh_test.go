package remesh

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"

	"rematching/pkg/graph"
	"rematching/pkg/mesh"
	"rematching/pkg/voronoi"
)

func unitTriangle() *mesh.Mesh {
	return &mesh.Mesh{
		V: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		F: [][3]int32{{0, 1, 2}},
	}
}

func tetrahedron() *mesh.Mesh {
	return &mesh.Mesh{
		V: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		F: [][3]int32{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	}
}

func twoIslands() *mesh.Mesh {
	m := unitTriangle()
	for _, v := range unitTriangle().V {
		m.V = append(m.V, r3.Add(v, r3.Vec{X: 10}))
	}
	m.F = append(m.F, [3]int32{3, 4, 5})
	return m
}

// gridMesh builds an n x n vertex grid in the XY plane, each cell split
// into two triangles.
func gridMesh(n int) *mesh.Mesh {
	m := &mesh.Mesh{}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.V = append(m.V, r3.Vec{X: float64(j), Y: float64(i)})
		}
	}
	at := func(i, j int) int32 { return int32(i*n + j) }
	for i := 0; i+1 < n; i++ {
		for j := 0; j+1 < n; j++ {
			m.F = append(m.F,
				[3]int32{at(i, j), at(i, j+1), at(i+1, j)},
				[3]int32{at(i, j+1), at(i+1, j+1), at(i+1, j)},
			)
		}
	}
	return m
}

func sampling(t *testing.T, m *mesh.Mesh, n int) (*graph.Graph, *voronoi.Sampling) {
	t.Helper()
	g := graph.FromMesh(m)
	s, err := voronoi.FPS(g, n)
	if err != nil {
		t.Fatalf("FPS: %v", err)
	}
	return g, s
}

func TestDualMeshSingleTriangle(t *testing.T) {
	m := unitTriangle()
	g, s := sampling(t, m, 3)

	low, sources := DualMesh(g, s, m.F)
	Reorient(low, sources, m)

	if diff := cmp.Diff(m, low); diff != "" {
		t.Errorf("low-res mesh differs from input (-want +got):\n%s", diff)
	}
}

func TestDualMeshDisconnectedEmitsNothing(t *testing.T) {
	m := twoIslands()
	g, s := sampling(t, m, 2)

	low, sources := DualMesh(g, s, m.F)
	if len(low.F) != 0 {
		t.Errorf("dual triangles = %d, want 0 for one seed per component", len(low.F))
	}
	if len(sources) != 0 {
		t.Errorf("sources = %v, want empty", sources)
	}
	if low.NumVertices() != 2 {
		t.Errorf("low vertices = %d, want 2", low.NumVertices())
	}
}

func TestDualMeshDeduplicates(t *testing.T) {
	m := gridMesh(5)
	g, s := sampling(t, m, 4)

	low, _ := DualMesh(g, s, m.F)
	seen := make(map[[3]int32]bool)
	for _, f := range low.F {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			t.Errorf("degenerate dual triangle %v", f)
		}
		key := sortedTriple(f[0], f[1], f[2])
		if seen[key] {
			t.Errorf("duplicate dual triangle %v", f)
		}
		seen[key] = true
	}
}

func TestDualMeshDeterministic(t *testing.T) {
	m := gridMesh(9)
	g, s := sampling(t, m, 9)

	lowA, srcA := DualMesh(g, s, m.F)
	lowB, srcB := DualMesh(g, s, m.F)
	if diff := cmp.Diff(lowA, lowB); diff != "" {
		t.Errorf("two runs differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(srcA, srcB); diff != "" {
		t.Errorf("sources differ (-first +second):\n%s", diff)
	}
}

func TestReorientFlipsInvertedTriangle(t *testing.T) {
	m := unitTriangle()
	low := &mesh.Mesh{
		V: []r3.Vec{m.V[0], m.V[1], m.V[2]},
		F: [][3]int32{{0, 2, 1}}, // opposes the source winding
	}
	Reorient(low, []int32{0}, m)
	want := [3]int32{0, 1, 2}
	if low.F[0] != want {
		t.Errorf("F[0] = %v, want %v after flip", low.F[0], want)
	}

	// A consistent triangle stays untouched.
	low.F[0] = [3]int32{1, 2, 0}
	Reorient(low, []int32{0}, m)
	if low.F[0] != ([3]int32{1, 2, 0}) {
		t.Errorf("consistent triangle was modified: %v", low.F[0])
	}
}

func TestWeightMapIdentityOnSeeds(t *testing.T) {
	m := tetrahedron()
	g, s := sampling(t, m, 4)
	low, sources := DualMesh(g, s, m.F)
	Reorient(low, sources, m)

	w, err := WeightMap(m.V, low, s.Nearest, m.NumVertices())
	if err != nil {
		t.Fatalf("WeightMap: %v", err)
	}
	if w.Rows() != 4 || w.Cols() != 4 {
		t.Fatalf("W shape = (%d,%d), want (4,4)", w.Rows(), w.Cols())
	}
	for i := 0; i < 4; i++ {
		cols, vals := w.Row(i)
		if len(cols) != 1 || cols[0] != int32(i) || vals[0] != 1 {
			t.Errorf("row %d = %v %v, want identity", i, cols, vals)
		}
	}
}

func TestWeightMapRowProperties(t *testing.T) {
	m := gridMesh(9)
	g, s := sampling(t, m, 9)
	low, sources := DualMesh(g, s, m.F)
	Reorient(low, sources, m)
	if len(low.F) == 0 {
		t.Fatal("grid sampling produced no dual triangles")
	}

	w, err := WeightMap(m.V, low, s.Nearest, m.NumVertices())
	if err != nil {
		t.Fatalf("WeightMap: %v", err)
	}
	for i := 0; i < w.Rows(); i++ {
		cols, vals := w.Row(i)
		if len(vals) == 0 || len(vals) > 3 {
			t.Errorf("row %d has %d entries, want 1..3", i, len(vals))
		}
		sum := 0.0
		for k, v := range vals {
			if v < 0 || v > 1 {
				t.Errorf("row %d entry %d = %g outside [0,1]", i, k, v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("row %d sums to %g, want 1", i, sum)
		}
		for k := 1; k < len(cols); k++ {
			if cols[k-1] >= cols[k] {
				t.Errorf("row %d columns not strictly increasing: %v", i, cols)
			}
		}
	}
}

func TestWeightMapFallbackWithoutTriangles(t *testing.T) {
	m := twoIslands()
	g, s := sampling(t, m, 2)
	low, _ := DualMesh(g, s, m.F) // no triangles

	w, err := WeightMap(m.V, low, s.Nearest, m.NumVertices())
	if err != nil {
		t.Fatalf("WeightMap: %v", err)
	}
	// Every vertex degrades to a single 1 at its component's seed.
	for i := 0; i < 6; i++ {
		wantCol := int32(0)
		if i >= 3 {
			wantCol = 1
		}
		cols, vals := w.Row(i)
		if len(cols) != 1 || cols[0] != wantCol || vals[0] != 1 {
			t.Errorf("row %d = %v %v, want single 1 at %d", i, cols, vals, wantCol)
		}
	}
}

func TestWeightMapLifting(t *testing.T) {
	m := gridMesh(7)
	g, s := sampling(t, m, 6)
	low, sources := DualMesh(g, s, m.F)
	Reorient(low, sources, m)
	if len(low.F) == 0 {
		t.Fatal("grid sampling produced no dual triangles")
	}

	w, err := WeightMap(m.V, low, s.Nearest, m.NumVertices())
	if err != nil {
		t.Fatalf("WeightMap: %v", err)
	}

	// Lifting a constant field must reproduce it exactly: rows are
	// convex combinations.
	f := make([]float64, low.NumVertices())
	for i := range f {
		f[i] = 2.5
	}
	lifted := w.MulVec(f)
	for i, v := range lifted {
		if math.Abs(v-2.5) > 1e-12 {
			t.Errorf("lifted[%d] = %g, want 2.5", i, v)
		}
	}
}

func TestWeightMapUnassignedVertexFallsBack(t *testing.T) {
	m := unitTriangle()
	g, s := sampling(t, m, 3)
	low, sources := DualMesh(g, s, m.F)
	Reorient(low, sources, m)

	// An extra vertex the partition never saw: nearest = -1 routes it
	// through the Euclidean-nearest sample.
	pts := append(append([]r3.Vec{}, m.V...), r3.Vec{X: 0.05, Y: 0.05})
	nearest := append(append([]int32{}, s.Nearest...), -1)

	w, err := WeightMap(pts, low, nearest, len(pts))
	if err != nil {
		t.Fatalf("WeightMap: %v", err)
	}
	cols, vals := w.Row(3)
	if len(cols) == 0 || len(cols) > 3 {
		t.Fatalf("row 3 = %v %v", cols, vals)
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("row 3 sums to %g, want 1", sum)
	}

	// With no partition at all, every row still resolves.
	w, err = WeightMap(pts, low, nil, len(pts))
	if err != nil {
		t.Fatalf("WeightMap(nil nearest): %v", err)
	}
	if w.Rows() != 4 {
		t.Errorf("rows = %d, want 4", w.Rows())
	}
}

func TestWeightMapRejectsEmptyLow(t *testing.T) {
	m := unitTriangle()
	if _, err := WeightMap(m.V, &mesh.Mesh{}, nil, 3); !errors.Is(err, ErrNoLowVertices) {
		t.Errorf("err = %v, want ErrNoLowVertices", err)
	}
}
