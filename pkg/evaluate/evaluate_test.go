package evaluate

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"rematching/pkg/mesh"
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

func TestEvaluateIdenticalMeshes(t *testing.T) {
	m := unitTriangle()
	got := Evaluate(m, m.Clone())
	if got.Hausdorff != 0 {
		t.Errorf("Hausdorff = %g, want 0", got.Hausdorff)
	}
	if got.Chamfer != 0 {
		t.Errorf("Chamfer = %g, want 0", got.Chamfer)
	}
	if math.Abs(got.AvgArea-0.5) > 1e-12 {
		t.Errorf("AvgArea = %g, want 0.5", got.AvgArea)
	}
	if got.MinArea != got.MaxArea {
		t.Errorf("single triangle: MinArea %g != MaxArea %g", got.MinArea, got.MaxArea)
	}
	if got.StdArea != 0 || got.StdQuality != 0 {
		t.Errorf("single triangle: std = (%g,%g), want 0", got.StdArea, got.StdQuality)
	}
}

func TestEvaluateDisplacedVertex(t *testing.T) {
	orig := unitTriangle()
	low := orig.Clone()
	low.V[2] = r3.Vec{X: 0, Y: 1, Z: 2} // moved 2 along Z

	got := Evaluate(orig, low)
	if math.Abs(got.Hausdorff-2) > 1e-12 {
		t.Errorf("Hausdorff = %g, want 2", got.Hausdorff)
	}
	// Forward: the orphaned corner (0,1,0) is distance 1 from the
	// origin vertex. Backward: the moved vertex is distance 2 from its
	// original position.
	want := 0.5 * (1.0/3 + 2.0/3)
	if math.Abs(got.Chamfer-want) > 1e-12 {
		t.Errorf("Chamfer = %g, want %g", got.Chamfer, want)
	}
}

func TestEvaluateQualityRange(t *testing.T) {
	orig := unitTriangle()
	low := &mesh.Mesh{
		V: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0},
		},
		F: [][3]int32{{0, 1, 2}},
	}
	got := Evaluate(orig, low)
	if math.Abs(got.MaxQuality-1) > 1e-12 {
		t.Errorf("equilateral MaxQuality = %g, want 1", got.MaxQuality)
	}
}

func TestEvaluateEmptyTriangles(t *testing.T) {
	orig := unitTriangle()
	low := &mesh.Mesh{V: []r3.Vec{{X: 0.5}}}
	got := Evaluate(orig, low)
	if got.AvgArea != 0 || got.MinQuality != 0 {
		t.Errorf("empty triangle list: stats = %+v, want zeros", got)
	}
	if got.Hausdorff == 0 {
		t.Error("distances should still be computed from vertices")
	}
}
