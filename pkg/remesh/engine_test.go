package remesh

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rematching/pkg/mesh"
	"rematching/pkg/voronoi"
)

func TestRemeshTetrahedronIdentity(t *testing.T) {
	m := tetrahedron()
	res, err := Remesh(m, Options{Samples: 4, Evaluate: true})
	if err != nil {
		t.Fatalf("Remesh: %v", err)
	}

	if diff := cmp.Diff(m, res.Low); diff != "" {
		t.Errorf("low-res mesh differs from input (-want +got):\n%s", diff)
	}
	if res.NumComponents != 1 {
		t.Errorf("NumComponents = %d, want 1", res.NumComponents)
	}
	if res.Unreachable != 0 {
		t.Errorf("Unreachable = %d, want 0", res.Unreachable)
	}
	if res.Metrics == nil {
		t.Fatal("Metrics not computed with Evaluate set")
	}
	if res.Metrics.Hausdorff != 0 || res.Metrics.Chamfer != 0 {
		t.Errorf("identical meshes: Hausdorff=%g Chamfer=%g, want 0", res.Metrics.Hausdorff, res.Metrics.Chamfer)
	}
}

func TestRemeshMoreSamplesThanVertices(t *testing.T) {
	m := tetrahedron()
	res, err := Remesh(m, Options{Samples: 100})
	if err != nil {
		t.Fatalf("Remesh: %v", err)
	}
	if len(res.Sampling.Seeds) != 4 {
		t.Errorf("seeds = %d, want 4 (early stop)", len(res.Sampling.Seeds))
	}
	if diff := cmp.Diff(m, res.Low); diff != "" {
		t.Errorf("low-res mesh differs from input (-want +got):\n%s", diff)
	}
}

func TestRemeshDisconnectedReportsDegenerate(t *testing.T) {
	res, err := Remesh(twoIslands(), Options{Samples: 2})
	if err != nil {
		t.Fatalf("Remesh: %v", err)
	}
	if res.Low.NumTriangles() != 0 {
		t.Errorf("triangles = %d, want 0", res.Low.NumTriangles())
	}
	if res.NumComponents != 2 {
		t.Errorf("NumComponents = %d, want 2", res.NumComponents)
	}
	if res.Weights.Rows() != 6 {
		t.Errorf("W rows = %d, want 6", res.Weights.Rows())
	}
}

func TestRemeshResampleKeepsWeightShape(t *testing.T) {
	m := gridMesh(3)
	res, err := Remesh(m, Options{Samples: 4, Resample: true})
	if err != nil {
		t.Fatalf("Remesh: %v", err)
	}
	if res.ResampledVertices < res.InputVertices {
		t.Errorf("resampled vertex count %d below input %d", res.ResampledVertices, res.InputVertices)
	}
	// W always covers exactly the original vertices.
	if res.Weights.Rows() != m.NumVertices() {
		t.Errorf("W rows = %d, want %d", res.Weights.Rows(), m.NumVertices())
	}
}

func TestRemeshRejectsBadArguments(t *testing.T) {
	if _, err := Remesh(unitTriangle(), Options{Samples: 0}); !errors.Is(err, voronoi.ErrNonPositiveSamples) {
		t.Errorf("Samples=0: err = %v, want ErrNonPositiveSamples", err)
	}

	bad := unitTriangle()
	bad.F[0][1] = 7
	if _, err := Remesh(bad, Options{Samples: 2}); !errors.Is(err, mesh.ErrBadTriangle) {
		t.Errorf("invalid mesh: err = %v, want ErrBadTriangle", err)
	}
}
