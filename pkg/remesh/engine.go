package remesh

import (
	"fmt"

	"rematching/pkg/evaluate"
	"rematching/pkg/graph"
	"rematching/pkg/mesh"
	"rematching/pkg/resample"
	"rematching/pkg/sparse"
	"rematching/pkg/voronoi"
)

// Options configures a remeshing run.
type Options struct {
	// Samples is the target low-resolution vertex count. Must be
	// positive; fewer seeds are produced when the graph runs out of
	// distinct vertices.
	Samples int
	// Resample upsamples sparse inputs before sampling so the geodesic
	// distances are resolved on a denser surface.
	Resample bool
	// Evaluate computes quality metrics on unit-box-rescaled copies of
	// both meshes.
	Evaluate bool
}

// Result carries the full output of a remeshing run, including the
// degenerate outcomes a caller may want to react to: an empty dual
// triangle set or unreachable vertices.
type Result struct {
	// Low is the low-resolution mesh. Its triangle list may be empty
	// when the partition is too coarse relative to the component count.
	Low *mesh.Mesh
	// Sampling is the seed set and Voronoi partition over the (possibly
	// resampled) surface graph.
	Sampling *voronoi.Sampling
	// Weights maps the original vertices to the low-resolution ones:
	// shape (InputVertices, len(Sampling.Seeds)).
	Weights *sparse.Matrix
	// NumComponents is the connected component count of the input.
	NumComponents int
	// Unreachable counts vertices no seed could reach.
	Unreachable int
	// InputVertices is the vertex count before any resampling.
	InputVertices int
	// ResampledVertices is the vertex count the sampling actually ran
	// on (equal to InputVertices unless Options.Resample upsampled).
	ResampledVertices int
	// Metrics is set when Options.Evaluate is true. With an empty dual
	// mesh its area and quality statistics are zero.
	Metrics *evaluate.Metrics
}

// Remesh runs the full pipeline: surface graph, Voronoi farthest-point
// sampling, dual mesh reconstruction with orientation fixup, and the
// barycentric weight map. The input mesh is not modified.
func Remesh(m *mesh.Mesh, opts Options) (*Result, error) {
	if opts.Samples <= 0 {
		return nil, voronoi.ErrNonPositiveSamples
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	res := &Result{InputVertices: m.NumVertices()}

	work := m
	if opts.Resample {
		h := resample.MaxEdgeLength(m, opts.Samples)
		work = resample.Resample(m, h)
	}
	res.ResampledVertices = work.NumVertices()

	g := graph.FromMesh(work)
	res.NumComponents = graph.NumComponents(g.ConnectedComponents())

	sampling, err := voronoi.FPS(g, opts.Samples)
	if err != nil {
		return nil, err
	}
	res.Sampling = sampling
	for _, r := range sampling.Nearest {
		if r < 0 {
			res.Unreachable++
		}
	}

	low, sources := DualMesh(g, sampling, work.F)
	Reorient(low, sources, work)
	res.Low = low

	w, err := WeightMap(work.V, low, sampling.Nearest, res.InputVertices)
	if err != nil {
		return nil, fmt.Errorf("remesh: weight map: %w", err)
	}
	res.Weights = w

	if opts.Evaluate {
		origScaled := m.Clone()
		lowScaled := low.Clone()
		origScaled.RescaleInsideUnitBox()
		lowScaled.RescaleInsideUnitBox()
		res.Metrics = evaluate.Evaluate(origScaled, lowScaled)
	}
	return res, nil
}
