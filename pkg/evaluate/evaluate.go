// Package evaluate computes remeshing quality metrics: vertex-sampled
// Hausdorff and Chamfer distances between the original and the
// low-resolution surface, and triangle area/quality statistics.
package evaluate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"rematching/pkg/geom"
	"rematching/pkg/mesh"
)

// Metrics summarizes a remeshing run. Distances are between the two
// vertex sets; area and quality statistics describe the low-resolution
// triangles.
type Metrics struct {
	Hausdorff float64
	Chamfer   float64

	MinArea float64
	MaxArea float64
	AvgArea float64
	StdArea float64

	MinQuality float64
	MaxQuality float64
	AvgQuality float64
	StdQuality float64
}

// Evaluate compares the original mesh against its low-resolution
// counterpart. Callers normalizing for scale should rescale both meshes
// (mesh.RescaleInsideUnitBox) beforehand. Meshes without triangles
// yield zero area/quality statistics.
func Evaluate(orig, low *mesh.Mesh) *Metrics {
	m := &Metrics{}
	if orig.NumVertices() > 0 && low.NumVertices() > 0 {
		fwd := directedDistances(orig, low)
		bwd := directedDistances(low, orig)
		m.Hausdorff = math.Max(maxOf(fwd), maxOf(bwd))
		m.Chamfer = 0.5 * (stat.Mean(fwd, nil) + stat.Mean(bwd, nil))
	}

	if low.NumTriangles() > 0 {
		areas := make([]float64, low.NumTriangles())
		quals := make([]float64, low.NumTriangles())
		for i, f := range low.F {
			a, b, c := low.V[f[0]], low.V[f[1]], low.V[f[2]]
			areas[i] = geom.Area(a, b, c)
			quals[i] = geom.Quality(a, b, c)
		}
		m.MinArea, m.MaxArea = minMax(areas)
		m.AvgArea, m.StdArea = meanStd(areas)
		m.MinQuality, m.MaxQuality = minMax(quals)
		m.AvgQuality, m.StdQuality = meanStd(quals)
	}
	return m
}

// directedDistances returns, for every vertex of from, the Euclidean
// distance to the nearest vertex of to.
func directedDistances(from, to *mesh.Mesh) []float64 {
	index := geom.NewPointIndex(to.V)
	out := make([]float64, len(from.V))
	for i, p := range from.V {
		_, d := index.Nearest(p)
		out[i] = d
	}
	return out
}

func maxOf(xs []float64) float64 {
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	return max
}

func minMax(xs []float64) (min, max float64) {
	min, max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

func meanStd(xs []float64) (mean, std float64) {
	mean, std = stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		std = 0
	}
	return mean, std
}
