// Package resample refines a triangle mesh by in-plane subdivision
// until no edge exceeds a target length. Sparse inputs are upsampled
// this way before remeshing so the geodesic sampling is not starved of
// vertices.
package resample

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"rematching/pkg/geom"
	"rematching/pkg/mesh"
)

// MaxEdgeLength returns the edge-length budget for remeshing m down to
// n samples: the edge of an equilateral triangle whose area is the
// mean surface area available per sample.
func MaxEdgeLength(m *mesh.Mesh, n int) float64 {
	if n <= 0 || m.NumTriangles() == 0 {
		return 0
	}
	area := 0.0
	for _, f := range m.F {
		area += geom.Area(m.V[f[0]], m.V[f[1]], m.V[f[2]])
	}
	return math.Sqrt(4 * area / (math.Sqrt(3) * float64(n)))
}

// Resample subdivides every triangle 4-to-1 until no edge is longer
// than h, sharing edge midpoints between adjacent triangles so the
// surface stays crack-free. The original vertices keep their indices;
// new midpoints are only ever appended. h <= 0 returns an unmodified
// copy.
func Resample(m *mesh.Mesh, h float64) *mesh.Mesh {
	out := m.Clone()
	if h <= 0 {
		return out
	}
	for maxEdge(out) > h {
		subdivide(out)
	}
	return out
}

func maxEdge(m *mesh.Mesh) float64 {
	longest := 0.0
	for _, f := range m.F {
		for e := 0; e < 3; e++ {
			l := r3.Norm(r3.Sub(m.V[f[e]], m.V[f[(e+1)%3]]))
			if l > longest {
				longest = l
			}
		}
	}
	return longest
}

// subdivide splits each triangle into four, inserting one midpoint per
// undirected edge.
func subdivide(m *mesh.Mesh) {
	type edge struct{ u, v int32 }
	mids := make(map[edge]int32, 3*len(m.F)/2)
	midpoint := func(u, v int32) int32 {
		if u > v {
			u, v = v, u
		}
		if idx, ok := mids[edge{u, v}]; ok {
			return idx
		}
		idx := int32(len(m.V))
		mids[edge{u, v}] = idx
		m.V = append(m.V, r3.Scale(0.5, r3.Add(m.V[u], m.V[v])))
		return idx
	}

	next := make([][3]int32, 0, 4*len(m.F))
	for _, f := range m.F {
		ab := midpoint(f[0], f[1])
		bc := midpoint(f[1], f[2])
		ca := midpoint(f[2], f[0])
		next = append(next,
			[3]int32{f[0], ab, ca},
			[3]int32{ab, f[1], bc},
			[3]int32{ca, bc, f[2]},
			[3]int32{ab, bc, ca},
		)
	}
	m.F = next
}
