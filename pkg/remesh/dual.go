// Package remesh reconstructs a coarse triangulation from a geodesic
// Voronoi partition and derives the sparse barycentric map between the
// two resolutions.
package remesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"rematching/pkg/graph"
	"rematching/pkg/mesh"
	"rematching/pkg/voronoi"
)

// DualMesh builds the Voronoi-dual triangulation of a partition. The
// low-resolution mesh has one vertex per seed (coordinate copy, in seed
// rank order) and one triangle per input triangle whose three corners
// fall in three distinct Voronoi cells. Each unordered cell triple is
// emitted once, keeping the first originating face encountered;
// sources[k] is that face's index into faces, used by Reorient.
//
// An empty triangle list is a legitimate outcome of a partition too
// coarse to capture any face, not an error.
func DualMesh(g *graph.Graph, s *voronoi.Sampling, faces [][3]int32) (low *mesh.Mesh, sources []int32) {
	low = &mesh.Mesh{V: make([]r3.Vec, len(s.Seeds))}
	for k, seed := range s.Seeds {
		low.V[k] = g.Vertex(seed)
	}

	seen := make(map[[3]int32]struct{})
	for fi, f := range faces {
		a := s.Nearest[f[0]]
		b := s.Nearest[f[1]]
		c := s.Nearest[f[2]]
		if a < 0 || b < 0 || c < 0 {
			continue
		}
		if a == b || b == c || c == a {
			continue
		}
		key := sortedTriple(a, b, c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		low.F = append(low.F, [3]int32{a, b, c})
		sources = append(sources, int32(fi))
	}
	return low, sources
}

func sortedTriple(a, b, c int32) [3]int32 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]int32{a, b, c}
}
