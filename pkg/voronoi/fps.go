package voronoi

import (
	"errors"
	"math"

	"rematching/pkg/graph"
)

// ErrNonPositiveSamples is returned when the requested sample count is
// not positive.
var ErrNonPositiveSamples = errors.New("voronoi: sample count must be positive")

// Sampling is the result of farthest-point sampling: the ordered seed
// set and the Voronoi partition it induces. Seeds[k] is the original
// vertex promoted at rank k; Nearest[i] is the rank of the seed closest
// to vertex i along the graph (-1 if unreachable) and Dist[i] the
// geodesic distance to it.
type Sampling struct {
	Seeds   []int32
	Nearest []int32
	Dist    []float64
}

// FPS grows a farthest-point sampling of size at most n. The first seed
// is the lowest-indexed vertex of the largest connected component; each
// following seed is the vertex farthest from the current seed set, ties
// broken by lowest index. Vertices in components not yet holding a seed
// have infinite distance and are therefore promoted before any interior
// vertex. The procedure stops early once the farthest distance is zero:
// the graph cannot supply more distinct seeds.
//
// The partition is maintained incrementally: promoting a seed runs a
// bounded Dijkstra from that vertex alone, touching only the region the
// new seed conquers.
func FPS(g *graph.Graph, n int) (*Sampling, error) {
	if n <= 0 {
		return nil, ErrNonPositiveSamples
	}
	nv := g.NumVertices()
	s := &Sampling{
		Nearest: make([]int32, nv),
		Dist:    make([]float64, nv),
	}
	for i := range s.Dist {
		s.Dist[i] = math.Inf(1)
		s.Nearest[i] = -1
	}
	first := g.LargestComponentSeed()
	if first < 0 {
		return s, nil
	}

	var h minHeap
	promote := func(v int32) {
		rank := int32(len(s.Seeds))
		s.Seeds = append(s.Seeds, v)
		s.Dist[v] = 0
		s.Nearest[v] = rank
		h.Reset()
		h.Push(pqItem{dist: 0, rank: rank, node: v})
		relax(g, &h, s.Dist, s.Nearest)
	}

	promote(first)
	for len(s.Seeds) < n {
		far := argmaxDist(s.Dist)
		if s.Dist[far] == 0 {
			break
		}
		promote(far)
	}
	return s, nil
}

// argmaxDist returns the index of the largest distance, ties broken by
// lowest index. +Inf entries (unreachable vertices) win over any finite
// distance.
func argmaxDist(dist []float64) int32 {
	best := int32(0)
	for i := 1; i < len(dist); i++ {
		if dist[i] > dist[best] {
			best = int32(i)
		}
	}
	return best
}
