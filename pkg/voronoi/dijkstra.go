// Package voronoi computes geodesic Voronoi partitions of a surface
// graph and grows farthest-point samplings on top of them.
package voronoi

import (
	"errors"
	"fmt"
	"math"

	"rematching/pkg/graph"
)

// ErrBadSeed is returned when a seed index is out of range or repeated.
var ErrBadSeed = errors.New("voronoi: invalid seed set")

// minHeap is a concrete-typed min-heap for the Dijkstra priority queue.
// Entries order on (dist, rank, node) so that equal-distance fronts pop
// in seed-rank order, which makes partitions reproducible: when two
// seeds are equidistant to a vertex, the lower rank claims it.
type minHeap struct {
	items []pqItem
}

type pqItem struct {
	dist float64
	rank int32
	node int32
}

func (a pqItem) less(b pqItem) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	return a.node < b.node
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(it pqItem) {
	h.items = append(h.items, it)
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	it := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return it
}

func (h *minHeap) Reset() { h.items = h.items[:0] }

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.items[i].less(h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].less(h.items[smallest]) {
			smallest = left
		}
		if right < n && h.items[right].less(h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// Partition runs multi-source Dijkstra from seeds and returns, for every
// vertex, the geodesic distance to its nearest seed and that seed's rank
// in the seed order. Vertices unreachable from every seed keep
// dist=+Inf and nearest=-1.
func Partition(g *graph.Graph, seeds []int32) (dist []float64, nearest []int32, err error) {
	n := g.NumVertices()
	if err := checkSeeds(seeds, n); err != nil {
		return nil, nil, err
	}

	dist = make([]float64, n)
	nearest = make([]int32, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		nearest[i] = -1
	}

	var h minHeap
	for rank, s := range seeds {
		dist[s] = 0
		nearest[s] = int32(rank)
		h.Push(pqItem{dist: 0, rank: int32(rank), node: s})
	}
	relax(g, &h, dist, nearest)
	return dist, nearest, nil
}

// relax drains the heap, expanding the shortest-path forest. An entry
// whose distance no longer matches dist is stale and skipped; the rank
// propagated to neighbors is always the current owner of the popped
// vertex. A vertex reached again at an equal positive distance passes
// to the lower rank; seeds (distance 0) keep their own rank.
func relax(g *graph.Graph, h *minHeap, dist []float64, nearest []int32) {
	for h.Len() > 0 {
		it := h.Pop()
		v := it.node
		if it.dist > dist[v] {
			continue
		}
		rank := nearest[v]
		for _, a := range g.Neighbors(v) {
			d := it.dist + a.W
			if d < dist[a.To] || (d == dist[a.To] && d > 0 && rank < nearest[a.To]) {
				dist[a.To] = d
				nearest[a.To] = rank
				h.Push(pqItem{dist: d, rank: rank, node: a.To})
			}
		}
	}
}

func checkSeeds(seeds []int32, n int) error {
	seen := make(map[int32]struct{}, len(seeds))
	for _, s := range seeds {
		if s < 0 || int(s) >= n {
			return fmt.Errorf("%w: seed %d out of range [0,%d)", ErrBadSeed, s, n)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: seed %d repeated", ErrBadSeed, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}
