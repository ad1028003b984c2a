package graph

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"rematching/pkg/mesh"
)

// Edge is an undirected edge given by its two endpoint indices.
type Edge struct {
	U, V int32
}

// FromMesh builds the surface graph of a triangle mesh: one graph edge
// per triangle edge, weighted by Euclidean length. The mesh must be
// valid (see mesh.Validate); indices out of range are a caller error.
func FromMesh(m *mesh.Mesh) *Graph {
	pairs := make([]Edge, 0, 6*len(m.F))
	for _, f := range m.F {
		pairs = append(pairs,
			Edge{f[0], f[1]}, Edge{f[1], f[0]},
			Edge{f[1], f[2]}, Edge{f[2], f[1]},
			Edge{f[2], f[0]}, Edge{f[0], f[2]},
		)
	}
	return build(m.V, pairs)
}

// FromEdges builds a graph over pts from an explicit edge list. Each
// edge is inserted in both orientations; duplicates and reversed
// duplicates collapse to a single undirected edge. Self-loops are
// dropped.
func FromEdges(pts []r3.Vec, edges []Edge) *Graph {
	pairs := make([]Edge, 0, 2*len(edges))
	for _, e := range edges {
		pairs = append(pairs, e, Edge{e.V, e.U})
	}
	return build(pts, pairs)
}

// FromEdgeSet builds a graph over pts from a set of undirected edges.
func FromEdgeSet(pts []r3.Vec, edges map[Edge]struct{}) *Graph {
	pairs := make([]Edge, 0, 2*len(edges))
	for e := range edges {
		pairs = append(pairs, e, Edge{e.V, e.U})
	}
	return build(pts, pairs)
}

// build normalizes a doubled directed edge list into CSR form: sort
// lexicographically, drop duplicates and self-loops, count arcs per
// source vertex into the offset array, then fill the arc array in a
// second in-order pass.
func build(pts []r3.Vec, pairs []Edge) *Graph {
	n := len(pts)
	g := &Graph{
		pts: make([]r3.Vec, n),
		off: make([]int32, n+1),
	}
	copy(g.pts, pts)

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].U != pairs[j].U {
			return pairs[i].U < pairs[j].U
		}
		return pairs[i].V < pairs[j].V
	})

	// Count unique arcs per source vertex.
	unique := 0
	var prev Edge
	for i, e := range pairs {
		if e.U == e.V {
			continue
		}
		if i > 0 && e == prev {
			continue
		}
		prev = e
		unique++
		g.off[e.U+1]++
	}
	for i := 1; i <= n; i++ {
		g.off[i] += g.off[i-1]
	}

	g.adj = make([]Arc, 0, unique)
	prev = Edge{}
	for i, e := range pairs {
		if e.U == e.V {
			continue
		}
		if i > 0 && e == prev {
			continue
		}
		prev = e
		g.adj = append(g.adj, Arc{
			To: e.V,
			W:  r3.Norm(r3.Sub(g.pts[e.U], g.pts[e.V])),
		})
	}
	if len(g.adj) != unique || g.off[n] != int32(unique) {
		panic("graph: CSR fill out of sync")
	}
	return g
}
