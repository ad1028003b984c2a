// Package graph implements the weighted surface graph of a triangle
// mesh in CSR (Compressed Sparse Row) form, with per-edge Euclidean
// lengths and connected-component analysis.
package graph

import "gonum.org/v1/gonum/spatial/r3"

// Arc is one directed half of an undirected edge: the neighbor index
// and the Euclidean length of the edge.
type Arc struct {
	To int32
	W  float64
}

// Graph is an undirected surface graph in CSR form. Vertex i's arcs
// occupy adj[off[i]:off[i+1]]. Every undirected edge {u,v} appears once
// in u's arc list and once in v's. Immutable after construction.
type Graph struct {
	pts []r3.Vec
	off []int32
	adj []Arc
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int { return len(g.pts) }

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int { return len(g.adj) / 2 }

// Degree returns the number of neighbors of vertex i.
func (g *Graph) Degree(i int32) int { return int(g.off[i+1] - g.off[i]) }

// Vertex returns the coordinates of vertex i.
func (g *Graph) Vertex(i int32) r3.Vec { return g.pts[i] }

// Vertices returns the graph's vertex coordinates. The slice is owned
// by the graph and must not be modified.
func (g *Graph) Vertices() []r3.Vec { return g.pts }

// Adjacent returns the k-th arc of vertex i.
func (g *Graph) Adjacent(i int32, k int) Arc { return g.adj[int(g.off[i])+k] }

// Neighbors returns the arc list of vertex i. The slice is owned by the
// graph and must not be modified.
func (g *Graph) Neighbors(i int32) []Arc { return g.adj[g.off[i]:g.off[i+1]] }
