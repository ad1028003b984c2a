// Package mesh provides the triangle mesh container used across the
// remeshing pipeline, together with OBJ, OFF and STL input/output.
package mesh

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrBadTriangle is returned when a triangle references a vertex index
// outside [0, NumVertices) or repeats a vertex.
var ErrBadTriangle = errors.New("mesh: triangle references invalid vertex")

// Mesh is an indexed triangle mesh. V holds vertex positions, F holds
// triangles as triples of indices into V.
type Mesh struct {
	V []r3.Vec
	F [][3]int32
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.V) }

// NumTriangles returns the number of triangles.
func (m *Mesh) NumTriangles() int { return len(m.F) }

// Validate checks that every triangle references three distinct
// in-range vertices.
func (m *Mesh) Validate() error {
	n := int32(len(m.V))
	for i, f := range m.F {
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: face %d vertex %d (have %d vertices)", ErrBadTriangle, i, v, n)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return fmt.Errorf("%w: face %d repeats a vertex", ErrBadTriangle, i)
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		V: make([]r3.Vec, len(m.V)),
		F: make([][3]int32, len(m.F)),
	}
	copy(c.V, m.V)
	copy(c.F, m.F)
	return c
}

// Bounds returns the axis-aligned bounding box of the vertex set.
// Both corners are zero for an empty mesh.
func (m *Mesh) Bounds() (min, max r3.Vec) {
	if len(m.V) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	min, max = m.V[0], m.V[0]
	for _, v := range m.V[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

// RescaleInsideUnitBox translates and uniformly scales the mesh so the
// bounding box fits inside the unit cube centered at the origin.
func (m *Mesh) RescaleInsideUnitBox() {
	min, max := m.Bounds()
	size := r3.Sub(max, min)
	longest := size.X
	if size.Y > longest {
		longest = size.Y
	}
	if size.Z > longest {
		longest = size.Z
	}
	if longest == 0 {
		return
	}
	center := r3.Scale(0.5, r3.Add(min, max))
	s := 1 / longest
	for i := range m.V {
		m.V[i] = r3.Scale(s, r3.Sub(m.V[i], center))
	}
}
