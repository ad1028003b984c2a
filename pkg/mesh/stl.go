package mesh

import (
	"fmt"
	"io"

	"github.com/hschendel/stl"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadSTL parses an STL stream (binary or ASCII). STL stores a triangle
// soup, so coincident corners are merged back into shared vertices by
// exact coordinate match. Degenerate triangles collapsing onto fewer
// than three distinct vertices are dropped.
func ReadSTL(r io.ReadSeeker) (*Mesh, error) {
	solid, err := stl.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("mesh: read stl: %w", err)
	}
	return fromSolid(solid), nil
}

func fromSolid(solid *stl.Solid) *Mesh {
	m := &Mesh{F: make([][3]int32, 0, len(solid.Triangles))}
	seen := make(map[stl.Vec3]int32, 3*len(solid.Triangles))
	lookup := func(v stl.Vec3) int32 {
		if idx, ok := seen[v]; ok {
			return idx
		}
		idx := int32(len(m.V))
		seen[v] = idx
		m.V = append(m.V, r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
		return idx
	}
	for _, t := range solid.Triangles {
		f := [3]int32{lookup(t.Vertices[0]), lookup(t.Vertices[1]), lookup(t.Vertices[2])}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			continue
		}
		m.F = append(m.F, f)
	}
	return m
}

// WriteSTL writes the mesh as binary STL.
func WriteSTL(w io.Writer, m *Mesh) error {
	solid := stl.Solid{
		Name:      "rematching",
		Triangles: make([]stl.Triangle, 0, len(m.F)),
	}
	for _, f := range m.F {
		a, b, c := m.V[f[0]], m.V[f[1]], m.V[f[2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if nn := r3.Norm(n); nn > 0 {
			n = r3.Scale(1/nn, n)
		}
		solid.Triangles = append(solid.Triangles, stl.Triangle{
			Normal: stl.Vec3{float32(n.X), float32(n.Y), float32(n.Z)},
			Vertices: [3]stl.Vec3{
				{float32(a.X), float32(a.Y), float32(a.Z)},
				{float32(b.X), float32(b.Y), float32(b.Z)},
				{float32(c.X), float32(c.Y), float32(c.Z)},
			},
		})
	}
	if err := solid.WriteAll(w); err != nil {
		return fmt.Errorf("mesh: write stl: %w", err)
	}
	return nil
}
