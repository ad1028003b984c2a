package remesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"rematching/pkg/geom"
	"rematching/pkg/mesh"
)

// Reorient fixes the winding of the dual triangles in place. Each dual
// triangle inherits its winding from its originating input triangle,
// but the dual construction can flip orientation locally: when the dual
// normal opposes the source normal, two indices are swapped. sources
// must be the per-triangle face indices returned by DualMesh.
func Reorient(low *mesh.Mesh, sources []int32, input *mesh.Mesh) {
	for i := range low.F {
		src := input.F[sources[i]]
		ns := geom.Normal(input.V[src[0]], input.V[src[1]], input.V[src[2]])
		f := &low.F[i]
		nd := geom.Normal(low.V[f[0]], low.V[f[1]], low.V[f[2]])
		if r3.Dot(ns, nd) < 0 {
			f[1], f[2] = f[2], f[1]
		}
	}
}
