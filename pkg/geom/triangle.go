// Package geom provides the small set of point/triangle primitives the
// remeshing pipeline needs: normals, areas, quality measures and
// barycentric projection.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Normal returns the (unnormalized) normal of triangle abc.
// The direction follows the right-hand rule on the vertex order.
func Normal(a, b, c r3.Vec) r3.Vec {
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

// Area returns the area of triangle abc.
func Area(a, b, c r3.Vec) float64 {
	return 0.5 * r3.Norm(Normal(a, b, c))
}

// Quality returns the normalized shape quality of triangle abc:
// 4*sqrt(3)*area / (l1^2 + l2^2 + l3^2). Equilateral triangles score 1,
// degenerate triangles score 0.
func Quality(a, b, c r3.Vec) float64 {
	l1 := r3.Norm2(r3.Sub(b, a))
	l2 := r3.Norm2(r3.Sub(c, b))
	l3 := r3.Norm2(r3.Sub(a, c))
	sum := l1 + l2 + l3
	if sum == 0 {
		return 0
	}
	return 4 * math.Sqrt(3) * Area(a, b, c) / sum
}
