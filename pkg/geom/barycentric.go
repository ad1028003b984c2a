package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateDenom is the cutoff below which a triangle's Gram determinant
// is considered zero and barycentric coordinates are undefined.
const degenerateDenom = 1e-30

// Barycentric projects p onto the plane of triangle abc and returns the
// barycentric coordinates (alpha, beta, gamma) of the projection, with
// alpha+beta+gamma == 1. ok is false when the triangle is degenerate.
// Coordinates may be negative when the projection falls outside abc.
func Barycentric(p, a, b, c r3.Vec) (alpha, beta, gamma float64, ok bool) {
	e0 := r3.Sub(b, a)
	e1 := r3.Sub(c, a)
	v := r3.Sub(p, a)

	d00 := r3.Dot(e0, e0)
	d01 := r3.Dot(e0, e1)
	d11 := r3.Dot(e1, e1)
	d20 := r3.Dot(v, e0)
	d21 := r3.Dot(v, e1)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < degenerateDenom {
		return 0, 0, 0, false
	}
	beta = (d11*d20 - d01*d21) / denom
	gamma = (d00*d21 - d01*d20) / denom
	alpha = 1 - beta - gamma
	return alpha, beta, gamma, true
}

// ClampBarycentric clamps negative coordinates to zero and renormalizes
// so the result sums to exactly 1. The input must not be all non-positive.
func ClampBarycentric(alpha, beta, gamma float64) (float64, float64, float64) {
	alpha = math.Max(alpha, 0)
	beta = math.Max(beta, 0)
	gamma = math.Max(gamma, 0)
	sum := alpha + beta + gamma
	if sum == 0 {
		return 1, 0, 0
	}
	return alpha / sum, beta / sum, gamma / sum
}

// ClosestOnTriangle projects p onto the plane of triangle abc, clamps
// the projection's barycentric coordinates with ClampBarycentric and
// returns the resulting point inside (or on the border of) abc, its
// clamped coordinates and the distance from p to that point. When the
// projection falls outside abc this point is not in general the point
// of abc closest to p. ok is false for degenerate triangles.
func ClosestOnTriangle(p, a, b, c r3.Vec) (q r3.Vec, alpha, beta, gamma, dist float64, ok bool) {
	alpha, beta, gamma, ok = Barycentric(p, a, b, c)
	if !ok {
		return r3.Vec{}, 0, 0, 0, 0, false
	}
	alpha, beta, gamma = ClampBarycentric(alpha, beta, gamma)
	q = r3.Add(r3.Add(r3.Scale(alpha, a), r3.Scale(beta, b)), r3.Scale(gamma, c))
	return q, alpha, beta, gamma, r3.Norm(r3.Sub(p, q)), true
}
