package render

import (
	"math"

	"github.com/taigrr/tuikart/pkg/math3d"
)

// Polygon3D is a triangle in 3D space. It offers a second, independent
// barycentric classification from Triangle2D's signed-area form: a
// dot-product (Cramer's rule) solve that tolerates a small negative
// epsilon at the triangle's edges and treats a triangle whose
// denominator is below degenerateEpsilon in magnitude as degenerate,
// reporting every point as outside.
type Polygon3D struct {
	Vertex [3]math3d.Vec3
}

// NewPolygon3D builds a Polygon3D from three vertices.
func NewPolygon3D(v0, v1, v2 math3d.Vec3) Polygon3D {
	return Polygon3D{Vertex: [3]math3d.Vec3{v0, v1, v2}}
}

// Center returns the polygon's centroid.
func (p Polygon3D) Center() math3d.Vec3 {
	return p.Vertex[0].Add(p.Vertex[1]).Add(p.Vertex[2]).Scale(1.0 / 3.0)
}

// barycentricEpsilon is the tolerance applied to the inside test, letting
// points that fall fractionally outside an edge due to floating-point
// error still count as inside.
const barycentricEpsilon = -1e-6

// degenerateEpsilon is the minimum |denominator| below which the triangle
// is considered to have no surface (its vertices are collinear).
const degenerateEpsilon = 1e-6

// Inside reports whether point is inside the polygon's plane triangle and
// returns its barycentric weights. It returns false without producing
// weights if the triangle is degenerate.
func (p Polygon3D) Inside(point math3d.Vec3) (Weights, bool) {
	v0v1 := p.Vertex[1].Sub(p.Vertex[0])
	v0v2 := p.Vertex[2].Sub(p.Vertex[0])
	v0p := point.Sub(p.Vertex[0])

	d00 := v0v1.Dot(v0v1)
	d01 := v0v1.Dot(v0v2)
	d11 := v0v2.Dot(v0v2)
	d20 := v0p.Dot(v0v1)
	d21 := v0p.Dot(v0v2)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < degenerateEpsilon {
		return Weights{}, false
	}

	w1 := (d11*d20 - d01*d21) / denom
	w2 := (d00*d21 - d01*d20) / denom
	w0 := 1.0 - w1 - w2

	w := Weights{W0: w0, W1: w1, W2: w2}
	inside := w0 >= barycentricEpsilon && w1 >= barycentricEpsilon && w2 >= barycentricEpsilon
	return w, inside
}
