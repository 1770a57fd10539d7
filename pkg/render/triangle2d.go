package render

import (
	"github.com/taigrr/tuikart/pkg/math3d"
)

// Triangle2D is a triangle in 2D space, used for screen-space point
// classification; the Pipeline's scan conversion runs its per-pixel
// inside test through BarycentricInside.
type Triangle2D struct {
	Vertex [3]math3d.Vec2
}

// NewTriangle2D builds a Triangle2D from three vertices.
func NewTriangle2D(v0, v1, v2 math3d.Vec2) Triangle2D {
	return Triangle2D{Vertex: [3]math3d.Vec2{v0, v1, v2}}
}

// Weights holds the three barycentric coordinates of a point relative to
// a triangle. They sum to 1 when the point lies in the triangle's plane.
type Weights struct {
	W0, W1, W2 float64
}

// Bounds returns the axis-aligned bounding box of the triangle as
// (min, max) corners.
func (t Triangle2D) Bounds() (min, max math3d.Vec2) {
	min = t.Vertex[0].Min(t.Vertex[1]).Min(t.Vertex[2])
	max = t.Vertex[0].Max(t.Vertex[1]).Max(t.Vertex[2])
	return min, max
}

// signedArea computes twice the signed area of the triangle (v1, v2, v3)
// via the 2D cross product of its edges.
func signedArea(v1, v2, v3 math3d.Vec2) float64 {
	return (v2.X-v1.X)*(v3.Y-v1.Y) - (v2.Y-v1.Y)*(v3.X-v1.X)
}

// BarycentricInside reports whether point lies inside (or on the edge of)
// the triangle, and returns its barycentric weights. A triangle with zero
// area (areaABC == 0) never contains any point and reports false, with
// all weights left at zero.
func (t Triangle2D) BarycentricInside(point math3d.Vec2) (Weights, bool) {
	areaABC := signedArea(t.Vertex[0], t.Vertex[1], t.Vertex[2])
	if areaABC == 0 {
		return Weights{}, false
	}

	areaPBC := signedArea(point, t.Vertex[1], t.Vertex[2])
	areaAPC := signedArea(t.Vertex[0], point, t.Vertex[2])
	areaABP := signedArea(t.Vertex[0], t.Vertex[1], point)

	w := Weights{
		W0: areaPBC / areaABC,
		W1: areaAPC / areaABC,
		W2: areaABP / areaABC,
	}

	return w, w.W0 >= 0 && w.W1 >= 0 && w.W2 >= 0
}
