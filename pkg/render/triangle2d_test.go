package render

import (
	"math"
	"testing"

	"github.com/taigrr/tuikart/pkg/math3d"
)

func TestTriangle2DBarycentricInsideVertices(t *testing.T) {
	tri := NewTriangle2D(math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1))

	tests := []struct {
		name string
		p    math3d.Vec2
		want math3d.Vec2 // expected (w1, w2); w0 = 1-w1-w2
	}{
		{"vertex0", math3d.V2(0, 0), math3d.V2(0, 0)},
		{"vertex1", math3d.V2(1, 0), math3d.V2(1, 0)},
		{"vertex2", math3d.V2(0, 1), math3d.V2(0, 1)},
		{"centroid", math3d.V2(1.0/3, 1.0/3), math3d.V2(1.0/3, 1.0/3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, inside := tri.BarycentricInside(tc.p)
			if !inside {
				t.Fatalf("BarycentricInside(%v) reported outside", tc.p)
			}
			if math.Abs(w.W1-tc.want.X) > 1e-9 || math.Abs(w.W2-tc.want.Y) > 1e-9 {
				t.Errorf("weights = %+v, want w1=%v w2=%v", w, tc.want.X, tc.want.Y)
			}
		})
	}
}

func TestTriangle2DOutside(t *testing.T) {
	tri := NewTriangle2D(math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1))
	if _, inside := tri.BarycentricInside(math3d.V2(1, 1)); inside {
		t.Error("BarycentricInside(1,1) reported inside, want outside")
	}
}

func TestTriangle2DDegenerate(t *testing.T) {
	// Three collinear points have zero area.
	tri := NewTriangle2D(math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(2, 0))
	if _, inside := tri.BarycentricInside(math3d.V2(0.5, 0)); inside {
		t.Error("BarycentricInside() on degenerate triangle reported inside, want outside")
	}
}

func TestTriangle2DBounds(t *testing.T) {
	tri := NewTriangle2D(math3d.V2(-1, 2), math3d.V2(3, -4), math3d.V2(0, 0))
	min, max := tri.Bounds()
	if min != math3d.V2(-1, -4) || max != math3d.V2(3, 2) {
		t.Errorf("Bounds() = (%+v, %+v), want ((-1,-4), (3,2))", min, max)
	}
}
