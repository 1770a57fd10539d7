package render

import (
	"math"
	"testing"

	"github.com/taigrr/tuikart/pkg/math3d"
)

func TestPolygon3DInsideCentroid(t *testing.T) {
	poly := NewPolygon3D(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	w, inside := poly.Inside(poly.Center())
	if !inside {
		t.Fatal("Inside(center) reported outside")
	}
	if math.Abs(w.W0-1.0/3) > 1e-6 || math.Abs(w.W1-1.0/3) > 1e-6 || math.Abs(w.W2-1.0/3) > 1e-6 {
		t.Errorf("weights = %+v, want all 1/3", w)
	}
}

func TestPolygon3DOutside(t *testing.T) {
	poly := NewPolygon3D(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	if _, inside := poly.Inside(math3d.V3(5, 5, 0)); inside {
		t.Error("Inside(5,5,0) reported inside, want outside")
	}
}

func TestPolygon3DDegenerate(t *testing.T) {
	poly := NewPolygon3D(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(2, 0, 0))
	if _, inside := poly.Inside(math3d.V3(1, 0, 0)); inside {
		t.Error("Inside() on degenerate (collinear) triangle reported inside, want outside")
	}
}

func TestPolygon3DEdgeEpsilonTolerance(t *testing.T) {
	poly := NewPolygon3D(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	// A point fractionally outside an edge, within tolerance, still counts
	// as inside.
	_, inside := poly.Inside(math3d.V3(1+1e-9, 0, 0))
	if !inside {
		t.Error("Inside() just past an edge within epsilon reported outside")
	}
}
