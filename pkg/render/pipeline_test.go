package render

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/tuikart/pkg/math3d"
	"github.com/taigrr/tuikart/pkg/models"
)

func TestPipelineLifecycle(t *testing.T) {
	p := NewPipeline()

	if err := p.Clear(Color{}); err == nil {
		t.Error("Clear() before Init() = nil error, want InitializationFailure")
	}

	if err := p.Init(64, 64); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := p.Clear(Color{}); err != nil {
		t.Fatalf("Clear() after Init() error = %v", err)
	}

	p.Dispose()
	if err := p.Clear(Color{}); err == nil {
		t.Error("Clear() after Dispose() = nil error, want InitializationFailure")
	}
}

func TestPipelineInitRejectsNonPositiveDimensions(t *testing.T) {
	p := NewPipeline()
	var perr *PipelineError
	if err := p.Init(0, 10); !errors.As(err, &perr) || perr.Kind != InitializationFailure {
		t.Errorf("Init(0, 10) error = %v, want InitializationFailure", err)
	}
}

func TestPipelineClearSetsZBufferToFar(t *testing.T) {
	p := NewPipeline()
	if err := p.Init(4, 4); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := p.SetProjection(math.Pi/4, 1, 0.1, 50); err != nil {
		t.Fatalf("SetProjection() error = %v", err)
	}
	if err := p.Clear(Color{R: 10, G: 20, B: 30, A: 255}); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	for i, z := range p.Target.ZBuffer {
		if z != 50 {
			t.Fatalf("ZBuffer[%d] = %v, want 50 (far)", i, z)
		}
	}

	want := packColor(Color{R: 10, G: 20, B: 30, A: 255})
	for i, px := range p.Target.Pixels {
		if px != want {
			t.Fatalf("Pixels[%d] = %#x, want %#x", i, px, want)
		}
	}
}

func TestPipelineRenderTriangleWritesDepthAndColor(t *testing.T) {
	p := NewPipeline()
	if err := p.Init(100, 100); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := p.SetProjection(math.Pi/2, 1, 0.1, 100); err != nil {
		t.Fatalf("SetProjection() error = %v", err)
	}
	if err := p.SetView(math3d.TranslationMatrix(math3d.V3(0, 0, -5))); err != nil {
		t.Fatalf("SetView() error = %v", err)
	}
	p.SetCullMode(CullNone)
	if err := p.Clear(Color{}); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	// A large triangle centered on the screen, facing the camera.
	v0 := Vertex{Position: math3d.V3(-2, -2, 0)}
	v1 := Vertex{Position: math3d.V3(2, -2, 0)}
	v2 := Vertex{Position: math3d.V3(0, 2, 0)}

	if err := p.RenderTriangle(v0, v1, v2); err != nil {
		t.Fatalf("RenderTriangle() error = %v", err)
	}

	cx, cy := p.Target.Width/2, p.Target.Height/2
	idx := cy*p.Target.Width + cx
	if p.Target.ZBuffer[idx] >= p.far {
		t.Errorf("ZBuffer at center = %v, want < far (%v)", p.Target.ZBuffer[idx], p.far)
	}

	want := packColor(Color{R: 255, G: 255, B: 255, A: 255})
	if p.Target.Pixels[idx] != want {
		t.Errorf("Pixels at center = %#x, want %#x (flat white, no texture bound)", p.Target.Pixels[idx], want)
	}
}

func TestPipelineBackfaceCulling(t *testing.T) {
	p := NewPipeline()
	if err := p.Init(50, 50); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := p.SetProjection(math.Pi/2, 1, 0.1, 100); err != nil {
		t.Fatalf("SetProjection() error = %v", err)
	}
	if err := p.SetView(math3d.TranslationMatrix(math3d.V3(0, 0, -5))); err != nil {
		t.Fatalf("SetView() error = %v", err)
	}
	p.SetCullMode(CullBack)
	p.SetWinding(WindingCW)
	if err := p.Clear(Color{}); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	// Reverse winding of the triangle used in the forward-facing test above.
	v0 := Vertex{Position: math3d.V3(-2, -2, 0)}
	v1 := Vertex{Position: math3d.V3(0, 2, 0)}
	v2 := Vertex{Position: math3d.V3(2, -2, 0)}

	if err := p.RenderTriangle(v0, v1, v2); err != nil {
		t.Fatalf("RenderTriangle() error = %v", err)
	}

	cx, cy := p.Target.Width/2, p.Target.Height/2
	idx := cy*p.Target.Width + cx
	if p.Target.ZBuffer[idx] != p.far {
		t.Errorf("ZBuffer at center = %v, want far (%v); back-facing triangle should be culled", p.Target.ZBuffer[idx], p.far)
	}
}

func TestPipelineRenderMesh(t *testing.T) {
	p := NewPipeline()
	if err := p.Init(50, 50); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := p.SetProjection(math.Pi/2, 1, 0.1, 100); err != nil {
		t.Fatalf("SetProjection() error = %v", err)
	}
	if err := p.SetView(math3d.TranslationMatrix(math3d.V3(0, 0, -5))); err != nil {
		t.Fatalf("SetView() error = %v", err)
	}
	p.SetCullMode(CullNone)
	if err := p.Clear(Color{}); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	mesh := models.NewMesh("tri")
	mesh.Vertices = []models.MeshVertex{
		{Position: math3d.V3(-2, -2, 0)},
		{Position: math3d.V3(2, -2, 0)},
		{Position: math3d.V3(0, 2, 0)},
	}
	mesh.Faces = []models.Face{{V: [3]int{0, 1, 2}, Material: -1}}

	if err := p.RenderMesh(mesh); err != nil {
		t.Fatalf("RenderMesh() error = %v", err)
	}

	cx, cy := p.Target.Width/2, p.Target.Height/2
	idx := cy*p.Target.Width + cx
	if p.Target.ZBuffer[idx] >= p.far {
		t.Error("RenderMesh() left the center fragment untouched, want it covered by the triangle")
	}
}
