package render

import (
	"math"

	"github.com/taigrr/tuikart/pkg/math3d"
	"github.com/taigrr/tuikart/pkg/models"
)

// CullMode selects which triangle winding, if any, the Pipeline discards.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
	CullBoth
)

// WindingOrder selects which screen-space winding counts as front-facing.
type WindingOrder int

const (
	WindingCW WindingOrder = iota
	WindingCCW
)

// PipelineState tracks the lifecycle a Pipeline moves through:
// Uninitialized -> Initialized -> (state changes, Clear, Render)* -> Disposed.
// Every method that returns an error reports InitializationFailure when
// called outside the Initialized state, except Init, which fails only
// after Dispose. SetCullMode, SetWinding and BindTexture return no error
// and record their setting in any state.
type PipelineState int

const (
	StateUninitialized PipelineState = iota
	StateInitialized
	StateDisposed
)

// Vertex is a rasterizer-space vertex carrying the attributes drawTriangle
// and shade need: a position to transform and a UV to sample.
type Vertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
}

// Pipeline is a CPU software rasterizer: it transforms triangle meshes
// through model, view and projection matrices into screen space, culls
// back-facing (or front-facing) triangles, and scan-converts the survivors
// into a RasterBuffer with a Z-buffer and perspective-correct texture
// sampling.
type Pipeline struct {
	state  PipelineState
	Target *RasterBuffer

	projection math3d.Matrix4x4
	view       math3d.Matrix4x4
	model      math3d.Matrix4x4

	cullMode CullMode
	winding  WindingOrder

	near, far float64

	texture *Texture
}

// NewPipeline creates a Pipeline in the Uninitialized state. Call Init
// before using any other method.
func NewPipeline() *Pipeline {
	return &Pipeline{
		projection: math3d.IdentityMatrix(),
		view:       math3d.IdentityMatrix(),
		model:      math3d.IdentityMatrix(),
		cullMode:   CullBack,
		winding:    WindingCW,
		near:       0.1,
		far:        1000,
	}
}

// Init allocates the Pipeline's render target and moves it to Initialized.
// width and height must both be positive.
func (p *Pipeline) Init(width, height int) error {
	if p.state == StateDisposed || width <= 0 || height <= 0 {
		return newPipelineError(InitializationFailure, "Init", nil)
	}
	p.Target = NewRasterBuffer(width, height)
	p.state = StateInitialized
	return nil
}

// Dispose releases the Pipeline's render target and moves it to Disposed.
// Any later call to a method that returns an error, Init included, reports
// InitializationFailure.
func (p *Pipeline) Dispose() {
	p.Target = nil
	p.state = StateDisposed
}

func (p *Pipeline) requireActive(op string) error {
	if p.state != StateInitialized {
		return newPipelineError(InitializationFailure, op, nil)
	}
	return nil
}

// SetProjection builds a perspective projection matrix from a vertical
// field of view (radians), aspect ratio, and near/far clip planes.
func (p *Pipeline) SetProjection(fovY, aspect, near, far float64) error {
	if err := p.requireActive("SetProjection"); err != nil {
		return err
	}
	p.near, p.far = near, far
	p.projection = math3d.PerspectiveMatrix(fovY, aspect, near, far)
	return nil
}

// defaultFOVDegrees, defaultNear and defaultFar mirror the reference
// renderer's hardcoded projection setup.
const (
	defaultFOVDegrees = 45.0
	defaultNear       = 0.1
	defaultFar        = 1000.0
)

// SetDefaultProjection builds the projection matrix from the reference
// renderer's fixed parameters (45 degree vertical FOV, near 0.1, far
// 1000) and the render target's own aspect ratio.
func (p *Pipeline) SetDefaultProjection() error {
	if err := p.requireActive("SetDefaultProjection"); err != nil {
		return err
	}
	aspect := float64(p.Target.Width) / float64(p.Target.Height)
	return p.SetProjection(defaultFOVDegrees*math.Pi/180.0, aspect, defaultNear, defaultFar)
}

// SetView sets the view matrix directly.
func (p *Pipeline) SetView(m math3d.Matrix4x4) error {
	if err := p.requireActive("SetView"); err != nil {
		return err
	}
	p.view = m
	return nil
}

// SetModel sets the model matrix directly.
func (p *Pipeline) SetModel(m math3d.Matrix4x4) error {
	if err := p.requireActive("SetModel"); err != nil {
		return err
	}
	p.model = m
	return nil
}

// SetCullMode selects which triangle winding(s) are discarded before
// rasterization.
func (p *Pipeline) SetCullMode(mode CullMode) {
	p.cullMode = mode
}

// SetWinding selects which screen-space winding is treated as front-facing.
func (p *Pipeline) SetWinding(w WindingOrder) {
	p.winding = w
}

// BindTexture attaches a texture used to shade subsequently rendered
// triangles. Passing nil clears the binding, so rendering falls back to
// flat white fragments.
func (p *Pipeline) BindTexture(tex *Texture) {
	p.texture = tex
}

// LoadTexture decodes the image at path and binds it, replacing any prior
// binding. On failure the previous binding, if any, is left untouched.
func (p *Pipeline) LoadTexture(path string) error {
	if err := p.requireActive("LoadTexture"); err != nil {
		return err
	}
	tex, err := LoadTexture(path)
	if err != nil {
		return err
	}
	p.texture = tex
	return nil
}

// Clear fills the render target with c and resets its Z-buffer to far.
func (p *Pipeline) Clear(c Color) error {
	if err := p.requireActive("Clear"); err != nil {
		return err
	}
	p.Target.Clear(c, p.far)
	return nil
}

// Present copies the render target's color plane verbatim into dest.
func (p *Pipeline) Present(dest []uint32) error {
	if err := p.requireActive("Present"); err != nil {
		return err
	}
	p.Target.Present(dest)
	return nil
}

// combinedMatrix returns model * view * projection, read left to right as
// model space -> view space -> clip space, consistent with Matrix4x4's
// row-vector convention (p * M).
func (p *Pipeline) combinedMatrix() math3d.Matrix4x4 {
	return p.model.Multiply(p.view).Multiply(p.projection)
}

// transformVertex carries a model-space point through the combined
// model/view/projection matrix and into screen space. The X/Y perspective
// divide is by the transformed Z (not W, per Matrix4x4's point-drop-w
// convention); Z is carried through undivided so the Z-buffer retains a
// meaningful depth rather than collapsing to a constant.
func (p *Pipeline) transformVertex(v math3d.Vec3, matrix math3d.Matrix4x4) math3d.Vec3 {
	transformed := matrix.Transform(v)

	ndcX := transformed.X / transformed.Z
	ndcY := transformed.Y / transformed.Z

	return math3d.Vec3{
		X: (ndcX + 1.0) * 0.5 * float64(p.Target.Width),
		Y: (1.0 - ndcY) * 0.5 * float64(p.Target.Height), // flip Y: NDC is bottom-up, screen is top-down
		Z: transformed.Z,
	}
}

// RenderMesh transforms and scan-converts every triangular face of mesh
// using the Pipeline's current model/view/projection state.
func (p *Pipeline) RenderMesh(mesh *models.Mesh) error {
	if err := p.requireActive("RenderMesh"); err != nil {
		return err
	}

	matrix := p.combinedMatrix()

	for _, face := range mesh.Faces {
		v0 := mesh.Vertices[face.V[0]]
		v1 := mesh.Vertices[face.V[1]]
		v2 := mesh.Vertices[face.V[2]]

		p.drawTriangle(
			Vertex{Position: v0.Position, UV: v0.UV},
			Vertex{Position: v1.Position, UV: v1.UV},
			Vertex{Position: v2.Position, UV: v2.UV},
			matrix,
		)
	}

	return nil
}

// RenderTriangle transforms and scan-converts a single triangle using the
// Pipeline's current model/view/projection state. It is the entry point
// used by callers that don't go through a Mesh, such as the package's
// tests.
func (p *Pipeline) RenderTriangle(v0, v1, v2 Vertex) error {
	if err := p.requireActive("RenderTriangle"); err != nil {
		return err
	}
	p.drawTriangle(v0, v1, v2, p.combinedMatrix())
	return nil
}

// drawTriangle is the core scan-conversion routine: transform, cull,
// bound, then per-pixel barycentric test with perspective-correct depth
// and texture interpolation.
func (p *Pipeline) drawTriangle(v0, v1, v2 Vertex, matrix math3d.Matrix4x4) {
	s0 := p.transformVertex(v0.Position, matrix)
	s1 := p.transformVertex(v1.Position, matrix)
	s2 := p.transformVertex(v2.Position, matrix)

	edge1X, edge1Y := s1.X-s0.X, s1.Y-s0.Y
	edge2X, edge2Y := s2.X-s0.X, s2.Y-s0.Y
	crossZ := edge1X*edge2Y - edge1Y*edge2X

	if p.culled(crossZ) {
		return
	}

	// Invert Z so that it can be linearly interpolated in screen space
	// and later recovered by a second inversion (perspective-correct
	// interpolation).
	invZ0, invZ1, invZ2 := 1.0/s0.Z, 1.0/s1.Z, 1.0/s2.Z

	minX := math.Floor(math.Min(s0.X, math.Min(s1.X, s2.X)))
	maxX := math.Floor(math.Max(s0.X, math.Max(s1.X, s2.X)))
	minY := math.Floor(math.Min(s0.Y, math.Min(s1.Y, s2.Y)))
	maxY := math.Floor(math.Max(s0.Y, math.Max(s1.Y, s2.Y)))

	if maxX < 0 || minX >= float64(p.Target.Width) || maxY < 0 || minY >= float64(p.Target.Height) {
		return
	}

	x0 := int(math.Max(0, minX))
	x1 := int(math.Min(float64(p.Target.Width-1), maxX))
	y0 := int(math.Max(0, minY))
	y1 := int(math.Min(float64(p.Target.Height-1), maxY))

	tri := Triangle2D{Vertex: [3]math3d.Vec2{
		{X: s0.X, Y: s0.Y},
		{X: s1.X, Y: s1.Y},
		{X: s2.X, Y: s2.Y},
	}}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			sample := math3d.V2(float64(x)+0.5, float64(y)+0.5)
			weights, inside := tri.BarycentricInside(sample)
			if !inside {
				continue
			}

			w0 := clamp01(weights.W0)
			w1 := clamp01(weights.W1)
			w2 := clamp01(weights.W2)

			invZ := invZ0*w0 + invZ1*w1 + invZ2*w2
			z := 1.0 / invZ

			idx := y*p.Target.Width + x
			if z < p.near || z > p.far || z >= p.Target.ZBuffer[idx] {
				continue
			}
			p.Target.ZBuffer[idx] = z

			p.Target.Pixels[idx] = packColor(p.shade(v0, v1, v2, w0, w1, w2, z))
		}
	}
}

// culled reports whether a triangle with the given screen-space signed
// area should be discarded under the Pipeline's cull mode and winding.
func (p *Pipeline) culled(crossZ float64) bool {
	switch p.cullMode {
	case CullNone:
		return false
	case CullBoth:
		return true
	case CullBack:
		switch p.winding {
		case WindingCCW:
			return crossZ <= 0
		default: // WindingCW
			return crossZ >= 0
		}
	case CullFront:
		switch p.winding {
		case WindingCCW:
			return crossZ >= 0
		default: // WindingCW
			return crossZ <= 0
		}
	default:
		return true
	}
}

// shade computes the fragment color for a barycentric sample: textured
// when a texture is bound, flat white otherwise. Raw (non-predivided)
// attributes are interpolated with the barycentric weights and then
// multiplied by the recovered depth z, matching the reference
// rasterizer's perspective-correction convention.
func (p *Pipeline) shade(v0, v1, v2 Vertex, w0, w1, w2, z float64) Color {
	if p.texture == nil {
		return Color{R: 255, G: 255, B: 255, A: 255}
	}

	u := (v0.UV.X*w0 + v1.UV.X*w1 + v2.UV.X*w2) * z
	v := (v0.UV.Y*w0 + v1.UV.Y*w1 + v2.UV.Y*w2) * z

	u = clamp01(u)
	v = clamp01(v)

	return p.texture.Sample(u, v)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
