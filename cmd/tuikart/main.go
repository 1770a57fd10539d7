// tuikart renders triangle meshes with the CPU software pipeline in
// pkg/render: load an OBJ mesh, push it through the model/view/projection
// stack, and write the rasterized result to a PPM image.
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/tuikart/pkg/math3d"
	"github.com/taigrr/tuikart/pkg/models"
	"github.com/taigrr/tuikart/pkg/render"
)

func main() {
	root := newRootCommand()
	root.AddCommand(newRasterCommand())
	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tuikart",
		Short: "CPU software rasterizer",
		Long:  "tuikart drives a CPU software rasterization pipeline. See the raster subcommand.",
	}
}

// newRasterCommand loads one mesh, runs it through Pipeline once, and
// writes the result to a PPM image.
func newRasterCommand() *cobra.Command {
	var (
		texturePath           string
		width, height         int
		fovDegrees, near, far float64
		cullMode, winding     string
	)

	cmd := &cobra.Command{
		Use:   "raster <model.obj> <output.ppm>",
		Short: "Render a single mesh through the software pipeline to a PPM image",
		Long:  "Loads an OBJ mesh through the CPU rasterizer pipeline and writes the resulting framebuffer as a binary PPM image.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaster(args[0], args[1], texturePath, width, height, fovDegrees, near, far, cullMode, winding)
		},
	}

	cmd.Flags().StringVar(&texturePath, "texture", "", "Path to texture image (PNG/JPG)")
	cmd.Flags().IntVar(&width, "width", 320, "Render target width")
	cmd.Flags().IntVar(&height, "height", 240, "Render target height")
	cmd.Flags().Float64Var(&fovDegrees, "fov", 45, "Vertical field of view in degrees")
	cmd.Flags().Float64Var(&near, "near", 0.1, "Near clip plane")
	cmd.Flags().Float64Var(&far, "far", 1000, "Far clip plane")
	cmd.Flags().StringVar(&cullMode, "cull", "back", "Cull mode: none, front, back, both")
	cmd.Flags().StringVar(&winding, "winding", "cw", "Front-facing winding: cw or ccw")

	return cmd
}

func parseCullMode(s string) (render.CullMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return render.CullNone, nil
	case "front":
		return render.CullFront, nil
	case "back":
		return render.CullBack, nil
	case "both":
		return render.CullBoth, nil
	default:
		return 0, fmt.Errorf("unknown cull mode %q", s)
	}
}

func parseWinding(s string) (render.WindingOrder, error) {
	switch strings.ToLower(s) {
	case "cw":
		return render.WindingCW, nil
	case "ccw":
		return render.WindingCCW, nil
	default:
		return 0, fmt.Errorf("unknown winding %q", s)
	}
}

func runRaster(modelPath, outputPath, texturePath string, width, height int, fovDegrees, near, far float64, cullMode, winding string) error {
	cull, err := parseCullMode(cullMode)
	if err != nil {
		return err
	}
	wind, err := parseWinding(winding)
	if err != nil {
		return err
	}

	raw, err := models.LoadOBJ(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	if len(raw.Faces) == 0 {
		return fmt.Errorf("no faces loaded from %s", modelPath)
	}
	mesh := raw.ToMesh(filepath.Base(modelPath))
	mesh.CalculateBounds()

	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	scale := 1.0
	if maxDim > 0 {
		scale = 2.0 / maxDim
	}

	p := render.NewPipeline()
	if err := p.Init(width, height); err != nil {
		return err
	}
	defer p.Dispose()

	if err := p.SetProjection(fovDegrees*math.Pi/180.0, float64(width)/float64(height), near, far); err != nil {
		return err
	}
	if err := p.SetView(math3d.TranslationMatrix(math3d.V3(0, 0, -3))); err != nil {
		return err
	}
	// Center the mesh on the origin, then scale it to fit a 2-unit cube.
	model := math3d.TranslationMatrix(center.Scale(-1)).Multiply(math3d.ScaleMatrix(math3d.V3(scale, scale, scale)))
	if err := p.SetModel(model); err != nil {
		return err
	}
	p.SetCullMode(cull)
	p.SetWinding(wind)

	if texturePath != "" {
		if err := p.LoadTexture(texturePath); err != nil {
			return fmt.Errorf("load texture: %w", err)
		}
	}

	if err := p.Clear(render.RGB(20, 20, 30)); err != nil {
		return err
	}
	if err := p.RenderMesh(mesh); err != nil {
		return err
	}

	if err := writePPM(outputPath, p.Target); err != nil {
		return err
	}
	fmt.Printf("Rendered %s (%d vertices, %d triangles) to %s\n", filepath.Base(modelPath), mesh.VertexCount(), mesh.TriangleCount(), outputPath)
	return nil
}

// writePPM writes a RasterBuffer's color plane as a binary (P6) PPM image.
func writePPM(path string, target *render.RasterBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "P6\n%d %d\n255\n", target.Width, target.Height)
	row := make([]byte, target.Width*3)
	for y := 0; y < target.Height; y++ {
		for x := 0; x < target.Width; x++ {
			packed := target.At(x, y)
			row[x*3+0] = byte(packed)       // R
			row[x*3+1] = byte(packed >> 8)  // G
			row[x*3+2] = byte(packed >> 16) // B
		}
		if _, err := f.Write(row); err != nil {
			return fmt.Errorf("write pixels: %w", err)
		}
	}
	return nil
}
