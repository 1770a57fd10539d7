package render

// Color is a straight-alpha 8-bit RGBA color, the unit the pipeline shades,
// blends and packs into a RasterBuffer.
type Color struct {
	R, G, B, A uint8
}

// RGB builds an opaque Color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA builds a Color from 8-bit components including alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}
