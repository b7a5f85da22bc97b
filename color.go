package glaze

import (
	"fmt"
	stdcolor "image/color"
)

// Color is a straight-alpha RGBA value with 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

// NewColor builds a Color from its channel values.
func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Bytes returns the channels in R, G, B, A order.
func (c Color) Bytes() [4]byte {
	return [4]byte{c.R, c.G, c.B, c.A}
}

// Hex formats the color as #RRGGBBAA.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// RGBHex formats the color as #RRGGBB, dropping alpha.
func (c Color) RGBHex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend composites c over under using straight alpha. Channel math truncates
// to integers, including the alpha channel itself.
func (c Color) Blend(under Color) Color {
	alpha := float32(c.A) / 255
	inv := 1 - alpha
	return Color{
		R: uint8(float32(c.R)*alpha + float32(under.R)*inv),
		G: uint8(float32(c.G)*alpha + float32(under.G)*inv),
		B: uint8(float32(c.B)*alpha + float32(under.B)*inv),
		A: uint8(float32(c.A)*alpha + float32(under.A)*inv),
	}
}

// Lerp linearly interpolates towards other with t clamped to [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Color{
		R: uint8(float64(c.R) + (float64(other.R)-float64(c.R))*t),
		G: uint8(float64(c.G) + (float64(other.G)-float64(c.G))*t),
		B: uint8(float64(c.B) + (float64(other.B)-float64(c.B))*t),
		A: uint8(float64(c.A) + (float64(other.A)-float64(c.A))*t),
	}
}

// RGBA implements image/color.Color with the usual premultiplied conversion,
// so a Color can feed the stdlib draw routines directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	return stdcolor.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Named colors.
var (
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Cyan        = Color{0, 255, 255, 255}
	Magenta     = Color{255, 0, 255, 255}
	Gray        = Color{128, 128, 128, 255}
	DarkGray    = Color{64, 64, 64, 255}
	LightGray   = Color{192, 192, 192, 255}
	Orange      = Color{255, 165, 0, 255}
	Pink        = Color{255, 192, 203, 255}
	Transparent = Color{0, 0, 0, 0}
)

// Palette lists the named colors in a stable order for display.
func Palette() []struct {
	Name  string
	Color Color
} {
	return []struct {
		Name  string
		Color Color
	}{
		{"red", Red},
		{"green", Green},
		{"blue", Blue},
		{"black", Black},
		{"white", White},
		{"yellow", Yellow},
		{"cyan", Cyan},
		{"magenta", Magenta},
		{"gray", Gray},
		{"dark-gray", DarkGray},
		{"light-gray", LightGray},
		{"orange", Orange},
		{"pink", Pink},
		{"transparent", Transparent},
	}
}
