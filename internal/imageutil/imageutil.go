// Package imageutil converts, decodes and resizes pixel data on its way into
// an overlay frame.
package imageutil

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Format identifies the channel layout of raw pixel data.
type Format int

const (
	FormatRGBA Format = iota
	FormatRGB
	FormatBGRA
	FormatBGR
)

func (f Format) String() string {
	switch f {
	case FormatRGBA:
		return "RGBA"
	case FormatRGB:
		return "RGB"
	case FormatBGRA:
		return "BGRA"
	case FormatBGR:
		return "BGR"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Filter selects the interpolation used when scaling images.
type Filter int

const (
	FilterNearest Filter = iota
	FilterBilinear
	FilterCatmullRom
)

func (f Filter) scaler() xdraw.Scaler {
	switch f {
	case FilterBilinear:
		return xdraw.ApproxBiLinear
	case FilterCatmullRom:
		return xdraw.CatmullRom
	}
	return xdraw.NearestNeighbor
}

// Convert translates raw pixel data between channel layouts. Supported pairs
// are RGB to RGBA (alpha filled with 255), RGBA to RGB (alpha dropped) and
// BGRA to RGBA (channel swap). Anything else is an error rather than a
// best-effort guess.
func Convert(data []byte, from, to Format, width, height int) ([]byte, error) {
	switch {
	case from == FormatRGB && to == FormatRGBA:
		out := make([]byte, 0, width*height*4)
		for i := 0; i+3 <= len(data); i += 3 {
			out = append(out, data[i], data[i+1], data[i+2], 255)
		}
		return out, nil
	case from == FormatRGBA && to == FormatRGB:
		out := make([]byte, 0, width*height*3)
		for i := 0; i+4 <= len(data); i += 4 {
			out = append(out, data[i], data[i+1], data[i+2])
		}
		return out, nil
	case from == FormatBGRA && to == FormatRGBA:
		out := make([]byte, 0, len(data))
		for i := 0; i+4 <= len(data); i += 4 {
			out = append(out, data[i+2], data[i+1], data[i], data[i+3])
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported format conversion: %s to %s", from, to)
}

// ToRGBA normalizes an image to *image.RGBA with its origin at (0,0), so the
// backing Pix slice is a tightly packed row-major RGBA buffer.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FromRGBABytes wraps a raw RGBA buffer as an image without copying. The
// buffer length must equal width*height*4.
func FromRGBABytes(data []byte, width, height int) (*image.RGBA, error) {
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("buffer size mismatch: expected %d bytes, got %d bytes", width*height*4, len(data))
	}
	return &image.RGBA{Pix: data, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}, nil
}

// Resize scales img to width x height using the given filter.
func Resize(img image.Image, width, height int, filter Filter) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	filter.scaler().Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Decode reads any registered image format from r and returns it as RGBA.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ToRGBA(img), nil
}

// DecodeFile loads and decodes the image at path.
func DecodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
