package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestConvertRGBToRGBA(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6}
	out, err := Convert(in, FormatRGB, FormatRGBA, 2, 1)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	if !bytes.Equal(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestConvertRGBAToRGB(t *testing.T) {
	in := []byte{1, 2, 3, 9, 4, 5, 6, 9}
	out, err := Convert(in, FormatRGBA, FormatRGB, 2, 1)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6}
	if !bytes.Equal(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestConvertBGRAToRGBA(t *testing.T) {
	in := []byte{3, 2, 1, 9}
	out, err := Convert(in, FormatBGRA, FormatRGBA, 1, 1)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{1, 2, 3, 9}
	if !bytes.Equal(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestConvertUnsupportedPair(t *testing.T) {
	_, err := Convert([]byte{1, 2, 3}, FormatBGR, FormatRGB, 1, 1)
	if err == nil {
		t.Fatal("expected error for unsupported pair")
	}
	if !strings.Contains(err.Error(), "unsupported format conversion") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromRGBABytesRejectsWrongLength(t *testing.T) {
	if _, err := FromRGBABytes(make([]byte, 10), 2, 2); err == nil {
		t.Fatal("expected size mismatch error")
	}
	img, err := FromRGBABytes(make([]byte, 16), 2, 2)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if img.Stride != 8 {
		t.Fatalf("stride = %d, want 8", img.Stride)
	}
}

func TestToRGBANormalizesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))
	src.SetRGBA(10, 10, color.RGBA{R: 200, A: 255})
	out := ToRGBA(src)
	if !out.Bounds().Eq(image.Rect(0, 0, 4, 2)) {
		t.Fatalf("bounds %v", out.Bounds())
	}
	if got := out.RGBAAt(0, 0); got.R != 200 {
		t.Fatalf("pixel moved: %+v", got)
	}
}

func TestResizeDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 128, A: 255})
		}
	}
	for _, f := range []Filter{FilterNearest, FilterBilinear, FilterCatmullRom} {
		out := Resize(src, 8, 2, f)
		if !out.Bounds().Eq(image.Rect(0, 0, 8, 2)) {
			t.Fatalf("filter %v: bounds %v", f, out.Bounds())
		}
		if out.RGBAAt(4, 1).A == 0 {
			t.Fatalf("filter %v: output empty", f)
		}
	}
}
