// Package raster provides drawing primitives over flat row-major RGBA byte
// buffers. Every operation takes the buffer plus explicit dimensions; indices
// that fall outside the buffer are skipped rather than reported, with the
// single exception of Pixel which is the user-facing single-pixel write.
package raster

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds reports a single-pixel write outside the buffer.
var ErrOutOfBounds = errors.New("pixel position out of bounds")

// BufferSize returns the byte length of a width x height RGBA buffer.
func BufferSize(width, height int) int {
	return width * height * 4
}

// Fill allocates a buffer of n bytes with every pixel set to rgba. n must be
// a multiple of 4; trailing bytes of a malformed length are left zero.
func Fill(n int, rgba [4]byte) []byte {
	buf := make([]byte, n)
	Clear(buf, rgba)
	return buf
}

// Clear sets every pixel of buf to rgba in place.
func Clear(buf []byte, rgba [4]byte) {
	for i := 0; i+4 <= len(buf); i += 4 {
		copy(buf[i:i+4], rgba[:])
	}
}

// Rect fills the axis-aligned rectangle at (x, y) clamped to the frame
// bounds. Oversized extents saturate instead of wrapping.
func Rect(buf []byte, x, y, w, h, frameW, frameH int, rgba [4]byte) {
	if w <= 0 || h <= 0 || frameW <= 0 || frameH <= 0 {
		return
	}
	startX := clamp(x, 0, frameW)
	startY := clamp(y, 0, frameH)
	endX := clamp(satAdd(x, w), 0, frameW)
	endY := clamp(satAdd(y, h), 0, frameH)
	for py := startY; py < endY; py++ {
		row := (py*frameW + startX) * 4
		end := (py*frameW + endX) * 4
		if end > len(buf) {
			end = len(buf)
		}
		for i := row; i+4 <= end; i += 4 {
			copy(buf[i:i+4], rgba[:])
		}
	}
}

// Pixel writes a single pixel at (x, y) for a buffer of the given width.
// Unlike the other primitives it reports an out-of-range position.
func Pixel(buf []byte, x, y, width int, rgba [4]byte) error {
	if x < 0 || y < 0 || width <= 0 || x >= width {
		return fmt.Errorf("pixel (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	index := (y*width + x) * 4
	if index < 0 || index+3 >= len(buf) {
		return fmt.Errorf("pixel (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	copy(buf[index:index+4], rgba[:])
	return nil
}

// Line draws the segment from (x0, y0) to (x1, y1) using the integer
// Bresenham algorithm. Points outside the frame are skipped.
func Line(buf []byte, x0, y0, x1, y1, frameW, frameH int, rgba [4]byte) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setPixel(buf, x0, y0, frameW, frameH, rgba)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle draws the circle outline centred at (cx, cy) with the given radius
// using the midpoint algorithm, plotting the 8-way symmetric point set.
func Circle(buf []byte, cx, cy, r, frameW, frameH int, rgba [4]byte) {
	if r < 0 {
		return
	}
	x := 0
	y := r
	d := 3 - 2*r
	for y >= x {
		for _, p := range [8][2]int{
			{cx + x, cy + y},
			{cx - x, cy + y},
			{cx + x, cy - y},
			{cx - x, cy - y},
			{cx + y, cy + x},
			{cx - y, cy + x},
			{cx + y, cy - x},
			{cx - y, cy - x},
		} {
			setPixel(buf, p[0], p[1], frameW, frameH, rgba)
		}
		x++
		if d > 0 {
			y--
			d += 4*(x-y) + 10
		} else {
			d += 4*x + 6
		}
	}
}

// Blit copies src (srcW x srcH pixels) into dst at (x, y). Rows and columns
// that land outside the destination frame are dropped, never wrapped.
func Blit(dst []byte, x, y int, src []byte, srcW, srcH, frameW, frameH int) {
	if srcW <= 0 || srcH <= 0 || frameW <= 0 || frameH <= 0 {
		return
	}
	for iy := 0; iy < srcH; iy++ {
		dy := y + iy
		if dy < 0 {
			continue
		}
		if dy >= frameH {
			break
		}
		for ix := 0; ix < srcW; ix++ {
			dx := x + ix
			if dx < 0 {
				continue
			}
			if dx >= frameW {
				break
			}
			si := (iy*srcW + ix) * 4
			di := (dy*frameW + dx) * 4
			if si+4 > len(src) || di+4 > len(dst) {
				continue
			}
			copy(dst[di:di+4], src[si:si+4])
		}
	}
}

// BlendOver composites every pixel of buf over the solid background colour
// using straight alpha, forcing the result fully opaque. Used to flatten a
// transparent frame onto a backdrop.
func BlendOver(buf []byte, background [4]byte) {
	for i := 0; i+4 <= len(buf); i += 4 {
		alpha := float32(buf[i+3]) / 255
		inv := 1 - alpha
		buf[i] = byte(float32(buf[i])*alpha + float32(background[0])*inv)
		buf[i+1] = byte(float32(buf[i+1])*alpha + float32(background[1])*inv)
		buf[i+2] = byte(float32(buf[i+2])*alpha + float32(background[2])*inv)
		buf[i+3] = 255
	}
}

func setPixel(buf []byte, x, y, frameW, frameH int, rgba [4]byte) {
	if x < 0 || y < 0 || x >= frameW || y >= frameH {
		return
	}
	index := (y*frameW + x) * 4
	if index+4 > len(buf) {
		return
	}
	copy(buf[index:index+4], rgba[:])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// satAdd adds two non-negative offsets without wrapping past the int range.
func satAdd(a, b int) int {
	s := a + b
	if b > 0 && s < a {
		return int(^uint(0) >> 1)
	}
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
