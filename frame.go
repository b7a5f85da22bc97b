package glaze

import (
	"fmt"
	"os"

	"github.com/example/glaze/internal/clipboard"
	"github.com/example/glaze/internal/imageutil"
	"github.com/example/glaze/internal/raster"
)

// FrameController draws into the overlay's RGBA frame buffer. All methods
// are safe from any goroutine. Before the surface exists, drawing lands on
// the staged frame and appears with the window; afterwards it mutates the
// live buffer and becomes visible on the next present.
//
// Drawing never presents by itself. Call Render, or rely on the platform's
// own paint events.
type FrameController struct {
	overlay *Overlay
}

// withFrame locks the state and hands the active frame buffer, staged or
// live, to fn.
func (f *FrameController) withFrame(fn func(buf []byte, w, h int) error) error {
	st := f.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.stage {
	case stageClosing, stageClosed:
		return ErrClosed
	case stageReady:
		return fn(st.frame, st.width, st.height)
	default:
		p := st.staged()
		p.ensureFrame()
		return fn(p.frame, p.cfg.Width, p.cfg.Height)
	}
}

// Size reports the frame dimensions in pixels. It works in every lifecycle
// state; after close it reports zero.
func (f *FrameController) Size() (int, int) {
	st := f.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.stage {
	case stageClosing, stageClosed:
		return 0, 0
	case stageReady:
		return st.width, st.height
	default:
		p := st.staged()
		return p.cfg.Width, p.cfg.Height
	}
}

// UpdateFrame replaces the whole frame with raw RGBA bytes. The payload
// length must match exactly; on mismatch the frame is left untouched.
func (f *FrameController) UpdateFrame(data []byte) error {
	return f.withFrame(func(buf []byte, w, h int) error {
		if len(data) != len(buf) {
			return fmt.Errorf("buffer size mismatch: expected %d bytes, got %d bytes", len(buf), len(data))
		}
		copy(buf, data)
		return nil
	})
}

// FrameBuffer returns a copy of the current frame contents. It requires a
// live surface.
func (f *FrameController) FrameBuffer() ([]byte, error) {
	st := f.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.ensureReady(); err != nil {
		return nil, err
	}
	out := make([]byte, len(st.frame))
	copy(out, st.frame)
	return out, nil
}

// Clear floods the frame with a single color. Use Transparent to wipe it.
func (f *FrameController) Clear(c Color) error {
	return f.withFrame(func(buf []byte, w, h int) error {
		raster.Clear(buf, c.Bytes())
		return nil
	})
}

// DrawRect fills an axis-aligned rectangle, clipped to the frame.
func (f *FrameController) DrawRect(x, y, width, height int, c Color) error {
	return f.withFrame(func(buf []byte, w, h int) error {
		raster.Rect(buf, x, y, width, height, w, h, c.Bytes())
		return nil
	})
}

// DrawLine draws a one-pixel line between two points, clipped to the frame.
func (f *FrameController) DrawLine(x0, y0, x1, y1 int, c Color) error {
	return f.withFrame(func(buf []byte, w, h int) error {
		raster.Line(buf, x0, y0, x1, y1, w, h, c.Bytes())
		return nil
	})
}

// DrawCircle draws a one-pixel circle outline, clipped to the frame.
func (f *FrameController) DrawCircle(cx, cy, r int, c Color) error {
	return f.withFrame(func(buf []byte, w, h int) error {
		raster.Circle(buf, cx, cy, r, w, h, c.Bytes())
		return nil
	})
}

// DrawPixel sets one pixel. Unlike the shape primitives it reports an
// out-of-bounds coordinate instead of clipping, so callers probing the edge
// can tell the difference.
func (f *FrameController) DrawPixel(x, y int, c Color) error {
	return f.withFrame(func(buf []byte, w, h int) error {
		return raster.Pixel(buf, x, y, w, c.Bytes())
	})
}

// DrawImage copies an RGBA image onto the frame with its top-left corner at
// (x, y), clipped to the frame. The image is not scaled.
func (f *FrameController) DrawImage(x, y int, data []byte, imgW, imgH int) error {
	if len(data) != raster.BufferSize(imgW, imgH) {
		return fmt.Errorf("buffer size mismatch: expected %d bytes, got %d bytes",
			raster.BufferSize(imgW, imgH), len(data))
	}
	return f.withFrame(func(buf []byte, w, h int) error {
		raster.Blit(buf, x, y, data, imgW, imgH, w, h)
		return nil
	})
}

// DrawImageScaled resamples an RGBA image to the given size and copies it
// onto the frame at (x, y).
func (f *FrameController) DrawImageScaled(x, y int, data []byte, imgW, imgH, dstW, dstH int, filter imageutil.Filter) error {
	src, err := imageutil.FromRGBABytes(data, imgW, imgH)
	if err != nil {
		return err
	}
	scaled := imageutil.Resize(src, dstW, dstH, filter)
	return f.withFrame(func(buf []byte, w, h int) error {
		raster.Blit(buf, x, y, scaled.Pix, dstW, dstH, w, h)
		return nil
	})
}

// Resize changes the frame dimensions, preserving the overlapping region.
// On a live surface the window is resized to match.
func (f *FrameController) Resize(width, height int) error {
	return f.overlay.window.SetSize(width, height)
}

// Render presents the current frame immediately from the calling goroutine.
func (f *FrameController) Render() error {
	return f.overlay.render()
}

// SavePNG writes the current frame to path as a PNG, flattened over black
// the way it composites on screen.
func (f *FrameController) SavePNG(path string) error {
	st := f.overlay.state
	st.mu.Lock()
	if err := st.ensureReady(); err != nil {
		st.mu.Unlock()
		return err
	}
	flat := make([]byte, len(st.frame))
	copy(flat, st.frame)
	w, h := st.width, st.height
	st.mu.Unlock()

	raster.BlendOver(flat, [4]byte{0, 0, 0, 255})
	img, err := imageutil.FromRGBABytes(flat, w, h)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fh.Close()
	if err := imageutil.EncodePNG(fh, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// CopyToClipboard places a PNG snapshot of the current frame on the system
// clipboard.
func (f *FrameController) CopyToClipboard() error {
	st := f.overlay.state
	st.mu.Lock()
	if err := st.ensureReady(); err != nil {
		st.mu.Unlock()
		return err
	}
	flat := make([]byte, len(st.frame))
	copy(flat, st.frame)
	w, h := st.width, st.height
	st.mu.Unlock()

	raster.BlendOver(flat, [4]byte{0, 0, 0, 255})
	img, err := imageutil.FromRGBABytes(flat, w, h)
	if err != nil {
		return err
	}
	return clipboard.WriteImage(img)
}
