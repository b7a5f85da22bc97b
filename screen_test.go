package glaze

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/math/f64"
)

// fakeScreen satisfies screen.Screen without a display server so the event
// loop can be driven entirely from tests.
type fakeScreen struct {
	mu      sync.Mutex
	windows []*fakeWindow
}

func newFakeScreen() *fakeScreen { return &fakeScreen{} }

func (s *fakeScreen) NewBuffer(size image.Point) (screen.Buffer, error) {
	return &fakeBuffer{img: image.NewRGBA(image.Rectangle{Max: size})}, nil
}

func (s *fakeScreen) NewTexture(size image.Point) (screen.Texture, error) {
	return &fakeTexture{size: size}, nil
}

func (s *fakeScreen) NewWindow(opts *screen.NewWindowOptions) (screen.Window, error) {
	w := &fakeWindow{events: make(chan interface{}, 256)}
	if opts != nil {
		w.width, w.height = opts.Width, opts.Height
	}
	s.mu.Lock()
	s.windows = append(s.windows, w)
	s.mu.Unlock()
	return w, nil
}

func (s *fakeScreen) lastWindow() *fakeWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

type fakeBuffer struct {
	img      *image.RGBA
	released bool
}

func (b *fakeBuffer) Release()                { b.released = true }
func (b *fakeBuffer) Size() image.Point       { return b.img.Bounds().Size() }
func (b *fakeBuffer) Bounds() image.Rectangle { return b.img.Bounds() }
func (b *fakeBuffer) RGBA() *image.RGBA       { return b.img }

type fakeTexture struct {
	size image.Point
}

func (t *fakeTexture) Release()                {}
func (t *fakeTexture) Size() image.Point       { return t.size }
func (t *fakeTexture) Bounds() image.Rectangle { return image.Rectangle{Max: t.size} }
func (t *fakeTexture) Upload(dp image.Point, src screen.Buffer, sr image.Rectangle) {}
func (t *fakeTexture) Fill(dr image.Rectangle, src color.Color, op draw.Op)         {}

type fakeWindow struct {
	events chan interface{}

	mu        sync.Mutex
	width     int
	height    int
	uploaded  *image.RGBA
	publishes int
	released  bool
}

func (w *fakeWindow) Release() {
	w.mu.Lock()
	w.released = true
	w.mu.Unlock()
}

func (w *fakeWindow) Send(event interface{})      { w.events <- event }
func (w *fakeWindow) SendFirst(event interface{}) { w.events <- event }
func (w *fakeWindow) NextEvent() interface{}      { return <-w.events }

func (w *fakeWindow) Upload(dp image.Point, src screen.Buffer, sr image.Rectangle) {
	rgba := src.RGBA()
	cp := image.NewRGBA(rgba.Bounds())
	copy(cp.Pix, rgba.Pix)
	w.mu.Lock()
	w.uploaded = cp
	w.mu.Unlock()
}

func (w *fakeWindow) Fill(dr image.Rectangle, src color.Color, op draw.Op) {}

func (w *fakeWindow) Draw(src2dst f64.Aff3, src screen.Texture, sr image.Rectangle, op draw.Op, opts *screen.DrawOptions) {
}

func (w *fakeWindow) DrawUniform(src2dst f64.Aff3, src color.Color, sr image.Rectangle, op draw.Op, opts *screen.DrawOptions) {
}

func (w *fakeWindow) Copy(dp image.Point, src screen.Texture, sr image.Rectangle, op draw.Op, opts *screen.DrawOptions) {
}

func (w *fakeWindow) Scale(dr image.Rectangle, src screen.Texture, sr image.Rectangle, op draw.Op, opts *screen.DrawOptions) {
}

func (w *fakeWindow) Publish() screen.PublishResult {
	w.mu.Lock()
	w.publishes++
	w.mu.Unlock()
	return screen.PublishResult{}
}

func (w *fakeWindow) lastUpload() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.uploaded
}

func (w *fakeWindow) publishCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.publishes
}
