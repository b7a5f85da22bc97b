package glaze

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"

	"github.com/example/glaze/internal/platform"
)

// fakePlatform records window management calls so staged configuration can
// be checked without an X server.
type fakePlatform struct {
	mu    sync.Mutex
	x, y  int
	w, h  int
	title string
	moved bool
}

func (p *fakePlatform) Move(x, y int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x, p.y, p.moved = x, y, true
	return nil
}

func (p *fakePlatform) Position() (int, int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y, nil
}

func (p *fakePlatform) Resize(w, h int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.w, p.h = w, h
	return nil
}

func (p *fakePlatform) SetTitle(title string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
	return nil
}

func (p *fakePlatform) SetVisible(bool) error          { return nil }
func (p *fakePlatform) Minimize() error                { return nil }
func (p *fakePlatform) Maximize() error                { return nil }
func (p *fakePlatform) Restore() error                 { return nil }
func (p *fakePlatform) SetFullscreen(bool) error       { return nil }
func (p *fakePlatform) Fullscreen() (bool, error)      { return false, nil }
func (p *fakePlatform) SetLevel(platform.Level) error  { return nil }
func (p *fakePlatform) SetDecorations(bool) error      { return nil }
func (p *fakePlatform) SetClickThrough(bool) error     { return nil }
func (p *fakePlatform) SetCursorVisible(bool) error    { return nil }
func (p *fakePlatform) Close() error                   { return nil }

// startOverlay drives the event loop against fakes and blocks until the
// surface is live.
func startOverlay(t *testing.T, o *Overlay) (*fakeScreen, *fakeWindow, *fakePlatform) {
	t.Helper()

	plat := &fakePlatform{}
	original := attachWindowFn
	attachWindowFn = func(int, string) (platform.Window, error) { return plat, nil }
	t.Cleanup(func() { attachWindowFn = original })

	scr := newFakeScreen()
	go o.eventLoop(scr)

	select {
	case <-o.ready:
	case <-o.done:
		t.Fatalf("event loop exited before ready: %v", o.runErr)
	case <-time.After(5 * time.Second):
		t.Fatalf("surface never became ready")
	}
	return scr, scr.lastWindow(), plat
}

func closeOverlay(t *testing.T, o *Overlay) {
	t.Helper()
	o.Close()
	select {
	case <-o.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("overlay never closed")
	}
}

func TestUninitializedOperationsFail(t *testing.T) {
	o := New()

	if err := o.Frame().Render(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Render before init: got %v, want ErrNotInitialized", err)
	}
	if _, err := o.Frame().FrameBuffer(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("FrameBuffer before init: got %v, want ErrNotInitialized", err)
	}
	if _, _, err := o.Window().Position(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Position before init: got %v, want ErrNotInitialized", err)
	}
	if err := o.Window().RequestRedraw(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("RequestRedraw before init: got %v, want ErrNotInitialized", err)
	}
}

func TestStagedConfigurationAppliesAtCreation(t *testing.T) {
	o := New(WithSize(6, 4))
	if err := o.Window().SetTitle("staged"); err != nil {
		t.Fatalf("SetTitle: %v", err)
	}
	if err := o.Window().SetPosition(10, 20); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	if err := o.Frame().DrawPixel(2, 1, Red); err != nil {
		t.Fatalf("DrawPixel: %v", err)
	}

	_, _, plat := startOverlay(t, o)
	defer closeOverlay(t, o)

	title, err := o.Window().Title()
	if err != nil || title != "staged" {
		t.Fatalf("Title after create: %q, %v", title, err)
	}
	x, y, err := o.Window().Position()
	if err != nil || x != 10 || y != 20 {
		t.Fatalf("Position after create: (%d,%d), %v", x, y, err)
	}
	if !plat.moved {
		t.Fatalf("staged position was never forwarded to the platform")
	}

	buf, err := o.Frame().FrameBuffer()
	if err != nil {
		t.Fatalf("FrameBuffer: %v", err)
	}
	i := (1*6 + 2) * 4
	if buf[i] != 255 || buf[i+3] != 255 {
		t.Fatalf("staged pixel missing at offset %d: %v", i, buf[i:i+4])
	}
}

func TestStagedResizePreservesStagedDrawing(t *testing.T) {
	o := New(WithSize(4, 4))
	if err := o.Frame().DrawPixel(0, 0, Red); err != nil {
		t.Fatalf("DrawPixel: %v", err)
	}
	if err := o.Frame().Resize(8, 8); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	w, h := o.Frame().Size()
	if w != 8 || h != 8 {
		t.Fatalf("staged size after resize: %dx%d", w, h)
	}

	_, _, _ = startOverlay(t, o)
	defer closeOverlay(t, o)

	buf, err := o.Frame().FrameBuffer()
	if err != nil {
		t.Fatalf("FrameBuffer: %v", err)
	}
	if len(buf) != 8*8*4 {
		t.Fatalf("frame length after create: %d", len(buf))
	}
	if buf[0] != 255 || buf[3] != 255 {
		t.Fatalf("staged pixel lost across pre-creation resize: %v", buf[:4])
	}
}

func TestUpdateFrameRejectsWrongLength(t *testing.T) {
	o := New(WithSize(4, 4))
	_, _, _ = startOverlay(t, o)
	defer closeOverlay(t, o)

	if err := o.Frame().Clear(White); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	err := o.Frame().UpdateFrame(make([]byte, 10))
	if err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if want := "buffer size mismatch: expected 64 bytes, got 10 bytes"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected %q, got %v", want, err)
	}

	buf, err := o.Frame().FrameBuffer()
	if err != nil {
		t.Fatalf("FrameBuffer: %v", err)
	}
	if buf[0] != 255 {
		t.Fatalf("rejected update mutated the frame")
	}
}

func TestUpdateFrameRoundTrip(t *testing.T) {
	o := New(WithSize(3, 3))
	_, _, _ = startOverlay(t, o)
	defer closeOverlay(t, o)

	in := make([]byte, 36)
	for i := range in {
		in[i] = byte(i)
	}
	if err := o.Frame().UpdateFrame(in); err != nil {
		t.Fatalf("UpdateFrame: %v", err)
	}
	out, err := o.Frame().FrameBuffer()
	if err != nil {
		t.Fatalf("FrameBuffer: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("byte %d: got %d, want %d", i, out[i], in[i])
		}
	}
}

func TestSetSizeResizesFrameImmediately(t *testing.T) {
	o := New(WithSize(4, 4))
	_, _, _ = startOverlay(t, o)
	defer closeOverlay(t, o)

	if err := o.Frame().DrawPixel(0, 0, Blue); err != nil {
		t.Fatalf("DrawPixel: %v", err)
	}
	if err := o.Window().SetSize(8, 2); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	w, h := o.Frame().Size()
	if w != 8 || h != 2 {
		t.Fatalf("frame size after resize: %dx%d", w, h)
	}
	buf, err := o.Frame().FrameBuffer()
	if err != nil {
		t.Fatalf("FrameBuffer: %v", err)
	}
	if len(buf) != 8*2*4 {
		t.Fatalf("frame length after resize: %d", len(buf))
	}
	if buf[2] != 255 {
		t.Fatalf("overlapping region was not preserved: %v", buf[:4])
	}
}

func TestRenderUploadsFrame(t *testing.T) {
	o := New(WithSize(2, 2))
	_, win, _ := startOverlay(t, o)
	defer closeOverlay(t, o)

	if err := o.Frame().Clear(Green); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := o.Frame().Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	up := win.lastUpload()
	if up == nil {
		t.Fatalf("nothing uploaded")
	}
	if up.Pix[1] != 255 || up.Pix[3] != 255 {
		t.Fatalf("uploaded pixel: %v", up.Pix[:4])
	}
	if win.publishCount() == 0 {
		t.Fatalf("frame was uploaded but never published")
	}
}

func TestResizeEventUpdatesStateAndDispatches(t *testing.T) {
	o := New(WithSize(4, 4))
	o.polling = true
	_, win, _ := startOverlay(t, o)
	defer closeOverlay(t, o)

	win.Send(size.Event{WidthPx: 9, HeightPx: 5})

	deadline := time.Now().Add(5 * time.Second)
	var got []Event
	o.OnEvent(func(ev Event) { got = append(got, ev) })
	for time.Now().Before(deadline) {
		o.Pump(16)
		if len(got) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	found := false
	for _, ev := range got {
		if ev.Kind == EventResized && ev.Width == 9 && ev.Height == 5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("no resize event delivered: %v", got)
	}
	w, h := o.Frame().Size()
	if w != 9 || h != 5 {
		t.Fatalf("state size after resize event: %dx%d", w, h)
	}
}

func TestLifecycleFocusDispatch(t *testing.T) {
	o := New(WithSize(2, 2))
	o.polling = true
	_, win, _ := startOverlay(t, o)
	defer closeOverlay(t, o)

	var got []EventKind
	o.OnEvent(func(ev Event) { got = append(got, ev.Kind) })

	win.Send(lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageFocused})
	win.Send(lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageVisible})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && len(got) < 2 {
		o.Pump(16)
		time.Sleep(5 * time.Millisecond)
	}
	if len(got) < 2 || got[0] != EventFocused || got[1] != EventBlurred {
		t.Fatalf("focus events: %v", got)
	}
}

func TestOccludedRenderIsSilentlySkipped(t *testing.T) {
	o := New(WithSize(2, 2), WithRenderWhenOccluded(false))
	o.polling = true
	_, win, _ := startOverlay(t, o)
	defer closeOverlay(t, o)

	win.Send(lifecycle.Event{From: lifecycle.StageVisible, To: lifecycle.StageAlive})

	deadline := time.Now().Add(5 * time.Second)
	for {
		occ, err := o.Window().Occluded()
		if err != nil {
			t.Fatalf("Occluded: %v", err)
		}
		if occ {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("occlusion never observed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	before := win.publishCount()
	if err := o.Frame().Render(); err != nil {
		t.Fatalf("Render while occluded: %v", err)
	}
	if got := win.publishCount(); got != before {
		t.Fatalf("occluded render still published: %d -> %d", before, got)
	}

	if err := o.Window().SetRenderWhenOccluded(true); err != nil {
		t.Fatalf("SetRenderWhenOccluded: %v", err)
	}
	if err := o.Frame().Render(); err != nil {
		t.Fatalf("Render with occluded policy: %v", err)
	}
	if got := win.publishCount(); got != before+1 {
		t.Fatalf("policy override did not present: %d -> %d", before, got)
	}
}

func TestCloseDispatchesAndTerminates(t *testing.T) {
	o := New(WithSize(2, 2))

	var mu sync.Mutex
	var got []EventKind
	o.OnEvent(func(ev Event) {
		mu.Lock()
		got = append(got, ev.Kind)
		mu.Unlock()
	})

	_, _, _ = startOverlay(t, o)
	closeOverlay(t, o)

	mu.Lock()
	defer mu.Unlock()
	var sawClose, sawDestroy bool
	for _, k := range got {
		if k == EventCloseRequested {
			sawClose = true
		}
		if k == EventDestroyed {
			sawDestroy = true
		}
	}
	if !sawClose || !sawDestroy {
		t.Fatalf("close lifecycle events: %v", got)
	}

	if err := o.Frame().Render(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Render after close: got %v, want ErrClosed", err)
	}
	if err := o.Window().SetTitle("late"); !errors.Is(err, ErrClosed) {
		t.Fatalf("SetTitle after close: got %v, want ErrClosed", err)
	}
}

func TestCloseBeforeStartIsTerminal(t *testing.T) {
	o := New()
	o.Close()
	if err := o.Frame().Clear(Black); !errors.Is(err, ErrClosed) {
		t.Fatalf("Clear after early close: got %v, want ErrClosed", err)
	}
}

func TestEventQueueDropsOldest(t *testing.T) {
	q := newEventQueue(3)
	for i := 0; i < 5; i++ {
		q.push(Event{Kind: EventMoved, X: i})
	}
	ev, ok := q.pop()
	if !ok || ev.X != 2 {
		t.Fatalf("expected oldest surviving event X=2, got %+v ok=%v", ev, ok)
	}
	if _, ok := q.pop(); !ok {
		t.Fatalf("queue drained early")
	}
	ev, ok = q.pop()
	if !ok || ev.X != 4 {
		t.Fatalf("expected newest event X=4, got %+v ok=%v", ev, ok)
	}
	if _, ok := q.pop(); ok {
		t.Fatalf("queue should be empty")
	}
}
