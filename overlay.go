// Package glaze exposes a transparent, always-on-top, pixel-addressable
// overlay window. Configuration and drawing may be issued from any goroutine,
// before or after the native surface exists: calls made before creation are
// staged and replayed when the window comes up, while later calls take effect
// directly. A single lock over the shared window state serializes callers
// against the platform event loop.
package glaze

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/glaze/internal/platform"
	"github.com/example/glaze/internal/raster"
)

const eventQueueDepth = 64

// attachWindowFn is swapped out by tests that run without a display server.
var attachWindowFn = platform.Attach

// closeRequest asks the event loop to tear the surface down. It travels
// through the window's event deque like any platform event.
type closeRequest struct{}

// moveNotice reports a successfully applied reposition so the dispatcher can
// emit a Moved event from the loop thread.
type moveNotice struct {
	X, Y int
}

// Overlay is a handle to one overlay surface. Create it with New, configure
// it through Window and Frame, then drive it with Run (blocking) or Start
// and Pump (polling).
type Overlay struct {
	state *windowState
	queue *eventQueue

	window *WindowController
	frame  *FrameController

	polling bool

	ready chan struct{}
	done  chan struct{}

	runErr    error
	closeOnce sync.Once
	doneOnce  sync.Once
}

// New stages an overlay with the given options applied over DefaultConfig.
// No native resources exist until Run or Start.
func New(opts ...Option) *Overlay {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	o := &Overlay{
		state: newWindowState(cfg),
		queue: newEventQueue(eventQueueDepth),
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
	o.window = &WindowController{overlay: o}
	o.frame = &FrameController{overlay: o}
	return o
}

// Window returns the controller for window identity operations.
func (o *Overlay) Window() *WindowController { return o.window }

// Frame returns the controller for pixel buffer operations.
func (o *Overlay) Frame() *FrameController { return o.frame }

// OnEvent registers the callback receiving overlay events. It may be called
// at any time; a nil callback drops events in blocking mode.
func (o *Overlay) OnEvent(cb Callback) {
	o.state.mu.Lock()
	o.state.callback = cb
	o.state.mu.Unlock()
}

// Run creates the surface and drives the event loop on the calling
// goroutine, which must be the process's main goroutine on platforms that
// require it. It returns once the overlay is closed, or with the creation
// error.
func (o *Overlay) Run() error {
	driver.Main(o.eventLoop)
	return o.runErr
}

// Start creates the surface with the event loop on its own goroutine and
// returns once the surface is live. Events are buffered and must be drained
// with Pump. Not available on platforms that force the event loop onto the
// main thread.
func (o *Overlay) Start() error {
	o.polling = true
	go driver.Main(o.eventLoop)
	select {
	case <-o.ready:
		return nil
	case <-o.done:
		return o.runErr
	}
}

// Pump delivers up to max buffered events to the registered callback on the
// calling goroutine and reports how many were delivered. It only has effect
// after Start.
func (o *Overlay) Pump(max int) int {
	o.state.mu.Lock()
	cb := o.state.callback
	o.state.mu.Unlock()

	n := 0
	for n < max {
		ev, ok := o.queue.pop()
		if !ok {
			break
		}
		if cb != nil {
			cb(ev)
		}
		n++
	}
	return n
}

// Close requests teardown. It is one-way: no operation is resumable after
// the overlay reports Destroyed. Safe to call from any goroutine, any number
// of times.
func (o *Overlay) Close() {
	o.closeOnce.Do(func() {
		o.state.mu.Lock()
		win := o.state.win
		if win == nil {
			// Never created; nothing to unwind.
			o.state.stage = stageClosed
		}
		o.state.mu.Unlock()
		if win != nil {
			win.Send(closeRequest{})
		}
	})
}

// Done is closed once the event loop has exited and all native resources are
// released.
func (o *Overlay) Done() <-chan struct{} { return o.done }

func (o *Overlay) fail(err error) {
	o.runErr = err
	o.doneOnce.Do(func() { close(o.done) })
}

// eventLoop owns the surface for its whole life: creation, dispatch,
// teardown. It runs on the thread the screen driver hands us.
func (o *Overlay) eventLoop(s screen.Screen) {
	st := o.state

	st.mu.Lock()
	if stage := st.stage; stage != stageUninitialized {
		st.mu.Unlock()
		if stage == stageClosing || stage == stageClosed {
			o.fail(ErrClosed)
		} else {
			o.fail(fmt.Errorf("overlay started twice"))
		}
		return
	}
	st.stage = stageCreating
	pending := st.staged()
	cfg := pending.cfg

	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
	})
	if err != nil {
		st.stage = stageClosed
		st.pending = nil
		st.mu.Unlock()
		o.fail(fmt.Errorf("create window: %w", err))
		return
	}

	// Window and presentation handles come up together, under the same lock
	// hold, so no caller can observe one without the other.
	st.scr = s
	st.win = w
	st.width = cfg.Width
	st.height = cfg.Height
	st.title = cfg.Title
	st.level = cfg.Level
	st.visible = cfg.Visible
	st.renderWhenOccluded = cfg.RenderWhenOccluded
	st.frame = make([]byte, raster.BufferSize(cfg.Width, cfg.Height))
	if len(pending.frame) == len(st.frame) {
		copy(st.frame, pending.frame)
	}
	st.pending = nil
	st.stage = stageReady
	st.mu.Unlock()

	o.attachPlatform(cfg)

	if cfg.KeepScreenAwake {
		if cookie, err := platform.InhibitScreenSaver("glaze", "overlay visible"); err == nil {
			st.mu.Lock()
			st.keepAwake = true
			st.keepAwakeCookie = cookie
			st.mu.Unlock()
		} else {
			log.Printf("keep-awake unavailable: %v", err)
		}
	}

	close(o.ready)
	w.Send(paint.Event{})

	o.dispatchLoop(w)
	o.teardown()
}

// attachPlatform wires the native window management sidecar and replays the
// staged window configuration that the portable driver cannot express.
func (o *Overlay) attachPlatform(cfg Config) {
	st := o.state

	plat, err := attachWindowFn(os.Getpid(), cfg.Title)
	if err != nil {
		log.Printf("window management unavailable: %v", err)
		return
	}

	apply := func(name string, err error) {
		if err != nil && !errors.Is(err, platform.ErrUnsupported) {
			log.Printf("apply %s: %v", name, err)
		}
	}
	apply("decorations", plat.SetDecorations(cfg.Decorations))
	apply("level", plat.SetLevel(cfg.Level.platform()))
	if cfg.X != 0 || cfg.Y != 0 {
		apply("position", plat.Move(cfg.X, cfg.Y))
	}
	if cfg.ClickThrough {
		apply("click-through", plat.SetClickThrough(true))
	}
	if !cfg.CursorVisible {
		apply("cursor", plat.SetCursorVisible(false))
	}
	if cfg.Fullscreen {
		apply("fullscreen", plat.SetFullscreen(true))
	}
	if cfg.Maximized {
		apply("maximize", plat.Maximize())
	}
	if cfg.Minimized {
		apply("minimize", plat.Minimize())
	}
	if !cfg.Visible {
		apply("visibility", plat.SetVisible(false))
	}

	st.mu.Lock()
	st.plat = plat
	st.fullscreen = cfg.Fullscreen
	st.mu.Unlock()
}

// dispatchLoop translates platform signals into state mutations and
// abstracted events until the surface closes.
func (o *Overlay) dispatchLoop(w screen.Window) {
	st := o.state

	// Pointer presence is tracked loop-locally to synthesize enter/leave.
	mouseInside := false
	st.mu.Lock()
	loopW, loopH := st.width, st.height
	st.mu.Unlock()

	for {
		switch e := w.NextEvent().(type) {
		case closeRequest:
			st.mu.Lock()
			st.stage = stageClosing
			st.mu.Unlock()
			o.dispatch(Event{Kind: EventCloseRequested})
			return

		case moveNotice:
			o.dispatch(Event{Kind: EventMoved, X: e.X, Y: e.Y})

		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				st.mu.Lock()
				st.stage = stageClosing
				st.mu.Unlock()
				o.dispatch(Event{Kind: EventCloseRequested})
				return
			}
			switch e.Crosses(lifecycle.StageFocused) {
			case lifecycle.CrossOn:
				o.dispatch(Event{Kind: EventFocused})
			case lifecycle.CrossOff:
				o.dispatch(Event{Kind: EventBlurred})
			}
			switch e.Crosses(lifecycle.StageVisible) {
			case lifecycle.CrossOn:
				st.mu.Lock()
				st.occluded = false
				st.mu.Unlock()
				o.dispatch(Event{Kind: EventRestored})
				w.Send(paint.Event{})
			case lifecycle.CrossOff:
				st.mu.Lock()
				st.occluded = true
				st.mu.Unlock()
				o.dispatch(Event{Kind: EventOccluded})
				if mouseInside {
					mouseInside = false
					o.dispatch(Event{Kind: EventMouseLeave})
				}
			}

		case size.Event:
			st.mu.Lock()
			st.resizeLocked(e.WidthPx, e.HeightPx)
			loopW, loopH = st.width, st.height
			st.mu.Unlock()
			o.dispatch(Event{Kind: EventResized, Width: e.WidthPx, Height: e.HeightPx})
			w.Send(paint.Event{})

		case paint.Event:
			if err := o.render(); err != nil {
				// A failed present keeps the loop alive; the next paint
				// retries.
				log.Printf("render: %v", err)
			}

		case mouse.Event:
			inside := e.X >= 0 && e.Y >= 0 && int(e.X) < loopW && int(e.Y) < loopH
			if inside != mouseInside {
				mouseInside = inside
				if inside {
					o.dispatch(Event{Kind: EventMouseEnter})
				} else {
					o.dispatch(Event{Kind: EventMouseLeave})
				}
			}

		case error:
			log.Printf("event loop: %v", e)
		}
	}
}

// teardown releases every native resource and reports Destroyed. After this
// the state is terminal.
func (o *Overlay) teardown() {
	st := o.state

	st.mu.Lock()
	win := st.win
	plat := st.plat
	keepAwake := st.keepAwake
	cookie := st.keepAwakeCookie
	st.win = nil
	st.scr = nil
	st.plat = nil
	st.keepAwake = false
	st.stage = stageClosed
	st.mu.Unlock()

	if keepAwake {
		if err := platform.UninhibitScreenSaver(cookie); err != nil {
			log.Printf("release keep-awake: %v", err)
		}
	}
	if plat != nil {
		if err := plat.Close(); err != nil {
			log.Printf("close window management: %v", err)
		}
	}
	if win != nil {
		win.Release()
	}

	o.dispatch(Event{Kind: EventDestroyed})
	o.doneOnce.Do(func() { close(o.done) })
}

// dispatch delivers an event outside the state lock: directly to the
// callback in blocking mode, onto the bounded queue in polling mode.
func (o *Overlay) dispatch(ev Event) {
	if o.polling {
		o.queue.push(ev)
		return
	}
	o.state.mu.Lock()
	cb := o.state.callback
	o.state.mu.Unlock()
	if cb != nil {
		cb(ev)
	}
}

// render presents the current frame. Holding the state lock for the whole
// present keeps it structurally impossible for a buffer mutation to race a
// frame upload.
func (o *Overlay) render() error {
	o.state.mu.Lock()
	defer o.state.mu.Unlock()
	return o.renderLocked()
}

func (o *Overlay) renderLocked() error {
	st := o.state
	if err := st.ensureReady(); err != nil {
		return err
	}
	// Occluded surfaces skip presentation silently unless policy says
	// otherwise.
	if st.occluded && !st.renderWhenOccluded {
		return nil
	}

	buf, err := st.scr.NewBuffer(image.Point{X: st.width, Y: st.height})
	if err != nil {
		return fmt.Errorf("new presentation buffer: %w", err)
	}
	defer buf.Release()

	rgba := buf.RGBA()
	rowLen := st.width * 4
	for y := 0; y < st.height; y++ {
		src := y * rowLen
		dst := y * rgba.Stride
		if src+rowLen > len(st.frame) || dst+rowLen > len(rgba.Pix) {
			break
		}
		copy(rgba.Pix[dst:dst+rowLen], st.frame[src:src+rowLen])
	}

	st.win.Upload(image.Point{}, buf, buf.Bounds())
	st.win.Publish()
	return nil
}
