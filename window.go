package glaze

import (
	"errors"

	"golang.org/x/mobile/event/paint"

	"github.com/example/glaze/internal/platform"
	"github.com/example/glaze/internal/raster"
)

// WindowController mutates window identity: geometry, title, stacking,
// visibility. All methods are safe from any goroutine. Before the surface
// exists, setters stage their value into the pending configuration; after
// teardown they return ErrClosed.
type WindowController struct {
	overlay *Overlay
}

// withState runs live against a ready surface or stages against the pending
// configuration, whichever the lifecycle allows.
func (w *WindowController) withState(stage func(*pendingConfig), live func(*windowState) error) error {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.stage {
	case stageUninitialized:
		stage(st.staged())
		return nil
	case stageClosing, stageClosed:
		return ErrClosed
	case stageCreating:
		stage(st.staged())
		return nil
	default:
		return live(st)
	}
}

// platApply forwards an operation to the native sidecar, tolerating its
// absence and platforms that cannot express the operation.
func platApply(st *windowState, op func(platform.Window) error) error {
	if st.plat == nil {
		return nil
	}
	if err := op(st.plat); err != nil && !errors.Is(err, platform.ErrUnsupported) {
		return err
	}
	return nil
}

// Show maps the window.
func (w *WindowController) Show() error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.Visible = true },
		func(st *windowState) error {
			st.visible = true
			return platApply(st, func(p platform.Window) error { return p.SetVisible(true) })
		})
}

// Hide unmaps the window. Hidden windows keep their buffer and all
// controllers stay operational.
func (w *WindowController) Hide() error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.Visible = false },
		func(st *windowState) error {
			st.visible = false
			return platApply(st, func(p platform.Window) error { return p.SetVisible(false) })
		})
}

// Visible reports whether the window is currently mapped, or staged to be.
func (w *WindowController) Visible() (bool, error) {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.stage {
	case stageClosing, stageClosed:
		return false, ErrClosed
	case stageReady:
		return st.visible, nil
	default:
		return st.staged().cfg.Visible, nil
	}
}

// Minimize iconifies the window.
func (w *WindowController) Minimize() error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.Minimized = true },
		func(st *windowState) error {
			return platApply(st, platform.Window.Minimize)
		})
}

// Maximize grows the window to fill the work area.
func (w *WindowController) Maximize() error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.Maximized = true },
		func(st *windowState) error {
			return platApply(st, platform.Window.Maximize)
		})
}

// Restore undoes a minimize or maximize.
func (w *WindowController) Restore() error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.Minimized = false; p.cfg.Maximized = false },
		func(st *windowState) error {
			return platApply(st, platform.Window.Restore)
		})
}

// SetFullscreen switches borderless fullscreen on or off.
func (w *WindowController) SetFullscreen(on bool) error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.Fullscreen = on },
		func(st *windowState) error {
			st.fullscreen = on
			return platApply(st, func(p platform.Window) error { return p.SetFullscreen(on) })
		})
}

// IsFullscreen reports the current or staged fullscreen state.
func (w *WindowController) IsFullscreen() (bool, error) {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.stage {
	case stageClosing, stageClosed:
		return false, ErrClosed
	case stageReady:
		return st.fullscreen, nil
	default:
		return st.staged().cfg.Fullscreen, nil
	}
}

// SetPosition moves the window so its top-left corner sits at the given
// screen coordinates.
func (w *WindowController) SetPosition(x, y int) error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.X, p.cfg.Y = x, y },
		func(st *windowState) error {
			if err := platApply(st, func(p platform.Window) error { return p.Move(x, y) }); err != nil {
				return err
			}
			if st.win != nil {
				st.win.Send(moveNotice{X: x, Y: y})
			}
			return nil
		})
}

// Position reports the window's top-left corner in screen coordinates. It
// needs a live surface: before creation there is nothing to query.
func (w *WindowController) Position() (int, int, error) {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.ensureReady(); err != nil {
		return 0, 0, err
	}
	if st.plat == nil {
		return 0, 0, platform.ErrUnsupported
	}
	return st.plat.Position()
}

// SetSize resizes the window. The frame buffer is resized immediately so
// drawing against the new dimensions is valid as soon as the call returns,
// without waiting for the platform's size event.
func (w *WindowController) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("window dimensions must be positive")
	}
	return w.withState(
		func(p *pendingConfig) {
			if len(p.frame) > 0 && (width != p.cfg.Width || height != p.cfg.Height) {
				next := make([]byte, raster.BufferSize(width, height))
				raster.Blit(next, 0, 0, p.frame, p.cfg.Width, p.cfg.Height, width, height)
				p.frame = next
			}
			p.cfg.Width, p.cfg.Height = width, height
		},
		func(st *windowState) error {
			st.resizeLocked(width, height)
			return platApply(st, func(p platform.Window) error { return p.Resize(width, height) })
		})
}

// Size reports the current or staged window dimensions.
func (w *WindowController) Size() (int, int, error) {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.stage {
	case stageClosing, stageClosed:
		return 0, 0, ErrClosed
	case stageReady:
		return st.width, st.height, nil
	default:
		p := st.staged()
		return p.cfg.Width, p.cfg.Height, nil
	}
}

// SetTitle changes the window title.
func (w *WindowController) SetTitle(title string) error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.Title = title },
		func(st *windowState) error {
			st.title = title
			return platApply(st, func(p platform.Window) error { return p.SetTitle(title) })
		})
}

// Title reports the current or staged window title.
func (w *WindowController) Title() (string, error) {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.stage {
	case stageClosing, stageClosed:
		return "", ErrClosed
	case stageReady:
		return st.title, nil
	default:
		return st.staged().cfg.Title, nil
	}
}

// SetLevel places the window above, below, or among normal windows.
func (w *WindowController) SetLevel(level Level) error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.Level = level },
		func(st *windowState) error {
			st.level = level
			return platApply(st, func(p platform.Window) error { return p.SetLevel(level.platform()) })
		})
}

// Level reports the current or staged stacking level.
func (w *WindowController) Level() (Level, error) {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	switch st.stage {
	case stageClosing, stageClosed:
		return LevelNormal, ErrClosed
	case stageReady:
		return st.level, nil
	default:
		return st.staged().cfg.Level, nil
	}
}

// SetClickThrough makes the window transparent to pointer input, or solid
// again.
func (w *WindowController) SetClickThrough(on bool) error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.ClickThrough = on },
		func(st *windowState) error {
			return platApply(st, func(p platform.Window) error { return p.SetClickThrough(on) })
		})
}

// SetCursorVisible shows or hides the pointer while it is over the window.
func (w *WindowController) SetCursorVisible(on bool) error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.CursorVisible = on },
		func(st *windowState) error {
			return platApply(st, func(p platform.Window) error { return p.SetCursorVisible(on) })
		})
}

// SetRenderWhenOccluded controls whether presents continue while the window
// is not visible on screen.
func (w *WindowController) SetRenderWhenOccluded(on bool) error {
	return w.withState(
		func(p *pendingConfig) { p.cfg.RenderWhenOccluded = on },
		func(st *windowState) error {
			st.renderWhenOccluded = on
			return nil
		})
}

// Occluded reports whether the platform considers the window invisible.
func (w *WindowController) Occluded() (bool, error) {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.ensureReady(); err != nil {
		return false, err
	}
	return st.occluded, nil
}

// RequestRedraw schedules an asynchronous present of the current frame.
func (w *WindowController) RequestRedraw() error {
	st := w.overlay.state
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.ensureReady(); err != nil {
		return err
	}
	st.win.Send(paint.Event{External: true})
	return nil
}
