//go:build !linux && !freebsd && !openbsd && !netbsd

package platform

// Attach has no implementation off X11; every capability reports
// ErrUnsupported so the overlay still runs with the portable feature set.
func Attach(pid int, titleHint string) (Window, error) {
	return stubWindow{}, nil
}

// Monitors is unavailable without a platform backend.
func Monitors() ([]Monitor, error) {
	return nil, ErrUnsupported
}

type stubWindow struct{}

func (stubWindow) Move(x, y int) error                 { return ErrUnsupported }
func (stubWindow) Position() (int, int, error)         { return 0, 0, ErrUnsupported }
func (stubWindow) Resize(width, height int) error      { return ErrUnsupported }
func (stubWindow) SetTitle(title string) error         { return ErrUnsupported }
func (stubWindow) SetVisible(visible bool) error       { return ErrUnsupported }
func (stubWindow) Minimize() error                     { return ErrUnsupported }
func (stubWindow) Maximize() error                     { return ErrUnsupported }
func (stubWindow) Restore() error                      { return ErrUnsupported }
func (stubWindow) SetFullscreen(fullscreen bool) error { return ErrUnsupported }
func (stubWindow) Fullscreen() (bool, error)           { return false, ErrUnsupported }
func (stubWindow) SetLevel(level Level) error          { return ErrUnsupported }
func (stubWindow) SetDecorations(decorated bool) error { return ErrUnsupported }
func (stubWindow) SetClickThrough(enabled bool) error  { return ErrUnsupported }
func (stubWindow) SetCursorVisible(visible bool) error { return ErrUnsupported }
func (stubWindow) Close() error                        { return nil }
