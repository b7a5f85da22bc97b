// Package platform supplies the window management calls the portable screen
// driver does not expose: moving, titling, stacking, fullscreen, input shape
// and cursor control, plus screensaver inhibition while an overlay is live.
// Each capability degrades to ErrUnsupported on platforms without an
// implementation.
package platform

import "errors"

// ErrUnsupported reports a window management capability that has no
// implementation for the current platform.
var ErrUnsupported = errors.New("not supported on this platform")

// ErrWindowNotFound reports that the process's top-level window could not be
// located for management.
var ErrWindowNotFound = errors.New("window not found")

// Level is the stacking order requested for a managed window.
type Level int

const (
	LevelNormal Level = iota
	LevelAbove
	LevelBelow
)

func (l Level) String() string {
	switch l {
	case LevelAbove:
		return "always-on-top"
	case LevelBelow:
		return "always-on-bottom"
	}
	return "normal"
}

// Window drives native window state that outlives any single frame: geometry,
// stacking, visibility and input routing.
type Window interface {
	// Move positions the window's outer frame at (x, y) in screen pixels.
	Move(x, y int) error
	// Position reports the window's outer frame origin in screen pixels.
	Position() (x, y int, err error)
	// Resize sets the window's inner size in pixels.
	Resize(width, height int) error
	SetTitle(title string) error
	SetVisible(visible bool) error
	Minimize() error
	Maximize() error
	Restore() error
	SetFullscreen(fullscreen bool) error
	Fullscreen() (bool, error)
	SetLevel(level Level) error
	SetDecorations(decorated bool) error
	// SetClickThrough makes the window invisible to pointer input so clicks
	// fall through to whatever is underneath.
	SetClickThrough(enabled bool) error
	SetCursorVisible(visible bool) error
	Close() error
}

// Monitor describes a physical display in the desktop layout.
type Monitor struct {
	Name    string
	X, Y    int
	Width   int
	Height  int
	Primary bool
}
