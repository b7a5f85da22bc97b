package glaze

import "github.com/example/glaze/internal/platform"

// Level is the stacking order of the overlay window.
type Level int

const (
	LevelNormal Level = iota
	LevelAlwaysOnTop
	LevelAlwaysOnBottom
)

func (l Level) String() string {
	switch l {
	case LevelAlwaysOnTop:
		return "always-on-top"
	case LevelAlwaysOnBottom:
		return "always-on-bottom"
	}
	return "normal"
}

// ParseLevel reads a Level from its string form. Unknown values map to
// LevelNormal.
func ParseLevel(s string) Level {
	switch s {
	case "always-on-top", "above", "top":
		return LevelAlwaysOnTop
	case "always-on-bottom", "below", "bottom":
		return LevelAlwaysOnBottom
	}
	return LevelNormal
}

func (l Level) platform() platform.Level {
	switch l {
	case LevelAlwaysOnTop:
		return platform.LevelAbove
	case LevelAlwaysOnBottom:
		return platform.LevelBelow
	}
	return platform.LevelNormal
}

// Config describes the overlay window. Every field has a working default;
// see DefaultConfig. The record is consumed once at surface creation and any
// later change goes through the controllers instead.
type Config struct {
	Width  int
	Height int
	X      int
	Y      int
	Title  string

	Transparent bool
	Decorations bool
	Level       Level
	Resizable   bool

	Visible    bool
	Fullscreen bool
	Maximized  bool
	Minimized  bool

	RenderWhenOccluded bool
	ClickThrough       bool
	CursorVisible      bool
	KeepScreenAwake    bool
}

// DefaultConfig returns the documented defaults: an 800x600 transparent,
// undecorated, always-on-top window titled "Overlay" at (100, 100).
func DefaultConfig() Config {
	return Config{
		Width:              800,
		Height:             600,
		X:                  100,
		Y:                  100,
		Title:              "Overlay",
		Transparent:        true,
		Decorations:        false,
		Level:              LevelAlwaysOnTop,
		Resizable:          true,
		Visible:            true,
		RenderWhenOccluded: true,
		CursorVisible:      true,
	}
}

// Option modifies the staged configuration during New.
type Option func(*Config)

// WithSize sets the initial inner size in pixels.
func WithSize(width, height int) Option {
	return func(c *Config) { c.Width, c.Height = width, height }
}

// WithPosition sets the initial window origin in screen pixels.
func WithPosition(x, y int) Option {
	return func(c *Config) { c.X, c.Y = x, y }
}

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(c *Config) { c.Title = title } }

// WithLevel sets the stacking order.
func WithLevel(level Level) Option { return func(c *Config) { c.Level = level } }

// WithTransparent toggles the transparent background request.
func WithTransparent(on bool) Option { return func(c *Config) { c.Transparent = on } }

// WithDecorations toggles window manager decorations.
func WithDecorations(on bool) Option { return func(c *Config) { c.Decorations = on } }

// WithResizable toggles user resizing.
func WithResizable(on bool) Option { return func(c *Config) { c.Resizable = on } }

// WithVisible controls whether the window is shown as soon as it exists.
func WithVisible(on bool) Option { return func(c *Config) { c.Visible = on } }

// WithFullscreen starts the window fullscreen.
func WithFullscreen(on bool) Option { return func(c *Config) { c.Fullscreen = on } }

// WithMaximized starts the window maximized.
func WithMaximized(on bool) Option { return func(c *Config) { c.Maximized = on } }

// WithMinimized starts the window minimized.
func WithMinimized(on bool) Option { return func(c *Config) { c.Minimized = on } }

// WithRenderWhenOccluded controls whether frames are still presented while
// the window is occluded.
func WithRenderWhenOccluded(on bool) Option {
	return func(c *Config) { c.RenderWhenOccluded = on }
}

// WithClickThrough makes pointer input pass through the overlay.
func WithClickThrough(on bool) Option { return func(c *Config) { c.ClickThrough = on } }

// WithCursorVisible controls the pointer cursor over the overlay.
func WithCursorVisible(on bool) Option { return func(c *Config) { c.CursorVisible = on } }

// WithKeepScreenAwake inhibits the session screensaver while the overlay is
// live.
func WithKeepScreenAwake(on bool) Option { return func(c *Config) { c.KeepScreenAwake = on } }
