// Package config loads overlay defaults from an RC-format file. The file
// carries the window geometry and behavior flags applied before any command
// line flags, plus a named color table for scripted drawing.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Window holds the window defaults.
type Window struct {
	Width  int
	Height int
	X      int
	Y      int

	Decorations        bool
	ClickThrough       bool
	CursorVisible      bool
	KeepAwake          bool
	RenderWhenOccluded bool
	Visible            bool
	Fullscreen         bool
}

// Config holds the application configuration.
type Config struct {
	Title  string
	Level  string
	Window Window
	Colors map[string]color.RGBA
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Level: "", // Default to empty to allow fallback to the built-in level
		Window: Window{
			Width:              800,
			Height:             600,
			X:                  100,
			Y:                  100,
			CursorVisible:      true,
			RenderWhenOccluded: true,
			Visible:            true,
		},
		Colors: make(map[string]color.RGBA),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Title != "" {
		fmt.Fprintf(&sb, "title = %s\n", c.Title)
	}
	if c.Level != "" {
		fmt.Fprintf(&sb, "level = %s\n", c.Level)
	}
	sb.WriteString("\n")

	// Window section
	sb.WriteString("[window]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Window.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Window.Height)
	fmt.Fprintf(&sb, "x = %d\n", c.Window.X)
	fmt.Fprintf(&sb, "y = %d\n", c.Window.Y)
	fmt.Fprintf(&sb, "decorations = %v\n", c.Window.Decorations)
	fmt.Fprintf(&sb, "click_through = %v\n", c.Window.ClickThrough)
	fmt.Fprintf(&sb, "cursor_visible = %v\n", c.Window.CursorVisible)
	fmt.Fprintf(&sb, "keep_awake = %v\n", c.Window.KeepAwake)
	fmt.Fprintf(&sb, "render_when_occluded = %v\n", c.Window.RenderWhenOccluded)
	fmt.Fprintf(&sb, "visible = %v\n", c.Window.Visible)
	fmt.Fprintf(&sb, "fullscreen = %v\n", c.Window.Fullscreen)
	sb.WriteString("\n")

	// Color sections
	// Sort keys for deterministic output
	var names []string
	for name := range c.Colors {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		sb.WriteString("[colors]\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "%s = %s\n", name, toHex(c.Colors[name]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
