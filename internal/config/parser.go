package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		switch currentSection {
		case "":
			if err := setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
		case "window":
			if err := setWindowField(&cfg.Window, key, value); err != nil {
				return nil, fmt.Errorf("error in section [window]: %w", err)
			}
		case "colors":
			col, err := ParseColor(value)
			if err != nil {
				return nil, fmt.Errorf("error in section [colors]: invalid color for key %s: %w", key, err)
			}
			cfg.Colors[strings.ToLower(key)] = col
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "title":
		cfg.Title = value
	case "level":
		cfg.Level = value
	}
	return nil
}

func setWindowField(w *Window, key, value string) error {
	switch strings.ToLower(key) {
	case "width", "height", "x", "y":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		switch strings.ToLower(key) {
		case "width":
			w.Width = n
		case "height":
			w.Height = n
		case "x":
			w.X = n
		case "y":
			w.Y = n
		}
	case "decorations", "click_through", "cursor_visible", "keep_awake",
		"render_when_occluded", "visible", "fullscreen":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		switch strings.ToLower(key) {
		case "decorations":
			w.Decorations = b
		case "click_through":
			w.ClickThrough = b
		case "cursor_visible":
			w.CursorVisible = b
		case "keep_awake":
			w.KeepAwake = b
		case "render_when_occluded":
			w.RenderWhenOccluded = b
		case "visible":
			w.Visible = b
		case "fullscreen":
			w.Fullscreen = b
		}
	}
	return nil
}

// ParseColor parses a hex color string of the form #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		// #RRGGBB
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	} else if len(hex) == 8 {
		// #RRGGBBAA
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}
