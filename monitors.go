package glaze

import "github.com/example/glaze/internal/platform"

// Monitor describes a physical display in the desktop layout, in screen
// pixels.
type Monitor struct {
	Name    string
	X, Y    int
	Width   int
	Height  int
	Primary bool
}

// Monitors lists the attached displays. Useful for positioning an overlay on
// a specific screen or sizing one to cover it. Reports an error on platforms
// without a display query backend.
func Monitors() ([]Monitor, error) {
	native, err := platform.Monitors()
	if err != nil {
		return nil, err
	}
	out := make([]Monitor, len(native))
	for i, m := range native {
		out[i] = Monitor{
			Name:    m.Name,
			X:       m.X,
			Y:       m.Y,
			Width:   m.Width,
			Height:  m.Height,
			Primary: m.Primary,
		}
	}
	return out, nil
}
