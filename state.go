package glaze

import (
	"sync"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/glaze/internal/platform"
	"github.com/example/glaze/internal/raster"
)

// surfaceStage tracks the overlay lifecycle. The Creating stage is never
// observable from outside the event loop because the state lock is held for
// the whole transition.
type surfaceStage int

const (
	stageUninitialized surfaceStage = iota
	stageCreating
	stageReady
	stageClosing
	stageClosed
)

// pendingConfig stages configuration issued before the surface exists. It is
// consumed exactly once at window creation and unreachable afterwards.
type pendingConfig struct {
	cfg   Config
	frame []byte
}

// ensureFrame lazily allocates the staged pixel payload to match the staged
// dimensions.
func (p *pendingConfig) ensureFrame() []byte {
	want := raster.BufferSize(p.cfg.Width, p.cfg.Height)
	if len(p.frame) != want {
		p.frame = make([]byte, want)
	}
	return p.frame
}

// windowState is the single shared mutable region. Every field is guarded by
// mu; the one lock keeps window identity and pixel buffer facets from being
// observed out of sync.
type windowState struct {
	mu sync.Mutex

	scr  screen.Screen
	win  screen.Window
	plat platform.Window

	frame  []byte
	width  int
	height int

	occluded           bool
	renderWhenOccluded bool
	visible            bool
	fullscreen         bool
	level              Level
	title              string

	callback Callback

	stage   surfaceStage
	pending *pendingConfig

	keepAwakeCookie uint32
	keepAwake       bool
}

func newWindowState(cfg Config) *windowState {
	return &windowState{
		renderWhenOccluded: cfg.RenderWhenOccluded,
		level:              cfg.Level,
		title:              cfg.Title,
		visible:            cfg.Visible,
		pending:            &pendingConfig{cfg: cfg},
	}
}

// ensureReady distinguishes "not created yet" from "gone". Callers must hold mu.
func (s *windowState) ensureReady() error {
	switch s.stage {
	case stageReady:
		return nil
	case stageClosing, stageClosed:
		return ErrClosed
	}
	return ErrNotInitialized
}

// staged returns the pending configuration, valid only before creation.
// Callers must hold mu and have checked the stage.
func (s *windowState) staged() *pendingConfig {
	if s.pending == nil {
		s.pending = &pendingConfig{cfg: DefaultConfig()}
	}
	return s.pending
}

// resizeLocked swaps the frame buffer for new dimensions, preserving the
// overlapping region and leaving new area transparent. Callers must hold mu.
func (s *windowState) resizeLocked(width, height int) {
	if width <= 0 || height <= 0 || (width == s.width && height == s.height) {
		return
	}
	next := make([]byte, raster.BufferSize(width, height))
	raster.Blit(next, 0, 0, s.frame, s.width, s.height, width, height)
	s.frame = next
	s.width = width
	s.height = height
}
