package glaze

import (
	"errors"

	"github.com/example/glaze/internal/raster"
)

var (
	// ErrNotInitialized reports an operation that needs a live surface before
	// one has been created.
	ErrNotInitialized = errors.New("overlay not initialized")

	// ErrClosed reports an operation issued after the surface was torn down.
	ErrClosed = errors.New("overlay closed")

	// ErrOutOfBounds reports a pixel coordinate outside the frame.
	ErrOutOfBounds = raster.ErrOutOfBounds
)
