package terrain

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for any access outside [0,width)x[0,height).
	ErrOutOfBounds = errors.New("terrain: coordinates out of bounds")

	// ErrInvalidSize is returned when a field is created with a non-positive extent.
	ErrInvalidSize = errors.New("terrain: field size must be positive")
)

// OutOfBoundsError records the offending coordinates and field extent.
// It matches ErrOutOfBounds with errors.Is.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("terrain: cell (%d, %d) outside %dx%d field", e.X, e.Y, e.Width, e.Height)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
