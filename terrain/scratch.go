package terrain

import "fmt"

// Scratch is a rectangular staging window addressed by signed offsets in the
// inclusive range [from, to]. Operators write new values here while they still
// read the unmodified field, then copy the window back in one commit loop.
//
// Accessing an offset outside the window is a programming error and panics.
type Scratch[T any] struct {
	from, to Cell
	w        int
	data     []T
}

// NewScratch allocates a zeroed window covering [from, to] inclusive.
func NewScratch[T any](from, to Cell) *Scratch[T] {
	if to.X < from.X || to.Y < from.Y {
		panic(fmt.Sprintf("terrain: empty scratch window %v..%v", from, to))
	}
	w := to.X - from.X + 1
	h := to.Y - from.Y + 1
	return &Scratch[T]{from: from, to: to, w: w, data: make([]T, w*h)}
}

// NewSquareScratch allocates a window covering [-r, r] on both axes.
func NewSquareScratch[T any](r int) *Scratch[T] {
	return NewScratch[T](Cell{-r, -r}, Cell{r, r})
}

// Bounds returns the inclusive corners of the window.
func (s *Scratch[T]) Bounds() (from, to Cell) { return s.from, s.to }

// Contains reports whether (x, y) lies inside the window.
func (s *Scratch[T]) Contains(x, y int) bool {
	return x >= s.from.X && x <= s.to.X && y >= s.from.Y && y <= s.to.Y
}

func (s *Scratch[T]) index(x, y int) int {
	if !s.Contains(x, y) {
		panic(fmt.Sprintf("terrain: scratch offset (%d, %d) outside window %v..%v", x, y, s.from, s.to))
	}
	return (y-s.from.Y)*s.w + (x - s.from.X)
}

// Get returns the staged value at (x, y).
func (s *Scratch[T]) Get(x, y int) T {
	return s.data[s.index(x, y)]
}

// Set stages v at (x, y).
func (s *Scratch[T]) Set(x, y int, v T) {
	s.data[s.index(x, y)] = v
}
