// Package terrain owns the density grid edited by the brush operators and the
// scratch buffers they stage edits in.
package terrain

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/carve/vmath"
)

// Cell addresses a single grid cell.
type Cell struct {
	X, Y int
}

// Add offsets c by (dx, dy).
func (c Cell) Add(dx, dy int) Cell { return Cell{c.X + dx, c.Y + dy} }

// Vec returns the cell's integer coordinates as a vector.
func (c Cell) Vec() vmath.Vec2 { return vmath.V(float32(c.X), float32(c.Y)) }

// CellAt returns the cell containing the point p.
func CellAt(p vmath.Vec2) Cell {
	return Cell{X: floor(p.X), Y: floor(p.Y)}
}

func floor(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

// Field is a fixed-size grid of densities in [0,1], 0 empty and 1 solid.
// Storage is row-major: index = y*width + x.
type Field struct {
	w, h int
	data []float32
}

// New allocates an empty width x height field.
func New(width, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Field{w: width, h: height, data: make([]float32, width*height)}, nil
}

// MustNew is like New but panics on an invalid size.
func MustNew(width, height int) *Field {
	f, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return f
}

// Clone returns an independent copy of the field.
func (f *Field) Clone() *Field {
	return &Field{w: f.w, h: f.h, data: f.Values()}
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.w }

// Height returns the number of rows.
func (f *Field) Height() int { return f.h }

// InBounds reports whether (x, y) addresses a cell of the field.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.w && y >= 0 && y < f.h
}

// CheckBounds returns an *OutOfBoundsError when (x, y) is outside the field.
func (f *Field) CheckBounds(x, y int) error {
	if f.InBounds(x, y) {
		return nil
	}
	return f.boundsError(x, y)
}

func (f *Field) boundsError(x, y int) error {
	return &OutOfBoundsError{X: x, Y: y, Width: f.w, Height: f.h}
}

// Get returns the density at (x, y).
func (f *Field) Get(x, y int) (float32, error) {
	if !f.InBounds(x, y) {
		return 0, f.boundsError(x, y)
	}
	return f.data[y*f.w+x], nil
}

// Set stores v at (x, y), clamped to [0,1].
func (f *Field) Set(x, y int, v float32) error {
	if !f.InBounds(x, y) {
		return f.boundsError(x, y)
	}
	f.data[y*f.w+x] = vmath.Clamp01(v)
	return nil
}

// Add adds delta to the density at (x, y) and stores the clamped result.
func (f *Field) Add(x, y int, delta float32) error {
	if !f.InBounds(x, y) {
		return f.boundsError(x, y)
	}
	i := y*f.w + x
	f.data[i] = vmath.Clamp01(f.data[i] + delta)
	return nil
}

// IsEmpty reports whether the cell holds exactly 0. Cells outside the field
// are neither empty nor full.
func (f *Field) IsEmpty(x, y int) bool {
	return f.InBounds(x, y) && f.data[y*f.w+x] == 0
}

// IsFull reports whether the cell holds exactly 1.
func (f *Field) IsFull(x, y int) bool {
	return f.InBounds(x, y) && f.data[y*f.w+x] == 1
}

// Fill sets every cell to v, clamped to [0,1].
func (f *Field) Fill(v float32) {
	v = vmath.Clamp01(v)
	for i := range f.data {
		f.data[i] = v
	}
}

// Values returns a copy of the backing storage in row-major order.
func (f *Field) Values() []float32 {
	out := make([]float32, len(f.data))
	copy(out, f.data)
	return out
}

// Mass returns the sum of all densities.
func (f *Field) Mass() float32 {
	// Densities are never negative, so the absolute sum is the plain sum.
	return blas32.Asum(blas32.Vector{N: len(f.data), Inc: 1, Data: f.data})
}

// FillRGBA writes the field as opaque gray pixels into buf, which must hold
// width*height*4 bytes. This is the only place densities are quantised.
func (f *Field) FillRGBA(buf []byte) {
	if len(buf) < len(f.data)*4 {
		panic(fmt.Sprintf("terrain: pixel buffer too small: %d < %d", len(buf), len(f.data)*4))
	}
	for i, v := range f.data {
		g := uint8(v * 255)
		base := i * 4
		buf[base+0] = g
		buf[base+1] = g
		buf[base+2] = g
		buf[base+3] = 255
	}
}
