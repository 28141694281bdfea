// Package raycast walks rays through a density field cell by cell and reports
// where they stop.
package raycast

import (
	"errors"
	"math"

	"github.com/pthm-cable/carve/terrain"
	"github.com/pthm-cable/carve/vmath"
)

// ErrDegenerateRay is returned for a zero-length or non-finite direction, or
// a non-finite origin.
var ErrDegenerateRay = errors.New("raycast: degenerate ray")

var inf = math.Inf(1)

// Traverser is an allocation-free DDA iterator. Each call to Next enters the
// neighbouring cell whose boundary the ray crosses first.
type Traverser struct {
	cell         terrain.Cell
	stepX, stepY int

	// Ray length needed to move one full cell along each axis.
	unitX, unitY float64
	// Accumulated ray length at the next x and y boundary crossing. Kept in
	// float64 so long walks keep advancing.
	lenX, lenY float64

	dist float64
}

// NewTraverser starts a walk at origin heading along dir. dir is expected to
// be unit length; the step lengths only depend on its slope.
func NewTraverser(origin, dir vmath.Vec2) (Traverser, error) {
	if !origin.IsFinite() || !dir.IsFinite() || (dir.X == 0 && dir.Y == 0) {
		return Traverser{}, ErrDegenerateRay
	}

	t := Traverser{cell: terrain.CellAt(origin)}
	t.unitX = unitStep(dir.X, dir.Y)
	t.unitY = unitStep(dir.Y, dir.X)

	ox, oy := float64(origin.X), float64(origin.Y)
	if dir.X < 0 {
		t.stepX = -1
		t.lenX = startLength(ox-float64(t.cell.X), t.unitX)
	} else {
		t.stepX = 1
		t.lenX = startLength(float64(t.cell.X+1)-ox, t.unitX)
	}
	if dir.Y < 0 {
		t.stepY = -1
		t.lenY = startLength(oy-float64(t.cell.Y), t.unitY)
	} else {
		t.stepY = 1
		t.lenY = startLength(float64(t.cell.Y+1)-oy, t.unitY)
	}
	return t, nil
}

// unitStep returns sqrt(1 + (b/a)^2), or +Inf when the ray never moves along a.
func unitStep(a, b float32) float64 {
	if a == 0 {
		return inf
	}
	r := float64(b) / float64(a)
	return math.Sqrt(1 + r*r)
}

// startLength avoids 0*Inf when the origin sits exactly on a boundary of an
// axis the ray never moves along.
func startLength(frac, unit float64) float64 {
	if unit == inf {
		return inf
	}
	return frac * unit
}

// Next advances into the next cell. The axis with the shorter accumulated
// length wins; on a tie the ray steps along x.
func (t *Traverser) Next() {
	if t.lenY < t.lenX {
		t.cell.Y += t.stepY
		t.dist = t.lenY
		t.lenY += t.unitY
		return
	}
	t.cell.X += t.stepX
	t.dist = t.lenX
	t.lenX += t.unitX
}

// Cell returns the cell the traverser currently occupies.
func (t *Traverser) Cell() terrain.Cell { return t.cell }

// Distance returns the ray length at which the current cell was entered.
func (t *Traverser) Distance() float32 { return float32(t.dist) }
