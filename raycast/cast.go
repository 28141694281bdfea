package raycast

import (
	"math"

	"github.com/pthm-cable/carve/terrain"
	"github.com/pthm-cable/carve/vmath"
)

// Threshold is the density at or above which ThresholdCrossing stops.
const Threshold = 0.5

// Policy selects the stopping rule applied to each traversed cell.
type Policy uint8

const (
	// FirstSolid stops at the first cell that is not exactly empty.
	FirstSolid Policy = iota
	// LastEmptyBeforeSolid walks like FirstSolid but, when the stopping cell
	// is fully solid, reports the cell visited just before it.
	LastEmptyBeforeSolid
	// ThresholdCrossing stops at the first cell with density >= Threshold.
	ThresholdCrossing
)

func (p Policy) String() string {
	switch p {
	case FirstSolid:
		return "first_solid"
	case LastEmptyBeforeSolid:
		return "last_empty_before_solid"
	case ThresholdCrossing:
		return "threshold_crossing"
	default:
		return "unknown"
	}
}

// Result describes where a cast ended.
type Result struct {
	// Hit is false when the distance budget ran out first.
	Hit bool
	// Cell is the reported cell. Without a hit it is the last cell reached
	// within the budget (the origin cell if none was).
	Cell terrain.Cell
	// Distance is the ray length at which the stopping cell was entered.
	Distance float32
}

// Cast walks from origin along dir until policy accepts an in-field cell or
// the walk would enter a cell beyond maxDistance. The origin cell is never
// tested and cells outside the field are skipped.
func Cast(f *terrain.Field, origin, dir vmath.Vec2, maxDistance float32, policy Policy) (Result, error) {
	res := Result{Cell: terrain.CellAt(origin)}

	t, err := NewTraverser(origin, dir)
	if err != nil {
		return res, err
	}
	if math.IsNaN(float64(maxDistance)) || maxDistance <= 0 {
		return res, nil
	}
	// Past the reach limit no in-field cell can be entered.
	maxDistance = min(maxDistance, reachLimit(f, origin))

	var prev terrain.Cell
	for {
		before := t.Cell()
		t.Next()
		if t.Distance() > maxDistance {
			return res, nil
		}
		c := t.Cell()
		res.Cell = c
		res.Distance = t.Distance()
		prev = before

		if !f.InBounds(c.X, c.Y) {
			continue
		}
		if stops(f, c, policy) {
			res.Hit = true
			break
		}
	}

	if policy == LastEmptyBeforeSolid && f.IsFull(res.Cell.X, res.Cell.Y) {
		res.Cell = prev
	}
	return res, nil
}

func stops(f *terrain.Field, c terrain.Cell, policy Policy) bool {
	switch policy {
	case ThresholdCrossing:
		v, _ := f.Get(c.X, c.Y)
		return v >= Threshold
	default:
		return !f.IsEmpty(c.X, c.Y)
	}
}

// reachLimit bounds every walk: past the farthest field corner (plus a cell
// diagonal) no in-field cell can be entered any more.
func reachLimit(f *terrain.Field, origin vmath.Vec2) float32 {
	w, h := float32(f.Width()), float32(f.Height())
	var far float32
	for _, corner := range []vmath.Vec2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}} {
		if d := corner.Sub(origin).Len(); d > far {
			far = d
		}
	}
	return far + 2
}
