package brush

import (
	"fmt"

	"github.com/pthm-cable/carve/raycast"
	"github.com/pthm-cable/carve/terrain"
	"github.com/pthm-cable/carve/vmath"
)

type sprayHit struct {
	cell   terrain.Cell
	amount float32
}

// SprayDestruct casts a fan of rays from the stroke origin and erodes the
// first non-empty cell each ray reaches. Rays near the cone axis remove the
// most material.
func (b Brush) SprayDestruct(f *terrain.Field, s Stroke) error {
	return b.spray(f, s, raycast.FirstSolid, -1)
}

// SprayRestore deposits material on the last empty cell in front of each
// surface the fan reaches.
func (b Brush) SprayRestore(f *terrain.Field, s Stroke) error {
	return b.spray(f, s, raycast.LastEmptyBeforeSolid, 1)
}

func (b Brush) spray(f *terrain.Field, s Stroke, policy raycast.Policy, sign float32) error {
	if err := b.check(f, s); err != nil {
		return err
	}
	if b.ConeStep <= 0 || b.ConeAngle < 0 {
		return fmt.Errorf("%w: cone angle %.2f step %.2f", ErrInvalidBrush, b.ConeAngle, b.ConeStep)
	}
	if _, err := raycast.NewTraverser(s.Origin, s.Dir); err != nil {
		return fmt.Errorf("spray: %w", err)
	}

	// Every ray sees the field as it was before the edit.
	hits := make([]sprayHit, 0, 64)
	steps := int(2*b.ConeAngle/b.ConeStep + 1e-4)
	for k := 0; k <= steps; k++ {
		angle := -b.ConeAngle + float32(k)*b.ConeStep
		dir := s.Dir.Rotate(vmath.DegToRad(angle))
		res, err := raycast.Cast(f, s.Origin, dir, s.Reach, policy)
		if err != nil || !res.Hit {
			continue
		}
		hits = append(hits, sprayHit{cell: res.Cell, amount: vmath.Gaussian(b.coneOffset(angle)) - b.SprayBias})
	}
	if len(hits) == 0 {
		return nil
	}

	// Stage per hit cell; the fan touches at most one cell per ray, so a
	// sparse map stays far smaller than the hits' bounding box.
	staged := make(map[terrain.Cell]float32, len(hits))
	order := make([]terrain.Cell, 0, len(hits))
	for _, h := range hits {
		if _, ok := staged[h.cell]; !ok {
			order = append(order, h.cell)
		}
		staged[h.cell] += h.amount
	}

	for _, c := range order {
		_ = f.Add(c.X, c.Y, sign*staged[c])
	}
	return nil
}

// coneOffset maps a ray angle onto [-1,0] for the left half of the cone and
// [0,1] for the right half.
func (b Brush) coneOffset(angle float32) float32 {
	if b.ConeAngle == 0 {
		return 0
	}
	if angle < 0 {
		return vmath.MapValue(angle, -b.ConeAngle, 0, -1, 0)
	}
	return vmath.MapValue(angle, 0, b.ConeAngle, 0, 1)
}
