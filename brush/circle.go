package brush

import (
	"fmt"
	"math"

	"github.com/pthm-cable/carve/terrain"
	"github.com/pthm-cable/carve/vmath"
)

// stampCenter pulls the stamp back along the ray so most of the circle lands
// in front of the surface that was hit.
func stampCenter(s Stroke) terrain.Cell {
	return terrain.CellAt(s.Target.Vec().Sub(s.Dir.Scale(float32(s.Size - 2))))
}

// CircleFull sets every cell within Size of the stamp centre to 1 when solid
// is true and to 0 otherwise.
func (b Brush) CircleFull(f *terrain.Field, s Stroke, solid bool) error {
	if err := b.check(f, s); err != nil {
		return err
	}
	var v float32
	if solid {
		v = 1
	}
	c := stampCenter(s)
	r2 := s.Size * s.Size
	for j := -s.Size; j <= s.Size; j++ {
		for i := -s.Size; i <= s.Size; i++ {
			if i*i+j*j > r2 || !f.InBounds(c.X+i, c.Y+j) {
				continue
			}
			_ = f.Set(c.X+i, c.Y+j, v)
		}
	}
	return nil
}

// CircleFractional carves with a gaussian falloff: the centre loses
// 1-SoftCircleBias and the rim loses e^-1-SoftCircleBias.
func (b Brush) CircleFractional(f *terrain.Field, s Stroke) error {
	if err := b.check(f, s); err != nil {
		return err
	}
	c := stampCenter(s)
	r := float32(s.Size)
	r2 := s.Size * s.Size
	for j := -s.Size; j <= s.Size; j++ {
		for i := -s.Size; i <= s.Size; i++ {
			d2 := i*i + j*j
			if d2 > r2 || !f.InBounds(c.X+i, c.Y+j) {
				continue
			}
			d := vmath.MapValue(float32(math.Sqrt(float64(d2))), 0, r, 0, 1)
			_ = f.Add(c.X+i, c.Y+j, -(vmath.Gaussian(d) - b.SoftCircleBias))
		}
	}
	return nil
}

// Paint fills a solid disc of the given radius around center, clipped to the
// field. It is the free-hand painting tool and needs no ray.
func Paint(f *terrain.Field, center terrain.Cell, radius int) error {
	if radius <= 0 {
		return fmt.Errorf("%w: paint radius %d", ErrInvalidBrush, radius)
	}
	if err := f.CheckBounds(center.X, center.Y); err != nil {
		return err
	}
	r2 := radius * radius
	for j := -radius; j <= radius; j++ {
		for i := -radius; i <= radius; i++ {
			if i*i+j*j <= r2 && f.InBounds(center.X+i, center.Y+j) {
				_ = f.Set(center.X+i, center.Y+j, 1)
			}
		}
	}
	return nil
}
