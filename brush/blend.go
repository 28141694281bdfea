package brush

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/carve/terrain"
	"github.com/pthm-cable/carve/vmath"
)

// Strategy selects how the blend ball computes its window means. All
// strategies produce the same field up to float summation order.
type Strategy uint8

const (
	StrategyReference  Strategy = iota // rescan every window
	StrategySummedArea                 // prefix-sum table, four lookups per window
	StrategySeparable                  // two sliding-window passes
)

// StrategyNames returns the config names of all strategies, in constant order.
func StrategyNames() []string {
	return []string{"reference", "summed_area", "separable"}
}

func (s Strategy) String() string {
	names := StrategyNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// ParseStrategy maps a config or flag name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range StrategyNames() {
		if strings.EqualFold(n, name) {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown blend strategy %q", name)
}

// Blend smooths the terrain around the stroke target using the given strategy.
func (b Brush) Blend(f *terrain.Field, s Stroke, strategy Strategy) error {
	switch strategy {
	case StrategyReference:
		return b.BlendReference(f, s)
	case StrategySummedArea:
		return b.BlendSummedArea(f, s)
	case StrategySeparable:
		return b.BlendSeparable(f, s)
	default:
		return fmt.Errorf("%w: strategy %d", ErrInvalidBrush, strategy)
	}
}

// rimWeight is 0 over the inner half of the brush area and ramps to 1 at the
// rim, so the centre takes the smoothed value and the rim keeps its own.
func rimWeight(d2, r2 int) float32 {
	return max(2*float32(d2)/float32(r2)-1, 0)
}

// BlendReference averages a (2*Blend+1)^2 window around every cell inside the
// brush, eases the mean and mixes it into the cell by rimWeight. Results are
// staged and committed after the whole ball is computed.
func (b Brush) BlendReference(f *terrain.Field, s Stroke) error {
	if err := b.check(f, s); err != nil {
		return err
	}
	src := b.sampler(f)
	r, r2 := s.Size, s.Size*s.Size
	tx, ty := s.Target.X, s.Target.Y
	n := float64((2*s.Blend + 1) * (2*s.Blend + 1))

	staged := terrain.NewSquareScratch[float32](r)
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			d2 := x*x + y*y
			if d2 >= r2 {
				continue
			}
			var sum float64
			for oy := -s.Blend; oy <= s.Blend; oy++ {
				for ox := -s.Blend; ox <= s.Blend; ox++ {
					sum += float64(src.at(tx+x+ox, ty+y+oy))
				}
			}
			eased := vmath.EaseInOutCubic(float32(sum / n))
			t := rimWeight(d2, r2)
			staged.Set(x, y, src.at(tx+x, ty+y)*t+eased*(1-t))
		}
	}

	commit(f, s.Target, r, staged)
	return nil
}

// BlendSummedArea builds a prefix-sum table over the brush plus blend margin
// and reads every window sum with four lookups.
func (b Brush) BlendSummedArea(f *terrain.Field, s Stroke) error {
	if err := b.check(f, s); err != nil {
		return err
	}
	src := b.sampler(f)
	r, r2 := s.Size, s.Size*s.Size
	tx, ty := s.Target.X, s.Target.Y
	half := r + s.Blend
	side := 2*half + 1
	stride := side + 1
	n := float64((2*s.Blend + 1) * (2*s.Blend + 1))

	// sums[(y+1)*stride+(x+1)] holds the total of region cells [0,x]x[0,y];
	// row and column zero stay 0.
	sums := make([]float64, stride*stride)
	for y := 0; y < side; y++ {
		var row float64
		for x := 0; x < side; x++ {
			row += float64(src.at(tx+x-half, ty+y-half))
			sums[(y+1)*stride+x+1] = sums[y*stride+x+1] + row
		}
	}

	staged := terrain.NewSquareScratch[float32](r)
	for y := -r; y <= r; y++ {
		y0, y1 := y+half-s.Blend, y+half+s.Blend+1
		for x := -r; x <= r; x++ {
			d2 := x*x + y*y
			if d2 >= r2 {
				continue
			}
			x0, x1 := x+half-s.Blend, x+half+s.Blend+1
			sum := sums[y1*stride+x1] - sums[y0*stride+x1] - sums[y1*stride+x0] + sums[y0*stride+x0]
			eased := vmath.EaseInOutCubic(float32(sum / n))
			staged.Set(x, y, vmath.Lerp(eased, src.at(tx+x, ty+y), rimWeight(d2, r2)))
		}
	}

	commit(f, s.Target, r, staged)
	return nil
}

// BlendSeparable splits the square window into a horizontal and a vertical
// sliding-window pass. The horizontal pass covers Size+Blend rows so the
// vertical pass has blurred rows available at the rim.
func (b Brush) BlendSeparable(f *terrain.Field, s Stroke) error {
	if err := b.check(f, s); err != nil {
		return err
	}
	src := b.sampler(f)
	r, r2 := s.Size, s.Size*s.Size
	tx, ty := s.Target.X, s.Target.Y
	ext := r + s.Blend
	width := 2*s.Blend + 1

	rows := terrain.NewScratch[float64](terrain.Cell{X: -r, Y: -ext}, terrain.Cell{X: r, Y: ext})
	q := newSlidingSum(width)

	for y := -ext; y <= ext; y++ {
		q.reset()
		for ox := -s.Blend; ox <= s.Blend; ox++ {
			q.push(float64(src.at(tx-r+ox, ty+y)))
		}
		rows.Set(-r, y, q.sum)
		for x := -r + 1; x <= r; x++ {
			q.slide(float64(src.at(tx+x+s.Blend, ty+y)))
			rows.Set(x, y, q.sum)
		}
	}

	// The vertical pass writes in place: row y+Blend is always read before
	// row y+Blend is overwritten, and the queue keeps the old values.
	for x := -r; x <= r; x++ {
		q.reset()
		for oy := -s.Blend; oy <= s.Blend; oy++ {
			q.push(rows.Get(x, -r+oy))
		}
		rows.Set(x, -r, q.sum)
		for y := -r + 1; y <= r; y++ {
			q.slide(rows.Get(x, y+s.Blend))
			rows.Set(x, y, q.sum)
		}
	}

	n := float64(width * width)
	staged := terrain.NewSquareScratch[float32](r)
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			d2 := x*x + y*y
			if d2 >= r2 {
				continue
			}
			eased := vmath.EaseInOutCubic(float32(rows.Get(x, y) / n))
			staged.Set(x, y, vmath.Lerp(eased, src.at(tx+x, ty+y), rimWeight(d2, r2)))
		}
	}

	commit(f, s.Target, r, staged)
	return nil
}

// commit copies the staged cells strictly inside radius r back into the field.
// Cells outside the field are dropped.
func commit(f *terrain.Field, target terrain.Cell, r int, staged *terrain.Scratch[float32]) {
	r2 := r * r
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y >= r2 || !f.InBounds(target.X+x, target.Y+y) {
				continue
			}
			_ = f.Set(target.X+x, target.Y+y, staged.Get(x, y))
		}
	}
}

// slidingSum is a fixed-size FIFO of samples with a running total.
type slidingSum struct {
	buf  []float64
	head int
	n    int
	sum  float64
}

func newSlidingSum(size int) *slidingSum {
	return &slidingSum{buf: make([]float64, size)}
}

func (q *slidingSum) reset() {
	q.head, q.n, q.sum = 0, 0, 0
}

// push appends a sample while the window is filling.
func (q *slidingSum) push(v float64) {
	q.buf[(q.head+q.n)%len(q.buf)] = v
	q.n++
	q.sum += v
}

// slide drops the oldest sample and appends v.
func (q *slidingSum) slide(v float64) {
	q.sum += v - q.buf[q.head]
	q.buf[q.head] = v
	q.head = (q.head + 1) % len(q.buf)
}
