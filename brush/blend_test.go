package brush

import (
	"fmt"
	"math"
	"testing"

	"github.com/pthm-cable/carve/terrain"
)

var strategies = []Strategy{StrategyReference, StrategySummedArea, StrategySeparable}

func blendAll(t *testing.T, b Brush, base *terrain.Field, s Stroke) []*terrain.Field {
	t.Helper()
	out := make([]*terrain.Field, len(strategies))
	for i, st := range strategies {
		f := clone(base)
		if err := b.Blend(f, s, st); err != nil {
			t.Fatalf("%s: %v", st, err)
		}
		out[i] = f
	}
	return out
}

func maxDiff(a, b *terrain.Field) (float64, int) {
	av, bv := a.Values(), b.Values()
	var worst float64
	at := -1
	for i := range av {
		if d := math.Abs(float64(av[i] - bv[i])); d > worst {
			worst, at = d, i
		}
	}
	return worst, at
}

func TestBlendStrategiesEquivalent(t *testing.T) {
	base := noiseField(160, 160, 17)
	tests := []struct {
		size, blend int
	}{
		{4, 1}, {10, 3}, {24, 5}, {6, 9}, {40, 2},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("size%d_blend%d", tc.size, tc.blend), func(t *testing.T) {
			s := Stroke{Target: terrain.Cell{X: 80, Y: 80}, Size: tc.size, Blend: tc.blend}
			got := blendAll(t, Default(), base, s)
			for i := 1; i < len(got); i++ {
				if d, at := maxDiff(got[0], got[i]); d > 1e-4 {
					t.Errorf("%s differs from reference by %g at cell %d", strategies[i], d, at)
				}
			}
		})
	}
}

func TestBlendStrategiesAgreeAtEdges(t *testing.T) {
	base := noiseField(64, 64, 3)
	for _, edges := range []EdgePolicy{EdgeEmpty, EdgeClamp} {
		b := Default()
		b.Edges = edges
		for _, target := range []terrain.Cell{{X: 0, Y: 0}, {X: 63, Y: 10}, {X: 30, Y: 62}} {
			s := Stroke{Target: target, Size: 9, Blend: 4}
			got := blendAll(t, b, base, s)
			for i := 1; i < len(got); i++ {
				if d, at := maxDiff(got[0], got[i]); d > 1e-4 {
					t.Errorf("%s %v: %s differs by %g at cell %d", edges, target, strategies[i], d, at)
				}
			}
		}
	}
}

func TestBlendChangesSomething(t *testing.T) {
	base := noiseField(128, 128, 17)
	s := Stroke{Target: terrain.Cell{X: 64, Y: 64}, Size: 20, Blend: 4}
	f := clone(base)
	if err := Default().BlendSeparable(f, s); err != nil {
		t.Fatal(err)
	}
	if d, _ := maxDiff(base, f); d == 0 {
		t.Error("expected the blend to modify the noisy field")
	}
}

func TestBlendLeavesOutsideRadiusUnchanged(t *testing.T) {
	base := noiseField(96, 96, 8)
	s := Stroke{Target: terrain.Cell{X: 48, Y: 50}, Size: 11, Blend: 3}
	for _, st := range strategies {
		f := clone(base)
		if err := Default().Blend(f, s, st); err != nil {
			t.Fatal(err)
		}
		for y := 0; y < 96; y++ {
			for x := 0; x < 96; x++ {
				dx, dy := x-48, y-50
				if dx*dx+dy*dy < 121 {
					continue
				}
				a, _ := base.Get(x, y)
				b, _ := f.Get(x, y)
				if a != b {
					t.Fatalf("%s: (%d,%d) outside the ball changed %f -> %f", st, x, y, a, b)
				}
			}
		}
	}
}

func TestBlendUniformFieldIsFixedPoint(t *testing.T) {
	// EaseInOutCubic maps 0, 0.5 and 1 onto themselves.
	for _, v := range []float32{0, 0.5, 1} {
		for _, st := range strategies {
			f := terrain.MustNew(48, 48)
			f.Fill(v)
			s := Stroke{Target: terrain.Cell{X: 24, Y: 24}, Size: 10, Blend: 3}
			if err := Default().Blend(f, s, st); err != nil {
				t.Fatal(err)
			}
			for i, got := range f.Values() {
				if math.Abs(float64(got-v)) > 1e-6 {
					t.Fatalf("%s fill %v: cell %d became %f", st, v, i, got)
				}
			}
		}
	}
}

func TestBlendEdgePolicy(t *testing.T) {
	s := Stroke{Target: terrain.Cell{X: 0, Y: 0}, Size: 6, Blend: 3}

	empty := terrain.MustNew(32, 32)
	empty.Fill(1)
	if err := Default().BlendReference(empty, s); err != nil {
		t.Fatal(err)
	}
	if empty.IsFull(0, 0) {
		t.Error("with EdgeEmpty the corner should be pulled toward the void outside")
	}

	b := Default()
	b.Edges = EdgeClamp
	clamped := terrain.MustNew(32, 32)
	clamped.Fill(1)
	if err := b.BlendReference(clamped, s); err != nil {
		t.Fatal(err)
	}
	if clamped.Mass() != 32*32 {
		t.Errorf("with EdgeClamp a solid field stays solid, mass %f", clamped.Mass())
	}
}

func TestBlendUnknownStrategy(t *testing.T) {
	f := terrain.MustNew(16, 16)
	s := Stroke{Target: terrain.Cell{X: 8, Y: 8}, Size: 4, Blend: 1}
	if err := Default().Blend(f, s, Strategy(42)); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestSlidingSum(t *testing.T) {
	q := newSlidingSum(3)
	for _, v := range []float64{1, 2, 3} {
		q.push(v)
	}
	if q.sum != 6 {
		t.Fatalf("expected 6, got %f", q.sum)
	}
	q.slide(10)
	if q.sum != 15 {
		t.Errorf("expected 2+3+10=15, got %f", q.sum)
	}
	q.slide(0)
	if q.sum != 13 {
		t.Errorf("expected 3+10+0=13, got %f", q.sum)
	}
	q.reset()
	q.push(4)
	if q.sum != 4 {
		t.Errorf("expected reset window, got %f", q.sum)
	}
}

func benchmarkBlend(b *testing.B, st Strategy, size, blend int) {
	base := noiseField(512, 512, 1)
	f := clone(base)
	s := Stroke{Target: terrain.Cell{X: 256, Y: 256}, Size: size, Blend: blend}
	br := Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = br.Blend(f, s, st)
	}
}

func BenchmarkBlendReference(b *testing.B)  { benchmarkBlend(b, StrategyReference, 32, 5) }
func BenchmarkBlendSummedArea(b *testing.B) { benchmarkBlend(b, StrategySummedArea, 32, 5) }
func BenchmarkBlendSeparable(b *testing.B)  { benchmarkBlend(b, StrategySeparable, 32, 5) }

func BenchmarkBlendSeparableLarge(b *testing.B) { benchmarkBlend(b, StrategySeparable, 128, 8) }
