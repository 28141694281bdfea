package terrain

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/carve/vmath"
)

// NoiseParams shapes the procedural starting terrain.
type NoiseParams struct {
	Scale      float32 // base frequency in cycles per cell
	Octaves    int
	Lacunarity float32 // frequency multiplier per octave
	Gain       float32 // amplitude multiplier per octave
	Threshold  float32 // normalised noise level that maps to density 0.5
	Softness   float32 // width of the transition band (0 = hard solid/void edges)
}

// Generate overwrites the field with fractal simplex noise shaped into
// densities. The same seed and params always produce the same field.
func (f *Field) Generate(seed int64, p NoiseParams) {
	noise := opensimplex.NewNormalized32(seed)
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}

	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			n := fbm(noise, float32(x), float32(y), p, octaves)
			f.data[y*f.w+x] = shape(n, p.Threshold, p.Softness)
		}
	}
}

// fbm sums octaves of normalised noise and rescales the result to [0,1].
func fbm(noise opensimplex.Noise32, x, y float32, p NoiseParams, octaves int) float32 {
	var sum, norm float32
	freq := p.Scale
	amp := float32(1)
	for o := 0; o < octaves; o++ {
		sum += noise.Eval2(x*freq, y*freq) * amp
		norm += amp
		freq *= p.Lacunarity
		amp *= p.Gain
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func shape(n, threshold, softness float32) float32 {
	if softness <= 0 {
		if n >= threshold {
			return 1
		}
		return 0
	}
	return vmath.Clamp01((n-threshold)/softness + 0.5)
}

// ClearDisc empties every cell within radius of center. Used to give the
// player open space after generating terrain.
func (f *Field) ClearDisc(center Cell, radius int) {
	r2 := radius * radius
	for j := -radius; j <= radius; j++ {
		for i := -radius; i <= radius; i++ {
			if i*i+j*j > r2 {
				continue
			}
			x, y := center.X+i, center.Y+j
			if f.InBounds(x, y) {
				f.data[y*f.w+x] = 0
			}
		}
	}
}
