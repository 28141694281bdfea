package main

import (
	"github.com/pthm-cable/carve/config"
	"github.com/pthm-cable/carve/terrain"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tunable generate parameters. Octaves stays
// fixed at the base config value since CMA-ES works on continuous values.
func NewParamVector(base config.GenerateConfig) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "scale", Path: "generate.scale", Min: 0.002, Max: 0.08, Default: base.Scale},
			{Name: "lacunarity", Path: "generate.lacunarity", Min: 1.5, Max: 4.0, Default: base.Lacunarity},
			{Name: "gain", Path: "generate.gain", Min: 0.2, Max: 0.9, Default: base.Gain},
			{Name: "threshold", Path: "generate.threshold", Min: 0.2, Max: 0.8, Default: base.Threshold},
			{Name: "softness", Path: "generate.softness", Min: 0.0, Max: 0.5, Default: base.Softness},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = pv.clampOne(i, spec.Default)
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i := range pv.Specs {
		clamped[i] = pv.clampOne(i, v[i])
	}
	return clamped
}

func (pv *ParamVector) clampOne(i int, val float64) float64 {
	spec := pv.Specs[i]
	if val < spec.Min {
		return spec.Min
	}
	if val > spec.Max {
		return spec.Max
	}
	return val
}

// ApplyToConfig writes clamped parameter values into the generate section.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(g *config.GenerateConfig, values []float64) {
	clamped := pv.Clamp(values)
	g.Scale = clamped[0]
	g.Lacunarity = clamped[1]
	g.Gain = clamped[2]
	g.Threshold = clamped[3]
	g.Softness = clamped[4]
}

// NoiseParams converts a generate section to field noise parameters.
func NoiseParams(g config.GenerateConfig) terrain.NoiseParams {
	return terrain.NoiseParams{
		Scale:      float32(g.Scale),
		Octaves:    g.Octaves,
		Lacunarity: float32(g.Lacunarity),
		Gain:       float32(g.Gain),
		Threshold:  float32(g.Threshold),
		Softness:   float32(g.Softness),
	}
}
