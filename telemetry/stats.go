package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	TimeSec          float64 `csv:"time"`

	// Edits during window
	Edits    int `csv:"edits"`
	Rejected int `csv:"rejected"` // operator returned an error
	Misses   int `csv:"misses"`   // trigger held but the ray reached nothing

	// Operator cost
	EditMeanUS float64 `csv:"edit_mean_us"`
	EditP50US  float64 `csv:"edit_p50_us"`
	EditP90US  float64 `csv:"edit_p90_us"`

	// Terrain at window end
	FieldMass      float64 `csv:"field_mass"`
	FieldMean      float64 `csv:"field_mean"`
	FieldStdDev    float64 `csv:"field_std"`
	FieldMin       float64 `csv:"field_min"`
	FieldMax       float64 `csv:"field_max"`
	FieldEmptyFrac float64 `csv:"field_empty_frac"`
	FieldFullFrac  float64 `csv:"field_full_frac"`
}

// SetField copies a field summary into the flat CSV columns.
func (s *WindowStats) SetField(f FieldStats) {
	s.FieldMass = f.Mass
	s.FieldMean = f.Mean
	s.FieldStdDev = f.StdDev
	s.FieldMin = f.Min
	s.FieldMax = f.Max
	s.FieldEmptyFrac = f.EmptyFrac
	s.FieldFullFrac = f.FullFrac
}

// Field returns the field summary held in the flat columns.
func (s WindowStats) Field() FieldStats {
	return FieldStats{
		Mass:      s.FieldMass,
		Mean:      s.FieldMean,
		StdDev:    s.FieldStdDev,
		Min:       s.FieldMin,
		Max:       s.FieldMax,
		EmptyFrac: s.FieldEmptyFrac,
		FullFrac:  s.FieldFullFrac,
	}
}

// FieldStats summarises the density distribution of a field.
type FieldStats struct {
	Mass      float64
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	EmptyFrac float64 // cells exactly 0
	FullFrac  float64 // cells exactly 1
}

// ComputeFieldStats summarises densities given in row-major order.
func ComputeFieldStats(values []float32) FieldStats {
	n := len(values)
	if n == 0 {
		return FieldStats{}
	}

	xs := make([]float64, n)
	var empty, full int
	for i, v := range values {
		xs[i] = float64(v)
		switch v {
		case 0:
			empty++
		case 1:
			full++
		}
	}

	var fs FieldStats
	fs.Mass = floats.Sum(xs)
	if n > 1 {
		fs.Mean, fs.StdDev = stat.MeanStdDev(xs, nil)
	} else {
		fs.Mean = xs[0]
	}
	fs.Min = floats.Min(xs)
	fs.Max = floats.Max(xs)
	fs.EmptyFrac = float64(empty) / float64(n)
	fs.FullFrac = float64(full) / float64(n)
	return fs
}

// LogValue implements slog.LogValuer for structured logging.
func (f FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("mass", f.Mass),
		slog.Float64("mean", f.Mean),
		slog.Float64("std", f.StdDev),
		slog.Float64("min", f.Min),
		slog.Float64("max", f.Max),
		slog.Float64("empty_frac", f.EmptyFrac),
		slog.Float64("full_frac", f.FullFrac),
	)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDurationStats calculates mean, median and p90 of edit durations.
func ComputeDurationStats(values []float64) (mean, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("time", s.TimeSec),
		slog.Int("edits", s.Edits),
		slog.Int("rejected", s.Rejected),
		slog.Int("misses", s.Misses),
		slog.Float64("edit_mean_us", s.EditMeanUS),
		slog.Float64("edit_p50_us", s.EditP50US),
		slog.Float64("edit_p90_us", s.EditP90US),
		slog.Any("field", s.Field()),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"time", s.TimeSec,
		"edits", s.Edits,
		"rejected", s.Rejected,
		"misses", s.Misses,
		"edit_mean_us", s.EditMeanUS,
		"edit_p90_us", s.EditP90US,
		"field", s.Field(),
	)
}
