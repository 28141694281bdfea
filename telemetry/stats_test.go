package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDurationStats(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	mean, p50, p90 := ComputeDurationStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if math.Abs(p50-55) > 0.001 {
		t.Errorf("p50 = %v, want 55", p50)
	}
	if math.Abs(p90-91) > 0.001 {
		t.Errorf("p90 = %v, want 91", p90)
	}

	// Input order must not matter and must not be modified
	shuffled := []float64{100, 10, 90, 20, 80, 30, 70, 40, 60, 50}
	if _, p50b, _ := ComputeDurationStats(shuffled); p50b != p50 {
		t.Errorf("p50 depends on order: %v vs %v", p50b, p50)
	}
	if shuffled[0] != 100 {
		t.Error("input slice was sorted in place")
	}
}

func TestComputeDurationStatsEmpty(t *testing.T) {
	mean, p50, p90 := ComputeDurationStats(nil)

	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeFieldStats(t *testing.T) {
	values := []float32{0, 0, 0.5, 1}
	fs := ComputeFieldStats(values)

	if fs.Mass != 1.5 {
		t.Errorf("mass = %v, want 1.5", fs.Mass)
	}
	if fs.Mean != 0.375 {
		t.Errorf("mean = %v, want 0.375", fs.Mean)
	}
	if fs.Min != 0 || fs.Max != 1 {
		t.Errorf("range = [%v, %v], want [0, 1]", fs.Min, fs.Max)
	}
	if fs.EmptyFrac != 0.5 || fs.FullFrac != 0.25 {
		t.Errorf("fractions = %v/%v, want 0.5/0.25", fs.EmptyFrac, fs.FullFrac)
	}

	// Sample standard deviation
	want := math.Sqrt((2*0.375*0.375 + 0.125*0.125 + 0.625*0.625) / 3)
	if math.Abs(fs.StdDev-want) > 1e-9 {
		t.Errorf("std = %v, want %v", fs.StdDev, want)
	}
}

func TestComputeFieldStatsSmall(t *testing.T) {
	if fs := ComputeFieldStats(nil); fs != (FieldStats{}) {
		t.Errorf("empty field should give zero stats, got %+v", fs)
	}

	fs := ComputeFieldStats([]float32{0.25})
	if fs.Mean != 0.25 || fs.StdDev != 0 || fs.Mass != 0.25 {
		t.Errorf("single cell stats %+v", fs)
	}
}

func TestWindowStatsFieldColumns(t *testing.T) {
	fs := FieldStats{Mass: 3, Mean: 0.5, StdDev: 0.1, Min: 0, Max: 1, EmptyFrac: 0.2, FullFrac: 0.3}
	var ws WindowStats
	ws.SetField(fs)
	if ws.FieldMass != 3 || ws.FieldFullFrac != 0.3 {
		t.Errorf("columns not filled: %+v", ws)
	}
	if ws.Field() != fs {
		t.Errorf("Field() = %+v, want %+v", ws.Field(), fs)
	}
}
