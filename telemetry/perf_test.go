package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few frames
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseTarget)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseEdit)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseTarget]; !ok {
		t.Error("expected target phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseEdit]; !ok {
		t.Error("expected edit phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseTarget)
		pc.EndFrame()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}

	if stats.UpdatesPerSecond <= 0 {
		t.Error("expected positive updates per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	// Slow phase should take more % than fast
	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	// Second call measures the interval
	pc.RecordPresent()

	stats := pc.Stats()

	if stats.PresentInterval < 15*time.Millisecond {
		t.Errorf("expected present interval >= 15ms, got %v", stats.PresentInterval)
	}

	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}

	// Sleep only guarantees a lower bound, so just cap the rate
	if stats.FPS > 70 {
		t.Errorf("expected FPS <= 70 with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgFrameDuration: 2 * time.Millisecond,
		MinFrameDuration: time.Millisecond,
		MaxFrameDuration: 5 * time.Millisecond,
		PhasePct:         map[string]float64{PhaseEdit: 40, PhaseUpload: 25},
		UpdatesPerSecond: 500,
	}

	row := s.ToCSV(1200)
	if row.WindowEnd != 1200 {
		t.Errorf("window end = %d, want 1200", row.WindowEnd)
	}
	if row.AvgFrameUS != 2000 || row.MinFrameUS != 1000 || row.MaxFrameUS != 5000 {
		t.Errorf("unexpected frame columns %+v", row)
	}
	if row.EditPct != 40 || row.UploadPct != 25 || row.InputPct != 0 {
		t.Errorf("unexpected phase columns %+v", row)
	}
}
