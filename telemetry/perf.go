package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one editor frame.
const (
	PhaseInput  = "input"
	PhaseTarget = "target"
	PhaseEdit   = "edit"
	PhaseUpload = "upload"
	PhaseStats  = "stats"
)

var phaseOrder = []string{PhaseInput, PhaseTarget, PhaseEdit, PhaseUpload, PhaseStats}

// PhaseNames returns the frame phases in execution order.
func PhaseNames() []string {
	return append([]string(nil), phaseOrder...)
}

// PerfSample holds timing data for a single frame update.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall-clock time between presented frames
	lastPresent     time.Time
	presentInterval time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame update.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent records the time a frame reached the screen.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame update time
	PhasePct map[string]float64

	// Update throughput, independent of vsync
	UpdatesPerSecond float64

	PresentInterval time.Duration
	FPS             float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentInterval > 0 {
		fps = float64(time.Second) / float64(p.presentInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:        make(map[string]time.Duration),
			PhasePct:        make(map[string]float64),
			PresentInterval: p.presentInterval,
			FPS:             fps,
		}
	}

	var total, minFrame, maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var ups float64
	if avg > 0 {
		ups = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minFrame,
		MaxFrameDuration: maxFrame,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		UpdatesPerSecond: ups,
		PresentInterval:  p.presentInterval,
		FPS:              fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"updates_per_sec", int(s.UpdatesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("updates_per_sec", s.UpdatesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int64   `csv:"window_end"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	UpdatesPerSec float64 `csv:"updates_per_sec"`
	FPS           float64 `csv:"fps"`
	InputPct      float64 `csv:"input_pct"`
	TargetPct     float64 `csv:"target_pct"`
	EditPct       float64 `csv:"edit_pct"`
	UploadPct     float64 `csv:"upload_pct"`
	StatsPct      float64 `csv:"stats_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgFrameUS:    s.AvgFrameDuration.Microseconds(),
		MinFrameUS:    s.MinFrameDuration.Microseconds(),
		MaxFrameUS:    s.MaxFrameDuration.Microseconds(),
		UpdatesPerSec: s.UpdatesPerSecond,
		FPS:           s.FPS,
		InputPct:      s.PhasePct[PhaseInput],
		TargetPct:     s.PhasePct[PhaseTarget],
		EditPct:       s.PhasePct[PhaseEdit],
		UploadPct:     s.PhasePct[PhaseUpload],
		StatsPct:      s.PhasePct[PhaseStats],
	}
}
