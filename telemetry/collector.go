package telemetry

import "time"

// Collector accumulates edit events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec    float64
	windowDurationFrames int64
	dt                   float32

	// Current window tracking
	windowStartFrame int64

	// Event counters for current window
	edits     int
	rejected  int
	misses    int
	durations []float64 // microseconds of successful edits
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in editor seconds
// dt: seconds per frame (used for frame-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	framesPerWindow := int64(windowDurationSec / float64(dt))
	if framesPerWindow < 1 {
		framesPerWindow = 1
	}

	return &Collector{
		windowDurationSec:    windowDurationSec,
		windowDurationFrames: framesPerWindow,
		dt:                   dt,
	}
}

// RecordEdit records an edit attempt that reached an operator. A non-nil err
// counts the edit as rejected.
func (c *Collector) RecordEdit(dur time.Duration, err error) {
	if err != nil {
		c.rejected++
		return
	}
	c.edits++
	c.durations = append(c.durations, float64(dur.Nanoseconds())/1e3)
}

// RecordMiss records a trigger whose ray reached no terrain.
func (c *Collector) RecordMiss() {
	c.misses++
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int64) bool {
	return currentFrame-c.windowStartFrame >= c.windowDurationFrames
}

// Flush produces a WindowStats and resets counters for the next window.
// values are the field densities at the end of the window.
func (c *Collector) Flush(currentFrame int64, values []float32) WindowStats {
	mean, p50, p90 := ComputeDurationStats(c.durations)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		TimeSec:          float64(currentFrame) * float64(c.dt),

		Edits:    c.edits,
		Rejected: c.rejected,
		Misses:   c.misses,

		EditMeanUS: mean,
		EditP50US:  p50,
		EditP90US:  p90,
	}
	stats.SetField(ComputeFieldStats(values))

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.edits = 0
	c.rejected = 0
	c.misses = 0
	c.durations = c.durations[:0]

	return stats
}

// WindowDurationFrames returns the number of frames per window.
func (c *Collector) WindowDurationFrames() int64 {
	return c.windowDurationFrames
}
