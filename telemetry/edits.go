package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/carve/editor"
)

// EditRecord is one row of edits.csv.
type EditRecord struct {
	Frame      int64   `csv:"frame"`
	TimeSec    float64 `csv:"time"`
	Tool       string  `csv:"tool"`
	Action     string  `csv:"action"`
	Op         string  `csv:"op"`
	TargetX    int     `csv:"target_x"`
	TargetY    int     `csv:"target_y"`
	Size       int     `csv:"size"`
	Blend      int     `csv:"blend"`
	DurationUS float64 `csv:"duration_us"`
	MassDelta  float64 `csv:"mass_delta"`
	Error      string  `csv:"error,omitempty"`
}

// NewEditRecord flattens an applied edit for CSV export.
func NewEditRecord(frame int64, timeSec float64, e editor.Edit, dur time.Duration, massDelta float32, err error) EditRecord {
	r := EditRecord{
		Frame:      frame,
		TimeSec:    timeSec,
		Tool:       e.Tool.String(),
		Action:     e.Action.String(),
		Op:         e.Op.String(),
		TargetX:    e.Target.X,
		TargetY:    e.Target.Y,
		Size:       e.Size,
		Blend:      e.Blend,
		DurationUS: float64(dur.Nanoseconds()) / 1e3,
		MassDelta:  float64(massDelta),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// LogValue implements slog.LogValuer for structured logging.
func (r EditRecord) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("frame", r.Frame),
		slog.String("tool", r.Tool),
		slog.String("action", r.Action),
		slog.String("op", r.Op),
		slog.Int("x", r.TargetX),
		slog.Int("y", r.TargetY),
		slog.Int("size", r.Size),
		slog.Int("blend", r.Blend),
		slog.Float64("duration_us", r.DurationUS),
		slog.Float64("mass_delta", r.MassDelta),
	}
	if r.Error != "" {
		attrs = append(attrs, slog.String("error", r.Error))
	}
	return slog.GroupValue(attrs...)
}
