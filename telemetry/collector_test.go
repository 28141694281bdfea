package telemetry

import (
	"errors"
	"testing"
	"time"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.25)
	if c.WindowDurationFrames() != 4 {
		t.Fatalf("expected 4 frames per window, got %d", c.WindowDurationFrames())
	}
	if c.ShouldFlush(3) {
		t.Error("window should not flush before 4 frames")
	}
	if !c.ShouldFlush(4) {
		t.Error("window should flush at 4 frames")
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0, 1.0/60)
	if c.WindowDurationFrames() != 1 {
		t.Errorf("expected window clamped to 1 frame, got %d", c.WindowDurationFrames())
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.5)

	c.RecordEdit(10*time.Microsecond, nil)
	c.RecordEdit(30*time.Microsecond, nil)
	c.RecordEdit(time.Millisecond, errors.New("out of bounds"))
	c.RecordMiss()
	c.RecordMiss()

	stats := c.Flush(2, []float32{0, 1, 1, 0})

	if stats.Edits != 2 || stats.Rejected != 1 || stats.Misses != 2 {
		t.Errorf("counters = %d/%d/%d, want 2/1/2", stats.Edits, stats.Rejected, stats.Misses)
	}
	if stats.EditMeanUS != 20 {
		t.Errorf("mean edit = %v us, want 20", stats.EditMeanUS)
	}
	if stats.TimeSec != 1.0 {
		t.Errorf("time = %v, want 1.0", stats.TimeSec)
	}
	if stats.WindowStartFrame != 0 || stats.WindowEndFrame != 2 {
		t.Errorf("window = [%d, %d], want [0, 2]", stats.WindowStartFrame, stats.WindowEndFrame)
	}
	if stats.FieldMass != 2 || stats.FieldEmptyFrac != 0.5 {
		t.Errorf("field columns = %+v", stats.Field())
	}

	// Counters reset for the next window
	next := c.Flush(4, []float32{0})
	if next.Edits != 0 || next.Rejected != 0 || next.Misses != 0 || next.EditMeanUS != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartFrame != 2 {
		t.Errorf("next window starts at %d, want 2", next.WindowStartFrame)
	}
}
