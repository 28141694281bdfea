package editor

// Throttle limits how often a held trigger may edit the terrain. It is driven
// by the host's frame delta.
type Throttle struct {
	interval float32
	accum    float32
	ready    bool
}

// NewThrottle returns a gate that opens again interval seconds after each
// use. It starts open.
func NewThrottle(interval float32) *Throttle {
	return &Throttle{interval: interval, ready: true}
}

// Advance accounts for dt seconds of elapsed time. The gate opens on the
// first call after the accumulated time has passed the interval.
func (t *Throttle) Advance(dt float32) {
	if t.accum > t.interval {
		t.ready = true
		return
	}
	t.accum += dt
}

// Ready reports whether an edit may run now.
func (t *Throttle) Ready() bool { return t.ready }

// MarkUsed closes the gate and restarts the timer.
func (t *Throttle) MarkUsed() {
	t.ready = false
	t.accum = 0
}

// Interval returns the configured cadence in seconds.
func (t *Throttle) Interval() float32 { return t.interval }

// Buttons is the trigger state of one frame, indexed by Action.
type Buttons struct {
	Ctrl    bool
	Down    [actionCount]bool
	Pressed [actionCount]bool
}

// Fire picks the action to run this frame. Without ctrl a held button fires;
// with ctrl only a fresh press does. Either way the gate must be open, and
// the secondary button wins when both qualify.
func (t *Throttle) Fire(b Buttons) (Action, bool) {
	if !t.ready {
		return 0, false
	}
	for _, a := range [...]Action{Secondary, Primary} {
		if b.Ctrl && b.Pressed[a] || !b.Ctrl && b.Down[a] {
			return a, true
		}
	}
	return 0, false
}
