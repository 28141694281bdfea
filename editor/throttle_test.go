package editor

import "testing"

func TestThrottleStartsReady(t *testing.T) {
	th := NewThrottle(0.1)
	if !th.Ready() {
		t.Error("a fresh throttle should allow the first edit")
	}
}

func TestThrottleCadence(t *testing.T) {
	th := NewThrottle(0.1)
	th.MarkUsed()
	if th.Ready() {
		t.Fatal("expected closed gate after use")
	}

	th.Advance(0.06)
	th.Advance(0.06)
	if th.Ready() {
		t.Error("gate opens on the frame after the interval has passed")
	}
	th.Advance(0.01)
	if !th.Ready() {
		t.Error("expected open gate once more than the interval accumulated")
	}

	// Stays open until used.
	th.Advance(0.01)
	if !th.Ready() {
		t.Error("gate should stay open")
	}
	th.MarkUsed()
	th.Advance(0.01)
	if th.Ready() {
		t.Error("MarkUsed should restart the timer")
	}
}

func TestThrottleDefaultCadence(t *testing.T) {
	th := NewThrottle(2.0 / 60.0)
	th.MarkUsed()
	frames := 0
	for !th.Ready() {
		th.Advance(1.0 / 60.0)
		frames++
		if frames > 10 {
			t.Fatal("throttle never opened")
		}
	}
	if frames < 3 || frames > 4 {
		t.Errorf("expected an edit every 3-4 frames at 60 fps, got %d", frames)
	}
}

func TestThrottleFire(t *testing.T) {
	held := func(a Action) (b Buttons) {
		b.Down[a] = true
		return b
	}
	pressed := func(a Action) (b Buttons) {
		b.Ctrl = true
		b.Down[a] = true
		b.Pressed[a] = true
		return b
	}

	tests := []struct {
		name   string
		b      Buttons
		want   Action
		wantOK bool
	}{
		{"nothing", Buttons{}, 0, false},
		{"held primary", held(Primary), Primary, true},
		{"held secondary", held(Secondary), Secondary, true},
		{"both held prefers secondary", Buttons{Down: [actionCount]bool{true, true}}, Secondary, true},
		{"ctrl press", pressed(Primary), Primary, true},
		{"ctrl held without press", Buttons{Ctrl: true, Down: [actionCount]bool{true, false}}, 0, false},
		{"ctrl both pressed prefers secondary", Buttons{Ctrl: true, Pressed: [actionCount]bool{true, true}}, Secondary, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			th := NewThrottle(0.1)
			a, ok := th.Fire(tc.b)
			if ok != tc.wantOK || (ok && a != tc.want) {
				t.Errorf("Fire = %s, %v; want %s, %v", a, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestThrottleFireGatesPresses(t *testing.T) {
	th := NewThrottle(0.1)
	th.MarkUsed()

	var b Buttons
	b.Ctrl = true
	b.Pressed[Primary] = true
	if _, ok := th.Fire(b); ok {
		t.Error("a ctrl press must wait for the gate like a held button")
	}

	b = Buttons{}
	b.Down[Secondary] = true
	if _, ok := th.Fire(b); ok {
		t.Error("a held button must wait for the gate")
	}

	th.Advance(0.2)
	th.Advance(0.01)
	if a, ok := th.Fire(b); !ok || a != Secondary {
		t.Errorf("expected secondary once the gate opened, got %s, %v", a, ok)
	}
}
