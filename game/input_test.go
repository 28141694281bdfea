package game

import (
	"testing"

	"github.com/pthm-cable/carve/config"
	"github.com/pthm-cable/carve/editor"
	"github.com/pthm-cable/carve/vmath"
)

func headlessGame(t *testing.T) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Generate.Enabled = false
	g, err := NewGameWithOptions(Options{Seed: 1, Headless: true, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(g.Unload)
	return g
}

// aimAt returns a frame of input with the mouse over field point p.
func aimAt(g *Game, p vmath.Vec2) Input {
	var in Input
	in.Mouse.X, in.Mouse.Y = g.camera.WorldToScreen(p.X, p.Y)
	return in
}

func TestHeldPaintRepeatsEveryFrame(t *testing.T) {
	g := headlessGame(t)
	in := aimAt(g, vmath.V(100.5, 100.5))
	in.Ctrl = true
	in.Paint = true

	for frame := 0; frame < 3; frame++ {
		g.session.Clear()
		g.step(in, g.dt)
		if !g.session.Field().IsFull(100, 100) {
			t.Fatalf("frame %d: held paint should fill the cursor cell", frame)
		}
	}
}

func TestCtrlPressWaitsForThrottle(t *testing.T) {
	g := headlessGame(t)
	s := g.session
	_ = s.SelectTool(editor.ToolCircleFull)
	for y := 0; y < s.Field().Height(); y++ {
		_ = s.Field().Set(300, y, 1)
	}
	s.SetPlayer(vmath.V(250.5, 256.5))

	in := aimAt(g, vmath.V(400.5, 256.5))
	in.Ctrl = true
	in.Buttons.Ctrl = true
	in.Buttons.Down[editor.Primary] = true
	in.Buttons.Pressed[editor.Primary] = true

	g.step(in, g.dt)
	if g.Edits() != 1 {
		t.Fatalf("first press should edit, edits = %d", g.Edits())
	}

	// A second press on the very next frame lands inside the throttle interval.
	g.step(in, g.dt)
	if g.Edits() != 1 {
		t.Errorf("press inside the throttle interval should not edit, edits = %d", g.Edits())
	}
}
