package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/carve/editor"
	"github.com/pthm-cable/carve/vmath"
)

// Input is one frame of user input. The window loop fills it from raylib;
// the headless driver synthesises it.
type Input struct {
	Move   vmath.Vec2 // WASD, components in [-1, 1]
	Sprint bool
	Ctrl   bool

	Mouse vmath.Vec2 // screen position
	Wheel float32

	Buttons editor.Buttons

	Paint          bool // ctrl+middle held
	Clear          bool
	ToggleOverlays bool
	ResetCamera    bool
	Generate       bool
	Tool           int // 0 when no tool key was pressed, else 1-5

	Pan vmath.Vec2 // arrow keys, screen pixels
}

var toolKeys = [...]int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}

// readInput samples raylib for the current frame.
func readInput() Input {
	var in Input

	if rl.IsKeyDown(rl.KeyW) {
		in.Move.Y--
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Move.Y++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Move.X--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Move.X++
	}
	in.Sprint = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	in.Ctrl = rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)

	m := rl.GetMousePosition()
	in.Mouse = vmath.V(m.X, m.Y)
	in.Wheel = rl.GetMouseWheelMove()

	in.Buttons.Ctrl = in.Ctrl
	in.Buttons.Down[editor.Primary] = rl.IsMouseButtonDown(rl.MouseButtonLeft)
	in.Buttons.Down[editor.Secondary] = rl.IsMouseButtonDown(rl.MouseButtonRight)
	in.Buttons.Pressed[editor.Primary] = rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	in.Buttons.Pressed[editor.Secondary] = rl.IsMouseButtonPressed(rl.MouseButtonRight)
	in.Paint = in.Ctrl && rl.IsMouseButtonDown(rl.MouseButtonMiddle)

	in.Clear = rl.IsKeyPressed(rl.KeyEnter)
	in.ToggleOverlays = rl.IsKeyPressed(rl.KeySpace)
	in.ResetCamera = rl.IsKeyPressed(rl.KeyEscape)
	in.Generate = rl.IsKeyPressed(rl.KeyG)
	for i, k := range toolKeys {
		if rl.IsKeyPressed(k) {
			in.Tool = i + 1
		}
	}

	// Pan speed in screen pixels per frame
	const panSpeed = 8
	if rl.IsKeyDown(rl.KeyRight) {
		in.Pan.X += panSpeed
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		in.Pan.X -= panSpeed
	}
	if rl.IsKeyDown(rl.KeyDown) {
		in.Pan.Y += panSpeed
	}
	if rl.IsKeyDown(rl.KeyUp) {
		in.Pan.Y -= panSpeed
	}
	if !in.Ctrl && rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		in.Pan = in.Pan.Sub(vmath.V(d.X, d.Y))
	}

	return in
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-230, 20)
}

// handleInput applies one frame of input to the camera and session and
// returns the edit the triggers ask for, if any.
func (g *Game) handleInput(in Input, dt float32) (editor.Action, bool) {
	if in.ResetCamera {
		g.camera.Reset()
	}
	if in.ToggleOverlays {
		g.showOverlays = !g.showOverlays
	}
	if in.Pan != (vmath.Vec2{}) {
		g.camera.Pan(in.Pan.X, in.Pan.Y)
	}
	if in.Wheel != 0 {
		if in.Ctrl {
			g.session.ScaleBrush(wheelNotches(in.Wheel))
		} else {
			g.camera.ZoomAt(in.Mouse.X, in.Mouse.Y, 1+in.Wheel*g.zoomSpeed)
		}
	}
	if in.Tool > 0 {
		if err := g.session.SelectTool(editor.Tool(in.Tool - 1)); err != nil {
			g.reject(err)
		}
	}

	if in.Move != (vmath.Vec2{}) {
		g.session.MovePlayer(in.Move, dt, in.Sprint)
	}
	wx, wy := g.camera.ScreenToWorld(in.Mouse.X, in.Mouse.Y)
	g.session.SetCursor(vmath.V(wx, wy))

	if in.Clear {
		g.session.Clear()
		g.dirty = true
	}
	if in.Generate {
		g.generation++
		g.session.Generate(g.seed + int64(g.generation))
		g.dirty = true
	}
	if in.Paint {
		if err := g.session.Paint(); err != nil {
			g.reject(err)
		} else {
			g.dirty = true
		}
	}

	return g.throttle.Fire(in.Buttons)
}

// wheelNotches rounds a wheel movement to whole notches, keeping the sign
// of small trackpad deltas.
func wheelNotches(w float32) int {
	switch {
	case w >= 1 || w <= -1:
		return int(w)
	case w > 0:
		return 1
	case w < 0:
		return -1
	}
	return 0
}
