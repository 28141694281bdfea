package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/carve/camera"
	"github.com/pthm-cable/carve/vmath"
)

// OverlayData holds what the editor overlay shows for one frame.
type OverlayData struct {
	Player       vmath.Vec2
	PlayerRadius float32
	Cursor       vmath.Vec2

	// Target is the cell the next edit would hit, valid when HasTarget.
	Target    vmath.Vec2
	HasTarget bool

	BrushSize  int
	BlendRange int
	ShowBlend  bool // draw the averaging window of the blend tools
}

var (
	rayColor    = rl.Color{R: 255, G: 200, B: 60, A: 200}
	brushColor  = rl.Color{R: 80, G: 220, B: 255, A: 220}
	blendColor  = rl.Color{R: 80, G: 220, B: 255, A: 90}
	playerColor = rl.Color{R: 240, G: 80, B: 80, A: 255}
)

// dashLength is the on+off length of the ray dashes in screen pixels.
const dashLength = 12

// DrawOverlay renders the player, the aiming ray and the brush outline.
func DrawOverlay(cam *camera.Camera, d OverlayData) {
	px, py := cam.WorldToScreen(d.Player.X, d.Player.Y)
	cx, cy := cam.WorldToScreen(d.Cursor.X, d.Cursor.Y)

	end := rl.Vector2{X: cx, Y: cy}
	if d.HasTarget {
		tx, ty := cam.WorldToScreen(d.Target.X+0.5, d.Target.Y+0.5)
		end = rl.Vector2{X: tx, Y: ty}
	}
	drawDashedLine(rl.Vector2{X: px, Y: py}, end, rayColor)

	if d.HasTarget {
		r := float32(d.BrushSize) * cam.Zoom
		rl.DrawCircleLines(int32(end.X), int32(end.Y), r, brushColor)
		if d.ShowBlend {
			rl.DrawCircleLines(int32(end.X), int32(end.Y), r+float32(d.BlendRange)*cam.Zoom, blendColor)
		}
	}

	// Crosshair
	rl.DrawLineV(rl.Vector2{X: cx - 6, Y: cy}, rl.Vector2{X: cx + 6, Y: cy}, rl.White)
	rl.DrawLineV(rl.Vector2{X: cx, Y: cy - 6}, rl.Vector2{X: cx, Y: cy + 6}, rl.White)

	rl.DrawCircleV(rl.Vector2{X: px, Y: py}, max(d.PlayerRadius*cam.Zoom, 3), playerColor)
}

// DrawPlayer renders only the player marker, used when overlays are hidden.
func DrawPlayer(cam *camera.Camera, p vmath.Vec2, radius float32) {
	px, py := cam.WorldToScreen(p.X, p.Y)
	rl.DrawCircleV(rl.Vector2{X: px, Y: py}, max(radius*cam.Zoom, 3), playerColor)
}

func drawDashedLine(from, to rl.Vector2, c rl.Color) {
	d := vmath.V(to.X-from.X, to.Y-from.Y)
	length := d.Len()
	if length == 0 {
		return
	}
	dir := d.Scale(1 / length)
	for s := float32(0); s < length; s += dashLength {
		e := min(s+dashLength/2, length)
		a := rl.Vector2{X: from.X + dir.X*s, Y: from.Y + dir.Y*s}
		b := rl.Vector2{X: from.X + dir.X*e, Y: from.Y + dir.Y*e}
		rl.DrawLineEx(a, b, 2, c)
	}
}
