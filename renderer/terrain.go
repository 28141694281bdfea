// Package renderer draws the density field and the editor overlays with raylib.
package renderer

import (
	"image/color"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/carve/camera"
	"github.com/pthm-cable/carve/terrain"
)

// TerrainRenderer keeps a GPU texture in sync with a density field.
type TerrainRenderer struct {
	width       int32
	height      int32
	texture     rl.Texture2D
	pixels      []color.RGBA
	initialized bool
}

// NewTerrainRenderer creates a new terrain renderer for a width x height field.
func NewTerrainRenderer(width, height int32) *TerrainRenderer {
	return &TerrainRenderer{
		width:  width,
		height: height,
		pixels: make([]color.RGBA, int(width)*int(height)),
	}
}

// Init creates the texture (must be called after raylib window is created).
func (r *TerrainRenderer) Init() {
	if r.initialized {
		return
	}
	img := rl.GenImageColor(int(r.width), int(r.height), rl.Black)
	r.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.texture, rl.FilterPoint)
	r.initialized = true
}

// Upload copies the field into the texture.
func (r *TerrainRenderer) Upload(f *terrain.Field) {
	if !r.initialized {
		r.Init()
	}
	// color.RGBA is four packed bytes, so the slice can be filled in place.
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&r.pixels[0])), len(r.pixels)*4)
	f.FillRGBA(buf)
	rl.UpdateTexture(r.texture, r.pixels)
}

// Draw renders the field through the camera with a thin frame around it.
func (r *TerrainRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}
	x, y := cam.WorldToScreen(0, 0)
	w := float32(r.width) * cam.Zoom
	h := float32(r.height) * cam.Zoom

	rl.DrawTexturePro(
		r.texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: float32(r.height)},
		rl.Rectangle{X: x, Y: y, Width: w, Height: h},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x - 1, Y: y - 1, Width: w + 2, Height: h + 2}, 1, rl.DarkGray)
}

// Unload frees resources.
func (r *TerrainRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}
