// Package camera provides a 2D camera system for viewport control.
package camera

// Camera controls the viewport into the terrain field.
// Supports pan and zoom; the field is bounded, so nothing wraps.
type Camera struct {
	// Position is the camera center in field coordinates
	X, Y float32

	// Zoom level (1.0 = 1 cell per pixel, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Field dimensions
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the field with the whole field in view.
func New(viewportW, viewportH, worldW, worldH, minZoom, maxZoom float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   minZoom,
		MaxZoom:   maxZoom,
	}
	c.Reset()
	return c
}

// FitZoom returns the zoom at which the whole field fits the viewport.
func (c *Camera) FitZoom() float32 {
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// WorldToScreen converts field coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to field coordinates. The result
// may lie outside the field.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions, keeping the camera center.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt multiplies the zoom by factor while keeping the field point under
// the screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X += wx - nx
	c.Y += wy - ny
}

// Reset centers the camera on the field and fits it to the viewport.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.SetZoom(c.FitZoom())
}

// VisibleWorldBounds returns the field-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY).
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
