package iso

import "math"

// Camera is the screen-space view transform: a pan offset and a zoom scalar
type Camera struct {
	PanX, PanY float64 // screen-space translation in pixels
	Zoom       float64 // zoom level (1.0 = default)
	MinZoom    float64
	MaxZoom    float64
}

// NewCamera creates a camera with the default zoom bounds
func NewCamera() *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.5,
		MaxZoom: 3.0,
	}
}

// Pan moves the camera by a screen pixel delta (drag)
func (c *Camera) Pan(dx, dy float64) {
	c.PanX += dx
	c.PanY += dy
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomBy adds delta to the zoom level (wheel)
func (c *Camera) ZoomBy(delta float64) {
	c.SetZoom(c.Zoom + delta)
}

// ZoomAt zooms while keeping the grid point under (sx, sy) stationary
func (c *Camera) ZoomAt(delta float64, sx, sy float64, m TileMetrics) {
	gx, gy := ScreenToGrid(sx, sy, c, m)
	c.ZoomBy(delta)
	nx, ny := GridToScreen(gx, gy, c, m)
	c.PanX += sx - nx
	c.PanY += sy - ny
}

// CenterOn pans so that grid point (gx, gy) lands at screen point (sx, sy)
func (c *Camera) CenterOn(gx, gy float64, sx, sy float64, m TileMetrics) {
	px, py := GridToScreen(gx, gy, c, m)
	c.PanX += sx - px
	c.PanY += sy - py
}
