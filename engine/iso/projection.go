// Package iso maps between logical tile coordinates and screen pixels for a
// 2:1 isometric view and describes the extruded-diamond geometry of a tile.
package iso

// TileMetrics holds the fixed tile dimensions in unzoomed pixels
type TileMetrics struct {
	Width     float64 `json:"width"`     // diamond width
	Height    float64 `json:"height"`    // diamond height
	Thickness float64 `json:"thickness"` // extrusion depth
}

// DefaultMetrics are the classic 64×32 tiles with a 12px slab
func DefaultMetrics() TileMetrics {
	return TileMetrics{Width: 64, Height: 32, Thickness: 12}
}

// GridToScreen converts global grid coords to the screen position of the
// tile's top vertex.
func GridToScreen(gx, gy float64, c *Camera, m TileMetrics) (sx, sy float64) {
	sx = (gx-gy)*(m.Width/2)*c.Zoom + c.PanX
	sy = (gx+gy)*(m.Height/2)*c.Zoom + c.PanY
	return
}

// ScreenToGrid is the inverse of GridToScreen
func ScreenToGrid(sx, sy float64, c *Camera, m TileMetrics) (gx, gy float64) {
	ix := (sx - c.PanX) / (m.Width / 2 * c.Zoom)
	iy := (sy - c.PanY) / (m.Height / 2 * c.Zoom)
	gx = (ix + iy) / 2
	gy = (iy - ix) / 2
	return
}

// DepthKey orders tiles for the painter's algorithm; equal keys share a
// screen row.
func DepthKey(gx, gy int) int {
	return gx + gy
}
