package iso

// Point is a screen-space point
type Point struct {
	X, Y float64
}

// Polygon is a closed screen-space outline
type Polygon []Point

// TileFaces are the three visible faces of an extruded tile diamond
type TileFaces struct {
	Left  Polygon
	Right Polygon
	Top   Polygon
}

// Faces builds the face outlines of the tile at global (gx, gy)
func Faces(gx, gy int, c *Camera, m TileMetrics) TileFaces {
	x, y := GridToScreen(float64(gx), float64(gy), c, m)
	w := m.Width * c.Zoom
	h := m.Height * c.Zoom
	d := m.Thickness * c.Zoom

	return TileFaces{
		Left: Polygon{
			{x - w/2, y + h/2},
			{x, y + h},
			{x, y + h + d},
			{x - w/2, y + h/2 + d},
		},
		Right: Polygon{
			{x + w/2, y + h/2},
			{x, y + h},
			{x, y + h + d},
			{x + w/2, y + h/2 + d},
		},
		Top: TopFace(x, y, w, h),
	}
}

// TopFace is the diamond whose top vertex is at (x, y)
func TopFace(x, y, w, h float64) Polygon {
	return Polygon{
		{x, y},
		{x + w/2, y + h/2},
		{x, y + h},
		{x - w/2, y + h/2},
	}
}

// TopCenter returns the centre of the tile's top face
func TopCenter(gx, gy float64, c *Camera, m TileMetrics) (float64, float64) {
	x, y := GridToScreen(gx, gy, c, m)
	return x, y + m.Height*c.Zoom/2
}

// Contains reports whether p lies inside the polygon (even-odd rule). A point
// on an edge shared by two adjacent diamonds belongs to exactly one of them.
func (poly Polygon) Contains(p Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// HitTop reports whether the screen point lies on the top face of tile
// (gx, gy). It uses the same polygon the renderer fills.
func HitTop(gx, gy int, px, py float64, c *Camera, m TileMetrics) bool {
	return Faces(gx, gy, c, m).Top.Contains(Point{px, py})
}
