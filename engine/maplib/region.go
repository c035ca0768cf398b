package maplib

// Region is a rectangle of local tiles with a movement-cost multiplier
type Region struct {
	Name       string
	Type       string
	ChunkID    int
	X1, Y1     int
	X2, Y2     int
	Impedance  float64 // >= 1
	Exceptions map[Point]bool
}

// NewRegion builds a region, normalising impedance below 1 to 1
func NewRegion(chunkID, x1, y1, x2, y2 int, impedance float64, exceptions ...Point) *Region {
	if impedance < 1 {
		impedance = 1
	}
	r := &Region{
		ChunkID:    chunkID,
		X1:         x1,
		Y1:         y1,
		X2:         x2,
		Y2:         y2,
		Impedance:  impedance,
		Exceptions: make(map[Point]bool, len(exceptions)),
	}
	for _, e := range exceptions {
		r.Exceptions[e] = true
	}
	return r
}

// Bounds returns the rectangle with min/max corners, accepting inverted input
func (r *Region) Bounds() (minX, minY, maxX, maxY int) {
	minX, maxX = r.X1, r.X2
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY = r.Y1, r.Y2
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return
}

// Contains reports whether local tile p is affected by the region
func (r *Region) Contains(p Point) bool {
	minX, minY, maxX, maxY := r.Bounds()
	if p.X < minX || p.X > maxX || p.Y < minY || p.Y > maxY {
		return false
	}
	return !r.Exceptions[p]
}

// AddRegion registers a region. A region repeating the chunk, name and
// rectangle of an existing one replaces it.
func (g *Grid) AddRegion(r *Region) {
	for i, old := range g.regions {
		if old.ChunkID == r.ChunkID && old.Name == r.Name && old.X1 == r.X1 && old.Y1 == r.Y1 && old.X2 == r.X2 && old.Y2 == r.Y2 {
			g.regions[i] = r
			return
		}
	}
	g.regions = append(g.regions, r)
}

// Regions returns the regions declared for a chunk
func (g *Grid) Regions(chunkID int) []*Region {
	var out []*Region
	for _, r := range g.regions {
		if r.ChunkID == chunkID {
			out = append(out, r)
		}
	}
	return out
}

// AllRegions returns every region
func (g *Grid) AllRegions() []*Region {
	return g.regions
}
