package pathfind

import "github.com/1siamBot/isomap-engine/engine/maplib"

// NavGrid holds the per-tile impedance of one chunk, derived from its regions
type NavGrid struct {
	ChunkID int
	Costs   []float64 // impedance per local cell, row-major, >= 1
}

// NewNavGrid builds the impedance grid of a chunk. A tile covered by several
// regions takes the highest impedance; uncovered tiles cost 1.
func NewNavGrid(chunkID int, regions []*maplib.Region) *NavGrid {
	ng := &NavGrid{
		ChunkID: chunkID,
		Costs:   make([]float64, maplib.ChunkSize*maplib.ChunkSize),
	}
	for i := range ng.Costs {
		ng.Costs[i] = 1
	}
	for _, r := range regions {
		if r.ChunkID != chunkID {
			continue
		}
		for y := 1; y <= maplib.ChunkSize; y++ {
			for x := 1; x <= maplib.ChunkSize; x++ {
				if r.Contains(maplib.Point{X: x, Y: y}) {
					i := ng.index(x, y)
					if r.Impedance > ng.Costs[i] {
						ng.Costs[i] = r.Impedance
					}
				}
			}
		}
	}
	return ng
}

func (ng *NavGrid) index(lx, ly int) int {
	return (ly-1)*maplib.ChunkSize + (lx - 1)
}

// InBounds reports whether a local coordinate lies inside a chunk
func InBounds(p maplib.Point) bool {
	return p.X >= 1 && p.Y >= 1 && p.X <= maplib.ChunkSize && p.Y <= maplib.ChunkSize
}

// Cost returns the impedance at a local coordinate, 1 outside the chunk
func (ng *NavGrid) Cost(p maplib.Point) float64 {
	if !InBounds(p) {
		return 1
	}
	return ng.Costs[ng.index(p.X, p.Y)]
}
