package maplib

import (
	"sort"
)

// ChunkSize is the edge length of a chunk in tiles
const ChunkSize = 10

// DecorationKind identifies what stands on a tile
type DecorationKind uint8

const (
	DecorNone DecorationKind = iota
	DecorMountain
	DecorHerb
	DecorTree
)

// KindFromLetter maps the map-data letters M, H and T to decoration kinds
func KindFromLetter(letter string) (DecorationKind, bool) {
	switch letter {
	case "M":
		return DecorMountain, true
	case "H":
		return DecorHerb, true
	case "T":
		return DecorTree, true
	}
	return DecorNone, false
}

func (k DecorationKind) String() string {
	switch k {
	case DecorMountain:
		return "mountain"
	case DecorHerb:
		return "herb"
	case DecorTree:
		return "tree"
	}
	return "none"
}

// Decoration is the asset reference chosen for a tile. Variant is an opaque
// index into the sprite set for Kind.
type Decoration struct {
	Kind    DecorationKind
	Variant int
}

// Point is a local tile coordinate inside a chunk
type Point struct {
	X, Y int
}

// Tile represents a single map tile
type Tile struct {
	ChunkID    int
	LX, LY     int // 1-based within the chunk
	GX, GY     int // global, 0-based
	Decoration *Decoration
	Hidden     bool // decoration hidden until revealed

	NPC  *NPC
	Herb *HerbInfo
	Tree *TreeInfo
}

// Local returns the tile's chunk-local coordinate
func (t *Tile) Local() Point {
	return Point{t.LX, t.LY}
}

// Decorated reports whether a visible decoration should be drawn
func (t *Tile) Decorated() bool {
	return t.Decoration != nil && !t.Hidden
}

type localKey struct {
	chunk  int
	lx, ly int
}

type globalKey struct {
	gx, gy int
}

// Grid owns every generated tile across chunks
type Grid struct {
	byLocal  map[localKey]*Tile
	byGlobal map[globalKey]*Tile
	chunks   map[int]Point // chunk id -> chunk offset
	regions  []*Region
	ordered  []*Tile // depth-ordered cache, nil when stale

	// OnDecorate is called after a decoration is first assigned, so the
	// renderer can prefetch its sprite. It must not block.
	OnDecorate func(t *Tile)
}

// NewGrid creates an empty grid
func NewGrid() *Grid {
	return &Grid{
		byLocal:  make(map[localKey]*Tile),
		byGlobal: make(map[globalKey]*Tile),
		chunks:   make(map[int]Point),
	}
}

// GenerateChunk creates the ChunkSize² tiles of a chunk at chunk offset
// (offsetX, offsetY). Global cells that already exist are left untouched, so
// calling it again is a no-op. A chunk id stays at its first offset; asking
// for it elsewhere does nothing.
func (g *Grid) GenerateChunk(id, offsetX, offsetY int) {
	if off, ok := g.chunks[id]; ok && off != (Point{offsetX, offsetY}) {
		return
	}
	g.chunks[id] = Point{offsetX, offsetY}
	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			gk := globalKey{offsetX*ChunkSize + x, offsetY*ChunkSize + y}
			if _, ok := g.byGlobal[gk]; ok {
				continue
			}
			t := &Tile{
				ChunkID: id,
				LX:      x + 1,
				LY:      y + 1,
				GX:      gk.gx,
				GY:      gk.gy,
			}
			g.byGlobal[gk] = t
			g.byLocal[localKey{id, t.LX, t.LY}] = t
			g.ordered = nil
		}
	}
}

// HasChunk reports whether a chunk was generated
func (g *Grid) HasChunk(id int) bool {
	_, ok := g.chunks[id]
	return ok
}

// ChunkIDs returns the generated chunk ids in ascending order
func (g *Grid) ChunkIDs() []int {
	ids := make([]int, 0, len(g.chunks))
	for id := range g.chunks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ChunkOffset returns the chunk offset recorded for id
func (g *Grid) ChunkOffset(id int) (Point, bool) {
	p, ok := g.chunks[id]
	return p, ok
}

// ToGlobal converts fractional local coordinates of a chunk to global grid
// coordinates. Used for positions between tiles, such as an animating player.
func (g *Grid) ToGlobal(chunkID int, lx, ly float64) (gx, gy float64, ok bool) {
	off, ok := g.chunks[chunkID]
	if !ok {
		return 0, 0, false
	}
	return float64(off.X*ChunkSize) + lx - 1, float64(off.Y*ChunkSize) + ly - 1, true
}

// Tile returns the tile at (lx, ly) in a chunk, or nil
func (g *Grid) Tile(chunkID, lx, ly int) *Tile {
	return g.byLocal[localKey{chunkID, lx, ly}]
}

// At returns the tile at global (gx, gy), or nil
func (g *Grid) At(gx, gy int) *Tile {
	return g.byGlobal[globalKey{gx, gy}]
}

// Len returns the number of tiles
func (g *Grid) Len() int {
	return len(g.byGlobal)
}

// SetDecoration assigns a decoration unless the tile already has one.
// Returns true when the decoration was assigned.
func (g *Grid) SetDecoration(chunkID, lx, ly int, kind DecorationKind, variant int) bool {
	t := g.Tile(chunkID, lx, ly)
	if t == nil || t.Decoration != nil {
		return false
	}
	t.Decoration = &Decoration{Kind: kind, Variant: variant}
	if g.OnDecorate != nil {
		g.OnDecorate(t)
	}
	return true
}

// SetHidden toggles whether a tile's decoration is drawn
func (g *Grid) SetHidden(chunkID, lx, ly int, hidden bool) bool {
	t := g.Tile(chunkID, lx, ly)
	if t == nil {
		return false
	}
	t.Hidden = hidden
	return true
}

// PlaceNPC puts an NPC on a tile, replacing any previous one
func (g *Grid) PlaceNPC(chunkID, lx, ly int, npc NPC) bool {
	t := g.Tile(chunkID, lx, ly)
	if t == nil {
		return false
	}
	t.NPC = &npc
	return true
}

// SetHerb attaches herb details to a tile
func (g *Grid) SetHerb(chunkID, lx, ly int, info HerbInfo) bool {
	t := g.Tile(chunkID, lx, ly)
	if t == nil {
		return false
	}
	t.Herb = &info
	return true
}

// SetTree attaches tree details to a tile
func (g *Grid) SetTree(chunkID, lx, ly int, info TreeInfo) bool {
	t := g.Tile(chunkID, lx, ly)
	if t == nil {
		return false
	}
	t.Tree = &info
	return true
}

// DepthOrdered returns every tile sorted back to front by gx+gy, ties by gx.
// The slice is shared; callers must not modify it.
func (g *Grid) DepthOrdered() []*Tile {
	if g.ordered != nil {
		return g.ordered
	}
	tiles := make([]*Tile, 0, len(g.byGlobal))
	for _, t := range g.byGlobal {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		di, dj := tiles[i].GX+tiles[i].GY, tiles[j].GX+tiles[j].GY
		if di != dj {
			return di < dj
		}
		return tiles[i].GX < tiles[j].GX
	})
	g.ordered = tiles
	return tiles
}

// ChunkTiles returns the tiles of one chunk in depth order
func (g *Grid) ChunkTiles(chunkID int) []*Tile {
	var out []*Tile
	for _, t := range g.DepthOrdered() {
		if t.ChunkID == chunkID {
			out = append(out, t)
		}
	}
	return out
}
