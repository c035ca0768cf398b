package pathfind

import (
	"github.com/1siamBot/isomap-engine/engine/maplib"
)

// DefaultBaseStepCost is the stamina cost of one step on open ground
const DefaultBaseStepCost = 10

// Move is a tile reachable from the player's position
type Move struct {
	Tile     *maplib.Tile
	Distance int
}

// Step is one node of a planned path. Index starts at 1.
type Step struct {
	Tile  *maplib.Tile
	Index int
}

// Planner computes movement ranges, short paths and their costs on a grid
type Planner struct {
	// AlternateIntermediate makes BuildPath try the Y-first tile when the
	// X-first intermediate is missing, before dropping the intermediate.
	AlternateIntermediate bool
	BaseStepCost          float64
}

// NewPlanner returns a planner with default settings
func NewPlanner() *Planner {
	return &Planner{
		AlternateIntermediate: true,
		BaseStepCost:          DefaultBaseStepCost,
	}
}

// Manhattan returns |dx| + |dy|
func Manhattan(a, b maplib.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Reachable lists every tile of the chunk within maxSteps of origin, origin
// excluded. Distance is plain Manhattan distance; nothing obstructs movement.
func (p *Planner) Reachable(g *maplib.Grid, chunkID int, origin maplib.Point, maxSteps int) []Move {
	var moves []Move
	for _, t := range g.ChunkTiles(chunkID) {
		d := Manhattan(t.Local(), origin)
		if d >= 1 && d <= maxSteps {
			moves = append(moves, Move{Tile: t, Distance: d})
		}
	}
	return moves
}

// BuildPath returns the steps from origin to a destination at distance 1 or
// 2. Longer distances and missing destinations yield nil.
func (p *Planner) BuildPath(g *maplib.Grid, chunkID int, origin, dest maplib.Point) []Step {
	target := g.Tile(chunkID, dest.X, dest.Y)
	if target == nil {
		return nil
	}

	switch Manhattan(origin, dest) {
	case 1:
		return []Step{{Tile: target, Index: 1}}
	case 2:
		dx, dy := dest.X-origin.X, dest.Y-origin.Y
		first := maplib.Point{X: origin.X + sign(dx), Y: origin.Y}
		alt := maplib.Point{X: origin.X, Y: origin.Y + sign(dy)}
		if dx == 0 {
			first, alt = alt, first
		}

		mid := g.Tile(chunkID, first.X, first.Y)
		if mid == nil && p.AlternateIntermediate && dx != 0 && dy != 0 {
			mid = g.Tile(chunkID, alt.X, alt.Y)
		}
		if mid == nil {
			return []Step{{Tile: target, Index: 2}}
		}
		return []Step{{Tile: mid, Index: 1}, {Tile: target, Index: 2}}
	}
	return nil
}

// WalkPath lists the unit steps from origin to dest, X axis first. The origin
// itself is not included.
func WalkPath(origin, dest maplib.Point) []maplib.Point {
	var out []maplib.Point
	cur := origin
	for cur.X != dest.X {
		cur.X += sign(dest.X - cur.X)
		out = append(out, cur)
	}
	for cur.Y != dest.Y {
		cur.Y += sign(dest.Y - cur.Y)
		out = append(out, cur)
	}
	return out
}

// MovementCost is steps × BaseStepCost × the highest impedance of any region
// covering dest
func (p *Planner) MovementCost(steps int, chunkID int, dest maplib.Point, regions []*maplib.Region) float64 {
	ng := NewNavGrid(chunkID, regions)
	return float64(steps) * p.BaseStepCost * ng.Cost(dest)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
