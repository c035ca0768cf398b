package command

import (
	"github.com/1siamBot/isomap-engine/engine/maplib"
)

// VariantPicker chooses the sprite variant for a newly decorated tile
type VariantPicker func(kind maplib.DecorationKind) int

// Result counts what Apply changed
type Result struct {
	Decorated int
	Hidden    int
	Revealed  int
	Regions   int
	Herbs     int
	Trees     int
	NPCs      int
}

// Apply writes the command's map data into g. Player position fields are
// left to the caller. Entries naming tiles that do not exist are skipped.
func (c *Command) Apply(g *maplib.Grid, pick VariantPicker) Result {
	var res Result

	for _, p := range c.Placements {
		variant := 0
		if pick != nil {
			variant = pick(p.Kind)
		}
		if g.SetDecoration(c.ChunkID, p.At.X, p.At.Y, p.Kind, variant) {
			res.Decorated++
		}
	}
	for _, p := range c.Hidden {
		if g.SetHidden(c.ChunkID, p.X, p.Y, true) {
			res.Hidden++
		}
	}
	for _, p := range c.Revealed {
		if g.SetHidden(c.ChunkID, p.X, p.Y, false) {
			res.Revealed++
		}
	}
	for _, r := range c.Regions {
		region := maplib.NewRegion(c.ChunkID, r.X1, r.Y1, r.X2, r.Y2, r.Impedance, r.Exceptions...)
		region.Name = r.Name
		region.Type = r.Type
		g.AddRegion(region)
		res.Regions++
	}
	for _, h := range c.Herbs {
		if g.SetHerb(c.ChunkID, h.At.X, h.At.Y, h.Info) {
			res.Herbs++
		}
	}
	for _, t := range c.Trees {
		if g.SetTree(c.ChunkID, t.At.X, t.At.Y, t.Info) {
			res.Trees++
		}
	}
	for _, n := range c.NPCs {
		if g.PlaceNPC(c.ChunkID, n.At.X, n.At.Y, n.NPC) {
			res.NPCs++
		}
	}
	return res
}
