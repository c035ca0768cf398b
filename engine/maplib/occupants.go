package maplib

// NPC is a non-player character standing on a tile
type NPC struct {
	Name string
	Type string // sprite key, e.g. "R" or "W"
}

// HerbInfo describes a harvestable herb
type HerbInfo struct {
	Age     string
	Rank    string
	Name    string
	Element string
	Lore    string
	Growth  int // percent
}

// Phase names the herb's growth stage
func (h HerbInfo) Phase() string {
	switch {
	case h.Growth >= 100:
		return "Peak"
	case h.Growth >= 75:
		return "Ripe"
	case h.Growth >= 50:
		return "Mature"
	case h.Growth >= 25:
		return "Adult"
	}
	return "Early"
}

// TreeInfo describes a tree
type TreeInfo struct {
	Age     string
	Element string
	Name    string
	Lore    string
}
