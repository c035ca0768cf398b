// Package command parses map-data messages and applies them to a grid.
//
// A message is free text carrying key/value pairs and tagged blocks:
//
//	Chunk=1
//	Player=4,5
//	PlayerPrev=3,5
//	M: 2,2|2,3
//	H: 6.6
//	Hidden: 2,3
//	<Region>Name=Bog
//	Type=Swamp
//	TileR: 1,1-3,4
//	Impedance=3
//	Exception: 2,2</Region>
//	<Herb>Tile=6,6
//	Name=Moonleaf
//	Growth=60</Herb>
//	<NPC><1>Name: Ada
//	Type: W
//	Tile=8,2</1></NPC>
//	<Message><1>"The wind rises"</1></Message>
//
// Coordinates accept either "x,y" or "x.y".
package command

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/1siamBot/isomap-engine/engine/maplib"
)

// ErrMissingChunk is returned for messages without a Chunk= field
var ErrMissingChunk = errors.New("missing chunk identifier")

// Placement assigns a decoration kind to a tile
type Placement struct {
	Kind maplib.DecorationKind
	At   maplib.Point
}

// RegionSpec is a region as declared in a message
type RegionSpec struct {
	Name       string
	Type       string
	X1, Y1     int
	X2, Y2     int
	Impedance  float64
	Exceptions []maplib.Point
}

type HerbEntry struct {
	At   maplib.Point
	Info maplib.HerbInfo
}

type TreeEntry struct {
	At   maplib.Point
	Info maplib.TreeInfo
}

type NPCEntry struct {
	At  maplib.Point
	NPC maplib.NPC
}

// Command is one parsed message
type Command struct {
	ID       string
	ChunkID  int
	Player   *maplib.Point
	Previous *maplib.Point

	Placements []Placement
	Hidden     []maplib.Point
	Revealed   []maplib.Point
	Regions    []RegionSpec
	Herbs      []HerbEntry
	Trees      []TreeEntry
	NPCs       []NPCEntry
	Messages   []string
}

var (
	reChunk    = regexp.MustCompile(`Chunk\s*=\s*(\d+)`)
	rePlayer   = regexp.MustCompile(`(?i)\b(?:Player|NewPosition)\s*=\s*(\d+)[.,](\d+)`)
	rePrevious = regexp.MustCompile(`(?i)(?:LastPosition|PreviousPosition|PlayerPrev)\s*=\s*(\d+)[.,](\d+)`)
	reList     = regexp.MustCompile(`\b([MHT]|Hidden|Reveal)\s*:\s*([0-9.,|\s]+)`)

	reRegion  = regexp.MustCompile(`(?is)<Region>(.*?)</Region>`)
	reHerb    = regexp.MustCompile(`(?is)<Herb>(.*?)</Herb>`)
	reTree    = regexp.MustCompile(`(?is)<Tree>(.*?)</Tree>`)
	reNPC     = regexp.MustCompile(`(?is)<NPC>(.*?)</NPC>`)
	reMessage = regexp.MustCompile(`(?is)<Message>(.*?)</Message>`)
	reEntry   = regexp.MustCompile(`(?s)<(\d+)>(.*?)</(\d+)>`)

	reTileR     = regexp.MustCompile(`(?i)TileR\s*:\s*(\d+)[.,](\d+)\s*-\s*(\d+)[.,](\d+)`)
	reTile      = regexp.MustCompile(`(?i)Tile\s*=\s*(\d+)[.,](\d+)`)
	reException = regexp.MustCompile(`(?i)Exception\s*:\s*([\d.,\s|]+)`)
	reImpedance = regexp.MustCompile(`(?i)Impedance\s*=\s*(\d+(?:\.\d+)?)`)
	reGrowth    = regexp.MustCompile(`(?i)Growth\s*=\s*(\d+)`)

	reAge     = keyValue("Age", "=")
	reRank    = keyValue("Rank", "=")
	reName    = keyValue("Name", "=")
	reElement = keyValue("Element", "=")
	reLore    = keyValue("Lore", "=")
	reType    = keyValue("Type", "=")
	reNPCName = keyValue("Name", ":")
	reNPCType = keyValue("Type", ":")
)

// keyValue matches "Key<sep>value" up to the end of the line
func keyValue(key, sep string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + key + `\s*` + sep + `[ \t]*([^\r\n]*)`)
}

// field returns the first value matched by re, trimmed
func field(content string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Parse reads one message. A message without a chunk is rejected as a whole.
func Parse(text string) (*Command, error) {
	m := reChunk.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrMissingChunk
	}
	chunk, _ := strconv.Atoi(m[1])

	cmd := &Command{
		ID:      uuid.New().String(),
		ChunkID: chunk,
	}

	for _, rm := range reRegion.FindAllStringSubmatch(text, -1) {
		if r, ok := parseRegion(rm[1]); ok {
			cmd.Regions = append(cmd.Regions, r)
		}
	}
	for _, hm := range reHerb.FindAllStringSubmatch(text, -1) {
		at, ok := submatchPoint(reTile, hm[1])
		if !ok {
			continue
		}
		growth := 0
		if g := reGrowth.FindStringSubmatch(hm[1]); g != nil {
			growth, _ = strconv.Atoi(g[1])
		}
		cmd.Herbs = append(cmd.Herbs, HerbEntry{At: at, Info: maplib.HerbInfo{
			Age:     field(hm[1], reAge),
			Rank:    field(hm[1], reRank),
			Name:    field(hm[1], reName),
			Element: field(hm[1], reElement),
			Lore:    field(hm[1], reLore),
			Growth:  growth,
		}})
	}
	for _, tm := range reTree.FindAllStringSubmatch(text, -1) {
		at, ok := submatchPoint(reTile, tm[1])
		if !ok {
			continue
		}
		cmd.Trees = append(cmd.Trees, TreeEntry{At: at, Info: maplib.TreeInfo{
			Age:     field(tm[1], reAge),
			Element: field(tm[1], reElement),
			Name:    field(tm[1], reName),
			Lore:    field(tm[1], reLore),
		}})
	}
	for _, nm := range reNPC.FindAllStringSubmatch(text, -1) {
		for _, inner := range entries(nm[1]) {
			at, ok := submatchPoint(reTile, inner)
			if !ok {
				continue
			}
			cmd.NPCs = append(cmd.NPCs, NPCEntry{At: at, NPC: maplib.NPC{
				Name: field(inner, reNPCName),
				Type: field(inner, reNPCType),
			}})
		}
	}
	if mm := reMessage.FindStringSubmatch(text); mm != nil {
		for _, inner := range entries(mm[1]) {
			cmd.Messages = append(cmd.Messages, strings.TrimSpace(strings.ReplaceAll(inner, `"`, "")))
		}
	}

	// Top-level fields are read with the blocks cut out so block contents
	// cannot be mistaken for placement lists.
	top := text
	for _, re := range []*regexp.Regexp{reRegion, reHerb, reTree, reNPC, reMessage} {
		top = re.ReplaceAllString(top, "\n")
	}

	if p, ok := submatchPoint(rePlayer, top); ok {
		cmd.Player = &p
	}
	if p, ok := submatchPoint(rePrevious, top); ok {
		cmd.Previous = &p
	}

	for _, lm := range reList.FindAllStringSubmatch(top, -1) {
		points := parsePoints(lm[2])
		switch lm[1] {
		case "Hidden":
			cmd.Hidden = append(cmd.Hidden, points...)
		case "Reveal":
			cmd.Revealed = append(cmd.Revealed, points...)
		default:
			kind, _ := maplib.KindFromLetter(lm[1])
			for _, p := range points {
				cmd.Placements = append(cmd.Placements, Placement{Kind: kind, At: p})
			}
		}
	}

	return cmd, nil
}

func parseRegion(content string) (RegionSpec, bool) {
	m := reTileR.FindStringSubmatch(content)
	if m == nil {
		return RegionSpec{}, false
	}
	r := RegionSpec{
		Name:      field(content, reName),
		Type:      field(content, reType),
		Impedance: 1,
	}
	r.X1, _ = strconv.Atoi(m[1])
	r.Y1, _ = strconv.Atoi(m[2])
	r.X2, _ = strconv.Atoi(m[3])
	r.Y2, _ = strconv.Atoi(m[4])

	if im := reImpedance.FindStringSubmatch(content); im != nil {
		if v, err := strconv.ParseFloat(im[1], 64); err == nil && v >= 1 {
			r.Impedance = v
		}
	}
	if em := reException.FindStringSubmatch(content); em != nil {
		r.Exceptions = parsePoints(em[1])
	}
	return r, true
}

// entries returns the bodies of <n>...</n> entries, skipping mismatched tags
func entries(content string) []string {
	var out []string
	for _, m := range reEntry.FindAllStringSubmatch(content, -1) {
		if m[1] == m[3] {
			out = append(out, m[2])
		}
	}
	return out
}

func submatchPoint(re *regexp.Regexp, s string) (maplib.Point, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return maplib.Point{}, false
	}
	x, _ := strconv.Atoi(m[len(m)-2])
	y, _ := strconv.Atoi(m[len(m)-1])
	return maplib.Point{X: x, Y: y}, true
}

// parsePoints reads "x,y|x.y|..." and drops malformed pairs
func parsePoints(raw string) []maplib.Point {
	var out []maplib.Point
	for _, pair := range strings.Split(raw, "|") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		sep := "."
		if strings.Contains(pair, ",") {
			sep = ","
		}
		parts := strings.Split(pair, sep)
		if len(parts) < 2 {
			continue
		}
		x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
		y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errX != nil || errY != nil {
			continue
		}
		out = append(out, maplib.Point{X: x, Y: y})
	}
	return out
}
