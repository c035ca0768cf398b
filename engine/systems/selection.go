package systems

import (
	"time"

	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/1siamBot/isomap-engine/engine/pathfind"
)

// SenseRadius is the Manhattan radius revealed by Sense
const SenseRadius = 3

// SelectionState is the phase of the click-to-move interaction
type SelectionState uint8

const (
	SelIdle SelectionState = iota
	SelShowingRange
	SelShowingPath
	SelFadingOut
	SelSensing
)

func (s SelectionState) String() string {
	switch s {
	case SelShowingRange:
		return "showing_range"
	case SelShowingPath:
		return "showing_path"
	case SelFadingOut:
		return "fading_out"
	case SelSensing:
		return "sensing"
	}
	return "idle"
}

// Outcome reports what a click did
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeRangeShown
	OutcomePathSelected
	OutcomeCleared
	OutcomeInsufficient
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRangeShown:
		return "range_shown"
	case OutcomePathSelected:
		return "path_selected"
	case OutcomeCleared:
		return "cleared"
	case OutcomeInsufficient:
		return "insufficient"
	}
	return "none"
}

// HighlightKind selects the overlay colour of a tile
type HighlightKind uint8

const (
	HighlightNone HighlightKind = iota
	HighlightRange
	HighlightPath
	HighlightSense
)

// Highlight is the overlay a tile should draw this frame
type Highlight struct {
	Kind  HighlightKind
	Alpha float64
	Ring  bool
}

// Wallet holds the stamina a selected move reserves
type Wallet interface {
	Reserve(cost float64) bool
	Refund()
}

// SelectionTiming holds the reveal durations
type SelectionTiming struct {
	Fade    time.Duration
	Stagger time.Duration
}

// DefaultSelectionTiming gives the ripple reveal
func DefaultSelectionTiming() SelectionTiming {
	return SelectionTiming{
		Fade:    300 * time.Millisecond,
		Stagger: 100 * time.Millisecond,
	}
}

const (
	rangeAlpha = 0.6
	pathAlpha  = 0.7
	senseAlpha = 0.6
	ringAt     = 0.8
)

// Selection is the state machine behind click-to-move
type Selection struct {
	Timing  SelectionTiming
	Planner *pathfind.Planner
	Grid    *maplib.Grid

	State       SelectionState
	ChunkID     int
	Origin      maplib.Point
	Moves       map[maplib.Point]int // destination -> distance
	Path        []pathfind.Step
	Sensed      map[maplib.Point]int
	Cost        float64
	Rejected    float64 // cost of the last move refused for stamina
	RevealStart time.Time

	fadeStart time.Time
	fadeFrom  SelectionState
	wallet    Wallet
}

func NewSelection(g *maplib.Grid, planner *pathfind.Planner, timing SelectionTiming) *Selection {
	if planner == nil {
		planner = pathfind.NewPlanner()
	}
	return &Selection{Timing: timing, Planner: planner, Grid: g}
}

// Click handles a left click on tile t. A nil tile is a click on empty space.
func (s *Selection) Click(p *core.Player, t *maplib.Tile, now time.Time) Outcome {
	if s.State == SelFadingOut {
		s.clear()
	}
	onPlayer := t != nil && t.ChunkID == p.ChunkID && t.Local() == p.Logical()

	switch s.State {
	case SelIdle, SelSensing:
		if !onPlayer {
			if s.State == SelSensing {
				s.clear()
				return OutcomeCleared
			}
			return OutcomeNone
		}
		s.showRange(p, now)
		return OutcomeRangeShown

	case SelShowingRange:
		if onPlayer || t == nil || t.ChunkID != s.ChunkID {
			s.clear()
			return OutcomeCleared
		}
		d, ok := s.Moves[t.Local()]
		if !ok {
			s.clear()
			return OutcomeCleared
		}
		return s.selectPath(p, t, d, now)

	case SelShowingPath:
		s.clear()
		return OutcomeCleared
	}
	return OutcomeNone
}

func (s *Selection) showRange(p *core.Player, now time.Time) {
	s.clear()
	s.ChunkID = p.ChunkID
	s.Origin = p.Logical()
	s.Moves = make(map[maplib.Point]int)
	for _, m := range s.Planner.Reachable(s.Grid, p.ChunkID, s.Origin, p.Mode.Range()) {
		s.Moves[m.Tile.Local()] = m.Distance
	}
	s.State = SelShowingRange
	s.RevealStart = now
}

func (s *Selection) selectPath(p *core.Player, t *maplib.Tile, distance int, now time.Time) Outcome {
	dest := t.Local()
	cost := s.Planner.MovementCost(distance, s.ChunkID, dest, s.Grid.Regions(s.ChunkID))
	if !p.Stamina.Reserve(cost) {
		s.clear()
		s.Rejected = cost
		return OutcomeInsufficient
	}
	s.wallet = &p.Stamina
	s.Cost = cost

	path := s.Planner.BuildPath(s.Grid, s.ChunkID, s.Origin, dest)
	if path == nil {
		for i, pt := range pathfind.WalkPath(s.Origin, dest) {
			path = append(path, pathfind.Step{Tile: s.Grid.Tile(s.ChunkID, pt.X, pt.Y), Index: i + 1})
		}
	}
	s.Moves = nil
	s.Path = path
	s.State = SelShowingPath
	s.RevealStart = now
	return OutcomePathSelected
}

// RightClick starts fading out the current highlight. No-op when idle.
func (s *Selection) RightClick(now time.Time) bool {
	if s.State == SelIdle || s.State == SelFadingOut {
		return false
	}
	s.refund()
	s.fadeFrom = s.State
	s.fadeStart = now
	s.State = SelFadingOut
	return true
}

// Sense highlights every tile within SenseRadius of the player, the player's
// own tile included
func (s *Selection) Sense(p *core.Player, now time.Time) {
	s.clear()
	s.ChunkID = p.ChunkID
	s.Origin = p.Logical()
	s.Sensed = make(map[maplib.Point]int)
	for _, t := range s.Grid.ChunkTiles(p.ChunkID) {
		if d := pathfind.Manhattan(t.Local(), s.Origin); d <= SenseRadius {
			s.Sensed[t.Local()] = d
		}
	}
	s.State = SelSensing
	s.RevealStart = now
}

// Tick completes a fade-out whose duration has elapsed. Returns true when
// the selection became idle.
func (s *Selection) Tick(now time.Time) bool {
	if s.State != SelFadingOut || now.Sub(s.fadeStart) < s.Timing.Fade {
		return false
	}
	s.clear()
	return true
}

// Reset drops the selection immediately, refunding any reservation
func (s *Selection) Reset() {
	s.clear()
}

// Committed forgets the reservation of a move that was carried out, then
// resets
func (s *Selection) Committed() {
	s.wallet = nil
	s.clear()
}

func (s *Selection) clear() {
	s.refund()
	s.State = SelIdle
	s.Moves = nil
	s.Path = nil
	s.Sensed = nil
	s.Cost = 0
}

func (s *Selection) refund() {
	if s.wallet != nil {
		s.wallet.Refund()
		s.wallet = nil
	}
}

// Destination returns the last tile of the selected path
func (s *Selection) Destination() *maplib.Tile {
	if len(s.Path) == 0 {
		return nil
	}
	return s.Path[len(s.Path)-1].Tile
}

// Highlight returns the overlay of tile t at time now
func (s *Selection) Highlight(t *maplib.Tile, now time.Time) Highlight {
	if t == nil || s.State == SelIdle || t.ChunkID != s.ChunkID {
		return Highlight{}
	}
	if s.State == SelFadingOut {
		h := s.highlightAt(s.fadeFrom, t, s.fadeStart)
		h.Alpha *= 1 - s.progress(s.fadeStart, now)
		h.Ring = false
		return h
	}
	return s.highlightAt(s.State, t, now)
}

func (s *Selection) highlightAt(state SelectionState, t *maplib.Tile, now time.Time) Highlight {
	local := t.Local()
	switch state {
	case SelShowingRange:
		if d, ok := s.Moves[local]; ok {
			return Highlight{Kind: HighlightRange, Alpha: rangeAlpha * s.reveal(d, now)}
		}
	case SelShowingPath:
		for i, step := range s.Path {
			if step.Tile != t {
				continue
			}
			p := s.reveal(step.Index, now)
			return Highlight{
				Kind:  HighlightPath,
				Alpha: pathAlpha * p,
				Ring:  i == len(s.Path)-1 && p > ringAt,
			}
		}
	case SelSensing:
		if d, ok := s.Sensed[local]; ok {
			return Highlight{Kind: HighlightSense, Alpha: senseAlpha * s.reveal(d, now)}
		}
	}
	return Highlight{}
}

// reveal returns the fade-in progress of a tile whose ripple order is n
func (s *Selection) reveal(n int, now time.Time) float64 {
	delay := time.Duration(max(n-1, 0)) * s.Timing.Stagger
	return s.progress(s.RevealStart.Add(delay), now)
}

func (s *Selection) progress(start, now time.Time) float64 {
	if s.Timing.Fade <= 0 {
		if now.Before(start) {
			return 0
		}
		return 1
	}
	p := float64(now.Sub(start)) / float64(s.Timing.Fade)
	return max(0, min(1, p))
}
