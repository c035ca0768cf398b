package core

import (
	"time"

	"github.com/1siamBot/isomap-engine/engine/maplib"
)

// Mode is the player's movement stance
type Mode uint8

const (
	ModeWalk Mode = iota
	ModeRun
	ModeSneak
	ModeHide
	modeCount
)

// Range returns how many tiles the player may cover in one move
func (m Mode) Range() int {
	switch m {
	case ModeRun:
		return 3
	case ModeSneak, ModeHide:
		return 1
	}
	return 2
}

// Next cycles to the following mode
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "Run"
	case ModeSneak:
		return "Sneak"
	case ModeHide:
		return "Hide"
	}
	return "Walk"
}

// AnimState is the phase of the player's replay animation
type AnimState uint8

const (
	AnimIdle AnimState = iota
	AnimInitialDelay
	AnimPrepareStep
	AnimMoving
	AnimPaused
)

func (s AnimState) String() string {
	switch s {
	case AnimInitialDelay:
		return "initial_delay"
	case AnimPrepareStep:
		return "prepare_step"
	case AnimMoving:
		return "moving"
	case AnimPaused:
		return "paused"
	}
	return "idle"
}

// Player is the single controllable token
type Player struct {
	Name     string
	Portrait string // sprite key

	ChunkID        int
	LX, LY         int
	PrevLX, PrevLY int
	HasPrev        bool

	// Visual position in local tile units, equal to (LX, LY) at rest
	VisualX, VisualY float64

	Mode    Mode
	Stamina Stamina

	// Animation bookkeeping, owned by the animation system
	Anim       AnimState
	Path       []maplib.Point
	Deadline   time.Time // end of the current timed phase
	StepFromX  float64
	StepFromY  float64
	StepTarget maplib.Point
}

// NewPlayer creates a player at rest on (lx, ly)
func NewPlayer(chunkID, lx, ly int, stamina float64) *Player {
	p := &Player{ChunkID: chunkID, Stamina: NewStamina(stamina)}
	p.Snap(lx, ly)
	return p
}

// Logical returns the player's committed tile
func (p *Player) Logical() maplib.Point {
	return maplib.Point{X: p.LX, Y: p.LY}
}

// Previous returns the tile the player moved from
func (p *Player) Previous() maplib.Point {
	return maplib.Point{X: p.PrevLX, Y: p.PrevLY}
}

// Snap places the player on (lx, ly) without animating and clears any path
func (p *Player) Snap(lx, ly int) {
	p.LX, p.LY = lx, ly
	p.HasPrev = false
	p.Anim = AnimIdle
	p.Path = nil
	p.VisualX, p.VisualY = float64(lx), float64(ly)
}

// MoveFrom records a move from prev to (lx, ly). The visual position is left
// for the animation system to replay.
func (p *Player) MoveFrom(prev maplib.Point, lx, ly int) {
	p.PrevLX, p.PrevLY = prev.X, prev.Y
	p.HasPrev = true
	p.LX, p.LY = lx, ly
}

// Animating reports whether a replay is in progress
func (p *Player) Animating() bool {
	return p.Anim != AnimIdle
}

// Stamina is a move budget. Base is the committed value; Current includes
// the pending reservation.
type Stamina struct {
	Base    float64
	Current float64
	Max     float64
}

// NewStamina returns a full stamina pool
func NewStamina(max float64) Stamina {
	return Stamina{Base: max, Current: max, Max: max}
}

// Reserve deducts cost provisionally. It fails without side effects when
// the committed base cannot cover cost.
func (s *Stamina) Reserve(cost float64) bool {
	if s.Base < cost {
		return false
	}
	s.Current = s.Base - cost
	return true
}

// Refund discards the pending reservation
func (s *Stamina) Refund() {
	s.Current = s.Base
}

// Commit makes the pending reservation permanent
func (s *Stamina) Commit() {
	s.Base = s.Current
}

// Pending reports whether a reservation is outstanding
func (s *Stamina) Pending() bool {
	return s.Current != s.Base
}

// Fraction returns Current/Max in [0, 1]
func (s *Stamina) Fraction() float64 {
	if s.Max <= 0 {
		return 0
	}
	return max(0, min(1, s.Current/s.Max))
}
