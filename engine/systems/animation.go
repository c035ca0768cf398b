package systems

import (
	"time"

	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/1siamBot/isomap-engine/engine/pathfind"
)

// AnimationTiming holds the phase durations of a replay
type AnimationTiming struct {
	InitialDelay time.Duration
	Step         time.Duration
	Pause        time.Duration
}

// DefaultAnimationTiming gives the "step, stop, step" gait
func DefaultAnimationTiming() AnimationTiming {
	return AnimationTiming{
		InitialDelay: 500 * time.Millisecond,
		Step:         600 * time.Millisecond,
		Pause:        200 * time.Millisecond,
	}
}

// Ease is a symmetric ease-in-out curve on [0, 1]
func Ease(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	if p < 0.5 {
		return 2 * p * p
	}
	q := -2*p + 2
	return 1 - q*q/2
}

// PlayerAnimation replays the player's last move on the visual position
type PlayerAnimation struct {
	Timing  AnimationTiming
	Planner *pathfind.Planner
}

func NewPlayerAnimation(timing AnimationTiming, planner *pathfind.Planner) *PlayerAnimation {
	if planner == nil {
		planner = pathfind.NewPlanner()
	}
	return &PlayerAnimation{Timing: timing, Planner: planner}
}

// Replay restarts the animation from the previous position towards the
// logical one. Any replay in progress is discarded. Returns false and snaps
// when there is nothing to replay or either end is off the grid.
func (a *PlayerAnimation) Replay(p *core.Player, g *maplib.Grid, now time.Time) bool {
	from, to := p.Previous(), p.Logical()
	if !p.HasPrev || g.Tile(p.ChunkID, from.X, from.Y) == nil || g.Tile(p.ChunkID, to.X, to.Y) == nil {
		snapVisual(p)
		return false
	}

	p.Path = a.path(p.ChunkID, g, from, to)
	p.VisualX, p.VisualY = float64(from.X), float64(from.Y)
	p.Anim = core.AnimInitialDelay
	p.Deadline = now.Add(a.Timing.InitialDelay)
	return true
}

func (a *PlayerAnimation) path(chunkID int, g *maplib.Grid, from, to maplib.Point) []maplib.Point {
	if pathfind.Manhattan(from, to) <= 2 {
		if steps := a.Planner.BuildPath(g, chunkID, from, to); steps != nil {
			out := make([]maplib.Point, len(steps))
			for i, s := range steps {
				out[i] = s.Tile.Local()
			}
			return out
		}
	}
	return pathfind.WalkPath(from, to)
}

// Update advances the animation to now. Phases end at fixed deadlines, so a
// late frame runs every phase it missed. Returns true on the frame the player
// arrives.
func (a *PlayerAnimation) Update(p *core.Player, now time.Time) bool {
	for {
		switch p.Anim {
		case core.AnimIdle:
			return false

		case core.AnimInitialDelay:
			if now.Before(p.Deadline) {
				return false
			}
			p.Anim = core.AnimPrepareStep

		case core.AnimPrepareStep:
			// Deadline holds the moment the previous phase ended
			if len(p.Path) == 0 {
				snapVisual(p)
				return true
			}
			p.StepTarget = p.Path[0]
			p.Path = p.Path[1:]
			p.StepFromX, p.StepFromY = p.VisualX, p.VisualY
			p.Deadline = p.Deadline.Add(a.Timing.Step)
			p.Anim = core.AnimMoving

		case core.AnimMoving:
			if now.Before(p.Deadline) {
				elapsed := a.Timing.Step - p.Deadline.Sub(now)
				e := Ease(float64(elapsed) / float64(a.Timing.Step))
				p.VisualX = p.StepFromX + (float64(p.StepTarget.X)-p.StepFromX)*e
				p.VisualY = p.StepFromY + (float64(p.StepTarget.Y)-p.StepFromY)*e
				return false
			}
			p.VisualX, p.VisualY = float64(p.StepTarget.X), float64(p.StepTarget.Y)
			p.Deadline = p.Deadline.Add(a.Timing.Pause)
			p.Anim = core.AnimPaused

		case core.AnimPaused:
			if now.Before(p.Deadline) {
				return false
			}
			p.Anim = core.AnimPrepareStep

		default:
			snapVisual(p)
			return false
		}
	}
}

func snapVisual(p *core.Player) {
	p.Anim = core.AnimIdle
	p.Path = nil
	p.VisualX, p.VisualY = float64(p.LX), float64(p.LY)
}
