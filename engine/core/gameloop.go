package core

import "time"

// GameState represents the overall engine state
type GameState uint8

const (
	StateLoading GameState = iota
	StatePlaying
	StatePaused
)

// Clock supplies frame timestamps
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall-clock time
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Used by tests and scripted replays.
type ManualClock struct {
	T time.Time
}

func (c *ManualClock) Now() time.Time { return c.T }

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

// GameLoop samples the clock once per frame. Every state machine in the
// engine is a function of the frame timestamp, so a dropped frame is caught
// up on the next one.
type GameLoop struct {
	State  GameState
	Clock  Clock
	Frames uint64
	now    time.Time
}

// NewGameLoop creates a loop in the loading state
func NewGameLoop(c Clock) *GameLoop {
	if c == nil {
		c = SystemClock{}
	}
	return &GameLoop{
		Clock: c,
		now:   c.Now(),
	}
}

// Update should be called every frame. It returns the frame timestamp.
func (gl *GameLoop) Update() time.Time {
	gl.now = gl.Clock.Now()
	if gl.State == StatePlaying {
		gl.Frames++
	}
	return gl.now
}

// Now returns the timestamp sampled by the last Update
func (gl *GameLoop) Now() time.Time {
	return gl.now
}

// Play starts or resumes the loop
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.now = gl.Clock.Now()
}

// Pause pauses the loop
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}
