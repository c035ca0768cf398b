// Package game wires the map, player, state machines, renderer and HUD into
// an ebiten.Game. Map data arrives as command text through Submit.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/1siamBot/isomap-engine/engine/command"
	"github.com/1siamBot/isomap-engine/engine/config"
	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/input"
	"github.com/1siamBot/isomap-engine/engine/iso"
	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/1siamBot/isomap-engine/engine/pathfind"
	"github.com/1siamBot/isomap-engine/engine/render"
	"github.com/1siamBot/isomap-engine/engine/systems"
	"github.com/1siamBot/isomap-engine/engine/ui"
)

// Option customises an Engine at construction
type Option func(*Engine)

// WithClock replaces the wall clock, mostly for tests
func WithClock(c core.Clock) Option {
	return func(e *Engine) {
		e.loop = core.NewGameLoop(c)
	}
}

// WithSprites replaces the sprite manager built from the asset config
func WithSprites(sm *render.SpriteManager) Option {
	return func(e *Engine) {
		e.sprites = sm
	}
}

// WithRecorder writes every applied command to rec so the session can be
// played back as a script
func WithRecorder(rec *command.Recorder) Option {
	return func(e *Engine) {
		e.recorder = rec
	}
}

// Engine implements ebiten.Game
type Engine struct {
	cfg *config.Config

	grid      *maplib.Grid
	camera    *iso.Camera
	player    *core.Player
	planner   *pathfind.Planner
	selection *systems.Selection
	anim      *systems.PlayerAnimation
	bus       *core.EventBus
	loop      *core.GameLoop

	sprites  *render.SpriteManager
	renderer *render.IsoRenderer
	texts    *ui.Texts
	hud      *ui.HUD
	input    *input.InputState
	rng      *rand.Rand
	recorder *command.Recorder

	mu    sync.Mutex
	queue []string
}

// New builds an engine from a validated config. Nothing runs until Start.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	animTiming, err := cfg.Animation.Timing()
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}
	selTiming, err := cfg.Selection.Timing()
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}
	reveal, err := cfg.Selection.RegionRevealDuration()
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	e := &Engine{
		cfg:     cfg,
		grid:    maplib.NewGrid(),
		camera:  cfg.Camera.Camera(),
		planner: cfg.Movement.Planner(),
		bus:     core.NewEventBus(),
		loop:    core.NewGameLoop(core.SystemClock{}),
		input:   input.NewInputState(),
		rng:     rand.New(rand.NewSource(cfg.Assets.Seed)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sprites == nil {
		e.sprites = render.NewSpriteManager(cfg.Assets)
	}

	for _, ch := range cfg.Chunks {
		e.grid.GenerateChunk(ch.ID, ch.X, ch.Y)
	}
	e.grid.OnDecorate = e.sprites.PrefetchTile

	e.player = core.NewPlayer(cfg.Player.Chunk, cfg.Player.X, cfg.Player.Y, cfg.Movement.Stamina)
	e.player.Name = cfg.Player.Name
	e.player.Portrait = cfg.Player.Portrait
	e.sprites.Prefetch(e.player.Portrait)

	e.selection = systems.NewSelection(e.grid, e.planner, selTiming)
	e.anim = systems.NewPlayerAnimation(animTiming, e.planner)

	e.renderer = render.NewIsoRenderer(e.grid, e.camera, cfg.Tiles, e.sprites, render.PaletteFrom(cfg.Colors))
	e.renderer.RegionReveal = reveal
	e.renderer.SetShowRegions(cfg.ShowRegions, e.loop.Now())

	e.texts = ui.NewTexts(cfg.Text)
	e.hud, err = ui.NewHUD(cfg.Window.Width, cfg.Window.Height, e.texts)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	e.centerOnPlayer()
	return e, nil
}

// Start begins the frame loop
func (e *Engine) Start() {
	e.loop.Play()
	slog.Info("engine started",
		"chunks", len(e.cfg.Chunks),
		"tiles", e.grid.Len(),
		"player", e.player.Logical(),
		"mode", e.player.Mode.String())
}

// Submit queues command text; it is applied at the start of the next update.
// Safe to call from any goroutine.
func (e *Engine) Submit(text string) {
	e.mu.Lock()
	e.queue = append(e.queue, text)
	e.mu.Unlock()
}

func (e *Engine) drain() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	q := e.queue
	e.queue = nil
	return q
}

// CommitMove finalises the stamina reserved by the selected path
func (e *Engine) CommitMove() {
	e.player.Stamina.Commit()
	e.selection.Committed()
}

// Replay re-runs the animation of the player's last move
func (e *Engine) Replay() bool {
	return e.anim.Replay(e.player, e.grid, e.loop.Now())
}

func (e *Engine) Camera() *iso.Camera {
	return e.camera
}

func (e *Engine) Grid() *maplib.Grid {
	return e.grid
}

func (e *Engine) Player() *core.Player {
	return e.player
}

func (e *Engine) Selection() *systems.Selection {
	return e.selection
}

func (e *Engine) HUD() *ui.HUD {
	return e.hud
}

// PlayerVisual returns the player's rendered position in local tile units
func (e *Engine) PlayerVisual() (float64, float64) {
	return e.player.VisualX, e.player.VisualY
}

// OnArrival registers fn for arrivals on a decorated tile
func (e *Engine) OnArrival(fn func(*maplib.Tile)) {
	e.bus.On(core.EvtArrived, func(ev core.Event) {
		if t, ok := ev.Payload.(*maplib.Tile); ok {
			fn(t)
		}
	})
}

// Insufficient is the payload of a move rejected for stamina
type Insufficient struct {
	Cost      float64
	Available float64
}

// OnInsufficient registers fn for moves rejected for stamina
func (e *Engine) OnInsufficient(fn func(Insufficient)) {
	e.bus.On(core.EvtInsufficientStamina, func(ev core.Event) {
		if p, ok := ev.Payload.(Insufficient); ok {
			fn(p)
		}
	})
}

// On registers a raw event handler
func (e *Engine) On(t core.EventType, h core.EventHandler) {
	e.bus.On(t, h)
}

func (e *Engine) emit(t core.EventType, payload any) {
	e.bus.Emit(core.Event{Type: t, Frame: e.loop.Frames, Payload: payload})
}

func (e *Engine) centerOnPlayer() {
	gx, gy, ok := e.grid.ToGlobal(e.player.ChunkID, e.player.VisualX, e.player.VisualY)
	if !ok {
		return
	}
	e.camera.CenterOn(gx, gy, float64(e.cfg.Window.Width)/2, float64(e.cfg.Window.Height)/3, e.cfg.Tiles)
}
