package game

import (
	"errors"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/isomap-engine/engine/command"
	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/input"
	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/1siamBot/isomap-engine/engine/render"
	"github.com/1siamBot/isomap-engine/engine/systems"
	"github.com/1siamBot/isomap-engine/engine/ui"
)

var background = color.RGBA{18, 22, 30, 255}

// Update reads input and advances one frame
func (e *Engine) Update() error {
	if e.loop.State != core.StatePlaying {
		return nil
	}
	e.input.Update()
	now := e.loop.Update()

	e.handleCamera()
	hover := e.renderer.Pick(float64(e.input.MouseX), float64(e.input.MouseY))
	e.hud.Hover(hover)

	if e.input.Clicked() {
		e.Click(hover)
	}
	if e.input.RightJustPressed {
		e.RightClick()
	}
	for _, a := range e.input.Actions() {
		e.Do(a)
	}

	e.step(now)
	return nil
}

// Step samples the clock and advances one frame without reading input. Hosts
// that drive the engine without a window call this instead of Update.
func (e *Engine) Step() {
	e.step(e.loop.Update())
}

// step applies queued commands and advances the state machines to now
func (e *Engine) step(now time.Time) {
	for _, text := range e.drain() {
		e.apply(text, now)
	}

	if e.selection.Tick(now) {
		e.emit(core.EvtSelectionCleared, nil)
	}
	if e.anim.Update(e.player, now) {
		e.arrived()
	}
	e.bus.Dispatch()
}

func (e *Engine) arrived() {
	t := e.grid.Tile(e.player.ChunkID, e.player.LX, e.player.LY)
	slog.Debug("player arrived", "at", e.player.Logical())
	if t == nil || t.Decoration == nil {
		return
	}
	if t.Herb != nil {
		e.hud.OpenHerb(t)
	}
	e.emit(core.EvtArrived, t)
}

func (e *Engine) handleCamera() {
	if dx, dy, ok := e.input.PanDelta(); ok {
		e.camera.Pan(dx, dy)
	}
	if e.input.ScrollY != 0 {
		e.camera.ZoomAt(e.input.ScrollY*e.cfg.Camera.ZoomStep,
			float64(e.input.MouseX), float64(e.input.MouseY), e.cfg.Tiles)
	}
}

// apply parses and applies one command. Malformed commands are dropped whole.
func (e *Engine) apply(text string, now time.Time) {
	cmd, err := command.Parse(text)
	if err != nil {
		if errors.Is(err, command.ErrMissingChunk) {
			slog.Warn("dropping command without chunk")
		} else {
			slog.Warn("dropping command", "error", err)
		}
		e.emit(core.EvtCommandRejected, err)
		return
	}

	if !e.grid.HasChunk(cmd.ChunkID) {
		off := e.freeOffset()
		e.grid.GenerateChunk(cmd.ChunkID, off, 0)
		slog.Info("generated chunk", "id", cmd.ID, "chunk", cmd.ChunkID, "offset_x", off)
	}

	res := cmd.Apply(e.grid, e.sprites.PickVariant(e.rng))
	slog.Info("command applied",
		"id", cmd.ID,
		"chunk", cmd.ChunkID,
		"decorated", res.Decorated,
		"hidden", res.Hidden,
		"revealed", res.Revealed,
		"regions", res.Regions,
		"herbs", res.Herbs,
		"trees", res.Trees,
		"npcs", res.NPCs)

	for _, m := range cmd.Messages {
		e.hud.AddMessage(m)
		e.emit(core.EvtMessage, m)
	}

	if cmd.Player != nil {
		e.movePlayer(cmd, now)
	}
	if e.recorder != nil {
		if err := e.recorder.Record(text); err != nil {
			slog.Warn("recording command", "id", cmd.ID, "error", err)
		}
	}
	e.emit(core.EvtCommandApplied, cmd)
}

// movePlayer applies a position update. With a previous position the move is
// committed and replayed, otherwise the player snaps.
func (e *Engine) movePlayer(cmd *command.Command, now time.Time) {
	to := *cmd.Player
	if e.grid.Tile(cmd.ChunkID, to.X, to.Y) == nil {
		slog.Warn("player position outside chunk", "id", cmd.ID, "chunk", cmd.ChunkID, "at", to)
		return
	}
	e.hud.CloseHerb()
	e.player.ChunkID = cmd.ChunkID

	if cmd.Previous == nil {
		e.selection.Reset()
		e.player.Snap(to.X, to.Y)
		slog.Info("player placed", "id", cmd.ID, "at", to)
		e.emit(core.EvtPlayerMoved, to)
		return
	}

	e.CommitMove()
	e.player.MoveFrom(*cmd.Previous, to.X, to.Y)
	replayed := e.anim.Replay(e.player, e.grid, now)
	e.hud.SetPopup(e.texts.Move(*cmd.Previous, to))
	slog.Info("player moved", "id", cmd.ID, "from", *cmd.Previous, "to", to, "replayed", replayed)
	e.emit(core.EvtPlayerMoved, to)
}

// Click handles a left click on t, nil for empty space. Ignored while the
// player is animating.
func (e *Engine) Click(t *maplib.Tile) {
	if e.player.Animating() {
		return
	}
	e.hud.CloseHerb()
	now := e.loop.Now()

	switch out := e.selection.Click(e.player, t, now); out {
	case systems.OutcomeRangeShown:
		e.emit(core.EvtRangeShown, len(e.selection.Moves))
	case systems.OutcomePathSelected:
		dest := e.selection.Destination()
		e.hud.SetPopup(e.texts.Move(e.player.Logical(), dest.Local()))
		slog.Debug("path selected", "to", dest.Local(), "cost", e.selection.Cost)
		e.emit(core.EvtPathSelected, dest)
	case systems.OutcomeInsufficient:
		cost := e.selection.Rejected
		e.hud.SetPopup(e.texts.Insufficient(cost, e.player.Stamina.Current))
		e.emit(core.EvtInsufficientStamina, Insufficient{Cost: cost, Available: e.player.Stamina.Current})
	case systems.OutcomeCleared:
		e.emit(core.EvtSelectionCleared, nil)
	}
}

// freeOffset returns a chunk offset right of every generated chunk
func (e *Engine) freeOffset() int {
	off := 0
	for _, id := range e.grid.ChunkIDs() {
		if p, _ := e.grid.ChunkOffset(id); p.X >= off {
			off = p.X + 1
		}
	}
	return off
}

// RightClick fades out the current selection
func (e *Engine) RightClick() {
	if e.selection.RightClick(e.loop.Now()) {
		slog.Debug("selection fading out")
	}
}

// Do runs a keyboard action
func (e *Engine) Do(a input.Action) {
	now := e.loop.Now()
	switch a {
	case input.ActionCycleMode:
		if e.player.Animating() {
			return
		}
		e.selection.Reset()
		e.player.Mode = e.player.Mode.Next()
		e.emit(core.EvtModeChanged, e.player.Mode)

	case input.ActionSense:
		if e.player.Animating() {
			return
		}
		e.selection.Sense(e.player, now)
		e.hud.SetPopup(e.texts.Sense(e.player.Logical()))
		e.emit(core.EvtSense, len(e.selection.Sensed))

	case input.ActionToggleRegions:
		e.renderer.SetShowRegions(!e.renderer.ShowRegions(), now)

	case input.ActionReplay:
		e.Replay()

	case input.ActionCopy:
		if err := e.hud.CopyPopup(); err != nil {
			slog.Warn("clipboard unavailable", "error", err)
			return
		}
		e.hud.AddMessage(e.texts.Copied())

	case input.ActionCancel:
		e.hud.CloseHerb()
		e.RightClick()

	case input.ActionHarvest:
		e.hud.ChooseHerbAction(ui.HerbActions[0])

	case input.ActionFeed:
		e.hud.ChooseHerbAction(ui.HerbActions[1])
	}
}

// Draw paints the map and the HUD
func (e *Engine) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	e.renderer.Draw(screen, render.Frame{
		Now:       e.loop.Now(),
		Player:    e.player,
		Selection: e.selection,
		CursorX:   float64(e.input.MouseX),
		CursorY:   float64(e.input.MouseY),
	})
	e.hud.Draw(screen, e.player, e.input.MouseX, e.input.MouseY)
}

func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.cfg.Window.Width, e.cfg.Window.Height
}
