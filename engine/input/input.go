package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a keyboard command understood by the engine
type Action uint8

const (
	ActionNone Action = iota
	ActionCycleMode
	ActionSense
	ActionToggleRegions
	ActionReplay
	ActionCopy
	ActionCancel
	ActionHarvest
	ActionFeed
)

func (a Action) String() string {
	switch a {
	case ActionCycleMode:
		return "cycle_mode"
	case ActionSense:
		return "sense"
	case ActionToggleRegions:
		return "toggle_regions"
	case ActionReplay:
		return "replay"
	case ActionCopy:
		return "copy"
	case ActionCancel:
		return "cancel"
	case ActionHarvest:
		return "harvest"
	case ActionFeed:
		return "feed"
	}
	return "none"
}

// DefaultBindings maps keys to actions
var DefaultBindings = map[ebiten.Key]Action{
	ebiten.KeyTab:    ActionCycleMode,
	ebiten.KeyS:      ActionSense,
	ebiten.KeyR:      ActionToggleRegions,
	ebiten.KeySpace:  ActionReplay,
	ebiten.KeyC:      ActionCopy,
	ebiten.KeyEscape: ActionCancel,
	ebiten.KeyH:      ActionHarvest,
	ebiten.KeyF:      ActionFeed,
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	prevMouseX       int
	prevMouseY       int
	LeftPressed      bool
	LeftJustPressed  bool
	LeftJustReleased bool
	RightJustPressed bool
	ScrollY          float64

	// Drag
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int
	dragged                bool // the current press turned into a drag

	// Keyboard
	Bindings map[ebiten.Key]Action
	actions  []Action
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
		Bindings:      DefaultBindings,
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()

	_, s.ScrollY = ebiten.Wheel()

	s.Track(
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	)
	s.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	s.actions = s.actions[:0]
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a, ok := s.Bindings[k]; ok {
			s.actions = append(s.actions, a)
		}
	}
}

// Track updates the drag state from the left button. Split from Update so
// the drag rules can run without a window.
func (s *InputState) Track(down, justPressed, justReleased bool) {
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY
	s.LeftPressed = down
	s.LeftJustPressed = justPressed
	s.LeftJustReleased = justReleased

	if justPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
		s.dragged = false
	}
	if down && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
			s.dragged = true
		}
	}
	if !down {
		s.Dragging = false
	}
}

// SetCursor moves the tracked cursor; Update does this from the window
func (s *InputState) SetCursor(x, y int) {
	s.prevMouseX, s.prevMouseY = s.MouseX, s.MouseY
	s.MouseX, s.MouseY = x, y
}

// Clicked reports a left click: released this frame without having dragged
func (s *InputState) Clicked() bool {
	return s.LeftJustReleased && !s.dragged
}

// PanDelta returns the camera pan for this frame while dragging
func (s *InputState) PanDelta() (float64, float64, bool) {
	if !s.Dragging {
		return 0, 0, false
	}
	return float64(s.MouseDX), float64(s.MouseDY), true
}

// Actions returns the bound keys pressed this frame
func (s *InputState) Actions() []Action {
	return s.actions
}
