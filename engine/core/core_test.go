package core

import (
	"testing"
	"time"

	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/pixil98/go-testutil"
)

func TestStamina_ReserveRefund(t *testing.T) {
	s := NewStamina(100)
	if !s.Reserve(30) {
		t.Fatal("reserve within budget should succeed")
	}
	testutil.AssertEqual(t, "current", s.Current, 70.0)
	testutil.AssertEqual(t, "pending", s.Pending(), true)

	// a second reservation replaces the first
	s.Reserve(50)
	testutil.AssertEqual(t, "replaced", s.Current, 50.0)

	s.Refund()
	testutil.AssertEqual(t, "refunded", s.Current, 100.0)
	testutil.AssertEqual(t, "pending", s.Pending(), false)
}

func TestStamina_Insufficient(t *testing.T) {
	s := NewStamina(20)
	if s.Reserve(30) {
		t.Fatal("reserve beyond budget should fail")
	}
	testutil.AssertEqual(t, "current", s.Current, 20.0)
}

func TestStamina_CommitSurvivesRefund(t *testing.T) {
	s := NewStamina(100)
	s.Reserve(60)
	s.Commit()
	s.Refund()
	testutil.AssertEqual(t, "base", s.Base, 40.0)
	testutil.AssertEqual(t, "current", s.Current, 40.0)
}

func TestStamina_Fraction(t *testing.T) {
	s := NewStamina(100)
	s.Reserve(30)
	testutil.AssertEqual(t, "pending", s.Pending(), true)
	testutil.AssertEqual(t, "fraction", s.Fraction(), 0.7)
	testutil.AssertEqual(t, "empty pool", (&Stamina{}).Fraction(), 0.0)
}

func TestMode_Cycle(t *testing.T) {
	m := ModeWalk
	ranges := []int{}
	for i := 0; i < 4; i++ {
		ranges = append(ranges, m.Range())
		m = m.Next()
	}
	testutil.AssertEqual(t, "wraps", m, ModeWalk)
	want := []int{2, 3, 1, 1}
	for i := range want {
		testutil.AssertEqual(t, "range", ranges[i], want[i])
	}
}

func TestPlayer_SnapAndMove(t *testing.T) {
	p := NewPlayer(1, 3, 4, 100)
	testutil.AssertEqual(t, "visual x", p.VisualX, 3.0)
	testutil.AssertEqual(t, "visual y", p.VisualY, 4.0)

	p.MoveFrom(p.Logical(), 4, 4)
	testutil.AssertEqual(t, "prev", p.Previous(), maplib.Point{X: 3, Y: 4})
	testutil.AssertEqual(t, "has prev", p.HasPrev, true)
	// visual waits for the replay
	testutil.AssertEqual(t, "visual unchanged", p.VisualX, 3.0)
}

func TestEventBus_DispatchOrder(t *testing.T) {
	bus := NewEventBus()
	var got []EventType
	bus.On(EvtPathSelected, func(e Event) {
		got = append(got, e.Type)
		bus.Emit(Event{Type: EvtSelectionCleared})
	})
	bus.On(EvtSelectionCleared, func(e Event) { got = append(got, e.Type) })

	bus.Emit(Event{Type: EvtPathSelected})
	bus.Dispatch()

	testutil.AssertEqual(t, "count", len(got), 2)
	testutil.AssertEqual(t, "chained", got[1], EvtSelectionCleared)
	testutil.AssertEqual(t, "drained", bus.Pending(), 0)
}

func TestGameLoop_ManualClock(t *testing.T) {
	clk := &ManualClock{T: time.Unix(100, 0)}
	gl := NewGameLoop(clk)
	gl.Play()
	clk.Advance(250 * time.Millisecond)
	now := gl.Update()
	testutil.AssertEqual(t, "now", now, time.Unix(100, 0).Add(250*time.Millisecond))
	testutil.AssertEqual(t, "frames", gl.Frames, uint64(1))

	gl.Pause()
	gl.Update()
	testutil.AssertEqual(t, "paused frames", gl.Frames, uint64(1))
}
