package systems

import (
	"testing"
	"time"

	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/pixil98/go-testutil"
)

func newSelection() (*Selection, *maplib.Grid, *core.Player) {
	g := testGrid()
	p := core.NewPlayer(1, 5, 5, 100)
	return NewSelection(g, nil, DefaultSelectionTiming()), g, p
}

func TestSelection_RoundTrip(t *testing.T) {
	s, g, p := newSelection()
	before := p.Stamina

	testutil.AssertEqual(t, "show", s.Click(p, g.Tile(1, 5, 5), epoch), OutcomeRangeShown)
	testutil.AssertEqual(t, "state", s.State, SelShowingRange)
	testutil.AssertEqual(t, "moves", len(s.Moves), 12)

	testutil.AssertEqual(t, "hide", s.Click(p, g.Tile(1, 5, 5), epoch), OutcomeCleared)
	testutil.AssertEqual(t, "state", s.State, SelIdle)
	testutil.AssertEqual(t, "moves cleared", len(s.Moves), 0)
	testutil.AssertEqual(t, "stamina", p.Stamina, before)
}

func TestSelection_IdleClickElsewhere(t *testing.T) {
	s, g, p := newSelection()
	testutil.AssertEqual(t, "outcome", s.Click(p, g.Tile(1, 1, 1), epoch), OutcomeNone)
	testutil.AssertEqual(t, "state", s.State, SelIdle)
}

func TestSelection_PathReservesStamina(t *testing.T) {
	s, g, p := newSelection()
	g.AddRegion(maplib.NewRegion(1, 1, 1, 10, 7, 3))

	s.Click(p, g.Tile(1, 5, 5), epoch)
	out := s.Click(p, g.Tile(1, 5, 7), epoch)
	testutil.AssertEqual(t, "outcome", out, OutcomePathSelected)
	testutil.AssertEqual(t, "state", s.State, SelShowingPath)
	testutil.AssertEqual(t, "path", len(s.Path), 2)
	testutil.AssertEqual(t, "cost", s.Cost, 60.0)
	testutil.AssertEqual(t, "reserved", p.Stamina.Current, 40.0)
	testutil.AssertEqual(t, "destination", s.Destination().Local(), maplib.Point{X: 5, Y: 7})

	// any click on a shown path cancels and refunds
	testutil.AssertEqual(t, "cancel", s.Click(p, g.Tile(1, 9, 9), epoch), OutcomeCleared)
	testutil.AssertEqual(t, "refunded", p.Stamina.Current, 100.0)
}

func TestSelection_Insufficient(t *testing.T) {
	s, g, p := newSelection()
	p.Stamina = core.NewStamina(15)

	s.Click(p, g.Tile(1, 5, 5), epoch)
	testutil.AssertEqual(t, "outcome", s.Click(p, g.Tile(1, 6, 6), epoch), OutcomeInsufficient)
	testutil.AssertEqual(t, "state", s.State, SelIdle)
	testutil.AssertEqual(t, "stamina", p.Stamina.Current, 15.0)
}

func TestSelection_InvalidTile(t *testing.T) {
	s, g, p := newSelection()
	s.Click(p, g.Tile(1, 5, 5), epoch)
	testutil.AssertEqual(t, "outcome", s.Click(p, g.Tile(1, 9, 9), epoch), OutcomeCleared)
	testutil.AssertEqual(t, "state", s.State, SelIdle)
}

func TestSelection_RightClickFadesOut(t *testing.T) {
	s, g, p := newSelection()
	s.Click(p, g.Tile(1, 5, 5), epoch)
	s.Click(p, g.Tile(1, 6, 5), epoch)
	testutil.AssertEqual(t, "reserved", p.Stamina.Current, 90.0)

	fade := epoch.Add(time.Second)
	if !s.RightClick(fade) {
		t.Fatal("right click should start a fade")
	}
	testutil.AssertEqual(t, "state", s.State, SelFadingOut)
	testutil.AssertEqual(t, "refunded", p.Stamina.Current, 100.0)

	h := s.Highlight(g.Tile(1, 6, 5), fade.Add(150*time.Millisecond))
	testutil.AssertEqual(t, "kind", h.Kind, HighlightPath)
	testutil.AssertEqual(t, "half faded", h.Alpha, 0.35)

	testutil.AssertEqual(t, "early tick", s.Tick(fade.Add(299*time.Millisecond)), false)
	testutil.AssertEqual(t, "done", s.Tick(fade.Add(300*time.Millisecond)), true)
	testutil.AssertEqual(t, "state", s.State, SelIdle)
}

func TestSelection_RightClickIdleNoop(t *testing.T) {
	s, _, _ := newSelection()
	testutil.AssertEqual(t, "noop", s.RightClick(epoch), false)
	testutil.AssertEqual(t, "state", s.State, SelIdle)
}

func TestSelection_CommittedDoesNotRefund(t *testing.T) {
	s, g, p := newSelection()
	s.Click(p, g.Tile(1, 5, 5), epoch)
	s.Click(p, g.Tile(1, 5, 6), epoch)
	p.Stamina.Commit()
	s.Committed()
	testutil.AssertEqual(t, "base", p.Stamina.Base, 90.0)
	testutil.AssertEqual(t, "current", p.Stamina.Current, 90.0)
	testutil.AssertEqual(t, "state", s.State, SelIdle)
}

func TestSelection_RangeRipple(t *testing.T) {
	s, g, p := newSelection()
	s.Click(p, g.Tile(1, 5, 5), epoch)

	near := g.Tile(1, 6, 5)
	far := g.Tile(1, 7, 5)
	at := epoch.Add(250 * time.Millisecond)

	testutil.AssertEqual(t, "far not started", s.Highlight(far, epoch.Add(100*time.Millisecond)).Alpha, 0.0)
	testutil.AssertEqual(t, "far", s.Highlight(far, at).Alpha, 0.3)
	if s.Highlight(near, at).Alpha <= s.Highlight(far, at).Alpha {
		t.Fatal("nearer tiles should reveal first")
	}
	testutil.AssertEqual(t, "full", s.Highlight(far, epoch.Add(time.Second)).Alpha, 0.6)
	testutil.AssertEqual(t, "origin", s.Highlight(g.Tile(1, 5, 5), at).Kind, HighlightNone)
}

func TestSelection_PathRing(t *testing.T) {
	s, g, p := newSelection()
	s.Click(p, g.Tile(1, 5, 5), epoch)
	s.Click(p, g.Tile(1, 7, 5), epoch)

	last := g.Tile(1, 7, 5)
	// step 2 starts 100ms late and needs 80% of 300ms
	testutil.AssertEqual(t, "no ring yet", s.Highlight(last, epoch.Add(330*time.Millisecond)).Ring, false)
	testutil.AssertEqual(t, "ring", s.Highlight(last, epoch.Add(350*time.Millisecond)).Ring, true)
	testutil.AssertEqual(t, "intermediate never rings", s.Highlight(g.Tile(1, 6, 5), epoch.Add(time.Second)).Ring, false)
}

func TestSelection_Sense(t *testing.T) {
	s, g, p := newSelection()
	s.Sense(p, epoch)
	testutil.AssertEqual(t, "state", s.State, SelSensing)
	// 1 + 4 + 8 + 12
	testutil.AssertEqual(t, "tiles", len(s.Sensed), 25)

	h := s.Highlight(g.Tile(1, 5, 5), epoch.Add(time.Second))
	testutil.AssertEqual(t, "origin kind", h.Kind, HighlightSense)
	testutil.AssertEqual(t, "origin alpha", h.Alpha, 0.6)
	testutil.AssertEqual(t, "outside", s.Highlight(g.Tile(1, 9, 9), epoch).Kind, HighlightNone)

	testutil.AssertEqual(t, "click clears", s.Click(p, g.Tile(1, 1, 1), epoch), OutcomeCleared)
}

func TestSelection_ModeRange(t *testing.T) {
	s, g, p := newSelection()
	p.Mode = core.ModeRun
	s.Click(p, g.Tile(1, 5, 5), epoch)
	// 4 + 8 + 12
	testutil.AssertEqual(t, "run range", len(s.Moves), 24)
}
