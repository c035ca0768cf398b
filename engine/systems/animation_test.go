package systems

import (
	"testing"
	"time"

	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/pixil98/go-testutil"
)

var epoch = time.Unix(1700000000, 0)

func testGrid() *maplib.Grid {
	g := maplib.NewGrid()
	g.GenerateChunk(1, 0, 0)
	return g
}

func movedPlayer(from, to maplib.Point) *core.Player {
	p := core.NewPlayer(1, from.X, from.Y, 100)
	p.MoveFrom(from, to.X, to.Y)
	return p
}

func TestEase(t *testing.T) {
	testutil.AssertEqual(t, "start", Ease(0), 0.0)
	testutil.AssertEqual(t, "end", Ease(1), 1.0)
	testutil.AssertEqual(t, "middle", Ease(0.5), 0.5)

	prev := Ease(0)
	for i := 1; i <= 1000; i++ {
		v := Ease(float64(i) / 1000)
		if v < prev {
			t.Fatalf("ease decreased at %d: %f < %f", i, v, prev)
		}
		prev = v
	}
}

func TestReplay_Converges(t *testing.T) {
	g := testGrid()
	a := NewPlayerAnimation(DefaultAnimationTiming(), nil)
	p := movedPlayer(maplib.Point{X: 2, Y: 2}, maplib.Point{X: 3, Y: 3})

	if !a.Replay(p, g, epoch) {
		t.Fatal("replay should start")
	}
	testutil.AssertEqual(t, "visual starts at prev", p.VisualX, 2.0)
	testutil.AssertEqual(t, "state", p.Anim, core.AnimInitialDelay)

	arrived := false
	now := epoch
	for i := 0; i < 200 && !arrived; i++ {
		now = now.Add(16 * time.Millisecond)
		arrived = a.Update(p, now)
	}
	if !arrived {
		t.Fatal("animation never arrived")
	}
	testutil.AssertEqual(t, "state", p.Anim, core.AnimIdle)
	testutil.AssertEqual(t, "visual x", p.VisualX, 3.0)
	testutil.AssertEqual(t, "visual y", p.VisualY, 3.0)
}

func TestReplay_Timeline(t *testing.T) {
	g := testGrid()
	a := NewPlayerAnimation(DefaultAnimationTiming(), nil)
	p := movedPlayer(maplib.Point{X: 2, Y: 2}, maplib.Point{X: 4, Y: 2})
	a.Replay(p, g, epoch)

	a.Update(p, epoch.Add(499*time.Millisecond))
	testutil.AssertEqual(t, "still waiting", p.Anim, core.AnimInitialDelay)

	// halfway through the first step
	a.Update(p, epoch.Add(800*time.Millisecond))
	testutil.AssertEqual(t, "moving", p.Anim, core.AnimMoving)
	testutil.AssertEqual(t, "halfway", p.VisualX, 2.5)

	// first step done, pausing on the intermediate tile
	a.Update(p, epoch.Add(1150*time.Millisecond))
	testutil.AssertEqual(t, "paused", p.Anim, core.AnimPaused)
	testutil.AssertEqual(t, "intermediate", p.VisualX, 3.0)

	// 500 + 2*600 + 2*200
	if !a.Update(p, epoch.Add(2100*time.Millisecond)) {
		t.Fatal("expected arrival after the final pause")
	}
}

func TestUpdate_LateFrameCatchesUp(t *testing.T) {
	g := testGrid()
	a := NewPlayerAnimation(DefaultAnimationTiming(), nil)
	p := movedPlayer(maplib.Point{X: 1, Y: 1}, maplib.Point{X: 2, Y: 2})
	a.Replay(p, g, epoch)

	if !a.Update(p, epoch.Add(time.Minute)) {
		t.Fatal("a single late frame should finish the whole replay")
	}
	testutil.AssertEqual(t, "x", p.VisualX, 2.0)
	testutil.AssertEqual(t, "y", p.VisualY, 2.0)
	testutil.AssertEqual(t, "idle", a.Update(p, epoch.Add(2*time.Minute)), false)
}

func TestReplay_LastCallWins(t *testing.T) {
	g := testGrid()
	a := NewPlayerAnimation(DefaultAnimationTiming(), nil)
	p := movedPlayer(maplib.Point{X: 5, Y: 5}, maplib.Point{X: 6, Y: 5})
	a.Replay(p, g, epoch)
	a.Update(p, epoch.Add(700*time.Millisecond))

	p.MoveFrom(maplib.Point{X: 6, Y: 5}, 6, 7)
	a.Replay(p, g, epoch.Add(700*time.Millisecond))
	testutil.AssertEqual(t, "restarted", p.Anim, core.AnimInitialDelay)
	testutil.AssertEqual(t, "visual reset", p.VisualX, 6.0)
	testutil.AssertEqual(t, "visual reset y", p.VisualY, 5.0)
	testutil.AssertEqual(t, "queued steps", len(p.Path), 2)
}

func TestReplay_MissingTileSnaps(t *testing.T) {
	g := testGrid()
	a := NewPlayerAnimation(DefaultAnimationTiming(), nil)
	p := movedPlayer(maplib.Point{X: 10, Y: 10}, maplib.Point{X: 11, Y: 10})

	if a.Replay(p, g, epoch) {
		t.Fatal("replay onto a missing tile should snap")
	}
	testutil.AssertEqual(t, "idle", p.Anim, core.AnimIdle)
	testutil.AssertEqual(t, "x", p.VisualX, 11.0)
}

func TestReplay_NoPrevious(t *testing.T) {
	g := testGrid()
	a := NewPlayerAnimation(DefaultAnimationTiming(), nil)
	p := core.NewPlayer(1, 4, 4, 100)
	testutil.AssertEqual(t, "replayed", a.Replay(p, g, epoch), false)
}

func TestReplay_LongMoveWalksEveryTile(t *testing.T) {
	g := testGrid()
	a := NewPlayerAnimation(DefaultAnimationTiming(), nil)
	p := movedPlayer(maplib.Point{X: 1, Y: 1}, maplib.Point{X: 3, Y: 2})
	a.Replay(p, g, epoch)
	testutil.AssertEqual(t, "steps", len(p.Path), 3)
}
