package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/1siamBot/isomap-engine/engine/config"
	"github.com/1siamBot/isomap-engine/engine/iso"
	"github.com/1siamBot/isomap-engine/engine/maplib"
)

func TestPickTile_MatchesHitTop(t *testing.T) {
	g := maplib.NewGrid()
	g.GenerateChunk(1, 0, 0)
	cam := iso.NewCamera()
	cam.PanX, cam.PanY = 400, 50
	m := iso.DefaultMetrics()

	want := g.Tile(1, 4, 7)
	cx, cy := iso.TopCenter(float64(want.GX), float64(want.GY), cam, m)
	got := PickTile(g, cx, cy, cam, m)
	if got != want {
		t.Fatalf("picked %+v, want tile (4,7)", got)
	}
	if PickTile(g, -500, -500, cam, m) != nil {
		t.Fatal("a point off the map should pick nothing")
	}
}

func TestPickTile_FrontMostWins(t *testing.T) {
	g := maplib.NewGrid()
	g.GenerateChunk(1, 0, 0)
	cam := iso.NewCamera()
	m := iso.DefaultMetrics()

	// A point on the shared bottom edge belongs to exactly one diamond; the
	// picked tile must be the one whose top face contains it.
	x, y := iso.GridToScreen(3, 3, cam, m)
	got := PickTile(g, x, y+m.Height, cam, m)
	if got == nil {
		t.Fatal("expected a tile")
	}
	if !iso.HitTop(got.GX, got.GY, x, y+m.Height, cam, m) {
		t.Fatal("picked tile should contain the point")
	}
}

func TestDownscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	out := Downscale(src, 100)
	testutil.AssertEqual(t, "width", out.Bounds().Dx(), 100)
	testutil.AssertEqual(t, "height", out.Bounds().Dy(), 50)

	small := image.NewRGBA(image.Rect(0, 0, 20, 20))
	if Downscale(small, 100) != image.Image(small) {
		t.Fatal("small images are returned unchanged")
	}
}

func TestProceduralMountain_Deterministic(t *testing.T) {
	a := ProceduralMountain(2, 7, 64, 48)
	b := ProceduralMountain(2, 7, 64, 48)
	testutil.AssertEqual(t, "size", a.Bounds(), image.Rect(0, 0, 64, 48))
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("same index and seed should rasterize identically")
		}
	}
}

func TestSpriteManager_ProceduralFallback(t *testing.T) {
	sm := NewSpriteManager(config.AssetConfig{ProceduralMountains: 3})
	testutil.AssertEqual(t, "mountain variants", sm.Variants(maplib.DecorMountain), 3)
	testutil.AssertEqual(t, "herb variants", sm.Variants(maplib.DecorHerb), 0)

	key := sm.DecorationKey(&maplib.Decoration{Kind: maplib.DecorMountain, Variant: 4})
	testutil.AssertEqual(t, "key", key, "procedural:mountain:1")
	testutil.AssertEqual(t, "no herb sprite", sm.DecorationKey(&maplib.Decoration{Kind: maplib.DecorHerb}), "")

	sm.Prefetch(key)
	sm.Prefetch(key)
	sm.Wait()
	if _, ok := sm.Decoded(key); !ok {
		t.Fatal("procedural sprite should decode")
	}
}

func TestSpriteManager_FileLoading(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 512, 256))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(filepath.Join(dir, "herb.png"))
	if err != nil {
		t.Fatalf("creating sprite: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding sprite: %v", err)
	}
	f.Close()

	sm := NewSpriteManager(config.AssetConfig{
		Dir:         dir,
		Decorations: map[string][]string{"H": {"herb.png"}, "X": {"bad.png"}},
	})
	testutil.AssertEqual(t, "herb variants", sm.Variants(maplib.DecorHerb), 1)

	sm.Prefetch("herb.png")
	sm.Prefetch("missing.png")
	sm.Wait()

	decoded, ok := sm.Decoded("herb.png")
	if !ok {
		t.Fatal("herb sprite should decode")
	}
	testutil.AssertEqual(t, "downscaled", decoded.Bounds().Dx(), MaxSpriteWidth)
	testutil.AssertEqual(t, "missing fails", sm.Failed("missing.png"), true)
}

func TestTokenShape_SidesCovered(t *testing.T) {
	const cx, cy, rx, ry, thick = 100.0, 100.0, 16.0, 8.0, 10.0
	band, top := tokenShape(cx, cy, rx, ry, thick)

	tests := map[string]struct {
		p             iso.Point
		inBand, inTop bool
	}{
		"left side":   {p: iso.Point{X: cx - 0.9*rx, Y: cy - thick/2}, inBand: true},
		"right side":  {p: iso.Point{X: cx + 0.9*rx, Y: cy - thick/2}, inBand: true},
		"front":       {p: iso.Point{X: cx, Y: cy + ry/2}, inBand: true},
		"top face":    {p: iso.Point{X: cx, Y: cy - thick}, inTop: true},
		"above token": {p: iso.Point{X: cx, Y: cy - thick - 2*ry}},
		"beside":      {p: iso.Point{X: cx + 2*rx, Y: cy}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "band", band.Contains(tt.p), tt.inBand)
			testutil.AssertEqual(t, "top", top.Contains(tt.p), tt.inTop)
		})
	}
}

func TestTokenShape_BandEndsOnRim(t *testing.T) {
	band, _ := tokenShape(50, 50, 10, 5, 6)
	first, last := band[0], band[len(band)-1]
	testutil.AssertEqual(t, "first x", first.X, 60.0)
	testutil.AssertEqual(t, "first y", first.Y, 50.0)
	if math.Abs(last.X-60) > 1e-9 || math.Abs(last.Y-44) > 1e-9 {
		t.Fatalf("band closes at (%f,%f), want (60,44)", last.X, last.Y)
	}
}

func TestDrawOptions_PremultipliedScale(t *testing.T) {
	op := drawOptions(color.RGBA{R: 255, G: 0, B: 51, A: 102})
	testutil.AssertEqual(t, "antialias", op.AntiAlias, true)

	a := 102.0 / 255
	want := []float64{a, 0, 51.0 / 255 * a, a}
	got := []float32{op.ColorScale.R(), op.ColorScale.G(), op.ColorScale.B(), op.ColorScale.A()}
	for i := range want {
		if math.Abs(float64(got[i])-want[i]) > 1e-5 {
			t.Fatalf("channel %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestPaletteFrom(t *testing.T) {
	p := PaletteFrom(config.Default().Colors)
	testutil.AssertEqual(t, "path", p.Path, color.RGBA{0xff, 0xc1, 0x07, 0xff})
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(color.RGBA{10, 20, 30, 200}, 0.5)
	testutil.AssertEqual(t, "alpha", c.A, uint8(100))
	testutil.AssertEqual(t, "clamped", withAlpha(color.RGBA{A: 255}, 2).A, uint8(255))
}
