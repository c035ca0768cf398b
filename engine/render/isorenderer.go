package render

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/isomap-engine/engine/config"
	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/iso"
	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/1siamBot/isomap-engine/engine/systems"
)

const (
	decorationScale = 0.8
	herbScale       = 0.65
	npcScale        = 0.7
	herbGround      = 0.25
	decorGround     = 0.5

	tokenRadius    = 0.25 // of tile width
	tokenThickness = 10.0
	hiddenAlpha    = 0.4
	hoverDarken    = 0.8
)

// Palette holds the parsed overlay and face colours
type Palette struct {
	Range, Path, Sense, Region color.RGBA
	Top, Left, Right           color.RGBA
}

// PaletteFrom parses a validated colour config
func PaletteFrom(c config.ColorConfig) Palette {
	return Palette{
		Range:  config.MustColor(c.Range),
		Path:   config.MustColor(c.Path),
		Sense:  config.MustColor(c.Sense),
		Region: config.MustColor(c.Region),
		Top:    config.MustColor(c.Top),
		Left:   config.MustColor(c.Left),
		Right:  config.MustColor(c.Right),
	}
}

// placeholder colours per decoration kind, drawn while sprites load
var placeholderColors = map[maplib.DecorationKind]color.RGBA{
	maplib.DecorMountain: {120, 110, 100, 255},
	maplib.DecorHerb:     {90, 170, 80, 255},
	maplib.DecorTree:     {40, 110, 50, 255},
}

// Frame is the state the renderer paints
type Frame struct {
	Now       time.Time
	Player    *core.Player
	Selection *systems.Selection
	CursorX   float64
	CursorY   float64
}

// IsoRenderer paints the tile map, overlays and the player token
type IsoRenderer struct {
	Grid         *maplib.Grid
	Camera       *iso.Camera
	Metrics      iso.TileMetrics
	Sprites      *SpriteManager
	Palette      Palette
	RegionReveal time.Duration

	showRegions  bool
	regionsShown time.Time
}

func NewIsoRenderer(g *maplib.Grid, cam *iso.Camera, m iso.TileMetrics, sprites *SpriteManager, pal Palette) *IsoRenderer {
	return &IsoRenderer{
		Grid:         g,
		Camera:       cam,
		Metrics:      m,
		Sprites:      sprites,
		Palette:      pal,
		RegionReveal: 800 * time.Millisecond,
	}
}

// SetShowRegions toggles the region overlay; turning it on restarts the reveal
func (r *IsoRenderer) SetShowRegions(on bool, now time.Time) {
	if on && !r.showRegions {
		r.regionsShown = now
	}
	r.showRegions = on
}

func (r *IsoRenderer) ShowRegions() bool {
	return r.showRegions
}

// Pick returns the front-most tile whose top face contains the screen point
func (r *IsoRenderer) Pick(px, py float64) *maplib.Tile {
	return PickTile(r.Grid, px, py, r.Camera, r.Metrics)
}

// PickTile walks the draw order backwards so the tile painted last wins
func PickTile(g *maplib.Grid, px, py float64, c *iso.Camera, m iso.TileMetrics) *maplib.Tile {
	tiles := g.DepthOrdered()
	for i := len(tiles) - 1; i >= 0; i-- {
		t := tiles[i]
		if iso.HitTop(t.GX, t.GY, px, py, c, m) {
			return t
		}
	}
	return nil
}

// Draw paints one frame
func (r *IsoRenderer) Draw(screen *ebiten.Image, f Frame) {
	hover := r.Pick(f.CursorX, f.CursorY)

	for _, t := range r.Grid.DepthOrdered() {
		r.drawTile(screen, t, t == hover, f)
	}
	if f.Player != nil {
		r.drawPlayer(screen, f.Player)
	}
	if r.showRegions {
		r.drawRegions(screen, f.Now)
	}
}

func (r *IsoRenderer) drawTile(screen *ebiten.Image, t *maplib.Tile, hovered bool, f Frame) {
	faces := iso.Faces(t.GX, t.GY, r.Camera, r.Metrics)
	top, left, right := r.Palette.Top, r.Palette.Left, r.Palette.Right
	if hovered {
		top, left, right = darken(top, hoverDarken), darken(left, hoverDarken), darken(right, hoverDarken)
	}
	r.fillPolygon(screen, faces.Left, left)
	r.fillPolygon(screen, faces.Right, right)
	r.fillPolygon(screen, faces.Top, top)
	r.strokePolygon(screen, faces.Top, 1, color.RGBA{0, 0, 0, 60})

	if f.Selection != nil {
		h := f.Selection.Highlight(t, f.Now)
		if h.Kind != systems.HighlightNone && h.Alpha > 0 {
			clr := r.highlightColor(h.Kind)
			r.fillPolygon(screen, faces.Top, withAlpha(clr, h.Alpha))
			if h.Ring {
				cx, cy := iso.TopCenter(float64(t.GX), float64(t.GY), r.Camera, r.Metrics)
				w := r.Metrics.Width * r.Camera.Zoom
				h := r.Metrics.Height * r.Camera.Zoom
				r.strokePolygon(screen, ellipse(cx, cy, w*0.35, h*0.35, 32), 2*float32(r.Camera.Zoom), clr)
			}
		}
	}

	if t.NPC != nil {
		r.drawNPC(screen, t)
	}
	if t.Decorated() {
		r.drawDecoration(screen, t)
	}
}

func (r *IsoRenderer) highlightColor(k systems.HighlightKind) color.RGBA {
	switch k {
	case systems.HighlightRange:
		return r.Palette.Range
	case systems.HighlightPath:
		return r.Palette.Path
	case systems.HighlightSense:
		return r.Palette.Sense
	}
	return color.RGBA{}
}

// drawAnchored draws img scaled to scale·tile width with its bottom edge at
// the given fraction of the top face height
func (r *IsoRenderer) drawAnchored(screen, img *ebiten.Image, t *maplib.Tile, scale, ground float64) {
	x, y := iso.GridToScreen(float64(t.GX), float64(t.GY), r.Camera, r.Metrics)
	w := r.Metrics.Width * r.Camera.Zoom
	h := r.Metrics.Height * r.Camera.Zoom

	b := img.Bounds()
	s := w * scale / float64(b.Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x-float64(b.Dx())*s/2, y+h*ground-float64(b.Dy())*s)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (r *IsoRenderer) drawDecoration(screen *ebiten.Image, t *maplib.Tile) {
	scale, ground := decorationScale, decorGround
	if t.Decoration.Kind == maplib.DecorHerb {
		scale, ground = herbScale, herbGround
	}

	if img := r.Sprites.Get(r.Sprites.DecorationKey(t.Decoration)); img != nil {
		r.drawAnchored(screen, img, t, scale, ground)
		return
	}

	cx, cy := iso.TopCenter(float64(t.GX), float64(t.GY), r.Camera, r.Metrics)
	w := r.Metrics.Width * r.Camera.Zoom
	h := r.Metrics.Height * r.Camera.Zoom
	clr, ok := placeholderColors[t.Decoration.Kind]
	if !ok {
		clr = color.RGBA{255, 0, 255, 255}
	}
	r.fillPolygon(screen, ellipse(cx, cy-h*0.1, w*scale/2, h*scale/2, 24), clr)
}

func (r *IsoRenderer) drawNPC(screen *ebiten.Image, t *maplib.Tile) {
	if img := r.Sprites.Get(r.Sprites.NPCs[t.NPC.Type]); img != nil {
		r.drawAnchored(screen, img, t, npcScale, decorGround)
		return
	}
	cx, cy := iso.TopCenter(float64(t.GX), float64(t.GY), r.Camera, r.Metrics)
	rad := float32(r.Metrics.Width * r.Camera.Zoom * 0.12)
	vector.FillCircle(screen, float32(cx), float32(cy)-rad, rad, color.RGBA{200, 80, 60, 255}, true)
}

// drawPlayer draws the token as a squashed disc standing on its visual position
func (r *IsoRenderer) drawPlayer(screen *ebiten.Image, p *core.Player) {
	gx, gy, ok := r.Grid.ToGlobal(p.ChunkID, p.VisualX, p.VisualY)
	if !ok {
		return
	}
	cx, cy := iso.TopCenter(gx, gy, r.Camera, r.Metrics)
	w := r.Metrics.Width * r.Camera.Zoom
	rx := w * tokenRadius
	ry := rx * r.Metrics.Height / r.Metrics.Width
	thick := tokenThickness * r.Camera.Zoom
	topY := cy - thick

	alpha := 1.0
	if p.Mode == core.ModeHide {
		alpha = hiddenAlpha
	}
	side := withAlpha(color.RGBA{70, 60, 50, 255}, alpha)
	face := withAlpha(color.RGBA{230, 220, 200, 255}, alpha)
	rim := withAlpha(color.RGBA{250, 200, 60, 255}, alpha)

	band, top := tokenShape(cx, cy, rx, ry, thick)
	r.fillPolygon(screen, band, side)

	portrait := r.Sprites.Get(p.Portrait)
	if portrait != nil {
		r.fillTextured(screen, top, cx, topY, rx, ry, portrait, alpha)
	} else {
		r.fillPolygon(screen, top, face)
	}
	r.strokePolygon(screen, top, 2*float32(r.Camera.Zoom), rim)
}

// tokenShape returns the visible side band of a disc standing at (cx, cy) and
// its top face. The band runs down the right edge, along the bottom rim and up
// the left edge, then back along the lower rim of the top face, so the two
// polygons share an edge but never overlap.
func tokenShape(cx, cy, rx, ry, thick float64) (band, top iso.Polygon) {
	const n = 32
	topY := cy - thick
	top = ellipse(cx, topY, rx, ry, n)
	band = append(band, lowerArc(cx, cy, rx, ry, n)...)
	rim := lowerArc(cx, topY, rx, ry, n)
	for i := len(rim) - 1; i >= 0; i-- {
		band = append(band, rim[i])
	}
	return band, top
}

// lowerArc returns the lower half of an ellipse from (cx+rx, cy) to (cx-rx, cy)
func lowerArc(cx, cy, rx, ry float64, n int) iso.Polygon {
	half := n / 2
	arc := make(iso.Polygon, half+1)
	for i := range arc {
		a := math.Pi * float64(i) / float64(half)
		arc[i] = iso.Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return arc
}

func (r *IsoRenderer) drawRegions(screen *ebiten.Image, now time.Time) {
	p := 1.0
	if r.RegionReveal > 0 {
		p = math.Min(1, float64(now.Sub(r.regionsShown))/float64(r.RegionReveal))
	}
	if p <= 0 {
		return
	}
	stroke := withAlpha(r.Palette.Region, 0.5*p)
	fill := withAlpha(r.Palette.Region, 0.5*p*0.2)

	for _, reg := range r.Grid.AllRegions() {
		x1, y1, x2, y2 := reg.Bounds()
		ax, ay, ok := r.Grid.ToGlobal(reg.ChunkID, float64(x1), float64(y1))
		if !ok {
			continue
		}
		bx, by := ax+float64(x2-x1)+1, ay+float64(y2-y1)+1
		poly := iso.Polygon{
			r.screen(ax, ay),
			r.screen(bx, ay),
			r.screen(bx, by),
			r.screen(ax, by),
		}
		r.fillPolygon(screen, poly, fill)
		r.strokePolygon(screen, poly, 2, stroke)
	}
}

func (r *IsoRenderer) screen(gx, gy float64) iso.Point {
	x, y := iso.GridToScreen(gx, gy, r.Camera, r.Metrics)
	return iso.Point{X: x, Y: y}
}

func (r *IsoRenderer) fillPolygon(dst *ebiten.Image, poly iso.Polygon, clr color.RGBA) {
	if len(poly) < 3 || clr.A == 0 {
		return
	}
	vector.FillPath(dst, polygonPath(poly), &vector.FillOptions{}, drawOptions(clr))
}

func (r *IsoRenderer) strokePolygon(dst *ebiten.Image, poly iso.Polygon, width float32, clr color.RGBA) {
	if len(poly) < 2 || clr.A == 0 {
		return
	}
	vector.StrokePath(dst, polygonPath(poly), &vector.StrokeOptions{Width: width, LineJoin: vector.LineJoinRound}, drawOptions(clr))
}

func drawOptions(clr color.RGBA) *vector.DrawPathOptions {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.Scale(premultiplied(clr))
	return op
}

// fillTextured draws img clipped to an ellipse as a triangle fan around its
// centre, mapping the ellipse's bounding box onto the image
func (r *IsoRenderer) fillTextured(dst *ebiten.Image, poly iso.Polygon, cx, cy, rx, ry float64, img *ebiten.Image, alpha float64) {
	b := img.Bounds()
	uv := func(p iso.Point) (float32, float32) {
		u := (p.X - (cx - rx)) / (2 * rx) * float64(b.Dx())
		v := (p.Y - (cy - ry)) / (2 * ry) * float64(b.Dy())
		return float32(b.Min.X) + float32(u), float32(b.Min.Y) + float32(v)
	}
	a := float32(alpha)
	vertex := func(p iso.Point) ebiten.Vertex {
		u, v := uv(p)
		return ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: u, SrcY: v,
			ColorR: a, ColorG: a, ColorB: a, ColorA: a,
		}
	}

	vs := []ebiten.Vertex{vertex(iso.Point{X: cx, Y: cy})}
	for _, p := range poly {
		vs = append(vs, vertex(p))
	}
	var is []uint16
	for i := 1; i < len(vs); i++ {
		next := i + 1
		if next == len(vs) {
			next = 1
		}
		is = append(is, 0, uint16(i), uint16(next))
	}
	dst.DrawTriangles(vs, is, img, &ebiten.DrawTrianglesOptions{AntiAlias: true, Filter: ebiten.FilterLinear})
}

func polygonPath(poly iso.Polygon) *vector.Path {
	var path vector.Path
	path.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	return &path
}

// ellipse approximates an axis-aligned ellipse with n points
func ellipse(cx, cy, rx, ry float64, n int) iso.Polygon {
	poly := make(iso.Polygon, n)
	for i := range poly {
		a := 2 * math.Pi * float64(i) / float64(n)
		poly[i] = iso.Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return poly
}

func darken(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), c.A}
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{c.R, c.G, c.B, uint8(float64(c.A) * a)}
}

// premultiplied converts a straight-alpha colour to vertex colour scales
func premultiplied(c color.RGBA) (r, g, b, a float32) {
	a = float32(c.A) / 255
	return float32(c.R) / 255 * a, float32(c.G) / 255 * a, float32(c.B) / 255 * a, a
}
