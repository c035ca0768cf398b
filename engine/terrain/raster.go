package terrain

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// Rasterize paints the height field as an isometric sprite of size w×h. The
// ground diamond touches the bottom and side edges; pixels outside the mesh
// stay transparent.
func Rasterize(hf *HeightField, w, h int, light Lighting) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if hf == nil || w <= 0 || h <= 0 {
		return img
	}

	kx := float64(w) / (2 * hf.Size)
	kh := kx * 0.6
	half := hf.Size / 2
	project := func(x, y, z float64) (float64, float64) {
		sx := float64(w)/2 + (x-z)*kx
		sy := float64(h) - (half*2-(x+z))*kx/2 - y*kh
		return sx, sy
	}

	type cell struct{ i, j int }
	n := hf.Segments
	cells := make([]cell, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			cells = append(cells, cell{i, j})
		}
	}
	// Back to front: larger x+z is nearer the viewer
	sort.SliceStable(cells, func(a, b int) bool {
		return cells[a].i+cells[a].j < cells[b].i+cells[b].j
	})

	for _, c := range cells {
		p := [4]Vec3{
			V3(hf.Coord(c.i), hf.At(c.i, c.j), hf.Coord(c.j)),
			V3(hf.Coord(c.i+1), hf.At(c.i+1, c.j), hf.Coord(c.j)),
			V3(hf.Coord(c.i+1), hf.At(c.i+1, c.j+1), hf.Coord(c.j+1)),
			V3(hf.Coord(c.i), hf.At(c.i, c.j+1), hf.Coord(c.j+1)),
		}
		// Flat ground outside the mask is left transparent
		if p[0].Y <= 0 && p[1].Y <= 0 && p[2].Y <= 0 && p[3].Y <= 0 {
			continue
		}

		base := hf.VertexColor(c.i, c.j).
			Add(hf.VertexColor(c.i+1, c.j+1)).
			Scale(0.5)

		var s [4][2]float64
		for k, v := range p {
			s[k][0], s[k][1] = project(v.X, v.Y, v.Z)
		}

		for _, tri := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
			a, b, cc := p[tri[0]], p[tri[1]], p[tri[2]]
			normal := b.Sub(a).Cross(cc.Sub(a)).Normalize()
			if normal.Y < 0 {
				normal = normal.Scale(-1)
			}
			r, g, bl := light.Shade(normal, base).RGBA8()
			fillTriangle(img, s[tri[0]], s[tri[1]], s[tri[2]], color.RGBA{r, g, bl, 255})
		}
	}
	return img
}

// fillTriangle scan-fills a triangle using edge functions at pixel centres
func fillTriangle(img *image.RGBA, a, b, c [2]float64, clr color.RGBA) {
	bounds := img.Bounds()
	minX := int(math.Floor(math.Min(a[0], math.Min(b[0], c[0]))))
	maxX := int(math.Ceil(math.Max(a[0], math.Max(b[0], c[0]))))
	minY := int(math.Floor(math.Min(a[1], math.Min(b[1], c[1]))))
	maxY := int(math.Ceil(math.Max(a[1], math.Max(b[1], c[1]))))
	minX = clampInt(minX, bounds.Min.X, bounds.Max.X-1)
	maxX = clampInt(maxX, bounds.Min.X, bounds.Max.X-1)
	minY = clampInt(minY, bounds.Min.Y, bounds.Max.Y-1)
	maxY = clampInt(maxY, bounds.Min.Y, bounds.Max.Y-1)

	area := edge(a, b, c)
	if math.Abs(area) < 1e-9 {
		return
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := [2]float64{float64(x) + 0.5, float64(y) + 0.5}
			w0 := edge(b, c, p)
			w1 := edge(c, a, p)
			w2 := edge(a, b, p)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				img.SetRGBA(x, y, clr)
			}
		}
	}
}

func edge(a, b, p [2]float64) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}
