package terrain

import (
	"math"

	"github.com/1siamBot/isomap-engine/engine/noise"
)

// MountainShapes is the number of distinct mountain mask shapes
const MountainShapes = 5

// MountainSize is the footprint edge of a generated mountain in mesh units
const MountainSize = 1.9

// Palette for mountain colour bands
var (
	ColorGrass = Hex(0x3a4f3a)
	ColorRock  = Hex(0x5a5048)
	ColorCliff = Hex(0x2b241d)
	ColorPeak  = Hex(0x8f857d)
)

// HeightField is a square grid of vertex heights over [-Size/2, Size/2]²
type HeightField struct {
	Segments int
	Size     float64
	Seed     float64
	Heights  []float64 // (Segments+1)² row-major, row = z
	noise    *noise.Simplex
}

// Stride is the vertex count per row
func (hf *HeightField) Stride() int { return hf.Segments + 1 }

// Coord returns the mesh-space x (or z) coordinate of a vertex index
func (hf *HeightField) Coord(i int) float64 {
	return -hf.Size/2 + hf.Size*float64(i)/float64(hf.Segments)
}

// At returns the height at vertex (i, j), clamping indices to the grid
func (hf *HeightField) At(i, j int) float64 {
	n := hf.Stride()
	i = clampInt(i, 0, n-1)
	j = clampInt(j, 0, n-1)
	return hf.Heights[j*n+i]
}

// mask returns the shape mask and the (amplitude, scale) noise tuning for a shape
func mask(shape int, x, z float64) (m, amp, scale float64) {
	dist := math.Sqrt(x*x + z*z)
	amp, scale = 1, 1
	switch shape {
	case 1: // radial
		m = math.Pow(math.Max(0, 1.0-dist), 1.5)
		amp = 1.2
	case 2: // elongated ridge
		d := math.Sqrt(x*x*4.0 + z*z)
		m = math.Max(0, 1.0-d)
		amp, scale = 1.4, 0.8
	case 3: // plateau
		m = math.Pow(math.Max(0, 1.0-math.Max(math.Abs(x), math.Abs(z))), 0.5)
		scale = 1.2
	case 4: // twin peaks
		d1 := math.Sqrt((x-0.4)*(x-0.4) + z*z)
		d2 := math.Sqrt((x+0.4)*(x+0.4) + z*z)
		m = math.Max(math.Max(0, 0.9-d1), math.Max(0, 0.9-d2))
		amp = 1.3
	default: // crater
		m = math.Max(0, 1.0-dist)
		if dist < 0.3 {
			m -= (0.3 - dist) * 2.0
		}
		m = math.Max(0, m)
		amp, scale = 0.8, 1.5
	}
	return m, amp, scale
}

// GenerateMountain displaces a flat grid with ridged and fbm noise under one of
// the five mask shapes (1..5; anything else falls back to the crater shape).
func GenerateMountain(shape int, seed float64, segments int, n *noise.Simplex) *HeightField {
	if segments < 2 {
		segments = 2
	}
	hf := &HeightField{
		Segments: segments,
		Size:     MountainSize,
		Seed:     seed,
		Heights:  make([]float64, (segments+1)*(segments+1)),
		noise:    n,
	}
	stride := hf.Stride()
	for j := 0; j < stride; j++ {
		z := hf.Coord(j)
		for i := 0; i < stride; i++ {
			x := hf.Coord(i)
			m, amp, scale := mask(shape, x, z)
			r := n.Ridged(x, z, seed, 4, scale)
			base := n.FBM(x, z, seed+100, 2, 0.5, 0.5)
			hf.Heights[j*stride+i] = m*1.5 + m*r*0.5*amp + m*base*0.2
		}
	}
	return hf
}

// Normal estimates the surface normal at vertex (i, j) by central differences
func (hf *HeightField) Normal(i, j int) Vec3 {
	step := hf.Size / float64(hf.Segments)
	dx := (hf.At(i+1, j) - hf.At(i-1, j)) / (2 * step)
	dz := (hf.At(i, j+1) - hf.At(i, j-1)) / (2 * step)
	return V3(-dx, 1, -dz).Normalize()
}

// Classify picks the band colour for a vertex from its height, the Y component
// of its normal and its strata band value.
func Classify(height, slope, band float64) Color3 {
	var c Color3
	switch {
	case height < 0.1:
		c = ColorGrass.Lerp(ColorRock, math.Max(0, height*10))
	case slope > 0.7:
		c = ColorRock.Lerp(ColorPeak, 0.5)
	case slope < 0.3:
		c = ColorCliff
	default:
		c = ColorRock
	}
	if band > 0.9 {
		c = c.Scale(0.8)
	}
	return c
}

// VertexColor classifies vertex (i, j), including rock strata banding
func (hf *HeightField) VertexColor(i, j int) Color3 {
	h := hf.At(i, j)
	n := hf.Normal(i, j)
	x, z := hf.Coord(i), hf.Coord(j)
	band := math.Sin(h*25 + hf.noise.FBM(x, z, hf.Seed, 2, 0.5, 2.0))
	return Classify(h, n.Y, band)
}

// MaxHeight returns the tallest vertex
func (hf *HeightField) MaxHeight() float64 {
	m := 0.0
	for _, h := range hf.Heights {
		m = math.Max(m, h)
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
