package noise

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Skew factors for the 2D simplex grid
var (
	f2 = 0.5 * (math.Sqrt(3.0) - 1.0)
	g2 = (3.0 - math.Sqrt(3.0)) / 6.0
)

// grad3 holds the 12 edge gradients; only X and Y are used in 2D
var grad3 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

// Simplex is a 2D simplex noise source backed by a shuffled permutation table
type Simplex struct {
	perm [512]uint8
}

// New builds a noise source whose permutation table is shuffled with rng
func New(rng *rand.Rand) *Simplex {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	for i := range p {
		r := rng.Intn(256)
		p[i], p[r] = p[r], p[i]
	}

	s := &Simplex{}
	for i := range s.perm {
		s.perm[i] = p[i&255]
	}
	return s
}

var (
	defaultOnce    sync.Once
	defaultSimplex *Simplex
)

// Default returns the process-wide noise source. Its table is shuffled once.
func Default() *Simplex {
	defaultOnce.Do(func() {
		defaultSimplex = New(rand.New(rand.NewSource(time.Now().UnixNano())))
	})
	return defaultSimplex
}

// Noise2D samples simplex noise at (x, y). The result lies in [-1, 1].
func (s *Simplex) Noise2D(x, y float64) float64 {
	sk := (x + y) * f2
	i := int(math.Floor(x + sk))
	j := int(math.Floor(y + sk))

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Which triangle of the skewed cell we are in
	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := int(s.perm[ii+int(s.perm[jj])]) % 12
	gi1 := int(s.perm[ii+i1+int(s.perm[jj+j1])]) % 12
	gi2 := int(s.perm[ii+1+int(s.perm[jj+1])]) % 12

	n := corner(gi0, x0, y0) + corner(gi1, x1, y1) + corner(gi2, x2, y2)
	return 70.0 * n
}

func corner(gi int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y)
}

// FBM sums octaves of noise at doubling frequency and decaying amplitude,
// normalised by the total amplitude. Smooth rolling terrain.
func (s *Simplex) FBM(x, y, seed float64, octaves int, persistence, scale float64) float64 {
	total, weight := 0.0, 0.0
	freq, amp := scale, 1.0
	for i := 0; i < octaves; i++ {
		total += s.Noise2D((x+seed)*freq, (y+seed)*freq) * amp
		weight += amp
		amp *= persistence
		freq *= 2
	}
	if weight == 0 {
		return 0
	}
	return total / weight
}

// Ridged sums cubed inverted-absolute noise, each octave weighted by the
// previous octave's ridge value so ridges connect into ridgelines.
func (s *Simplex) Ridged(x, y, seed float64, octaves int, scale float64) float64 {
	total := 0.0
	freq, amp, w := scale, 1.0, 1.0
	for i := 0; i < octaves; i++ {
		n := 1.0 - math.Abs(s.Noise2D((x+seed)*freq, (y+seed)*freq))
		n = n * n * n
		total += n * amp * w
		w = n
		amp *= 0.5
		freq *= 2
	}
	return total
}
