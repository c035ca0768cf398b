package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/isomap-engine/engine/config"
	"github.com/1siamBot/isomap-engine/engine/maplib"
	"github.com/1siamBot/isomap-engine/engine/noise"
	"github.com/1siamBot/isomap-engine/engine/terrain"
)

// MaxSpriteWidth caps decoded sprites; larger files are downscaled once on load
const MaxSpriteWidth = 256

const (
	proceduralPrefix  = "procedural:mountain:"
	proceduralWidth   = 192
	proceduralHeight  = 144
	proceduralSegment = 48
)

// SpriteManager decodes sprite files in the background and uploads them to
// the GPU on the draw goroutine. Get never blocks.
type SpriteManager struct {
	Dir         string
	Decorations map[maplib.DecorationKind][]string
	NPCs        map[string]string
	Seed        int64

	mu      sync.Mutex
	pending map[string]image.Image // decoded, awaiting upload
	images  map[string]*ebiten.Image
	started map[string]bool
	failed  map[string]bool
	wg      sync.WaitGroup
}

// NewSpriteManager builds the sprite table from the asset config. Mountains
// without configured files use procedurally generated sprites.
func NewSpriteManager(cfg config.AssetConfig) *SpriteManager {
	sm := &SpriteManager{
		Dir:         cfg.Dir,
		Decorations: make(map[maplib.DecorationKind][]string),
		NPCs:        make(map[string]string),
		Seed:        cfg.Seed,
		pending:     make(map[string]image.Image),
		images:      make(map[string]*ebiten.Image),
		started:     make(map[string]bool),
		failed:      make(map[string]bool),
	}
	for letter, files := range cfg.Decorations {
		kind, ok := maplib.KindFromLetter(letter)
		if !ok {
			slog.Warn("ignoring decoration sprites for unknown kind", "kind", letter)
			continue
		}
		sm.Decorations[kind] = append(sm.Decorations[kind], files...)
	}
	if len(sm.Decorations[maplib.DecorMountain]) == 0 {
		for i := 0; i < cfg.ProceduralMountains; i++ {
			sm.Decorations[maplib.DecorMountain] = append(sm.Decorations[maplib.DecorMountain], fmt.Sprintf("%s%d", proceduralPrefix, i))
		}
	}
	for k, v := range cfg.NPCs {
		sm.NPCs[k] = v
	}

	slog.Info("sprite manager ready",
		"dir", sm.Dir,
		"mountains", len(sm.Decorations[maplib.DecorMountain]),
		"herbs", len(sm.Decorations[maplib.DecorHerb]),
		"trees", len(sm.Decorations[maplib.DecorTree]),
		"npcs", len(sm.NPCs))
	return sm
}

// Variants returns how many sprites exist for a decoration kind
func (sm *SpriteManager) Variants(kind maplib.DecorationKind) int {
	return len(sm.Decorations[kind])
}

// PickVariant chooses a random variant, 0 when the kind has no sprites
func (sm *SpriteManager) PickVariant(rng *rand.Rand) func(maplib.DecorationKind) int {
	return func(kind maplib.DecorationKind) int {
		n := sm.Variants(kind)
		if n == 0 {
			return 0
		}
		return rng.Intn(n)
	}
}

// DecorationKey maps a decoration to its sprite key, "" if none is configured
func (sm *SpriteManager) DecorationKey(d *maplib.Decoration) string {
	if d == nil {
		return ""
	}
	files := sm.Decorations[d.Kind]
	if len(files) == 0 {
		return ""
	}
	return files[d.Variant%len(files)]
}

// PrefetchTile starts loading the sprite of a freshly decorated tile
func (sm *SpriteManager) PrefetchTile(t *maplib.Tile) {
	if key := sm.DecorationKey(t.Decoration); key != "" {
		sm.Prefetch(key)
	}
}

// Prefetch starts decoding key in the background unless already started
func (sm *SpriteManager) Prefetch(key string) {
	if key == "" {
		return
	}
	sm.mu.Lock()
	if sm.started[key] {
		sm.mu.Unlock()
		return
	}
	sm.started[key] = true
	sm.mu.Unlock()

	sm.wg.Add(1)
	go func() {
		defer sm.wg.Done()
		img, err := sm.decode(key)

		sm.mu.Lock()
		defer sm.mu.Unlock()
		if err != nil {
			slog.Warn("could not load sprite", "sprite", key, "error", err)
			sm.failed[key] = true
			return
		}
		sm.pending[key] = img
	}()
}

// Wait blocks until every started decode has finished
func (sm *SpriteManager) Wait() {
	sm.wg.Wait()
}

// Get returns the sprite for key, or nil while it is loading or missing.
// Must be called from the draw goroutine.
func (sm *SpriteManager) Get(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	if img, ok := sm.images[key]; ok {
		return img
	}
	sm.mu.Lock()
	decoded, ok := sm.pending[key]
	if ok {
		delete(sm.pending, key)
	}
	started := sm.started[key]
	sm.mu.Unlock()

	if !ok {
		if !started {
			sm.Prefetch(key)
		}
		return nil
	}
	img := ebiten.NewImageFromImage(decoded)
	sm.images[key] = img
	return img
}

// Failed reports whether key could not be loaded
func (sm *SpriteManager) Failed(key string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.failed[key]
}

// Decoded returns the CPU-side image for key once decoding finished. Used by
// tools and tests that have no GPU.
func (sm *SpriteManager) Decoded(key string) (image.Image, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	img, ok := sm.pending[key]
	return img, ok
}

func (sm *SpriteManager) decode(key string) (image.Image, error) {
	var idx int
	if _, err := fmt.Sscanf(key, proceduralPrefix+"%d", &idx); err == nil {
		return ProceduralMountain(idx, sm.Seed, proceduralWidth, proceduralHeight), nil
	}

	path := key
	if !filepath.IsAbs(path) {
		path = filepath.Join(sm.Dir, key)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sprite: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding sprite %s: %w", path, err)
	}
	return Downscale(img, MaxSpriteWidth), nil
}

// ProceduralMountain renders mountain variant idx. Variants cycle through the
// mountain shapes; each gets its own noise table.
func ProceduralMountain(idx int, seed int64, w, h int) *image.RGBA {
	shape := idx%terrain.MountainShapes + 1
	n := noise.New(rand.New(rand.NewSource(seed + int64(idx))))
	hf := terrain.GenerateMountain(shape, float64(seed%1000)+float64(idx)*17.3, proceduralSegment, n)
	return terrain.Rasterize(hf, w, h, terrain.DefaultLighting())
}

// Downscale shrinks img to at most maxW pixels wide, keeping its aspect
func Downscale(img image.Image, maxW int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW || maxW <= 0 {
		return img
	}
	h := b.Dy() * maxW / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxW, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
