// Command generate_terrain_tiles renders procedural mountain sprites to PNG
// so they can be listed under assets.decorations in the config.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/isomap-engine/engine/noise"
	"github.com/1siamBot/isomap-engine/engine/terrain"
)

func main() {
	dir := flag.String("out", filepath.Join("assets", "mountains"), "output directory")
	count := flag.Int("count", 10, "number of sprites")
	seed := flag.Int64("seed", 1, "noise seed")
	width := flag.Int("width", 192, "sprite width")
	height := flag.Int("height", 144, "sprite height")
	ss := flag.Int("supersample", 2, "render at this multiple and scale down")
	force := flag.Bool("force", false, "overwrite existing files")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		slog.Error("creating output directory", "error", err)
		os.Exit(1)
	}

	written := 0
	for i := 0; i < *count; i++ {
		path := filepath.Join(*dir, fmt.Sprintf("mountain_%02d.png", i+1))
		if _, err := os.Stat(path); err == nil && !*force {
			slog.Info("skipping existing sprite", "path", path)
			continue
		}
		img := renderMountain(i, *seed, *width, *height, max(*ss, 1))
		if err := writePNG(path, img); err != nil {
			slog.Error("writing sprite", "path", path, "error", err)
			os.Exit(1)
		}
		written++
	}
	slog.Info("done", "dir", *dir, "written", written)
}

// renderMountain rasterises variant i at ss times the target size and
// scales it down, which smooths the triangle edges
func renderMountain(i int, seed int64, w, h, ss int) image.Image {
	n := noise.New(rand.New(rand.NewSource(seed + int64(i))))
	shape := i%terrain.MountainShapes + 1
	hf := terrain.GenerateMountain(shape, float64(seed%1000)+float64(i)*17.3, 64, n)
	big := terrain.Rasterize(hf, w*ss, h*ss, terrain.DefaultLighting())
	if ss == 1 {
		return big
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), xdraw.Over, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
