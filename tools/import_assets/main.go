// Command import_assets copies decoration and NPC sprites into the asset
// directory, downscaling wide images, and prints the matching "assets"
// config block.
//
// Files are classified by name: mountain*, herb* and tree* become decoration
// variants, npc_<type>* becomes the sprite of that NPC type.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/isomap-engine/engine/config"
)

var kindPrefixes = map[string]string{
	"mountain": "M",
	"herb":     "H",
	"tree":     "T",
}

func main() {
	src := flag.String("src", "", "directory of downloaded sprites")
	dst := flag.String("dst", "assets", "asset directory")
	maxW := flag.Int("max-width", 256, "downscale sprites wider than this")
	flag.Parse()

	if *src == "" {
		slog.Error("missing -src")
		os.Exit(2)
	}
	assets, err := importDir(*src, *dst, *maxW)
	if err != nil {
		slog.Error("importing assets", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]config.AssetConfig{"assets": assets}); err != nil {
		slog.Error("writing config", "error", err)
		os.Exit(1)
	}
}

// classify returns the decoration letter or the NPC type of a file name
func classify(name string) (kind, npc string) {
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	if rest, ok := strings.CutPrefix(base, "npc_"); ok && rest != "" {
		typ, _, _ := strings.Cut(rest, "_")
		return "", strings.ToUpper(typ)
	}
	for prefix, letter := range kindPrefixes {
		if strings.HasPrefix(base, prefix) {
			return letter, ""
		}
	}
	return "", ""
}

func importDir(src, dst string, maxW int) (config.AssetConfig, error) {
	assets := config.AssetConfig{
		Dir:         dst,
		Decorations: make(map[string][]string),
		NPCs:        make(map[string]string),
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return assets, fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return assets, fmt.Errorf("creating %s: %w", dst, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind, npc := classify(e.Name())
		if kind == "" && npc == "" {
			slog.Debug("skipping unclassified file", "file", e.Name())
			continue
		}
		out := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())) + ".png"
		if err := resizePNG(filepath.Join(src, e.Name()), filepath.Join(dst, out), maxW); err != nil {
			slog.Warn("could not import sprite", "file", e.Name(), "error", err)
			continue
		}
		if npc != "" {
			assets.NPCs[npc] = out
		} else {
			assets.Decorations[kind] = append(assets.Decorations[kind], out)
		}
		slog.Info("imported", "file", out)
	}
	for k := range assets.Decorations {
		sort.Strings(assets.Decorations[k])
	}
	return assets, nil
}

// resizePNG decodes src and writes it to dst as PNG, scaled down with
// CatmullRom to at most maxW pixels wide
func resizePNG(src, dst string, maxW int) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	srcImg, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	var dstImg image.Image = srcImg
	if b := srcImg.Bounds(); b.Dx() > maxW {
		h := max(b.Dy()*maxW/b.Dx(), 1)
		scaled := image.NewRGBA(image.Rect(0, 0, maxW, h))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), srcImg, b, xdraw.Over, nil)
		dstImg = scaled
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := png.Encode(out, dstImg); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
