package terrain

import (
	"math/rand"
	"testing"

	"github.com/1siamBot/isomap-engine/engine/noise"
)

func testNoise() *noise.Simplex {
	return noise.New(rand.New(rand.NewSource(7)))
}

func TestGenerateMountain_GridSize(t *testing.T) {
	hf := GenerateMountain(1, 12.5, 16, testNoise())
	if got, want := len(hf.Heights), 17*17; got != want {
		t.Fatalf("heights=%d, want %d", got, want)
	}
}

func TestGenerateMountain_EdgesFlat(t *testing.T) {
	// The radial mask reaches zero before the footprint edge.
	hf := GenerateMountain(1, 3, 20, testNoise())
	if h := hf.At(0, 0); h != 0 {
		t.Fatalf("corner height=%f, want 0", h)
	}
	if hf.MaxHeight() <= 0.5 {
		t.Fatalf("peak height=%f, want a raised mountain", hf.MaxHeight())
	}
}

func TestGenerateMountain_AllShapes(t *testing.T) {
	for shape := 1; shape <= MountainShapes; shape++ {
		hf := GenerateMountain(shape, 40, 12, testNoise())
		if hf.MaxHeight() <= 0 {
			t.Fatalf("shape %d produced a flat field", shape)
		}
	}
}

func TestMask_CraterCentreBelowRim(t *testing.T) {
	centre, _, _ := mask(5, 0, 0)
	rim, _, _ := mask(5, 0.3, 0)
	if centre >= rim {
		t.Fatalf("crater centre mask %f should be below the rim %f", centre, rim)
	}
}

func TestClassify_Bands(t *testing.T) {
	if c := Classify(0, 1, 0); c != ColorGrass {
		t.Fatalf("flat ground = %+v, want grass", c)
	}
	if c := Classify(1, 0.9, 0); c != ColorRock.Lerp(ColorPeak, 0.5) {
		t.Fatalf("upward face = %+v, want rock/peak blend", c)
	}
	if c := Classify(1, 0.1, 0); c != ColorCliff {
		t.Fatalf("steep face = %+v, want cliff", c)
	}
	if c := Classify(1, 0.5, 0); c != ColorRock {
		t.Fatalf("mid slope = %+v, want rock", c)
	}
	if c := Classify(1, 0.5, 0.95); c != ColorRock.Scale(0.8) {
		t.Fatalf("strata band = %+v, want darkened rock", c)
	}
}

func TestRasterize_TransparentCorners(t *testing.T) {
	hf := GenerateMountain(1, 2, 24, testNoise())
	img := Rasterize(hf, 64, 64, DefaultLighting())
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Fatalf("top-left pixel alpha=%d, want transparent", a)
	}
	opaque := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y).A == 255 {
				opaque++
			}
		}
	}
	if opaque == 0 {
		t.Fatal("expected the mountain to cover some pixels")
	}
}
