package iso

import "testing"

func TestHitTop_CentreAndCorners(t *testing.T) {
	c := NewCamera()
	m := DefaultMetrics()

	cx, cy := TopCenter(4, 2, c, m)
	if !HitTop(4, 2, cx, cy, c, m) {
		t.Fatal("top-face centre should hit its own tile")
	}
	if HitTop(3, 2, cx, cy, c, m) || HitTop(4, 3, cx, cy, c, m) {
		t.Fatal("top-face centre should not hit a neighbour")
	}
}

func TestHitTop_SideFaceIsNotTop(t *testing.T) {
	c := NewCamera()
	m := DefaultMetrics()
	f := Faces(0, 0, c, m)
	// Middle of the left side face, below the diamond.
	p := Point{(f.Left[0].X + f.Left[2].X) / 2, (f.Left[0].Y + f.Left[2].Y) / 2}
	if f.Top.Contains(p) {
		t.Fatal("side-face point must not count as the top face")
	}
	if !f.Left.Contains(p) {
		t.Fatal("side-face point should be inside the left face")
	}
}

func TestHitTop_ExactlyOneTileClaimsPoint(t *testing.T) {
	c := NewCamera()
	c.PanX, c.PanY = 300, 40
	m := DefaultMetrics()

	// Sample a grid of points well inside the map; each must hit one tile.
	for py := 120.0; py < 200; py += 7.3 {
		for px := 220.0; px < 380; px += 5.9 {
			hits := 0
			for gx := 0; gx < 20; gx++ {
				for gy := 0; gy < 20; gy++ {
					if HitTop(gx, gy, px, py, c, m) {
						hits++
					}
				}
			}
			if hits != 1 {
				t.Fatalf("point (%.1f,%.1f) hit %d tiles, want 1", px, py, hits)
			}
		}
	}
}

func TestFaces_ThicknessScalesWithZoom(t *testing.T) {
	c := NewCamera()
	m := DefaultMetrics()
	c.SetZoom(2)
	f := Faces(0, 0, c, m)
	if d := f.Left[2].Y - f.Left[1].Y; d != 24 {
		t.Fatalf("extrusion=%f, want 24", d)
	}
}
