package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestReadScript(t *testing.T) {
	script := "Chunk=1\nPlayer=3,4\n---\n\n---\n  Chunk=2\nM: 1,1\n---\n"
	got, err := ReadScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "blocks", strings.Join(got, "|"), "Chunk=1\nPlayer=3,4|Chunk=2\nM: 1,1")
}

func TestScanScript_StopsEarly(t *testing.T) {
	var n int
	err := ScanScript(strings.NewReader("a\n---\nb\n---\nc"), func(string) bool {
		n++
		return n < 2
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "calls", n, 2)
}

func TestRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.txt")
	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, text := range []string{"Chunk=1\nPlayer=5,5\n", "Chunk=1\nPlayer=6,5\nPlayerPrev=5,5"} {
		if err := rec.Record(text); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}
	testutil.AssertEqual(t, "count", rec.Count, 2)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening: %v", err)
	}
	defer f.Close()
	got, err := ReadScript(f)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	testutil.AssertEqual(t, "blocks", strings.Join(got, "|"), "Chunk=1\nPlayer=5,5|Chunk=1\nPlayer=6,5\nPlayerPrev=5,5")
}

func TestNewRecorder_BadPath(t *testing.T) {
	_, err := NewRecorder(filepath.Join(t.TempDir(), "missing", "x.txt"))
	testutil.AssertErrorContains(t, err, "creating recording")
}
