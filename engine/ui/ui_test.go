package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/1siamBot/isomap-engine/engine/config"
	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/maplib"
)

// newHUDState builds a HUD without a font; Draw must not be called on it
func newHUDState(texts *Texts) *HUD {
	return &HUD{
		Texts: texts,
		Copy:  func(string) error { return errors.New("no clipboard in tests") },
		popup: texts.Waiting(),
	}
}

func TestExpandTemplate(t *testing.T) {
	s, err := ExpandTemplate(`{{.Name | upper}} {{list "a" "" "b" | compact | join "-"}}`, struct{ Name string }{"moss"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "expanded", s, "MOSS a-b")

	_, err = ExpandTemplate("{{.Name", nil)
	testutil.AssertErrorContains(t, err, "parsing template")
}

func TestTexts_Defaults(t *testing.T) {
	tx := NewTexts(config.DefaultText())

	tests := map[string]struct {
		got string
		exp string
	}{
		"move": {
			got: tx.Move(maplib.Point{X: 3, Y: 4}, maplib.Point{X: 5, Y: 4}),
			exp: "Player at 3,4 moving to 5,4.",
		},
		"sense": {
			got: tx.Sense(maplib.Point{X: 2, Y: 9}),
			exp: "Player is using sense at tile 2,9.",
		},
		"insufficient": {
			got: tx.Insufficient(60, 40),
			exp: "Not enough stamina: 60 needed, 40 left.",
		},
		"mode": {
			got: tx.Mode(core.ModeSneak),
			exp: "SNEAK",
		},
		"herb title skips blanks": {
			got: tx.HerbTitle(&maplib.HerbInfo{Age: "Old", Name: "Moonleaf"}),
			exp: "Old Moonleaf",
		},
		"herb status": {
			got: tx.HerbStatus(&maplib.HerbInfo{Growth: 80}),
			exp: "Status: Ripe (80%)",
		},
		"tree": {
			got: tx.Tree(&maplib.TreeInfo{Name: "Elder Oak", Element: "earth"}),
			exp: "Elder Oak ^Earth",
		},
		"tree default": {
			got: tx.Tree(&maplib.TreeInfo{}),
			exp: "Tree",
		},
		"npc": {
			got: tx.NPC(&maplib.NPC{Name: "Ada", Type: "W"}),
			exp: "Ada",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, name, tt.got, tt.exp)
		})
	}
}

func TestTexts_BrokenTemplateFallsBack(t *testing.T) {
	cfg := config.DefaultText()
	cfg.Sense = "{{.Missing.Field}}"
	tx := NewTexts(cfg)
	testutil.AssertEqual(t, "raw", tx.Sense(maplib.Point{}), "{{.Missing.Field}}")
}

func TestWrapAndTitle(t *testing.T) {
	s := Wrap("grows where the moon touches the ground", 16)
	for _, line := range strings.Split(s, "\n") {
		if len(line) > 16 {
			t.Fatalf("line %q longer than 16 columns", line)
		}
	}
	testutil.AssertEqual(t, "title", Title("deep water"), "Deep Water")
}

func TestHUD_Messages(t *testing.T) {
	h := newHUDState(NewTexts(config.DefaultText()))
	testutil.AssertEqual(t, "waiting", h.Popup(), "Waiting for input...")
	for i := 0; i < 7; i++ {
		h.AddMessage(string(rune('a' + i)))
	}
	testutil.AssertEqual(t, "kept", len(h.Messages()), maxMessages)
	testutil.AssertEqual(t, "oldest", h.Messages()[0], "c")
}

func TestHUD_HerbPanel(t *testing.T) {
	h := newHUDState(NewTexts(config.DefaultText()))
	plain := &maplib.Tile{LX: 1, LY: 1}
	h.OpenHerb(plain)
	testutil.AssertEqual(t, "no herb", h.HerbOpen(), false)
	testutil.AssertEqual(t, "no action", h.ChooseHerbAction("Feed"), false)

	herb := &maplib.Tile{LX: 6, LY: 7, Herb: &maplib.HerbInfo{Name: "Moonleaf"}}
	h.OpenHerb(herb)
	testutil.AssertEqual(t, "open", h.HerbOpen(), true)
	testutil.AssertEqual(t, "chosen", h.ChooseHerbAction(HerbActions[0]), true)
	testutil.AssertEqual(t, "popup", h.Popup(), "Herb at 6,7 named Moonleaf chosen to Harvest")
	testutil.AssertEqual(t, "closed", h.HerbOpen(), false)
}

func TestHUD_Tooltip(t *testing.T) {
	h := newHUDState(NewTexts(config.DefaultText()))
	h.Hover(&maplib.Tile{NPC: &maplib.NPC{Name: "Rook"}})
	testutil.AssertEqual(t, "npc", h.Tooltip(), "Rook")

	h.Hover(&maplib.Tile{Tree: &maplib.TreeInfo{Name: "Ash"}, Hidden: true})
	testutil.AssertEqual(t, "hidden", h.Tooltip(), "")
}

func TestHUD_CopyPopup(t *testing.T) {
	h := newHUDState(NewTexts(config.DefaultText()))
	var copied string
	h.Copy = func(s string) error { copied = s; return nil }
	h.SetPopup("hello")
	if err := h.CopyPopup(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "copied", copied, "hello")

	h.Copy = func(string) error { return errors.New("no clipboard") }
	testutil.AssertErrorContains(t, h.CopyPopup(), "copying popup")
}
