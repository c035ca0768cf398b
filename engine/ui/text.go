package ui

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/1siamBot/isomap-engine/engine/config"
	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/maplib"
)

var templateFuncs = sprig.TxtFuncMap()

var titleCaser = cases.Title(language.English)

// ExpandTemplate expands a template string using the provided data
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// Title capitalises each word of a free-text field such as an element name
func Title(s string) string {
	return titleCaser.String(s)
}

// Wrap breaks text to at most width columns
func Wrap(text string, width int) string {
	return wordwrap.String(text, width)
}

// Texts renders the configured HUD strings
type Texts struct {
	cfg config.TextConfig
}

func NewTexts(cfg config.TextConfig) *Texts {
	return &Texts{cfg: cfg}
}

// expand falls back to the raw template when it fails so the HUD keeps
// showing something
func (t *Texts) expand(name, tmpl string, data any) string {
	s, err := ExpandTemplate(tmpl, data)
	if err != nil {
		slog.Warn("hud text failed", "text", name, "error", err)
		return tmpl
	}
	return s
}

func (t *Texts) Waiting() string {
	return t.expand("waiting", t.cfg.Waiting, nil)
}

// Move describes a committed move from one local tile to another
func (t *Texts) Move(from, to maplib.Point) string {
	return t.expand("move", t.cfg.Move, struct{ From, To maplib.Point }{from, to})
}

func (t *Texts) Sense(at maplib.Point) string {
	return t.expand("sense", t.cfg.Sense, struct{ At maplib.Point }{at})
}

func (t *Texts) Insufficient(cost, available float64) string {
	return t.expand("insufficient", t.cfg.Insufficient, struct{ Cost, Available float64 }{cost, available})
}

func (t *Texts) Mode(m core.Mode) string {
	return t.expand("mode", t.cfg.Mode, struct{ Mode string }{m.String()})
}

// HerbTitle joins the age, rank and name of a herb, skipping empty parts
func (t *Texts) HerbTitle(h *maplib.HerbInfo) string {
	return t.expand("herb_title", t.cfg.HerbTitle, struct{ Age, Rank, Name string }{h.Age, h.Rank, h.Name})
}

func (t *Texts) HerbStatus(h *maplib.HerbInfo) string {
	return t.expand("herb_status", t.cfg.HerbStatus, struct {
		Phase  string
		Growth int
	}{h.Phase(), h.Growth})
}

func (t *Texts) HerbAction(at maplib.Point, h *maplib.HerbInfo, action string) string {
	return t.expand("herb_action", t.cfg.HerbAction, struct {
		At     maplib.Point
		Herb   *maplib.HerbInfo
		Action string
	}{at, h, action})
}

func (t *Texts) Tree(tr *maplib.TreeInfo) string {
	return t.expand("tree", t.cfg.Tree, struct{ Name, Element, Age string }{tr.Name, Title(tr.Element), tr.Age})
}

func (t *Texts) NPC(n *maplib.NPC) string {
	return t.expand("npc", t.cfg.NPC, n)
}

func (t *Texts) Copied() string {
	return t.expand("copied", t.cfg.Copied, nil)
}
