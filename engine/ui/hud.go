package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/1siamBot/isomap-engine/engine/core"
	"github.com/1siamBot/isomap-engine/engine/maplib"
)

const (
	maxMessages  = 5
	popupColumns = 70
	panelColumns = 36
	panelWidth   = 280
	fontSize     = 14
	lineHeight   = 18
)

// HerbActions are the choices offered by the herb panel
var HerbActions = []string{"Harvest", "Feed"}

// ElementColors tints element names in the herb panel
var ElementColors = map[string]color.RGBA{
	"fire":  {0xd3, 0x2f, 0x2f, 0xff},
	"earth": {0x79, 0x55, 0x48, 0xff},
	"ice":   {0x81, 0xd4, 0xfa, 0xff},
	"wind":  {0x9e, 0x9e, 0x9e, 0xff},
	"water": {0x1a, 0x23, 0x7e, 0xff},
}

var (
	panelBg     = color.RGBA{12, 14, 20, 220}
	panelBorder = color.RGBA{90, 100, 120, 255}
	textColor   = color.RGBA{235, 235, 235, 255}
)

// HUD draws the stamina bar, popup text, messages and the herb panel
type HUD struct {
	ScreenW, ScreenH int
	Texts            *Texts
	// Copy writes popup text to the system clipboard
	Copy func(string) error

	popup    string
	messages []string
	herb     *maplib.Tile
	tooltip  string
	face     *text.GoTextFace
}

func NewHUD(sw, sh int, texts *Texts) (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading hud font: %w", err)
	}
	return &HUD{
		ScreenW: sw,
		ScreenH: sh,
		Texts:   texts,
		Copy:    clipboard.WriteAll,
		popup:   texts.Waiting(),
		face:    &text.GoTextFace{Source: src, Size: fontSize},
	}, nil
}

// Popup returns the current popup text
func (h *HUD) Popup() string {
	return h.popup
}

func (h *HUD) SetPopup(s string) {
	h.popup = s
}

// AddMessage appends a narration line, keeping the most recent few
func (h *HUD) AddMessage(s string) {
	h.messages = append(h.messages, s)
	if len(h.messages) > maxMessages {
		h.messages = h.messages[len(h.messages)-maxMessages:]
	}
}

func (h *HUD) Messages() []string {
	return h.messages
}

// OpenHerb shows the panel for a herb tile; tiles without a herb close it
func (h *HUD) OpenHerb(t *maplib.Tile) {
	if t == nil || t.Herb == nil {
		h.herb = nil
		return
	}
	h.herb = t
}

func (h *HUD) CloseHerb() {
	h.herb = nil
}

func (h *HUD) HerbOpen() bool {
	return h.herb != nil
}

// ChooseHerbAction sets the popup to the chosen action on the open herb and
// closes the panel. It returns false when no panel is open.
func (h *HUD) ChooseHerbAction(action string) bool {
	if h.herb == nil {
		return false
	}
	h.popup = h.Texts.HerbAction(h.herb.Local(), h.herb.Herb, action)
	h.herb = nil
	return true
}

// Hover updates the tooltip for the tile under the cursor
func (h *HUD) Hover(t *maplib.Tile) {
	h.tooltip = ""
	if t == nil || t.Hidden {
		return
	}
	switch {
	case t.NPC != nil:
		h.tooltip = h.Texts.NPC(t.NPC)
	case t.Tree != nil:
		h.tooltip = h.Texts.Tree(t.Tree)
	}
}

func (h *HUD) Tooltip() string {
	return h.tooltip
}

// CopyPopup copies the popup text to the clipboard
func (h *HUD) CopyPopup() error {
	if err := h.Copy(h.popup); err != nil {
		return fmt.Errorf("copying popup: %w", err)
	}
	return nil
}

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image, p *core.Player, cursorX, cursorY int) {
	h.drawStatus(screen, p)
	h.drawPopup(screen)
	h.drawMessages(screen)
	if h.herb != nil {
		h.drawHerbPanel(screen)
	}
	if h.tooltip != "" {
		h.drawBox(screen, h.tooltip, float64(cursorX+16), float64(cursorY+16))
	}
}

func (h *HUD) drawStatus(screen *ebiten.Image, p *core.Player) {
	if p == nil {
		return
	}
	vector.FillRect(screen, 8, 8, 220, 52, panelBg, false)
	vector.StrokeRect(screen, 8, 8, 220, 52, 1, panelBorder, false)

	label := p.Name
	if label == "" {
		label = "Player"
	}
	h.drawText(screen, label+"  "+h.Texts.Mode(p.Mode), 16, 14, textColor)

	ratio := p.Stamina.Fraction()
	barColor := color.RGBA{76, 175, 80, 255}
	switch {
	case ratio < 0.25:
		barColor = color.RGBA{229, 57, 53, 255}
	case ratio < 0.5:
		barColor = color.RGBA{253, 216, 53, 255}
	}
	vector.FillRect(screen, 16, 38, 200, 12, color.RGBA{40, 40, 40, 255}, false)
	vector.FillRect(screen, 16, 38, float32(200*ratio), 12, barColor, false)
	if p.Stamina.Pending() {
		// reserved share of the committed stamina
		base := p.Stamina.Base / max(p.Stamina.Max, 1)
		vector.StrokeRect(screen, 16, 38, float32(200*base), 12, 1, color.RGBA{255, 255, 255, 160}, false)
	}
}

func (h *HUD) drawPopup(screen *ebiten.Image) {
	if h.popup == "" {
		return
	}
	s := Wrap(h.popup, popupColumns)
	lines := strings.Count(s, "\n") + 1
	h.drawBox(screen, s, 8, float64(h.ScreenH-lines*lineHeight-24))
}

func (h *HUD) drawMessages(screen *ebiten.Image) {
	y := 70.0
	for _, m := range h.messages {
		s := Wrap(m, panelColumns)
		h.drawText(screen, s, 16, y, color.RGBA{200, 220, 255, 255})
		y += float64(strings.Count(s, "\n")+1) * lineHeight
	}
}

func (h *HUD) drawHerbPanel(screen *ebiten.Image) {
	herb := h.herb.Herb
	x := float64(h.ScreenW - panelWidth - 8)
	y := 8.0

	lore := Wrap(herb.Lore, panelColumns)
	lines := 4 + strings.Count(lore, "\n") + 1
	vector.FillRect(screen, float32(x), float32(y), panelWidth, float32(lines*lineHeight+16), panelBg, false)
	vector.StrokeRect(screen, float32(x), float32(y), panelWidth, float32(lines*lineHeight+16), 1, panelBorder, false)

	x += 8
	y += 8
	h.drawText(screen, h.Texts.HerbTitle(herb), x, y, textColor)
	y += lineHeight
	if herb.Element != "" {
		clr, ok := ElementColors[strings.ToLower(herb.Element)]
		if !ok {
			clr = textColor
		}
		h.drawText(screen, Title(herb.Element), x, y, clr)
	}
	y += lineHeight
	h.drawText(screen, lore, x, y, color.RGBA{190, 190, 190, 255})
	y += float64(strings.Count(lore, "\n")+1) * lineHeight
	h.drawText(screen, h.Texts.HerbStatus(herb), x, y, textColor)
	y += lineHeight
	h.drawText(screen, "[H] "+HerbActions[0]+"   [F] "+HerbActions[1], x, y, color.RGBA{255, 193, 7, 255})
}

func (h *HUD) drawBox(screen *ebiten.Image, s string, x, y float64) {
	w, th := text.Measure(s, h.face, lineHeight)
	vector.FillRect(screen, float32(x), float32(y), float32(w+16), float32(th+12), panelBg, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w+16), float32(th+12), 1, panelBorder, false)
	h.drawText(screen, s, x+8, y+6, textColor)
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = lineHeight
	text.Draw(screen, s, h.face, op)
}
