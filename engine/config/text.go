package config

import (
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-errors"
)

// TextConfig holds the HUD strings. Each one is a text/template with the
// sprig function set.
type TextConfig struct {
	Waiting      string `json:"waiting"`
	Move         string `json:"move"`
	Sense        string `json:"sense"`
	Insufficient string `json:"insufficient"`
	HerbTitle    string `json:"herb_title"`
	HerbStatus   string `json:"herb_status"`
	HerbAction   string `json:"herb_action"`
	Tree         string `json:"tree"`
	NPC          string `json:"npc"`
	Mode         string `json:"mode"`
	Copied       string `json:"copied"`
}

func DefaultText() TextConfig {
	return TextConfig{
		Waiting:      "Waiting for input...",
		Move:         "Player at {{.From.X}},{{.From.Y}} moving to {{.To.X}},{{.To.Y}}.",
		Sense:        "Player is using sense at tile {{.At.X}},{{.At.Y}}.",
		Insufficient: "Not enough stamina: {{.Cost | int}} needed, {{.Available | int}} left.",
		HerbTitle:    `{{list .Age .Rank .Name | compact | join " "}}`,
		HerbStatus:   "Status: {{.Phase}} ({{.Growth}}%)",
		HerbAction:   "Herb at {{.At.X}},{{.At.Y}} named {{.Herb.Name}} chosen to {{.Action}}",
		Tree:         `{{.Name | default "Tree"}}{{with .Element}} ^{{.}}{{end}}{{with .Age}} ({{.}}){{end}}`,
		NPC:          `{{.Name | default "Stranger"}}`,
		Mode:         "{{.Mode | upper}}",
		Copied:       "Copied to clipboard",
	}
}

func (c *TextConfig) fields() map[string]string {
	return map[string]string{
		"waiting":      c.Waiting,
		"move":         c.Move,
		"sense":        c.Sense,
		"insufficient": c.Insufficient,
		"herb_title":   c.HerbTitle,
		"herb_status":  c.HerbStatus,
		"herb_action":  c.HerbAction,
		"tree":         c.Tree,
		"npc":          c.NPC,
		"mode":         c.Mode,
		"copied":       c.Copied,
	}
}

func (c *TextConfig) Validate() error {
	el := errors.NewErrorList()
	funcs := sprig.TxtFuncMap()
	for name, v := range c.fields() {
		if _, err := template.New(name).Funcs(funcs).Parse(v); err != nil {
			el.Add(fmt.Errorf("text.%s: %w", name, err))
		}
	}
	return el.Err()
}
