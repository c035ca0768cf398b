package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pixil98/go-errors"

	"github.com/1siamBot/isomap-engine/engine/iso"
	"github.com/1siamBot/isomap-engine/engine/pathfind"
	"github.com/1siamBot/isomap-engine/engine/systems"
)

type Config struct {
	LogLevel    string          `json:"log_level"`
	Window      WindowConfig    `json:"window"`
	Tiles       iso.TileMetrics `json:"tiles"`
	Camera      CameraConfig    `json:"camera"`
	Animation   AnimationConfig `json:"animation"`
	Selection   SelectionConfig `json:"selection"`
	Movement    MovementConfig  `json:"movement"`
	Chunks      []ChunkConfig   `json:"chunks"`
	Player      PlayerConfig    `json:"player"`
	Assets      AssetConfig     `json:"assets"`
	Text        TextConfig      `json:"text"`
	Colors      ColorConfig     `json:"colors"`
	ShowRegions bool            `json:"show_regions"`
}

// Default returns a configuration that runs without any config file
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "isomap",
		},
		Tiles: iso.DefaultMetrics(),
		Camera: CameraConfig{
			MinZoom:  0.5,
			MaxZoom:  3.0,
			ZoomStep: 0.1,
		},
		Animation: AnimationConfig{
			InitialDelay: "500ms",
			Step:         "600ms",
			Pause:        "200ms",
		},
		Selection: SelectionConfig{
			Fade:         "300ms",
			Stagger:      "100ms",
			RegionReveal: "800ms",
		},
		Movement: MovementConfig{
			BaseStepCost:          pathfind.DefaultBaseStepCost,
			AlternateIntermediate: true,
			Stamina:               100,
		},
		Chunks: []ChunkConfig{{ID: 1}},
		Player: PlayerConfig{
			Name:  "Player",
			Chunk: 1,
			X:     5,
			Y:     5,
		},
		Assets: AssetConfig{
			Dir:                 "assets",
			ProceduralMountains: 5,
		},
		Text: DefaultText(),
		Colors: ColorConfig{
			Range:  "#2196f3",
			Path:   "#ffc107",
			Sense:  "#ffd700",
			Region: "#4caf50",
			Top:    "#6b8e4e",
			Left:   "#4a6336",
			Right:  "#3b5029",
		},
	}
}

// Load reads a JSON config from path on top of the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	_, err := c.SlogLevel()
	el.Add(err)
	if c.Tiles.Width <= 0 || c.Tiles.Height <= 0 || c.Tiles.Thickness < 0 {
		el.Add(fmt.Errorf("tiles: width and height must be positive, thickness non-negative"))
	}

	el.Add(c.Window.Validate())
	el.Add(c.Camera.Validate())
	el.Add(c.Animation.Validate())
	el.Add(c.Selection.Validate())
	el.Add(c.Movement.Validate())
	el.Add(c.Text.Validate())
	el.Add(c.Colors.Validate())

	if len(c.Chunks) == 0 {
		el.Add(fmt.Errorf("at least one chunk is required"))
	}
	seen := make(map[int]bool)
	found := false
	for i, ch := range c.Chunks {
		if seen[ch.ID] {
			el.Add(fmt.Errorf("chunk %d: duplicate id %d", i, ch.ID))
		}
		seen[ch.ID] = true
		if ch.ID == c.Player.Chunk {
			found = true
		}
	}
	if !found {
		el.Add(fmt.Errorf("player chunk %d is not listed in chunks", c.Player.Chunk))
	}
	el.Add(c.Player.Validate())

	return el.Err()
}

// SlogLevel maps log_level to a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("parsing log_level: %w", err)
	}
	return lvl, nil
}

type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

func (c *WindowConfig) Validate() error {
	el := errors.NewErrorList()
	if c.Width <= 0 || c.Height <= 0 {
		el.Add(fmt.Errorf("window size must be positive"))
	}
	return el.Err()
}

type CameraConfig struct {
	MinZoom  float64 `json:"min_zoom"`
	MaxZoom  float64 `json:"max_zoom"`
	ZoomStep float64 `json:"zoom_step"`
	PanX     float64 `json:"pan_x"`
	PanY     float64 `json:"pan_y"`
}

func (c *CameraConfig) Validate() error {
	el := errors.NewErrorList()
	if c.MinZoom <= 0 {
		el.Add(fmt.Errorf("min_zoom must be positive"))
	}
	if c.MaxZoom < c.MinZoom {
		el.Add(fmt.Errorf("max_zoom must not be below min_zoom"))
	}
	if c.ZoomStep <= 0 {
		el.Add(fmt.Errorf("zoom_step must be positive"))
	}
	return el.Err()
}

// Camera builds a camera from the config
func (c *CameraConfig) Camera() *iso.Camera {
	cam := iso.NewCamera()
	cam.MinZoom, cam.MaxZoom = c.MinZoom, c.MaxZoom
	cam.Pan(c.PanX, c.PanY)
	cam.SetZoom(cam.Zoom)
	return cam
}

type AnimationConfig struct {
	InitialDelay string `json:"initial_delay"`
	Step         string `json:"step"`
	Pause        string `json:"pause"`
}

func (c *AnimationConfig) Validate() error {
	_, err := c.Timing()
	return err
}

// Timing parses the animation durations
func (c *AnimationConfig) Timing() (systems.AnimationTiming, error) {
	el := errors.NewErrorList()
	var t systems.AnimationTiming
	var err error

	t.InitialDelay, err = parseDuration("initial_delay", c.InitialDelay)
	el.Add(err)
	t.Step, err = parseDuration("step", c.Step)
	el.Add(err)
	t.Pause, err = parseDuration("pause", c.Pause)
	el.Add(err)

	if err := el.Err(); err != nil {
		return t, fmt.Errorf("animation: %w", err)
	}
	return t, nil
}

type SelectionConfig struct {
	Fade         string `json:"fade"`
	Stagger      string `json:"stagger"`
	RegionReveal string `json:"region_reveal"`
}

func (c *SelectionConfig) Validate() error {
	_, err := c.Timing()
	if err != nil {
		return err
	}
	_, err = c.RegionRevealDuration()
	return err
}

// Timing parses the selection durations
func (c *SelectionConfig) Timing() (systems.SelectionTiming, error) {
	el := errors.NewErrorList()
	var t systems.SelectionTiming
	var err error

	t.Fade, err = parseDuration("fade", c.Fade)
	el.Add(err)
	t.Stagger, err = parseDuration("stagger", c.Stagger)
	el.Add(err)

	if err := el.Err(); err != nil {
		return t, fmt.Errorf("selection: %w", err)
	}
	return t, nil
}

func (c *SelectionConfig) RegionRevealDuration() (time.Duration, error) {
	d, err := parseDuration("region_reveal", c.RegionReveal)
	if err != nil {
		return d, fmt.Errorf("selection: %w", err)
	}
	return d, nil
}

func parseDuration(name, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return d, nil
}

type MovementConfig struct {
	BaseStepCost          float64 `json:"base_step_cost"`
	AlternateIntermediate bool    `json:"alternate_intermediate"`
	Stamina               float64 `json:"stamina"`
}

func (c *MovementConfig) Validate() error {
	el := errors.NewErrorList()
	if c.BaseStepCost <= 0 {
		el.Add(fmt.Errorf("base_step_cost must be positive"))
	}
	if c.Stamina < 0 {
		el.Add(fmt.Errorf("stamina must not be negative"))
	}
	return el.Err()
}

// Planner builds a movement planner from the config
func (c *MovementConfig) Planner() *pathfind.Planner {
	p := pathfind.NewPlanner()
	p.BaseStepCost = c.BaseStepCost
	p.AlternateIntermediate = c.AlternateIntermediate
	return p
}

type ChunkConfig struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

type PlayerConfig struct {
	Name     string `json:"name"`
	Portrait string `json:"portrait"`
	Chunk    int    `json:"chunk"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

func (c *PlayerConfig) Validate() error {
	el := errors.NewErrorList()
	if c.X < 1 || c.Y < 1 || c.X > 10 || c.Y > 10 {
		el.Add(fmt.Errorf("player position %d,%d is outside the chunk", c.X, c.Y))
	}
	return el.Err()
}

type AssetConfig struct {
	Dir string `json:"dir"`
	// Decorations maps a kind letter (M, H, T) to sprite files under Dir
	Decorations map[string][]string `json:"decorations"`
	// NPCs maps an NPC type to its sprite file
	NPCs map[string]string `json:"npcs"`
	// ProceduralMountains is the number of generated mountain sprites used
	// when no mountain files are configured
	ProceduralMountains int   `json:"procedural_mountains"`
	Seed                int64 `json:"seed"`
}

type ColorConfig struct {
	Range  string `json:"range"`
	Path   string `json:"path"`
	Sense  string `json:"sense"`
	Region string `json:"region"`
	Top    string `json:"top"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

func (c *ColorConfig) Validate() error {
	el := errors.NewErrorList()
	for name, v := range map[string]string{
		"range": c.Range, "path": c.Path, "sense": c.Sense, "region": c.Region,
		"top": c.Top, "left": c.Left, "right": c.Right,
	} {
		if _, err := ParseColor(v); err != nil {
			el.Add(fmt.Errorf("colors.%s: %w", name, err))
		}
	}
	return el.Err()
}

// ParseColor reads "#rrggbb" or "rrggbb"
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustColor is ParseColor for values already validated
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
