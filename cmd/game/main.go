package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/isomap-engine/engine/command"
	"github.com/1siamBot/isomap-engine/engine/config"
	"github.com/1siamBot/isomap-engine/engine/game"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	script := flag.String("script", "", "file of map commands separated by lines of ---, or - for stdin")
	delay := flag.Duration("script-delay", 3*time.Second, "pause between scripted commands")
	record := flag.String("record", "", "write applied commands to this script file")
	flag.Parse()

	if err := run(*configPath, *script, *record, *delay); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(configPath, script, record string, delay time.Duration) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	lvl, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	var opts []game.Option
	if record != "" {
		rec, err := command.NewRecorder(record)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				slog.Warn("closing recording", "error", err)
			}
			slog.Info("recorded commands", "count", rec.Count, "file", record)
		}()
		opts = append(opts, game.WithRecorder(rec))
	}

	e, err := game.New(cfg, opts...)
	if err != nil {
		return err
	}

	if script != "" {
		r, closer, err := openScript(script)
		if err != nil {
			return err
		}
		go func() {
			defer closer()
			feed(e, r, delay)
		}()
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	e.Start()
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	slog.Info("exiting")
	return nil
}

func openScript(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening script: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// feed submits each block of r, pausing between blocks so moves can play out
func feed(e *game.Engine, r io.Reader, delay time.Duration) {
	err := command.ScanScript(r, func(text string) bool {
		e.Submit(text)
		time.Sleep(delay)
		return true
	})
	if err != nil {
		slog.Warn("feeding script", "error", err)
	}
}
