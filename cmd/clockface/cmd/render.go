package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/controller"
)

// defaultOut is the PNG written when --out is not given.
const defaultOut = "clockface.png"

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Draw one clock frame to a PNG",
		Long: `Draw a single clock face and write it as a PNG image.

Without --time the current local time is drawn.

Flags:
  --mode analog|digital   Face style
  --skin NAME             Skin name (see "clockface skins")
  --size N                Clock scale factor (default 5)
  --width N, --height N   Canvas size (default size×100)
  --time T                Time to draw: RFC 3339, "2006-01-02 15:04:05" or "15:04:05"
  --out FILE              Output file (default clockface.png)`,
		Usage: "clockface render [flags]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	flags, err := parseClockFlags(args, "--mode", "--skin", "--size", "--width", "--height", "--time", "--out")
	if err != nil {
		return err
	}
	at, err := parseTime(flags.at, time.Now())
	if err != nil {
		return err
	}
	res, err := resolve(flags.overrides)
	if err != nil {
		return err
	}
	ctrl, err := newController(res)
	if err != nil {
		return err
	}
	ctrl.UpdateTime(clock.FromTime(at))

	out := flags.out
	if out == "" {
		out = defaultOut
	}
	if err := writePNG(ctrl, out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%s, %s, %s)\n", out, res.Settings.Mode, ctrl.Skin().Name(), ctrl.Time())
	return nil
}

// writePNG rasterizes the controller's face into path via a temp file so
// readers never see a partial image.
func writePNG(ctrl *controller.Controller, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".clockface-*.png")
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := ctrl.Snapshot().EncodePNG(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Debug("wrote frame", "path", path)
	return nil
}
