package cmd

import (
	"bytes"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/controller"
	"github.com/go-drift/clockface/pkg/face"
	"github.com/google/go-cmp/cmp"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestExecute_HelpAndVersion(t *testing.T) {
	out := captureStdout(t)
	if err := Execute([]string{"--help"}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"render", "skins", "watch"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help missing %q", name)
		}
	}
	out.Reset()
	if err := Execute([]string{"-v"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q", out.String())
	}
	if err := Execute([]string{"bogus"}); err == nil {
		t.Error("unknown command should fail")
	}
	if err := Execute([]string{"render", "--config"}); err == nil {
		t.Error("--config without a value should fail")
	}
}

func TestParseClockFlags(t *testing.T) {
	f, err := parseClockFlags([]string{"--mode=digital", "--skin", "Iron Man", "--size", "3", "--out", "x.png"},
		"--mode", "--skin", "--size", "--out")
	if err != nil {
		t.Fatal(err)
	}
	want := config.Overrides{Mode: "digital", Skin: "Iron Man", Size: 3}
	if diff := cmp.Diff(want, f.overrides); diff != "" {
		t.Errorf("overrides mismatch (-want +got):\n%s", diff)
	}
	if f.out != "x.png" {
		t.Errorf("out = %q", f.out)
	}

	bad := [][]string{
		{"--size", "0"},
		{"--size"},
		{"--time", "now"},
		{"stray"},
	}
	for _, args := range bad {
		if _, err := parseClockFlags(args, "--size"); err == nil {
			t.Errorf("parseClockFlags(%q) should fail", args)
		}
	}
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, time.May, 6, 1, 2, 3, 0, time.UTC)
	tests := map[string]time.Time{
		"":                     now,
		"09:05:00":             time.Date(2024, time.May, 6, 9, 5, 0, 0, time.UTC),
		"21:30":                time.Date(2024, time.May, 6, 21, 30, 0, 0, time.UTC),
		"2023-12-25 07:00:00":  time.Date(2023, time.December, 25, 7, 0, 0, 0, time.UTC),
		"2023-12-25T07:00:00Z": time.Date(2023, time.December, 25, 7, 0, 0, 0, time.UTC),
	}
	for in, want := range tests {
		got, err := parseTime(in, now)
		if err != nil {
			t.Errorf("parseTime(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("parseTime(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := parseTime("noonish", now); err == nil {
		t.Error("expected error")
	}
}

func TestRender_WritesPNG(t *testing.T) {
	out := captureStdout(t)
	path := filepath.Join(t.TempDir(), "frame.png")
	err := Execute([]string{"render", "--mode", "digital", "--skin", "Thor", "--size", "2", "--time", "09:05:00", "--out", path})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("bounds = %v", b)
	}
	if !strings.Contains(out.String(), "digital, Thor") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSkins_ListsCatalog(t *testing.T) {
	out := captureStdout(t)
	if err := Execute([]string{"skins", "--plain"}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	if !strings.HasPrefix(lines[0], "*  0  Basic") || !strings.Contains(lines[0], "#ffffff #ffffff #ff0000") {
		t.Errorf("first line = %q", lines[0])
	}
}

func newTestModel(t *testing.T) watchModel {
	t.Helper()
	ctrl, err := controller.New(face.DefaultSettings(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctrl.UpdateTime(clock.Timestamp{Year: 2024, Month: 0, Day: 1, DayOfWeek: 2, Hour: 3, Minute: 15, Second: 45, PM: true})
	return newWatchModel(ctrl, make(chan clock.Timestamp), "")
}

func press(m watchModel, key tea.KeyMsg) watchModel {
	next, _ := m.Update(key)
	return next.(watchModel)
}

func TestWatchModel_Keys(t *testing.T) {
	m := newTestModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if m.ctrl.Settings().Mode != face.ModeDigital {
		t.Error("d should switch to digital")
	}
	if !strings.Contains(m.View(), "3:15:45 PM") {
		t.Errorf("digital view missing time:\n%s", m.View())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.ctrl.Skin().Name() != "Inverted" || m.status != "skin: Inverted" {
		t.Errorf("right: skin = %q status = %q", m.ctrl.Skin().Name(), m.status)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.ctrl.Skin().Name() != "Barbie" {
		t.Errorf("left twice: skin = %q", m.ctrl.Skin().Name())
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if m.ctrl.Settings().Mode != face.ModeAnalog || !strings.Contains(m.View(), "Monday January 1, 2024") {
		t.Error("a should switch to analog and show the date")
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestWatchModel_TickRewritesOut(t *testing.T) {
	m := newTestModel(t)
	m.out = filepath.Join(t.TempDir(), "live.png")
	next, cmd := m.Update(tickMsg{})
	if cmd == nil {
		t.Error("tick should wait for the next tick")
	}
	if next.(watchModel).status != "" {
		t.Errorf("status = %q", next.(watchModel).status)
	}
	if _, err := os.Stat(m.out); err != nil {
		t.Errorf("frame not written: %v", err)
	}
}

func TestAsciiDial(t *testing.T) {
	dial := asciiDial(clock.Timestamp{Hour: 3, Minute: 0, Second: 30})
	lines := strings.Split(dial, "\n")
	if len(lines) != dialRows {
		t.Fatalf("rows = %d", len(lines))
	}
	mid := []rune(lines[dialRows/2])
	if mid[dialCols/2] != '+' {
		t.Errorf("center = %q", mid[dialCols/2])
	}
	if mid[dialCols/2+2] != '#' {
		t.Errorf("hour hand should point right: %q", string(mid))
	}
	if []rune(lines[3])[dialCols/2] != '*' {
		t.Errorf("minute hand should point up: %q", lines[3])
	}
}

func TestVerbose_LogsThroughCLILogger(t *testing.T) {
	captureStdout(t)
	var logs bytes.Buffer
	prev := stderr
	stderr = &logs
	t.Cleanup(func() { stderr = prev })
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := Execute([]string{"--verbose", "render", "--time", "09:05:00", "--out", path}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(logs.String(), "wrote frame") {
		t.Errorf("debug output missing: %q", logs.String())
	}

	res, err := config.Resolve(t.TempDir(), "", config.Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	logs.Reset()
	// The default logger no longer points at logs, so only an explicitly
	// wired controller writes there.
	slog.SetDefault(defaultLogger)
	ctrl, err := newController(res)
	if err != nil {
		t.Fatal(err)
	}
	ctrl.SelectSkin("Thor")
	if !strings.Contains(logs.String(), "skin=Thor") {
		t.Errorf("controller did not log through the CLI logger: %q", logs.String())
	}
}
