package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/controller"
	"github.com/go-drift/clockface/pkg/face"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/skin"
)

func init() {
	RegisterCommand(&Command{
		Name:  "watch",
		Short: "Show a live clock in the terminal",
		Long: `Show a live clock in the terminal, updated once per second.

Keys:
  a         Analog view
  d         Digital view
  ←/→       Previous / next skin
  s         Save the current frame as a PNG
  q         Quit

Flags:
  --mode, --skin, --size, --width, --height   As for "clockface render"
  --out FILE   Rewrite FILE with the current frame every second`,
		Usage: "clockface watch [flags]",
		Run:   runWatch,
	})
}

func runWatch(args []string) error {
	flags, err := parseClockFlags(args, "--mode", "--skin", "--size", "--width", "--height", "--out")
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

	ticker := clock.NewTicker(nil)
	ticker.SetLogger(global.logger)
	detach := ctrl.Attach(ticker)
	defer detach()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := ticker.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("ticker stopped", "err", err)
		}
	}()

	_, err = tea.NewProgram(newWatchModel(ctrl, ticker.C(), flags.out), tea.WithAltScreen()).Run()
	return err
}

type tickMsg clock.Timestamp

// watchModel is the bubbletea model for the live clock.
type watchModel struct {
	ctrl   *controller.Controller
	ticks  <-chan clock.Timestamp
	out    string
	status string
	now    func() time.Time
}

func newWatchModel(ctrl *controller.Controller, ticks <-chan clock.Timestamp, out string) watchModel {
	return watchModel{ctrl: ctrl, ticks: ticks, out: out, now: time.Now}
}

func waitForTick(ch <-chan clock.Timestamp) tea.Cmd {
	return func() tea.Msg {
		ts, ok := <-ch
		if !ok {
			return nil
		}
		return tickMsg(ts)
	}
}

// Init starts listening for ticks.
func (m watchModel) Init() tea.Cmd {
	return waitForTick(m.ticks)
}

// Update handles ticks and key presses.
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.out != "" {
			if err := writePNG(m.ctrl, m.out); err != nil {
				m.status = err.Error()
			}
		}
		return m, waitForTick(m.ticks)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a":
			m.setMode(face.ModeAnalog)
		case "d":
			m.setMode(face.ModeDigital)
		case "left", "h":
			m.status = "skin: " + m.ctrl.CycleSkin(-1).Name()
		case "right", "l":
			m.status = "skin: " + m.ctrl.CycleSkin(1).Name()
		case "s":
			name := fmt.Sprintf("clockface-%s.png", m.now().Format("20060102-150405"))
			if err := writePNG(m.ctrl, name); err != nil {
				m.status = err.Error()
			} else {
				m.status = "saved " + name
			}
		}
	}
	return m, nil
}

func (m *watchModel) setMode(mode face.Mode) {
	if err := m.ctrl.SetMode(mode); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "view: " + mode.String()
}

func termColor(c graphics.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// View renders the face in the skin's colors.
func (m watchModel) View() string {
	sk := m.ctrl.Skin()
	ts := m.ctrl.Time()

	box := lipgloss.NewStyle().
		Background(termColor(sk.Color(skin.RolePrimary))).
		Foreground(termColor(sk.Color(skin.RoleNumber))).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(termColor(sk.Color(skin.RoleEdge))).
		Padding(1, 4)
	date := lipgloss.NewStyle().
		Background(termColor(sk.Color(skin.RolePrimary))).
		Foreground(termColor(sk.Color(skin.RoleDate)))

	var body string
	if m.ctrl.Settings().Mode == face.ModeAnalog {
		body = lipgloss.JoinVertical(lipgloss.Center, asciiDial(ts), "", date.Render(face.DateString(ts)))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center, lipgloss.NewStyle().Bold(true).Render(face.TimeString(ts)), "", date.Render(face.DateString(ts)))
	}

	help := lipgloss.NewStyle().Faint(true).Render("a analog · d digital · ←/→ skin · s save · q quit")
	var b strings.Builder
	b.WriteString(box.Render(body))
	b.WriteString("\n")
	b.WriteString(sk.Name())
	if m.status != "" {
		b.WriteString("  " + m.status)
	}
	b.WriteString("\n")
	b.WriteString(help)
	b.WriteString("\n")
	return b.String()
}

const (
	dialCols = 25
	dialRows = 13
)

// asciiDial draws a character-cell dial. Cells are about twice as tall as
// wide, so x distances are doubled.
func asciiDial(ts clock.Timestamp) string {
	grid := make([][]rune, dialRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", dialCols))
	}
	cx, cy := float64(dialCols/2), float64(dialRows/2)
	radius := float64(dialRows/2) - 0.5
	plot := func(angle, r float64, ch rune) {
		x := int(math.Round(cx + 2*r*math.Cos(angle)))
		y := int(math.Round(cy - r*math.Sin(angle)))
		if y >= 0 && y < dialRows && x >= 0 && x < dialCols {
			grid[y][x] = ch
		}
	}
	for i := 0; i < face.Ticks; i += 5 {
		ch := '·'
		if i%15 == 0 {
			ch = 'o'
		}
		plot(face.TickAngle(i), radius, ch)
	}
	hand := func(index int, ratio float64, ch rune) {
		angle := face.TickAngle(index)
		for r := 0.5; r <= radius*ratio; r += 0.25 {
			plot(angle, r, ch)
		}
	}
	hand(ts.Second, 0.8, '.')
	hand(ts.Minute, 0.7, '*')
	hand(face.HourToIndex(ts.Hour), 0.5, '#')
	grid[int(cy)][int(cx)] = '+'

	lines := make([]string, dialRows)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
