// Package face draws analog and digital clock faces onto a graphics.Canvas.
//
// Renderers hold size-dependent state (the dial table, the digital body
// rectangle and measured glyphs) plus cached text layouts. The output of
// Draw depends only on the timestamp, the skin and that state, so two draws
// with the same inputs record identical display lists.
package face

import (
	"fmt"
	"strings"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/skin"
)

// Mode selects the face style.
type Mode int

const (
	ModeAnalog Mode = iota
	ModeDigital
)

// String returns the mode name used on the command line and in config.
func (m Mode) String() string {
	switch m {
	case ModeAnalog:
		return "analog"
	case ModeDigital:
		return "digital"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "analog" or "digital" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "analog":
		return ModeAnalog, nil
	case "digital":
		return ModeDigital, nil
	default:
		return 0, errors.Errorf("face.ParseMode", errors.KindConfig, "unknown mode %q", s)
	}
}

// DefaultClockSize is the scale factor used when none is configured.
const DefaultClockSize = 5

// Settings describes the clock being drawn.
type Settings struct {
	Width     int
	Height    int
	ClockSize int
	Mode      Mode
	Skin      skin.Skin
}

// DefaultSettings returns a 500×500 analog clock in the Basic skin.
func DefaultSettings() Settings {
	sk, _ := skin.Default().ByName(skin.DefaultName)
	return Settings{
		Width:     DefaultClockSize * 100,
		Height:    DefaultClockSize * 100,
		ClockSize: DefaultClockSize,
		Mode:      ModeAnalog,
		Skin:      sk,
	}
}

// Validate rejects non-positive dimensions.
func (s Settings) Validate() error {
	return validateSize("face.Settings", s.Width, s.Height, s.ClockSize)
}

func validateSize(op string, width, height, clockSize int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf(op, errors.KindConfig, "invalid size %dx%d", width, height)
	}
	if clockSize <= 0 {
		return errors.Errorf(op, errors.KindConfig, "invalid clock size %d", clockSize)
	}
	return nil
}

// Renderer draws one face style.
type Renderer interface {
	// Draw paints the whole face for ts in the colors of sk. It reuses
	// cached layouts and must not be called concurrently.
	Draw(canvas graphics.Canvas, ts clock.Timestamp, sk skin.Skin)

	// Resize recomputes size-dependent state. Unchanged dimensions are a
	// no-op.
	Resize(width, height, clockSize int) error

	// Mode reports which style the renderer draws.
	Mode() Mode

	// Size returns the canvas size the renderer lays out for.
	Size() graphics.Size
}

// New builds the renderer for s.Mode using the shared font manager.
func New(s Settings) (Renderer, error) {
	switch s.Mode {
	case ModeAnalog:
		return NewAnalog(s)
	case ModeDigital:
		return NewDigital(s)
	default:
		return nil, errors.Errorf("face.New", errors.KindConfig, "unknown mode %v", s.Mode)
	}
}

func defaultFonts(op string) (*graphics.FontManager, error) {
	fm, err := graphics.DefaultFontManagerErr()
	if err != nil {
		return nil, errors.New(op, errors.KindInit, err)
	}
	return fm, nil
}

func layoutText(op, text string, style graphics.TextStyle, fm *graphics.FontManager) (*graphics.TextLayout, error) {
	l, err := graphics.LayoutText(text, style, fm)
	if err != nil {
		return nil, errors.New(op, errors.KindRender, fmt.Errorf("layout %q: %w", text, err))
	}
	return l, nil
}

type dateKey struct {
	year, month, day, dayOfWeek int
}

// dateText holds the laid-out date line. The layout is rebuilt when the
// calendar day changes and recolored when the skin does.
type dateText struct {
	style  graphics.TextStyle
	key    dateKey
	layout *graphics.TextLayout
}

func newDateText(style graphics.TextStyle) dateText {
	return dateText{style: style}
}

func (d *dateText) layoutFor(op string, ts clock.Timestamp, color graphics.Color, fm *graphics.FontManager) (*graphics.TextLayout, error) {
	key := dateKey{ts.Year, ts.Month, ts.Day, ts.DayOfWeek}
	switch {
	case d.layout == nil || key != d.key:
		l, err := layoutText(op, DateString(ts), d.style.WithColor(color), fm)
		if err != nil {
			return nil, err
		}
		d.key, d.layout = key, l
	case d.layout.Style.Color != color:
		d.layout = d.layout.WithColor(color)
	}
	return d.layout, nil
}
