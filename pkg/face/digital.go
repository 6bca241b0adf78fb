package face

import (
	"math"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/skin"
)

const (
	digitalBorderX = 0.10
	digitalBorderY = 0.33

	timeChars       = 11
	timeWidthRatio  = 0.9
	timeLeftRatio   = 0.05
	timeBaseline    = 0.40
	timeCharPadding = 2
	dateBaseline    = 0.15
)

// timeGlyphs are every character FormatTime can produce.
const timeGlyphs = "0123456789: APM"

// Digital draws the time as monospaced text inside a bordered rectangle.
type Digital struct {
	fonts *graphics.FontManager

	width, height, clockSize int
	body                     graphics.Rect
	glyphs                   map[rune]*graphics.TextLayout
	date                     dateText
}

// NewDigital builds a digital renderer for s.
func NewDigital(s Settings) (*Digital, error) {
	if err := validateSize("face.NewDigital", s.Width, s.Height, s.ClockSize); err != nil {
		return nil, err
	}
	fm, err := defaultFonts("face.NewDigital")
	if err != nil {
		return nil, err
	}
	d := &Digital{fonts: fm}
	if err := d.layout(s.Width, s.Height, s.ClockSize); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Digital) Mode() Mode { return ModeDigital }

func (d *Digital) Size() graphics.Size {
	return graphics.Size{Width: float64(d.width), Height: float64(d.height)}
}

// Body returns the rectangle the face is drawn in.
func (d *Digital) Body() graphics.Rect {
	return d.body
}

func (d *Digital) Resize(width, height, clockSize int) error {
	if err := validateSize("face.Digital.Resize", width, height, clockSize); err != nil {
		return err
	}
	if width == d.width && height == d.height && clockSize == d.clockSize {
		return nil
	}
	return d.layout(width, height, clockSize)
}

// DigitalBody returns the face rectangle for a width×height canvas.
func DigitalBody(width, height int) graphics.Rect {
	bx := math.Round(float64(width) * digitalBorderX)
	by := math.Round(float64(height) * digitalBorderY)
	return graphics.RectFromLTWH(bx, by, float64(width)-2*bx, float64(height)-2*by)
}

func (d *Digital) layout(width, height, clockSize int) error {
	style := graphics.TextStyle{
		FontFamily: graphics.FontFamilyMono,
		FontSize:   float64(clockSize * 11),
	}
	glyphs := make(map[rune]*graphics.TextLayout, len(timeGlyphs))
	for _, r := range timeGlyphs {
		l, err := layoutText("face.Digital.layout", string(r), style, d.fonts)
		if err != nil {
			return err
		}
		glyphs[r] = l
	}
	d.width, d.height, d.clockSize = width, height, clockSize
	d.body = DigitalBody(width, height)
	d.glyphs = glyphs
	d.date = newDateText(graphics.TextStyle{
		FontFamily: graphics.FontFamilyMono,
		FontSize:   float64(clockSize * 4),
	})
	return nil
}

// CharPositions returns the baseline origin of each of the 11 time
// characters.
func (d *Digital) CharPositions() [timeChars]graphics.Offset {
	var out [timeChars]graphics.Offset
	b := d.body
	timeWidth := math.Round(timeWidthRatio * b.Width())
	increment := math.Round(timeWidth / timeChars)
	left := Proportion(b.Left, b.Width(), timeLeftRatio)
	y := Proportion(b.Bottom, b.Height(), -timeBaseline)
	for i := range out {
		out[i] = graphics.Offset{X: float64(i)*increment + timeCharPadding + left, Y: y}
	}
	return out
}

func (d *Digital) Draw(canvas graphics.Canvas, ts clock.Timestamp, sk skin.Skin) {
	canvas.DrawRect(graphics.RectFromLTWH(0, 0, float64(d.width), float64(d.height)),
		graphics.FillPaint(sk.Color(skin.RoleBackground)))
	canvas.DrawRect(d.body, graphics.FillPaint(sk.Color(skin.RolePrimary)))
	canvas.DrawRect(d.body, graphics.StrokePaint(sk.Color(skin.RoleEdge), bodyStroke).
		WithCap(graphics.CapRound, graphics.JoinRound))
	d.drawDate(canvas, ts, sk)
	d.drawTime(canvas, ts, sk)
}

func (d *Digital) drawDate(canvas graphics.Canvas, ts clock.Timestamp, sk skin.Skin) {
	l, err := d.date.layoutFor("face.Digital.Draw", ts, sk.Color(skin.RoleDate), d.fonts)
	if err != nil {
		errors.Report(errors.New("face.Digital.Draw", errors.KindRender, err))
		return
	}
	b := d.body
	pos := graphics.Offset{
		X: math.Round(b.Width()/2 - l.Width()/2 + b.Left),
		Y: Proportion(b.Bottom, b.Height(), -dateBaseline),
	}
	canvas.DrawText(l, pos)
}

func (d *Digital) drawTime(canvas graphics.Canvas, ts clock.Timestamp, sk skin.Skin) {
	color := sk.Color(skin.RoleNumber)
	positions := d.CharPositions()
	for i, r := range TimeString(ts) {
		if i >= timeChars {
			break
		}
		l, ok := d.glyphs[r]
		if !ok {
			continue
		}
		canvas.DrawText(l.WithColor(color), positions[i])
	}
}
