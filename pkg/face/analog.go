package face

import (
	"image"
	"math"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/skin"
)

const (
	bodyStroke = 10
	tickStroke = 2
	handStroke = 4

	hourHandRatio   = 0.5
	minuteHandRatio = 0.7
	secondHandRatio = 0.8

	// arrowLength and arrowWidth are fractions of the hand direction vector.
	arrowLength = 0.1
	arrowWidth  = 0.05

	numeralRadius   = 0.8
	numeralBaseline = 6
	dateHeight      = 1.20

	// geometryCacheSize bounds the dial tables kept per renderer.
	geometryCacheSize = 4
)

// Hand is the resolved outline of one clock hand. Base and the wings are
// only meaningful when Arrow is set.
type Hand struct {
	Tip   image.Point
	Base  image.Point
	Wing1 image.Point
	Wing2 image.Point
	Arrow bool
}

// Analog draws a round dial with ticks, roman numerals, the date and
// three hands.
type Analog struct {
	fonts *graphics.FontManager
	cache *GeometryCache

	width, height, clockSize int
	geom                     *Geometry
	numerals                 [12]*graphics.TextLayout
	date                     dateText
}

// NewAnalog builds an analog renderer for s.
func NewAnalog(s Settings) (*Analog, error) {
	if err := validateSize("face.NewAnalog", s.Width, s.Height, s.ClockSize); err != nil {
		return nil, err
	}
	fm, err := defaultFonts("face.NewAnalog")
	if err != nil {
		return nil, err
	}
	a := &Analog{fonts: fm, cache: NewGeometryCache(geometryCacheSize)}
	if err := a.layout(s.Width, s.Height, s.ClockSize); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Analog) Mode() Mode { return ModeAnalog }

func (a *Analog) Size() graphics.Size {
	return graphics.Size{Width: float64(a.width), Height: float64(a.height)}
}

// Geometry returns the dial table in use.
func (a *Analog) Geometry() *Geometry {
	return a.geom
}

func (a *Analog) Resize(width, height, clockSize int) error {
	if err := validateSize("face.Analog.Resize", width, height, clockSize); err != nil {
		return err
	}
	if width == a.width && height == a.height && clockSize == a.clockSize {
		return nil
	}
	return a.layout(width, height, clockSize)
}

func (a *Analog) layout(width, height, clockSize int) error {
	style := graphics.TextStyle{
		FontFamily: graphics.FontFamilySerif,
		FontWeight: graphics.FontWeightBold,
		FontSize:   float64(clockSize * 6),
	}
	var numerals [12]*graphics.TextLayout
	for i, text := range Numerals {
		l, err := layoutText("face.Analog.layout", text, style, a.fonts)
		if err != nil {
			return err
		}
		numerals[i] = l
	}
	a.width, a.height, a.clockSize = width, height, clockSize
	a.geom = a.cache.Analog(width, height, clockSize)
	a.numerals = numerals
	a.date = newDateText(graphics.TextStyle{
		FontFamily: graphics.FontFamilySerif,
		FontWeight: graphics.FontWeightBold,
		FontSize:   float64(clockSize * 4),
	})
	return nil
}

func (a *Analog) Draw(canvas graphics.Canvas, ts clock.Timestamp, sk skin.Skin) {
	canvas.DrawRect(graphics.RectFromLTWH(0, 0, float64(a.width), float64(a.height)),
		graphics.FillPaint(sk.Color(skin.RoleBackground)))
	a.drawBody(canvas, sk)
	a.drawTicks(canvas, sk)
	a.drawNumerals(canvas, sk)
	a.drawDate(canvas, ts, sk)
	a.drawHands(canvas, ts, sk)
}

func (a *Analog) center() graphics.Offset {
	return graphics.OffsetFromPoint(a.geom.Center)
}

func (a *Analog) drawBody(canvas graphics.Canvas, sk skin.Skin) {
	r := a.geom.Radius
	canvas.DrawCircle(a.center(), r, graphics.StrokePaint(sk.Color(skin.RoleEdge), bodyStroke))
	canvas.DrawCircle(a.center(), r, graphics.FillPaint(sk.Color(skin.RolePrimary)))
}

func (a *Analog) drawTicks(canvas graphics.Canvas, sk skin.Skin) {
	paint := graphics.StrokePaint(sk.Color(skin.RoleEdge), tickStroke)
	for i := 0; i < Ticks; i++ {
		canvas.DrawLine(graphics.OffsetFromPoint(a.geom.Circle[i]), graphics.OffsetFromPoint(a.geom.Ticks[i]), paint)
	}
}

// NumeralPositions returns the baseline origin of each numeral.
func (a *Analog) NumeralPositions() [12]graphics.Offset {
	var out [12]graphics.Offset
	c := a.center()
	r := numeralRadius * a.geom.Radius
	for i, l := range a.numerals {
		angle := TickAngle(i * 5)
		x := c.X + r*math.Cos(angle)
		y := c.Y - r*math.Sin(angle)
		out[i] = graphics.Offset{
			X: math.Round(CenteredLeft(x, l.Width())),
			Y: math.Round(y) + numeralBaseline,
		}
	}
	return out
}

func (a *Analog) drawNumerals(canvas graphics.Canvas, sk skin.Skin) {
	color := sk.Color(skin.RoleNumber)
	if a.numerals[0].Style.Color != color {
		for i, l := range a.numerals {
			a.numerals[i] = l.WithColor(color)
		}
	}
	for i, pos := range a.NumeralPositions() {
		canvas.DrawText(a.numerals[i], pos)
	}
}

func (a *Analog) drawDate(canvas graphics.Canvas, ts clock.Timestamp, sk skin.Skin) {
	l, err := a.date.layoutFor("face.Analog.Draw", ts, sk.Color(skin.RoleDate), a.fonts)
	if err != nil {
		errors.Report(errors.New("face.Analog.Draw", errors.KindRender, err))
		return
	}
	c := a.geom.Center
	pos := graphics.Offset{
		X: math.Floor(CenteredLeft(float64(c.X), l.Width())),
		Y: math.Floor(float64(c.Y) * dateHeight),
	}
	canvas.DrawText(l, pos)
}

// Hands returns the hour, minute and second hand outlines for ts.
func (a *Analog) Hands(ts clock.Timestamp) (hour, minute, second Hand) {
	hour = handFor(a.geom, HourToIndex(ts.Hour), hourHandRatio, true)
	minute = handFor(a.geom, ts.Minute%Ticks, minuteHandRatio, true)
	second = handFor(a.geom, ts.Second%Ticks, secondHandRatio, false)
	return hour, minute, second
}

func handFor(g *Geometry, index int, ratio float64, arrow bool) Hand {
	cx, cy := float64(g.Center.X), float64(g.Center.Y)
	run := float64(g.Circle[index].X) - cx
	rise := float64(g.Circle[index].Y) - cy
	tipX := math.Round(cx + run*ratio)
	tipY := math.Round(cy + rise*ratio)
	h := Hand{Tip: image.Point{X: int(tipX), Y: int(tipY)}, Arrow: arrow}
	if !arrow {
		return h
	}
	baseX := math.Round(tipX - run*arrowLength)
	baseY := math.Round(tipY - rise*arrowLength)
	halfX := -rise * arrowWidth / 2
	halfY := run * arrowWidth / 2
	h.Base = image.Point{X: int(baseX), Y: int(baseY)}
	h.Wing1 = image.Point{X: int(math.Round(baseX + halfX)), Y: int(math.Round(baseY + halfY))}
	h.Wing2 = image.Point{X: int(math.Round(baseX - halfX)), Y: int(math.Round(baseY - halfY))}
	return h
}

func (a *Analog) drawHands(canvas graphics.Canvas, ts clock.Timestamp, sk skin.Skin) {
	hour, minute, second := a.Hands(ts)
	arrowPaint := graphics.StrokePaint(sk.Color(skin.RoleTertiary), handStroke).
		WithCap(graphics.CapSquare, graphics.JoinMiter)
	a.drawArrow(canvas, hour, arrowPaint)
	a.drawArrow(canvas, minute, arrowPaint)
	canvas.DrawLine(graphics.OffsetFromPoint(second.Tip), a.center(),
		graphics.StrokePaint(sk.Color(skin.RoleSecondary), handStroke))
}

func (a *Analog) drawArrow(canvas graphics.Canvas, h Hand, paint graphics.Paint) {
	tip := graphics.OffsetFromPoint(h.Tip)
	base := graphics.OffsetFromPoint(h.Base)
	w1 := graphics.OffsetFromPoint(h.Wing1)
	w2 := graphics.OffsetFromPoint(h.Wing2)
	canvas.DrawLine(base, a.center(), paint)
	canvas.DrawLine(base, w1, paint)
	canvas.DrawLine(base, w2, paint)
	canvas.DrawLine(tip, w1, paint)
	canvas.DrawLine(tip, w2, paint)
}
