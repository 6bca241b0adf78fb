package graphics

import (
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// circleKappa is the cubic Bézier control distance for a quarter circle.
const circleKappa = 0.5522847498

// ImageCanvas rasterizes drawing commands into an RGBA image using the
// pure-Go vector rasterizer.
type ImageCanvas struct {
	dst *image.RGBA
}

// NewImageCanvas creates a canvas backed by a width×height RGBA image.
func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{dst: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.dst
}

// EncodePNG writes the canvas contents as a PNG.
func (c *ImageCanvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.dst)
}

func (c *ImageCanvas) Size() Size {
	b := c.dst.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *ImageCanvas) Clear(color Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(color), image.Point{}, draw.Src)
}

func (c *ImageCanvas) DrawRect(rect Rect, paint Paint) {
	z := c.rasterizer()
	if paint.Style == PaintStyleStroke {
		half := paint.StrokeWidth / 2
		outer := rect.Deflate(-half, -half)
		inner := rect.Deflate(half, half)
		rectPath(z, outer, false)
		if !inner.IsEmpty() {
			rectPath(z, inner, true)
		}
	} else {
		rectPath(z, rect, false)
	}
	c.fill(z, paint.Color)
}

func (c *ImageCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	z := c.rasterizer()
	if paint.Style == PaintStyleStroke {
		half := paint.StrokeWidth / 2
		circlePath(z, center, radius+half, false)
		if radius-half > 0 {
			circlePath(z, center, radius-half, true)
		}
	} else {
		circlePath(z, center, radius, false)
	}
	c.fill(z, paint.Color)
}

// DrawLine strokes a segment. Joins do not apply to a single segment.
func (c *ImageCanvas) DrawLine(start, end Offset, paint Paint) {
	width := paint.StrokeWidth
	if width <= 0 {
		width = 1
	}
	half := width / 2
	length := start.Distance(end)
	z := c.rasterizer()
	if floatEqual(length, 0) {
		if paint.StrokeCap == CapButt {
			return
		}
		if paint.StrokeCap == CapRound {
			circlePath(z, start, half, false)
		} else {
			rectPath(z, Rect{Left: start.X - half, Top: start.Y - half, Right: start.X + half, Bottom: start.Y + half}, false)
		}
		c.fill(z, paint.Color)
		return
	}
	dir := end.Sub(start).Scale(1 / length)
	normal := Offset{X: -dir.Y, Y: dir.X}.Scale(half)
	if paint.StrokeCap == CapSquare {
		start = start.Sub(dir.Scale(half))
		end = end.Add(dir.Scale(half))
	}
	a := start.Add(normal)
	b := end.Add(normal)
	d := end.Sub(normal)
	e := start.Sub(normal)
	z.MoveTo(float32(a.X), float32(a.Y))
	z.LineTo(float32(b.X), float32(b.Y))
	z.LineTo(float32(d.X), float32(d.Y))
	z.LineTo(float32(e.X), float32(e.Y))
	z.ClosePath()
	c.fill(z, paint.Color)
	if paint.StrokeCap == CapRound {
		z = c.rasterizer()
		circlePath(z, start, half, false)
		circlePath(z, end, half, false)
		c.fill(z, paint.Color)
	}
}

func (c *ImageCanvas) DrawText(layout *TextLayout, position Offset) {
	if layout == nil || layout.manager == nil || layout.face == nil {
		return
	}
	layout.manager.drawText(c.dst, layout, position)
}

func (c *ImageCanvas) rasterizer() *vector.Rasterizer {
	b := c.dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

func (c *ImageCanvas) fill(z *vector.Rasterizer, color Color) {
	z.Draw(c.dst, c.dst.Bounds(), image.NewUniform(color), image.Point{})
}

// rectPath adds a closed rectangle. Reversed paths cut holes.
func rectPath(z *vector.Rasterizer, r Rect, reverse bool) {
	l, t, rt, b := float32(r.Left), float32(r.Top), float32(r.Right), float32(r.Bottom)
	z.MoveTo(l, t)
	if reverse {
		z.LineTo(l, b)
		z.LineTo(rt, b)
		z.LineTo(rt, t)
	} else {
		z.LineTo(rt, t)
		z.LineTo(rt, b)
		z.LineTo(l, b)
	}
	z.ClosePath()
}

// circlePath adds a closed circle built from four cubic arcs.
func circlePath(z *vector.Rasterizer, center Offset, radius float64, reverse bool) {
	k := radius * circleKappa
	sign := 1.0
	if reverse {
		sign = -1
	}
	cx, cy := center.X, center.Y
	pt := func(angle float64) (float64, float64) {
		return cx + radius*math.Cos(angle), cy + sign*radius*math.Sin(angle)
	}
	x0, y0 := pt(0)
	z.MoveTo(float32(x0), float32(y0))
	for i := 0; i < 4; i++ {
		a0 := float64(i) * math.Pi / 2
		a1 := a0 + math.Pi/2
		sx, sy := pt(a0)
		ex, ey := pt(a1)
		// Tangent directions at the arc ends.
		c1x := sx - k*math.Sin(a0)
		c1y := sy + sign*k*math.Cos(a0)
		c2x := ex + k*math.Sin(a1)
		c2y := ey - sign*k*math.Cos(a1)
		z.CubeTo(float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(ex), float32(ey))
	}
	z.ClosePath()
}
