package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/clockface/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// colorParams are the keys that carry paint colors.
var colorParams = []string{"color"}

// serializingCanvas implements graphics.Canvas and records ops as DisplayOp.
type serializingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

// NewCanvas returns a canvas that records every call. Read the result
// with Ops.
func NewCanvas(size graphics.Size) *Canvas {
	return &Canvas{serializingCanvas{size: size}}
}

// Canvas is a recording graphics.Canvas.
type Canvas struct {
	serializingCanvas
}

// Ops returns a copy of the recorded operations.
func (c *Canvas) Ops() []DisplayOp {
	out := make([]DisplayOp, len(c.ops))
	copy(out, c.ops)
	return out
}

// Record draws through fn and returns what was drawn.
func Record(size graphics.Size, fn func(graphics.Canvas)) []DisplayOp {
	c := NewCanvas(size)
	fn(c)
	return c.ops
}

func (c *serializingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", serializeColor(color)),
	})
}

func (c *serializingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	params := serializePaint(paint)
	params["rect"] = serializeRect(rect)
	c.ops = append(c.ops, DisplayOp{Op: "drawRect", Params: params})
}

func (c *serializingCanvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	params := serializePaint(paint)
	params["cx"] = round2(center.X)
	params["cy"] = round2(center.Y)
	params["radius"] = round2(radius)
	c.ops = append(c.ops, DisplayOp{Op: "drawCircle", Params: params})
}

func (c *serializingCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	params := serializePaint(paint)
	params["x1"] = round2(start.X)
	params["y1"] = round2(start.Y)
	params["x2"] = round2(end.X)
	params["y2"] = round2(end.Y)
	c.ops = append(c.ops, DisplayOp{Op: "drawLine", Params: params})
}

func (c *serializingCanvas) DrawText(layout *graphics.TextLayout, position graphics.Offset) {
	params := sortedMap("x", round2(position.X), "y", round2(position.Y))
	if layout != nil {
		params["text"] = layout.Text
		params["size"] = round2(layout.Style.FontSize)
		params["family"] = string(layout.Style.FontFamily)
		params["color"] = serializeColor(layout.Style.Color)
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawText", Params: params})
}

func (c *serializingCanvas) Size() graphics.Size {
	return c.size
}

// SerializeDisplayList replays a DisplayList through the serializing canvas.
func SerializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	canvas := &serializingCanvas{size: dl.Size()}
	dl.Paint(canvas)
	return canvas.ops
}

// WithoutColors returns ops with every color parameter removed, leaving
// only geometry and styling.
func WithoutColors(ops []DisplayOp) []DisplayOp {
	out := make([]DisplayOp, len(ops))
	for i, op := range ops {
		params := make(map[string]any, len(op.Params))
		for k, v := range op.Params {
			params[k] = v
		}
		for _, k := range colorParams {
			delete(params, k)
		}
		out[i] = DisplayOp{Op: op.Op, Params: params}
	}
	return out
}

// Filter returns the ops named op, in order.
func Filter(ops []DisplayOp, op string) []DisplayOp {
	var out []DisplayOp
	for _, o := range ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

// --- Serialization helpers ---

func serializePaint(p graphics.Paint) map[string]any {
	params := sortedMap("color", serializeColor(p.Color), "style", p.Style.String())
	if p.Style == graphics.PaintStyleStroke {
		params["strokeWidth"] = round2(p.StrokeWidth)
		params["cap"] = p.StrokeCap.String()
		params["join"] = p.StrokeJoin.String()
	}
	return params
}

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
// Keys are sorted alphabetically in the resulting map (Go maps iterate
// in random order, but JSON marshaling sorts keys).
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
