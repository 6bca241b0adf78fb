package face

import (
	"image"
	"math"
	"sync"
)

// Geometry holds the dial points for one clock size. Circle[i] lies on the
// rim and Ticks[i] is the inner end of the tick mark at position i.
type Geometry struct {
	Center image.Point
	Radius float64
	Circle [Ticks]image.Point
	Ticks  [Ticks]image.Point
}

// NewGeometry projects the 60 dial positions around center.
func NewGeometry(center image.Point, radius float64) *Geometry {
	g := &Geometry{Center: center, Radius: radius}
	r := radius
	for i := 0; i < Ticks; i++ {
		inner := r * 19 / 20
		if i%5 == 0 {
			inner = r * 18 / 20
		}
		g.Circle[i] = project(center, r, TickAngle(i))
		g.Ticks[i] = project(center, inner, TickAngle(i))
	}
	return g
}

// AnalogGeometry derives the dial for a canvas of width×height: a border of
// width/20 on each side and the center at the canvas midpoint. Only the
// projected points are rounded; the radius keeps its fraction.
func AnalogGeometry(width, height int) *Geometry {
	border := float64(width) / 20
	radius := (float64(width) - 2*border) / 2
	return NewGeometry(image.Point{X: width / 2, Y: height / 2}, radius)
}

func project(center image.Point, r, angle float64) image.Point {
	return image.Point{
		X: int(math.Round(float64(center.X) + r*math.Cos(angle))),
		Y: int(math.Round(float64(center.Y) - r*math.Sin(angle))),
	}
}

type geometryKey struct {
	width, height, clockSize int
}

// GeometryCache keeps the dial tables for the most recently used sizes.
type GeometryCache struct {
	mu     sync.Mutex
	limit  int
	tables map[geometryKey]*Geometry
	order  []geometryKey // least recently used first
}

// NewGeometryCache returns an empty cache holding at most limit tables.
// A limit below 1 is treated as 1.
func NewGeometryCache(limit int) *GeometryCache {
	if limit < 1 {
		limit = 1
	}
	return &GeometryCache{limit: limit, tables: make(map[geometryKey]*Geometry, limit)}
}

// Analog returns the table for the given dimensions, building it on a miss
// and evicting the least recently used table when full. Callers must not
// modify the result.
func (c *GeometryCache) Analog(width, height, clockSize int) *Geometry {
	key := geometryKey{width, height, clockSize}
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.tables[key]; ok {
		c.touch(key)
		return g
	}
	if len(c.order) == c.limit {
		delete(c.tables, c.order[0])
		c.order = c.order[1:]
	}
	g := AnalogGeometry(width, height)
	c.tables[key] = g
	c.order = append(c.order, key)
	return g
}

func (c *GeometryCache) touch(key geometryKey) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}

// Len returns the number of cached tables.
func (c *GeometryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}
