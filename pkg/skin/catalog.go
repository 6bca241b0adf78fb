package skin

import (
	"sync"

	"github.com/go-drift/clockface/pkg/graphics"
	"golang.org/x/image/colornames"
)

// DefaultName is the skin selected when nothing else is configured.
const DefaultName = "Basic"

var (
	black    = graphics.ColorBlack
	white    = graphics.ColorWhite
	red      = graphics.ColorRed
	blue     = graphics.ColorBlue
	green    = graphics.FromColor(colornames.Lime)
	cyan     = graphics.FromColor(colornames.Cyan)
	magenta  = graphics.FromColor(colornames.Magenta)
	yellow   = graphics.FromColor(colornames.Yellow)
	pink     = graphics.FromColor(colornames.Pink)
	gray     = graphics.FromColor(colornames.Gray)
	darkGray = graphics.RGB(64, 64, 64)
)

// builtin lists the stock skins in menu order.
var builtin = []struct {
	name    string
	palette Palette
}{
	{"Basic", Palette{white, white, red, black, black, black, black, black}},
	{"Inverted", Palette{black, black, blue, white, white, white, white, white}},
	{"Night Mode", Palette{black, darkGray, blue, white, white, white, green, green}},
	{"Ocean", Palette{black, cyan, blue, white, white, blue, black, black}},
	{"HULK", Palette{black, green, blue, black, black, black, black, black}},
	{"Captain America", Palette{black, blue, white, red, red, white, white, red}},
	{"Iron Man", Palette{black, red, yellow, darkGray, darkGray, yellow, darkGray, darkGray}},
	{"Thor", Palette{black, darkGray, yellow, red, red, red, gray, yellow}},
	{"Barbie", Palette{black, pink, magenta, magenta, magenta, magenta, yellow, yellow}},
}

// Catalog is an ordered, name-indexed list of skins. It is safe for
// concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	skins []Skin
	index map[string]int
}

// NewCatalog returns a catalog holding skins in order. Later skins replace
// earlier ones with the same name.
func NewCatalog(skins ...Skin) *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, s := range skins {
		c.Add(s)
	}
	return c
}

// Default returns a fresh catalog with the stock skins.
func Default() *Catalog {
	skins := make([]Skin, 0, len(builtin))
	for _, b := range builtin {
		skins = append(skins, MustNew(b.name, b.palette))
	}
	return NewCatalog(skins...)
}

// Add appends s, or replaces the skin already registered under its name
// while keeping that skin's position. Zero skins are ignored.
func (c *Catalog) Add(s Skin) {
	if s.IsZero() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[s.name]; ok {
		c.skins[i] = s
		return
	}
	c.index[s.name] = len(c.skins)
	c.skins = append(c.skins, s)
}

// ByName looks up a skin. The second result is false for unknown names.
func (c *Catalog) ByName(name string) (Skin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[name]
	if !ok {
		return Skin{}, false
	}
	return c.skins[i], true
}

// ByIndex returns the skin at position i.
func (c *Catalog) ByIndex(i int) (Skin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.skins) {
		return Skin{}, false
	}
	return c.skins[i], true
}

// IndexOf returns the position of name, or -1.
func (c *Catalog) IndexOf(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// Names returns skin names in catalog order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.skins))
	for i, s := range c.skins {
		names[i] = s.name
	}
	return names
}

// Len returns the number of skins.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.skins)
}
