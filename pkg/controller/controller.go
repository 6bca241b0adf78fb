// Package controller ties the clock settings, the skin catalog, the active
// face renderer and the time source together.
package controller

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/face"
	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/skin"
)

// Controller owns the clock state. All methods are safe for concurrent
// use; the ticker goroutine may call UpdateTime while a front end paints.
type Controller struct {
	mu       sync.Mutex
	settings face.Settings
	catalog  *skin.Catalog
	renderer face.Renderer
	onChange func()
	logger   *slog.Logger

	latest clock.Slot
}

// New creates a controller. A nil catalog means skin.Default(). When
// settings carry no skin, the catalog's DefaultName skin (or its first
// entry) is used.
func New(settings face.Settings, catalog *skin.Catalog) (*Controller, error) {
	if catalog == nil {
		catalog = skin.Default()
	}
	if settings.Skin.IsZero() {
		sk, ok := catalog.ByName(skin.DefaultName)
		if !ok {
			sk, ok = catalog.ByIndex(0)
		}
		if !ok {
			return nil, errors.Errorf("controller.New", errors.KindSkin, "skin catalog is empty")
		}
		settings.Skin = sk
	}
	r, err := face.New(settings)
	if err != nil {
		return nil, err
	}
	return &Controller{
		settings: settings,
		catalog:  catalog,
		renderer: r,
		logger:   slog.Default(),
	}, nil
}

// SetLogger replaces the debug logger. A nil logger restores slog.Default.
func (c *Controller) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	c.mu.Lock()
	c.logger = l
	c.mu.Unlock()
}

// OnChange registers fn to run after anything visible changes: time, skin,
// mode or size. It replaces any earlier callback.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Settings returns a copy of the current settings.
func (c *Controller) Settings() face.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Skin returns the active skin.
func (c *Controller) Skin() skin.Skin {
	return c.Settings().Skin
}

// Catalog returns the skin catalog.
func (c *Controller) Catalog() *skin.Catalog {
	return c.catalog
}

// SelectSkin switches to the named skin. Unknown names are reported as a
// skin error and leave the current skin in place.
func (c *Controller) SelectSkin(name string) bool {
	sk, ok := c.catalog.ByName(name)
	if !ok {
		errors.Report(errors.Errorf("controller.SelectSkin", errors.KindSkin, "unknown skin %q", name))
		return false
	}
	c.setSkin(sk)
	return true
}

// SelectSkinIndex switches to the skin at catalog position i.
func (c *Controller) SelectSkinIndex(i int) bool {
	sk, ok := c.catalog.ByIndex(i)
	if !ok {
		errors.Report(errors.Errorf("controller.SelectSkinIndex", errors.KindSkin, "no skin at index %d", i))
		return false
	}
	c.setSkin(sk)
	return true
}

// CycleSkin moves delta places through the catalog, wrapping at either end,
// and returns the new skin.
func (c *Controller) CycleSkin(delta int) skin.Skin {
	n := c.catalog.Len()
	if n == 0 {
		return c.Skin()
	}
	i := c.catalog.IndexOf(c.Skin().Name())
	next := ((i+delta)%n + n) % n
	c.SelectSkinIndex(next)
	return c.Skin()
}

func (c *Controller) setSkin(sk skin.Skin) {
	c.mu.Lock()
	c.settings.Skin = sk
	logger, fn := c.logger, c.onChange
	c.mu.Unlock()
	logger.Debug("skin selected", "skin", sk.Name())
	notify(fn)
}

// SetMode switches between analog and digital. The renderer is rebuilt
// only when the mode actually changes.
func (c *Controller) SetMode(mode face.Mode) error {
	c.mu.Lock()
	if mode == c.settings.Mode {
		c.mu.Unlock()
		return nil
	}
	next := c.settings
	next.Mode = mode
	r, err := face.New(next)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.settings = next
	c.renderer = r
	logger, fn := c.logger, c.onChange
	c.mu.Unlock()
	logger.Debug("mode changed", "mode", mode.String())
	notify(fn)
	return nil
}

// Resize changes the canvas dimensions and scale factor.
func (c *Controller) Resize(width, height, clockSize int) error {
	c.mu.Lock()
	if err := c.renderer.Resize(width, height, clockSize); err != nil {
		c.mu.Unlock()
		return err
	}
	changed := width != c.settings.Width || height != c.settings.Height || clockSize != c.settings.ClockSize
	c.settings.Width, c.settings.Height, c.settings.ClockSize = width, height, clockSize
	fn := c.onChange
	c.mu.Unlock()
	if changed {
		notify(fn)
	}
	return nil
}

// UpdateTime publishes a new snapshot and requests a redraw.
func (c *Controller) UpdateTime(ts clock.Timestamp) {
	c.latest.Store(ts)
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	notify(fn)
}

// Time returns the snapshot the next paint will use. Before the first
// update it falls back to the current wall clock.
func (c *Controller) Time() clock.Timestamp {
	if ts, ok := c.latest.Load(); ok {
		return ts
	}
	return clock.FromTime(time.Now())
}

// Attach subscribes the controller to t and returns the unsubscribe func.
func (c *Controller) Attach(t *clock.Ticker) (detach func()) {
	return t.AddListener(c.UpdateTime)
}

// Paint draws the current face onto canvas.
func (c *Controller) Paint(canvas graphics.Canvas) {
	ts := c.Time()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer.Draw(canvas, ts, c.settings.Skin)
}

// Record paints into a display list that can be replayed later.
func (c *Controller) Record() *graphics.DisplayList {
	var rec graphics.PictureRecorder
	c.mu.Lock()
	size := c.renderer.Size()
	c.mu.Unlock()
	c.Paint(rec.BeginRecording(size))
	return rec.EndRecording()
}

// Snapshot rasterizes the current face.
func (c *Controller) Snapshot() *graphics.ImageCanvas {
	s := c.Settings()
	canvas := graphics.NewImageCanvas(s.Width, s.Height)
	c.Paint(canvas)
	return canvas
}

func notify(fn func()) {
	if fn == nil {
		return
	}
	defer errors.Recover("controller.onChange")
	fn()
}
