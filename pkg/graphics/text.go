package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/go-drift/clockface/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

import stderrors "errors"

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16

	// fontDPI makes one point equal one pixel.
	fontDPI = 72
)

// FontFamily names a registered font family.
type FontFamily string

const (
	FontFamilySans  FontFamily = "sans"
	FontFamilySerif FontFamily = "serif"
	FontFamilyMono  FontFamily = "mono"
)

// FontWeight represents a numeric font weight.
type FontWeight int

const (
	FontWeightNormal FontWeight = 400
	FontWeightBold   FontWeight = 700
)

// String returns a human-readable representation of the font weight.
func (w FontWeight) String() string {
	switch w {
	case FontWeightNormal:
		return "normal"
	case FontWeightBold:
		return "bold"
	default:
		return fmt.Sprintf("FontWeight(%d)", int(w))
	}
}

// resolved collapses arbitrary weights onto the two registered ones.
func (w FontWeight) resolved() FontWeight {
	if w >= 600 {
		return FontWeightBold
	}
	return FontWeightNormal
}

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color      Color
	FontFamily FontFamily
	FontSize   float64
	FontWeight FontWeight
}

// WithColor returns a copy of the TextStyle with the specified color.
func (s TextStyle) WithColor(c Color) TextStyle {
	s.Color = c
	return s
}

// TextLayout contains measured text metrics and a resolved font face.
// Size.Width is the advance width of the whole string.
type TextLayout struct {
	Text    string
	Style   TextStyle
	Size    Size
	Ascent  float64
	Descent float64

	manager *FontManager
	face    font.Face
}

// Width returns the advance width of the text.
func (l *TextLayout) Width() float64 {
	return l.Size.Width
}

// WithColor returns a shallow copy of the layout drawn in color c.
// Metrics are unchanged.
func (l *TextLayout) WithColor(c Color) *TextLayout {
	cp := *l
	cp.Style.Color = c
	return &cp
}

type fontKey struct {
	family FontFamily
	weight FontWeight
}

type faceKey struct {
	fontKey
	size float64
}

// FontManager owns parsed fonts and the faces built from them.
// Faces are not safe for concurrent use, so all measuring and glyph
// drawing goes through the manager's lock.
type FontManager struct {
	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
	faces map[faceKey]font.Face
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the bundled Go fonts
// registered. The serif family maps to the Go sans faces; the clock only
// needs a bold numeral face and a fixed-pitch face.
func NewFontManager() (*FontManager, error) {
	m := &FontManager{
		fonts: make(map[fontKey]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	bundled := []struct {
		family FontFamily
		weight FontWeight
		data   []byte
	}{
		{FontFamilySans, FontWeightNormal, goregular.TTF},
		{FontFamilySans, FontWeightBold, gobold.TTF},
		{FontFamilySerif, FontWeightNormal, goregular.TTF},
		{FontFamilySerif, FontWeightBold, gobold.TTF},
		{FontFamilyMono, FontWeightNormal, gomono.TTF},
		{FontFamilyMono, FontWeightBold, gomonobold.TTF},
	}
	for _, b := range bundled {
		if err := m.RegisterFont(b.family, b.weight, b.data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DefaultFontManagerErr returns a shared font manager with the bundled fonts.
// It returns both the manager and any error that occurred during initialization.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.ClockError{
				Op:   "graphics.DefaultFontManager",
				Kind: errors.KindInit,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns a shared font manager, or nil if the bundled
// fonts failed to load.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// RegisterFont registers (or replaces) a family/weight from TrueType or
// OpenType data. Cached faces for that family are dropped.
func (m *FontManager) RegisterFont(family FontFamily, weight FontWeight, data []byte) error {
	if family == "" {
		return stderrors.New("font family required")
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s/%s: %w", family, weight, err)
	}
	key := fontKey{family: family, weight: weight.resolved()}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[key] = f
	for k := range m.faces {
		if k.fontKey == key {
			delete(m.faces, k)
		}
	}
	return nil
}

// faceLocked resolves a face for style. m.mu must be held.
func (m *FontManager) faceLocked(style TextStyle) (font.Face, error) {
	family := style.FontFamily
	if family == "" {
		family = FontFamilySans
	}
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	key := faceKey{fontKey: fontKey{family: family, weight: style.FontWeight.resolved()}, size: size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	f, ok := m.fonts[key.fontKey]
	if !ok {
		f, ok = m.fonts[fontKey{family: FontFamilySans, weight: key.weight}]
		if !ok {
			return nil, fmt.Errorf("no font registered for family %q", family)
		}
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = face
	return face, nil
}

// LayoutText measures text using the provided font manager.
func LayoutText(text string, style TextStyle, manager *FontManager) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	manager.mu.Lock()
	defer manager.mu.Unlock()
	face, err := manager.faceLocked(style)
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	advance := font.MeasureString(face, text)
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	return &TextLayout{
		Text:    text,
		Style:   style,
		Size:    Size{Width: fixedToFloat(advance), Height: ascent + descent},
		Ascent:  ascent,
		Descent: descent,
		manager: manager,
		face:    face,
	}, nil
}

// drawText rasterizes a layout with its baseline origin at position.
func (m *FontManager) drawText(dst draw.Image, layout *TextLayout, position Offset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(layout.Style.Color),
		Face: layout.face,
		Dot:  fixed.P(int(math.Round(position.X)), int(math.Round(position.Y))),
	}
	d.DrawString(layout.Text)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
