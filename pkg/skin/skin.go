// Package skin provides the named color palettes a clock face is drawn with.
package skin

import (
	"fmt"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
)

// Role identifies one of the eight colors in a skin.
type Role int

const (
	RoleBackground Role = iota
	RolePrimary
	RoleSecondary
	RoleTertiary
	RoleQuaternary
	RoleEdge
	RoleDate
	RoleNumber

	roleCount
)

// Roles returns every role in palette order.
func Roles() []Role {
	roles := make([]Role, roleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// String returns the role name used in skin files.
func (r Role) String() string {
	switch r {
	case RoleBackground:
		return "background"
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	case RoleTertiary:
		return "tertiary"
	case RoleQuaternary:
		return "quaternary"
	case RoleEdge:
		return "edge"
	case RoleDate:
		return "date"
	case RoleNumber:
		return "number"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Palette holds the eight color roles of a skin.
type Palette struct {
	// Background fills the whole canvas behind the clock body.
	Background graphics.Color

	// Primary fills the clock body.
	Primary graphics.Color

	// Secondary colors the analog second hand.
	Secondary graphics.Color

	// Tertiary colors the analog hour and minute hands.
	Tertiary graphics.Color

	// Quaternary is reserved for accents; no face draws with it yet.
	Quaternary graphics.Color

	// Edge outlines the body and draws the tick marks.
	Edge graphics.Color

	// Date colors the date line.
	Date graphics.Color

	// Number colors numerals and the digital time.
	Number graphics.Color
}

// Color returns the palette entry for role.
func (p Palette) Color(role Role) graphics.Color {
	switch role {
	case RoleBackground:
		return p.Background
	case RolePrimary:
		return p.Primary
	case RoleSecondary:
		return p.Secondary
	case RoleTertiary:
		return p.Tertiary
	case RoleQuaternary:
		return p.Quaternary
	case RoleEdge:
		return p.Edge
	case RoleDate:
		return p.Date
	case RoleNumber:
		return p.Number
	default:
		return graphics.ColorTransparent
	}
}

// Skin is an immutable named palette. The zero Skin is not valid; build
// skins with New.
type Skin struct {
	name    string
	palette Palette
}

// New validates a palette and returns the skin. Every role must be set;
// a fully transparent color counts as unset.
func New(name string, palette Palette) (Skin, error) {
	if name == "" {
		return Skin{}, errors.Errorf("skin.New", errors.KindSkin, "skin name required")
	}
	for _, role := range Roles() {
		if palette.Color(role) == graphics.ColorTransparent {
			return Skin{}, errors.Errorf("skin.New", errors.KindSkin, "skin %q: %s color not set", name, role)
		}
	}
	return Skin{name: name, palette: palette}, nil
}

// MustNew is like New but panics on an invalid palette.
func MustNew(name string, palette Palette) Skin {
	s, err := New(name, palette)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the display name.
func (s Skin) Name() string {
	return s.name
}

// Palette returns a copy of the skin's colors.
func (s Skin) Palette() Palette {
	return s.palette
}

// Color returns the color for role.
func (s Skin) Color(role Role) graphics.Color {
	return s.palette.Color(role)
}

// IsZero reports whether s was never built with New.
func (s Skin) IsZero() bool {
	return s.name == ""
}

func (s Skin) String() string {
	return s.name
}
