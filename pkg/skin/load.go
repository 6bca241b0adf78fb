package skin

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-drift/clockface/pkg/errors"
	"github.com/go-drift/clockface/pkg/graphics"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Definition is the file form of a skin. Colors are "#rrggbb",
// "#rrggbbaa" or a CSS color name.
type Definition struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Tertiary   string `yaml:"tertiary"`
	Quaternary string `yaml:"quaternary"`
	Edge       string `yaml:"edge"`
	Date       string `yaml:"date"`
	Number     string `yaml:"number"`
}

// Skin resolves the definition's colors and validates the result.
func (d Definition) Skin() (Skin, error) {
	var p Palette
	fields := []struct {
		role Role
		raw  string
		dst  *graphics.Color
	}{
		{RoleBackground, d.Background, &p.Background},
		{RolePrimary, d.Primary, &p.Primary},
		{RoleSecondary, d.Secondary, &p.Secondary},
		{RoleTertiary, d.Tertiary, &p.Tertiary},
		{RoleQuaternary, d.Quaternary, &p.Quaternary},
		{RoleEdge, d.Edge, &p.Edge},
		{RoleDate, d.Date, &p.Date},
		{RoleNumber, d.Number, &p.Number},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		c, err := ParseColor(f.raw)
		if err != nil {
			return Skin{}, errors.New("skin.Definition", errors.KindSkin, fmt.Errorf("skin %q %s: %w", d.Name, f.role, err))
		}
		*f.dst = c
	}
	return New(d.Name, p)
}

type skinFile struct {
	Skins []Definition `yaml:"skins"`
}

// Parse decodes a YAML document with a top-level "skins" list.
func Parse(data []byte) ([]Skin, error) {
	var f skinFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.New("skin.Parse", errors.KindConfig, fmt.Errorf("parse skins: %w", err))
	}
	return Resolve(f.Skins)
}

// Resolve converts definitions into skins, stopping at the first invalid one.
func Resolve(defs []Definition) ([]Skin, error) {
	skins := make([]Skin, 0, len(defs))
	for _, d := range defs {
		s, err := d.Skin()
		if err != nil {
			return nil, err
		}
		skins = append(skins, s)
	}
	return skins, nil
}

// LoadFile reads and parses a skin file.
func LoadFile(path string) ([]Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("skin.LoadFile", errors.KindConfig, fmt.Errorf("read %s: %w", path, err))
	}
	return Parse(data)
}

// ParseColor parses "#rrggbb", "#rrggbbaa" or a CSS color name such as
// "darkslategray". Names are case-insensitive and may contain spaces.
func ParseColor(s string) (graphics.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return 0, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex color %q", s)
		}
		if len(hex) == 6 {
			return graphics.Color(0xFF000000 | uint32(v)), nil
		}
		// #rrggbbaa -> 0xAARRGGBB
		return graphics.Color(uint32(v)>>8 | uint32(v)<<24), nil
	}
	name := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	c, ok := colornames.Map[name]
	if !ok {
		return 0, fmt.Errorf("unknown color %q", s)
	}
	return graphics.FromColor(c), nil
}
