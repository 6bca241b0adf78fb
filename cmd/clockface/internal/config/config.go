package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/clockface/pkg/face"
	"github.com/go-drift/clockface/pkg/skin"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "clockface.yaml"

// FormatVersion is the newest config schema this build understands.
const FormatVersion = "v1.0.0"

// Config represents the optional clockface.yaml configuration.
type Config struct {
	Format string            `yaml:"format,omitempty"`
	Clock  ClockConfig       `yaml:"clock"`
	Skins  []skin.Definition `yaml:"skins,omitempty"`
}

// ClockConfig contains the face settings.
type ClockConfig struct {
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Size   int    `yaml:"size,omitempty"`
	Mode   string `yaml:"mode,omitempty"`
	Skin   string `yaml:"skin,omitempty"`
}

// Overrides carries command-line values. Zero fields are unset.
type Overrides struct {
	Width  int
	Height int
	Size   int
	Mode   string
	Skin   string
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path     string
	Settings face.Settings
	Catalog  *skin.Catalog
}

// LoadOptional reads clockface.yaml from dir if present.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// LoadFile reads and validates a config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := checkFormat(cfg.Format); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// checkFormat accepts an empty format or any version with the same major
// as FormatVersion that is not newer than it.
func checkFormat(format string) error {
	if format == "" {
		return nil
	}
	v := format
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid format version %q", format)
	}
	if semver.Major(v) != semver.Major(FormatVersion) || semver.Compare(v, FormatVersion) > 0 {
		return fmt.Errorf("unsupported format version %q (this build reads %s)", format, FormatVersion)
	}
	return nil
}

// Resolve loads the config (path, or clockface.yaml in dir when path is
// empty), applies overrides and fills defaults.
func Resolve(dir, path string, o Overrides) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFile(path)
	} else {
		cfg, path, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(path, o)
}

// Resolve applies overrides and defaults to an already-loaded config.
func (cfg *Config) Resolve(path string, o Overrides) (*Resolved, error) {
	c := cfg.Clock
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.Size != 0 {
		c.Size = o.Size
	}
	if o.Mode != "" {
		c.Mode = o.Mode
	}
	if o.Skin != "" {
		c.Skin = o.Skin
	}

	if c.Size == 0 {
		c.Size = face.DefaultClockSize
	}
	if c.Width == 0 {
		c.Width = c.Size * 100
	}
	if c.Height == 0 {
		c.Height = c.Size * 100
	}
	if strings.TrimSpace(c.Mode) == "" {
		c.Mode = face.ModeAnalog.String()
	}
	if strings.TrimSpace(c.Skin) == "" {
		c.Skin = skin.DefaultName
	}

	mode, err := face.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}

	catalog := skin.Default()
	custom, err := skin.Resolve(cfg.Skins)
	if err != nil {
		return nil, err
	}
	for _, s := range custom {
		catalog.Add(s)
	}

	sk, ok := catalog.ByName(c.Skin)
	if !ok {
		return nil, fmt.Errorf("unknown skin %q (available: %s)", c.Skin, strings.Join(catalog.Names(), ", "))
	}

	settings := face.Settings{
		Width:     c.Width,
		Height:    c.Height,
		ClockSize: c.Size,
		Mode:      mode,
		Skin:      sk,
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &Resolved{Path: path, Settings: settings, Catalog: catalog}, nil
}
