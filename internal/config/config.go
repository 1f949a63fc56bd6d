// Package config loads generator settings from YAML and merges CLI overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"survivor-meshgen/internal/export"
	"survivor-meshgen/internal/humanoid"
	"survivor-meshgen/internal/placeholder"
	"survivor-meshgen/internal/preview"
)

// Variant kinds.
const (
	KindHumanoid    = "humanoid"
	KindPlaceholder = "placeholder"
)

var ErrInvalid = errors.New("config: invalid")

// Config holds output, preview and generator settings.
type Config struct {
	OutputDir      string `yaml:"output_dir"`
	Format         string `yaml:"format"`
	UpAxis         string `yaml:"up_axis"`
	ApplyModifiers bool   `yaml:"apply_modifiers"`
	Workers        int    `yaml:"workers"`

	Preview     Preview     `yaml:"preview"`
	Humanoid    Humanoid    `yaml:"humanoid"`
	Placeholder Placeholder `yaml:"placeholder"`

	// Variants are batch jobs. Unset fields fall back to the generator
	// sections above.
	Variants []Variant `yaml:"variants"`
}

// Preview controls thumbnail rendering.
type Preview struct {
	Enabled     bool    `yaml:"enabled"`
	Size        int     `yaml:"size"`
	Supersample int     `yaml:"supersample"`
	Format      string  `yaml:"format"`
	Yaw         float64 `yaml:"yaw"`
	Pitch       float64 `yaml:"pitch"`
}

type Humanoid struct {
	Height       float64         `yaml:"height"`
	Gender       humanoid.Gender `yaml:"gender"`
	Subdivisions int             `yaml:"subdivisions"`
	Name         string          `yaml:"name"`
}

type Placeholder struct {
	Height float64 `yaml:"height"`
	Name   string  `yaml:"name"`
}

// Variant is one batch job.
type Variant struct {
	Kind         string           `yaml:"kind"`
	Name         string           `yaml:"name"`
	Height       *float64         `yaml:"height"`
	Gender       *humanoid.Gender `yaml:"gender"`
	Subdivisions *int             `yaml:"subdivisions"`
}

// Default returns the built-in settings.
func Default() Config {
	hp := humanoid.DefaultParams()
	pp := placeholder.DefaultParams()
	return Config{
		OutputDir:      "game/assets/models/characters",
		Format:         "gltf",
		UpAxis:         export.UpY,
		ApplyModifiers: true,
		Workers:        runtime.NumCPU(),
		Preview: Preview{
			Enabled:     true,
			Size:        256,
			Supersample: 2,
			Format:      preview.WebP,
			Yaw:         24,
			Pitch:       -12,
		},
		Humanoid: Humanoid{
			Height:       hp.Height,
			Gender:       hp.Gender,
			Subdivisions: hp.Subdivisions,
			Name:         hp.Name,
		},
		Placeholder: Placeholder{Height: pp.Height, Name: pp.Name},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI values that override the file. Zero values leave the
// file's setting alone.
type Flags struct {
	OutputDir     string
	Format        string
	UpAxis        string
	Workers       int
	PreviewSize   int
	PreviewFormat string
	NoPreview     bool
	NoModifiers   bool
}

// Resolve applies flags, fills non-positive sizes with defaults and
// validates the result.
func (c *Config) Resolve(flags Flags) error {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.UpAxis != "" {
		c.UpAxis = flags.UpAxis
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.PreviewSize > 0 {
		c.Preview.Size = flags.PreviewSize
	}
	if flags.PreviewFormat != "" {
		c.Preview.Format = flags.PreviewFormat
	}
	if flags.NoPreview {
		c.Preview.Enabled = false
	}
	if flags.NoModifiers {
		c.ApplyModifiers = false
	}

	def := Default()
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.Preview.Size <= 0 {
		c.Preview.Size = def.Preview.Size
	}
	if c.Preview.Supersample <= 0 {
		c.Preview.Supersample = def.Preview.Supersample
	}
	c.Format = strings.ToLower(strings.TrimPrefix(c.Format, "."))
	c.UpAxis = strings.ToLower(c.UpAxis)
	c.Preview.Format = strings.ToLower(strings.TrimPrefix(c.Preview.Format, "."))

	return c.validate()
}

func (c *Config) validate() error {
	if !slices.Contains(export.Extensions, c.Format) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(export.Extensions, ", "))
	}
	if c.UpAxis != export.UpY && c.UpAxis != export.UpZ {
		return fmt.Errorf("%w: up_axis %q (want y or z)", ErrInvalid, c.UpAxis)
	}
	switch c.Preview.Format {
	case preview.WebP, preview.TGA, preview.PNG:
	default:
		return fmt.Errorf("%w: preview format %q", ErrInvalid, c.Preview.Format)
	}
	seen := make(map[string]bool, len(c.Variants))
	for i, v := range c.Variants {
		if v.Kind != KindHumanoid && v.Kind != KindPlaceholder {
			return fmt.Errorf("%w: variant %d: kind %q", ErrInvalid, i, v.Kind)
		}
		name := c.VariantName(v)
		if seen[name] {
			return fmt.Errorf("%w: variant %d: duplicate name %q", ErrInvalid, i, name)
		}
		seen[name] = true
	}
	return nil
}

// VariantName is v's name, or its generator's default.
func (c *Config) VariantName(v Variant) string {
	if v.Name != "" {
		return v.Name
	}
	if v.Kind == KindPlaceholder {
		return c.Placeholder.Name
	}
	return c.Humanoid.Name
}

// HumanoidParams returns the humanoid section as build parameters.
func (c *Config) HumanoidParams() humanoid.Params {
	return humanoid.Params{
		Height:       c.Humanoid.Height,
		Gender:       c.Humanoid.Gender,
		Subdivisions: c.Humanoid.Subdivisions,
		Name:         c.Humanoid.Name,
	}
}

// PlaceholderParams returns the placeholder section as build parameters.
func (c *Config) PlaceholderParams() placeholder.Params {
	return placeholder.Params{Height: c.Placeholder.Height, Name: c.Placeholder.Name}
}

// VariantHumanoid merges v over the humanoid section.
func (c *Config) VariantHumanoid(v Variant) humanoid.Params {
	p := c.HumanoidParams()
	p.Name = c.VariantName(v)
	if v.Height != nil {
		p.Height = *v.Height
	}
	if v.Gender != nil {
		p.Gender = *v.Gender
	}
	if v.Subdivisions != nil {
		p.Subdivisions = *v.Subdivisions
	}
	return p
}

// VariantPlaceholder merges v over the placeholder section.
func (c *Config) VariantPlaceholder(v Variant) placeholder.Params {
	p := c.PlaceholderParams()
	p.Name = c.VariantName(v)
	if v.Height != nil {
		p.Height = *v.Height
	}
	return p
}
