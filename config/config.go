/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for smidraw.
package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/smidraw/depict"
	smifs "bennypowers.dev/smidraw/fs"
)

// ErrColor is returned when a configured colour cannot be parsed.
var ErrColor = errors.New("invalid color")

// DefaultJobs is the batch worker count used when none is configured.
const DefaultJobs = 4

// Config represents the smidraw configuration.
type Config struct {
	// Output is the default PNG path for single conversions.
	Output string `yaml:"output" json:"output" toml:"output"`

	// Size is the default image edge length in pixels.
	Size int `yaml:"size" json:"size" toml:"size"`

	// Padding is the margin around the drawing as a fraction of the edge.
	Padding float64 `yaml:"padding" json:"padding" toml:"padding"`

	// BondWidth is the stroke width as a fraction of the bond length.
	BondWidth float64 `yaml:"bondWidth" json:"bondWidth" toml:"bondWidth"`

	// Background and Foreground are CSS colour strings.
	Background string `yaml:"background" json:"background" toml:"background"`
	Foreground string `yaml:"foreground" json:"foreground" toml:"foreground"`

	// FontPath points at a TrueType font for atom labels.
	// The embedded Go font is used when empty.
	FontPath string `yaml:"fontPath" json:"fontPath" toml:"fontPath"`

	// ColorAtoms toggles element colouring. Nil means enabled.
	ColorAtoms *bool `yaml:"colorAtoms" json:"colorAtoms" toml:"colorAtoms"`

	// Jobs is the default worker count for batch rendering.
	Jobs int `yaml:"jobs" json:"jobs" toml:"jobs"`

	// Catalogs lists catalog files for batch rendering (globs allowed).
	Catalogs []string `yaml:"catalogs" json:"catalogs" toml:"catalogs"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Output:     "molecule.png",
		Size:       depict.DefaultSize,
		Padding:    depict.DefaultPadding,
		BondWidth:  depict.DefaultBondWidth,
		Background: "white",
		Foreground: "black",
		Jobs:       DefaultJobs,
	}
}

// Merge fills zero-valued fields of c from defaults.
func (c *Config) Merge(defaults *Config) *Config {
	merged := *c
	if merged.Output == "" {
		merged.Output = defaults.Output
	}
	if merged.Size == 0 {
		merged.Size = defaults.Size
	}
	if merged.Padding == 0 {
		merged.Padding = defaults.Padding
	}
	if merged.BondWidth == 0 {
		merged.BondWidth = defaults.BondWidth
	}
	if merged.Background == "" {
		merged.Background = defaults.Background
	}
	if merged.Foreground == "" {
		merged.Foreground = defaults.Foreground
	}
	if merged.FontPath == "" {
		merged.FontPath = defaults.FontPath
	}
	if merged.ColorAtoms == nil {
		merged.ColorAtoms = defaults.ColorAtoms
	}
	if merged.Jobs == 0 {
		merged.Jobs = defaults.Jobs
	}
	if len(merged.Catalogs) == 0 {
		merged.Catalogs = defaults.Catalogs
	}
	return &merged
}

// DepictOptions converts the drawing settings into renderer options.
// The font file, when configured, is read through filesystem.
func (c *Config) DepictOptions(filesystem smifs.FileSystem) (depict.Options, error) {
	opts := depict.DefaultOptions()
	if c.Size > 0 {
		opts.Size = c.Size
	}
	if c.Padding != 0 {
		opts.Padding = c.Padding
	}
	if c.BondWidth != 0 {
		opts.BondWidth = c.BondWidth
	}
	if c.ColorAtoms != nil {
		opts.ColorAtoms = *c.ColorAtoms
	}

	if c.Background != "" {
		bg, err := ParseColor(c.Background)
		if err != nil {
			return opts, fmt.Errorf("background: %w", err)
		}
		opts.Background = bg
	}
	if c.Foreground != "" {
		fg, err := ParseColor(c.Foreground)
		if err != nil {
			return opts, fmt.Errorf("foreground: %w", err)
		}
		opts.Foreground = fg
	}

	if c.FontPath != "" {
		data, err := filesystem.ReadFile(c.FontPath)
		if err != nil {
			return opts, fmt.Errorf("reading font %s: %w", c.FontPath, err)
		}
		font, err := depict.ParseFont(data)
		if err != nil {
			return opts, fmt.Errorf("font %s: %w", c.FontPath, err)
		}
		opts.Font = font
	}

	return opts, nil
}

// ParseColor parses any CSS colour string.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w %q: %w", ErrColor, s, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
