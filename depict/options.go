/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package depict

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Default drawing parameters.
const (
	DefaultSize      = 400
	DefaultPadding   = 0.05
	DefaultBondWidth = 0.035
)

// ErrSize is returned for a non-positive image size.
var ErrSize = errors.New("image size must be positive")

// Options controls how a molecule is drawn.
type Options struct {
	// Size is the width and height of the square image in pixels.
	Size int
	// Padding is the blank margin on each side, as a fraction of Size.
	Padding float64
	// BondWidth is the stroke width as a fraction of the drawn bond length.
	BondWidth float64
	// Background fills the canvas.
	Background color.Color
	// Foreground is used for carbon skeleton bonds and uncoloured labels.
	Foreground color.Color
	// ColorAtoms draws heteroatom labels and their bond halves in element
	// colours.
	ColorAtoms bool
	// Font renders atom labels. Nil selects the embedded Go Regular face.
	Font *truetype.Font
}

// DefaultOptions returns black-on-white drawing options with coloured
// heteroatoms.
func DefaultOptions() Options {
	return Options{
		Size:       DefaultSize,
		Padding:    DefaultPadding,
		BondWidth:  DefaultBondWidth,
		Background: color.White,
		Foreground: color.Black,
		ColorAtoms: true,
	}
}

func (o Options) validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrSize, o.Size)
	}
	if o.Padding < 0 || o.Padding >= 0.5 {
		return fmt.Errorf("padding %.3f out of range [0, 0.5)", o.Padding)
	}
	if o.BondWidth <= 0 {
		return fmt.Errorf("bond width %.3f must be positive", o.BondWidth)
	}
	return nil
}

// withDefaults fills unset colours and the font.
func (o Options) withDefaults() (Options, error) {
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Foreground == nil {
		o.Foreground = color.Black
	}
	if o.Font == nil {
		f, err := defaultFont()
		if err != nil {
			return o, err
		}
		o.Font = f
	}
	return o, nil
}

var defaultFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// ParseFont reads a TrueType font for label rendering.
func ParseFont(data []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return f, nil
}
