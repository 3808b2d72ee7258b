/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package depict

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// elementColors holds the heteroatom palette, keyed by atomic number.
var elementColors = map[int]string{
	0:  "#808080", // *
	1:  "#666666",
	5:  "#E07070",
	7:  "#3050F8",
	8:  "#FF0D0D",
	9:  "#33CC33",
	14: "#C09060",
	15: "#FF8000",
	16: "#C8C800",
	17: "#1FB01F",
	34: "#D08000",
	35: "#A62929",
	53: "#940094",
}

// minLightnessContrast is the smallest CIE L* difference, on the 0-1
// scale, between an atom colour and the background before the colour is
// pulled toward the foreground.
const minLightnessContrast = 0.3

type palette struct {
	fg, bg     colorful.Color
	colorAtoms bool
	cache      map[int]color.Color
}

func newPalette(o Options) *palette {
	fg, ok := colorful.MakeColor(o.Foreground)
	if !ok {
		fg = colorful.Color{}
	}
	bg, ok := colorful.MakeColor(o.Background)
	if !ok {
		bg = colorful.Color{R: 1, G: 1, B: 1}
	}
	return &palette{fg: fg, bg: bg, colorAtoms: o.ColorAtoms, cache: make(map[int]color.Color)}
}

// atom returns the drawing colour for an element.
func (p *palette) atom(number int) color.Color {
	if !p.colorAtoms {
		return p.fg
	}
	if c, ok := p.cache[number]; ok {
		return c
	}
	hex, ok := elementColors[number]
	if !ok {
		p.cache[number] = p.fg
		return p.fg
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		p.cache[number] = p.fg
		return p.fg
	}
	cl, _, _ := c.Lab()
	bl, _, _ := p.bg.Lab()
	if math.Abs(cl-bl) < minLightnessContrast {
		c = c.BlendLab(p.fg, 0.5).Clamped()
	}
	p.cache[number] = c
	return c
}
