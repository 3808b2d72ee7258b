/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package depict rasterizes laid-out molecules into square PNG images.
//
// Carbon atoms are implicit vertices of the skeleton; heteroatoms, charged
// or isotopic atoms, and isolated atoms get text labels with their attached
// hydrogens. Bonds are clipped around labels and drawn single, double
// (inner line for ring bonds), or triple.
package depict

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"bennypowers.dev/smidraw/layout"
	"bennypowers.dev/smidraw/molecule"
)

// Drawing proportions, relative to the drawn bond length unless noted.
// maxBondFraction caps the bond length as a fraction of the image size so
// small molecules are not blown up.
const (
	labelMargin     = 0.5 * layout.BondLength
	maxBondFraction = 0.2
	fontScale       = 0.45
	subScale        = 0.62
	doubleSpacing   = 0.18
	innerTrim       = 0.15
)

// Render draws m, which must already carry layout coordinates, and returns
// the encoded PNG.
func Render(m *molecule.Molecule, opts Options) ([]byte, error) {
	dc, err := draw(m, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	m      *molecule.Molecule
	dc     *gg.Context
	pal    *palette
	face   font.Face
	small  font.Face
	points []gg.Point
	labels []*label
	rings  [][]int

	scale, cx, cy, half float64
	bondPx, fontSize    float64
}

func draw(m *molecule.Molecule, opts Options) (*gg.Context, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(opts.Size, opts.Size)
	dc.SetColor(opts.Background)
	dc.Clear()
	if m.NumAtoms() == 0 {
		return dc, nil
	}

	r := &renderer{m: m, dc: dc, pal: newPalette(opts), rings: m.Rings()}
	r.fit(opts)
	r.face = truetype.NewFace(opts.Font, &truetype.Options{Size: r.fontSize, Hinting: font.HintingNone})
	r.small = truetype.NewFace(opts.Font, &truetype.Options{Size: r.fontSize * subScale, Hinting: font.HintingNone})
	defer r.face.Close()
	defer r.small.Close()

	r.points = make([]gg.Point, m.NumAtoms())
	for i := range m.Atoms {
		r.points[i] = r.project(m.Atoms[i].X, m.Atoms[i].Y)
	}
	r.labels = make([]*label, m.NumAtoms())
	for i := range m.Atoms {
		r.labels[i] = r.buildLabel(i)
	}

	dc.SetLineWidth(math.Max(1, r.bondPx*opts.BondWidth))
	dc.SetLineCapRound()
	for bi := range m.Bonds {
		r.drawBond(bi)
	}
	for _, lb := range r.labels {
		if lb != nil {
			r.drawLabel(lb)
		}
	}
	return dc, nil
}

// fit chooses the scale that centres the molecule in the padded canvas.
func (r *renderer) fit(opts Options) {
	minX, minY, maxX, maxY := layout.Bounds(r.m)
	w := maxX - minX + 2*labelMargin
	h := maxY - minY + 2*labelMargin
	size := float64(opts.Size)
	avail := size * (1 - 2*opts.Padding)

	r.scale = avail / math.Max(w, h)
	if limit := size * maxBondFraction / layout.BondLength; r.scale > limit {
		r.scale = limit
	}
	r.cx, r.cy = (minX+maxX)/2, (minY+maxY)/2
	r.half = size / 2
	r.bondPx = layout.BondLength * r.scale
	r.fontSize = math.Max(1, fontScale*r.bondPx)
}

// project maps layout coordinates (y up) to pixels (y down).
func (r *renderer) project(x, y float64) gg.Point {
	return gg.Point{
		X: r.half + (x-r.cx)*r.scale,
		Y: r.half - (y-r.cy)*r.scale,
	}
}

func (r *renderer) drawBond(bi int) {
	b := &r.m.Bonds[bi]
	p1, p2 := r.points[b.Begin], r.points[b.End]
	t1, t2 := 0.0, 0.0
	if lb := r.labels[b.Begin]; lb != nil {
		t1 = lb.clip(p1, p2)
	}
	if lb := r.labels[b.End]; lb != nil {
		t2 = lb.clip(p2, p1)
	}
	if t1+t2 >= 1 {
		return
	}
	q1, q2 := p1.Interpolate(p2, t1), p1.Interpolate(p2, 1-t2)
	c1 := r.pal.atom(r.m.Atoms[b.Begin].Number)
	c2 := r.pal.atom(r.m.Atoms[b.End].Number)
	normal := unitNormal(p1, p2)
	gap := doubleSpacing * r.bondPx

	switch b.Order {
	case molecule.Double:
		side := r.doubleSide(bi, p1, normal)
		if side == 0 {
			r.line(offset(q1, normal, gap/2), offset(q2, normal, gap/2), c1, c2)
			r.line(offset(q1, normal, -gap/2), offset(q2, normal, -gap/2), c1, c2)
			return
		}
		r.line(q1, q2, c1, c2)
		i1, i2 := q1, q2
		if t1 == 0 {
			i1 = q1.Interpolate(q2, innerTrim)
		}
		if t2 == 0 {
			i2 = q2.Interpolate(q1, innerTrim)
		}
		r.line(offset(i1, normal, side*gap), offset(i2, normal, side*gap), c1, c2)
	case molecule.Triple:
		r.line(q1, q2, c1, c2)
		r.line(offset(q1, normal, gap), offset(q2, normal, gap), c1, c2)
		r.line(offset(q1, normal, -gap), offset(q2, normal, -gap), c1, c2)
	case molecule.Quadruple:
		for _, k := range []float64{-1.5, -0.5, 0.5, 1.5} {
			r.line(offset(q1, normal, k*gap), offset(q2, normal, k*gap), c1, c2)
		}
	case molecule.Aromatic:
		r.line(q1, q2, c1, c2)
		side := r.doubleSide(bi, p1, normal)
		if side == 0 {
			side = 1
		}
		i1, i2 := q1.Interpolate(q2, innerTrim), q2.Interpolate(q1, innerTrim)
		r.dc.SetDash(gap/2, gap/2)
		r.line(offset(i1, normal, side*gap), offset(i2, normal, side*gap), c1, c2)
		r.dc.SetDash()
	default:
		r.line(q1, q2, c1, c2)
	}
}

// doubleSide returns +1 or -1 for the side of the bond that receives the
// inner line, or 0 for a symmetric pair of lines.
func (r *renderer) doubleSide(bi int, p1, normal gg.Point) float64 {
	b := &r.m.Bonds[bi]
	if ring := r.smallestRing(b.Begin, b.End); ring != nil {
		var c gg.Point
		for _, a := range ring {
			c.X += r.points[a].X / float64(len(ring))
			c.Y += r.points[a].Y / float64(len(ring))
		}
		return sign(dot(sub(c, p1), normal))
	}
	if r.m.Degree(b.Begin) < 2 || r.m.Degree(b.End) < 2 {
		return 0
	}
	if r.labels[b.Begin] != nil || r.labels[b.End] != nil {
		return 0
	}
	total := 0.0
	for _, end := range []int{b.Begin, b.End} {
		for _, nb := range r.m.Neighbors(end) {
			if nb == b.Begin || nb == b.End {
				continue
			}
			total += sign(dot(sub(r.points[nb], p1), normal))
		}
	}
	return sign(total)
}

func (r *renderer) smallestRing(a, b int) []int {
	var best []int
	for _, ring := range r.rings {
		n := len(ring)
		for i := range ring {
			x, y := ring[i], ring[(i+1)%n]
			if (x == a && y == b) || (x == b && y == a) {
				if best == nil || n < len(best) {
					best = ring
				}
				break
			}
		}
	}
	return best
}

// line strokes p1-p2, switching colour at the midpoint when the ends differ.
func (r *renderer) line(p1, p2 gg.Point, c1, c2 color.Color) {
	if sameColor(c1, c2) {
		r.stroke(p1, p2, c1)
		return
	}
	mid := p1.Interpolate(p2, 0.5)
	r.stroke(p1, mid, c1)
	r.stroke(mid, p2, c2)
}

func (r *renderer) stroke(p1, p2 gg.Point, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	r.dc.Stroke()
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func unitNormal(p1, p2 gg.Point) gg.Point {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return gg.Point{X: 0, Y: 1}
	}
	return gg.Point{X: -dy / l, Y: dx / l}
}

func offset(p, dir gg.Point, d float64) gg.Point {
	return gg.Point{X: p.X + dir.X*d, Y: p.Y + dir.Y*d}
}

func sub(a, b gg.Point) gg.Point { return gg.Point{X: a.X - b.X, Y: a.Y - b.Y} }

func dot(a, b gg.Point) float64 { return a.X*b.X + a.Y*b.Y }

func sign(v float64) float64 {
	switch {
	case v > 1e-9:
		return 1
	case v < -1e-9:
		return -1
	default:
		return 0
	}
}
