/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package depict

import (
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"bennypowers.dev/smidraw/molecule"
)

// label is the text drawn in place of an atom vertex.
type label struct {
	at        gg.Point
	symbol    string
	isotope   string
	hydrogens int
	hLeft     bool
	charge    string
	color     color.Color

	// half extents of the clearance box around the symbol
	halfWidth, halfHeight float64
}

// hydrideLeft lists elements whose isolated hydrides read with hydrogen
// first (H2O, HCl).
var hydrideLeft = map[int]bool{8: true, 9: true, 16: true, 17: true, 34: true, 35: true, 53: true}

func (r *renderer) needsLabel(i int) bool {
	a := &r.m.Atoms[i]
	return a.Number != 6 || a.Charge != 0 || a.Isotope != 0 || r.m.Degree(i) == 0
}

func (r *renderer) buildLabel(i int) *label {
	if !r.needsLabel(i) {
		return nil
	}
	a := &r.m.Atoms[i]
	lb := &label{
		at:        r.points[i],
		symbol:    a.Symbol,
		hydrogens: a.TotalH(),
		charge:    molecule.ChargeLabel(a.Charge),
		color:     r.pal.atom(a.Number),
	}
	if a.Isotope > 0 {
		lb.isotope = strconv.Itoa(a.Isotope)
	}

	if r.m.Degree(i) == 0 {
		lb.hLeft = hydrideLeft[a.Number]
	} else {
		dx := 0.0
		for _, nb := range r.m.Neighbors(i) {
			dx += r.points[nb].X - lb.at.X
		}
		lb.hLeft = dx > 1e-6
	}

	r.dc.SetFontFace(r.face)
	w, _ := r.dc.MeasureString(lb.symbol)
	pad := 0.15 * r.fontSize
	lb.halfWidth = w/2 + pad
	lb.halfHeight = 0.4*r.fontSize + pad
	return lb
}

// clip returns the fraction of the segment from->to hidden behind the
// label box centred on from.
func (lb *label) clip(from, to gg.Point) float64 {
	dx, dy := math.Abs(to.X-from.X), math.Abs(to.Y-from.Y)
	t := math.Inf(1)
	if dx > 0 {
		t = lb.halfWidth / dx
	}
	if dy > 0 {
		t = math.Min(t, lb.halfHeight/dy)
	}
	return math.Min(t, 1)
}

func (r *renderer) drawLabel(lb *label) {
	dc := r.dc
	dc.SetColor(lb.color)
	fs := r.fontSize
	baseline := lb.at.Y + 0.35*fs

	dc.SetFontFace(r.face)
	ws, _ := dc.MeasureString(lb.symbol)
	wh, _ := dc.MeasureString("H")
	dc.SetFontFace(r.small)
	count := ""
	if lb.hydrogens > 1 {
		count = strconv.Itoa(lb.hydrogens)
	}
	wc, _ := dc.MeasureString(count)
	wiso, _ := dc.MeasureString(lb.isotope)

	left := lb.at.X - ws/2
	right := lb.at.X + ws/2

	dc.SetFontFace(r.face)
	dc.DrawString(lb.symbol, left, baseline)

	if lb.isotope != "" {
		left -= wiso
		dc.SetFontFace(r.small)
		dc.DrawString(lb.isotope, left, baseline-0.4*fs)
	}

	if lb.hydrogens > 0 {
		x := right
		if lb.hLeft {
			x = left - wh - wc
			left = x
		} else {
			right += wh + wc
		}
		dc.SetFontFace(r.face)
		dc.DrawString("H", x, baseline)
		if count != "" {
			dc.SetFontFace(r.small)
			dc.DrawString(count, x+wh, baseline+0.2*fs)
		}
	}

	if lb.charge != "" {
		dc.SetFontFace(r.small)
		dc.DrawString(lb.charge, right, baseline-0.45*fs)
	}
}
