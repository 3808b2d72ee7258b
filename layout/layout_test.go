/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package layout_test

import (
	"math"
	"testing"

	"bennypowers.dev/smidraw/layout"
	"bennypowers.dev/smidraw/molecule"
	"bennypowers.dev/smidraw/smiles"
)

const tolerance = 1e-6

func laidOut(t *testing.T, smi string) *molecule.Molecule {
	t.Helper()
	m, err := smiles.Parse(smi)
	if err != nil {
		t.Fatalf("Parse(%q): %v", smi, err)
	}
	if err := m.Kekulize(); err != nil {
		t.Fatalf("Kekulize(%q): %v", smi, err)
	}
	layout.Compute(m)
	return m
}

func dist(m *molecule.Molecule, i, j int) float64 {
	return math.Hypot(m.Atoms[i].X-m.Atoms[j].X, m.Atoms[i].Y-m.Atoms[j].Y)
}

// segmentDist returns the distance from atom a to the bond i-j.
func segmentDist(m *molecule.Molecule, a, i, j int) float64 {
	px, py := m.Atoms[a].X-m.Atoms[i].X, m.Atoms[a].Y-m.Atoms[i].Y
	dx, dy := m.Atoms[j].X-m.Atoms[i].X, m.Atoms[j].Y-m.Atoms[i].Y
	t := (px*dx + py*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-t*dx, py-t*dy)
}

// bondAngle returns the angle i-j-k in degrees.
func bondAngle(m *molecule.Molecule, i, j, k int) float64 {
	ax, ay := m.Atoms[i].X-m.Atoms[j].X, m.Atoms[i].Y-m.Atoms[j].Y
	bx, by := m.Atoms[k].X-m.Atoms[j].X, m.Atoms[k].Y-m.Atoms[j].Y
	cos := (ax*bx + ay*by) / (math.Hypot(ax, ay) * math.Hypot(bx, by))
	return math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
}

func TestComputeBondLengths(t *testing.T) {
	for _, smi := range []string{
		"CCO",
		"c1ccccc1",
		"c1ccc2ccccc2c1",
		"CN1C=NC2=C1C(=O)N(C(=O)N2C)C",
		"c1ccccc1-c1ccccc1",
		"C1CC1C(=O)O",
		"CC(C)(C)C",
	} {
		t.Run(smi, func(t *testing.T) {
			m := laidOut(t, smi)
			for bi, b := range m.Bonds {
				if d := dist(m, b.Begin, b.End); math.Abs(d-layout.BondLength) > tolerance {
					t.Errorf("bond %d (%d-%d) length = %f, want %f", bi, b.Begin, b.End, d, layout.BondLength)
				}
			}
		})
	}
}

func TestComputeNoOverlaps(t *testing.T) {
	for _, smi := range []string{
		"CCO",
		"c1ccccc1",
		"CN1C=NC2=C1C(=O)N(C(=O)N2C)C",
		"CC(C)Cc1ccc(cc1)C(C)C(=O)O",
		"C1CCC2(C1)CCCC2",
		"CC(=O)Oc1ccccc1C(=O)O",
		"[Na+].[Cl-]",
		"O.O.O",
		// bridged
		"C1CC2CCC1CC2",
		"C1C2CC3CC1CC(C2)C3",
		"C12C3C4C1C5C2C3C45",
		"C1CC2CCC1C2",
		"CN1CC[C@]23c4c5ccc(O)c4O[C@H]2[C@@H](O)C=C[C@H]3[C@H]1C5",
	} {
		t.Run(smi, func(t *testing.T) {
			m := laidOut(t, smi)
			for i := range m.Atoms {
				for j := i + 1; j < len(m.Atoms); j++ {
					if d := dist(m, i, j); d < 0.3*layout.BondLength {
						t.Errorf("atoms %d and %d are %f apart", i, j, d)
					}
				}
			}
		})
	}
}

func TestComputeBridgedKeepsAtomsOffBonds(t *testing.T) {
	for _, smi := range []string{
		"C1CC2CCC1CC2",
		"C1C2CC3CC1CC(C2)C3",
		"C12C3C4C1C5C2C3C45",
	} {
		t.Run(smi, func(t *testing.T) {
			m := laidOut(t, smi)
			for _, b := range m.Bonds {
				for a := range m.Atoms {
					if a == b.Begin || a == b.End {
						continue
					}
					if d := segmentDist(m, a, b.Begin, b.End); d < 0.25*layout.BondLength {
						t.Errorf("atom %d lies on bond %d-%d (%f away)", a, b.Begin, b.End, d)
					}
				}
			}
			for bi, b := range m.Bonds {
				if d := dist(m, b.Begin, b.End); d < 0.5*layout.BondLength || d > 2*layout.BondLength {
					t.Errorf("bond %d (%d-%d) length = %f", bi, b.Begin, b.End, d)
				}
			}
		})
	}
}

func TestComputeFusedSystemsStayRegular(t *testing.T) {
	// bridged handling must not disturb systems that fit regular polygons
	m := laidOut(t, "c1ccc2cc3ccccc3cc2c1")
	for bi, b := range m.Bonds {
		if d := dist(m, b.Begin, b.End); math.Abs(d-layout.BondLength) > tolerance {
			t.Errorf("bond %d length = %f", bi, d)
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	smi := "CC(C)Cc1ccc(cc1)C(C)C(=O)O"
	a := laidOut(t, smi)
	b := laidOut(t, smi)
	for i := range a.Atoms {
		if a.Atoms[i].X != b.Atoms[i].X || a.Atoms[i].Y != b.Atoms[i].Y {
			t.Fatalf("atom %d: (%v,%v) != (%v,%v)", i, a.Atoms[i].X, a.Atoms[i].Y, b.Atoms[i].X, b.Atoms[i].Y)
		}
	}
}

func TestComputeZigzag(t *testing.T) {
	m := laidOut(t, "CCCC")
	for _, j := range []int{1, 2} {
		if got := bondAngle(m, j-1, j, j+1); math.Abs(got-120) > tolerance {
			t.Errorf("angle at atom %d = %f, want 120", j, got)
		}
	}
	// trans, so the ends sit on opposite sides of the central bond
	if dist(m, 0, 3) < 2*layout.BondLength {
		t.Errorf("chain folds back: end-to-end %f", dist(m, 0, 3))
	}
}

func TestComputeLinearTripleBond(t *testing.T) {
	m := laidOut(t, "CC#CC")
	for _, j := range []int{1, 2} {
		if got := bondAngle(m, j-1, j, j+1); math.Abs(got-180) > 1e-4 {
			t.Errorf("angle at atom %d = %f, want 180", j, got)
		}
	}
}

func TestComputeRingSubstituentPointsOutward(t *testing.T) {
	m := laidOut(t, "Cc1ccccc1")
	var cx, cy float64
	for i := 1; i <= 6; i++ {
		cx += m.Atoms[i].X / 6
		cy += m.Atoms[i].Y / 6
	}
	ox, oy := m.Atoms[1].X-cx, m.Atoms[1].Y-cy
	sx, sy := m.Atoms[0].X-m.Atoms[1].X, m.Atoms[0].Y-m.Atoms[1].Y
	cross := ox*sy - oy*sx
	dot := ox*sx + oy*sy
	if math.Abs(cross) > 1e-6 || dot <= 0 {
		t.Errorf("methyl not radial: cross=%f dot=%f", cross, dot)
	}
}

func TestComputeRegularRing(t *testing.T) {
	m := laidOut(t, "C1CCCCC1")
	for i := range 6 {
		if got := bondAngle(m, (i+5)%6, i, (i+1)%6); math.Abs(got-120) > tolerance {
			t.Errorf("ring angle at %d = %f, want 120", i, got)
		}
	}
}

func TestComputeFragmentsLeftToRight(t *testing.T) {
	m := laidOut(t, "[Na+].[Cl-]")
	if m.Atoms[0].X >= m.Atoms[1].X {
		t.Errorf("fragments out of order: %f >= %f", m.Atoms[0].X, m.Atoms[1].X)
	}
	if m.Atoms[0].Y != m.Atoms[1].Y {
		t.Errorf("fragments not aligned: %f != %f", m.Atoms[0].Y, m.Atoms[1].Y)
	}
}

func TestBounds(t *testing.T) {
	m := laidOut(t, "CC")
	minX, minY, maxX, maxY := layout.Bounds(m)
	if minX > maxX || minY > maxY {
		t.Fatalf("bounds inverted: (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
	if w := math.Hypot(maxX-minX, maxY-minY); math.Abs(w-layout.BondLength) > tolerance {
		t.Errorf("diagonal = %f, want %f", w, layout.BondLength)
	}

	minX, minY, maxX, maxY = layout.Bounds(molecule.New())
	if minX != 0 || minY != 0 || maxX != 0 || maxY != 0 {
		t.Errorf("empty bounds = (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}
