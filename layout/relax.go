/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package layout

import "math"

const (
	// repelDistance is the closest two non-bonded ring atoms may sit.
	repelDistance = BondLength
	// bondClearance is the closest an atom may sit to a bond it is not in.
	bondClearance = 0.5 * BondLength

	relaxIterations = 3000
	relaxStep       = 0.05
	relaxMaxMove    = 0.2 * BondLength
	relaxStiffness  = 5.0
	strainTolerance = 1e-6
)

// strained reports whether the placed system has a bond off BondLength,
// two non-bonded atoms closer than repelDistance or an atom lying on a bond.
// Fused and spiro systems of regular polygons are never strained.
func (l *layouter) strained(sys *ringSystem, pos []vec) bool {
	bonds := l.systemBonds(sys)
	for _, b := range bonds {
		if math.Abs(pos[b[0]].dist(pos[b[1]])-BondLength) > strainTolerance {
			return true
		}
	}
	for i, u := range sys.atoms {
		for _, v := range sys.atoms[i+1:] {
			if _, bonded := l.m.BondBetween(u, v); bonded {
				continue
			}
			if pos[u].dist(pos[v]) < repelDistance-strainTolerance {
				return true
			}
		}
	}
	for _, b := range bonds {
		for _, a := range sys.atoms {
			if a == b[0] || a == b[1] {
				continue
			}
			if s, _ := segmentDistance(pos[a], pos[b[0]], pos[b[1]]); s < bondClearance-strainTolerance {
				return true
			}
		}
	}
	return false
}

// relax moves the atoms of a strained system by gradient descent on a
// spring model: bonds pull toward BondLength, non-bonded atoms closer than
// repelDistance push apart, and atoms within bondClearance of a bond they
// are not part of are pushed off it. The iteration order is fixed, so the
// result is deterministic.
func (l *layouter) relax(sys *ringSystem, pos []vec) {
	bonds := l.systemBonds(sys)
	var pairs [][2]int
	for i, u := range sys.atoms {
		for _, v := range sys.atoms[i+1:] {
			if _, bonded := l.m.BondBetween(u, v); !bonded {
				pairs = append(pairs, [2]int{u, v})
			}
		}
	}
	force := make([]vec, len(pos))

	for range relaxIterations {
		for _, a := range sys.atoms {
			force[a] = vec{}
		}

		for _, b := range bonds {
			u, v := b[0], b[1]
			d := pos[v].sub(pos[u])
			f := d.unit().scale(d.length() - BondLength)
			force[u] = force[u].add(f)
			force[v] = force[v].sub(f)
		}

		for _, p := range pairs {
			u, v := p[0], p[1]
			d := pos[u].sub(pos[v])
			dist := d.length()
			if dist >= repelDistance {
				continue
			}
			dir := d.unit()
			if dist < 1e-9 {
				dir = fromAngle(float64(u) * goldenAngle)
			}
			f := dir.scale(relaxStiffness * (repelDistance - dist))
			force[u] = force[u].add(f)
			force[v] = force[v].sub(f)
		}

		for _, b := range bonds {
			for _, a := range sys.atoms {
				if a == b[0] || a == b[1] {
					continue
				}
				s, t := segmentDistance(pos[a], pos[b[0]], pos[b[1]])
				if s >= bondClearance {
					continue
				}
				closest := pos[b[0]].add(pos[b[1]].sub(pos[b[0]]).scale(t))
				dir := pos[a].sub(closest).unit()
				if s < 1e-9 {
					dir = pos[b[1]].sub(pos[b[0]]).perp().unit()
				}
				f := dir.scale(relaxStiffness * (bondClearance - s))
				force[a] = force[a].add(f)
				force[b[0]] = force[b[0]].sub(f.scale(1 - t))
				force[b[1]] = force[b[1]].sub(f.scale(t))
			}
		}

		moved := 0.0
		for _, a := range sys.atoms {
			step := force[a].scale(relaxStep)
			if n := step.length(); n > relaxMaxMove {
				step = step.scale(relaxMaxMove / n)
			}
			pos[a] = pos[a].add(step)
			moved = math.Max(moved, step.length())
		}
		if moved < 1e-7 {
			return
		}
	}
}

// goldenAngle spreads the escape directions of coincident atoms.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

func (l *layouter) systemBonds(sys *ringSystem) [][2]int {
	in := make(map[int]bool, len(sys.atoms))
	for _, a := range sys.atoms {
		in[a] = true
	}
	var bonds [][2]int
	for _, b := range l.m.Bonds {
		if in[b.Begin] && in[b.End] {
			bonds = append(bonds, [2]int{b.Begin, b.End})
		}
	}
	return bonds
}
