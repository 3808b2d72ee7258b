/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package layout

const (
	clashDistance  = 0.6 * BondLength
	maxClashPasses = 3
	maxClashAtoms  = 400
	clashEpsilon   = 1e-6
)

// relieveClashes mirrors the smaller side of acyclic bonds across the bond
// axis whenever that reduces overlap between non-bonded atoms.
func (l *layouter) relieveClashes(frag []int) {
	if len(frag) < 4 || len(frag) > maxClashAtoms {
		return
	}
	score := l.clashScore(frag)
	if score == 0 {
		return
	}

	inFrag := make([]bool, l.m.NumAtoms())
	for _, a := range frag {
		inFrag[a] = true
	}

	for range maxClashPasses {
		improved := false
		for bi := range l.m.Bonds {
			b := &l.m.Bonds[bi]
			if b.InRing || !inFrag[b.Begin] {
				continue
			}
			if l.m.Degree(b.Begin) < 2 || l.m.Degree(b.End) < 2 {
				continue
			}
			side := l.sideOf(bi, b.End)
			if 2*len(side) > len(frag) {
				side = l.sideOf(bi, b.Begin)
			}

			saved := make([]vec, len(side))
			for i, a := range side {
				saved[i] = l.pos[a]
				l.pos[a] = l.pos[a].reflect(l.pos[b.Begin], l.pos[b.End])
			}
			if s := l.clashScore(frag); s < score-clashEpsilon {
				score = s
				improved = true
			} else {
				for i, a := range side {
					l.pos[a] = saved[i]
				}
			}
			if score == 0 {
				return
			}
		}
		if !improved {
			return
		}
	}
}

// sideOf returns the atoms reachable from start without crossing bond skip.
func (l *layouter) sideOf(skip, start int) []int {
	seen := make([]bool, l.m.NumAtoms())
	seen[start] = true
	queue := []int{start}
	var out []int
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		out = append(out, u)
		for _, bi := range l.m.BondsOf(u) {
			if bi == skip {
				continue
			}
			v := l.m.Bonds[bi].Other(u)
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return out
}

func (l *layouter) clashScore(frag []int) float64 {
	score := 0.0
	for i, a := range frag {
		for _, b := range frag[i+1:] {
			d := l.pos[a].dist(l.pos[b])
			if d >= clashDistance {
				continue
			}
			if _, bonded := l.m.BondBetween(a, b); bonded {
				continue
			}
			score += (clashDistance - d) * (clashDistance - d)
		}
	}
	return score
}
