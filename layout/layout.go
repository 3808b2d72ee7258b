/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package layout computes 2D depiction coordinates for molecules.
//
// Ring systems are drawn as regular polygons fused edge to edge, chains as
// 120° zigzags, and disconnected fragments side by side from left to right.
// The result depends only on the molecular graph and its atom order.
package layout

import (
	"math"
	"sort"

	"bennypowers.dev/smidraw/molecule"
)

// BondLength is the distance between bonded atoms in layout units.
const BondLength = 1.5

// fragmentGap separates disconnected fragments horizontally.
const fragmentGap = 2 * BondLength

type ringSystem struct {
	rings [][]int
	atoms []int // sorted
}

type layouter struct {
	m        *molecule.Molecule
	pos      []vec
	placed   []bool
	turn     []int
	systems  []ringSystem
	systemOf []int
}

// Compute assigns 2D coordinates to every atom of m. The y axis points up.
func Compute(m *molecule.Molecule) {
	n := m.NumAtoms()
	if n == 0 {
		return
	}
	l := &layouter{
		m:        m,
		pos:      make([]vec, n),
		placed:   make([]bool, n),
		turn:     make([]int, n),
		systemOf: make([]int, n),
	}
	l.findRingSystems()

	offset := 0.0
	for i, frag := range m.Fragments() {
		l.placeFragment(frag)
		l.relieveClashes(frag)

		lo, hi := l.bounds(frag)
		shift := vec{offset - lo.x, -(lo.y + hi.y) / 2}
		if i == 0 {
			shift.x = 0
			offset = lo.x
		}
		for _, a := range frag {
			l.pos[a] = l.pos[a].add(shift)
		}
		offset += hi.x - lo.x + fragmentGap
	}

	for i := range m.Atoms {
		m.Atoms[i].X = l.pos[i].x
		m.Atoms[i].Y = l.pos[i].y
	}
}

// Bounds returns the bounding box of the atom coordinates.
func Bounds(m *molecule.Molecule) (minX, minY, maxX, maxY float64) {
	if m.NumAtoms() == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := range m.Atoms {
		a := &m.Atoms[i]
		minX, maxX = math.Min(minX, a.X), math.Max(maxX, a.X)
		minY, maxY = math.Min(minY, a.Y), math.Max(maxY, a.Y)
	}
	return minX, minY, maxX, maxY
}

func (l *layouter) bounds(atoms []int) (lo, hi vec) {
	lo = vec{math.Inf(1), math.Inf(1)}
	hi = vec{math.Inf(-1), math.Inf(-1)}
	for _, a := range atoms {
		p := l.pos[a]
		lo = vec{math.Min(lo.x, p.x), math.Min(lo.y, p.y)}
		hi = vec{math.Max(hi.x, p.x), math.Max(hi.y, p.y)}
	}
	return lo, hi
}

// findRingSystems groups rings that share at least one atom.
func (l *layouter) findRingSystems() {
	rings := l.m.Rings()
	parent := make([]int, len(rings))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	owner := make([]int, l.m.NumAtoms())
	for i := range owner {
		owner[i] = -1
		l.systemOf[i] = -1
	}
	for ri, r := range rings {
		for _, a := range r {
			if owner[a] < 0 {
				owner[a] = ri
				continue
			}
			if x, y := find(ri), find(owner[a]); x != y {
				parent[max(x, y)] = min(x, y)
			}
		}
	}

	index := make([]int, len(rings))
	for i := range index {
		index[i] = -1
	}
	for ri, r := range rings {
		root := find(ri)
		if index[root] < 0 {
			index[root] = len(l.systems)
			l.systems = append(l.systems, ringSystem{})
		}
		s := index[root]
		l.systems[s].rings = append(l.systems[s].rings, r)
	}
	for s := range l.systems {
		sys := &l.systems[s]
		for _, r := range sys.rings {
			for _, a := range r {
				if l.systemOf[a] < 0 {
					l.systemOf[a] = s
				}
			}
		}
	}
	for a, s := range l.systemOf {
		if s >= 0 {
			l.systems[s].atoms = append(l.systems[s].atoms, a)
		}
	}
}

func (l *layouter) placeFragment(frag []int) {
	var queue []int

	root := -1
	for _, a := range frag {
		s := l.systemOf[a]
		if s < 0 || s == root {
			continue
		}
		if root < 0 || len(l.systems[s].atoms) > len(l.systems[root].atoms) {
			root = s
		}
	}

	if root >= 0 {
		sys := &l.systems[root]
		local := l.layoutSystem(sys)
		for j, a := range sys.atoms {
			l.pos[a] = local[j]
			l.placed[a] = true
		}
		queue = append(queue, sys.atoms...)
	} else {
		start := frag[0]
		for _, a := range frag {
			if l.m.Degree(a) <= 1 {
				start = a
				break
			}
		}
		l.pos[start] = vec{}
		l.placed[start] = true
		queue = append(queue, start)
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		queue = append(queue, l.expand(u)...)
	}
}

// expand places the unplaced neighbours of u and returns every atom placed.
func (l *layouter) expand(u int) []int {
	var fresh []int
	var placedDirs []float64
	parent := -1
	for _, v := range l.m.Neighbors(u) {
		if l.placed[v] {
			placedDirs = append(placedDirs, l.pos[v].sub(l.pos[u]).angle())
			if parent < 0 {
				parent = v
			}
			continue
		}
		fresh = append(fresh, v)
	}
	if len(fresh) == 0 {
		return nil
	}

	angles := l.childAngles(u, placedDirs, len(fresh))
	var added []int
	for i, v := range fresh {
		if l.placed[v] {
			continue
		}
		dir := fromAngle(angles[i])
		if s := l.systemOf[v]; s >= 0 {
			added = append(added, l.attachSystem(&l.systems[s], v, u, dir)...)
		} else {
			l.pos[v] = l.pos[u].add(dir.scale(BondLength))
			l.placed[v] = true
			added = append(added, v)
		}
		l.turn[v] = l.turnSign(u, parent, angles[i])
	}
	return added
}

// childAngles returns bond directions for k new neighbours of u given the
// directions of its already placed neighbours.
func (l *layouter) childAngles(u int, placedDirs []float64, k int) []float64 {
	out := make([]float64, k)
	switch len(placedDirs) {
	case 0:
		for i := range out {
			out[i] = math.Pi/6 + 2*math.Pi*float64(i)/float64(k)
		}
	case 1:
		back := placedDirs[0]
		if k == 1 {
			ahead := back + math.Pi
			if l.isLinear(u) {
				out[0] = ahead
				break
			}
			sign := -l.turn[u]
			if sign == 0 {
				sign = -1
			}
			out[0] = ahead + float64(sign)*math.Pi/3
			break
		}
		for i := range out {
			out[i] = back + 2*math.Pi*float64(i+1)/float64(k+1)
		}
	default:
		start, gap := largestGap(placedDirs)
		for i := range out {
			out[i] = start + gap*float64(i+1)/float64(k+1)
		}
	}
	return out
}

// largestGap returns the start angle and width of the widest empty sector
// between the given directions.
func largestGap(dirs []float64) (start, width float64) {
	sorted := make([]float64, len(dirs))
	for i, d := range dirs {
		sorted[i] = positiveAngle(d)
	}
	sort.Float64s(sorted)
	for i, a := range sorted {
		next := sorted[(i+1)%len(sorted)]
		if i == len(sorted)-1 {
			next += 2 * math.Pi
		}
		if g := next - a; g > width+1e-9 {
			start, width = a, g
		}
	}
	return start, width
}

// isLinear reports whether u is an sp centre: two neighbours joined through
// a triple bond or two cumulated double bonds.
func (l *layouter) isLinear(u int) bool {
	if l.m.Degree(u) != 2 {
		return false
	}
	doubles := 0
	for _, bi := range l.m.BondsOf(u) {
		switch l.m.Bonds[bi].Order {
		case molecule.Triple, molecule.Quadruple:
			return true
		case molecule.Double:
			doubles++
		}
	}
	return doubles == 2
}

func (l *layouter) turnSign(u, parent int, angle float64) int {
	if parent < 0 {
		return 1
	}
	incoming := l.pos[u].sub(l.pos[parent]).angle()
	if normalizeAngle(angle-incoming) < 0 {
		return -1
	}
	return 1
}

// attachSystem places a ring system so that v sits one bond from u along
// dir, with the system's centre further along the same direction.
func (l *layouter) attachSystem(sys *ringSystem, v, u int, dir vec) []int {
	local := l.layoutSystem(sys)
	iv := 0
	for j, a := range sys.atoms {
		if a == v {
			iv = j
		}
	}
	rot := dir.angle() - centroid(local).sub(local[iv]).angle()
	target := l.pos[u].add(dir.scale(BondLength))
	for j, a := range sys.atoms {
		l.pos[a] = local[j].sub(local[iv]).rotate(rot).add(target)
		l.placed[a] = true
	}
	return append([]int(nil), sys.atoms...)
}
