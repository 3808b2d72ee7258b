/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package layout

import "math"

// layoutSystem places a ring system in local coordinates and returns the
// positions of sys.atoms in order.
//
// The ring fused to the most others goes first as a regular polygon. Each
// following ring is the one sharing the most already-placed atoms: rings
// sharing a single atom are spiro-joined, the rest have their unplaced arcs
// bridged between placed atoms. Bridged systems that cannot be drawn with
// regular polygons are then relaxed until no atoms overlap.
func (l *layouter) layoutSystem(sys *ringSystem) []vec {
	n := l.m.NumAtoms()
	pos := make([]vec, n)
	done := make([]bool, n)

	first, best := 0, -1
	for ri, r := range sys.rings {
		shared := 0
		for rj, other := range sys.rings {
			if ri != rj && sharesAtom(r, other) {
				shared++
			}
		}
		if shared > best || (shared == best && len(r) > len(sys.rings[first])) {
			first, best = ri, shared
		}
	}
	placePolygon(sys.rings[first], vec{}, math.Pi/2, pos, done)

	ringDone := make([]bool, len(sys.rings))
	ringDone[first] = true
	for range len(sys.rings) - 1 {
		next, shared := -1, 0
		for ri, r := range sys.rings {
			if ringDone[ri] {
				continue
			}
			if c := countDone(r, done); c > shared {
				next, shared = ri, c
			}
		}
		if next < 0 {
			break
		}
		ringDone[next] = true
		if shared == 1 {
			placeSpiro(l.m.Neighbors, sys.rings[next], pos, done)
		} else {
			l.placeArcs(sys.rings[next], pos, done)
		}
	}
	if l.strained(sys, pos) {
		l.relax(sys, pos)
	}

	out := make([]vec, len(sys.atoms))
	for j, a := range sys.atoms {
		out[j] = pos[a]
	}
	return out
}

func sharesAtom(a, b []int) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func countDone(ring []int, done []bool) int {
	c := 0
	for _, a := range ring {
		if done[a] {
			c++
		}
	}
	return c
}

func polygonRadius(n int) float64 {
	return BondLength / (2 * math.Sin(math.Pi/float64(n)))
}

// placePolygon puts ring on a regular polygon around centre, with the
// first atom at angle start.
func placePolygon(ring []int, centre vec, start float64, pos []vec, done []bool) {
	r := polygonRadius(len(ring))
	step := 2 * math.Pi / float64(len(ring))
	for i, a := range ring {
		pos[a] = centre.add(fromAngle(start - step*float64(i)).scale(r))
		done[a] = true
	}
}

// placeSpiro places a ring sharing one atom with the placed system so that
// it points away from the shared atom's placed neighbours.
func placeSpiro(neighbors func(int) []int, ring []int, pos []vec, done []bool) {
	pivot := -1
	for i, a := range ring {
		if done[a] {
			pivot = i
			break
		}
	}
	s := ring[pivot]

	var sum vec
	for _, nb := range neighbors(s) {
		if done[nb] {
			sum = sum.add(pos[nb].sub(pos[s]).unit())
		}
	}
	out := sum.scale(-1).unit()

	n := len(ring)
	centre := pos[s].add(out.scale(polygonRadius(n)))
	start := pos[s].sub(centre).angle()
	step := 2 * math.Pi / float64(n)
	for i := 1; i < n; i++ {
		a := ring[(pivot+i)%n]
		pos[a] = centre.add(fromAngle(start - step*float64(i)).scale(polygonRadius(n)))
		done[a] = true
	}
}

// placeArcs places every run of unplaced ring atoms between the placed
// atoms bounding it. Runs bridging across the system can have every natural
// arc already occupied, so each run goes on the candidate arc that collides
// least with what is already drawn.
func (l *layouter) placeArcs(ring []int, pos []vec, done []bool) {
	n := len(ring)
	anchor := -1
	for i, a := range ring {
		if done[a] {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return
	}

	var placed []vec
	for a := range done {
		if done[a] {
			placed = append(placed, pos[a])
		}
	}
	c := centroid(placed)

	var run []int
	prev := ring[anchor]
	for i := 1; i <= n; i++ {
		a := ring[(anchor+i)%n]
		if !done[a] {
			run = append(run, a)
			continue
		}
		if len(run) > 0 {
			l.placeRun(prev, a, run, c, pos, done)
			run = nil
		}
		prev = a
	}
}

// placeRun puts the atoms of run on the path from atom a to atom b.
func (l *layouter) placeRun(a, b int, run []int, away vec, pos []vec, done []bool) {
	var best []vec
	bestPenalty := math.Inf(1)
	for _, pts := range arcCandidates(pos[a], pos[b], len(run)+1, away) {
		if p := l.runPenalty(a, b, run, pts, pos, done); p < bestPenalty {
			best, bestPenalty = pts, p
		}
	}
	for i, x := range run {
		pos[x] = best[i]
		done[x] = true
	}
}

// arcCandidates returns possible positions for the segments-1 atoms between
// pa and pb, best first when nothing is in the way: the regular arc bulging
// away from the system, its mirror image, flatter arcs on both sides, the
// straight chord and two wide semicircular detours.
func arcCandidates(pa, pb vec, segments int, away vec) [][]vec {
	d := pa.dist(pb)
	mid := pa.add(pb).scale(0.5)
	normal := pb.sub(pa).perp().unit()
	if mid.sub(away).dot(normal) < 0 {
		normal = normal.scale(-1)
	}

	if d < 1e-9 {
		pts := make([]vec, segments-1)
		for i := range pts {
			pts[i] = pa.add(normal.scale(BondLength * float64(i+1)))
		}
		return [][]vec{pts}
	}

	h := 0.0
	if d < float64(segments)*BondLength*(1-1e-9) {
		phi := arcStep(d, segments)
		radius := BondLength / (2 * math.Sin(phi/2))
		h = radius * (1 - math.Cos(float64(segments)*phi/2))
	}

	sagittas := []float64{h, -h, h / 2, -h / 2, 0, d / 2, -d / 2}
	out := make([][]vec, 0, len(sagittas))
	for _, s := range sagittas {
		out = append(out, arcPoints(pa, pb, normal, s, segments))
	}
	return out
}

// arcPoints spaces segments-1 points evenly on the circular arc from pa to
// pb whose midpoint sits h along normal from the chord midpoint.
func arcPoints(pa, pb, normal vec, h float64, segments int) []vec {
	pts := make([]vec, segments-1)
	if math.Abs(h) < 1e-9 {
		for i := range pts {
			pts[i] = pa.add(pb.sub(pa).scale(float64(i+1) / float64(segments)))
		}
		return pts
	}
	if h < 0 {
		normal, h = normal.scale(-1), -h
	}

	c := pa.dist(pb) / 2
	radius := (c*c + h*h) / (2 * h)
	mid := pa.add(pb).scale(0.5)
	centre := mid.add(normal.scale(h - radius))
	sweep := 2 * math.Atan2(c, radius-h)

	start := pa.sub(centre)
	sign := 1.0
	if start.cross(normal) < 0 {
		sign = -1
	}
	for i := range pts {
		pts[i] = centre.add(start.rotate(sign * sweep * float64(i+1) / float64(segments)))
	}
	return pts
}

// runPenalty scores placing run at pts: atoms crowding each other or sitting
// on a bond weigh far more than bonds that miss BondLength.
func (l *layouter) runPenalty(a, b int, run []int, pts []vec, pos []vec, done []bool) float64 {
	const crowding = 100

	penalty := 0.0
	chain := make([]vec, 0, len(pts)+2)
	chain = append(chain, pos[a])
	chain = append(chain, pts...)
	chain = append(chain, pos[b])
	for i := 1; i < len(chain); i++ {
		dev := chain[i].dist(chain[i-1]) - BondLength
		penalty += dev * dev
	}

	for i, p := range pts {
		for y := range done {
			if !done[y] || (i == 0 && y == a) || (i == len(pts)-1 && y == b) {
				continue
			}
			if d := p.dist(pos[y]); d < clashDistance {
				penalty += crowding * (clashDistance - d) * (clashDistance - d)
			}
		}
		for j := i + 2; j < len(pts); j++ {
			if d := p.dist(pts[j]); d < clashDistance {
				penalty += crowding * (clashDistance - d) * (clashDistance - d)
			}
		}
	}

	// new atoms against drawn bonds
	for _, bond := range l.m.Bonds {
		if !done[bond.Begin] || !done[bond.End] {
			continue
		}
		for _, p := range pts {
			if s, _ := segmentDistance(p, pos[bond.Begin], pos[bond.End]); s < bondClearance {
				penalty += crowding * (bondClearance - s) * (bondClearance - s)
			}
		}
	}
	// drawn atoms against new bonds
	for i := 1; i < len(chain); i++ {
		for y := range done {
			if !done[y] || (i == 1 && y == a) || (i == len(chain)-1 && y == b) {
				continue
			}
			if s, _ := segmentDistance(pos[y], chain[i-1], chain[i]); s < bondClearance {
				penalty += crowding * (bondClearance - s) * (bondClearance - s)
			}
		}
	}
	return penalty
}

// arcStep finds the angle subtended by one bond such that segments equal
// chords of BondLength span a chord of length d.
func arcStep(d float64, segments int) float64 {
	s := float64(segments)
	span := func(phi float64) float64 {
		return BondLength * math.Sin(s*phi/2) / math.Sin(phi/2)
	}
	lo, hi := 1e-9, 2*math.Pi/s
	for range 64 {
		mid := (lo + hi) / 2
		if span(mid) > d {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
