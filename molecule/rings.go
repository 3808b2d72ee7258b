/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package molecule

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dominikbraun/graph"
)

// Graph returns the molecule as an undirected graph keyed by atom index.
func (m *Molecule) Graph() graph.Graph[int, int] {
	g := graph.New(graph.IntHash)
	for i := range m.Atoms {
		_ = g.AddVertex(i)
	}
	for _, b := range m.Bonds {
		_ = g.AddEdge(b.Begin, b.End)
	}
	return g
}

// Fragments returns the connected components of the molecule. Atoms within
// a fragment are sorted, and fragments are ordered by their lowest atom.
func (m *Molecule) Fragments() [][]int {
	g := m.Graph()
	seen := make([]bool, len(m.Atoms))
	var fragments [][]int
	for i := range m.Atoms {
		if seen[i] {
			continue
		}
		var fragment []int
		_ = graph.BFS(g, i, func(v int) bool {
			seen[v] = true
			fragment = append(fragment, v)
			return false
		})
		sort.Ints(fragment)
		fragments = append(fragments, fragment)
	}
	return fragments
}

// Rings returns the smallest set of smallest rings. Each ring lists its
// atoms in cyclic order.
func (m *Molecule) Rings() [][]int {
	m.perceiveRings()
	out := make([][]int, len(m.rings))
	for i, r := range m.rings {
		out[i] = append([]int(nil), r...)
	}
	return out
}

// IsRingAtom reports whether atom i belongs to at least one ring.
func (m *Molecule) IsRingAtom(i int) bool {
	m.perceiveRings()
	for _, b := range m.adjacency[i] {
		if m.Bonds[b].InRing {
			return true
		}
	}
	return false
}

// CycleRank returns the number of independent cycles (E - V + C).
func (m *Molecule) CycleRank() int {
	return len(m.Bonds) - len(m.Atoms) + len(m.Fragments())
}

func (m *Molecule) perceiveRings() {
	if m.perceived {
		return
	}
	m.perceived = true
	m.rings = nil

	m.flagRingBonds()

	rank := m.CycleRank()
	if rank == 0 {
		return
	}

	var candidates [][]int
	seen := make(map[string]bool)
	for bi, b := range m.Bonds {
		if !b.InRing {
			continue
		}
		path := m.ringPath(b.Begin, b.End, bi)
		if path == nil {
			continue
		}
		key := ringKey(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, path)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) < len(candidates[j])
		}
		return ringKey(candidates[i]) < ringKey(candidates[j])
	})

	basis := &bondBasis{}
	for _, ring := range candidates {
		if basis.add(m.ringBondSet(ring)) {
			m.rings = append(m.rings, ring)
			if len(m.rings) == rank {
				break
			}
		}
	}
}

// flagRingBonds marks every bond whose removal leaves its endpoints connected.
func (m *Molecule) flagRingBonds() {
	g := m.Graph()
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		b.InRing = false
		if err := g.RemoveEdge(b.Begin, b.End); err != nil {
			continue
		}
		reached := false
		_ = graph.BFS(g, b.Begin, func(v int) bool {
			if v == b.End {
				reached = true
			}
			return reached
		})
		b.InRing = reached
		_ = g.AddEdge(b.Begin, b.End)
	}
}

// ringPath returns the shortest path from begin to end over ring bonds,
// ignoring the bond skip. Ties resolve toward lower atom indices.
func (m *Molecule) ringPath(begin, end, skip int) []int {
	parent := make([]int, len(m.Atoms))
	for i := range parent {
		parent[i] = -1
	}
	parent[begin] = begin
	queue := []int{begin}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == end {
			break
		}
		for _, v := range m.Neighbors(u) {
			bi, _ := m.BondBetween(u, v)
			if bi == skip || !m.Bonds[bi].InRing || parent[v] != -1 {
				continue
			}
			parent[v] = u
			queue = append(queue, v)
		}
	}
	if parent[end] == -1 {
		return nil
	}
	var path []int
	for v := end; v != begin; v = parent[v] {
		path = append(path, v)
	}
	path = append(path, begin)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (m *Molecule) ringBondSet(ring []int) []uint64 {
	set := make([]uint64, (len(m.Bonds)+63)/64)
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		if bi, ok := m.BondBetween(a, b); ok {
			set[bi/64] |= 1 << (bi % 64)
		}
	}
	return set
}

func ringKey(ring []int) string {
	sorted := append([]int(nil), ring...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, a := range sorted {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

// bondBasis is a GF(2) basis over bond incidence vectors, used to keep
// only linearly independent rings.
type bondBasis struct {
	vectors [][]uint64
	pivots  []int
}

func (b *bondBasis) add(v []uint64) bool {
	for i, vec := range b.vectors {
		p := b.pivots[i]
		if v[p/64]&(1<<(p%64)) == 0 {
			continue
		}
		for w := range v {
			v[w] ^= vec[w]
		}
	}
	for w, word := range v {
		if word == 0 {
			continue
		}
		for bit := 0; bit < 64; bit++ {
			if word&(1<<bit) != 0 {
				b.vectors = append(b.vectors, v)
				b.pivots = append(b.pivots, w*64+bit)
				return true
			}
		}
	}
	return false
}
