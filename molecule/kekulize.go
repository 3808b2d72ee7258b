/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package molecule

import "fmt"

// maxKekuleSteps bounds the matching search on pathological inputs.
const maxKekuleSteps = 1 << 20

// Kekulize replaces aromatic bonds with an explicit alternating pattern of
// single and double bonds and clears every aromatic flag. Implicit
// hydrogens are derived first if the molecule has not been sanitized.
func (m *Molecule) Kekulize() error {
	if !m.sanitized {
		if err := m.Sanitize(); err != nil {
			return err
		}
	}
	doubles, err := m.kekuleMatching()
	if err != nil {
		return err
	}
	isDouble := make(map[int]bool, len(doubles))
	for _, bi := range doubles {
		isDouble[bi] = true
	}
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		if b.Order != Aromatic {
			continue
		}
		if isDouble[bi] {
			b.Order = Double
		} else {
			b.Order = Single
		}
	}
	for i := range m.Atoms {
		m.Atoms[i].Aromatic = false
	}
	return nil
}

// kekuleMatching finds a perfect matching, over aromatic bonds, of the
// aromatic atoms that need a double bond. It returns the matched bonds.
func (m *Molecule) kekuleMatching() ([]int, error) {
	var atoms []int
	wanted := make([]bool, len(m.Atoms))
	for i := range m.Atoms {
		if m.needsDouble(i) {
			atoms = append(atoms, i)
			wanted[i] = true
		}
	}
	if len(atoms) == 0 {
		return nil, nil
	}

	partners := make(map[int][]int, len(atoms))
	for _, i := range atoms {
		for _, j := range m.Neighbors(i) {
			bi, _ := m.BondBetween(i, j)
			if wanted[j] && m.Bonds[bi].Order == Aromatic {
				partners[i] = append(partners[i], j)
			}
		}
	}

	mate := make([]int, len(m.Atoms))
	for i := range mate {
		mate[i] = -1
	}
	steps := 0

	var solve func() bool
	solve = func() bool {
		steps++
		if steps > maxKekuleSteps {
			return false
		}
		// pick the unmatched atom with the fewest free partners
		best, bestFree := -1, 0
		for _, i := range atoms {
			if mate[i] != -1 {
				continue
			}
			free := 0
			for _, j := range partners[i] {
				if mate[j] == -1 {
					free++
				}
			}
			if best == -1 || free < bestFree {
				best, bestFree = i, free
			}
		}
		if best == -1 {
			return true
		}
		if bestFree == 0 {
			return false
		}
		for _, j := range partners[best] {
			if mate[j] != -1 {
				continue
			}
			mate[best], mate[j] = j, best
			if solve() {
				return true
			}
			mate[best], mate[j] = -1, -1
		}
		return false
	}

	if !solve() {
		var unmatched []int
		for _, i := range atoms {
			if mate[i] == -1 {
				unmatched = append(unmatched, i)
			}
		}
		return nil, fmt.Errorf("%w: unkekulized atoms %v", ErrKekulize, unmatched)
	}

	var bonds []int
	for _, i := range atoms {
		if j := mate[i]; j > i {
			bi, _ := m.BondBetween(i, j)
			bonds = append(bonds, bi)
		}
	}
	return bonds, nil
}
