/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package molecule provides the molecular graph used by the SMILES parser,
// the 2D layout engine, and the depiction renderer.
package molecule

import (
	"fmt"
	"sort"
)

// BondOrder is the multiplicity of a bond.
type BondOrder int

const (
	// Single is a single bond.
	Single BondOrder = 1
	// Double is a double bond.
	Double BondOrder = 2
	// Triple is a triple bond.
	Triple BondOrder = 3
	// Quadruple is a quadruple bond.
	Quadruple BondOrder = 4
	// Aromatic marks a bond whose order is delocalised until kekulization.
	Aromatic BondOrder = 5
)

// String returns the SMILES bond symbol for the order.
func (o BondOrder) String() string {
	switch o {
	case Single:
		return "-"
	case Double:
		return "="
	case Triple:
		return "#"
	case Quadruple:
		return "$"
	case Aromatic:
		return ":"
	default:
		return "?"
	}
}

// valence returns the contribution of the bond to an atom's valence.
// Aromatic bonds count as one; the pi contribution is handled per atom.
func (o BondOrder) valence() int {
	if o == Aromatic {
		return 1
	}
	return int(o)
}

// Atom is a vertex of the molecular graph.
type Atom struct {
	Number    int    // atomic number, 0 for the wildcard
	Symbol    string // capitalised element symbol
	Aromatic  bool
	Bracket   bool // written in [brackets]; hydrogen count is explicit
	Charge    int
	Isotope   int
	HCount    int // hydrogens written inside the bracket
	ImplicitH int // hydrogens derived from the valence model
	Chirality string
	Class     int

	// X and Y are 2D depiction coordinates, set by the layout engine.
	X, Y float64
}

// TotalH returns the number of hydrogens attached to the atom that are not
// graph vertices.
func (a *Atom) TotalH() int {
	return a.HCount + a.ImplicitH
}

// Bond is an edge of the molecular graph.
type Bond struct {
	Begin, End int
	Order      BondOrder
	Stereo     byte // '/' or '\\' when written with a directional bond, else 0
	InRing     bool
}

// Other returns the atom at the far end of the bond from atom i.
func (b *Bond) Other(i int) int {
	if b.Begin == i {
		return b.End
	}
	return b.Begin
}

// Molecule is an undirected molecular graph with optional 2D coordinates.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond

	adjacency [][]int // atom index -> bond indices
	rings     [][]int
	perceived bool
	sanitized bool
}

// New returns an empty molecule.
func New() *Molecule {
	return &Molecule{}
}

// AddAtom appends an atom and returns its index.
func (m *Molecule) AddAtom(a Atom) int {
	m.Atoms = append(m.Atoms, a)
	m.adjacency = append(m.adjacency, nil)
	m.perceived, m.sanitized = false, false
	return len(m.Atoms) - 1
}

// AddBond connects two atoms and returns the bond index.
func (m *Molecule) AddBond(begin, end int, order BondOrder) (int, error) {
	if begin == end {
		return -1, fmt.Errorf("%w: atom %d bonded to itself", ErrBond, begin)
	}
	if begin < 0 || end < 0 || begin >= len(m.Atoms) || end >= len(m.Atoms) {
		return -1, fmt.Errorf("%w: atom index out of range (%d, %d)", ErrBond, begin, end)
	}
	if _, ok := m.BondBetween(begin, end); ok {
		return -1, fmt.Errorf("%w: atoms %d and %d are already bonded", ErrBond, begin, end)
	}
	m.Bonds = append(m.Bonds, Bond{Begin: begin, End: end, Order: order})
	idx := len(m.Bonds) - 1
	m.adjacency[begin] = append(m.adjacency[begin], idx)
	m.adjacency[end] = append(m.adjacency[end], idx)
	m.perceived, m.sanitized = false, false
	return idx, nil
}

// BondBetween returns the index of the bond joining atoms i and j.
func (m *Molecule) BondBetween(i, j int) (int, bool) {
	for _, b := range m.adjacency[i] {
		if m.Bonds[b].Other(i) == j {
			return b, true
		}
	}
	return -1, false
}

// BondsOf returns the indices of the bonds incident to atom i.
func (m *Molecule) BondsOf(i int) []int {
	return m.adjacency[i]
}

// Neighbors returns the atoms bonded to atom i in ascending index order.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.adjacency[i]))
	for _, b := range m.adjacency[i] {
		out = append(out, m.Bonds[b].Other(i))
	}
	sort.Ints(out)
	return out
}

// Degree returns the number of explicit neighbours of atom i.
func (m *Molecule) Degree(i int) int {
	return len(m.adjacency[i])
}

// NumAtoms returns the number of atoms.
func (m *Molecule) NumAtoms() int {
	return len(m.Atoms)
}

// NumBonds returns the number of bonds.
func (m *Molecule) NumBonds() int {
	return len(m.Bonds)
}

// IsAromatic reports whether any atom or bond still carries an aromatic flag.
func (m *Molecule) IsAromatic() bool {
	for i := range m.Atoms {
		if m.Atoms[i].Aromatic {
			return true
		}
	}
	for i := range m.Bonds {
		if m.Bonds[i].Order == Aromatic {
			return true
		}
	}
	return false
}

// explicitValence sums the bond orders around atom i, counting aromatic
// bonds as one, plus any bracket hydrogens.
func (m *Molecule) explicitValence(i int) int {
	v := m.Atoms[i].HCount
	for _, b := range m.adjacency[i] {
		v += m.Bonds[b].Order.valence()
	}
	return v
}
