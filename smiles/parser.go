/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package smiles parses SMILES line notation into molecular graphs.
//
// The accepted language is the OpenSMILES subset used by common toolkits:
// organic-subset and bracket atoms, explicit bonds, branches, ring closures
// (including %nn), and dot-separated fragments. Text after the first
// whitespace is treated as a title and ignored.
package smiles

import (
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/smidraw/molecule"
)

// Parse reads a SMILES string into a sanitized molecule: implicit hydrogens
// are assigned, valences are checked, and aromatic systems are verified to
// be kekulizable. Every error wraps ErrInvalidSmiles.
func Parse(s string) (*molecule.Molecule, error) {
	m, err := ParseUnsanitized(s)
	if err != nil {
		return nil, err
	}
	if err := m.Sanitize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSmiles, err)
	}
	return m, nil
}

// ParseUnsanitized reads a SMILES string into a molecular graph without
// deriving hydrogens or checking chemistry.
func ParseUnsanitized(s string) (*molecule.Molecule, error) {
	input := strings.TrimSpace(s)
	if i := strings.IndexAny(input, " \t\r\n"); i >= 0 {
		input = input[:i]
	}
	p := &parser{
		input: input,
		mol:   molecule.New(),
		prev:  -1,
		rings: make(map[int]ringOpening),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.mol, nil
}

type pendingBond struct {
	order  molecule.BondOrder
	stereo byte
	set    bool
	pos    int
}

type ringOpening struct {
	atom int
	bond pendingBond
	pos  int
}

type parser struct {
	input    string
	pos      int
	mol      *molecule.Molecule
	prev     int
	bond     pendingBond
	branches []int
	rings    map[int]ringOpening
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Input: p.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() error {
	if p.input == "" {
		return p.errorf(0, "empty SMILES")
	}

	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.errorf(p.pos, "branch without a preceding atom")
			}
			if p.bond.set {
				return p.errorf(p.pos, "bond symbol before branch")
			}
			if p.pos+1 < len(p.input) && p.input[p.pos+1] == ')' {
				return p.errorf(p.pos, "empty branch")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++

		case c == ')':
			if len(p.branches) == 0 {
				return p.errorf(p.pos, "unbalanced ')'")
			}
			if p.bond.set {
				return p.errorf(p.bond.pos, "bond symbol at end of branch")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++

		case c == '.':
			if p.prev < 0 {
				return p.errorf(p.pos, "'.' without a preceding atom")
			}
			if p.bond.set {
				return p.errorf(p.bond.pos, "bond symbol before '.'")
			}
			if len(p.branches) > 0 {
				return p.errorf(p.pos, "'.' inside a branch")
			}
			p.prev = -1
			p.pos++

		case isBondSymbol(c):
			if p.prev < 0 {
				return p.errorf(p.pos, "bond symbol without a preceding atom")
			}
			if p.bond.set {
				return p.errorf(p.pos, "consecutive bond symbols")
			}
			p.bond = parseBondSymbol(c, p.pos)
			p.pos++

		case c == '%' || isDigit(c):
			if err := p.parseRingClosure(); err != nil {
				return err
			}

		case c == '[':
			atom, err := p.parseBracketAtom()
			if err != nil {
				return err
			}
			if err := p.addAtom(atom); err != nil {
				return err
			}

		default:
			atom, err := p.parseOrganicAtom()
			if err != nil {
				return err
			}
			if err := p.addAtom(atom); err != nil {
				return err
			}
		}
	}

	if p.bond.set {
		return p.errorf(p.bond.pos, "bond symbol at end of input")
	}
	if len(p.branches) > 0 {
		return p.errorf(len(p.input), "unclosed branch")
	}
	if len(p.rings) > 0 {
		open := make([]int, 0, len(p.rings))
		for n := range p.rings {
			open = append(open, n)
		}
		sort.Ints(open)
		return p.errorf(p.rings[open[0]].pos, "unclosed ring bond %d", open[0])
	}
	if p.prev < 0 {
		return p.errorf(len(p.input), "trailing '.'")
	}
	return nil
}

func (p *parser) addAtom(a molecule.Atom) error {
	idx := p.mol.AddAtom(a)
	if p.prev >= 0 {
		order := p.bond.order
		if !p.bond.set {
			order = implicitOrder(p.mol.Atoms[p.prev], a)
		}
		bi, err := p.mol.AddBond(p.prev, idx, order)
		if err != nil {
			return p.errorf(p.pos, "%v", err)
		}
		p.mol.Bonds[bi].Stereo = p.bond.stereo
	}
	p.bond = pendingBond{}
	p.prev = idx
	return nil
}

func (p *parser) parseRingClosure() error {
	start := p.pos
	if p.prev < 0 {
		return p.errorf(start, "ring bond without a preceding atom")
	}
	var n int
	if p.input[p.pos] == '%' {
		if p.pos+2 >= len(p.input) || !isDigit(p.input[p.pos+1]) || !isDigit(p.input[p.pos+2]) {
			return p.errorf(start, "'%%' must be followed by two digits")
		}
		n = int(p.input[p.pos+1]-'0')*10 + int(p.input[p.pos+2]-'0')
		p.pos += 3
	} else {
		n = int(p.input[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[n]
	if !ok {
		p.rings[n] = ringOpening{atom: p.prev, bond: p.bond, pos: start}
		p.bond = pendingBond{}
		return nil
	}
	delete(p.rings, n)

	if open.atom == p.prev {
		return p.errorf(start, "ring bond %d closes on its own atom", n)
	}

	bond := open.bond
	switch {
	case bond.set && p.bond.set && bond.order != p.bond.order:
		return p.errorf(start, "conflicting bond orders for ring bond %d", n)
	case !bond.set && p.bond.set:
		bond = p.bond
	}
	order := bond.order
	if !bond.set {
		order = implicitOrder(p.mol.Atoms[open.atom], p.mol.Atoms[p.prev])
	}
	bi, err := p.mol.AddBond(open.atom, p.prev, order)
	if err != nil {
		return p.errorf(start, "%v", err)
	}
	p.mol.Bonds[bi].Stereo = bond.stereo
	p.bond = pendingBond{}
	return nil
}

func (p *parser) parseOrganicAtom() (molecule.Atom, error) {
	start := p.pos
	c := p.input[p.pos]

	if c == '*' {
		p.pos++
		return molecule.Atom{Number: 0, Symbol: "*"}, nil
	}

	if p.pos+1 < len(p.input) {
		switch p.input[p.pos : p.pos+2] {
		case "Cl", "Br":
			sym := p.input[p.pos : p.pos+2]
			p.pos += 2
			e, _ := molecule.LookupSymbol(sym)
			return molecule.Atom{Number: e.Number, Symbol: sym}, nil
		}
	}

	switch c {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		p.pos++
		e, _ := molecule.LookupSymbol(string(c))
		return molecule.Atom{Number: e.Number, Symbol: e.Symbol}, nil
	case 'b', 'c', 'n', 'o', 'p', 's':
		p.pos++
		e, _ := molecule.LookupSymbol(strings.ToUpper(string(c)))
		return molecule.Atom{Number: e.Number, Symbol: e.Symbol, Aromatic: true}, nil
	}

	return molecule.Atom{}, p.errorf(start, "unexpected character %q", c)
}

// aromaticBracketSymbols are the lowercase symbols allowed inside brackets,
// longest first.
var aromaticBracketSymbols = []string{"se", "as", "te", "b", "c", "n", "o", "p", "s"}

func (p *parser) parseBracketAtom() (molecule.Atom, error) {
	start := p.pos
	p.pos++ // '['
	atom := molecule.Atom{Bracket: true}

	isotope, err := p.readNumber()
	if err != nil {
		return atom, err
	}
	atom.Isotope = isotope

	if p.pos >= len(p.input) {
		return atom, p.errorf(start, "unterminated bracket atom")
	}

	rest := p.input[p.pos:]
	switch {
	case rest[0] == '*':
		atom.Symbol = "*"
		p.pos++
	case rest[0] >= 'a' && rest[0] <= 'z':
		found := false
		for _, sym := range aromaticBracketSymbols {
			if strings.HasPrefix(rest, sym) {
				e, _ := molecule.LookupSymbol(strings.ToUpper(sym[:1]) + sym[1:])
				atom.Number, atom.Symbol, atom.Aromatic = e.Number, e.Symbol, true
				p.pos += len(sym)
				found = true
				break
			}
		}
		if !found {
			return atom, p.errorf(p.pos, "unknown aromatic symbol in bracket atom")
		}
	case rest[0] >= 'A' && rest[0] <= 'Z':
		sym := rest[:1]
		if len(rest) > 1 && rest[1] >= 'a' && rest[1] <= 'z' {
			if _, ok := molecule.LookupSymbol(rest[:2]); ok {
				sym = rest[:2]
			}
		}
		e, ok := molecule.LookupSymbol(sym)
		if !ok {
			return atom, p.errorf(p.pos, "unknown element %q", sym)
		}
		atom.Number, atom.Symbol = e.Number, e.Symbol
		p.pos += len(sym)
	default:
		return atom, p.errorf(p.pos, "expected element symbol in bracket atom")
	}

	if atom.Chirality, err = p.readChirality(); err != nil {
		return atom, err
	}

	if p.pos < len(p.input) && p.input[p.pos] == 'H' {
		p.pos++
		atom.HCount = 1
		if p.pos < len(p.input) && isDigit(p.input[p.pos]) {
			atom.HCount = int(p.input[p.pos] - '0')
			p.pos++
		}
	}

	charge, err := p.readCharge()
	if err != nil {
		return atom, err
	}
	atom.Charge = charge

	if p.pos < len(p.input) && p.input[p.pos] == ':' {
		p.pos++
		if p.pos >= len(p.input) || !isDigit(p.input[p.pos]) {
			return atom, p.errorf(p.pos, "atom class must be numeric")
		}
		if atom.Class, err = p.readNumber(); err != nil {
			return atom, err
		}
	}

	if p.pos >= len(p.input) || p.input[p.pos] != ']' {
		return atom, p.errorf(start, "unterminated bracket atom")
	}
	p.pos++
	return atom, nil
}

// maxNumber bounds isotopes, atom classes and chirality indices.
const maxNumber = 999999

// maxCharge is the largest formal charge magnitude.
const maxCharge = 15

func (p *parser) readNumber() (int, error) {
	start := p.pos
	n := 0
	for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		n = n*10 + int(p.input[p.pos]-'0')
		p.pos++
		if n > maxNumber {
			return 0, p.errorf(start, "number out of range")
		}
	}
	return n, nil
}

func (p *parser) readChirality() (string, error) {
	if p.pos >= len(p.input) || p.input[p.pos] != '@' {
		return "", nil
	}
	start := p.pos
	p.pos++
	if p.pos < len(p.input) && p.input[p.pos] == '@' {
		p.pos++
		return p.input[start:p.pos], nil
	}
	// @TH1, @AL2, @SP3, @TB12, @OH30
	if p.pos+1 < len(p.input) {
		switch p.input[p.pos : p.pos+2] {
		case "TH", "AL", "SP", "TB", "OH":
			p.pos += 2
			if _, err := p.readNumber(); err != nil {
				return "", err
			}
		}
	}
	return p.input[start:p.pos], nil
}

func (p *parser) readCharge() (int, error) {
	if p.pos >= len(p.input) {
		return 0, nil
	}
	sign := p.input[p.pos]
	if sign != '+' && sign != '-' {
		return 0, nil
	}
	unit := 1
	if sign == '-' {
		unit = -1
	}
	start := p.pos
	p.pos++
	n := 1
	if p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		var err error
		if n, err = p.readNumber(); err != nil {
			return 0, p.errorf(start, "charge out of range")
		}
	} else {
		for p.pos < len(p.input) && p.input[p.pos] == sign {
			n++
			p.pos++
		}
	}
	if n > maxCharge {
		return 0, p.errorf(start, "charge out of range")
	}
	return unit * n, nil
}

func implicitOrder(a, b molecule.Atom) molecule.BondOrder {
	if a.Aromatic && b.Aromatic {
		return molecule.Aromatic
	}
	return molecule.Single
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBondSymbol(c byte) bool {
	switch c {
	case '-', '=', '#', '$', ':', '/', '\\':
		return true
	}
	return false
}

func parseBondSymbol(c byte, pos int) pendingBond {
	b := pendingBond{set: true, pos: pos}
	switch c {
	case '-':
		b.order = molecule.Single
	case '=':
		b.order = molecule.Double
	case '#':
		b.order = molecule.Triple
	case '$':
		b.order = molecule.Quadruple
	case ':':
		b.order = molecule.Aromatic
	case '/', '\\':
		b.order = molecule.Single
		b.stereo = c
	}
	return b
}
