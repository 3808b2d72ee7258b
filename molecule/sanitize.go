/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package molecule

import "fmt"

// Sanitize derives implicit hydrogen counts and verifies that the molecule
// is chemically representable: every atom with a valence model has a
// permitted valence and every aromatic system admits a Kekulé structure.
//
// Aromatic bonds that are not part of a ring are demoted to single bonds,
// as in biphenyl written without an explicit inter-ring bond.
func (m *Molecule) Sanitize() error {
	m.perceiveRings()

	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		if b.Order == Aromatic && !b.InRing {
			b.Order = Single
		}
	}

	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.Aromatic && !m.IsRingAtom(i) {
			return fmt.Errorf("%w: non-ring atom %d marked aromatic", ErrKekulize, i)
		}
		h, err := m.implicitHydrogens(i)
		if err != nil {
			return err
		}
		a.ImplicitH = h
	}

	if _, err := m.kekuleMatching(); err != nil {
		return err
	}
	m.sanitized = true
	return nil
}

// targetValence returns the smallest permitted valence of atom i that can
// hold its explicit valence. ok is false when the element has no valence
// model (metals, noble gases, hydrogen, the wildcard).
func (m *Molecule) targetValence(i int) (target int, ok bool, err error) {
	a := &m.Atoms[i]
	valences := chargedValences(a.Number, a.Charge)
	if len(valences) == 0 {
		return 0, false, nil
	}
	v := m.explicitValence(i)
	for _, allowed := range valences {
		if allowed >= v {
			return allowed, true, nil
		}
	}
	return 0, true, fmt.Errorf("%w: atom %d (%s) has valence %d, permitted %v",
		ErrValence, i, a.Symbol, v, valences)
}

// needsDouble reports whether an aromatic atom must receive a double bond
// in the Kekulé structure.
func (m *Molecule) needsDouble(i int) bool {
	if !m.Atoms[i].Aromatic {
		return false
	}
	target, ok, err := m.targetValence(i)
	if !ok || err != nil {
		return false
	}
	return target-m.explicitValence(i) >= 1
}

func (m *Molecule) implicitHydrogens(i int) (int, error) {
	a := &m.Atoms[i]
	target, ok, err := m.targetValence(i)
	if err != nil {
		return 0, err
	}
	if !ok || a.Bracket {
		return 0, nil
	}
	h := target - m.explicitValence(i)
	if m.needsDouble(i) {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h, nil
}
