/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package molecule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ElementCounts returns the number of atoms of each element, including
// implicit and bracket hydrogens.
func (m *Molecule) ElementCounts() map[string]int {
	counts := make(map[string]int)
	for i := range m.Atoms {
		a := &m.Atoms[i]
		counts[a.Symbol]++
		if h := a.TotalH(); h > 0 {
			counts["H"] += h
		}
	}
	return counts
}

// Formula returns the molecular formula in Hill order: carbon first,
// hydrogen second, then the remaining elements alphabetically. Without
// carbon every element, hydrogen included, is alphabetical. A net charge
// is appended as a suffix ("+", "2-").
func (m *Molecule) Formula() string {
	counts := m.ElementCounts()
	var symbols []string
	for s := range counts {
		symbols = append(symbols, s)
	}
	_, hasCarbon := counts["C"]
	sort.Slice(symbols, func(i, j int) bool {
		if hasCarbon {
			ri, rj := hillRank(symbols[i]), hillRank(symbols[j])
			if ri != rj {
				return ri < rj
			}
		}
		return symbols[i] < symbols[j]
	})

	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteString(s)
		if n := counts[s]; n > 1 {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	sb.WriteString(chargeSuffix(m.NetCharge()))
	return sb.String()
}

func hillRank(symbol string) int {
	switch symbol {
	case "C":
		return 0
	case "H":
		return 1
	default:
		return 2
	}
}

// chargeSuffix formats a charge the way formulas and labels show it.
func chargeSuffix(charge int) string {
	switch {
	case charge == 0:
		return ""
	case charge == 1:
		return "+"
	case charge == -1:
		return "-"
	case charge > 0:
		return fmt.Sprintf("%d+", charge)
	default:
		return fmt.Sprintf("%d-", -charge)
	}
}

// ChargeLabel formats a formal charge for display ("+", "2-", "").
func ChargeLabel(charge int) string {
	return chargeSuffix(charge)
}

// NetCharge returns the sum of formal charges.
func (m *Molecule) NetCharge() int {
	total := 0
	for i := range m.Atoms {
		total += m.Atoms[i].Charge
	}
	return total
}

// MolecularWeight returns the average molecular mass in g/mol. Atoms with
// an explicit isotope contribute their mass number.
func (m *Molecule) MolecularWeight() float64 {
	hydrogen, _ := LookupNumber(1)
	total := 0.0
	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.Isotope > 0 {
			total += float64(a.Isotope)
		} else if e, ok := LookupNumber(a.Number); ok {
			total += e.Mass
		}
		total += float64(a.TotalH()) * hydrogen.Mass
	}
	return total
}

// HeavyAtomCount returns the number of non-hydrogen atoms.
func (m *Molecule) HeavyAtomCount() int {
	n := 0
	for i := range m.Atoms {
		if m.Atoms[i].Number != 1 {
			n++
		}
	}
	return n
}
