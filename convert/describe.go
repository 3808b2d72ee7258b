/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"bennypowers.dev/smidraw/smiles"
)

// Description summarises a parsed molecule.
type Description struct {
	SMILES     string  `json:"smiles"`
	Formula    string  `json:"formula"`
	Weight     float64 `json:"molecularWeight"`
	Charge     int     `json:"charge"`
	Atoms      int     `json:"atoms"`
	HeavyAtoms int     `json:"heavyAtoms"`
	Bonds      int     `json:"bonds"`
	Rings      int     `json:"rings"`
	Fragments  int     `json:"fragments"`
}

// Describe parses smi and reports its composition without computing a
// layout.
func Describe(smi string) (*Description, error) {
	m, err := smiles.Parse(smi)
	if err != nil {
		return nil, err
	}
	return &Description{
		SMILES:     smi,
		Formula:    m.Formula(),
		Weight:     m.MolecularWeight(),
		Charge:     m.NetCharge(),
		Atoms:      m.NumAtoms(),
		HeavyAtoms: m.HeavyAtomCount(),
		Bonds:      m.NumBonds(),
		Rings:      len(m.Rings()),
		Fragments:  len(m.Fragments()),
	}, nil
}
