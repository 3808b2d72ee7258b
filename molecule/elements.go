/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package molecule

// Element holds periodic table data for a single element.
type Element struct {
	Number int
	Symbol string
	Mass   float64 // standard atomic weight, or mass number of the longest-lived isotope
}

// elements is indexed by atomic number. Index 0 is the wildcard atom '*'.
var elements = []Element{
	{0, "*", 0},
	{1, "H", 1.008}, {2, "He", 4.0026}, {3, "Li", 6.94}, {4, "Be", 9.0122},
	{5, "B", 10.81}, {6, "C", 12.011}, {7, "N", 14.007}, {8, "O", 15.999},
	{9, "F", 18.998}, {10, "Ne", 20.180}, {11, "Na", 22.990}, {12, "Mg", 24.305},
	{13, "Al", 26.982}, {14, "Si", 28.085}, {15, "P", 30.974}, {16, "S", 32.06},
	{17, "Cl", 35.45}, {18, "Ar", 39.948}, {19, "K", 39.098}, {20, "Ca", 40.078},
	{21, "Sc", 44.956}, {22, "Ti", 47.867}, {23, "V", 50.942}, {24, "Cr", 51.996},
	{25, "Mn", 54.938}, {26, "Fe", 55.845}, {27, "Co", 58.933}, {28, "Ni", 58.693},
	{29, "Cu", 63.546}, {30, "Zn", 65.38}, {31, "Ga", 69.723}, {32, "Ge", 72.630},
	{33, "As", 74.922}, {34, "Se", 78.971}, {35, "Br", 79.904}, {36, "Kr", 83.798},
	{37, "Rb", 85.468}, {38, "Sr", 87.62}, {39, "Y", 88.906}, {40, "Zr", 91.224},
	{41, "Nb", 92.906}, {42, "Mo", 95.95}, {43, "Tc", 98}, {44, "Ru", 101.07},
	{45, "Rh", 102.91}, {46, "Pd", 106.42}, {47, "Ag", 107.87}, {48, "Cd", 112.41},
	{49, "In", 114.82}, {50, "Sn", 118.71}, {51, "Sb", 121.76}, {52, "Te", 127.60},
	{53, "I", 126.90}, {54, "Xe", 131.29}, {55, "Cs", 132.91}, {56, "Ba", 137.33},
	{57, "La", 138.91}, {58, "Ce", 140.12}, {59, "Pr", 140.91}, {60, "Nd", 144.24},
	{61, "Pm", 145}, {62, "Sm", 150.36}, {63, "Eu", 151.96}, {64, "Gd", 157.25},
	{65, "Tb", 158.93}, {66, "Dy", 162.50}, {67, "Ho", 164.93}, {68, "Er", 167.26},
	{69, "Tm", 168.93}, {70, "Yb", 173.05}, {71, "Lu", 174.97}, {72, "Hf", 178.49},
	{73, "Ta", 180.95}, {74, "W", 183.84}, {75, "Re", 186.21}, {76, "Os", 190.23},
	{77, "Ir", 192.22}, {78, "Pt", 195.08}, {79, "Au", 196.97}, {80, "Hg", 200.59},
	{81, "Tl", 204.38}, {82, "Pb", 207.2}, {83, "Bi", 208.98}, {84, "Po", 209},
	{85, "At", 210}, {86, "Rn", 222}, {87, "Fr", 223}, {88, "Ra", 226},
	{89, "Ac", 227}, {90, "Th", 232.04}, {91, "Pa", 231.04}, {92, "U", 238.03},
	{93, "Np", 237}, {94, "Pu", 244}, {95, "Am", 243}, {96, "Cm", 247},
	{97, "Bk", 247}, {98, "Cf", 251}, {99, "Es", 252}, {100, "Fm", 257},
	{101, "Md", 258}, {102, "No", 259}, {103, "Lr", 266}, {104, "Rf", 267},
	{105, "Db", 268}, {106, "Sg", 269}, {107, "Bh", 270}, {108, "Hs", 277},
	{109, "Mt", 278}, {110, "Ds", 281}, {111, "Rg", 282}, {112, "Cn", 285},
	{113, "Nh", 286}, {114, "Fl", 289}, {115, "Mc", 290}, {116, "Lv", 293},
	{117, "Ts", 294}, {118, "Og", 294},
}

var bySymbol = func() map[string]Element {
	m := make(map[string]Element, len(elements))
	for _, e := range elements {
		m[e.Symbol] = e
	}
	return m
}()

// LookupSymbol returns the element with the given capitalised symbol.
func LookupSymbol(symbol string) (Element, bool) {
	e, ok := bySymbol[symbol]
	return e, ok
}

// LookupNumber returns the element with the given atomic number.
func LookupNumber(n int) (Element, bool) {
	if n < 0 || n >= len(elements) {
		return Element{}, false
	}
	return elements[n], true
}

// defaultValences lists the allowed valences of elements that may be
// written without brackets, in ascending order.
var defaultValences = map[int][]int{
	5:  {3},
	6:  {4},
	7:  {3, 5},
	8:  {2},
	9:  {1},
	15: {3, 5},
	16: {2, 4, 6},
	17: {1},
	35: {1},
	53: {1},
}

// valenceElectrons holds the outer shell electron count of the main group
// elements that carry a valence model.
var valenceElectrons = map[int]int{5: 3, 6: 4, 7: 5, 8: 6, 9: 7, 15: 5, 16: 6, 17: 7, 35: 7, 53: 7}

// chargedValences returns the valence list of an element adjusted for a
// formal charge using the isoelectronic rule (N+ behaves like C, O+ like N,
// C- like N).
func chargedValences(number, charge int) []int {
	if charge == 0 {
		return defaultValences[number]
	}
	group, ok := valenceElectrons[number]
	if !ok {
		return nil
	}
	electrons := group - charge
	if electrons <= 0 || electrons > 7 {
		return nil
	}
	if electrons <= 4 {
		return []int{electrons}
	}
	base := 8 - electrons
	valences := []int{base}
	if number > 10 {
		for v := base + 2; v <= electrons; v += 2 {
			valences = append(valences, v)
		}
	}
	return valences
}
