/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package molecule

import "errors"

// Sentinel errors for molecule operations.
var (
	// ErrBond indicates a bond that cannot be added to the graph.
	ErrBond = errors.New("invalid bond")

	// ErrValence indicates an atom whose explicit valence exceeds every
	// valence its element allows.
	ErrValence = errors.New("explicit valence exceeds permitted valence")

	// ErrKekulize indicates that no alternating single/double bond
	// assignment exists for the aromatic system.
	ErrKekulize = errors.New("can't kekulize molecule")
)
