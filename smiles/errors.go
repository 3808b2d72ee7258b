/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package smiles

import (
	"errors"
	"fmt"
)

// ErrInvalidSmiles is wrapped by every error Parse returns.
var ErrInvalidSmiles = errors.New("invalid SMILES string")

// SyntaxError reports a malformed SMILES string and the byte offset where
// parsing stopped.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d in %q", e.Msg, e.Pos, e.Input)
}

// Unwrap lets errors.Is match ErrInvalidSmiles.
func (e *SyntaxError) Unwrap() error {
	return ErrInvalidSmiles
}
