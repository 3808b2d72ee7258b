/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert turns SMILES strings into PNG depictions on disk.
package convert

import (
	"errors"
	"fmt"
	"path/filepath"

	"bennypowers.dev/smidraw/depict"
	smifs "bennypowers.dev/smidraw/fs"
	"bennypowers.dev/smidraw/internal/logger"
	"bennypowers.dev/smidraw/layout"
	"bennypowers.dev/smidraw/molecule"
	"bennypowers.dev/smidraw/smiles"
)

// Default output settings.
const (
	DefaultOutput = "molecule.png"
	DefaultSize   = depict.DefaultSize
)

// ErrInvalidSmiles is returned when the input cannot be parsed.
var ErrInvalidSmiles = smiles.ErrInvalidSmiles

// ErrKekulize is returned when an aromatic system has no Kekulé form.
var ErrKekulize = molecule.ErrKekulize

// Converter renders molecules with fixed drawing options and writes them
// through a FileSystem.
type Converter struct {
	fs   smifs.FileSystem
	opts depict.Options
}

// New returns a Converter. Zero-valued fields of opts take their defaults,
// except Size, which every call supplies.
func New(filesystem smifs.FileSystem, opts depict.Options) *Converter {
	defaults := depict.DefaultOptions()
	if opts.Padding == 0 {
		opts.Padding = defaults.Padding
	}
	if opts.BondWidth == 0 {
		opts.BondWidth = defaults.BondWidth
	}
	return &Converter{fs: filesystem, opts: opts}
}

// Prepare parses smi and returns a kekulized molecule with 2D coordinates.
func Prepare(smi string) (*molecule.Molecule, error) {
	m, err := smiles.Parse(smi)
	if err != nil {
		return nil, err
	}
	if err := m.Kekulize(); err != nil {
		return nil, err
	}
	layout.Compute(m)
	return m, nil
}

// Render returns the PNG depiction of smi at size×size pixels along with
// the prepared molecule.
func (c *Converter) Render(smi string, size int) ([]byte, *molecule.Molecule, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", depict.ErrSize, size)
	}
	m, err := Prepare(smi)
	if err != nil {
		return nil, nil, err
	}
	opts := c.opts
	opts.Size = size
	data, err := depict.Render(m, opts)
	if err != nil {
		return nil, nil, err
	}
	return data, m, nil
}

// Convert renders smi and writes it to output, creating missing parent
// directories and replacing any existing file. It returns output unchanged.
// Nothing is written when the SMILES is invalid.
func (c *Converter) Convert(smi, output string, size int) (string, error) {
	if _, err := c.Save(smi, output, size); err != nil {
		return "", err
	}
	return output, nil
}

// Save is Convert for callers that also need the prepared molecule.
func (c *Converter) Save(smi, output string, size int) (*molecule.Molecule, error) {
	data, m, err := c.Render(smi, size)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(output); dir != "." && dir != "" {
		if err := c.fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := c.fs.WriteFile(output, data, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}
	logger.Debug("wrote %d bytes to %s", len(data), output)
	return m, nil
}

// SmilesToImage renders smi with the default drawing options and writes the
// PNG to output on the host filesystem.
func SmilesToImage(smi, output string, size int) (string, error) {
	return New(smifs.NewOSFileSystem(), depict.DefaultOptions()).Convert(smi, output, size)
}

// Message returns the user-facing description of a conversion error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSmiles):
		return "Invalid SMILES string"
	case errors.Is(err, ErrKekulize):
		return "Can't kekulize molecule"
	default:
		return err.Error()
	}
}
