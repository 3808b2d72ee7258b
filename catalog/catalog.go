/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package catalog reads collections of named chemicals for batch rendering.
//
// A catalog is a list of entries, either as a top-level array (JSON or
// YAML) or under a "chemicals" key (any format, and the only form TOML
// allows). JSON catalogs may contain comments.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/smidraw/config"
	smifs "bennypowers.dev/smidraw/fs"
)

// ErrCatalog is returned for malformed catalogs.
var ErrCatalog = errors.New("invalid catalog")

// Entry is one chemical in a catalog.
type Entry struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Name        string     `json:"name" yaml:"name" toml:"name"`
	Formula     string     `json:"formula,omitempty" yaml:"formula" toml:"formula"`
	SMILES      string     `json:"smiles" yaml:"smiles" toml:"smiles"`
	Description string     `json:"description,omitempty" yaml:"description" toml:"description"`
	Notes       string     `json:"notes,omitempty" yaml:"notes" toml:"notes"`
	Flowchart   *Flowchart `json:"flowchart,omitempty" yaml:"flowchart" toml:"flowchart"`

	// Source is the catalog file the entry was read from.
	Source string `json:"-" yaml:"-" toml:"-"`
}

type document struct {
	Chemicals []Entry `json:"chemicals" yaml:"chemicals" toml:"chemicals"`
}

// Load reads the catalog at path and normalizes its entries.
func Load(filesystem smifs.FileSystem, path string) ([]Entry, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	var doc document
	if err := config.Decode(path, data, &doc); err == nil && doc.Chemicals != nil {
		entries = doc.Chemicals
	} else if err := config.Decode(path, data, &entries); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCatalog, path, err)
	}

	for i := range entries {
		entries[i].Source = path
		if err := entries[i].normalize(); err != nil {
			return nil, fmt.Errorf("%w %s: entry %d: %w", ErrCatalog, path, i, err)
		}
	}
	return entries, nil
}

// LoadAll expands patterns relative to rootDir and loads every matching
// catalog. Entry IDs must be unique across all files.
func LoadAll(filesystem smifs.FileSystem, rootDir string, patterns []string) ([]Entry, error) {
	paths, err := config.ExpandPaths(filesystem, rootDir, patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", ErrCatalog, strings.Join(patterns, ", "))
	}

	seen := make(map[string]string)
	var all []Entry
	for _, path := range paths {
		entries, err := Load(filesystem, path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if prev, ok := seen[e.ID]; ok {
				return nil, fmt.Errorf("%w: duplicate id %q in %s and %s", ErrCatalog, e.ID, prev, path)
			}
			seen[e.ID] = path
		}
		all = append(all, entries...)
	}
	return all, nil
}

func (e *Entry) normalize() error {
	e.SMILES = strings.TrimSpace(e.SMILES)
	if e.SMILES == "" {
		return errors.New("missing smiles")
	}
	switch {
	case e.ID == "" && e.Name == "":
		return errors.New("missing id and name")
	case e.ID == "":
		e.ID = Slug(e.Name)
	case e.Name == "":
		e.Name = cases.Title(language.English).String(strings.ReplaceAll(e.ID, "-", " "))
	}
	if e.ID == "" {
		return fmt.Errorf("name %q yields an empty id", e.Name)
	}
	if strings.ContainsAny(e.ID, `/\`) || e.ID == "." || e.ID == ".." {
		return fmt.Errorf("id %q is not a valid file name", e.ID)
	}
	if e.Flowchart != nil {
		if _, err := e.Flowchart.Order(); err != nil {
			return fmt.Errorf("flowchart: %w", err)
		}
	}
	return nil
}

// Slug turns a display name into a file-safe identifier:
// "Acetic Acid (glacial)" becomes "acetic-acid-glacial".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range cases.Lower(language.English).String(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// Filter returns the entries whose name, formula or SMILES contains query,
// ignoring case. An empty query matches everything.
func Filter(entries []Entry, query string) []Entry {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		for _, field := range []string{e.Name, e.Formula, e.SMILES} {
			if field != "" && strings.Contains(fold.String(field), q) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
