/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/smidraw/catalog"
	"bennypowers.dev/smidraw/internal/mapfs"
	"bennypowers.dev/smidraw/testutil"
)

func TestLoad_JSONC(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/catalog", "/project")

	entries, err := catalog.Load(mfs, "/project/chemicals/chemicals.json")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "ethanol", entries[0].ID)
	assert.Equal(t, "C2H6O", entries[0].Formula)
	assert.Equal(t, "/project/chemicals/chemicals.json", entries[0].Source)

	// id derived from the name
	assert.Equal(t, "acetic-acid", entries[1].ID)
	assert.Equal(t, "Vinegar is about 5% acetic acid.", entries[1].Notes)

	require.NotNil(t, entries[2].Flowchart)
	assert.Len(t, entries[2].Flowchart.Nodes, 3)
}

func TestLoad_YAMLDocument(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/catalog", "/project")

	entries, err := catalog.Load(mfs, "/project/chemicals/organic/aromatics.yaml")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "benzene", entries[0].ID)
	assert.Equal(t, "caffeine", entries[1].ID)
	assert.Equal(t, "Caffeine", entries[1].Name)
}

func TestLoad_TOML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/catalog", "/project")

	entries, err := catalog.Load(mfs, "/project/chemicals/organic/salts.toml")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "table-salt", entries[0].ID)
	assert.Equal(t, "[Na+].[Cl-]", entries[0].SMILES)
}

func TestLoad_NameFromID(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/c.yaml", "- id: sodium-hydroxide\n  smiles: '[Na+].[OH-]'\n", 0644)

	entries, err := catalog.Load(mfs, "/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Sodium Hydroxide", entries[0].Name)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"missing smiles", "/c.yaml", "- id: x\n"},
		{"missing id and name", "/c.yaml", "- smiles: C\n"},
		{"path in id", "/c.yaml", "- id: ../escape\n  smiles: C\n"},
		{"malformed json", "/c.json", "[{"},
		{"unsupported extension", "/c.txt", "CCO"},
		{"flowchart cycle", "/c.yaml", `
- id: loop
  smiles: C
  flowchart:
    nodes:
      - {id: a, smiles: C}
      - {id: b, smiles: CC}
    edges:
      - {from: a, to: b}
      - {from: b, to: a}
`},
		{"flowchart unknown node", "/c.yaml", `
- id: dangling
  smiles: C
  flowchart:
    nodes:
      - {id: a, smiles: C}
    edges:
      - {from: a, to: z}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := mapfs.New()
			mfs.AddFile(tt.path, tt.content, 0644)

			_, err := catalog.Load(mfs, tt.path)
			assert.True(t, errors.Is(err, catalog.ErrCatalog), "got %v", err)
		})
	}
}

func TestLoadAll(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/catalog", "/project")

	entries, err := catalog.LoadAll(mfs, "/project", []string{"chemicals/**/*.{json,yaml,toml}"})
	require.NoError(t, err)

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"ethanol", "acetic-acid", "aspirin", "benzene", "caffeine", "table-salt"}, ids)
}

func TestLoadAll_Errors(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/catalog", "/project")

	_, err := catalog.LoadAll(mfs, "/project", []string{"dupes/*.yaml"})
	assert.ErrorIs(t, err, catalog.ErrCatalog)
	assert.ErrorContains(t, err, "duplicate id")

	_, err = catalog.LoadAll(mfs, "/project", []string{"nothing/**/*.json"})
	assert.ErrorIs(t, err, catalog.ErrCatalog)

	_, err = catalog.LoadAll(mfs, "/project", []string{"missing.json"})
	assert.Error(t, err)
}

func TestFlowchartOrder(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/catalog", "/project")

	entries, err := catalog.Load(mfs, "/project/chemicals/chemicals.json")
	require.NoError(t, err)

	order, err := entries[2].Flowchart.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"phenol", "salicylic", "acetylation"}, order)
}

func TestFlowchartOrder_GridTiebreak(t *testing.T) {
	f := &catalog.Flowchart{Nodes: []catalog.Node{
		{ID: "c", Col: 2, Row: 1},
		{ID: "b", Col: 1, Row: 2},
		{ID: "a", Col: 1, Row: 2},
		{ID: "d", Col: 1, Row: 1},
	}}
	order, err := f.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "b", "c"}, order)
}

func TestFlowchartOrder_Cycle(t *testing.T) {
	f := &catalog.Flowchart{
		Nodes: []catalog.Node{{ID: "a"}},
		Edges: []catalog.Edge{{From: "a", To: "a"}},
	}
	_, err := f.Order()
	assert.ErrorIs(t, err, catalog.ErrCycle)
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Ethanol":               "ethanol",
		"Acetic Acid (glacial)": "acetic-acid-glacial",
		"  2,4-Dinitrophenol ":  "2-4-dinitrophenol",
		"Ångström Öl":           "ångström-öl",
		"!!!":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, catalog.Slug(in), in)
	}
}

func TestFilter(t *testing.T) {
	entries := []catalog.Entry{
		{ID: "ethanol", Name: "Ethanol", Formula: "C2H6O", SMILES: "CCO"},
		{ID: "benzene", Name: "Benzene", SMILES: "c1ccccc1"},
		{ID: "caffeine", Name: "Caffeine", Formula: "C8H10N4O2", SMILES: "CN1C=NC2=C1C(=O)N(C(=O)N2C)C"},
	}

	assert.Len(t, catalog.Filter(entries, ""), 3)
	assert.Len(t, catalog.Filter(entries, "ETHAN"), 1)
	assert.Len(t, catalog.Filter(entries, "c1ccc"), 1)
	assert.Len(t, catalog.Filter(entries, "n4o2"), 1)
	assert.Empty(t, catalog.Filter(entries, "xenon"))
}
