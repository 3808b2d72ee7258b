/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dominikbraun/graph"
)

// Flowchart is a synthesis or degradation route attached to an entry.
type Flowchart struct {
	Title    string `json:"title,omitempty" yaml:"title" toml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle" toml:"subtitle"`
	Nodes    []Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges    []Edge `json:"edges,omitempty" yaml:"edges" toml:"edges"`
}

// Node is one structure in a flowchart, placed on a grid.
type Node struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Title  string `json:"title" yaml:"title" toml:"title"`
	SMILES string `json:"smiles" yaml:"smiles" toml:"smiles"`
	Detail string `json:"detail,omitempty" yaml:"detail" toml:"detail"`
	Col    int    `json:"col,omitempty" yaml:"col" toml:"col"`
	Row    int    `json:"row,omitempty" yaml:"row" toml:"row"`
}

// Edge connects two flowchart nodes.
type Edge struct {
	From  string `json:"from" yaml:"from" toml:"from"`
	To    string `json:"to" yaml:"to" toml:"to"`
	Label string `json:"label,omitempty" yaml:"label" toml:"label"`
}

// ErrCycle is returned when flowchart edges loop back on themselves.
var ErrCycle = errors.New("flowchart edges form a cycle")

// Order returns node IDs in dependency order. Nodes with no ordering
// constraint between them are sorted by grid column, then row, then ID.
func (f *Flowchart) Order() ([]string, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	nodes := make(map[string]Node, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.ID == "" {
			return nil, errors.New("node without id")
		}
		if strings.ContainsAny(n.ID, `/\`) || n.ID == "." || n.ID == ".." {
			return nil, fmt.Errorf("node id %q is not a valid file name", n.ID)
		}
		if _, dup := nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node %q", n.ID)
		}
		nodes[n.ID] = n
		if err := g.AddVertex(n.ID); err != nil {
			return nil, err
		}
	}

	for _, e := range f.Edges {
		if _, ok := nodes[e.From]; !ok {
			return nil, fmt.Errorf("edge from unknown node %q", e.From)
		}
		if _, ok := nodes[e.To]; !ok {
			return nil, fmt.Errorf("edge to unknown node %q", e.To)
		}
		err := g.AddEdge(e.From, e.To)
		switch {
		case errors.Is(err, graph.ErrEdgeCreatesCycle):
			return nil, fmt.Errorf("%w: %s -> %s", ErrCycle, e.From, e.To)
		case errors.Is(err, graph.ErrEdgeAlreadyExists):
		case err != nil:
			return nil, err
		}
	}

	return graph.StableTopologicalSort(g, func(a, b string) bool {
		na, nb := nodes[a], nodes[b]
		if na.Col != nb.Col {
			return na.Col < nb.Col
		}
		if na.Row != nb.Row {
			return na.Row < nb.Row
		}
		return a < b
	})
}
