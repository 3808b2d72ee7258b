/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package batch renders whole catalogs into a directory of PNG files.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/smidraw/catalog"
	"bennypowers.dev/smidraw/convert"
	"bennypowers.dev/smidraw/depict"
	smifs "bennypowers.dev/smidraw/fs"
	"bennypowers.dev/smidraw/internal/logger"
)

// IndexFile is the name of the summary written next to the images.
const IndexFile = "index.json"

// ErrFailed is returned when at least one entry could not be rendered.
var ErrFailed = errors.New("some entries failed to render")

// Options controls a batch run.
type Options struct {
	// OutDir receives one <id>.png per entry and the index.
	OutDir string
	// Size is the image edge length in pixels.
	Size int
	// Jobs bounds concurrent renders. Values below 1 mean one.
	Jobs int
	// Flowcharts also renders flowchart nodes into <id>/<node>.png.
	Flowcharts bool
}

// Rendered describes one successfully drawn entry in the index.
type Rendered struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	SMILES         string      `json:"smiles"`
	Formula        string      `json:"formula"`
	CatalogFormula string      `json:"catalogFormula,omitempty"`
	Weight         float64     `json:"molecularWeight"`
	Image          string      `json:"image"`
	Nodes          []NodeImage `json:"nodes,omitempty"`
}

// NodeImage is a rendered flowchart node.
type NodeImage struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Image string `json:"image"`
}

// Failure records an entry that could not be rendered.
type Failure struct {
	ID     string `json:"id"`
	SMILES string `json:"smiles"`
	Source string `json:"source,omitempty"`
	Error  string `json:"error"`
}

// Result summarises a batch run in catalog order.
type Result struct {
	Rendered []Rendered `json:"rendered"`
	Failed   []Failure  `json:"failed,omitempty"`
}

// Runner renders catalog entries through a shared Converter.
type Runner struct {
	fs   smifs.FileSystem
	conv *convert.Converter
}

// New returns a Runner writing through filesystem with the given drawing
// options.
func New(filesystem smifs.FileSystem, opts depict.Options) *Runner {
	return &Runner{fs: filesystem, conv: convert.New(filesystem, opts)}
}

// Run renders every entry and writes the index. Entry failures do not stop
// the run; they are collected in the result and reported as ErrFailed once
// all entries are done. A cancelled context stops scheduling new entries.
func (r *Runner) Run(ctx context.Context, entries []catalog.Entry, opts Options) (*Result, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: %d", depict.ErrSize, opts.Size)
	}
	jobs := max(opts.Jobs, 1)
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	if err := r.fs.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	rendered := make([]*Rendered, len(entries))
	failures := make([]*Failure, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, entry := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := r.renderEntry(entry, opts)
			if err != nil {
				logger.Warn("%s: %s", entry.ID, convert.Message(err))
				failures[i] = &Failure{
					ID:     entry.ID,
					SMILES: entry.SMILES,
					Source: entry.Source,
					Error:  convert.Message(err),
				}
				return nil
			}
			logger.Debug("rendered %s", out.Image)
			rendered[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Rendered: []Rendered{}}
	for i := range entries {
		switch {
		case rendered[i] != nil:
			result.Rendered = append(result.Rendered, *rendered[i])
		case failures[i] != nil:
			result.Failed = append(result.Failed, *failures[i])
		}
	}

	if err := r.writeIndex(opts.OutDir, result); err != nil {
		return result, err
	}

	logger.Info("Rendered %d of %d entries to %s", len(result.Rendered), len(entries), opts.OutDir)
	if len(result.Failed) > 0 {
		return result, fmt.Errorf("%w: %d of %d", ErrFailed, len(result.Failed), len(entries))
	}
	return result, nil
}

func (r *Runner) renderEntry(entry catalog.Entry, opts Options) (*Rendered, error) {
	image := entry.ID + ".png"
	m, err := r.conv.Save(entry.SMILES, filepath.Join(opts.OutDir, image), opts.Size)
	if err != nil {
		return nil, err
	}

	out := &Rendered{
		ID:             entry.ID,
		Name:           entry.Name,
		SMILES:         entry.SMILES,
		Formula:        m.Formula(),
		CatalogFormula: entry.Formula,
		Weight:         m.MolecularWeight(),
		Image:          image,
	}
	if entry.Formula != "" && entry.Formula != out.Formula {
		logger.Debug("%s: catalog formula %s differs from computed %s", entry.ID, entry.Formula, out.Formula)
	}

	if opts.Flowcharts && entry.Flowchart != nil {
		nodes, err := r.renderFlowchart(entry, opts)
		if err != nil {
			return nil, err
		}
		out.Nodes = nodes
	}
	return out, nil
}

func (r *Runner) renderFlowchart(entry catalog.Entry, opts Options) ([]NodeImage, error) {
	order, err := entry.Flowchart.Order()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]catalog.Node, len(entry.Flowchart.Nodes))
	for _, n := range entry.Flowchart.Nodes {
		byID[n.ID] = n
	}

	images := make([]NodeImage, 0, len(order))
	for _, id := range order {
		node := byID[id]
		image := filepath.ToSlash(filepath.Join(entry.ID, node.ID+".png"))
		if _, err := r.conv.Convert(node.SMILES, filepath.Join(opts.OutDir, image), opts.Size); err != nil {
			return nil, fmt.Errorf("node %s: %w", node.ID, err)
		}
		images = append(images, NodeImage{ID: node.ID, Title: node.Title, Image: image})
	}
	return images, nil
}

func (r *Runner) writeIndex(outDir string, result *Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := r.fs.WriteFile(filepath.Join(outDir, IndexFile), data, 0644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}
