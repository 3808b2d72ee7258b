/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcpserver exposes SMILES rendering as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/smidraw/convert"
	"bennypowers.dev/smidraw/depict"
	smifs "bennypowers.dev/smidraw/fs"
	"bennypowers.dev/smidraw/internal/version"
)

// Name identifies the server to MCP clients.
const Name = "smidraw"

// RenderInput is the argument of the render_smiles tool.
type RenderInput struct {
	SMILES string `json:"smiles" jsonschema:"SMILES string of the molecule to draw"`
	Output string `json:"output,omitempty" jsonschema:"PNG path to write; the image is returned inline when empty"`
	Size   int    `json:"size,omitempty" jsonschema:"image width and height in pixels"`
}

// RenderOutput is the structured result of render_smiles.
type RenderOutput struct {
	Path    string `json:"path,omitempty"`
	Formula string `json:"formula"`
	Size    int    `json:"size"`
}

// DescribeInput is the argument of the describe_smiles tool.
type DescribeInput struct {
	SMILES string `json:"smiles" jsonschema:"SMILES string of the molecule to describe"`
}

type tools struct {
	conv        *convert.Converter
	defaultSize int
}

// New returns an MCP server with the render_smiles and describe_smiles tools.
// Files are written through filesystem.
func New(filesystem smifs.FileSystem, opts depict.Options) *mcp.Server {
	t := &tools{conv: convert.New(filesystem, opts), defaultSize: opts.Size}
	if t.defaultSize <= 0 {
		t.defaultSize = depict.DefaultSize
	}

	server := mcp.NewServer(&mcp.Implementation{Name: Name, Version: version.Get()}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_smiles",
		Description: "Draw a 2D structure diagram of a molecule from its SMILES string as a square PNG.",
	}, t.render)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_smiles",
		Description: "Report the molecular formula, weight and ring count of a SMILES string.",
	}, t.describe)
	return server
}

// Run serves the tools over stdin and stdout until ctx is cancelled or the
// client disconnects.
func Run(ctx context.Context, filesystem smifs.FileSystem, opts depict.Options) error {
	return New(filesystem, opts).Run(ctx, &mcp.StdioTransport{})
}

func (t *tools) render(_ context.Context, _ *mcp.CallToolRequest, in RenderInput) (*mcp.CallToolResult, RenderOutput, error) {
	size := in.Size
	if size == 0 {
		size = t.defaultSize
	}

	if in.Output != "" {
		m, err := t.conv.Save(in.SMILES, in.Output, size)
		if err != nil {
			return nil, RenderOutput{}, errors.New(convert.Message(err))
		}
		return nil, RenderOutput{Path: in.Output, Formula: m.Formula(), Size: size}, nil
	}

	data, m, err := t.conv.Render(in.SMILES, size)
	if err != nil {
		return nil, RenderOutput{}, errors.New(convert.Message(err))
	}
	out := RenderOutput{Formula: m.Formula(), Size: size}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.ImageContent{Data: data, MIMEType: "image/png"},
		},
	}, out, nil
}

func (t *tools) describe(_ context.Context, _ *mcp.CallToolRequest, in DescribeInput) (*mcp.CallToolResult, convert.Description, error) {
	d, err := convert.Describe(in.SMILES)
	if err != nil {
		return nil, convert.Description{}, errors.New(convert.Message(err))
	}
	return nil, *d, nil
}
