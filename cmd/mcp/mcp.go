/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcp provides the mcp command for smidraw.
package mcp

import (
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/smidraw/fs"
	"bennypowers.dev/smidraw/internal/logger"
	"bennypowers.dev/smidraw/internal/settings"
	"bennypowers.dev/smidraw/mcpserver"
)

// Cmd is the mcp cobra command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run a Model Context Protocol server on stdio",
	Long: `Serve the render_smiles and describe_smiles tools to an MCP client over
standard input and output. Logging is disabled while the server runs.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	logger.SetOutput(io.Discard)

	filesystem := fs.NewOSFileSystem()
	opts, err := settings.DepictOptions(filesystem)
	if err != nil {
		return err
	}
	return mcpserver.Run(cmd.Context(), filesystem, opts)
}
