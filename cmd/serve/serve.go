/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package serve provides the serve command for smidraw.
package serve

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/smidraw/fs"
	"bennypowers.dev/smidraw/internal/settings"
	"bennypowers.dev/smidraw/server"
)

// Cmd is the serve cobra command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve PNG depictions over HTTP",
	Long: `Start an HTTP server that renders molecules on request.

Endpoints:
  GET  /render?smiles=CCO&size=400   image/png
  POST /render {"smiles": "CCO"}     image/png
  GET  /describe?smiles=CCO          JSON composition
  GET  /healthz                      JSON status

Invalid SMILES are answered with 400 and {"error": "Invalid SMILES string"}.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("addr", "a", "localhost:8080", "Listen address")
	Cmd.Flags().IntP("size", "s", 400, "Default image size when a request gives none")
}

func run(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	filesystem := fs.NewOSFileSystem()
	opts, err := settings.DepictOptions(filesystem)
	if err != nil {
		return err
	}
	return server.New(filesystem, opts).ListenAndServe(cmd.Context(), addr)
}
