/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package batch provides the batch command for smidraw.
package batch

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	batchlib "bennypowers.dev/smidraw/batch"
	"bennypowers.dev/smidraw/catalog"
	"bennypowers.dev/smidraw/fs"
	"bennypowers.dev/smidraw/internal/settings"
)

// Cmd is the batch cobra command.
var Cmd = &cobra.Command{
	Use:   "batch [catalogs...]",
	Short: "Render every entry of one or more chemical catalogs",
	Long: `Render catalog files into a directory of PNG images, one <id>.png per entry,
and write an index.json listing each entry with its computed formula.

Catalogs are JSON (comments allowed), YAML or TOML lists of entries with
id, name, smiles and optional formula, description and notes. Arguments may
be doublestar globs. Without arguments, the catalogs configured in
.config/smidraw.* are used.

Examples:
  smidraw batch chemicals/chemicals.json
  smidraw batch -d site/img -j 8 'chemicals/**/*.{json,yaml}'
  smidraw batch --filter acid chemicals.json`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("dir", "d", "molecules", "Output directory")
	Cmd.Flags().IntP("size", "s", 400, "Image width and height in pixels")
	Cmd.Flags().IntP("jobs", "j", 4, "Number of concurrent renders")
	Cmd.Flags().String("filter", "", "Only render entries whose name, formula or SMILES contains this text")
	Cmd.Flags().Bool("flowcharts", false, "Also render flowchart nodes into <dir>/<id>/")
}

func run(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("dir")
	filter, _ := cmd.Flags().GetString("filter")
	flowcharts, _ := cmd.Flags().GetBool("flowcharts")

	filesystem := fs.NewOSFileSystem()
	cfg := settings.Current()

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Catalogs
	}
	if len(patterns) == 0 {
		return errors.New("no catalogs given and none configured")
	}

	entries, err := catalog.LoadAll(filesystem, ".", patterns)
	if err != nil {
		return err
	}
	entries = catalog.Filter(entries, filter)
	if len(entries) == 0 {
		return fmt.Errorf("no entries match %q", filter)
	}

	opts, err := cfg.DepictOptions(filesystem)
	if err != nil {
		return err
	}

	_, err = batchlib.New(filesystem, opts).Run(cmd.Context(), entries, batchlib.Options{
		OutDir:     outDir,
		Size:       cfg.Size,
		Jobs:       cfg.Jobs,
		Flowcharts: flowcharts,
	})
	return err
}
