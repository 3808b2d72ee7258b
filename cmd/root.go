/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for smidraw.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bennypowers.dev/smidraw/cmd/batch"
	"bennypowers.dev/smidraw/cmd/describe"
	"bennypowers.dev/smidraw/cmd/mcp"
	"bennypowers.dev/smidraw/cmd/serve"
	"bennypowers.dev/smidraw/cmd/version"
	"bennypowers.dev/smidraw/convert"
	"bennypowers.dev/smidraw/fs"
	"bennypowers.dev/smidraw/internal/logger"
	"bennypowers.dev/smidraw/internal/settings"
)

var rootCmd = &cobra.Command{
	Use:   "smidraw SMILES",
	Short: "Draw a 2D structure diagram from a SMILES string",
	Long: `smidraw parses a SMILES string, computes 2D coordinates and writes a
square PNG depiction of the molecule.

Examples:
  smidraw CCO
  smidraw -o out/aspirin.png -s 600 'CC(=O)Oc1ccccc1C(=O)O'`,
	Args:              cobra.ExactArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              run,
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: .config/smidraw.{yaml,yml,json,toml})")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print warnings and errors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug output")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	rootCmd.Flags().StringP("output", "o", convert.DefaultOutput, "Output PNG path")
	rootCmd.Flags().IntP("size", "s", convert.DefaultSize, "Image width and height in pixels")

	rootCmd.AddCommand(batch.Cmd)
	rootCmd.AddCommand(describe.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func setup(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	switch {
	case quiet:
		logger.SetLevel(logger.LevelQuiet)
	case verbose:
		logger.SetLevel(logger.LevelDebug)
	}

	configPath, _ := cmd.Flags().GetString("config")
	if err := settings.Load(fs.NewOSFileSystem(), ".", configPath); err != nil {
		return err
	}
	return settings.BindFlags(cmd, settings.KeyOutput, settings.KeySize, settings.KeyJobs)
}

func run(cmd *cobra.Command, args []string) error {
	filesystem := fs.NewOSFileSystem()
	cfg := settings.Current()

	opts, err := cfg.DepictOptions(filesystem)
	if err != nil {
		return err
	}

	path, err := convert.New(filesystem, opts).Convert(args[0], cfg.Output, cfg.Size)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved 2D structure to %s\n", path)
	return nil
}
