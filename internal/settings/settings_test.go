/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package settings_test

import (
	"image/color"
	"testing"

	"github.com/spf13/cobra"

	"bennypowers.dev/smidraw/internal/mapfs"
	"bennypowers.dev/smidraw/internal/settings"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("output", "o", "molecule.png", "")
	cmd.Flags().IntP("size", "s", 400, "")
	return cmd
}

func TestDefaults(t *testing.T) {
	t.Cleanup(settings.Reset)
	mfs := mapfs.New()

	if err := settings.Load(mfs, "/project", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := settings.Current()

	if cfg.Output != "molecule.png" {
		t.Errorf("Output = %q, want molecule.png", cfg.Output)
	}
	if cfg.Size != 400 {
		t.Errorf("Size = %d, want 400", cfg.Size)
	}
	if !*cfg.ColorAtoms {
		t.Error("ColorAtoms = false, want true")
	}
}

func TestPrecedence(t *testing.T) {
	t.Cleanup(settings.Reset)
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/smidraw.yaml", "output: from-config.png\nsize: 100\njobs: 2\ncolorAtoms: false\n", 0644)

	if err := settings.Load(mfs, "/project", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd := newCommand()
	if err := settings.BindFlags(cmd, settings.KeyOutput, settings.KeySize, settings.KeyJobs); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	cfg := settings.Current()
	if cfg.Output != "from-config.png" {
		t.Errorf("Output = %q, config should beat flag defaults", cfg.Output)
	}
	if cfg.Size != 100 {
		t.Errorf("Size = %d, want 100", cfg.Size)
	}
	if cfg.Jobs != 2 {
		t.Errorf("Jobs = %d, want 2", cfg.Jobs)
	}
	if *cfg.ColorAtoms {
		t.Error("ColorAtoms = true, want false")
	}

	t.Setenv("SMIDRAW_SIZE", "200")
	if got := settings.Current().Size; got != 200 {
		t.Errorf("Size = %d, env should beat config", got)
	}

	if err := cmd.Flags().Set("size", "300"); err != nil {
		t.Fatal(err)
	}
	if got := settings.Current().Size; got != 300 {
		t.Errorf("Size = %d, flag should beat env", got)
	}
	if got := settings.Current().Output; got != "from-config.png" {
		t.Errorf("Output = %q, want from-config.png", got)
	}
}

func TestExplicitConfigPath(t *testing.T) {
	t.Cleanup(settings.Reset)
	mfs := mapfs.New()
	mfs.AddFile("/etc/smidraw.toml", "size = 64\nbackground = \"#000\"\n", 0644)

	if err := settings.Load(mfs, "/project", "/etc/smidraw.toml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts, err := settings.DepictOptions(mfs)
	if err != nil {
		t.Fatalf("DepictOptions: %v", err)
	}
	if opts.Size != 64 {
		t.Errorf("Size = %d, want 64", opts.Size)
	}
	if want := (color.NRGBA{A: 255}); opts.Background != want {
		t.Errorf("Background = %v, want %v", opts.Background, want)
	}
}

func TestMissingExplicitConfig(t *testing.T) {
	t.Cleanup(settings.Reset)
	if err := settings.Load(mapfs.New(), "/project", "/nope.yaml"); err == nil {
		t.Error("expected error for a missing explicit config")
	}
}

func TestInvalidDiscoveredConfig(t *testing.T) {
	t.Cleanup(settings.Reset)
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/smidraw.yaml", "size: [not, a, number\n", 0644)

	if err := settings.Load(mfs, "/project", ""); err == nil {
		t.Error("expected error for an undecodable .config/smidraw.yaml")
	}
}
