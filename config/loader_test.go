/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"errors"
	"image/color"
	"reflect"
	"testing"

	"bennypowers.dev/smidraw/internal/mapfs"
	"bennypowers.dev/smidraw/testutil"
)

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.Output != "out/molecule.png" {
		t.Errorf("expected output 'out/molecule.png', got %q", cfg.Output)
	}
	if cfg.Size != 512 {
		t.Errorf("expected size 512, got %d", cfg.Size)
	}
	if cfg.Padding != 0.1 {
		t.Errorf("expected padding 0.1, got %v", cfg.Padding)
	}
	if cfg.ColorAtoms == nil || *cfg.ColorAtoms {
		t.Errorf("expected colorAtoms false, got %v", cfg.ColorAtoms)
	}
	if cfg.Jobs != 8 {
		t.Errorf("expected jobs 8, got %d", cfg.Jobs)
	}
	if !reflect.DeepEqual(cfg.Catalogs, []string{"catalogs/*.json"}) {
		t.Errorf("unexpected catalogs %v", cfg.Catalogs)
	}
}

func TestLoad_JSONWithComments(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/json", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Size != 256 {
		t.Errorf("expected size 256, got %d", cfg.Size)
	}
	if cfg.BondWidth != 0.05 {
		t.Errorf("expected bondWidth 0.05, got %v", cfg.BondWidth)
	}
	if cfg.Foreground != "white" {
		t.Errorf("expected foreground 'white', got %q", cfg.Foreground)
	}
}

func TestLoad_TOML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/toml", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "renders/mol.png" {
		t.Errorf("expected output 'renders/mol.png', got %q", cfg.Output)
	}
	if cfg.Size != 300 {
		t.Errorf("expected size 300, got %d", cfg.Size)
	}
	if cfg.ColorAtoms == nil || !*cfg.ColorAtoms {
		t.Errorf("expected colorAtoms true, got %v", cfg.ColorAtoms)
	}
	if len(cfg.Catalogs) != 1 || cfg.Catalogs[0] != "chem/**/*.yaml" {
		t.Errorf("unexpected catalogs %v", cfg.Catalogs)
	}
}

func TestLoad_ExtensionPriority(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/precedence", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Size != 111 {
		t.Errorf("expected YAML to win with size 111, got %d", cfg.Size)
	}
}

func TestLoad_NoConfig(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/empty", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}

	def, err := LoadOrDefault(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(def, Default()) {
		t.Errorf("expected defaults, got %+v", def)
	}
}

func TestLoad_Invalid(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/invalid", "/project")

	if _, err := Load(mfs, "/project"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := LoadOrDefault(mfs, "/project"); err == nil {
		t.Error("expected LoadOrDefault to report the decode error")
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/smidraw.ini", "size=1", 0644)

	if _, err := LoadFile(mfs, "/project/smidraw.ini"); err == nil {
		t.Fatal("expected error for .ini")
	}
}

func TestLoadOrDefault_Merges(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/json", "/project")

	cfg, err := LoadOrDefault(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Size != 256 {
		t.Errorf("expected configured size 256, got %d", cfg.Size)
	}
	if cfg.Output != "molecule.png" {
		t.Errorf("expected default output, got %q", cfg.Output)
	}
	if cfg.Jobs != DefaultJobs {
		t.Errorf("expected default jobs, got %d", cfg.Jobs)
	}
}

func TestDepictOptions(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/yaml", "/project")
	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatal(err)
	}

	opts, err := cfg.DepictOptions(mfs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Size != 512 {
		t.Errorf("expected size 512, got %d", opts.Size)
	}
	if opts.ColorAtoms {
		t.Error("expected colorAtoms disabled")
	}
	if got, want := opts.Background, (color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}); got != want {
		t.Errorf("background = %v, want %v", got, want)
	}
	if got, want := opts.Foreground, (color.NRGBA{R: 0, G: 0, B: 0x80, A: 0xff}); got != want {
		t.Errorf("foreground = %v, want %v", got, want)
	}
}

func TestDepictOptions_Errors(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/fonts/broken.ttf", "not a font", 0644)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad background", Config{Background: "not-a-colour"}},
		{"bad foreground", Config{Foreground: "#12"}},
		{"missing font", Config{FontPath: "/fonts/missing.ttf"}},
		{"broken font", Config{FontPath: "/fonts/broken.ttf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.DepictOptions(mfs); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	got, err := ParseColor("red")
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.NRGBA{R: 255, A: 255}); got != want {
		t.Errorf("ParseColor(red) = %v, want %v", got, want)
	}

	if _, err := ParseColor("nope"); !errors.Is(err, ErrColor) {
		t.Errorf("expected ErrColor, got %v", err)
	}
}

func TestExpandPaths(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/catalogs/a.json", "[]", 0644)
	mfs.AddFile("/project/catalogs/b.json", "[]", 0644)
	mfs.AddFile("/project/catalogs/nested/c.yaml", "[]", 0644)
	mfs.AddFile("/project/catalogs/notes.txt", "", 0644)

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "simple glob",
			patterns: []string{"catalogs/*.json"},
			want:     []string{"/project/catalogs/a.json", "/project/catalogs/b.json"},
		},
		{
			name:     "doublestar",
			patterns: []string{"catalogs/**/*.yaml"},
			want:     []string{"/project/catalogs/nested/c.yaml"},
		},
		{
			name:     "braces",
			patterns: []string{"catalogs/**/*.{json,yaml}"},
			want: []string{
				"/project/catalogs/a.json",
				"/project/catalogs/b.json",
				"/project/catalogs/nested/c.yaml",
			},
		},
		{
			name:     "literal path passes through",
			patterns: []string{"catalogs/missing.json"},
			want:     []string{"/project/catalogs/missing.json"},
		},
		{
			name:     "duplicates removed",
			patterns: []string{"catalogs/a.json", "catalogs/*.json"},
			want:     []string{"/project/catalogs/a.json", "/project/catalogs/b.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPaths(mfs, "/project", tt.patterns)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpandPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	mfs := mapfs.New()
	content := testutil.LoadFixtureFile(t, "fixtures/config/toml/.config/smidraw.toml")
	mfs.AddFile("/etc/smidraw/custom.toml", string(content), 0644)

	cfg, err := LoadFile(mfs, "/etc/smidraw/custom.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Size != 300 {
		t.Errorf("expected size 300, got %d", cfg.Size)
	}
}
