/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package settings layers the config file, SMIDRAW_* environment variables
// and command-line flags through viper, in increasing order of precedence.
package settings

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/smidraw/config"
	"bennypowers.dev/smidraw/depict"
	smifs "bennypowers.dev/smidraw/fs"
)

// EnvPrefix prefixes environment overrides, e.g. SMIDRAW_SIZE.
const EnvPrefix = "SMIDRAW"

// Keys shared by the config file, environment and flags.
const (
	KeyOutput     = "output"
	KeySize       = "size"
	KeyPadding    = "padding"
	KeyBondWidth  = "bondWidth"
	KeyBackground = "background"
	KeyForeground = "foreground"
	KeyFontPath   = "fontPath"
	KeyColorAtoms = "colorAtoms"
	KeyJobs       = "jobs"
	KeyCatalogs   = "catalogs"
)

// Load reads the config file (configPath, or .config/smidraw.* under
// rootDir when empty) and installs its values as viper defaults.
func Load(filesystem smifs.FileSystem, rootDir, configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(filesystem, configPath)
		if err == nil {
			cfg = cfg.Merge(config.Default())
		}
	} else {
		cfg, err = config.LoadOrDefault(filesystem, rootDir)
	}
	if err != nil {
		return err
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyOutput, cfg.Output)
	viper.SetDefault(KeySize, cfg.Size)
	viper.SetDefault(KeyPadding, cfg.Padding)
	viper.SetDefault(KeyBondWidth, cfg.BondWidth)
	viper.SetDefault(KeyBackground, cfg.Background)
	viper.SetDefault(KeyForeground, cfg.Foreground)
	viper.SetDefault(KeyFontPath, cfg.FontPath)
	viper.SetDefault(KeyColorAtoms, cfg.ColorAtoms == nil || *cfg.ColorAtoms)
	viper.SetDefault(KeyJobs, cfg.Jobs)
	viper.SetDefault(KeyCatalogs, cfg.Catalogs)
	return nil
}

// BindFlags binds the named flags of cmd, when defined, so that an
// explicitly set flag overrides the environment and the config file.
func BindFlags(cmd *cobra.Command, keys ...string) error {
	for _, key := range keys {
		flag := cmd.Flags().Lookup(key)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", key, err)
		}
	}
	return nil
}

// Current returns the effective configuration.
func Current() *config.Config {
	colorAtoms := viper.GetBool(KeyColorAtoms)
	return &config.Config{
		Output:     viper.GetString(KeyOutput),
		Size:       viper.GetInt(KeySize),
		Padding:    viper.GetFloat64(KeyPadding),
		BondWidth:  viper.GetFloat64(KeyBondWidth),
		Background: viper.GetString(KeyBackground),
		Foreground: viper.GetString(KeyForeground),
		FontPath:   viper.GetString(KeyFontPath),
		ColorAtoms: &colorAtoms,
		Jobs:       viper.GetInt(KeyJobs),
		Catalogs:   viper.GetStringSlice(KeyCatalogs),
	}
}

// DepictOptions returns drawing options for the effective configuration.
func DepictOptions(filesystem smifs.FileSystem) (depict.Options, error) {
	return Current().DepictOptions(filesystem)
}

// Reset clears all layered values. Tests call it between runs.
func Reset() {
	viper.Reset()
}
