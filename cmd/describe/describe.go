/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package describe provides the describe command for smidraw.
package describe

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"bennypowers.dev/smidraw/convert"
	"bennypowers.dev/smidraw/molecule"
)

// Cmd is the describe cobra command.
var Cmd = &cobra.Command{
	Use:   "describe SMILES...",
	Short: "Print the formula and composition of molecules",
	Long: `Parse each SMILES string and print its molecular formula (Hill order),
molecular weight, atom, bond, ring and fragment counts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(12)
	valueStyle = lipgloss.NewStyle()
)

func run(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("error reading format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	descriptions := make([]*convert.Description, 0, len(args))
	for _, smi := range args {
		d, err := convert.Describe(smi)
		if err != nil {
			return err
		}
		descriptions = append(descriptions, d)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(out, descriptions)
	}
	for i, d := range descriptions {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, renderText(d))
	}
	return nil
}

func writeJSON(w io.Writer, descriptions []*convert.Description) error {
	var v any = descriptions
	if len(descriptions) == 1 {
		v = descriptions[0]
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling description: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderText(d *convert.Description) string {
	charge := "0"
	if d.Charge != 0 {
		charge = molecule.ChargeLabel(d.Charge)
	}
	rows := [][2]string{
		{"Formula", d.Formula},
		{"Weight", fmt.Sprintf("%.3f g/mol", d.Weight)},
		{"Charge", charge},
		{"Atoms", fmt.Sprintf("%d (%d heavy)", d.Atoms, d.HeavyAtoms)},
		{"Bonds", fmt.Sprint(d.Bonds)},
		{"Rings", fmt.Sprint(d.Rings)},
		{"Fragments", fmt.Sprint(d.Fragments)},
	}
	lines := []string{titleStyle.Render(d.SMILES)}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(row[0]),
			valueStyle.Render(row[1]),
		))
	}
	return strings.Join(lines, "\n")
}
