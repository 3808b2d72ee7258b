/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package describe

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"bennypowers.dev/smidraw/convert"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	Cmd.SetOut(&buf)
	Cmd.SetArgs(args)
	t.Cleanup(func() {
		_ = Cmd.Flags().Set("format", "text")
	})
	err := Cmd.Execute()
	return buf.String(), err
}

func TestDescribe_Text(t *testing.T) {
	out, err := execute(t, "CCO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"CCO", "Formula", "C2H6O", "46.069 g/mol", "3 heavy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDescribe_JSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "[NH4+]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var d convert.Description
	if err := json.Unmarshal([]byte(out), &d); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if d.Formula != "H4N+" || d.Charge != 1 {
		t.Errorf("got formula %q charge %d", d.Formula, d.Charge)
	}
}

func TestDescribe_JSONMany(t *testing.T) {
	out, err := execute(t, "--format", "json", "C", "O")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ds []convert.Description
	if err := json.Unmarshal([]byte(out), &ds); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(ds) != 2 || ds[0].Formula != "CH4" || ds[1].Formula != "H2O" {
		t.Errorf("unexpected descriptions %+v", ds)
	}
}

func TestDescribe_Errors(t *testing.T) {
	if _, err := execute(t, "C1CC"); convert.Message(err) != "Invalid SMILES string" {
		t.Errorf("expected invalid SMILES error, got %v", err)
	}
	if _, err := execute(t, "--format", "xml", "C"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRenderText_Charge(t *testing.T) {
	text := renderText(&convert.Description{SMILES: "[O-2]", Formula: "O2-", Charge: -2})
	if !strings.Contains(text, "2-") {
		t.Errorf("charge not shown:\n%s", text)
	}
}
