/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package depict_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"bennypowers.dev/smidraw/depict"
	"bennypowers.dev/smidraw/layout"
	"bennypowers.dev/smidraw/molecule"
	"bennypowers.dev/smidraw/smiles"
)

func prepared(t *testing.T, smi string) *molecule.Molecule {
	t.Helper()
	m, err := smiles.Parse(smi)
	if err != nil {
		t.Fatalf("Parse(%q): %v", smi, err)
	}
	if err := m.Kekulize(); err != nil {
		t.Fatalf("Kekulize(%q): %v", smi, err)
	}
	layout.Compute(m)
	return m
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	return img
}

func countPixels(img image.Image, match func(r, g, b uint32) bool) int {
	n := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if match(r>>8, g>>8, b>>8) {
				n++
			}
		}
	}
	return n
}

func TestRenderDimensions(t *testing.T) {
	for _, size := range []int{1, 50, 400, 1000} {
		data, err := depict.Render(prepared(t, "c1ccccc1"), withSize(size))
		if err != nil {
			t.Fatalf("Render(size %d): %v", size, err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
			t.Errorf("size %d: missing PNG signature", size)
		}
		if got, want := decode(t, data).Bounds(), image.Rect(0, 0, size, size); got != want {
			t.Errorf("bounds = %v, want %v", got, want)
		}
	}
}

func withSize(size int) depict.Options {
	o := depict.DefaultOptions()
	o.Size = size
	return o
}

func TestRenderDrawsSomething(t *testing.T) {
	img := decode(t, mustRender(t, "CCO", depict.DefaultOptions()))

	if r, g, b, _ := img.At(0, 0).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("corner = (%x, %x, %x), want white background", r, g, b)
	}
	if dark := countPixels(img, func(r, g, b uint32) bool { return r < 64 && g < 64 && b < 64 }); dark == 0 {
		t.Error("no dark pixels for the skeleton bonds")
	}
	if red := countPixels(img, func(r, g, b uint32) bool { return r > 180 && g < 90 && b < 90 }); red == 0 {
		t.Error("no red pixels for the oxygen label")
	}
}

func TestRenderMonochrome(t *testing.T) {
	o := depict.DefaultOptions()
	o.ColorAtoms = false
	img := decode(t, mustRender(t, "CCO", o))
	if red := countPixels(img, func(r, g, b uint32) bool { return r > 180 && g < 90 && b < 90 }); red != 0 {
		t.Errorf("%d red pixels in a monochrome drawing", red)
	}
}

func TestRenderBackground(t *testing.T) {
	o := depict.DefaultOptions()
	o.Background = color.RGBA{R: 0x20, G: 0x30, B: 0x40, A: 0xff}
	o.Foreground = color.White
	img := decode(t, mustRender(t, "c1ccccc1O", o))
	r, g, b, _ := img.At(1, 1).RGBA()
	if got, want := [3]uint32{r >> 8, g >> 8, b >> 8}, [3]uint32{0x20, 0x30, 0x40}; got != want {
		t.Errorf("background = %x, want %x", got, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	smi := "CN1C=NC2=C1C(=O)N(C(=O)N2C)C"
	a := mustRender(t, smi, depict.DefaultOptions())
	b := mustRender(t, smi, depict.DefaultOptions())
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same molecule differ")
	}
}

func TestRenderLabelsAndCharges(t *testing.T) {
	for _, smi := range []string{
		"[NH4+]",
		"[Na+].[Cl-]",
		"O",
		"[13CH4]",
		"C[N+](=O)[O-]",
		"*CC",
		"C#N",
		"C=C=C",
	} {
		t.Run(smi, func(t *testing.T) {
			img := decode(t, mustRender(t, smi, depict.DefaultOptions()))
			if ink := countPixels(img, func(r, g, b uint32) bool { return r < 250 || g < 250 || b < 250 }); ink == 0 {
				t.Error("nothing drawn")
			}
		})
	}
}

func TestRenderEmptyMolecule(t *testing.T) {
	data, err := depict.Render(molecule.New(), depict.DefaultOptions())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := decode(t, data)
	if ink := countPixels(img, func(r, g, b uint32) bool { return r < 255 || g < 255 || b < 255 }); ink != 0 {
		t.Errorf("%d pixels drawn for an empty molecule", ink)
	}
}

func TestRenderInvalidOptions(t *testing.T) {
	m := prepared(t, "C")

	for _, size := range []int{0, -5} {
		if _, err := depict.Render(m, withSize(size)); !errors.Is(err, depict.ErrSize) {
			t.Errorf("size %d: error = %v, want ErrSize", size, err)
		}
	}

	o := depict.DefaultOptions()
	o.Padding = 0.5
	if _, err := depict.Render(m, o); err == nil {
		t.Error("expected error for padding 0.5")
	}
}

func TestParseFont(t *testing.T) {
	if _, err := depict.ParseFont([]byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func mustRender(t *testing.T, smi string, o depict.Options) []byte {
	t.Helper()
	data, err := depict.Render(prepared(t, smi), o)
	if err != nil {
		t.Fatalf("Render(%q): %v", smi, err)
	}
	return data
}
