/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command smidraw draws 2D structure diagrams of molecules from SMILES.
package main

import (
	"fmt"
	"os"

	"bennypowers.dev/smidraw/cmd"
	"bennypowers.dev/smidraw/convert"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", convert.Message(err))
		os.Exit(1)
	}
}
