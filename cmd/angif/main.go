// Command angif is the external collaborator around the angif
// library: it never belongs inside the codec itself, but something
// has to turn raw pixels and a JSON manifest into a GIF on disk, and
// something has to let a human inspect one that already exists.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "angif",
		Short: "Inspect and build GIF files",
		Long: `angif is a CLI around the angif GIF codec library: it inspects the
structure of an existing GIF (dimensions, frames, color maps, graphic
control blocks) and builds new GIFs from raw pixel data quantized
through a NeuQuant palette.`,
	}

	root.AddCommand(newInspectCmd())
	root.AddCommand(newBuildCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
