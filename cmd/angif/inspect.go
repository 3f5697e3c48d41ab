package main

import (
	"fmt"

	"github.com/pixeldeck/angif"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.gif>",
		Short: "Print a GIF's container structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, path string) error {
	f, err := angif.OpenRead(path)
	if err != nil {
		return err
	}
	defer f.CloseRead()

	if err := f.Slurp(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %dx%d, %d frame(s)\n", path, f.Width, f.Height, len(f.Frames))
	fmt.Fprintf(out, "  pixel aspect ratio: %.4f\n", f.PixelAspectRatio())
	if f.GlobalColorMap != nil {
		fmt.Fprintf(out, "  global color map: %d colors\n", len(f.GlobalColorMap.Colors))
	} else {
		fmt.Fprintln(out, "  global color map: none")
	}
	if n, ok := f.LoopCount(); ok {
		fmt.Fprintf(out, "  loop count: %d\n", n)
	}

	for i, frame := range f.Frames {
		fmt.Fprintf(out, "  frame %d: %dx%d at (%d,%d), interlace=%v\n",
			i, frame.Desc.Width, frame.Desc.Height, frame.Desc.Left, frame.Desc.Top, frame.Desc.Interlace)
		if frame.Desc.ColorMap != nil {
			fmt.Fprintf(out, "    local color map: %d colors\n", len(frame.Desc.ColorMap.Colors))
		}
		if gcb, ok := frame.GraphicsControl(); ok {
			fmt.Fprintf(out, "    disposal=%d delay=%dcs transparent=%d\n",
				gcb.DisposalMode, gcb.DelayTime, gcb.TransparentColor)
		}
		for _, ext := range frame.Extensions {
			if ext.Function != 0 {
				fmt.Fprintf(out, "    extension 0x%02x (%d bytes)\n", ext.Function, len(ext.Bytes))
			}
		}
	}
	return nil
}
