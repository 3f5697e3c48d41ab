package main

import (
	"encoding/hex"
	"os"

	"github.com/pixeldeck/angif"
	"github.com/pixeldeck/angif/internal/quantize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// Manifest schema (read with gjson rather than encoding/json/unmarshal
// so an extra field, or a missing optional one, never fails the whole
// build; width, height and each frame's pixelsHex are required):
//
//	{
//	  "width": 10, "height": 10, "loop": 0,
//	  "frames": [
//	    {"delay": 10, "disposal": 2, "transparent": -1,
//	     "dither": "FloydSteinberg", "serpentine": true, "samplefac": 10,
//	     "pixelsHex": "..."}
//	  ]
//	}
//
// pixelsHex is width*height*3 bytes of packed R,G,B, hex-encoded.

func newBuildCmd() *cobra.Command {
	var manifestPath, outputPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a GIF from a JSON manifest of raw pixel frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifestPath == "" || outputPath == "" {
				return errors.New("both --manifest and --output are required")
			}
			return runBuild(manifestPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "path to the JSON manifest (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "path to the GIF file to write (required)")
	return cmd
}

func runBuild(manifestPath, outputPath string) error {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return errors.Wrap(err, "reading manifest")
	}
	if !gjson.ValidBytes(raw) {
		return errors.Errorf("manifest %s is not valid JSON", manifestPath)
	}
	doc := gjson.ParseBytes(raw)

	width := int(doc.Get("width").Int())
	height := int(doc.Get("height").Int())
	if width <= 0 || height <= 0 {
		return errors.New("manifest must set positive width and height")
	}

	out := &angif.File{Width: width, Height: height, ColorResolution: 8}

	for i, frameDoc := range doc.Get("frames").Array() {
		pixelsHex := frameDoc.Get("pixelsHex").String()
		pixels, err := hex.DecodeString(pixelsHex)
		if err != nil {
			return errors.Wrapf(err, "frame %d: decoding pixelsHex", i)
		}
		if len(pixels) != width*height*3 {
			return errors.Errorf("frame %d: pixelsHex decodes to %d bytes, want %d", i, len(pixels), width*height*3)
		}

		samplefac := int(frameDoc.Get("samplefac").Int())
		if samplefac <= 0 {
			samplefac = 10
		}
		method := quantize.Method(frameDoc.Get("dither").String())
		serpentine := frameDoc.Get("serpentine").Bool()

		indexed, cm, err := quantize.Quantize(pixels, width, height, samplefac, method, serpentine)
		if err != nil {
			return errors.Wrapf(err, "frame %d: quantizing", i)
		}

		frame := &angif.Frame{
			Desc:   angif.ImageDescriptor{Width: width, Height: height, ColorMap: cm},
			Raster: indexed,
		}
		appended, err := out.AppendFrame(frame)
		if err != nil {
			return errors.Wrapf(err, "frame %d: appending", i)
		}

		transparent := angif.NoTransparentColor
		if frameDoc.Get("transparent").Exists() {
			transparent = int(frameDoc.Get("transparent").Int())
		}
		appended.SetGraphicsControl(angif.GraphicsControlBlock{
			DisposalMode:     angif.DisposalMode(frameDoc.Get("disposal").Int()),
			DelayTime:        int(frameDoc.Get("delay").Int()),
			TransparentColor: transparent,
		})
	}

	if loop := doc.Get("loop"); loop.Exists() {
		out.SetLoopCount(int(loop.Int()))
	}

	wf, err := angif.OpenWrite(outputPath, false)
	if err != nil {
		return err
	}
	defer wf.CloseWrite()
	wf.Width, wf.Height, wf.ColorResolution = out.Width, out.Height, out.ColorResolution
	wf.Frames = out.Frames
	if len(out.Frames) > 0 {
		wf.GlobalColorMap = out.Frames[0].Desc.ColorMap
	}
	return wf.Spew()
}
