package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/gogpu/piv"
	"github.com/gogpu/piv/codec"
	"github.com/gogpu/piv/fft"
	"github.com/gogpu/piv/peak"
	"github.com/gogpu/piv/pipeline"
)

type correlateFlags struct {
	window string
	at     string
	output string
	format string
	zoom   int
}

func newCorrelateCmd(g *globalFlags) *cobra.Command {
	f := &correlateFlags{}
	cmd := &cobra.Command{
		Use:   "correlate FRAME_A FRAME_B",
		Short: "Cross-correlate one window pair and save the correlation plane",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCorrelate(cmd, g, f, args[0], args[1])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.window, "window", "w", "64", "window size, N or WxH (powers of two)")
	fl.StringVar(&f.at, "at", "", "window origin X,Y (default: centred)")
	fl.StringVarP(&f.output, "output", "o", "", "image file for the normalised plane")
	fl.StringVar(&f.format, "format", "", "output codec (default: from the file extension)")
	fl.IntVar(&f.zoom, "zoom", 1, "integer magnification of the saved plane")
	return cmd
}

var extFormats = map[string]string{
	".tif": "tiff", ".tiff": "tiff",
	".png": "png",
	".jpg": "jpeg", ".jpeg": "jpeg",
	".bmp": "bmp",
	".pgm": "pnm", ".ppm": "pnm", ".pnm": "pnm",
}

func runCorrelate(cmd *cobra.Command, g *globalFlags, f *correlateFlags, pathA, pathB string) error {
	size, err := parseSize(f.window)
	if err != nil {
		return err
	}
	reg := codec.Default()

	ra, err := os.Open(pathA)
	if err != nil {
		return err
	}
	defer ra.Close()
	rb, err := os.Open(pathB)
	if err != nil {
		return err
	}
	defer rb.Close()
	a, b, err := pipeline.LoadPair[float64](cmd.Context(), reg, ra, rb)
	if err != nil {
		return err
	}

	origin := piv.Pt((a.Width()-size.Width)/2, (a.Height()-size.Height)/2)
	if f.at != "" {
		if origin, err = parsePoint(f.at); err != nil {
			return err
		}
	}
	rect := piv.Rect{Origin: origin, Size: size}
	va, err := piv.NewView(a, rect)
	if err != nil {
		return err
	}
	vb, err := piv.NewView(b, rect)
	if err != nil {
		return err
	}

	e, err := fft.New(size)
	if err != nil {
		return err
	}
	plane, err := fft.CrossCorrelate[float64](e, va, vb)
	if err != nil {
		return err
	}
	re := piv.Evaluate[float64](piv.Cast[float64, complex128](plane))

	peaks, err := peak.Find[float64](re, 2, 2)
	if err != nil {
		return err
	}
	p := g.printer()
	center := piv.Pt(size.Width/2, size.Height/2)
	for i, pk := range peaks {
		d := center.Sub(pk.Location())
		p.Fprintf(cmd.OutOrStdout(), "peak %d: value %.4g at %v, displacement (%d, %d)\n",
			i+1, pk.Value, pk.Location(), d.X, d.Y)
	}
	if len(peaks) > 0 {
		p.Fprintf(cmd.OutOrStdout(), "ratio %.3f\n", peak.Ratio(peaks))
	}

	if f.output == "" {
		return nil
	}
	return savePlane(reg, codec.Normalize[float64](re), f)
}

func savePlane(reg *codec.Registry, plane *piv.Image[uint8], f *correlateFlags) error {
	name := f.format
	if name == "" {
		name = extFormats[strings.ToLower(filepath.Ext(f.output))]
	}
	if name == "" {
		return fmt.Errorf("cannot infer format of %q, use --format", f.output)
	}

	var data []byte
	var err error
	if f.zoom > 1 {
		data, err = encodeZoomed(reg, name, plane, f.zoom)
	} else {
		data, err = codec.Encode[uint8](reg, name, plane)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(f.output, data, 0o644)
}

func encodeZoomed(reg *codec.Registry, name string, plane *piv.Image[uint8], zoom int) ([]byte, error) {
	c, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	src := image.NewGray(image.Rect(0, 0, plane.Width(), plane.Height()))
	copy(src.Pix, plane.Pix())
	dst := image.NewGray(image.Rect(0, 0, plane.Width()*zoom, plane.Height()*zoom))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := c.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
