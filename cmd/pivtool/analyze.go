package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/piv/codec"
	"github.com/gogpu/piv/pipeline"
)

type analyzeFlags struct {
	window     string
	overlap    float64
	offset     string
	workers    int
	separation int
	minRatio   float64
	noSubpixel bool
	output     string
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze FRAME_A FRAME_B",
		Short: "Compute the displacement field between two frames",
		Long: "Tile both frames into interrogation windows, cross-correlate each " +
			"window pair and write one vector per window as CSV.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, g, f, args[0], args[1])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.window, "window", "w", "32", "interrogation window size, N or WxH (powers of two)")
	fl.Float64Var(&f.overlap, "overlap", 0.5, "window overlap fraction in [0,1]")
	fl.StringVar(&f.offset, "offset", "", "explicit window spacing, N or WxH (overrides --overlap)")
	fl.IntVarP(&f.workers, "workers", "j", 0, "correlation workers (0 = GOMAXPROCS)")
	fl.IntVar(&f.separation, "separation", 2, "minimum distance between primary and secondary peak")
	fl.Float64Var(&f.minRatio, "min-ratio", 1.2, "peak ratio below which a vector is invalid")
	fl.BoolVar(&f.noSubpixel, "no-subpixel", false, "report integer peak positions")
	fl.StringVarP(&f.output, "output", "o", "-", "CSV output file, - for stdout")
	return cmd
}

func runAnalyze(cmd *cobra.Command, g *globalFlags, f *analyzeFlags, pathA, pathB string) error {
	window, err := parseSize(f.window)
	if err != nil {
		return err
	}
	opts := []pipeline.Option{
		pipeline.WithWindow(window),
		pipeline.WithOverlap(f.overlap),
		pipeline.WithWorkers(f.workers),
		pipeline.WithSeparation(f.separation),
		pipeline.WithMinRatio(f.minRatio),
		pipeline.WithSubpixel(!f.noSubpixel),
	}
	if f.offset != "" {
		offset, err := parseSize(f.offset)
		if err != nil {
			return err
		}
		opts = append(opts, pipeline.WithOffset(offset))
	}
	an, err := pipeline.New(opts...)
	if err != nil {
		return err
	}

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

	a, b, err := pipeline.LoadPair[float64](cmd.Context(), codec.Default(), ra, rb)
	if err != nil {
		return err
	}
	field, err := pipeline.Run(cmd.Context(), an, a, b)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if f.output != "-" {
		file, err := os.Create(f.output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	if err := field.WriteCSV(out); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}

	mean := field.Mean()
	g.printer().Fprintf(cmd.ErrOrStderr(),
		"%d of %d vectors valid (%dx%d grid), mean displacement (%.3f, %.3f) px\n",
		field.ValidCount(), len(field.Vectors),
		field.Grid.Counts.Width, field.Grid.Counts.Height, mean.X, mean.Y)
	return nil
}
