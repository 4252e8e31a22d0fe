package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/piv/grid"
)

type gridFlags struct {
	image   string
	window  string
	overlap float64
	offset  string
	list    bool
}

func newGridCmd(g *globalFlags) *cobra.Command {
	f := &gridFlags{}
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show the interrogation grid for an image and window size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			image, err := parseSize(f.image)
			if err != nil {
				return err
			}
			window, err := parseSize(f.window)
			if err != nil {
				return err
			}
			spacing := grid.Overlap(f.overlap)
			if f.offset != "" {
				offset, err := parseSize(f.offset)
				if err != nil {
					return err
				}
				spacing = grid.Offset(offset)
			}
			gr, err := grid.Generate(image, window, spacing)
			if err != nil {
				return err
			}

			p := g.printer()
			out := cmd.OutOrStdout()
			p.Fprintf(out, "%d windows (%d x %d), offset %v, first origin (%d,%d)\n",
				gr.Len(), gr.Counts.Width, gr.Counts.Height, gr.Offset, gr.Start.X, gr.Start.Y)
			if f.list {
				for i, r := range gr.Rects {
					col, row := gr.Cell(i)
					p.Fprintf(out, "%d\t%d\t%v\n", col, row, r)
				}
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.image, "image", "", "image size, N or WxH")
	fl.StringVarP(&f.window, "window", "w", "32", "window size, N or WxH")
	fl.Float64Var(&f.overlap, "overlap", 0.5, "window overlap fraction in [0,1]")
	fl.StringVar(&f.offset, "offset", "", "explicit window spacing (overrides --overlap)")
	fl.BoolVar(&f.list, "list", false, "print every window")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}
