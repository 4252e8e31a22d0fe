package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/piv"
	"github.com/gogpu/piv/codec"
)

type globalFlags struct {
	verbose bool
	lang    string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "pivtool",
		Short:         "Particle image velocimetry on frame pairs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if g.verbose {
				piv.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log progress to stderr")
	root.PersistentFlags().StringVar(&g.lang, "lang", "en", "language tag for number formatting")

	root.AddCommand(
		newAnalyzeCmd(g),
		newCorrelateCmd(g),
		newGridCmd(g),
		newFormatsCmd(g),
		newEnvCmd(g),
	)
	return root
}

func (g *globalFlags) printer() *message.Printer {
	tag, err := language.Parse(g.lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// parseSize accepts "N" for a square size or "WxH".
func parseSize(s string) (piv.Size, error) {
	ws, hs, found := strings.Cut(strings.ToLower(s), "x")
	if !found {
		hs = ws
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return piv.Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return piv.Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	return piv.NewSize(w, h)
}

// parsePoint accepts "X,Y".
func parsePoint(s string) (piv.Point[int], error) {
	xs, ys, found := strings.Cut(s, ",")
	if !found {
		return piv.Point[int]{}, fmt.Errorf("point %q: want X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return piv.Point[int]{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return piv.Point[int]{}, fmt.Errorf("point %q: %w", s, err)
	}
	return piv.Pt(x, y), nil
}

func newFormatsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List registered image codecs in probe order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := g.printer()
			for _, c := range codec.Default().Codecs() {
				p.Fprintf(cmd.OutOrStdout(), "%-6s priority %d\n", c.Name(), c.Priority())
			}
			return nil
		},
	}
}
