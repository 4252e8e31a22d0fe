package main

import (
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"
)

func newEnvCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the runtime settings that affect correlation throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := g.printer()
			out := cmd.OutOrStdout()
			p.Fprintf(out, "go       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			p.Fprintf(out, "workers  %d (GOMAXPROCS)\n", runtime.GOMAXPROCS(0))
			switch runtime.GOARCH {
			case "amd64", "386":
				p.Fprintf(out, "cpu      avx2=%t fma=%t sse4.1=%t\n", cpu.X86.HasAVX2, cpu.X86.HasFMA, cpu.X86.HasSSE41)
			case "arm64":
				p.Fprintf(out, "cpu      asimd=%t fp=%t\n", cpu.ARM64.HasASIMD, cpu.ARM64.HasFP)
			}
			return nil
		},
	}
}
