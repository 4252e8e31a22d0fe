// Command pivtool runs PIV passes over frame pairs from the command line.
//
// Usage:
//
//	pivtool analyze a.tif b.tif --window 32 --overlap 0.5 -o vectors.csv
//	pivtool correlate a.pgm b.pgm --window 64 -o plane.png --zoom 4
//	pivtool grid --image 1024x768 --window 32 --offset 16
//	pivtool formats
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pivtool:", err)
		os.Exit(1)
	}
}
