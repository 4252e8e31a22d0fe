package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/piv"
	"github.com/gogpu/piv/codec"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    piv.Size
		wantErr bool
	}{
		{"32", piv.Sz(32, 32), false},
		{"64x32", piv.Sz(64, 32), false},
		{"16X8", piv.Sz(16, 8), false},
		{"x8", piv.Size{}, true},
		{"-4x4", piv.Size{}, true},
		{"abc", piv.Size{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseSize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	if p, err := parsePoint("3, -4"); err != nil || p != piv.Pt(3, -4) {
		t.Errorf("parsePoint = %v, %v", p, err)
	}
	if _, err := parsePoint("3"); err == nil {
		t.Error("parsePoint(3) should fail")
	}
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("pivtool %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestGridCmd(t *testing.T) {
	out := run(t, "grid", "--image", "100", "--window", "10", "--offset", "5")
	if !strings.Contains(out, "361 windows (19 x 19)") {
		t.Errorf("grid output = %q", out)
	}
}

func TestFormatsCmd(t *testing.T) {
	out := run(t, "formats")
	if strings.Index(out, "tiff") > strings.Index(out, "pnm") {
		t.Errorf("formats not in probe order:\n%s", out)
	}
}

func TestAnalyzeCmd(t *testing.T) {
	dir := t.TempDir()
	frame := piv.NewImage[uint8](piv.Sz(32, 32))
	for i := range frame.PixelCount() {
		frame.Set(i, uint8((i*7919)%251))
	}
	data, err := codec.Encode[uint8](codec.Default(), "pnm", frame)
	if err != nil {
		t.Fatal(err)
	}
	a, b := filepath.Join(dir, "a.pgm"), filepath.Join(dir, "b.pgm")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, data, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	csvPath := filepath.Join(dir, "v.csv")

	out := run(t, "analyze", a, b, "-w", "16", "--offset", "16", "-o", csvPath)
	if !strings.Contains(out, "of 4 vectors valid") {
		t.Errorf("summary = %q", out)
	}
	csv, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(csv), "\n"); lines != 5 {
		t.Errorf("CSV has %d lines, want header + 4", lines)
	}
}
