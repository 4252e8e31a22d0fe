// Package piv provides the image model for Particle Image Velocimetry.
//
// # Overview
//
// PIV estimates a flow field by cutting two successive frames into
// interrogation windows, cross-correlating each pair of windows and reading
// the displacement off the correlation peak. This package holds the pieces
// every stage shares:
//   - Geometry: Size, Point, Rect
//   - Pixel types: grey levels, RGBA, complex128
//   - Image (owning buffer) and View (window onto an Image), both exposing
//     the Source capability set
//   - Lazy per-pixel expressions: Add, Sub, Mul, Div, Mod, Conj, AbsOf, ...
//
// The numeric stages live in sub-packages:
//   - fft: 2-D radix-2 FFT, cross- and auto-correlation
//   - grid: interrogation window layout
//   - peak: correlation peak search and sub-pixel refinement
//   - codec: TIFF, PNG, JPEG, BMP and PNM decode/encode behind a registry
//   - pipeline: one complete PIV pass over a frame pair
//
// # Quick Start
//
//	im := piv.NewImage[float64](piv.Sz(64, 64))
//	twice := piv.Evaluate[float64](piv.Add[float64](im, im))
//
//	win, err := piv.NewView(im, piv.R(16, 16, 32, 32))
//	if err != nil {
//	    return err
//	}
//	_ = win.AtPoint(piv.Pt(0, 0)) // im.AtPoint(piv.Pt(16, 16))
//
// # Coordinate System
//
// Pixel (x, y) lives at linear offset y*Width+x. A Rect is anchored at its
// minimum corner, which this package calls the bottom-left corner.
package piv
