// Package codec moves pixels between encoded byte streams and piv images.
//
// The piv core never parses file formats itself. It relies on two narrow
// contracts provided here: Decode turns bytes into an image of a requested
// pixel type, and Encode turns an image or view back into bytes.
//
// # Registry
//
// Formats are held in an explicit Registry rather than a process-wide list.
// Lookups are deterministic: codecs are ordered by descending Priority and
// then by Name, so probing never depends on registration order.
//
//	reg := codec.Default() // TIFF, PNG, JPEG, BMP, PNM
//	frame, err := codec.Decode[float64](reg, data)
//	if err != nil {
//	    return err
//	}
//	out, err := codec.Encode[uint8](reg, "pnm", codec.Normalize[float64](frame))
//
// # Pixel mapping
//
// Grey targets receive the stored sample values: 8-bit sources yield 0-255
// and 16-bit sources 0-65535, except for a uint8 target which scales 16-bit
// samples down. Colour sources are reduced to Rec. 601 luma for grey
// targets. Complex pixels cannot be represented by any supported format and
// fail with ErrUnsupportedPixel in both directions.
package codec
