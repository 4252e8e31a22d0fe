package codec

import "errors"

// Codec errors. Decode and Encode wrap these, so callers test with errors.Is.
var (
	// ErrShortStream is returned when the input ends before a complete image.
	ErrShortStream = errors.New("codec: short stream")

	// ErrUnknownFormat is returned when no registered codec accepts the data
	// or a codec name is not registered.
	ErrUnknownFormat = errors.New("codec: unknown format")

	// ErrUnsupportedPixel is returned when a format cannot carry the
	// requested pixel type, depth or channel count.
	ErrUnsupportedPixel = errors.New("codec: unsupported pixel type")

	// ErrMalformed is returned when a stream is recognised but invalid.
	ErrMalformed = errors.New("codec: malformed stream")

	// ErrDuplicate is returned when a codec name is registered twice.
	ErrDuplicate = errors.New("codec: duplicate codec name")
)
