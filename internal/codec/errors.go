package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for file extensions outside the
	// save format table.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrNoEncoder means the format is known but no encoder is registered
	// for it in this build.
	ErrNoEncoder = errors.New("no encoder registered")
)

// DecodeError reports a file that could not be read as an image.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("decode image: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failed save: unknown target format, missing encoder
// or a write failure.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("encode image: %v", e.Err)
	}
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
