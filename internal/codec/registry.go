package codec

import (
	"image"
	"io"
	"sync"

	"github.com/disintegration/imaging"
)

// EncoderFunc writes img in one format.
type EncoderFunc func(w io.Writer, img *image.NRGBA, opts Options) error

// DecoderFunc decodes raw file bytes the image registry did not recognise.
type DecoderFunc func(data []byte) (image.Image, error)

var (
	registryMu sync.RWMutex
	encoders   = map[Format]EncoderFunc{
		PNG:  imagingEncoder(imaging.PNG),
		JPEG: imagingEncoder(imaging.JPEG),
		BMP:  imagingEncoder(imaging.BMP),
		TIFF: imagingEncoder(imaging.TIFF),
		GIF:  encodeGIF,
	}
	fallbackDecoder DecoderFunc
)

// RegisterEncoder installs the encoder used for format, replacing any
// previous one. Backends with native dependencies call it from init.
func RegisterEncoder(format Format, fn EncoderFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	encoders[format] = fn
}

// RegisterFallbackDecoder installs the decoder tried when no registered
// image format matches the input.
func RegisterFallbackDecoder(fn DecoderFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	fallbackDecoder = fn
}

// HasEncoder reports whether format can be saved in this build.
func HasEncoder(format Format) bool {
	_, ok := lookupEncoder(format)
	return ok
}

func lookupEncoder(format Format) (EncoderFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := encoders[format]
	return fn, ok && fn != nil
}

func lookupFallback() DecoderFunc {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return fallbackDecoder
}
