package codec

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when Options.JPEGQuality is zero.
const DefaultJPEGQuality = 95

// Options tune the encoders.
type Options struct {
	JPEGQuality int
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *image.NRGBA, format Format, opts Options) error {
	if img == nil || img.Bounds().Empty() {
		return &EncodeError{Format: string(format), Err: errors.New("no image to encode")}
	}

	enc, ok := lookupEncoder(format)
	if !ok {
		if _, known := formatNames()[format]; !known {
			return &EncodeError{Format: string(format), Err: ErrUnsupportedFormat}
		}
		return &EncodeError{Format: string(format), Err: ErrNoEncoder}
	}

	if err := enc(w, img, opts); err != nil {
		return &EncodeError{Format: string(format), Err: err}
	}
	return nil
}

// imagingEncoder returns an encoder for one of the formats imaging writes
// natively.
func imagingEncoder(f imaging.Format) EncoderFunc {
	return func(w io.Writer, img *image.NRGBA, opts Options) error {
		quality := opts.JPEGQuality
		if quality == 0 {
			quality = DefaultJPEGQuality
		}
		return imaging.Encode(w, img, f, imaging.JPEGQuality(quality))
	}
}

// encodeGIF writes a single-frame animated GIF stream. The frame is
// dithered onto the Plan 9 palette.
func encodeGIF(w io.Writer, img *image.NRGBA, _ Options) error {
	b := img.Bounds()
	frame := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(frame, b, img, b.Min)

	return gif.EncodeAll(w, &gif.GIF{
		Image: []*image.Paletted{frame},
		Delay: []int{0},
	})
}

func formatNames() map[Format]struct{} {
	names := make(map[Format]struct{}, len(saveFormats))
	for _, f := range saveFormats {
		names[f] = struct{}{}
	}
	return names
}
