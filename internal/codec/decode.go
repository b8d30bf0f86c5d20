// Package codec is the boundary between files and in-memory images. Every
// decoded image is normalised to an opaque *image.NRGBA at the origin, and
// saving goes through an explicit extension to encoder table.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/oov/psd"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const psdMagic = "8BPS"

// Decode reads a whole file and returns it as an opaque NRGBA image together
// with the detected format name. hint is the file name or extension and is
// only used to route layered documents and to label errors.
func Decode(r io.Reader, hint string) (*image.NRGBA, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", &DecodeError{Source: hint, Err: fmt.Errorf("read: %w", err)}
	}
	if len(data) == 0 {
		return nil, "", &DecodeError{Source: hint, Err: errors.New("empty file")}
	}

	img, format, err := decodeBytes(data, hint)
	if err != nil {
		return nil, "", &DecodeError{Source: hint, Err: err}
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, "", &DecodeError{Source: hint, Err: fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())}
	}

	return Normalize(img), format, nil
}

func decodeBytes(data []byte, hint string) (image.Image, string, error) {
	if bytes.HasPrefix(data, []byte(psdMagic)) || hintExt(hint) == "psd" {
		img, err := decodePSD(data)
		return img, "psd", err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, format, nil
	}
	if !errors.Is(err, image.ErrFormat) {
		return nil, format, err
	}

	fallback := lookupFallback()
	if fallback == nil {
		return nil, "", err
	}
	img, ferr := fallback(data)
	if ferr != nil {
		return nil, "", fmt.Errorf("%w; fallback decoder: %v", err, ferr)
	}
	if img == nil {
		return nil, "", fmt.Errorf("%w; fallback decoder returned no image", err)
	}

	format = hintExt(hint)
	if format == "" {
		format = "unknown"
	}
	return img, format, nil
}

// decodePSD flattens a layered document by taking its merged composite.
func decodePSD(data []byte) (image.Image, error) {
	doc, _, err := psd.Decode(bytes.NewReader(data), &psd.DecodeOptions{SkipLayerImage: true})
	if err != nil {
		return nil, fmt.Errorf("psd: %w", err)
	}
	if doc.Picker == nil {
		return nil, errors.New("psd: document has no composite image")
	}
	return doc.Picker, nil
}

// Normalize converts any image to an opaque NRGBA image with its origin at
// (0,0). Alpha is dropped, not composited.
func Normalize(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

func hintExt(hint string) string {
	ext := filepath.Ext(hint)
	if ext == "" {
		ext = hint
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
