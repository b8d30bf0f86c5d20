// Package operations holds the pure image transforms offered by the Edit
// menu. Every operation takes a fully opaque *image.NRGBA and returns a new
// one; the input is never modified.
package operations

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// InvalidParameterError reports an edit parameter that is out of range for
// the image it would be applied to.
type InvalidParameterError struct {
	Op     string
	Param  string
	Value  int
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid %s %d: %s", e.Op, e.Param, e.Value, e.Reason)
}

// Resize scales an image to Width pixels wide, keeping the aspect ratio.
type Resize struct {
	Width int
}

func (r Resize) Name() string { return "resize" }

func (r Resize) Validate(img *image.NRGBA) error {
	if r.Width <= 0 {
		return &InvalidParameterError{Op: r.Name(), Param: "width", Value: r.Width, Reason: "must be positive"}
	}
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("%s: empty source image", r.Name())
	}
	return nil
}

func (r Resize) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	if err := r.Validate(img); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return imaging.Resize(img, r.Width, ScaledHeight(b.Dx(), b.Dy(), r.Width), imaging.Lanczos), nil
}

// ScaledHeight returns round(height * targetWidth / width), at least 1.
func ScaledHeight(width, height, targetWidth int) int {
	h := int(math.Round(float64(height) * float64(targetWidth) / float64(width)))
	if h < 1 {
		h = 1
	}
	return h
}

// CropCenter cuts a Width x Height rectangle out of the middle of an image.
type CropCenter struct {
	Width  int
	Height int
}

func (c CropCenter) Name() string { return "crop" }

func (c CropCenter) Validate(img *image.NRGBA) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("%s: empty source image", c.Name())
	}
	b := img.Bounds()

	switch {
	case c.Width <= 0:
		return &InvalidParameterError{Op: c.Name(), Param: "width", Value: c.Width, Reason: "must be positive"}
	case c.Height <= 0:
		return &InvalidParameterError{Op: c.Name(), Param: "height", Value: c.Height, Reason: "must be positive"}
	case c.Width > b.Dx():
		return &InvalidParameterError{Op: c.Name(), Param: "width", Value: c.Width,
			Reason: fmt.Sprintf("exceeds image width %d", b.Dx())}
	case c.Height > b.Dy():
		return &InvalidParameterError{Op: c.Name(), Param: "height", Value: c.Height,
			Reason: fmt.Sprintf("exceeds image height %d", b.Dy())}
	}
	return nil
}

// Rect returns the crop rectangle for a source of the given bounds.
// Offsets use floor division, so odd leftovers go to the right and bottom.
func (c CropCenter) Rect(bounds image.Rectangle) image.Rectangle {
	left := bounds.Min.X + (bounds.Dx()-c.Width)/2
	top := bounds.Min.Y + (bounds.Dy()-c.Height)/2
	return image.Rect(left, top, left+c.Width, top+c.Height)
}

func (c CropCenter) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	if err := c.Validate(img); err != nil {
		return nil, err
	}
	return imaging.Crop(img, c.Rect(img.Bounds())), nil
}

// Grayscale desaturates with luma weights and keeps the RGB layout, so
// later edits and encoders see the same pixel format.
type Grayscale struct{}

func (g Grayscale) Name() string { return "grayscale" }

func (g Grayscale) Validate(img *image.NRGBA) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("%s: empty source image", g.Name())
	}
	return nil
}

func (g Grayscale) Apply(img *image.NRGBA) (*image.NRGBA, error) {
	if err := g.Validate(img); err != nil {
		return nil, err
	}
	return imaging.Grayscale(img), nil
}
