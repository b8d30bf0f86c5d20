// Package opencv plugs OpenCV into the codec registry: it provides the WebP
// encoder and a fallback decoder for files the Go image registry cannot read.
// Import it for its side effects.
package opencv

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// NRGBAToMat converts an image to a 3-channel BGR Mat. Alpha is dropped.
// The caller owns the returned Mat.
func NRGBAToMat(img *image.NRGBA) (gocv.Mat, error) {
	if img == nil {
		return gocv.NewMat(), errors.New("input image is nil")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return gocv.NewMat(), fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}

	bgr := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		src := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := bgr[y*width*3:]
		for x := 0; x < width; x++ {
			dst[x*3+0] = src[x*4+2]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+0]
		}
	}

	mat, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, bgr)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("mat creation failed: %w", err)
	}
	return mat, nil
}

// MatToNRGBA converts an 8-bit gray, BGR or BGRA Mat to an NRGBA image.
func MatToNRGBA(mat gocv.Mat) (*image.NRGBA, error) {
	if mat.Empty() {
		return nil, errors.New("empty mat")
	}

	rows, cols := mat.Rows(), mat.Cols()
	channels := mat.Channels()

	switch mat.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
	default:
		return nil, fmt.Errorf("unsupported mat type: %v", mat.Type())
	}

	data := mat.ToBytes()
	if len(data) < rows*cols*channels {
		return nil, fmt.Errorf("mat data too short: %d bytes for %dx%dx%d", len(data), cols, rows, channels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for i, o := 0, 0; i < rows*cols; i, o = i+1, o+4 {
		p := data[i*channels:]
		switch channels {
		case 1:
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = p[0], p[0], p[0], 0xff
		case 3:
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = p[2], p[1], p[0], 0xff
		case 4:
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = p[2], p[1], p[0], p[3]
		}
	}

	return img, nil
}
