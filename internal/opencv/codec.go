package opencv

import (
	"errors"
	"fmt"
	"image"
	"io"

	"simple-image-editor/internal/codec"

	"gocv.io/x/gocv"
)

const webpExt gocv.FileExt = ".webp"

func init() {
	codec.RegisterEncoder(codec.WebP, EncodeWebP)
	codec.RegisterFallbackDecoder(Decode)
}

// EncodeWebP writes img as lossy WebP. The JPEG quality setting doubles as
// the WebP quality.
func EncodeWebP(w io.Writer, img *image.NRGBA, opts codec.Options) error {
	mat, err := NRGBAToMat(img)
	if err != nil {
		return err
	}
	defer mat.Close()

	quality := opts.JPEGQuality
	if quality == 0 {
		quality = codec.DefaultJPEGQuality
	}

	buf, err := gocv.IMEncodeWithParams(webpExt, mat, []int{int(gocv.IMWriteWebpQuality), quality})
	if err != nil {
		return fmt.Errorf("opencv webp encode: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	if len(data) == 0 {
		return errors.New("opencv webp encode produced no data")
	}

	_, err = w.Write(data)
	return err
}

// Decode reads any format OpenCV was built with. Images come back as BGR
// and are converted to NRGBA.
func Decode(data []byte) (image.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("opencv decode: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("opencv could not decode data")
	}
	return MatToNRGBA(mat)
}
