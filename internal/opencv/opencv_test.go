package opencv

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"simple-image-editor/internal/codec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return img
}

func TestMatRoundTrip(t *testing.T) {
	src := createGradientImage(12, 7)

	mat, err := NRGBAToMat(src)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 7, mat.Rows())
	assert.Equal(t, 12, mat.Cols())
	assert.Equal(t, 3, mat.Channels())

	got, err := MatToNRGBA(mat)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, got.Pix)
}

func TestNRGBAToMat_SubImage(t *testing.T) {
	src := createGradientImage(10, 10)
	sub := src.SubImage(image.Rect(2, 3, 6, 8)).(*image.NRGBA)

	mat, err := NRGBAToMat(sub)
	require.NoError(t, err)
	defer mat.Close()

	got, err := MatToNRGBA(mat)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 5), got.Bounds())
	assert.Equal(t, src.NRGBAAt(2, 3), got.NRGBAAt(0, 0))
	assert.Equal(t, src.NRGBAAt(5, 7), got.NRGBAAt(3, 4))
}

func TestNRGBAToMat_Invalid(t *testing.T) {
	_, err := NRGBAToMat(nil)
	assert.Error(t, err)

	_, err = NRGBAToMat(image.NewNRGBA(image.Rect(0, 0, 0, 5)))
	assert.Error(t, err)
}

func TestWebPRegistered(t *testing.T) {
	assert.True(t, codec.HasEncoder(codec.WebP))
}

func TestEncodeWebP_DecodesBack(t *testing.T) {
	src := createGradientImage(24, 16)

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, src, codec.WebP, codec.Options{JPEGQuality: 90}))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("RIFF")))

	// x/image/webp handles the decode side.
	got, format, err := codec.Decode(&buf, "out.webp")
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, src.Bounds(), got.Bounds())
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("not an image at all"))
	assert.Error(t, err)
}
