package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"simple-image-editor/internal/codec"
	"simple-image-editor/internal/logger"
	"simple-image-editor/internal/models"
	"simple-image-editor/internal/operations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:i+4], []uint8{40, 80, 160, 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newServices(t *testing.T) (*models.EditSession, *ImageService, *EditService) {
	t.Helper()
	log := logger.NewNop()
	session := models.NewEditSession(5, log)
	return session, NewImageService(session, codec.Options{JPEGQuality: 90}, log), NewEditService(session, log)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("read-only file system") }

func TestImageService_LoadImage(t *testing.T) {
	session, images, _ := newServices(t)

	data, err := images.LoadImage(context.Background(), bytes.NewReader(createPNG(t, 100, 50)), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, 100, data.Width)
	assert.Equal(t, 50, data.Height)
	assert.Equal(t, "png", data.Format)
	assert.Same(t, data, session.Current())

	info := images.GetImageInfo()
	assert.True(t, info.Loaded)
	assert.Equal(t, "photo.png", info.Source)
	assert.EqualValues(t, 100*50*4, info.MemoryUsage)
}

func TestImageService_LoadFailureKeepsSession(t *testing.T) {
	session, images, edits := newServices(t)
	_, err := images.LoadImage(context.Background(), bytes.NewReader(createPNG(t, 10, 10)), "a.png")
	require.NoError(t, err)
	_, err = edits.Apply(context.Background(), operations.Grayscale{})
	require.NoError(t, err)
	before := session.Current()

	_, err = images.LoadImage(context.Background(), bytes.NewReader([]byte("garbage")), "b.png")
	var de *codec.DecodeError
	require.True(t, errors.As(err, &de))

	assert.Same(t, before, session.Current())
	assert.True(t, session.CanUndo(), "a failed load must not clear history")
}

func TestImageService_LoadCancelled(t *testing.T) {
	session, images, _ := newServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := images.LoadImage(ctx, bytes.NewReader(createPNG(t, 4, 4)), "a.png")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, session.Current())
}

func TestImageService_SaveImage(t *testing.T) {
	_, images, _ := newServices(t)
	_, err := images.LoadImage(context.Background(), bytes.NewReader(createPNG(t, 12, 8)), "in.png")
	require.NoError(t, err)

	for _, name := range []string{"out.png", "out.JPG", "out.bmp", "out.gif", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, images.SaveImage(context.Background(), &buf, name))

			img, _, err := codec.Decode(&buf, name)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds())
		})
	}
}

func TestImageService_SaveKeepsPixels(t *testing.T) {
	_, images, _ := newServices(t)
	_, err := images.LoadImage(context.Background(), bytes.NewReader(createPNG(t, 3, 3)), "in.png")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, images.SaveImage(context.Background(), &buf, "out.png"))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{40, 80, 160, 255}, color.NRGBAModel.Convert(img.At(2, 2)))
}

func TestImageService_SaveErrors(t *testing.T) {
	t.Run("nothing loaded", func(t *testing.T) {
		_, images, _ := newServices(t)
		err := images.SaveImage(context.Background(), &bytes.Buffer{}, "out.png")
		assert.ErrorIs(t, err, models.ErrNoImage)
	})

	t.Run("unknown extension writes nothing", func(t *testing.T) {
		_, images, _ := newServices(t)
		_, err := images.LoadImage(context.Background(), bytes.NewReader(createPNG(t, 4, 4)), "in.png")
		require.NoError(t, err)

		var buf bytes.Buffer
		err = images.SaveImage(context.Background(), &buf, "out.xyz")
		var ee *codec.EncodeError
		require.True(t, errors.As(err, &ee))
		assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
		assert.Zero(t, buf.Len())
	})

	t.Run("write failure", func(t *testing.T) {
		_, images, _ := newServices(t)
		_, err := images.LoadImage(context.Background(), bytes.NewReader(createPNG(t, 4, 4)), "in.png")
		require.NoError(t, err)

		err = images.SaveImage(context.Background(), failingWriter{}, "out.png")
		var ee *codec.EncodeError
		require.True(t, errors.As(err, &ee))
		assert.Contains(t, err.Error(), "read-only file system")
	})
}

func TestEditService_ApplyAndUndo(t *testing.T) {
	_, images, edits := newServices(t)
	_, err := images.LoadImage(context.Background(), bytes.NewReader(createPNG(t, 100, 50)), "in.png")
	require.NoError(t, err)

	result, err := edits.Apply(context.Background(), operations.Resize{Width: 50})
	require.NoError(t, err)
	assert.Equal(t, 25, result.Height)
	assert.Equal(t, 1, edits.HistoryLen())

	result, err = edits.Undo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, result.Width)
	assert.Zero(t, edits.HistoryLen())

	result, err = edits.Undo(context.Background())
	assert.ErrorIs(t, err, models.ErrEmptyHistory)
	assert.Equal(t, 100, result.Width)
}

func TestEditService_ApplyWithoutImage(t *testing.T) {
	_, _, edits := newServices(t)
	_, err := edits.Apply(context.Background(), operations.Grayscale{})
	assert.ErrorIs(t, err, models.ErrNoImage)
}
