package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"simple-image-editor/internal/codec"
	"simple-image-editor/internal/logger"
	"simple-image-editor/internal/models"
)

// ImageService moves images between files and the edit session
type ImageService struct {
	session *models.EditSession
	options codec.Options
	logger  logger.Logger
}

// NewImageService creates a new image service
func NewImageService(session *models.EditSession, options codec.Options, log logger.Logger) *ImageService {
	return &ImageService{
		session: session,
		options: options,
		logger:  log,
	}
}

// LoadImage decodes reader and makes the result the session's current
// image. name is the file name and selects PSD handling by extension. On
// failure the session is left as it was.
func (is *ImageService) LoadImage(ctx context.Context, reader io.Reader, name string) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	startTime := time.Now()

	img, format, err := codec.Decode(reader, name)
	if err != nil {
		is.logger.Error("ImageService", err, map[string]interface{}{
			"source": name,
		})
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	imageData := models.NewImageData(img, format, name)
	is.session.Load(imageData)

	is.logger.Info("ImageService", "image decoded", map[string]interface{}{
		"source":      name,
		"format":      format,
		"width":       imageData.Width,
		"height":      imageData.Height,
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	return imageData, nil
}

// SaveImage encodes the current image in the format chosen by name's
// extension and writes it to writer. Nothing is written when the extension
// is unknown or encoding fails.
func (is *ImageService) SaveImage(ctx context.Context, writer io.Writer, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	current := is.session.Current()
	if current == nil {
		return models.ErrNoImage
	}

	format, err := codec.FormatFromName(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, current.Image, format, is.options); err != nil {
		is.logger.Error("ImageService", err, map[string]interface{}{
			"target": name,
			"format": string(format),
		})
		return err
	}

	if _, err := buf.WriteTo(writer); err != nil {
		return &codec.EncodeError{Format: string(format), Err: fmt.Errorf("write %s: %w", name, err)}
	}

	is.logger.Info("ImageService", "image saved", map[string]interface{}{
		"target": name,
		"format": string(format),
		"width":  current.Width,
		"height": current.Height,
	})

	return nil
}

// GetImageInfo returns information about the current image
func (is *ImageService) GetImageInfo() ImageInfo {
	current := is.session.Current()
	if current == nil {
		return ImageInfo{}
	}

	return ImageInfo{
		Loaded:      true,
		Width:       current.Width,
		Height:      current.Height,
		Format:      current.Format,
		Source:      current.Source,
		LoadTime:    current.LoadTime,
		MemoryUsage: current.MemoryUsage(),
	}
}

// ImageInfo describes the current image
type ImageInfo struct {
	Loaded      bool
	Width       int
	Height      int
	Format      string
	Source      string
	LoadTime    time.Time
	MemoryUsage int64
}

// Cleanup releases the session's images
func (is *ImageService) Cleanup() {
	is.session.Shutdown()
}
