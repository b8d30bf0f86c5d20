package models

import (
	"image"
	"time"
)

// ImageData is a decoded raster image with its metadata. Image is always a
// fully opaque *image.NRGBA and is never modified after the ImageData is
// created; edits produce a new ImageData.
type ImageData struct {
	Image    *image.NRGBA
	Width    int
	Height   int
	Format   string
	Source   string
	LoadTime time.Time
}

// NewImageData wraps a decoded image
func NewImageData(img *image.NRGBA, format, source string) *ImageData {
	bounds := img.Bounds()
	return &ImageData{
		Image:    img,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Format:   format,
		Source:   source,
		LoadTime: time.Now(),
	}
}

// Derive wraps the result of an edit, keeping the source metadata
func (d *ImageData) Derive(img *image.NRGBA) *ImageData {
	bounds := img.Bounds()
	return &ImageData{
		Image:    img,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Format:   d.Format,
		Source:   d.Source,
		LoadTime: d.LoadTime,
	}
}

// MemoryUsage estimates the pixel buffer size in bytes
func (d *ImageData) MemoryUsage() int64 {
	if d == nil || d.Image == nil {
		return 0
	}
	return int64(len(d.Image.Pix))
}
