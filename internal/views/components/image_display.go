package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/disintegration/imaging"
)

const (
	ImageAreaWidth  = 600
	ImageAreaHeight = 450
)

// ImageDisplay shows the current image scaled to fit, keeping its aspect
// ratio. Large images are shown through a downscaled preview.
type ImageDisplay struct {
	container   *fyne.Container
	image       *canvas.Image
	placeholder image.Image

	previewMaxSize int

	// Size of the full image, not the preview
	width  int
	height int
}

// NewImageDisplay creates a new image display component. Previews are at
// most previewMaxSize pixels on their longer side.
func NewImageDisplay(previewMaxSize int) *ImageDisplay {
	display := &ImageDisplay{previewMaxSize: previewMaxSize}
	display.createComponents()
	display.setupLayout()
	return display
}

// createComponents initializes the image canvas
func (id *ImageDisplay) createComponents() {
	id.placeholder = createPlaceholderImage()

	id.image = canvas.NewImageFromImage(id.placeholder)
	id.image.FillMode = canvas.ImageFillContain
	id.image.ScaleMode = canvas.ImageScaleSmooth
	id.image.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
}

// createPlaceholderImage draws a light gray area with a border
func createPlaceholderImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, ImageAreaWidth, ImageAreaHeight))

	lightGray := color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	borderColor := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < ImageAreaHeight; y++ {
		for x := 0; x < ImageAreaWidth; x++ {
			c := lightGray
			if x == 0 || y == 0 || x == ImageAreaWidth-1 || y == ImageAreaHeight-1 {
				c = borderColor
			}
			img.SetNRGBA(x, y, c)
		}
	}

	return img
}

func (id *ImageDisplay) setupLayout() {
	background := canvas.NewRectangle(color.NRGBA{R: 252, G: 252, B: 252, A: 255})
	id.container = container.NewStack(background, id.image)
}

// SetImage replaces the displayed image; nil shows the placeholder.
// Must be called on the UI goroutine.
func (id *ImageDisplay) SetImage(img *image.NRGBA) {
	if img == nil {
		id.image.Image = id.placeholder
		id.width, id.height = 0, 0
	} else {
		bounds := img.Bounds()
		id.width, id.height = bounds.Dx(), bounds.Dy()
		id.image.Image = Preview(img, id.previewMaxSize)
	}
	id.image.Refresh()
}

// Preview returns img downscaled so neither side exceeds maxSize. Smaller
// images are returned as they are.
func Preview(img *image.NRGBA, maxSize int) image.Image {
	bounds := img.Bounds()
	if maxSize <= 0 || (bounds.Dx() <= maxSize && bounds.Dy() <= maxSize) {
		return img
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
}

// HasImage returns true if an image is shown
func (id *ImageDisplay) HasImage() bool {
	return id.width > 0
}

// ImageSize returns the dimensions of the full image
func (id *ImageDisplay) ImageSize() (int, int) {
	return id.width, id.height
}

// DisplayedImage returns what the canvas currently draws
func (id *ImageDisplay) DisplayedImage() image.Image {
	return id.image.Image
}

// GetContainer returns the main container
func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}
