package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the canonical encoder identifier for a save target.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	GIF  Format = "gif"
	TIFF Format = "tiff"
	WebP Format = "webp"
)

// saveFormats maps lower-case file extensions to encoders. File extensions
// and encoder names differ for the JPEG and TIFF families.
var saveFormats = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".bmp":  BMP,
	".gif":  GIF,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WebP,
}

// FormatFromName picks the encoder for a file name by its extension.
// Unknown extensions are rejected with an *EncodeError.
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", &EncodeError{Err: fmt.Errorf("%w: %q has no file extension", ErrUnsupportedFormat, name)}
	}

	f, ok := saveFormats[ext]
	if !ok {
		return "", &EncodeError{Format: strings.TrimPrefix(ext, "."), Err: fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)}
	}
	return f, nil
}

// Extensions returns the file extensions accepted when opening a file.
func Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".webp", ".gif", ".psd", ".tif", ".tiff"}
}

// SaveExtensions returns the file extensions accepted when saving.
func SaveExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".webp", ".gif", ".tif", ".tiff"}
}
