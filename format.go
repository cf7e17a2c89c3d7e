package score2pdf

import (
	"fmt"
	"strings"
)

// Format is the closed set of supported page-image encodings. All assets of
// one request share the format inferred from the first discovered source URL.
type Format int

const (
	// FormatJPG is a raster JPEG page image.
	FormatJPG Format = iota
	// FormatPNG is a raster PNG page image.
	FormatPNG
	// FormatSVG is a vector page image sized from its own geometry.
	FormatSVG
)

// FormatFromURL classifies an image source URL by its mime marker or file
// extension. Score sites embed the mime type in query parameters, so the
// whole URL is searched, not just the path suffix.
func FormatFromURL(url string) (Format, error) {
	switch {
	case strings.Contains(url, "image/jpeg"), strings.Contains(url, ".jpg"):
		return FormatJPG, nil
	case strings.Contains(url, "image/png"), strings.Contains(url, ".png"):
		return FormatPNG, nil
	case strings.Contains(url, "image/svg+xml"), strings.Contains(url, ".svg"):
		return FormatSVG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, url)
}

// Ext returns the file extension, dot included.
func (f Format) Ext() string {
	switch f {
	case FormatJPG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatSVG:
		return ".svg"
	}
	return ""
}

// IsVector reports whether pages of this format carry their own geometry.
func (f Format) IsVector() bool {
	return f == FormatSVG
}

// imageType returns the type tag the PDF image registry expects.
// Only meaningful for raster formats.
func (f Format) imageType() string {
	switch f {
	case FormatJPG:
		return "JPG"
	case FormatPNG:
		return "PNG"
	}
	return ""
}

// String implements fmt.Stringer for logs and error messages.
func (f Format) String() string {
	switch f {
	case FormatJPG:
		return "jpg"
	case FormatPNG:
		return "png"
	case FormatSVG:
		return "svg"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}
