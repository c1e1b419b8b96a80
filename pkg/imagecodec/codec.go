// Package imagecodec handles the byte-level image concerns of the annotation
// core: base64 embedding of the original file bytes and raster decoding for
// dimension probing and preview rendering.
package imagecodec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when a byte stream cannot be decoded as a
// raster image by any registered decoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// imageExtensions mirrors the accepted file filter of the annotation tool.
var imageExtensions = []string{"png", "jpg", "jpeg", "bmp", "tif", "tiff", "gif", "webp"}

// Encode returns the base64 text encoding of raw image bytes for embedding
// into an annotation file. The original bytes are embedded as-is, never
// re-encoded.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode is the inverse of Encode.
func Decode(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image data: %w", err)
	}
	return data, nil
}

// DecodeDimensions probes the pixel dimensions of an encoded raster image
// without decoding the full pixel data.
func DecodeDimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		return cfg.Width, cfg.Height, nil
	}

	// Fallback: explicit WebP decode for streams the registered config
	// probes reject
	if img, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
		b := img.Bounds()
		return b.Dx(), b.Dy(), nil
	}

	return 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
}

// DecodeImage fully decodes an image from byte data.
func DecodeImage(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return img, nil
}

// IsImageExtension reports whether the extension (without dot) belongs to a
// supported raster format.
func IsImageExtension(ext string) bool {
	for _, supported := range imageExtensions {
		if strings.EqualFold(ext, supported) {
			return true
		}
	}
	return false
}
