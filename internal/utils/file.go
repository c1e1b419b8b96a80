package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pzy2000/LabelMed/pkg/imagecodec"
)

// GetFileExtension returns the file extension without the dot.
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(filename string) bool {
	return imagecodec.IsImageExtension(GetFileExtension(filename))
}

// AnnotationPath derives the default annotation file path for an image: the
// image base name with its extension replaced by .json, placed in dir, or
// next to the image when dir is empty.
func AnnotationPath(imagePath, dir string) string {
	base := filepath.Base(imagePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"

	if dir == "" {
		dir = filepath.Dir(imagePath)
	}
	return filepath.Join(dir, name)
}

// PreviewPath derives the default preview image path for an image.
func PreviewPath(imagePath, dir, format string) string {
	base := filepath.Base(imagePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + "_preview." + format

	if dir == "" {
		dir = filepath.Dir(imagePath)
	}
	return filepath.Join(dir, name)
}

// FileExists checks if a file exists and is not a directory.
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
