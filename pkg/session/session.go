// Package session owns the mutable state of one annotation sitting: the
// currently loaded image and the single selected center point. State is
// replaced, never mutated in place, and every operation runs to completion
// before the next is accepted.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pzy2000/LabelMed/pkg/annotation"
	"github.com/pzy2000/LabelMed/pkg/geometry"
	"github.com/pzy2000/LabelMed/pkg/imagecodec"
)

var (
	// ErrNoImageLoaded is returned when an operation requires a loaded image.
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrNoCenterSelected is returned when export is attempted before a
	// center point was picked.
	ErrNoCenterSelected = errors.New("no center point selected")
)

// Config holds configuration for an annotation session.
type Config struct {
	Label      string
	HalfExtent float64
}

// ImageState is an immutable snapshot of the loaded image.
type ImageState struct {
	Path   string
	Width  int
	Height int
	Data   []byte
}

// Session tracks the current image and center point.
type Session struct {
	config Config
	image  *ImageState
	center *geometry.Point
}

// New creates a session with default configuration: label "d" and the
// nominal 600x600 rectangle.
func New() *Session {
	return &Session{
		config: Config{
			Label:      "d",
			HalfExtent: geometry.HalfExtent,
		},
	}
}

// NewWithConfig creates a session with custom configuration.
func NewWithConfig(config Config) *Session {
	return &Session{config: config}
}

// Load reads an image file and makes it the active image. A failed read or
// an undecodable byte stream leaves the prior image and center untouched.
// On success any previously selected center is discarded.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}
	return s.LoadBytes(path, data)
}

// LoadBytes installs raw image bytes as the active image.
func (s *Session) LoadBytes(path string, data []byte) error {
	width, height, err := imagecodec.DecodeDimensions(data)
	if err != nil {
		return fmt.Errorf("cannot load image %s: %w", path, err)
	}

	s.image = &ImageState{
		Path:   path,
		Width:  width,
		Height: height,
		Data:   data,
	}
	s.center = nil
	return nil
}

// SelectCenter records a pointer click as the new center point. The raw
// location passes through unclamped (1 UI unit = 1 image pixel); clipping
// is done when the box is derived. A click with no image loaded is rejected
// and not stored.
func (s *Session) SelectCenter(p geometry.Point) error {
	if s.image == nil {
		return ErrNoImageLoaded
	}
	center := p
	s.center = &center
	return nil
}

// Image returns the active image snapshot, or nil when none is loaded.
func (s *Session) Image() *ImageState {
	return s.image
}

// Center returns the selected center point, if any.
func (s *Session) Center() (geometry.Point, bool) {
	if s.center == nil {
		return geometry.Point{}, false
	}
	return *s.center, true
}

// Box derives the clipped bounding box for the current center and image.
func (s *Session) Box() (geometry.BoundingBox, error) {
	if s.image == nil {
		return geometry.BoundingBox{}, ErrNoImageLoaded
	}
	if s.center == nil {
		return geometry.BoundingBox{}, ErrNoCenterSelected
	}
	return geometry.ComputeBox(*s.center, s.config.HalfExtent, s.image.Width, s.image.Height), nil
}

// Annotation builds the annotation file value for the current state. The
// record and file are constructed fresh on every call; nothing is cached.
func (s *Session) Annotation() (annotation.File, error) {
	box, err := s.Box()
	if err != nil {
		return annotation.File{}, err
	}

	meta := annotation.ImageMeta{
		Path:   filepath.Base(s.image.Path),
		Width:  s.image.Width,
		Height: s.image.Height,
		Data:   imagecodec.Encode(s.image.Data),
	}

	return annotation.NewFile(annotation.NewRecord(s.config.Label, box), meta), nil
}

// Export serializes the current annotation and writes it to w.
func (s *Session) Export(w io.Writer) error {
	file, err := s.Annotation()
	if err != nil {
		return err
	}

	data, err := annotation.Marshal(file)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write annotation: %w", err)
	}
	return nil
}

// ExportFile writes the current annotation to path. The document is
// serialized fully in memory and placed through a temp-file rename so a
// failure never leaves a partial file on disk.
func (s *Session) ExportFile(path string) error {
	file, err := s.Annotation()
	if err != nil {
		return err
	}

	data, err := annotation.Marshal(file)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".labelmed-*.json")
	if err != nil {
		return fmt.Errorf("failed to create annotation file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write annotation file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write annotation file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to place annotation file: %w", err)
	}
	return nil
}
