// Package labelmed provides single-box click annotation with labelme-compatible
// JSON export.
//
// An operator opens an image, picks one center point, and exports an
// axis-aligned bounding box of a fixed nominal size (600x600, clipped to the
// image bounds) as an annotation file that embeds the original image bytes.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		labelmed "github.com/pzy2000/LabelMed"
//	)
//
//	func main() {
//		labeler := labelmed.New()
//
//		if err := labeler.LoadImage("scan.png"); err != nil {
//			log.Fatal(err)
//		}
//
//		// One click; a later click replaces it.
//		if err := labeler.SelectCenter(400, 300); err != nil {
//			log.Fatal(err)
//		}
//
//		if err := labeler.Export("scan.json"); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of four main components:
//
// 1. Geometry (pkg/geometry): center point and clipped-box computation
// 2. ImageCodec (pkg/imagecodec): base64 embedding and raster decoding
// 3. Annotation (pkg/annotation): the record model and deterministic serializer
// 4. Session (pkg/session): the mutable image/center state and export flow
//
// Clipping is one-sided: a center near an edge shrinks the box on that side
// only, it is never re-centered to preserve the nominal size. The exported
// schema is fixed for compatibility with the labelme ecosystem.
package labelmed

import (
	"io"

	"github.com/pzy2000/LabelMed/pkg/geometry"
	"github.com/pzy2000/LabelMed/pkg/imagecodec"
	"github.com/pzy2000/LabelMed/pkg/overlay"
	"github.com/pzy2000/LabelMed/pkg/session"
)

// Version of the labelmed library
const Version = "1.0.0"

// Labeler provides a high-level interface over one annotation session.
type Labeler struct {
	session *session.Session
}

// New creates a Labeler with default configuration: label "d" and the
// nominal 600x600 rectangle.
func New() *Labeler {
	return &Labeler{session: session.New()}
}

// NewWithConfig creates a Labeler with custom configuration.
func NewWithConfig(config session.Config) *Labeler {
	return &Labeler{session: session.NewWithConfig(config)}
}

// LoadImage loads an image from file and makes it the active image. On
// failure the previously loaded image and center remain active.
func (l *Labeler) LoadImage(path string) error {
	return l.session.Load(path)
}

// LoadImageBytes installs raw image bytes as the active image.
func (l *Labeler) LoadImageBytes(path string, data []byte) error {
	return l.session.LoadBytes(path, data)
}

// SelectCenter records a click at image-space pixel coordinates.
func (l *Labeler) SelectCenter(x, y float64) error {
	return l.session.SelectCenter(geometry.Point{X: x, Y: y})
}

// BoundingBox returns the clipped box for the current center and image.
func (l *Labeler) BoundingBox() (geometry.BoundingBox, error) {
	return l.session.Box()
}

// Image returns the active image snapshot, or nil when none is loaded.
func (l *Labeler) Image() *session.ImageState {
	return l.session.Image()
}

// Export writes the annotation file for the current state to path.
func (l *Labeler) Export(path string) error {
	return l.session.ExportFile(path)
}

// ExportTo serializes the annotation for the current state to w.
func (l *Labeler) ExportTo(w io.Writer) error {
	return l.session.Export(w)
}

// Preview renders the current box outline onto a copy of the image and
// saves it to path.
func (l *Labeler) Preview(path string) error {
	box, err := l.session.Box()
	if err != nil {
		return err
	}

	img, err := imagecodec.DecodeImage(l.session.Image().Data)
	if err != nil {
		return err
	}

	return overlay.Save(img, box, path)
}

// GetVersion returns the library version.
func GetVersion() string {
	return Version
}
