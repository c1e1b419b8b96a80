// Package annotation models a single labeled rectangle plus its source image
// metadata and renders it into the labelme JSON schema.
package annotation

import (
	"github.com/pzy2000/LabelMed/pkg/geometry"
)

// FormatVersion is the labelme schema version written to exported files.
const FormatVersion = "5.8.3"

// ShapeRectangle is the only shape type this tool produces.
const ShapeRectangle = "rectangle"

// Record is the in-memory model of one labeled shape.
type Record struct {
	Label       string
	Box         geometry.BoundingBox
	GroupID     *int
	Description string
	ShapeType   string
	ShapeFlags  map[string]interface{}
	Mask        interface{}
}

// ImageMeta carries the source image identity and its embedded content.
// Data holds the base64 encoding of the full original file bytes.
type ImageMeta struct {
	Path   string
	Width  int
	Height int
	Data   string
}

// File is the in-memory form of one persisted annotation document.
type File struct {
	Version string
	Flags   map[string]interface{}
	Shapes  []Record
	Image   ImageMeta
}

// NewRecord builds a Record with the fixed defaults of this tool: rectangle
// shape, no group, empty description and flags, no mask.
func NewRecord(label string, box geometry.BoundingBox) Record {
	return Record{
		Label:      label,
		Box:        box,
		ShapeType:  ShapeRectangle,
		ShapeFlags: map[string]interface{}{},
	}
}

// NewFile wraps a single record and image metadata into an annotation file
// value ready for serialization. Exactly one shape per file in this design.
func NewFile(record Record, meta ImageMeta) File {
	return File{
		Version: FormatVersion,
		Flags:   map[string]interface{}{},
		Shapes:  []Record{record},
		Image:   meta,
	}
}
