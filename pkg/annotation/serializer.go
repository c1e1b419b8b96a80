package annotation

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/pzy2000/LabelMed/pkg/geometry"
)

// json is configured for deterministic output: stable struct field order and
// sorted map keys, matching the standard library.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SerializationError reports an annotation file that violates its invariants
// before write.
type SerializationError struct {
	Reason string
	Err    error
}

func (e *SerializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("annotation serialization failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("annotation serialization failed: %s", e.Reason)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Coord is a pixel coordinate in the wire format. It always renders in
// fixed-point notation with a decimal point (100.0, never 100 or 1e2) so
// output is byte-stable and matches the reference writer.
type Coord float64

// MarshalJSON implements json.Marshaler.
func (c Coord) MarshalJSON() ([]byte, error) {
	b := strconv.AppendFloat(nil, float64(c), 'f', -1, 64)
	if bytes.IndexByte(b, '.') < 0 {
		b = append(b, '.', '0')
	}
	return b, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coord) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", data, err)
	}
	*c = Coord(v)
	return nil
}

// Wire-level structs. Field order is the persisted key order.
type shapeJSON struct {
	Label       string                 `json:"label"`
	Points      [][2]Coord             `json:"points"`
	GroupID     *int                   `json:"group_id"`
	Description string                 `json:"description"`
	ShapeType   string                 `json:"shape_type"`
	Flags       map[string]interface{} `json:"flags"`
	Mask        interface{}            `json:"mask"`
}

type fileJSON struct {
	Version     string                 `json:"version"`
	Flags       map[string]interface{} `json:"flags"`
	Shapes      []shapeJSON            `json:"shapes"`
	ImagePath   string                 `json:"imagePath"`
	ImageData   string                 `json:"imageData"`
	ImageHeight int                    `json:"imageHeight"`
	ImageWidth  int                    `json:"imageWidth"`
}

// Marshal renders an annotation file into the external JSON schema. Output is
// total and deterministic: the same File value always yields byte-identical
// text. Invariant violations (invalid base64 image data, malformed box)
// surface as *SerializationError.
func Marshal(file File) ([]byte, error) {
	if _, err := base64.StdEncoding.DecodeString(file.Image.Data); err != nil {
		return nil, &SerializationError{Reason: "image data is not valid base64", Err: err}
	}

	out := fileJSON{
		Version:     file.Version,
		Flags:       file.Flags,
		Shapes:      make([]shapeJSON, 0, len(file.Shapes)),
		ImagePath:   file.Image.Path,
		ImageData:   file.Image.Data,
		ImageHeight: file.Image.Height,
		ImageWidth:  file.Image.Width,
	}
	if out.Flags == nil {
		out.Flags = map[string]interface{}{}
	}

	for i, record := range file.Shapes {
		if err := record.Box.Validate(file.Image.Width, file.Image.Height); err != nil {
			return nil, &SerializationError{Reason: fmt.Sprintf("shape %d has an invalid box", i), Err: err}
		}

		flags := record.ShapeFlags
		if flags == nil {
			flags = map[string]interface{}{}
		}

		out.Shapes = append(out.Shapes, shapeJSON{
			Label: record.Label,
			Points: [][2]Coord{
				{Coord(record.Box.TopLeft.X), Coord(record.Box.TopLeft.Y)},
				{Coord(record.Box.BottomRight.X), Coord(record.Box.BottomRight.Y)},
			},
			GroupID:     record.GroupID,
			Description: record.Description,
			ShapeType:   record.ShapeType,
			Flags:       flags,
			Mask:        record.Mask,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, &SerializationError{Reason: "encoding failed", Err: err}
	}
	return data, nil
}

// Unmarshal parses annotation JSON text back into a File. The original tool
// only writes; the parse direction exists to make the schema round-trip
// testable.
func Unmarshal(data []byte) (File, error) {
	var in fileJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return File{}, fmt.Errorf("failed to parse annotation file: %w", err)
	}

	file := File{
		Version: in.Version,
		Flags:   in.Flags,
		Shapes:  make([]Record, 0, len(in.Shapes)),
		Image: ImageMeta{
			Path:   in.ImagePath,
			Data:   in.ImageData,
			Width:  in.ImageWidth,
			Height: in.ImageHeight,
		},
	}

	for i, shape := range in.Shapes {
		if len(shape.Points) != 2 {
			return File{}, fmt.Errorf("shape %d: expected 2 rectangle points, got %d", i, len(shape.Points))
		}

		file.Shapes = append(file.Shapes, Record{
			Label: shape.Label,
			Box: geometry.BoundingBox{
				TopLeft:     geometry.Point{X: float64(shape.Points[0][0]), Y: float64(shape.Points[0][1])},
				BottomRight: geometry.Point{X: float64(shape.Points[1][0]), Y: float64(shape.Points[1][1])},
			},
			GroupID:     shape.GroupID,
			Description: shape.Description,
			ShapeType:   shape.ShapeType,
			ShapeFlags:  shape.Flags,
			Mask:        shape.Mask,
		})
	}

	return file, nil
}
