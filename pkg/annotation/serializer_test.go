package annotation

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/pzy2000/LabelMed/pkg/geometry"
)

func testFile() File {
	box := geometry.BoundingBox{
		TopLeft:     geometry.Point{X: 100, Y: 0},
		BottomRight: geometry.Point{X: 700, Y: 600},
	}

	meta := ImageMeta{
		Path:   "x.png",
		Width:  800,
		Height: 600,
		Data:   base64.StdEncoding.EncodeToString([]byte("raw image bytes")),
	}

	return NewFile(NewRecord("d", box), meta)
}

func TestNewRecordDefaults(t *testing.T) {
	record := NewRecord("d", geometry.BoundingBox{})

	if record.Label != "d" {
		t.Errorf("Expected label %q, got %q", "d", record.Label)
	}

	if record.ShapeType != ShapeRectangle {
		t.Errorf("Expected shape type %q, got %q", ShapeRectangle, record.ShapeType)
	}

	if record.GroupID != nil {
		t.Error("Expected nil group ID by default")
	}

	if record.Description != "" {
		t.Errorf("Expected empty description, got %q", record.Description)
	}

	if record.ShapeFlags == nil || len(record.ShapeFlags) != 0 {
		t.Error("Expected empty non-nil shape flags")
	}

	if record.Mask != nil {
		t.Error("Expected nil mask by default")
	}
}

func TestNewFileDefaults(t *testing.T) {
	file := testFile()

	if file.Version != FormatVersion {
		t.Errorf("Expected version %q, got %q", FormatVersion, file.Version)
	}

	if len(file.Shapes) != 1 {
		t.Errorf("Expected exactly one shape, got %d", len(file.Shapes))
	}

	if file.Flags == nil || len(file.Flags) != 0 {
		t.Error("Expected empty non-nil file flags")
	}
}

func TestMarshalSchema(t *testing.T) {
	data, err := Marshal(testFile())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	text := string(data)
	for _, want := range []string{
		`"version": "5.8.3"`,
		`"label": "d"`,
		`"group_id": null`,
		`"description": ""`,
		`"shape_type": "rectangle"`,
		`"mask": null`,
		`"imagePath": "x.png"`,
		`"imageHeight": 600`,
		`"imageWidth": 800`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Output missing %s", want)
		}
	}

	// Coordinates render in fixed-point notation with a decimal point.
	for _, want := range []string{"100.0", "0.0", "700.0", "600.0"} {
		if !strings.Contains(text, want) {
			t.Errorf("Output missing fixed-point coordinate %s", want)
		}
	}

	if strings.Contains(text, "e+") || strings.Contains(text, "E+") {
		t.Error("Coordinates must not use scientific notation")
	}
}

func TestMarshalDeterministic(t *testing.T) {
	file := testFile()

	first, err := Marshal(file)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	second, err := Marshal(file)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Same file value must yield byte-identical output")
	}
}

func TestRoundTrip(t *testing.T) {
	original, err := Marshal(testFile())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	parsed, err := Unmarshal(original)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	again, err := Marshal(parsed)
	if err != nil {
		t.Fatalf("Re-marshal failed: %v", err)
	}

	if !bytes.Equal(original, again) {
		t.Errorf("Round trip not byte-identical:\nfirst:  %s\nsecond: %s", original, again)
	}
}

func TestUnmarshalValues(t *testing.T) {
	data, err := Marshal(testFile())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(parsed.Shapes) != 1 {
		t.Fatalf("Expected 1 shape, got %d", len(parsed.Shapes))
	}

	box := parsed.Shapes[0].Box
	if box.TopLeft.X != 100 || box.TopLeft.Y != 0 {
		t.Errorf("Expected top-left (100,0), got (%g,%g)", box.TopLeft.X, box.TopLeft.Y)
	}
	if box.BottomRight.X != 700 || box.BottomRight.Y != 600 {
		t.Errorf("Expected bottom-right (700,600), got (%g,%g)", box.BottomRight.X, box.BottomRight.Y)
	}

	if parsed.Image.Width != 800 || parsed.Image.Height != 600 {
		t.Errorf("Expected image 800x600, got %dx%d", parsed.Image.Width, parsed.Image.Height)
	}
}

func TestMarshalInvalidBase64(t *testing.T) {
	file := testFile()
	file.Image.Data = "this is !!! not base64"

	_, err := Marshal(file)
	if err == nil {
		t.Fatal("Expected error for invalid base64 image data")
	}

	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Errorf("Expected *SerializationError, got %T", err)
	}
}

func TestMarshalInvalidBox(t *testing.T) {
	file := testFile()
	file.Shapes[0].Box = geometry.BoundingBox{
		TopLeft:     geometry.Point{X: 700, Y: 600},
		BottomRight: geometry.Point{X: 100, Y: 0},
	}

	_, err := Marshal(file)
	if err == nil {
		t.Fatal("Expected error for inverted box corners")
	}

	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Errorf("Expected *SerializationError, got %T", err)
	}
}

func TestMarshalBoxOutsideImage(t *testing.T) {
	file := testFile()
	file.Shapes[0].Box.BottomRight.X = 900

	if _, err := Marshal(file); err == nil {
		t.Error("Expected error for box outside image bounds")
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	if _, err := Unmarshal([]byte("{not json")); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestUnmarshalWrongPointCount(t *testing.T) {
	data := `{
  "version": "5.8.3",
  "flags": {},
  "shapes": [
    {
      "label": "d",
      "points": [[0.0, 0.0], [10.0, 10.0], [20.0, 20.0]],
      "group_id": null,
      "description": "",
      "shape_type": "rectangle",
      "flags": {},
      "mask": null
    }
  ],
  "imagePath": "x.png",
  "imageData": "",
  "imageHeight": 600,
  "imageWidth": 800
}`

	if _, err := Unmarshal([]byte(data)); err == nil {
		t.Error("Expected error for rectangle with more than 2 points")
	}
}

func BenchmarkMarshal(b *testing.B) {
	file := testFile()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Marshal(file)
	}
}
