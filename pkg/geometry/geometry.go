package geometry

import "fmt"

// HalfExtent is the default half side length of the annotation rectangle,
// producing a nominal 600x600 square around the selected center.
const HalfExtent = 300

// Point is an image-space pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is an axis-aligned rectangle given by its top-left and
// bottom-right corners in image-space pixels.
type BoundingBox struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 {
	return b.BottomRight.X - b.TopLeft.X
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 {
	return b.BottomRight.Y - b.TopLeft.Y
}

// Validate checks the box invariants against the image dimensions: corners
// ordered top-left before bottom-right and both inside [0,width]x[0,height].
func (b BoundingBox) Validate(width, height int) error {
	if b.TopLeft.X > b.BottomRight.X || b.TopLeft.Y > b.BottomRight.Y {
		return fmt.Errorf("box corners out of order: (%g,%g)-(%g,%g)",
			b.TopLeft.X, b.TopLeft.Y, b.BottomRight.X, b.BottomRight.Y)
	}
	if b.TopLeft.X < 0 || b.TopLeft.Y < 0 ||
		b.BottomRight.X > float64(width) || b.BottomRight.Y > float64(height) {
		return fmt.Errorf("box (%g,%g)-(%g,%g) outside image bounds %dx%d",
			b.TopLeft.X, b.TopLeft.Y, b.BottomRight.X, b.BottomRight.Y, width, height)
	}
	return nil
}

// ComputeBox derives the clipped square around center for an image of the
// given dimensions. Clipping is one-sided: a center near an edge shrinks the
// box on that side only, it is never re-centered to preserve the nominal
// size.
func ComputeBox(center Point, half float64, width, height int) BoundingBox {
	return BoundingBox{
		TopLeft: Point{
			X: clamp(center.X-half, 0, float64(width)),
			Y: clamp(center.Y-half, 0, float64(height)),
		},
		BottomRight: Point{
			X: clamp(center.X+half, 0, float64(width)),
			Y: clamp(center.Y+half, 0, float64(height)),
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
