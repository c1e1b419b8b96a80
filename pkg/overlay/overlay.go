// Package overlay renders the selected bounding box onto a copy of the
// image, the headless counterpart of the on-screen rectangle preview.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pzy2000/LabelMed/pkg/geometry"
)

// Stroke width of the rectangle outline in pixels.
const strokeWidth = 2

// Yellow matches the reference tool's rectangle pen.
var boxColor = color.NRGBA{255, 255, 0, 255}

// Draw returns a copy of img with the bounding box outline painted on.
// The source image is never modified.
func Draw(img image.Image, box geometry.BoundingBox) *image.NRGBA {
	out := imaging.Clone(img)

	x0, y0 := int(box.TopLeft.X+0.5), int(box.TopLeft.Y+0.5)
	x1, y1 := int(box.BottomRight.X+0.5), int(box.BottomRight.Y+0.5)

	for s := 0; s < strokeWidth; s++ {
		drawHLine(out, y0+s, x0, x1, boxColor)
		drawHLine(out, y1-1-s, x0, x1, boxColor)
		drawVLine(out, x0+s, y0, y1, boxColor)
		drawVLine(out, x1-1-s, y0, y1, boxColor)
	}

	return out
}

// Save draws the box onto img and writes the result to path. The output
// format follows the file extension.
func Save(img image.Image, box geometry.BoundingBox, path string) error {
	if err := imaging.Save(Draw(img, box), path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
