package processor

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	positionTopLeft     = "top-left"
	positionBottomRight = "bottom-right"
	positionCenter      = "center"
)

// parseWatermarkPosition defaults an empty position to bottom-right.
func parseWatermarkPosition(s string) (string, error) {
	switch s {
	case "":
		return positionBottomRight, nil
	case positionTopLeft, positionBottomRight, positionCenter:
		return s, nil
	default:
		return "", fmt.Errorf("unknown watermark position %q", s)
	}
}

// addTextWatermark draws text over an opaque canvas, blending it so the
// result stays fully opaque.
func (p *ImageProcessor) addTextWatermark(img *image.RGBA, text, position string, opacity float64) {
	bounds := img.Bounds()
	face := basicfont.Face7x13

	d := &font.Drawer{Dst: img, Face: face}
	width := d.MeasureString(text).Ceil()
	height := face.Metrics().Height.Ceil()

	var x, y int
	switch position {
	case positionTopLeft:
		x, y = 10, 10+height
	case positionCenter:
		x, y = (bounds.Dx()-width)/2, bounds.Dy()/2
	default:
		x, y = bounds.Dx()-width-10, bounds.Dy()-10
	}

	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	a := uint8(255 * opacity)
	// Premultiplied grey.
	d.Src = image.NewUniform(color.RGBA{R: a / 2, G: a / 2, B: a / 2, A: a})
	d.Dot = fixed.Point26_6{X: fixed.I(bounds.Min.X + x), Y: fixed.I(bounds.Min.Y + y)}
	d.DrawString(text)
}
