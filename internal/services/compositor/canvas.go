package compositor

import (
	"image"
	"image/draw"
)

// Visa photo output: 35mm x 45mm at 300 DPI.
const (
	VisaWidth  = 413
	VisaHeight = 531
)

// Canvas is the fixed-size output raster.
type Canvas struct {
	img *image.RGBA
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func NewVisaCanvas() *Canvas {
	return NewCanvas(VisaWidth, VisaHeight)
}

// Image exposes the pixel buffer. It is nil for a canvas without a context.
func (c *Canvas) Image() *image.RGBA {
	if c == nil {
		return nil
	}
	return c.img
}

func (c *Canvas) Width() int {
	if c.Image() == nil {
		return 0
	}
	return c.img.Bounds().Dx()
}

func (c *Canvas) Height() int {
	if c.Image() == nil {
		return 0
	}
	return c.img.Bounds().Dy()
}

// context returns the drawable buffer, or nil when there is nothing to draw on.
func (c *Canvas) context() *image.RGBA {
	img := c.Image()
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	return img
}

func (c *Canvas) clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// flattenAlpha turns every pixel that is not fully opaque into opaque white.
func flattenAlpha(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			if row[i+3] < 0xff {
				row[i], row[i+1], row[i+2], row[i+3] = 0xff, 0xff, 0xff, 0xff
			}
		}
	}
}

// TransparentPixels counts pixels with alpha below 255.
func (c *Canvas) TransparentPixels() int {
	img := c.Image()
	if img == nil {
		return 0
	}
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] < 0xff {
			n++
		}
	}
	return n
}
