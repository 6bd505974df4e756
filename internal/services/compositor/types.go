package compositor

import (
	"fmt"
	"image"
	"math"
)

const (
	// AspectRatio of a French visa photo, 35mm x 45mm.
	AspectRatio = 35.0 / 45.0

	MinScale  = 0.5
	MaxScale  = 2.0
	MinRotate = -180.0
	MaxRotate = 180.0
)

// SourceImage is a decoded photo together with the size it was displayed at
// when the user picked the crop.
type SourceImage struct {
	Image         image.Image
	DisplayWidth  float64
	DisplayHeight float64
}

func NewSourceImage(img image.Image, displayWidth, displayHeight float64) SourceImage {
	return SourceImage{Image: img, DisplayWidth: displayWidth, DisplayHeight: displayHeight}
}

func (s SourceImage) NaturalSize() (float64, float64) {
	if s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// DisplaySize falls back to the natural size for unset dimensions.
func (s SourceImage) DisplaySize() (float64, float64) {
	nw, nh := s.NaturalSize()
	dw, dh := s.DisplayWidth, s.DisplayHeight
	if !(dw > 0) {
		dw = nw
	}
	if !(dh > 0) {
		dh = nh
	}
	return dw, dh
}

// DisplayScale returns natural pixels per display pixel on each axis.
func (s SourceImage) DisplayScale() (float64, float64) {
	nw, nh := s.NaturalSize()
	dw, dh := s.DisplaySize()
	if dw == 0 || dh == 0 {
		return 1, 1
	}
	return nw / dw, nh / dh
}

// CropRegion is a rectangle in display-space coordinates.
type CropRegion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (c CropRegion) Empty() bool {
	return !(c.Width > 0) || !(c.Height > 0)
}

// MatchesAspect reports whether width/height is within tolerance (relative) of ratio.
func (c CropRegion) MatchesAspect(ratio, tolerance float64) bool {
	if c.Empty() || ratio <= 0 {
		return false
	}
	return math.Abs(c.Width/c.Height-ratio)/ratio <= tolerance
}

// Natural maps the region into natural-pixel space.
func (c CropRegion) Natural(scaleX, scaleY float64) CropRegion {
	return CropRegion{
		X:      c.X * scaleX,
		Y:      c.Y * scaleY,
		Width:  c.Width * scaleX,
		Height: c.Height * scaleY,
	}
}

// Transform holds the zoom and rotate slider values.
type Transform struct {
	Scale         float64 `json:"scale"`
	RotateDegrees float64 `json:"rotate"`
}

func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

func (t Transform) Validate() error {
	if math.IsNaN(t.Scale) || t.Scale < MinScale || t.Scale > MaxScale {
		return fmt.Errorf("%w: scale %v outside [%v, %v]", ErrInvalidTransform, t.Scale, MinScale, MaxScale)
	}
	if math.IsNaN(t.RotateDegrees) || t.RotateDegrees < MinRotate || t.RotateDegrees > MaxRotate {
		return fmt.Errorf("%w: rotate %v outside [%v, %v]", ErrInvalidTransform, t.RotateDegrees, MinRotate, MaxRotate)
	}
	return nil
}

// Radians reduces the angle modulo one full turn before converting.
func (t Transform) Radians() float64 {
	return math.Mod(t.RotateDegrees, 360) * math.Pi / 180
}
