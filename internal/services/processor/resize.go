package processor

import (
	"image"

	"github.com/disintegration/imaging"
)

// resizer lets smartcrop downscale through imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}
