package processor

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
)

func (p *ImageProcessor) encodeImage(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(p.quality))
}
