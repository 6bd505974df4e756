package processor

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
	"github.com/phambaophuc/visa-photo/internal/services/compositor"
)

type CropMode string

const (
	CropModeCenter CropMode = "center"
	CropModeSmart  CropMode = "smart"

	// initialCropWidth is the share of the displayed width the first crop covers.
	initialCropWidth = 0.9
)

func ParseCropMode(s string) (CropMode, error) {
	switch CropMode(s) {
	case "", CropModeCenter:
		return CropModeCenter, nil
	case CropModeSmart:
		return CropModeSmart, nil
	default:
		return "", fmt.Errorf("unknown crop mode %q", s)
	}
}

// SuggestCrop proposes a 35:45 crop in display space for the image shown at
// displayWidth x displayHeight (zero means natural size).
func (p *ImageProcessor) SuggestCrop(img image.Image, displayWidth, displayHeight float64, mode CropMode) (compositor.CropRegion, error) {
	src := compositor.NewSourceImage(img, displayWidth, displayHeight)
	dw, dh := src.DisplaySize()
	if dw <= 0 || dh <= 0 {
		return compositor.CropRegion{}, fmt.Errorf("%w: empty image", ErrDecode)
	}

	switch mode {
	case CropModeSmart:
		return p.smartCrop(src)
	default:
		return centerAspectCrop(dw, dh, compositor.AspectRatio), nil
	}
}

// centerAspectCrop takes 90% of the width at the given aspect, shrinks it to
// fit the height, and centres it.
func centerAspectCrop(mediaWidth, mediaHeight, aspect float64) compositor.CropRegion {
	width := mediaWidth * initialCropWidth
	height := width / aspect
	if height > mediaHeight {
		height = mediaHeight
		width = height * aspect
	}
	if width > mediaWidth {
		width = mediaWidth
		height = width / aspect
	}

	return compositor.CropRegion{
		X:      (mediaWidth - width) / 2,
		Y:      (mediaHeight - height) / 2,
		Width:  width,
		Height: height,
	}
}

func (p *ImageProcessor) smartCrop(src compositor.SourceImage) (compositor.CropRegion, error) {
	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: imaging.Lanczos})

	best, err := analyzer.FindBestCrop(src.Image, 35, 45)
	if err != nil {
		return compositor.CropRegion{}, fmt.Errorf("finding best crop: %w", err)
	}

	scaleX, scaleY := src.DisplayScale()
	return compositor.CropRegion{
		X:      round2(float64(best.Min.X) / scaleX),
		Y:      round2(float64(best.Min.Y) / scaleY),
		Width:  round2(float64(best.Dx()) / scaleX),
		Height: round2(float64(best.Dy()) / scaleY),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
