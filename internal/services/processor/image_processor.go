package processor

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/phambaophuc/visa-photo/internal/config"
	"github.com/phambaophuc/visa-photo/internal/services/compositor"
	"github.com/phambaophuc/visa-photo/pkg/utils"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrDecode          = errors.New("invalid image data")
	ErrEmptyCrop       = errors.New("crop width and height must be positive")
)

const (
	defaultMaxPixels    int64 = 40_000_000
	defaultMaxDimension       = 12000
)

type ImageProcessor struct {
	compositor        *compositor.Compositor
	quality           int
	maxFileSize       int64
	maxPixels         int64
	maxDimension      int
	allowedTypes      []string
	watermark         string
	watermarkPosition string
	filename          string
	workers           int
}

// ExportRequest is one photo together with the crop the user picked for it.
type ExportRequest struct {
	Image         io.Reader
	Crop          compositor.CropRegion
	Transform     compositor.Transform
	DisplayWidth  float64
	DisplayHeight float64
	Watermark     bool
}

type ExportResult struct {
	Data     []byte
	DataURL  string
	Filename string
	Width    int
	Height   int
}

func NewImageProcessor(cfg config.PhotoConfig) (*ImageProcessor, error) {
	interp, err := compositor.InterpolatorByName(cfg.Interpolation)
	if err != nil {
		return nil, err
	}

	position, err := parseWatermarkPosition(cfg.WatermarkPosition)
	if err != nil {
		return nil, err
	}

	workers := cfg.BatchWorkers
	if workers < 1 {
		workers = 1
	}
	maxPixels := cfg.MaxPixels
	if maxPixels <= 0 {
		maxPixels = defaultMaxPixels
	}
	maxDimension := cfg.MaxDimension
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}

	return &ImageProcessor{
		compositor:        compositor.New(interp),
		quality:           cfg.JPEGQuality,
		maxFileSize:       cfg.MaxFileSize,
		maxPixels:         maxPixels,
		maxDimension:      maxDimension,
		allowedTypes:      cfg.AllowedTypes,
		watermark:         cfg.WatermarkText,
		watermarkPosition: position,
		filename:          cfg.Filename,
		workers:           workers,
	}, nil
}

// Export renders the photo onto a fresh visa canvas and encodes it as JPEG.
func (p *ImageProcessor) Export(req ExportRequest) (*ExportResult, error) {
	if req.Crop.Empty() {
		return nil, ErrEmptyCrop
	}
	if err := req.Transform.Validate(); err != nil {
		return nil, err
	}

	img, err := p.DecodeImage(req.Image)
	if err != nil {
		return nil, err
	}

	canvas := compositor.NewVisaCanvas()
	src := compositor.NewSourceImage(img, req.DisplayWidth, req.DisplayHeight)
	if err := p.compositor.Render(src, req.Crop, req.Transform, canvas); err != nil {
		return nil, fmt.Errorf("failed to render photo: %w", err)
	}

	if req.Watermark && p.watermark != "" {
		p.addTextWatermark(canvas.Image(), p.watermark, p.watermarkPosition, 0.6)
	}

	buffer := &bytes.Buffer{}
	if err := p.encodeImage(buffer, canvas.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ExportResult{
		Data:     buffer.Bytes(),
		DataURL:  utils.DataURL("image/jpeg", buffer.Bytes()),
		Filename: p.filename,
		Width:    canvas.Width(),
		Height:   canvas.Height(),
	}, nil
}

// WatermarkEnabled reports whether free-tier exports get a watermark.
func (p *ImageProcessor) WatermarkEnabled() bool {
	return p.watermark != ""
}
