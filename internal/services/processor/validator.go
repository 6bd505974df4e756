package processor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/visa-photo/pkg/utils"
	_ "golang.org/x/image/webp"
)

// ValidateImage checks size, sniffed content type and header decodability,
// leaving the reader at the start. It returns the sniffed content type.
func (p *ImageProcessor) ValidateImage(file io.ReadSeeker) (string, error) {
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return "", fmt.Errorf("failed to read file size: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}

	if size > p.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes exceeds maximum allowed size %d", ErrFileTooLarge, size, p.maxFileSize)
	}

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	contentType := http.DetectContentType(head[:n])
	if !utils.IsValidImageType(contentType, p.allowedTypes) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}
	header, _, err := image.DecodeConfig(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := p.checkDimensions(header.Width, header.Height); err != nil {
		return "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}
	return contentType, nil
}

// DecodeImage decodes jpeg, png or webp data and applies EXIF orientation.
// The header is checked against the pixel limits before any pixel buffer is
// allocated.
func (p *ImageProcessor) DecodeImage(r io.Reader) (image.Image, error) {
	var head bytes.Buffer
	header, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := p.checkDimensions(header.Width, header.Height); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(io.MultiReader(&head, r), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

func (p *ImageProcessor) checkDimensions(width, height int) error {
	if width > p.maxDimension || height > p.maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds maximum dimension %d", ErrFileTooLarge, width, height, p.maxDimension)
	}
	if pixels := int64(width) * int64(height); pixels > p.maxPixels {
		return fmt.Errorf("%w: %d pixels exceeds maximum %d", ErrFileTooLarge, pixels, p.maxPixels)
	}
	return nil
}
