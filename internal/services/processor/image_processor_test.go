package processor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/phambaophuc/visa-photo/internal/config"
	"github.com/phambaophuc/visa-photo/internal/services/compositor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.PhotoConfig {
	return config.PhotoConfig{
		MaxFileSize:   1 << 20,
		AllowedTypes:  []string{"image/jpeg", "image/png", "image/webp"},
		JPEGQuality:   92,
		Interpolation: "bilinear",
		MaxBatch:      10,
		BatchWorkers:  2,
		Filename:      "french-visa-photo.jpg",
	}
}

func newTestProcessor(t *testing.T, mutate ...func(*config.PhotoConfig)) *ImageProcessor {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	p, err := NewImageProcessor(cfg)
	require.NoError(t, err)
	return p
}

func pngBytes(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func isNearly(c color.Color, r, g, b uint8) bool {
	cr, cg, cb, _ := c.RGBA()
	near := func(got uint32, want uint8) bool {
		d := int(got>>8) - int(want)
		return d >= -8 && d <= 8
	}
	return near(cr, r) && near(cg, g) && near(cb, b)
}

func TestExportFullFrame(t *testing.T) {
	p := newTestProcessor(t)

	res, err := p.Export(ExportRequest{
		Image:     bytes.NewReader(pngBytes(t, 1000, 1000, color.RGBA{200, 30, 30, 255})),
		Crop:      compositor.CropRegion{Width: 1000, Height: 1000},
		Transform: compositor.IdentityTransform(),
	})
	require.NoError(t, err)

	assert.Equal(t, compositor.VisaWidth, res.Width)
	assert.Equal(t, compositor.VisaHeight, res.Height)
	assert.Equal(t, "french-visa-photo.jpg", res.Filename)

	img := decodeJPEG(t, res.Data)
	assert.Equal(t, image.Rect(0, 0, 413, 531), img.Bounds())
	assert.True(t, isNearly(img.At(206, 265), 200, 30, 30), "centre keeps the photo colour")
	assert.True(t, isNearly(img.At(206, 10), 255, 255, 255), "letterbox band is white")

	payload, ok := strings.CutPrefix(res.DataURL, "data:image/jpeg;base64,")
	require.True(t, ok)
	data, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, res.Data, data)
}

func TestExportIsDeterministic(t *testing.T) {
	p := newTestProcessor(t)
	src := pngBytes(t, 640, 480, color.RGBA{20, 120, 220, 255})
	req := func() ExportRequest {
		return ExportRequest{
			Image:         bytes.NewReader(src),
			Crop:          compositor.CropRegion{X: 30, Y: 20, Width: 140, Height: 180},
			Transform:     compositor.Transform{Scale: 1.2, RotateDegrees: -12},
			DisplayWidth:  320,
			DisplayHeight: 240,
		}
	}

	first, err := p.Export(req())
	require.NoError(t, err)
	second, err := p.Export(req())
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
}

func TestExportRejectsBadInput(t *testing.T) {
	p := newTestProcessor(t)
	src := pngBytes(t, 100, 100, color.White)

	_, err := p.Export(ExportRequest{Image: bytes.NewReader(src), Transform: compositor.IdentityTransform()})
	assert.ErrorIs(t, err, ErrEmptyCrop)

	_, err = p.Export(ExportRequest{
		Image:     bytes.NewReader(src),
		Crop:      compositor.CropRegion{Width: 35, Height: 45},
		Transform: compositor.Transform{Scale: 3},
	})
	assert.ErrorIs(t, err, compositor.ErrInvalidTransform)

	_, err = p.Export(ExportRequest{
		Image:     bytes.NewReader([]byte("not an image")),
		Crop:      compositor.CropRegion{Width: 35, Height: 45},
		Transform: compositor.IdentityTransform(),
	})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestExportWatermark(t *testing.T) {
	src := pngBytes(t, 350, 450, color.RGBA{250, 250, 250, 255})
	req := func(watermark bool) ExportRequest {
		return ExportRequest{
			Image:     bytes.NewReader(src),
			Crop:      compositor.CropRegion{Width: 350, Height: 450},
			Transform: compositor.IdentityTransform(),
			Watermark: watermark,
		}
	}

	p := newTestProcessor(t, func(c *config.PhotoConfig) { c.WatermarkText = "visa photo preview" })
	assert.True(t, p.WatermarkEnabled())

	plain, err := p.Export(req(false))
	require.NoError(t, err)
	marked, err := p.Export(req(true))
	require.NoError(t, err)
	assert.NotEqual(t, plain.Data, marked.Data)

	noText := newTestProcessor(t)
	assert.False(t, noText.WatermarkEnabled())
	unmarked, err := noText.Export(req(true))
	require.NoError(t, err)
	assert.Equal(t, plain.Data, unmarked.Data)
}

func TestExportWatermarkPosition(t *testing.T) {
	src := pngBytes(t, 350, 450, color.RGBA{250, 250, 250, 255})
	topLeft := image.Rect(10, 10, 140, 26)

	darkest := func(position string) uint32 {
		p := newTestProcessor(t, func(c *config.PhotoConfig) {
			c.WatermarkText = "visa photo preview"
			c.WatermarkPosition = position
		})
		res, err := p.Export(ExportRequest{
			Image:     bytes.NewReader(src),
			Crop:      compositor.CropRegion{Width: 350, Height: 450},
			Transform: compositor.IdentityTransform(),
			Watermark: true,
		})
		require.NoError(t, err)

		img := decodeJPEG(t, res.Data)
		lowest := uint32(0xffff)
		for y := topLeft.Min.Y; y < topLeft.Max.Y; y++ {
			for x := topLeft.Min.X; x < topLeft.Max.X; x++ {
				r, _, _, _ := img.At(x, y).RGBA()
				lowest = min(lowest, r)
			}
		}
		return lowest >> 8
	}

	assert.Less(t, darkest("top-left"), uint32(215))
	assert.Greater(t, darkest("bottom-right"), uint32(235))

	_, err := NewImageProcessor(func() config.PhotoConfig {
		cfg := testConfig()
		cfg.WatermarkPosition = "middle"
		return cfg
	}())
	assert.Error(t, err)
}

func TestValidateImage(t *testing.T) {
	p := newTestProcessor(t, func(c *config.PhotoConfig) { c.MaxFileSize = 4096 })

	r := bytes.NewReader(pngBytes(t, 10, 10, color.Black))
	ct, err := p.ValidateImage(r)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	pos, _ := r.Seek(0, 1)
	assert.Zero(t, pos, "reader is rewound")

	_, err = p.ValidateImage(bytes.NewReader(make([]byte, 5000)))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = p.ValidateImage(bytes.NewReader([]byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	_, err = p.ValidateImage(bytes.NewReader(corrupt))
	assert.ErrorIs(t, err, ErrDecode)
}

// pngHeader is a PNG signature plus an IHDR chunk claiming width x height,
// with no pixel data behind it.
func pngHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], width)
	binary.BigEndian.PutUint32(ihdr[4:], height)
	ihdr[8], ihdr[9] = 8, 6 // 8-bit RGBA

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestValidateImageRejectsHugeDimensions(t *testing.T) {
	p := newTestProcessor(t)

	bomb := pngHeader(60000, 60000)
	require.Less(t, len(bomb), 100)

	_, err := p.ValidateImage(bytes.NewReader(bomb))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = p.DecodeImage(bytes.NewReader(bomb))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = p.Export(ExportRequest{
		Image:     bytes.NewReader(bomb),
		Crop:      compositor.CropRegion{Width: 35, Height: 45},
		Transform: compositor.IdentityTransform(),
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestValidateImagePixelLimits(t *testing.T) {
	src := pngBytes(t, 20, 10, color.White)

	tests := []struct {
		name   string
		mutate func(*config.PhotoConfig)
		err    error
	}{
		{"within limits", func(c *config.PhotoConfig) { c.MaxPixels, c.MaxDimension = 200, 20 }, nil},
		{"dimension too large", func(c *config.PhotoConfig) { c.MaxDimension = 16 }, ErrFileTooLarge},
		{"too many pixels", func(c *config.PhotoConfig) { c.MaxPixels = 150 }, ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProcessor(t, tt.mutate)
			_, err := p.ValidateImage(bytes.NewReader(src))
			if tt.err == nil {
				require.NoError(t, err)
				img, err := p.DecodeImage(bytes.NewReader(src))
				require.NoError(t, err)
				assert.Equal(t, 20, img.Bounds().Dx())
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewImageProcessorRejectsUnknownInterpolation(t *testing.T) {
	cfg := testConfig()
	cfg.Interpolation = "sinc"
	_, err := NewImageProcessor(cfg)
	assert.Error(t, err)
}

func TestExportBatchKeepsOrder(t *testing.T) {
	p := newTestProcessor(t)
	colors := []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}}

	var reqs []ExportRequest
	for _, c := range colors {
		reqs = append(reqs, ExportRequest{
			Image:     bytes.NewReader(pngBytes(t, 70, 90, c)),
			Crop:      compositor.CropRegion{Width: 70, Height: 90},
			Transform: compositor.IdentityTransform(),
		})
	}

	results, err := p.ExportBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(colors))

	for i, c := range colors {
		img := decodeJPEG(t, results[i].Data)
		assert.True(t, isNearly(img.At(206, 265), c.R, c.G, c.B), "photo %d", i)
	}
}

func TestExportBatchFailsOnBadPhoto(t *testing.T) {
	p := newTestProcessor(t)
	reqs := []ExportRequest{
		{
			Image:     bytes.NewReader(pngBytes(t, 70, 90, color.White)),
			Crop:      compositor.CropRegion{Width: 70, Height: 90},
			Transform: compositor.IdentityTransform(),
		},
		{
			Image:     bytes.NewReader([]byte("broken")),
			Crop:      compositor.CropRegion{Width: 70, Height: 90},
			Transform: compositor.IdentityTransform(),
		},
	}

	_, err := p.ExportBatch(context.Background(), reqs)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "photo 1")
}
