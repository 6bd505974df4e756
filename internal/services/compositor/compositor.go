package compositor

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

var (
	ErrNoDrawingContext = errors.New("no 2d drawing context")
	ErrNoSource         = errors.New("no source image")
	ErrInvalidTransform = errors.New("invalid transform")
)

// Compositor renders a crop of a source photo onto a fixed-size canvas.
type Compositor struct {
	interpolator xdraw.Interpolator
}

func New(interpolator xdraw.Interpolator) *Compositor {
	if interpolator == nil {
		interpolator = xdraw.BiLinear
	}
	return &Compositor{interpolator: interpolator}
}

// InterpolatorByName maps a config value to an x/image/draw interpolator.
func InterpolatorByName(name string) (xdraw.Interpolator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bilinear":
		return xdraw.BiLinear, nil
	case "approxbilinear":
		return xdraw.ApproxBiLinear, nil
	case "nearest", "nearestneighbor":
		return xdraw.NearestNeighbor, nil
	case "catmullrom":
		return xdraw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("unknown interpolator %q", name)
	}
}

// Render replaces the canvas content with the cropped, zoomed and rotated
// source. Transparent canvas pixels, including corners uncovered by rotation,
// end up opaque white. An empty crop leaves the canvas untouched.
func (c *Compositor) Render(src SourceImage, crop CropRegion, t Transform, canvas *Canvas) error {
	if crop.Empty() {
		return nil
	}
	dst := canvas.context()
	if dst == nil {
		return ErrNoDrawingContext
	}
	if src.Image == nil {
		return ErrNoSource
	}

	canvas.clear()

	s2d, natural := sourceToCanvas(src, crop, t, float64(canvas.Width()), float64(canvas.Height()))
	if sr := sourceRect(natural, src.Image.Bounds()); !sr.Empty() {
		c.interpolator.Transform(dst, s2d, src.Image, sr, xdraw.Over, nil)
	}

	flattenAlpha(dst)
	return nil
}

// sourceRect covers the natural crop with whole pixels, clipped to the image.
func sourceRect(natural CropRegion, bounds image.Rectangle) image.Rectangle {
	r := image.Rect(
		int(math.Floor(natural.X)),
		int(math.Floor(natural.Y)),
		int(math.Ceil(natural.X+natural.Width)),
		int(math.Ceil(natural.Y+natural.Height)),
	).Add(bounds.Min)
	return r.Intersect(bounds)
}

// sourceToCanvas composes viewport * T(drawX, drawY) * S(ratio) * T(-crop) and
// returns it with the crop in natural-pixel space.
func sourceToCanvas(src SourceImage, crop CropRegion, t Transform, cw, ch float64) (f64.Aff3, CropRegion) {
	scaleX, scaleY := src.DisplayScale()
	natural := crop.Natural(scaleX, scaleY)

	ratio := math.Min(cw/natural.Width, ch/natural.Height)
	drawW, drawH := natural.Width*ratio, natural.Height*ratio
	drawX, drawY := (cw-drawW)/2, (ch-drawH)/2

	origin := src.Image.Bounds().Min
	return Chain(
		viewport(cw, ch, t),
		Translate(drawX, drawY),
		Scale(ratio, ratio),
		Translate(-natural.X-float64(origin.X), -natural.Y-float64(origin.Y)),
	), natural
}
