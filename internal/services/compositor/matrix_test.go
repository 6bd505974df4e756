package compositor

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f64"
)

func assertPoint(t *testing.T, m f64.Aff3, x, y, wantX, wantY float64) {
	t.Helper()
	gotX, gotY := Apply(m, x, y)
	assert.InDelta(t, wantX, gotX, 1e-9, "x")
	assert.InDelta(t, wantY, gotY, 1e-9, "y")
}

func TestMulIdentity(t *testing.T) {
	m := f64.Aff3{2, 3, 4, 5, 6, 7}
	assert.Equal(t, m, Mul(Identity(), m))
	assert.Equal(t, m, Mul(m, Identity()))
}

func TestRotateIsClockwiseOnScreen(t *testing.T) {
	assertPoint(t, Rotate(math.Pi/2), 1, 0, 0, 1)
	assertPoint(t, Rotate(math.Pi/2), 0, 1, -1, 0)
}

func TestChainAppliesLastMatrixFirst(t *testing.T) {
	m := Chain(Translate(10, 0), Scale(2, 2))
	assertPoint(t, m, 1, 1, 12, 2)

	m = Chain(Scale(2, 2), Translate(10, 0))
	assertPoint(t, m, 1, 1, 22, 2)
}

func TestViewportPivotsOnCanvasCentre(t *testing.T) {
	w, h := float64(VisaWidth), float64(VisaHeight)

	assertPoint(t, viewport(w, h, IdentityTransform()), 13, 17, 13, 17)

	half := viewport(w, h, Transform{Scale: 1, RotateDegrees: 180})
	assertPoint(t, half, 0, 0, w, h)
	assertPoint(t, half, w/2, h/2, w/2, h/2)

	zoom := viewport(w, h, Transform{Scale: 2})
	assertPoint(t, zoom, w/2, h/2, w/2, h/2)
	assertPoint(t, zoom, w/2+10, h/2, w/2+20, h/2)
}

func TestSourceToCanvasCentresTheCrop(t *testing.T) {
	src := NewSourceImage(image.NewRGBA(image.Rect(0, 0, 1000, 1000)), 500, 500)
	crop := CropRegion{X: 100, Y: 100, Width: 100, Height: 100}

	m, natural := sourceToCanvas(src, crop, IdentityTransform(), VisaWidth, VisaHeight)

	assert.Equal(t, CropRegion{X: 200, Y: 200, Width: 200, Height: 200}, natural)
	// The natural crop corners land on a 413x413 square centred vertically.
	assertPoint(t, m, 200, 200, 0, 59)
	assertPoint(t, m, 400, 400, 413, 472)
}
