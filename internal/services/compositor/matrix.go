package compositor

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrices are 2x3 row-major affine transforms: (x, y) -> (m[0]x + m[1]y + m[2], m[3]x + m[4]y + m[5]).

func Identity() f64.Aff3 {
	return f64.Aff3{1, 0, 0, 0, 1, 0}
}

func Translate(tx, ty float64) f64.Aff3 {
	return f64.Aff3{1, 0, tx, 0, 1, ty}
}

func Scale(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// Rotate turns clockwise on screen, where y grows downwards.
func Rotate(radians float64) f64.Aff3 {
	sin, cos := math.Sincos(radians)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// Mul returns m*n: the resulting matrix applies n first, then m.
func Mul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// Chain composes matrices in the order a drawing context would receive them:
// Chain(a, b, c) == a*b*c, so c touches the point first.
func Chain(ms ...f64.Aff3) f64.Aff3 {
	out := Identity()
	for _, m := range ms {
		out = Mul(out, m)
	}
	return out
}

func Apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// viewport pivots rotation and zoom around the canvas centre.
func viewport(width, height float64, t Transform) f64.Aff3 {
	cx, cy := width/2, height/2
	return Chain(
		Translate(cx, cy),
		Rotate(t.Radians()),
		Scale(t.Scale, t.Scale),
		Translate(-cx, -cy),
	)
}
