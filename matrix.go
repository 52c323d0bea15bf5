package ggblit

import (
	"errors"
	"math"

	"github.com/gogpu/gg"
)

// Fixed is a signed 16.16 fixed-point number.
type Fixed int32

// FixedOne is 1.0 in 16.16.
const FixedOne Fixed = 0x10000

// FixedFromFloat converts f to the nearest 16.16 value.
func FixedFromFloat(f float64) Fixed {
	return Fixed(math.Round(f * float64(FixedOne)))
}

// Float returns x as a float64.
func (x Fixed) Float() float64 {
	return float64(x) / float64(FixedOne)
}

// Matrix is a 3x3 fixed-point transformation matrix in row-major order:
//
//	| xx  xy  x0 |
//	| yx  yy  y0 |
//	| 0   0   1  |
//
// The last row must describe an affine transform.
type Matrix [9]Fixed

// ErrProjectiveMatrix is returned for matrices whose last row is not 0 0 1.
var ErrProjectiveMatrix = errors.New("ggblit: projective matrices are not supported")

// The four transforms a blit can be run with.
var (
	IdentityMatrix = Matrix{
		0x10000, 0x00000, 0x00000,
		0x00000, 0x10000, 0x00000,
		0x00000, 0x00000, 0x10000,
	}

	// RotateMatrix rotates by 30 degrees (cos = 0x0DDB3, sin = 0x08000).
	RotateMatrix = Matrix{
		0x0DDB3, -0x08000, 0x00000,
		0x08000, 0x0DDB3, 0x00000,
		0x00000, 0x00000, 0x10000,
	}

	// TranslateMatrix moves by (8, 15).
	TranslateMatrix = Matrix{
		0x10000, 0x00000, 0x80000,
		0x00000, 0x10000, 0xF0000,
		0x00000, 0x00000, 0x10000,
	}

	// ShearMatrix shears horizontally by 1.25.
	ShearMatrix = Matrix{
		0x10000, 0x14000, 0x00000,
		0x00000, 0x10000, 0x00000,
		0x00000, 0x00000, 0x10000,
	}
)

// SelectMatrix picks the blit transform. Rotation wins over translation,
// which wins over shear.
func SelectMatrix(rotate, translate, shear bool) Matrix {
	switch {
	case rotate:
		return RotateMatrix
	case translate:
		return TranslateMatrix
	case shear:
		return ShearMatrix
	default:
		return IdentityMatrix
	}
}

// Validate reports whether m can be used as an affine transform.
func (m Matrix) Validate() error {
	if m[6] != 0 || m[7] != 0 || m[8] != FixedOne {
		return ErrProjectiveMatrix
	}
	return nil
}

// Affine converts m to the library's floating-point matrix.
func (m Matrix) Affine() gg.Matrix {
	return gg.Matrix{
		A: m[0].Float(), B: m[1].Float(), C: m[2].Float(),
		D: m[3].Float(), E: m[4].Float(), F: m[5].Float(),
	}
}

// MatrixFromAffine converts a library matrix to fixed point.
func MatrixFromAffine(a gg.Matrix) Matrix {
	return Matrix{
		FixedFromFloat(a.A), FixedFromFloat(a.B), FixedFromFloat(a.C),
		FixedFromFloat(a.D), FixedFromFloat(a.E), FixedFromFloat(a.F),
		0, 0, FixedOne,
	}
}

// Name returns a short label for the four predefined transforms.
func (m Matrix) Name() string {
	switch m {
	case IdentityMatrix:
		return "identity"
	case RotateMatrix:
		return "rotate"
	case TranslateMatrix:
		return "translate"
	case ShearMatrix:
		return "shear"
	default:
		return "custom"
	}
}
