// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tensor implements fixed-size 3x3 tensor arithmetic used by the
// VFM kinematic, constitutive and virtual-work components. Deformation
// gradients, Cauchy and first-Piola stresses are all Mat3 values.
package tensor

import "math"

// Mat3 is a dense 3x3 tensor stored row-major.
type Mat3 [3][3]float64

// Identity returns I.
func Identity() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Vec3 is a 3-component vector.
type Vec3 [3]float64

// Dot returns the Euclidean inner product of two vectors.
func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// AddOuter adds the outer product u⊗g into m in place: m[i][j] += u[i]*g[j].
func (m *Mat3) AddOuter(u, g Vec3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] += u[i] * g[j]
		}
	}
}

// Sub returns a-b.
func (a Mat3) Sub(b Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] - b[i][j]
		}
	}
	return r
}

// Mul returns the matrix product a*b.
func (a Mat3) Mul(b Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

// Scale returns a scaled by s.
func (a Mat3) Scale(s float64) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] * s
		}
	}
	return r
}

// Transpose returns aᵀ.
func (a Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[j][i] = a[i][j]
		}
	}
	return r
}

// Det returns det(a).
func (a Mat3) Det() float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Inverse returns a⁻¹. Panics if det(a) is numerically zero; callers must
// guard with Det() first since a zero/negative Jacobian is a domain error,
// not a programming error.
func (a Mat3) Inverse() Mat3 {
	det := a.Det()
	if math.Abs(det) < 1e-300 {
		panic("tensor: singular Mat3")
	}
	inv := 1.0 / det
	var r Mat3
	r[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) * inv
	r[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * inv
	r[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * inv
	r[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) * inv
	r[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * inv
	r[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * inv
	r[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) * inv
	r[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * inv
	r[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * inv
	return r
}

// DotDot returns the full (possibly non-symmetric) double contraction a:b.
func (a Mat3) DotDot(b Mat3) float64 {
	var s float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += a[i][j] * b[i][j]
		}
	}
	return s
}

// Trace returns tr(a).
func (a Mat3) Trace() float64 {
	return a[0][0] + a[1][1] + a[2][2]
}

// IsSymmetric reports whether a is symmetric to within tol.
func (a Mat3) IsSymmetric(tol float64) bool {
	return math.Abs(a[0][1]-a[1][0]) <= tol &&
		math.Abs(a[0][2]-a[2][0]) <= tol &&
		math.Abs(a[1][2]-a[2][1]) <= tol
}

// FromSymmetric builds a symmetric Mat3 from its six independent entries.
func FromSymmetric(xx, yy, zz, xy, xz, yz float64) Mat3 {
	return Mat3{
		{xx, xy, xz},
		{xy, yy, yz},
		{xz, yz, zz},
	}
}
