// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package meshfe provides a sample mesh.Collaborator: a structured grid
// of 8-node hexahedral (trilinear brick) elements in the reference
// configuration, reimplemented from scratch in the style of gofem's
// shp/ele separation (shape functions kept local to the element,
// gradients computed once against nodal reference coordinates) since
// the retrieved fork only kept shp/testing.go.
package meshfe

import (
	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/tensor"
)

// hex8Natural lists the eight corner nodes of the standard trilinear
// brick in natural coordinates, in the node order every element's
// connectivity must follow.
var hex8Natural = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// gaussPoint1 is the single interior Gauss point of full 1-point
// quadrature (r=s=t=0, weight=8).
var gaussPoint1 = [][4]float64{{0, 0, 0, 8}}

// gaussPoint8 is the standard 2x2x2 Gauss quadrature rule.
var gaussPoint8 = buildGauss8()

func buildGauss8() [][4]float64 {
	a := 1.0 / sqrt3
	pts := make([][4]float64, 0, 8)
	for _, r := range []float64{-a, a} {
		for _, s := range []float64{-a, a} {
			for _, t := range []float64{-a, a} {
				pts = append(pts, [4]float64{r, s, t, 1})
			}
		}
	}
	return pts
}

const sqrt3 = 1.7320508075688772

// hex8Shape evaluates the eight trilinear shape functions and their
// natural-coordinate derivatives at (r,s,t).
func hex8Shape(r, s, t float64) (N [8]float64, dNdr [8][3]float64) {
	for a := 0; a < 8; a++ {
		ra, sa, ta := hex8Natural[a][0], hex8Natural[a][1], hex8Natural[a][2]
		N[a] = 0.125 * (1 + r*ra) * (1 + s*sa) * (1 + t*ta)
		dNdr[a][0] = 0.125 * ra * (1 + s*sa) * (1 + t*ta)
		dNdr[a][1] = 0.125 * sa * (1 + r*ra) * (1 + t*ta)
		dNdr[a][2] = 0.125 * ta * (1 + r*ra) * (1 + s*sa)
	}
	return
}

// hex8GradAndJW computes, for one element's reference nodal coordinates
// Xe and one natural-coordinate Gauss point, the physical (reference)
// shape gradients grad_N[a] = J^-1 dN[a]/dr and the scalar det(J)*weight.
func hex8GradAndJW(Xe [8][3]float64, r, s, t, weight float64) (grad [8]tensor.Vec3, jw float64, err error) {
	_, dNdr := hex8Shape(r, s, t)

	var J tensor.Mat3
	for a := 0; a < 8; a++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				J[i][j] += Xe[a][i] * dNdr[a][j]
			}
		}
	}
	detJ := J.Det()
	if detJ <= 0 {
		return grad, 0, chk.Err("meshfe: element has non-positive reference Jacobian determinant %g (inverted or degenerate hex8)", detJ)
	}
	Jinv := J.Inverse()
	for a := 0; a < 8; a++ {
		var g tensor.Vec3
		for i := 0; i < 3; i++ {
			var sum float64
			for j := 0; j < 3; j++ {
				sum += Jinv[j][i] * dNdr[a][j]
			}
			g[i] = sum
		}
		grad[a] = g
	}
	jw = detJ * weight
	return
}
