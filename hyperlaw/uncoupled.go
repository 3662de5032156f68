// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hyperlaw

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/material"
	"github.com/vfmgo/vfmid/tensor"
)

// UncoupledNeoHookean is the deviatoric half of a deviatoric-volumetric
// split Neo-Hookean law:
//
//	bbar     = J^(-2/3) b,   b = F F^T
//	dev(sig) = (2*C10/J) dev(bbar)
//
// It carries no volumetric parameter: the driver recovers the full
// Cauchy stress from dev(sig) alone via the sigma_zz=0 convention
// (material.RecomputeStresses), so identification only ever touches
// C10.
type UncoupledNeoHookean struct {
	C10 float64
}

// NewUncoupledNeoHookean builds a law with an initial deviatoric shear
// coefficient.
func NewUncoupledNeoHookean(c10 float64) *UncoupledNeoHookean {
	return &UncoupledNeoHookean{C10: c10}
}

// Resolve implements material.Collaborator.
func (o *UncoupledNeoHookean) Resolve(name string) (material.ScalarRef, error) {
	if name != "C10" {
		return nil, chk.Err("hyperlaw: UncoupledNeoHookean has no parameter named %q", name)
	}
	return scalarPtr{&o.C10}, nil
}

// Clone implements material.Collaborator.
func (o *UncoupledNeoHookean) Clone(e, g int) (material.Point, error) {
	return &point{}, nil
}

// Uncoupled implements material.Collaborator: always true.
func (o *UncoupledNeoHookean) Uncoupled(e, g int) bool { return true }

// EvalCauchy implements material.Collaborator but is never called for
// an uncoupled law; material.RecomputeStresses always routes through
// DevStress instead.
func (o *UncoupledNeoHookean) EvalCauchy(p material.Point) (tensor.Mat3, error) {
	return tensor.Mat3{}, chk.Err("hyperlaw: UncoupledNeoHookean is an uncoupled material; use DevStress")
}

// DevStress implements material.Collaborator.
func (o *UncoupledNeoHookean) DevStress(p material.Point) (tensor.Mat3, error) {
	pt, ok := p.(*point)
	if !ok {
		return tensor.Mat3{}, chk.Err("hyperlaw: UncoupledNeoHookean.DevStress received a foreign Point")
	}
	F := pt.F
	J := F.Det()
	if J <= 0 {
		return tensor.Mat3{}, chk.Err("hyperlaw: UncoupledNeoHookean.DevStress: J=%g is not positive", J)
	}
	b := F.Mul(F.Transpose())
	cube := math.Cbrt(J)
	scale := 1.0 / (cube * cube)
	var bbar tensor.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			bbar[i][j] = scale * b[i][j]
		}
	}
	tr := bbar[0][0] + bbar[1][1] + bbar[2][2]
	var dev tensor.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := bbar[i][j]
			if i == j {
				d -= tr / 3.0
			}
			dev[i][j] = (2.0 * o.C10 / J) * d
		}
	}
	return dev, nil
}
