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

// NeoHookean is a fully coupled compressible Neo-Hookean law:
//
//	sigma = (mu/J) (b - I) + (lambda/J) ln(J) I
//
// with b = F F^T, following the Bonet & Wood compressible extension of
// the incompressible Neo-Hookean strain energy. It is homogeneous over
// the whole domain: Resolve binds directly to the two shared scalars.
type NeoHookean struct {
	Mu     float64
	Lambda float64
}

// NewNeoHookean builds a law with initial (mu, lambda) values, mirroring
// HyperElast1.GetPrms's role of supplying example parameter defaults.
func NewNeoHookean(mu, lambda float64) *NeoHookean {
	return &NeoHookean{Mu: mu, Lambda: lambda}
}

// Resolve implements material.Collaborator.
func (o *NeoHookean) Resolve(name string) (material.ScalarRef, error) {
	switch name {
	case "mu":
		return scalarPtr{&o.Mu}, nil
	case "lambda":
		return scalarPtr{&o.Lambda}, nil
	default:
		return nil, chk.Err("hyperlaw: NeoHookean has no parameter named %q", name)
	}
}

// Clone implements material.Collaborator. The law is homogeneous, so
// every (elem,gp) gets a fresh, independent scratch point.
func (o *NeoHookean) Clone(e, g int) (material.Point, error) {
	return &point{}, nil
}

// Uncoupled implements material.Collaborator: NeoHookean is always
// fully coupled.
func (o *NeoHookean) Uncoupled(e, g int) bool { return false }

// EvalCauchy implements material.Collaborator.
func (o *NeoHookean) EvalCauchy(p material.Point) (tensor.Mat3, error) {
	pt, ok := p.(*point)
	if !ok {
		return tensor.Mat3{}, chk.Err("hyperlaw: NeoHookean.EvalCauchy received a foreign Point")
	}
	F := pt.F
	J := F.Det()
	if J <= 0 {
		return tensor.Mat3{}, chk.Err("hyperlaw: NeoHookean.EvalCauchy: J=%g is not positive", J)
	}
	b := F.Mul(F.Transpose())
	I := tensor.Identity()
	var sigma tensor.Mat3
	lnJ := math.Log(J)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sigma[i][j] = (o.Mu/J)*(b[i][j]-I[i][j]) + (o.Lambda/J)*lnJ*I[i][j]
		}
	}
	return sigma, nil
}

// DevStress implements material.Collaborator but is never called for a
// fully coupled law; material.RecomputeStresses guards on Uncoupled.
func (o *NeoHookean) DevStress(p material.Point) (tensor.Mat3, error) {
	return tensor.Mat3{}, chk.Err("hyperlaw: NeoHookean is not an uncoupled material")
}
