// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package hyperlaw provides sample material.Collaborator implementations:
// a fully coupled compressible Neo-Hookean law and an uncoupled
// deviatoric-only Neo-Hookean law, in the parameter-table idiom of
// msolid.HyperElast1 (Init/GetPrms) but re-targeted at the deformation
// gradient rather than the small-strain tensor.
package hyperlaw

import (
	"github.com/vfmgo/vfmid/tensor"
)

// scalarPtr adapts a *float64 field to material.ScalarRef, the way
// HyperElast1's named parameter fields (κ, κb, G0, ...) are addressed by
// name in Init/GetPrms — here the addressing happens once, at Resolve
// time, instead of on every Update call.
type scalarPtr struct{ p *float64 }

func (s scalarPtr) Get() float64  { return *s.p }
func (s scalarPtr) Set(v float64) { *s.p = v }

// point is the per-(elem,gp) working state shared by both laws in this
// package: the current deformation gradient, set once per residual
// evaluation by material.RecomputeStresses.
type point struct {
	F tensor.Mat3
}

func (pt *point) SetF(F tensor.Mat3) { pt.F = F }

// ZeroScratch clears per-point working state carried between evaluations.
// This point holds no such state — F is the injected input, not scratch —
// so there is nothing to clear.
func (pt *point) ZeroScratch() {}
