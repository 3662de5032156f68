// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/material"
	"github.com/vfmgo/vfmid/optimize"
	"github.com/vfmgo/vfmid/vfm"
)

// residual composes the LM callback: apply theta, recompute sigma then P,
// assemble W_int, subtract the precomputed W_ext. Parameter application
// strictly happens-before stress recomputation, which strictly
// happens-before internal-work assembly, because each step's output is
// consumed synchronously by the next.
func (p *VFMProblem) residual(theta []float64) ([]float64, error) {
	if err := p.Applier.Apply(theta); err != nil {
		return nil, err
	}
	if err := material.RecomputeStresses(p.MatColl, p.Facts, p.MeasuredF, p.Stresses); err != nil {
		return nil, err
	}
	iw, err := vfm.InternalWork(p.Facts, p.VirtualF, p.Stresses)
	if err != nil {
		return nil, err
	}
	if len(iw) != len(p.ExternalWork) {
		return nil, chk.Err("problem: internal-work vector length %d differs from external-work vector length %d", len(iw), len(p.ExternalWork))
	}
	r := make([]float64, len(iw))
	for i := range iw {
		r[i] = iw[i] - p.ExternalWork[i]
	}
	return r, nil
}

// Solve runs the bounded LM identification to completion. On success,
// theta* is committed to the constitutive collaborator and Stresses
// reflects the converged parameters. On failure or cancellation, theta
// and Stresses are restored to match Theta0 exactly, because the LM
// driver's state-discipline re-invokes this residual with theta0 as its
// last act on any non-success exit.
func (p *VFMProblem) Solve(logger optimize.Logger, cancel *optimize.CancelFlag) (optimize.Result, error) {
	if len(p.Params) == 0 {
		return optimize.Result{Theta: nil, Info: optimize.Info{StopReason: "no parameters to optimize"}}, nil
	}
	if len(p.ExternalWork) == 0 {
		return optimize.Result{Theta: p.Theta0(), Info: optimize.Info{StopReason: "external work vector empty; nothing to optimize"}}, nil
	}

	opts := p.Options.ToOptimizeOptions()
	driver := optimize.NewDriver(opts, logger, cancel)

	theta0 := p.Theta0()
	lo, hi := p.Bounds()

	return driver.Run(theta0, lo, hi, len(p.ExternalWork), p.residual)
}
