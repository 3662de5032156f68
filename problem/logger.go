// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package problem assembles the VFM core (mesh facts, stores, kinematic
// reconstruction, constitutive driver, virtual-work assemblers and the
// bounded LM driver) into the end-to-end setup/solve pipeline.
package problem

import (
	"github.com/cpmech/gosl/io"

	"github.com/vfmgo/vfmid/optimize"
)

// IOLogger routes solver observability through github.com/cpmech/gosl/io:
// Pf for plain lines, PfYel for the termination summary line.
type IOLogger struct {
	Verbose bool
}

// Eval implements optimize.Logger.
func (l IOLogger) Eval(evalIdx int, cost float64, costKnown bool, theta []float64) {
	if !l.Verbose {
		return
	}
	if costKnown {
		io.Pf("eval %4d cost=%.6e theta=%v\n", evalIdx, cost, theta)
	} else {
		io.Pf("eval %4d cost=N/A theta=%v\n", evalIdx, theta)
	}
}

// Done implements optimize.Logger.
func (l IOLogger) Done(info optimize.Info) {
	if !l.Verbose {
		return
	}
	io.PfYel("LM done: reason=%q iters=%d nfev=%d njac=%d nsolve=%d\n",
		info.StopReason, info.Iterations, info.NFuncEvals, info.NJacobianEval, info.NLinearSolves)
	io.Pf("  initial cost = %.6e\n", info.InitialCost)
	io.Pf("  final cost   = %.6e\n", info.FinalCost)
	io.Pf("  |Jt e|_inf   = %.6e\n", info.GradInfNorm)
	io.Pf("  |dtheta|     = %.6e\n", info.StepNorm)
	io.Pf("  trust scale  = %.6e\n", info.TrustScale)
}
