// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optimize implements the bounded Levenberg-Marquardt driver used
// to identify constitutive parameters from a virtual-work residual. The
// trust-region step-acceptance/damping loop is hand-rolled; the linear
// algebra (normal-equation solve) and the finite-difference Jacobian are
// delegated to gonum.org/v1/gonum.
package optimize

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Mode selects unconstrained or box-bounded minimization.
type Mode int

const (
	// Unconstrained runs plain Levenberg-Marquardt with no projection.
	Unconstrained Mode = iota
	// Bounded projects every trial step onto [Lo,Hi].
	Bounded
)

// Options carries the solver knobs.
type Options struct {
	Mode          Mode
	Tau           float64 // trust-region initialization scale
	GradTol       float64 // inf-norm(J^T r) tolerance
	StepTol       float64 // norm(delta theta) tolerance
	ObjTol        float64 // relative cost-decrease tolerance
	FDStep        float64 // finite-difference scale
	MaxIterations int
}

// DefaultOptions returns conservative defaults (max iterations 100; the
// rest match common Levenberg-Marquardt practice).
func DefaultOptions() Options {
	return Options{
		Mode:          Unconstrained,
		Tau:           1e-3,
		GradTol:       1e-12,
		StepTol:       1e-12,
		ObjTol:        1e-15,
		FDStep:        1e-6,
		MaxIterations: 100,
	}
}

// ResidualFunc evaluates r(theta). Implementations compose parameter
// application, constitutive recompute and virtual-work assembly; a
// callback failure is signalled via the returned error, not a panic.
type ResidualFunc func(theta []float64) ([]float64, error)

// Logger receives per-evaluation and per-termination observability lines.
// The default implementation writes through github.com/cpmech/gosl/io
// (see problem.IOLogger).
type Logger interface {
	Eval(evalIdx int, cost float64, costKnown bool, theta []float64)
	Done(info Info)
}

// NopLogger discards all observability output.
type NopLogger struct{}

// Eval implements Logger.
func (NopLogger) Eval(int, float64, bool, []float64) {}

// Done implements Logger.
func (NopLogger) Done(Info) {}

// Info reports the termination diagnostics.
type Info struct {
	InitialCost   float64
	FinalCost     float64
	GradInfNorm   float64
	StepNorm      float64
	TrustScale    float64
	Iterations    int
	StopReason    string
	NFuncEvals    int
	NJacobianEval int
	NLinearSolves int
	Interrupted   bool
}

// Result is the outcome of Run.
type Result struct {
	Theta []float64
	Info  Info
}

// Driver runs a bounded Levenberg-Marquardt minimization of
// (1/2)*norm(r(theta))^2 subject to box bounds.
type Driver struct {
	Opts   Options
	Logger Logger
	Cancel *CancelFlag
}

// NewDriver builds a Driver with the given options; if logger is nil,
// NopLogger is used; if cancel is nil, a fresh, never-set flag is used.
func NewDriver(opts Options, logger Logger, cancel *CancelFlag) *Driver {
	if logger == nil {
		logger = NopLogger{}
	}
	if cancel == nil {
		cancel = NewCancelFlag()
	}
	return &Driver{Opts: opts, Logger: logger, Cancel: cancel}
}

// wrappedResidual applies the state-discipline: it polls the cancellation
// flag first, latches a fail flag on any callback error or cancellation,
// and after latching always returns a zero vector of the last-known
// dimension.
type wrappedResidual struct {
	inner    ResidualFunc
	cancel   *CancelFlag
	failed   bool
	failErr  error
	nEvals   int
	lastDim  int
	logger   Logger
	costKnwn bool
}

func (w *wrappedResidual) call(theta []float64) []float64 {
	w.nEvals++
	if w.failed {
		return make([]float64, w.lastDim)
	}
	if w.cancel.IsSet() {
		w.failed = true
		w.failErr = chk.Err("optimization interrupted")
		return make([]float64, w.lastDim)
	}
	r, err := w.inner(theta)
	if err != nil {
		w.failed = true
		w.failErr = err
		return make([]float64, w.lastDim)
	}
	w.lastDim = len(r)
	cost := 0.5 * floats.Dot(r, r)
	w.logger.Eval(w.nEvals, cost, true, theta)
	return r
}

// jacobian fills jac with the finite-difference Jacobian of w at theta,
// one column at a time. In Bounded mode, a column whose forward probe
// theta[j]+FDStep would cross hi[j] is evaluated with fd.Backward instead
// of fd.Forward, and the probe actually sent to w is clamped to [lo,hi]
// as a last resort — so no probe ever violates the box, matching what
// dlevmar_bc_dif's bounded finite differencing guarantees. Unconstrained
// mode is unchanged: every column uses fd.Forward.
func (d *Driver) jacobian(jac *mat.Dense, theta, lo, hi []float64, w *wrappedResidual) {
	n, m := jac.Dims()
	probe := append([]float64(nil), theta...)
	col := mat.NewDense(n, 1, nil)

	for j := 0; j < m; j++ {
		formula := fd.Forward
		if d.Opts.Mode == Bounded && theta[j]+d.Opts.FDStep > hi[j] {
			formula = fd.Backward
		}
		settings := &fd.JacobianSettings{Formula: formula, Step: d.Opts.FDStep}

		g := func(y, xj []float64) {
			v := xj[0]
			if d.Opts.Mode == Bounded {
				if v < lo[j] {
					v = lo[j]
				}
				if v > hi[j] {
					v = hi[j]
				}
			}
			probe[j] = v
			out := w.call(probe)
			copy(y, out)
			probe[j] = theta[j]
		}

		fd.Jacobian(col, g, []float64{theta[j]}, settings)
		if w.failed {
			return
		}
		for i := 0; i < n; i++ {
			jac.Set(i, j, col.At(i, 0))
		}
	}
}

// Run executes the bounded LM iteration. theta0, lo and hi must all have
// the same length (lo/hi may be nil for Options.Mode == Unconstrained).
// residualDim is the expected residual length (the external-work vector
// length); a mismatch on the first evaluation is a fatal optimization
// error.
func (d *Driver) Run(theta0, lo, hi []float64, residualDim int, residual ResidualFunc) (Result, error) {
	m := len(theta0)
	if m == 0 {
		return Result{Theta: nil, Info: Info{StopReason: "no parameters"}}, nil
	}
	if residualDim == 0 {
		return Result{}, chk.Err("optimize: external work vector is empty")
	}
	if d.Opts.Mode == Bounded && (len(lo) != m || len(hi) != m) {
		return Result{}, chk.Err("optimize: bounds length mismatch: m=%d lo=%d hi=%d", m, len(lo), len(hi))
	}

	w := &wrappedResidual{inner: residual, cancel: d.Cancel, lastDim: residualDim, logger: d.Logger}

	theta := append([]float64(nil), theta0...)
	r0 := w.call(theta)
	if w.failed {
		return d.finish(theta0, theta0, w, Info{StopReason: "residual evaluation failed on first call"}, residual)
	}
	if len(r0) != residualDim {
		return Result{}, chk.Err("optimize: residual dimension %d differs from external-work vector length %d", len(r0), residualDim)
	}

	n := residualDim
	cost := 0.5 * floats.Dot(r0, r0)
	initialCost := cost

	jac := mat.NewDense(n, m, nil)
	nJacEvals, nLinSolves := 0, 0

	lambda := d.Opts.Tau

	var lastStepNorm, lastGradInf float64
	stopReason := "max iterations reached"
	iter := 0

	for ; iter < d.Opts.MaxIterations; iter++ {
		if w.failed {
			break
		}

		d.jacobian(jac, theta, lo, hi, w)
		nJacEvals++
		if w.failed {
			break
		}

		rvec := mat.NewVecDense(n, r0)
		var jt mat.Dense
		jt.CloneFrom(jac.T())
		var jtj mat.Dense
		jtj.Mul(&jt, jac)
		var jtr mat.VecDense
		jtr.MulVec(&jt, rvec)

		gradInf := 0.0
		for i := 0; i < m; i++ {
			gradInf = math.Max(gradInf, math.Abs(jtr.AtVec(i)))
		}
		lastGradInf = gradInf
		if gradInf < d.Opts.GradTol {
			stopReason = "gradient tolerance reached"
			break
		}

		accepted := false
		for attempt := 0; attempt < 30 && !accepted && !w.failed; attempt++ {
			var A mat.Dense
			A.CloneFrom(&jtj)
			for i := 0; i < m; i++ {
				A.Set(i, i, A.At(i, i)+lambda*jtj.At(i, i))
			}
			var negJtr mat.VecDense
			negJtr.ScaleVec(-1, &jtr)

			var delta mat.VecDense
			if err := delta.SolveVec(&A, &negJtr); err != nil {
				lambda *= 10
				continue
			}
			nLinSolves++

			trial := make([]float64, m)
			stepNorm := 0.0
			for i := 0; i < m; i++ {
				trial[i] = theta[i] + delta.AtVec(i)
				if d.Opts.Mode == Bounded {
					if trial[i] < lo[i] {
						trial[i] = lo[i]
					}
					if trial[i] > hi[i] {
						trial[i] = hi[i]
					}
				}
				stepNorm += (trial[i] - theta[i]) * (trial[i] - theta[i])
			}
			stepNorm = math.Sqrt(stepNorm)
			lastStepNorm = stepNorm

			rTrial := w.call(trial)
			if w.failed {
				break
			}
			costTrial := 0.5 * floats.Dot(rTrial, rTrial)

			if costTrial < cost {
				accepted = true
				relDecrease := math.Abs(cost-costTrial) / math.Max(cost, 1e-300)
				theta = trial
				r0 = rTrial
				cost = costTrial
				lambda = math.Max(lambda/10, 1e-15)

				if stepNorm < d.Opts.StepTol {
					stopReason = "step tolerance reached"
					iter++
					goto done
				}
				if relDecrease < d.Opts.ObjTol {
					stopReason = "objective tolerance reached"
					iter++
					goto done
				}
			} else {
				lambda *= 10
			}
		}
		if !accepted && !w.failed {
			stopReason = "trust-region radius collapsed"
			break
		}
	}
done:

	info := Info{
		InitialCost:   initialCost,
		FinalCost:     cost,
		GradInfNorm:   lastGradInf,
		StepNorm:      lastStepNorm,
		TrustScale:    lambda,
		Iterations:    iter,
		StopReason:    stopReason,
		NFuncEvals:    w.nEvals,
		NJacobianEval: nJacEvals,
		NLinearSolves: nLinSolves,
	}

	return d.finish(theta0, theta, w, info, residual)
}

// finish implements on-success/on-failure state discipline: on any
// non-success exit (failure or cancellation) it restores theta0 by
// re-invoking residual once more, which re-applies theta0 to the
// constitutive collaborator and rebuilds stress histories as a side
// effect; on success it re-invokes residual with theta* for the same
// reason.
func (d *Driver) finish(theta0, thetaFinal []float64, w *wrappedResidual, info Info, residual ResidualFunc) (Result, error) {
	if w.failed {
		info.Interrupted = true
		if info.StopReason == "" || info.StopReason == "max iterations reached" {
			info.StopReason = w.failErr.Error()
		}
		info.NFuncEvals = w.nEvals
		if _, err := residual(theta0); err != nil {
			d.Logger.Done(info)
			return Result{}, chk.Err("optimize: %v (state restoration also failed: %v)", w.failErr, err)
		}
		d.Logger.Done(info)
		return Result{}, w.failErr
	}

	if _, err := residual(thetaFinal); err != nil {
		return Result{}, chk.Err("optimize: final commit of theta* failed: %v", err)
	}
	d.Logger.Done(info)
	return Result{Theta: thetaFinal, Info: info}, nil
}
