// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/kinematics"
	"github.com/vfmgo/vfmid/material"
	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/optimize"
	"github.com/vfmgo/vfmid/tensor"
)

// SolverKind selects which LM family an Options/Optimization solver
// selection resolves to.
type SolverKind int

const (
	// Levmar is unconstrained Levenberg-Marquardt.
	Levmar SolverKind = iota
	// ConstrainedLevmar is box-bounded Levenberg-Marquardt.
	ConstrainedLevmar
)

// SolverOptions surfaces the Options/Optimization block.
type SolverOptions struct {
	Solver           SolverKind
	Tau              float64
	GradTol          float64
	StepTol          float64
	ObjTol           float64
	FDStep           float64
	MaxIterations    int
	PlaneDeformation bool
	SaveVirtualWork  string // empty means unset
}

// ToOptimizeOptions maps SolverOptions onto optimize.Options, filling any
// zero-valued numeric knob from optimize.DefaultOptions.
func (s SolverOptions) ToOptimizeOptions() optimize.Options {
	d := optimize.DefaultOptions()
	if s.Tau != 0 {
		d.Tau = s.Tau
	}
	if s.GradTol != 0 {
		d.GradTol = s.GradTol
	}
	if s.StepTol != 0 {
		d.StepTol = s.StepTol
	}
	if s.ObjTol != 0 {
		d.ObjTol = s.ObjTol
	}
	if s.FDStep != 0 {
		d.FDStep = s.FDStep
	}
	if s.MaxIterations != 0 {
		d.MaxIterations = s.MaxIterations
	}
	if s.Solver == ConstrainedLevmar {
		d.Mode = optimize.Bounded
	} else {
		d.Mode = optimize.Unconstrained
	}
	return d
}

// VFMProblem is the fully-assembled, ready-to-solve problem. Mesh facts,
// the surface map, the measured/virtual displacement stores, the
// measured/virtual deformation stores and the external-virtual-work
// vector are all computed once during Build and are read-only thereafter.
// Stresses is rewritten on every residual evaluation.
type VFMProblem struct {
	Facts    *mesh.Facts
	MeshColl mesh.Collaborator
	MatColl  material.Collaborator
	Surfaces mesh.SurfaceMap

	Measured *field.MeasuredSeries
	Virtuals *field.VirtualFieldSet
	Loads    *field.LoadSeries

	MeasuredF *tensor.TimeSeries
	VirtualF  []*tensor.TimeSeries
	Stresses  *tensor.StressStore

	Params  []*material.Parameter
	Applier *material.Applier

	ExternalWork []float64
	Options      SolverOptions
}

// Theta0 returns the parameter vector Solve will start from: each
// Parameter's currently committed Value, which is Spec.Init until either
// Solve commits a converged theta or LoadCheckpoint restores one.
func (p *VFMProblem) Theta0() []float64 {
	out := make([]float64, len(p.Params))
	for i, q := range p.Params {
		out[i] = q.Value
	}
	return out
}

// Bounds returns the lo/hi vectors for bounded mode.
func (p *VFMProblem) Bounds() (lo, hi []float64) {
	lo = make([]float64, len(p.Params))
	hi = make([]float64, len(p.Params))
	for i, q := range p.Params {
		lo[i] = q.Spec.Lo
		hi[i] = q.Spec.Hi
	}
	return lo, hi
}

// kinematicsOptionsMeasured builds the measured-field reconstruction
// options: plane-deformation follows the caller's setting, det guard is
// always on.
func kinematicsOptionsMeasured(planeDeformation bool) kinematics.Options {
	return kinematics.Options{PlaneDeformation: planeDeformation, CheckDet: true}
}
