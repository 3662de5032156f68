// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/hyperlaw"
	"github.com/vfmgo/vfmid/kinematics"
	"github.com/vfmgo/vfmid/material"
	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/meshfe"
	"github.com/vfmgo/vfmid/optimize"
	"github.com/vfmgo/vfmid/tensor"
	"github.com/vfmgo/vfmid/vfm"
)

func buildBrick(t *testing.T) (*meshfe.HexMesh, *mesh.Facts) {
	t.Helper()
	m, err := meshfe.NewBrick(1, 1, 1, 1, 1, 1, 8)
	require.NoError(t, err)
	facts, err := mesh.Build(m)
	require.NoError(t, err)
	return m, facts
}

func uniaxialField(m *meshfe.HexMesh, facts *mesh.Facts, stretch float64) field.NodalField {
	u := field.NewNodalField(facts.NNodes())
	for idx := 0; idx < facts.NNodes(); idx++ {
		x := m.NodeCoord(idx)
		u.U[idx] = [3]float64{(stretch - 1) * x[0], 0, 0}
	}
	return u
}

// TestSolveZeroDisplacementIdentityStaysAtTheta0 exercises the
// zero-displacement identity invariant end to end through the LM driver: a
// coupled Neo-Hookean law has sigma(I)=0 for any mu, so the residual is
// identically zero and the gradient tolerance is met on the very first
// evaluation, leaving theta untouched.
func TestSolveZeroDisplacementIdentityStaysAtTheta0(t *testing.T) {
	m, facts := buildBrick(t)
	law := hyperlaw.NewNeoHookean(1.0, 1.0)

	measured := field.NewMeasuredSeries([]field.NodalField{field.NewNodalField(facts.NNodes())})
	virtualNF := field.NewNodalField(facts.NNodes())
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{virtualNF}})
	loads := field.NewLoadSeries([]field.LoadFrame{{Time: 0}})

	params := []*material.Parameter{
		{Spec: material.Spec{Name: "mu", Init: 0.42, Lo: 0, Hi: 10, Scale: 1}, Value: 0.42},
	}

	p, err := Build(BuildInput{
		Mesh: m, Material: law,
		Measured: measured, Virtuals: virtuals, Loads: loads,
		Params: params, Options: SolverOptions{},
	})
	require.NoError(t, err)

	res, err := p.Solve(optimize.NopLogger{}, optimize.NewCancelFlag())
	require.NoError(t, err)
	assert.Equal(t, 0.42, res.Theta[0])
	assert.Equal(t, 0, res.Info.Iterations)
}

// TestSolveUniaxialRecoversMu builds a scenario where the internal-work
// residual is exactly linear in mu (Lambda pinned at 0, so P = mu * P_unit
// for a fixed measured/virtual deformation pair), calibrates the external
// work to the value that makes mu=1.0 the exact root, and checks that LM
// recovers it starting from theta0=0.7.
func TestSolveUniaxialRecoversMu(t *testing.T) {
	m, facts := buildBrick(t)
	law := hyperlaw.NewNeoHookean(1.0, 0.0)

	measuredU := uniaxialField(m, facts, 1.10)
	measuredF, err := kinematics.ReconstructMeasured(m, facts, field.NewMeasuredSeries([]field.NodalField{measuredU}), kinematics.Options{CheckDet: true})
	require.NoError(t, err)

	virtualU := uniaxialField(m, facts, 1.05)
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{virtualU}})
	virtualF, err := kinematics.ReconstructVirtual(m, facts, virtuals, true)
	require.NoError(t, err)

	// calibrate: internal work at mu=1 becomes the external-work target.
	calibParams := []*material.Parameter{{Spec: material.Spec{Name: "mu", Init: 1.0, Lo: 0, Hi: 10, Scale: 1}, Value: 1.0}}
	calibApplier, err := material.NewApplier(law, calibParams)
	require.NoError(t, err)
	require.NoError(t, calibApplier.Apply([]float64{1.0}))

	calibStresses := tensor.NewStressStore(facts.Shape(), measuredF.NTimes())
	require.NoError(t, material.RecomputeStresses(law, facts, measuredF, calibStresses))
	target, err := vfm.InternalWork(facts, virtualF, calibStresses)
	require.NoError(t, err)
	require.Len(t, target, 1)

	params := []*material.Parameter{{Spec: material.Spec{Name: "mu", Init: 0.7, Lo: 0, Hi: 10, Scale: 1}, Value: 0.7}}
	applier, err := material.NewApplier(law, params)
	require.NoError(t, err)

	p := &VFMProblem{
		Facts: facts, MeshColl: m, MatColl: law,
		Surfaces:     mesh.SurfaceMap{},
		Measured:     field.NewMeasuredSeries([]field.NodalField{measuredU}),
		Virtuals:     virtuals,
		Loads:        field.NewLoadSeries(nil),
		MeasuredF:    measuredF,
		VirtualF:     virtualF,
		Stresses:     tensor.NewStressStore(facts.Shape(), measuredF.NTimes()),
		Params:       params,
		Applier:      applier,
		ExternalWork: target,
		Options:      SolverOptions{},
	}

	res, err := p.Solve(optimize.NopLogger{}, optimize.NewCancelFlag())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Theta[0], 1e-4)
}

// TestSolveBoundedClampsToUpperBound mirrors the recovery scenario above but
// caps mu's upper bound below the unconstrained root, so the converged
// value must sit exactly on the boundary.
func TestSolveBoundedClampsToUpperBound(t *testing.T) {
	m, facts := buildBrick(t)
	law := hyperlaw.NewNeoHookean(1.0, 0.0)

	measuredU := uniaxialField(m, facts, 1.10)
	measuredF, err := kinematics.ReconstructMeasured(m, facts, field.NewMeasuredSeries([]field.NodalField{measuredU}), kinematics.Options{CheckDet: true})
	require.NoError(t, err)

	virtualU := uniaxialField(m, facts, 1.05)
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{virtualU}})
	virtualF, err := kinematics.ReconstructVirtual(m, facts, virtuals, true)
	require.NoError(t, err)

	calibParams := []*material.Parameter{{Spec: material.Spec{Name: "mu", Init: 1.0, Lo: 0, Hi: 10, Scale: 1}, Value: 1.0}}
	calibApplier, err := material.NewApplier(law, calibParams)
	require.NoError(t, err)
	require.NoError(t, calibApplier.Apply([]float64{1.0}))
	calibStresses := tensor.NewStressStore(facts.Shape(), measuredF.NTimes())
	require.NoError(t, material.RecomputeStresses(law, facts, measuredF, calibStresses))
	target, err := vfm.InternalWork(facts, virtualF, calibStresses)
	require.NoError(t, err)

	params := []*material.Parameter{{Spec: material.Spec{Name: "mu", Init: 0.7, Lo: 0, Hi: 0.9, Scale: 1}, Value: 0.7}}
	applier, err := material.NewApplier(law, params)
	require.NoError(t, err)

	p := &VFMProblem{
		Facts: facts, MeshColl: m, MatColl: law,
		Surfaces:     mesh.SurfaceMap{},
		Measured:     field.NewMeasuredSeries([]field.NodalField{measuredU}),
		Virtuals:     virtuals,
		Loads:        field.NewLoadSeries(nil),
		MeasuredF:    measuredF,
		VirtualF:     virtualF,
		Stresses:     tensor.NewStressStore(facts.Shape(), measuredF.NTimes()),
		Params:       params,
		Applier:      applier,
		ExternalWork: target,
		Options:      SolverOptions{Solver: ConstrainedLevmar},
	}

	res, err := p.Solve(optimize.NopLogger{}, optimize.NewCancelFlag())
	require.NoError(t, err)
	assert.Equal(t, 0.9, res.Theta[0])
}

// TestSolveCancellationRestoresTheta0Bitwise exercises the cancellation
// state-discipline: requesting cancellation before Solve is even called
// makes the very first residual evaluation fail, and the LM driver's
// restoration step re-applies theta0 exactly.
func TestSolveCancellationRestoresTheta0Bitwise(t *testing.T) {
	m, facts := buildBrick(t)
	law := hyperlaw.NewNeoHookean(1.0, 1.0)

	measured := field.NewMeasuredSeries([]field.NodalField{field.NewNodalField(facts.NNodes())})
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{field.NewNodalField(facts.NNodes())}})
	loads := field.NewLoadSeries([]field.LoadFrame{{Time: 0}})

	params := []*material.Parameter{
		{Spec: material.Spec{Name: "mu", Init: 0.7, Lo: 0, Hi: 10, Scale: 1}, Value: 0.7},
	}

	p, err := Build(BuildInput{
		Mesh: m, Material: law,
		Measured: measured, Virtuals: virtuals, Loads: loads,
		Params: params, Options: SolverOptions{},
	})
	require.NoError(t, err)

	cancel := optimize.NewCancelFlag()
	cancel.Request()

	_, err = p.Solve(optimize.NopLogger{}, cancel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optimization interrupted")
	assert.Equal(t, 0.7, law.Mu)
}

// TestSolveMultiVirtualFieldResidualLength checks that residual assembly
// dispatches per-field, producing one residual entry per (virtual field,
// time) pair.
func TestSolveMultiVirtualFieldResidualLength(t *testing.T) {
	m, facts := buildBrick(t)
	law := hyperlaw.NewNeoHookean(1.0, 1.0)

	measured := field.NewMeasuredSeries([]field.NodalField{field.NewNodalField(facts.NNodes())})
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{
		{field.NewNodalField(facts.NNodes())},
		{field.NewNodalField(facts.NNodes())},
	})
	loads := field.NewLoadSeries([]field.LoadFrame{{Time: 0}})

	params := []*material.Parameter{
		{Spec: material.Spec{Name: "mu", Init: 1.0, Lo: 0, Hi: 10, Scale: 1}, Value: 1.0},
	}

	p, err := Build(BuildInput{
		Mesh: m, Material: law,
		Measured: measured, Virtuals: virtuals, Loads: loads,
		Params: params, Options: SolverOptions{},
	})
	require.NoError(t, err)
	assert.Len(t, p.ExternalWork, 2)
}

// TestSolveVirtualFieldSingleFrameAcrossMultipleMeasuredTimes checks the
// frame-count dispatch rule when a single-frame virtual field is reused
// across every measured time.
func TestSolveVirtualFieldSingleFrameAcrossMultipleMeasuredTimes(t *testing.T) {
	m, facts := buildBrick(t)
	law := hyperlaw.NewNeoHookean(1.0, 1.0)

	measured := field.NewMeasuredSeries([]field.NodalField{
		field.NewNodalField(facts.NNodes()),
		field.NewNodalField(facts.NNodes()),
	})
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{field.NewNodalField(facts.NNodes())}})
	loads := field.NewLoadSeries([]field.LoadFrame{{Time: 0}, {Time: 1}})

	params := []*material.Parameter{
		{Spec: material.Spec{Name: "mu", Init: 1.0, Lo: 0, Hi: 10, Scale: 1}, Value: 1.0},
	}

	p, err := Build(BuildInput{
		Mesh: m, Material: law,
		Measured: measured, Virtuals: virtuals, Loads: loads,
		Params: params, Options: SolverOptions{},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stresses.NTimes())
	assert.Len(t, p.ExternalWork, 2)
}

// TestBuildFailsOnUnknownSurfaceExposesNoProblem checks that a load
// referencing an unresolvable surface aborts setup entirely.
func TestBuildFailsOnUnknownSurfaceExposesNoProblem(t *testing.T) {
	m, facts := buildBrick(t)
	law := hyperlaw.NewNeoHookean(1.0, 1.0)

	measured := field.NewMeasuredSeries([]field.NodalField{field.NewNodalField(facts.NNodes())})
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{field.NewNodalField(facts.NNodes())}})
	loads := field.NewLoadSeries([]field.LoadFrame{
		{Time: 0, Loads: []field.LoadEntry{{Surface: "does-not-exist", Force: [3]float64{1, 0, 0}}}},
	})

	params := []*material.Parameter{
		{Spec: material.Spec{Name: "mu", Init: 1.0, Lo: 0, Hi: 10, Scale: 1}, Value: 1.0},
	}

	p, err := Build(BuildInput{
		Mesh: m, Material: law,
		Measured: measured, Virtuals: virtuals, Loads: loads,
		Params: params, Options: SolverOptions{},
	})
	assert.Error(t, err)
	assert.Nil(t, p)
}
