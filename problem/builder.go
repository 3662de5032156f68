// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/kinematics"
	"github.com/vfmgo/vfmid/material"
	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/tensor"
	"github.com/vfmgo/vfmid/vfm"
)

// DomainChecker is an optional mesh.Collaborator capability: if a
// collaborator implements it, Build uses it to enforce the "model
// contains only solid domains" validation.
type DomainChecker interface {
	AllSolid() bool
}

// BuildInput bundles everything Build needs to assemble a VFMProblem.
type BuildInput struct {
	Mesh     mesh.Collaborator
	Material material.Collaborator
	Measured *field.MeasuredSeries
	Virtuals *field.VirtualFieldSet
	Loads    *field.LoadSeries
	Params   []*material.Parameter
	Options  SolverOptions
}

// Build runs the end-to-end setup pipeline: validates input, assembles
// mesh facts, moves data into stores, reconstructs measured and virtual
// deformation gradients once, resolves surface names, precomputes the
// (theta-independent) external virtual work, and returns a ready-to-solve
// VFMProblem. A single failure anywhere aborts setup with no
// partially-built problem exposed.
func Build(in BuildInput) (*VFMProblem, error) {
	if dc, ok := in.Mesh.(DomainChecker); ok {
		if !dc.AllSolid() {
			return nil, chk.Err("problem: mesh contains non-solid domains")
		}
	}

	for _, p := range in.Params {
		if err := p.Spec.Validate(); err != nil {
			return nil, err
		}
	}

	if in.Options.SaveVirtualWork != "" {
		if !hasTxtExt(in.Options.SaveVirtualWork) {
			return nil, chk.Err("problem: Options/save_virtual_work must use a .txt extension, got %q", in.Options.SaveVirtualWork)
		}
	}

	facts, err := mesh.Build(in.Mesh)
	if err != nil {
		return nil, err
	}

	T := in.Measured.NTimes()
	if err := in.Virtuals.Validate(T); err != nil {
		return nil, err
	}

	measuredF, err := kinematics.ReconstructMeasured(in.Mesh, facts, in.Measured, kinematicsOptionsMeasured(in.Options.PlaneDeformation))
	if err != nil {
		return nil, err
	}
	virtualF, err := kinematics.ReconstructVirtual(in.Mesh, facts, in.Virtuals, true)
	if err != nil {
		return nil, err
	}

	surfaceNames := in.Loads.SurfaceNames()
	var surfaces mesh.SurfaceMap
	if len(surfaceNames) > 0 {
		surfaces, err = mesh.BuildSurfaceMap(in.Mesh, surfaceNames)
		if err != nil {
			return nil, err
		}
	} else {
		surfaces = mesh.SurfaceMap{}
	}

	ew, err := vfm.ExternalWork(surfaces, in.Virtuals, in.Loads)
	if err != nil {
		return nil, err
	}

	applier, err := material.NewApplier(in.Material, in.Params)
	if err != nil {
		return nil, err
	}

	stresses := tensor.NewStressStore(facts.Shape(), measuredF.NTimes())

	p := &VFMProblem{
		Facts:        facts,
		MeshColl:     in.Mesh,
		MatColl:      in.Material,
		Surfaces:     surfaces,
		Measured:     in.Measured,
		Virtuals:     in.Virtuals,
		Loads:        in.Loads,
		MeasuredF:    measuredF,
		VirtualF:     virtualF,
		Stresses:     stresses,
		Params:       in.Params,
		Applier:      applier,
		ExternalWork: ew,
		Options:      in.Options,
	}
	return p, nil
}

func hasTxtExt(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".txt")
}
