// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/material"
	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/problem"
)

// nodalFieldFromTimeBlock scatters a TimeBlock's {node_id, ux,uy,uz}
// entries into a dense field.NodalField, resolving external node ids
// through facts. Unknown node ids are a validation failure.
func nodalFieldFromTimeBlock(facts *mesh.Facts, tb TimeBlock) (field.NodalField, error) {
	nf := field.NewNodalField(facts.NNodes())
	for _, nd := range tb.Nodes {
		idx, ok := facts.NodeIndex(nd.NodeID)
		if !ok {
			return field.NodalField{}, chk.Err("config: unknown node id %d in displacement entry", nd.NodeID)
		}
		nf.U[idx] = [3]float64{nd.Ux, nd.Uy, nd.Uz}
	}
	return nf, nil
}

// MeasuredSeries builds the measured-displacement store.
func MeasuredSeries(facts *mesh.Facts, doc *Document) (*field.MeasuredSeries, error) {
	frames := make([]field.NodalField, len(doc.MeasuredDisplacements.Times))
	for i, tb := range doc.MeasuredDisplacements.Times {
		nf, err := nodalFieldFromTimeBlock(facts, tb)
		if err != nil {
			return nil, err
		}
		frames[i] = nf
	}
	return field.NewMeasuredSeries(frames), nil
}

// VirtualFieldSet builds the virtual-field-set store, one row per named
// (or legacy anonymous) virtual field.
func VirtualFieldSet(facts *mesh.Facts, doc *Document) (*field.VirtualFieldSet, []string, error) {
	vfs := doc.VirtualFields()
	names := make([]string, len(vfs))
	rows := make([][]field.NodalField, len(vfs))
	for v, vf := range vfs {
		names[v] = vf.Name
		row := make([]field.NodalField, len(vf.Times))
		for i, tb := range vf.Times {
			nf, err := nodalFieldFromTimeBlock(facts, tb)
			if err != nil {
				return nil, nil, err
			}
			row[i] = nf
		}
		rows[v] = row
	}
	return field.NewVirtualFieldSet(rows), names, nil
}

// LoadSeries builds the surface-load store.
func LoadSeries(doc *Document) *field.LoadSeries {
	frames := make([]field.LoadFrame, len(doc.MeasuredLoads.Times))
	for i, tb := range doc.MeasuredLoads.Times {
		entries := make([]field.LoadEntry, len(tb.Loads))
		for j, l := range tb.Loads {
			entries[j] = field.LoadEntry{Surface: l.Surface, Force: [3]float64{l.Fx, l.Fy, l.Fz}}
		}
		frames[i] = field.LoadFrame{Time: float64(tb.T), Loads: entries}
	}
	return field.NewLoadSeries(frames)
}

// Parameters builds the parameter list from the <Parameters> block,
// carrying the initial value into both Spec.Init and Value (Value is
// overwritten by the first Apply anyway).
func Parameters(doc *Document) []*material.Parameter {
	out := make([]*material.Parameter, len(doc.Parameters.Items))
	for i, p := range doc.Parameters.Items {
		spec := material.Spec{Name: p.Name, Init: p.Init, Lo: p.Lo, Hi: p.Hi, Scale: p.Scale}
		out[i] = &material.Parameter{Spec: spec, Value: p.Init}
	}
	return out
}

// SolverOptions translates the Options/Optimization block into
// problem.SolverOptions.
func SolverOptions(doc *Document) problem.SolverOptions {
	o := doc.Options.Optimization
	kind := problem.Levmar
	if strings.EqualFold(o.Solver, "ConstrainedLevmar") {
		kind = problem.ConstrainedLevmar
	}
	return problem.SolverOptions{
		Solver:           kind,
		Tau:              o.Tau,
		GradTol:          o.GradTol,
		StepTol:          o.StepTol,
		ObjTol:           o.ObjTol,
		FDStep:           o.FDStep,
		MaxIterations:    o.MaxIterations,
		PlaneDeformation: o.PlaneDeformation,
		SaveVirtualWork:  o.SaveVirtualWork,
	}
}

// BuildInput assembles a full problem.BuildInput from a decoded document,
// a mesh collaborator (already usable to build Facts) and a constitutive
// collaborator. Node ids in the document are resolved against a Facts
// built here, so mesh construction always precedes displacement/load
// decoding.
func BuildInput(doc *Document, meshColl mesh.Collaborator, matColl material.Collaborator) (problem.BuildInput, error) {
	facts, err := mesh.Build(meshColl)
	if err != nil {
		return problem.BuildInput{}, err
	}
	measured, err := MeasuredSeries(facts, doc)
	if err != nil {
		return problem.BuildInput{}, err
	}
	virtuals, _, err := VirtualFieldSet(facts, doc)
	if err != nil {
		return problem.BuildInput{}, err
	}
	loads := LoadSeries(doc)
	params := Parameters(doc)
	opts := SolverOptions(doc)
	return problem.BuildInput{
		Mesh:     meshColl,
		Material: matColl,
		Measured: measured,
		Virtuals: virtuals,
		Loads:    loads,
		Params:   params,
		Options:  opts,
	}, nil
}
