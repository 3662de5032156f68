// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kinematics implements the deformation-gradient reconstructor
// F = I + Sum u_a (x) grad N_a at every integration point, from sparse
// nodal displacement samples, without touching mesh state.
package kinematics

import (
	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/tensor"
)

// Options controls the two reconstruction modes.
type Options struct {
	// PlaneDeformation clears out-of-plane shears and enforces
	// out-of-plane incompressibility (F[2][2] = 1/(F00*F11)).
	PlaneDeformation bool
	// CheckDet fails reconstruction if det(F) <= 0 anywhere.
	CheckDet bool
}

// reconstructAt computes F(e,g) = I + Sum u_a (x) grad N_a(e,g) for one
// integration point, iterating nodes in the fixed elemNodes order to keep
// the accumulation order deterministic.
func reconstructAt(coll mesh.Collaborator, facts *mesh.Facts, u field.NodalField, e, g int) (tensor.Mat3, error) {
	grads, err := coll.GradN(e, g)
	if err != nil {
		return tensor.Mat3{}, chk.Err("kinematics: shape-gradient evaluation failed at element %d gauss %d: %v", e, g, err)
	}
	nodes := facts.ElemNodes(e)
	if len(grads) != len(nodes) {
		return tensor.Mat3{}, chk.Err("kinematics: gradN returned %d entries, element %d has %d nodes", len(grads), e, len(nodes))
	}
	F := tensor.Identity()
	for a, nodeIdx := range nodes {
		uNode := u.At(nodeIdx)
		F.AddOuter(tensor.Vec3{uNode[0], uNode[1], uNode[2]}, grads[a])
	}
	return F, nil
}

func applyPlaneDeformation(F tensor.Mat3) tensor.Mat3 {
	F[0][2] = 0
	F[1][2] = 0
	F[2][0] = 0
	F[2][1] = 0
	F[2][2] = 1.0 / (F[0][0] * F[1][1])
	return F
}

func checkDet(F tensor.Mat3, e, g int) error {
	if F.Det() <= 0 {
		return chk.Err("kinematics: non-positive det(F)=%.6g at element %d gauss %d", F.Det(), e, g)
	}
	return nil
}

// ReconstructMeasured fills a tensor.TimeSeries with F for every measured
// displacement frame. problem.Build always sets CheckDet for measured-data
// reconstruction and passes PlaneDeformation through from the problem's
// options; both are parameterized here so callers (and tests) can exercise
// both branches explicitly.
func ReconstructMeasured(coll mesh.Collaborator, facts *mesh.Facts, series *field.MeasuredSeries, opt Options) (*tensor.TimeSeries, error) {
	shape := facts.Shape()
	out := tensor.NewTimeSeries(shape, series.NTimes())
	for t := 0; t < series.NTimes(); t++ {
		u, err := series.Frame(t)
		if err != nil {
			return nil, err
		}
		frame, err := out.Frame(t)
		if err != nil {
			return nil, err
		}
		for e := 0; e < facts.NElems(); e++ {
			for g := 0; g < facts.GpPerElem(e); g++ {
				F, err := reconstructAt(coll, facts, u, e, g)
				if err != nil {
					return nil, err
				}
				if opt.PlaneDeformation {
					F = applyPlaneDeformation(F)
				}
				if opt.CheckDet {
					if err := checkDet(F, e, g); err != nil {
						return nil, err
					}
				}
				frame.Set(e, g, F)
			}
		}
	}
	return out, nil
}

// ReconstructVirtual fills one tensor.TimeSeries per virtual field. Virtual
// fields never use plane-deformation post-processing.
func ReconstructVirtual(coll mesh.Collaborator, facts *mesh.Facts, vfs *field.VirtualFieldSet, checkDetFlag bool) ([]*tensor.TimeSeries, error) {
	shape := facts.Shape()
	out := make([]*tensor.TimeSeries, vfs.NVF())
	for vf := 0; vf < vfs.NVF(); vf++ {
		nt := vfs.NTimes(vf)
		ts := tensor.NewTimeSeries(shape, nt)
		for t := 0; t < nt; t++ {
			u, err := vfs.Frame(vf, t)
			if err != nil {
				return nil, err
			}
			frame, err := ts.Frame(t)
			if err != nil {
				return nil, err
			}
			for e := 0; e < facts.NElems(); e++ {
				for g := 0; g < facts.GpPerElem(e); g++ {
					F, err := reconstructAt(coll, facts, u, e, g)
					if err != nil {
						return nil, err
					}
					if checkDetFlag {
						if err := checkDet(F, e, g); err != nil {
							return nil, err
						}
					}
					frame.Set(e, g, F)
				}
			}
		}
		out[vf] = ts
	}
	return out, nil
}
