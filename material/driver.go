// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/tensor"
)

// symTol bounds the numerical symmetry check on recomputed Cauchy stress.
const symTol = 1e-8

// RecomputeStresses fills the stress store's sigma and P for every (t,e,g)
// from the deformation store, driving coll: clone, inject F, zero scratch,
// read stress (deviatoric-corrected if uncoupled), then P = J*sigma*F^-T.
// Never mutates the mesh's own material points.
func RecomputeStresses(coll Collaborator, facts *mesh.Facts, def *tensor.TimeSeries, out *tensor.StressStore) error {
	if def.NTimes() != out.NTimes() {
		return chk.Err("material: deformation store has %d frames, stress store has %d", def.NTimes(), out.NTimes())
	}
	for t := 0; t < def.NTimes(); t++ {
		Ft, err := def.Frame(t)
		if err != nil {
			return err
		}
		pair, err := out.Frame(t)
		if err != nil {
			return err
		}
		for e := 0; e < facts.NElems(); e++ {
			for g := 0; g < facts.GpPerElem(e); g++ {
				F := Ft.At(e, g)
				J := F.Det()
				if J <= 0 {
					return chk.Err("material: non-positive det(F)=%.6g at element %d gauss %d", J, e, g)
				}

				pt, err := coll.Clone(e, g)
				if err != nil {
					return chk.Err("material: material-point clone failed at element %d gauss %d: %v", e, g, err)
				}
				pt.SetF(F)
				pt.ZeroScratch()

				var sigma tensor.Mat3
				if coll.Uncoupled(e, g) {
					dev, err := coll.DevStress(pt)
					if err != nil {
						return chk.Err("material: deviatoric stress evaluation failed at element %d gauss %d: %v", e, g, err)
					}
					// Recover total Cauchy stress from the plane-stress
					// identification convention sigma_zz = 0: sigma = dev - dev.zz * I.
					pressureShift := dev[2][2]
					sigma = dev
					sigma[0][0] -= pressureShift
					sigma[1][1] -= pressureShift
					sigma[2][2] -= pressureShift
				} else {
					sigma, err = coll.EvalCauchy(pt)
					if err != nil {
						return chk.Err("material: stress evaluation failed at element %d gauss %d: %v", e, g, err)
					}
				}

				if !sigma.IsSymmetric(symTol) {
					return chk.Err("material: Cauchy stress not symmetric within tolerance at element %d gauss %d", e, g)
				}

				FinvT := F.Inverse().Transpose()
				P := sigma.Mul(FinvT).Scale(J)

				pair.Sigma.Set(e, g, sigma)
				pair.P.Set(e, g, P)
			}
		}
	}
	return nil
}
