// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vfm implements the internal and external virtual-work
// assemblers.
package vfm

import (
	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/tensor"
)

// virtualGrad returns G = F* - I, the virtual displacement gradient used
// in the internal-work contraction.
func virtualGrad(Fstar tensor.Mat3) tensor.Mat3 {
	return Fstar.Sub(tensor.Identity())
}

// InternalWork computes the flattened W_int[v*T+t] vector, given the
// per-virtual-field deformation stores vdef and the current stress store
// stresses. T is the stress store's frame count.
//
// Edge policies: zero stress frames or zero virtual fields yields an
// empty vector; a virtual field's frame count must be 1 or T (checked by
// the caller via field.VirtualFieldSet.Validate at setup time, and checked
// again here: any other vdef[v].NTimes() is an error).
func InternalWork(facts *mesh.Facts, vdef []*tensor.TimeSeries, stresses *tensor.StressStore) ([]float64, error) {
	nvf := len(vdef)
	T := stresses.NTimes()
	if nvf == 0 || T == 0 {
		return nil, nil
	}

	shape := facts.Shape()
	W := make([]float64, nvf*T)

	for v, series := range vdef {
		vfTimes := series.NTimes()
		if vfTimes != 1 && vfTimes != T {
			return nil, chk.Err("vfm: virtual field %d has %d frames; only 1 or %d are legal", v, vfTimes, T)
		}
		if !series.Shape().Equal(shape) {
			return nil, chk.Err("vfm: virtual field %d deformation shape does not match mesh facts shape", v)
		}

		for t := 0; t < T; t++ {
			frameIdx := t
			if vfTimes == 1 {
				frameIdx = 0
			}
			Fv, err := series.Frame(frameIdx)
			if err != nil {
				return nil, err
			}
			pair, err := stresses.Frame(t)
			if err != nil {
				return nil, err
			}

			var acc float64
			for e := 0; e < facts.NElems(); e++ {
				off := facts.Offset(e)
				for g := 0; g < facts.GpPerElem(e); g++ {
					P := pair.P.At(e, g)
					G := virtualGrad(Fv.At(e, g))
					acc += P.DotDot(G) * facts.JW(off+g)
				}
			}
			W[v*T+t] = acc
		}
	}
	return W, nil
}
