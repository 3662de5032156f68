// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/mesh"
)

// ExternalWork computes the flattened W_ext[v*T+t] vector. It is
// theta-independent and computed once during setup.
//
// Node-selection contract: the virtual displacement contributing to a
// surface's resultant force is read from a single representative node of
// that surface — the first in the surface's resolved node set — and the
// whole resultant is multiplied by that one displacement. This is valid
// only when the virtual field is constant over each load-carrying surface
// (e.g. a rigid-grip boundary); this package does not attempt to
// generalize to a spatially varying virtual field integrated over surface
// elements.
func ExternalWork(surfaces mesh.SurfaceMap, virtuals *field.VirtualFieldSet, loads *field.LoadSeries) ([]float64, error) {
	nvf := virtuals.NVF()
	T := loads.NTimes()
	if nvf == 0 || T == 0 {
		return nil, nil
	}

	if err := virtuals.Validate(T); err != nil {
		return nil, err
	}

	W := make([]float64, nvf*T)
	for v := 0; v < nvf; v++ {
		for t := 0; t < T; t++ {
			frameIdx := virtuals.ResolveFrameIndex(v, t)
			vfFrame, err := virtuals.Frame(v, frameIdx)
			if err != nil {
				return nil, err
			}
			loadFrame, err := loads.Frame(t)
			if err != nil {
				return nil, err
			}

			var acc float64
			for _, entry := range loadFrame.Loads {
				nodes, ok := surfaces[entry.Surface]
				if !ok {
					return nil, chk.Err("vfm: missing surface mapping for %q", entry.Surface)
				}
				if len(nodes) == 0 {
					return nil, chk.Err("vfm: surface %q has no resolved nodes", entry.Surface)
				}
				uStar := vfFrame.At(nodes[0])
				acc += entry.Force[0]*uStar[0] + entry.Force[1]*uStar[1] + entry.Force[2]*uStar[2]
			}
			W[v*T+t] = acc
		}
	}
	return W, nil
}
