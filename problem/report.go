// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import "github.com/vfmgo/vfmid/vfm"

// FinalInternalWork recomputes the internal-work vector from p's current
// Stresses and VirtualF, for reporting after Solve has committed theta*
// (or restored theta0). It performs no residual evaluation of its own —
// Stresses already reflects the last committed parameter vector.
func FinalInternalWork(p *VFMProblem) ([]float64, error) {
	return vfm.InternalWork(p.Facts, p.VirtualF, p.Stresses)
}
