// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material defines the constitutive collaborator contract
// (parameter resolution, material-point cloning, stress evaluation) and
// the constitutive driver that composes it into a Cauchy/first-Piola
// stress recompute for a whole deformation history. Grounded on the
// mdl/solid.Model/Large interface shape (Init/GetPrms parameter tables,
// Update(s, F, FΔ) large-strain evaluation).
package material

import "github.com/vfmgo/vfmid/tensor"

// ScalarRef is a writable scalar location resolved from a parameter name.
type ScalarRef interface {
	Get() float64
	Set(v float64)
}

// Point is an owned, cloned material point whose deformation gradient and
// scratch state can be overwritten without disturbing the mesh's own
// material-point history.
type Point interface {
	// SetF injects the trial deformation gradient and its Jacobian.
	SetF(F tensor.Mat3)
	// ZeroScratch clears velocity/acceleration/velocity-gradient/stored
	// energy scratch fields.
	ZeroScratch()
}

// Collaborator is the constitutive collaborator contract.
type Collaborator interface {
	// Resolve maps a parameter name to a writable scalar location. Returns
	// an error if the name is unresolved or not a numeric scalar.
	Resolve(name string) (ScalarRef, error)
	// Clone acquires an owned material point for element e, Gauss index g,
	// with deformation gradient, Jacobian and scratch fields writable and
	// isolated from the mesh's own state.
	Clone(e, g int) (Point, error)
	// Uncoupled reports whether the material at (e,g) is expressed as a
	// deviatoric/volumetric split.
	Uncoupled(e, g int) bool
	// EvalCauchy returns full Cauchy stress for a prepared, non-uncoupled
	// point.
	EvalCauchy(p Point) (tensor.Mat3, error)
	// DevStress returns the deviatoric Cauchy stress for a prepared,
	// uncoupled point.
	DevStress(p Point) (tensor.Mat3, error)
}
