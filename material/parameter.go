// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Spec describes one identifiable scalar parameter.
type Spec struct {
	Name  string
	Init  float64
	Lo    float64
	Hi    float64
	Scale float64
}

// Validate checks parameter invariants: lo<=init<=hi,
// scale != 0 and finite, name non-empty, init finite. lo and hi are not
// checked for finiteness.
func (s Spec) Validate() error {
	if s.Name == "" {
		return chk.Err("material: parameter name is empty")
	}
	if math.IsNaN(s.Init) || math.IsInf(s.Init, 0) {
		return chk.Err("material: parameter %q has non-finite init value", s.Name)
	}
	if s.Lo > s.Hi {
		return chk.Err("material: parameter %q has lo=%.6g > hi=%.6g", s.Name, s.Lo, s.Hi)
	}
	if s.Init < s.Lo || s.Init > s.Hi {
		return chk.Err("material: parameter %q init=%.6g outside bounds [%.6g,%.6g]", s.Name, s.Init, s.Lo, s.Hi)
	}
	if s.Scale == 0 || math.IsNaN(s.Scale) || math.IsInf(s.Scale, 0) {
		return chk.Err("material: parameter %q has invalid scale=%.6g", s.Name, s.Scale)
	}
	return nil
}

// Parameter pairs a Spec with its current identified value.
type Parameter struct {
	Spec  Spec
	Value float64
}

// Applier resolves each parameter by name once and mirrors a parameter
// vector into the constitutive collaborator's backing store on every
// apply.
type Applier struct {
	params []*Parameter
	refs   []ScalarRef
}

// NewApplier resolves every parameter's backing location once against
// coll. Fails if any parameter name cannot be resolved.
func NewApplier(coll Collaborator, params []*Parameter) (*Applier, error) {
	refs := make([]ScalarRef, len(params))
	for i, p := range params {
		ref, err := coll.Resolve(p.Spec.Name)
		if err != nil {
			return nil, chk.Err("material: cannot resolve parameter %q: %v", p.Spec.Name, err)
		}
		refs[i] = ref
	}
	return &Applier{params: params, refs: refs}, nil
}

// NParams returns the number of parameters under management.
func (a *Applier) NParams() int { return len(a.params) }

// Values returns the current values (Spec.Init/Parameter.Value), suitable
// as an LM starting vector.
func (a *Applier) Values() []float64 {
	out := make([]float64, len(a.params))
	for i, p := range a.params {
		out[i] = p.Value
	}
	return out
}

// Apply writes theta into the cached locations and mirrors it into each
// Parameter's Value. Fails without partial commit visible to callers if
// the length mismatches or any cached location is missing (the latter
// cannot happen after a successful NewApplier, but is still checked
// defensively since a Collaborator could rebind names between
// construction and apply in principle).
func (a *Applier) Apply(theta []float64) error {
	if len(theta) != len(a.params) {
		return chk.Err("material: apply expected %d parameters, got %d", len(a.params), len(theta))
	}
	for i, ref := range a.refs {
		if ref == nil {
			return chk.Err("material: parameter %q has no resolved backing location", a.params[i].Spec.Name)
		}
	}
	for i, ref := range a.refs {
		ref.Set(theta[i])
		a.params[i].Value = theta[i]
	}
	return nil
}
