// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"os"

	"github.com/cpmech/gosl/chk"
	gslio "github.com/cpmech/gosl/io"

	"github.com/vfmgo/vfmid/material"
)

// checkpoint is the on-disk representation of a VFMProblem's current
// parameter vector, keyed by name so a checkpoint saved against one
// problem file can be validated against another before being applied.
type checkpoint struct {
	Names []string
	Theta []float64
}

// SaveCheckpoint writes p's currently committed parameter vector to path
// via gob encoding, letting a long-running identification resume from
// its last committed theta instead of Theta0.
func SaveCheckpoint(path string, p *VFMProblem) error {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("problem: cannot create checkpoint file %q: %v", path, err)
	}
	defer f.Close()

	cp := checkpoint{
		Names: make([]string, len(p.Params)),
		Theta: p.Applier.Values(),
	}
	for i, q := range p.Params {
		cp.Names[i] = q.Spec.Name
	}

	enc := gslio.NewEncoder(f, "gob")
	if err := enc.Encode(&cp); err != nil {
		return chk.Err("problem: cannot encode checkpoint to %q: %v", path, err)
	}
	return nil
}

// LoadCheckpoint reads a checkpoint written by SaveCheckpoint, validates
// its parameter names against p in order, applies the recovered theta to
// p's constitutive collaborator and recomputes Stresses to match, so p is
// left in exactly the state Solve would have left it in had it run to
// that theta.
func LoadCheckpoint(path string, p *VFMProblem) error {
	f, err := os.Open(path)
	if err != nil {
		return chk.Err("problem: cannot open checkpoint file %q: %v", path, err)
	}
	defer f.Close()

	var cp checkpoint
	dec := gslio.NewDecoder(f, "gob")
	if err := dec.Decode(&cp); err != nil {
		return chk.Err("problem: cannot decode checkpoint from %q: %v", path, err)
	}

	if len(cp.Names) != len(p.Params) {
		return chk.Err("problem: checkpoint has %d parameters, problem has %d", len(cp.Names), len(p.Params))
	}
	for i, q := range p.Params {
		if cp.Names[i] != q.Spec.Name {
			return chk.Err("problem: checkpoint parameter %d is %q, problem expects %q", i, cp.Names[i], q.Spec.Name)
		}
	}

	if err := p.Applier.Apply(cp.Theta); err != nil {
		return err
	}
	return material.RecomputeStresses(p.MatColl, p.Facts, p.MeasuredF, p.Stresses)
}
