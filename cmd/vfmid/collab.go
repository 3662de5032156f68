// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/spf13/cobra"

	"github.com/vfmgo/vfmid/hyperlaw"
	"github.com/vfmgo/vfmid/material"
	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/meshfe"
)

// meshFlags holds the structured-brick geometry flags shared by every
// subcommand that needs a mesh.Collaborator; a real deployment would
// instead point at a mesh-file reader, treated as an external
// collaborator outside this repository's scope.
type meshFlags struct {
	nx, ny, nz int
	lx, ly, lz float64
	gauss      int
}

func addMeshFlags(cmd *cobra.Command, f *meshFlags) {
	cmd.Flags().IntVar(&f.nx, "nx", 1, "elements along x")
	cmd.Flags().IntVar(&f.ny, "ny", 1, "elements along y")
	cmd.Flags().IntVar(&f.nz, "nz", 1, "elements along z")
	cmd.Flags().Float64Var(&f.lx, "lx", 1.0, "brick length along x")
	cmd.Flags().Float64Var(&f.ly, "ly", 1.0, "brick length along y")
	cmd.Flags().Float64Var(&f.lz, "lz", 1.0, "brick length along z")
	cmd.Flags().IntVar(&f.gauss, "gauss", 8, "Gauss points per element (1 or 8)")
}

func (f meshFlags) build() (mesh.Collaborator, error) {
	return meshfe.NewBrick(f.nx, f.ny, f.nz, f.lx, f.ly, f.lz, f.gauss)
}

// materialFlags selects one of the two sample hyperlaw models.
type materialFlags struct {
	kind string
}

func addMaterialFlags(cmd *cobra.Command, f *materialFlags) {
	cmd.Flags().StringVar(&f.kind, "material", "neohookean", "material law: neohookean or uncoupled-neohookean")
}

func (f materialFlags) build() (material.Collaborator, error) {
	switch f.kind {
	case "neohookean":
		return hyperlaw.NewNeoHookean(1.0, 1000.0), nil
	case "uncoupled-neohookean":
		return hyperlaw.NewUncoupledNeoHookean(1.0), nil
	default:
		return nil, chk.Err("vfmid: unknown --material %q (want neohookean or uncoupled-neohookean)", f.kind)
	}
}
