// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vfmid is the VFM parameter-identification driver: it wires the
// sample mesh and material collaborators (package meshfe, package
// hyperlaw) to the core problem/optimize/vfm pipeline. The command
// surface is flag-based, via spf13/cobra.
package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			io.PfRed("\nERROR: %v\n", r)
			chk.Verbose = true
			os.Exit(1)
		}
	}()

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vfmid",
		Short: "vfmid identifies hyperelastic parameters via the Virtual Fields Method",
	}
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newRunCmd())
	return cmd
}
