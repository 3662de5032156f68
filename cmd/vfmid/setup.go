// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"

	"github.com/vfmgo/vfmid/config"
	"github.com/vfmgo/vfmid/problem"
)

// newSetupCmd validates a problem file and reports its shape without
// running the LM driver.
func newSetupCmd() *cobra.Command {
	var mf meshFlags
	var matf materialFlags
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "validate a VFM problem file and report its shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			meshColl, err := mf.build()
			if err != nil {
				return err
			}
			matColl, err := matf.build()
			if err != nil {
				return err
			}
			dir, fn := filepath.Split(cfgPath)
			doc, err := config.Load(dir, fn)
			if err != nil {
				return err
			}
			in, err := config.BuildInput(doc, meshColl, matColl)
			if err != nil {
				return err
			}
			p, err := problem.Build(in)
			if err != nil {
				return err
			}
			io.Pf("setup OK: %d nodes, %d elements, %d parameters, %d external-work entries\n",
				p.Facts.NNodes(), p.Facts.NElems(), len(p.Params), len(p.ExternalWork))
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to the VFM problem XML file")
	cmd.MarkFlagRequired("config")
	addMeshFlags(cmd, &mf)
	addMaterialFlags(cmd, &matf)
	return cmd
}
