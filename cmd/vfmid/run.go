// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"

	"github.com/vfmgo/vfmid/config"
	"github.com/vfmgo/vfmid/export"
	"github.com/vfmgo/vfmid/optimize"
	"github.com/vfmgo/vfmid/problem"
)

// newRunCmd runs setup then the bounded LM identification to completion,
// emitting the plot artifact (when --plot is given) and, if requested, the
// virtual-work CSV.
func newRunCmd() *cobra.Command {
	var mf meshFlags
	var matf materialFlags
	var cfgPath, plotPath, checkpointIn, checkpointOut string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "identify parameters from a VFM problem file",
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

			if checkpointIn != "" {
				if err := problem.LoadCheckpoint(checkpointIn, p); err != nil {
					return err
				}
				io.Pf("resumed from checkpoint %s\n", checkpointIn)
			}

			cancel := optimize.NewCancelFlag()
			binder := optimize.Bind(cancel, os.Interrupt, syscall.SIGTERM)
			defer binder.Unbind()

			logger := problem.IOLogger{Verbose: verbose}
			result, err := p.Solve(logger, cancel)
			if err != nil {
				return err
			}
			io.Pf("stop reason: %s\n", result.Info.StopReason)
			if result.Theta != nil {
				io.Pf("theta*: %v\n", result.Theta)
			}

			if plotPath != "" {
				names := make([]string, p.Virtuals.NVF())
				artifact := &export.Plot{
					Facts:        p.Facts,
					Measured:     p.Measured,
					MeasuredF:    p.MeasuredF,
					Stresses:     p.Stresses,
					VirtualNames: names,
					Virtuals:     p.Virtuals,
					VirtualF:     p.VirtualF,
				}
				if err := export.WritePlot(plotPath, artifact); err != nil {
					return err
				}
				io.Pf("plot written to %s\n", plotPath)
			}

			if p.Options.SaveVirtualWork != "" {
				iw, ewErr := problem.FinalInternalWork(p)
				if ewErr != nil {
					return ewErr
				}
				if err := export.WriteVirtualWorkCSV(p.Options.SaveVirtualWork, p.Virtuals.NVF(), iw, p.ExternalWork); err != nil {
					return err
				}
				io.Pf("virtual-work CSV written to %s\n", p.Options.SaveVirtualWork)
			}

			if checkpointOut != "" {
				if err := problem.SaveCheckpoint(checkpointOut, p); err != nil {
					return err
				}
				io.Pf("checkpoint written to %s\n", checkpointOut)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to the VFM problem XML file")
	cmd.MarkFlagRequired("config")
	cmd.Flags().StringVar(&plotPath, "plot", "", "path to write the binary plot artifact (optional)")
	cmd.Flags().StringVar(&checkpointIn, "checkpoint-in", "", "resume theta from a checkpoint written by --checkpoint-out (optional)")
	cmd.Flags().StringVar(&checkpointOut, "checkpoint-out", "", "path to write the converged parameter checkpoint (optional)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every LM residual evaluation")
	addMeshFlags(cmd, &mf)
	addMaterialFlags(cmd, &matf)
	return cmd
}
