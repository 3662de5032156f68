// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"fmt"
	"os"

	"github.com/cpmech/gosl/chk"
)

// WriteVirtualWorkCSV writes the internal- and external-work vectors of
// the final residual evaluation to path, one row per time frame, with one
// internal- and one external-work column per virtual field:
//
//	#Step, IVW1, ..., IVW_nVF, EVW1, ..., EVW_nVF
//
// internal and external are the flattened [v*T+t] vectors produced by
// vfm.InternalWork/vfm.ExternalWork; nVF is the virtual-field count used
// to un-flatten them.
func WriteVirtualWorkCSV(path string, nVF int, internal, external []float64) error {
	if len(internal) != len(external) {
		return chk.Err("export: internal-work length %d differs from external-work length %d", len(internal), len(external))
	}
	if nVF <= 0 || len(internal)%nVF != 0 {
		return chk.Err("export: virtual-work length %d is not a multiple of virtual-field count %d", len(internal), nVF)
	}
	T := len(internal) / nVF

	f, err := os.Create(path)
	if err != nil {
		return chk.Err("export: cannot create virtual-work file %q: %v", path, err)
	}
	defer f.Close()

	header := "#Step"
	for v := 1; v <= nVF; v++ {
		header += fmt.Sprintf(", IVW%d", v)
	}
	for v := 1; v <= nVF; v++ {
		header += fmt.Sprintf(", EVW%d", v)
	}
	if _, err := fmt.Fprintln(f, header); err != nil {
		return err
	}

	for t := 0; t < T; t++ {
		if _, err := fmt.Fprintf(f, "%d", t); err != nil {
			return err
		}
		for v := 0; v < nVF; v++ {
			if _, err := fmt.Fprintf(f, ", %.6e", internal[v*T+t]); err != nil {
				return err
			}
		}
		for v := 0; v < nVF; v++ {
			if _, err := fmt.Fprintf(f, ", %.6e", external[v*T+t]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(f); err != nil {
			return err
		}
	}
	return nil
}
