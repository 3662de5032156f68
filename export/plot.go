// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export writes the plot and virtual-work artifacts of a solved
// problem. The plot format here is a small, self-contained binary layout
// that plays the role of an external plot library — see DESIGN.md for why
// bit-compatibility with any specific external plot tool is out of scope
// for this repository.
package export

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/tensor"
)

const plotMagic = "VFMPLOT1"

// Plot bundles everything needed to emit one frame per time index in the
// longest of {measured, virtual, stress} timelines.
type Plot struct {
	Facts     *mesh.Facts
	Measured  *field.MeasuredSeries
	MeasuredF *tensor.TimeSeries
	Stresses  *tensor.StressStore
	// VirtualNames labels each virtual field for the per-field variables.
	VirtualNames []string
	Virtuals     *field.VirtualFieldSet
	VirtualF     []*tensor.TimeSeries
}

func (p *Plot) nFrames() int {
	n := p.Measured.NTimes()
	if p.MeasuredF.NTimes() > n {
		n = p.MeasuredF.NTimes()
	}
	if p.Stresses.NTimes() > n {
		n = p.Stresses.NTimes()
	}
	for _, vf := range p.VirtualF {
		if vf.NTimes() > n {
			n = vf.NTimes()
		}
	}
	return n
}

// WritePlot emits the binary plot artifact to path.
//
// Layout (little-endian throughout):
//
//	magic [8]byte "VFMPLOT1"
//	nNodes uint32
//	nElems uint32
//	nFrames uint32
//	nVirtual uint32
//	for each virtual field: uint32 name length, name bytes
//	for each frame:
//	  for each node: measured displacement [3]float64 (0 if missing)
//	  for each element: measured F [9]float64 (identity if missing)
//	  for each element: Cauchy sigma [9]float64 (0 if missing)
//	  for each element: first Piola P [9]float64 (0 if missing)
//	  for each virtual field:
//	    for each node: virtual displacement [3]float64 (0 if missing)
//	    for each element: virtual F [9]float64 (identity if missing)
func WritePlot(path string, p *Plot) error {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("export: cannot create plot file %q: %v", path, err)
	}
	defer f.Close()
	return writePlot(f, p)
}

func writePlot(w io.Writer, p *Plot) error {
	nNodes := p.Facts.NNodes()
	nElems := p.Facts.NElems()
	nFrames := p.nFrames()
	nVF := len(p.VirtualF)

	if _, err := w.Write([]byte(plotMagic)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(nNodes)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(nElems)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(nFrames)); err != nil {
		return err
	}
	if err := writeU32(w, uint32(nVF)); err != nil {
		return err
	}
	for _, name := range p.VirtualNames {
		if err := writeU32(w, uint32(len(name))); err != nil {
			return err
		}
		if _, err := w.Write([]byte(name)); err != nil {
			return err
		}
	}

	zeroVec := [3]float64{}
	identity := tensor.Identity()
	zeroMat := tensor.Mat3{}

	for t := 0; t < nFrames; t++ {
		if err := writeNodalOrZero(w, p.Measured, t, nNodes, zeroVec); err != nil {
			return err
		}
		if err := writeElemAvgOrDefault(w, p.MeasuredF, t, nElems, identity); err != nil {
			return err
		}
		if err := writeStressOrZero(w, p.Stresses, t, nElems, zeroMat, true); err != nil {
			return err
		}
		if err := writeStressOrZero(w, p.Stresses, t, nElems, zeroMat, false); err != nil {
			return err
		}
		for vf := 0; vf < nVF; vf++ {
			frameIdx := 0
			if p.Virtuals.NTimes(vf) > 1 {
				frameIdx = t
			}
			if err := writeVirtualNodalOrZero(w, p.Virtuals, vf, frameIdx, nNodes, zeroVec); err != nil {
				return err
			}
			if err := writeElemAvgOrDefault(w, p.VirtualF[vf], frameIdx, nElems, identity); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeF64(w io.Writer, v float64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	_, err := w.Write(b[:])
	return err
}

func writeVec3(w io.Writer, v [3]float64) error {
	for _, c := range v {
		if err := writeF64(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeMat3(w io.Writer, m tensor.Mat3) error {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if err := writeF64(w, m[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeNodalOrZero(w io.Writer, series *field.MeasuredSeries, t, nNodes int, zero [3]float64) error {
	u, err := series.Frame(t)
	missing := err != nil
	for idx := 0; idx < nNodes; idx++ {
		v := zero
		if !missing {
			v = u.At(idx)
		}
		if err := writeVec3(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeVirtualNodalOrZero(w io.Writer, vfs *field.VirtualFieldSet, vf, frameIdx, nNodes int, zero [3]float64) error {
	u, err := vfs.Frame(vf, frameIdx)
	missing := err != nil
	for idx := 0; idx < nNodes; idx++ {
		v := zero
		if !missing {
			v = u.At(idx)
		}
		if err := writeVec3(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeElemAvgOrDefault(w io.Writer, ts *tensor.TimeSeries, t, nElems int, def tensor.Mat3) error {
	frame, err := ts.Frame(t)
	missing := err != nil
	for e := 0; e < nElems; e++ {
		m := def
		if !missing {
			m = frame.ElemAverage(e)
		}
		if err := writeMat3(w, m); err != nil {
			return err
		}
	}
	return nil
}

func writeStressOrZero(w io.Writer, s *tensor.StressStore, t, nElems int, zero tensor.Mat3, cauchy bool) error {
	pair, err := s.Frame(t)
	missing := err != nil
	for e := 0; e < nElems; e++ {
		m := zero
		if !missing {
			if cauchy {
				m = pair.Sigma.ElemAverage(e)
			} else {
				m = pair.P.ElemAverage(e)
			}
		}
		if err := writeMat3(w, m); err != nil {
			return err
		}
	}
	return nil
}
