// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field holds the time-indexed dense nodal displacement and
// surface-load data: MeasuredSeries, VirtualFieldSet and LoadSeries.
package field

import "github.com/cpmech/gosl/chk"

// NodalField is a dense per-node vec3 array indexed by dense node index.
type NodalField struct {
	U [][3]float64
}

// NewNodalField allocates a zero field over nNodes nodes.
func NewNodalField(nNodes int) NodalField {
	return NodalField{U: make([][3]float64, nNodes)}
}

// At returns the displacement of node idx.
func (n NodalField) At(idx int) [3]float64 { return n.U[idx] }

// IsZero reports whether every node carries a zero displacement.
func (n NodalField) IsZero() bool {
	for _, u := range n.U {
		if u[0] != 0 || u[1] != 0 || u[2] != 0 {
			return false
		}
	}
	return true
}

// MeasuredSeries is the ordered sequence of measured nodal displacement
// frames.
type MeasuredSeries struct {
	frames []NodalField
}

// NewMeasuredSeries builds a series from already-populated frames.
func NewMeasuredSeries(frames []NodalField) *MeasuredSeries {
	return &MeasuredSeries{frames: frames}
}

// NTimes returns the frame count.
func (s *MeasuredSeries) NTimes() int { return len(s.frames) }

// Frame returns the field at time t.
func (s *MeasuredSeries) Frame(t int) (NodalField, error) {
	if t < 0 || t >= len(s.frames) {
		return NodalField{}, chk.Err("field: measured time index %d out of range [0,%d)", t, len(s.frames))
	}
	return s.frames[t], nil
}

// VirtualFieldSet maps a virtual-field index to its ordered frame sequence.
// Each entry carries either exactly one frame (time invariant) or exactly
// T frames.
type VirtualFieldSet struct {
	fields [][]NodalField
}

// NewVirtualFieldSet wraps already-validated per-field frame slices.
func NewVirtualFieldSet(fields [][]NodalField) *VirtualFieldSet {
	return &VirtualFieldSet{fields: fields}
}

// NVF returns the virtual-field count.
func (v *VirtualFieldSet) NVF() int { return len(v.fields) }

// NTimes returns the frame count carried by virtual field vf.
func (v *VirtualFieldSet) NTimes(vf int) int { return len(v.fields[vf]) }

// Frame returns the nodal field of virtual field vf at its own frame index
// (0 for a single-frame field, t for a T-frame field); resolution of which
// frame index to pass for a given global time t is the caller's
// responsibility (see ResolveFrameIndex).
func (v *VirtualFieldSet) Frame(vf, frameIdx int) (NodalField, error) {
	if vf < 0 || vf >= len(v.fields) {
		return NodalField{}, chk.Err("field: virtual field index %d out of range [0,%d)", vf, len(v.fields))
	}
	frames := v.fields[vf]
	if frameIdx < 0 || frameIdx >= len(frames) {
		return NodalField{}, chk.Err("field: virtual field %d frame index %d out of range [0,%d)", vf, frameIdx, len(frames))
	}
	return frames[frameIdx], nil
}

// ResolveFrameIndex implements the frame-count dispatch rule: a
// single-frame virtual field always resolves to frame 0; a T-frame field
// resolves to t itself. Any other frame count is fatal at validation time
// (see Validate), so by the time this is called only 1 or T is possible.
func (v *VirtualFieldSet) ResolveFrameIndex(vf, t int) int {
	if len(v.fields[vf]) == 1 {
		return 0
	}
	return t
}

// Validate checks the virtual-field frame-count invariant against the
// measured/load frame count t: every field must carry exactly 1 or
// exactly t frames.
func (v *VirtualFieldSet) Validate(t int) error {
	for vf, frames := range v.fields {
		n := len(frames)
		if n != 1 && n != t {
			return chk.Err("field: virtual field %d has %d frames; only 1 or %d are legal", vf, n, t)
		}
	}
	return nil
}

// LoadEntry is a single named-surface resultant force within a load frame.
type LoadEntry struct {
	Surface string
	Force   [3]float64
}

// LoadFrame is one time frame of surface resultant forces.
type LoadFrame struct {
	Time  float64
	Loads []LoadEntry
}

// LoadSeries is the ordered sequence of load frames.
type LoadSeries struct {
	frames []LoadFrame
}

// NewLoadSeries wraps already-populated load frames.
func NewLoadSeries(frames []LoadFrame) *LoadSeries {
	return &LoadSeries{frames: frames}
}

// NTimes returns the frame count.
func (s *LoadSeries) NTimes() int { return len(s.frames) }

// Frame returns the load frame at time t.
func (s *LoadSeries) Frame(t int) (LoadFrame, error) {
	if t < 0 || t >= len(s.frames) {
		return LoadFrame{}, chk.Err("field: load time index %d out of range [0,%d)", t, len(s.frames))
	}
	return s.frames[t], nil
}

// SurfaceNames collects the distinct surface names referenced across every
// load frame, in first-seen order.
func (s *LoadSeries) SurfaceNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, fr := range s.frames {
		for _, e := range fr.Loads {
			if e.Surface == "" || seen[e.Surface] {
				continue
			}
			seen[e.Surface] = true
			out = append(out, e.Surface)
		}
	}
	return out
}
