// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import "github.com/cpmech/gosl/chk"

// Shape describes the ragged element x integration-point layout shared by
// every ReferenceTensorField built against the same mesh: offset[e] is the
// prefix sum over gpPerElem, so element e's data lives at
// data[offset[e] : offset[e]+gpPerElem[e]].
type Shape struct {
	GpPerElem []int
	Offset    []int
}

// NewShape builds a Shape from a per-element Gauss-point count.
func NewShape(gpPerElem []int) Shape {
	offset := make([]int, len(gpPerElem)+1)
	for e, n := range gpPerElem {
		offset[e+1] = offset[e] + n
	}
	return Shape{GpPerElem: gpPerElem, Offset: offset}
}

// Total returns the total integration-point count across all elements.
func (s Shape) Total() int {
	return s.Offset[len(s.Offset)-1]
}

// NElems returns the element count.
func (s Shape) NElems() int {
	return len(s.GpPerElem)
}

// Index returns the flat storage index for (e,g).
func (s Shape) Index(e, g int) int {
	return s.Offset[e] + g
}

// Equal reports whether two shapes describe the same ragged layout.
func (s Shape) Equal(o Shape) bool {
	if len(s.GpPerElem) != len(o.GpPerElem) {
		return false
	}
	for i := range s.GpPerElem {
		if s.GpPerElem[i] != o.GpPerElem[i] {
			return false
		}
	}
	return true
}

// ReferenceTensorField is a CSR-like ragged element x integration-point
// storage of Mat3 values, one field per time frame in a DeformationStore
// or StressStore.
type ReferenceTensorField struct {
	shape Shape
	data  []Mat3
}

// NewReferenceTensorField allocates a field of identity tensors sized by shape.
func NewReferenceTensorField(shape Shape) *ReferenceTensorField {
	data := make([]Mat3, shape.Total())
	for i := range data {
		data[i] = Identity()
	}
	return &ReferenceTensorField{shape: shape, data: data}
}

// Shape returns the field's ragged shape.
func (f *ReferenceTensorField) Shape() Shape { return f.shape }

// Set writes the tensor at (e,g).
func (f *ReferenceTensorField) Set(e, g int, m Mat3) {
	f.data[f.shape.Index(e, g)] = m
}

// At returns the tensor at (e,g).
func (f *ReferenceTensorField) At(e, g int) Mat3 {
	return f.data[f.shape.Index(e, g)]
}

// ElemAverage returns the arithmetic mean of the element's integration-point
// values, the convention used when averaging down to per-element plot data.
func (f *ReferenceTensorField) ElemAverage(e int) Mat3 {
	off := f.shape.Offset[e]
	n := f.shape.GpPerElem[e]
	var sum Mat3
	for g := 0; g < n; g++ {
		v := f.data[off+g]
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				sum[i][j] += v[i][j]
			}
		}
	}
	if n == 0 {
		return sum
	}
	return sum.Scale(1.0 / float64(n))
}

// TimeSeries is an ordered sequence of ReferenceTensorField, one per time
// frame, all sharing the same Shape.
type TimeSeries struct {
	shape  Shape
	frames []*ReferenceTensorField
}

// NewTimeSeries allocates T empty (identity) frames of the given shape.
func NewTimeSeries(shape Shape, nFrames int) *TimeSeries {
	frames := make([]*ReferenceTensorField, nFrames)
	for t := range frames {
		frames[t] = NewReferenceTensorField(shape)
	}
	return &TimeSeries{shape: shape, frames: frames}
}

// NTimes returns the number of time frames.
func (ts *TimeSeries) NTimes() int { return len(ts.frames) }

// Shape returns the shared ragged shape.
func (ts *TimeSeries) Shape() Shape { return ts.shape }

// Frame returns the field at time t.
func (ts *TimeSeries) Frame(t int) (*ReferenceTensorField, error) {
	if t < 0 || t >= len(ts.frames) {
		return nil, chk.Err("tensor: time index %d out of range [0,%d)", t, len(ts.frames))
	}
	return ts.frames[t], nil
}

// Clone deep-copies the series.
func (ts *TimeSeries) Clone() *TimeSeries {
	out := &TimeSeries{shape: ts.shape, frames: make([]*ReferenceTensorField, len(ts.frames))}
	for t, f := range ts.frames {
		nf := &ReferenceTensorField{shape: f.shape, data: make([]Mat3, len(f.data))}
		copy(nf.data, f.data)
		out.frames[t] = nf
	}
	return out
}

// CopyFrom overwrites ts's contents with src's; shapes must match.
func (ts *TimeSeries) CopyFrom(src *TimeSeries) error {
	if len(ts.frames) != len(src.frames) {
		return chk.Err("tensor: cannot copy series of %d frames into series of %d frames", len(src.frames), len(ts.frames))
	}
	for t := range ts.frames {
		if len(ts.frames[t].data) != len(src.frames[t].data) {
			return chk.Err("tensor: shape mismatch at frame %d", t)
		}
		copy(ts.frames[t].data, src.frames[t].data)
	}
	return nil
}

// StressPair holds Cauchy and first-Piola stress fields sharing one shape,
// for one time frame.
type StressPair struct {
	Sigma *ReferenceTensorField
	P     *ReferenceTensorField
}

// StressStore is the TimeSeries of (sigma,P) pairs recomputed by package material.
type StressStore struct {
	shape  Shape
	frames []StressPair
}

// NewStressStore allocates nFrames empty stress pairs of the given shape.
func NewStressStore(shape Shape, nFrames int) *StressStore {
	frames := make([]StressPair, nFrames)
	for t := range frames {
		frames[t] = StressPair{
			Sigma: NewReferenceTensorField(shape),
			P:     NewReferenceTensorField(shape),
		}
	}
	return &StressStore{shape: shape, frames: frames}
}

// NTimes returns the number of time frames.
func (s *StressStore) NTimes() int { return len(s.frames) }

// Shape returns the shared ragged shape.
func (s *StressStore) Shape() Shape { return s.shape }

// Frame returns the stress pair at time t.
func (s *StressStore) Frame(t int) (StressPair, error) {
	if t < 0 || t >= len(s.frames) {
		return StressPair{}, chk.Err("tensor: time index %d out of range [0,%d)", t, len(s.frames))
	}
	return s.frames[t], nil
}

// Clone deep-copies the store.
func (s *StressStore) Clone() *StressStore {
	out := &StressStore{shape: s.shape, frames: make([]StressPair, len(s.frames))}
	for t, fr := range s.frames {
		sig := &ReferenceTensorField{shape: fr.Sigma.shape, data: append([]Mat3(nil), fr.Sigma.data...)}
		p := &ReferenceTensorField{shape: fr.P.shape, data: append([]Mat3(nil), fr.P.data...)}
		out.frames[t] = StressPair{Sigma: sig, P: p}
	}
	return out
}

// CopyFrom overwrites s's contents with src's; shapes must match.
func (s *StressStore) CopyFrom(src *StressStore) error {
	if len(s.frames) != len(src.frames) {
		return chk.Err("tensor: cannot copy store of %d frames into store of %d frames", len(src.frames), len(s.frames))
	}
	for t := range s.frames {
		copy(s.frames[t].Sigma.data, src.frames[t].Sigma.data)
		copy(s.frames[t].P.data, src.frames[t].P.data)
	}
	return nil
}
