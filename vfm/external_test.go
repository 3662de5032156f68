// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/mesh"
)

func TestExternalWorkSingleRepresentativeNode(t *testing.T) {
	surfaces := mesh.SurfaceMap{"x+": {5, 6, 7}}

	vf := field.NewNodalField(8)
	vf.U[5] = [3]float64{0.01, 0, 0}
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{vf}})

	loads := field.NewLoadSeries([]field.LoadFrame{
		{Time: 0, Loads: []field.LoadEntry{{Surface: "x+", Force: [3]float64{100, 0, 0}}}},
	})

	W, err := ExternalWork(surfaces, virtuals, loads)
	require.NoError(t, err)
	require.Len(t, W, 1)
	assert.InDelta(t, 1.0, W[0], 1e-12)
}

func TestExternalWorkMissingSurfaceFails(t *testing.T) {
	surfaces := mesh.SurfaceMap{}
	vf := field.NewNodalField(8)
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{vf}})
	loads := field.NewLoadSeries([]field.LoadFrame{
		{Time: 0, Loads: []field.LoadEntry{{Surface: "x+", Force: [3]float64{1, 0, 0}}}},
	})

	_, err := ExternalWork(surfaces, virtuals, loads)
	assert.Error(t, err)
}

func TestExternalWorkEmptySurfaceNodesFails(t *testing.T) {
	surfaces := mesh.SurfaceMap{"x+": {}}
	vf := field.NewNodalField(8)
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{vf}})
	loads := field.NewLoadSeries([]field.LoadFrame{
		{Time: 0, Loads: []field.LoadEntry{{Surface: "x+", Force: [3]float64{1, 0, 0}}}},
	})

	_, err := ExternalWork(surfaces, virtuals, loads)
	assert.Error(t, err)
}

func TestExternalWorkRejectsBadVirtualFrameCount(t *testing.T) {
	surfaces := mesh.SurfaceMap{"x+": {0}}
	vf0 := field.NewNodalField(8)
	vf1 := field.NewNodalField(8)
	virtuals := field.NewVirtualFieldSet([][]field.NodalField{{vf0, vf1}}) // 2 frames

	loads := field.NewLoadSeries([]field.LoadFrame{
		{Time: 0, Loads: []field.LoadEntry{{Surface: "x+", Force: [3]float64{1, 0, 0}}}},
		{Time: 1, Loads: []field.LoadEntry{{Surface: "x+", Force: [3]float64{1, 0, 0}}}},
		{Time: 2, Loads: []field.LoadEntry{{Surface: "x+", Force: [3]float64{1, 0, 0}}}},
	}) // T=3, virtual field has 2 frames -> invalid

	_, err := ExternalWork(surfaces, virtuals, loads)
	assert.Error(t, err)
}

func TestExternalWorkEmptyInputsYieldNil(t *testing.T) {
	surfaces := mesh.SurfaceMap{}
	virtuals := field.NewVirtualFieldSet(nil)
	loads := field.NewLoadSeries(nil)

	W, err := ExternalWork(surfaces, virtuals, loads)
	require.NoError(t, err)
	assert.Nil(t, W)
}
