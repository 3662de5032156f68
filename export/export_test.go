// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfmgo/vfmid/field"
	"github.com/vfmgo/vfmid/mesh"
	"github.com/vfmgo/vfmid/tensor"
)

func buildTestFacts(t *testing.T) *mesh.Facts {
	t.Helper()
	m := &singleElemMesh{}
	facts, err := mesh.Build(m)
	require.NoError(t, err)
	return facts
}

type singleElemMesh struct{}

func (m *singleElemMesh) NNodes() int                         { return 8 }
func (m *singleElemMesh) NElems() int                         { return 1 }
func (m *singleElemMesh) ElemID(e int) int                    { return 1 }
func (m *singleElemMesh) NodeID(idx int) int                  { return idx }
func (m *singleElemMesh) ElemNodes(e int) []int               { return []int{0, 1, 2, 3, 4, 5, 6, 7} }
func (m *singleElemMesh) GaussCount(e int) int                { return 1 }
func (m *singleElemMesh) RefJW(e, g int) (float64, error)     { return 1.0, nil }
func (m *singleElemMesh) GradN(e, g int) ([]tensor.Vec3, error) { return make([]tensor.Vec3, 8), nil }
func (m *singleElemMesh) Surface(name string) ([]int, error)  { return nil, assertErr("no surfaces") }

type simpleErr string

func (e simpleErr) Error() string { return string(e) }
func assertErr(s string) error    { return simpleErr(s) }

func TestPlotNFramesTakesMaxOfTimelines(t *testing.T) {
	facts := buildTestFacts(t)
	shape := facts.Shape()

	p := &Plot{
		Facts:     facts,
		Measured:  field.NewMeasuredSeries([]field.NodalField{field.NewNodalField(8)}),
		MeasuredF: tensor.NewTimeSeries(shape, 1),
		Stresses:  tensor.NewStressStore(shape, 3),
		VirtualF:  []*tensor.TimeSeries{tensor.NewTimeSeries(shape, 2)},
	}
	assert.Equal(t, 3, p.nFrames())
}

func TestWritePlotHeaderRoundTrip(t *testing.T) {
	facts := buildTestFacts(t)
	shape := facts.Shape()

	p := &Plot{
		Facts:        facts,
		Measured:     field.NewMeasuredSeries([]field.NodalField{field.NewNodalField(8)}),
		MeasuredF:    tensor.NewTimeSeries(shape, 1),
		Stresses:     tensor.NewStressStore(shape, 1),
		VirtualNames: []string{"v1"},
		Virtuals:     field.NewVirtualFieldSet([][]field.NodalField{{field.NewNodalField(8)}}),
		VirtualF:     []*tensor.TimeSeries{tensor.NewTimeSeries(shape, 1)},
	}

	var buf bytes.Buffer
	require.NoError(t, writePlot(&buf, p))

	data := buf.Bytes()
	require.True(t, len(data) >= 8+4*4)
	assert.Equal(t, plotMagic, string(data[:8]))

	nNodes := binary.LittleEndian.Uint32(data[8:12])
	nElems := binary.LittleEndian.Uint32(data[12:16])
	nFrames := binary.LittleEndian.Uint32(data[16:20])
	nVF := binary.LittleEndian.Uint32(data[20:24])
	assert.Equal(t, uint32(8), nNodes)
	assert.Equal(t, uint32(1), nElems)
	assert.Equal(t, uint32(1), nFrames)
	assert.Equal(t, uint32(1), nVF)
}

func TestWriteVirtualWorkCSVRejectsMismatchedLengths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.txt")
	err := WriteVirtualWorkCSV(path, 1, []float64{1, 2}, []float64{1})
	assert.Error(t, err)
}

func TestWriteVirtualWorkCSVRejectsBadVFCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.txt")
	err := WriteVirtualWorkCSV(path, 3, []float64{1, 2}, []float64{1, 2})
	assert.Error(t, err)
}

func TestWriteVirtualWorkCSVWritesOneRowPerFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.txt")
	// nVF=2, T=2, flattened as [v*T+t]: v0={1.0,2.0}, v1={3.0,4.0}
	require.NoError(t, WriteVirtualWorkCSV(path, 2, []float64{1.0, 2.0, 3.0, 4.0}, []float64{0.5, 1.5, 2.5, 3.5}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(content)
	assert.Contains(t, s, "#Step, IVW1, IVW2, EVW1, EVW2")
	assert.Contains(t, s, "0, 1.000000e+00, 3.000000e+00, 5.000000e-01, 2.500000e+00")
	assert.Contains(t, s, "1, 2.000000e+00, 4.000000e+00, 1.500000e+00, 3.500000e+00")
}
