// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfmgo/vfmid/tensor"
)

// fakeCollaborator is a minimal single-element mesh.Collaborator used to
// exercise Build/BuildSurfaceMap without depending on package meshfe.
type fakeCollaborator struct {
	nNodes      int
	elemNodes   [][]int
	gauss       int
	jw          float64
	surfaces    map[string][]int
	failRefJW   bool
	badJW       float64
}

func (f *fakeCollaborator) NNodes() int           { return f.nNodes }
func (f *fakeCollaborator) NElems() int           { return len(f.elemNodes) }
func (f *fakeCollaborator) ElemID(e int) int      { return 100 + e }
func (f *fakeCollaborator) NodeID(idx int) int    { return 200 + idx }
func (f *fakeCollaborator) ElemNodes(e int) []int { return f.elemNodes[e] }
func (f *fakeCollaborator) GaussCount(e int) int  { return f.gauss }

func (f *fakeCollaborator) RefJW(e, g int) (float64, error) {
	if f.failRefJW {
		return 0, assertErr("refjw failed")
	}
	if f.badJW != 0 {
		return f.badJW, nil
	}
	return f.jw, nil
}

func (f *fakeCollaborator) GradN(e, g int) ([]tensor.Vec3, error) {
	out := make([]tensor.Vec3, len(f.elemNodes[e]))
	return out, nil
}

func (f *fakeCollaborator) Surface(name string) ([]int, error) {
	nodes, ok := f.surfaces[name]
	if !ok {
		return nil, assertErr("unknown surface")
	}
	return nodes, nil
}

type simpleErr string

func (e simpleErr) Error() string { return string(e) }
func assertErr(s string) error    { return simpleErr(s) }

func newFakeMesh() *fakeCollaborator {
	return &fakeCollaborator{
		nNodes:    8,
		elemNodes: [][]int{{0, 1, 2, 3, 4, 5, 6, 7}},
		gauss:     8,
		jw:        0.125,
		surfaces: map[string][]int{
			"x+": {1, 2, 5, 6},
		},
	}
}

func TestBuildBasic(t *testing.T) {
	m := newFakeMesh()
	facts, err := Build(m)
	require.NoError(t, err)
	assert.Equal(t, 8, facts.NNodes())
	assert.Equal(t, 1, facts.NElems())
	assert.Equal(t, 8, facts.GpPerElem(0))
	assert.Equal(t, 8, facts.TotalGP())
	assert.Equal(t, 0.125, facts.JW(0))

	idx, ok := facts.NodeIndex(200)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	eidx, ok := facts.ElemIndex(100)
	assert.True(t, ok)
	assert.Equal(t, 0, eidx)
}

func TestBuildRejectsNonPositiveJW(t *testing.T) {
	m := newFakeMesh()
	m.badJW = -1
	_, err := Build(m)
	assert.Error(t, err)
}

func TestBuildRejectsRefJWFailure(t *testing.T) {
	m := newFakeMesh()
	m.failRefJW = true
	_, err := Build(m)
	assert.Error(t, err)
}

func TestBuildSurfaceMap(t *testing.T) {
	m := newFakeMesh()
	sm, err := BuildSurfaceMap(m, []string{"x+"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5, 6}, sm["x+"])
}

func TestBuildSurfaceMapUnknownSurfaceFails(t *testing.T) {
	m := newFakeMesh()
	_, err := BuildSurfaceMap(m, []string{"nope"})
	assert.Error(t, err)
}

func TestBuildSurfaceMapEmptyNodesFails(t *testing.T) {
	m := newFakeMesh()
	m.surfaces["empty"] = []int{}
	_, err := BuildSurfaceMap(m, []string{"empty"})
	assert.Error(t, err)
}
