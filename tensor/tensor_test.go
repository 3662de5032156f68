// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat3Arithmetic(t *testing.T) {
	I := Identity()
	assert.Equal(t, 1.0, I.Det())
	assert.True(t, I.IsSymmetric(0))

	a := Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}
	assert.Equal(t, 24.0, a.Det())
	inv := a.Inverse()
	prod := a.Mul(inv)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, I[i][j], prod[i][j], 1e-12)
		}
	}

	b := a.Transpose()
	assert.Equal(t, a, b) // diagonal is self-transpose

	var m Mat3
	m.AddOuter(Vec3{1, 2, 3}, Vec3{4, 5, 6})
	assert.Equal(t, 4.0, m[0][0])
	assert.Equal(t, 18.0, m[2][2])
}

func TestMat3InverseSingularPanics(t *testing.T) {
	singular := Mat3{}
	assert.Panics(t, func() { singular.Inverse() })
}

func TestShapeIndexAndEqual(t *testing.T) {
	s1 := NewShape([]int{1, 8, 8})
	assert.Equal(t, 17, s1.Total())
	assert.Equal(t, 3, s1.NElems())
	assert.Equal(t, 0, s1.Index(0, 0))
	assert.Equal(t, 1, s1.Index(1, 0))
	assert.Equal(t, 9, s1.Index(2, 0))

	s2 := NewShape([]int{1, 8, 8})
	assert.True(t, s1.Equal(s2))

	s3 := NewShape([]int{1, 8})
	assert.False(t, s1.Equal(s3))
}

func TestReferenceTensorFieldElemAverage(t *testing.T) {
	shape := NewShape([]int{2})
	f := NewReferenceTensorField(shape)
	f.Set(0, 0, Mat3{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}})
	f.Set(0, 1, Mat3{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}})
	avg := f.ElemAverage(0)
	assert.Equal(t, 3.0, avg[0][0])
}

func TestTimeSeriesCloneAndCopy(t *testing.T) {
	shape := NewShape([]int{1})
	ts := NewTimeSeries(shape, 2)
	frame0, err := ts.Frame(0)
	require.NoError(t, err)
	frame0.Set(0, 0, Mat3{{9, 0, 0}, {0, 9, 0}, {0, 0, 9}})

	clone := ts.Clone()
	cf0, _ := clone.Frame(0)
	assert.Equal(t, 9.0, cf0.At(0, 0)[0][0])

	fresh := NewTimeSeries(shape, 2)
	require.NoError(t, fresh.CopyFrom(ts))
	ff0, _ := fresh.Frame(0)
	assert.Equal(t, 9.0, ff0.At(0, 0)[0][0])

	// mutating the original after clone/copy must not affect the copies.
	frame0.Set(0, 0, Identity())
	assert.Equal(t, 9.0, cf0.At(0, 0)[0][0])
	assert.Equal(t, 9.0, ff0.At(0, 0)[0][0])
}

func TestStressStoreCloneAndCopy(t *testing.T) {
	shape := NewShape([]int{1})
	s := NewStressStore(shape, 1)
	pair, _ := s.Frame(0)
	pair.Sigma.Set(0, 0, Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})

	clone := s.Clone()
	cp, _ := clone.Frame(0)
	assert.Equal(t, 1.0, cp.Sigma.At(0, 0)[0][0])

	pair.Sigma.Set(0, 0, Mat3{})
	assert.Equal(t, 1.0, cp.Sigma.At(0, 0)[0][0], "clone must be independent of source mutation")
}
