// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh defines the mesh collaborator contract and the frozen
// Facts derived from it once at setup time. The collaborator itself —
// node/element enumeration, shape-function gradients, reference-Jacobian
// evaluation — is external; this package never mutates it.
package mesh

import "github.com/vfmgo/vfmid/tensor"

// Collaborator is the mesh/material-ecosystem contract this package
// consumes. It is read-only from the VFM core's point of view.
type Collaborator interface {
	// NElems returns the number of elements in solid domains.
	NElems() int
	// ElemID returns the external identifier of the dense element index e.
	ElemID(e int) int
	// ElemNodes returns the ordered node indices (dense, into [0,NNodes))
	// belonging to element e.
	ElemNodes(e int) []int
	// NodeID returns the external identifier of the dense node index idx.
	NodeID(idx int) int
	// NNodes returns the number of nodes.
	NNodes() int
	// GaussCount returns the integration-point count of element e.
	GaussCount(e int) int
	// RefJW returns det(J0(e,g)) * Gauss weight g of element e — signed.
	RefJW(e, g int) (float64, error)
	// GradN returns grad_x N_a(e,g) for every local node a of element e,
	// evaluated in the reference configuration.
	GradN(e, g int) ([]tensor.Vec3, error)
	// Surface resolves a named boundary surface to the set of (dense) node
	// indices belonging to it. Returns an error if the name is unknown.
	Surface(name string) ([]int, error)
}

// Facts is the frozen, immutable-after-construction mesh summary: node/
// element bijections, per-element node lists, ragged Gauss-point counts,
// and validated jw weights.
type Facts struct {
	nNodes     int
	nElems     int
	nodeID2Idx map[int]int
	idx2NodeID []int
	elemID2Idx map[int]int
	idx2ElemID []int
	elemNodes  [][]int
	gpPerElem  []int
	offset     []int
	jw         []float64
}

// NNodes returns the node count.
func (f *Facts) NNodes() int { return f.nNodes }

// NElems returns the element count.
func (f *Facts) NElems() int { return f.nElems }

// ElemNodes returns the ordered node indices of element e.
func (f *Facts) ElemNodes(e int) []int { return f.elemNodes[e] }

// GpPerElem returns the integration-point count of element e.
func (f *Facts) GpPerElem(e int) int { return f.gpPerElem[e] }

// Offset returns the prefix-sum offset of element e into the flat jw/tensor
// storage; Offset(NElems()) is the total integration-point count.
func (f *Facts) Offset(e int) int { return f.offset[e] }

// TotalGP returns the total integration-point count across all elements.
func (f *Facts) TotalGP() int { return f.offset[f.nElems] }

// JW returns jw at flat index offset(e)+g.
func (f *Facts) JW(flatIdx int) float64 { return f.jw[flatIdx] }

// NodeIndex returns the dense index for an external node id, and whether it
// was found.
func (f *Facts) NodeIndex(id int) (int, bool) {
	idx, ok := f.nodeID2Idx[id]
	return idx, ok
}

// ElemIndex returns the dense index for an external element id, and whether
// it was found.
func (f *Facts) ElemIndex(id int) (int, bool) {
	idx, ok := f.elemID2Idx[id]
	return idx, ok
}

// Shape builds the tensor.Shape implied by this mesh's ragged GP layout.
func (f *Facts) Shape() tensor.Shape {
	return tensor.NewShape(f.gpPerElem)
}
