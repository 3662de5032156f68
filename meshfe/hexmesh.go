// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshfe

import (
	"github.com/cpmech/gosl/chk"

	"github.com/vfmgo/vfmid/tensor"
)

// HexMesh is a structured grid of trilinear hex8 elements built over a
// rectangular box in the reference configuration. It implements
// mesh.Collaborator. Node and element ids are offset from their storage
// indices so mesh.Build's id/index bijection is genuinely exercised,
// the way a real FE mesh reader's external ids would be.
type HexMesh struct {
	nx, ny, nz int // element counts along x, y, z
	coords     [][3]float64
	elems      [][8]int // node storage indices, hex8Natural order
	gaussN     int      // 1 or 8, applied uniformly

	nodeExtID []int // storage index -> external node id
	elemExtID []int // storage index -> external element id

	surfaces map[string][]int // named face -> node storage indices
}

// NewBrick builds an nx*ny*nz grid of hex8 elements spanning
// [0,lx]x[0,ly]x[0,lz], with gaussPerElem Gauss points per element (1 or
// 8), and registers the six named boundary faces "x-", "x+", "y-", "y+",
// "z-", "z+".
func NewBrick(nx, ny, nz int, lx, ly, lz float64, gaussPerElem int) (*HexMesh, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, chk.Err("meshfe: NewBrick requires nx,ny,nz >= 1, got (%d,%d,%d)", nx, ny, nz)
	}
	if gaussPerElem != 1 && gaussPerElem != 8 {
		return nil, chk.Err("meshfe: NewBrick requires gaussPerElem in {1,8}, got %d", gaussPerElem)
	}

	m := &HexMesh{nx: nx, ny: ny, nz: nz, gaussN: gaussPerElem, surfaces: map[string][]int{}}

	npx, npy, npz := nx+1, ny+1, nz+1
	nodeIdx := func(i, j, k int) int { return (k*npy+j)*npx + i }

	for k := 0; k < npz; k++ {
		z := lz * float64(k) / float64(nz)
		for j := 0; j < npy; j++ {
			y := ly * float64(j) / float64(ny)
			for i := 0; i < npx; i++ {
				x := lx * float64(i) / float64(nx)
				m.coords = append(m.coords, [3]float64{x, y, z})
			}
		}
	}
	m.nodeExtID = make([]int, len(m.coords))
	for idx := range m.nodeExtID {
		m.nodeExtID[idx] = 1000 + idx
	}

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				var e [8]int
				e[0] = nodeIdx(i, j, k)
				e[1] = nodeIdx(i+1, j, k)
				e[2] = nodeIdx(i+1, j+1, k)
				e[3] = nodeIdx(i, j+1, k)
				e[4] = nodeIdx(i, j, k+1)
				e[5] = nodeIdx(i+1, j, k+1)
				e[6] = nodeIdx(i+1, j+1, k+1)
				e[7] = nodeIdx(i, j+1, k+1)
				m.elems = append(m.elems, e)
			}
		}
	}
	m.elemExtID = make([]int, len(m.elems))
	for idx := range m.elemExtID {
		m.elemExtID[idx] = 2000 + idx
	}

	for i := 0; i < npx; i++ {
		for j := 0; j < npy; j++ {
			m.surfaces["z-"] = append(m.surfaces["z-"], nodeIdx(i, j, 0))
			m.surfaces["z+"] = append(m.surfaces["z+"], nodeIdx(i, j, nz))
		}
	}
	for i := 0; i < npx; i++ {
		for k := 0; k < npz; k++ {
			m.surfaces["y-"] = append(m.surfaces["y-"], nodeIdx(i, 0, k))
			m.surfaces["y+"] = append(m.surfaces["y+"], nodeIdx(i, ny, k))
		}
	}
	for j := 0; j < npy; j++ {
		for k := 0; k < npz; k++ {
			m.surfaces["x-"] = append(m.surfaces["x-"], nodeIdx(0, j, k))
			m.surfaces["x+"] = append(m.surfaces["x+"], nodeIdx(nx, j, k))
		}
	}

	return m, nil
}

// AllSolid implements problem.DomainChecker: every element of a HexMesh
// is a solid continuum element.
func (m *HexMesh) AllSolid() bool { return true }

// NNodes implements mesh.Collaborator.
func (m *HexMesh) NNodes() int { return len(m.coords) }

// NElems implements mesh.Collaborator.
func (m *HexMesh) NElems() int { return len(m.elems) }

// ElemID implements mesh.Collaborator.
func (m *HexMesh) ElemID(e int) int { return m.elemExtID[e] }

// NodeID implements mesh.Collaborator.
func (m *HexMesh) NodeID(idx int) int { return m.nodeExtID[idx] }

// ElemNodes implements mesh.Collaborator.
func (m *HexMesh) ElemNodes(e int) []int {
	nodes := make([]int, 8)
	copy(nodes, m.elems[e][:])
	return nodes
}

// GaussCount implements mesh.Collaborator.
func (m *HexMesh) GaussCount(e int) int { return m.gaussN }

func (m *HexMesh) gaussRule() [][4]float64 {
	if m.gaussN == 1 {
		return gaussPoint1
	}
	return gaussPoint8
}

func (m *HexMesh) elemRefCoords(e int) [8][3]float64 {
	var Xe [8][3]float64
	for a, idx := range m.elems[e] {
		Xe[a] = m.coords[idx]
	}
	return Xe
}

// RefJW implements mesh.Collaborator.
func (m *HexMesh) RefJW(e, g int) (float64, error) {
	if e < 0 || e >= len(m.elems) {
		return 0, chk.Err("meshfe: element index %d out of range", e)
	}
	rule := m.gaussRule()
	if g < 0 || g >= len(rule) {
		return 0, chk.Err("meshfe: gauss index %d out of range for element %d", g, e)
	}
	pt := rule[g]
	Xe := m.elemRefCoords(e)
	_, jw, err := hex8GradAndJW(Xe, pt[0], pt[1], pt[2], pt[3])
	if err != nil {
		return 0, err
	}
	return jw, nil
}

// GradN implements mesh.Collaborator.
func (m *HexMesh) GradN(e, g int) ([]tensor.Vec3, error) {
	if e < 0 || e >= len(m.elems) {
		return nil, chk.Err("meshfe: element index %d out of range", e)
	}
	rule := m.gaussRule()
	if g < 0 || g >= len(rule) {
		return nil, chk.Err("meshfe: gauss index %d out of range for element %d", g, e)
	}
	pt := rule[g]
	Xe := m.elemRefCoords(e)
	grad, _, err := hex8GradAndJW(Xe, pt[0], pt[1], pt[2], pt[3])
	if err != nil {
		return nil, err
	}
	out := make([]tensor.Vec3, 8)
	copy(out, grad[:])
	return out, nil
}

// Surface implements mesh.Collaborator.
func (m *HexMesh) Surface(name string) ([]int, error) {
	nodes, ok := m.surfaces[name]
	if !ok {
		return nil, chk.Err("meshfe: unknown surface %q", name)
	}
	out := make([]int, len(nodes))
	copy(out, nodes)
	return out, nil
}

// NodeCoord returns the reference-configuration coordinates of the node
// at storage index idx, used by test fixtures to build measured fields
// analytically.
func (m *HexMesh) NodeCoord(idx int) [3]float64 { return m.coords[idx] }
