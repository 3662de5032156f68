// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/gosl/chk"

// Build derives immutable Facts from a mesh Collaborator. This runs once
// during problem setup; a non-positive jw at any integration point is a
// fatal validation failure.
func Build(coll Collaborator) (*Facts, error) {
	nNodes := coll.NNodes()
	nElems := coll.NElems()

	f := &Facts{
		nNodes:     nNodes,
		nElems:     nElems,
		nodeID2Idx: make(map[int]int, nNodes),
		idx2NodeID: make([]int, nNodes),
		elemID2Idx: make(map[int]int, nElems),
		idx2ElemID: make([]int, nElems),
		elemNodes:  make([][]int, nElems),
		gpPerElem:  make([]int, nElems),
		offset:     make([]int, nElems+1),
	}

	for idx := 0; idx < nNodes; idx++ {
		id := coll.NodeID(idx)
		if _, dup := f.nodeID2Idx[id]; dup {
			return nil, chk.Err("mesh: duplicate node id %d at index %d", id, idx)
		}
		f.nodeID2Idx[id] = idx
		f.idx2NodeID[idx] = id
	}

	for e := 0; e < nElems; e++ {
		id := coll.ElemID(e)
		if _, dup := f.elemID2Idx[id]; dup {
			return nil, chk.Err("mesh: duplicate element id %d at index %d", id, e)
		}
		f.elemID2Idx[id] = e
		f.idx2ElemID[e] = id
		f.elemNodes[e] = append([]int(nil), coll.ElemNodes(e)...)
		f.gpPerElem[e] = coll.GaussCount(e)
		f.offset[e+1] = f.offset[e] + f.gpPerElem[e]
	}

	total := f.offset[nElems]
	f.jw = make([]float64, total)
	for e := 0; e < nElems; e++ {
		off := f.offset[e]
		for g := 0; g < f.gpPerElem[e]; g++ {
			jw, err := coll.RefJW(e, g)
			if err != nil {
				return nil, chk.Err("mesh: reference-Jacobian evaluation failed at element %d gauss %d: %v", e, g, err)
			}
			if jw <= 0 {
				return nil, chk.Err("mesh: non-positive jw=%.6g at element %d (id=%d) gauss %d", jw, e, coll.ElemID(e), g)
			}
			f.jw[off+g] = jw
		}
	}
	return f, nil
}

// SurfaceMap maps a boundary surface name to the node indices resolved
// against a Facts-consistent Collaborator.
type SurfaceMap map[string][]int

// BuildSurfaceMap resolves each requested surface name once. An unknown
// surface name or a surface with no resolved nodes is a fatal validation
// failure.
func BuildSurfaceMap(coll Collaborator, names []string) (SurfaceMap, error) {
	sm := make(SurfaceMap, len(names))
	for _, name := range names {
		nodes, err := coll.Surface(name)
		if err != nil {
			return nil, chk.Err("mesh: unknown surface %q: %v", name, err)
		}
		if len(nodes) == 0 {
			return nil, chk.Err("mesh: surface %q resolved to no nodes", name)
		}
		sm[name] = append([]int(nil), nodes...)
	}
	return sm, nil
}
