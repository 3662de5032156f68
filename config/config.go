// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config decodes the XML problem description into plain DTOs, in
// the tagged-struct idiom of inp.Material/inp.MatDb (JSON tags there, XML
// tags here — see DESIGN.md for why encoding/xml stays on the standard
// library rather than a third-party decoder).
package config

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
)

// ParameterXML is one entry of the <Parameters> block.
type ParameterXML struct {
	Name  string  `xml:"name,attr"`
	Init  float64 `xml:"init,attr"`
	Lo    float64 `xml:"lo,attr"`
	Hi    float64 `xml:"hi,attr"`
	Scale float64 `xml:"scale,attr"`
}

// NodeDisp is one {node_id, ux, uy, uz} entry.
type NodeDisp struct {
	NodeID int     `xml:"node_id,attr"`
	Ux     float64 `xml:"ux,attr"`
	Uy     float64 `xml:"uy,attr"`
	Uz     float64 `xml:"uz,attr"`
}

// TimeBlock is a per-time block of nodal displacements.
type TimeBlock struct {
	T     int        `xml:"t,attr"`
	Nodes []NodeDisp `xml:"node"`
}

// VirtualFieldXML is a single named virtual-field block.
type VirtualFieldXML struct {
	Name  string      `xml:"name,attr"`
	Times []TimeBlock `xml:"time"`
}

// LoadEntryXML is one {surface_name, Fx, Fy, Fz} entry.
type LoadEntryXML struct {
	Surface string  `xml:"surface_name,attr"`
	Fx      float64 `xml:"Fx,attr"`
	Fy      float64 `xml:"Fy,attr"`
	Fz      float64 `xml:"Fz,attr"`
}

// LoadTimeBlock is a per-time block of surface loads.
type LoadTimeBlock struct {
	T     int            `xml:"t,attr"`
	Loads []LoadEntryXML `xml:"load"`
}

// OptimizationXML mirrors the Options/Optimization block. Zero values for
// the numeric knobs mean "unset" and are filled from
// optimize.DefaultOptions downstream (problem.SolverOptions.ToOptimizeOptions).
type OptimizationXML struct {
	Solver           string  `xml:"solver,attr"` // "Levmar" or "ConstrainedLevmar"
	Tau              float64 `xml:"tau,attr"`
	GradTol          float64 `xml:"grad_tol,attr"`
	StepTol          float64 `xml:"step_tol,attr"`
	ObjTol           float64 `xml:"obj_tol,attr"`
	FDStep           float64 `xml:"fd_step,attr"`
	MaxIterations    int     `xml:"max_iterations,attr"`
	PlaneDeformation bool    `xml:"plane_deformation,attr"`
	SaveVirtualWork  string  `xml:"save_virtual_work,attr"`
}

// Document is the root element of a VFM problem file.
type Document struct {
	XMLName xml.Name `xml:"VFMProblem"`

	Parameters struct {
		Items []ParameterXML `xml:"parameter"`
	} `xml:"Parameters"`

	MeasuredDisplacements struct {
		Times []TimeBlock `xml:"time"`
	} `xml:"MeasuredDisplacements"`

	// VirtualDisplacements holds either named <field> children (the
	// preferred form) or bare <time> children directly (the legacy
	// anonymous form).
	VirtualDisplacements struct {
		Fields      []VirtualFieldXML `xml:"field"`
		LegacyTimes []TimeBlock       `xml:"time"`
	} `xml:"VirtualDisplacements"`

	MeasuredLoads struct {
		Times []LoadTimeBlock `xml:"time"`
	} `xml:"MeasuredLoads"`

	Options struct {
		Optimization OptimizationXML `xml:"Optimization"`
	} `xml:"Options"`
}

// Load reads and decodes a VFM problem file at dir/fn.
func Load(dir, fn string) (*Document, error) {
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("config: cannot read %q: %v", filepath.Join(dir, fn), err)
	}
	doc := new(Document)
	if err := xml.Unmarshal(b, doc); err != nil {
		return nil, chk.Err("config: cannot parse %q: %v", filepath.Join(dir, fn), err)
	}
	return doc, nil
}

// VirtualFields normalizes the two accepted VirtualDisplacements shapes
// into a uniform slice of named fields: the legacy bare-<time> form
// becomes a single field named "".
func (d *Document) VirtualFields() []VirtualFieldXML {
	if len(d.VirtualDisplacements.LegacyTimes) > 0 {
		return []VirtualFieldXML{{Name: "", Times: d.VirtualDisplacements.LegacyTimes}}
	}
	return d.VirtualDisplacements.Fields
}
