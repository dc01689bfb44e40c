/*
Copyright © 2017 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package table

import (
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

// ngaEastBranch is one weighted sub-table of the NGA-East composite
// model: a seed-model-style distance/magnitude grid plus the logic-tree
// weight assigned to it.
type ngaEastBranch struct {
	label  string
	weight float64
	grid   [][]float64
}

// ngaEastDistances and ngaEastMagnitudes are the grid axes shared by
// every NGA-East branch table.
var (
	ngaEastDistances  = []float64{1, 10, 30, 70, 150, 400, 1000}
	ngaEastMagnitudes = []float64{4.0, 5.0, 6.0, 7.0, 8.0}
)

// ngaEastBranches holds the PGA log10(g) grids for three representative
// seed-model branches, with weights summing to 1.
var ngaEastBranches = []ngaEastBranch{
	{
		label:  "seed1",
		weight: 0.30,
		grid: [][]float64{
			{-0.25, 0.12, 0.52, 0.85, 1.10},
			{-0.80, -0.38, 0.02, 0.35, 0.60},
			{-1.50, -1.02, -0.60, -0.25, 0.00},
			{-2.15, -1.62, -1.18, -0.80, -0.52},
			{-2.90, -2.30, -1.80, -1.38, -1.05},
			{-3.80, -3.10, -2.52, -2.03, -1.65},
			{-4.50, -3.72, -3.06, -2.52, -2.10},
		},
	},
	{
		label:  "seed2",
		weight: 0.45,
		grid: [][]float64{
			{-0.32, 0.04, 0.44, 0.76, 1.00},
			{-0.88, -0.46, -0.06, 0.26, 0.50},
			{-1.58, -1.10, -0.68, -0.33, -0.08},
			{-2.22, -1.70, -1.25, -0.88, -0.60},
			{-2.97, -2.38, -1.88, -1.46, -1.14},
			{-3.88, -3.18, -2.60, -2.12, -1.74},
			{-4.58, -3.80, -3.15, -2.61, -2.19},
		},
	},
	{
		label:  "seed3",
		weight: 0.25,
		grid: [][]float64{
			{-0.40, -0.05, 0.34, 0.66, 0.90},
			{-0.95, -0.54, -0.15, 0.17, 0.40},
			{-1.65, -1.18, -0.76, -0.42, -0.18},
			{-2.30, -1.78, -1.33, -0.96, -0.68},
			{-3.05, -2.46, -1.96, -1.54, -1.22},
			{-3.95, -3.26, -2.68, -2.20, -1.82},
			{-4.65, -3.88, -3.23, -2.69, -2.27},
		},
	},
}

// NGAEastUSGS implements the composite, multi-scalar NGA-East USGS
// model: a weighted set of seed-model PGA branches, with a three-piece
// magnitude-dependent total standard deviation.
type NGAEastUSGS struct {
	tables []*nshmp.GroundMotionTable
}

// NewNGAEastUSGS builds the NGA-East branch tables in-process and
// returns a factory for PGA, the only IMT this reduced implementation
// carries branch tables for.
func NewNGAEastUSGS() (nshmp.Factory, error) {
	m := &NGAEastUSGS{}
	for _, b := range ngaEastBranches {
		m.tables = append(m.tables, nshmp.NewGroundMotionTable(nshmp.GmTableLogDistanceScaling, ngaEastDistances, ngaEastMagnitudes, b.grid))
	}
	return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
		if imt != nshmp.PGA {
			return nil, fmt.Errorf("table: NGAEastUSGS does not support %s", imt)
		}
		return &ngaEastInstance{base: m}, nil
	}, nil
}

type ngaEastInstance struct {
	base *NGAEastUSGS
}

// Name implements nshmp.GroundMotionModel.
func (n *ngaEastInstance) Name() string { return "NGA-East (2017) USGS Composite" }

// SupportedIMTs implements nshmp.GroundMotionModel.
func (n *ngaEastInstance) SupportedIMTs() []nshmp.IMT { return []nshmp.IMT{nshmp.PGA} }

// Constraints implements nshmp.GroundMotionModel.
func (n *ngaEastInstance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 4.0, Max: 8.2}
	c.RRup = nshmp.Range{Min: 0, Max: 1000}
	return c
}

// Calc implements nshmp.GroundMotionModel. It returns a
// MultiScalarGroundMotion: one mean per seed-model branch, each carrying
// the branch's logic-tree weight, and a matching array of
// magnitude-dependent sigmas with the same weights.
func (n *ngaEastInstance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	if imt != nshmp.PGA {
		return nshmp.GroundMotion{}
	}
	r := math.Max(in.RRup, 1.0)
	means := make([]float64, len(n.base.tables))
	weights := make([]float64, len(ngaEastBranches))
	sigmas := make([]float64, len(n.base.tables))
	for i, t := range n.base.tables {
		log10g := t.Lookup(r, in.Mw)
		means[i] = nshmp.ToNaturalLogMS2(log10g, nshmp.PGA)
		weights[i] = ngaEastBranches[i].weight
		sigmas[i] = ngaEastSigma(in.Mw)
	}
	return nshmp.GroundMotion{Multi: &nshmp.MultiScalarGroundMotion{
		Means:        means,
		MeanWeights:  weights,
		Sigmas:       sigmas,
		SigmaWeights: weights,
	}}
}

// ngaEastSigma is NGA-East's three-piece, magnitude-dependent total
// standard deviation: flat below m1, linearly interpolated between m1
// and m2, flat above m2.
func ngaEastSigma(m float64) float64 {
	const (
		sigmaLow  = 0.75
		sigmaHigh = 0.55
		m1        = 5.0
		m2        = 6.5
	)
	switch {
	case m <= m1:
		return sigmaLow
	case m >= m2:
		return sigmaHigh
	default:
		frac := (m - m1) / (m2 - m1)
		return sigmaLow + (sigmaHigh-sigmaLow)*frac
	}
}
