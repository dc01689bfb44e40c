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

// Package stable implements central and eastern US (CEUS) stable
// continent ground-motion models: the table-based Frankel et al. (1996)
// model and the closed-form Somerville et al. (2001) model with its
// mb-to-Mw conversion flavors.
package stable

import (
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

// frankelDistances and frankelMagnitudes are the grid axes shared by
// every Frankel96 IMT table.
var (
	frankelDistances = []float64{1, 10, 30, 70, 130, 300, 500, 1000}
	frankelMagnitudes = []float64{4.4, 5.0, 5.5, 6.0, 6.5, 7.0, 7.5, 8.0}
)

// frankelTables holds the log10(g) hard-rock amplitude grids for each
// supported IMT, one row per distance and one column per magnitude.
var frankelTables = map[string][][]float64{
	"PGA": {
		{-1.20, -0.85, -0.55, -0.25, 0.02, 0.20, 0.34, 0.42},
		{-1.55, -1.15, -0.82, -0.50, -0.22, -0.02, 0.13, 0.22},
		{-2.05, -1.60, -1.22, -0.86, -0.55, -0.30, -0.12, -0.02},
		{-2.55, -2.05, -1.62, -1.22, -0.87, -0.58, -0.37, -0.24},
		{-3.15, -2.58, -2.10, -1.65, -1.25, -0.90, -0.65, -0.48},
		{-3.80, -3.15, -2.60, -2.10, -1.65, -1.25, -0.95, -0.75},
		{-4.15, -3.45, -2.86, -2.32, -1.85, -1.42, -1.10, -0.88},
		{-4.70, -3.92, -3.28, -2.70, -2.20, -1.73, -1.38, -1.13},
	},
	"SA0P2": {
		{-0.80, -0.40, -0.05, 0.28, 0.55, 0.74, 0.88, 0.96},
		{-1.20, -0.75, -0.38, -0.03, 0.28, 0.50, 0.66, 0.76},
		{-1.72, -1.22, -0.82, -0.44, -0.10, 0.16, 0.35, 0.46},
		{-2.25, -1.70, -1.25, -0.83, -0.46, -0.16, 0.06, 0.20},
		{-2.88, -2.25, -1.75, -1.28, -0.85, -0.50, -0.24, -0.07},
		{-3.55, -2.85, -2.28, -1.75, -1.28, -0.88, -0.58, -0.38},
		{-3.92, -3.17, -2.56, -2.00, -1.50, -1.08, -0.75, -0.53},
		{-4.50, -3.66, -3.00, -2.40, -1.87, -1.40, -1.05, -0.81},
	},
	"SA1P0": {
		{-2.00, -1.55, -1.15, -0.75, -0.38, -0.10, 0.10, 0.22},
		{-2.35, -1.85, -1.42, -1.00, -0.62, -0.32, -0.10, 0.02},
		{-2.82, -2.28, -1.82, -1.38, -0.98, -0.65, -0.40, -0.25},
		{-3.30, -2.72, -2.22, -1.76, -1.35, -1.00, -0.73, -0.56},
		{-3.88, -3.22, -2.68, -2.18, -1.73, -1.35, -1.05, -0.86},
		{-4.50, -3.78, -3.18, -2.62, -2.12, -1.70, -1.37, -1.15},
		{-4.85, -4.08, -3.44, -2.84, -2.32, -1.88, -1.52, -1.29},
		{-5.40, -4.54, -3.84, -3.20, -2.65, -2.18, -1.80, -1.55},
	},
}

// frankelSigma is Frankel96's IMT-independent total standard deviation.
const frankelSigma = 0.75

// Frankel96 implements Frankel et al. (1996): a bilinearly interpolated
// log10(g) table over (distance, magnitude), with a hard-rock/soft-rock
// site correction and the model's short-period mean clamp.
type Frankel96 struct {
	tables map[string]*nshmp.GroundMotionTable
	imts   []nshmp.IMT
}

// NewFrankel96 builds the Frankel96 tables in-process (the model was
// originally distributed as lookup tables rather than closed-form
// coefficients, so there is no coefficient CSV to parse) and returns a
// factory suitable for registration in a nshmp.Registry.
func NewFrankel96() (nshmp.Factory, error) {
	m := &Frankel96{tables: make(map[string]*nshmp.GroundMotionTable)}
	for label, grid := range frankelTables {
		imt, err := labelToIMT(label)
		if err != nil {
			return nil, err
		}
		m.tables[imt.String()] = nshmp.NewGroundMotionTable(nshmp.GmTableLogDistanceScaling, frankelDistances, frankelMagnitudes, grid)
		m.imts = append(m.imts, imt)
	}
	return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
		if _, ok := m.tables[imt.String()]; !ok {
			return nil, fmt.Errorf("stable: Frankel96 does not support %s", imt)
		}
		return &frankel96Instance{base: m}, nil
	}, nil
}

func labelToIMT(label string) (nshmp.IMT, error) {
	for _, imt := range nshmp.AllIMTs {
		if imt.String() == label {
			return imt, nil
		}
	}
	return nshmp.IMT{}, fmt.Errorf("stable: Frankel96 unrecognized IMT label %q", label)
}

type frankel96Instance struct {
	base *Frankel96
}

// Name implements nshmp.GroundMotionModel.
func (f *frankel96Instance) Name() string { return "Frankel et al. (1996)" }

// SupportedIMTs implements nshmp.GroundMotionModel.
func (f *frankel96Instance) SupportedIMTs() []nshmp.IMT { return f.base.imts }

// Constraints implements nshmp.GroundMotionModel.
func (f *frankel96Instance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 4.4, Max: 8.0}
	c.RJB = nshmp.Range{Min: 0, Max: 1000}
	return c
}

// Calc implements nshmp.GroundMotionModel.
func (f *frankel96Instance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	t, ok := f.base.tables[imt.String()]
	if !ok {
		return nshmp.GroundMotion{}
	}
	r := math.Max(in.RJB, 1.0)
	log10g := t.Lookup(r, in.Mw)
	meanLn := nshmp.ToNaturalLogMS2(log10g, imt)
	meanLn += ceusSiteCorrection(in.Vs30)
	meanLn = ceusMeanClamp(imt, meanLn)
	return nshmp.GroundMotion{Scalar: nshmp.ScalarGroundMotion{MeanLn: meanLn, SigmaLn: frankelSigma}}
}
