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

// Package table implements CEUS ground-motion models distributed purely
// as lookup tables rather than closed-form equations: Atkinson & Boore
// (2006, 2011 update, "prime") and the composite, multi-scalar NGA-East
// USGS model.
package table

import (
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

// ab06Distances and ab06Magnitudes are AB06'''s tabulated grid axes.
var (
	ab06Distances  = []float64{1.8, 10, 30, 70, 150, 400, 1000}
	ab06Magnitudes = []float64{4.0, 5.0, 6.0, 7.0, 8.0}
)

// ab06Tables holds the log10(g) hard-rock amplitude grids, keyed by IMT
// label.
var ab06Tables = map[string][][]float64{
	"PGA": {
		{-0.30, 0.05, 0.45, 0.78, 1.02},
		{-0.85, -0.45, -0.05, 0.28, 0.53},
		{-1.55, -1.10, -0.68, -0.33, -0.08},
		{-2.20, -1.70, -1.25, -0.88, -0.60},
		{-2.95, -2.38, -1.88, -1.47, -1.15},
		{-3.85, -3.18, -2.60, -2.12, -1.75},
		{-4.55, -3.80, -3.15, -2.62, -2.20},
	},
	"SA0P2": {
		{0.10, 0.50, 0.90, 1.22, 1.45},
		{-0.45, 0.00, 0.40, 0.72, 0.95},
		{-1.15, -0.65, -0.22, 0.13, 0.38},
		{-1.82, -1.28, -0.82, -0.45, -0.18},
		{-2.58, -1.98, -1.48, -1.05, -0.75},
		{-3.50, -2.82, -2.22, -1.73, -1.38},
		{-4.22, -3.46, -2.80, -2.25, -1.85},
	},
	"SA1P0": {
		{-1.10, -0.65, -0.22, 0.12, 0.38},
		{-1.65, -1.15, -0.70, -0.35, -0.08},
		{-2.30, -1.75, -1.25, -0.85, -0.55},
		{-2.95, -2.35, -1.82, -1.38, -1.05},
		{-3.68, -3.02, -2.45, -1.95, -1.58},
		{-4.55, -3.80, -3.15, -2.58, -2.15},
		{-5.25, -4.42, -3.70, -3.08, -2.60},
	},
}

// ab06BcFactor converts AB06's native (very hard rock, ~2000 m/s) site
// condition to the B/C boundary (760 m/s), applied as a multiplicative
// log10 amplitude correction.
var ab06BcFactor = map[string]float64{
	"PGA":   0.18,
	"SA0P2": 0.24,
	"SA1P0": 0.12,
}

// AB06Prime implements Atkinson & Boore (2006) with the 2011 ("prime")
// small-distance correction: a distance floor at 1.8 km, log-distance
// table interpolation, and a soft-rock BC-factor site correction.
type AB06Prime struct {
	tables map[string]*nshmp.GroundMotionTable
	imts   []nshmp.IMT
}

// NewAB06Prime builds the AB06' tables in-process and returns a factory
// suitable for registration in a nshmp.Registry.
func NewAB06Prime() (nshmp.Factory, error) {
	m := &AB06Prime{tables: make(map[string]*nshmp.GroundMotionTable)}
	for label, grid := range ab06Tables {
		imt, err := labelToIMT(label)
		if err != nil {
			return nil, err
		}
		m.tables[imt.String()] = nshmp.NewGroundMotionTable(nshmp.GmTableLogDistanceScaling, ab06Distances, ab06Magnitudes, grid)
		m.imts = append(m.imts, imt)
	}
	return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
		if _, ok := m.tables[imt.String()]; !ok {
			return nil, fmt.Errorf("table: AB06Prime does not support %s", imt)
		}
		return &ab06PrimeInstance{base: m}, nil
	}, nil
}

func labelToIMT(label string) (nshmp.IMT, error) {
	for _, imt := range nshmp.AllIMTs {
		if imt.String() == label {
			return imt, nil
		}
	}
	return nshmp.IMT{}, fmt.Errorf("table: unrecognized IMT label %q", label)
}

type ab06PrimeInstance struct {
	base *AB06Prime
}

// Name implements nshmp.GroundMotionModel.
func (a *ab06PrimeInstance) Name() string { return "Atkinson & Boore (2006) Prime" }

// SupportedIMTs implements nshmp.GroundMotionModel.
func (a *ab06PrimeInstance) SupportedIMTs() []nshmp.IMT { return a.base.imts }

// Constraints implements nshmp.GroundMotionModel.
func (a *ab06PrimeInstance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 4.0, Max: 8.0}
	c.RRup = nshmp.Range{Min: 0, Max: 1000}
	return c
}

// Calc implements nshmp.GroundMotionModel.
func (a *ab06PrimeInstance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	t, ok := a.base.tables[imt.String()]
	if !ok {
		return nshmp.GroundMotion{}
	}
	r := math.Max(in.RRup, 1.8)
	log10g := t.Lookup(r, in.Mw)
	log10g += smallDistanceCorrection(imt, r)
	log10g += ab06BcFactor[imt.String()]
	meanLn := nshmp.ToNaturalLogMS2(log10g, imt)
	return nshmp.GroundMotion{Scalar: nshmp.ScalarGroundMotion{MeanLn: meanLn, SigmaLn: 0.65}}
}

// smallDistanceCorrection is AB06's short-period decay correction for SA
// periods of 0.05 s or less and ruptures closer than 10 km, where the
// table otherwise over-predicts motion in its lowest distance bin.
func smallDistanceCorrection(imt nshmp.IMT, r float64) float64 {
	if !imt.IsSA() || imt.Period() > 0.05 || r >= 10 {
		return 0
	}
	return -0.05 * (10 - r) / 10
}
