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

package subduction

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

//go:embed coeffs/bchydro12.csv
var bchydro12CSV []byte

// deltaC1Interface and deltaC1Slab are the hinge magnitudes of the
// bilinear magnitude term, one per source type: theta15 scales (M - hinge)
// at or below the hinge and theta16 above it.
const (
	deltaC1Interface = 7.8
	deltaC1Slab      = 7.2
)

// bchydroRockConst is the constant c in the nonlinear site term's
// ln((pgaRock + c)/c) factor below Vlin.
const bchydroRockConst = 1.88

// BCHydro12 implements the BC Hydro (2012) subduction model. Interface
// and slab share coefficients but diverge on the magnitude hinge
// (deltaC1), the depth term, and the Vlin-referenced nonlinear site
// term's PGA-on-rock input.
type BCHydro12 struct {
	coeffs *nshmp.CoefficientContainer
}

// NewBCHydro12 loads the BC Hydro coefficient table once and returns one
// factory per flavor.
func NewBCHydro12() (interfaceFactory, slabFactory nshmp.Factory, coeffs *nshmp.CoefficientContainer, err error) {
	c, err := nshmp.LoadCoefficients(bytes.NewReader(bchydro12CSV))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("subduction: loading BCHydro12 coefficients: %w", err)
	}
	model := &BCHydro12{coeffs: c}
	factory := func(flavor Zhao06Flavor) nshmp.Factory {
		return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
			if !c.Supports(imt) {
				return nil, fmt.Errorf("subduction: BCHydro12 does not support %s", imt)
			}
			return &bchydro12Instance{base: model, flavor: flavor}, nil
		}
	}
	return factory(Zhao06Interface), factory(Zhao06Slab), c, nil
}

type bchydro12Instance struct {
	base   *BCHydro12
	flavor Zhao06Flavor
}

// Name implements nshmp.GroundMotionModel.
func (m *bchydro12Instance) Name() string {
	if m.flavor == Zhao06Interface {
		return "BC Hydro (2012) Interface"
	}
	return "BC Hydro (2012) Slab"
}

// SupportedIMTs implements nshmp.GroundMotionModel.
func (m *bchydro12Instance) SupportedIMTs() []nshmp.IMT { return m.base.coeffs.IMTs() }

// Constraints implements nshmp.GroundMotionModel.
func (m *bchydro12Instance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 4.5, Max: 9.5}
	c.RRup = nshmp.Range{Min: 0, Max: 400}
	return c
}

// Calc implements nshmp.GroundMotionModel.
func (m *bchydro12Instance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	return nshmp.GroundMotion{Scalar: m.calc(imt, in)}
}

func (m *bchydro12Instance) calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.ScalarGroundMotion {
	row, ok := m.base.coeffs.Row(imt)
	if !ok {
		return nshmp.ScalarGroundMotion{}
	}
	isSlab := m.flavor == Zhao06Slab
	pgaRock := m.pgaOnRock(in, isSlab)
	mean := m.meanLnRock(row, in, isSlab) + nonlinearSiteTerm(in.Vs30, pgaRock, row["Vlin"], row["b"], row["theta13"])
	return nshmp.ScalarGroundMotion{MeanLn: mean, SigmaLn: row["sigma"]}
}

// meanLnRock computes the mean without any site term, shared by the final
// calc and the PGA-on-rock evaluation. The theta11*zTop depth term applies
// to both flavors; slab events add a constant theta10 term on top of it.
func (m *bchydro12Instance) meanLnRock(row map[string]float64, in nshmp.GmmInput, isSlab bool) float64 {
	c1 := deltaC1Interface
	if isSlab {
		c1 = deltaC1Slab
	}
	var fMag float64
	if mag := in.Mw; mag <= c1 {
		fMag = row["theta1"] + row["theta15"]*(mag-c1)
	} else {
		fMag = row["theta1"] + row["theta16"]*(mag-c1)
	}

	r := math.Max(in.RRup, 1.0)
	fPath := (row["theta2"] + row["theta14"]*boolToFloat(isSlab)) * math.Log(r+row["theta7"]*math.Exp(row["theta8"]*in.Mw)) + row["theta6"]*r

	fDepth := row["theta11"] * in.ZTop
	if isSlab {
		fDepth += row["theta10"]
	}

	return fMag + fPath + fDepth
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// nonlinearSiteTerm applies BCHydro12's period-dependent Vlin soil
// nonlinearity: linear amplification at or above Vlin, saturating
// nonlinear amplification below it referenced to the rock-site PGA.
func nonlinearSiteTerm(vs30, pgaRock, vlin, b, coef float64) float64 {
	if vs30 >= vlin {
		return coef * math.Log(vs30/vlin)
	}
	return coef*math.Log(vs30/vlin) + b*math.Log((pgaRock+bchydroRockConst)/bchydroRockConst)
}

// pgaOnRock evaluates the reference-rock PGA as exp of meanLnRock on the
// PGA coefficient row; it does not re-enter calc and applies no site term.
func (m *bchydro12Instance) pgaOnRock(in nshmp.GmmInput, isSlab bool) float64 {
	row, ok := m.base.coeffs.Row(nshmp.PGA)
	if !ok {
		return 0
	}
	return math.Exp(m.meanLnRock(row, in, isSlab))
}
