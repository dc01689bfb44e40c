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

// Package regional implements ground-motion models specific to a single
// volcanic/tectonic region outside the general WUS/CEUS/subduction
// families: the 2014 Hawaii model.
package regional

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

//go:embed coeffs/hawaii14.csv
var hawaii14CSV []byte

// Hawaii14 implements the 2014 Hawaii active-volcanic-region model: a
// single-scalar closed-form equation in the same magnitude/distance/site
// shape as the active-crustal family, but with regionally fit
// coefficients and no style-of-faulting term.
type Hawaii14 struct {
	coeffs *nshmp.CoefficientContainer
}

// NewHawaii14 loads the Hawaii14 coefficient table once and returns a
// factory suitable for registration in a nshmp.Registry.
func NewHawaii14() (nshmp.Factory, *nshmp.CoefficientContainer, error) {
	c, err := nshmp.LoadCoefficients(bytes.NewReader(hawaii14CSV))
	if err != nil {
		return nil, nil, fmt.Errorf("regional: loading Hawaii14 coefficients: %w", err)
	}
	model := &Hawaii14{coeffs: c}
	return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
		if !c.Supports(imt) {
			return nil, fmt.Errorf("regional: Hawaii14 does not support %s", imt)
		}
		return &hawaii14Instance{base: model}, nil
	}, c, nil
}

type hawaii14Instance struct {
	base *Hawaii14
}

// Name implements nshmp.GroundMotionModel.
func (h *hawaii14Instance) Name() string { return "Hawaii (2014)" }

// SupportedIMTs implements nshmp.GroundMotionModel.
func (h *hawaii14Instance) SupportedIMTs() []nshmp.IMT { return h.base.coeffs.IMTs() }

// Constraints implements nshmp.GroundMotionModel.
func (h *hawaii14Instance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 4.0, Max: 7.5}
	c.RRup = nshmp.Range{Min: 0, Max: 200}
	return c
}

// Calc implements nshmp.GroundMotionModel.
func (h *hawaii14Instance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	row, ok := h.base.coeffs.Row(imt)
	if !ok {
		return nshmp.GroundMotion{}
	}
	r := math.Sqrt(in.RRup*in.RRup + row["c4"]*row["c4"])
	mean := row["c0"] + row["c1"]*(in.Mw-6.0) + row["c2"]*(in.Mw-6.0)*(in.Mw-6.0) +
		row["c3"]*math.Log(r) + row["c5"]*math.Log(in.Vs30/760)
	return nshmp.GroundMotion{Scalar: nshmp.ScalarGroundMotion{MeanLn: mean, SigmaLn: row["sigma"]}}
}
