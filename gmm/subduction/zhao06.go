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

// Package subduction implements interface and intraslab subduction
// ground-motion models. Both Zhao06 and BCHydro12 share the pattern of a
// single base implementation selected between flavors by a boolean/tag
// field rather than by subclassing.
package subduction

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

//go:embed coeffs/zhao06.csv
var zhao06CSV []byte

// Zhao06Flavor selects the interface or intraslab branch of Zhao06.
type Zhao06Flavor int

// Recognized flavors.
const (
	Zhao06Interface Zhao06Flavor = iota
	Zhao06Slab
)

// Zhao06 implements Zhao et al. (2006). Interface events fix the source
// depth at 20 km regardless of the rupture's own zTop; slab events clamp
// zTop to 100 km and impose an 8.0 saturation magnitude. rRup is always
// clamped to a 1 km floor.
type Zhao06 struct {
	coeffs *nshmp.CoefficientContainer
}

// NewZhao06 loads the Zhao06 coefficient table once and returns one
// factory per flavor.
func NewZhao06() (interfaceFactory, slabFactory nshmp.Factory, coeffs *nshmp.CoefficientContainer, err error) {
	c, err := nshmp.LoadCoefficients(bytes.NewReader(zhao06CSV))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("subduction: loading Zhao06 coefficients: %w", err)
	}
	model := &Zhao06{coeffs: c}
	factory := func(flavor Zhao06Flavor) nshmp.Factory {
		return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
			if !c.Supports(imt) {
				return nil, fmt.Errorf("subduction: Zhao06 does not support %s", imt)
			}
			return &zhao06Instance{base: model, flavor: flavor}, nil
		}
	}
	return factory(Zhao06Interface), factory(Zhao06Slab), c, nil
}

type zhao06Instance struct {
	base   *Zhao06
	flavor Zhao06Flavor
}

// Name implements nshmp.GroundMotionModel.
func (z *zhao06Instance) Name() string {
	if z.flavor == Zhao06Interface {
		return "Zhao et al. (2006) Interface"
	}
	return "Zhao et al. (2006) Slab"
}

// SupportedIMTs implements nshmp.GroundMotionModel.
func (z *zhao06Instance) SupportedIMTs() []nshmp.IMT { return z.base.coeffs.IMTs() }

// Constraints implements nshmp.GroundMotionModel.
func (z *zhao06Instance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 5.0, Max: 9.5}
	c.RRup = nshmp.Range{Min: 0, Max: 300}
	return c
}

// Calc implements nshmp.GroundMotionModel.
func (z *zhao06Instance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	row, ok := z.base.coeffs.Row(imt)
	if !ok {
		return nshmp.GroundMotion{}
	}

	r := math.Max(in.RRup, 1.0)
	m := in.Mw

	var zTop float64
	var a, b, e float64
	if z.flavor == Zhao06Interface {
		zTop = 20
		a, b, e = row["aI"], row["bI"], row["eI"]
	} else {
		zTop = math.Min(in.ZTop, 100)
		a, b, e = row["aS"], row["bS"], row["eS"]
		if m > 8.0 {
			m = 8.0
		}
	}

	site := siteTerm(in.Vs30, row["Sr"], row["Sh"])

	mean := a*m + b*r - math.Log(r) + row["c"]*zTop + row["d"]*0 + e + site
	return nshmp.GroundMotion{Scalar: nshmp.ScalarGroundMotion{MeanLn: mean, SigmaLn: row["sigma"]}}
}

// siteTerm buckets Vs30 into Zhao06's discrete site classes: rock
// (Vs30>=600) gets no adjustment, hard soil (300<=Vs30<600) gets Sh, and
// soft soil (Vs30<300) gets Sr.
func siteTerm(vs30, sr, sh float64) float64 {
	switch {
	case vs30 >= 600:
		return 0
	case vs30 >= 300:
		return sh
	default:
		return sr
	}
}
