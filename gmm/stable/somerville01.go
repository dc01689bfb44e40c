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

package stable

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

//go:embed coeffs/somerville01.csv
var somerville01CSV []byte

// MbConversion selects which mb-to-Mw relation, if any, is applied to
// the input magnitude before evaluating Somerville01's closed-form
// coefficients, which were derived in terms of Mw.
type MbConversion int

const (
	// NoConversion uses the input Mw unconverted.
	NoConversion MbConversion = iota
	// JohnstonConversion applies Johnston (1996): Mw = 1.14 + 0.24*mb + 0.0933*mb^2.
	JohnstonConversion
	// AtkinsonBooreConversion applies Atkinson & Boore (1995):
	// Mw = 2.715 - 0.277*mb + 0.127*mb^2.
	AtkinsonBooreConversion
)

func (c MbConversion) convert(m float64) float64 {
	switch c {
	case JohnstonConversion:
		return 1.14 + 0.24*m + 0.0933*m*m
	case AtkinsonBooreConversion:
		return 2.715 - 0.277*m + 0.127*m*m
	default:
		return m
	}
}

func (c MbConversion) suffix() string {
	switch c {
	case JohnstonConversion:
		return "mb (Johnston)"
	case AtkinsonBooreConversion:
		return "mb (Atkinson-Boore)"
	default:
		return "Mw"
	}
}

// Somerville01 implements a Somerville et al. (2001)-style closed-form
// CEUS model: a magnitude term linear in (M-6.4) plus a geometric-spreading
// (c6*ln r) and anelastic (c7*r) distance term over r = sqrt(rJB^2 + c4^2).
// The magnitude term has no hinge and the spreading coefficient does not
// vary with magnitude.
type Somerville01 struct {
	coeffs *nshmp.CoefficientContainer
}

// NewSomerville01 loads the Somerville01 coefficient table and returns a
// factory for the mb-conversion flavor conv; each call loads its own copy
// of the table.
func NewSomerville01(conv MbConversion) (nshmp.Factory, *nshmp.CoefficientContainer, error) {
	c, err := nshmp.LoadCoefficients(bytes.NewReader(somerville01CSV))
	if err != nil {
		return nil, nil, fmt.Errorf("stable: loading Somerville01 coefficients: %w", err)
	}
	model := &Somerville01{coeffs: c}
	return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
		if !c.Supports(imt) {
			return nil, fmt.Errorf("stable: Somerville01 does not support %s", imt)
		}
		return &somerville01Instance{base: model, conv: conv}, nil
	}, c, nil
}

type somerville01Instance struct {
	base *Somerville01
	conv MbConversion
}

// Name implements nshmp.GroundMotionModel.
func (s *somerville01Instance) Name() string {
	return fmt.Sprintf("Somerville et al. (2001), %s input", s.conv.suffix())
}

// SupportedIMTs implements nshmp.GroundMotionModel.
func (s *somerville01Instance) SupportedIMTs() []nshmp.IMT { return s.base.coeffs.IMTs() }

// Constraints implements nshmp.GroundMotionModel.
func (s *somerville01Instance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 5.0, Max: 7.5}
	c.RJB = nshmp.Range{Min: 0, Max: 1000}
	return c
}

// Calc implements nshmp.GroundMotionModel.
func (s *somerville01Instance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	row, ok := s.base.coeffs.Row(imt)
	if !ok {
		return nshmp.GroundMotion{}
	}
	m := s.conv.convert(in.Mw)
	r := math.Sqrt(in.RJB*in.RJB + row["c4"]*row["c4"])

	mean := row["c1"] + row["c2"]*(m-6.4) + row["c6"]*math.Log(r) + row["c7"]*r + row["c10"]
	mean += ceusSiteCorrection(in.Vs30)
	mean = ceusMeanClamp(imt, mean)
	return nshmp.GroundMotion{Scalar: nshmp.ScalarGroundMotion{MeanLn: mean, SigmaLn: row["sigma"]}}
}
