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

package activecrust

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

//go:embed coeffs/ba08.csv
var ba08CSV []byte

// BA08 implements Boore & Atkinson (2008): a source term with hinge
// magnitude, a geometric-spreading distance term using r=hypot(rJB,h),
// and a linear+nonlinear Vs30 site term referenced to a separately
// computed PGA-on-rock value.
type BA08 struct {
	coeffs *nshmp.CoefficientContainer
}

// NewBA08 loads the BA08 coefficient table once and returns a factory
// suitable for registration in a nshmp.Registry.
func NewBA08() (nshmp.Factory, *nshmp.CoefficientContainer, error) {
	c, err := nshmp.LoadCoefficients(bytes.NewReader(ba08CSV))
	if err != nil {
		return nil, nil, fmt.Errorf("activecrust: loading BA08 coefficients: %w", err)
	}
	model := &BA08{coeffs: c}
	return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
		if !c.Supports(imt) {
			return nil, fmt.Errorf("activecrust: BA08 does not support %s", imt)
		}
		return &ba08Instance{base: model, imt: imt}, nil
	}, c, nil
}

// ba08Instance is the per-IMT instance the registry caches.
type ba08Instance struct {
	base *BA08
	imt  nshmp.IMT
}

// Name implements nshmp.GroundMotionModel.
func (b *ba08Instance) Name() string { return "Boore & Atkinson (2008)" }

// SupportedIMTs implements nshmp.GroundMotionModel.
func (b *ba08Instance) SupportedIMTs() []nshmp.IMT { return b.base.coeffs.IMTs() }

// Constraints implements nshmp.GroundMotionModel.
func (b *ba08Instance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 5.0, Max: 8.0}
	c.RJB = nshmp.Range{Min: 0, Max: 200}
	c.Vs30 = nshmp.Range{Min: 180, Max: 1300}
	return c
}

// Calc implements nshmp.GroundMotionModel. It is a pure function of
// (imt, in): it reads only the shared, immutable coefficient container
// and never mutates in, so repeated calls are bit-identical and the
// instance is safe to share across goroutines.
func (b *ba08Instance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	return nshmp.GroundMotion{Scalar: b.calc(imt, in)}
}

func (b *ba08Instance) calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.ScalarGroundMotion {
	row, ok := b.base.coeffs.Row(imt)
	if !ok {
		return nshmp.ScalarGroundMotion{}
	}
	u, ss, ns, rs := faultStyleTerm(in.Rake)
	fm := row["e0"] + row["eU"]*u + row["eSS"]*ss + row["eNS"]*ns + row["eRS"]*rs +
		magnitudeTerm(in.Mw, row["Mh"], row["c1"], row["c2"], row["c3"])

	r := hypotDistance(in.RJB, row["h"])
	fd := geometricSpreadingTerm(in.Mw, r, row["Mref"], row["Rref"], row["cd1"], row["cd2"], row["cd3"])

	pgaRock := b.pgaOnRock(in)
	fsLin := linearSiteTerm(in.Vs30, row["blin"], row["V2"], row["Vref"])
	fsNl := nonlinearSiteTerm(in.Vs30, pgaRock, row["b1"], row["b2"], row["V1"], row["V2"])

	mean := fm + fd + fsLin + fsNl
	sigma := twoPieceSigma(in.Mw, row["sigma"], 5.0, 5.5, 0.05)
	return nshmp.ScalarGroundMotion{MeanLn: mean, SigmaLn: sigma}
}

// pgaOnRock evaluates PGA at Vs30=760 (reference rock), giving the
// nonlinear site term its required reference-rock amplitude. It sums only
// the source, distance, and linear site terms directly rather than
// calling calc, since at Vref the nonlinear term is defined to be 0 and
// calc itself depends on pgaOnRock for every IMT including PGA.
func (b *ba08Instance) pgaOnRock(in nshmp.GmmInput) float64 {
	row, ok := b.base.coeffs.Row(nshmp.PGA)
	if !ok {
		return 0
	}
	rockIn := in
	rockIn.Vs30 = 760
	rockIn.VsInf = true

	u, ss, ns, rs := faultStyleTerm(rockIn.Rake)
	fm := row["e0"] + row["eU"]*u + row["eSS"]*ss + row["eNS"]*ns + row["eRS"]*rs +
		magnitudeTerm(rockIn.Mw, row["Mh"], row["c1"], row["c2"], row["c3"])

	r := hypotDistance(rockIn.RJB, row["h"])
	fd := geometricSpreadingTerm(rockIn.Mw, r, row["Mref"], row["Rref"], row["cd1"], row["cd2"], row["cd3"])

	fsLin := linearSiteTerm(rockIn.Vs30, row["blin"], row["V2"], row["Vref"])

	return math.Exp(fm + fd + fsLin)
}
