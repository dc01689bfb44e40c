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

//go:embed coeffs/ask14.csv
var ask14CSV []byte

// ASK14 implements Abrahamson, Silva & Kamai (2014), adding a hanging-wall
// term (gated on a positive rX and bounded Mw/zTop) and a basin-depth term
// keyed to z1p0 on top of the family's shared source/distance/site terms.
type ASK14 struct {
	coeffs *nshmp.CoefficientContainer
}

// NewASK14 loads the ASK14 coefficient table once and returns a factory
// suitable for registration in a nshmp.Registry.
func NewASK14() (nshmp.Factory, *nshmp.CoefficientContainer, error) {
	c, err := nshmp.LoadCoefficients(bytes.NewReader(ask14CSV))
	if err != nil {
		return nil, nil, fmt.Errorf("activecrust: loading ASK14 coefficients: %w", err)
	}
	model := &ASK14{coeffs: c}
	return func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
		if !c.Supports(imt) {
			return nil, fmt.Errorf("activecrust: ASK14 does not support %s", imt)
		}
		return &ask14Instance{base: model, imt: imt}, nil
	}, c, nil
}

type ask14Instance struct {
	base *ASK14
	imt  nshmp.IMT
}

// Name implements nshmp.GroundMotionModel.
func (a *ask14Instance) Name() string { return "Abrahamson, Silva & Kamai (2014)" }

// SupportedIMTs implements nshmp.GroundMotionModel.
func (a *ask14Instance) SupportedIMTs() []nshmp.IMT { return a.base.coeffs.IMTs() }

// Constraints implements nshmp.GroundMotionModel.
func (a *ask14Instance) Constraints() nshmp.Constraints {
	c := nshmp.DefaultConstraints()
	c.Mw = nshmp.Range{Min: 3.0, Max: 8.5}
	c.RRup = nshmp.Range{Min: 0, Max: 300}
	c.Vs30 = nshmp.Range{Min: 180, Max: 1500}
	return c
}

// Calc implements nshmp.GroundMotionModel.
func (a *ask14Instance) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	return nshmp.GroundMotion{Scalar: a.calc(imt, in)}
}

func (a *ask14Instance) calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.ScalarGroundMotion {
	row, ok := a.base.coeffs.Row(imt)
	if !ok {
		return nshmp.ScalarGroundMotion{}
	}
	u, ss, ns, rs := faultStyleTerm(in.Rake)
	fm := row["e0"] + row["eU"]*u + row["eSS"]*ss + row["eNS"]*ns + row["eRS"]*rs +
		magnitudeTerm(in.Mw, row["Mh"], row["c1"], row["c2"], row["c3"])

	r := hypotDistance(in.RRup, row["h"])
	fd := geometricSpreadingTerm(in.Mw, r, row["Mref"], row["Rref"], row["cd1"], row["cd2"], row["cd3"])

	pgaRock := a.pgaOnRock(in)
	fsLin := linearSiteTerm(in.Vs30, row["blin"], row["V2"], row["Vref"])
	fsNl := nonlinearSiteTerm(in.Vs30, pgaRock, row["b1"], row["b2"], row["V1"], row["V2"])

	fhw := hangingWallTerm(in, row["hwmax"], row["a2hw"])
	fz1 := basinDepthTerm(in, row["z1ref"])

	mean := fm + fd + fsLin + fsNl + fhw + fz1
	sigma := twoPieceSigma(in.Mw, row["sigma"], 5.0, 7.0, 0.10)
	return nshmp.ScalarGroundMotion{MeanLn: mean, SigmaLn: sigma}
}

// hangingWallTerm adds a term on the hanging-wall side of a fault
// (rX > 0) that grows linearly with rX up to its full a2hw at rX = hwmax
// km and stays there beyond it, and tapers in linearly over Mw 5.5-6.5.
// It is 0 for rX <= 0, zTop > 10 km, or Mw < 5.5; dip is not used.
func hangingWallTerm(in nshmp.GmmInput, hwmax, a2hw float64) float64 {
	if in.RX <= 0 || in.ZTop > 10 || in.Mw < 5.5 {
		return 0
	}
	taper := clamp01(in.RX / hwmax)
	mTaper := clamp01((in.Mw - 5.5) / 1.0)
	return a2hw * taper * mTaper
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// basinDepthTerm applies a small correction when z1p0 departs from the
// Vs30-based default implied by z1ref; z1p0=NaN (the "use default basin
// model" sentinel) yields exactly 0.
func basinDepthTerm(in nshmp.GmmInput, z1ref float64) float64 {
	if math.IsNaN(in.Z1p0) {
		return 0
	}
	defaultZ1 := defaultZ1p0(in.Vs30)
	return z1ref * (math.Log(in.Z1p0+0.01) - math.Log(defaultZ1+0.01))
}

// defaultZ1p0 is the Vs30-based default basin depth (km) substituted for
// a NaN z1p0, following the Chiou & Youngs / ASK14 convention that softer
// sites carry deeper default basins.
func defaultZ1p0(vs30 float64) float64 {
	return math.Exp(-7.15/4*math.Log((math.Pow(vs30, 4)+math.Pow(570.94, 4))/(math.Pow(1360, 4)+math.Pow(570.94, 4)))) / 1000
}

// pgaOnRock evaluates PGA at Vs30=760 (reference rock), giving the
// nonlinear site term its required reference-rock amplitude. It sums only
// the source and distance terms plus the linear site term directly rather
// than calling calc, since at Vref the nonlinear term is defined to be 0
// and calc itself depends on pgaOnRock for every IMT including PGA. The
// hanging-wall and basin-depth terms are left out, matching the
// reference-rock convention of excluding site-specific corrections from
// the nonlinear-scaling anchor.
func (a *ask14Instance) pgaOnRock(in nshmp.GmmInput) float64 {
	row, ok := a.base.coeffs.Row(nshmp.PGA)
	if !ok {
		return 0
	}
	rockIn := in
	rockIn.Vs30 = 760
	rockIn.VsInf = true

	u, ss, ns, rs := faultStyleTerm(rockIn.Rake)
	fm := row["e0"] + row["eU"]*u + row["eSS"]*ss + row["eNS"]*ns + row["eRS"]*rs +
		magnitudeTerm(rockIn.Mw, row["Mh"], row["c1"], row["c2"], row["c3"])

	r := hypotDistance(rockIn.RRup, row["h"])
	fd := geometricSpreadingTerm(rockIn.Mw, r, row["Mref"], row["Rref"], row["cd1"], row["cd2"], row["cd3"])

	fsLin := linearSiteTerm(rockIn.Vs30, row["blin"], row["V2"], row["Vref"])

	return math.Exp(fm + fd + fsLin)
}
