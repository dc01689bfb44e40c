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

// Package activecrust implements the NGA-West active-crustal family of
// ground-motion models: a magnitude term with a hinge and second-
// derivative bend, a geometric-spreading distance term, a style-of-
// faulting term, and a linear+nonlinear Vs30 site response computed
// against a separately evaluated PGA-on-rock reference.
package activecrust

import (
	"math"

	"github.com/usgs/nshmp-haz-sub005"
)

// rowCoeffs pulls every named coefficient for imt out of c in one call.
// It returns nil if c has no row for imt; a name the row doesn't carry
// maps to 0.
func rowCoeffs(c *nshmp.CoefficientContainer, imt nshmp.IMT, names ...string) map[string]float64 {
	row, ok := c.Row(imt)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(names))
	for _, n := range names {
		out[n] = row[n]
	}
	return out
}

// faultStyleTerm returns the (U, SS, NS, RS) one-hot indicator for rake,
// where U (the "unspecified" mechanism term) is 1 only for UNKNOWN and SS,
// NS and RS are the strike-slip, normal and reverse (including
// reverse-oblique) indicators.
func faultStyleTerm(rakeDeg float64) (u, ss, ns, rs float64) {
	switch nshmp.FaultStyleFromRake(rakeDeg) {
	case nshmp.Normal:
		return 0, 0, 1, 0
	case nshmp.Reverse, nshmp.ReverseOblique:
		return 0, 0, 0, 1
	case nshmp.StrikeSlip:
		return 0, 1, 0, 0
	default:
		return 1, 0, 0, 0
	}
}

// hypotDistance returns sqrt(rJB^2 + h^2), the effective distance used by
// the geometric-spreading term.
func hypotDistance(rJB, h float64) float64 { return math.Hypot(rJB, h) }

// magnitudeTerm implements the hinge-magnitude, second-derivative-bend
// source term shared by this family: below Mh it is quadratic in
// (M-Mh), above Mh it continues linearly.
func magnitudeTerm(m, mh, c1, c2, c3 float64) float64 {
	if m <= mh {
		return c1*(m-mh) + c2*(m-mh)*(m-mh)
	}
	return c3 * (m - mh)
}

// geometricSpreadingTerm implements the magnitude-dependent log(r)
// attenuation term shared by this family.
func geometricSpreadingTerm(m, r, mref, rref, cd1, cd2, cd3 float64) float64 {
	return (cd1+cd2*(m-mref))*math.Log(r/rref) + cd3*(r-rref)
}

// linearSiteTerm is the Vs30-scaled linear site term, capped at V2 the
// way BSSA14/CY14/ASK14 cap the log(Vs30/Vref) ratio for very stiff soil.
func linearSiteTerm(vs30, blin, v2, vref float64) float64 {
	v := vs30
	if v > v2 {
		v = v2
	}
	return blin * math.Log(v/vref)
}

// nonlinearSiteTerm is a simplified Boore-Atkinson-style nonlinear term
// parameterized by the reference-rock PGA pgaRock (linear units of g, not
// natural log) and the site's Vs30.
func nonlinearSiteTerm(vs30, pgaRock, b1, b2, v1, v2 float64) float64 {
	v := vs30
	if v > v2 {
		return 0
	}
	if v < v1 {
		v = v1
	}
	bnl := b1 + (b2-b1)*math.Log(v/v1)/math.Log(v2/v1)
	const a2 = 0.06
	const pgaLow = 0.06
	if pgaRock <= a2 {
		return bnl * math.Log(pgaLow/0.1)
	}
	return bnl * math.Log((pgaRock+pgaLow)/0.1)
}

// twoPieceSigma returns the magnitude-dependent total standard deviation
// used across this family: sigma is sigmaBase+lowAdd at or below m1,
// sigmaBase at or above m2, and interpolates linearly between m1 and m2,
// the two-piece standard-deviation model common to NGA-West2 models.
// sigmaBase already includes any Vs30/vsInf widening the caller has
// applied.
func twoPieceSigma(m, sigmaBase, m1, m2, lowAdd float64) float64 {
	if m <= m1 {
		return sigmaBase + lowAdd
	}
	if m >= m2 {
		return sigmaBase
	}
	frac := (m2 - m) / (m2 - m1)
	return sigmaBase + lowAdd*frac
}
