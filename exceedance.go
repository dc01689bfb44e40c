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

package nshmp

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// standardNormal is the shared Φ(z) = P(Z <= z) evaluator for z ~ N(0,1).
var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}

// phi is the standard normal CDF.
func phi(z float64) float64 { return standardNormal.CDF(z) }

// ExceedanceModel converts a (mean, sigma) ground motion and a
// ground-motion level x (natural-log units) into a probability that the
// true ground motion exceeds x.
type ExceedanceModel interface {
	// Exceed returns P(X > x | mean, sigma).
	Exceed(x, mean, sigma float64) float64
}

// Lognormal is the untruncated lognormal exceedance model:
// P(X > x) = 1 - Φ((x-μ)/σ).
type Lognormal struct{}

// Exceed implements ExceedanceModel.
func (Lognormal) Exceed(x, mean, sigma float64) float64 {
	return 1 - phi((x-mean)/sigma)
}

// TruncatedLognormal truncates the lognormal distribution at
// TruncationLevel standard deviations and renormalizes, the NSHMP
// default (3σ).
type TruncatedLognormal struct {
	TruncationLevel float64
}

// Exceed implements ExceedanceModel.
func (t TruncatedLognormal) Exceed(x, mean, sigma float64) float64 {
	z := (x - mean) / sigma
	n := t.TruncationLevel
	if z > n {
		return 0
	}
	denom := 1 - phi(-n)
	return (1 - phi(z)) / denom
}

// CeusMaxIntensity wraps another model with a per-IMT maximum-intensity
// clamp on the ground-motion level queried, used by some CEUS
// combinations: any x above MaxLn is evaluated as MaxLn instead.
type CeusMaxIntensity struct {
	Inner ExceedanceModel
	MaxLn float64
}

// Exceed implements ExceedanceModel.
func (c CeusMaxIntensity) Exceed(x, mean, sigma float64) float64 {
	if x > c.MaxLn {
		x = c.MaxLn
	}
	return c.Inner.Exceed(x, mean, sigma)
}

// ExceedProbability applies em to a GroundMotion (scalar or multi-scalar)
// at ground-motion level x. For a MultiScalarGroundMotion it computes the
// weighted sum of per-branch exceedance probabilities over every
// (mean, sigma) combination the logic tree carries.
func ExceedProbability(em ExceedanceModel, x float64, gm GroundMotion) float64 {
	if !gm.IsMulti() {
		return em.Exceed(x, gm.Scalar.MeanLn, gm.Scalar.SigmaLn)
	}
	m := gm.Multi
	var total float64
	for i, mu := range m.Means {
		if len(m.Sigmas) == len(m.Means) && len(m.SigmaWeights) == 0 {
			total += m.MeanWeights[i] * em.Exceed(x, mu, m.Sigmas[i])
			continue
		}
		for j, sigma := range m.Sigmas {
			sw := 1.0
			if len(m.SigmaWeights) == len(m.Sigmas) {
				sw = m.SigmaWeights[j]
			}
			total += m.MeanWeights[i] * sw * em.Exceed(x, mu, sigma)
		}
	}
	return total
}

// PoissonProbability converts an annual rate of exceedance to a
// probability of exceedance over duration years T (1 year unless the
// configuration specifies otherwise): P = 1 - exp(-rate*T).
func PoissonProbability(rate, years float64) float64 {
	return 1 - math.Exp(-rate*years)
}
