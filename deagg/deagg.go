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

// Package deagg implements hazard curve deaggregation: inversion of a
// curve at a target return period, binning rupture contributions by
// magnitude, distance, and epsilon, and rate-weighted summary statistics
// of the resulting histogram.
package deagg

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/usgs/nshmp-haz-sub005"
)

// BinConfig describes the magnitude/distance/epsilon bins a deaggregation
// is computed over, taken from the calculation configuration.
type BinConfig struct {
	Mmin, Mmax, DeltaM float64
	Rmax, DeltaR       float64
	LogDistanceBins    bool
	EpsMin, EpsMax, DeltaEps float64
}

// Result is the full deaggregation output: the rate-weighted histogram
// plus its rate-weighted mean and modal summary statistics.
type Result struct {
	Site       nshmp.Site
	IMT        nshmp.IMT
	ReturnYrs  float64
	TargetLnX  float64
	Bins       [][][]float64 // [iM][iR][iEps] annual rate contribution
	MBins      []float64     // bin centers
	RBins      []float64
	EpsBins    []float64
	MeanM      float64
	MeanR      float64
	MeanEps    float64
	ModalM     float64
	ModalR     float64
	ModalEps   float64
	StdDevM    float64
	StdDevR    float64
	StdDevEps  float64
}

// smallestPositiveRate substitutes for a zero rate when taking logs, so a
// curve with a fully-saturated tail (rate == 0 at the highest levels)
// still inverts instead of producing -Inf.
const smallestPositiveRate = 1e-300

// InvertCurve finds the ground-motion level (natural log) at which curve's
// annual rate of exceedance equals 1/returnYears. Hazard curves are
// monotonically decreasing in level, so the inversion walks levels from
// lowest to highest looking for the bracket containing the target rate and
// interpolates between the bracket's endpoints in log-log space; if the
// target rate falls below every tabulated rate (a return period longer
// than the curve covers), it extrapolates the trend of the last two
// points instead of clamping.
func InvertCurve(curve *nshmp.HazardCurve, returnYears float64) (float64, error) {
	if returnYears <= 0 {
		return 0, fmt.Errorf("deagg: return period must be positive, got %g", returnYears)
	}
	targetRate := 1 / returnYears

	n := len(curve.Rates)
	if n < 2 {
		return 0, fmt.Errorf("deagg: curve must have at least two points to invert")
	}

	lnTarget := math.Log(targetRate)
	lnRate := func(i int) float64 {
		r := curve.Rates[i]
		if r <= 0 {
			r = smallestPositiveRate
		}
		return math.Log(r)
	}

	for i := 0; i < n-1; i++ {
		y0, y1 := lnRate(i), lnRate(i+1)
		if (y0-lnTarget)*(y1-lnTarget) <= 0 && y0 != y1 {
			return interpLogLog(lnTarget, y0, curve.LnLevels[i], y1, curve.LnLevels[i+1]), nil
		}
	}

	// Target rate is rarer than anything tabulated: extrapolate the trend
	// of the last two points in log-log space.
	y0, y1 := lnRate(n-2), lnRate(n-1)
	return interpLogLog(lnTarget, y0, curve.LnLevels[n-2], y1, curve.LnLevels[n-1]), nil
}

// interpLogLog linearly interpolates (or extrapolates) x as a function of
// y, given two (y, x) reference points already in log space.
func interpLogLog(yq, y0, x0, y1, x1 float64) float64 {
	if y0 == y1 {
		return x0
	}
	return x0 + (yq-y0)*(x1-x0)/(y1-y0)
}

// Run performs the full deaggregation described in spec section 4.7: it
// inverts totalCurve for the target return period, then re-iterates every
// rupture contributing to site/imt, binning rate*Pexceed(x*) contributions
// by (M, R, epsilon).
func Run(cfg BinConfig, model []nshmp.Source, site nshmp.Site, imt nshmp.IMT, totalCurve *nshmp.HazardCurve, registry *nshmp.Registry, gmmIDs []nshmp.Identifier, em nshmp.ExceedanceModel, returnYears float64) (*Result, error) {
	xStar, err := InvertCurve(totalCurve, returnYears)
	if err != nil {
		return nil, err
	}

	mBins := buildLinearBins(cfg.Mmin, cfg.Mmax, cfg.DeltaM)
	rBins := buildDistanceBins(cfg)
	epsBins := buildLinearBins(cfg.EpsMin, cfg.EpsMax, cfg.DeltaEps)

	bins := make([][][]float64, len(mBins))
	for i := range bins {
		bins[i] = make([][]float64, len(rBins))
		for j := range bins[i] {
			bins[i][j] = make([]float64, len(epsBins))
		}
	}

	var allM, allR, allEps, allWeight []float64

	for _, src := range model {
		for _, ru := range src.Ruptures {
			in := ru.ToGmmInput(site)
			for _, id := range gmmIDs {
				gmm, err := registry.Instance(id, imt)
				if err != nil {
					return nil, fmt.Errorf("deagg: instantiating %s for %s: %w", id, imt, err)
				}
				gm := gmm.Calc(imt, in)
				if gm.IsMulti() {
					for k, mu := range gm.Multi.Means {
						sigma := pickSigma(gm.Multi, k)
						contribute(&bins, mBins, rBins, epsBins, cfg, ru, in, xStar, mu, sigma, gm.Multi.MeanWeights[k], em, &allM, &allR, &allEps, &allWeight)
					}
					continue
				}
				contribute(&bins, mBins, rBins, epsBins, cfg, ru, in, xStar, gm.Scalar.MeanLn, gm.Scalar.SigmaLn, 1.0, em, &allM, &allR, &allEps, &allWeight)
			}
		}
	}

	meanM, modalM := weightedSummary(allM, allWeight)
	meanR, modalR := weightedSummary(allR, allWeight)
	meanEps, modalEps := weightedSummary(allEps, allWeight)

	return &Result{
		Site: site, IMT: imt, ReturnYrs: returnYears, TargetLnX: xStar,
		Bins: bins, MBins: mBins, RBins: rBins, EpsBins: epsBins,
		MeanM: meanM, MeanR: meanR, MeanEps: meanEps,
		ModalM: modalM, ModalR: modalR, ModalEps: modalEps,
		StdDevM: spreadStats(allM), StdDevR: spreadStats(allR), StdDevEps: spreadStats(allEps),
	}, nil
}

func pickSigma(m *nshmp.MultiScalarGroundMotion, branchIdx int) float64 {
	if len(m.Sigmas) == len(m.Means) {
		return m.Sigmas[branchIdx]
	}
	if len(m.Sigmas) > 0 {
		return m.Sigmas[0]
	}
	return 0
}

// contribute computes one (mean, sigma) branch's rate contribution at
// xStar and adds it into the bin indexed by (rupture Mw, rupture distance,
// epsilon), clamping epsilon to the closest edge bin when it falls
// outside [EpsMin, EpsMax].
func contribute(bins *[][][]float64, mBins, rBins, epsBins []float64, cfg BinConfig, ru nshmp.Rupture, in nshmp.GmmInput, xStar, mean, sigma, weight float64, em nshmp.ExceedanceModel, allM, allR, allEps, allWeight *[]float64) {
	if sigma <= 0 {
		return
	}
	eps := (xStar - mean) / sigma
	rate := ru.RateYr * weight * em.Exceed(xStar, mean, sigma)
	if rate <= 0 {
		return
	}

	iM := clampIndex(mBins, ru.Mw, cfg.DeltaM)
	iR := clampIndex(rBins, in.RRup, cfg.DeltaR)
	iEps := clampIndex(epsBins, eps, cfg.DeltaEps)

	(*bins)[iM][iR][iEps] += rate
	*allM = append(*allM, ru.Mw)
	*allR = append(*allR, in.RRup)
	*allEps = append(*allEps, eps)
	*allWeight = append(*allWeight, rate)
}

// buildLinearBins returns delta-spaced bin centers starting at min+delta/2
// and not exceeding max, read as the x values of an EvenlySpacedSequence.
func buildLinearBins(min, max, delta float64) []float64 {
	if delta <= 0 {
		delta = 1
	}
	start := min + delta/2
	n := 0
	for x := start; x <= max; x += delta {
		n++
	}
	if n < 1 {
		n = 1
	}
	seq, err := nshmp.NewEvenlySpacedSequence(start, delta, n, delta/2)
	if err != nil {
		return []float64{(min + max) / 2}
	}
	bins := make([]float64, seq.Len())
	for i := range bins {
		bins[i] = seq.X(i)
	}
	return bins
}

func buildDistanceBins(cfg BinConfig) []float64 {
	if !cfg.LogDistanceBins {
		return buildLinearBins(0, cfg.Rmax, cfg.DeltaR)
	}
	min, max := math.Log10(math.Max(cfg.DeltaR, 0.1)), math.Log10(cfg.Rmax)
	n := int((max-min)/cfg.DeltaR) + 1
	bins := make([]float64, 0, n)
	for v := min; v <= max; v += cfg.DeltaR {
		bins = append(bins, math.Pow(10, v))
	}
	if len(bins) == 0 {
		bins = []float64{cfg.Rmax / 2}
	}
	return bins
}

// clampIndex returns the index of the bin center closest to x, clamped to
// the valid range, implementing the "contributions outside range go to
// the closest edge bin" rule.
func clampIndex(centers []float64, x, delta float64) int {
	if delta <= 0 {
		delta = 1
	}
	i := int(math.Round((x - centers[0]) / delta))
	if i < 0 {
		return 0
	}
	if i >= len(centers) {
		return len(centers) - 1
	}
	return i
}

// weightedSummary returns the rate-weighted mean and the modal value (the
// value carrying the largest single rate contribution) of values. The
// weighting is rate, not sample count, so this is plain arithmetic rather
// than something a general-purpose statistics package computes.
func weightedSummary(values, weights []float64) (mean, mode float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sumW, sumWV float64
	bestIdx := 0
	for i, v := range values {
		w := weights[i]
		sumW += w
		sumWV += w * v
		if w > weights[bestIdx] {
			bestIdx = i
		}
	}
	if sumW > 0 {
		mean = sumWV / sumW
	}
	mode = values[bestIdx]
	return mean, mode
}

// spreadStats reports the unweighted standard deviation of values, used
// as a diagnostic alongside the rate-weighted mean/mode to show how
// dispersed the contributing ruptures are within a bin's dimension.
func spreadStats(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviation(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return sd
}
