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

import "math"

// HazardCurve is the rate of exceedance at each of a fixed set of
// ground-motion levels, for one site and one IMT. Levels are stored in
// natural-log x space internally and converted to linear x only on
// output, via Levels().
type HazardCurve struct {
	LnLevels []float64 // ground-motion levels, ln(g) or ln(cm/s) for PGV
	Rates    []float64 // annual rate of exceedance at each level
}

// NewHazardCurve returns a curve over the given ground-motion levels
// (linear units) with all rates initialized to 0.
func NewHazardCurve(levels []float64) *HazardCurve {
	ln := make([]float64, len(levels))
	for i, x := range levels {
		ln[i] = math.Log(x)
	}
	return &HazardCurve{LnLevels: ln, Rates: make([]float64, len(levels))}
}

// Levels returns the ground-motion levels in linear units.
func (c *HazardCurve) Levels() []float64 {
	out := make([]float64, len(c.LnLevels))
	for i, ln := range c.LnLevels {
		out[i] = math.Exp(ln)
	}
	return out
}

// AddRupture accumulates rate*Pexceed(level) into every level of the
// curve for one rupture's ground motion, implementing the Poisson
// rate-addition rule for combining independent ruptures.
func (c *HazardCurve) AddRupture(em ExceedanceModel, gm GroundMotion, rate float64) {
	for i, x := range c.LnLevels {
		c.Rates[i] += rate * ExceedProbability(em, x, gm)
	}
}

// Add accumulates another curve's rates into c, level by level. The two
// curves must share the same LnLevels.
func (c *HazardCurve) Add(o *HazardCurve) {
	for i := range c.Rates {
		c.Rates[i] += o.Rates[i]
	}
}

// ToPoissonProbability returns a new curve with rates converted to
// 1-year (or T-year) Poisson exceedance probabilities.
func (c *HazardCurve) ToPoissonProbability(years float64) *HazardCurve {
	out := &HazardCurve{LnLevels: c.LnLevels, Rates: make([]float64, len(c.Rates))}
	for i, r := range c.Rates {
		out.Rates[i] = PoissonProbability(r, years)
	}
	return out
}

// CurveOutputType selects which decomposition of a HazardResult is
// requested for output.
type CurveOutputType string

// Recognized curve output types.
const (
	CurveTotal               CurveOutputType = "TOTAL"
	CurveSource              CurveOutputType = "SOURCE"
	CurveGmm                 CurveOutputType = "GMM"
	CurveSourceLogicTreeBranch CurveOutputType = "SOURCE_LOGIC_TREE_BRANCH"
)

// HazardResult is everything computed for one site and one IMT: the
// total curve, and whichever decompositions were requested.
type HazardResult struct {
	Site       Site
	IMT        IMT
	Total      *HazardCurve
	BySource   map[string]*HazardCurve
	ByGmm      map[Identifier]*HazardCurve
	ByBranch   map[string]*HazardCurve
}

// NewHazardResult returns an empty result over the given ground-motion
// levels, with decomposition maps allocated only for the requested types.
func NewHazardResult(site Site, imt IMT, levels []float64, types map[CurveOutputType]bool) *HazardResult {
	r := &HazardResult{Site: site, IMT: imt, Total: NewHazardCurve(levels)}
	if types[CurveSource] {
		r.BySource = make(map[string]*HazardCurve)
	}
	if types[CurveGmm] {
		r.ByGmm = make(map[Identifier]*HazardCurve)
	}
	if types[CurveSourceLogicTreeBranch] {
		r.ByBranch = make(map[string]*HazardCurve)
	}
	return r
}

// SourceCurve returns (allocating if necessary) the per-source-type curve
// for sourceType. Callers must have requested CurveSource when building r.
func (r *HazardResult) SourceCurve(levels []float64, sourceType string) *HazardCurve {
	c, ok := r.BySource[sourceType]
	if !ok {
		c = NewHazardCurve(levels)
		r.BySource[sourceType] = c
	}
	return c
}

// GmmCurve returns (allocating if necessary) the per-model curve for id.
// Callers must have requested CurveGmm when building r.
func (r *HazardResult) GmmCurve(levels []float64, id Identifier) *HazardCurve {
	c, ok := r.ByGmm[id]
	if !ok {
		c = NewHazardCurve(levels)
		r.ByGmm[id] = c
	}
	return c
}

// BranchCurve returns (allocating if necessary) the per-logic-tree-branch
// curve for branch. Callers must have requested CurveSourceLogicTreeBranch
// when building r.
func (r *HazardResult) BranchCurve(levels []float64, branch string) *HazardCurve {
	c, ok := r.ByBranch[branch]
	if !ok {
		c = NewHazardCurve(levels)
		r.ByBranch[branch] = c
	}
	return c
}
