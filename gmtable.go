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
	"sort"
)

// ln10 converts base-10 logs stored in ground-motion tables to natural
// log, and lnG2MS2 (ln 980) converts a natural-log value in cm/s^2 to
// natural-log g. PGV tables are the exception: they are returned directly
// in cm/s.
const (
	ln10    = 2.302585092994046
	lnG2MS2 = 6.886532334383046 // ln(980), cm/s^2 per g, in natural-log units
)

// GmTableKind selects how a query distance is transformed before the
// table lookup.
type GmTableKind int

const (
	// GmTablePlain uses r as-is.
	GmTablePlain GmTableKind = iota
	// GmTableLogDistance replaces r with log10(r) before lookup.
	GmTableLogDistance
	// GmTableLogDistanceScaling behaves like GmTableLogDistance, but
	// beyond the maximum tabulated distance the interpolated value is
	// reduced to model 1/r attenuation.
	GmTableLogDistanceScaling
)

// GroundMotionTable is a rectangular grid of log-ground-motion values
// indexed by distance and magnitude, with bilinear interpolation.
type GroundMotionTable struct {
	kind   GmTableKind
	rKeys  []float64 // sorted ascending; already transformed per kind
	mKeys  []float64 // sorted ascending
	values [][]float64 // values[ir][im]
}

// NewGroundMotionTable builds a table from raw (untransformed) distance
// keys, magnitude keys, and a [len(r)][len(m)] value matrix. rKeys and
// mKeys must each be sorted ascending and values must be fully populated.
func NewGroundMotionTable(kind GmTableKind, rKeys, mKeys []float64, values [][]float64) *GroundMotionTable {
	transformed := make([]float64, len(rKeys))
	for i, r := range rKeys {
		if kind == GmTablePlain {
			transformed[i] = r
		} else {
			transformed[i] = math.Log10(r)
		}
	}
	return &GroundMotionTable{kind: kind, rKeys: transformed, mKeys: mKeys, values: values}
}

// clampedIndex performs a binary search for x in a sorted slice, returning
// an index in [0, len-2] so the result is always usable as the low end of
// a bilinear interpolation bracket.
func clampedIndex(keys []float64, x float64) int {
	n := len(keys)
	if n < 2 {
		return 0
	}
	i := sort.SearchFloat64s(keys, x)
	// SearchFloat64s returns the first index with keys[i] >= x.
	if i == 0 {
		return 0
	}
	if i >= n {
		return n - 2
	}
	return i - 1
}

// rKeyMax returns the largest (transformed) distance key.
func (t *GroundMotionTable) rKeyMax() float64 { return t.rKeys[len(t.rKeys)-1] }

// Lookup returns the bilinearly interpolated log-ground-motion value at
// distance r (km, untransformed) and magnitude m. For a
// GmTableLogDistanceScaling table, a query beyond the maximum tabulated
// distance is reduced by (log10(r) - rMax) to model 1/r attenuation
// beyond the table's range.
func (t *GroundMotionTable) Lookup(r, m float64) float64 {
	rq := r
	if t.kind != GmTablePlain {
		rq = math.Log10(r)
	}
	ir := clampedIndex(t.rKeys, rq)
	im := clampedIndex(t.mKeys, m)

	fr := clamp01((rq - t.rKeys[ir]) / (t.rKeys[ir+1] - t.rKeys[ir]))
	fm := clamp01((m - t.mKeys[im]) / (t.mKeys[im+1] - t.mKeys[im]))

	v := bilinear(t.values[ir][im], t.values[ir][im+1], t.values[ir+1][im], t.values[ir+1][im+1], fr, fm)

	if t.kind == GmTableLogDistanceScaling && rq > t.rKeyMax() {
		v -= rq - t.rKeyMax()
	}
	return v
}

// ToNaturalLogMS2 converts a table value stored as log10(ground motion in
// cm/s^2) to natural-log ground motion in g (log10Value*ln10 - ln 980),
// except for PGV, which the tables store in cm/s and which is only
// converted from log10 to natural log.
func ToNaturalLogMS2(log10Value float64, imt IMT) float64 {
	if imt == PGV {
		return log10Value * ln10
	}
	return log10Value*ln10 - lnG2MS2
}
