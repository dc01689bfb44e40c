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
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/usgs/nshmp-haz-sub005/errs"
)

// minTolerance is the effective floor on the x-equality tolerance imposed
// by double precision; a tolerance smaller than this is indistinguishable
// from exact equality for the magnitudes of x values this package deals
// with.
const minTolerance = 1e-16

// point is one (x, y) pair of an ArbitrarySequence.
type point struct{ x, y float64 }

// ArbitrarySequence is an XYSequence backed by a list of points sorted
// ascending by x, with tolerance-based x equality.
type ArbitrarySequence struct {
	tolerance float64
	pts       []point
}

// NewArbitrarySequence builds a sequence from unsorted x/y slices of equal
// length, using tolerance for x equality during subsequent inserts and
// lookups.
func NewArbitrarySequence(x, y []float64, tolerance float64) (*ArbitrarySequence, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: x and y must have the same length (%d != %d)", errs.ErrInvalidInput, len(x), len(y))
	}
	if tolerance < 0 {
		tolerance = 0
	}
	if tolerance < minTolerance {
		tolerance = minTolerance
	}
	s := &ArbitrarySequence{tolerance: tolerance}
	for i := range x {
		if err := s.Set(x[i], y[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of points in the sequence.
func (s *ArbitrarySequence) Len() int { return len(s.pts) }

// X returns the x value at index i.
func (s *ArbitrarySequence) X(i int) float64 { return s.pts[i].x }

// Y returns the y value at index i.
func (s *ArbitrarySequence) Y(i int) float64 { return s.pts[i].y }

// MinX returns the smallest x value.
func (s *ArbitrarySequence) MinX() float64 { return s.pts[0].x }

// MaxX returns the largest x value.
func (s *ArbitrarySequence) MaxX() float64 { return s.pts[len(s.pts)-1].x }

// MinY returns the smallest y value.
func (s *ArbitrarySequence) MinY() float64 { return floats.Min(s.ys()) }

// MaxY returns the largest y value.
func (s *ArbitrarySequence) MaxY() float64 { return floats.Max(s.ys()) }

func (s *ArbitrarySequence) ys() []float64 {
	y := make([]float64, len(s.pts))
	for i, p := range s.pts {
		y[i] = p.y
	}
	return y
}

// SetY sets the y value at index i.
func (s *ArbitrarySequence) SetY(i int, y float64) { s.pts[i].y = y }

// indexWithin returns the index of the point within tolerance of x, and
// true, or the negative insertion point (-(insertAt+1)) and false if no
// such point exists. This mirrors the conventional Go sort.Search/-insert
// idiom used for sorted-slice containers.
func (s *ArbitrarySequence) indexWithin(x float64) (int, bool) {
	n := len(s.pts)
	i := sort.Search(n, func(i int) bool { return s.pts[i].x >= x-s.tolerance })
	if i < n && math.Abs(s.pts[i].x-x) <= s.tolerance {
		return i, true
	}
	return -(i + 1), false
}

// Set inserts a new point at x, or overwrites the y value of an existing
// point within tolerance of x. The sequence remains sorted after every
// call.
func (s *ArbitrarySequence) Set(x, y float64) error {
	if i, ok := s.indexWithin(x); ok {
		s.pts[i].y = y
		return nil
	} else {
		insertAt := -(i + 1)
		s.pts = append(s.pts, point{})
		copy(s.pts[insertAt+1:], s.pts[insertAt:])
		s.pts[insertAt] = point{x: x, y: y}
	}
	return nil
}

// HasPoint reports whether the sequence stores a point within tolerance
// of x whose y value equals y exactly.
func (s *ArbitrarySequence) HasPoint(x, y float64) bool {
	i, ok := s.indexWithin(x)
	return ok && s.pts[i].y == y
}

// Get returns the y value of the point within tolerance of x, failing
// with ErrOutOfRange if no such point exists.
func (s *ArbitrarySequence) Get(x float64) (float64, error) {
	i, ok := s.indexWithin(x)
	if !ok {
		return 0, fmt.Errorf("%w: x=%g has no matching point", errs.ErrOutOfRange, x)
	}
	return s.pts[i].y, nil
}

// xIndexBefore returns the index of the last point whose x is <= the
// query x, or -1 if the query equals the first point's x exactly or is
// smaller than every stored x. Callers of interpolated-y lookups must
// handle -1 themselves (it does not mean "not found").
func (s *ArbitrarySequence) xIndexBefore(x float64) int {
	if len(s.pts) == 0 || x <= s.pts[0].x {
		return -1
	}
	i := sort.Search(len(s.pts), func(i int) bool { return s.pts[i].x > x })
	return i - 1
}

// bracket returns the index i such that X(i) <= x < X(i+1), clamped to
// [0, Len()-2] so that it is always usable for bilinear/linear
// interpolation.
func (s *ArbitrarySequence) bracket(x float64) int {
	n := len(s.pts)
	if n < 2 {
		return 0
	}
	i := s.xIndexBefore(x)
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	return i
}

// InterpolateLinear returns the y value at x via linear-linear
// interpolation, clamping to the end values outside [MinX, MaxX].
func (s *ArbitrarySequence) InterpolateLinear(x float64) float64 {
	if x <= s.MinX() {
		return s.pts[0].y
	}
	if x >= s.MaxX() {
		return s.pts[len(s.pts)-1].y
	}
	i := s.bracket(x)
	return interpLinear(x, s.pts[i].x, s.pts[i].y, s.pts[i+1].x, s.pts[i+1].y)
}

// InterpolateLogY returns the y value at x via linear interpolation in
// log-y space, guarding against log(0) per the package convention.
func (s *ArbitrarySequence) InterpolateLogY(x float64) float64 {
	if x <= s.MinX() {
		return s.pts[0].y
	}
	if x >= s.MaxX() {
		return s.pts[len(s.pts)-1].y
	}
	i := s.bracket(x)
	return interpLogY(x, s.pts[i].x, s.pts[i].y, s.pts[i+1].x, s.pts[i+1].y)
}

// InterpolateLogXLogY returns the y value at x via linear interpolation in
// log-x/log-y space.
func (s *ArbitrarySequence) InterpolateLogXLogY(x float64) float64 {
	if x <= s.MinX() {
		return s.pts[0].y
	}
	if x >= s.MaxX() {
		return s.pts[len(s.pts)-1].y
	}
	i := s.bracket(x)
	return interpLogXLogY(x, s.pts[i].x, s.pts[i].y, s.pts[i+1].x, s.pts[i+1].y)
}

// InterpolateOrExtrapolateLogY behaves like InterpolateLogY within the
// sequence's domain, but linearly extends in log-y space beyond the end
// points rather than clamping.
func (s *ArbitrarySequence) InterpolateOrExtrapolateLogY(x float64) float64 {
	n := len(s.pts)
	if n < 2 {
		return s.pts[0].y
	}
	if x < s.MinX() {
		return math.Exp(extrapolateLogY(x, s.pts[0], s.pts[1]))
	}
	if x > s.MaxX() {
		return math.Exp(extrapolateLogY(x, s.pts[n-2], s.pts[n-1]))
	}
	return s.InterpolateLogY(x)
}

func extrapolateLogY(x float64, a, b point) float64 {
	ly0, ly1 := a.y, b.y
	if ly0 <= 0 {
		ly0 = smallestPositiveNormal
	}
	if ly1 <= 0 {
		ly1 = smallestPositiveNormal
	}
	return interpLinear(x, a.x, math.Log(ly0), b.x, math.Log(ly1))
}

// FirstXAtY scans forward for the first adjacent pair of points whose y
// values bracket target, and returns the x value obtained by linear
// interpolation between them. Scanning is order-sensitive: when the curve
// is not monotonic, duplicate y-values yield the lowest-x match. It fails
// with ErrOutOfRange if no bracketing pair exists.
func (s *ArbitrarySequence) FirstXAtY(target float64) (float64, error) {
	for i := 0; i < len(s.pts)-1; i++ {
		y0, y1 := s.pts[i].y, s.pts[i+1].y
		if (y0-target)*(y1-target) <= 0 && y0 != y1 {
			return interpLinear(target, y0, s.pts[i].x, y1, s.pts[i+1].x), nil
		}
		if y0 == target {
			return s.pts[i].x, nil
		}
	}
	return 0, fmt.Errorf("%w: no bracket found for y=%g", errs.ErrOutOfRange, target)
}
