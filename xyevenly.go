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

	"github.com/usgs/nshmp-haz-sub005/errs"
)

// roundBias biases a boundary value upward rather than toward-even,
// matching the reference numerical tools this format was ported from.
const roundBias = 1 + 1e-14

// EvenlySpacedSequence is an XYSequence whose x values are implicit:
// x[i] = Min + i*Delta. Lookups use a precision-scaled rounded index.
type EvenlySpacedSequence struct {
	min, delta float64
	tolerance  float64
	y          []float64
}

// NewEvenlySpacedSequence builds a sequence of n points starting at min
// with spacing delta. If n is 1, delta must be 0 (a single point). Delta
// must be non-negative.
func NewEvenlySpacedSequence(min, delta float64, n int, tolerance float64) (*EvenlySpacedSequence, error) {
	if delta < 0 {
		return nil, fmt.Errorf("%w: evenly-spaced sequence delta %g must be >= 0", errs.ErrInvalidInput, delta)
	}
	if n == 1 && delta != 0 {
		return nil, fmt.Errorf("%w: evenly-spaced sequence with n=1 must have delta=0", errs.ErrInvalidInput)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: evenly-spaced sequence must have at least one point", errs.ErrInvalidInput)
	}
	return &EvenlySpacedSequence{min: min, delta: delta, tolerance: tolerance, y: make([]float64, n)}, nil
}

// Len returns the number of points in the sequence.
func (s *EvenlySpacedSequence) Len() int { return len(s.y) }

// X returns the x value at index i: Min + i*Delta.
func (s *EvenlySpacedSequence) X(i int) float64 { return s.min + float64(i)*s.delta }

// Y returns the y value at index i.
func (s *EvenlySpacedSequence) Y(i int) float64 { return s.y[i] }

// MinX returns the smallest x value.
func (s *EvenlySpacedSequence) MinX() float64 { return s.min }

// MaxX returns the largest x value.
func (s *EvenlySpacedSequence) MaxX() float64 { return s.X(s.Len() - 1) }

// MinY returns the smallest y value currently stored.
func (s *EvenlySpacedSequence) MinY() float64 { return minSlice(s.y) }

// MaxY returns the largest y value currently stored.
func (s *EvenlySpacedSequence) MaxY() float64 { return maxSlice(s.y) }

// SetY sets the y value at index i.
func (s *EvenlySpacedSequence) SetY(i int, y float64) { s.y[i] = y }

// indexOf computes the precision-scaled rounded index for x, clamped to
// [0, n-1]. The 1e-14 bias makes an x exactly on a bin boundary round up
// rather than toward-even.
func (s *EvenlySpacedSequence) indexOf(x float64) int {
	if s.delta == 0 {
		return 0
	}
	i := int(math.Round(roundBias * (x - s.min) / s.delta))
	if i < 0 {
		return 0
	}
	if i > s.Len()-1 {
		return s.Len() - 1
	}
	return i
}

// Set overwrites the y value at the grid index nearest x, failing if x is
// farther than tolerance from any grid point.
func (s *EvenlySpacedSequence) Set(x, y float64) error {
	i := s.indexOf(x)
	if math.Abs(s.X(i)-x) > s.tolerance {
		return fmt.Errorf("%w: x=%g is not within tolerance of any grid point", errs.ErrOutOfRange, x)
	}
	s.y[i] = y
	return nil
}

// HasPoint reports whether (x, y) is stored exactly at a grid index.
func (s *EvenlySpacedSequence) HasPoint(x, y float64) bool {
	i := s.indexOf(x)
	return math.Abs(s.X(i)-x) <= s.tolerance && s.y[i] == y
}

// Get returns the y value at the grid index nearest x, failing if x is
// farther than tolerance from any grid point.
func (s *EvenlySpacedSequence) Get(x float64) (float64, error) {
	i := s.indexOf(x)
	if math.Abs(s.X(i)-x) > s.tolerance {
		return 0, fmt.Errorf("%w: x=%g is not within tolerance of any grid point", errs.ErrOutOfRange, x)
	}
	return s.y[i], nil
}

// InterpolateLinear returns the linearly interpolated y at x, clamping to
// the end values when x is outside [MinX, MaxX].
func (s *EvenlySpacedSequence) InterpolateLinear(x float64) float64 {
	if x <= s.MinX() {
		return s.Y(0)
	}
	if x >= s.MaxX() {
		return s.Y(s.Len() - 1)
	}
	i := int((x - s.min) / s.delta)
	if i >= s.Len()-1 {
		i = s.Len() - 2
	}
	return interpLinear(x, s.X(i), s.Y(i), s.X(i+1), s.Y(i+1))
}

func minSlice(v []float64) float64 {
	m := math.Inf(1)
	for _, x := range v {
		if x < m {
			m = x
		}
	}
	return m
}

func maxSlice(v []float64) float64 {
	m := math.Inf(-1)
	for _, x := range v {
		if x > m {
			m = x
		}
	}
	return m
}
