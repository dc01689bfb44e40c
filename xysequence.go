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

// XYSequence is an ordered, finite sequence of (x,y) points. Both
// EvenlySpacedSequence and ArbitrarySequence implement it.
type XYSequence interface {
	Len() int
	X(i int) float64
	Y(i int) float64
	MinX() float64
	MaxX() float64
	MinY() float64
	MaxY() float64

	// SetY sets the y value at index i.
	SetY(i int, y float64)

	// Set inserts or overwrites the point at x with value y.
	Set(x, y float64) error

	// HasPoint reports whether the sequence already stores the exact
	// point (x, y).
	HasPoint(x, y float64) bool

	// Get returns the y value at x, failing if x does not fall exactly on
	// a sequence point within the sequence's tolerance.
	Get(x float64) (float64, error)
}

// smallestPositiveNormal is substituted for a zero y value before taking a
// log: if the interpolated result equals this value on return, it is
// clamped back to zero.
const smallestPositiveNormal = 2.2250738585072014e-308

// interpLinear performs linear interpolation between (x0,y0) and (x1,y1)
// at x.
func interpLinear(x, x0, y0, x1, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// interpLogY performs linear interpolation in log-y space between
// (x0,y0) and (x1,y1) at x, guarding against log(0).
func interpLogY(x, x0, y0, x1, y1 float64) float64 {
	if y0 == 0 && y1 == 0 {
		return 0
	}
	ly0, ly1 := y0, y1
	if ly0 == 0 {
		ly0 = smallestPositiveNormal
	}
	if ly1 == 0 {
		ly1 = smallestPositiveNormal
	}
	result := math.Exp(interpLinear(x, x0, math.Log(ly0), x1, math.Log(ly1)))
	if result == smallestPositiveNormal {
		return 0
	}
	return result
}

// interpLogXLogY performs linear interpolation in log-x/log-y space
// between (x0,y0) and (x1,y1) at x, guarding against log(0) on the y
// axis the same way interpLogY does.
func interpLogXLogY(x, x0, y0, x1, y1 float64) float64 {
	if y0 == 0 && y1 == 0 {
		return 0
	}
	ly0, ly1 := y0, y1
	if ly0 == 0 {
		ly0 = smallestPositiveNormal
	}
	if ly1 == 0 {
		ly1 = smallestPositiveNormal
	}
	lx := math.Log(x)
	result := math.Exp(interpLinear(lx, math.Log(x0), math.Log(ly0), math.Log(x1), math.Log(ly1)))
	if result == smallestPositiveNormal {
		return 0
	}
	return result
}

// bilinear combines four corner values using fractional weights fx (along
// the first axis) and fy (along the second), e.g. for a ground-motion
// table queried at (r, m):
//
//	bilinear(v00, v01, v10, v11, fx, fy)
//
// where v00=f(x0,y0), v01=f(x0,y1), v10=f(x1,y0), v11=f(x1,y1).
func bilinear(v00, v01, v10, v11, fx, fy float64) float64 {
	vx0 := v00 + (v10-v00)*fx
	vx1 := v01 + (v11-v01)*fx
	return vx0 + (vx1-vx0)*fy
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
