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

// Range describes an allowed interval for one GmmInput field: [Min, Max],
// inclusive on both ends unless HalfOpen is set, in which case Max is
// exclusive. A singleton range has Min == Max.
type Range struct {
	Min, Max float64
	HalfOpen bool
}

// Contains reports whether v falls within r.
func (r Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	if r.HalfOpen {
		return v < r.Max
	}
	return v <= r.Max
}

// Constraints is a per-GMM record of allowed ranges for each GmmInput
// field. It is used for input validation and UI range reporting; it is
// not enforced inside the hot calc() path.
type Constraints struct {
	Mw                    Range
	RJB, RRup, RX         Range
	Dip, Width            Range
	ZTop, ZHyp            Range
	Rake                  Range
	Vs30                  Range
	Z1p0, Z2p5            Range
}

// DefaultConstraints returns a permissive constraints record covering the
// typical NSHMP range of each field; individual models narrow specific
// fields as needed.
func DefaultConstraints() Constraints {
	return Constraints{
		Mw:    Range{Min: 4.0, Max: 9.5},
		RJB:   Range{Min: 0, Max: 1000},
		RRup:  Range{Min: 0, Max: 1000},
		RX:    Range{Min: -1000, Max: 1000},
		Dip:   Range{Min: 0, Max: 90},
		Width: Range{Min: 0, Max: 60},
		ZTop:  Range{Min: 0, Max: 700},
		ZHyp:  Range{Min: 0, Max: 700},
		Rake:  Range{Min: -180, Max: 180},
		Vs30:  Range{Min: 150, Max: 2000},
		Z1p0:  Range{Min: 0, Max: 10},
		Z2p5:  Range{Min: 0, Max: 10},
	}
}
