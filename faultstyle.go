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

// FaultStyle classifies a rupture's style of faulting from its rake.
type FaultStyle int

// Recognized fault styles.
const (
	StrikeSlip FaultStyle = iota
	Normal
	Reverse
	ReverseOblique
	Unknown
)

func (s FaultStyle) String() string {
	switch s {
	case StrikeSlip:
		return "STRIKE_SLIP"
	case Normal:
		return "NORMAL"
	case Reverse:
		return "REVERSE"
	case ReverseOblique:
		return "REVERSE_OBLIQUE"
	default:
		return "UNKNOWN"
	}
}

// FaultStyleFromRake buckets a rake angle (degrees) into one of four
// 90°-wide sectors: [45,135] -> Reverse, [-135,-45] -> Normal, everything
// else -> StrikeSlip. NaN rake (unknown mechanism) maps to Unknown. The
// boundary values 45, 135, -45, -135 are inclusive to their named sector.
func FaultStyleFromRake(rakeDeg float64) FaultStyle {
	if math.IsNaN(rakeDeg) {
		return Unknown
	}
	if rakeDeg >= 45 && rakeDeg <= 135 {
		return Reverse
	}
	if rakeDeg >= -135 && rakeDeg <= -45 {
		return Normal
	}
	return StrikeSlip
}
