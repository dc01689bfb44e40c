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

package stable

import (
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005"
	"github.com/usgs/nshmp-haz-sub005/errs"
)

// ceusSiteClass is the two-value site-class distinction every CEUS model
// in this package shares: HARD_ROCK, the native table/coefficient
// reference condition, and SOFT_ROCK, the softer 760 m/s reference
// condition. No other Vs30 value is recognized.
type ceusSiteClass int

const (
	hardRockVs30 = 2000.0
	softRockVs30 = 760.0

	// softRockAmp is the log amplification applied at softRockVs30
	// relative to hardRockVs30.
	softRockAmp = 0.3
)

const (
	hardRock ceusSiteClass = iota
	softRock
)

// ceusClassify maps Vs30 onto the HARD_ROCK/SOFT_ROCK distinction,
// panicking for any value other than the two recognized reference
// conditions.
func ceusClassify(vs30 float64) ceusSiteClass {
	switch vs30 {
	case hardRockVs30:
		return hardRock
	case softRockVs30:
		return softRock
	default:
		panic(fmt.Errorf("%w: stable: Vs30=%g is neither HARD_ROCK (%g) nor SOFT_ROCK (%g)", errs.ErrInvalidInput, vs30, hardRockVs30, softRockVs30))
	}
}

// ceusSiteCorrection is the log amplification for SOFT_ROCK sites
// relative to a model's native HARD_ROCK reference condition.
func ceusSiteCorrection(vs30 float64) float64 {
	if ceusClassify(vs30) == hardRock {
		return 0
	}
	return softRockAmp
}

// ceusMeanClamp imposes the family's documented ceiling on predicted mean
// ground motion at short periods: PGA is capped at ln(1.5g) and SA in the
// 0.02-0.5s band is capped at ln(3.0g). meanLn is expected in natural-log
// g-units, matching nshmp.ToNaturalLogMS2's output.
func ceusMeanClamp(imt nshmp.IMT, meanLn float64) float64 {
	const (
		pgaCapG = 1.5
		saCapG  = 3.0
	)
	switch {
	case imt == nshmp.PGA:
		return math.Min(meanLn, math.Log(pgaCapG))
	case imt.IsSA() && imt.Period() > 0.02 && imt.Period() < 0.5:
		return math.Min(meanLn, math.Log(saCapG))
	default:
		return meanLn
	}
}
