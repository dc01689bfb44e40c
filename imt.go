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
)

// IMT is an intensity measure type: PGA, PGV, or spectral acceleration at
// a fixed period. The zero value is not a valid IMT; use one of the
// package-level constants.
type IMT struct {
	label  string
	period float64 // seconds; 0 for PGA and PGV
	isSA   bool
}

// periodTolerance is the absolute tolerance, in seconds, used to compare
// two SA periods for equality.
const periodTolerance = 1e-6

// String returns the IMT's display label, e.g. "PGA" or "SA1P0".
func (i IMT) String() string { return i.label }

// IsSA reports whether i is a spectral-acceleration IMT.
func (i IMT) IsSA() bool { return i.isSA }

// Period returns the spectral period in seconds for an SA IMT. For PGA and
// PGV the result is 0.
func (i IMT) Period() float64 { return i.period }

// Frequency returns 1/Period, with PGA fixed at 100 Hz by convention (PGA
// corresponds to the zero-period, i.e. infinite-frequency, limit of the
// response spectrum and is never computed as 1/0).
func (i IMT) Frequency() float64 {
	if i == PGA {
		return 100.
	}
	if i.period == 0 {
		return math.NaN()
	}
	return 1. / i.period
}

// Equal reports whether i and o represent the same IMT. Two IMTs are equal
// iff their labels match exactly; this is equivalent to comparing periods
// within periodTolerance because every supported period has a unique,
// fixed label.
func (i IMT) Equal(o IMT) bool { return i.label == o.label }

// Spectral acceleration periods supported by the registry, in seconds.
// PGA and PGV are handled as special, non-spectral IMTs.
var saPeriods = []float64{
	0.01, 0.02, 0.03, 0.05, 0.075, 0.1, 0.15, 0.2, 0.25, 0.3, 0.4, 0.5,
	0.75, 1.0, 1.5, 2.0, 3.0, 4.0, 5.0, 7.5, 10.0,
}

// Recognized IMTs. SA labels follow the NSHMP "SA<int>P<frac>" convention,
// e.g. SA1P0 for 1.0 s, SA0P2 for 0.2 s.
var (
	PGA    = IMT{label: "PGA"}
	PGV    = IMT{label: "PGV"}
	SA0P01 = newSA("SA0P01", 0.01)
	SA0P02 = newSA("SA0P02", 0.02)
	SA0P03 = newSA("SA0P03", 0.03)
	SA0P05 = newSA("SA0P05", 0.05)
	SA0P075 = newSA("SA0P075", 0.075)
	SA0P1  = newSA("SA0P1", 0.1)
	SA0P15 = newSA("SA0P15", 0.15)
	SA0P2  = newSA("SA0P2", 0.2)
	SA0P25 = newSA("SA0P25", 0.25)
	SA0P3  = newSA("SA0P3", 0.3)
	SA0P4  = newSA("SA0P4", 0.4)
	SA0P5  = newSA("SA0P5", 0.5)
	SA0P75 = newSA("SA0P75", 0.75)
	SA1P0  = newSA("SA1P0", 1.0)
	SA1P5  = newSA("SA1P5", 1.5)
	SA2P0  = newSA("SA2P0", 2.0)
	SA3P0  = newSA("SA3P0", 3.0)
	SA4P0  = newSA("SA4P0", 4.0)
	SA5P0  = newSA("SA5P0", 5.0)
	SA7P5  = newSA("SA7P5", 7.5)
	SA10P0 = newSA("SA10P0", 10.0)
)

func newSA(label string, period float64) IMT {
	return IMT{label: label, period: period, isSA: true}
}

// AllIMTs lists every IMT known to the registry, PGA and PGV first.
var AllIMTs = buildAllIMTs()

func buildAllIMTs() []IMT {
	imts := []IMT{PGA, PGV}
	for _, p := range saPeriods {
		imt, err := FromPeriod(p)
		if err != nil {
			panic(err) // programmer error: saPeriods and the SA constants must agree
		}
		imts = append(imts, imt)
	}
	return imts
}

// FromPeriod returns the SA IMT whose period matches p within
// periodTolerance, or an error if no SA IMT has that period. FromPeriod
// never returns PGA or PGV; callers that mean to allow those should check
// separately.
func FromPeriod(p float64) (IMT, error) {
	candidates := []IMT{
		SA0P01, SA0P02, SA0P03, SA0P05, SA0P075, SA0P1, SA0P15, SA0P2,
		SA0P25, SA0P3, SA0P4, SA0P5, SA0P75, SA1P0, SA1P5, SA2P0, SA3P0,
		SA4P0, SA5P0, SA7P5, SA10P0,
	}
	for _, imt := range candidates {
		if math.Abs(imt.period-p) <= periodTolerance {
			return imt, nil
		}
	}
	return IMT{}, fmt.Errorf("nshmp: no SA IMT with period %g s", p)
}
