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

// Package pipeline implements the hazard aggregation pipeline: per-site
// parallel iteration over sources and ruptures, GMM dispatch, exceedance
// accumulation into hazard curves, and batched curve output. The worker
// pool follows a run-to-completion, bounded-parallelism pattern, using
// github.com/alitto/pond in place of a hand-rolled channel-of-functions
// pool.
package pipeline

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/usgs/nshmp-haz-sub005"
)

// Config is the hazard run configuration, already resolved to its typed
// form (a higher-level config loader is responsible for parsing
// thread_count strings, IMT labels, and so on into this shape).
type Config struct {
	IMTs                       []nshmp.IMT
	GmmIDs                     []nshmp.Identifier
	Registry                   *nshmp.Registry
	ExceedanceModel            nshmp.ExceedanceModel
	MaxSourceDistanceKm        float64
	CurveOutputTypes           map[nshmp.CurveOutputType]bool
	GroundMotionLevels         map[nshmp.IMT][]float64
	FlushLimit                 int
	OutputDirectory            string
	ThreadCount                string
	OrderedOutput              bool
	OutputAsPoissonProbability bool
	PoissonYears               float64
}

// ResolveThreadCount maps the documented {ONE, TWO, ALL_MINUS_ONE, ALL, <n>}
// thread_count vocabulary to a concrete, minimum-1 worker count.
func ResolveThreadCount(s string) (int, error) {
	switch s {
	case "", "ALL":
		return max1(runtime.GOMAXPROCS(0)), nil
	case "ONE":
		return 1, nil
	case "TWO":
		return 2, nil
	case "ALL_MINUS_ONE":
		return max1(runtime.GOMAXPROCS(0) - 1), nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("pipeline: invalid thread_count %q: %w", s, err)
		}
		return max1(n), nil
	}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
