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

package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/usgs/nshmp-haz-sub005"
)

// Pipeline runs the hazard aggregation computation over a source model
// and a list of sites, writing per-IMT curve files through a CurveWriter.
// Per-site computations are the unit of parallelism, matching spec
// section 5; the inner loop over sources and ruptures is sequential.
type Pipeline struct {
	cfg    Config
	writer *CurveWriter
	log    logrus.FieldLogger
}

// New returns a Pipeline writing into writer, using cfg for GMM dispatch,
// distance filtering, and curve levels. log defaults to
// logrus.StandardLogger() if nil.
func New(cfg Config, writer *CurveWriter, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{cfg: cfg, writer: writer, log: log}
}

// Stats summarizes one Run: how many sites were processed, how many were
// skipped due to invalid input, and whether the run was cancelled before
// every site completed (in which case written results are partial).
type Stats struct {
	SitesProcessed int
	SitesSkipped   int
	Partial        bool
}

// Run processes every site in sites against model, submitting one task
// per site to a bounded worker pool sized by cfg.ThreadCount. If ctx is
// cancelled, no new site tasks are submitted and in-flight tasks are
// given up to graceShutdown to finish before the pool is forced to stop;
// results already written to disk remain and Stats.Partial is set.
func (p *Pipeline) Run(ctx context.Context, model []nshmp.Source, sites []nshmp.Site, graceShutdown time.Duration) (Stats, error) {
	n, err := ResolveThreadCount(p.cfg.ThreadCount)
	if err != nil {
		return Stats{}, err
	}

	poolCtx, cancelPool := context.WithCancel(context.Background())
	defer cancelPool()
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(poolCtx))

	var processed, skipped int64
	var partial int32

	go func() {
		<-ctx.Done()
		atomic.StoreInt32(&partial, 1)
		timer := time.NewTimer(graceShutdown)
		defer timer.Stop()
		done := make(chan struct{})
		go func() {
			pool.StopAndWait()
			close(done)
		}()
		select {
		case <-done:
		case <-timer.C:
			p.log.Warn("shutdown grace period elapsed, forcing worker pool to stop")
			cancelPool()
		}
	}()

	for _, site := range sites {
		site := site
		if ctx.Err() != nil {
			atomic.AddInt64(&skipped, 1)
			continue
		}
		submit := func() {
			if err := p.processSite(model, site); err != nil {
				p.log.WithFields(logrus.Fields{"site": site.Name, "error": err}).
					Warn("skipping site after error")
				atomic.AddInt64(&skipped, 1)
				return
			}
			atomic.AddInt64(&processed, 1)
		}
		if p.cfg.OrderedOutput {
			// Ordered output streams sites sequentially: block on this
			// site's completion through the pool before the next submits,
			// so rows are written in input order.
			var wg sync.WaitGroup
			wg.Add(1)
			pool.Submit(func() {
				defer wg.Done()
				submit()
			})
			wg.Wait()
		} else {
			pool.Submit(submit)
		}
	}
	pool.StopAndWait()

	if err := p.writer.Flush(); err != nil {
		return Stats{}, err
	}

	return Stats{
		SitesProcessed: int(atomic.LoadInt64(&processed)),
		SitesSkipped:   int(atomic.LoadInt64(&skipped)),
		Partial:        atomic.LoadInt32(&partial) == 1,
	}, nil
}

// processSite runs the full per-site aggregation (spec section 4.6,
// steps 1-5) and writes the resulting curves.
func (p *Pipeline) processSite(model []nshmp.Source, site nshmp.Site) error {
	retained := lo.Filter(model, func(src nshmp.Source, _ int) bool {
		return src.RepresentativeDistance(site.Location) <= p.cfg.MaxSourceDistanceKm
	})

	for _, imt := range p.cfg.IMTs {
		levels := p.cfg.GroundMotionLevels[imt]
		result := nshmp.NewHazardResult(site, imt, levels, p.cfg.CurveOutputTypes)

		for _, src := range retained {
			for _, ru := range src.Ruptures {
				in := ru.ToGmmInput(site)
				for _, id := range p.cfg.GmmIDs {
					gmm, err := p.cfg.Registry.Instance(id, imt)
					if err != nil {
						return fmt.Errorf("pipeline: instantiating %s for %s: %w", id, imt, err)
					}
					gm := gmm.Calc(imt, in)

					result.Total.AddRupture(p.cfg.ExceedanceModel, gm, ru.RateYr)
					if result.BySource != nil {
						result.SourceCurve(levels, src.Type).AddRupture(p.cfg.ExceedanceModel, gm, ru.RateYr)
					}
					if result.ByGmm != nil {
						result.GmmCurve(levels, id).AddRupture(p.cfg.ExceedanceModel, gm, ru.RateYr)
					}
				}
			}
		}

		if err := p.writeResult(result, imt, levels, site); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) writeResult(result *nshmp.HazardResult, imt nshmp.IMT, levels []float64, site nshmp.Site) error {
	total := result.Total
	if p.cfg.OutputAsPoissonProbability {
		total = total.ToPoissonProbability(p.cfg.poissonYears())
	}
	if err := p.writer.Add(imt, "", "", site.Location.Lon, site.Location.Lat, total.Rates); err != nil {
		return err
	}
	for sourceType, curve := range result.BySource {
		c := curve
		if p.cfg.OutputAsPoissonProbability {
			c = curve.ToPoissonProbability(p.cfg.poissonYears())
		}
		if err := p.writer.Add(imt, "source", sourceType, site.Location.Lon, site.Location.Lat, c.Rates); err != nil {
			return err
		}
	}
	for id, curve := range result.ByGmm {
		c := curve
		if p.cfg.OutputAsPoissonProbability {
			c = curve.ToPoissonProbability(p.cfg.poissonYears())
		}
		if err := p.writer.Add(imt, "gmm", string(id), site.Location.Lon, site.Location.Lat, c.Rates); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) poissonYears() float64 {
	if c.PoissonYears <= 0 {
		return 1
	}
	return c.PoissonYears
}
