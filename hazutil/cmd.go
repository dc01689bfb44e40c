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

package hazutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/usgs/nshmp-haz-sub005"
	"github.com/usgs/nshmp-haz-sub005/deagg"
	"github.com/usgs/nshmp-haz-sub005/errs"
	"github.com/usgs/nshmp-haz-sub005/pipeline"
)

// InitializeConfig builds the hazutil command tree: a Root carrying
// hazard and deagg subcommands, following inmaputil.InitializeConfig's
// cfg.Root/cfg.<subcommand> layout.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}

	cfg.Root = &cobra.Command{
		Use:   "hazutil",
		Short: "Probabilistic seismic hazard curves and deaggregation.",
		Long: `hazutil computes probabilistic seismic hazard curves and deaggregations
from an earthquake source model. Use the hazard and deagg subcommands.`,
		DisableAutoGenTag: true,
	}

	cfg.hazardCmd = &cobra.Command{
		Use:   "hazard <model> <sites> [config]",
		Short: "Compute hazard curves for a set of sites.",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHazard(args)
		},
		DisableAutoGenTag: true,
	}

	cfg.deaggCmd = &cobra.Command{
		Use:   "deagg <model> <sites> <return_period> [config]",
		Short: "Deaggregate hazard at a target return period.",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeagg(args)
		},
		DisableAutoGenTag: true,
	}

	cfg.Root.AddCommand(cfg.hazardCmd, cfg.deaggCmd)
	return cfg
}

// setupLogging opens <program>.log inside outputDir and returns a
// logrus.FieldLogger writing to both the file and stderr, matching the
// persisted-state layout's "<program>.log" entry.
func setupLogging(outputDir, program string) (logrus.FieldLogger, func(), error) {
	path := filepath.Join(outputDir, program+".log")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening log file %s: %v", errs.ErrIOFailure, path, err)
	}
	log := logrus.New()
	log.SetOutput(io.MultiWriter(f, os.Stderr))
	return log, func() { f.Close() }, nil
}

// installInterruptHandler calls cancel on the first interrupt signal
// (os.Interrupt, i.e. SIGINT); SIGTERM is not handled. The cancellation is
// the entry point the pipeline's grace-period shutdown reacts to.
func installInterruptHandler(cancel context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		<-ch
		cancel()
	}()
}

func runHazard(args []string) error {
	modelPath, sitesArg := args[0], args[1]
	var overridePath string
	if len(args) == 3 {
		overridePath = args[2]
	}

	sources, modelConfig, err := LoadModel(modelPath)
	if err != nil {
		return err
	}
	sites, err := ParseSites(sitesArg)
	if err != nil {
		return err
	}
	v, err := mergeConfig(modelConfig, overridePath)
	if err != nil {
		return err
	}
	registry, err := buildRegistry()
	if err != nil {
		return err
	}
	pcfg, err := buildPipelineConfig(v, registry)
	if err != nil {
		return err
	}
	if err := writeEffectiveConfig(v, pcfg.OutputDirectory); err != nil {
		return err
	}

	log, closeLog, err := setupLogging(pcfg.OutputDirectory, "hazard")
	if err != nil {
		return err
	}
	defer closeLog()

	writer := pipeline.NewCurveWriter(pcfg.OutputDirectory, pcfg.FlushLimit)
	p := pipeline.New(pcfg, writer, log)

	grace := time.Duration(v.GetFloat64("shutdown_grace_seconds") * float64(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	installInterruptHandler(cancel)

	stats, err := p.Run(ctx, sources, sites, grace)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"processed": stats.SitesProcessed,
		"skipped":   stats.SitesSkipped,
		"partial":   stats.Partial,
	}).Info("hazard run complete")
	return nil
}

func runDeagg(args []string) error {
	modelPath, sitesArg, returnPeriodArg := args[0], args[1], args[2]
	var overridePath string
	if len(args) == 4 {
		overridePath = args[3]
	}

	returnYears, err := strconv.ParseFloat(returnPeriodArg, 64)
	if err != nil || returnYears <= 0 {
		return fmt.Errorf("%w: return_period must be a positive number of years, got %q", errs.ErrInvalidInput, returnPeriodArg)
	}

	sources, modelConfig, err := LoadModel(modelPath)
	if err != nil {
		return err
	}
	sites, err := ParseSites(sitesArg)
	if err != nil {
		return err
	}
	v, err := mergeConfig(modelConfig, overridePath)
	if err != nil {
		return err
	}
	registry, err := buildRegistry()
	if err != nil {
		return err
	}
	pcfg, err := buildPipelineConfig(v, registry)
	if err != nil {
		return err
	}
	if err := writeEffectiveConfig(v, pcfg.OutputDirectory); err != nil {
		return err
	}

	log, closeLog, err := setupLogging(pcfg.OutputDirectory, "deagg")
	if err != nil {
		return err
	}
	defer closeLog()

	bcfg := buildDeaggBinConfig(v)

	for _, site := range sites {
		for _, imt := range pcfg.IMTs {
			levels := pcfg.GroundMotionLevels[imt]
			totalCurve := nshmp.NewHazardCurve(levels)
			for _, src := range sources {
				if src.RepresentativeDistance(site.Location) > pcfg.MaxSourceDistanceKm {
					continue
				}
				for _, ru := range src.Ruptures {
					in := ru.ToGmmInput(site)
					for _, id := range pcfg.GmmIDs {
						gmm, err := registry.Instance(id, imt)
						if err != nil {
							return err
						}
						totalCurve.AddRupture(pcfg.ExceedanceModel, gmm.Calc(imt, in), ru.RateYr)
					}
				}
			}

			result, err := deagg.Run(bcfg, sources, site, imt, totalCurve, registry, pcfg.GmmIDs, pcfg.ExceedanceModel, returnYears)
			if err != nil {
				log.WithFields(logrus.Fields{"site": site.Name, "imt": imt.String(), "error": err}).Warn("skipping deaggregation")
				continue
			}
			log.WithFields(logrus.Fields{
				"site": site.Name, "imt": imt.String(),
				"meanM": result.MeanM, "meanR": result.MeanR, "meanEps": result.MeanEps,
				"modalM": result.ModalM, "modalR": result.ModalR, "modalEps": result.ModalEps,
			}).Info("deaggregation complete")
		}
	}
	return nil
}
