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

// Package hazutil wires the hazard and deagg CLI commands together: model
// and site-file loading, configuration merging via lnashier/viper, output
// directory management, and dispatch into the pipeline and deagg packages.
// The command tree follows inmaputil.Root's structure (cfg.Root with named
// subcommands); each subcommand's RunE merges the configuration itself.
package hazutil

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"

	"github.com/usgs/nshmp-haz-sub005"
	"github.com/usgs/nshmp-haz-sub005/catalog"
	"github.com/usgs/nshmp-haz-sub005/deagg"
	"github.com/usgs/nshmp-haz-sub005/errs"
	"github.com/usgs/nshmp-haz-sub005/pipeline"
)

// Cfg holds the merged run configuration plus the cobra command tree, in
// the shape of inmaputil.Cfg.
type Cfg struct {
	*viper.Viper

	Root, hazardCmd, deaggCmd *cobra.Command
}

// defaultGroundMotionLevels is the 20-point logarithmic sweep from 0.0025
// to 7.5 g named as the PGA-like default in section 6.
func defaultGroundMotionLevels() []float64 {
	const n = 20
	lo, hi := math.Log(0.0025), math.Log(7.5)
	levels := make([]float64, n)
	for i := 0; i < n; i++ {
		levels[i] = math.Exp(lo + float64(i)*(hi-lo)/float64(n-1))
	}
	return levels
}

// setDefaults populates v with every recognized option's default value,
// mirroring inmaputil's InitializeConfig pattern of registering option
// defaults on the Viper instance up front.
func setDefaults(v *viper.Viper) {
	v.SetDefault("imts", []string{"PGA"})
	v.SetDefault("gmm_ids", []string{})
	v.SetDefault("exceedance_model", "lognormal_truncated_nsigma")
	v.SetDefault("truncation_level", 3.0)
	v.SetDefault("max_source_distance", 200.0)
	v.SetDefault("curve_output_types", []string{"TOTAL"})
	v.SetDefault("flush_limit", 20)
	v.SetDefault("output_directory", "out")
	v.SetDefault("thread_count", "ALL")
	v.SetDefault("ordered_output", false)
	v.SetDefault("output_as_poisson_probability", false)
	v.SetDefault("poisson_years", 1.0)
	v.SetDefault("shutdown_grace_seconds", 30.0)
	v.SetDefault("deagg.mmin", 5.0)
	v.SetDefault("deagg.mmax", 9.0)
	v.SetDefault("deagg.deltam", 0.5)
	v.SetDefault("deagg.rmax", 300.0)
	v.SetDefault("deagg.deltar", 20.0)
	v.SetDefault("deagg.log_distance_bins", false)
	v.SetDefault("deagg.epsmin", -3.0)
	v.SetDefault("deagg.epsmax", 3.0)
	v.SetDefault("deagg.deltaeps", 0.5)
}

// mergeConfig layers modelConfig (the model's own default config.json) and
// then overrideConfig (the CLI's optional [config] argument) on top of the
// registered defaults, mirroring the CLI surface's documented precedence:
// defaults < model config < override config.
func mergeConfig(modelConfig map[string]interface{}, overridePath string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	for k, val := range modelConfig {
		v.Set(k, val)
	}
	if overridePath != "" {
		b, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading override config %s: %v", errs.ErrIOFailure, overridePath, err)
		}
		var override map[string]interface{}
		if err := json.Unmarshal(b, &override); err != nil {
			return nil, fmt.Errorf("%w: parsing override config %s: %v", errs.ErrInvalidInput, overridePath, err)
		}
		for k, val := range override {
			v.Set(k, val)
		}
	}
	return v, nil
}

// buildPipelineConfig resolves v into a pipeline.Config, failing fast (per
// section 7's UnsupportedIMT contract) if any requested IMT isn't
// registered.
func buildPipelineConfig(v *viper.Viper, registry *nshmp.Registry) (pipeline.Config, error) {
	imtLabels := v.GetStringSlice("imts")
	imts := make([]nshmp.IMT, 0, len(imtLabels))
	for _, label := range imtLabels {
		imt, err := resolveIMT(label)
		if err != nil {
			return pipeline.Config{}, err
		}
		imts = append(imts, imt)
	}

	gmmLabels := v.GetStringSlice("gmm_ids")
	if len(gmmLabels) == 0 {
		return pipeline.Config{}, fmt.Errorf("%w: no gmm_ids configured", errs.ErrInvalidInput)
	}
	gmmIDs := make([]nshmp.Identifier, len(gmmLabels))
	for i, label := range gmmLabels {
		id := nshmp.Identifier(label)
		if _, ok := registry.Meta(id); !ok {
			return pipeline.Config{}, fmt.Errorf("%w: unrecognized gmm id %q", errs.ErrUnsupportedIMT, label)
		}
		gmmIDs[i] = id
	}
	// Fail-fast IMT support check: every (gmm, imt) pair must instantiate
	// before any site is processed.
	for _, id := range gmmIDs {
		for _, imt := range imts {
			if _, err := registry.Instance(id, imt); err != nil {
				return pipeline.Config{}, fmt.Errorf("%w: %s does not support %s: %v", errs.ErrUnsupportedIMT, id, imt, err)
			}
		}
	}

	em, err := resolveExceedanceModel(v)
	if err != nil {
		return pipeline.Config{}, err
	}

	curveTypes, err := resolveCurveOutputTypes(v.GetStringSlice("curve_output_types"))
	if err != nil {
		return pipeline.Config{}, err
	}

	levels := map[nshmp.IMT][]float64{}
	for _, imt := range imts {
		levels[imt] = defaultGroundMotionLevels()
	}

	outputDir, err := resolveOutputDirectory(v.GetString("output_directory"))
	if err != nil {
		return pipeline.Config{}, err
	}

	return pipeline.Config{
		IMTs:                       imts,
		GmmIDs:                     gmmIDs,
		Registry:                   registry,
		ExceedanceModel:            em,
		MaxSourceDistanceKm:        v.GetFloat64("max_source_distance"),
		CurveOutputTypes:           curveTypes,
		GroundMotionLevels:         levels,
		FlushLimit:                 v.GetInt("flush_limit"),
		OutputDirectory:            outputDir,
		ThreadCount:                v.GetString("thread_count"),
		OrderedOutput:              v.GetBool("ordered_output"),
		OutputAsPoissonProbability: v.GetBool("output_as_poisson_probability"),
		PoissonYears:               v.GetFloat64("poisson_years"),
	}, nil
}

func buildDeaggBinConfig(v *viper.Viper) deagg.BinConfig {
	return deagg.BinConfig{
		Mmin: v.GetFloat64("deagg.mmin"), Mmax: v.GetFloat64("deagg.mmax"), DeltaM: v.GetFloat64("deagg.deltam"),
		Rmax: v.GetFloat64("deagg.rmax"), DeltaR: v.GetFloat64("deagg.deltar"),
		LogDistanceBins: v.GetBool("deagg.log_distance_bins"),
		EpsMin:          v.GetFloat64("deagg.epsmin"), EpsMax: v.GetFloat64("deagg.epsmax"), DeltaEps: v.GetFloat64("deagg.deltaeps"),
	}
}

func resolveIMT(label string) (nshmp.IMT, error) {
	for _, imt := range nshmp.AllIMTs {
		if imt.String() == label {
			return imt, nil
		}
	}
	return nshmp.IMT{}, fmt.Errorf("%w: unrecognized IMT label %q", errs.ErrUnsupportedIMT, label)
}

func resolveExceedanceModel(v *viper.Viper) (nshmp.ExceedanceModel, error) {
	switch v.GetString("exceedance_model") {
	case "lognormal":
		return nshmp.Lognormal{}, nil
	case "lognormal_truncated_nsigma":
		return nshmp.TruncatedLognormal{TruncationLevel: v.GetFloat64("truncation_level")}, nil
	case "nshmp_ceus_max_intensity":
		return nshmp.CeusMaxIntensity{
			Inner:  nshmp.TruncatedLognormal{TruncationLevel: v.GetFloat64("truncation_level")},
			MaxLn:  math.Log(1.5),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized exceedance_model %q", errs.ErrInvalidInput, v.GetString("exceedance_model"))
	}
}

func resolveCurveOutputTypes(labels []string) (map[nshmp.CurveOutputType]bool, error) {
	out := map[nshmp.CurveOutputType]bool{}
	for _, label := range labels {
		switch nshmp.CurveOutputType(label) {
		case nshmp.CurveTotal:
			out[nshmp.CurveTotal] = true
		case nshmp.CurveSource:
			out[nshmp.CurveSource] = true
		case nshmp.CurveGmm:
			out[nshmp.CurveGmm] = true
		case nshmp.CurveSourceLogicTreeBranch:
			out[nshmp.CurveSourceLogicTreeBranch] = true
		default:
			return nil, fmt.Errorf("%w: unrecognized curve_output_types entry %q", errs.ErrInvalidInput, label)
		}
	}
	return out, nil
}

// resolveOutputDirectory implements the "sibling with a numeric suffix"
// non-clobbering rule: if path already exists, path-1, path-2, ... are
// tried until one doesn't.
func resolveOutputDirectory(path string) (string, error) {
	candidate := path
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			break
		}
		candidate = fmt.Sprintf("%s-%d", path, i)
	}
	if err := os.MkdirAll(candidate, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating output directory %s: %v", errs.ErrIOFailure, candidate, err)
	}
	return candidate, nil
}

// effectiveSettings builds a plain map of every recognized option's
// resolved value, keyed the same way setDefaults registers them. Built
// from individual Get calls rather than a bulk dump, since every
// recognized option is already named here.
func effectiveSettings(v *viper.Viper) map[string]interface{} {
	return map[string]interface{}{
		"imts":                          v.GetStringSlice("imts"),
		"gmm_ids":                       v.GetStringSlice("gmm_ids"),
		"exceedance_model":              v.GetString("exceedance_model"),
		"truncation_level":              v.GetFloat64("truncation_level"),
		"max_source_distance":           v.GetFloat64("max_source_distance"),
		"curve_output_types":            v.GetStringSlice("curve_output_types"),
		"flush_limit":                   v.GetInt("flush_limit"),
		"output_directory":              v.GetString("output_directory"),
		"thread_count":                  v.GetString("thread_count"),
		"ordered_output":                v.GetBool("ordered_output"),
		"output_as_poisson_probability": v.GetBool("output_as_poisson_probability"),
		"poisson_years":                 v.GetFloat64("poisson_years"),
		"shutdown_grace_seconds":        v.GetFloat64("shutdown_grace_seconds"),
		"deagg": map[string]interface{}{
			"mmin": v.GetFloat64("deagg.mmin"), "mmax": v.GetFloat64("deagg.mmax"), "deltam": v.GetFloat64("deagg.deltam"),
			"rmax": v.GetFloat64("deagg.rmax"), "deltar": v.GetFloat64("deagg.deltar"),
			"log_distance_bins": v.GetBool("deagg.log_distance_bins"),
			"epsmin":            v.GetFloat64("deagg.epsmin"), "epsmax": v.GetFloat64("deagg.epsmax"), "deltaeps": v.GetFloat64("deagg.deltaeps"),
		},
	}
}

// writeEffectiveConfig persists the merged configuration as config.json in
// outputDir, per the documented persisted-state layout.
func writeEffectiveConfig(v *viper.Viper, outputDir string) error {
	b, err := json.MarshalIndent(effectiveSettings(v), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling effective config: %v", errs.ErrIOFailure, err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "config.json"), b, 0o644); err != nil {
		return fmt.Errorf("%w: writing effective config: %v", errs.ErrIOFailure, err)
	}
	return nil
}

// buildRegistry returns the model catalog's populated registry. Defined
// here so every command shares one construction path.
func buildRegistry() (*nshmp.Registry, error) {
	return catalog.New()
}
