package hazutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/usgs/nshmp-haz-sub005"
)

type stubGMM struct{}

func (stubGMM) Name() string                  { return "stub" }
func (stubGMM) Constraints() nshmp.Constraints { return nshmp.DefaultConstraints() }
func (stubGMM) SupportedIMTs() []nshmp.IMT    { return []nshmp.IMT{nshmp.PGA} }
func (stubGMM) Calc(imt nshmp.IMT, in nshmp.GmmInput) nshmp.GroundMotion {
	return nshmp.GroundMotion{Scalar: nshmp.ScalarGroundMotion{MeanLn: -1, SigmaLn: 0.6}}
}

func stubRegistry(t *testing.T) *nshmp.Registry {
	t.Helper()
	r := nshmp.NewRegistry()
	if err := r.Register(nshmp.Meta{
		ID:   nshmp.Identifier("STUB"),
		Name: "Stub",
		Factory: func(imt nshmp.IMT) (nshmp.GroundMotionModel, error) {
			return stubGMM{}, nil
		},
	}); err != nil {
		t.Fatalf("registering stub: %v", err)
	}
	return r
}

// Tests whether the registered exceedance_model and truncation_level
// defaults survive an empty merge.
func TestMergeConfigDefaultsOnly(t *testing.T) {
	v, err := mergeConfig(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.GetString("exceedance_model"); got != "lognormal_truncated_nsigma" {
		t.Errorf("unexpected default exceedance_model: %q", got)
	}
	if got := v.GetFloat64("truncation_level"); got != 3.0 {
		t.Errorf("unexpected default truncation_level: %v", got)
	}
}

// Tests whether model config then override config both take precedence over
// defaults, in that order.
func TestMergeConfigPrecedence(t *testing.T) {
	modelConfig := map[string]interface{}{"truncation_level": 2.0, "max_source_distance": 50.0}

	dir := t.TempDir()
	overridePath := filepath.Join(dir, "override.json")
	if err := os.WriteFile(overridePath, []byte(`{"truncation_level":2.5}`), 0o644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	v, err := mergeConfig(modelConfig, overridePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.GetFloat64("truncation_level"); got != 2.5 {
		t.Errorf("expected override to win, got %v", got)
	}
	if got := v.GetFloat64("max_source_distance"); got != 50.0 {
		t.Errorf("expected model config to survive, got %v", got)
	}
}

// Tests whether an unrecognized IMT label fails fast.
func TestResolveIMTRejectsUnknown(t *testing.T) {
	if _, err := resolveIMT("NOT_A_REAL_IMT"); err == nil {
		t.FailNow()
	}
}

// Tests whether a known IMT label resolves to the matching IMT value.
func TestResolveIMTKnown(t *testing.T) {
	imt, err := resolveIMT(nshmp.PGA.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !imt.Equal(nshmp.PGA) {
		t.Errorf("expected PGA, got %v", imt)
	}
}

// Tests whether each recognized exceedance_model label resolves without error.
func TestResolveExceedanceModel(t *testing.T) {
	for _, label := range []string{"lognormal", "lognormal_truncated_nsigma", "nshmp_ceus_max_intensity"} {
		v, err := mergeConfig(map[string]interface{}{"exceedance_model": label}, "")
		if err != nil {
			t.Fatalf("merging config for %q: %v", label, err)
		}
		if _, err := resolveExceedanceModel(v); err != nil {
			t.Errorf("resolving %q: %v", label, err)
		}
	}
}

// Tests whether an unrecognized exceedance_model label fails fast.
func TestResolveExceedanceModelRejectsUnknown(t *testing.T) {
	v, err := mergeConfig(map[string]interface{}{"exceedance_model": "not_a_model"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := resolveExceedanceModel(v); err == nil {
		t.FailNow()
	}
}

// Tests whether curve_output_types resolves known labels and rejects unknowns.
func TestResolveCurveOutputTypes(t *testing.T) {
	types, err := resolveCurveOutputTypes([]string{"TOTAL", "SOURCE", "GMM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !types[nshmp.CurveTotal] || !types[nshmp.CurveSource] || !types[nshmp.CurveGmm] {
		t.Errorf("unexpected types: %+v", types)
	}
	if _, err := resolveCurveOutputTypes([]string{"BOGUS"}); err == nil {
		t.FailNow()
	}
}

// Tests whether resolveOutputDirectory creates a fresh directory and avoids
// clobbering an existing one by appending a numeric suffix.
func TestResolveOutputDirectoryAvoidsClobber(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "out")

	first, err := resolveOutputDirectory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != path {
		t.Errorf("expected first call to use %q, got %q", path, first)
	}

	second, err := resolveOutputDirectory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != path+"-1" {
		t.Errorf("expected second call to use %q, got %q", path+"-1", second)
	}
	if _, err := os.Stat(second); err != nil {
		t.Errorf("expected %q to exist: %v", second, err)
	}
}

// Tests whether buildPipelineConfig fails fast on an unregistered gmm id.
func TestBuildPipelineConfigRejectsUnknownGmm(t *testing.T) {
	v, err := mergeConfig(map[string]interface{}{
		"gmm_ids":           []string{"NOT_REGISTERED"},
		"output_directory":  filepath.Join(t.TempDir(), "out"),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := buildPipelineConfig(v, stubRegistry(t)); err == nil {
		t.FailNow()
	}
}

// Tests whether buildPipelineConfig succeeds end to end against a registered
// stub model and resolves every field.
func TestBuildPipelineConfigSucceeds(t *testing.T) {
	v, err := mergeConfig(map[string]interface{}{
		"gmm_ids":           []string{"STUB"},
		"output_directory":  filepath.Join(t.TempDir(), "out"),
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pcfg, err := buildPipelineConfig(v, stubRegistry(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pcfg.IMTs) != 1 || !pcfg.IMTs[0].Equal(nshmp.PGA) {
		t.Errorf("unexpected IMTs: %+v", pcfg.IMTs)
	}
	if len(pcfg.GroundMotionLevels[nshmp.PGA]) == 0 {
		t.Errorf("expected nonempty ground motion levels")
	}
}

// Tests whether effectiveSettings round-trips every recognized option key
// without relying on a bulk settings dump.
func TestEffectiveSettingsCoversKnownKeys(t *testing.T) {
	v, err := mergeConfig(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	settings := effectiveSettings(v)
	for _, key := range []string{
		"imts", "gmm_ids", "exceedance_model", "truncation_level",
		"max_source_distance", "curve_output_types", "flush_limit",
		"output_directory", "thread_count", "ordered_output",
		"output_as_poisson_probability", "poisson_years",
		"shutdown_grace_seconds", "deagg",
	} {
		if _, ok := settings[key]; !ok {
			t.Errorf("missing key %q in effective settings", key)
		}
	}
	deaggSettings, ok := settings["deagg"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected deagg settings to be a map, got %T", settings["deagg"])
	}
	if deaggSettings["mmin"] != 5.0 {
		t.Errorf("unexpected deagg.mmin: %v", deaggSettings["mmin"])
	}
}

// Tests the 20-point logarithmic sweep spans the documented endpoints.
func TestDefaultGroundMotionLevels(t *testing.T) {
	levels := defaultGroundMotionLevels()
	if len(levels) != 20 {
		t.Fatalf("expected 20 levels, got %d", len(levels))
	}
	if math.Abs(levels[0]-0.0025) > 1e-9 {
		t.Errorf("unexpected first level: %v", levels[0])
	}
	if math.Abs(levels[len(levels)-1]-7.5) > 1e-9 {
		t.Errorf("unexpected last level: %v", levels[len(levels)-1])
	}
}
