package nshmp

import (
	"errors"
	"math"
	"testing"

	"github.com/usgs/nshmp-haz-sub005/errs"
)

// Tests whether WithDefaults populates every field and Build succeeds
// without requiring any further setters.
func TestGmmInputBuilderWithDefaults(t *testing.T) {
	in, err := NewGmmInputBuilder().WithDefaults().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Mw != 6.5 || in.RJB != 10 || in.RRup != 10.3 || in.RX != 10 {
		t.Errorf("unexpected distance/magnitude defaults: %+v", in)
	}
	if in.Dip != 90 || in.Width != 14 || in.ZTop != 0.5 || in.ZHyp != 7.5 {
		t.Errorf("unexpected geometry defaults: %+v", in)
	}
	if in.Vs30 != 760 || !in.VsInf {
		t.Errorf("unexpected site defaults: %+v", in)
	}
	if !math.IsNaN(in.Z1p0) || !math.IsNaN(in.Z2p5) {
		t.Errorf("expected Z1p0/Z2p5 to default to NaN, got %v/%v", in.Z1p0, in.Z2p5)
	}
}

// Tests whether setting every field individually, without WithDefaults,
// also satisfies Build.
func TestGmmInputBuilderExplicitFields(t *testing.T) {
	in, err := NewGmmInputBuilder().
		Mw(7.2).RJB(5).RRup(5.3).RX(5).
		Dip(45).Width(20).ZTop(1).ZHyp(8).Rake(90).
		Vs30(400).VsInf(false).Z1p0(0.1).Z2p5(1.5).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Mw != 7.2 || in.Rake != 90 || in.VsInf {
		t.Errorf("unexpected built input: %+v", in)
	}
}

// Tests whether Build fails with ErrStateError when a field is missing.
func TestGmmInputBuilderRejectsIncomplete(t *testing.T) {
	_, err := NewGmmInputBuilder().Mw(6.5).Build()
	if !errors.Is(err, errs.ErrStateError) {
		t.Fatalf("expected ErrStateError for incomplete builder, got %v", err)
	}
}

// Tests whether setting the same field twice fails Build with
// ErrStateError, even if every field is eventually set.
func TestGmmInputBuilderRejectsDoubleSet(t *testing.T) {
	b := NewGmmInputBuilder().WithDefaults().Mw(7.0).Mw(7.1)
	_, err := b.Build()
	if !errors.Is(err, errs.ErrStateError) {
		t.Fatalf("expected ErrStateError for double-set field, got %v", err)
	}
}

// Tests whether a builder can be reused after a successful Build.
func TestGmmInputBuilderReusableAfterBuild(t *testing.T) {
	b := NewGmmInputBuilder().WithDefaults()
	first, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.WithDefaults().Build()
	if err != nil {
		t.Fatalf("unexpected error building a second time: %v", err)
	}
	if first.Mw != second.Mw {
		t.Errorf("expected reused builder to produce equivalent input")
	}
}
