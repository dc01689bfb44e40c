package nshmp

import (
	"errors"
	"strings"
	"testing"

	"github.com/usgs/nshmp-haz-sub005/errs"
)

const testCoeffCSV = `Imt, c1, c2
PGA, 1.5, -0.5
SA1P0, 2.0, -1.0

`

// Tests whether LoadCoefficients parses rows into per-IMT coefficient
// maps, skipping blank lines and trimming whitespace.
func TestLoadCoefficients(t *testing.T) {
	c, err := LoadCoefficients(strings.NewReader(testCoeffCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Supports(PGA) || !c.Supports(SA1P0) {
		t.Fatalf("expected PGA and SA1P0 to be supported")
	}
	if c.Supports(SA0P5) {
		t.Errorf("expected SA0P5 to be unsupported")
	}
	v, err := c.Coefficient(PGA, "c1")
	if err != nil || v != 1.5 {
		t.Errorf("expected c1=1.5 for PGA, got %v (err=%v)", v, err)
	}
	row, ok := c.Row(SA1P0)
	if !ok || row["c2"] != -1.0 {
		t.Errorf("expected SA1P0 row c2=-1.0, got %+v ok=%v", row, ok)
	}
	if len(c.IMTs()) != 2 {
		t.Errorf("expected 2 IMTs, got %d", len(c.IMTs()))
	}
}

// Tests whether LoadCoefficients rejects a header that doesn't start with
// "Imt".
func TestLoadCoefficientsRejectsBadHeader(t *testing.T) {
	_, err := LoadCoefficients(strings.NewReader("Foo, c1\nPGA, 1\n"))
	if !errors.Is(err, errs.ErrResourceLoadFailure) {
		t.Fatalf("expected ErrResourceLoadFailure, got %v", err)
	}
}

// Tests whether LoadCoefficients rejects a row with an unrecognized IMT
// label.
func TestLoadCoefficientsRejectsUnknownIMT(t *testing.T) {
	_, err := LoadCoefficients(strings.NewReader("Imt, c1\nNOTANIMT, 1\n"))
	if !errors.Is(err, errs.ErrResourceLoadFailure) {
		t.Fatalf("expected ErrResourceLoadFailure, got %v", err)
	}
}

// Tests whether Coefficient reports ErrUnsupportedIMT for an IMT the
// container has no row for, and a load failure for a missing column name.
func TestCoefficientMissingCases(t *testing.T) {
	c, err := LoadCoefficients(strings.NewReader(testCoeffCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Coefficient(SA0P5, "c1"); !errors.Is(err, errs.ErrUnsupportedIMT) {
		t.Errorf("expected ErrUnsupportedIMT for unsupported IMT, got %v", err)
	}
	if _, err := c.Coefficient(PGA, "nope"); !errors.Is(err, errs.ErrResourceLoadFailure) {
		t.Errorf("expected ErrResourceLoadFailure for missing coefficient name, got %v", err)
	}
}
