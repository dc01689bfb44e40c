package nshmp

import (
	"math"
	"testing"
)

// Tests whether FromPeriod resolves the SA1P0 constant by its period and
// rejects an untabulated period.
func TestFromPeriod(t *testing.T) {
	imt, err := FromPeriod(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !imt.Equal(SA1P0) {
		t.Errorf("expected SA1P0, got %s", imt)
	}
	if _, err := FromPeriod(1.234); err == nil {
		t.Errorf("expected error for untabulated period")
	}
}

// Tests whether Frequency special-cases PGA and derives from Period
// otherwise.
func TestIMTFrequency(t *testing.T) {
	if f := PGA.Frequency(); f != 100 {
		t.Errorf("expected PGA frequency 100, got %v", f)
	}
	if f := SA1P0.Frequency(); f != 1.0 {
		t.Errorf("expected SA1P0 frequency 1.0, got %v", f)
	}
	if f := SA0P5.Frequency(); math.Abs(f-2.0) > 1e-9 {
		t.Errorf("expected SA0P5 frequency 2.0, got %v", f)
	}
	if !math.IsNaN(PGV.Frequency()) {
		t.Errorf("expected PGV frequency to be NaN, got %v", PGV.Frequency())
	}
}

// Tests whether AllIMTs lists PGA and PGV first, followed by every SA
// period, with no duplicates.
func TestAllIMTs(t *testing.T) {
	if AllIMTs[0] != PGA || AllIMTs[1] != PGV {
		t.Fatalf("expected PGA, PGV first, got %v, %v", AllIMTs[0], AllIMTs[1])
	}
	if len(AllIMTs) != 2+len(saPeriods) {
		t.Errorf("expected %d IMTs, got %d", 2+len(saPeriods), len(AllIMTs))
	}
	seen := map[string]bool{}
	for _, imt := range AllIMTs {
		if seen[imt.String()] {
			t.Errorf("duplicate IMT %s in AllIMTs", imt)
		}
		seen[imt.String()] = true
	}
}

// Tests whether IMT.Equal compares by label and IsSA reports correctly.
func TestIMTEqualAndIsSA(t *testing.T) {
	if !PGA.Equal(PGA) {
		t.Errorf("expected PGA to equal itself")
	}
	if PGA.Equal(PGV) {
		t.Errorf("expected PGA and PGV to differ")
	}
	if PGA.IsSA() || PGV.IsSA() {
		t.Errorf("expected PGA and PGV to not be SA")
	}
	if !SA1P0.IsSA() {
		t.Errorf("expected SA1P0 to be SA")
	}
}
