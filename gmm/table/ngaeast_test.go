package table

import (
	"math"
	"testing"

	"github.com/usgs/nshmp-haz-sub005"
)

// Tests whether NewNGAEastUSGS supports PGA only.
func TestNGAEastUSGSSupportedIMTs(t *testing.T) {
	f, err := NewNGAEastUSGS()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f(nshmp.PGA); err != nil {
		t.Errorf("unexpected error for PGA: %v", err)
	}
	if _, err := f(nshmp.SA1P0); err == nil {
		t.Errorf("expected SA1P0 to be rejected")
	}
}

// Tests whether Calc returns a multi-scalar result with three branches
// whose weights sum to 1, and no scalar result.
func TestNGAEastUSGSMultiScalarWeights(t *testing.T) {
	f, err := NewNGAEastUSGS()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := f(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gm := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.5, RRup: 50})
	if !gm.IsMulti() {
		t.Fatalf("expected a multi-scalar result")
	}
	if len(gm.Multi.Means) != 3 || len(gm.Multi.MeanWeights) != 3 {
		t.Fatalf("expected 3 branches, got %d means and %d weights", len(gm.Multi.Means), len(gm.Multi.MeanWeights))
	}
	sum := 0.0
	for _, w := range gm.Multi.MeanWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected branch weights to sum to 1, got %v", sum)
	}
}

// Tests whether the three-piece sigma is flat below m1, flat above m2,
// and strictly monotonic between them.
func TestNGAEastSigmaHinges(t *testing.T) {
	if ngaEastSigma(4.0) != 0.75 {
		t.Errorf("expected sigmaLow below m1, got %v", ngaEastSigma(4.0))
	}
	if ngaEastSigma(5.0) != 0.75 {
		t.Errorf("expected sigmaLow at m1, got %v", ngaEastSigma(5.0))
	}
	if ngaEastSigma(6.5) != 0.55 {
		t.Errorf("expected sigmaHigh at m2, got %v", ngaEastSigma(6.5))
	}
	if ngaEastSigma(8.0) != 0.55 {
		t.Errorf("expected sigmaHigh above m2, got %v", ngaEastSigma(8.0))
	}
	mid := ngaEastSigma(5.75)
	if mid <= 0.55 || mid >= 0.75 {
		t.Errorf("expected a strictly interpolated sigma at the midpoint, got %v", mid)
	}
}

// Tests whether each branch's sigma tracks the same magnitude-dependent
// value, since all three branches share one sigma model.
func TestNGAEastUSGSSigmaSharedAcrossBranches(t *testing.T) {
	f, err := NewNGAEastUSGS()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := f(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gm := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 4.0, RRup: 50})
	want := ngaEastSigma(4.0)
	for i, s := range gm.Multi.Sigmas {
		if s != want {
			t.Errorf("branch %d: expected sigma %v, got %v", i, want, s)
		}
	}
}

// Tests whether distance is floored to 1 km for a very close rupture.
func TestNGAEastUSGSDistanceFloor(t *testing.T) {
	f, err := NewNGAEastUSGS()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := f(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at0 := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.0, RRup: 0})
	at1 := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.0, RRup: 1})
	for i := range at0.Multi.Means {
		if at0.Multi.Means[i] != at1.Multi.Means[i] {
			t.Errorf("branch %d: expected rRup=0 to be floored to the same result as rRup=1: %v vs %v", i, at0.Multi.Means[i], at1.Multi.Means[i])
		}
	}
}
