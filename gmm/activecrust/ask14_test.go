package activecrust

import (
	"testing"

	"github.com/usgs/nshmp-haz-sub005"
)

// Tests whether NewASK14 loads its coefficient table, supports PGA, and
// rejects an IMT outside the table.
func TestASK14SupportedIMTs(t *testing.T) {
	f, coeffs, err := NewASK14()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !coeffs.Supports(nshmp.PGA) {
		t.Fatalf("expected PGA support")
	}
	if _, err := f(nshmp.PGA); err != nil {
		t.Errorf("unexpected error instantiating for PGA: %v", err)
	}
	if _, err := f(nshmp.SA10P0); err == nil {
		t.Errorf("expected SA10P0 to be rejected")
	}
}

// Tests whether mean ground motion decreases with distance and increases
// with magnitude.
func TestASK14Monotonicity(t *testing.T) {
	f, _, err := NewASK14()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := f(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	near := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.5, RRup: 10, RX: 0, Vs30: 760, ZTop: 5})
	far := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.5, RRup: 100, RX: 0, Vs30: 760, ZTop: 5})
	if far.Scalar.MeanLn >= near.Scalar.MeanLn {
		t.Errorf("expected mean to decrease with distance: near=%v far=%v", near.Scalar.MeanLn, far.Scalar.MeanLn)
	}

	small := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 5.0, RRup: 30, Vs30: 760, ZTop: 5})
	large := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 8.0, RRup: 30, Vs30: 760, ZTop: 5})
	if large.Scalar.MeanLn <= small.Scalar.MeanLn {
		t.Errorf("expected mean to increase with magnitude: small=%v large=%v", small.Scalar.MeanLn, large.Scalar.MeanLn)
	}
}

// Tests whether the hanging-wall term only contributes for a positive rX
// near a shallow, sufficiently large rupture.
func TestASK14HangingWallTerm(t *testing.T) {
	if v := hangingWallTerm(nshmp.GmmInput{RX: 10, ZTop: 1, Mw: 6.5}, 8, 0.2); v == 0 {
		t.Errorf("expected a nonzero hanging-wall term for a qualifying rupture")
	}
	if v := hangingWallTerm(nshmp.GmmInput{RX: -10, ZTop: 1, Mw: 6.5}, 8, 0.2); v != 0 {
		t.Errorf("expected zero hanging-wall term for a footwall site, got %v", v)
	}
	if v := hangingWallTerm(nshmp.GmmInput{RX: 10, ZTop: 20, Mw: 6.5}, 8, 0.2); v != 0 {
		t.Errorf("expected zero hanging-wall term for a deep rupture, got %v", v)
	}
}

// Tests whether Constraints narrows Mw/RRup/Vs30 from the default range.
func TestASK14Constraints(t *testing.T) {
	f, _, err := NewASK14()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := f(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := gmm.Constraints()
	if c.Mw.Max != 8.5 || c.RRup.Max != 300 || c.Vs30.Min != 180 {
		t.Errorf("unexpected constraints: %+v", c)
	}
}
