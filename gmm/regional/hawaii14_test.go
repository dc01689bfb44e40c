package regional

import (
	"testing"

	"github.com/usgs/nshmp-haz-sub005"
)

// Tests whether NewHawaii14 loads its coefficient table and supports the
// tabulated IMTs, rejecting anything else.
func TestHawaii14SupportedIMTs(t *testing.T) {
	f, coeffs, err := NewHawaii14()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, imt := range []nshmp.IMT{nshmp.PGA, nshmp.SA0P2, nshmp.SA1P0} {
		if !coeffs.Supports(imt) {
			t.Errorf("expected %s to be supported", imt)
		}
		if _, err := f(imt); err != nil {
			t.Errorf("%s: unexpected error: %v", imt, err)
		}
	}
	if _, err := f(nshmp.SA10P0); err == nil {
		t.Errorf("expected SA10P0 to be rejected")
	}
}

// Tests whether mean ground motion decreases with distance and is
// amplified on softer soil relative to reference rock, since c5 is
// negative.
func TestHawaii14DistanceAndSite(t *testing.T) {
	f, _, err := NewHawaii14()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := f(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	near := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.0, RRup: 10, Vs30: 760})
	far := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.0, RRup: 150, Vs30: 760})
	if far.Scalar.MeanLn >= near.Scalar.MeanLn {
		t.Errorf("expected mean to decrease with distance: near=%v far=%v", near.Scalar.MeanLn, far.Scalar.MeanLn)
	}

	rock := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.0, RRup: 20, Vs30: 760})
	soft := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.0, RRup: 20, Vs30: 250})
	if soft.Scalar.MeanLn <= rock.Scalar.MeanLn {
		t.Errorf("expected soft soil to amplify ground motion relative to rock: soft=%v rock=%v", soft.Scalar.MeanLn, rock.Scalar.MeanLn)
	}
}

// Tests whether the mean increases with magnitude across Mw 5, 6 and 7
// while the negative c2 coefficient bends the quadratic magnitude term,
// so the step from 6 to 7 is no larger than the step from 5 to 6.
func TestHawaii14MagnitudeCurvature(t *testing.T) {
	f, _, err := NewHawaii14()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := f(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at5 := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 5.0, RRup: 20, Vs30: 760})
	at6 := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 6.0, RRup: 20, Vs30: 760})
	at7 := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 7.0, RRup: 20, Vs30: 760})
	if !(at5.Scalar.MeanLn < at6.Scalar.MeanLn && at6.Scalar.MeanLn < at7.Scalar.MeanLn) {
		t.Errorf("expected mean to increase with magnitude across 5,6,7: %v, %v, %v", at5.Scalar.MeanLn, at6.Scalar.MeanLn, at7.Scalar.MeanLn)
	}
	if at7.Scalar.MeanLn-at6.Scalar.MeanLn > at6.Scalar.MeanLn-at5.Scalar.MeanLn {
		t.Errorf("expected the 6-to-7 step to be no larger than the 5-to-6 step: %v, %v, %v", at5.Scalar.MeanLn, at6.Scalar.MeanLn, at7.Scalar.MeanLn)
	}
}

// Tests whether Constraints reports the documented magnitude and
// distance ranges.
func TestHawaii14Constraints(t *testing.T) {
	f, _, err := NewHawaii14()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := f(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := gmm.Constraints()
	if c.Mw.Min != 4.0 || c.Mw.Max != 7.5 {
		t.Errorf("unexpected Mw range: %+v", c.Mw)
	}
	if c.RRup.Min != 0 || c.RRup.Max != 200 {
		t.Errorf("unexpected RRup range: %+v", c.RRup)
	}
}
