package activecrust

import (
	"math"
	"testing"
)

// Tests whether faultStyleTerm returns a one-hot indicator for each fault
// style bucket, putting Unknown on the unspecified (U) term.
func TestFaultStyleTerm(t *testing.T) {
	u, ss, ns, rs := faultStyleTerm(0) // strike-slip
	if ss != 1 || u+ns+rs != 0 {
		t.Errorf("expected strike-slip one-hot, got u=%v ss=%v ns=%v rs=%v", u, ss, ns, rs)
	}
	u, ss, ns, rs = faultStyleTerm(-90) // normal
	if ns != 1 || u+ss+rs != 0 {
		t.Errorf("expected normal one-hot, got u=%v ss=%v ns=%v rs=%v", u, ss, ns, rs)
	}
	u, ss, ns, rs = faultStyleTerm(90) // reverse
	if rs != 1 || u+ss+ns != 0 {
		t.Errorf("expected reverse one-hot, got u=%v ss=%v ns=%v rs=%v", u, ss, ns, rs)
	}
	u, ss, ns, rs = faultStyleTerm(math.NaN()) // unknown
	if u != 1 || ss+ns+rs != 0 {
		t.Errorf("expected unknown one-hot on U, got u=%v ss=%v ns=%v rs=%v", u, ss, ns, rs)
	}
}

// Tests whether magnitudeTerm is 0 at the hinge magnitude and nonzero on
// both legs away from it.
func TestMagnitudeTerm(t *testing.T) {
	mh, c1, c2, c3 := 6.5, -0.1, -0.2, -0.5
	atHinge := magnitudeTerm(mh, mh, c1, c2, c3)
	if atHinge != 0 {
		t.Errorf("expected 0 at the hinge, got %v", atHinge)
	}
	// At mh-0.5 these coefficients cancel exactly (0.05 - 0.05), so the
	// lower leg is probed one unit below the hinge: 0.1 - 0.2 = -0.1.
	below := magnitudeTerm(mh-1.0, mh, c1, c2, c3)
	above := magnitudeTerm(mh+0.5, mh, c1, c2, c3)
	if below == 0 || above == 0 {
		t.Errorf("expected nonzero terms away from the hinge: below=%v above=%v", below, above)
	}
}

// Tests whether linearSiteTerm caps Vs30 at v2 rather than extrapolating
// beyond it.
func TestLinearSiteTermCap(t *testing.T) {
	blin, v2, vref := -0.36, 760.0, 760.0
	atCap := linearSiteTerm(v2, blin, v2, vref)
	beyond := linearSiteTerm(2000, blin, v2, vref)
	if atCap != beyond {
		t.Errorf("expected Vs30 beyond v2 to be capped: atCap=%v beyond=%v", atCap, beyond)
	}
}

// Tests whether nonlinearSiteTerm vanishes above v2 (site behaves
// linearly) and is nonzero for softer soil.
func TestNonlinearSiteTerm(t *testing.T) {
	if v := nonlinearSiteTerm(2000, 0.2, -0.6, -0.5, 180, 300); v != 0 {
		t.Errorf("expected 0 above v2, got %v", v)
	}
	if v := nonlinearSiteTerm(250, 0.2, -0.6, -0.5, 180, 300); v == 0 {
		t.Errorf("expected a nonzero nonlinear term for soft soil")
	}
}

// Tests whether twoPieceSigma is flat above m2, widened below m1, and
// interpolates in between.
func TestTwoPieceSigma(t *testing.T) {
	base, m1, m2, lowAdd := 0.5, 5.0, 7.0, 0.1
	if s := twoPieceSigma(4.0, base, m1, m2, lowAdd); s != base+lowAdd {
		t.Errorf("expected widened sigma below m1, got %v", s)
	}
	if s := twoPieceSigma(8.0, base, m1, m2, lowAdd); s != base {
		t.Errorf("expected flat sigma above m2, got %v", s)
	}
	mid := twoPieceSigma(6.0, base, m1, m2, lowAdd)
	if mid <= base || mid >= base+lowAdd {
		t.Errorf("expected interpolated sigma strictly between base and base+lowAdd, got %v", mid)
	}
}
