package subduction

import (
	"testing"

	"github.com/usgs/nshmp-haz-sub005"
)

// Tests whether NewBCHydro12 returns distinct interface/slab factories
// and both support PGA.
func TestBCHydro12Flavors(t *testing.T) {
	interfaceFactory, slabFactory, coeffs, err := NewBCHydro12()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !coeffs.Supports(nshmp.PGA) {
		t.Fatalf("expected PGA support")
	}
	iface, err := interfaceFactory(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slab, err := slabFactory(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iface.Name() == slab.Name() {
		t.Errorf("expected distinct display names for interface and slab")
	}
}

// Tests whether interface and slab diverge because of the differing
// magnitude-scaling hinge and depth term, for otherwise identical inputs.
func TestBCHydro12FlavorsDiverge(t *testing.T) {
	interfaceFactory, slabFactory, _, err := NewBCHydro12()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	iface, err := interfaceFactory(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slab, err := slabFactory(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := nshmp.GmmInput{Mw: 7.5, RRup: 100, Vs30: 760, ZTop: 40}
	ifaceGm := iface.Calc(nshmp.PGA, in)
	slabGm := slab.Calc(nshmp.PGA, in)
	if ifaceGm.Scalar.MeanLn == slabGm.Scalar.MeanLn {
		t.Errorf("expected interface and slab to diverge for the same input")
	}
}

// Tests whether the site term below Vlin, which adds the PGA-dependent
// nonlinear part, differs from the pure linear term at Vlin.
func TestBCHydro12NonlinearSiteTerm(t *testing.T) {
	vlin, b, coef := 865.1, -1.186, -0.0188
	linear := nonlinearSiteTerm(vlin, 0.3, vlin, b, coef)
	below := nonlinearSiteTerm(300, 0.3, vlin, b, coef)
	if below == linear {
		t.Errorf("expected the soft-soil nonlinear term to differ from the at-Vlin linear term")
	}
}

// Tests whether mean ground motion decreases with distance.
func TestBCHydro12Monotonicity(t *testing.T) {
	interfaceFactory, _, _, err := NewBCHydro12()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gmm, err := interfaceFactory(nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	near := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 7.5, RRup: 20, Vs30: 760, ZTop: 30})
	far := gmm.Calc(nshmp.PGA, nshmp.GmmInput{Mw: 7.5, RRup: 300, Vs30: 760, ZTop: 30})
	if far.Scalar.MeanLn >= near.Scalar.MeanLn {
		t.Errorf("expected mean to decrease with distance: near=%v far=%v", near.Scalar.MeanLn, far.Scalar.MeanLn)
	}
}
