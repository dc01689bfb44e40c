package nshmp

import "testing"

// Tests whether Range.Contains is inclusive at both ends by default, and
// exclusive at Max when HalfOpen is set.
func TestRangeContains(t *testing.T) {
	r := Range{Min: 0, Max: 10}
	if !r.Contains(0) || !r.Contains(10) {
		t.Errorf("expected closed range to include both endpoints")
	}
	if r.Contains(-0.1) || r.Contains(10.1) {
		t.Errorf("expected closed range to exclude values outside [0,10]")
	}

	half := Range{Min: 0, Max: 10, HalfOpen: true}
	if !half.Contains(0) {
		t.Errorf("expected half-open range to include Min")
	}
	if half.Contains(10) {
		t.Errorf("expected half-open range to exclude Max")
	}
}

// Tests whether DefaultConstraints sets a sensible, non-degenerate range
// for every field.
func TestDefaultConstraints(t *testing.T) {
	c := DefaultConstraints()
	for name, r := range map[string]Range{
		"Mw": c.Mw, "RJB": c.RJB, "RRup": c.RRup, "RX": c.RX,
		"Dip": c.Dip, "Width": c.Width, "ZTop": c.ZTop, "ZHyp": c.ZHyp,
		"Rake": c.Rake, "Vs30": c.Vs30, "Z1p0": c.Z1p0, "Z2p5": c.Z2p5,
	} {
		if r.Min > r.Max {
			t.Errorf("%s: expected Min <= Max, got %+v", name, r)
		}
	}
	if !c.Vs30.Contains(760) {
		t.Errorf("expected the reference Vs30 of 760 to be within range")
	}
}
