package nshmp

import (
	"errors"
	"math"
	"testing"

	"github.com/usgs/nshmp-haz-sub005/errs"
)

// Tests whether NewArbitrarySequence sorts unordered input by x and
// exposes it through Len/X/Y.
func TestNewArbitrarySequenceSorts(t *testing.T) {
	s, err := NewArbitrarySequence([]float64{3, 1, 2}, []float64{30, 10, 20}, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", s.Len())
	}
	for i, wantX := range []float64{1, 2, 3} {
		if s.X(i) != wantX {
			t.Errorf("index %d: expected x=%v, got %v", i, wantX, s.X(i))
		}
	}
	if s.MinX() != 1 || s.MaxX() != 3 {
		t.Errorf("unexpected MinX/MaxX: %v/%v", s.MinX(), s.MaxX())
	}
	if s.MinY() != 10 || s.MaxY() != 30 {
		t.Errorf("unexpected MinY/MaxY: %v/%v", s.MinY(), s.MaxY())
	}
}

// Tests whether NewArbitrarySequence rejects mismatched slice lengths.
func TestNewArbitrarySequenceRejectsMismatch(t *testing.T) {
	if _, err := NewArbitrarySequence([]float64{1, 2}, []float64{1}, 1e-6); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// Tests whether Set overwrites an existing point within tolerance rather
// than inserting a duplicate.
func TestArbitrarySequenceSetOverwrites(t *testing.T) {
	s, err := NewArbitrarySequence([]float64{1, 2}, []float64{10, 20}, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set(1, 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected overwrite to keep the point count at 2, got %d", s.Len())
	}
	y, err := s.Get(1)
	if err != nil || y != 99 {
		t.Errorf("expected overwritten y=99, got %v (err=%v)", y, err)
	}
}

// Tests whether Get fails with ErrOutOfRange for an x with no matching
// point.
func TestArbitrarySequenceGetMissing(t *testing.T) {
	s, err := NewArbitrarySequence([]float64{1, 2}, []float64{10, 20}, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get(5); !errors.Is(err, errs.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

// Tests whether InterpolateLinear clamps outside the domain and
// interpolates linearly inside it.
func TestArbitrarySequenceInterpolateLinear(t *testing.T) {
	s, err := NewArbitrarySequence([]float64{0, 10}, []float64{0, 100}, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := s.InterpolateLinear(-5); v != 0 {
		t.Errorf("expected clamp below MinX, got %v", v)
	}
	if v := s.InterpolateLinear(15); v != 100 {
		t.Errorf("expected clamp above MaxX, got %v", v)
	}
	if v := s.InterpolateLinear(5); math.Abs(v-50) > 1e-9 {
		t.Errorf("expected midpoint interpolation to 50, got %v", v)
	}
}

// Tests whether InterpolateOrExtrapolateLogY extends beyond the domain
// instead of clamping.
func TestArbitrarySequenceExtrapolateLogY(t *testing.T) {
	s, err := NewArbitrarySequence([]float64{1, 2, 3}, []float64{1, 2, 4}, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	beyond := s.InterpolateOrExtrapolateLogY(4)
	if beyond <= s.MaxY() {
		t.Errorf("expected extrapolation beyond MaxX to exceed MaxY, got %v", beyond)
	}
}

// Tests whether FirstXAtY finds the bracketing x for a monotonic
// sequence and fails when no bracket exists.
func TestArbitrarySequenceFirstXAtY(t *testing.T) {
	s, err := NewArbitrarySequence([]float64{0, 1, 2}, []float64{0, 10, 20}, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x, err := s.FirstXAtY(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(x-0.5) > 1e-9 {
		t.Errorf("expected x=0.5 for y=5, got %v", x)
	}
	if _, err := s.FirstXAtY(100); !errors.Is(err, errs.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for an unreachable target, got %v", err)
	}
}
