package nshmp

import (
	"errors"
	"sync"
	"testing"

	"github.com/usgs/nshmp-haz-sub005/errs"
)

type stubModel struct{ calls *int }

func (s stubModel) Name() string            { return "stub" }
func (s stubModel) Constraints() Constraints { return DefaultConstraints() }
func (s stubModel) SupportedIMTs() []IMT     { return []IMT{PGA} }
func (s stubModel) Calc(imt IMT, in GmmInput) GroundMotion {
	return GroundMotion{Scalar: ScalarGroundMotion{MeanLn: -1, SigmaLn: 0.6}}
}

// Tests whether Register rejects a duplicate identifier.
func TestRegistryRegisterRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	m := Meta{ID: "X", Name: "X", Factory: func(IMT) (GroundMotionModel, error) { return stubModel{}, nil }}
	if err := r.Register(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(m); !errors.Is(err, errs.ErrStateError) {
		t.Fatalf("expected ErrStateError for duplicate registration, got %v", err)
	}
}

// Tests whether Instance runs the factory exactly once per (id, imt),
// caching the result, even under concurrent callers.
func TestRegistryInstanceCachesAndRunsOnce(t *testing.T) {
	r := NewRegistry()
	calls := 0
	var mu sync.Mutex
	m := Meta{ID: "X", Name: "X", Factory: func(IMT) (GroundMotionModel, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return stubModel{}, nil
	}}
	if err := r.Register(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]GroundMotionModel, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inst, err := r.Instance("X", PGA)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results[i] = inst
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected factory to run exactly once, ran %d times", calls)
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Errorf("expected every caller to receive the identical cached instance")
		}
	}
}

// Tests whether Instance rejects an unregistered identifier.
func TestRegistryInstanceUnknownIdentifier(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Instance("NOPE", PGA); !errors.Is(err, errs.ErrStateError) {
		t.Fatalf("expected ErrStateError for unknown identifier, got %v", err)
	}
}

// Tests whether Meta and Groups report what was registered.
func TestRegistryMetaAndGroups(t *testing.T) {
	r := NewRegistry()
	m := Meta{ID: "X", Name: "X display", Factory: func(IMT) (GroundMotionModel, error) { return stubModel{}, nil }}
	if err := r.Register(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := r.Meta("X")
	if !ok || got.Name != "X display" {
		t.Fatalf("expected registered metadata, got %+v ok=%v", got, ok)
	}
	if _, ok := r.Meta("MISSING"); ok {
		t.Errorf("expected unregistered identifier to be absent")
	}

	r.RegisterGroup(Group{Name: "Group A", IDs: []Identifier{"X"}})
	groups := r.Groups()
	if len(groups) != 1 || groups[0].Name != "Group A" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}
