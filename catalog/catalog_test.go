package catalog

import (
	"testing"

	"github.com/usgs/nshmp-haz-sub005"
)

// Tests whether every documented Identifier is registered and instantiable
// for PGA.
func TestNewRegistersEveryIdentifier(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := []nshmp.Identifier{
		nshmp.BA_08, nshmp.ASK_14,
		nshmp.ZHAO_06_INTERFACE, nshmp.ZHAO_06_SLAB,
		nshmp.BCHYDRO_12_INTERFACE, nshmp.BCHYDRO_12_SLAB,
		nshmp.FRANKEL_96, nshmp.SOMERVILLE_01_MW,
		nshmp.SOMERVILLE_01_JOHNSTON, nshmp.SOMERVILLE_01_AB,
		nshmp.AB06_PRIME, nshmp.NGA_EAST_USGS,
		nshmp.HAWAII_14,
	}
	for _, id := range ids {
		if _, ok := r.Meta(id); !ok {
			t.Errorf("expected %s to be registered", id)
			continue
		}
		if _, err := r.Instance(id, nshmp.PGA); err != nil {
			t.Errorf("%s: unexpected error instantiating for PGA: %v", id, err)
		}
	}
}

// Tests whether every registered identifier appears in at least one group.
func TestNewGroupsCoverEveryIdentifier(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	grouped := map[nshmp.Identifier]bool{}
	for _, g := range r.Groups() {
		for _, id := range g.IDs {
			grouped[id] = true
		}
	}
	if len(grouped) == 0 {
		t.Fatalf("expected at least one group")
	}
	for _, id := range []nshmp.Identifier{
		nshmp.BA_08, nshmp.ASK_14,
		nshmp.ZHAO_06_INTERFACE, nshmp.ZHAO_06_SLAB,
		nshmp.BCHYDRO_12_INTERFACE, nshmp.BCHYDRO_12_SLAB,
		nshmp.FRANKEL_96, nshmp.SOMERVILLE_01_MW,
		nshmp.SOMERVILLE_01_JOHNSTON, nshmp.SOMERVILLE_01_AB,
		nshmp.AB06_PRIME, nshmp.NGA_EAST_USGS,
		nshmp.HAWAII_14,
	} {
		if !grouped[id] {
			t.Errorf("expected %s to appear in a group", id)
		}
	}
}

// Tests whether repeated Instance calls for the same (id, imt) return the
// same cached instance.
func TestInstanceIsCached(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := r.Instance(nshmp.BA_08, nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := r.Instance(nshmp.BA_08, nshmp.PGA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("expected cached instance to be identical across calls")
	}
}
