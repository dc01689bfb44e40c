/*
Copyright © 2017 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package catalog wires every implemented ground-motion model family
// into a populated nshmp.Registry. It is the one place in the module
// that imports both the root package and every gmm/* family package,
// which is why the wiring cannot live in the root package itself
// (that would be an import cycle).
package catalog

import (
	"fmt"

	"github.com/usgs/nshmp-haz-sub005"
	"github.com/usgs/nshmp-haz-sub005/gmm/activecrust"
	"github.com/usgs/nshmp-haz-sub005/gmm/regional"
	"github.com/usgs/nshmp-haz-sub005/gmm/stable"
	"github.com/usgs/nshmp-haz-sub005/gmm/subduction"
	"github.com/usgs/nshmp-haz-sub005/gmm/table"
)

// New builds and returns a nshmp.Registry with every model this
// repository implements already registered, grouped the way the NSHMP
// documents its model families.
func New() (*nshmp.Registry, error) {
	r := nshmp.NewRegistry()

	ba08, _, err := activecrust.NewBA08()
	if err != nil {
		return nil, err
	}
	ask14, _, err := activecrust.NewASK14()
	if err != nil {
		return nil, err
	}
	if err := register(r, nshmp.BA_08, "Boore & Atkinson (2008)", ba08); err != nil {
		return nil, err
	}
	if err := register(r, nshmp.ASK_14, "Abrahamson, Silva & Kamai (2014)", ask14); err != nil {
		return nil, err
	}
	r.RegisterGroup(nshmp.Group{Name: "2014 Active Crust (WUS)", IDs: []nshmp.Identifier{nshmp.BA_08, nshmp.ASK_14}})

	zhaoInterface, zhaoSlab, _, err := subduction.NewZhao06()
	if err != nil {
		return nil, err
	}
	bcInterface, bcSlab, _, err := subduction.NewBCHydro12()
	if err != nil {
		return nil, err
	}
	if err := register(r, nshmp.ZHAO_06_INTERFACE, "Zhao et al. (2006) Interface", zhaoInterface); err != nil {
		return nil, err
	}
	if err := register(r, nshmp.ZHAO_06_SLAB, "Zhao et al. (2006) Slab", zhaoSlab); err != nil {
		return nil, err
	}
	if err := register(r, nshmp.BCHYDRO_12_INTERFACE, "BC Hydro (2012) Interface", bcInterface); err != nil {
		return nil, err
	}
	if err := register(r, nshmp.BCHYDRO_12_SLAB, "BC Hydro (2012) Slab", bcSlab); err != nil {
		return nil, err
	}
	r.RegisterGroup(nshmp.Group{
		Name: "2018 Subduction",
		IDs: []nshmp.Identifier{
			nshmp.ZHAO_06_INTERFACE, nshmp.ZHAO_06_SLAB,
			nshmp.BCHYDRO_12_INTERFACE, nshmp.BCHYDRO_12_SLAB,
		},
	})

	frankel96, err := stable.NewFrankel96()
	if err != nil {
		return nil, err
	}
	if err := register(r, nshmp.FRANKEL_96, "Frankel et al. (1996)", frankel96); err != nil {
		return nil, err
	}
	somervilleMw, _, err := stable.NewSomerville01(stable.NoConversion)
	if err != nil {
		return nil, err
	}
	somervilleJohnston, _, err := stable.NewSomerville01(stable.JohnstonConversion)
	if err != nil {
		return nil, err
	}
	somervilleAB, _, err := stable.NewSomerville01(stable.AtkinsonBooreConversion)
	if err != nil {
		return nil, err
	}
	if err := register(r, nshmp.SOMERVILLE_01_MW, "Somerville et al. (2001), Mw input", somervilleMw); err != nil {
		return nil, err
	}
	if err := register(r, nshmp.SOMERVILLE_01_JOHNSTON, "Somerville et al. (2001), mb (Johnston)", somervilleJohnston); err != nil {
		return nil, err
	}
	if err := register(r, nshmp.SOMERVILLE_01_AB, "Somerville et al. (2001), mb (Atkinson-Boore)", somervilleAB); err != nil {
		return nil, err
	}
	r.RegisterGroup(nshmp.Group{
		Name: "2014 Central & Eastern US",
		IDs: []nshmp.Identifier{
			nshmp.FRANKEL_96, nshmp.SOMERVILLE_01_MW,
			nshmp.SOMERVILLE_01_JOHNSTON, nshmp.SOMERVILLE_01_AB,
		},
	})

	ab06, err := table.NewAB06Prime()
	if err != nil {
		return nil, err
	}
	if err := register(r, nshmp.AB06_PRIME, "Atkinson & Boore (2006) Prime", ab06); err != nil {
		return nil, err
	}
	ngaEast, err := table.NewNGAEastUSGS()
	if err != nil {
		return nil, err
	}
	if err := register(r, nshmp.NGA_EAST_USGS, "NGA-East (2017) USGS Composite", ngaEast); err != nil {
		return nil, err
	}
	r.RegisterGroup(nshmp.Group{Name: "2018 CEUS Tables", IDs: []nshmp.Identifier{nshmp.AB06_PRIME, nshmp.NGA_EAST_USGS}})

	hawaii14, _, err := regional.NewHawaii14()
	if err != nil {
		return nil, err
	}
	if err := register(r, nshmp.HAWAII_14, "Hawaii (2014)", hawaii14); err != nil {
		return nil, err
	}
	r.RegisterGroup(nshmp.Group{Name: "2014 Hawaii", IDs: []nshmp.Identifier{nshmp.HAWAII_14}})

	return r, nil
}

func register(r *nshmp.Registry, id nshmp.Identifier, name string, f nshmp.Factory) error {
	if err := r.Register(nshmp.Meta{ID: id, Name: name, Factory: f}); err != nil {
		return fmt.Errorf("catalog: registering %s: %w", id, err)
	}
	return nil
}
