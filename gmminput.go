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

package nshmp

import (
	"fmt"
	"math"

	"github.com/usgs/nshmp-haz-sub005/errs"
)

// GmmInput is the immutable rupture/site value vector consumed by every
// ground-motion model. An optional field that was not set is NaN rather
// than carrying a separate presence flag. Build a GmmInput with
// NewGmmInputBuilder.
type GmmInput struct {
	Mw                   float64
	RJB, RRup, RX        float64
	Dip, Width           float64
	ZTop, ZHyp           float64
	Rake                 float64
	Vs30                 float64
	VsInf                bool
	Z1p0, Z2p5           float64
}

// fieldMask bits identify which GmmInputBuilder fields have been set.
type fieldMask uint16

const (
	fMw fieldMask = 1 << iota
	fRJB
	fRRup
	fRX
	fDip
	fWidth
	fZTop
	fZHyp
	fRake
	fVs30
	fVsInf
	fZ1p0
	fZ2p5
)

// GmmInputBuilder builds a GmmInput, enforcing that each field is set at
// most once before Build. After Build succeeds the per-field flags reset,
// so the same builder can be reused to construct another input.
type GmmInputBuilder struct {
	in  GmmInput
	set fieldMask
	err error
}

// NewGmmInputBuilder returns an empty builder.
func NewGmmInputBuilder() *GmmInputBuilder { return &GmmInputBuilder{} }

// WithDefaults pre-populates every field with the documented default
// rupture/site configuration (Mw=6.5, rJB=10, rRup=10.3, rX=10, dip=90,
// width=14, zTop=0.5, zHyp=7.5, rake=0, vs30=760, vsInf=true, z1p0 and
// z2p5 left NaN, meaning "use the model's default basin depth").
func (b *GmmInputBuilder) WithDefaults() *GmmInputBuilder {
	b.set = 0
	b.in = GmmInput{
		Mw: 6.5, RJB: 10, RRup: 10.3, RX: 10,
		Dip: 90, Width: 14, ZTop: 0.5, ZHyp: 7.5, Rake: 0,
		Vs30: 760, VsInf: true, Z1p0: math.NaN(), Z2p5: math.NaN(),
	}
	b.set = fMw | fRJB | fRRup | fRX | fDip | fWidth | fZTop | fZHyp |
		fRake | fVs30 | fVsInf | fZ1p0 | fZ2p5
	return b
}

func (b *GmmInputBuilder) setOnce(bit fieldMask, name string) error {
	if b.set&bit != 0 {
		return fmt.Errorf("%w: field %s was already set on this builder", errs.ErrStateError, name)
	}
	b.set |= bit
	return nil
}

// Mw sets the moment magnitude.
func (b *GmmInputBuilder) Mw(v float64) *GmmInputBuilder {
	return b.setField(fMw, "Mw", func() { b.in.Mw = v })
}

// RJB sets the Joyner-Boore distance, km.
func (b *GmmInputBuilder) RJB(v float64) *GmmInputBuilder {
	return b.setField(fRJB, "RJB", func() { b.in.RJB = v })
}

// RRup sets the closest-distance-to-rupture, km.
func (b *GmmInputBuilder) RRup(v float64) *GmmInputBuilder {
	return b.setField(fRRup, "RRup", func() { b.in.RRup = v })
}

// RX sets the signed strike-perpendicular distance, km.
func (b *GmmInputBuilder) RX(v float64) *GmmInputBuilder {
	return b.setField(fRX, "RX", func() { b.in.RX = v })
}

// Dip sets the fault dip, degrees.
func (b *GmmInputBuilder) Dip(v float64) *GmmInputBuilder {
	return b.setField(fDip, "Dip", func() { b.in.Dip = v })
}

// Width sets the down-dip rupture width, km.
func (b *GmmInputBuilder) Width(v float64) *GmmInputBuilder {
	return b.setField(fWidth, "Width", func() { b.in.Width = v })
}

// ZTop sets the depth to the top of rupture, km.
func (b *GmmInputBuilder) ZTop(v float64) *GmmInputBuilder {
	return b.setField(fZTop, "ZTop", func() { b.in.ZTop = v })
}

// ZHyp sets the hypocentral depth, km.
func (b *GmmInputBuilder) ZHyp(v float64) *GmmInputBuilder {
	return b.setField(fZHyp, "ZHyp", func() { b.in.ZHyp = v })
}

// Rake sets the rake angle, degrees.
func (b *GmmInputBuilder) Rake(v float64) *GmmInputBuilder {
	return b.setField(fRake, "Rake", func() { b.in.Rake = v })
}

// Vs30 sets the site's time-averaged shear-wave velocity, m/s.
func (b *GmmInputBuilder) Vs30(v float64) *GmmInputBuilder {
	return b.setField(fVs30, "Vs30", func() { b.in.Vs30 = v })
}

// VsInf sets whether Vs30 was measured/inferred (true) or estimated from
// geology (false).
func (b *GmmInputBuilder) VsInf(v bool) *GmmInputBuilder {
	return b.setField(fVsInf, "VsInf", func() { b.in.VsInf = v })
}

// Z1p0 sets the depth to Vs=1.0 km/s, km. Pass NaN to request the model's
// default basin-depth behavior.
func (b *GmmInputBuilder) Z1p0(v float64) *GmmInputBuilder {
	return b.setField(fZ1p0, "Z1p0", func() { b.in.Z1p0 = v })
}

// Z2p5 sets the depth to Vs=2.5 km/s, km. Pass NaN to request the model's
// default basin-depth behavior.
func (b *GmmInputBuilder) Z2p5(v float64) *GmmInputBuilder {
	return b.setField(fZ2p5, "Z2p5", func() { b.in.Z2p5 = v })
}

func (b *GmmInputBuilder) setField(bit fieldMask, name string, apply func()) *GmmInputBuilder {
	if b.err != nil {
		return b
	}
	if err := b.setOnce(bit, name); err != nil {
		b.err = err
		return b
	}
	apply()
	return b
}

// Build returns the constructed GmmInput, failing with ErrStateError if
// any field was set more than once, or if any field remains unset. The
// builder's field-set flags are reset on success so it can be reused.
func (b *GmmInputBuilder) Build() (GmmInput, error) {
	if b.err != nil {
		err := b.err
		b.err = nil
		return GmmInput{}, err
	}
	const all = fMw | fRJB | fRRup | fRX | fDip | fWidth | fZTop | fZHyp |
		fRake | fVs30 | fVsInf | fZ1p0 | fZ2p5
	if b.set != all {
		return GmmInput{}, fmt.Errorf("%w: GmmInputBuilder.Build called with missing fields", errs.ErrStateError)
	}
	in := b.in
	b.set = 0
	b.in = GmmInput{}
	return in, nil
}
