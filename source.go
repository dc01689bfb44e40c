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

import "math"

// Location is a geographic point, longitude/latitude in decimal degrees.
type Location struct {
	Lon, Lat float64
}

// Site is a calculation point: its location plus the local soil
// properties a GMM needs. VsInf mirrors GmmInput.VsInf; Z1p0/Z2p5 may be
// NaN to request a model's default basin depth.
type Site struct {
	Name       string
	Location   Location
	Vs30       float64
	VsInf      bool
	Z1p0, Z2p5 float64
}

// Distances bundles the three distance metrics a GMM consumes.
type Distances struct {
	RJB, RRup, RX float64
}

// RuptureGeometry computes the distance metrics from a rupture's fault
// plane to a site, and reports the fields the GmmInput needs beyond
// magnitude and rake. Source-model loaders (geometry builders, magnitude-
// frequency sampling) are an external collaborator to this package;
// RuptureGeometry is the narrow interface the hazard pipeline consumes
// them through.
type RuptureGeometry interface {
	Distances(site Location) Distances
	Dip() float64
	Width() float64
	ZTop() float64
	ZHyp() float64
}

// PointGeometry is the simplest RuptureGeometry: a vertical point source.
// rJB and rRup both equal the great-circle surface distance to the site;
// rX is always 0 (a point source has no hanging-wall side).
type PointGeometry struct {
	Location           Location
	DipDeg, WidthKm    float64
	ZTopKm, ZHypKm     float64
}

// Distances returns the surface distance to site for both rJB and rRup,
// and 0 for rX.
func (g PointGeometry) Distances(site Location) Distances {
	d := surfaceDistanceKm(g.Location, site)
	return Distances{RJB: d, RRup: d, RX: 0}
}

// Dip returns the fault dip in degrees.
func (g PointGeometry) Dip() float64 { return g.DipDeg }

// Width returns the down-dip rupture width in km.
func (g PointGeometry) Width() float64 { return g.WidthKm }

// ZTop returns the depth to the top of rupture in km.
func (g PointGeometry) ZTop() float64 { return g.ZTopKm }

// ZHyp returns the hypocentral depth in km.
func (g PointGeometry) ZHyp() float64 { return g.ZHypKm }

const earthRadiusKm = 6371.0088

// surfaceDistanceKm returns the great-circle distance between a and b in
// kilometers via the haversine formula.
func surfaceDistanceKm(a, b Location) float64 {
	lat1, lat2 := a.Lat*math.Pi/180, b.Lat*math.Pi/180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Rupture is one earthquake rupture within a Source: a magnitude, an
// annual occurrence rate, a rake, and the geometry needed to compute
// distances to a site.
type Rupture struct {
	Mw       float64
	RateYr   float64
	RakeDeg  float64
	Geometry RuptureGeometry
}

// ToGmmInput builds the GmmInput for this rupture observed from site,
// leaving Vs30/VsInf/Z1p0/Z2p5 populated from the site.
func (ru Rupture) ToGmmInput(site Site) GmmInput {
	d := ru.Geometry.Distances(site.Location)
	return GmmInput{
		Mw: ru.Mw, RJB: d.RJB, RRup: d.RRup, RX: d.RX,
		Dip: ru.Geometry.Dip(), Width: ru.Geometry.Width(),
		ZTop: ru.Geometry.ZTop(), ZHyp: ru.Geometry.ZHyp(),
		Rake: ru.RakeDeg,
		Vs30: site.Vs30, VsInf: site.VsInf,
		Z1p0: site.Z1p0, Z2p5: site.Z2p5,
	}
}

// Source is a named group of ruptures sharing a source type (e.g. "fault",
// "grid", "subduction") used for the SOURCE curve decomposition and for
// maximum-source-distance filtering.
type Source struct {
	Name      string
	Type      string
	Ruptures  []Rupture
}

// RepresentativeDistance returns the distance from site to this source's
// nearest rupture, used to apply the configuration's max_source_distance
// filter before iterating over every rupture.
func (s Source) RepresentativeDistance(site Location) float64 {
	min := math.Inf(1)
	for _, ru := range s.Ruptures {
		d := ru.Geometry.Distances(site).RRup
		if d < min {
			min = d
		}
	}
	return min
}
