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

package hazutil

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/usgs/nshmp-haz-sub005"
	"github.com/usgs/nshmp-haz-sub005/errs"
)

// ParseSites resolves the CLI's <sites> argument per section 6: a single
// CSV line, a path to a *.csv file, or a path to a *.geojson file.
func ParseSites(arg string) ([]nshmp.Site, error) {
	if strings.HasSuffix(arg, ".geojson") {
		return parseGeoJSONSitesFile(arg)
	}
	if strings.HasSuffix(arg, ".csv") {
		return parseCSVSitesFile(arg)
	}
	site, err := parseSiteLine(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: sites argument is neither a .csv/.geojson path nor a valid site line: %v", errs.ErrInvalidInput, err)
	}
	return []nshmp.Site{site}, nil
}

func parseCSVSitesFile(path string) ([]nshmp.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening sites file %s: %v", errs.ErrIOFailure, path, err)
	}
	defer f.Close()
	return parseCSVSites(f)
}

// parseCSVSites reads "name,lon,lat[,vs30,vsInf[,z1p0,z2p5]]" rows,
// skipping blank lines, "#"-prefixed comment lines, and a tolerated header
// row (detected by a non-numeric longitude column).
func parseCSVSites(r io.Reader) ([]nshmp.Site, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading sites CSV: %v", errs.ErrIOFailure, err)
	}

	var sites []nshmp.Site
	for i, line := range lines {
		cr := csv.NewReader(strings.NewReader(line))
		record, err := cr.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: parsing sites CSV line %d: %v", errs.ErrInvalidInput, i+1, err)
		}
		if i == 0 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64); err != nil {
				continue // header row
			}
		}
		site, err := siteFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: sites CSV line %d: %v", errs.ErrInvalidInput, i+1, err)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

func parseSiteLine(line string) (nshmp.Site, error) {
	cr := csv.NewReader(strings.NewReader(line))
	record, err := cr.Read()
	if err != nil {
		return nshmp.Site{}, err
	}
	return siteFromRecord(record)
}

func siteFromRecord(record []string) (nshmp.Site, error) {
	if len(record) < 3 {
		return nshmp.Site{}, fmt.Errorf("expected at least name,lon,lat, got %d fields", len(record))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return nshmp.Site{}, fmt.Errorf("invalid longitude %q: %w", record[1], err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return nshmp.Site{}, fmt.Errorf("invalid latitude %q: %w", record[2], err)
	}
	site := nshmp.Site{
		Name:     strings.TrimSpace(record[0]),
		Location: nshmp.Location{Lon: lon, Lat: lat},
		Vs30:     760,
		VsInf:    true,
		Z1p0:     math.NaN(),
		Z2p5:     math.NaN(),
	}
	if len(record) > 3 {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return nshmp.Site{}, fmt.Errorf("invalid vs30 %q: %w", record[3], err)
		}
		site.Vs30 = v
	}
	if len(record) > 4 {
		site.VsInf = strings.TrimSpace(record[4]) == "true" || strings.TrimSpace(record[4]) == "1"
	}
	if len(record) > 6 {
		z1, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
		if err != nil {
			return nshmp.Site{}, fmt.Errorf("invalid z1p0 %q: %w", record[5], err)
		}
		z25, err := strconv.ParseFloat(strings.TrimSpace(record[6]), 64)
		if err != nil {
			return nshmp.Site{}, fmt.Errorf("invalid z2p5 %q: %w", record[6], err)
		}
		site.Z1p0, site.Z2p5 = z1, z25
	}
	return site, nil
}

// geoJSONFeatureCollection is the minimal subset of the GeoJSON point-
// feature schema this package's site files use: one Point feature per
// site, with site properties attached as flat feature properties. The
// pack's vendored geojson decoder (ctessum/geom/encoding/geojson) only
// switches on raw geometry type and carries no notion of feature
// properties, so it does not fit a named-property site schema; this
// bespoke struct decoded with encoding/json is the narrower, correct tool.
type geoJSONFeatureCollection struct {
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

func parseGeoJSONSitesFile(path string) ([]nshmp.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening sites file %s: %v", errs.ErrIOFailure, path, err)
	}
	defer f.Close()

	var fc geoJSONFeatureCollection
	if err := json.NewDecoder(f).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: decoding GeoJSON sites file %s: %v", errs.ErrInvalidInput, path, err)
	}

	sites := make([]nshmp.Site, 0, len(fc.Features))
	for i, feat := range fc.Features {
		if feat.Geometry.Type != "Point" || len(feat.Geometry.Coordinates) < 2 {
			return nil, fmt.Errorf("%w: feature %d is not a Point geometry with lon/lat coordinates", errs.ErrInvalidInput, i)
		}
		site := nshmp.Site{
			Location: nshmp.Location{Lon: feat.Geometry.Coordinates[0], Lat: feat.Geometry.Coordinates[1]},
			Vs30:     760,
			VsInf:    true,
			Z1p0:     math.NaN(),
			Z2p5:     math.NaN(),
		}
		if name, ok := feat.Properties["name"].(string); ok {
			site.Name = name
		}
		if vs30, ok := numericProperty(feat.Properties, "vs30"); ok {
			site.Vs30 = vs30
		}
		if vsInf, ok := feat.Properties["vsInf"].(bool); ok {
			site.VsInf = vsInf
		}
		if z1p0, ok := numericProperty(feat.Properties, "z1p0"); ok {
			site.Z1p0 = z1p0
		}
		if z2p5, ok := numericProperty(feat.Properties, "z2p5"); ok {
			site.Z2p5 = z2p5
		}
		sites = append(sites, site)
	}
	return sites, nil
}

func numericProperty(props map[string]interface{}, key string) (float64, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
