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
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/usgs/nshmp-haz-sub005"
	"github.com/usgs/nshmp-haz-sub005/errs"
)

// modelSourcesFile and modelConfigFile are the two well-known files a
// source model directory or zip archive carries, per section 6's
// "directory or zip archive containing a source model plus a default
// config.json".
const (
	modelSourcesFile = "sources.json"
	modelConfigFile  = "config.json"
)

// jsonSource and jsonRupture are the on-disk representation of a source
// model. Ruptures are point sources (the grid/point-source case of the
// NSHMP source taxonomy); this is the geometry the hazard pipeline's
// RuptureGeometry interface was built to generalize over, so a richer
// finite-fault file format can be layered on later without touching the
// pipeline itself.
type jsonSource struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Ruptures []jsonRupture  `json:"ruptures"`
}

type jsonRupture struct {
	Mw      float64 `json:"mw"`
	RateYr  float64 `json:"rateYr"`
	RakeDeg float64 `json:"rakeDeg"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
	DipDeg  float64 `json:"dipDeg"`
	WidthKm float64 `json:"widthKm"`
	ZTopKm  float64 `json:"zTopKm"`
	ZHypKm  float64 `json:"zHypKm"`
}

// LoadModel reads the source model and its default configuration from
// path, which may be a directory or a *.zip archive containing
// sources.json and config.json.
func LoadModel(path string) ([]nshmp.Source, map[string]interface{}, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: statting model path %s: %v", errs.ErrIOFailure, path, err)
	}

	var sourcesBytes, configBytes []byte
	if info.IsDir() {
		sourcesBytes, configBytes, err = loadModelFromDir(path)
	} else {
		sourcesBytes, configBytes, err = loadModelFromZip(path)
	}
	if err != nil {
		return nil, nil, err
	}

	var jsonSources []jsonSource
	if err := json.Unmarshal(sourcesBytes, &jsonSources); err != nil {
		return nil, nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrInvalidInput, modelSourcesFile, err)
	}
	sources := make([]nshmp.Source, len(jsonSources))
	for i, js := range jsonSources {
		sources[i] = nshmp.Source{
			Name:     js.Name,
			Type:     js.Type,
			Ruptures: make([]nshmp.Rupture, len(js.Ruptures)),
		}
		for j, jr := range js.Ruptures {
			sources[i].Ruptures[j] = nshmp.Rupture{
				Mw:      jr.Mw,
				RateYr:  jr.RateYr,
				RakeDeg: jr.RakeDeg,
				Geometry: nshmp.PointGeometry{
					Location: nshmp.Location{Lon: jr.Lon, Lat: jr.Lat},
					DipDeg:   orDefault(jr.DipDeg, 90),
					WidthKm:  jr.WidthKm,
					ZTopKm:   jr.ZTopKm,
					ZHypKm:   jr.ZHypKm,
				},
			}
		}
	}

	var config map[string]interface{}
	if len(configBytes) > 0 {
		if err := json.Unmarshal(configBytes, &config); err != nil {
			return nil, nil, fmt.Errorf("%w: parsing %s: %v", errs.ErrInvalidInput, modelConfigFile, err)
		}
	}
	return sources, config, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func loadModelFromDir(dir string) (sourcesBytes, configBytes []byte, err error) {
	sourcesBytes, err = os.ReadFile(filepath.Join(dir, modelSourcesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading %s: %v", errs.ErrIOFailure, modelSourcesFile, err)
	}
	configBytes, err = os.ReadFile(filepath.Join(dir, modelConfigFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%w: reading %s: %v", errs.ErrIOFailure, modelConfigFile, err)
	}
	return sourcesBytes, configBytes, nil
}

func loadModelFromZip(path string) (sourcesBytes, configBytes []byte, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening model archive %s: %v", errs.ErrIOFailure, path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		name := filepath.Base(f.Name)
		switch name {
		case modelSourcesFile:
			sourcesBytes, err = readZipFile(f)
		case modelConfigFile:
			configBytes, err = readZipFile(f)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	if sourcesBytes == nil {
		return nil, nil, fmt.Errorf("%w: archive %s does not contain %s", errs.ErrInvalidInput, path, modelSourcesFile)
	}
	return sourcesBytes, configBytes, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s in archive: %v", errs.ErrIOFailure, f.Name, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s in archive: %v", errs.ErrIOFailure, f.Name, err)
	}
	return b, nil
}
