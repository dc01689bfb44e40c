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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/usgs/nshmp-haz-sub005/errs"
)

// CoefficientContainer is an immutable IMT -> (coefficient name -> value)
// mapping, loaded once from a text resource at model initialization time
// and shared by every instance of that model.
type CoefficientContainer struct {
	byIMT map[string]map[string]float64
	order []IMT
}

// LoadCoefficients parses r as a coefficient CSV: the header's first
// column must be "Imt" and the remaining columns are coefficient names;
// each subsequent row is an IMT label followed by its numeric
// coefficients. Spaces are ignored and empty lines are skipped.
func LoadCoefficients(r io.Reader) (*CoefficientContainer, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading coefficient table: %v", errs.ErrResourceLoadFailure, err)
	}
	rows = dropEmptyRows(rows)
	if len(rows) < 1 {
		return nil, fmt.Errorf("%w: coefficient table has no header row", errs.ErrResourceLoadFailure)
	}
	header := trimAll(rows[0])
	if len(header) < 1 || !strings.EqualFold(header[0], "Imt") {
		return nil, fmt.Errorf("%w: coefficient table header must start with 'Imt', got %q", errs.ErrResourceLoadFailure, header[0])
	}
	names := header[1:]

	c := &CoefficientContainer{byIMT: make(map[string]map[string]float64)}
	for _, row := range rows[1:] {
		row = trimAll(row)
		label := row[0]
		imt, err := imtFromLabel(label)
		if err != nil {
			return nil, fmt.Errorf("%w: coefficient table row %q: %v", errs.ErrResourceLoadFailure, label, err)
		}
		coeffs := make(map[string]float64, len(names))
		for i, name := range names {
			if i+1 >= len(row) || row[i+1] == "" {
				continue
			}
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: coefficient table row %q column %q: %v", errs.ErrResourceLoadFailure, label, name, err)
			}
			coeffs[name] = v
		}
		if _, exists := c.byIMT[imt.String()]; !exists {
			c.order = append(c.order, imt)
		}
		c.byIMT[imt.String()] = coeffs
	}
	return c, nil
}

// IMTs returns the set of IMTs this container has coefficients for, in
// file order.
func (c *CoefficientContainer) IMTs() []IMT { return c.order }

// Supports reports whether the container has coefficients for imt.
func (c *CoefficientContainer) Supports(imt IMT) bool {
	_, ok := c.byIMT[imt.String()]
	return ok
}

// Coefficient returns the named coefficient for imt, failing with
// ErrUnsupportedIMT if the container has no row for that IMT, or with
// ErrResourceLoadFailure if the IMT row exists but doesn't carry that
// coefficient.
func (c *CoefficientContainer) Coefficient(imt IMT, name string) (float64, error) {
	row, ok := c.byIMT[imt.String()]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no coefficients for %s", errs.ErrUnsupportedIMT, imt, imt)
	}
	v, ok := row[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s row has no coefficient %q", errs.ErrResourceLoadFailure, imt, name)
	}
	return v, nil
}

// Row returns the full coefficient map for imt and whether it exists.
// The returned map must not be mutated by the caller.
func (c *CoefficientContainer) Row(imt IMT) (map[string]float64, bool) {
	row, ok := c.byIMT[imt.String()]
	return row, ok
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		allBlank := true
		for _, f := range row {
			if strings.TrimSpace(f) != "" {
				allBlank = false
				break
			}
		}
		if !allBlank {
			out = append(out, row)
		}
	}
	return out
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, f := range row {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

// imtFromLabel resolves a textual IMT label ("PGA", "PGV", "SA1P0", ...)
// to the corresponding IMT constant.
func imtFromLabel(label string) (IMT, error) {
	for _, imt := range AllIMTs {
		if strings.EqualFold(imt.String(), label) {
			return imt, nil
		}
	}
	return IMT{}, fmt.Errorf("unrecognized IMT label %q", label)
}
