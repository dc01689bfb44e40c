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

package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/usgs/nshmp-haz-sub005"
	"github.com/usgs/nshmp-haz-sub005/errs"
)

// curveRow is one site's curve values for a single (IMT, file) target.
type curveRow struct {
	lon, lat float64
	rates    []float64
}

// CurveWriter is the pipeline's single-producer-per-file output writer.
// Batches are serialized through writeBatch to preserve append order: the
// first write to a file truncates, every subsequent write appends, per
// the writer's single-producer-per-(directory,file) contract.
type CurveWriter struct {
	mu          sync.Mutex
	outputDir   string
	written     map[string]bool // relative file path -> "has been written at least once"
	flushLimit  int
	pending     map[string][]curveRow
}

// NewCurveWriter returns a writer rooted at outputDir, which must already
// exist (the CLI layer is responsible for resolving a non-clobbering
// sibling directory before the pipeline starts).
func NewCurveWriter(outputDir string, flushLimit int) *CurveWriter {
	return &CurveWriter{
		outputDir:  outputDir,
		written:    make(map[string]bool),
		flushLimit: flushLimit,
		pending:    make(map[string][]curveRow),
	}
}

// relPath builds the persisted-state layout's relative file path for a
// curve output: "<imt>/total.csv", "<imt>/source/<type>.csv",
// "<imt>/gmm/<id>.csv", or "<imt>/branch/<name>.csv".
func relPath(imt nshmp.IMT, kind, key string) string {
	if kind == "" {
		return filepath.Join(imt.String(), "total.csv")
	}
	return filepath.Join(imt.String(), kind, key+".csv")
}

// Add queues one site's row for (imt, kind, key), flushing to disk once
// flushLimit rows have accumulated for that file.
func (w *CurveWriter) Add(imt nshmp.IMT, kind, key string, lon, lat float64, rates []float64) error {
	path := relPath(imt, kind, key)
	w.mu.Lock()
	w.pending[path] = append(w.pending[path], curveRow{lon: lon, lat: lat, rates: rates})
	flush := len(w.pending[path]) >= w.flushLimit
	var batch []curveRow
	if flush {
		batch = w.pending[path]
		w.pending[path] = nil
	}
	w.mu.Unlock()
	if flush {
		return w.writeBatch(path, imt, batch)
	}
	return nil
}

// Flush writes every remaining partial batch, called once after all sites
// have been processed.
func (w *CurveWriter) Flush() error {
	w.mu.Lock()
	remaining := w.pending
	w.pending = make(map[string][]curveRow)
	w.mu.Unlock()
	for path, batch := range remaining {
		if len(batch) == 0 {
			continue
		}
		imt, err := imtFromRelPath(path)
		if err != nil {
			return err
		}
		if err := w.writeBatch(path, imt, batch); err != nil {
			return err
		}
	}
	return nil
}

func imtFromRelPath(path string) (nshmp.IMT, error) {
	label := firstSegment(path)
	for _, imt := range nshmp.AllIMTs {
		if imt.String() == label {
			return imt, nil
		}
	}
	return nshmp.IMT{}, fmt.Errorf("%w: cannot resolve IMT from path %q", errs.ErrIOFailure, path)
}

func firstSegment(path string) string {
	for i := 0; i < len(path); i++ {
		if os.IsPathSeparator(path[i]) {
			return path[:i]
		}
	}
	return path
}

// writeBatch serializes access to one file: the first write truncates
// and writes a header, every subsequent write appends without a header.
func (w *CurveWriter) writeBatch(relFile string, imt nshmp.IMT, batch []curveRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	firstWrite := !w.written[relFile]
	w.written[relFile] = true

	fullPath := filepath.Join(w.outputDir, relFile)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %v", errs.ErrIOFailure, relFile, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if firstWrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(fullPath, flags, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", errs.ErrIOFailure, relFile, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if firstWrite {
		levels, err := levelsHeader(imt, batch)
		if err != nil {
			return err
		}
		if err := cw.Write(levels); err != nil {
			return fmt.Errorf("%w: writing header for %s: %v", errs.ErrIOFailure, relFile, err)
		}
	}
	for _, row := range batch {
		record := make([]string, 0, len(row.rates)+2)
		record = append(record, strconv.FormatFloat(row.lon, 'g', -1, 64))
		record = append(record, strconv.FormatFloat(row.lat, 'g', -1, 64))
		for _, r := range row.rates {
			record = append(record, strconv.FormatFloat(r, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: writing row to %s: %v", errs.ErrIOFailure, relFile, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flushing %s: %v", errs.ErrIOFailure, relFile, err)
	}
	return nil
}

func levelsHeader(imt nshmp.IMT, batch []curveRow) ([]string, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("%w: empty batch for %s", errs.ErrIOFailure, imt)
	}
	header := []string{"lon", "lat"}
	for i := range batch[0].rates {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	return header, nil
}
