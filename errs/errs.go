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

// Package errs defines the error taxonomy shared by the hazard engine.
// Errors are wrapped with fmt.Errorf and %w around one of the sentinels
// below so that callers can test with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidInput marks a GmmInput field or configuration value that is
	// NaN or outside its declared constraint range.
	ErrInvalidInput = errors.New("nshmp: invalid input")

	// ErrUnsupportedIMT marks an attempt to instantiate a GMM for an IMT it
	// does not have coefficients for.
	ErrUnsupportedIMT = errors.New("nshmp: unsupported IMT")

	// ErrOutOfRange marks a table lookup or interpolation called outside
	// its tabulated or configured domain.
	ErrOutOfRange = errors.New("nshmp: out of range")

	// ErrResourceLoadFailure marks a coefficient or table resource that
	// could not be read or parsed.
	ErrResourceLoadFailure = errors.New("nshmp: resource load failure")

	// ErrIOFailure marks an output file that could not be written.
	ErrIOFailure = errors.New("nshmp: I/O failure")

	// ErrStateError marks misuse of a builder or registry: a double-set
	// field, a build() call with fields missing, or a registry conflict.
	// These are programmer errors and are treated as fatal.
	ErrStateError = errors.New("nshmp: state error")
)
