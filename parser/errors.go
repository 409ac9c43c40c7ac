// github.com/cdelker/ziafont - convert font glyphs to scalable vector paths
// Copyright (C) 2026  The ziafont authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package parser

import "fmt"

// InvalidFontError indicates a damaged or malformed font file.
type InvalidFontError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFontError) Error() string {
	return fmt.Sprintf("%s: invalid font: %s", err.SubSystem, err.Reason)
}

// Invalid returns a new InvalidFontError.
func Invalid(subSystem, reason string) *InvalidFontError {
	return &InvalidFontError{
		SubSystem: subSystem,
		Reason:    reason,
	}
}

// NotSupportedError indicates that a font file uses a valid feature
// which is not implemented by this library.
type NotSupportedError struct {
	SubSystem string
	Feature   string
}

func (err *NotSupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported feature: %s", err.SubSystem, err.Feature)
}

// NotSupported returns a new NotSupportedError.
func NotSupported(subSystem, feature string) *NotSupportedError {
	return &NotSupportedError{
		SubSystem: subSystem,
		Feature:   feature,
	}
}

// Truncated returns the error used when a read extends past the end of
// a table.
func Truncated(subSystem string) *InvalidFontError {
	return &InvalidFontError{
		SubSystem: subSystem,
		Reason:    "truncated table",
	}
}
