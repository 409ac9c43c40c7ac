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

package ziafont

// Config holds rendering options.  Every Font carries a Config used
// as the default for its text requests; individual requests can
// override it through [TextOptions].
type Config struct {
	// FontSize is the default text size in pixels.
	FontSize float64

	// SVG2 enables glyph reuse via <symbol> and <use> elements.
	// Disable for better compatibility at the expense of output size.
	SVG2 bool

	// Precision is the number of decimal places for emitted
	// coordinates.
	Precision int

	// Debug adds baseline, bounding box and origin markers to the
	// generated drawing.
	Debug bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		FontSize:  48,
		SVG2:      true,
		Precision: 2,
	}
}
