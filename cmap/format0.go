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

package cmap

import "github.com/cdelker/ziafont/glyph"

// Format0 represents a format 0 cmap subtable, a dense byte-encoding
// table for the first 256 code points.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-0-byte-encoding-table
type Format0 struct {
	Data [256]byte
}

func decodeFormat0(data []byte) (Subtable, error) {
	if len(data) < 6+256 {
		return nil, errMalformedSubtable
	}
	res := &Format0{}
	copy(res.Data[:], data[6:6+256])
	return res, nil
}

// Lookup returns the glyph ID for the given rune.
func (cmap *Format0) Lookup(r rune) glyph.ID {
	if r < 0 || r > 255 {
		return 0
	}
	return glyph.ID(cmap.Data[r])
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap *Format0) CodeRange() (low, high rune) {
	return 0, 255
}
