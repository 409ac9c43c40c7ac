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

// Format6 represents a format 6 cmap subtable, a dense array of glyph
// IDs starting at FirstCode.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-6-trimmed-table-mapping
type Format6 struct {
	FirstCode uint16
	GlyphIDs  []glyph.ID
}

func decodeFormat6(data []byte) (Subtable, error) {
	if len(data) < 10 {
		return nil, errMalformedSubtable
	}
	firstCode := uint16(data[6])<<8 | uint16(data[7])
	entryCount := int(data[8])<<8 | int(data[9])
	if len(data) < 10+2*entryCount {
		return nil, errMalformedSubtable
	}

	gids := make([]glyph.ID, entryCount)
	for i := range gids {
		gids[i] = glyph.ID(data[10+2*i])<<8 | glyph.ID(data[10+2*i+1])
	}
	return &Format6{FirstCode: firstCode, GlyphIDs: gids}, nil
}

// Lookup returns the glyph ID for the given rune.
func (cmap *Format6) Lookup(r rune) glyph.ID {
	idx := int(r) - int(cmap.FirstCode)
	if idx < 0 || idx >= len(cmap.GlyphIDs) {
		return 0
	}
	return cmap.GlyphIDs[idx]
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap *Format6) CodeRange() (low, high rune) {
	low = rune(cmap.FirstCode)
	high = low + rune(len(cmap.GlyphIDs)) - 1
	if high < low {
		high = low
	}
	return low, high
}
