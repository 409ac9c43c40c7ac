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

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/cdelker/ziafont/glyph"
)

// Format4 represents a format 4 cmap subtable, covering the basic
// multilingual plane by segments.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
type Format4 map[uint16]glyph.ID

func decodeFormat4(data []byte) (Subtable, error) {
	if len(data) < 14 {
		return nil, errMalformedSubtable
	}

	segCountX2 := int(data[6])<<8 | int(data[7])
	if segCountX2%2 != 0 || len(data) < 16+4*segCountX2 {
		return nil, errMalformedSubtable
	}
	segCount := segCountX2 / 2

	u16 := func(pos int) uint16 {
		return uint16(data[pos])<<8 | uint16(data[pos+1])
	}

	endBase := 14
	startBase := endBase + segCountX2 + 2 // skip reservedPad
	deltaBase := startBase + segCountX2
	rangeBase := deltaBase + segCountX2

	cmap := Format4{}
	total := 0
	for seg := 0; seg < segCount; seg++ {
		endCode := u16(endBase + 2*seg)
		startCode := u16(startBase + 2*seg)
		idDelta := u16(deltaBase + 2*seg)
		idRangeOffset := u16(rangeBase + 2*seg)

		if startCode > endCode {
			return nil, errMalformedSubtable
		}
		if startCode == 0xFFFF && endCode == 0xFFFF {
			// final sentinel segment
			continue
		}

		total += int(endCode) - int(startCode) + 1
		if total > 0x10000 {
			return nil, errMalformedSubtable
		}

		for c := int(startCode); c <= int(endCode); c++ {
			var gid uint16
			if idRangeOffset == 0 {
				gid = uint16(c) + idDelta
			} else {
				// idRangeOffset is relative to its own position in
				// the idRangeOffset array.
				pos := rangeBase + 2*seg + int(idRangeOffset) + 2*(c-int(startCode))
				if pos+1 >= len(data) {
					continue
				}
				gid = u16(pos)
				if gid != 0 {
					gid += idDelta
				}
			}
			if gid != 0 {
				cmap[uint16(c)] = glyph.ID(gid)
			}
		}
	}

	return cmap, nil
}

// Lookup returns the glyph ID for the given rune.
func (cmap Format4) Lookup(r rune) glyph.ID {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	return cmap[uint16(r)]
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap Format4) CodeRange() (low, high rune) {
	keys := maps.Keys(cmap)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	if len(keys) == 0 {
		return 0, 0
	}
	return rune(keys[0]), rune(keys[len(keys)-1])
}
