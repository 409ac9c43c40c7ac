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

// Format12 represents a format 12 cmap subtable, a list of sequential
// code point groups covering the full unicode range.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
type Format12 struct {
	Groups []Format12Group
}

// Format12Group is one sequential map group.
type Format12Group struct {
	StartCharCode uint32
	EndCharCode   uint32
	StartGlyphID  glyph.ID
}

func decodeFormat12(data []byte) (Subtable, error) {
	if len(data) < 16 {
		return nil, errMalformedSubtable
	}

	nGroups := uint32(data[12])<<24 | uint32(data[13])<<16 | uint32(data[14])<<8 | uint32(data[15])
	if nGroups > 1e6 || len(data) < 16+int(nGroups)*12 {
		return nil, errMalformedSubtable
	}

	res := &Format12{Groups: make([]Format12Group, nGroups)}
	var prevEnd uint32
	for i := uint32(0); i < nGroups; i++ {
		base := 16 + i*12
		start := uint32(data[base])<<24 | uint32(data[base+1])<<16 | uint32(data[base+2])<<8 | uint32(data[base+3])
		end := uint32(data[base+4])<<24 | uint32(data[base+5])<<16 | uint32(data[base+6])<<8 | uint32(data[base+7])
		gid := uint32(data[base+8])<<24 | uint32(data[base+9])<<16 | uint32(data[base+10])<<8 | uint32(data[base+11])

		if (i > 0 && start <= prevEnd) ||
			end < start ||
			end > 0x10_FFFF ||
			gid+(end-start) > 0xFFFF {
			return nil, errMalformedSubtable
		}
		prevEnd = end

		res.Groups[i] = Format12Group{
			StartCharCode: start,
			EndCharCode:   end,
			StartGlyphID:  glyph.ID(gid),
		}
	}

	return res, nil
}

// Lookup returns the glyph ID for the given rune.
func (cmap *Format12) Lookup(r rune) glyph.ID {
	c := uint32(r)
	groups := cmap.Groups
	idx := sort.Search(len(groups), func(i int) bool {
		return groups[i].EndCharCode >= c
	})
	if idx < len(groups) && groups[idx].StartCharCode <= c {
		return groups[idx].StartGlyphID + glyph.ID(c-groups[idx].StartCharCode)
	}
	return 0
}

// CodeRange returns the smallest and largest code point in the subtable.
func (cmap *Format12) CodeRange() (low, high rune) {
	if len(cmap.Groups) == 0 {
		return 0, 0
	}
	return rune(cmap.Groups[0].StartCharCode),
		rune(cmap.Groups[len(cmap.Groups)-1].EndCharCode)
}

// mappedCodes returns all code points of a subtable, for building
// reverse maps.  Dense subtables enumerate their code range.
func mappedCodes(sub Subtable) []rune {
	switch s := sub.(type) {
	case *Format12:
		var rr []rune
		total := 0
		for _, g := range s.Groups {
			n := int(g.EndCharCode-g.StartCharCode) + 1
			total += n
			if total > 0x20000 {
				break
			}
			for c := g.StartCharCode; c <= g.EndCharCode; c++ {
				rr = append(rr, rune(c))
			}
		}
		return rr
	case Format4:
		keys := maps.Keys(s)
		rr := make([]rune, len(keys))
		for i, k := range keys {
			rr[i] = rune(k)
		}
		sort.Slice(rr, func(i, j int) bool { return rr[i] < rr[j] })
		return rr
	default:
		low, high := sub.CodeRange()
		var rr []rune
		for c := low; c <= high; c++ {
			rr = append(rr, c)
		}
		return rr
	}
}

// Reverse builds the glyph-to-codepoint multimap for a subtable.
func Reverse(sub Subtable) map[glyph.ID][]rune {
	res := make(map[glyph.ID][]rune)
	for _, c := range mappedCodes(sub) {
		gid := sub.Lookup(c)
		if gid != 0 {
			res[gid] = append(res[gid], c)
		}
	}
	return res
}
