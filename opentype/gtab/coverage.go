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

package gtab

import (
	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/parser"
)

// Coverage maps the glyphs covered by a lookup subtable to their
// coverage index.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#coverage-table
type Coverage map[glyph.ID]int

// Contains reports whether a glyph is covered.
func (cov Coverage) Contains(gid glyph.ID) bool {
	_, ok := cov[gid]
	return ok
}

// Index returns the coverage index for a glyph.  The second return
// value is false if the glyph is not covered.
func (cov Coverage) Index(gid glyph.ID) (int, bool) {
	idx, ok := cov[gid]
	return idx, ok
}

// readCoverage reads a coverage table at the given position.
func readCoverage(p *parser.Parser, pos int) (Coverage, error) {
	err := p.Seek(pos)
	if err != nil {
		return nil, err
	}
	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	cov := Coverage{}
	switch format {
	case 1:
		glyphs, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		for i, gid := range glyphs {
			cov[glyph.ID(gid)] = i
		}
	case 2:
		rangeCount, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(rangeCount); i++ {
			start, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			end, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			startIdx, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			if end < start {
				return nil, parser.Invalid("gtab", "invalid coverage range")
			}
			for g := int(start); g <= int(end); g++ {
				cov[glyph.ID(g)] = int(startIdx) + g - int(start)
			}
		}
	default:
		return nil, parser.Invalid("gtab", "invalid coverage format")
	}
	return cov, nil
}

// ClassDef assigns glyphs to classes.  Glyphs not listed are in
// class 0.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#class-definition-table
type ClassDef map[glyph.ID]uint16

// Class returns the class of the given glyph.
func (cd ClassDef) Class(gid glyph.ID) uint16 {
	return cd[gid]
}

// readClassDef reads a class definition table at the given position.
func readClassDef(p *parser.Parser, pos int) (ClassDef, error) {
	err := p.Seek(pos)
	if err != nil {
		return nil, err
	}
	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	res := ClassDef{}
	switch format {
	case 1:
		start, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		classes, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		for i, cls := range classes {
			if cls != 0 {
				res[glyph.ID(int(start)+i)] = cls
			}
		}
	case 2:
		rangeCount, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(rangeCount); i++ {
			start, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			end, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			cls, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			if end < start {
				return nil, parser.Invalid("gtab", "invalid class range")
			}
			if cls == 0 {
				continue
			}
			for g := int(start); g <= int(end); g++ {
				res[glyph.ID(g)] = cls
			}
		}
	default:
		return nil, parser.Invalid("gtab", "invalid class definition format")
	}
	return res, nil
}
