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
	"fmt"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/parser"
)

// LookupList contains the decoded lookup tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#lookup-list-table
type LookupList []*LookupTable

// LookupTable is one lookup of a "GSUB" or "GPOS" table.  The
// subtables are tried in order until one matches.
type LookupTable struct {
	// Type is the lookup type, after resolving extension lookups.
	Type uint16

	Flags uint16

	Subtables []Subtable
}

// Lookup flag bits.
const (
	lookupUseMarkFilteringSet = 0x0010
)

// Subtable is a single decoded lookup subtable.
type Subtable interface {
	// Apply tries to apply the subtable to seq at position i.  It
	// returns nil if the subtable does not match.
	Apply(ctx *Context, seq glyph.Seq, i int) *Match
}

// Match describes the effect of applying a subtable.
type Match struct {
	// Start and End delimit the matched glyphs, as a half-open range.
	Start, End int

	// Replace is the replacement for the matched range.  For
	// positioning lookups this holds the adjusted glyphs.
	Replace []glyph.Info

	// Actions lists nested lookups to apply to the matched range.
	// Actions and Replace are mutually exclusive.
	Actions []SeqLookup

	// nextOverride, if positive, is the position where matching
	// resumes.  The default is after the replacement.
	nextOverride int
}

// SeqLookup is a nested lookup reference of a contextual subtable.
type SeqLookup struct {
	SequenceIndex   uint16
	LookupListIndex LookupIndex
}

// Extension lookup types.
const (
	gsubExtensionLookupType uint16 = 7
	gposExtensionLookupType uint16 = 9
)

func (info *Info) readLookupList(p *parser.Parser, pos int) error {
	err := p.Seek(pos)
	if err != nil {
		return err
	}
	offsets, err := p.ReadUint16Slice()
	if err != nil {
		return err
	}

	info.LookupList = make(LookupList, len(offsets))
	for i, offs := range offsets {
		lookupPos := pos + int(offs)
		err = p.Seek(lookupPos)
		if err != nil {
			return err
		}
		lookupType, err := p.ReadUint16()
		if err != nil {
			return err
		}
		flags, err := p.ReadUint16()
		if err != nil {
			return err
		}
		subtableCount, err := p.ReadUint16()
		if err != nil {
			return err
		}
		subtableOffsets := make([]uint16, subtableCount)
		for j := range subtableOffsets {
			subtableOffsets[j], err = p.ReadUint16()
			if err != nil {
				return err
			}
		}
		if flags&lookupUseMarkFilteringSet != 0 {
			err = p.Skip(2)
			if err != nil {
				return err
			}
		}

		lookup := &LookupTable{Type: lookupType, Flags: flags}
		for _, subtableOffset := range subtableOffsets {
			subtablePos := lookupPos + int(subtableOffset)
			resolvedType, subtable, err := info.readSubtable(p, lookupType, subtablePos)
			if err != nil {
				return err
			}
			if subtable == nil {
				continue
			}
			lookup.Type = resolvedType
			lookup.Subtables = append(lookup.Subtables, subtable)
		}
		info.LookupList[i] = lookup
	}
	return nil
}

// readSubtable decodes one lookup subtable.  Extension subtables are
// dereferenced transparently.  Unsupported lookup types yield a nil
// subtable and a warning.
func (info *Info) readSubtable(p *parser.Parser, lookupType uint16, pos int) (uint16, Subtable, error) {
	extType := gsubExtensionLookupType
	if info.Kind == GPOS {
		extType = gposExtensionLookupType
	}

	if lookupType == extType {
		err := p.Seek(pos)
		if err != nil {
			return 0, nil, err
		}
		format, err := p.ReadUint16()
		if err != nil {
			return 0, nil, err
		}
		if format != 1 {
			return 0, nil, parser.Invalid("gtab", "invalid extension subtable format")
		}
		wrappedType, err := p.ReadUint16()
		if err != nil {
			return 0, nil, err
		}
		extOffset, err := p.ReadUint32()
		if err != nil {
			return 0, nil, err
		}
		if wrappedType == extType {
			return 0, nil, parser.Invalid("gtab", "extension subtable wraps extension")
		}
		return info.readSubtable(p, wrappedType, pos+int(extOffset))
	}

	var subtable Subtable
	var err error
	if info.Kind == GSUB {
		subtable, err = info.readGsubSubtable(p, lookupType, pos)
	} else {
		subtable, err = info.readGposSubtable(p, lookupType, pos)
	}
	if err != nil {
		if _, unsupported := err.(*parser.NotSupportedError); unsupported {
			info.Warnings = append(info.Warnings,
				fmt.Sprintf("skipping %s lookup type %d", info.Kind, lookupType))
			return lookupType, nil, nil
		}
		return 0, nil, err
	}
	return lookupType, subtable, nil
}
