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

// Package glyf reads the "glyf" and "loca" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca
package glyf

import (
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/outline"
	"github.com/cdelker/ziafont/parser"
)

// MaxComponentDepth limits the recursion when resolving composite
// glyphs, to guard against malformed fonts with component cycles.
const MaxComponentDepth = 64

var (
	errInvalidGlyphData = parser.Invalid("glyf", "invalid glyph data")
	errComponentDepth   = parser.Invalid("glyf", "composite glyph nesting too deep")
)

// Glyphs contains the TrueType glyph outlines of a font, indexed by
// glyph ID.  Entries for blank glyphs (e.g. the space) are nil.
type Glyphs []*Glyph

// Glyph is a single glyph from the "glyf" table.
type Glyph struct {
	funit.Rect16
	Data any // either SimpleGlyph or CompositeGlyph
}

// Decode converts the data of the "glyf" and "loca" tables into a
// slice of glyphs.  The value of locaFormat comes from the
// indexToLocFormat field of the "head" table.
func Decode(glyfData, locaData []byte, locaFormat int16) (Glyphs, error) {
	offs, err := decodeLoca(locaData, locaFormat)
	if err != nil {
		return nil, err
	}

	numGlyphs := len(offs) - 1
	if numGlyphs < 0 {
		return Glyphs{}, nil
	}

	gg := make(Glyphs, numGlyphs)
	for i := range gg {
		if offs[i] > offs[i+1] || offs[i+1] > len(glyfData) {
			return nil, parser.Invalid("glyf", "invalid loca offset")
		}
		g, err := decodeGlyph(glyfData[offs[i]:offs[i+1]])
		if err != nil {
			return nil, err
		}
		gg[i] = g
	}
	return gg, nil
}

// decodeLoca returns the numGlyphs+1 glyph offsets from the "loca"
// table.  Short format offsets are stored divided by two.
func decodeLoca(locaData []byte, locaFormat int16) ([]int, error) {
	var offs []int
	switch locaFormat {
	case 0:
		n := len(locaData) / 2
		offs = make([]int, n)
		for i := range offs {
			offs[i] = (int(locaData[2*i])<<8 | int(locaData[2*i+1])) * 2
		}
	case 1:
		n := len(locaData) / 4
		offs = make([]int, n)
		for i := range offs {
			offs[i] = int(locaData[4*i])<<24 | int(locaData[4*i+1])<<16 |
				int(locaData[4*i+2])<<8 | int(locaData[4*i+3])
		}
	default:
		return nil, parser.Invalid("loca", "invalid indexToLocFormat")
	}
	if len(offs) < 1 {
		return nil, parser.Invalid("loca", "table too short")
	}
	return offs, nil
}

// decodeGlyph decodes one glyph slot.  Zero-length slots denote blank
// glyphs and decode to nil.  The result retains sub-slices of data.
func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return nil, nil
	} else if len(data) < 10 {
		return nil, parser.Invalid("glyf", "incomplete glyph header")
	}

	var glyphData any
	numCont := int16(data[0])<<8 | int16(data[1])
	if numCont >= 0 {
		glyphData = SimpleGlyph{
			NumContours: numCont,
			Encoded:     data[10:],
		}
	} else {
		comp, err := decodeComposite(data[10:])
		if err != nil {
			return nil, err
		}
		glyphData = *comp
	}

	return &Glyph{
		Rect16: funit.Rect16{
			LLx: funit.Int16(data[2])<<8 | funit.Int16(data[3]),
			LLy: funit.Int16(data[4])<<8 | funit.Int16(data[5]),
			URx: funit.Int16(data[6])<<8 | funit.Int16(data[7]),
			URy: funit.Int16(data[8])<<8 | funit.Int16(data[9]),
		},
		Data: glyphData,
	}, nil
}

// Outline returns the decoded outline of a glyph.  Composite glyphs
// are resolved recursively with their component transformations
// applied.
func (gg Glyphs) Outline(gid glyph.ID) (*outline.Glyph, error) {
	if int(gid) >= len(gg) {
		return nil, parser.Invalid("glyf", "glyph ID out of range")
	}
	res := &outline.Glyph{}
	err := gg.appendOutline(res, gid, 0)
	if err != nil {
		return nil, err
	}
	res.ClosePath()
	return res, nil
}

func (gg Glyphs) appendOutline(res *outline.Glyph, gid glyph.ID, depth int) error {
	if depth > MaxComponentDepth {
		return errComponentDepth
	}
	if int(gid) >= len(gg) || gg[gid] == nil {
		return nil // blank glyph
	}

	switch data := gg[gid].Data.(type) {
	case SimpleGlyph:
		unpacked, err := data.Unpack()
		if err != nil {
			return err
		}
		unpacked.appendTo(res)
		return nil
	case CompositeGlyph:
		for _, comp := range data.Components {
			if comp.PointAnchored {
				return parser.NotSupported("glyf", "point-anchored composite component")
			}
			child := &outline.Glyph{}
			err := gg.appendOutline(child, comp.GlyphIndex, depth+1)
			if err != nil {
				return err
			}
			child.ClosePath()
			res.Append(child, comp.Transform)
		}
		return nil
	default:
		return errInvalidGlyphData
	}
}
