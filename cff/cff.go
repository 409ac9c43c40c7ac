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

// Package cff reads glyph outlines from the "CFF " table of an
// OpenType font.  Glyph programs are Type 2 charstrings interpreted
// by a small stack machine.
// https://adobe-type-tools.github.io/font-tech-notes/pdfs/5176.CFF.pdf
// https://adobe-type-tools.github.io/font-tech-notes/pdfs/5177.Type2.pdf
package cff

import (
	"fmt"

	"github.com/cdelker/ziafont/parser"
)

func invalidSince(reason string) error {
	return parser.Invalid("cff", reason)
}

func unsupported(feature string) error {
	return parser.NotSupported("cff", feature)
}

var errCorruptDict = invalidSince("corrupt DICT data")

// Font contains the glyph data of a CFF font.
type Font struct {
	FontName   string
	FamilyName string

	// FontMatrix maps glyph space to text space.
	// The default is [0.001 0 0 0.001 0 0].
	FontMatrix [6]float64

	defaultWidth float64
	nominalWidth float64
	subrs        cffIndex
	gsubrs       cffIndex
	charStrings  cffIndex
}

// Read decodes the "CFF " table.  Glyph outlines are interpreted
// lazily, via [Font.Outline].
func Read(data []byte) (*Font, error) {
	p := parser.New("cff", data)

	// header
	x, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	major := x >> 24
	minor := (x >> 16) & 0xFF
	headerSize := int((x >> 8) & 0xFF)
	offSize := x & 0xFF
	if major == 2 {
		return nil, unsupported(fmt.Sprintf("CFF version %d.%d", major, minor))
	} else if major != 1 || headerSize < 4 || offSize > 4 {
		return nil, invalidSince("invalid header")
	}

	// Name INDEX
	err = p.Seek(headerSize)
	if err != nil {
		return nil, err
	}
	fontNames, err := readIndex(p)
	if err != nil {
		return nil, err
	}
	if len(fontNames) == 0 {
		return nil, invalidSince("no font data")
	} else if len(fontNames) > 1 {
		return nil, unsupported("fontsets with more than one font")
	}

	font := &Font{
		FontName:   string(fontNames[0]),
		FontMatrix: [6]float64{0.001, 0, 0, 0.001, 0, 0},
	}

	// Top DICT INDEX
	topDictIndex, err := readIndex(p)
	if err != nil {
		return nil, err
	}
	if len(topDictIndex) != 1 {
		return nil, invalidSince("wrong number of top dicts")
	}

	// String INDEX
	stringIndex, err := readIndex(p)
	if err != nil {
		return nil, err
	}

	// Global Subr INDEX
	font.gsubrs, err = readIndex(p)
	if err != nil {
		return nil, err
	}

	topDict, err := decodeDict(topDictIndex[0])
	if err != nil {
		return nil, err
	}
	if topDict.getInt(opCharstringType, 2) != 2 {
		return nil, unsupported("charstring type != 2")
	}
	if _, isCID := topDict[opROS]; isCID {
		return nil, unsupported("CID-keyed fonts")
	}
	if mm, ok := topDict[opFontMatrix]; ok && len(mm) == 6 {
		copy(font.FontMatrix[:], mm)
	}
	if vv, ok := topDict[opFamilyName]; ok && len(vv) > 0 {
		font.FamilyName = getString(stringIndex, int(vv[0]))
	}

	// CharStrings INDEX
	font.charStrings, err = readIndexAt(p, topDict.getInt(opCharStrings, 0), "CharStrings")
	if err != nil {
		return nil, err
	}
	if len(font.charStrings) == 0 {
		return nil, invalidSince("no charstrings")
	}

	// Private DICT, with local subroutines
	pp, ok := topDict[opPrivate]
	if ok && len(pp) == 2 {
		length, offset := int(pp[0]), int(pp[1])
		sub, err := p.Sub(offset, length)
		if err != nil {
			return nil, err
		}
		privateDict, err := decodeDict(sub.Data())
		if err != nil {
			return nil, err
		}
		font.defaultWidth = privateDict.getFloat(opDefaultWidthX, 0)
		font.nominalWidth = privateDict.getFloat(opNominalWidthX, 0)
		if subrsOffs := privateDict.getInt(opSubrs, 0); subrsOffs > 0 {
			// the Subrs offset is relative to the Private DICT
			font.subrs, err = readIndexAt(p, offset+subrsOffs, "Subrs")
			if err != nil {
				return nil, err
			}
		}
	}

	return font, nil
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.charStrings)
}

// Outline interprets the charstring for the given glyph.
// Callers are expected to cache the result; the Font itself holds no
// mutable state, so it can be shared between goroutines.
func (f *Font) Outline(gid int) (*Glyph, error) {
	if gid < 0 || gid >= len(f.charStrings) {
		return nil, invalidSince("glyph ID out of range")
	}
	return f.decodeCharString(f.charStrings[gid])
}

// The first 391 string IDs refer to the standard strings and are not
// stored in the font.
const nStdStrings = 391

func getString(stringIndex cffIndex, sid int) string {
	idx := sid - nStdStrings
	if idx < 0 || idx >= len(stringIndex) {
		return ""
	}
	return string(stringIndex[idx])
}
