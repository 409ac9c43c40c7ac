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

// Package head reads the "head", "hhea" and "maxp" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
package head

import (
	"time"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/parser"
)

const headMagic = 0x5F0F3CF5

// Info contains the information from the "head" table.
type Info struct {
	FontRevision float64

	Flags    uint16
	MacStyle uint16

	UnitsPerEm uint16

	Created  time.Time
	Modified time.Time

	// BBox is the union of all glyph bounding boxes, in design units.
	BBox funit.Rect16

	LowestRecPPEM uint16

	// IndexToLocFormat selects the "loca" table format:
	// 0 for short (16-bit) offsets, 1 for long (32-bit) offsets.
	IndexToLocFormat int16
}

// MacStyle bits.
const (
	MacStyleBold   = 1 << 0
	MacStyleItalic = 1 << 1
)

// Decode reads the binary "head" table.
func Decode(data []byte) (*Info, error) {
	p := parser.New("head", data)

	version, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if version != 0x00010000 {
		return nil, parser.NotSupported("head", "table version")
	}

	info := &Info{}
	info.FontRevision, err = p.ReadFixed()
	if err != nil {
		return nil, err
	}
	err = p.Skip(4) // checkSumAdjustment
	if err != nil {
		return nil, err
	}
	magic, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if magic != headMagic {
		return nil, parser.Invalid("head", "wrong magic number")
	}

	info.Flags, err = p.ReadUint16()
	if err != nil {
		return nil, err
	}
	info.UnitsPerEm, err = p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if info.UnitsPerEm == 0 {
		return nil, parser.Invalid("head", "unitsPerEm is zero")
	}

	info.Created, err = readTime(p)
	if err != nil {
		return nil, err
	}
	info.Modified, err = readTime(p)
	if err != nil {
		return nil, err
	}

	var bbox [4]int16
	for i := range bbox {
		bbox[i], err = p.ReadInt16()
		if err != nil {
			return nil, err
		}
	}
	info.BBox = funit.Rect16{
		LLx: funit.Int16(bbox[0]),
		LLy: funit.Int16(bbox[1]),
		URx: funit.Int16(bbox[2]),
		URy: funit.Int16(bbox[3]),
	}

	info.MacStyle, err = p.ReadUint16()
	if err != nil {
		return nil, err
	}
	info.LowestRecPPEM, err = p.ReadUint16()
	if err != nil {
		return nil, err
	}
	err = p.Skip(2) // fontDirectionHint
	if err != nil {
		return nil, err
	}
	info.IndexToLocFormat, err = p.ReadInt16()
	if err != nil {
		return nil, err
	}
	if info.IndexToLocFormat != 0 && info.IndexToLocFormat != 1 {
		return nil, parser.Invalid("head", "invalid indexToLocFormat")
	}

	return info, nil
}

// The LONGDATETIME epoch is midnight, January 1, 1904.
var fontEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

func readTime(p *parser.Parser) (time.Time, error) {
	hi, err := p.ReadUint32()
	if err != nil {
		return time.Time{}, err
	}
	lo, err := p.ReadUint32()
	if err != nil {
		return time.Time{}, err
	}
	seconds := int64(hi)<<32 | int64(lo)
	if seconds == 0 {
		return time.Time{}, nil
	}
	return fontEpoch.Add(time.Duration(seconds) * time.Second), nil
}
