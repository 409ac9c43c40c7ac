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

// Package cmap reads the "cmap" table, which maps unicode code points
// to glyph IDs.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/parser"
)

var errMalformedSubtable = parser.Invalid("cmap", "malformed subtable")

// Subtable is a decoded cmap subtable.
type Subtable interface {
	// Lookup returns the glyph ID for the given rune, or 0
	// (the ".notdef" glyph) if the rune is not mapped.
	Lookup(r rune) glyph.ID

	// CodeRange returns the smallest and largest mapped code point.
	CodeRange() (low, high rune)
}

// Record describes one encoding record of the cmap table.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	Format     uint16
	Subtable   Subtable
}

// Table is a decoded "cmap" table.
type Table struct {
	Records []Record
}

// Decode reads the binary "cmap" table.  Subtables with unsupported
// formats are skipped; at least one supported subtable must be
// present.
func Decode(data []byte) (*Table, error) {
	p := parser.New("cmap", data)

	err := p.Skip(2) // version
	if err != nil {
		return nil, err
	}
	numTables, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	type encodingRecord struct {
		platformID uint16
		encodingID uint16
		offset     uint32
	}
	recs := make([]encodingRecord, numTables)
	for i := range recs {
		recs[i].platformID, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
		recs[i].encodingID, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
		recs[i].offset, err = p.ReadUint32()
		if err != nil {
			return nil, err
		}
	}

	table := &Table{}
	for _, rec := range recs {
		if int(rec.offset)+2 > len(data) {
			continue
		}
		sub := data[rec.offset:]
		format := uint16(sub[0])<<8 | uint16(sub[1])

		var decoded Subtable
		switch format {
		case 0:
			decoded, err = decodeFormat0(sub)
		case 4:
			decoded, err = decodeFormat4(sub)
		case 6:
			decoded, err = decodeFormat6(sub)
		case 12:
			decoded, err = decodeFormat12(sub)
		default:
			continue
		}
		if err != nil {
			continue
		}
		table.Records = append(table.Records, Record{
			PlatformID: rec.platformID,
			EncodingID: rec.encodingID,
			Format:     format,
			Subtable:   decoded,
		})
	}

	if len(table.Records) == 0 {
		return nil, parser.Invalid("cmap", "no supported subtable")
	}
	return table, nil
}

// Best returns the preferred subtable for mapping unicode text:
// format 12 (full unicode), then format 4 (BMP), then 6, then 0.
// Windows (platform 3) subtables win over other platforms of the
// same format.
func (t *Table) Best() Subtable {
	best := -1
	bestScore := -1
	for i, rec := range t.Records {
		var score int
		switch rec.Format {
		case 12:
			score = 400
		case 4:
			score = 300
		case 6:
			score = 200
		case 0:
			score = 100
		}
		if rec.PlatformID == 3 {
			score += 10
		} else if rec.PlatformID == 0 {
			score += 5
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return nil
	}
	return t.Records[best].Subtable
}
