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

// Package debug provides real font data for use in unit tests.
package debug

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cdelker/ziafont/parser"
)

// FontData returns the raw bytes of the Go Regular TrueType font.
func FontData() []byte {
	return goregular.TTF
}

// BoldFontData returns the raw bytes of the Go Bold TrueType font.
func BoldFontData() []byte {
	return gobold.TTF
}

// Table extracts one table from an SFNT font file.  It returns nil if
// the table is not present.  The function panics on malformed data,
// which is acceptable for test fixtures.
func Table(fontData []byte, tag string) []byte {
	p := parser.New("debug", fontData)
	if err := p.Skip(4); err != nil {
		panic(err)
	}
	numTables, err := p.ReadUint16()
	if err != nil {
		panic(err)
	}
	if err := p.Skip(6); err != nil {
		panic(err)
	}
	for i := 0; i < int(numTables); i++ {
		t, err := p.ReadTag()
		if err != nil {
			panic(err)
		}
		if err := p.Skip(4); err != nil { // checksum
			panic(err)
		}
		offset, err := p.ReadUint32()
		if err != nil {
			panic(err)
		}
		length, err := p.ReadUint32()
		if err != nil {
			panic(err)
		}
		if t == tag {
			return fontData[offset : offset+length]
		}
	}
	return nil
}
