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

// Package hmtx reads the "hmtx" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

import (
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/parser"
)

// Info contains the horizontal metrics for all glyphs of a font.
type Info struct {
	// Widths contains the advance width for each glyph, indexed by
	// glyph ID.  Glyphs past numberOfHMetrics share the final advance.
	Widths []uint16

	// LSBs contains the left side bearing for each glyph.
	LSBs []funit.Int16
}

// Decode reads the binary "hmtx" table.  The number of long metrics
// comes from the "hhea" table, the glyph count from "maxp".
func Decode(data []byte, numHMetrics, numGlyphs int) (*Info, error) {
	if numHMetrics < 1 || numHMetrics > numGlyphs {
		return nil, parser.Invalid("hmtx", "invalid numberOfHMetrics")
	}

	p := parser.New("hmtx", data)
	info := &Info{
		Widths: make([]uint16, numGlyphs),
		LSBs:   make([]funit.Int16, numGlyphs),
	}

	var err error
	var advance uint16
	for i := 0; i < numHMetrics; i++ {
		advance, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
		lsb, err := p.ReadInt16()
		if err != nil {
			return nil, err
		}
		info.Widths[i] = advance
		info.LSBs[i] = funit.Int16(lsb)
	}

	// The remaining glyphs repeat the last advance width and store
	// only a left side bearing.  Some fonts truncate this part; treat
	// missing entries as zero bearing.
	for i := numHMetrics; i < numGlyphs; i++ {
		info.Widths[i] = advance
		lsb, err := p.ReadInt16()
		if err != nil {
			continue
		}
		info.LSBs[i] = funit.Int16(lsb)
	}

	return info, nil
}

// Advance returns the advance width for the given glyph,
// in font design units.
func (info *Info) Advance(gid glyph.ID) uint16 {
	if int(gid) >= len(info.Widths) {
		return 0
	}
	return info.Widths[gid]
}

// LSB returns the left side bearing for the given glyph,
// in font design units.
func (info *Info) LSB(gid glyph.ID) funit.Int16 {
	if int(gid) >= len(info.LSBs) {
		return 0
	}
	return info.LSBs[gid]
}
