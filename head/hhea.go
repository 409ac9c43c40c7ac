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

package head

import (
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/parser"
)

// Hhea contains the information from the "hhea" table.
type Hhea struct {
	Ascent  funit.Int16
	Descent funit.Int16 // negative
	LineGap funit.Int16

	AdvanceWidthMax uint16
	MinLeftBearing  funit.Int16
	MinRightBearing funit.Int16
	MaxExtent       funit.Int16

	CaretSlopeRise int16
	CaretSlopeRun  int16
	CaretOffset    int16

	// NumHMetrics is the number of (advance, lsb) pairs in the
	// "hmtx" table.
	NumHMetrics uint16
}

// DecodeHhea reads the binary "hhea" table.
func DecodeHhea(data []byte) (*Hhea, error) {
	p := parser.New("hhea", data)

	version, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if version != 0x00010000 {
		return nil, parser.NotSupported("hhea", "table version")
	}

	var vals [10]int16
	for i := range vals {
		vals[i], err = p.ReadInt16()
		if err != nil {
			return nil, err
		}
	}
	err = p.Skip(8) // reserved
	if err != nil {
		return nil, err
	}
	metricFormat, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	if metricFormat != 0 {
		return nil, parser.NotSupported("hhea", "metric data format")
	}
	numHMetrics, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	return &Hhea{
		Ascent:          funit.Int16(vals[0]),
		Descent:         funit.Int16(vals[1]),
		LineGap:         funit.Int16(vals[2]),
		AdvanceWidthMax: uint16(vals[3]),
		MinLeftBearing:  funit.Int16(vals[4]),
		MinRightBearing: funit.Int16(vals[5]),
		MaxExtent:       funit.Int16(vals[6]),
		CaretSlopeRise:  vals[7],
		CaretSlopeRun:   vals[8],
		CaretOffset:     vals[9],
		NumHMetrics:     numHMetrics,
	}, nil
}
