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

import "github.com/cdelker/ziafont/parser"

// Maxp contains the information from the "maxp" table.
type Maxp struct {
	NumGlyphs int

	// MaxComponentDepth is the levels of recursion reported for
	// composite glyphs.  Zero for CFF-based fonts.
	MaxComponentDepth uint16
}

// DecodeMaxp reads the binary "maxp" table.
// Both version 0.5 (CFF outlines) and version 1.0 (TrueType outlines)
// are supported.
func DecodeMaxp(data []byte) (*Maxp, error) {
	p := parser.New("maxp", data)

	version, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	numGlyphs, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	info := &Maxp{NumGlyphs: int(numGlyphs)}

	switch version {
	case 0x00005000:
		// version 0.5 has no further fields
	case 0x00010000:
		// skip the point/contour/instruction statistics
		err = p.Skip(24)
		if err != nil {
			return nil, err
		}
		info.MaxComponentDepth, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	default:
		return nil, parser.NotSupported("maxp", "table version")
	}

	return info, nil
}
