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

package cff

import "github.com/cdelker/ziafont/parser"

// cffIndex is a CFF INDEX structure: a list of variable-sized blobs.
type cffIndex [][]byte

// readIndex reads an INDEX structure from the current position of p.
// The parser is left positioned after the INDEX.
func readIndex(p *parser.Parser) (cffIndex, error) {
	count, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	offSize, err := p.ReadUint8()
	if err != nil {
		return nil, err
	}
	if offSize < 1 || offSize > 4 {
		return nil, invalidSince("invalid offset size")
	}

	offs := make([]int, int(count)+1)
	for i := range offs {
		var x uint32
		switch offSize {
		case 1:
			var v uint8
			v, err = p.ReadUint8()
			x = uint32(v)
		case 2:
			var v uint16
			v, err = p.ReadUint16()
			x = uint32(v)
		case 3:
			x, err = p.ReadUint24()
		case 4:
			x, err = p.ReadUint32()
		}
		if err != nil {
			return nil, err
		}
		offs[i] = int(x)
	}
	if offs[0] != 1 {
		return nil, invalidSince("invalid INDEX offset")
	}

	// object data starts one byte before the position of offset 1
	base := p.Pos() - 1
	res := make(cffIndex, count)
	for i := 0; i < int(count); i++ {
		if offs[i] > offs[i+1] || base+offs[i+1] > p.Len() {
			return nil, invalidSince("INDEX data out of range")
		}
		res[i] = p.Data()[base+offs[i] : base+offs[i+1]]
	}

	return res, p.Seek(base + offs[count])
}

// readIndexAt reads an INDEX structure at the given offset.
func readIndexAt(p *parser.Parser, offset int, name string) (cffIndex, error) {
	if offset == 0 {
		return nil, invalidSince("missing " + name + " INDEX")
	}
	err := p.Seek(offset)
	if err != nil {
		return nil, err
	}
	return readIndex(p)
}
