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

// Package parser reads binary data from SFNT font tables.
//
// TrueType and OpenType files store all values in big-endian byte
// order.  A Parser is a cursor over an immutable byte slice; it does
// not take ownership of the data and can be forked cheaply into
// bounded sub-regions using [Parser.Sub].
package parser

// Parser reads typed values from a byte slice.
type Parser struct {
	subSystem string
	data      []byte
	pos       int
}

// New creates a parser reading from the given data.
// The subSystem name is used in error messages.
func New(subSystem string, data []byte) *Parser {
	return &Parser{subSystem: subSystem, data: data}
}

// Sub returns a new parser restricted to length bytes starting at
// offset.  The new parser shares the underlying data.
func (p *Parser) Sub(offset, length int) (*Parser, error) {
	if offset < 0 || length < 0 || offset+length > len(p.data) {
		return nil, Truncated(p.subSystem)
	}
	return &Parser{
		subSystem: p.subSystem,
		data:      p.data[offset : offset+length],
	}, nil
}

// Data returns the underlying byte slice.
func (p *Parser) Data() []byte {
	return p.data
}

// Len returns the total length of the parser's data.
func (p *Parser) Len() int {
	return len(p.data)
}

// Pos returns the current read position.
func (p *Parser) Pos() int {
	return p.pos
}

// Seek sets the read position to an absolute offset.
func (p *Parser) Seek(offset int) error {
	if offset < 0 || offset > len(p.data) {
		return Truncated(p.subSystem)
	}
	p.pos = offset
	return nil
}

// Skip advances the read position by n bytes.
func (p *Parser) Skip(n int) error {
	return p.Seek(p.pos + n)
}

// ReadBytes reads n bytes from the current position.
// The returned slice aliases the parser's data.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	if n < 0 || p.pos+n > len(p.data) {
		return nil, Truncated(p.subSystem)
	}
	buf := p.data[p.pos : p.pos+n]
	p.pos += n
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (p *Parser) ReadUint8() (uint8, error) {
	if p.pos+1 > len(p.data) {
		return 0, Truncated(p.subSystem)
	}
	x := p.data[p.pos]
	p.pos++
	return x, nil
}

// ReadInt8 reads a signed 8-bit integer.
func (p *Parser) ReadInt8() (int8, error) {
	x, err := p.ReadUint8()
	return int8(x), err
}

// ReadUint16 reads an unsigned 16-bit integer.
func (p *Parser) ReadUint16() (uint16, error) {
	if p.pos+2 > len(p.data) {
		return 0, Truncated(p.subSystem)
	}
	x := uint16(p.data[p.pos])<<8 | uint16(p.data[p.pos+1])
	p.pos += 2
	return x, nil
}

// ReadInt16 reads a signed 16-bit integer.
func (p *Parser) ReadInt16() (int16, error) {
	x, err := p.ReadUint16()
	return int16(x), err
}

// ReadUint24 reads an unsigned 24-bit integer.
func (p *Parser) ReadUint24() (uint32, error) {
	if p.pos+3 > len(p.data) {
		return 0, Truncated(p.subSystem)
	}
	x := uint32(p.data[p.pos])<<16 | uint32(p.data[p.pos+1])<<8 | uint32(p.data[p.pos+2])
	p.pos += 3
	return x, nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (p *Parser) ReadUint32() (uint32, error) {
	if p.pos+4 > len(p.data) {
		return 0, Truncated(p.subSystem)
	}
	x := uint32(p.data[p.pos])<<24 | uint32(p.data[p.pos+1])<<16 |
		uint32(p.data[p.pos+2])<<8 | uint32(p.data[p.pos+3])
	p.pos += 4
	return x, nil
}

// ReadF2Dot14 reads a signed 2.14 fixed point number.
func (p *Parser) ReadF2Dot14() (float64, error) {
	x, err := p.ReadInt16()
	return float64(x) / 16384, err
}

// ReadFixed reads a signed 16.16 fixed point number.
func (p *Parser) ReadFixed() (float64, error) {
	x, err := p.ReadUint32()
	return float64(int32(x)) / 65536, err
}

// ReadTag reads a 4-byte table or feature tag.
func (p *Parser) ReadTag() (string, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadUint16Slice reads a length-prefixed array of 16-bit integers.
func (p *Parser) ReadUint16Slice() ([]uint16, error) {
	n, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	res := make([]uint16, n)
	for i := range res {
		res[i], err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
