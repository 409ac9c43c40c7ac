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

import (
	"strconv"
	"strings"
)

// dictOp is a key in a CFF DICT.  Two-byte operators are stored as
// 0x0c00 + the second byte.
type dictOp uint16

// Top DICT and Private DICT operators.
const (
	opVersion            dictOp = 0x0000
	opNotice             dictOp = 0x0001
	opFullName           dictOp = 0x0002
	opFamilyName         dictOp = 0x0003
	opWeight             dictOp = 0x0004
	opFontBBox           dictOp = 0x0005
	opCharset            dictOp = 0x000F
	opEncoding           dictOp = 0x0010
	opCharStrings        dictOp = 0x0011
	opPrivate            dictOp = 0x0012
	opSubrs              dictOp = 0x0013
	opDefaultWidthX      dictOp = 0x0014
	opNominalWidthX      dictOp = 0x0015
	opCopyright          dictOp = 0x0c00
	opIsFixedPitch       dictOp = 0x0c01
	opItalicAngle        dictOp = 0x0c02
	opUnderlinePosition  dictOp = 0x0c03
	opUnderlineThickness dictOp = 0x0c04
	opCharstringType     dictOp = 0x0c06
	opFontMatrix         dictOp = 0x0c07
	opROS                dictOp = 0x0c1e
	opFDArray            dictOp = 0x0c24
	opFDSelect           dictOp = 0x0c25
)

// cffDict is a decoded DICT structure.
type cffDict map[dictOp][]float64

// decodeDict reads a DICT structure.
func decodeDict(data []byte) (cffDict, error) {
	res := cffDict{}
	var operands []float64

	for len(data) > 0 {
		b0 := data[0]
		switch {
		case b0 <= 21: // operator
			op := dictOp(b0)
			data = data[1:]
			if b0 == 12 {
				if len(data) < 1 {
					return nil, errCorruptDict
				}
				op = 0x0c00 | dictOp(data[0])
				data = data[1:]
			}
			res[op] = operands
			operands = nil

		case b0 == 28:
			if len(data) < 3 {
				return nil, errCorruptDict
			}
			val := int16(data[1])<<8 | int16(data[2])
			operands = append(operands, float64(val))
			data = data[3:]
		case b0 == 29:
			if len(data) < 5 {
				return nil, errCorruptDict
			}
			val := int32(data[1])<<24 | int32(data[2])<<16 | int32(data[3])<<8 | int32(data[4])
			operands = append(operands, float64(val))
			data = data[5:]
		case b0 == 30: // real number, nibble-encoded
			val, used, err := readReal(data[1:])
			if err != nil {
				return nil, err
			}
			operands = append(operands, val)
			data = data[1+used:]
		case b0 >= 32 && b0 <= 246:
			operands = append(operands, float64(int(b0)-139))
			data = data[1:]
		case b0 >= 247 && b0 <= 250:
			if len(data) < 2 {
				return nil, errCorruptDict
			}
			operands = append(operands, float64((int(b0)-247)*256+int(data[1])+108))
			data = data[2:]
		case b0 >= 251 && b0 <= 254:
			if len(data) < 2 {
				return nil, errCorruptDict
			}
			operands = append(operands, float64(-(int(b0)-251)*256-int(data[1])-108))
			data = data[2:]
		default:
			return nil, errCorruptDict
		}
	}
	return res, nil
}

// readReal decodes a nibble-encoded real number.
// It returns the value and the number of bytes consumed.
func readReal(data []byte) (float64, int, error) {
	var sb strings.Builder
	for i := 0; i < len(data); i++ {
		for _, nibble := range []byte{data[i] >> 4, data[i] & 0x0F} {
			switch {
			case nibble <= 9:
				sb.WriteByte('0' + nibble)
			case nibble == 0x0a:
				sb.WriteByte('.')
			case nibble == 0x0b:
				sb.WriteByte('E')
			case nibble == 0x0c:
				sb.WriteString("E-")
			case nibble == 0x0e:
				sb.WriteByte('-')
			case nibble == 0x0f:
				s := sb.String()
				if s == "" {
					s = "0"
				}
				val, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return 0, 0, errCorruptDict
				}
				return val, i + 1, nil
			default:
				return 0, 0, errCorruptDict
			}
		}
	}
	return 0, 0, errCorruptDict
}

func (d cffDict) getInt(op dictOp, defVal int) int {
	if vv, ok := d[op]; ok && len(vv) > 0 {
		return int(vv[0])
	}
	return defVal
}

func (d cffDict) getFloat(op dictOp, defVal float64) float64 {
	if vv, ok := d[op]; ok && len(vv) > 0 {
		return vv[0]
	}
	return defVal
}
