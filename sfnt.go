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

package ziafont

import (
	"fmt"

	"github.com/cdelker/ziafont/parser"
)

// The accepted values of the SFNT scaler type field.
const (
	scalerTrueType = 0x00010000
	scalerTrue     = 0x74727565 // 'true'
	scalerOTTO     = 0x4F54544F // 'OTTO'
	scalerTyp1     = 0x74797031 // 'typ1'
)

// ErrBadSignature is returned when the file does not start with a
// known SFNT scaler type.
var ErrBadSignature = parser.Invalid("sfnt", "unrecognized scaler type")

// MissingTableError indicates that a table required for rendering is
// absent from the font file.
type MissingTableError struct {
	Tag string
}

func (err *MissingTableError) Error() string {
	return fmt.Sprintf("sfnt: missing required table %q", err.Tag)
}

// tableRecord is one entry of the SFNT table directory.
type tableRecord struct {
	checksum uint32
	offset   uint32
	length   uint32
}

// directory is a parsed SFNT table directory.
type directory struct {
	data   []byte
	tables map[string]tableRecord
}

// readDirectory parses the 12-byte SFNT header and the table records.
// Tables extending past the end of the file are rejected.
func readDirectory(data []byte) (*directory, error) {
	p := parser.New("sfnt", data)

	scalerType, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	switch scalerType {
	case scalerTrueType, scalerTrue, scalerOTTO, scalerTyp1:
	default:
		return nil, ErrBadSignature
	}

	numTables, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	err = p.Skip(6) // searchRange, entrySelector, rangeShift
	if err != nil {
		return nil, err
	}

	dir := &directory{
		data:   data,
		tables: make(map[string]tableRecord, numTables),
	}
	for i := 0; i < int(numTables); i++ {
		tag, err := p.ReadTag()
		if err != nil {
			return nil, err
		}
		var rec tableRecord
		rec.checksum, err = p.ReadUint32()
		if err != nil {
			return nil, err
		}
		rec.offset, err = p.ReadUint32()
		if err != nil {
			return nil, err
		}
		rec.length, err = p.ReadUint32()
		if err != nil {
			return nil, err
		}
		if int64(rec.offset)+int64(rec.length) > int64(len(data)) {
			return nil, parser.Invalid("sfnt",
				fmt.Sprintf("table %q extends beyond end of file", tag))
		}
		dir.tables[tag] = rec
	}
	return dir, nil
}

// table returns the contents of the named table, or nil if the table
// is not present.
func (dir *directory) table(tag string) []byte {
	rec, ok := dir.tables[tag]
	if !ok {
		return nil
	}
	return dir.data[rec.offset : rec.offset+rec.length]
}

// requiredTable is like table, but fails with a MissingTableError for
// absent tables.
func (dir *directory) requiredTable(tag string) ([]byte, error) {
	data := dir.table(tag)
	if data == nil {
		return nil, &MissingTableError{Tag: tag}
	}
	return data, nil
}

// checkSums verifies the directory checksum of every table except
// "head" (whose checksum covers the whole file).
func (dir *directory) checkSums() error {
	for tag, rec := range dir.tables {
		if tag == "head" {
			continue
		}
		data := dir.data[rec.offset : rec.offset+rec.length]
		var sum uint32
		for i := 0; i < len(data); i += 4 {
			var word uint32
			for j := 0; j < 4; j++ {
				word <<= 8
				if i+j < len(data) {
					word |= uint32(data[i+j])
				}
			}
			sum += word
		}
		if sum != rec.checksum {
			return parser.Invalid("sfnt",
				fmt.Sprintf("checksum mismatch for table %q", tag))
		}
	}
	return nil
}
