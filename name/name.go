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

// Package name reads the "name" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/cdelker/ziafont/parser"
)

// Standard name IDs.
const (
	IDCopyright      = 0
	IDFamily         = 1
	IDSubfamily      = 2
	IDUniqueID       = 3
	IDFullName       = 4
	IDVersion        = 5
	IDPostScriptName = 6
	IDTrademark      = 7
	IDManufacturer   = 8
	IDDesigner       = 9
	IDDescription    = 10
	IDVendorURL      = 11
	IDDesignerURL    = 12
	IDLicense        = 13
	IDLicenseURL     = 14
)

// Table maps name IDs to decoded strings.
type Table map[uint16]string

// Decode reads the binary "name" table.
//
// For each name ID, records are chosen with preference Windows Unicode
// BMP (platform 3, encoding 1), then Macintosh Roman (platform 1,
// encoding 0), then Unicode (platform 0).
func Decode(data []byte) (Table, error) {
	p := parser.New("name", data)

	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format > 1 {
		return nil, parser.NotSupported("name", "table format")
	}
	count, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	storageOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	utf16Dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	macDec := charmap.Macintosh.NewDecoder()

	res := Table{}
	rank := map[uint16]int{}
	for i := 0; i < int(count); i++ {
		platformID, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		encodingID, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		err = p.Skip(2) // languageID
		if err != nil {
			return nil, err
		}
		nameID, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		length, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		offset, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}

		var r int
		switch {
		case platformID == 3 && encodingID == 1:
			r = 3
		case platformID == 1 && encodingID == 0:
			r = 2
		case platformID == 0:
			r = 1
		default:
			continue
		}
		if r <= rank[nameID] {
			continue
		}

		sub, err := p.Sub(int(storageOffset)+int(offset), int(length))
		if err != nil {
			continue // skip records pointing outside the table
		}

		var s []byte
		if platformID == 1 {
			s, err = macDec.Bytes(sub.Data())
		} else {
			s, err = utf16Dec.Bytes(sub.Data())
		}
		if err != nil {
			continue
		}
		res[nameID] = string(s)
		rank[nameID] = r
	}

	return res, nil
}

// Family returns the font family name.
func (t Table) Family() string { return t[IDFamily] }

// Subfamily returns the font subfamily (style) name.
func (t Table) Subfamily() string { return t[IDSubfamily] }

// FullName returns the full font name.
func (t Table) FullName() string {
	if s := t[IDFullName]; s != "" {
		return s
	}
	if sub := t.Subfamily(); sub != "" {
		return t.Family() + " " + sub
	}
	return t.Family()
}

// PostScriptName returns the PostScript name of the font.
func (t Table) PostScriptName() string { return t[IDPostScriptName] }
