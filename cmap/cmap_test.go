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

package cmap

import (
	"testing"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/internal/debug"
)

func TestGoFontCmap(t *testing.T) {
	data := debug.Table(debug.FontData(), "cmap")
	if data == nil {
		t.Fatal("no cmap table in test font")
	}
	table, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	best := table.Best()
	if best == nil {
		t.Fatal("no usable subtable")
	}

	gidA := best.Lookup('A')
	if gidA == 0 {
		t.Error("no glyph for 'A'")
	}
	gidB := best.Lookup('B')
	if gidB == 0 || gidB == gidA {
		t.Errorf("glyphs for A and B: got %d and %d", gidA, gidB)
	}
	if best.Lookup(0xE123) != 0 {
		t.Error("private use rune should be unmapped")
	}

	rev := Reverse(best)
	found := false
	for _, r := range rev[gidA] {
		if r == 'A' {
			found = true
		}
	}
	if !found {
		t.Error("reverse lookup does not contain 'A'")
	}
}

func TestFormat4Synthetic(t *testing.T) {
	// one segment: 0x41..0x43 -> gid 5..7, plus the sentinel
	sub := []byte{
		0, 4, // format
		0, 32, // length
		0, 0, // language
		0, 4, // segCountX2
		0, 4, 0, 1, 0, 0, // search parameters
		0x00, 0x43, 0xFF, 0xFF, // endCode
		0, 0, // reservedPad
		0x00, 0x41, 0xFF, 0xFF, // startCode
		0x00, 0xC4, 0x00, 0x01, // idDelta, patched below
		0, 0, 0, 0, // idRangeOffset
	}
	// 0x41 + delta = 5  =>  delta = 5 - 0x41 = -60 = 0xFFC4
	sub[24] = 0xFF
	sub[25] = 0xC4

	got, err := decodeFormat4(sub)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range []rune{'A', 'B', 'C'} {
		if gid := got.Lookup(r); gid != glyph.ID(5+i) {
			t.Errorf("Lookup(%c): got %d, want %d", r, gid, 5+i)
		}
	}
	if got.Lookup('D') != 0 {
		t.Error("unmapped rune must yield glyph 0")
	}
}

func TestFormat6Synthetic(t *testing.T) {
	sub := []byte{
		0, 6, // format
		0, 16, // length
		0, 0, // language
		0, 0x30, // firstCode '0'
		0, 3, // entryCount
		0, 10, 0, 11, 0, 12,
	}
	got, err := decodeFormat6(sub)
	if err != nil {
		t.Fatal(err)
	}
	if gid := got.Lookup('1'); gid != 11 {
		t.Errorf("Lookup('1'): got %d, want 11", gid)
	}
	if got.Lookup('/') != 0 || got.Lookup('3') != 0 {
		t.Error("out-of-range runes must yield glyph 0")
	}
}

func TestFormat12Synthetic(t *testing.T) {
	sub := []byte{
		0, 12, 0, 0, // format, reserved
		0, 0, 0, 40, // length
		0, 0, 0, 0, // language
		0, 0, 0, 2, // nGroups
		0, 0, 0x01, 0x00, 0, 0, 0x01, 0x02, 0, 0, 0, 7, // U+0100..U+0102 -> 7..9
		0, 1, 0x00, 0x00, 0, 1, 0x00, 0x00, 0, 0, 0, 42, // U+10000 -> 42
	}
	got, err := decodeFormat12(sub)
	if err != nil {
		t.Fatal(err)
	}
	if gid := got.Lookup(0x101); gid != 8 {
		t.Errorf("Lookup(U+0101): got %d, want 8", gid)
	}
	if gid := got.Lookup(0x10000); gid != 42 {
		t.Errorf("Lookup(U+10000): got %d, want 42", gid)
	}
	if got.Lookup(0x103) != 0 {
		t.Error("unmapped rune must yield glyph 0")
	}
}

func TestBestPreference(t *testing.T) {
	table := &Table{
		Records: []Record{
			{PlatformID: 3, EncodingID: 1, Format: 4, Subtable: Format4{'x': 1}},
			{PlatformID: 3, EncodingID: 10, Format: 12, Subtable: &Format12{}},
			{PlatformID: 1, EncodingID: 0, Format: 0, Subtable: &Format0{}},
		},
	}
	if _, ok := table.Best().(*Format12); !ok {
		t.Errorf("Best: got %T, want *Format12", table.Best())
	}
}
