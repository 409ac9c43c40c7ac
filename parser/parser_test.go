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

package parser

import (
	"errors"
	"testing"
)

func TestReads(t *testing.T) {
	data := []byte{
		0x12, 0x34,
		0xFF, 0xFE,
		0x00, 0x01, 0x02,
		0x80, 0x00, 0x00, 0x00,
		'g', 'l', 'y', 'f',
		0x40, 0x00, // 1.0 in 2.14
	}
	p := New("test", data)

	if x, err := p.ReadUint16(); err != nil || x != 0x1234 {
		t.Errorf("ReadUint16: got %d, %v", x, err)
	}
	if x, err := p.ReadInt16(); err != nil || x != -2 {
		t.Errorf("ReadInt16: got %d, %v", x, err)
	}
	if x, err := p.ReadUint24(); err != nil || x != 0x000102 {
		t.Errorf("ReadUint24: got %d, %v", x, err)
	}
	if x, err := p.ReadUint32(); err != nil || x != 0x80000000 {
		t.Errorf("ReadUint32: got %d, %v", x, err)
	}
	if tag, err := p.ReadTag(); err != nil || tag != "glyf" {
		t.Errorf("ReadTag: got %q, %v", tag, err)
	}
	if x, err := p.ReadF2Dot14(); err != nil || x != 1.0 {
		t.Errorf("ReadF2Dot14: got %g, %v", x, err)
	}

	// all data consumed; further reads must fail
	if _, err := p.ReadUint8(); err == nil {
		t.Error("expected error reading past the end")
	}
}

func TestBounds(t *testing.T) {
	p := New("test", []byte{1, 2, 3, 4})

	if err := p.Seek(5); err == nil {
		t.Error("Seek past end must fail")
	}
	if err := p.Seek(-1); err == nil {
		t.Error("negative Seek must fail")
	}
	if err := p.Seek(2); err != nil {
		t.Fatal(err)
	}
	_, err := p.ReadUint32()
	if err == nil {
		t.Fatal("truncated ReadUint32 must fail")
	}
	var invErr *InvalidFontError
	if !errors.As(err, &invErr) {
		t.Errorf("expected InvalidFontError, got %v", err)
	}
}

func TestSub(t *testing.T) {
	p := New("test", []byte{0, 1, 2, 3, 4, 5, 6, 7})

	sub, err := p.Sub(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Len() != 4 {
		t.Errorf("sub length: got %d, want 4", sub.Len())
	}
	if x, err := sub.ReadUint16(); err != nil || x != 0x0203 {
		t.Errorf("sub read: got %04x, %v", x, err)
	}

	if _, err := p.Sub(6, 4); err == nil {
		t.Error("out-of-range Sub must fail")
	}
}
