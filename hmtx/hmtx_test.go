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

package hmtx

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/postscript/funit"
)

func TestDecode(t *testing.T) {
	// two long metrics followed by two bare bearings
	data := []byte{
		0x02, 0x00, 0x00, 0x10, // advance 512, lsb 16
		0x01, 0x00, 0xFF, 0xF0, // advance 256, lsb -16
		0x00, 0x20, // lsb 32
		0x00, 0x40, // lsb 64
	}
	info, err := Decode(data, 2, 4)
	if err != nil {
		t.Fatal(err)
	}

	wantWidths := []uint16{512, 256, 256, 256}
	if d := cmp.Diff(wantWidths, info.Widths); d != "" {
		t.Errorf("widths mismatch (-want +got):\n%s", d)
	}
	wantLSBs := []funit.Int16{16, -16, 32, 64}
	if d := cmp.Diff(wantLSBs, info.LSBs); d != "" {
		t.Errorf("bearings mismatch (-want +got):\n%s", d)
	}

	if info.Advance(3) != 256 {
		t.Errorf("Advance(3): got %d, want 256", info.Advance(3))
	}
	if info.Advance(99) != 0 {
		t.Errorf("Advance out of range: got %d, want 0", info.Advance(99))
	}
	if info.LSB(1) != -16 {
		t.Errorf("LSB(1): got %d, want -16", info.LSB(1))
	}
}

func TestDecodeTruncated(t *testing.T) {
	// missing trailing bearings are tolerated
	data := []byte{
		0x02, 0x00, 0x00, 0x10,
	}
	info, err := Decode(data, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if info.Advance(2) != 512 {
		t.Errorf("trailing advance: got %d, want 512", info.Advance(2))
	}

	if _, err := Decode(data, 0, 3); err == nil {
		t.Error("numberOfHMetrics of zero must fail")
	}
	if _, err := Decode(data, 4, 3); err == nil {
		t.Error("numberOfHMetrics > numGlyphs must fail")
	}
}
