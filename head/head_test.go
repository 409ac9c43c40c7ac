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
	"testing"

	"github.com/cdelker/ziafont/internal/debug"
)

func TestDecode(t *testing.T) {
	data := debug.Table(debug.FontData(), "head")
	if data == nil {
		t.Fatal("no head table in test font")
	}
	info, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	if info.UnitsPerEm != 2048 {
		t.Errorf("unitsPerEm: got %d, want 2048", info.UnitsPerEm)
	}
	if info.IndexToLocFormat != 0 && info.IndexToLocFormat != 1 {
		t.Errorf("invalid indexToLocFormat %d", info.IndexToLocFormat)
	}
	if info.BBox.LLx >= info.BBox.URx || info.BBox.LLy >= info.BBox.URy {
		t.Errorf("degenerate font bbox %v", info.BBox)
	}
	if info.Created.IsZero() {
		t.Error("missing creation time")
	}
}

func TestDecodeHhea(t *testing.T) {
	data := debug.Table(debug.FontData(), "hhea")
	if data == nil {
		t.Fatal("no hhea table in test font")
	}
	hhea, err := DecodeHhea(data)
	if err != nil {
		t.Fatal(err)
	}

	if hhea.Ascent <= 0 {
		t.Errorf("ascent: got %d", hhea.Ascent)
	}
	if hhea.Descent >= 0 {
		t.Errorf("descent must be negative, got %d", hhea.Descent)
	}
	if hhea.NumHMetrics == 0 {
		t.Error("numberOfHMetrics is zero")
	}
}

func TestDecodeMaxp(t *testing.T) {
	data := debug.Table(debug.FontData(), "maxp")
	if data == nil {
		t.Fatal("no maxp table in test font")
	}
	maxp, err := DecodeMaxp(data)
	if err != nil {
		t.Fatal(err)
	}
	if maxp.NumGlyphs < 100 {
		t.Errorf("numGlyphs: got %d, expected a complete font", maxp.NumGlyphs)
	}
}

func TestDecodeHeadErrors(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Error("empty head table must fail")
	}

	data := debug.Table(debug.FontData(), "head")
	broken := append([]byte(nil), data...)
	broken[12] = 0 // corrupt the magic number
	broken[13] = 0
	broken[14] = 0
	broken[15] = 0
	if _, err := Decode(broken); err == nil {
		t.Error("wrong magic number must fail")
	}
}
