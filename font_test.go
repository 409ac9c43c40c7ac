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
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/outline"
)

func loadTestFont(t *testing.T) *Font {
	t.Helper()
	f, err := Load(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestLoad(t *testing.T) {
	f := loadTestFont(t)

	if f.FamilyName() != "Go" {
		t.Errorf("family: got %q, want %q", f.FamilyName(), "Go")
	}
	if f.UnitsPerEm() != 2048 {
		t.Errorf("unitsPerEm: got %d, want 2048", f.UnitsPerEm())
	}
	if f.NumGlyphs() < 100 {
		t.Errorf("numGlyphs: got %d", f.NumGlyphs())
	}
	if f.Ascent() <= 0 || f.Descent() >= 0 {
		t.Errorf("bad vertical metrics: ascent %d, descent %d",
			f.Ascent(), f.Descent())
	}
	if f.IsCFF() {
		t.Error("goregular is a TrueType font")
	}

	if err := f.VerifyChecksums(); err != nil {
		t.Errorf("checksum verification: %v", err)
	}
}

func TestLoadBold(t *testing.T) {
	f, err := Load(gobold.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if f.Subfamily() != "Bold" {
		t.Errorf("subfamily: got %q, want %q", f.Subfamily(), "Bold")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load([]byte("not a font file at all")); err == nil {
		t.Error("bad signature must fail")
	}

	// truncate inside the table directory
	if _, err := Load(goregular.TTF[:20]); err == nil {
		t.Error("truncated file must fail")
	}

	// valid header claiming a table beyond the end of file
	data := append([]byte(nil), goregular.TTF[:12+16]...)
	data[12+8] = 0x7F // move the first table's offset out of range
	if _, err := Load(data); err == nil {
		t.Error("table extending beyond the file must fail")
	}
}

func TestMissingTable(t *testing.T) {
	// strip everything but the header: required tables are missing
	data := append([]byte(nil), goregular.TTF[:12]...)
	data[4] = 0 // numTables = 0
	data[5] = 0
	_, err := Load(data)
	var missing *MissingTableError
	if !errors.As(err, &missing) {
		t.Errorf("expected MissingTableError, got %v", err)
	}
}

func TestGlyphIndex(t *testing.T) {
	f := loadTestFont(t)

	gid := f.GlyphIndex('A')
	if gid == 0 {
		t.Fatal("no glyph for 'A'")
	}
	if int(gid) >= f.NumGlyphs() {
		t.Fatalf("glyph ID %d out of range", gid)
	}

	// unmapped code points map to .notdef
	if f.GlyphIndex(0xE723) != 0 {
		t.Error("unmapped rune must yield glyph 0")
	}

	// reverse lookup
	found := false
	for _, r := range f.Codepoints(gid) {
		if r == 'A' {
			found = true
		}
	}
	if !found {
		t.Error("Codepoints does not contain 'A'")
	}
}

func TestGlyphOutlines(t *testing.T) {
	f := loadTestFont(t)

	// every glyph decodes, and every contour is well formed
	for gid := 0; gid < f.NumGlyphs(); gid++ {
		g := f.Glyph(glyph.ID(gid))
		if g.Outline == nil {
			continue
		}
		open := false
		for _, cmd := range g.Outline.Cmds {
			switch cmd.Op {
			case outline.OpMoveTo:
				if open {
					t.Fatalf("glyph %d: moveto inside contour", gid)
				}
				open = true
			case outline.OpClose:
				open = false
			}
		}
		if open {
			t.Fatalf("glyph %d: unclosed contour", gid)
		}
	}
	if len(f.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", f.Warnings())
	}

	// the space draws nothing but still advances
	space := f.Glyph(f.GlyphIndex(' '))
	if space.Outline != nil {
		t.Error("space glyph must be blank")
	}
	if space.Advance == 0 {
		t.Error("space glyph must have an advance")
	}

	// glyph outlines are cached
	gid := f.GlyphIndex('Q')
	if f.Glyph(gid) != f.Glyph(gid) {
		t.Error("glyph cache miss")
	}
}

func TestGlyphBBox(t *testing.T) {
	f := loadTestFont(t)
	fontBox := f.BBox()

	for _, r := range "AgQ|&" {
		g := f.Glyph(f.GlyphIndex(r))
		if g.Outline == nil {
			t.Fatalf("glyph for %q is blank", r)
		}
		if g.BBox.LLx < fontBox.LLx || g.BBox.URx > fontBox.URx ||
			g.BBox.LLy < fontBox.LLy || g.BBox.URy > fontBox.URy {
			t.Errorf("glyph %q box %v outside font box %v", r, g.BBox, fontBox)
		}
	}
}

func TestBadGlyphID(t *testing.T) {
	f := loadTestFont(t)
	g := f.Glyph(glyph.ID(f.NumGlyphs() + 7))
	if g.GID != 0 {
		t.Errorf("out-of-range glyph ID must fall back to .notdef, got %d", g.GID)
	}
}

func TestFeatureDefaults(t *testing.T) {
	f := loadTestFont(t)
	for _, tag := range []string{"kern", "liga", "calt"} {
		if !f.Features[tag] {
			t.Errorf("feature %q must be enabled by default", tag)
		}
	}
	if f.Features["smcp"] {
		t.Error("smcp must be disabled by default")
	}
}
