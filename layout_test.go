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
	"math"
	"testing"
)

const eps = 1e-9

func TestAdvancesSum(t *testing.T) {
	f := loadTestFont(t)
	const str = "VALVES"
	const size = 48.0

	scale := size / float64(f.UnitsPerEm())
	var want float64
	for _, r := range str {
		want += float64(f.GlyphAdvance(f.GlyphIndex(r))) * scale
	}

	// goregular has no GPOS table, so the width is exactly the sum of
	// the advance widths, with and without kerning
	text := f.Text(str, &TextOptions{Size: size})
	w, _ := text.Size()
	if math.Abs(w-want) > eps {
		t.Errorf("width: got %g, want %g", w, want)
	}

	text = f.Text(str, &TextOptions{
		Size:     size,
		Features: map[string]bool{"kern": false},
	})
	w, _ = text.Size()
	if math.Abs(w-want) > eps {
		t.Errorf("width without kern: got %g, want %g", w, want)
	}
}

func TestTextHeight(t *testing.T) {
	f := loadTestFont(t)
	const size = 50.0
	scale := size / float64(f.UnitsPerEm())

	text := f.Text("Hello", &TextOptions{Size: size})
	_, h := text.Size()
	want := float64(f.Ascent()-f.Descent()) * scale
	if math.Abs(h-want) > eps {
		t.Errorf("height: got %g, want %g", h, want)
	}
}

func TestMultiLine(t *testing.T) {
	f := loadTestFont(t)
	const size = 48.0
	scale := size / float64(f.UnitsPerEm())

	text := f.Text("Two\nLines", &TextOptions{
		Size:        size,
		HAlign:      HAlignCenter,
		LineSpacing: 0.8,
	})

	glyphs := text.Glyphs()
	var line0, line1 []PositionedGlyph
	for _, g := range glyphs {
		if g.Line == 0 {
			line0 = append(line0, g)
		} else {
			line1 = append(line1, g)
		}
	}
	if len(line0) != 3 || len(line1) != 5 {
		t.Fatalf("glyph counts: got %d and %d", len(line0), len(line1))
	}

	// baselines are separated by (ascent - descent + lineGap) * 0.8
	wantGap := float64(f.Ascent()-f.Descent()+f.LineGap()) * 0.8 * scale
	gotGap := line1[0].Y - line0[0].Y
	if math.Abs(gotGap-wantGap) > eps {
		t.Errorf("baseline gap: got %g, want %g", gotGap, wantGap)
	}

	// centered lines share their midpoint
	mid := func(line []PositionedGlyph) float64 {
		first := line[0].X
		last := line[len(line)-1].X + line[len(line)-1].Advance
		return (first + last) / 2
	}
	if math.Abs(mid(line0)-mid(line1)) > 1e-6 {
		t.Errorf("line midpoints differ: %g vs %g", mid(line0), mid(line1))
	}
}

func TestVAlign(t *testing.T) {
	f := loadTestFont(t)
	const size = 48.0
	scale := size / float64(f.UnitsPerEm())

	base := f.Text("x", &TextOptions{Size: size})
	x, y := base.Baseline()
	if math.Abs(x) > eps || math.Abs(y) > eps {
		t.Errorf("base alignment: baseline at (%g, %g), want origin", x, y)
	}

	top := f.Text("x", &TextOptions{Size: size, VAlign: VAlignTop})
	bbox := top.BBox()
	if math.Abs(bbox.LLy) > eps {
		t.Errorf("top alignment: block top at %g, want 0", bbox.LLy)
	}
	_, y = top.Baseline()
	want := float64(f.Ascent()) * scale
	if math.Abs(y-want) > eps {
		t.Errorf("top alignment: baseline at %g, want %g", y, want)
	}

	bottom := f.Text("x", &TextOptions{Size: size, VAlign: VAlignBottom})
	bbox = bottom.BBox()
	if math.Abs(bbox.URy) > eps {
		t.Errorf("bottom alignment: block bottom at %g, want 0", bbox.URy)
	}

	center := f.Text("x", &TextOptions{Size: size, VAlign: VAlignCenter})
	bbox = center.BBox()
	if math.Abs(bbox.LLy+bbox.URy) > 1e-6 {
		t.Errorf("center alignment: bbox %v not centered", bbox)
	}
}

func TestHAlignBlock(t *testing.T) {
	f := loadTestFont(t)

	right := f.Text("abc", &TextOptions{HAlign: HAlignRight})
	bbox := right.BBox()
	if math.Abs(bbox.URx) > eps {
		t.Errorf("right alignment: right edge at %g, want 0", bbox.URx)
	}

	center := f.Text("abc", &TextOptions{HAlign: HAlignCenter})
	bbox = center.BBox()
	if math.Abs(bbox.LLx+bbox.URx) > 1e-6 {
		t.Errorf("center alignment: bbox %v not centered", bbox)
	}
}

func TestRotation(t *testing.T) {
	f := loadTestFont(t)

	// rotating by 90 degrees turns the baseline vertical
	plain := f.Text("W", nil)
	w, _ := plain.Size()

	rot := f.Text("W", &TextOptions{Rotation: 90})
	m := rot.Transform()
	x, y := m.Apply(w, 0)
	if math.Abs(x) > 1e-6 || math.Abs(math.Abs(y)-w) > 1e-6 {
		t.Errorf("rotated endpoint: got (%g, %g), want (0, ±%g)", x, y, w)
	}
	// after a quarter turn the bbox width equals the block height
	_, h := plain.Size()
	bbox := rot.BBox()
	if math.Abs((bbox.URx-bbox.LLx)-h) > 1e-6 {
		t.Errorf("rotated bbox width: got %g, want %g", bbox.URx-bbox.LLx, h)
	}

	// in anchor mode with bottom alignment, the rotated block sits
	// fully above the anchor
	rotAnchor := f.Text("Wide", &TextOptions{
		Rotation:     30,
		RotationMode: RotationAnchor,
		VAlign:       VAlignBottom,
	})
	bbox = rotAnchor.BBox()
	if bbox.URy > 1e-6 {
		t.Errorf("anchor-aligned block extends below the anchor: %v", bbox)
	}
}

func TestGetSizeIgnoresAlignment(t *testing.T) {
	f := loadTestFont(t)
	a := f.Text("Hello", &TextOptions{})
	b := f.Text("Hello", &TextOptions{HAlign: HAlignRight, VAlign: VAlignCenter})

	aw, ah := a.Size()
	bw, bh := b.Size()
	if aw != bw || ah != bh {
		t.Error("Size must not depend on alignment")
	}
}
