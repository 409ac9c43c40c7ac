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
	"strings"
	"testing"
)

func TestSVGReuse(t *testing.T) {
	f := loadTestFont(t)

	text := f.Text("loop", nil)
	svg := text.SVG()

	if !strings.HasPrefix(svg, "<svg ") {
		t.Fatalf("not an svg document: %.40q", svg)
	}
	if !strings.Contains(svg, "viewBox=") {
		t.Error("missing viewBox")
	}
	if !strings.Contains(svg, "<defs>") || !strings.Contains(svg, "<use ") {
		t.Error("reuse mode must emit defs and use elements")
	}

	// "loop" has two distinct o glyphs but only one definition
	id := f.glyphID(f.GlyphIndex('o'))
	if n := strings.Count(svg, `id="`+id+`"`); n != 1 {
		t.Errorf("glyph %q defined %d times, want 1", id, n)
	}
	if n := strings.Count(svg, `href="#`+id+`"`); n != 2 {
		t.Errorf("glyph %q used %d times, want 2", id, n)
	}
}

func TestSVGInline(t *testing.T) {
	f := loadTestFont(t)
	config := f.Config
	config.SVG2 = false

	text := f.Text("ab", &TextOptions{Config: &config, Color: "#102030"})
	svg := text.SVG()

	if strings.Contains(svg, "<use ") {
		t.Error("compatibility mode must not use reuse elements")
	}
	if strings.Count(svg, "<path ") != 2 {
		t.Errorf("want 2 inline paths, got %d", strings.Count(svg, "<path "))
	}
	if !strings.Contains(svg, `fill="#102030"`) {
		t.Error("missing fill color")
	}
}

func TestFmtNum(t *testing.T) {
	cases := []struct {
		x    float64
		prec int
		want string
	}{
		{1.23456, 2, "1.23"},
		{1.20001, 2, "1.2"},
		{3.0, 2, "3"},
		{-0.0001, 2, "0"},
		{-12.5, 1, "-12.5"},
		{0.999, 1, "1"},
	}
	for _, c := range cases {
		if got := fmtNum(c.x, c.prec); got != c.want {
			t.Errorf("fmtNum(%v, %d): got %q, want %q", c.x, c.prec, got, c.want)
		}
	}
}

func TestSVGDebug(t *testing.T) {
	f := loadTestFont(t)
	config := f.Config
	config.Debug = true

	svg := f.Text("hi\nho", &TextOptions{Config: &config}).SVG()
	if !strings.Contains(svg, `stroke="red"`) {
		t.Error("debug mode must draw baselines")
	}
	if !strings.Contains(svg, `stroke-dasharray`) {
		t.Error("debug mode must draw the bounding box")
	}
	if !strings.Contains(svg, "<circle ") {
		t.Error("debug mode must mark the origin")
	}
}

func TestGlyphSVG(t *testing.T) {
	f := loadTestFont(t)

	svg := f.GlyphSVG(f.GlyphIndex('&'), 48)
	if !strings.Contains(svg, "<path ") {
		t.Error("glyph drawing must contain a path")
	}

	annotated := f.InspectGlyph(f.GlyphIndex('&'), 48)
	if !strings.Contains(annotated, "<circle ") {
		t.Error("inspection must mark outline points")
	}
	if len(annotated) <= len(svg) {
		t.Error("inspection must add annotation elements")
	}
}

func TestDrawOn(t *testing.T) {
	f := loadTestFont(t)
	canvas := NewElement("svg")
	canvas.Set("xmlns", "http://www.w3.org/2000/svg")

	a := f.Text("one", nil)
	b := f.Text("two", nil)
	a.DrawOn(canvas, 0, 0)
	b.DrawOn(canvas, 0, 60)

	out := canvas.String()
	if strings.Count(out, "<defs>") != 1 {
		t.Errorf("want a single shared defs block, got %d",
			strings.Count(out, "<defs>"))
	}
	// "one" and "two" share the o glyph definition
	id := f.glyphID(f.GlyphIndex('o'))
	if n := strings.Count(out, `id="`+id+`"`); n != 1 {
		t.Errorf("glyph %q defined %d times, want 1", id, n)
	}
}

func TestElement(t *testing.T) {
	e := NewElement("g")
	e.Set("fill", "red")
	e.Set("fill", "blue")
	e.Append(NewElement("path")).Set("d", "M 0 0")

	got := e.String()
	want := `<g fill="blue"><path d="M 0 0"/></g>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	esc := NewElement("t")
	esc.Set("v", `a<b&"c`)
	if !strings.Contains(esc.String(), "a&lt;b&amp;&quot;c") {
		t.Errorf("attribute escaping failed: %s", esc.String())
	}
}
