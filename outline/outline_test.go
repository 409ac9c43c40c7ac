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

package outline

import (
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/postscript/funit"
)

func TestBuildAndBBox(t *testing.T) {
	g := &Glyph{}
	g.MoveTo(10, -5)
	g.LineTo(100, -5)
	g.QuadTo(120, 30, 100, 60)
	g.ClosePath()

	want := funit.Rect16{LLx: 10, LLy: -5, URx: 120, URy: 60}
	if got := g.BBox(); got != want {
		t.Errorf("bbox: got %v, want %v", got, want)
	}

	if g.IsBlank() {
		t.Error("glyph with commands must not be blank")
	}
	var empty *Glyph
	if !empty.IsBlank() {
		t.Error("nil glyph must be blank")
	}
}

func TestMoveToClosesContour(t *testing.T) {
	g := &Glyph{}
	g.MoveTo(0, 0)
	g.LineTo(10, 0)
	g.MoveTo(20, 0) // implicitly closes the first contour
	g.LineTo(30, 0)
	g.ClosePath()

	var closes int
	for _, cmd := range g.Cmds {
		if cmd.Op == OpClose {
			closes++
		}
	}
	if closes != 2 {
		t.Errorf("got %d closepath commands, want 2", closes)
	}
}

func TestAppendTransform(t *testing.T) {
	child := &Glyph{}
	child.MoveTo(0, 0)
	child.LineTo(10, 20)
	child.ClosePath()

	g := &Glyph{}
	g.Append(child, matrix.Matrix{2, 0, 0, 2, 100, 0})

	want := funit.Rect16{LLx: 100, LLy: 0, URx: 120, URy: 40}
	if got := g.BBox(); got != want {
		t.Errorf("transformed bbox: got %v, want %v", got, want)
	}
}

func TestPathRoundTrip(t *testing.T) {
	g := &Glyph{}
	g.MoveTo(0, 0)
	g.CubeTo(10, 0, 20, 10, 30, 10)
	g.ClosePath()

	// re-collecting the iterator must reproduce the commands
	var got []Command
	for cmd, pts := range g.Path() {
		c := Command{}
		switch cmd {
		case path.CmdMoveTo:
			c.Op = OpMoveTo
		case path.CmdLineTo:
			c.Op = OpLineTo
		case path.CmdQuadTo:
			c.Op = OpQuadTo
		case path.CmdCubeTo:
			c.Op = OpCubeTo
		case path.CmdClose:
			c.Op = OpClose
		}
		copy(c.Args[:], pts)
		got = append(got, c)
	}

	if len(got) != len(g.Cmds) {
		t.Fatalf("command count: got %d, want %d", len(got), len(g.Cmds))
	}
	for i := range got {
		if got[i] != g.Cmds[i] {
			t.Errorf("command %d: got %v, want %v", i, got[i], g.Cmds[i])
		}
	}
}
