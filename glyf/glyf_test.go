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

package glyf

import (
	"testing"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/head"
	"github.com/cdelker/ziafont/internal/debug"
	"github.com/cdelker/ziafont/outline"
)

func decodeTestFont(t *testing.T) Glyphs {
	t.Helper()
	fontData := debug.FontData()
	headInfo, err := head.Decode(debug.Table(fontData, "head"))
	if err != nil {
		t.Fatal(err)
	}
	gg, err := Decode(debug.Table(fontData, "glyf"),
		debug.Table(fontData, "loca"), headInfo.IndexToLocFormat)
	if err != nil {
		t.Fatal(err)
	}
	return gg
}

// checkWellFormed verifies that every contour starts with a moveto
// and ends with a closepath.
func checkWellFormed(t *testing.T, g *outline.Glyph) {
	t.Helper()
	open := false
	for _, cmd := range g.Cmds {
		switch cmd.Op {
		case outline.OpMoveTo:
			if open {
				t.Fatal("moveto inside open contour")
			}
			open = true
		case outline.OpClose:
			if !open {
				t.Fatal("closepath without open contour")
			}
			open = false
		default:
			if !open {
				t.Fatalf("%v outside a contour", cmd.Op)
			}
		}
	}
	if open {
		t.Fatal("unclosed contour")
	}
}

func TestDecodeAllGlyphs(t *testing.T) {
	gg := decodeTestFont(t)
	if len(gg) < 100 {
		t.Fatalf("only %d glyphs decoded", len(gg))
	}

	numBlank := 0
	for gid := range gg {
		out, err := gg.Outline(glyph.ID(gid))
		if err != nil {
			t.Fatalf("glyph %d: %v", gid, err)
		}
		if out.IsBlank() {
			numBlank++
			continue
		}
		checkWellFormed(t, out)

		if g := gg[gid]; g != nil {
			// the decoded points stay inside the recorded bbox,
			// with slack for fixed point rounding
			const slack = 2
			got := out.BBox()
			if got.LLx < g.LLx-slack || got.LLy < g.LLy-slack ||
				got.URx > g.URx+slack || got.URy > g.URy+slack {
				t.Errorf("glyph %d: outline box %v exceeds header box %v",
					gid, got, g.Rect16)
			}
		}
	}
	if numBlank == 0 {
		t.Error("expected at least one blank glyph (space)")
	}
}

func TestSimpleTriangle(t *testing.T) {
	// one contour, three on-curve points
	enc := []byte{
		0, 2, // endPtsOfContours
		0, 0, // instructionLength
		0x01 | 0x02 | 0x10 | 0x04 | 0x20, // point 0: on-curve, x short +, y short +
		0x01 | 0x02 | 0x10 | 0x04 | 0x20, // point 1
		0x01 | 0x02 | 0x04 | 0x20,        // point 2: x short negative
		10, 20, 15, // x deltas: +10, +20, 15 back
		0, 40, 0, // y deltas
	}
	sg := SimpleGlyph{NumContours: 1, Encoded: enc}
	unpacked, err := sg.Unpack()
	if err != nil {
		t.Fatal(err)
	}
	if len(unpacked.Contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(unpacked.Contours))
	}
	want := Contour{
		{X: 10, Y: 0, OnCurve: true},
		{X: 30, Y: 40, OnCurve: true},
		{X: 15, Y: 40, OnCurve: true},
	}
	got := unpacked.Contours[0]
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}

	var out outline.Glyph
	unpacked.appendTo(&out)
	if len(out.Cmds) != 4 { // moveto, 2 linetos, close
		t.Fatalf("got %d commands, want 4", len(out.Cmds))
	}
	if out.Cmds[0].Op != outline.OpMoveTo || out.Cmds[3].Op != outline.OpClose {
		t.Error("contour must start with moveto and end with closepath")
	}
}

func TestImplicitMidpoints(t *testing.T) {
	// two consecutive off-curve points imply an on-curve midpoint
	cc := Contour{
		{X: 0, Y: 0, OnCurve: true},
		{X: 10, Y: 10, OnCurve: false},
		{X: 30, Y: 10, OnCurve: false},
		{X: 40, Y: 0, OnCurve: true},
	}
	sd := &SimpleUnpacked{Contours: []Contour{cc}}
	var out outline.Glyph
	sd.appendTo(&out)

	var quads []outline.Command
	for _, cmd := range out.Cmds {
		if cmd.Op == outline.OpQuadTo {
			quads = append(quads, cmd)
		}
	}
	if len(quads) != 2 {
		t.Fatalf("got %d quads, want 2", len(quads))
	}
	// the implied midpoint of (10,10) and (30,10)
	mid := quads[0].Args[1]
	if mid.X != 20 || mid.Y != 10 {
		t.Errorf("implicit midpoint: got (%g, %g), want (20, 10)", mid.X, mid.Y)
	}
}

// squareGlyph returns an encoded 50x50 square with its lower left
// corner at the origin.
func squareGlyph() *Glyph {
	return &Glyph{
		Rect16: funit.Rect16{LLx: 0, LLy: 0, URx: 50, URy: 50},
		Data: SimpleGlyph{NumContours: 1, Encoded: []byte{
			0, 3, // endPtsOfContours
			0, 0, // instructionLength
			0x31, 0x33, 0x35, 0x23, // flags
			50, 50, // x deltas (short)
			50, // y deltas (short)
		}},
	}
}

func TestCompositeTransform(t *testing.T) {
	// glyph 1 references the square shifted by (100, 0)
	comp := &Glyph{Data: CompositeGlyph{Components: []Component{{
		GlyphIndex: 0,
		Transform:  [6]float64{1, 0, 0, 1, 100, 0},
	}}}}
	gg := Glyphs{squareGlyph(), comp}

	out, err := gg.Outline(1)
	if err != nil {
		t.Fatal(err)
	}
	bbox := out.BBox()
	if bbox.LLx != 100 || bbox.URx != 150 || bbox.LLy != 0 || bbox.URy != 50 {
		t.Errorf("transformed bbox: got %v", bbox)
	}
}

func TestCompositeCycle(t *testing.T) {
	// a composite glyph referencing itself must fail, not loop
	comp := &Glyph{Data: CompositeGlyph{Components: []Component{{
		GlyphIndex: 0,
		Transform:  [6]float64{1, 0, 0, 1, 10, 0},
	}}}}
	gg := Glyphs{comp}

	_, err := gg.Outline(0)
	if err == nil {
		t.Fatal("self-referencing composite must fail")
	}
}
