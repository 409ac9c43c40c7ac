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

package cff

import (
	"testing"

	"github.com/cdelker/ziafont/outline"
)

// num encodes a small integer operand.
func num(x int) byte {
	if x < -107 || x > 107 {
		panic("operand out of range for one-byte encoding")
	}
	return byte(x + 139)
}

func TestCharstringBox(t *testing.T) {
	font := &Font{defaultWidth: 400, nominalWidth: 500}

	// width 530, then a 100x50 box starting at (10, 20)
	code := []byte{
		num(30), // width delta: 500 + 30
		num(10), num(20), byte(t2rmoveto),
		num(100), byte(t2hlineto),
		num(50), byte(t2vlineto),
		num(-100), byte(t2hlineto),
		byte(t2endchar),
	}
	g, err := font.decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}

	if g.Width != 530 {
		t.Errorf("width: got %g, want 530", g.Width)
	}
	bbox := g.Outline.BBox()
	if bbox.LLx != 10 || bbox.LLy != 20 || bbox.URx != 110 || bbox.URy != 70 {
		t.Errorf("bbox: got %v", bbox)
	}

	last := g.Outline.Cmds[len(g.Outline.Cmds)-1]
	if last.Op != outline.OpClose {
		t.Error("endchar must close the subpath")
	}
}

func TestCharstringDefaultWidth(t *testing.T) {
	font := &Font{defaultWidth: 400, nominalWidth: 500}

	// even operand count before the moveto: no width operand
	code := []byte{
		num(10), num(20), byte(t2rmoveto),
		num(100), byte(t2hlineto),
		byte(t2endchar),
	}
	g, err := font.decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 400 {
		t.Errorf("width: got %g, want defaultWidthX 400", g.Width)
	}
}

func TestCharstringCurves(t *testing.T) {
	font := &Font{}

	code := []byte{
		num(0), num(0), byte(t2rmoveto),
		num(10), num(20), num(30), num(0), num(10), num(-20), byte(t2rrcurveto),
		byte(t2endchar),
	}
	g, err := font.decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}

	var cube *outline.Command
	for i := range g.Outline.Cmds {
		if g.Outline.Cmds[i].Op == outline.OpCubeTo {
			cube = &g.Outline.Cmds[i]
			break
		}
	}
	if cube == nil {
		t.Fatal("no cubic segment emitted")
	}
	want := [3][2]float64{{10, 20}, {40, 20}, {50, 0}}
	for i, w := range want {
		if cube.Args[i].X != w[0] || cube.Args[i].Y != w[1] {
			t.Errorf("control point %d: got (%g, %g), want (%g, %g)",
				i, cube.Args[i].X, cube.Args[i].Y, w[0], w[1])
		}
	}
}

func TestCharstringSubr(t *testing.T) {
	// bias is 107 for fewer than 1240 subroutines; subr 0 is called
	// with operand -107
	sub := []byte{
		num(100), byte(t2hlineto),
		byte(t2return),
	}
	font := &Font{subrs: cffIndex{sub}}

	code := []byte{
		num(0), num(0), byte(t2rmoveto),
		num(-107), byte(t2callsubr),
		byte(t2endchar),
	}
	g, err := font.decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	bbox := g.Outline.BBox()
	if bbox.URx != 100 {
		t.Errorf("bbox after subr call: got %v", bbox)
	}
}

func TestCharstringHintmask(t *testing.T) {
	font := &Font{}

	// two vstem hints followed by a hintmask with one mask byte
	code := []byte{
		num(0), num(10), num(20), num(10), byte(t2vstem),
		byte(t2hintmask), 0xF0,
		num(0), num(0), byte(t2rmoveto),
		num(50), byte(t2hlineto),
		byte(t2endchar),
	}
	g, err := font.decodeCharString(code)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.VStem) != 4 {
		t.Errorf("vstem edges: got %d, want 4", len(g.VStem))
	}
	bbox := g.Outline.BBox()
	if bbox.URx != 50 {
		t.Errorf("outline after hintmask: got %v", bbox)
	}
}

func TestCharstringErrors(t *testing.T) {
	font := &Font{}

	// missing endchar
	_, err := font.decodeCharString([]byte{num(0), num(0), byte(t2rmoveto)})
	if err == nil {
		t.Error("charstring without endchar must fail")
	}

	// unknown two-byte operator
	_, err = font.decodeCharString([]byte{12, 99, byte(t2endchar)})
	if err == nil {
		t.Error("unknown operator must fail")
	}

	// invalid subroutine index
	_, err = font.decodeCharString([]byte{num(5), byte(t2callsubr)})
	if err == nil {
		t.Error("call to missing subroutine must fail")
	}
}

func TestReadReal(t *testing.T) {
	// -2.25 encoded as nibbles: e 2 a 2 5 f
	val, used, err := readReal([]byte{0xE2, 0xA2, 0x5F})
	if err != nil {
		t.Fatal(err)
	}
	if val != -2.25 {
		t.Errorf("value: got %g, want -2.25", val)
	}
	if used != 3 {
		t.Errorf("bytes used: got %d, want 3", used)
	}
}
