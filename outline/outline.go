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

// Package outline holds the decoded form of a glyph outline, shared by
// the TrueType and CFF backends.
//
// A glyph is an ordered list of drawing commands.  Every contour
// starts with a moveto and ends with a closepath.  Coordinates are in
// font design units with the y axis pointing up.
package outline

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/funit"
)

// Op is the type of a drawing command.
type Op uint8

// The drawing command types.
const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "moveto"
	case OpLineTo:
		return "lineto"
	case OpQuadTo:
		return "quadto"
	case OpCubeTo:
		return "cubeto"
	case OpClose:
		return "closepath"
	default:
		return "unknown"
	}
}

// numArgs returns the number of points used by a command.
func (op Op) numArgs() int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpQuadTo:
		return 2
	case OpCubeTo:
		return 3
	default:
		return 0
	}
}

// Command is a single drawing command.
// Args holds the control points followed by the end point.
type Command struct {
	Op   Op
	Args [3]vec.Vec2
}

// Glyph is a decoded glyph outline.
type Glyph struct {
	Cmds []Command

	open bool // true while a contour has been started but not closed
}

// MoveTo starts a new contour.  An open contour is closed first.
func (g *Glyph) MoveTo(x, y float64) {
	g.ClosePath()
	g.Cmds = append(g.Cmds, Command{
		Op:   OpMoveTo,
		Args: [3]vec.Vec2{{X: x, Y: y}},
	})
	g.open = true
}

// LineTo appends a straight segment.
func (g *Glyph) LineTo(x, y float64) {
	g.Cmds = append(g.Cmds, Command{
		Op:   OpLineTo,
		Args: [3]vec.Vec2{{X: x, Y: y}},
	})
}

// QuadTo appends a quadratic Bézier segment with control point
// (cx, cy) and end point (x, y).
func (g *Glyph) QuadTo(cx, cy, x, y float64) {
	g.Cmds = append(g.Cmds, Command{
		Op:   OpQuadTo,
		Args: [3]vec.Vec2{{X: cx, Y: cy}, {X: x, Y: y}},
	})
}

// CubeTo appends a cubic Bézier segment with control points
// (c1x, c1y), (c2x, c2y) and end point (x, y).
func (g *Glyph) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	g.Cmds = append(g.Cmds, Command{
		Op:   OpCubeTo,
		Args: [3]vec.Vec2{{X: c1x, Y: c1y}, {X: c2x, Y: c2y}, {X: x, Y: y}},
	})
}

// ClosePath closes the current contour, if one is open.
func (g *Glyph) ClosePath() {
	if !g.open {
		return
	}
	g.Cmds = append(g.Cmds, Command{Op: OpClose})
	g.open = false
}

// IsBlank reports whether the glyph draws nothing.
func (g *Glyph) IsBlank() bool {
	return g == nil || len(g.Cmds) == 0
}

// Append adds all commands of other to g, applying the affine
// transformation m to every point.
func (g *Glyph) Append(other *Glyph, m matrix.Matrix) {
	if other == nil {
		return
	}
	g.ClosePath()
	for _, cmd := range other.Cmds {
		out := Command{Op: cmd.Op}
		for i := 0; i < cmd.Op.numArgs(); i++ {
			x, y := m.Apply(cmd.Args[i].X, cmd.Args[i].Y)
			out.Args[i] = vec.Vec2{X: x, Y: y}
		}
		g.Cmds = append(g.Cmds, out)
	}
}

// Path returns the outline as a path iterator.
func (g *Glyph) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if g == nil {
			return
		}
		var buf [3]vec.Vec2
		for _, cmd := range g.Cmds {
			n := cmd.Op.numArgs()
			copy(buf[:n], cmd.Args[:n])
			var pc path.Command
			switch cmd.Op {
			case OpMoveTo:
				pc = path.CmdMoveTo
			case OpLineTo:
				pc = path.CmdLineTo
			case OpQuadTo:
				pc = path.CmdQuadTo
			case OpCubeTo:
				pc = path.CmdCubeTo
			case OpClose:
				pc = path.CmdClose
			}
			if !yield(pc, buf[:n]) {
				return
			}
		}
	}
}

// BBox returns the control-point bounding box of the glyph, rounded
// outwards to design units.  Blank glyphs return the zero rectangle.
func (g *Glyph) BBox() funit.Rect16 {
	if g.IsBlank() {
		return funit.Rect16{}
	}
	var llx, lly, urx, ury float64
	first := true
	for _, cmd := range g.Cmds {
		for i := 0; i < cmd.Op.numArgs(); i++ {
			p := cmd.Args[i]
			if first || p.X < llx {
				llx = p.X
			}
			if first || p.X > urx {
				urx = p.X
			}
			if first || p.Y < lly {
				lly = p.Y
			}
			if first || p.Y > ury {
				ury = p.Y
			}
			first = false
		}
	}
	if first {
		return funit.Rect16{}
	}
	return funit.Rect16{
		LLx: funit.Int16(math.Floor(llx)),
		LLy: funit.Int16(math.Floor(lly)),
		URx: funit.Int16(math.Ceil(urx)),
		URy: funit.Int16(math.Ceil(ury)),
	}
}
