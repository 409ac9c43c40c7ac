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
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/outline"
)

// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#simpleGlyphFlags
const (
	flagOnCurve    = 0x01 // ON_CURVE_POINT
	flagXShortVec  = 0x02 // X_SHORT_VECTOR
	flagYShortVec  = 0x04 // Y_SHORT_VECTOR
	flagRepeat     = 0x08 // REPEAT_FLAG
	flagXSameOrPos = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSameOrPos = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
)

// SimpleGlyph is a simple glyph in its undecoded form.
type SimpleGlyph struct {
	NumContours int16
	Encoded     []byte
}

// A Point is a point in a glyph outline.
type Point struct {
	X, Y    funit.Int16
	OnCurve bool
}

// A Contour is a closed sequence of points.
type Contour []Point

// SimpleUnpacked contains the decoded contours of a simple glyph.
type SimpleUnpacked struct {
	Contours []Contour
}

// Unpack decodes the contours of a simple glyph.
func (sg SimpleGlyph) Unpack() (*SimpleUnpacked, error) {
	buf := sg.Encoded

	numContours := int(sg.NumContours)
	if len(buf) < 2*numContours+2 {
		return nil, errInvalidGlyphData
	}

	endPtsOfContours := make([]uint16, numContours)
	for i := range endPtsOfContours {
		endPtsOfContours[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
	}
	buf = buf[2*numContours:]

	var numPoints int
	if numContours > 0 {
		numPoints = int(endPtsOfContours[numContours-1]) + 1
	}

	// hinting instructions are not used
	instructionLength := int(buf[0])<<8 | int(buf[1])
	if len(buf) < 2+instructionLength {
		return nil, errInvalidGlyphData
	}
	buf = buf[2+instructionLength:]

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		if len(buf) < 1 {
			return nil, errInvalidGlyphData
		}
		flag := buf[0]
		buf = buf[1:]
		flags[i] = flag
		i++
		if flag&flagRepeat != 0 {
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			count := int(buf[0])
			buf = buf[1:]
			for count > 0 && i < numPoints {
				flags[i] = flag
				i++
				count--
			}
		}
	}

	// x-coordinate deltas
	xx := make([]funit.Int16, numPoints)
	var x funit.Int16
	for i, flag := range flags {
		if flag&flagXShortVec != 0 {
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			dx := funit.Int16(buf[0])
			buf = buf[1:]
			if flag&flagXSameOrPos != 0 {
				x += dx
			} else {
				x -= dx
			}
		} else if flag&flagXSameOrPos == 0 {
			if len(buf) < 2 {
				return nil, errInvalidGlyphData
			}
			dx := funit.Int16(buf[0])<<8 | funit.Int16(buf[1])
			buf = buf[2:]
			x += dx
		}
		xx[i] = x
	}

	// y-coordinate deltas
	yy := make([]funit.Int16, numPoints)
	var y funit.Int16
	for i, flag := range flags {
		if flag&flagYShortVec != 0 {
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			dy := funit.Int16(buf[0])
			buf = buf[1:]
			if flag&flagYSameOrPos != 0 {
				y += dy
			} else {
				y -= dy
			}
		} else if flag&flagYSameOrPos == 0 {
			if len(buf) < 2 {
				return nil, errInvalidGlyphData
			}
			dy := funit.Int16(buf[0])<<8 | funit.Int16(buf[1])
			buf = buf[2:]
			y += dy
		}
		yy[i] = y
	}

	var cc []Contour
	if numContours > 0 {
		cc = make([]Contour, numContours)
		start := 0
		for i := 0; i < numContours; i++ {
			end := int(endPtsOfContours[i]) + 1
			if end < start || end > numPoints {
				return nil, errInvalidGlyphData
			}
			contour := make(Contour, end-start)
			for j := start; j < end; j++ {
				contour[j-start] = Point{xx[j], yy[j], flags[j]&flagOnCurve != 0}
			}
			cc[i] = contour
			start = end
		}
	}

	return &SimpleUnpacked{Contours: cc}, nil
}

// appendTo emits the contours as drawing commands.  Consecutive
// off-curve points imply an on-curve point at their midpoint.
func (sd *SimpleUnpacked) appendTo(g *outline.Glyph) {
	for _, cc := range sd.Contours {
		if len(cc) < 2 {
			continue
		}

		// Find the starting on-curve point.  If the contour consists
		// only of off-curve points, start at the midpoint of the last
		// and first point.
		start := -1
		for i, pt := range cc {
			if pt.OnCurve {
				start = i
				break
			}
		}

		var sx, sy float64
		var rest []Point
		if start >= 0 {
			sx, sy = float64(cc[start].X), float64(cc[start].Y)
			rest = make([]Point, 0, len(cc)-1)
			rest = append(rest, cc[start+1:]...)
			rest = append(rest, cc[:start]...)
		} else {
			last := cc[len(cc)-1]
			sx = float64(last.X+cc[0].X) / 2
			sy = float64(last.Y+cc[0].Y) / 2
			rest = cc
		}
		g.MoveTo(sx, sy)

		var ctrl *Point
		for i := range rest {
			pt := rest[i]
			if pt.OnCurve {
				if ctrl != nil {
					g.QuadTo(float64(ctrl.X), float64(ctrl.Y), float64(pt.X), float64(pt.Y))
					ctrl = nil
				} else {
					g.LineTo(float64(pt.X), float64(pt.Y))
				}
			} else {
				if ctrl != nil {
					mx := float64(ctrl.X+pt.X) / 2
					my := float64(ctrl.Y+pt.Y) / 2
					g.QuadTo(float64(ctrl.X), float64(ctrl.Y), mx, my)
				}
				ctrl = &rest[i]
			}
		}
		if ctrl != nil {
			// the contour curves back to its starting point
			g.QuadTo(float64(ctrl.X), float64(ctrl.Y), sx, sy)
		}
		g.ClosePath()
	}
}
