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
	"seehuhn.de/go/geom/matrix"

	"github.com/cdelker/ziafont/glyph"
)

// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#compositeGlyphFlags
const (
	flagArg1And2AreWords    = 0x0001 // ARG_1_AND_2_ARE_WORDS
	flagArgsAreXYValues     = 0x0002 // ARGS_ARE_XY_VALUES
	flagWeHaveAScale        = 0x0008 // WE_HAVE_A_SCALE
	flagMoreComponents      = 0x0020 // MORE_COMPONENTS
	flagWeHaveAnXAndYScale  = 0x0040 // WE_HAVE_AN_X_AND_Y_SCALE
	flagWeHaveATwoByTwo     = 0x0080 // WE_HAVE_A_TWO_BY_TWO
	flagWeHaveInstructions  = 0x0100 // WE_HAVE_INSTRUCTIONS
	flagUseMyMetrics        = 0x0200 // USE_MY_METRICS
	flagOverlapCompound     = 0x0400 // OVERLAP_COMPOUND
	flagScaledComponentOffs = 0x0800 // SCALED_COMPONENT_OFFSET
)

// Component translations are clamped to this many design units, to
// bound pathological transform chains.
const maxComponentOffset = 32768

// CompositeGlyph is a glyph assembled from transformed child glyphs.
type CompositeGlyph struct {
	Components []Component
}

// Component is one child glyph reference of a composite glyph.
type Component struct {
	GlyphIndex glyph.ID

	// Transform maps the child glyph outline into the coordinate
	// system of the composite glyph.
	Transform matrix.Matrix

	// PointAnchored is set when arg1/arg2 are point indices rather
	// than an x/y offset.
	PointAnchored bool
	ParentPoint   uint16
	ChildPoint    uint16

	UseMyMetrics bool
}

func decodeComposite(data []byte) (*CompositeGlyph, error) {
	res := &CompositeGlyph{}
	pos := 0

	readU16 := func() (uint16, bool) {
		if pos+2 > len(data) {
			return 0, false
		}
		v := uint16(data[pos])<<8 | uint16(data[pos+1])
		pos += 2
		return v, true
	}
	readF2Dot14 := func() (float64, bool) {
		v, ok := readU16()
		return float64(int16(v)) / 16384, ok
	}

	more := true
	for more {
		flags, ok := readU16()
		if !ok {
			return nil, errInvalidGlyphData
		}
		gid, ok := readU16()
		if !ok {
			return nil, errInvalidGlyphData
		}
		more = flags&flagMoreComponents != 0

		comp := Component{
			GlyphIndex:   glyph.ID(gid),
			UseMyMetrics: flags&flagUseMyMetrics != 0,
		}

		var arg1, arg2 int
		if flags&flagArg1And2AreWords != 0 {
			v1, ok1 := readU16()
			v2, ok2 := readU16()
			if !ok1 || !ok2 {
				return nil, errInvalidGlyphData
			}
			if flags&flagArgsAreXYValues != 0 {
				arg1, arg2 = int(int16(v1)), int(int16(v2))
			} else {
				arg1, arg2 = int(v1), int(v2)
			}
		} else {
			if pos+2 > len(data) {
				return nil, errInvalidGlyphData
			}
			if flags&flagArgsAreXYValues != 0 {
				arg1, arg2 = int(int8(data[pos])), int(int8(data[pos+1]))
			} else {
				arg1, arg2 = int(data[pos]), int(data[pos+1])
			}
			pos += 2
		}

		m := matrix.Identity
		switch {
		case flags&flagWeHaveAScale != 0:
			s, ok := readF2Dot14()
			if !ok {
				return nil, errInvalidGlyphData
			}
			m[0], m[3] = s, s
		case flags&flagWeHaveAnXAndYScale != 0:
			sx, ok1 := readF2Dot14()
			sy, ok2 := readF2Dot14()
			if !ok1 || !ok2 {
				return nil, errInvalidGlyphData
			}
			m[0], m[3] = sx, sy
		case flags&flagWeHaveATwoByTwo != 0:
			for i := 0; i < 4; i++ {
				v, ok := readF2Dot14()
				if !ok {
					return nil, errInvalidGlyphData
				}
				m[i] = v
			}
		}

		if flags&flagArgsAreXYValues != 0 {
			m[4] = clampOffset(arg1)
			m[5] = clampOffset(arg2)
		} else {
			comp.PointAnchored = true
			comp.ParentPoint = uint16(arg1)
			comp.ChildPoint = uint16(arg2)
		}
		comp.Transform = m

		res.Components = append(res.Components, comp)
	}

	// trailing hinting instructions are not used
	return res, nil
}

func clampOffset(v int) float64 {
	if v > maxComponentOffset {
		return maxComponentOffset
	}
	if v < -maxComponentOffset {
		return -maxComponentOffset
	}
	return float64(v)
}
