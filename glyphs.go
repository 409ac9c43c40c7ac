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
	"fmt"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/outline"
)

// Glyph is a decoded glyph with its metrics.
type Glyph struct {
	GID glyph.ID

	// Outline holds the drawing commands in design units.
	// It is nil for blank glyphs such as the space.
	Outline *outline.Glyph

	// Advance is the horizontal advance width in design units.
	Advance uint16

	// BBox is the bounding box in design units.  Blank glyphs have
	// the zero box.
	BBox funit.Rect16
}

// Glyph returns the decoded outline and metrics for a glyph ID.
// Outlines are decoded on first use and cached.
//
// Errors while decoding an individual glyph are not fatal: the
// ".notdef" glyph is substituted and a warning is recorded.
func (f *Font) Glyph(gid glyph.ID) *Glyph {
	if int(gid) >= f.maxpInfo.NumGlyphs {
		gid = 0
	}

	f.mu.Lock()
	if g, ok := f.outlines[gid]; ok {
		f.mu.Unlock()
		return g
	}
	f.mu.Unlock()

	g, err := f.decodeGlyph(gid)
	if err != nil {
		f.warn(fmt.Sprintf("glyph %d: %s", gid, err))
		if gid != 0 {
			notdef := f.Glyph(0)
			g = &Glyph{
				GID:     gid,
				Outline: notdef.Outline,
				Advance: f.metrics.Advance(gid),
				BBox:    notdef.BBox,
			}
		} else {
			g = &Glyph{GID: 0, Advance: f.metrics.Advance(0)}
		}
	}

	f.mu.Lock()
	f.outlines[gid] = g
	f.mu.Unlock()
	return g
}

// decodeGlyph decodes a glyph from the active outline backend.
func (f *Font) decodeGlyph(gid glyph.ID) (*Glyph, error) {
	g := &Glyph{
		GID:     gid,
		Advance: f.metrics.Advance(gid),
	}

	if f.cffFont != nil {
		cffGlyph, err := f.cffFont.Outline(int(gid))
		if err != nil {
			return nil, err
		}
		if !cffGlyph.Outline.IsBlank() {
			g.Outline = &cffGlyph.Outline
			g.BBox = cffGlyph.Outline.BBox()
		}
		if g.Advance == 0 && cffGlyph.Width > 0 {
			g.Advance = uint16(cffGlyph.Width)
		}
		return g, nil
	}

	out, err := f.glyfOutlines.Outline(gid)
	if err != nil {
		return nil, err
	}
	if !out.IsBlank() {
		g.Outline = out
		// the glyph header carries the exact bounding box
		if int(gid) < len(f.glyfOutlines) && f.glyfOutlines[gid] != nil {
			g.BBox = f.glyfOutlines[gid].Rect16
		} else {
			g.BBox = out.BBox()
		}
	}
	return g, nil
}

// WarmUp decodes and caches the outlines of the glyphs that the cmap
// assigns to the characters of the given text.  Glyphs produced only by
// GSUB substitutions (ligatures, alternates) are not decoded here.
// After warm-up the Font can be shared read-only between goroutines
// shaping that text.
func (f *Font) WarmUp(text string) {
	for _, r := range text {
		f.Glyph(f.GlyphIndex(r))
	}
}
