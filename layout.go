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

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/opentype/gtab"
)

// HAlign is the horizontal alignment of a text block.
type HAlign int

// Horizontal alignments.
const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

// VAlign is the vertical alignment of a text block.
type VAlign int

// Vertical alignments.  The default aligns the first baseline with
// the anchor point.
const (
	VAlignBase VAlign = iota
	VAlignTop
	VAlignCenter
	VAlignBottom
)

// RotationMode controls the interplay of rotation and alignment.
type RotationMode int

// Rotation modes.  In default mode the block is aligned first and
// then rotated about the anchor point.  In anchor mode alignment is
// computed on the rotated block.
const (
	RotationDefault RotationMode = iota
	RotationAnchor
)

// TextOptions modify a single text request.  The zero value uses the
// font's defaults.
type TextOptions struct {
	// Size is the text size in pixels.  Zero uses Config.FontSize.
	Size float64

	// Color is a CSS color for the drawing, e.g. "#203040" or "red".
	Color string

	HAlign HAlign
	VAlign VAlign

	// LineSpacing is a multiplier for the baseline distance.
	// Zero means 1.0.
	LineSpacing float64

	// Rotation is the counterclockwise rotation angle in degrees.
	Rotation     float64
	RotationMode RotationMode

	// Features overrides the font's feature set for this request.
	Features map[string]bool

	// Language selects the language system of the layout tables.
	Language language.Tag

	// Config overrides the font's configuration for this request.
	Config *Config
}

// PositionedGlyph is one glyph of a shaped text, in pixel coordinates
// with the y axis pointing down.
type PositionedGlyph struct {
	GID glyph.ID

	// X, Y is the glyph origin on its baseline.
	X, Y float64

	// Scale converts design units to pixels for this glyph.
	Scale float64

	// Advance is the pen movement after this glyph, in pixels.
	Advance float64

	// Text is the runes this glyph represents.
	Text []rune

	// Line is the zero-based line number.
	Line int
}

// Text is a shaped text block.
type Text struct {
	font   *Font
	str    string
	config Config

	size  float64
	scale float64
	color string

	halign  HAlign
	valign  VAlign
	rotMode RotationMode
	angle   float64

	glyphs     []PositionedGlyph
	lineWidths []float64
	lineHeight float64

	width       float64 // widest line, pixels
	top, bottom float64 // block extent relative to the first baseline

	transform matrix.Matrix
}

// Text shapes a string.  Options may be nil for the defaults.
//
// The pipeline maps code points to glyphs, applies the enabled GSUB
// and GPOS features, accumulates advances, and places the result on
// baselines in pixel coordinates with y growing downwards.
func (f *Font) Text(s string, opts *TextOptions) *Text {
	if opts == nil {
		opts = &TextOptions{}
	}
	config := f.Config
	if opts.Config != nil {
		config = *opts.Config
	}

	t := &Text{
		font:    f,
		str:     s,
		config:  config,
		size:    opts.Size,
		color:   opts.Color,
		halign:  opts.HAlign,
		valign:  opts.VAlign,
		rotMode: opts.RotationMode,
		angle:   opts.Rotation,
	}
	if t.size <= 0 {
		t.size = config.FontSize
	}
	t.scale = t.size / float64(f.UnitsPerEm())

	lineSpacing := opts.LineSpacing
	if lineSpacing == 0 {
		lineSpacing = 1
	}

	enabled := f.enabledFeatures(opts.Features)
	lines := strings.Split(s, "\n")

	// shape each line and record left-aligned pen positions
	lineHeight := float64(f.Ascent()-f.Descent()+f.LineGap()) * lineSpacing * t.scale
	t.lineHeight = lineHeight
	for lineIdx, line := range lines {
		seq := f.shape(line, enabled, opts.Language)
		baseline := float64(lineIdx) * lineHeight

		var pen float64
		for i := range seq {
			g := seq[i]
			t.glyphs = append(t.glyphs, PositionedGlyph{
				GID:     g.GID,
				X:       (pen + float64(g.XOffset)) * t.scale,
				Y:       baseline - float64(g.YOffset)*t.scale,
				Scale:   t.scale,
				Advance: float64(g.Advance) * t.scale,
				Text:    g.Text,
				Line:    lineIdx,
			})
			pen += float64(g.Advance)
		}
		t.lineWidths = append(t.lineWidths, pen*t.scale)
	}

	for _, w := range t.lineWidths {
		if w > t.width {
			t.width = w
		}
	}
	t.top = -float64(f.Ascent()) * t.scale
	t.bottom = float64(len(lines)-1)*lineHeight - float64(f.Descent())*t.scale

	// shift lines for the horizontal alignment
	for i := range t.glyphs {
		lw := t.lineWidths[t.glyphs[i].Line]
		switch t.halign {
		case HAlignCenter:
			t.glyphs[i].X += (t.width - lw) / 2
		case HAlignRight:
			t.glyphs[i].X += t.width - lw
		}
	}

	t.transform = t.blockTransform()
	return t
}

// enabledFeatures merges the font defaults with per-request
// overrides.  The composition features ccmp, locl and rlig are always
// applied unless explicitly disabled.
func (f *Font) enabledFeatures(overrides map[string]bool) map[string]bool {
	enabled := make(map[string]bool, len(f.Features)+3)
	for tag, on := range f.Features {
		enabled[tag] = on
	}
	for tag, on := range overrides {
		enabled[tag] = on
	}
	for _, tag := range []string{"ccmp", "locl", "rlig"} {
		if _, set := enabled[tag]; !set {
			enabled[tag] = true
		}
	}
	return enabled
}

// shape converts one line of text into a positioned glyph sequence in
// design units.
func (f *Font) shape(line string, enabled map[string]bool, lang language.Tag) glyph.Seq {
	var seq glyph.Seq
	for _, r := range line {
		seq = append(seq, glyph.Info{
			GID:  f.GlyphIndex(r),
			Text: []rune{r},
		})
	}

	ctx := &gtab.Context{AlternateIndex: f.AlternateIndex}
	if f.Gsub != nil {
		lookups := f.Gsub.FindLookups(lang, enabled)
		seq = gtab.NewEngine(f.Gsub.LookupList, lookups, ctx).Apply(seq)
	}

	for i := range seq {
		adv := f.metrics.Advance(seq[i].GID)
		if adv > 32767 {
			adv = 32767
		}
		seq[i].Advance = funit.Int16(adv)
	}

	if f.Gpos != nil {
		lookups := f.Gpos.FindLookups(lang, enabled)
		seq = gtab.NewEngine(f.Gpos.LookupList, lookups, ctx).Apply(seq)
	}

	return seq
}

// blockTransform computes the matrix mapping block coordinates
// (origin at the start of the first baseline) to target coordinates
// around the anchor point.
func (t *Text) blockTransform() matrix.Matrix {
	// rotation in y-down coordinates; positive angles turn
	// counterclockwise on screen
	rot := matrix.RotateDeg(-t.angle)

	if t.rotMode == RotationAnchor && t.angle != 0 {
		// align the rotated block
		llx, lly, urx, ury := transformedExtent(rot, 0, t.top, t.width, t.bottom)
		dx, dy := alignOffsets(t.halign, t.valign, llx, lly, urx, ury)
		return rot.Mul(matrix.Translate(dx, dy))
	}

	dx, dy := alignOffsets(t.halign, t.valign, 0, t.top, t.width, t.bottom)
	return matrix.Translate(dx, dy).Mul(rot)
}

// alignOffsets returns the translation placing a block with the given
// extent relative to the anchor point.
func alignOffsets(halign HAlign, valign VAlign, llx, lly, urx, ury float64) (dx, dy float64) {
	switch halign {
	case HAlignCenter:
		dx = -(llx + urx) / 2
	case HAlignRight:
		dx = -urx
	default:
		dx = -llx
	}
	switch valign {
	case VAlignTop:
		dy = -lly
	case VAlignCenter:
		dy = -(lly + ury) / 2
	case VAlignBottom:
		dy = -ury
	default: // VAlignBase: the first baseline stays on the anchor
		dy = 0
	}
	return dx, dy
}

// transformedExtent returns the bounding box of a rectangle after
// applying the matrix m.
func transformedExtent(m matrix.Matrix, llx, lly, urx, ury float64) (x0, y0, x1, y1 float64) {
	first := true
	for _, c := range [][2]float64{{llx, lly}, {urx, lly}, {urx, ury}, {llx, ury}} {
		x, y := m.Apply(c[0], c[1])
		if first || x < x0 {
			x0 = x
		}
		if first || x > x1 {
			x1 = x
		}
		if first || y < y0 {
			y0 = y
		}
		if first || y > y1 {
			y1 = y
		}
		first = false
	}
	return x0, y0, x1, y1
}

// Glyphs returns the positioned glyphs in final coordinates.
func (t *Text) Glyphs() []PositionedGlyph {
	res := make([]PositionedGlyph, len(t.glyphs))
	for i, g := range t.glyphs {
		g.X, g.Y = t.transform.Apply(g.X, g.Y)
		res[i] = g
	}
	return res
}

// Size returns the width and height of the unrotated text block in
// pixels.  The height spans from the ascent of the first line to the
// descent of the last.
func (t *Text) Size() (w, h float64) {
	return t.width, t.bottom - t.top
}

// BBox returns the bounding box of the block in final coordinates,
// with y growing downwards.
func (t *Text) BBox() rect.Rect {
	llx, lly, urx, ury := transformedExtent(t.transform, 0, t.top, t.width, t.bottom)
	return rect.Rect{LLx: llx, LLy: lly, URx: urx, URy: ury}
}

// Baseline returns the position of the start of the first baseline in
// final coordinates.
func (t *Text) Baseline() (x, y float64) {
	return t.transform.Apply(0, 0)
}

// Transform returns the matrix mapping block coordinates to final
// coordinates.
func (t *Text) Transform() matrix.Matrix {
	return t.transform
}

// String returns the text that was shaped.
func (t *Text) String() string {
	return t.str
}
