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

// Package glyph provides types for sequences of positioned glyphs.
package glyph

import "seehuhn.de/go/postscript/funit"

// ID identifies a glyph within a font by its index.
type ID uint16

// Info represents one glyph in a shaped run.
type Info struct {
	GID ID

	// Text is the slice of runes represented by this glyph.  After
	// ligature substitution a single glyph can cover several runes.
	Text []rune

	// Advance is the horizontal pen movement after drawing the glyph,
	// in font design units.  It includes any GPOS advance adjustment.
	Advance funit.Int16

	// XOffset and YOffset shift the glyph outline relative to the
	// current pen position, in font design units.
	XOffset funit.Int16
	YOffset funit.Int16
}

// Seq is a sequence of glyphs.
type Seq []Info

// TotalAdvance returns the sum of all glyph advances in the sequence.
func (seq Seq) TotalAdvance() funit.Int16 {
	var total funit.Int16
	for i := range seq {
		total += seq[i].Advance
	}
	return total
}

// Runes returns the text represented by the sequence.
func (seq Seq) Runes() []rune {
	var rr []rune
	for i := range seq {
		rr = append(rr, seq[i].Text...)
	}
	return rr
}
