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

package gtab

import "github.com/cdelker/ziafont/glyph"

// maxNestedActions bounds the nested lookup applications per match,
// protecting against looping contextual rules in malformed fonts.
const maxNestedActions = 64

// Context carries per-run settings into subtable application.
type Context struct {
	// AlternateIndex selects the variant used by alternate
	// substitution lookups (GSUB type 3).
	AlternateIndex int
}

// Engine applies a fixed list of lookups to glyph sequences.
type Engine struct {
	ll      LookupList
	lookups []LookupIndex
	ctx     *Context
}

// NewEngine creates an engine applying the given lookups in order.
func NewEngine(ll LookupList, lookups []LookupIndex, ctx *Context) *Engine {
	if ctx == nil {
		ctx = &Context{}
	}
	return &Engine{ll: ll, lookups: lookups, ctx: ctx}
}

// Apply runs all lookups over the glyph sequence.  Each lookup walks
// the sequence left to right, trying its subtables in order and
// applying the first match.
func (e *Engine) Apply(seq glyph.Seq) glyph.Seq {
	for _, lookupIndex := range e.lookups {
		if int(lookupIndex) >= len(e.ll) {
			continue
		}
		lookup := e.ll[lookupIndex]
		if lookup == nil || len(lookup.Subtables) == 0 {
			continue
		}

		pos := 0
		for pos < len(seq) {
			seq, pos = e.applyAt(seq, lookup, pos, 0)
		}
	}
	return seq
}

// applyAt tries the subtables of one lookup at position pos.  It
// returns the modified sequence and the position to continue at.
func (e *Engine) applyAt(seq glyph.Seq, lookup *LookupTable, pos, depth int) (glyph.Seq, int) {
	for _, subtable := range lookup.Subtables {
		m := subtable.Apply(e.ctx, seq, pos)
		if m == nil {
			continue
		}

		if len(m.Actions) > 0 {
			return e.applyActions(seq, m, depth)
		}

		seq = applyMatch(seq, m)
		next := m.Start + len(m.Replace)
		if m.nextOverride > 0 {
			next = m.nextOverride
		}
		if next <= pos {
			next = pos + 1
		}
		return seq, next
	}
	return seq, pos + 1
}

// applyActions runs the nested lookups of a contextual match.
func (e *Engine) applyActions(seq glyph.Seq, m *Match, depth int) (glyph.Seq, int) {
	end := m.End
	if depth >= maxNestedActions {
		return seq, end
	}
	for _, action := range m.Actions {
		pos := m.Start + int(action.SequenceIndex)
		if pos >= end || pos >= len(seq) {
			continue
		}
		if int(action.LookupListIndex) >= len(e.ll) {
			continue
		}
		inner := e.ll[action.LookupListIndex]
		if inner == nil {
			continue
		}
		oldLen := len(seq)
		seq, _ = e.applyAt(seq, inner, pos, depth+1)
		end += len(seq) - oldLen
	}
	if end < m.Start+1 {
		end = m.Start + 1
	}
	return seq, end
}

// applyMatch replaces the matched range with the replacement glyphs.
// The text of the replaced glyphs is carried over to the first
// replacement glyph.
func applyMatch(seq glyph.Seq, m *Match) glyph.Seq {
	var newText []rune
	for i := m.Start; i < m.End; i++ {
		newText = append(newText, seq[i].Text...)
	}

	repl := make([]glyph.Info, len(m.Replace))
	copy(repl, m.Replace)
	if len(repl) > 0 && len(m.Replace) != m.End-m.Start {
		repl[0].Text = newText
	} else if len(repl) > 0 {
		// length-preserving replacement keeps the per-glyph text
		for i := range repl {
			if repl[i].Text == nil {
				repl[i].Text = seq[m.Start+i].Text
			}
		}
	}

	out := make(glyph.Seq, 0, len(seq)-(m.End-m.Start)+len(repl))
	out = append(out, seq[:m.Start]...)
	out = append(out, repl...)
	out = append(out, seq[m.End:]...)
	return out
}
