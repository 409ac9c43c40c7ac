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

import (
	"fmt"
	"sort"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/parser"
)

// readGsubSubtable decodes one GSUB lookup subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gsub
func (info *Info) readGsubSubtable(p *parser.Parser, lookupType uint16, pos int) (Subtable, error) {
	err := p.Seek(pos)
	if err != nil {
		return nil, err
	}
	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	switch lookupType {
	case 1:
		return readGsub1(p, pos, format)
	case 2:
		return readGsub2(p, pos, format)
	case 3:
		return readGsub3(p, pos, format)
	case 4:
		return readGsub4(p, pos, format)
	case 6:
		return readChainedContext(p, pos, format)
	default:
		return nil, parser.NotSupported("GSUB",
			fmt.Sprintf("lookup type %d", lookupType))
	}
}

// Gsub1_1 is a single substitution via glyph ID delta.
type Gsub1_1 struct {
	Cov   Coverage
	Delta int16
}

// Gsub1_2 is a single substitution via an explicit glyph list.
type Gsub1_2 struct {
	Cov         Coverage
	Substitutes []glyph.ID
}

func readGsub1(p *parser.Parser, pos int, format uint16) (Subtable, error) {
	switch format {
	case 1:
		covOffset, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		delta, err := p.ReadInt16()
		if err != nil {
			return nil, err
		}
		cov, err := readCoverage(p, pos+int(covOffset))
		if err != nil {
			return nil, err
		}
		return &Gsub1_1{Cov: cov, Delta: delta}, nil
	case 2:
		covOffset, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		gids, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		cov, err := readCoverage(p, pos+int(covOffset))
		if err != nil {
			return nil, err
		}
		subs := make([]glyph.ID, len(gids))
		for i, gid := range gids {
			subs[i] = glyph.ID(gid)
		}
		return &Gsub1_2{Cov: cov, Substitutes: subs}, nil
	default:
		return nil, parser.Invalid("GSUB", "invalid single substitution format")
	}
}

// Apply implements the [Subtable] interface.
func (l *Gsub1_1) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	if !l.Cov.Contains(seq[i].GID) {
		return nil
	}
	return &Match{
		Start:   i,
		End:     i + 1,
		Replace: []glyph.Info{{GID: glyph.ID(int(seq[i].GID) + int(l.Delta))}},
	}
}

// Apply implements the [Subtable] interface.
func (l *Gsub1_2) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	idx, ok := l.Cov.Index(seq[i].GID)
	if !ok || idx >= len(l.Substitutes) {
		return nil
	}
	return &Match{
		Start:   i,
		End:     i + 1,
		Replace: []glyph.Info{{GID: l.Substitutes[idx]}},
	}
}

// Gsub2_1 replaces one glyph with a sequence of glyphs.
type Gsub2_1 struct {
	Cov       Coverage
	Sequences [][]glyph.ID
}

func readGsub2(p *parser.Parser, pos int, format uint16) (Subtable, error) {
	if format != 1 {
		return nil, parser.Invalid("GSUB", "invalid multiple substitution format")
	}
	covOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	seqOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	res := &Gsub2_1{Sequences: make([][]glyph.ID, len(seqOffsets))}
	for i, offs := range seqOffsets {
		err = p.Seek(pos + int(offs))
		if err != nil {
			return nil, err
		}
		gids, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		seq := make([]glyph.ID, len(gids))
		for j, gid := range gids {
			seq[j] = glyph.ID(gid)
		}
		res.Sequences[i] = seq
	}
	res.Cov, err = readCoverage(p, pos+int(covOffset))
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Apply implements the [Subtable] interface.
func (l *Gsub2_1) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	idx, ok := l.Cov.Index(seq[i].GID)
	if !ok || idx >= len(l.Sequences) {
		return nil
	}
	repl := make([]glyph.Info, len(l.Sequences[idx]))
	for j, gid := range l.Sequences[idx] {
		repl[j] = glyph.Info{GID: gid}
	}
	return &Match{Start: i, End: i + 1, Replace: repl}
}

// Gsub3_1 substitutes a glyph with one of a set of alternates.
type Gsub3_1 struct {
	Cov        Coverage
	Alternates [][]glyph.ID
}

func readGsub3(p *parser.Parser, pos int, format uint16) (Subtable, error) {
	if format != 1 {
		return nil, parser.Invalid("GSUB", "invalid alternate substitution format")
	}
	covOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	setOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	res := &Gsub3_1{Alternates: make([][]glyph.ID, len(setOffsets))}
	for i, offs := range setOffsets {
		err = p.Seek(pos + int(offs))
		if err != nil {
			return nil, err
		}
		gids, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		alts := make([]glyph.ID, len(gids))
		for j, gid := range gids {
			alts[j] = glyph.ID(gid)
		}
		res.Alternates[i] = alts
	}
	res.Cov, err = readCoverage(p, pos+int(covOffset))
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Apply implements the [Subtable] interface.  The alternate is chosen
// by ctx.AlternateIndex, defaulting to the first.
func (l *Gsub3_1) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	idx, ok := l.Cov.Index(seq[i].GID)
	if !ok || idx >= len(l.Alternates) {
		return nil
	}
	alts := l.Alternates[idx]
	if len(alts) == 0 {
		return nil
	}
	choice := ctx.AlternateIndex
	if choice < 0 || choice >= len(alts) {
		choice = 0
	}
	return &Match{
		Start:   i,
		End:     i + 1,
		Replace: []glyph.Info{{GID: alts[choice]}},
	}
}

// Ligature is one ligature of a [Gsub4_1] ligature set.
type Ligature struct {
	// Tail holds the glyphs following the first glyph.
	Tail []glyph.ID

	Out glyph.ID
}

// Gsub4_1 substitutes a sequence of glyphs with a single ligature
// glyph.
type Gsub4_1 struct {
	Cov Coverage

	// Sets contains one ligature set per coverage index, ordered
	// longest tail first so that matching is greedy.
	Sets [][]Ligature
}

func readGsub4(p *parser.Parser, pos int, format uint16) (Subtable, error) {
	if format != 1 {
		return nil, parser.Invalid("GSUB", "invalid ligature substitution format")
	}
	covOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	setOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}

	res := &Gsub4_1{Sets: make([][]Ligature, len(setOffsets))}
	for i, setOffs := range setOffsets {
		setPos := pos + int(setOffs)
		err = p.Seek(setPos)
		if err != nil {
			return nil, err
		}
		ligOffsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}

		ligs := make([]Ligature, len(ligOffsets))
		for j, ligOffs := range ligOffsets {
			err = p.Seek(setPos + int(ligOffs))
			if err != nil {
				return nil, err
			}
			out, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			compCount, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			if compCount == 0 {
				return nil, parser.Invalid("GSUB", "empty ligature")
			}
			tail := make([]glyph.ID, compCount-1)
			for k := range tail {
				gid, err := p.ReadUint16()
				if err != nil {
					return nil, err
				}
				tail[k] = glyph.ID(gid)
			}
			ligs[j] = Ligature{Tail: tail, Out: glyph.ID(out)}
		}
		sort.SliceStable(ligs, func(a, b int) bool {
			return len(ligs[a].Tail) > len(ligs[b].Tail)
		})
		res.Sets[i] = ligs
	}
	res.Cov, err = readCoverage(p, pos+int(covOffset))
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Apply implements the [Subtable] interface.
func (l *Gsub4_1) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	idx, ok := l.Cov.Index(seq[i].GID)
	if !ok || idx >= len(l.Sets) {
		return nil
	}
ligLoop:
	for _, lig := range l.Sets[idx] {
		if i+1+len(lig.Tail) > len(seq) {
			continue
		}
		for k, gid := range lig.Tail {
			if seq[i+1+k].GID != gid {
				continue ligLoop
			}
		}
		return &Match{
			Start:   i,
			End:     i + 1 + len(lig.Tail),
			Replace: []glyph.Info{{GID: lig.Out}},
		}
	}
	return nil
}
