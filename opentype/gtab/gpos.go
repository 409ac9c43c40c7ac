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

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/parser"
)

// readGposSubtable decodes one GPOS lookup subtable.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos
func (info *Info) readGposSubtable(p *parser.Parser, lookupType uint16, pos int) (Subtable, error) {
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
		return readGpos1(p, pos, format)
	case 2:
		return readGpos2(p, pos, format)
	case 4:
		return readGposMark(p, pos, format, false)
	case 6:
		return readGposMark(p, pos, format, true)
	default:
		return nil, parser.NotSupported("GPOS",
			fmt.Sprintf("lookup type %d", lookupType))
	}
}

// ValueRecord describes a position adjustment.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#value-record
type ValueRecord struct {
	XPlacement funit.Int16
	YPlacement funit.Int16
	XAdvance   funit.Int16
	YAdvance   funit.Int16
}

// IsZero reports whether the record contains no adjustment.
func (vr ValueRecord) IsZero() bool {
	return vr == ValueRecord{}
}

// applyTo adds the adjustment to a glyph.
func (vr ValueRecord) applyTo(g *glyph.Info) {
	g.XOffset += vr.XPlacement
	g.YOffset += vr.YPlacement
	g.Advance += vr.XAdvance
}

// readValueRecord reads a value record with the fields selected by the
// given format mask.  Device table offsets are parsed and ignored.
func readValueRecord(p *parser.Parser, valueFormat uint16) (ValueRecord, error) {
	var vr ValueRecord
	var err error
	read := func(dst *funit.Int16) {
		if err != nil {
			return
		}
		var v int16
		v, err = p.ReadInt16()
		*dst = funit.Int16(v)
	}
	if valueFormat&0x0001 != 0 {
		read(&vr.XPlacement)
	}
	if valueFormat&0x0002 != 0 {
		read(&vr.YPlacement)
	}
	if valueFormat&0x0004 != 0 {
		read(&vr.XAdvance)
	}
	if valueFormat&0x0008 != 0 {
		read(&vr.YAdvance)
	}
	for bit := uint16(0x0010); bit <= 0x0080; bit <<= 1 {
		if valueFormat&bit != 0 && err == nil {
			err = p.Skip(2)
		}
	}
	return vr, err
}

// Gpos1_1 adjusts the position of all covered glyphs by the same
// amount.
type Gpos1_1 struct {
	Cov    Coverage
	Adjust ValueRecord
}

// Gpos1_2 adjusts each covered glyph individually.
type Gpos1_2 struct {
	Cov    Coverage
	Adjust []ValueRecord
}

func readGpos1(p *parser.Parser, pos int, format uint16) (Subtable, error) {
	covOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	valueFormat, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	switch format {
	case 1:
		vr, err := readValueRecord(p, valueFormat)
		if err != nil {
			return nil, err
		}
		cov, err := readCoverage(p, pos+int(covOffset))
		if err != nil {
			return nil, err
		}
		return &Gpos1_1{Cov: cov, Adjust: vr}, nil
	case 2:
		count, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		records := make([]ValueRecord, count)
		for i := range records {
			records[i], err = readValueRecord(p, valueFormat)
			if err != nil {
				return nil, err
			}
		}
		cov, err := readCoverage(p, pos+int(covOffset))
		if err != nil {
			return nil, err
		}
		return &Gpos1_2{Cov: cov, Adjust: records}, nil
	default:
		return nil, parser.Invalid("GPOS", "invalid single adjustment format")
	}
}

// Apply implements the [Subtable] interface.
func (l *Gpos1_1) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	if !l.Cov.Contains(seq[i].GID) {
		return nil
	}
	g := seq[i]
	l.Adjust.applyTo(&g)
	return &Match{Start: i, End: i + 1, Replace: []glyph.Info{g}}
}

// Apply implements the [Subtable] interface.
func (l *Gpos1_2) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	idx, ok := l.Cov.Index(seq[i].GID)
	if !ok || idx >= len(l.Adjust) {
		return nil
	}
	g := seq[i]
	l.Adjust[idx].applyTo(&g)
	return &Match{Start: i, End: i + 1, Replace: []glyph.Info{g}}
}

// PairValue is one entry of a [Gpos2_1] pair set.
type PairValue struct {
	SecondGlyph glyph.ID
	First       ValueRecord
	Second      ValueRecord
}

// Gpos2_1 adjusts pairs of glyphs, with an explicit pair list per
// first glyph.  This is the usual representation of kerning.
type Gpos2_1 struct {
	Cov      Coverage
	PairSets [][]PairValue

	hasSecond bool
}

// Gpos2_2 adjusts pairs of glyphs through a class matrix.
type Gpos2_2 struct {
	Cov      Coverage
	Class1   ClassDef
	Class2   ClassDef
	Adjust   [][][2]ValueRecord // indexed by class1, class2

	hasSecond bool
}

func readGpos2(p *parser.Parser, pos int, format uint16) (Subtable, error) {
	covOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	valueFormat1, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	valueFormat2, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	switch format {
	case 1:
		setOffsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		res := &Gpos2_1{
			PairSets:  make([][]PairValue, len(setOffsets)),
			hasSecond: valueFormat2 != 0,
		}
		for i, setOffs := range setOffsets {
			err = p.Seek(pos + int(setOffs))
			if err != nil {
				return nil, err
			}
			pairCount, err := p.ReadUint16()
			if err != nil {
				return nil, err
			}
			pairs := make([]PairValue, pairCount)
			for j := range pairs {
				second, err := p.ReadUint16()
				if err != nil {
					return nil, err
				}
				pairs[j].SecondGlyph = glyph.ID(second)
				pairs[j].First, err = readValueRecord(p, valueFormat1)
				if err != nil {
					return nil, err
				}
				pairs[j].Second, err = readValueRecord(p, valueFormat2)
				if err != nil {
					return nil, err
				}
			}
			res.PairSets[i] = pairs
		}
		res.Cov, err = readCoverage(p, pos+int(covOffset))
		if err != nil {
			return nil, err
		}
		return res, nil

	case 2:
		classDef1Offset, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		classDef2Offset, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		class1Count, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		class2Count, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}

		res := &Gpos2_2{
			Adjust:    make([][][2]ValueRecord, class1Count),
			hasSecond: valueFormat2 != 0,
		}
		for c1 := range res.Adjust {
			res.Adjust[c1] = make([][2]ValueRecord, class2Count)
			for c2 := range res.Adjust[c1] {
				res.Adjust[c1][c2][0], err = readValueRecord(p, valueFormat1)
				if err != nil {
					return nil, err
				}
				res.Adjust[c1][c2][1], err = readValueRecord(p, valueFormat2)
				if err != nil {
					return nil, err
				}
			}
		}
		res.Cov, err = readCoverage(p, pos+int(covOffset))
		if err != nil {
			return nil, err
		}
		res.Class1, err = readClassDef(p, pos+int(classDef1Offset))
		if err != nil {
			return nil, err
		}
		res.Class2, err = readClassDef(p, pos+int(classDef2Offset))
		if err != nil {
			return nil, err
		}
		return res, nil

	default:
		return nil, parser.Invalid("GPOS", "invalid pair adjustment format")
	}
}

func pairMatch(seq glyph.Seq, i int, first, second ValueRecord, hasSecond bool) *Match {
	g1 := seq[i]
	g2 := seq[i+1]
	first.applyTo(&g1)
	second.applyTo(&g2)
	m := &Match{
		Start:   i,
		End:     i + 2,
		Replace: []glyph.Info{g1, g2},
	}
	// If the second glyph has its own value record, it may not start
	// another pair.
	if hasSecond {
		m.nextOverride = i + 2
	} else {
		m.nextOverride = i + 1
	}
	return m
}

// Apply implements the [Subtable] interface.
func (l *Gpos2_1) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	if i+1 >= len(seq) {
		return nil
	}
	idx, ok := l.Cov.Index(seq[i].GID)
	if !ok || idx >= len(l.PairSets) {
		return nil
	}
	for _, pair := range l.PairSets[idx] {
		if pair.SecondGlyph == seq[i+1].GID {
			if pair.First.IsZero() && pair.Second.IsZero() {
				return nil
			}
			return pairMatch(seq, i, pair.First, pair.Second, l.hasSecond)
		}
	}
	return nil
}

// Apply implements the [Subtable] interface.
func (l *Gpos2_2) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	if i+1 >= len(seq) {
		return nil
	}
	if !l.Cov.Contains(seq[i].GID) {
		return nil
	}
	c1 := int(l.Class1.Class(seq[i].GID))
	c2 := int(l.Class2.Class(seq[i+1].GID))
	if c1 >= len(l.Adjust) || c2 >= len(l.Adjust[c1]) {
		return nil
	}
	vv := l.Adjust[c1][c2]
	if vv[0].IsZero() && vv[1].IsZero() {
		return nil
	}
	return pairMatch(seq, i, vv[0], vv[1], l.hasSecond)
}

// Anchor is an attachment point in design units.  Anchor formats 2
// and 3 are read as plain coordinates.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos#anchor-tables
type Anchor struct {
	X, Y funit.Int16
}

func readAnchor(p *parser.Parser, pos int) (*Anchor, error) {
	err := p.Seek(pos)
	if err != nil {
		return nil, err
	}
	format, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if format < 1 || format > 3 {
		return nil, parser.Invalid("GPOS", "invalid anchor format")
	}
	x, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	y, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	return &Anchor{X: funit.Int16(x), Y: funit.Int16(y)}, nil
}

// markRecord is one entry of a mark array.
type markRecord struct {
	Class  uint16
	Anchor *Anchor
}

func readMarkArray(p *parser.Parser, pos int) ([]markRecord, error) {
	err := p.Seek(pos)
	if err != nil {
		return nil, err
	}
	count, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	type rawRecord struct {
		class  uint16
		offset uint16
	}
	raw := make([]rawRecord, count)
	for i := range raw {
		raw[i].class, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
		raw[i].offset, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}
	res := make([]markRecord, count)
	for i, r := range raw {
		anchor, err := readAnchor(p, pos+int(r.offset))
		if err != nil {
			return nil, err
		}
		res[i] = markRecord{Class: r.class, Anchor: anchor}
	}
	return res, nil
}

// GposMark positions mark glyphs relative to a preceding base glyph
// (lookup type 4) or a preceding mark (lookup type 6).
type GposMark struct {
	MarkCov Coverage
	BaseCov Coverage

	Marks []markRecord

	// BaseAnchors holds one anchor per attachment class for each
	// covered base glyph.  Entries may be nil.
	BaseAnchors [][]*Anchor

	// MarkToMark is set for lookup type 6.
	MarkToMark bool
}

func readGposMark(p *parser.Parser, pos int, format uint16, markToMark bool) (Subtable, error) {
	if format != 1 {
		return nil, parser.Invalid("GPOS", "invalid mark attachment format")
	}
	markCovOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	baseCovOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	classCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	markArrayOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	baseArrayOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	res := &GposMark{MarkToMark: markToMark}
	res.MarkCov, err = readCoverage(p, pos+int(markCovOffset))
	if err != nil {
		return nil, err
	}
	res.BaseCov, err = readCoverage(p, pos+int(baseCovOffset))
	if err != nil {
		return nil, err
	}
	res.Marks, err = readMarkArray(p, pos+int(markArrayOffset))
	if err != nil {
		return nil, err
	}

	// base array: one anchor offset per class for each base glyph.
	// For mark-to-mark lookups the Mark2Array has the same layout and
	// is read the same way.
	basePos := pos + int(baseArrayOffset)
	err = p.Seek(basePos)
	if err != nil {
		return nil, err
	}
	baseCount, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	offsets := make([][]uint16, baseCount)
	for i := range offsets {
		offsets[i] = make([]uint16, classCount)
		for j := range offsets[i] {
			offsets[i][j], err = p.ReadUint16()
			if err != nil {
				return nil, err
			}
		}
	}
	res.BaseAnchors = make([][]*Anchor, baseCount)
	for i := range offsets {
		res.BaseAnchors[i] = make([]*Anchor, classCount)
		for j, offs := range offsets[i] {
			if offs == 0 {
				continue
			}
			res.BaseAnchors[i][j], err = readAnchor(p, basePos+int(offs))
			if err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// Apply implements the [Subtable] interface.
func (l *GposMark) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	if i == 0 {
		return nil
	}
	markIdx, ok := l.MarkCov.Index(seq[i].GID)
	if !ok || markIdx >= len(l.Marks) {
		return nil
	}
	baseIdx, ok := l.BaseCov.Index(seq[i-1].GID)
	if !ok || baseIdx >= len(l.BaseAnchors) {
		return nil
	}
	mark := l.Marks[markIdx]
	if int(mark.Class) >= len(l.BaseAnchors[baseIdx]) {
		return nil
	}
	baseAnchor := l.BaseAnchors[baseIdx][mark.Class]
	if baseAnchor == nil || mark.Anchor == nil {
		return nil
	}

	base := seq[i-1]
	g := seq[i]
	// Align the mark anchor with the base anchor.  The pen has
	// already advanced past the base glyph.
	g.XOffset = base.XOffset + baseAnchor.X - mark.Anchor.X - base.Advance
	g.YOffset = base.YOffset + baseAnchor.Y - mark.Anchor.Y
	m := &Match{Start: i, End: i + 1, Replace: []glyph.Info{g}}
	m.nextOverride = i + 1
	return m
}
