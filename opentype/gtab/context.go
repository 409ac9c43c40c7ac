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
	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/parser"
)

// ChainedSeqRule is one rule of a chained context subtable.
// Depending on the subtable format the sequences hold glyph IDs
// (format 1) or glyph classes (format 2).
type ChainedSeqRule struct {
	Backtrack []uint16 // closest glyph first
	Input     []uint16 // excluding the first glyph
	Lookahead []uint16
	Actions   []SeqLookup
}

// ChainedContext1 is a chained context subtable with glyph-based
// rules.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-1-simple-glyph-contexts
type ChainedContext1 struct {
	Cov      Coverage
	RuleSets [][]ChainedSeqRule
}

// ChainedContext2 is a chained context subtable with class-based
// rules.
type ChainedContext2 struct {
	Cov            Coverage
	BacktrackClass ClassDef
	InputClass     ClassDef
	LookaheadClass ClassDef

	// RuleSets is indexed by the input class of the first glyph.
	RuleSets [][]ChainedSeqRule
}

// ChainedContext3 is a chained context subtable with coverage-based
// rules.
type ChainedContext3 struct {
	Backtrack []Coverage // closest glyph first
	Input     []Coverage
	Lookahead []Coverage
	Actions   []SeqLookup
}

func readChainedContext(p *parser.Parser, pos int, format uint16) (Subtable, error) {
	switch format {
	case 1:
		return readChainedContext1(p, pos)
	case 2:
		return readChainedContext2(p, pos)
	case 3:
		return readChainedContext3(p, pos)
	default:
		return nil, parser.Invalid("gtab", "invalid chained context format")
	}
}

func readSeqLookups(p *parser.Parser) ([]SeqLookup, error) {
	count, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	actions := make([]SeqLookup, count)
	for i := range actions {
		actions[i].SequenceIndex, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
		idx, err := p.ReadUint16()
		if err != nil {
			return nil, err
		}
		actions[i].LookupListIndex = LookupIndex(idx)
	}
	return actions, nil
}

func readChainedRule(p *parser.Parser, pos int) (ChainedSeqRule, error) {
	var rule ChainedSeqRule
	err := p.Seek(pos)
	if err != nil {
		return rule, err
	}
	rule.Backtrack, err = p.ReadUint16Slice()
	if err != nil {
		return rule, err
	}
	inputCount, err := p.ReadUint16()
	if err != nil {
		return rule, err
	}
	if inputCount == 0 {
		return rule, parser.Invalid("gtab", "empty context input sequence")
	}
	rule.Input = make([]uint16, inputCount-1)
	for i := range rule.Input {
		rule.Input[i], err = p.ReadUint16()
		if err != nil {
			return rule, err
		}
	}
	rule.Lookahead, err = p.ReadUint16Slice()
	if err != nil {
		return rule, err
	}
	rule.Actions, err = readSeqLookups(p)
	return rule, err
}

func readRuleSets(p *parser.Parser, pos int) ([][]ChainedSeqRule, error) {
	setOffsets, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	ruleSets := make([][]ChainedSeqRule, len(setOffsets))
	for i, setOffs := range setOffsets {
		if setOffs == 0 {
			continue
		}
		setPos := pos + int(setOffs)
		err = p.Seek(setPos)
		if err != nil {
			return nil, err
		}
		ruleOffsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		rules := make([]ChainedSeqRule, len(ruleOffsets))
		for j, ruleOffs := range ruleOffsets {
			rules[j], err = readChainedRule(p, setPos+int(ruleOffs))
			if err != nil {
				return nil, err
			}
		}
		ruleSets[i] = rules
	}
	return ruleSets, nil
}

func readChainedContext1(p *parser.Parser, pos int) (Subtable, error) {
	covOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	ruleSets, err := readRuleSets(p, pos)
	if err != nil {
		return nil, err
	}
	cov, err := readCoverage(p, pos+int(covOffset))
	if err != nil {
		return nil, err
	}
	return &ChainedContext1{Cov: cov, RuleSets: ruleSets}, nil
}

func readChainedContext2(p *parser.Parser, pos int) (Subtable, error) {
	covOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	backOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	inputOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	aheadOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	ruleSets, err := readRuleSets(p, pos)
	if err != nil {
		return nil, err
	}

	res := &ChainedContext2{RuleSets: ruleSets}
	res.Cov, err = readCoverage(p, pos+int(covOffset))
	if err != nil {
		return nil, err
	}
	res.BacktrackClass, err = readClassDef(p, pos+int(backOffset))
	if err != nil {
		return nil, err
	}
	res.InputClass, err = readClassDef(p, pos+int(inputOffset))
	if err != nil {
		return nil, err
	}
	res.LookaheadClass, err = readClassDef(p, pos+int(aheadOffset))
	if err != nil {
		return nil, err
	}
	return res, nil
}

func readChainedContext3(p *parser.Parser, pos int) (Subtable, error) {
	readCoverages := func() ([]Coverage, error) {
		offsets, err := p.ReadUint16Slice()
		if err != nil {
			return nil, err
		}
		restore := p.Pos()
		covs := make([]Coverage, len(offsets))
		for i, offs := range offsets {
			covs[i], err = readCoverage(p, pos+int(offs))
			if err != nil {
				return nil, err
			}
		}
		return covs, p.Seek(restore)
	}

	res := &ChainedContext3{}
	var err error
	res.Backtrack, err = readCoverages()
	if err != nil {
		return nil, err
	}
	res.Input, err = readCoverages()
	if err != nil {
		return nil, err
	}
	if len(res.Input) == 0 {
		return nil, parser.Invalid("gtab", "empty context input sequence")
	}
	res.Lookahead, err = readCoverages()
	if err != nil {
		return nil, err
	}
	res.Actions, err = readSeqLookups(p)
	return res, err
}

// matchChain tests the backtrack, input tail and lookahead sequences
// around position i.  The match functions compare one glyph against
// one rule element.
func matchChain(seq glyph.Seq, i int, rule ChainedSeqRule,
	matchBack, matchInput, matchAhead func(glyph.ID, uint16) bool) bool {

	if i < len(rule.Backtrack) || i+1+len(rule.Input)+len(rule.Lookahead) > len(seq) {
		return false
	}
	for k, v := range rule.Backtrack {
		if !matchBack(seq[i-1-k].GID, v) {
			return false
		}
	}
	for k, v := range rule.Input {
		if !matchInput(seq[i+1+k].GID, v) {
			return false
		}
	}
	for k, v := range rule.Lookahead {
		if !matchAhead(seq[i+1+len(rule.Input)+k].GID, v) {
			return false
		}
	}
	return true
}

// Apply implements the [Subtable] interface.
func (l *ChainedContext1) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	idx, ok := l.Cov.Index(seq[i].GID)
	if !ok || idx >= len(l.RuleSets) {
		return nil
	}
	byGlyph := func(gid glyph.ID, want uint16) bool {
		return gid == glyph.ID(want)
	}
	for _, rule := range l.RuleSets[idx] {
		if matchChain(seq, i, rule, byGlyph, byGlyph, byGlyph) {
			return &Match{
				Start:   i,
				End:     i + 1 + len(rule.Input),
				Actions: rule.Actions,
			}
		}
	}
	return nil
}

// Apply implements the [Subtable] interface.
func (l *ChainedContext2) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	if !l.Cov.Contains(seq[i].GID) {
		return nil
	}
	cls := int(l.InputClass.Class(seq[i].GID))
	if cls >= len(l.RuleSets) {
		return nil
	}
	byBack := func(gid glyph.ID, want uint16) bool {
		return l.BacktrackClass.Class(gid) == want
	}
	byInput := func(gid glyph.ID, want uint16) bool {
		return l.InputClass.Class(gid) == want
	}
	byAhead := func(gid glyph.ID, want uint16) bool {
		return l.LookaheadClass.Class(gid) == want
	}
	for _, rule := range l.RuleSets[cls] {
		if matchChain(seq, i, rule, byBack, byInput, byAhead) {
			return &Match{
				Start:   i,
				End:     i + 1 + len(rule.Input),
				Actions: rule.Actions,
			}
		}
	}
	return nil
}

// Apply implements the [Subtable] interface.
func (l *ChainedContext3) Apply(ctx *Context, seq glyph.Seq, i int) *Match {
	if !l.Input[0].Contains(seq[i].GID) {
		return nil
	}
	if i < len(l.Backtrack) || i+len(l.Input)+len(l.Lookahead) > len(seq) {
		return nil
	}
	for k, cov := range l.Backtrack {
		if !cov.Contains(seq[i-1-k].GID) {
			return nil
		}
	}
	for k, cov := range l.Input[1:] {
		if !cov.Contains(seq[i+1+k].GID) {
			return nil
		}
	}
	for k, cov := range l.Lookahead {
		if !cov.Contains(seq[i+len(l.Input)+k].GID) {
			return nil
		}
	}
	return &Match{
		Start:   i,
		End:     i + len(l.Input),
		Actions: l.Actions,
	}
}
