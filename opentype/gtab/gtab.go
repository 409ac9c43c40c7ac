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

// Package gtab reads the "GSUB" and "GPOS" layout tables.
//
// Both tables share the same skeleton: a ScriptList selecting language
// systems, a FeatureList mapping feature tags to lookups, and a
// LookupList holding the actual substitution or positioning rules.
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2
package gtab

import (
	"sort"

	"golang.org/x/text/language"

	"github.com/cdelker/ziafont/parser"
)

// Kind distinguishes the two layout tables.
type Kind int

// The two layout table kinds.
const (
	GSUB Kind = iota
	GPOS
)

func (k Kind) String() string {
	if k == GPOS {
		return "GPOS"
	}
	return "GSUB"
}

// FeatureIndex is an index into the feature list.
type FeatureIndex uint16

// LookupIndex is an index into the lookup list.
type LookupIndex uint16

// Feature is one entry of the FeatureList.
type Feature struct {
	Tag     string
	Lookups []LookupIndex
}

// LangSys describes the features of one language system.
type LangSys struct {
	Required FeatureIndex // 0xFFFF if unset
	Features []FeatureIndex
}

// Script maps language system tags to feature sets.
type Script struct {
	DefaultLangSys *LangSys
	Languages      map[string]*LangSys
}

// Info is a decoded "GSUB" or "GPOS" table.
type Info struct {
	Kind Kind

	ScriptList  map[string]*Script
	FeatureList []*Feature
	LookupList  LookupList

	// Warnings lists the unsupported lookup types encountered while
	// reading the table.  The corresponding lookups are skipped.
	Warnings []string
}

// Read decodes a "GSUB" or "GPOS" table.
func Read(kind Kind, data []byte) (*Info, error) {
	p := parser.New(kind.String(), data)

	version, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if version != 0x00010000 && version != 0x00010001 {
		return nil, parser.NotSupported(kind.String(), "table version")
	}
	scriptListOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	featureListOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	lookupListOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	// version 1.1 adds a featureVariationsOffset, which is not used

	info := &Info{Kind: kind}

	err = info.readScriptList(p, int(scriptListOffset))
	if err != nil {
		return nil, err
	}
	err = info.readFeatureList(p, int(featureListOffset))
	if err != nil {
		return nil, err
	}
	err = info.readLookupList(p, int(lookupListOffset))
	if err != nil {
		return nil, err
	}

	return info, nil
}

func (info *Info) readScriptList(p *parser.Parser, pos int) error {
	err := p.Seek(pos)
	if err != nil {
		return err
	}
	count, err := p.ReadUint16()
	if err != nil {
		return err
	}

	type scriptRecord struct {
		tag    string
		offset uint16
	}
	records := make([]scriptRecord, count)
	for i := range records {
		records[i].tag, err = p.ReadTag()
		if err != nil {
			return err
		}
		records[i].offset, err = p.ReadUint16()
		if err != nil {
			return err
		}
	}

	info.ScriptList = make(map[string]*Script, count)
	for _, rec := range records {
		script, err := readScript(p, pos+int(rec.offset))
		if err != nil {
			return err
		}
		info.ScriptList[rec.tag] = script
	}
	return nil
}

func readScript(p *parser.Parser, pos int) (*Script, error) {
	err := p.Seek(pos)
	if err != nil {
		return nil, err
	}
	defaultOffset, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	count, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	type langSysRecord struct {
		tag    string
		offset uint16
	}
	records := make([]langSysRecord, count)
	for i := range records {
		records[i].tag, err = p.ReadTag()
		if err != nil {
			return nil, err
		}
		records[i].offset, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}

	script := &Script{Languages: map[string]*LangSys{}}
	if defaultOffset != 0 {
		script.DefaultLangSys, err = readLangSys(p, pos+int(defaultOffset))
		if err != nil {
			return nil, err
		}
	}
	for _, rec := range records {
		ls, err := readLangSys(p, pos+int(rec.offset))
		if err != nil {
			return nil, err
		}
		script.Languages[rec.tag] = ls
	}
	return script, nil
}

func readLangSys(p *parser.Parser, pos int) (*LangSys, error) {
	err := p.Seek(pos)
	if err != nil {
		return nil, err
	}
	err = p.Skip(2) // lookupOrderOffset, reserved
	if err != nil {
		return nil, err
	}
	required, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	indices, err := p.ReadUint16Slice()
	if err != nil {
		return nil, err
	}
	ls := &LangSys{Required: FeatureIndex(required)}
	for _, idx := range indices {
		ls.Features = append(ls.Features, FeatureIndex(idx))
	}
	return ls, nil
}

func (info *Info) readFeatureList(p *parser.Parser, pos int) error {
	err := p.Seek(pos)
	if err != nil {
		return err
	}
	count, err := p.ReadUint16()
	if err != nil {
		return err
	}

	type featureRecord struct {
		tag    string
		offset uint16
	}
	records := make([]featureRecord, count)
	for i := range records {
		records[i].tag, err = p.ReadTag()
		if err != nil {
			return err
		}
		records[i].offset, err = p.ReadUint16()
		if err != nil {
			return err
		}
	}

	info.FeatureList = make([]*Feature, count)
	for i, rec := range records {
		err = p.Seek(pos + int(rec.offset))
		if err != nil {
			return err
		}
		err = p.Skip(2) // featureParamsOffset
		if err != nil {
			return err
		}
		indices, err := p.ReadUint16Slice()
		if err != nil {
			return err
		}
		feature := &Feature{Tag: rec.tag}
		for _, idx := range indices {
			feature.Lookups = append(feature.Lookups, LookupIndex(idx))
		}
		info.FeatureList[i] = feature
	}
	return nil
}

// langSys selects the language system for the given language.
// Script selection prefers "DFLT", then "latn", then the first script
// in tag order.
func (info *Info) langSys(lang language.Tag) *LangSys {
	script := info.ScriptList["DFLT"]
	if script == nil {
		script = info.ScriptList["latn"]
	}
	if script == nil {
		tags := make([]string, 0, len(info.ScriptList))
		for tag := range info.ScriptList {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		if len(tags) == 0 {
			return nil
		}
		script = info.ScriptList[tags[0]]
	}

	if tag := otLanguageTag(lang); tag != "" {
		if ls := script.Languages[tag]; ls != nil {
			return ls
		}
	}
	return script.DefaultLangSys
}

// FindLookups returns the lookups needed to implement the enabled
// features, in LookupList order.
func (info *Info) FindLookups(lang language.Tag, enabled map[string]bool) []LookupIndex {
	if info == nil {
		return nil
	}
	langSys := info.langSys(lang)
	if langSys == nil {
		return nil
	}

	include := make(map[LookupIndex]bool)
	numFeatures := FeatureIndex(len(info.FeatureList))
	if langSys.Required < numFeatures {
		for _, l := range info.FeatureList[langSys.Required].Lookups {
			include[l] = true
		}
	}
	for _, f := range langSys.Features {
		if f >= numFeatures {
			continue
		}
		feature := info.FeatureList[f]
		if !enabled[feature.Tag] {
			continue
		}
		for _, l := range feature.Lookups {
			include[l] = true
		}
	}

	numLookups := LookupIndex(len(info.LookupList))
	ll := make([]LookupIndex, 0, len(include))
	for l := range include {
		if l < numLookups {
			ll = append(ll, l)
		}
	}
	sort.Slice(ll, func(i, j int) bool { return ll[i] < ll[j] })
	return ll
}

// otLanguageTag converts a BCP 47 language tag to an OpenType language
// system tag.  Unknown languages map to the default language system.
func otLanguageTag(lang language.Tag) string {
	base, conf := lang.Base()
	if conf == language.No {
		return ""
	}
	return otLangTags[base.String()]
}

var otLangTags = map[string]string{
	"az": "AZE ",
	"ca": "CAT ",
	"cs": "CSY ",
	"da": "DAN ",
	"de": "DEU ",
	"el": "ELL ",
	"en": "ENG ",
	"es": "ESP ",
	"fi": "FIN ",
	"fr": "FRA ",
	"hr": "HRV ",
	"hu": "HUN ",
	"it": "ITA ",
	"mk": "MKD ",
	"nl": "NLD ",
	"no": "NOR ",
	"pl": "PLK ",
	"pt": "PTG ",
	"ro": "ROM ",
	"ru": "RUS ",
	"sk": "SKY ",
	"sl": "SLV ",
	"sv": "SVE ",
	"tr": "TRK ",
	"uk": "UKR ",
}
