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

// Package ziafont reads TrueType and OpenType font files and converts
// text to scalable vector paths, without requiring the font to be
// installed on the rendering device.
package ziafont

import (
	"os"
	"sort"
	"sync"

	"seehuhn.de/go/postscript/funit"

	"github.com/cdelker/ziafont/cff"
	"github.com/cdelker/ziafont/cmap"
	"github.com/cdelker/ziafont/glyf"
	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/head"
	"github.com/cdelker/ziafont/hmtx"
	"github.com/cdelker/ziafont/name"
	"github.com/cdelker/ziafont/opentype/gtab"
	"github.com/cdelker/ziafont/parser"
)

// Font is a loaded TrueType or OpenType font.
//
// A Font is immutable after loading, except for the Features map and
// the internal outline cache.  Once the glyphs of interest have been
// decoded (see [Font.WarmUp]), a Font may be shared between
// goroutines.
type Font struct {
	dir *directory

	headInfo *head.Info
	hheaInfo *head.Hhea
	maxpInfo *head.Maxp
	metrics  *hmtx.Info
	names    name.Table

	cmapTable *cmap.Table
	charMap   cmap.Subtable

	// exactly one of the two outline backends is set
	glyfOutlines glyf.Glyphs
	cffFont      *cff.Font

	// Gsub and Gpos are nil when the font has no such table.
	Gsub *gtab.Info
	Gpos *gtab.Info

	// Features enables or disables OpenType features by tag.
	// Unknown tags are accepted and ignored by the engines.
	Features map[string]bool

	// AlternateIndex selects the variant used by "salt" and other
	// alternate substitution lookups.
	AlternateIndex int

	// Config provides defaults for text requests made with this font.
	Config Config

	mu       sync.Mutex
	outlines map[glyph.ID]*Glyph
	reverse  map[glyph.ID][]rune
	warnings []string
}

// Load reads a font from its binary representation.  The byte slice
// is retained by the Font and must not be modified afterwards.
func Load(data []byte) (*Font, error) {
	dir, err := readDirectory(data)
	if err != nil {
		return nil, err
	}

	f := &Font{
		dir:      dir,
		Features: defaultFeatures(),
		Config:   DefaultConfig(),
		outlines: make(map[glyph.ID]*Glyph),
	}

	headData, err := dir.requiredTable("head")
	if err != nil {
		return nil, err
	}
	f.headInfo, err = head.Decode(headData)
	if err != nil {
		return nil, err
	}

	hheaData, err := dir.requiredTable("hhea")
	if err != nil {
		return nil, err
	}
	f.hheaInfo, err = head.DecodeHhea(hheaData)
	if err != nil {
		return nil, err
	}

	maxpData, err := dir.requiredTable("maxp")
	if err != nil {
		return nil, err
	}
	f.maxpInfo, err = head.DecodeMaxp(maxpData)
	if err != nil {
		return nil, err
	}

	hmtxData, err := dir.requiredTable("hmtx")
	if err != nil {
		return nil, err
	}
	f.metrics, err = hmtx.Decode(hmtxData,
		int(f.hheaInfo.NumHMetrics), f.maxpInfo.NumGlyphs)
	if err != nil {
		return nil, err
	}

	cmapData, err := dir.requiredTable("cmap")
	if err != nil {
		return nil, err
	}
	f.cmapTable, err = cmap.Decode(cmapData)
	if err != nil {
		return nil, err
	}
	f.charMap = f.cmapTable.Best()

	if nameData := dir.table("name"); nameData != nil {
		f.names, err = name.Decode(nameData)
		if err != nil {
			return nil, err
		}
	} else {
		f.names = name.Table{}
	}

	// outline backend
	switch {
	case dir.table("glyf") != nil:
		locaData, err := dir.requiredTable("loca")
		if err != nil {
			return nil, err
		}
		f.glyfOutlines, err = glyf.Decode(dir.table("glyf"), locaData,
			f.headInfo.IndexToLocFormat)
		if err != nil {
			return nil, err
		}
	case dir.table("CFF ") != nil:
		f.cffFont, err = cff.Read(dir.table("CFF "))
		if err != nil {
			return nil, err
		}
	case dir.table("CFF2") != nil:
		return nil, parser.NotSupported("sfnt", "CFF2 outlines")
	default:
		return nil, &MissingTableError{Tag: "glyf"}
	}

	// layout tables are optional; the engines degrade to the identity
	if gsubData := dir.table("GSUB"); gsubData != nil {
		f.Gsub, err = gtab.Read(gtab.GSUB, gsubData)
		if err != nil {
			f.warn(err.Error())
			f.Gsub = nil
		} else {
			f.warnings = append(f.warnings, f.Gsub.Warnings...)
		}
	}
	if gposData := dir.table("GPOS"); gposData != nil {
		f.Gpos, err = gtab.Read(gtab.GPOS, gposData)
		if err != nil {
			f.warn(err.Error())
			f.Gpos = nil
		} else {
			f.warnings = append(f.warnings, f.Gpos.Warnings...)
		}
	}

	return f, nil
}

// Open loads a font file.  If the file does not exist, the name is
// looked up in the operating system font directories.
func Open(filename string) (*Font, error) {
	if _, err := os.Stat(filename); err != nil {
		found, ferr := FindFont(filename)
		if ferr != nil {
			return nil, err
		}
		filename = found
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// defaultFeatures returns the feature tags enabled by default.
func defaultFeatures() map[string]bool {
	return map[string]bool{
		"kern": true,
		"liga": true,
		"calt": true,
	}
}

// Table returns the raw contents of the named SFNT table, or nil if
// the font does not contain it.
func (f *Font) Table(tag string) []byte {
	return f.dir.table(tag)
}

// Tables lists the table tags present in the font.
func (f *Font) Tables() []string {
	tags := make([]string, 0, len(f.dir.tables))
	for tag := range f.dir.tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// VerifyChecksums validates the directory checksum of every table
// except "head".
func (f *Font) VerifyChecksums() error {
	return f.dir.checkSums()
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.maxpInfo.NumGlyphs
}

// UnitsPerEm returns the design grid size of the font.
func (f *Font) UnitsPerEm() uint16 {
	return f.headInfo.UnitsPerEm
}

// Ascent returns the typographic ascent in design units.
func (f *Font) Ascent() funit.Int16 {
	return f.hheaInfo.Ascent
}

// Descent returns the typographic descent in design units.
// The value is negative.
func (f *Font) Descent() funit.Int16 {
	return f.hheaInfo.Descent
}

// LineGap returns the typographic line gap in design units.
func (f *Font) LineGap() funit.Int16 {
	return f.hheaInfo.LineGap
}

// BBox returns the font bounding box in design units.
func (f *Font) BBox() funit.Rect16 {
	return f.headInfo.BBox
}

// FamilyName returns the font family name.
func (f *Font) FamilyName() string {
	return f.names.Family()
}

// Subfamily returns the style name of the font.
func (f *Font) Subfamily() string {
	return f.names.Subfamily()
}

// FullName returns the full font name.
func (f *Font) FullName() string {
	return f.names.FullName()
}

// PostScriptName returns the PostScript name of the font.
func (f *Font) PostScriptName() string {
	if s := f.names.PostScriptName(); s != "" {
		return s
	}
	if f.cffFont != nil {
		return f.cffFont.FontName
	}
	return ""
}

// Names returns the raw name table of the font.
func (f *Font) Names() name.Table {
	return f.names
}

// IsCFF reports whether the font uses CFF glyph outlines.
func (f *Font) IsCFF() bool {
	return f.cffFont != nil
}

// GlyphIndex returns the glyph ID for a code point.  Unmapped code
// points return 0, the ".notdef" glyph.
func (f *Font) GlyphIndex(r rune) glyph.ID {
	gid := f.charMap.Lookup(r)
	if int(gid) >= f.maxpInfo.NumGlyphs {
		return 0
	}
	return gid
}

// Codepoints returns the code points mapped to the given glyph,
// the reverse of [Font.GlyphIndex].
func (f *Font) Codepoints(gid glyph.ID) []rune {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reverse == nil {
		f.reverse = cmap.Reverse(f.charMap)
	}
	return f.reverse[gid]
}

// GlyphAdvance returns the advance width of a glyph in design units.
func (f *Font) GlyphAdvance(gid glyph.ID) uint16 {
	return f.metrics.Advance(gid)
}

// warn records a recoverable problem.
func (f *Font) warn(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warnings = append(f.warnings, msg)
}

// Warnings lists recoverable problems encountered while reading the
// font or decoding glyphs.
func (f *Font) Warnings() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.warnings...)
}
