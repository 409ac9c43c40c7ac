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
	"strconv"
	"strings"

	"github.com/cdelker/ziafont/glyph"
	"github.com/cdelker/ziafont/outline"
)

// Element is a minimal XML element tree, sufficient for assembling
// SVG documents.
type Element struct {
	Name     string
	attrs    [][2]string
	children []*Element
}

// NewElement creates an element with the given tag name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Set adds or replaces an attribute.
func (e *Element) Set(key, value string) *Element {
	for i := range e.attrs {
		if e.attrs[i][0] == key {
			e.attrs[i][1] = value
			return e
		}
	}
	e.attrs = append(e.attrs, [2]string{key, value})
	return e
}

// Attr returns the value of an attribute, or "".
func (e *Element) Attr(key string) string {
	for _, a := range e.attrs {
		if a[0] == key {
			return a[1]
		}
	}
	return ""
}

// Append adds a child element and returns it.
func (e *Element) Append(child *Element) *Element {
	e.children = append(e.children, child)
	return child
}

// Find returns the first direct child with the given name, or nil.
func (e *Element) Find(name string) *Element {
	for _, c := range e.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (e *Element) String() string {
	var sb strings.Builder
	e.writeTo(&sb)
	return sb.String()
}

func (e *Element) writeTo(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.Name)
	for _, a := range e.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a[0])
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(a[1]))
		sb.WriteByte('"')
	}
	if len(e.children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, c := range e.children {
		c.writeTo(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.Name)
	sb.WriteByte('>')
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// fmtNum formats a coordinate with the configured precision,
// stripping trailing zeros.
func fmtNum(x float64, precision int) string {
	s := strconv.FormatFloat(x, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// pathData builds the SVG path commands for a glyph outline.  Design
// units are scaled and the y axis is flipped to point down.
func pathData(g *outline.Glyph, x0, y0, scale float64, precision int) string {
	if g.IsBlank() {
		return ""
	}
	var sb strings.Builder
	num := func(x float64) string { return fmtNum(x, precision) }
	pt := func(i int, cmd outline.Command) {
		sb.WriteString(num(x0 + cmd.Args[i].X*scale))
		sb.WriteByte(' ')
		sb.WriteString(num(y0 - cmd.Args[i].Y*scale))
	}
	for _, cmd := range g.Cmds {
		switch cmd.Op {
		case outline.OpMoveTo:
			sb.WriteString("M ")
			pt(0, cmd)
		case outline.OpLineTo:
			sb.WriteString("L ")
			pt(0, cmd)
		case outline.OpQuadTo:
			sb.WriteString("Q ")
			pt(0, cmd)
			sb.WriteByte(' ')
			pt(1, cmd)
		case outline.OpCubeTo:
			sb.WriteString("C ")
			pt(0, cmd)
			sb.WriteByte(' ')
			pt(1, cmd)
			sb.WriteByte(' ')
			pt(2, cmd)
		case outline.OpClose:
			sb.WriteString("Z")
		}
		sb.WriteByte(' ')
	}
	return strings.TrimRight(sb.String(), " ")
}

// glyphID returns the reuse identifier of a glyph.
func (f *Font) glyphID(gid glyph.ID) string {
	base := f.PostScriptName()
	if base == "" {
		base = strings.ReplaceAll(f.FamilyName(), " ", "")
	}
	if base == "" {
		base = "glyph"
	}
	return fmt.Sprintf("%s_%d", base, gid)
}

// SVG returns the shaped text as a standalone SVG document.
func (t *Text) SVG() string {
	svg := NewElement("svg")
	svg.Set("xmlns", "http://www.w3.org/2000/svg")
	t.DrawOn(svg, 0, 0)

	bbox := t.BBox()
	w := bbox.URx - bbox.LLx
	h := bbox.URy - bbox.LLy
	prec := t.config.Precision
	svg.Set("width", fmtNum(w, prec))
	svg.Set("height", fmtNum(h, prec))
	svg.Set("viewBox", fmt.Sprintf("%s %s %s %s",
		fmtNum(bbox.LLx, prec), fmtNum(bbox.LLy, prec),
		fmtNum(w, prec), fmtNum(h, prec)))
	return svg.String()
}

// DrawOn places the shaped text on an existing SVG canvas with its
// anchor at (x, y).
func (t *Text) DrawOn(canvas *Element, x, y float64) *Element {
	prec := t.config.Precision

	if t.config.SVG2 {
		defs := canvas.Find("defs")
		if defs == nil {
			defs = canvas.Append(NewElement("defs"))
		}
		seen := map[string]bool{}
		for _, c := range defs.children {
			seen[c.Attr("id")] = true
		}
		for _, pg := range t.glyphs {
			id := t.font.glyphID(pg.GID)
			if seen[id] {
				continue
			}
			seen[id] = true
			g := t.font.Glyph(pg.GID)
			if g.Outline.IsBlank() {
				continue
			}
			// reusable outlines stay in design units; the y flip
			// happens in the referencing transform
			path := NewElement("path")
			path.Set("id", id)
			path.Set("d", pathData(g.Outline, 0, 0, 1, 0))
			defs.Append(path)
		}
	}

	m := t.transform
	group := canvas.Append(NewElement("g"))
	group.Set("transform", fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		fmtNum(m[0], 4), fmtNum(m[1], 4), fmtNum(m[2], 4), fmtNum(m[3], 4),
		fmtNum(m[4]+x, prec), fmtNum(m[5]+y, prec)))
	if t.color != "" {
		group.Set("fill", t.color)
	}

	for _, pg := range t.glyphs {
		g := t.font.Glyph(pg.GID)
		if g.Outline.IsBlank() {
			continue
		}
		if t.config.SVG2 {
			use := group.Append(NewElement("use"))
			use.Set("href", "#"+t.font.glyphID(pg.GID))
			use.Set("transform", fmt.Sprintf("translate(%s %s) scale(%s %s)",
				fmtNum(pg.X, prec), fmtNum(pg.Y, prec),
				fmtNum(pg.Scale, 6), fmtNum(-pg.Scale, 6)))
		} else {
			path := NewElement("path")
			path.Set("d", pathData(g.Outline, pg.X, pg.Y, pg.Scale, prec))
			group.Append(path)
		}
	}

	if t.config.Debug {
		t.drawDebug(group, prec)
	}
	return canvas
}

// drawDebug adds baseline, bounding box and origin markers in block
// coordinates, so they rotate with the text.
func (t *Text) drawDebug(group *Element, prec int) {
	for i := range t.lineWidths {
		baseline := float64(i) * t.lineHeight
		line := NewElement("path")
		line.Set("d", fmt.Sprintf("M %s %s L %s %s",
			fmtNum(0, prec), fmtNum(baseline, prec),
			fmtNum(t.width, prec), fmtNum(baseline, prec)))
		line.Set("stroke", "red")
		line.Set("fill", "none")
		group.Append(line)
	}

	box := NewElement("rect")
	box.Set("x", fmtNum(0, prec))
	box.Set("y", fmtNum(t.top, prec))
	box.Set("width", fmtNum(t.width, prec))
	box.Set("height", fmtNum(t.bottom-t.top, prec))
	box.Set("fill", "none")
	box.Set("stroke", "blue")
	box.Set("stroke-dasharray", "2 2")
	group.Append(box)

	origin := NewElement("circle")
	origin.Set("cx", "0")
	origin.Set("cy", "0")
	origin.Set("r", "3")
	origin.Set("fill", "red")
	group.Append(origin)
}

// GlyphSVG returns a standalone SVG document showing a single glyph
// at the given pixel size.
func (f *Font) GlyphSVG(gid glyph.ID, size float64) string {
	return f.glyphSVG(gid, size, false)
}

// InspectGlyph is like [Font.GlyphSVG], with the glyph's control
// points, baseline and metric lines drawn for debugging.
func (f *Font) InspectGlyph(gid glyph.ID, size float64) string {
	return f.glyphSVG(gid, size, true)
}

func (f *Font) glyphSVG(gid glyph.ID, size float64, annotate bool) string {
	if size <= 0 {
		size = f.Config.FontSize
	}
	prec := f.Config.Precision
	scale := size / float64(f.UnitsPerEm())
	g := f.Glyph(gid)
	fontBox := f.BBox()

	xmin := min(float64(g.BBox.LLx)*scale, 0)
	xmax := max(float64(g.BBox.URx), float64(g.Advance)) * scale
	ymin := min(float64(g.BBox.LLy), float64(fontBox.LLy)) * scale
	ymax := max(float64(g.BBox.URy), float64(fontBox.URy)) * scale
	width := xmax - xmin
	height := ymax - ymin
	base := ymax

	svg := NewElement("svg")
	svg.Set("xmlns", "http://www.w3.org/2000/svg")
	svg.Set("width", fmtNum(width, prec))
	svg.Set("height", fmtNum(height, prec))
	svg.Set("viewBox", fmt.Sprintf("%s 0 %s %s",
		fmtNum(xmin, prec), fmtNum(width, prec), fmtNum(height, prec)))

	if !g.Outline.IsBlank() {
		path := NewElement("path")
		path.Set("d", pathData(g.Outline, 0, base, scale, prec))
		svg.Append(path)
	}

	if annotate {
		addLine := func(y float64, color, dash string) {
			p := NewElement("path")
			p.Set("d", fmt.Sprintf("M %s %s L %s %s",
				fmtNum(xmin, prec), fmtNum(y, prec),
				fmtNum(xmax, prec), fmtNum(y, prec)))
			p.Set("stroke", color)
			p.Set("fill", "none")
			if dash != "" {
				p.Set("stroke-dasharray", dash)
			}
			svg.Append(p)
		}
		addLine(base, "red", "")
		addLine(base-float64(f.Ascent())*scale, "gray", "2 2")
		addLine(base-float64(f.Descent())*scale, "gray", "2 2")

		adv := NewElement("rect")
		adv.Set("x", "0")
		adv.Set("y", "0")
		adv.Set("width", fmtNum(float64(g.Advance)*scale, prec))
		adv.Set("height", fmtNum(height, prec))
		adv.Set("fill", "none")
		adv.Set("stroke", "blue")
		adv.Set("stroke-dasharray", "2 2")
		svg.Append(adv)

		if g.Outline != nil {
			addGlyphPoints(svg, g.Outline, base, scale, prec)
		}
	}
	return svg.String()
}

// addGlyphPoints marks the on-curve points and Bézier control points
// of an outline.
func addGlyphPoints(svg *Element, g *outline.Glyph, base, scale float64, prec int) {
	mark := func(x, y float64, control bool) {
		c := NewElement("circle")
		c.Set("cx", fmtNum(x*scale, prec))
		c.Set("cy", fmtNum(base-y*scale, prec))
		c.Set("r", "2")
		if control {
			c.Set("fill", "none")
		} else {
			c.Set("fill", "blue")
		}
		c.Set("stroke", "blue")
		c.Set("opacity", "0.4")
		svg.Append(c)
	}
	for _, cmd := range g.Cmds {
		switch cmd.Op {
		case outline.OpMoveTo, outline.OpLineTo:
			mark(cmd.Args[0].X, cmd.Args[0].Y, false)
		case outline.OpQuadTo:
			mark(cmd.Args[0].X, cmd.Args[0].Y, true)
			mark(cmd.Args[1].X, cmd.Args[1].Y, false)
		case outline.OpCubeTo:
			mark(cmd.Args[0].X, cmd.Args[0].Y, true)
			mark(cmd.Args[1].X, cmd.Args[1].Y, true)
			mark(cmd.Args[2].X, cmd.Args[2].Y, false)
		}
	}
}
