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

	"github.com/flopp/go-findfont"
)

// FindFont searches the operating system font directories for a font
// file matching the given name, e.g. "DejaVuSans" or "arial.ttf".
func FindFont(fontName string) (string, error) {
	name := fontName
	if !strings.ContainsAny(name, ".") {
		name += ".ttf"
	}
	path, err := findfont.Find(name)
	if err == nil {
		return path, nil
	}
	if !strings.HasSuffix(fontName, ".ttf") && !strings.HasSuffix(fontName, ".otf") {
		if path, err2 := findfont.Find(fontName + ".otf"); err2 == nil {
			return path, nil
		}
	}
	return "", err
}

// ListFonts returns the font files found in the operating system font
// directories.
func ListFonts() []string {
	return findfont.List()
}
