// Zaparoo Import
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Import.
//
// Zaparoo Import is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Import is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Import.  If not, see <http://www.gnu.org/licenses/>.

package manifests

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var decorations = runes.Predicate(func(r rune) bool {
	switch r {
	case '™', '®', '©', '℠':
		return true
	}
	return unicode.Is(unicode.Cc, r) && !unicode.IsSpace(r)
})

// CleanName normalizes a title from a launcher manifest: NFC composition,
// full-width forms folded to ASCII, trademark glyphs removed and runs of
// whitespace collapsed.
func CleanName(s string) string {
	t := transform.Chain(
		norm.NFC,
		width.Fold,
		runes.Remove(decorations),
	)
	if cleaned, _, err := transform.String(t, s); err == nil {
		s = cleaned
	}
	return strings.Join(strings.Fields(s), " ")
}
