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

package shortcuts

import (
	"strconv"
	"unicode/utf16"
)

// GenerateAppID derives the shortcut identifier for a game from its
// executable path and display name. The two strings are concatenated and
// folded over their UTF-16 code units with hash = hash*31 - hash + unit,
// wrapping at 32 bits like a signed int32, and the absolute value is
// returned. The same inputs always produce the same identifier, so
// importing a game twice targets the same shortcut.
func GenerateAppID(executablePath, displayName string) uint32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(executablePath + displayName)) {
		hash = hash*31 - hash + int32(unit)
	}
	return absHash(hash)
}

func absHash(hash int32) uint32 {
	if hash < 0 {
		// -MinInt32 overflows int32 but fits in uint32
		return uint32(-int64(hash))
	}
	return uint32(hash)
}

// FormatAppID returns the decimal form of an identifier.
func FormatAppID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseAppID parses the decimal form of an identifier.
func ParseAppID(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err //nolint:wrapcheck // strconv errors already name the input
	}
	return uint32(v), nil
}
