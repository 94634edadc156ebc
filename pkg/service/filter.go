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

package service

import (
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

// MinSimilarity is the Jaro-Winkler score a title needs to match a query
// that is neither an id nor a substring of the title.
const MinSimilarity float32 = 0.85

// FilterGames keeps the games matched by any query, in input order. A
// query matches a game whose id equals it exactly, whose name contains it
// (case-insensitive), or whose name is similar enough. No queries keeps
// every game.
func FilterGames(games []launchers.GameRecord, queries []string) []launchers.GameRecord {
	if len(queries) == 0 {
		return games
	}

	normalized := make([]string, 0, len(queries))
	for _, q := range queries {
		if q = strings.TrimSpace(q); q != "" {
			normalized = append(normalized, q)
		}
	}

	out := make([]launchers.GameRecord, 0, len(games))
	for _, g := range games {
		for _, q := range normalized {
			if matchGame(g, q) {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

//nolint:gocritic // record passed by value like the rest of the package
func matchGame(g launchers.GameRecord, query string) bool {
	if g.ID == query {
		return true
	}
	name := strings.ToLower(g.Name)
	q := strings.ToLower(query)
	if strings.Contains(name, q) {
		return true
	}

	similarity := edlib.JaroWinklerSimilarity(q, name)
	if similarity > 0.7 {
		log.Debug().
			Str("query", query).
			Str("candidate", g.Name).
			Float32("similarity", similarity).
			Msg("fuzzy game match candidate")
	}
	return similarity >= MinSimilarity
}
