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
	"context"
	"regexp"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
)

const blizzardPublisher = "Blizzard Entertainment"

var uidRe = regexp.MustCompile(`--uid=([^\s"]+)`)

// Battle.net uninstall entries carry an internal uid; the client's
// battlenet:// URLs want the product code.
var battleNetProductCodes = map[string]string{
	"anbs":        "ANBS",
	"diablo3":     "D3",
	"fenris":      "Fen",
	"fore":        "FORE",
	"heroes":      "Hero",
	"hs_beta":     "WTCG",
	"lazarus":     "LAZR",
	"odin":        "ODIN",
	"osi":         "OSI",
	"prometheus":  "Pro",
	"rtro":        "RTRO",
	"s1":          "S1",
	"s2":          "S2",
	"viper":       "VIPR",
	"w3":          "W3",
	"wow":         "WoW",
	"wow_classic": "WoWC",
	"zeus":        "ZEUS",
}

// BattleNetProductCode maps an uninstall uid to the code used in
// battlenet:// URLs. Unknown uids are returned unchanged.
func BattleNetProductCode(uid string) string {
	if code, ok := battleNetProductCodes[strings.ToLower(uid)]; ok {
		return code
	}
	return uid
}

// BattleNetReader finds Blizzard games through their uninstall entries,
// which Battle.net writes with a --uid argument naming the product.
type BattleNetReader struct{}

func (BattleNetReader) Read(ctx context.Context, src Source) ([]launchers.GameRecord, error) {
	entries, err := listUninstall(ctx, src.Registry)
	if err != nil {
		return nil, err
	}

	exe := clientExe(src)
	var games []launchers.GameRecord
	for _, entry := range entries {
		if !strings.EqualFold(strings.TrimSpace(entry.Publisher), blizzardPublisher) {
			continue
		}
		m := uidRe.FindStringSubmatch(entry.UninstallString)
		if m == nil {
			continue
		}
		if strings.EqualFold(m[1], "battle.net") || strings.EqualFold(entry.DisplayName, "Battle.net") {
			continue
		}

		games = append(games, launchers.GameRecord{
			ID:         BattleNetProductCode(m[1]),
			Name:       entry.DisplayName,
			Executable: exe,
			InstallDir: src.InstallPath,
			Icon:       iconPath(entry.DisplayIcon),
		})
	}

	return games, nil
}
