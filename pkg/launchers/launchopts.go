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

package launchers

import (
	"fmt"
	"strings"
)

var launchOptionFormats = map[string]string{
	Epic:      "-EpicPortal -epicapp=%s",
	Ubisoft:   "uplay://launch/%s",
	EA:        "origin2://game/launch/?offerIds=%s",
	GOG:       "/command=runGame /gameId=%s",
	BattleNet: "battlenet://%s",
}

// ResolveLaunchOptions returns the arguments Steam passes to a game's
// executable so the owning launcher starts it. The launcher id is matched
// without regard to case. Unknown launchers get no options.
func ResolveLaunchOptions(launcherID, gameID string) string {
	format, ok := launchOptionFormats[strings.ToLower(launcherID)]
	if !ok {
		return ""
	}
	return fmt.Sprintf(format, gameID)
}
