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

//go:build !windows

package steam

// defaultCandidates covers native, Flatpak and Snap installs on Linux and
// the standard macOS location.
func defaultCandidates() []string {
	return []string{
		"$HOME/.steam/steam",
		"$HOME/.local/share/Steam",
		"$HOME/.var/app/com.valvesoftware.Steam/.steam/steam",
		"$HOME/snap/steam/common/.steam/steam",
		"$HOME/Library/Application Support/Steam",
	}
}
