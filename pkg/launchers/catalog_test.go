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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{Epic, Ubisoft, EA, GOG, BattleNet}, IDs())

	profiles := Catalog()
	require.Len(t, profiles, 5)
	for _, p := range profiles {
		assert.NotEmpty(t, p.Name, p.ID)
		assert.NotEmpty(t, p.Icon, p.ID)
		assert.NotEmpty(t, p.Paths, p.ID)
		assert.NotEmpty(t, p.Manifest.Kind, p.ID)
		require.NotNil(t, p.Registry, p.ID)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	t.Parallel()

	profiles := Catalog()
	profiles[0].Paths[0] = "changed"
	profiles[0].Registry.Key = "changed"

	fresh, ok := Lookup(Epic)
	require.True(t, ok)
	assert.NotEqual(t, "changed", fresh.Paths[0])
	assert.NotEqual(t, "changed", fresh.Registry.Key)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	p, ok := Lookup("GOG")
	require.True(t, ok)
	assert.Equal(t, "GOG Galaxy", p.Name)
	assert.Equal(t, "GalaxyClient.exe", p.ClientExe)

	_, ok = Lookup("origin")
	assert.False(t, ok)
}

func TestResolveLaunchOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		launcher string
		gameID   string
		expected string
	}{
		{launcher: Epic, gameID: "Fortnite", expected: "-EpicPortal -epicapp=Fortnite"},
		{launcher: Ubisoft, gameID: "635", expected: "uplay://launch/635"},
		{launcher: EA, gameID: "Origin.OFR.50.0002694", expected: "origin2://game/launch/?offerIds=Origin.OFR.50.0002694"},
		{launcher: GOG, gameID: "1207664643", expected: "/command=runGame /gameId=1207664643"},
		{launcher: BattleNet, gameID: "Pro", expected: "battlenet://Pro"},
		{launcher: "steam", gameID: "440", expected: ""},
		{launcher: "", gameID: "x", expected: ""},
		{launcher: "Epic", gameID: "Fortnite", expected: "-EpicPortal -epicapp=Fortnite"},
		{launcher: "GOG", gameID: "1207664643", expected: "/command=runGame /gameId=1207664643"},
		{launcher: "BattleNet", gameID: "WoW", expected: "battlenet://WoW"},
		{launcher: "origin", gameID: "x", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.launcher+"_"+tt.gameID, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ResolveLaunchOptions(tt.launcher, tt.gameID))
		})
	}
}
