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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLauncherOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `config_schema = 1

[launchers]
disabled = ["Battlenet"]

[[launchers.default]]
launcher = "epic"
install_dir = "D:\\Epic Games\\Launcher"
manifest_dir = "D:\\EpicData\\Manifests"
`)

	cfg, err := NewConfig(path, BaseDefaults)
	require.NoError(t, err)

	def, ok := cfg.LookupLauncherDefaults("EPIC")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, `D:\Epic Games\Launcher`, def.InstallDir)
	assert.Equal(t, `D:\EpicData\Manifests`, def.ManifestDir)

	_, ok = cfg.LookupLauncherDefaults("gog")
	assert.False(t, ok)

	assert.True(t, cfg.IsLauncherDisabled("battlenet"))
	assert.False(t, cfg.IsLauncherDisabled("epic"))
	assert.Equal(t, []string{"Battlenet"}, cfg.DisabledLaunchers())
	assert.Len(t, cfg.LauncherDefaults(), 1)
}
