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
	"testing"

	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	testhelpers "github.com/ZaparooProject/zaparoo-import/pkg/testing/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/testing/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const battleNetDir = `C:\Program Files (x86)\Battle.net`

func blizzardEntry(reg *testhelpers.FakeRegistry, key, name, uid, icon string) {
	path := wowUninstall + `\` + key
	reg.SetString(registry.LocalMachine, path, "DisplayName", name).
		SetString(registry.LocalMachine, path, "Publisher", "Blizzard Entertainment").
		SetString(registry.LocalMachine, path, "UninstallString",
			`"C:\ProgramData\Battle.net\Agent\Blizzard Uninstaller.exe" --lang=enUS --uid=`+uid+` --displayname="`+name+`"`).
		SetInt(registry.LocalMachine, path, "NoModify", 1)
	if icon != "" {
		reg.SetString(registry.LocalMachine, path, "DisplayIcon", icon)
	}
}

func battleNetSource(t *testing.T, reg registry.Reader) Source {
	t.Helper()
	profile, ok := launchers.Lookup(launchers.BattleNet)
	require.True(t, ok)
	return Source{
		Fs:          afero.NewMemMapFs(),
		Registry:    reg,
		Profile:     profile,
		InstallPath: battleNetDir,
	}
}

func TestBattleNetReader(t *testing.T) {
	t.Parallel()

	reg := testhelpers.NewFakeRegistry()
	blizzardEntry(reg, "Battle.net", "Battle.net", "battle.net", "")
	blizzardEntry(reg, "Diablo III", "Diablo III", "diablo3", "")
	blizzardEntry(reg, "Overwatch", "Overwatch", "prometheus", `C:\Games\Overwatch\Overwatch Launcher.exe`)
	blizzardEntry(reg, "Unknown Blizz", "Some New Game", "newgame", "")
	reg.SetString(registry.LocalMachine, wowUninstall+`\Steam`, "DisplayName", "Steam").
		SetString(registry.LocalMachine, wowUninstall+`\Steam`, "Publisher", "Valve Corporation").
		SetString(registry.LocalMachine, wowUninstall+`\Steam`, "UninstallString", `C:\Steam\uninstall.exe --uid=steam`)

	games, err := BattleNetReader{}.Read(context.Background(), battleNetSource(t, reg))
	require.NoError(t, err)

	client := battleNetDir + `\Battle.net.exe`
	assert.Equal(t, []launchers.GameRecord{
		{ID: "D3", Name: "Diablo III", Executable: client, InstallDir: battleNetDir},
		{
			ID:         "Pro",
			Name:       "Overwatch",
			Executable: client,
			InstallDir: battleNetDir,
			Icon:       `C:\Games\Overwatch\Overwatch Launcher.exe`,
		},
		{ID: "newgame", Name: "Some New Game", Executable: client, InstallDir: battleNetDir},
	}, games)
}

func TestBattleNetReaderNoUninstallKeys(t *testing.T) {
	t.Parallel()

	reg := &mocks.MockRegistryReader{}
	reg.On("SubKeys", registry.LocalMachine, mock.Anything).Return(nil, registry.ErrUnavailable)

	_, err := BattleNetReader{}.Read(context.Background(), battleNetSource(t, reg))
	require.ErrorIs(t, err, registry.ErrUnavailable)
	reg.AssertNumberOfCalls(t, "SubKeys", len(registry.UninstallKeys))
}

func TestBattleNetProductCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Pro", BattleNetProductCode("prometheus"))
	assert.Equal(t, "WoW", BattleNetProductCode("WOW"))
	assert.Equal(t, "custom", BattleNetProductCode("custom"))
	assert.Equal(t, "battlenet://Pro", launchers.ResolveLaunchOptions(launchers.BattleNet, BattleNetProductCode("prometheus")))
}
