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
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	testhelpers "github.com/ZaparooProject/zaparoo-import/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eaClientDir = `C:\Program Files\Electronic Arts\EA Desktop`

var eaFixture = map[string]any{
	"Titanfall2": map[string]any{
		"OFR.50.0001456.mfst": "?currentstate=kReadyToStart&id=Origin.OFR.50.0001456" +
			"&dipinstallpath=C%3a%5cGames%5cTitanfall2%5c&ddinstallalreadycompleted=1\n",
	},
	"Battlefield 1": map[string]any{
		"OFB.mfst":   "?id=Origin.OFR.50.0000557,OFB-EAST:109552316&dipinstallpath=",
		"readme.txt": "ignored",
	},
	"Broken": map[string]any{
		"x.mfst": "?id=%zz",
	},
	"NoID": map[string]any{
		"y.MFST": "?dipinstallpath=C%3a%5cGames%5cNoID",
	},
}

func eaSource(t *testing.T, fs afero.Fs, dir string) Source {
	t.Helper()
	profile, ok := launchers.Lookup(launchers.EA)
	require.True(t, ok)
	return Source{
		Fs:          fs,
		Profile:     profile,
		InstallPath: eaClientDir,
		Dirs:        []string{dir},
	}
}

func assertEAGames(t *testing.T, games []launchers.GameRecord) {
	t.Helper()
	client := eaClientDir + `\EADesktop.exe`
	require.Len(t, games, 3)
	assert.Equal(t, launchers.GameRecord{
		ID:         "Origin.OFR.50.0000557",
		Name:       "Battlefield 1",
		Executable: client,
		InstallDir: eaClientDir,
	}, games[0])
	assert.Equal(t, "", games[1].ID, "manifest without an id is passed on for the enumerator to drop")
	assert.Equal(t, "NoID", games[1].Name)
	assert.Equal(t, launchers.GameRecord{
		ID:         "Origin.OFR.50.0001456",
		Name:       "Titanfall2",
		Executable: client,
		InstallDir: eaClientDir,
	}, games[2])
}

func TestEAReaderMemFs(t *testing.T) {
	t.Parallel()

	root := "/pd/Origin/LocalContent"
	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.CreateDirectoryStructure(map[string]any{root: eaFixture}))

	games, err := EAReader{}.Read(context.Background(), eaSource(t, h.Fs, root))
	require.NoError(t, err)
	assertEAGames(t, games)
}

func TestEAReaderOsFs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	h := &testhelpers.FSHelper{Fs: afero.NewBasePathFs(afero.NewOsFs(), root)}
	require.NoError(t, h.CreateDirectoryStructure(eaFixture))

	games, err := EAReader{}.Read(context.Background(), eaSource(t, afero.NewOsFs(), root))
	require.NoError(t, err)
	assertEAGames(t, games)
}

func TestFindFilesOsFsMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := findFiles(context.Background(), afero.NewOsFs(), filepath.Join(t.TempDir(), "missing"), ".mfst")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnumerateEA(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.CreateDirectoryStructure(map[string]any{"/custom/LocalContent": eaFixture}))

	e := NewEnumerator(EnumeratorOptions{
		Fs:       h.Fs,
		Registry: testhelpers.NewFakeRegistry(),
		Env:      envFrom(map[string]string{}),
	})
	profile, _ := launchers.Lookup(launchers.EA)
	profile.Manifest.Paths = []string{"/custom/LocalContent"}

	games := e.Enumerate(context.Background(), profile, eaClientDir)
	require.Len(t, games, 2)
	assert.Equal(t, "Origin.OFR.50.0000557", games[0].ID)
	assert.Equal(t, "Origin.OFR.50.0001456", games[1].ID)
}
