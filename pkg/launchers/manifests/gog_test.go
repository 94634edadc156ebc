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
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	testhelpers "github.com/ZaparooProject/zaparoo-import/pkg/testing/helpers"
	testsqlmock "github.com/ZaparooProject/zaparoo-import/pkg/testing/sqlmock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	galaxyStorage   = "/pd/GOG.com/Galaxy/storage"
	galaxyClientDir = `C:\Program Files (x86)\GOG Galaxy`
)

var galaxyColumns = []string{"productId", "title", "installationPath", "executablePath"}

func galaxySource(t *testing.T, withDB bool) Source {
	t.Helper()
	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.MkdirAll(galaxyStorage))
	if withDB {
		require.NoError(t, h.WriteFile(galaxyStorage+"/galaxy-2.0.db", []byte{}))
	}
	profile, ok := launchers.Lookup(launchers.GOG)
	require.True(t, ok)
	return Source{
		Fs:          h.Fs,
		Profile:     profile,
		InstallPath: galaxyClientDir,
		Dirs:        []string{galaxyStorage},
	}
}

func mockOpener(t *testing.T) (*testsqlmock.Opener, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := testsqlmock.NewSQLMock()
	require.NoError(t, err)
	return testsqlmock.NewOpener(db), mock
}

func TestGalaxyReader(t *testing.T) {
	t.Parallel()

	opener, mock := mockOpener(t)
	mock.ExpectQuery("FROM InstalledBaseProducts").WillReturnRows(
		sqlmock.NewRows(galaxyColumns).
			AddRow(int64(1207664643), "The Witcher 3: Wild Hunt", `C:\GOG Games\The Witcher 3\`,
				`C:\GOG Games\The Witcher 3\bin\x64\witcher3.exe`).
			AddRow(int64(1495134320), "", `C:\GOG Games\Cyberpunk 2077`, ""),
	)
	mock.ExpectClose()

	reader := &GalaxyReader{Open: opener.Open}
	games, err := reader.Read(context.Background(), galaxySource(t, true))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, galaxyStorage+"/galaxy-2.0.db", opener.Opened())
	client := galaxyClientDir + `\GalaxyClient.exe`
	assert.Equal(t, []launchers.GameRecord{
		{
			ID:         "1207664643",
			Name:       "The Witcher 3: Wild Hunt",
			Executable: client,
			InstallDir: galaxyClientDir,
			Icon:       `C:\GOG Games\The Witcher 3\bin\x64\witcher3.exe`,
		},
		{
			ID:         "1495134320",
			Name:       "Cyberpunk 2077",
			Executable: client,
			InstallDir: galaxyClientDir,
		},
	}, games)
}

func TestGalaxyReaderQueryError(t *testing.T) {
	t.Parallel()

	opener, mock := mockOpener(t)
	mock.ExpectQuery("FROM InstalledBaseProducts").WillReturnError(errors.New("no such table: PlayTasks"))
	mock.ExpectClose()

	_, err := (&GalaxyReader{Open: opener.Open}).Read(context.Background(), galaxySource(t, true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGalaxyReaderNoDatabase(t *testing.T) {
	t.Parallel()

	reader := &GalaxyReader{Open: func(string) (*sql.DB, error) {
		t.Fatal("database must not be opened")
		return nil, nil
	}}
	games, err := reader.Read(context.Background(), galaxySource(t, false))
	require.NoError(t, err)
	assert.Empty(t, games)

	games, err = reader.Read(context.Background(), Source{Fs: afero.NewMemMapFs(), Dirs: []string{"/nope"}})
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestEnumerateGalaxyQueryErrorGivesNoGames(t *testing.T) {
	t.Parallel()

	opener, mock := mockOpener(t)
	mock.ExpectQuery("FROM InstalledBaseProducts").WillReturnError(errors.New("database is locked"))
	mock.ExpectClose()

	src := galaxySource(t, true)
	e := NewEnumerator(EnumeratorOptions{
		Fs:       src.Fs,
		Registry: testhelpers.NewFakeRegistry(),
		Readers:  map[string]Reader{launchers.ManifestGalaxyDB: &GalaxyReader{Open: opener.Open}},
	})
	profile := src.Profile
	profile.Manifest.Paths = []string{galaxyStorage}

	games := e.Enumerate(context.Background(), profile, galaxyClientDir)
	assert.Empty(t, games)
	require.NoError(t, mock.ExpectationsWereMet())
}
