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
	"errors"
	"testing"

	"github.com/ZaparooProject/zaparoo-import/pkg/config"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	testhelpers "github.com/ZaparooProject/zaparoo-import/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func fakeProfile(paths ...string) launchers.Profile {
	return launchers.Profile{
		ID:        "fake",
		Name:      "Fake",
		ClientExe: "client.exe",
		Manifest:  launchers.ManifestConvention{Kind: "fake", Paths: paths},
	}
}

func newFakeEnumerator(reader Reader, overrides ...config.LaunchersDefault) *Enumerator {
	return NewEnumerator(EnumeratorOptions{
		Fs:        afero.NewMemMapFs(),
		Registry:  testhelpers.NewFakeRegistry(),
		Env:       envFrom(map[string]string{"PD": "/pd"}),
		Readers:   map[string]Reader{"fake": reader},
		Overrides: overrides,
	})
}

func TestEnumerateSortsCleansAndSkips(t *testing.T) {
	t.Parallel()

	reader := ReaderFunc(func(context.Context, Source) ([]launchers.GameRecord, error) {
		return []launchers.GameRecord{
			{ID: "zeta", Name: "Zeta™  Game", Executable: "/c/client.exe", InstallDir: "/c"},
			{ID: "alpha", Name: "Alpha", Executable: "/c/client.exe", InstallDir: "/c"},
			{ID: "", Name: "No ID", Executable: "/c/client.exe", InstallDir: "/c"},
			{ID: "noexe", Name: "No Exe", InstallDir: "/c"},
			{ID: "noname", Name: " ™ ", Executable: "/c/client.exe", InstallDir: "/c"},
			{ID: "alpha", Name: "Alpha Again", Executable: "/c/client.exe", InstallDir: "/c"},
			{ID: "mid", Name: "Mid", Executable: "/c/client.exe", InstallDir: "/c", LauncherID: "other"},
		}, nil
	})

	games := newFakeEnumerator(reader).Enumerate(context.Background(), fakeProfile(), "/c")

	require.Len(t, games, 3)
	assert.Equal(t, "alpha", games[0].ID)
	assert.Equal(t, "Alpha", games[0].Name, "first of a duplicate id wins")
	assert.Equal(t, "mid", games[1].ID)
	assert.Equal(t, "zeta", games[2].ID)
	assert.Equal(t, "Zeta Game", games[2].Name)
	for _, g := range games {
		assert.Equal(t, "fake", g.LauncherID)
	}
}

func TestEnumerateIsStable(t *testing.T) {
	t.Parallel()

	reader := ReaderFunc(func(context.Context, Source) ([]launchers.GameRecord, error) {
		return []launchers.GameRecord{
			{ID: "b", Name: "B", Executable: "/x", InstallDir: "/"},
			{ID: "a", Name: "A", Executable: "/x", InstallDir: "/"},
		}, nil
	})
	e := newFakeEnumerator(reader)

	first := e.Enumerate(context.Background(), fakeProfile(), "/")
	second := e.Enumerate(context.Background(), fakeProfile(), "/")
	assert.Equal(t, first, second)
}

func TestEnumerateManifestDirs(t *testing.T) {
	t.Parallel()

	var got []string
	reader := ReaderFunc(func(_ context.Context, src Source) ([]launchers.GameRecord, error) {
		got = src.Dirs
		assert.Equal(t, "/install", src.InstallPath)
		return nil, nil
	})

	profile := fakeProfile("$PD/manifests", "$MISSING/manifests", "${PD}/manifests", "/other")
	newFakeEnumerator(reader).Enumerate(context.Background(), profile, "/install")
	assert.Equal(t, []string{"/pd/manifests", "/other"}, got)

	override := config.LaunchersDefault{Launcher: "FAKE", ManifestDir: "/custom"}
	newFakeEnumerator(reader, override).Enumerate(context.Background(), profile, "/install")
	assert.Equal(t, []string{"/custom"}, got)
}

func TestEnumerateDegradesErrors(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		errors.New("access denied"),
		registry.ErrNotExist,
		registry.ErrUnavailable,
	} {
		reader := ReaderFunc(func(context.Context, Source) ([]launchers.GameRecord, error) {
			return []launchers.GameRecord{{ID: "a", Name: "A", Executable: "/x", InstallDir: "/"}}, err
		})
		games := newFakeEnumerator(reader).Enumerate(context.Background(), fakeProfile(), "/")
		assert.NotNil(t, games)
		assert.Empty(t, games)
	}
}

func TestEnumerateUnknownKind(t *testing.T) {
	t.Parallel()

	e := NewEnumerator(EnumeratorOptions{
		Fs:       afero.NewMemMapFs(),
		Registry: testhelpers.NewFakeRegistry(),
		Readers:  map[string]Reader{},
	})
	games := e.Enumerate(context.Background(), fakeProfile(), "/")
	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestDefaultReadersCoverCatalog(t *testing.T) {
	t.Parallel()

	readers := DefaultReaders()
	for _, p := range launchers.Catalog() {
		assert.Contains(t, readers, p.Manifest.Kind, p.ID)
	}
}

func TestJoinPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base     string
		expected string
		elems    []string
	}{
		{base: `C:\Games\`, elems: []string{"bin/x64/game.exe"}, expected: `C:\Games\bin\x64\game.exe`},
		{base: `C:`, elems: []string{"game.exe"}, expected: `C:\game.exe`},
		{base: "/opt/games", elems: []string{"a", "b.exe"}, expected: "/opt/games/a/b.exe"},
		{base: "/opt/games/", elems: []string{`sub\b.exe`}, expected: "/opt/games/sub/b.exe"},
		{base: "/opt", elems: []string{"", "x"}, expected: "/opt/x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, joinPath(tt.base, tt.elems...))
	}
}

func TestIconPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `C:\Games\Game\game.exe`, iconPath(`"C:\Games\Game\game.exe",0`))
	assert.Equal(t, `C:\Games\Game\game.exe`, iconPath(`C:\Games\Game\game.exe`))
	assert.Equal(t, `C:\Games, Inc\game.exe`, iconPath(`C:\Games, Inc\game.exe`))
	assert.Empty(t, iconPath(""))
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected string
	}{
		{in: "Assassin's Creed® Origins", expected: "Assassin's Creed Origins"},
		{in: "  Half-Life   2 ", expected: "Half-Life 2"},
		{in: "Tab\tName", expected: "Tab Name"},
		{in: "ＦＵＬＬ　ＷＩＤＴＨ", expected: "FULL WIDTH"},
		{in: "Cafe\u0301", expected: "Café"},
		{in: "Game™: Edition", expected: "Game: Edition"},
		{in: "Bell\x07", expected: "Bell"},
		{in: "", expected: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CleanName(tt.in), tt.in)
	}
}
