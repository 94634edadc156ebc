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

package shortcuts

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ZaparooProject/zaparoo-import/internal/vdfbinary"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStorePath = filepath.Join("/steam", "userdata", "1234", "config", "shortcuts.vdf")

func steamFile(t *testing.T, entries ...*vdfbinary.Node) []byte {
	t.Helper()
	doc := vdfbinary.NewShortcutsDocument()
	list, ok := doc.Root.GetMap(vdfbinary.ShortcutsKey)
	require.True(t, ok)
	for i, e := range entries {
		e.Key = strconv.Itoa(i)
		list.Children = append(list.Children, e)
	}
	data, err := vdfbinary.Marshal(doc)
	require.NoError(t, err)
	return data
}

func steamEntry(appID uint32, name, exe string, extra ...*vdfbinary.Node) *vdfbinary.Node {
	n := vdfbinary.NewMap("")
	n.Children = append(n.Children,
		vdfbinary.NewUint32("appid", appID),
		vdfbinary.NewString("AppName", name),
		vdfbinary.NewString("Exe", exe),
	)
	n.Children = append(n.Children, extra...)
	return n
}

func testEntry(name string) Entry {
	dir := "/games/" + name
	exe := dir + "/" + name + ".exe"
	e := NewEntry(GenerateAppID(exe, name), name)
	e.Exe = Quote(exe)
	e.StartDir = Quote(dir)
	e.Icon = exe
	return e
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.AppName)
	}
	return out
}

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	s := NewStore(afero.NewMemMapFs(), testStorePath, Options{})
	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, s.Entries())
}

func TestStore_LoadEmptyFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testStorePath, []byte{}, 0o600))

	s := NewStore(fs, testStorePath, Options{})
	entries, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_MutateBeforeLoad(t *testing.T) {
	t.Parallel()

	s := NewStore(afero.NewMemMapFs(), testStorePath, Options{})
	require.ErrorIs(t, s.Upsert(testEntry("Hades")), ErrNotLoaded)
	require.ErrorIs(t, s.Remove(1), ErrNotLoaded)
	require.ErrorIs(t, s.Save(), ErrNotLoaded)
}

func TestStore_SaveCreatesFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	s := NewStore(fs, testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)

	require.NoError(t, s.Upsert(testEntry("Hades")))
	require.NoError(t, s.Upsert(testEntry("Celeste")))
	require.NoError(t, s.Save())

	reloaded := NewStore(fs, testStorePath, Options{})
	entries, err := reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Hades", "Celeste"}, names(entries))

	hades := entries[0]
	assert.Equal(t, GenerateAppID("/games/Hades/Hades.exe", "Hades"), hades.AppID)
	assert.Equal(t, `"/games/Hades/Hades.exe"`, hades.Exe)
	assert.Equal(t, `"/games/Hades"`, hades.StartDir)
	assert.True(t, hades.AllowOverlay)
	assert.True(t, hades.AllowDesktopConfig)
	assert.False(t, hades.IsHidden)
}

func TestStore_NewEntryHasSteamKeyOrder(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	s := NewStore(fs, testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Upsert(testEntry("Hades")))
	require.NoError(t, s.Save())

	data, err := afero.ReadFile(fs, testStorePath)
	require.NoError(t, err)
	doc, err := vdfbinary.ParseBytes(data)
	require.NoError(t, err)
	list, err := vdfbinary.ShortcutList(doc)
	require.NoError(t, err)
	require.Len(t, list.Children, 1)

	keys := make([]string, 0, len(list.Children[0].Children))
	for _, c := range list.Children[0].Children {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{
		"appid", "AppName", "Exe", "StartDir", "icon", "ShortcutPath",
		"LaunchOptions", "IsHidden", "AllowDesktopConfig", "AllowOverlay",
		"OpenVR", "Devkit", "DevkitGameID", "DevkitOverrideAppID",
		"LastPlayTime", "FlatpakAppID", "tags",
	}, keys)
}

func TestStore_UpsertIsIdempotent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	s := NewStore(fs, testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)

	e := testEntry("Hades")
	e.Tags = []string{"Epic Games"}
	require.NoError(t, s.Upsert(e))
	require.NoError(t, s.Save())
	first, err := afero.ReadFile(fs, testStorePath)
	require.NoError(t, err)

	_, err = s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Upsert(e))
	require.NoError(t, s.Upsert(e))
	require.NoError(t, s.Save())
	second, err := afero.ReadFile(fs, testStorePath)
	require.NoError(t, err)

	assert.Len(t, s.Entries(), 1)
	assert.Equal(t, first, second)
}

func TestStore_UpsertUpdatesInPlace(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	custom := vdfbinary.NewString("SortAs", "zzz")
	require.NoError(t, afero.WriteFile(fs, testStorePath, steamFile(t,
		steamEntry(1, "One", `"/one.exe"`),
		steamEntry(2, "Two", `"/two.exe"`, custom),
		steamEntry(3, "Three", `"/three.exe"`),
	), 0o600))

	s := NewStore(fs, testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)

	updated := NewEntry(2, "Two Remastered")
	updated.Exe = `"/two.exe"`
	require.NoError(t, s.Upsert(updated))
	require.NoError(t, s.Save())

	entries, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two Remastered", "Three"}, names(entries))
	assert.True(t, entries[1].AllowOverlay)

	data, err := afero.ReadFile(fs, testStorePath)
	require.NoError(t, err)
	doc, err := vdfbinary.ParseBytes(data)
	require.NoError(t, err)
	list, err := vdfbinary.ShortcutList(doc)
	require.NoError(t, err)
	sortAs, ok := list.Children[1].GetString("SortAs")
	require.True(t, ok, "unknown keys survive an update")
	assert.Equal(t, "zzz", sortAs)
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testStorePath, steamFile(t,
		steamEntry(1, "One", `"/one.exe"`),
		steamEntry(2, "Two", `"/two.exe"`),
		steamEntry(3, "Three", `"/three.exe"`),
	), 0o600))

	s := NewStore(fs, testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)

	require.NoError(t, s.Remove(2))
	require.NoError(t, s.Remove(99), "removing an absent id is a no-op")
	require.NoError(t, s.Save())

	entries, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Three"}, names(entries))

	_, ok := s.Get(2)
	assert.False(t, ok)
	three, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Three", three.AppName)
}

func TestStore_RoundTripUnchangedBytes(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	lastPlayed := &vdfbinary.Node{
		Type:  vdfbinary.TypeUint64,
		Key:   "LastPlayTime64",
		Value: []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}
	tags := vdfbinary.NewMap("tags")
	tags.Children = append(tags.Children, vdfbinary.NewString("0", "favorite"))
	original := steamFile(t,
		steamEntry(10, "Ten", `"C:\ten.exe"`,
			vdfbinary.NewUint32("IsHidden", 1),
			vdfbinary.NewUint32("AllowOverlay", 5),
			lastPlayed,
			tags,
		),
		steamEntry(20, "Twenty", `"C:\twenty.exe"`, vdfbinary.NewString("Custom", "x")),
	)
	require.NoError(t, afero.WriteFile(fs, testStorePath, original, 0o600))

	s := NewStore(fs, testStorePath, Options{})
	entries, err := s.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsHidden)
	assert.Equal(t, []string{"favorite"}, entries[0].Tags)

	// rewriting an entry with its own values must not touch any bytes
	require.NoError(t, s.Upsert(entries[0]))
	require.NoError(t, s.Save())

	saved, err := afero.ReadFile(fs, testStorePath)
	require.NoError(t, err)
	assert.Equal(t, original, saved)
}

func TestStore_CorruptFile(t *testing.T) {
	t.Parallel()

	corrupt := []byte{0x00, 's', 'h', 'o', 'r', 't', 'c', 'u', 't', 's', 0x00, 0x00, '0'}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "truncated", data: corrupt},
		{name: "text vdf", data: []byte(`"shortcuts" {}`)},
		{
			name: "missing exe",
			data: func() []byte {
				doc := vdfbinary.NewShortcutsDocument()
				list, _ := doc.Root.GetMap(vdfbinary.ShortcutsKey)
				n := vdfbinary.NewMap("0")
				n.Children = append(n.Children,
					vdfbinary.NewUint32("appid", 1),
					vdfbinary.NewString("AppName", "x"),
				)
				list.Children = append(list.Children, n)
				data, _ := vdfbinary.Marshal(doc)
				return data
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, testStorePath, tt.data, 0o600))

			s := NewStore(fs, testStorePath, Options{Backup: true})
			_, err := s.Load()
			require.ErrorIs(t, err, ErrCorruptStore)

			require.ErrorIs(t, s.Upsert(testEntry("Hades")), ErrCorruptStore)
			require.ErrorIs(t, s.Save(), ErrCorruptStore)
			assert.Empty(t, s.Entries())

			onDisk, err := afero.ReadFile(fs, testStorePath)
			require.NoError(t, err)
			assert.Equal(t, tt.data, onDisk, "corrupt file must not be overwritten")

			exists, err := afero.Exists(fs, testStorePath+BackupSuffix)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestStore_Backup(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	original := steamFile(t, steamEntry(1, "One", `"/one.exe"`))
	require.NoError(t, afero.WriteFile(fs, testStorePath, original, 0o600))

	s := NewStore(fs, testStorePath, Options{Backup: true})
	_, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Upsert(testEntry("Hades")))
	require.NoError(t, s.Save())

	backup, err := afero.ReadFile(fs, testStorePath+BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, original, backup)
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	s := NewStore(fs, testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Upsert(testEntry("Hades")))
	require.NoError(t, s.Save())

	infos, err := afero.ReadDir(fs, filepath.Dir(testStorePath))
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "shortcuts.vdf", infos[0].Name())
}

func TestStore_SaveFailureKeepsOriginal(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	original := steamFile(t, steamEntry(1, "One", `"/one.exe"`))
	require.NoError(t, afero.WriteFile(base, testStorePath, original, 0o600))

	s := NewStore(afero.NewReadOnlyFs(base), testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Upsert(testEntry("Hades")))
	require.Error(t, s.Save())

	onDisk, err := afero.ReadFile(base, testStorePath)
	require.NoError(t, err)
	assert.Equal(t, original, onDisk)
}

func TestStore_UpsertRejectsIncompleteEntry(t *testing.T) {
	t.Parallel()

	s := NewStore(afero.NewMemMapFs(), testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)

	require.Error(t, s.Upsert(Entry{AppID: 1, Exe: `"/x.exe"`}))
	require.Error(t, s.Upsert(Entry{AppID: 1, AppName: "x"}))
	assert.Empty(t, s.Entries())
}

func TestStore_UpsertRejectsNullBytes(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	s := NewStore(fs, testStorePath, Options{})
	_, err := s.Load()
	require.NoError(t, err)

	bad := testEntry("Bad\x00Name")
	require.ErrorContains(t, s.Upsert(bad), "AppName contains a null byte")

	tagged := testEntry("Tagged")
	tagged.Tags = []string{"ok", "b\x00d"}
	require.ErrorContains(t, s.Upsert(tagged), "tags contains a null byte")

	require.NoError(t, s.Upsert(testEntry("Hades")))
	require.NoError(t, s.Save())
	assert.Equal(t, []string{"Hades"}, names(s.Entries()))
}
