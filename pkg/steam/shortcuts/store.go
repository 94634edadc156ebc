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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/ZaparooProject/zaparoo-import/internal/vdfbinary"
	"github.com/ZaparooProject/zaparoo-import/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	// ErrCorruptStore is returned when an existing shortcuts.vdf could not be
	// fully understood. The store refuses to write over such a file.
	ErrCorruptStore = errors.New("shortcuts store is corrupt")
	// ErrNotLoaded is returned by mutations attempted before a successful Load.
	ErrNotLoaded = errors.New("shortcuts store has not been loaded")
)

// BackupSuffix is appended to the store path for the pre-save backup copy.
const BackupSuffix = ".bak"

// Options configures a Store.
type Options struct {
	// Backup copies the previous file to <path>.bak before every save.
	Backup bool
}

// Store reads, mutates and rewrites one user's shortcuts.vdf.
type Store struct {
	fs      afero.Fs
	doc     *vdfbinary.Document
	list    *vdfbinary.Node
	loadErr error
	path    string
	mu      syncutil.Mutex
	opts    Options
	loaded  bool
}

// NewStore returns a store for the shortcuts.vdf at path. Nothing is read
// until Load is called.
func NewStore(fs afero.Fs, path string, opts Options) *Store {
	return &Store{
		fs:   fs,
		path: path,
		opts: opts,
	}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load parses the backing file and replaces any in-memory state. A missing
// or empty file is an empty store. A file that cannot be parsed returns an
// error wrapping ErrCorruptStore and leaves the store unable to save.
func (s *Store) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	s.doc = nil
	s.list = nil
	s.loadErr = nil

	data, err := afero.ReadFile(s.fs, s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debug().Str("path", s.path).Msg("shortcuts.vdf not found, starting empty")
		return s.fresh(), nil
	case err != nil:
		s.loadErr = fmt.Errorf("failed to read shortcuts file: %w", err)
		return nil, s.loadErr
	case len(data) == 0:
		log.Warn().Str("path", s.path).Msg("shortcuts.vdf is empty, starting empty")
		return s.fresh(), nil
	}

	doc, err := vdfbinary.ParseBytes(data)
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
		return nil, s.loadErr
	}

	list, err := vdfbinary.ShortcutList(doc)
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
		return nil, s.loadErr
	}

	slices.SortStableFunc(list.Children, func(a, b *vdfbinary.Node) int {
		ai, _ := strconv.Atoi(a.Key)
		bi, _ := strconv.Atoi(b.Key)
		return ai - bi
	})

	s.doc = doc
	s.list = list
	s.loaded = true

	log.Debug().
		Str("path", s.path).
		Int("count", len(list.Children)).
		Msg("loaded shortcuts")

	return s.entries(), nil
}

func (s *Store) fresh() []Entry {
	s.doc = vdfbinary.NewShortcutsDocument()
	s.list, _ = s.doc.Root.GetMap(vdfbinary.ShortcutsKey)
	s.loaded = true
	return []Entry{}
}

func (s *Store) ready() error {
	if s.loadErr != nil {
		return s.loadErr
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

// Entries returns the in-memory entries in store order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return []Entry{}
	}
	return s.entries()
}

func (s *Store) entries() []Entry {
	out := make([]Entry, 0, len(s.list.Children))
	for _, n := range s.list.Children {
		out = append(out, entryFromNode(n))
	}
	return out
}

// Get returns the entry with the given identifier.
func (s *Store) Get(appID uint32) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Entry{}, false
	}
	if i := s.find(appID); i >= 0 {
		return entryFromNode(s.list.Children[i]), true
	}
	return Entry{}, false
}

func (s *Store) find(appID uint32) int {
	for i, n := range s.list.Children {
		if id, ok := n.GetUint(keyAppID); ok && id == appID {
			return i
		}
	}
	return -1
}

// Upsert inserts e, or overwrites the entry with the same identifier in
// place. Keys of the existing entry that Entry does not model are kept and
// the position of every other entry is unchanged.
func (s *Store) Upsert(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	if e.AppName == "" {
		return errors.New("shortcut has no name")
	}
	if e.Exe == "" {
		return fmt.Errorf("shortcut %q has no executable", e.AppName)
	}
	if err := e.encodable(); err != nil {
		return err
	}

	if i := s.find(e.AppID); i >= 0 {
		applyEntry(s.list.Children[i], e)
		log.Debug().Uint32("appID", e.AppID).Str("name", e.AppName).Msg("updated shortcut")
		return nil
	}

	s.list.Children = append(s.list.Children, newNode(e))
	log.Debug().Uint32("appID", e.AppID).Str("name", e.AppName).Msg("added shortcut")
	return nil
}

// Remove deletes the entry with the given identifier. Removing an
// identifier that is not present is not an error.
func (s *Store) Remove(appID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	before := len(s.list.Children)
	s.list.Children = slices.DeleteFunc(s.list.Children, func(n *vdfbinary.Node) bool {
		id, ok := n.GetUint(keyAppID)
		return ok && id == appID
	})
	if len(s.list.Children) != before {
		log.Debug().Uint32("appID", appID).Msg("removed shortcut")
	}
	return nil
}

// Save writes the in-memory entries back to disk. The new contents go to a
// temporary file in the same directory which is then renamed over the
// original, so a failed write never leaves a truncated store behind.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	vdfbinary.Renumber(s.list)
	data, err := vdfbinary.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("failed to encode shortcuts: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create shortcuts directory: %w", err)
	}

	if s.opts.Backup {
		s.writeBackup()
	}

	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		s.discard(tmp, tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		s.discard(tmp, tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		if removeErr := s.fs.Remove(tmpPath); removeErr != nil {
			log.Warn().Err(removeErr).Msgf("error removing temp file: %s", tmpPath)
		}
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		if removeErr := s.fs.Remove(tmpPath); removeErr != nil {
			log.Warn().Err(removeErr).Msgf("error removing temp file: %s", tmpPath)
		}
		return fmt.Errorf("failed to replace shortcuts file: %w", err)
	}

	log.Info().
		Str("path", s.path).
		Int("count", len(s.list.Children)).
		Msg("saved shortcuts")
	return nil
}

func (s *Store) discard(f afero.File, path string) {
	if err := f.Close(); err != nil {
		log.Warn().Err(err).Msgf("error closing temp file: %s", path)
	}
	if err := s.fs.Remove(path); err != nil {
		log.Warn().Err(err).Msgf("error removing temp file: %s", path)
	}
}

// writeBackup copies the current file to the backup path. A failed backup
// is logged and does not stop the save.
func (s *Store) writeBackup() {
	prev, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to read shortcuts for backup")
		return
	}
	if err := afero.WriteFile(s.fs, s.path+BackupSuffix, prev, 0o600); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to write shortcuts backup")
	}
}
