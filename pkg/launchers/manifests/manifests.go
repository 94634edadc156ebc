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

// Package manifests reads the records each launcher keeps about the games
// it has installed and turns them into launchers.GameRecord values.
package manifests

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/config"
	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Source is everything a Reader may look at for one launcher.
type Source struct {
	Fs          afero.Fs
	Registry    registry.Reader
	InstallPath string
	Profile     launchers.Profile
	// Dirs are the expanded manifest directories in priority order. They
	// are not checked for existence.
	Dirs []string
}

// Reader extracts raw game records from one kind of manifest. Records with
// missing fields may be returned; the Enumerator drops them.
type Reader interface {
	Read(ctx context.Context, src Source) ([]launchers.GameRecord, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(ctx context.Context, src Source) ([]launchers.GameRecord, error)

func (f ReaderFunc) Read(ctx context.Context, src Source) ([]launchers.GameRecord, error) {
	return f(ctx, src)
}

// DefaultReaders maps every manifest kind in the catalog to its reader.
func DefaultReaders() map[string]Reader {
	return map[string]Reader{
		launchers.ManifestEpicItems:  EpicReader{},
		launchers.ManifestUbisoftReg: UbisoftReader{},
		launchers.ManifestEAContent:  EAReader{},
		launchers.ManifestGalaxyDB:   &GalaxyReader{},
		launchers.ManifestUninstall:  BattleNetReader{},
	}
}

type EnumeratorOptions struct {
	Fs        afero.Fs
	Registry  registry.Reader
	Env       helpers.EnvLookup
	Readers   map[string]Reader
	Overrides []config.LaunchersDefault
}

// Enumerator lists the games installed through a launcher.
type Enumerator struct {
	fs        afero.Fs
	reg       registry.Reader
	env       helpers.EnvLookup
	readers   map[string]Reader
	overrides []config.LaunchersDefault
}

func NewEnumerator(opts EnumeratorOptions) *Enumerator {
	e := &Enumerator{
		fs:        opts.Fs,
		reg:       opts.Registry,
		env:       opts.Env,
		readers:   opts.Readers,
		overrides: opts.Overrides,
	}
	if e.fs == nil {
		e.fs = afero.NewOsFs()
	}
	if e.reg == nil {
		e.reg = registry.NewSystem()
	}
	if e.env == nil {
		e.env = os.LookupEnv
	}
	if e.readers == nil {
		e.readers = DefaultReaders()
	}
	return e
}

// Enumerate returns the games a detected launcher manages, sorted by id.
// Incomplete records are skipped and an unreadable manifest location gives
// an empty result; neither is an error.
//
//nolint:gocritic // profile is a small value type
func (e *Enumerator) Enumerate(
	ctx context.Context,
	profile launchers.Profile,
	installPath string,
) []launchers.GameRecord {
	games := make([]launchers.GameRecord, 0)

	reader, ok := e.readers[profile.Manifest.Kind]
	if !ok {
		log.Debug().Str("launcher", profile.ID).Msgf("no manifest reader for kind: %s", profile.Manifest.Kind)
		return games
	}

	src := Source{
		Fs:          e.fs,
		Registry:    e.reg,
		Profile:     profile,
		InstallPath: installPath,
		Dirs:        e.ManifestDirs(profile),
	}

	raw, err := reader.Read(ctx, src)
	if err != nil {
		if isAbsence(err) {
			log.Debug().Err(err).Str("launcher", profile.ID).Msg("manifest location not found")
		} else {
			log.Warn().Err(err).Str("launcher", profile.ID).Msg("failed to read manifests, continuing without games")
		}
		return games
	}

	skipped := 0
	for _, g := range raw {
		g.Name = CleanName(g.Name)
		g.LauncherID = profile.ID
		if g.ID == "" || g.Name == "" || g.Executable == "" || g.InstallDir == "" {
			skipped++
			continue
		}
		games = append(games, g)
	}

	slices.SortStableFunc(games, func(a, b launchers.GameRecord) int {
		return strings.Compare(a.ID, b.ID)
	})
	before := len(games)
	games = slices.CompactFunc(games, func(a, b launchers.GameRecord) bool {
		return a.ID == b.ID
	})

	log.Debug().
		Str("launcher", profile.ID).
		Int("games", len(games)).
		Int("skipped", skipped).
		Int("duplicates", before-len(games)).
		Msg("enumerated games")

	return games
}

// ManifestDirs returns the expanded manifest directories of a launcher in
// priority order. A configured manifest_dir replaces them. Launchers that
// record games in the registry have none.
//
//nolint:gocritic // profile is a small value type
func (e *Enumerator) ManifestDirs(profile launchers.Profile) []string {
	for _, o := range e.overrides {
		if strings.EqualFold(o.Launcher, profile.ID) && o.ManifestDir != "" {
			return []string{o.ManifestDir}
		}
	}

	dirs := make([]string, 0, len(profile.Manifest.Paths))
	for _, p := range profile.Manifest.Paths {
		expanded, ok := helpers.ExpandPath(p, e.env)
		if !ok {
			continue
		}
		if !slices.Contains(dirs, expanded) {
			dirs = append(dirs, expanded)
		}
	}
	return dirs
}

func isAbsence(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, registry.ErrNotExist) ||
		errors.Is(err, registry.ErrUnavailable)
}

// firstDir returns the first manifest directory that exists.
func firstDir(src Source) (string, bool) {
	for _, d := range src.Dirs {
		if helpers.DirExists(src.Fs, d) {
			return d, true
		}
	}
	return "", false
}

// clientExe is the launcher's own executable, used as the Steam target for
// games the launcher has to start itself.
func clientExe(src Source) string {
	if src.InstallPath == "" || src.Profile.ClientExe == "" {
		return ""
	}
	return joinPath(src.InstallPath, src.Profile.ClientExe)
}

// joinPath joins elems onto base using the separator base already uses,
// so Windows paths stay Windows paths on any host.
func joinPath(base string, elems ...string) string {
	sep := "/"
	if strings.Contains(base, `\`) || hasDriveLetter(base) {
		sep = `\`
	}

	out := strings.TrimRight(base, `/\`)
	for _, e := range elems {
		e = strings.Trim(e, `/\`)
		if e == "" {
			continue
		}
		e = strings.NewReplacer("/", sep, `\`, sep).Replace(e)
		out += sep + e
	}
	return out
}

func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// iconPath strips the quotes and ",index" suffix from a registry
// DisplayIcon value.
func iconPath(displayIcon string) string {
	p := strings.TrimSpace(displayIcon)
	if i := strings.LastIndex(p, ","); i > 0 && !strings.ContainsAny(p[i:], `/\`) {
		p = p[:i]
	}
	return strings.Trim(p, `"`)
}
