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

// Package importer turns launcher game records into Steam shortcuts.
package importer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-import/pkg/steam/shortcuts"
	"github.com/ZaparooProject/zaparoo-import/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store is the shortcut store an import batch writes to.
type Store interface {
	Path() string
	Load() ([]shortcuts.Entry, error)
	Upsert(e shortcuts.Entry) error
	Save() error
}

// Failure names a game that was not imported and why.
type Failure struct {
	Name       string `json:"name" csv:"name"`
	LauncherID string `json:"launcherId" csv:"launcher"`
	Reason     string `json:"reason" csv:"reason"`
}

// Outcome summarizes one import batch. Failed is in input order and never
// nil. Entries holds the shortcuts written (or, in a dry run, the ones
// that would have been).
type Outcome struct {
	Failed  []Failure         `json:"failed"`
	Entries []shortcuts.Entry `json:"entries,omitempty"`
	Success int               `json:"success"`
	BatchID uuid.UUID         `json:"batchId"`
	DryRun  bool              `json:"dryRun,omitempty"`
}

type Options struct {
	Store       Store
	Validator   *validation.Validator
	Hooks       []PostImportHook
	TagLauncher bool
	DryRun      bool
}

// Importer writes game records to a shortcut store in batches.
type Importer struct {
	store       Store
	validator   *validation.Validator
	hooks       []PostImportHook
	tagLauncher bool
	dryRun      bool
}

//nolint:gocritic // options struct copied on purpose
func New(opts Options) *Importer {
	im := &Importer{
		store:       opts.Store,
		validator:   opts.Validator,
		hooks:       opts.Hooks,
		tagLauncher: opts.TagLauncher,
		dryRun:      opts.DryRun,
	}
	if im.validator == nil {
		im.validator = validation.DefaultValidator
	}
	return im
}

type imported struct {
	game  launchers.GameRecord
	entry shortcuts.Entry
}

// ImportGames adds or updates a shortcut for every game, in order, and
// saves the store once at the end. A bad record only fails that game. An
// error is returned only when the store cannot be loaded or saved; every
// game is then reported failed since nothing was written.
func (im *Importer) ImportGames(ctx context.Context, games []launchers.GameRecord) (Outcome, error) {
	out := Outcome{
		BatchID: uuid.New(),
		Failed:  make([]Failure, 0),
		DryRun:  im.dryRun,
	}
	logger := log.With().Str("batch", out.BatchID.String()).Logger()

	if len(games) == 0 {
		logger.Debug().Msg("nothing to import")
		return out, nil
	}

	current, err := im.store.Load()
	if err != nil {
		out.Failed = failAll(games, err)
		return out, fmt.Errorf("failed to load shortcuts: %w", err)
	}
	existing := make(map[uint32]shortcuts.Entry, len(current))
	for _, e := range current {
		existing[e.AppID] = e
	}

	failures := make([]*Failure, len(games))
	var done []imported
	for i, g := range games {
		entry, err := im.buildEntry(ctx, g, existing)
		if err == nil && !im.dryRun {
			err = im.store.Upsert(entry)
		}
		if err != nil {
			logger.Warn().Err(err).Str("game", g.Name).Str("launcher", g.LauncherID).Msg("skipping game")
			failures[i] = &Failure{Name: g.Name, LauncherID: g.LauncherID, Reason: err.Error()}
			continue
		}
		existing[entry.AppID] = entry
		done = append(done, imported{game: g, entry: entry})
	}

	if !im.dryRun && len(done) > 0 {
		if err := im.store.Save(); err != nil {
			logger.Error().Err(err).Str("path", im.store.Path()).Msg("failed to save shortcuts, batch lost")
			for i, g := range games {
				if failures[i] == nil {
					failures[i] = &Failure{Name: g.Name, LauncherID: g.LauncherID, Reason: err.Error()}
				}
			}
			out.Failed = collect(failures)
			return out, fmt.Errorf("failed to save shortcuts: %w", err)
		}
	}

	out.Failed = collect(failures)
	out.Success = len(done)
	out.Entries = make([]shortcuts.Entry, len(done))
	for i, d := range done {
		out.Entries[i] = d.entry
	}

	logger.Info().
		Int("success", out.Success).
		Int("failed", len(out.Failed)).
		Bool("dryRun", im.dryRun).
		Str("path", im.store.Path()).
		Msg("import batch complete")

	if !im.dryRun {
		im.runHooks(ctx, logger, done)
	}
	return out, nil
}

func collect(failures []*Failure) []Failure {
	out := make([]Failure, 0, len(failures))
	for _, f := range failures {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func failAll(games []launchers.GameRecord, err error) []Failure {
	failed := make([]Failure, len(games))
	for i, g := range games {
		failed[i] = Failure{Name: g.Name, LauncherID: g.LauncherID, Reason: err.Error()}
	}
	return failed
}

// buildEntry validates a record and turns it into a shortcut. An existing
// shortcut with the same app id is the starting point so settings the user
// changed in Steam survive a re-import.
func (im *Importer) buildEntry(
	ctx context.Context,
	g launchers.GameRecord, //nolint:gocritic // record passed by value like the rest of the batch
	existing map[uint32]shortcuts.Entry,
) (shortcuts.Entry, error) {
	if err := im.validator.ValidateCtx(ctx, &g); err != nil {
		return shortcuts.Entry{}, err //nolint:wrapcheck // validation errors are user-facing messages
	}

	appID := shortcuts.GenerateAppID(g.Executable, g.Name)
	e, ok := existing[appID]
	if !ok {
		e = shortcuts.NewEntry(appID, g.Name)
	}

	e.AppName = g.Name
	e.Exe = shortcuts.Quote(g.Executable)
	startDir := g.InstallDir
	if startDir == "" {
		startDir = exeDir(g.Executable)
	}
	e.StartDir = shortcuts.Quote(startDir)
	e.Icon = g.Icon
	if e.Icon == "" {
		e.Icon = g.Executable
	}
	e.LaunchOptions = launchers.ResolveLaunchOptions(g.LauncherID, g.ID)

	p, known := launchers.Lookup(g.LauncherID)
	if !known {
		log.Debug().Str("game", g.Name).Str("launcher", g.LauncherID).Msg("unknown launcher, no launch options")
	}
	if im.tagLauncher && known && !slices.Contains(e.Tags, p.Name) {
		e.Tags = append(slices.Clone(e.Tags), p.Name)
	}

	return e, nil
}

// exeDir is the directory holding exe, for either separator. Roots keep
// their trailing separator.
func exeDir(exe string) string {
	i := strings.LastIndexAny(exe, `/\`)
	switch {
	case i < 0:
		return ""
	case i == 0, i == 2 && exe[1] == ':':
		return exe[:i+1]
	default:
		return exe[:i]
	}
}

func (im *Importer) runHooks(ctx context.Context, logger zerolog.Logger, done []imported) {
	for _, hook := range im.hooks {
		for _, d := range done {
			if err := hook.AfterImport(ctx, d.game, d.entry); err != nil {
				logger.Warn().Err(err).Str("game", d.game.Name).Msg("post-import hook failed")
			}
		}
	}
}
