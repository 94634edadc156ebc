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

// Package service ties detection, enumeration and import together for the
// command line and any other caller.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/config"
	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-import/pkg/importer"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers/manifests"
	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	"github.com/ZaparooProject/zaparoo-import/pkg/steam"
	"github.com/ZaparooProject/zaparoo-import/pkg/steam/shortcuts"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownLauncher = errors.New("unknown launcher")

// Options configures a Service. Only Config is required; the rest default
// to the real system.
type Options struct {
	Config     *config.Instance
	Fs         afero.Fs
	Registry   registry.Reader
	Env        helpers.EnvLookup
	Clock      clockwork.Clock
	Readers    map[string]manifests.Reader
	Processes  steam.ProcessLister
	Candidates []string
	DryRun     bool
}

// Target is the Steam user shortcuts are imported for.
type Target struct {
	Store    *shortcuts.Store
	SteamDir string
	GridDir  string
	User     steam.User
}

type Service struct {
	cfg        *config.Instance
	fs         afero.Fs
	detector   *launchers.Detector
	enumerator *manifests.Enumerator
	steam      *steam.Client
	target     *Target
	clock      clockwork.Clock
	mu         syncutil.Mutex
	dryRun     bool
}

//nolint:gocritic // options struct copied on purpose
func New(opts Options) *Service {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewInstance(config.BaseDefaults)
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.NewSystem()
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	overrides := cfg.LauncherDefaults()
	return &Service{
		cfg:   cfg,
		fs:    fs,
		clock: clock,
		detector: launchers.NewDetector(launchers.DetectorOptions{
			Fs:          fs,
			Registry:    reg,
			Env:         opts.Env,
			Clock:       clock,
			Overrides:   overrides,
			Disabled:    cfg.DisabledLaunchers(),
			Concurrency: cfg.DetectConcurrency(),
		}),
		enumerator: manifests.NewEnumerator(manifests.EnumeratorOptions{
			Fs:        fs,
			Registry:  reg,
			Env:       opts.Env,
			Readers:   opts.Readers,
			Overrides: overrides,
		}),
		steam: steam.NewClient(steam.Options{
			Fs:         fs,
			Registry:   reg,
			Env:        opts.Env,
			Candidates: opts.Candidates,
			Processes:  opts.Processes,
		}),
		dryRun: opts.DryRun,
	}
}

// DetectAll reports every launcher in catalog order.
func (s *Service) DetectAll(ctx context.Context) []launchers.DetectionResult {
	return s.detector.DetectAll(ctx)
}

func (s *Service) profile(launcherID string) (launchers.Profile, error) {
	for _, p := range s.detector.Profiles() {
		if strings.EqualFold(p.ID, launcherID) {
			return p, nil
		}
	}
	return launchers.Profile{}, fmt.Errorf("%w: %s", ErrUnknownLauncher, launcherID)
}

// Enumerate lists the games of one launcher. A launcher that is not
// installed has no games.
func (s *Service) Enumerate(ctx context.Context, launcherID string) ([]launchers.GameRecord, error) {
	p, err := s.profile(launcherID)
	if err != nil {
		return nil, err
	}
	res := s.detector.Detect(p)
	if !res.Detected {
		log.Info().Str("launcher", p.ID).Msg("launcher not installed, no games")
		return make([]launchers.GameRecord, 0), nil
	}
	return s.enumerator.Enumerate(ctx, p, res.InstallPath), nil
}

// Games enumerates the given launchers, or every detected launcher when
// none are given, concurrently. Games are grouped by launcher in the order
// the launchers were given, catalog order otherwise.
func (s *Service) Games(ctx context.Context, launcherIDs ...string) ([]launchers.GameRecord, error) {
	type job struct {
		res     launchers.DetectionResult
		profile launchers.Profile
		probed  bool
	}

	var jobs []job
	if len(launcherIDs) == 0 {
		results := s.detector.DetectAll(ctx)
		for i, p := range s.detector.Profiles() {
			if results[i].Detected {
				jobs = append(jobs, job{profile: p, res: results[i], probed: true})
			}
		}
	} else {
		for _, id := range launcherIDs {
			p, err := s.profile(id)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job{profile: p})
		}
	}

	perLauncher := make([][]launchers.GameRecord, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.DetectConcurrency())
	for i, j := range jobs {
		g.Go(func() error {
			res := j.res
			if !j.probed {
				res = s.detector.Detect(j.profile)
			}
			if !res.Detected {
				log.Info().Str("launcher", j.profile.ID).Msg("launcher not installed, no games")
				return nil
			}
			perLauncher[i] = s.enumerator.Enumerate(gctx, j.profile, res.InstallPath)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("game enumeration cancelled: %w", err)
	}

	games := make([]launchers.GameRecord, 0)
	for _, list := range perLauncher {
		games = append(games, list...)
	}
	return games, nil
}

// Target resolves the Steam install and user shortcuts are written for.
// A successful result is cached for the life of the service.
func (s *Service) Target() (*Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.target != nil {
		return s.target, nil
	}

	steamDir, err := s.steam.FindSteamDir(s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to find steam: %w", err)
	}
	user, err := s.steam.ResolveUser(steamDir, s.cfg.SteamUserID())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve steam user: %w", err)
	}

	path := steam.ShortcutsPath(steamDir, user.AccountID)
	s.target = &Target{
		SteamDir: steamDir,
		User:     user,
		GridDir:  steam.GridDir(steamDir, user.AccountID),
		Store:    shortcuts.NewStore(s.fs, path, shortcuts.Options{Backup: s.cfg.BackupShortcuts()}),
	}
	log.Info().
		Str("steamDir", steamDir).
		Uint32("account", user.AccountID).
		Str("path", path).
		Msg("resolved steam target")
	return s.target, nil
}

// SteamRunning reports whether a Steam client process is running. Steam
// overwrites shortcuts.vdf on exit, so imports made while it runs are lost.
func (s *Service) SteamRunning(ctx context.Context) bool {
	return s.steam.IsRunning(ctx)
}

func (s *Service) importer(t *Target) *importer.Importer {
	var hooks []importer.PostImportHook
	if s.cfg.GridIcons() {
		hooks = append(hooks, importer.GridIconHook{Fs: s.fs, Dir: t.GridDir})
	}
	return importer.New(importer.Options{
		Store:       t.Store,
		Hooks:       hooks,
		TagLauncher: s.cfg.TagLauncher(),
		DryRun:      s.dryRun,
	})
}

// ImportGames writes the games to the resolved user's shortcuts. An empty
// batch succeeds without resolving Steam.
func (s *Service) ImportGames(ctx context.Context, games []launchers.GameRecord) (importer.Outcome, error) {
	if len(games) == 0 {
		log.Debug().Msg("no games to import")
		return importer.Outcome{
			Failed:  make([]importer.Failure, 0),
			BatchID: uuid.New(),
			DryRun:  s.dryRun,
		}, nil
	}
	t, err := s.Target()
	if err != nil {
		return importer.Outcome{Failed: make([]importer.Failure, 0)}, err
	}
	out, err := s.importer(t).ImportGames(ctx, games)
	if err != nil {
		return out, fmt.Errorf("import failed: %w", err)
	}
	return out, nil
}

// ImportAllDetected imports the games of every detected launcher.
func (s *Service) ImportAllDetected(ctx context.Context) (importer.Outcome, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return importer.Outcome{Failed: make([]importer.Failure, 0)}, err
	}
	return s.ImportGames(ctx, games)
}

// Shortcuts lists the resolved user's existing shortcuts.
func (s *Service) Shortcuts() ([]shortcuts.Entry, error) {
	t, err := s.Target()
	if err != nil {
		return nil, err
	}
	entries, err := t.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load shortcuts: %w", err)
	}
	return entries, nil
}

// RemoveShortcut deletes one shortcut and saves the store. It reports
// whether the shortcut existed.
func (s *Service) RemoveShortcut(appID uint32) (bool, error) {
	t, err := s.Target()
	if err != nil {
		return false, err
	}
	if _, err := t.Store.Load(); err != nil {
		return false, fmt.Errorf("failed to load shortcuts: %w", err)
	}
	if _, ok := t.Store.Get(appID); !ok {
		return false, nil
	}
	if err := t.Store.Remove(appID); err != nil {
		return false, fmt.Errorf("failed to remove shortcut: %w", err)
	}
	if s.dryRun {
		return true, nil
	}
	if err := t.Store.Save(); err != nil {
		return false, fmt.Errorf("failed to save shortcuts: %w", err)
	}
	return true, nil
}
