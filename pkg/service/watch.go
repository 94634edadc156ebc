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

package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/importer"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
)

const DefaultWatchInterval = 30 * time.Second

var ErrNothingToWatch = errors.New("no launcher manifest directory to watch")

type WatchOptions struct {
	// OnImport receives the result of every import the watcher runs.
	OnImport func(out importer.Outcome, err error)
	// Interval is the minimum time between two imports. Changes made
	// inside it are folded into the next import.
	Interval time.Duration
}

// Watch imports the games of every detected launcher, then imports again
// whenever one of their manifest directories, or a folder directly inside
// one, changes, until ctx is done.
// Launchers that keep their games in the registry are imported but not
// watched. Watching needs the real filesystem.
//
//nolint:gocritic // options struct copied on purpose
func (s *Service) Watch(ctx context.Context, opts WatchOptions) error {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close file watcher")
		}
	}()

	if s.addWatches(ctx, watcher) == 0 {
		return ErrNothingToWatch
	}

	run := func() {
		out, err := s.ImportAllDetected(ctx)
		if err != nil {
			log.Error().Err(err).Msg("watch import failed")
		}
		if opts.OnImport != nil {
			opts.OnImport(out, err)
		}
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.AllowN(s.clock.Now(), 1)
	run()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("manifest changed")
			if event.Has(fsnotify.Create) && helpers.DirExists(s.fs, event.Name) {
				s.watchDir(watcher, "", event.Name)
			}
			if fire != nil {
				continue
			}
			now := s.clock.Now()
			delay := limiter.ReserveN(now, 1).DelayFrom(now)
			fire = s.clock.After(delay)
		case <-fire:
			fire = nil
			run()
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(watchErr).Msg("error in watcher")
		}
	}
}

func (s *Service) addWatches(ctx context.Context, watcher *fsnotify.Watcher) int {
	results := s.detector.DetectAll(ctx)
	watched := 0
	for i, p := range s.detector.Profiles() {
		if !results[i].Detected {
			continue
		}
		dirs := s.enumerator.ManifestDirs(p)
		if len(dirs) == 0 {
			log.Info().Str("launcher", p.ID).Msg("games are listed in the registry, not watching")
			continue
		}
		for _, dir := range dirs {
			if !helpers.DirExists(s.fs, dir) {
				continue
			}
			if !s.watchDir(watcher, p.ID, dir) {
				continue
			}
			s.watchSubdirs(watcher, p.ID, dir)
			watched++
			break
		}
	}
	return watched
}

// watchSubdirs adds the directories directly under dir. EA keeps one
// folder per game under its manifest directory.
func (s *Service) watchSubdirs(watcher *fsnotify.Watcher, launcherID, dir string) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		log.Warn().Err(err).Str("launcher", launcherID).Str("path", dir).Msg("failed to list manifest directory")
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			s.watchDir(watcher, launcherID, filepath.Join(dir, e.Name()))
		}
	}
}

func (s *Service) watchDir(watcher *fsnotify.Watcher, launcherID, dir string) bool {
	if err := watcher.Add(dir); err != nil {
		log.Warn().Err(err).Str("launcher", launcherID).Str("path", dir).Msg("failed to watch manifest directory")
		return false
	}
	log.Info().Str("launcher", launcherID).Str("path", dir).Msg("watching manifest directory")
	return true
}
