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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type epicManifest struct {
	AppName           string `json:"AppName"`
	DisplayName       string `json:"DisplayName"`
	InstallLocation   string `json:"InstallLocation"`
	LaunchExecutable  string `json:"LaunchExecutable"`
	MainGameAppName   string `json:"MainGameAppName"`
	IncompleteInstall bool   `json:"bIsIncompleteInstall"`
}

// EpicReader reads the *.item JSON manifests the Epic Games Launcher keeps
// per installed app. Games are started directly with the Epic portal
// arguments, so the record points at the game's own executable.
type EpicReader struct{}

func (EpicReader) Read(ctx context.Context, src Source) ([]launchers.GameRecord, error) {
	dir, ok := firstDir(src)
	if !ok {
		log.Debug().Strs("dirs", src.Dirs).Msg("epic manifest directory not found")
		return nil, nil
	}

	entries, err := afero.ReadDir(src.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read epic manifest directory: %w", err)
	}

	var games []launchers.GameRecord
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err //nolint:wrapcheck // context error passed through
		}
		if entry.IsDir() || !strings.EqualFold(helpers.PathExt(entry.Name()), ".item") {
			continue
		}

		path := joinPath(dir, entry.Name())
		data, err := afero.ReadFile(src.Fs, path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("failed to read epic manifest")
			continue
		}

		var m epicManifest
		if err := json.Unmarshal(data, &m); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("failed to parse epic manifest")
			continue
		}

		if m.IncompleteInstall {
			continue
		}
		if m.MainGameAppName != "" && !strings.EqualFold(m.MainGameAppName, m.AppName) {
			// DLC installs point at their base game
			continue
		}

		game := launchers.GameRecord{
			ID:         m.AppName,
			Name:       m.DisplayName,
			InstallDir: m.InstallLocation,
		}
		if m.InstallLocation != "" && m.LaunchExecutable != "" {
			exe := joinPath(m.InstallLocation, m.LaunchExecutable)
			if helpers.PathHasPrefix(exe, m.InstallLocation) {
				game.Executable = exe
				game.Icon = exe
			} else {
				log.Debug().Str("path", path).Msgf("launch executable outside install location: %s", exe)
			}
		}
		games = append(games, game)
	}

	return games, nil
}
