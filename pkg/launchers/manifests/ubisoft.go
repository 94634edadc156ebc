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
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	"github.com/rs/zerolog/log"
)

// UbisoftReader lists the games under Ubisoft Connect's Installs registry
// key. Each subkey is a game id holding an InstallDir value; the title
// comes from the game's "Uplay Install <id>" uninstall entry.
type UbisoftReader struct{}

func (UbisoftReader) Read(ctx context.Context, src Source) ([]launchers.GameRecord, error) {
	key := src.Profile.Manifest.RegistryKey
	if key == "" {
		return nil, nil
	}

	ids, err := src.Registry.SubKeys(registry.LocalMachine, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list ubisoft installs: %w", err)
	}

	exe := clientExe(src)
	games := make([]launchers.GameRecord, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err //nolint:wrapcheck // context error passed through
		}

		installDir, err := src.Registry.StringValue(registry.LocalMachine, registry.JoinPath(key, id), "InstallDir")
		if err != nil {
			log.Debug().Err(err).Str("id", id).Msg("ubisoft install has no install dir")
			continue
		}
		installDir = strings.TrimRight(strings.TrimSpace(installDir), `/\`)

		game := launchers.GameRecord{
			ID:         id,
			Executable: exe,
			InstallDir: src.InstallPath,
		}
		if entry, ok := lookupUninstall(src.Registry, "Uplay Install "+id); ok {
			game.Name = entry.DisplayName
			game.Icon = iconPath(entry.DisplayIcon)
		}
		if game.Name == "" && installDir != "" {
			game.Name = helpers.PathBase(installDir)
		}
		games = append(games, game)
	}

	return games, nil
}
