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

package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-import/pkg/steam/shortcuts"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// PostImportHook runs for every game after its batch was saved. Hook
// errors are logged and never change the batch outcome.
type PostImportHook interface {
	AfterImport(ctx context.Context, game launchers.GameRecord, entry shortcuts.Entry) error
}

// HookFunc adapts a function to the PostImportHook interface.
type HookFunc func(ctx context.Context, game launchers.GameRecord, entry shortcuts.Entry) error

//nolint:gocritic // hook signature mirrors PostImportHook
func (f HookFunc) AfterImport(ctx context.Context, game launchers.GameRecord, entry shortcuts.Entry) error {
	return f(ctx, game, entry)
}

var gridImageExts = []string{".png", ".jpg", ".jpeg"}

// GridIconHook copies a game's image icon into Steam's grid directory as
// <appid>_icon<ext>, where the library picks it up as the shortcut icon.
// Icons that are not images, such as executables, are left to Steam.
type GridIconHook struct {
	Fs  afero.Fs
	Dir string
}

//nolint:gocritic // hook signature mirrors PostImportHook
func (h GridIconHook) AfterImport(_ context.Context, game launchers.GameRecord, entry shortcuts.Entry) error {
	ext := strings.ToLower(helpers.PathExt(game.Icon))
	if game.Icon == "" || !slices.Contains(gridImageExts, ext) {
		return nil
	}
	if !helpers.FileExists(h.Fs, game.Icon) {
		log.Debug().Str("icon", game.Icon).Msg("icon not found, skipping grid copy")
		return nil
	}

	dest := filepath.Join(h.Dir, shortcuts.FormatAppID(entry.AppID)+"_icon"+ext)
	if err := helpers.CopyFile(h.Fs, game.Icon, dest); err != nil {
		return fmt.Errorf("failed to copy grid icon: %w", err)
	}
	log.Debug().Str("game", game.Name).Str("path", dest).Msg("copied grid icon")
	return nil
}

