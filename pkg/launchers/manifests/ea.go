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
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/launchers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const eaManifestExt = ".mfst"

// EAReader reads the *.mfst files the EA app (and Origin before it) leaves
// in LocalContent, one per installed offer. Each file is a URL query string
// carrying the offer id and install path. EA games are launched through the
// client.
type EAReader struct{}

func (EAReader) Read(ctx context.Context, src Source) ([]launchers.GameRecord, error) {
	dir, ok := firstDir(src)
	if !ok {
		log.Debug().Strs("dirs", src.Dirs).Msg("ea manifest directory not found")
		return nil, nil
	}

	files, err := findFiles(ctx, src.Fs, dir, eaManifestExt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan ea manifests: %w", err)
	}

	exe := clientExe(src)
	games := make([]launchers.GameRecord, 0, len(files))
	for _, path := range files {
		data, err := afero.ReadFile(src.Fs, path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("failed to read ea manifest")
			continue
		}

		q, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(string(data)), "?"))
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("failed to parse ea manifest")
			continue
		}

		id, _, _ := strings.Cut(q.Get("id"), ",")
		installPath := strings.TrimRight(q.Get("dipinstallpath"), `/\`)

		name := ""
		if installPath != "" {
			name = helpers.PathBase(installPath)
		} else if parent := filepath.Base(filepath.Dir(path)); parent != filepath.Base(dir) {
			name = parent
		}

		games = append(games, launchers.GameRecord{
			ID:         strings.TrimSpace(id),
			Name:       name,
			Executable: exe,
			InstallDir: src.InstallPath,
		})
	}

	return games, nil
}
